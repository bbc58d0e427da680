package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

const (
	keyPrefix        = "schedule:"
	businessHoursKey = keyPrefix + "business_hours"
	specialDatesKey  = keyPrefix + "special_dates:" // + YYYY-MM

	kindBusinessHours = "business_hours"
	kindSpecialDates  = "special_dates"
)

// Store read-through кеш расписания поверх репозиториев
// Особые даты кешируются помесячно. Без redis (или при ttl <= 0)
// все чтения идут напрямую в БД. Ошибки redis не прерывают запрос
type Store struct {
	hoursRepo   BusinessHoursRepository
	specialRepo SpecialDateRepository
	redis       *redis.Client
	ttl         time.Duration
	metrics     Metrics
	logger      Logger
}

// NewStore создает кеш расписания; redisClient может быть nil
func NewStore(
	hoursRepo BusinessHoursRepository,
	specialRepo SpecialDateRepository,
	redisClient *redis.Client,
	ttl time.Duration,
	metrics Metrics,
	logger Logger,
) *Store {
	return &Store{
		hoursRepo:   hoursRepo,
		specialRepo: specialRepo,
		redis:       redisClient,
		ttl:         ttl,
		metrics:     metrics,
		logger:      logger,
	}
}

func (s *Store) enabled() bool {
	return s.redis != nil && s.ttl > 0
}

// GetBusinessHours возвращает расписание на все дни недели
func (s *Store) GetBusinessHours(ctx context.Context) ([]*domain.BusinessHours, error) {
	var cached []*domain.BusinessHours
	if s.readCache(ctx, businessHoursKey, &cached) {
		s.metrics.ObserveCache(kindBusinessHours, true)
		return cached, nil
	}
	if s.enabled() {
		s.metrics.ObserveCache(kindBusinessHours, false)
	}

	hours, err := s.hoursRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadBusinessHours, err)
	}

	s.writeCache(ctx, businessHoursKey, hours)
	return hours, nil
}

// GetSpecialDates возвращает особые даты в диапазоне [from, to]
func (s *Store) GetSpecialDates(ctx context.Context, from, to time.Time) ([]*domain.SpecialDate, error) {
	if !s.enabled() {
		dates, err := s.specialRepo.GetByDateRange(ctx, from, to)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadSpecialDates, err)
		}
		return dates, nil
	}

	fromKey, toKey := types.FormatDate(from), types.FormatDate(to)
	result := make([]*domain.SpecialDate, 0)

	for month := firstOfMonth(from); !month.After(to); month = month.AddDate(0, 1, 0) {
		dates, err := s.monthSpecialDates(ctx, month)
		if err != nil {
			return nil, err
		}
		for _, sd := range dates {
			key := types.FormatDate(sd.Date)
			if key >= fromKey && key <= toKey {
				result = append(result, sd)
			}
		}
	}

	return result, nil
}

func (s *Store) monthSpecialDates(ctx context.Context, month time.Time) ([]*domain.SpecialDate, error) {
	key := monthKey(month)

	var cached []*domain.SpecialDate
	if s.readCache(ctx, key, &cached) {
		s.metrics.ObserveCache(kindSpecialDates, true)
		return cached, nil
	}
	s.metrics.ObserveCache(kindSpecialDates, false)

	first, last := types.MonthBounds(month.Year(), month.Month(), month.Location())
	dates, err := s.specialRepo.GetByDateRange(ctx, first, last)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadSpecialDates, err)
	}

	s.writeCache(ctx, key, dates)
	return dates, nil
}

// InvalidateBusinessHours сбрасывает кеш расписания по дням недели
func (s *Store) InvalidateBusinessHours(ctx context.Context) {
	s.del(ctx, businessHoursKey)
}

// InvalidateSpecialDate сбрасывает кеш месяца, в который входит дата
func (s *Store) InvalidateSpecialDate(ctx context.Context, date time.Time) {
	s.del(ctx, monthKey(date))
}

func (s *Store) readCache(ctx context.Context, key string, out any) bool {
	if !s.enabled() {
		return false
	}
	val, err := s.redis.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("schedule cache: get %s: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal([]byte(val), out); err != nil {
		s.logger.Warn("schedule cache: decode %s: %v", key, err)
		return false
	}
	return true
}

func (s *Store) writeCache(ctx context.Context, key string, val any) {
	if !s.enabled() {
		return
	}
	data, err := json.Marshal(val)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, key, data, s.ttl).Err(); err != nil {
		s.logger.Warn("schedule cache: set %s: %v", key, err)
	}
}

func (s *Store) del(ctx context.Context, key string) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, key).Err(); err != nil {
		s.logger.Warn("schedule cache: del %s: %v", key, err)
	}
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func monthKey(t time.Time) string {
	return specialDatesKey + t.Format("2006-01")
}
