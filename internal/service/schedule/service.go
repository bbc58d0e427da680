package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	specialDateRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/special_date"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/schedule/models"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// maxListRangeDays ограничение диапазона при выборке особых дат
const maxListRangeDays = 366

// Service сервис администрирования расписания: часы работы и особые даты
// После каждого изменения сбрасывает кеш расписания
type Service struct {
	hoursRepo   BusinessHoursRepository
	specialRepo SpecialDateRepository
	cache       Cache
	loc         *time.Location
	logger      Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	hoursRepo BusinessHoursRepository,
	specialRepo SpecialDateRepository,
	cache Cache,
	loc *time.Location,
	logger Logger,
) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		hoursRepo:   hoursRepo,
		specialRepo: specialRepo,
		cache:       cache,
		loc:         loc,
		logger:      logger,
	}
}

// ListBusinessHours возвращает расписание на все дни недели
func (s *Service) ListBusinessHours(ctx context.Context) (*models.BusinessHoursListResponse, error) {
	hours, err := s.hoursRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("ListBusinessHours: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListBusinessHours - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBusinessHoursList(hours), nil
}

// UpsertBusinessHours создает или заменяет расписание дня недели
// Уже сгенерированные слоты не пересчитываются
func (s *Service) UpsertBusinessHours(ctx context.Context, req *models.UpsertBusinessHoursRequest) (*models.BusinessHoursResponse, error) {
	s.logger.Info("UpsertBusinessHours: day=%d open=%s close=%s", req.DayOfWeek, req.OpenTime, req.CloseTime)

	hours, err := validateBusinessHours(req)
	if err != nil {
		s.logger.Warn("UpsertBusinessHours: validation failed: %v", err)
		return nil, err
	}

	saved, err := s.hoursRepo.Upsert(ctx, hours)
	if err != nil {
		s.logger.Error("UpsertBusinessHours: repository error for day=%d: %v", req.DayOfWeek, err)
		return nil, fmt.Errorf("%w: UpsertBusinessHours - repository error: %v", ErrInternal, err)
	}

	s.cache.InvalidateBusinessHours(ctx)

	s.logger.Info("UpsertBusinessHours: saved id=%d for day=%d", saved.ID, saved.DayOfWeek)
	return models.FromDomainBusinessHours(saved), nil
}

// ListSpecialDates возвращает особые даты в диапазоне [from, to]
func (s *Service) ListSpecialDates(ctx context.Context, from, to time.Time) (*models.SpecialDateListResponse, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: to must not be before from", ErrInvalidInput)
	}
	if types.DaysBetween(from, to) > maxListRangeDays {
		return nil, fmt.Errorf("%w: range must not exceed %d days", ErrInvalidInput, maxListRangeDays)
	}

	dates, err := s.specialRepo.GetByDateRange(ctx, from, to)
	if err != nil {
		s.logger.Error("ListSpecialDates: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListSpecialDates - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSpecialDateList(dates), nil
}

// CreateSpecialDate создает праздник, закрытие или особые часы на дату
// На одну дату допускается одна особая дата
func (s *Service) CreateSpecialDate(ctx context.Context, req *models.CreateSpecialDateRequest) (*models.SpecialDateResponse, error) {
	s.logger.Info("CreateSpecialDate: date=%s type=%s", req.Date, req.Type)

	sd, err := validateSpecialDate(req, s.loc)
	if err != nil {
		s.logger.Warn("CreateSpecialDate: validation failed: %v", err)
		return nil, err
	}

	created, err := s.specialRepo.Create(ctx, sd)
	if err != nil {
		if errors.Is(err, specialDateRepo.ErrDuplicateDate) {
			s.logger.Warn("CreateSpecialDate: date=%s already has a special date", req.Date)
			return nil, ErrSpecialDateExists
		}
		s.logger.Error("CreateSpecialDate: repository error for date=%s: %v", req.Date, err)
		return nil, fmt.Errorf("%w: CreateSpecialDate - repository error: %v", ErrInternal, err)
	}

	s.cache.InvalidateSpecialDate(ctx, created.Date)

	s.logger.Info("CreateSpecialDate: created id=%d for date=%s", created.ID, req.Date)
	return models.FromDomainSpecialDate(created), nil
}

// DeleteSpecialDate удаляет особую дату; день возвращается к расписанию дня недели
func (s *Service) DeleteSpecialDate(ctx context.Context, date time.Time) error {
	s.logger.Info("DeleteSpecialDate: date=%s", types.FormatDate(date))

	if err := s.specialRepo.Delete(ctx, date); err != nil {
		if errors.Is(err, specialDateRepo.ErrSpecialDateNotFound) {
			s.logger.Warn("DeleteSpecialDate: date=%s not found", types.FormatDate(date))
			return ErrSpecialDateNotFound
		}
		s.logger.Error("DeleteSpecialDate: repository error for date=%s: %v", types.FormatDate(date), err)
		return fmt.Errorf("%w: DeleteSpecialDate - repository error: %v", ErrInternal, err)
	}

	s.cache.InvalidateSpecialDate(ctx, date)

	s.logger.Info("DeleteSpecialDate: deleted date=%s", types.FormatDate(date))
	return nil
}
