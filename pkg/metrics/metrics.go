package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор метрик сервиса
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// База данных
	DBQueriesTotal       *prometheus.CounterVec
	DBQueryDuration      *prometheus.HistogramVec
	DBOpenConnections    *prometheus.GaugeVec
	DBInUseConnections   *prometheus.GaugeVec
	DBIdleConnections    *prometheus.GaugeVec
	DBWaitCount          *prometheus.GaugeVec
	DBMaxOpenConnections *prometheus.GaugeVec

	// Доменные метрики
	SlotReservationsTotal *prometheus.CounterVec
	SlotReleasesTotal     *prometheus.CounterVec
	SlotsGeneratedTotal   *prometheus.CounterVec
	ScheduleCacheTotal    *prometheus.CounterVec
}

// New создает и регистрирует метрики в глобальном registry
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry создает метрики и регистрирует их в переданном registry
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_queries_total",
			Help:        "Total number of database queries",
			ConstLabels: constLabels,
		}, []string{"operation", "status"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),

		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBInUseConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBIdleConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBMaxOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_max_open_connections",
			Help:        "Maximum number of open connections",
			ConstLabels: constLabels,
		}, []string{"db"}),

		SlotReservationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "slot_reservations_total",
			Help:        "Slot reservation attempts by outcome",
			ConstLabels: constLabels,
		}, []string{"outcome"}),

		SlotReleasesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "slot_releases_total",
			Help:        "Slot release attempts by outcome",
			ConstLabels: constLabels,
		}, []string{"outcome"}),

		SlotsGeneratedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "slots_generated_total",
			Help:        "Slots inserted by lazy generation",
			ConstLabels: constLabels,
		}, []string{}),

		ScheduleCacheTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "schedule_cache_requests_total",
			Help:        "Schedule cache lookups by result",
			ConstLabels: constLabels,
		}, []string{"kind", "result"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueriesTotal,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.DBWaitCount,
		m.DBMaxOpenConnections,
		m.SlotReservationsTotal,
		m.SlotReleasesTotal,
		m.SlotsGeneratedTotal,
		m.ScheduleCacheTotal,
	)

	return m
}

// ObserveReservation учитывает исход попытки бронирования слота
// Безопасен для nil (метрики выключены)
func (m *Metrics) ObserveReservation(outcome string) {
	if m == nil {
		return
	}
	m.SlotReservationsTotal.WithLabelValues(outcome).Inc()
}

// ObserveRelease учитывает исход освобождения слота
func (m *Metrics) ObserveRelease(outcome string) {
	if m == nil {
		return
	}
	m.SlotReleasesTotal.WithLabelValues(outcome).Inc()
}

// ObserveGeneratedSlots учитывает количество вставленных слотов
func (m *Metrics) ObserveGeneratedSlots(count int) {
	if m == nil || count <= 0 {
		return
	}
	m.SlotsGeneratedTotal.WithLabelValues().Add(float64(count))
}

// ObserveCache учитывает попадание/промах кеша расписания
func (m *Metrics) ObserveCache(kind string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.ScheduleCacheTotal.WithLabelValues(kind, result).Inc()
}
