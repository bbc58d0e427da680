package domain

// Значения по умолчанию
const (
	DefaultSlotDurationMinutes = 30
	DefaultTimezone            = "UTC"
	DefaultMaxAdvanceDays      = 90
)

// Ограничения сервиса доступности
const (
	// MaxScanDays максимальная глубина поиска ближайших свободных дат
	MaxScanDays = 60

	// MaxAdvanceDaysLimit верхняя граница настройки горизонта бронирования
	MaxAdvanceDaysLimit = 365

	DefaultNextDatesLimit = 5
	MaxNextDatesLimit     = 30

	MinSlotDurationMinutes = 5
	MaxSlotDurationMinutes = 480 // 8 часов

	MaxNotesLength              = 500
	MaxCustomerNameLength       = 200
	MaxDeviceTypeLength         = 100
	MaxIssueDescriptionLength   = 2000
	MaxCancellationReasonLength = 500
	MaxSpecialDateNameLength    = 200
)

// Правила подбора рекомендуемого времени
const (
	EmergencySlotsPerDay    = 3
	PreferredDateSlotsLimit = 5
	SuggestedDatesCount     = 3
	SuggestedSlotsPerDate   = 2
	MaxSuggestedSlots       = 6
)
