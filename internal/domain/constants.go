package domain

// Default configuration values
const (
	// DefaultOperatingTimezone зона, в которой исторически велось расписание
	DefaultOperatingTimezone = "America/Sao_Paulo"
)

// Business validation constants
const (
	MaxReasonLength = 255

	MinDailyBudgetMinutes = 1
	MaxDailyBudgetMinutes = 24 * 60

	MaxRangeBlockDays = 365 // 1 year
)

// Time format constants
const (
	TimeFormat        = "15:04"      // HH:MM
	DateFormat        = "2006-01-02" // YYYY-MM-DD
	DisplayDateFormat = "02/01/2006" // DD/MM/YYYY (формат клиентского приложения)
)
