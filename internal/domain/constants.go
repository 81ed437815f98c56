package domain

// Time format constants
const (
	DateFormat    = "2006-01-02"       // YYYY-MM-DD
	TimeLogFormat = "2006-01-02T15:04" // компактное время для логов
)

// Validation bounds for administrative rules updates
const (
	MinPerFamily             = 1
	MaxPerFamilyLimit        = 10
	MinAdvanceBookingDays    = 1
	MaxAdvanceBookingDaysCap = 30
	MinDurationFloor         = 15  // минимально допустимое значение minBookingDuration
	MinDurationCeil          = 60  // максимально допустимое значение minBookingDuration
	MaxDurationFloor         = 30  // минимально допустимое значение maxBookingDuration
	MaxDurationCeil          = 480 // 8 часов
	MinCancellationDeadline  = 1
	MaxCancellationDeadline  = 24
)
