package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Payment defaults
const (
	DefaultCurrency = "usd"
)

// Upstream defaults
const (
	DefaultRequestTimeoutSeconds = 15
	DefaultMaxRetries            = 3
	DefaultDateWindowDays        = 30
)

// Field limits shared by validation and the journal
const (
	MinNameLength   = 2
	MaxNameLength   = 50
	MinEmailLength  = 5
	MaxEmailLength  = 100
	MinPhoneLength  = 10
	MaxNotesLength  = 500
	MinSessions     = 2
	MaxSessions     = 12
	MaxReasonLength = 500
)
