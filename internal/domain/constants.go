package domain

// Default configuration values
const (
	DefaultSlotDurationMinutes = 60
	DefaultFieldOpenTime       = "08:00"
	DefaultFieldCloseTime      = "22:00"
)

// Business validation constants
const (
	MinRating           = 1
	MaxRating           = 5
	MaxNotesLength      = 500
	MaxCommentLength    = 1000
	MinPasswordLength   = 6
	MinUsernameLength   = 3
	MaxUsernameLength   = 30
	MaxFieldNameLength  = 100
	DefaultReviewsLimit = 10
	MaxReviewsLimit     = 100
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
