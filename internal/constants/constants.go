package constants

const (
	AppName = "daybook"
	Version = "v0.3.1"

	// DefaultKeyringUser is the keyring account under which the access PIN is stored
	DefaultKeyringUser = "access-pin"

	DefaultAddr   = ":8390"
	DefaultDBPath = "~/.config/daybook/daybook.db"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// PinHeader carries the access PIN on API requests
	PinHeader = "X-Daybook-Pin"
)
