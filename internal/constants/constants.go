package constants

const (
	AppName           = "habitkit"
	DefaultConfigPath = "~/.config/habitkit/habitkit.json"
	Version           = "v0.1.0"

	// KeyringUser is the account name of the PostgreSQL connection string
	// entry, stored under service AppName.
	KeyringUser = "postgres-connection"

	// StorageKey is the slot that holds the whole app document.
	StorageKey = "habit-tracker-data"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Environment variables
	EnvConfig       = "HABITKIT_CONFIG"
	EnvTimezone     = "HABITKIT_TIMEZONE"
	EnvDebug        = "HABITKIT_DEBUG"
	EnvDBConnection = "HABITKIT_DB_CONNECTION"

	// Backup constants
	MaxBackups             = 14
	BackupDirName          = "backups"
	BackupFilePrefix       = "habitkit-"
	MalformedBackupPrefix  = "habitkit-malformed-"
	BackupFileSuffix       = ".json"
	BackupTimestampFormat  = "20060102-1504"
	BackupTimestampSeconds = "20060102-150405"
)
