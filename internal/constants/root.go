package constants

import "time"

const (
	AppName           = "sodam"
	DefaultConfigPath = "~/.config/sodam/sodam.db"
	DefaultConfigFile = "~/.config/sodam/config.toml"
	Version           = "v0.3.0"

	// DateFormat is the storage date format (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// DisplayDateFormat is the date format shown on the status card (YYYY.MM.DD)
	DisplayDateFormat = "2006.01.02"

	// TimeFormat is the time-of-day format used for reminders (HH:MM)
	TimeFormat = "15:04"

	// DefaultHangdamName is shown until the user names a Hangdam
	DefaultHangdamName = "행담이"

	// Growth defaults, overridable in config.toml
	DefaultHangdamCapacity = 30

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "sodam-"
	BackupFileSuffix = ".db"

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "sodam-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.sodam.tray"
	TrayExecutablePrefix   = "sodam-tray"

	// Reminder messages
	ReminderTitle          = "Sodam"
	ReminderMessage        = "오늘의 행복을 행담이에게 들려주세요."
	PermissionGrantedToast = "알림 시간 설정이 가능합니다."
	PermissionDeniedToast  = "알림 권한이 거부되었습니다."
)
