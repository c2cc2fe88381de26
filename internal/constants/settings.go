package constants

const (
	// Onboarding
	SettingHasLaunchedBefore = "has_launched_before"

	// Draft entry
	SettingDraftContent    = "content"
	SettingDraftImagePaths = "image_path"

	// Reminders
	SettingNotificationTime          = "notification_time"
	SettingAppToggleState            = "app_setting_toggle_state"
	SettingHasUserSetToggle          = "has_user_set_toggle"
	SettingPermissionRequested       = "notification_permission_requested"
	SettingPermissionGranted         = "notification_permission_granted"
	SettingNotificationSetupComplete = "notification_initial_setup_complete"

	// Shared between status and reminder flows
	SettingLastWrittenDate = "last_written_date"

	// Appearance
	SettingFontName = "font_name"

	// Default Settings Values
	DefaultNotificationTime = "21:00"
	DefaultFontName         = "MapoGoldenPier"
)

// Fonts lists the font names the settings screen accepts.
var Fonts = []string{
	"MapoGoldenPier",
	"MaruBuri",
	"NanumGothic",
	"System",
}
