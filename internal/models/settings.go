package models

// Settings is the typed snapshot of the flat settings store
type Settings struct {
	NotificationTime      string   `json:"notification_time"`        // reminder time of day, e.g. "21:00"
	NotificationsEnabled  bool     `json:"app_setting_toggle_state"` // whether the daily reminder is on
	HasUserSetToggle      bool     `json:"has_user_set_toggle"`      // whether the user ever changed the toggle
	PermissionRequested   bool     `json:"permission_requested"`     // whether notification permission was asked
	PermissionGranted     bool     `json:"permission_granted"`       // outcome of the permission request
	NotificationSetupDone bool     `json:"notification_setup_done"`  // first-run reminder setup finished
	LastWrittenDate       string   `json:"last_written_date"`        // YYYY-MM-DD of the last happiness
	FontName              string   `json:"font_name"`                // selected font
	HasLaunchedBefore     bool     `json:"has_launched_before"`      // onboarding finished
	DraftContent          string   `json:"draft_content"`            // unsaved happiness text
	DraftImagePaths       []string `json:"draft_image_paths"`        // unsaved happiness images
}
