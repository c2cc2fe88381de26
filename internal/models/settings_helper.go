package models

import (
	"encoding/json"
	"fmt"

	"github.com/sodam-app/sodam/internal/constants"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingNotificationTime:
			settings.NotificationTime = value
		case constants.SettingAppToggleState:
			settings.NotificationsEnabled = value == "true"
		case constants.SettingHasUserSetToggle:
			settings.HasUserSetToggle = value == "true"
		case constants.SettingPermissionRequested:
			settings.PermissionRequested = value == "true"
		case constants.SettingPermissionGranted:
			settings.PermissionGranted = value == "true"
		case constants.SettingNotificationSetupComplete:
			settings.NotificationSetupDone = value == "true"
		case constants.SettingLastWrittenDate:
			settings.LastWrittenDate = value
		case constants.SettingFontName:
			settings.FontName = value
		case constants.SettingHasLaunchedBefore:
			settings.HasLaunchedBefore = value == "true"
		case constants.SettingDraftContent:
			settings.DraftContent = value
		case constants.SettingDraftImagePaths:
			paths, err := DecodeImagePaths(value)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing %s: %w", key, err)
			}
			settings.DraftImagePaths = paths
		}
	}
	return settings, nil
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.NotificationTime == "" {
		settings.NotificationTime = constants.DefaultNotificationTime
	}
	if settings.FontName == "" {
		settings.FontName = constants.DefaultFontName
	}
}

// EncodeImagePaths serializes an ordered list of image paths for a settings value.
func EncodeImagePaths(paths []string) (string, error) {
	if paths == nil {
		paths = []string{}
	}
	data, err := json.Marshal(paths)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodeImagePaths parses a value written by EncodeImagePaths.
func DecodeImagePaths(value string) ([]string, error) {
	if value == "" {
		return nil, nil
	}
	var paths []string
	if err := json.Unmarshal([]byte(value), &paths); err != nil {
		return nil, err
	}
	return paths, nil
}
