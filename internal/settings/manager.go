// Package settings provides typed access to the flat settings store.
package settings

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/sodam-app/sodam/internal/constants"
	"github.com/sodam-app/sodam/internal/models"
	"github.com/sodam-app/sodam/internal/storage"
	"github.com/sodam-app/sodam/internal/validation"
)

// ErrSettingsAccessFailed wraps every failure of the underlying store.
var ErrSettingsAccessFailed = errors.New("settings access failed")

// Manager reads and writes app settings by key.
type Manager struct {
	store storage.SettingsStore
}

func NewManager(store storage.SettingsStore) *Manager {
	return &Manager{store: store}
}

func (m *Manager) get(key string) (string, bool, error) {
	value, ok, err := m.store.GetSetting(key)
	if err != nil {
		return "", false, fmt.Errorf("%w: read %s: %w", ErrSettingsAccessFailed, key, err)
	}
	return value, ok, nil
}

func (m *Manager) set(key, value string) error {
	if err := m.store.SetSetting(key, value); err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrSettingsAccessFailed, key, err)
	}
	return nil
}

func (m *Manager) remove(key string) error {
	if err := m.store.RemoveSetting(key); err != nil {
		return fmt.Errorf("%w: remove %s: %w", ErrSettingsAccessFailed, key, err)
	}
	return nil
}

func (m *Manager) getBool(key string) (bool, error) {
	value, ok, err := m.get(key)
	if err != nil || !ok {
		return false, err
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%w: %s is not a boolean: %q", ErrSettingsAccessFailed, key, value)
	}
	return b, nil
}

func (m *Manager) setBool(key string, value bool) error {
	return m.set(key, strconv.FormatBool(value))
}

// Snapshot returns every setting with defaults applied.
func (m *Manager) Snapshot() (models.Settings, error) {
	all, err := m.store.GetAllSettings()
	if err != nil {
		return models.Settings{}, fmt.Errorf("%w: %w", ErrSettingsAccessFailed, err)
	}
	s, err := models.MapToSettings(all)
	if err != nil {
		return models.Settings{}, fmt.Errorf("%w: %w", ErrSettingsAccessFailed, err)
	}
	models.ApplyDefaultSettings(&s)
	return s, nil
}

// Draft

func (m *Manager) SaveContent(content string) error {
	return m.set(constants.SettingDraftContent, content)
}

func (m *Manager) GetContent() (string, error) {
	value, _, err := m.get(constants.SettingDraftContent)
	return value, err
}

func (m *Manager) SaveImagePaths(paths []string) error {
	encoded, err := models.EncodeImagePaths(paths)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSettingsAccessFailed, err)
	}
	return m.set(constants.SettingDraftImagePaths, encoded)
}

func (m *Manager) GetImagePaths() ([]string, error) {
	value, _, err := m.get(constants.SettingDraftImagePaths)
	if err != nil {
		return nil, err
	}
	paths, err := models.DecodeImagePaths(value)
	if err != nil {
		return nil, fmt.Errorf("%w: draft images: %w", ErrSettingsAccessFailed, err)
	}
	return paths, nil
}

// DeleteTemporaryPost discards the draft text and images.
func (m *Manager) DeleteTemporaryPost() error {
	if err := m.remove(constants.SettingDraftContent); err != nil {
		return err
	}
	return m.remove(constants.SettingDraftImagePaths)
}

// Reminders

// GetNotificationTime returns the reminder time, DefaultNotificationTime when unset.
func (m *Manager) GetNotificationTime() (string, error) {
	value, ok, err := m.get(constants.SettingNotificationTime)
	if err != nil {
		return "", err
	}
	if !ok || value == "" {
		return constants.DefaultNotificationTime, nil
	}
	return value, nil
}

func (m *Manager) SetNotificationTime(value string) error {
	if err := validation.TimeOfDay(value); err != nil {
		return err
	}
	return m.set(constants.SettingNotificationTime, value)
}

func (m *Manager) GetToggleState() (bool, error) {
	return m.getBool(constants.SettingAppToggleState)
}

func (m *Manager) SetToggleState(on bool) error {
	return m.setBool(constants.SettingAppToggleState, on)
}

func (m *Manager) HasUserSetToggle() (bool, error) {
	return m.getBool(constants.SettingHasUserSetToggle)
}

func (m *Manager) SetUserSetToggle(value bool) error {
	return m.setBool(constants.SettingHasUserSetToggle, value)
}

func (m *Manager) PermissionRequested() (bool, error) {
	return m.getBool(constants.SettingPermissionRequested)
}

func (m *Manager) SetPermissionRequested(value bool) error {
	return m.setBool(constants.SettingPermissionRequested, value)
}

func (m *Manager) PermissionGranted() (bool, error) {
	return m.getBool(constants.SettingPermissionGranted)
}

func (m *Manager) SetPermissionGranted(value bool) error {
	return m.setBool(constants.SettingPermissionGranted, value)
}

func (m *Manager) IsInitialSetupComplete() (bool, error) {
	return m.getBool(constants.SettingNotificationSetupComplete)
}

func (m *Manager) SetInitialSetupComplete(value bool) error {
	return m.setBool(constants.SettingNotificationSetupComplete, value)
}

// Onboarding and appearance

// IsFirstLaunch reports whether onboarding has not been completed yet.
func (m *Manager) IsFirstLaunch() (bool, error) {
	launched, err := m.getBool(constants.SettingHasLaunchedBefore)
	return !launched, err
}

func (m *Manager) MarkLaunched() error {
	return m.setBool(constants.SettingHasLaunchedBefore, true)
}

func (m *Manager) GetFont() (string, error) {
	value, ok, err := m.get(constants.SettingFontName)
	if err != nil {
		return "", err
	}
	if !ok || value == "" {
		return constants.DefaultFontName, nil
	}
	return value, nil
}

func (m *Manager) SetFont(name string) error {
	if err := validation.FontName(name); err != nil {
		return err
	}
	return m.set(constants.SettingFontName, name)
}

// Written status

// MarkAsWrittenToday records that a happiness was written on now's day.
func (m *Manager) MarkAsWrittenToday(now time.Time) error {
	return m.set(constants.SettingLastWrittenDate, now.Format(constants.DateFormat))
}

// HasAlreadyWrittenToday reports whether the last written day is now's day.
func (m *Manager) HasAlreadyWrittenToday(now time.Time) (bool, error) {
	value, ok, err := m.get(constants.SettingLastWrittenDate)
	if err != nil || !ok {
		return false, err
	}
	return value == now.Format(constants.DateFormat), nil
}

// ResetWrittenStatus clears a last written day that is not now's day.
// Running it more than once a day is harmless.
func (m *Manager) ResetWrittenStatus(now time.Time) error {
	written, err := m.HasAlreadyWrittenToday(now)
	if err != nil || written {
		return err
	}
	return m.remove(constants.SettingLastWrittenDate)
}
