package reminder

import (
	"context"
	"fmt"
	"sync"

	"github.com/sodam-app/sodam/internal/constants"
	"github.com/sodam-app/sodam/internal/logger"
	"github.com/sodam-app/sodam/internal/settings"
)

type PermissionStatus int

const (
	PermissionNotDetermined PermissionStatus = iota
	PermissionDenied
	PermissionAuthorized
)

func (p PermissionStatus) String() string {
	switch p {
	case PermissionDenied:
		return "denied"
	case PermissionAuthorized:
		return "authorized"
	default:
		return "not determined"
	}
}

// Authorizer answers whether reminders may be shown.
// Request completes at most once; later calls return the first answer.
type Authorizer interface {
	Status() (PermissionStatus, error)
	Request(ctx context.Context) (bool, error)
}

// Setup runs the first-launch reminder permission flow.
type Setup struct {
	settings    *settings.Manager
	scheduler   DailyScheduler
	auth        Authorizer
	defaultTime string
	toast       func(string)
}

// NewSetup creates the flow. toast receives the user facing messages.
func NewSetup(settings *settings.Manager, scheduler DailyScheduler, auth Authorizer, defaultTime string, toast func(string)) *Setup {
	if defaultTime == "" {
		defaultTime = constants.DefaultNotificationTime
	}
	if toast == nil {
		toast = func(string) {}
	}
	return &Setup{
		settings:    settings,
		scheduler:   scheduler,
		auth:        auth,
		defaultTime: defaultTime,
		toast:       toast,
	}
}

// Run checks the permission and finishes the initial setup when granted.
func (s *Setup) Run(ctx context.Context) (PermissionStatus, error) {
	status, err := s.auth.Status()
	if err != nil {
		return status, fmt.Errorf("failed to read notification permission: %w", err)
	}
	logger.Debug("Notification permission", "status", status)

	switch status {
	case PermissionNotDetermined:
		granted, err := s.auth.Request(ctx)
		if err != nil {
			return status, fmt.Errorf("failed to request notification permission: %w", err)
		}
		if err := s.settings.SetPermissionRequested(true); err != nil {
			return status, err
		}
		if err := s.settings.SetPermissionGranted(granted); err != nil {
			return status, err
		}
		if !granted {
			s.toast(constants.PermissionDeniedToast)
			return PermissionDenied, nil
		}
		s.toast(constants.PermissionGrantedToast)
		return PermissionAuthorized, s.complete()

	case PermissionDenied:
		// report a denial only once
		reported, err := s.settings.PermissionRequested()
		if err != nil {
			return status, err
		}
		if !reported {
			s.toast(constants.PermissionDeniedToast)
			if err := s.settings.SetPermissionRequested(true); err != nil {
				return status, err
			}
		}
		return status, nil

	default:
		if err := s.settings.SetPermissionGranted(true); err != nil {
			return status, err
		}
		return status, s.complete()
	}
}

func (s *Setup) complete() error {
	done, err := s.settings.IsInitialSetupComplete()
	if err != nil || done {
		return err
	}

	if err := s.settings.SetNotificationTime(s.defaultTime); err != nil {
		return err
	}
	userSet, err := s.settings.HasUserSetToggle()
	if err != nil {
		return err
	}
	if !userSet {
		if err := s.settings.SetToggleState(true); err != nil {
			return err
		}
	}
	on, err := s.settings.GetToggleState()
	if err != nil {
		return err
	}
	if on {
		if err := s.scheduler.ScheduleDaily(s.defaultTime); err != nil {
			return err
		}
	}
	logger.Info("Initial reminder setup complete", "time", s.defaultTime)
	return s.settings.SetInitialSetupComplete(true)
}

// StoredAuthorizer keeps the permission answer in settings and asks
// through prompt the first time.
type StoredAuthorizer struct {
	settings *settings.Manager
	prompt   func(ctx context.Context) (bool, error)

	once    sync.Once
	granted bool
	err     error
}

func NewStoredAuthorizer(settings *settings.Manager, prompt func(ctx context.Context) (bool, error)) *StoredAuthorizer {
	return &StoredAuthorizer{settings: settings, prompt: prompt}
}

func (a *StoredAuthorizer) Status() (PermissionStatus, error) {
	requested, err := a.settings.PermissionRequested()
	if err != nil || !requested {
		return PermissionNotDetermined, err
	}
	granted, err := a.settings.PermissionGranted()
	if err != nil {
		return PermissionNotDetermined, err
	}
	if granted {
		return PermissionAuthorized, nil
	}
	return PermissionDenied, nil
}

func (a *StoredAuthorizer) Request(ctx context.Context) (bool, error) {
	a.once.Do(func() {
		a.granted, a.err = a.prompt(ctx)
	})
	return a.granted, a.err
}
