package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/mitchellh/go-homedir"
)

// Settings holds the user-tunable options of a session.
// Values come from the TOML settings file, then environment variables, then CLI flags.
type Settings struct {
	// Language selects the reply catalog (ISO 639-1).
	Language string `toml:"language" env:"GO_ASSISTANT_LANGUAGE"`

	// ServePort enables the local feed server when non-empty.
	ServePort string `toml:"serve_port" env:"GO_ASSISTANT_SERVE_PORT"`

	// ReminderTrigger is an ISO8601 duration attached as an alarm to calendar events (e.g. "-P1D").
	ReminderTrigger string `toml:"reminder_trigger" env:"GO_ASSISTANT_REMINDER"`

	// WebUser is the HTTP Basic Auth user for remote vCard imports.
	// Its password lives in the system keyring.
	WebUser string `toml:"web_user" env:"GO_ASSISTANT_WEB_USER"`
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Language: DefaultLanguage,
	}
}

// DefaultSettingsPath returns the platform-specific settings file location.
func DefaultSettingsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrConfigDir, err)
	}
	return filepath.Join(dir, AppID, SettingsFileName), nil
}

// LoadSettings reads the settings file at path and applies environment overrides.
// A missing file is not an error: defaults are used instead.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()

	if path != "" {
		expanded, err := ExpandPath(path)
		if err != nil {
			return s, err
		}

		if _, err := toml.DecodeFile(expanded, &s); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return s, fmt.Errorf("%s: %w", ErrSettingsLoad, err)
			}
			slog.Debug(MsgSettingsNone,
				LogKeyComponent, CompSettings,
				LogKeyFile, expanded)
		}
	}

	if err := env.Parse(&s); err != nil {
		return s, fmt.Errorf("%s: %w", ErrSettingsEnv, err)
	}

	if s.Language == "" {
		s.Language = DefaultLanguage
	}
	return s, nil
}

// ExpandPath resolves a leading "~" to the user's home directory.
func ExpandPath(path string) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrPathExpand, err)
	}
	return expanded, nil
}
