package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/filingwatch/internal/core/domain"
)

// settingsFile is the on-disk TOML schema. Durations are strings in Go
// duration syntax ("15m", "6h").
type settingsFile struct {
	Identity    string       `toml:"identity"`
	FormTypes   []string     `toml:"form_types"`
	RateLimit   float64      `toml:"rate_limit"`
	RetryMax    int          `toml:"retry_max"`
	Workers     int          `toml:"workers"`
	RunTimeout  string       `toml:"run_timeout"`
	DataDir     string       `toml:"data_dir"`
	MappingFile string       `toml:"mapping_file"`
	Schedule    scheduleFile `toml:"schedule"`
}

type scheduleFile struct {
	Enabled  bool   `toml:"enabled"`
	Interval string `toml:"interval"`
}

// DefaultPath returns the default settings file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".filingwatch", "config.toml"), nil
}

// Load reads settings from path, layering file values over defaults.
// A missing file returns plain defaults: first-run users configure
// through `filingwatch config` before anything touches the network.
func Load(path string) (domain.Settings, error) {
	settings := domain.DefaultSettings()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return settings, nil
	}
	if err != nil {
		return settings, fmt.Errorf("reading settings: %w", err)
	}

	var sf settingsFile
	if err := toml.Unmarshal(data, &sf); err != nil {
		return settings, fmt.Errorf("parsing settings: %w", err)
	}

	if sf.Identity != "" {
		settings.Identity = sf.Identity
	}
	if len(sf.FormTypes) > 0 {
		settings.FormTypes = sf.FormTypes
	}
	if sf.RateLimit > 0 {
		settings.RateLimit = sf.RateLimit
	}
	if sf.RetryMax > 0 {
		settings.RetryMax = sf.RetryMax
	}
	if sf.Workers > 0 {
		settings.Workers = sf.Workers
	}
	if sf.DataDir != "" {
		settings.DataDir = sf.DataDir
	}
	if sf.MappingFile != "" {
		settings.MappingFile = sf.MappingFile
	}
	if sf.RunTimeout != "" {
		d, err := time.ParseDuration(sf.RunTimeout)
		if err != nil {
			return settings, fmt.Errorf("parsing run_timeout: %w", err)
		}
		settings.RunTimeout = d
	}
	settings.Schedule.Enabled = sf.Schedule.Enabled
	if sf.Schedule.Interval != "" {
		d, err := time.ParseDuration(sf.Schedule.Interval)
		if err != nil {
			return settings, fmt.Errorf("parsing schedule.interval: %w", err)
		}
		settings.Schedule.Interval = d
	}

	return settings, nil
}

// Save writes settings to path, creating parent directories as needed.
func Save(path string, settings domain.Settings) error {
	sf := settingsFile{
		Identity:    settings.Identity,
		FormTypes:   settings.FormTypes,
		RateLimit:   settings.RateLimit,
		RetryMax:    settings.RetryMax,
		Workers:     settings.Workers,
		RunTimeout:  settings.RunTimeout.String(),
		DataDir:     settings.DataDir,
		MappingFile: settings.MappingFile,
		Schedule: scheduleFile{
			Enabled:  settings.Schedule.Enabled,
			Interval: settings.Schedule.Interval.String(),
		},
	}

	data, err := toml.Marshal(sf)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	return nil
}
