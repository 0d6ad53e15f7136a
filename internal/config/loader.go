package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// For mocking in tests
var osUserHomeDir = os.UserHomeDir
var osGetwd = os.Getwd

const (
	userConfigDir    = ".config/dolphinex"
	projectConfigDir = ".dolphinex"
	configFileName   = "config.yaml"
)

// ParseDescriptor decodes the JSON run descriptor. Empty input or
// malformed JSON is an error; validation of the content (such as a missing
// selected canister) is left to the harness.
func ParseDescriptor(data []byte) (Descriptor, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Descriptor{}, fmt.Errorf("descriptor is empty")
	}
	var d Descriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return Descriptor{}, fmt.Errorf("invalid descriptor JSON: %w", err)
	}
	return d, nil
}

// LoadSettings loads harness settings by layering default, user, and
// project files. Missing files are fine; unreadable paths are warned about
// and skipped, a present-but-malformed file is an error.
func LoadSettings() (Settings, error) {
	settings := DefaultSettings()

	userPath, err := getUserConfigPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not determine user config path: %v\n", err)
	} else {
		if _, err := os.Stat(userPath); !os.IsNotExist(err) {
			userSettings, err := loadSettingsFromFile(userPath)
			if err != nil {
				return Settings{}, fmt.Errorf("error loading user config from %s: %w", userPath, err)
			}
			settings = mergeSettings(settings, userSettings)
		}
	}

	projectPath, err := getProjectConfigPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not determine project config path: %v\n", err)
	} else {
		if _, err := os.Stat(projectPath); !os.IsNotExist(err) {
			projectSettings, err := loadSettingsFromFile(projectPath)
			if err != nil {
				return Settings{}, fmt.Errorf("error loading project config from %s: %w", projectPath, err)
			}
			settings = mergeSettings(settings, projectSettings)
		}
	}

	return settings, nil
}

var getUserConfigPath = func() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir, configFileName), nil
}

var getProjectConfigPath = func() (string, error) {
	wd, err := osGetwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, projectConfigDir, configFileName), nil
}

// loadSettingsFromFile loads Settings from a YAML file.
func loadSettingsFromFile(filePath string) (Settings, error) {
	var settings Settings
	data, err := os.ReadFile(filePath)
	if err != nil {
		return Settings{}, err
	}
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

// mergeSettings merges 'overlay' into 'base', overlay winning field by
// field. Template vars merge by key.
func mergeSettings(base, overlay Settings) Settings {
	merged := base

	if overlay.DfxBinary != "" {
		merged.DfxBinary = overlay.DfxBinary
	}
	if overlay.AdminIdentity != "" {
		merged.AdminIdentity = overlay.AdminIdentity
	}
	if overlay.ArgsDir != "" {
		merged.ArgsDir = overlay.ArgsDir
	}
	if len(overlay.TemplateVars) > 0 {
		// Fresh map so the merge never writes into base's.
		merged.TemplateVars = make(map[string]string, len(base.TemplateVars)+len(overlay.TemplateVars))
		for k, v := range base.TemplateVars {
			merged.TemplateVars[k] = v
		}
		for k, v := range overlay.TemplateVars {
			merged.TemplateVars[k] = v
		}
	}

	return merged
}
