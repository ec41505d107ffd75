package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"productivitytimer/internal/core/model"
)

const preferencesFileName = "window.yaml"

type yamlPreferences struct {
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

// LoadWindowPreferences reads window preferences for appName from the user
// config dir. If the file does not exist, defaults are returned.
func LoadWindowPreferences(appName string) (model.WindowPreferences, error) {
	path, err := ResolvePreferencesPath(appName)
	if err != nil {
		return model.DefaultWindowPreferences(), err
	}
	return LoadWindowPreferencesFrom(path)
}

// SaveWindowPreferences writes window preferences for appName.
func SaveWindowPreferences(appName string, prefs model.WindowPreferences) error {
	path, err := ResolvePreferencesPath(appName)
	if err != nil {
		return err
	}
	return SaveWindowPreferencesTo(path, prefs)
}

// LoadWindowPreferencesFrom reads window preferences from path.
func LoadWindowPreferencesFrom(path string) (model.WindowPreferences, error) {
	prefs := model.DefaultWindowPreferences()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return prefs, nil
		}
		return prefs, fmt.Errorf("read preferences file: %w", err)
	}

	var fileData yamlPreferences
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return prefs, fmt.Errorf("parse preferences yaml: %w", err)
	}

	applyYamlPreferences(&prefs, fileData)
	return prefs, nil
}

// SaveWindowPreferencesTo writes window preferences to path.
func SaveWindowPreferencesTo(path string, prefs model.WindowPreferences) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	serialized, err := yaml.Marshal(yamlPreferences{
		Width:  prefs.Width,
		Height: prefs.Height,
	})
	if err != nil {
		return fmt.Errorf("marshal preferences yaml: %w", err)
	}

	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write preferences file: %w", err)
	}

	return nil
}

// ResolvePreferencesPath returns the preferences file location for appName.
func ResolvePreferencesPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, preferencesFileName), nil
}

func applyYamlPreferences(prefs *model.WindowPreferences, fileData yamlPreferences) {
	if fileData.Width >= model.MinWindowWidth {
		prefs.Width = fileData.Width
	}
	if fileData.Height >= model.MinWindowHeight {
		prefs.Height = fileData.Height
	}
}
