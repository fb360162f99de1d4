package ui

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"enbyscan/internal/config"
)

// TablePrefs stores persisted comparison table state.
type TablePrefs struct {
	SortColumn   string `json:"sort_column"`
	SortDesc     bool   `json:"sort_desc"`
	ErrorsOnly   bool   `json:"errors_only"`
	ActiveColumn string `json:"active_column"`
}

// UIPreferences stores persisted app preferences.
type UIPreferences struct {
	Comparison TablePrefs `json:"comparison"`
}

func defaultUIPreferences() UIPreferences {
	return UIPreferences{}
}

func prefsPath() (string, error) {
	dir, err := config.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "ui_prefs.json"), nil
}

func loadUIPreferences() UIPreferences {
	path, err := prefsPath()
	if err != nil {
		return defaultUIPreferences()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return defaultUIPreferences()
	}

	var prefs UIPreferences
	if err := json.Unmarshal(data, &prefs); err != nil {
		return defaultUIPreferences()
	}
	return prefs
}

func saveUIPreferences(prefs UIPreferences) error {
	path, err := prefsPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal prefs: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write prefs: %w", err)
	}
	return nil
}
