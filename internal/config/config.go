package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Language is one tracked Wikipedia language edition.
type Language struct {
	Code     string `yaml:"code"`     // e.g. "en"
	Name     string `yaml:"name"`     // e.g. "English"
	Category string `yaml:"category"` // tracked category on that wiki
}

// Project returns the wiki database name, e.g. "enwiki".
func (l Language) Project() string {
	return l.Code + "wiki"
}

// Config holds the fetch and report settings. Every field has a default, so
// running without a config file works.
type Config struct {
	Languages      []Language `yaml:"languages"`
	PetScanURL     string     `yaml:"petscan_url"`
	SPARQLEndpoint string     `yaml:"sparql_endpoint"`
	Depth          int        `yaml:"depth"` // category tree depth for PetScan
	PetScanTimeout Duration   `yaml:"petscan_timeout"`
	SPARQLTimeout  Duration   `yaml:"sparql_timeout"`
}

// Default returns the built-in configuration, matching the four language
// editions the report originally tracked.
func Default() Config {
	return Config{
		Languages: []Language{
			{Code: "en", Name: "English", Category: "Non-binary_people"},
			{Code: "de", Name: "German", Category: "Nichtbinäre_Person"},
			{Code: "fr", Name: "French", Category: "Personnalité_non_binaire"},
			{Code: "es", Name: "Spanish", Category: "Personas no binarias"},
		},
		PetScanURL:     "https://petscan.wmflabs.org/",
		SPARQLEndpoint: "https://query.wikidata.org/sparql",
		Depth:          10,
		PetScanTimeout: Duration(180 * time.Second),
		SPARQLTimeout:  Duration(600 * time.Second),
	}
}

// Load reads a YAML config file, layering it over the defaults. A missing
// file is not an error: the defaults are returned as-is.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if len(c.Languages) == 0 {
		return fmt.Errorf("no languages configured")
	}
	for i, l := range c.Languages {
		if l.Code == "" {
			return fmt.Errorf("language %d has no code", i)
		}
		if l.Category == "" {
			return fmt.Errorf("language %q has no category", l.Code)
		}
	}
	if c.Depth < 0 {
		return fmt.Errorf("depth must not be negative")
	}
	return nil
}

// Dir returns the per-user data directory (~/.enbyscan), creating it if
// needed.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	dir := filepath.Join(home, ".enbyscan")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	return dir, nil
}

// Duration is a time.Duration that unmarshals from YAML strings like "90s".
type Duration time.Duration

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}
