package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LastLaunch records which game version and mod the CLI launched most
// recently, so `duke3dmm run` with no arguments can repeat it.
type LastLaunch struct {
	GameVersionID  string `yaml:"game_version_id,omitempty"`
	ModName        string `yaml:"mod_name,omitempty"`
	ModVersion     string `yaml:"mod_version,omitempty"`
	ModVersionType string `yaml:"mod_version_type,omitempty"`
}

// Settings holds the CLI's own global settings — paths and the most
// recently launched game version/mod. It deliberately does not own catalog
// or game-version contents (those load from the JSON/XML files described
// in C1/C3); this mirrors the fact that the CLI here persists only its own
// bookkeeping, not domain state a dedicated file format already owns.
type Settings struct {
	ModsDirectory   string     `yaml:"mods_directory"`
	MapsDirectory   string     `yaml:"maps_directory"`
	DOSBoxPath      string     `yaml:"dosbox_path"`
	DOSBoxArgs      string     `yaml:"dosbox_args"`
	NoColor         bool       `yaml:"no_color"`
	KeyMode         string     `yaml:"key_mode,omitempty"` // "vim" or "standard", for the TUI
	DownloadBaseURL string     `yaml:"download_base_url,omitempty"`
	LastLaunch      LastLaunch `yaml:"last_launch"`
}

// Load reads settings.yaml from configDir, returning defaults if it doesn't
// exist yet (spec §5 "readers must tolerate a transiently absent file").
func Load(configDir string) (*Settings, error) {
	cfg := &Settings{}

	path := filepath.Join(configDir, "settings.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading settings: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing settings: %w", err)
	}
	return cfg, nil
}

// Save writes settings.yaml to configDir, creating it if necessary.
func (c *Settings) Save(configDir string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling settings: %w", err)
	}

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	path := filepath.Join(configDir, "settings.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	return nil
}
