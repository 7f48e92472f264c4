package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// LoadFile reads a project config file based on its extension.
// Supports: .yaml/.yml, .json, .toml. Keys that are absent keep their
// default values.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("empty config path")
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, cfg)
	case ".json":
		err = json.Unmarshal(b, cfg)
	case ".toml":
		err = toml.Unmarshal(b, cfg)
	default:
		return nil, fmt.Errorf("unsupported config extension: %s", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}
