package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var ErrNoConfig = errors.New("no config selected")

const (
	appName      = "landingkit"
	defaultLabel = "Default"
	profileExt   = ".yaml"
)

func ConfigRoot() string {
	// explicit override, mostly for tests and CI
	if dir := os.Getenv("LANDINGKIT_CONFIG_DIR"); dir != "" {
		return dir
	}

	// Windows
	if appdata := os.Getenv("APPDATA"); appdata != "" {
		return filepath.Join(appdata, appName)
	}

	// Linux/macOS XDG
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}

	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", appName)
}

func ConfigsDir() string {
	return filepath.Join(ConfigRoot(), "configs")
}

func CurrentLabelFile() string {
	return filepath.Join(ConfigRoot(), "current_config")
}

func profilePath(label string) string {
	return filepath.Join(ConfigsDir(), label+profileExt)
}

func checkLabel(label, what string) error {
	label = strings.TrimSpace(label)
	if label == "" {
		return fmt.Errorf("%s cannot be empty", what)
	}
	if strings.ContainsAny(label, `/\`) {
		return fmt.Errorf("%s %q must not contain path separators", what, label)
	}
	return nil
}

func ensureDirs() error {
	return os.MkdirAll(ConfigsDir(), 0755)
}

func setCurrent(label string) error {
	return os.WriteFile(CurrentLabelFile(), []byte(label), 0644)
}

func CurrentLabel() (string, error) {
	if err := ensureDirs(); err != nil {
		return "", err
	}

	b, err := os.ReadFile(CurrentLabelFile())
	if os.IsNotExist(err) {
		return "", ErrNoConfig
	}
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(b)), nil
}

func ActiveConfigPath() (string, error) {
	label, err := CurrentLabel()
	if err != nil || label == "" {
		return "", ErrNoConfig
	}

	return profilePath(label), nil
}

// ConfigPathByLabel returns the path of an existing profile.
func ConfigPathByLabel(label string) (string, error) {
	if err := checkLabel(label, "label"); err != nil {
		return "", err
	}

	path := profilePath(label)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("config %q does not exist", label)
	}
	return path, nil
}

type ConfigInfo struct {
	Label  string
	Path   string
	Active bool
}

func ListConfigs() ([]ConfigInfo, error) {
	if err := ensureDirs(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(ConfigsDir())
	if err != nil {
		return nil, err
	}

	activeLabel, _ := CurrentLabel()
	var out []ConfigInfo

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, profileExt) {
			continue
		}

		label := strings.TrimSuffix(name, profileExt)
		out = append(out, ConfigInfo{
			Label:  label,
			Path:   filepath.Join(ConfigsDir(), name),
			Active: label == activeLabel,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out, nil
}

func SwitchConfig(label string) error {
	if err := checkLabel(label, "label"); err != nil {
		return err
	}
	if err := ensureDirs(); err != nil {
		return err
	}

	if _, err := os.Stat(profilePath(label)); err != nil {
		return fmt.Errorf("config %q does not exist", label)
	}

	return setCurrent(label)
}

// AddConfig imports an existing YAML/JSON/TOML file as a new profile. The
// file is re-encoded as YAML so every profile has the same shape.
func AddConfig(label, srcPath string) error {
	if err := checkLabel(label, "label"); err != nil {
		return err
	}
	if err := ensureDirs(); err != nil {
		return err
	}

	dst := profilePath(label)
	if _, err := os.Stat(dst); err == nil {
		return fmt.Errorf("config %q already exists", label)
	}

	cfg, err := LoadFile(srcPath)
	if err != nil {
		return err
	}

	return SaveYAML(cfg, dst)
}

func CreateEmptyConfig(label string) (string, error) {
	if err := checkLabel(label, "label"); err != nil {
		return "", err
	}
	if err := ensureDirs(); err != nil {
		return "", err
	}

	path := profilePath(label)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("config %q already exists", label)
	}

	if err := SaveYAML(DefaultConfig(), path); err != nil {
		return "", err
	}

	return path, nil
}

func RenameConfig(oldLabel, newLabel string) error {
	if err := checkLabel(newLabel, "new label"); err != nil {
		return err
	}
	if err := ensureDirs(); err != nil {
		return err
	}

	oldPath, newPath := profilePath(oldLabel), profilePath(newLabel)

	if _, err := os.Stat(oldPath); err != nil {
		return fmt.Errorf("config %q does not exist", oldLabel)
	}
	if _, err := os.Stat(newPath); err == nil {
		return fmt.Errorf("config %q already exists", newLabel)
	}

	if err := os.Rename(oldPath, newPath); err != nil {
		return err
	}

	if active, _ := CurrentLabel(); active == oldLabel {
		return setCurrent(newLabel)
	}

	return nil
}

// RemoveConfig deletes a profile. Removing the active profile falls back to
// Default; the Default profile itself is never removed.
func RemoveConfig(label string) (switched bool, err error) {
	if err := checkLabel(label, "label"); err != nil {
		return false, err
	}
	if label == defaultLabel {
		return false, errors.New("cannot remove the Default config")
	}
	if err := ensureDirs(); err != nil {
		return false, err
	}

	path := profilePath(label)
	if _, err := os.Stat(path); err != nil {
		return false, fmt.Errorf("config %q does not exist", label)
	}

	if active, _ := CurrentLabel(); active == label {
		if err := SwitchConfig(defaultLabel); err != nil {
			return false, fmt.Errorf("failed switching to Default: %w", err)
		}
		switched = true
	}

	return switched, os.Remove(path)
}

// InitDefaultConfig writes Default.yaml if missing and makes it active. An
// existing file is kept and reported with os.ErrExist.
func InitDefaultConfig() (string, error) {
	if err := ensureDirs(); err != nil {
		return "", err
	}

	defPath := profilePath(defaultLabel)

	if _, err := os.Stat(defPath); err == nil {
		_ = setCurrent(defaultLabel)
		return defPath, os.ErrExist
	}

	if err := SaveYAML(DefaultConfig(), defPath); err != nil {
		return "", err
	}

	_ = setCurrent(defaultLabel)
	return defPath, nil
}
