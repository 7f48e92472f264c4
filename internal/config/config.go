package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ProjectDir string `yaml:"project_dir" json:"project_dir" toml:"project_dir"`
	HTMLFile   string `yaml:"html_file" json:"html_file" toml:"html_file"`
	ImagesDir  string `yaml:"images_dir" json:"images_dir" toml:"images_dir"`
	Manifest   string `yaml:"manifest" json:"manifest" toml:"manifest"`

	Categories        []string `yaml:"categories" json:"categories" toml:"categories"`
	ReprocessCategory string   `yaml:"reprocess_category" json:"reprocess_category" toml:"reprocess_category"`
	PlaceholderDir    string   `yaml:"placeholder_dir" json:"placeholder_dir" toml:"placeholder_dir"`
	IconsDir          string   `yaml:"icons_dir" json:"icons_dir" toml:"icons_dir"`

	Widths      []int   `yaml:"widths" json:"widths" toml:"widths"`
	WebPQuality int     `yaml:"webp_quality" json:"webp_quality" toml:"webp_quality"`
	JPEGQuality int     `yaml:"jpeg_quality" json:"jpeg_quality" toml:"jpeg_quality"`
	LQIPSize    int     `yaml:"lqip_size" json:"lqip_size" toml:"lqip_size"`
	LQIPQuality int     `yaml:"lqip_quality" json:"lqip_quality" toml:"lqip_quality"`
	LQIPBlur    float64 `yaml:"lqip_blur" json:"lqip_blur" toml:"lqip_blur"`

	// CWebPBin / ResizeBin name the external tools. An empty ResizeBin
	// selects the in-process JPEG resizer.
	CWebPBin  string `yaml:"cwebp_bin" json:"cwebp_bin" toml:"cwebp_bin"`
	ResizeBin string `yaml:"resize_bin" json:"resize_bin" toml:"resize_bin"`
	Workers   int    `yaml:"workers" json:"workers" toml:"workers"`

	BaseURL        string `yaml:"base_url" json:"base_url" toml:"base_url"`
	Headless       bool   `yaml:"headless" json:"headless" toml:"headless"`
	ViewportWidth  int    `yaml:"viewport_width" json:"viewport_width" toml:"viewport_width"`
	ViewportHeight int    `yaml:"viewport_height" json:"viewport_height" toml:"viewport_height"`
	BrowserBin     string `yaml:"browser_bin" json:"browser_bin" toml:"browser_bin"`
	FontPath       string `yaml:"font_path" json:"font_path" toml:"font_path"`

	Cookie     string `yaml:"cookie" json:"cookie" toml:"cookie"`
	CookieFile string `yaml:"cookie_file" json:"cookie_file" toml:"cookie_file"`
	UserAgent  string `yaml:"user_agent" json:"user_agent" toml:"user_agent"`

	Strict bool `yaml:"strict" json:"strict" toml:"strict"`
	Debug  bool `yaml:"debug" json:"debug" toml:"debug"`
}

type Options struct {
	IgnoreConfig bool
	// ConfigFile bypasses the profile store and loads one file directly.
	ConfigFile string

	Debug       bool
	Strict      bool
	Headful     bool
	ProjectDir  string
	HTMLFile    string
	Categories  []string
	Widths      []int
	WebPQuality int
	JPEGQuality int
	CWebPBin    string
	ResizeBin   string
	Workers     int
	BaseURL     string
	FontPath    string
	Cookie      string
	CookieFile  string
	UserAgent   string
}

var (
	defaultCategories = []string{"product", "testimonials", "worn-by-favorites", "order-bump"}
	defaultWidths     = []int{400, 600, 800, 1200}
)

func DefaultConfig() *Config {
	return &Config{
		ProjectDir:        ".",
		HTMLFile:          "index.html",
		ImagesDir:         "images",
		Manifest:          filepath.Join("images", "manifest.json"),
		Categories:        append([]string(nil), defaultCategories...),
		ReprocessCategory: "worn-by-favorites",
		PlaceholderDir:    filepath.Join("images", "order-bump"),
		IconsDir:          filepath.Join("images", "icons"),
		Widths:            append([]int(nil), defaultWidths...),
		WebPQuality:       85,
		JPEGQuality:       85,
		LQIPSize:          20,
		LQIPQuality:       30,
		LQIPBlur:          2,
		CWebPBin:          "cwebp",
		ResizeBin:         "sips",
		Workers:           1,
		BaseURL:           "http://localhost:8080",
		Headless:          true,
		ViewportWidth:     1920,
		ViewportHeight:    1080,
	}
}

func SaveYAML(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// loadYAML decodes path on top of the defaults, so a profile only needs the
// keys it changes.
func loadYAML(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c := DefaultConfig()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, err
	}

	return c, nil
}

// LoadMerged resolves defaults, then the active profile (or --config file),
// then CLI options. The second return value describes where the config came
// from.
func LoadMerged(opts Options) (*Config, string, error) {
	var (
		cfg  *Config
		used string
	)

	switch {
	case opts.ConfigFile != "":
		c, err := LoadFile(opts.ConfigFile)
		if err != nil {
			return nil, "", err
		}
		cfg, used = c, opts.ConfigFile

	case opts.IgnoreConfig:
		cfg, used = DefaultConfig(), "(ignored config)"

	default:
		activePath, err := ActiveConfigPath()
		if err == ErrNoConfig || activePath == "" {
			cfg = DefaultConfig()
			used = "(default config in memory)\nRun `landingkit config init` to create an actual config\n"
			break
		}
		if err != nil {
			return nil, "", err
		}

		c, err := loadYAML(activePath)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config %s: %w", activePath, err)
		}
		cfg, used = c, activePath
	}

	mergeConfig(cfg, opts)
	normalizeDefaults(cfg)

	return cfg, used, nil
}

func mergeConfig(c *Config, o Options) {
	if o.Debug {
		c.Debug = true
	}
	if o.Strict {
		c.Strict = true
	}
	if o.Headful {
		c.Headless = false
	}
	if o.ProjectDir != "" {
		c.ProjectDir = o.ProjectDir
	}
	if o.HTMLFile != "" {
		c.HTMLFile = o.HTMLFile
	}
	if len(o.Categories) > 0 {
		c.Categories = append([]string(nil), o.Categories...)
	}
	if len(o.Widths) > 0 {
		c.Widths = append([]int(nil), o.Widths...)
	}
	if o.WebPQuality != 0 {
		c.WebPQuality = o.WebPQuality
	}
	if o.JPEGQuality != 0 {
		c.JPEGQuality = o.JPEGQuality
	}
	if o.CWebPBin != "" {
		c.CWebPBin = o.CWebPBin
	}
	if o.ResizeBin != "" {
		c.ResizeBin = o.ResizeBin
	}
	if o.Workers != 0 {
		c.Workers = o.Workers
	}
	if o.BaseURL != "" {
		c.BaseURL = o.BaseURL
	}
	if o.FontPath != "" {
		c.FontPath = o.FontPath
	}
	if o.Cookie != "" {
		c.Cookie = o.Cookie
	}
	if o.CookieFile != "" {
		c.CookieFile = o.CookieFile
	}
	if o.UserAgent != "" {
		c.UserAgent = o.UserAgent
	}
}

func normalizeDefaults(c *Config) {
	def := DefaultConfig()

	if c.ProjectDir == "" {
		c.ProjectDir = def.ProjectDir
	}
	if c.HTMLFile == "" {
		c.HTMLFile = def.HTMLFile
	}
	if c.ImagesDir == "" {
		c.ImagesDir = def.ImagesDir
	}
	if c.Manifest == "" {
		c.Manifest = filepath.Join(c.ImagesDir, "manifest.json")
	}
	if len(c.Categories) == 0 {
		c.Categories = def.Categories
	}
	if c.ReprocessCategory == "" {
		c.ReprocessCategory = def.ReprocessCategory
	}
	if c.PlaceholderDir == "" {
		c.PlaceholderDir = def.PlaceholderDir
	}
	if c.IconsDir == "" {
		c.IconsDir = def.IconsDir
	}

	c.Widths = normalizeWidths(c.Widths)
	if len(c.Widths) == 0 {
		c.Widths = def.Widths
	}

	if c.WebPQuality <= 0 || c.WebPQuality > 100 {
		c.WebPQuality = def.WebPQuality
	}
	if c.JPEGQuality <= 0 || c.JPEGQuality > 100 {
		c.JPEGQuality = def.JPEGQuality
	}
	if c.LQIPSize <= 0 {
		c.LQIPSize = def.LQIPSize
	}
	if c.LQIPQuality <= 0 || c.LQIPQuality > 100 {
		c.LQIPQuality = def.LQIPQuality
	}
	if c.LQIPBlur < 0 {
		c.LQIPBlur = 0
	}
	if c.CWebPBin == "" {
		c.CWebPBin = def.CWebPBin
	}
	if c.Workers < 1 {
		c.Workers = 1
	}
	if c.BaseURL == "" {
		c.BaseURL = def.BaseURL
	}
	if c.ViewportWidth <= 0 {
		c.ViewportWidth = def.ViewportWidth
	}
	if c.ViewportHeight <= 0 {
		c.ViewportHeight = def.ViewportHeight
	}
}

// normalizeWidths drops non-positive and duplicate widths and sorts the rest.
func normalizeWidths(in []int) []int {
	seen := make(map[int]bool, len(in))
	out := make([]int, 0, len(in))
	for _, w := range in {
		if w <= 0 || seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	sort.Ints(out)
	return out
}

// Resolve returns p relative to the project directory unless it is already
// absolute.
func (c *Config) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.ProjectDir, p)
}

func (c *Config) HTMLPath() string     { return c.Resolve(c.HTMLFile) }
func (c *Config) ManifestPath() string { return c.Resolve(c.Manifest) }
func (c *Config) ImagesPath() string   { return c.Resolve(c.ImagesDir) }

// CategoryDir is where source images of a category live and where their
// variants are written.
func (c *Config) CategoryDir(category string) string {
	return filepath.Join(c.ImagesPath(), category)
}

func (c *Config) Print() {
	c.Fprint(os.Stdout)
}

func (c *Config) Fprint(w io.Writer) {
	p := func(format string, args ...any) { _, _ = fmt.Fprintf(w, format, args...) }

	p(" -project_dir: %s\n", c.ProjectDir)
	p(" -html_file: %s\n", c.HTMLFile)
	p(" -images_dir: %s\n", c.ImagesDir)
	p(" -manifest: %s\n", c.Manifest)
	p(" -categories: %s\n", strings.Join(c.Categories, ", "))
	p(" -reprocess_category: %s\n", c.ReprocessCategory)

	widths := make([]string, len(c.Widths))
	for i, w := range c.Widths {
		widths[i] = fmt.Sprint(w)
	}
	p(" -widths: %s\n", strings.Join(widths, ", "))
	p(" -webp_quality: %d\n", c.WebPQuality)
	p(" -jpeg_quality: %d\n", c.JPEGQuality)
	p(" -lqip: %dpx q%d blur %.1f\n", c.LQIPSize, c.LQIPQuality, c.LQIPBlur)
	p(" -cwebp_bin: %s\n", c.CWebPBin)
	if c.ResizeBin != "" {
		p(" -resize_bin: %s\n", c.ResizeBin)
	} else {
		p(" -resize_bin: (built-in)\n")
	}
	p(" -workers: %d\n", c.Workers)
	p(" -base_url: %s\n", c.BaseURL)
	p(" -headless: %t\n", c.Headless)
	p(" -viewport: %dx%d\n", c.ViewportWidth, c.ViewportHeight)
	if c.BrowserBin != "" {
		p(" -browser_bin: %s\n", c.BrowserBin)
	}
	if c.FontPath != "" {
		p(" -font_path: %s\n", c.FontPath)
	}
	if c.CookieFile != "" {
		p(" -cookie_file: %s\n", c.CookieFile)
	}
	if c.UserAgent != "" {
		p(" -user_agent: %s\n", c.UserAgent)
	}
	if c.Strict {
		p(" -strict: %t\n", c.Strict)
	}
	if c.Debug {
		p(" -debug: %t\n", c.Debug)
	}
}
