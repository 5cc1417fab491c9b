package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var DefaultConfigYAML []byte

// Config holds every knob the generator reads: site identity, input
// and output locations, the category table, and homepage layout.
type Config struct {
	Site       Site       `yaml:"site"`
	Paths      Paths      `yaml:"paths"`
	Categories []Category `yaml:"categories"`
	Homepage   Homepage   `yaml:"homepage"`
}

type Site struct {
	Name        string `yaml:"name"`
	URL         string `yaml:"url"`
	Description string `yaml:"description"`
	Language    string `yaml:"language"`
}

type Paths struct {
	Root      string `yaml:"root"`       // site root; all outputs land here
	DraftsDir string `yaml:"drafts_dir"` // relative to root
	Store     string `yaml:"store"`      // article index, relative to root
	Template  string `yaml:"template"`   // article template, relative to root
	Homepage  string `yaml:"homepage"`   // marker-managed homepage, relative to root
}

// Category is a static site section. An article belongs to it when its
// tags contain Tag exactly. List order fixes emission order in the
// sitemap and on disk.
type Category struct {
	Tag   string `yaml:"tag"`
	File  string `yaml:"file"`
	Title string `yaml:"title"`
	Desc  string `yaml:"desc"`
}

type Homepage struct {
	MaxCards int `yaml:"max_cards"`
}

// ResolveConfigPath finds the config file following priority:
// explicit path > ./chronicler.yaml > "" (embedded defaults).
func ResolveConfigPath(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	cwdConfig := "chronicler.yaml"
	if _, err := os.Stat(cwdConfig); err == nil {
		return cwdConfig, nil
	}

	return "", nil
}

// Load reads and parses a config YAML file. An empty path yields the
// embedded defaults, so the tool runs with zero configuration.
func Load(path string) (*Config, error) {
	if path == "" {
		return parse(nil)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return parse(data)
}

// parse parses YAML bytes into a Config layered over the embedded
// defaults. A user category list replaces the default list wholesale.
func parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(DefaultConfigYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing default config: %w", err)
	}

	if len(data) > 0 {
		override := &Config{}
		if err := yaml.Unmarshal(data, override); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
		if override.Categories != nil {
			cfg.Categories = nil
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	if cfg.Homepage.MaxCards <= 0 {
		cfg.Homepage.MaxCards = 6
	}
	if cfg.Paths.Root == "" {
		cfg.Paths.Root = "."
	}
	return cfg, nil
}

// RootJoin resolves a config-relative path against the site root.
func (c *Config) RootJoin(rel string) string {
	return filepath.Join(c.Paths.Root, rel)
}

// StorePath is the location of the article index document.
func (c *Config) StorePath() string { return c.RootJoin(c.Paths.Store) }

// DraftsPath is the location of the drafts directory.
func (c *Config) DraftsPath() string { return c.RootJoin(c.Paths.DraftsDir) }

// TemplatePath is the location of the article template.
func (c *Config) TemplatePath() string { return c.RootJoin(c.Paths.Template) }

// HomepagePath is the location of the marker-managed homepage.
func (c *Config) HomepagePath() string { return c.RootJoin(c.Paths.Homepage) }

// ArticleURL builds the canonical URL for a slug.
func (c *Config) ArticleURL(slug string) string {
	return c.Site.URL + "/" + slug
}
