// Package config loads and validates the blog.toml site configuration.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/naoina/toml"
)

// FileName is the configuration file that marks a site root
const FileName = "blog.toml"

// Style selects one of the bundled stylesheets
type Style int

const (
	NoStyle Style = iota
	Modern
	Tech
)

var styleNames = [...]string{
	NoStyle: "",
	Modern:  "modern",
	Tech:    "tech",
}

func (s Style) String() string {
	if int(s) < len(styleNames) && int(s) >= 0 {
		return styleNames[s]
	}
	return fmt.Sprintf("Style(%d)", int(s))
}

// ParseStyle converts a style name from the config file. An empty name
// means no style.
func ParseStyle(name string) (Style, error) {
	for style, styleName := range styleNames {
		if styleName == name {
			return Style(style), nil
		}
	}
	return NoStyle, fmt.Errorf("unknown style '%s' (expected modern or tech)", name)
}

// Config is the whole site configuration. It is not modified after Load.
type Config struct {
	Site      Site      `toml:"site"`
	Menu      Menu      `toml:"menu"`
	Analytics Analytics `toml:"analytics"`
	Media     Media     `toml:"media"`
}

// Site holds the required [site] table
type Site struct {
	Name  string `toml:"name"`
	Icon  string `toml:"icon"`  // favicon path served at /icon
	Style string `toml:"style"` // modern or tech
}

// Menu holds parallel lists of menu entry names and links
type Menu struct {
	Names []string `toml:"names"`
	Links []string `toml:"links"`
}

// Analytics points at an HTML snippet, relative to the site root, that is
// pasted into every page head
type Analytics struct {
	Tag string `toml:"tag"`
}

// Media lists files and directories, relative to the site root, that are
// copied into the output unchanged
type Media struct {
	Include []string `toml:"include"`
}

// MenuItem is one resolved menu entry
type MenuItem struct {
	Name string
	Link string
}

// Load reads and validates the configuration in root
func Load(root string) (*Config, error) {
	path := filepath.Join(root, FileName)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads a configuration from r and validates it
func Decode(r io.Reader) (*Config, error) {
	var cfg Config
	if err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every field and reports all problems together
func (c *Config) Validate() error {
	var errs []error

	if c.Site.Name == "" {
		errs = append(errs, errors.New("site.name is required"))
	}
	if len(c.Menu.Names) != len(c.Menu.Links) {
		errs = append(errs, fmt.Errorf("menu has %d name(s) but %d link(s)",
			len(c.Menu.Names), len(c.Menu.Links)))
	}
	if _, err := ParseStyle(c.Site.Style); err != nil {
		errs = append(errs, fmt.Errorf("site.style: %w", err))
	}

	return errors.Join(errs...)
}

// SiteStyle returns the configured style, NoStyle when unset or invalid
func (c *Config) SiteStyle() Style {
	style, _ := ParseStyle(c.Site.Style)
	return style
}

func (c *Config) HasMenu() bool      { return len(c.Menu.Names) > 0 }
func (c *Config) HasAnalytics() bool { return c.Analytics.Tag != "" }
func (c *Config) HasIcon() bool      { return c.Site.Icon != "" }
func (c *Config) HasStyle() bool     { return c.SiteStyle() != NoStyle }

// MenuItems pairs menu names with their links in file order
func (c *Config) MenuItems() []MenuItem {
	items := make([]MenuItem, 0, len(c.Menu.Names))
	for i, name := range c.Menu.Names {
		if i >= len(c.Menu.Links) {
			break
		}
		items = append(items, MenuItem{Name: name, Link: c.Menu.Links[i]})
	}
	return items
}

// Template returns the blog.toml written for a new site
func Template(name string) string {
	return fmt.Sprintf(`[site]
name = %q
style = "modern"

[menu]
names = ["Home"]
links = ["/"]
`, name)
}
