// Package config reads the YAML (or JSON) file describing named charts and the
// defaults used by the command line tool and the preview server.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
	"time"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-chartload/pkg/chart"
)

// DefaultTimeout bounds chart fetches when the file sets no timeout.
const DefaultTimeout = 30 * time.Second

// DefaultContainer is the mount point id used when a chart names none.
const DefaultContainer = "chartContainer"

// Config is the parsed configuration file.
type Config struct {
	Timeout   time.Duration
	Renderer  string
	ScriptURL string
	Messages  Messages
	Theme     Theme
	Charts    []Chart

	byName map[string]int
}

// Chart is a named chart endpoint.
type Chart struct {
	Name      string `yaml:"name"`
	Title     string `yaml:"title,omitempty"`
	URL       string `yaml:"url"`
	Params    string `yaml:"params,omitempty"`
	Container string `yaml:"container,omitempty"`
	Renderer  string `yaml:"renderer,omitempty"`
}

// Messages overrides the user-facing failure texts.
type Messages struct {
	Failure   string `yaml:"failure,omitempty"`
	Exception string `yaml:"exception,omitempty"`
}

// Theme selects a go-theme configuration for HTML renderers.
type Theme struct {
	Name    string            `yaml:"name,omitempty"`
	Variant string            `yaml:"variant,omitempty"`
	Tokens  map[string]string `yaml:"tokens,omitempty"`
	CSSVars map[string]string `yaml:"css_vars,omitempty"`
	Assets  string            `yaml:"assets,omitempty"`
}

type fileConfig struct {
	Timeout   string   `yaml:"timeout"`
	Renderer  string   `yaml:"renderer"`
	ScriptURL string   `yaml:"script_url"`
	Messages  Messages `yaml:"messages"`
	Theme     Theme    `yaml:"theme"`
	Charts    []Chart  `yaml:"charts"`
}

// Load reads and parses the file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// LoadFS reads and parses name from fsys.
func LoadFS(fsys fs.FS, name string) (*Config, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", name, err)
	}
	return Parse(data)
}

// Parse decodes and validates configuration data. JSON input is accepted
// because it is valid YAML.
func Parse(data []byte) (*Config, error) {
	var raw fileConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}

	cfg := &Config{
		Timeout:   DefaultTimeout,
		Renderer:  strings.TrimSpace(raw.Renderer),
		ScriptURL: strings.TrimSpace(raw.ScriptURL),
		Messages:  raw.Messages,
		Theme:     raw.Theme,
		byName:    make(map[string]int, len(raw.Charts)),
	}

	if timeout := strings.TrimSpace(raw.Timeout); timeout != "" {
		parsed, err := time.ParseDuration(timeout)
		if err != nil {
			return nil, fmt.Errorf("config: invalid timeout %q: %w", timeout, err)
		}
		if parsed < 0 {
			return nil, fmt.Errorf("config: timeout must not be negative")
		}
		cfg.Timeout = parsed
	}

	var errs []error
	for i, c := range raw.Charts {
		c.Name = strings.TrimSpace(c.Name)
		c.URL = strings.TrimSpace(c.URL)
		c.Container = strings.TrimSpace(c.Container)
		if c.Container == "" {
			c.Container = DefaultContainer
		}

		switch {
		case c.Name == "":
			errs = append(errs, fmt.Errorf("config: chart #%d has no name", i+1))
			continue
		case c.URL == "":
			errs = append(errs, fmt.Errorf("config: chart %q has no url", c.Name))
			continue
		}
		if _, exists := cfg.byName[c.Name]; exists {
			errs = append(errs, fmt.Errorf("config: duplicate chart %q", c.Name))
			continue
		}
		cfg.byName[c.Name] = len(cfg.Charts)
		cfg.Charts = append(cfg.Charts, c)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Chart looks up a chart by name.
func (c *Config) Chart(name string) (Chart, bool) {
	if c == nil {
		return Chart{}, false
	}
	idx, ok := c.byName[strings.TrimSpace(name)]
	if !ok {
		return Chart{}, false
	}
	return c.Charts[idx], true
}

// Names returns the chart names sorted alphabetically.
func (c *Config) Names() []string {
	if c == nil {
		return nil
	}
	names := make([]string, 0, len(c.Charts))
	for _, ch := range c.Charts {
		names = append(names, ch.Name)
	}
	sort.Strings(names)
	return names
}

// Request builds the chart request for ch, mounting into the container id it
// names and writing to the supplied container writer.
func (ch Chart) Request(container chart.Container) chart.Request {
	if strings.TrimSpace(container.ID) == "" {
		container.ID = ch.Container
	}
	return chart.Request{
		URL:       ch.URL,
		Params:    ch.Params,
		Container: container,
	}
}

// ThemeConfig converts the theme section into a go-theme renderer config, or
// nil when no theme is configured.
func (c *Config) ThemeConfig() *theme.RendererConfig {
	if c == nil {
		return nil
	}
	t := c.Theme
	if t.Name == "" && t.Variant == "" && len(t.Tokens) == 0 && len(t.CSSVars) == 0 && t.Assets == "" {
		return nil
	}
	out := &theme.RendererConfig{
		Theme:   t.Name,
		Variant: t.Variant,
		Tokens:  copyStringMap(t.Tokens),
		CSSVars: copyStringMap(t.CSSVars),
	}
	if base := strings.TrimRight(strings.TrimSpace(t.Assets), "/"); base != "" {
		out.AssetURL = func(key string) string {
			if key == "" {
				return ""
			}
			return base + "/" + strings.TrimLeft(key, "/")
		}
	}
	return out
}

func copyStringMap(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
