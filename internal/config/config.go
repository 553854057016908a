// Package config loads the navigation configuration: sections and
// routes for the registry, startup pins for the dashboard, and the
// guard rule. A user file merges over the embedded defaults.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/navkit/pkg/dashboard"
	"github.com/oakwood-commons/navkit/pkg/routes"
)

//go:embed default.yaml
var defaultYAML []byte

// Loader centralizes config loading so callers avoid duplicating merge
// logic. The default source is injectable for tests.
type Loader struct {
	defaultConfig func() ([]byte, error)
}

var loader = Loader{defaultConfig: loadDefaultYAML}

func loadDefaultYAML() ([]byte, error) {
	if len(defaultYAML) == 0 {
		return nil, fmt.Errorf("embedded default config is empty")
	}
	return defaultYAML, nil
}

// Load returns the merged configuration: embedded defaults overlaid
// with the file at path when path is non-empty.
func Load(path string) (File, error) {
	return loader.Load(path)
}

// DefaultRaw returns the embedded default config bytes.
func DefaultRaw() ([]byte, error) {
	return loader.defaultRaw()
}

func (l Loader) Load(path string) (File, error) {
	var cfg File

	defaultData, err := l.defaultRaw()
	if err != nil {
		return cfg, fmt.Errorf("load default config: %w", err)
	}
	if err := yaml.Unmarshal(defaultData, &cfg); err != nil {
		return cfg, fmt.Errorf("decode default config: %w", err)
	}
	if cfg.App.DashboardSection == "" {
		return cfg, fmt.Errorf("default config is missing dashboard_section")
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		var user File
		if err := yaml.Unmarshal(data, &user); err != nil {
			return cfg, fmt.Errorf("decode config %s: %w", path, err)
		}
		cfg = merge(cfg, user)
	}
	return cfg, nil
}

func (l Loader) defaultRaw() ([]byte, error) {
	if l.defaultConfig != nil {
		return l.defaultConfig()
	}
	return loadDefaultYAML()
}

// merge overlays a user config on the defaults. Scalars follow
// non-empty-wins; sections, pins, and the guard replace wholesale when
// the user declares any, since partial route trees are ambiguous.
func merge(base, over File) File {
	out := base
	if over.App.Name != "" {
		out.App.Name = over.App.Name
	}
	if over.App.DashboardSection != "" {
		out.App.DashboardSection = over.App.DashboardSection
	}
	if over.App.StartPath != "" {
		out.App.StartPath = over.App.StartPath
	}
	if len(over.Sections) > 0 {
		out.Sections = over.Sections
	}
	if len(over.Pins) > 0 {
		out.Pins = over.Pins
	}
	if over.Guard.Rule != "" {
		out.Guard.Rule = over.Guard.Rule
	}
	if len(over.Guard.Session) > 0 {
		out.Guard.Session = over.Guard.Session
	}
	return out
}

// Apply registers the config's sections and route trees on registry.
func (cfg File) Apply(registry *routes.Registry) {
	for _, s := range cfg.Sections {
		registry.RegisterSection(s.Key, routes.Meta{
			DisplayName:    s.DisplayName,
			DashboardTitle: s.DashboardTitle,
			Icon:           s.Icon,
		})
		if len(s.Routes) > 0 {
			registry.RegisterNavigation(s.Key, toSpecs(s.Routes))
		}
	}
}

func toSpecs(entries []RouteEntry) []routes.Spec {
	specs := make([]routes.Spec, 0, len(entries))
	for _, e := range entries {
		specs = append(specs, routes.Spec{
			Key: e.Key,
			Meta: routes.Meta{
				DisplayName:    e.DisplayName,
				DashboardTitle: e.DashboardTitle,
				Icon:           e.Icon,
			},
			Children: toSpecs(e.Routes),
		})
	}
	return specs
}

// ApplyPins pins the config's startup containers onto board.
func (cfg File) ApplyPins(board *dashboard.Board) {
	for _, p := range cfg.Pins {
		board.Pin(p.Path, p.Title)
	}
}
