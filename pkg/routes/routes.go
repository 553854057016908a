// Package routes holds the hierarchical registry of navigable sections
// and sub-routes. Main sections are registered at startup; feature
// modules add or merge sub-routes underneath them at any time. Lookups
// are strict: an unregistered path is simply not found, never a
// partial or synthetic node.
package routes

import (
	"sort"
	"strings"
	"sync"

	"github.com/go-logr/logr"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/oakwood-commons/navkit/pkg/params"
	"github.com/oakwood-commons/navkit/pkg/pathcodec"
)

// Meta carries the display metadata attached to a route. Empty fields
// never overwrite existing values on merge.
type Meta struct {
	DisplayName    string
	DashboardTitle string
	Icon           string
}

// Spec describes a sub-route subtree for RegisterNavigation.
type Spec struct {
	Key      string
	Meta     Meta
	Children []Spec
}

// Route is one node in the tree. Fields are written by the Registry
// and by the Navigator (lastParams); everything else reads.
type Route struct {
	SegmentKey     string
	Path           string
	DisplayName    string
	DashboardTitle string
	Icon           string
	IsMainSection  bool

	children map[string]*Route

	// lastParams is the most recently used parameter set for this
	// route, replayed on parameter-less navigation. Populated only for
	// direct (non-dashboard) navigation.
	lastParams    params.Params
	hasLastParams bool
}

// Child returns the direct child with the given segment key, or nil.
func (r *Route) Child(key string) *Route {
	return r.children[key]
}

// Children returns the direct children sorted by segment key.
func (r *Route) Children() []*Route {
	out := make([]*Route, 0, len(r.children))
	for _, c := range r.children {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SegmentKey < out[j].SegmentKey })
	return out
}

// LastParams returns a copy of the cached parameter set and whether one
// has ever been stored.
func (r *Route) LastParams() (params.Params, bool) {
	if !r.hasLastParams {
		return params.Params{}, false
	}
	return r.lastParams.Clone(), true
}

// SetLastParams overwrites the cached parameter set. Overwrite, not
// merge: a replayed cache must reflect exactly the last state used.
func (r *Route) SetLastParams(p params.Params) {
	r.lastParams = p.Clone()
	r.hasLastParams = true
}

func (r *Route) merge(meta Meta) {
	if meta.DisplayName != "" {
		r.DisplayName = meta.DisplayName
	}
	if meta.DashboardTitle != "" {
		r.DashboardTitle = meta.DashboardTitle
	}
	if meta.Icon != "" {
		r.Icon = meta.Icon
	}
}

// Registry is the route tree. Construct one explicitly with New, or
// use the process-wide Default for convenience.
//
// Writes follow the single-writer discipline of the navigation engine:
// registration happens during module init, lastParams via the
// Navigator. No locking beyond the Default() initializer.
type Registry struct {
	sections map[string]*Route
	log      logr.Logger
}

// New creates an empty Registry.
func New(log logr.Logger) *Registry {
	return &Registry{
		sections: make(map[string]*Route),
		log:      log,
	}
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// Default returns the process-wide registry instance.
func Default() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = New(logr.Discard())
	})
	return defaultRegistry
}

// RegisterSection adds a main section at the root, or merges metadata
// into an existing one. Re-registering the same key never duplicates.
func (g *Registry) RegisterSection(key string, meta Meta) *Route {
	if existing, ok := g.sections[key]; ok {
		existing.merge(meta)
		return existing
	}
	r := &Route{
		SegmentKey:    key,
		Path:          key,
		IsMainSection: true,
		children:      make(map[string]*Route),
	}
	r.merge(meta)
	if r.DisplayName == "" {
		r.DisplayName = titleCase(key)
	}
	g.sections[key] = r
	return r
}

// Sections returns the main sections sorted by key.
func (g *Registry) Sections() []*Route {
	out := make([]*Route, 0, len(g.sections))
	for _, s := range g.sections {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SegmentKey < out[j].SegmentKey })
	return out
}

// RegisterNavigation registers a feature module's sub-route subtree
// under an existing main section. Called during module init; calling
// it again with the same specs merges and never duplicates.
func (g *Registry) RegisterNavigation(section string, specs []Spec) {
	if _, ok := g.sections[section]; !ok {
		g.log.Info("section not registered, skipping navigation specs", "section", section)
		return
	}
	g.registerSpecs(section, specs)
}

func (g *Registry) registerSpecs(parentPath string, specs []Spec) {
	for _, s := range specs {
		child := g.AddOrMerge(parentPath, s.Key, s.Meta)
		if child != nil && len(s.Children) > 0 {
			g.registerSpecs(child.Path, s.Children)
		}
	}
}

// AddOrMerge creates segmentKey under parentPath, or shallow-merges
// metadata into the existing child. If parentPath does not resolve the
// call is a no-op with a warning.
func (g *Registry) AddOrMerge(parentPath, segmentKey string, meta Meta) *Route {
	parent := g.GetRoute(parentPath)
	if parent == nil {
		g.log.Info("parent route not registered, dropping sub-route", "parent", parentPath, "segment", segmentKey)
		return nil
	}
	if existing, ok := parent.children[segmentKey]; ok {
		existing.merge(meta)
		return existing
	}
	child := &Route{
		SegmentKey: segmentKey,
		Path:       parent.Path + "/" + segmentKey,
		children:   make(map[string]*Route),
	}
	child.merge(meta)
	if child.DisplayName == "" {
		child.DisplayName = titleCase(segmentKey)
	}
	parent.children[segmentKey] = child
	return child
}

// GetRoute walks the tree for a clean path. It returns nil as soon as
// a segment is missing.
func (g *Registry) GetRoute(path string) *Route {
	segs := segments(path)
	if len(segs) == 0 {
		return nil
	}
	cur, ok := g.sections[segs[0]]
	if !ok {
		return nil
	}
	for _, seg := range segs[1:] {
		cur = cur.children[seg]
		if cur == nil {
			return nil
		}
	}
	return cur
}

// DisplayName resolves the human-readable name for a path, stripping
// any parameter segment first. Registered routes return their
// DisplayName, or DashboardTitle when preferDashboard is set and one
// exists. Unregistered paths fall back to the title-cased last
// segment; this never fails.
func (g *Registry) DisplayName(path string, preferDashboard bool) string {
	clean, _ := pathcodec.Split(path)
	if r := g.GetRoute(clean); r != nil {
		if preferDashboard && r.DashboardTitle != "" {
			return r.DashboardTitle
		}
		return r.DisplayName
	}
	segs := segments(clean)
	if len(segs) == 0 {
		return ""
	}
	return titleCase(segs[len(segs)-1])
}

// ContainerType classifies a path for UI dispatch: the first segment
// when it names a registered main section, otherwise the last segment.
func (g *Registry) ContainerType(path string) string {
	clean, _ := pathcodec.Split(path)
	segs := segments(clean)
	if len(segs) == 0 {
		return ""
	}
	if _, ok := g.sections[segs[0]]; ok {
		return segs[0]
	}
	return segs[len(segs)-1]
}

func segments(path string) []string {
	var out []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

var titleCaser = cases.Title(language.English)

func titleCase(segment string) string {
	s := strings.NewReplacer("-", " ", "_", " ").Replace(segment)
	return titleCaser.String(s)
}
