package routes

import (
	"testing"

	"github.com/go-logr/logr"

	"github.com/oakwood-commons/navkit/pkg/params"
)

func newTestRegistry() *Registry {
	g := New(logr.Discard())
	g.RegisterSection("dashboard", Meta{DisplayName: "Dashboard"})
	g.RegisterSection("packlist", Meta{DisplayName: "Pack Lists"})
	g.RegisterSection("inventory", Meta{DisplayName: "Inventory", DashboardTitle: "Stock"})
	g.RegisterNavigation("packlist", []Spec{
		{Key: "acme", Meta: Meta{DisplayName: "Acme Corp"}, Children: []Spec{
			{Key: "items", Meta: Meta{DisplayName: "Items"}},
		}},
	})
	return g
}

func TestGetRouteWalk(t *testing.T) {
	g := newTestRegistry()

	r := g.GetRoute("packlist/acme")
	if r == nil {
		t.Fatalf("expected packlist/acme to resolve")
	}
	if r.Path != "packlist/acme" {
		t.Fatalf("expected path packlist/acme, got %q", r.Path)
	}
	if r.IsMainSection {
		t.Fatalf("sub-route must not be a main section")
	}

	if g.GetRoute("packlist/acme/items") == nil {
		t.Fatalf("expected nested route to resolve")
	}
}

func TestGetRouteNoPartialMatch(t *testing.T) {
	g := newTestRegistry()

	if r := g.GetRoute("packlist/unknown"); r != nil {
		t.Fatalf("expected nil for unregistered sub-route, got %v", r.Path)
	}
	if r := g.GetRoute("nowhere"); r != nil {
		t.Fatalf("expected nil for unregistered section, got %v", r.Path)
	}
	if r := g.GetRoute(""); r != nil {
		t.Fatalf("expected nil for empty path")
	}
}

func TestRegisterSectionIdempotent(t *testing.T) {
	g := newTestRegistry()

	before := len(g.Sections())
	g.RegisterSection("inventory", Meta{Icon: "box"})
	if len(g.Sections()) != before {
		t.Fatalf("re-registering a section must not duplicate")
	}
	r := g.GetRoute("inventory")
	if r.Icon != "box" {
		t.Fatalf("expected merged icon, got %q", r.Icon)
	}
	if r.DisplayName != "Inventory" {
		t.Fatalf("merge must preserve fields absent from metadata, got %q", r.DisplayName)
	}
}

func TestAddOrMergeMissingParent(t *testing.T) {
	g := newTestRegistry()
	if child := g.AddOrMerge("ghost", "sub", Meta{}); child != nil {
		t.Fatalf("expected nil child under unresolved parent")
	}
	if g.GetRoute("ghost/sub") != nil {
		t.Fatalf("no-op registration must not create nodes")
	}
}

func TestAddOrMergeDefaultsDisplayName(t *testing.T) {
	g := newTestRegistry()
	child := g.AddOrMerge("inventory", "spare-parts", Meta{})
	if child.DisplayName != "Spare Parts" {
		t.Fatalf("expected generated display name, got %q", child.DisplayName)
	}
}

func TestDisplayName(t *testing.T) {
	g := newTestRegistry()

	if got := g.DisplayName(`packlist/acme?{"tab":"edit"}`, false); got != "Acme Corp" {
		t.Fatalf("expected registered display name, got %q", got)
	}
	if got := g.DisplayName("inventory", true); got != "Stock" {
		t.Fatalf("expected dashboard title, got %q", got)
	}
	if got := g.DisplayName("packlist", true); got != "Pack Lists" {
		t.Fatalf("expected display name when no dashboard title, got %q", got)
	}
	// Unregistered: generated from the last segment.
	if got := g.DisplayName("packlist/globex", false); got != "Globex" {
		t.Fatalf("expected generated fallback, got %q", got)
	}
}

func TestContainerType(t *testing.T) {
	g := newTestRegistry()

	if got := g.ContainerType(`inventory?{"q":"foo"}`); got != "inventory" {
		t.Fatalf("expected main section, got %q", got)
	}
	if got := g.ContainerType("unknown/leaf"); got != "leaf" {
		t.Fatalf("expected last segment for non-section, got %q", got)
	}
}

func TestLastParamsOverwrite(t *testing.T) {
	g := newTestRegistry()
	r := g.GetRoute("inventory")

	if _, ok := r.LastParams(); ok {
		t.Fatalf("fresh route must have no cached parameters")
	}

	p1 := params.New()
	p1.Set("q", params.String("foo"))
	p1.Set("page", params.Number(2))
	r.SetLastParams(p1)

	p2 := params.New()
	p2.Set("q", params.String("bar"))
	r.SetLastParams(p2)

	got, ok := r.LastParams()
	if !ok {
		t.Fatalf("expected cached parameters")
	}
	if got.Len() != 1 {
		t.Fatalf("cache write must overwrite, not merge: %v", got.Keys())
	}
	v, _ := got.Get("q")
	if !v.Equal(params.String("bar")) {
		t.Fatalf("expected overwritten value, got %v", v)
	}
}

func TestLastParamsReturnsCopy(t *testing.T) {
	g := newTestRegistry()
	r := g.GetRoute("inventory")

	p := params.New()
	p.Set("q", params.String("foo"))
	r.SetLastParams(p)

	got, _ := r.LastParams()
	got.Set("q", params.String("mutated"))

	fresh, _ := r.LastParams()
	v, _ := fresh.Get("q")
	if !v.Equal(params.String("foo")) {
		t.Fatalf("cache must not alias caller mutations")
	}
}
