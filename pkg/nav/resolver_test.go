package nav

import (
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/navkit/pkg/dashboard"
	"github.com/oakwood-commons/navkit/pkg/params"
	"github.com/oakwood-commons/navkit/pkg/pathcodec"
	"github.com/oakwood-commons/navkit/pkg/routes"
)

func newResolverFixture(t *testing.T) (*Resolver, *routes.Registry, *dashboard.Board) {
	t.Helper()
	reg := routes.New(logr.Discard())
	reg.RegisterSection("dashboard", routes.Meta{DisplayName: "Dashboard"})
	reg.RegisterSection("inventory", routes.Meta{DisplayName: "Inventory"})
	reg.RegisterSection("packlist", routes.Meta{DisplayName: "Pack Lists"})
	reg.RegisterSection("schedule", routes.Meta{DisplayName: "Schedule"})
	board := dashboard.NewBoard(logr.Discard())
	return NewResolver(reg, board, logr.Discard()), reg, board
}

func TestResolveDashboardContext(t *testing.T) {
	r, _, board := newResolverFixture(t)
	board.Pin(`inventory?{"q":"foo"}`, "Stock")

	got := r.Resolve(ContextDashboard, "inventory", "dashboard")
	v, ok := got.Get("q")
	require.True(t, ok)
	assert.Equal(t, params.String("foo"), v)

	// Unpinned container resolves empty.
	assert.True(t, r.Resolve(ContextDashboard, "schedule", "dashboard").IsEmpty())
}

func TestResolveDirectContextExactMatchOnly(t *testing.T) {
	r, _, _ := newResolverFixture(t)

	got := r.Resolve(ContextDirect, "inventory", `inventory?{"q":"foo"}`)
	v, ok := got.Get("q")
	require.True(t, ok)
	assert.Equal(t, params.String("foo"), v)

	// A different current route contributes nothing.
	assert.True(t, r.Resolve(ContextDirect, "inventory", "packlist").IsEmpty())
	assert.True(t, r.Resolve(ContextDirect, "inventory", `packlist?{"q":"foo"}`).IsEmpty())
}

func TestResolveEmptyCurrentPath(t *testing.T) {
	r, _, _ := newResolverFixture(t)
	assert.True(t, r.Resolve(ContextDirect, "inventory", "").IsEmpty())
	assert.True(t, r.Resolve(ContextDashboard, "inventory", "").IsEmpty())
}

func TestBuildWithCurrentMergesAndOverrides(t *testing.T) {
	r, _, _ := newResolverFixture(t)

	over := params.New()
	over.Set("page", params.Number(2))
	built := r.BuildWithCurrent(ContextDirect, "inventory", `inventory?{"q":"foo"}`, over)

	_, raw := pathcodec.Split(built)
	p := pathcodec.Decode(raw, logr.Discard())
	v, _ := p.Get("q")
	assert.Equal(t, params.String("foo"), v)
	v, _ = p.Get("page")
	assert.Equal(t, params.Number(2), v)
}

func TestBuildWithCurrentDeletesUnsetKeys(t *testing.T) {
	r, reg, _ := newResolverFixture(t)

	over := params.New()
	over.Set("q", params.Unset())
	built := r.BuildWithCurrent(ContextDirect, "inventory", `inventory?{"q":"foo","page":3}`, over)

	_, raw := pathcodec.Split(built)
	p := pathcodec.Decode(raw, logr.Discard())
	_, ok := p.Get("q")
	assert.False(t, ok, "unset override must delete the key")
	v, _ := p.Get("page")
	assert.Equal(t, params.Number(3), v)

	// Deletion eagerly rewrites the route's cache so a later plain
	// navigation cannot resurrect the removed key.
	cached, ok := reg.GetRoute("inventory").LastParams()
	require.True(t, ok)
	_, ok = cached.Get("q")
	assert.False(t, ok)
}

func TestBuildWithCurrentEmptyStringDeletes(t *testing.T) {
	r, _, _ := newResolverFixture(t)

	over := params.New()
	over.Set("q", params.String(""))
	built := r.BuildWithCurrent(ContextDirect, "inventory", `inventory?{"q":"foo"}`, over)
	assert.Equal(t, "inventory", built, "all keys removed leaves the bare clean path")
}

func TestBuildWithCurrentDashboardPruneRewritesBoard(t *testing.T) {
	r, _, board := newResolverFixture(t)
	board.Pin(`schedule?{"y":2024,"view":"month"}`, "Schedule")

	over := params.New()
	over.Set("view", params.Unset())
	built := r.BuildWithCurrent(ContextDashboard, "schedule", "dashboard", over)

	assert.Equal(t, `schedule?{"y":2024}`, built)
	c, ok := board.Find("schedule")
	require.True(t, ok)
	assert.Equal(t, built, c.Path, "board's stored path must be pruned eagerly")
}

func TestBuildWithCurrentNoPruneLeavesCachesAlone(t *testing.T) {
	r, reg, _ := newResolverFixture(t)

	over := params.New()
	over.Set("page", params.Number(2))
	r.BuildWithCurrent(ContextDirect, "inventory", `inventory?{"q":"foo"}`, over)

	// No key was deleted, so nothing is written back.
	_, ok := reg.GetRoute("inventory").LastParams()
	assert.False(t, ok)
}
