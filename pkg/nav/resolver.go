package nav

import (
	"github.com/go-logr/logr"

	"github.com/oakwood-commons/navkit/pkg/dashboard"
	"github.com/oakwood-commons/navkit/pkg/params"
	"github.com/oakwood-commons/navkit/pkg/pathcodec"
	"github.com/oakwood-commons/navkit/pkg/routes"
)

// Context tags which resolution rule applies for a container's
// parameters. A route rendered as a pinned dashboard card anchors its
// parameter state to the board's stored path string; a route viewed
// directly anchors it to the shell's current path.
type Context int

const (
	// ContextDirect resolves parameters from the shell's current path.
	ContextDirect Context = iota
	// ContextDashboard resolves parameters from the pinboard entry.
	ContextDashboard
)

// Pinboard is the engine's view of the dashboard collaborator.
type Pinboard interface {
	Containers() []dashboard.Container
	RewritePath(oldCleanPath, newFullPath string)
}

// Resolver computes the effective parameter set for a container under
// the dual-context rule.
type Resolver struct {
	registry *routes.Registry
	board    Pinboard
	log      logr.Logger
}

// NewResolver creates a Resolver. board may be nil when no dashboard
// collaborator exists; dashboard-context lookups then resolve empty.
func NewResolver(registry *routes.Registry, board Pinboard, log logr.Logger) *Resolver {
	return &Resolver{registry: registry, board: board, log: log}
}

// Resolve returns the parameters in effect for containerPath given the
// shell's currentPath.
//
// Dashboard context: the board entry matching containerPath (by exact
// clean path) holds its own full path, possibly with a parameter
// segment; those parameters win. No entry means no parameters.
//
// Direct context: currentPath's parameters apply only when its clean
// path is exactly the container's clean path.
func (r *Resolver) Resolve(ctx Context, containerPath, currentPath string) params.Params {
	if currentPath == "" {
		return params.Params{}
	}
	containerClean, _ := pathcodec.Split(containerPath)

	if ctx == ContextDashboard {
		if r.board == nil {
			return params.Params{}
		}
		for _, c := range r.board.Containers() {
			entryClean, entryRaw := pathcodec.Split(c.Path)
			if entryClean == containerClean {
				return pathcodec.Decode(entryRaw, r.log)
			}
		}
		return params.Params{}
	}

	currentClean, currentRaw := pathcodec.Split(currentPath)
	if currentClean == containerClean {
		return pathcodec.Decode(currentRaw, r.log)
	}
	return params.Params{}
}

// BuildWithCurrent rebuilds containerPath with overrides merged over
// the currently effective parameters. A merged value that is unset or
// an empty string is an explicit removal and its key is deleted. When
// any key is deleted the pruned set is eagerly written back to
// whichever cache is authoritative — the route's last-parameters cache
// in direct context, the board's stored path in dashboard context — so
// a later plain navigation cannot resurrect parameters the caller just
// removed.
func (r *Resolver) BuildWithCurrent(ctx Context, containerPath, currentPath string, overrides params.Params) string {
	merged := r.Resolve(ctx, containerPath, currentPath).Merge(overrides)

	pruned := false
	for _, key := range merged.Keys() {
		v, _ := merged.Get(key)
		if v.IsUnset() || (v.Kind() == params.KindString && v.Text() == "") {
			merged.Delete(key)
			pruned = true
		}
	}

	clean, _ := pathcodec.Split(containerPath)
	built := clean
	if !merged.IsEmpty() {
		built = clean + "?" + pathcodec.Encode(merged)
	}

	if pruned {
		if ctx == ContextDashboard {
			if r.board != nil {
				r.board.RewritePath(clean, built)
			}
		} else if route := r.registry.GetRoute(clean); route != nil {
			route.SetLastParams(merged)
		}
	}
	return built
}
