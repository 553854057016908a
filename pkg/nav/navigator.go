// Package nav implements the navigation engine: parsing navigable
// paths, replaying per-route parameter caches, gating on
// authentication, committing the shared shell state, and keeping the
// host's history stack in sync.
//
// The engine is single-threaded by design: all operations run on the
// host UI's one logical thread, and only the authentication check
// suspends. Two navigation attempts issued concurrently are not
// serialized here; the host is expected to disable navigation controls
// while an attempt is in flight.
package nav

import (
	"context"
	"strings"

	"github.com/go-logr/logr"

	"github.com/oakwood-commons/navkit/pkg/params"
	"github.com/oakwood-commons/navkit/pkg/pathcodec"
	"github.com/oakwood-commons/navkit/pkg/routes"
)

// DefaultDashboardSection is the reserved section name denoting the
// pinned/dashboard context.
const DefaultDashboardSection = "dashboard"

// ReasonNotAuthenticated is the reason carried by a blocked outcome.
const ReasonNotAuthenticated = "not_authenticated"

// Authenticator is the external auth collaborator. A failed check does
// not abort navigation: the shell still shows the attempted location
// with an in-context login prompt.
type Authenticator interface {
	IsAuthenticated(ctx context.Context) (bool, error)
	PromptLogin(area, message string)
}

// OutcomeKind tags the result of a navigation attempt.
type OutcomeKind string

const (
	// OutcomeNavigate means the route changed; any open menu closes.
	OutcomeNavigate OutcomeKind = "navigate"
	// OutcomeParameterChange means the same route with different
	// parameters; the menu stays as it was.
	OutcomeParameterChange OutcomeKind = "parameter_change"
	// OutcomeBlocked means the auth gate failed; the attempted path is
	// still committed so the UI can render a login prompt in context.
	OutcomeBlocked OutcomeKind = "blocked"
	// OutcomeNone means the target was already current.
	OutcomeNone OutcomeKind = "none"
)

// Outcome is the tagged result of a navigation attempt.
type Outcome struct {
	Kind   OutcomeKind
	Path   string
	Params params.Params
	Reason string
}

// Parsed is the ephemeral decomposition of a target path.
type Parsed struct {
	// Clean is the route path without its parameter segment.
	Clean string
	// Full is the normalized full path; legacy query segments
	// normalize to the JSON form.
	Full string
	// Params are the decoded parameters in order.
	Params params.Params
	// Route is the registry lookup of Clean; nil when unregistered
	// (not an error — display names are generated on demand).
	Route *routes.Route
	// HasParams is len(Params) > 0.
	HasParams bool
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithPinboard sets the dashboard collaborator.
func WithPinboard(b Pinboard) Option {
	return func(n *Navigator) { n.board = b }
}

// WithAuthenticator sets the auth collaborator. Without one every
// navigation is allowed.
func WithAuthenticator(a Authenticator) Option {
	return func(n *Navigator) { n.auth = a }
}

// WithHistory binds a history synchronizer.
func WithHistory(h *History) Option {
	return func(n *Navigator) { n.history = h }
}

// WithDashboardSection overrides the reserved section name that
// denotes dashboard context.
func WithDashboardSection(name string) Option {
	return func(n *Navigator) { n.dashboardSection = name }
}

// WithLogger sets the logger.
func WithLogger(log logr.Logger) Option {
	return func(n *Navigator) { n.log = log }
}

// Navigator orchestrates navigation attempts over a route registry.
// It is the sole writer of State.CurrentPath.
type Navigator struct {
	registry         *routes.Registry
	board            Pinboard
	auth             Authenticator
	history          *History
	resolver         *Resolver
	state            *State
	dashboardSection string
	log              logr.Logger
}

// New creates a Navigator over registry.
func New(registry *routes.Registry, opts ...Option) *Navigator {
	n := &Navigator{
		registry:         registry,
		state:            &State{},
		dashboardSection: DefaultDashboardSection,
		log:              logr.Discard(),
	}
	for _, opt := range opts {
		opt(n)
	}
	n.resolver = NewResolver(registry, n.board, n.log)
	if n.history != nil {
		n.history.Bind(n.handleHistoryNavigate)
	}
	return n
}

// State returns the shared shell state.
func (n *Navigator) State() *State { return n.state }

// Registry returns the route registry.
func (n *Navigator) Registry() *routes.Registry { return n.registry }

// Resolver returns the parameter resolver.
func (n *Navigator) Resolver() *Resolver { return n.resolver }

// DashboardSection returns the reserved dashboard section name.
func (n *Navigator) DashboardSection() string { return n.dashboardSection }

// Parse decodes a target path into its parts. The returned Full path
// is normalized: rebuilt from the clean path and the decoded
// parameters, so legacy query-string inputs come out in JSON form.
func (n *Navigator) Parse(input string) Parsed {
	trimmed := strings.TrimSpace(input)
	clean, raw := pathcodec.Split(trimmed)
	clean = strings.Trim(clean, "/")
	p := pathcodec.Decode(raw, n.log)

	full := clean
	if !p.IsEmpty() {
		full = clean + "?" + pathcodec.Encode(p)
	}
	return Parsed{
		Clean:     clean,
		Full:      full,
		Params:    p,
		Route:     n.registry.GetRoute(clean),
		HasParams: !p.IsEmpty(),
	}
}

// ContextFor classifies the shell's current path: dashboard context
// when its first segment is the reserved dashboard section, direct
// otherwise. This is the single place the name comparison happens.
func (n *Navigator) ContextFor(currentPath string) Context {
	clean, _ := pathcodec.Split(currentPath)
	clean = strings.Trim(clean, "/")
	first := clean
	if idx := strings.Index(clean, "/"); idx >= 0 {
		first = clean[:idx]
	}
	if first == n.dashboardSection {
		return ContextDashboard
	}
	return ContextDirect
}

// ResolveParams returns the parameters in effect for containerPath
// under the current shell state.
func (n *Navigator) ResolveParams(containerPath string) params.Params {
	return n.resolver.Resolve(n.ContextFor(n.state.CurrentPath), containerPath, n.state.CurrentPath)
}

// BuildWithCurrent rebuilds containerPath with overrides applied over
// the currently effective parameters; see Resolver.BuildWithCurrent.
func (n *Navigator) BuildWithCurrent(containerPath string, overrides params.Params) string {
	return n.resolver.BuildWithCurrent(n.ContextFor(n.state.CurrentPath), containerPath, n.state.CurrentPath, overrides)
}

// Navigate runs a full navigation attempt to target. Steps execute
// strictly in order: parse, apply-cache, authenticate, commit, sync.
// The returned error is non-nil only when ctx is done; every other
// failure degrades into the outcome.
func (n *Navigator) Navigate(ctx context.Context, target string) (Outcome, error) {
	return n.navigate(ctx, target, false)
}

func (n *Navigator) navigate(ctx context.Context, target string, fromHistory bool) (Outcome, error) {
	parsed := n.Parse(target)

	// Apply-cache: a parameter-less navigation implicitly restores the
	// last filter state the user had on that route.
	if !parsed.HasParams && parsed.Route != nil {
		if last, ok := parsed.Route.LastParams(); ok && !last.IsEmpty() {
			parsed = n.Parse(pathcodec.BuildPath(parsed.Clean, last, n.log))
			n.log.V(1).Info("replayed cached parameters", "path", parsed.Full)
		}
	}

	previous := n.state.CurrentPath
	if parsed.Full == previous {
		return Outcome{Kind: OutcomeNone, Path: parsed.Full, Params: parsed.Params}, nil
	}

	// Authenticate.
	authenticated := true
	if n.auth != nil {
		ok, err := n.auth.IsAuthenticated(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return Outcome{Kind: OutcomeNone}, ctx.Err()
			}
			n.log.Error(err, "authentication check failed", "path", parsed.Full)
			ok = false
		}
		authenticated = ok
	}
	if !authenticated {
		// Commit the attempted path anyway so the shell can render the
		// login prompt in context.
		n.state.CurrentPath = parsed.Full
		n.auth.PromptLogin(
			n.registry.ContainerType(parsed.Clean),
			"Sign in to view "+n.registry.DisplayName(parsed.Clean, false),
		)
		return Outcome{
			Kind:   OutcomeBlocked,
			Path:   parsed.Full,
			Params: parsed.Params,
			Reason: ReasonNotAuthenticated,
		}, nil
	}

	// Commit.
	previousClean, _ := pathcodec.Split(previous)
	kind := OutcomeNavigate
	if previousClean == parsed.Clean {
		kind = OutcomeParameterChange
	}
	n.state.CurrentPath = parsed.Full
	if kind == OutcomeNavigate {
		n.state.MenuOpen = false
	}
	if parsed.HasParams && parsed.Route != nil && n.ContextFor(parsed.Clean) != ContextDashboard {
		parsed.Route.SetLastParams(parsed.Params)
	}

	// Sync: skipped when this attempt came from a back/forward event —
	// the host already recorded that entry.
	if !fromHistory && n.history != nil {
		n.history.PushOrReplace(parsed.Full, kind == OutcomeNavigate)
	}

	n.log.V(1).Info("navigated", "path", parsed.Full, "kind", string(kind), "fromHistory", fromHistory)
	return Outcome{Kind: kind, Path: parsed.Full, Params: parsed.Params}, nil
}

// handleHistoryNavigate feeds a decoded back/forward path through the
// pipeline with history origin.
func (n *Navigator) handleHistoryNavigate(path string) {
	if _, err := n.navigate(context.Background(), path, true); err != nil {
		n.log.Error(err, "history navigation failed", "path", path)
	}
}
