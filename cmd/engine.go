package cmd

import (
	"fmt"

	"github.com/go-logr/logr"

	"github.com/oakwood-commons/navkit/internal/config"
	"github.com/oakwood-commons/navkit/internal/guard"
	"github.com/oakwood-commons/navkit/pkg/dashboard"
	"github.com/oakwood-commons/navkit/pkg/nav"
	"github.com/oakwood-commons/navkit/pkg/routes"
)

// Engine bundles the wired navigation collaborators for one run.
type Engine struct {
	Navigator *nav.Navigator
	Registry  *routes.Registry
	Board     *dashboard.Board
	Stack     *nav.MemoryStack
	History   *nav.History
	Guard     *guard.Guard
}

// buildEngine wires registry, board, guard, history, and navigator
// from the merged config.
func buildEngine(cfg config.File, log logr.Logger) (*Engine, error) {
	registry := routes.New(log)
	cfg.Apply(registry)

	board := dashboard.NewBoard(log)
	cfg.ApplyPins(board)

	g, err := guard.New(cfg.Guard.Rule,
		func() map[string]interface{} { return cfg.Guard.Session },
		guard.WithLogger(log),
	)
	if err != nil {
		return nil, fmt.Errorf("guard: %w", err)
	}

	stack := nav.NewMemoryStack()
	history := nav.NewHistory(stack, nav.WithHistoryLogger(log))

	opts := []nav.Option{
		nav.WithPinboard(board),
		nav.WithHistory(history),
		nav.WithAuthenticator(g),
		nav.WithLogger(log),
	}
	if cfg.App.DashboardSection != "" {
		opts = append(opts, nav.WithDashboardSection(cfg.App.DashboardSection))
	}
	navigator := nav.New(registry, opts...)

	return &Engine{
		Navigator: navigator,
		Registry:  registry,
		Board:     board,
		Stack:     stack,
		History:   history,
		Guard:     g,
	}, nil
}

// BindPrompt routes the guard's login prompts into the shell's status
// line. Separate from buildEngine because the shell is created after
// the engine.
func (e *Engine) BindPrompt(p interface{ PromptLogin(area, message string) }) {
	e.Guard.SetPrompt(p.PromptLogin)
}
