// Package guard provides a rule-driven authenticator for the
// navigation engine. The rule is a CEL expression evaluated against a
// session snapshot bound to the variable "_"; a true result allows
// navigation.
package guard

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"
	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	celext "github.com/google/cel-go/ext"
)

// SessionFunc supplies the session snapshot evaluated by the rule.
// Called on every check so the guard always sees current state.
type SessionFunc func() map[string]interface{}

// PromptFunc receives login prompts. area is the container type of the
// blocked route, message the user-facing text.
type PromptFunc func(area, message string)

// Option configures a Guard.
type Option func(*Guard)

// WithPrompt routes login prompts to fn instead of the logger.
func WithPrompt(fn PromptFunc) Option {
	return func(g *Guard) { g.prompt = fn }
}

// WithLogger sets the logger.
func WithLogger(log logr.Logger) Option {
	return func(g *Guard) { g.log = log }
}

// Guard evaluates a compiled CEL rule against a session snapshot. It
// implements nav.Authenticator.
type Guard struct {
	rule    string
	program cel.Program
	session SessionFunc
	prompt  PromptFunc
	log     logr.Logger
}

// New compiles rule and returns a Guard. An empty rule allows
// everything. session may be nil; the rule then evaluates against an
// empty map.
func New(rule string, session SessionFunc, opts ...Option) (*Guard, error) {
	g := &Guard{
		rule:    rule,
		session: session,
		log:     logr.Discard(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if rule == "" {
		return g, nil
	}

	env, err := cel.NewEnv(
		cel.Variable("_", cel.DynType),
		celext.Strings(),
		celext.Lists(),
		celext.Math(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create rule environment: %w", err)
	}
	ast, issues := env.Compile(rule)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("invalid guard rule %q: %w", rule, issues.Err())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("guard rule program: %w", err)
	}
	g.program = prg
	return g, nil
}

// Rule returns the configured rule expression.
func (g *Guard) Rule() string { return g.rule }

// SetPrompt routes future login prompts to fn. The shell binds itself
// here after construction.
func (g *Guard) SetPrompt(fn PromptFunc) { g.prompt = fn }

// IsAuthenticated evaluates the rule against the current session
// snapshot. A rule that yields anything but a bool is an error.
func (g *Guard) IsAuthenticated(ctx context.Context) (bool, error) {
	if g.program == nil {
		return true, nil
	}
	snapshot := map[string]interface{}{}
	if g.session != nil {
		snapshot = g.session()
	}
	result, _, err := g.program.ContextEval(ctx, map[string]interface{}{
		"_": snapshot,
	})
	if err != nil {
		return false, fmt.Errorf("guard rule eval: %w", err)
	}
	b, ok := result.(types.Bool)
	if !ok {
		return false, fmt.Errorf("guard rule %q returned %s, want bool", g.rule, result.Type().TypeName())
	}
	return bool(b), nil
}

// PromptLogin forwards the prompt to the configured callback, or logs
// it when none is set.
func (g *Guard) PromptLogin(area, message string) {
	if g.prompt != nil {
		g.prompt(area, message)
		return
	}
	g.log.Info("login required", "area", area, "message", message)
}
