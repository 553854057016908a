package nav

import (
	"strings"
	"time"

	"github.com/go-logr/logr"
	"go.uber.org/atomic"
)

// DefaultGuardClearDelay is how long the re-entrancy guard stays set
// after a back/forward event before history writes are allowed again.
const DefaultGuardClearDelay = 100 * time.Millisecond

// EncodeToken turns a full path into a history token. Spaces are
// substituted with '+' on top of the codec's own encoding, because
// history fragments must avoid characters the host treats specially.
func EncodeToken(path string) string {
	return "#" + strings.ReplaceAll(path, " ", "+")
}

// DecodeToken reverses EncodeToken.
func DecodeToken(token string) string {
	return strings.ReplaceAll(strings.TrimPrefix(token, "#"), "+", " ")
}

// Stack abstracts the host's history store. Push adds a new entry
// discarding any forward entries; Replace overwrites the current one.
type Stack interface {
	Push(token string)
	Replace(token string)
	Current() string
}

// HistoryOption configures a History.
type HistoryOption func(*History)

// WithGuardClearDelay overrides the re-entrancy guard clear delay.
func WithGuardClearDelay(d time.Duration) HistoryOption {
	return func(h *History) { h.clearDelay = d }
}

// WithHistoryLogger sets the logger.
func WithHistoryLogger(log logr.Logger) HistoryOption {
	return func(h *History) { h.log = log }
}

// History keeps the Navigator's notion of the current location in sync
// with the host's history stack, and feeds back/forward events back
// into the Navigator without looping.
type History struct {
	stack      Stack
	onNavigate func(path string)
	inPop      atomic.Bool
	clearDelay time.Duration
	log        logr.Logger
}

// NewHistory creates a History over the given stack.
func NewHistory(stack Stack, opts ...HistoryOption) *History {
	h := &History{
		stack:      stack,
		clearDelay: DefaultGuardClearDelay,
		log:        logr.Discard(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Bind sets the callback invoked with the decoded path when the host
// signals a back/forward event. The Navigator binds itself here.
func (h *History) Bind(fn func(path string)) {
	h.onNavigate = fn
}

// PushOrReplace writes a history entry for path: a new entry when push
// is true, otherwise replacing the current one. Writes are suppressed
// while the re-entrancy guard is set — the host already recorded the
// entry that triggered the event being handled.
func (h *History) PushOrReplace(path string, push bool) {
	if h.inPop.Load() {
		h.log.V(1).Info("history write suppressed during back/forward handling", "path", path)
		return
	}
	token := EncodeToken(path)
	if push {
		h.stack.Push(token)
	} else {
		h.stack.Replace(token)
	}
}

// HandlePop processes a native back/forward signal carrying the token
// now current in the host stack. It sets the guard, hands the decoded
// path to the bound Navigator with history origin, and clears the
// guard after a short delay. The delayed clear matters: the commit
// cascade can keep reacting after this call returns, and clearing too
// early would let that cascade re-push an entry the host already has.
func (h *History) HandlePop(token string) {
	h.inPop.Store(true)
	path := DecodeToken(token)
	if h.onNavigate != nil {
		h.onNavigate(path)
	}
	time.AfterFunc(h.clearDelay, func() {
		h.inPop.Store(false)
	})
}

// Guarded reports whether the re-entrancy guard is currently set.
func (h *History) Guarded() bool {
	return h.inPop.Load()
}

// MemoryStack is an in-process Stack with back/forward traversal. It
// stands in for a host-owned history store (a browser stack, a
// terminal shell's view history) in the demo shell and in tests.
type MemoryStack struct {
	entries []string
	pos     int
}

// NewMemoryStack returns a stack holding a single empty entry.
func NewMemoryStack() *MemoryStack {
	return &MemoryStack{entries: []string{""}}
}

// Push appends a new entry, discarding any forward entries.
func (s *MemoryStack) Push(token string) {
	s.entries = append(s.entries[:s.pos+1], token)
	s.pos = len(s.entries) - 1
}

// Replace overwrites the current entry.
func (s *MemoryStack) Replace(token string) {
	s.entries[s.pos] = token
}

// Current returns the current entry's token.
func (s *MemoryStack) Current() string {
	return s.entries[s.pos]
}

// Back moves to the previous entry, reporting false at the start.
func (s *MemoryStack) Back() (string, bool) {
	if s.pos == 0 {
		return "", false
	}
	s.pos--
	return s.entries[s.pos], true
}

// Forward moves to the next entry, reporting false at the end.
func (s *MemoryStack) Forward() (string, bool) {
	if s.pos >= len(s.entries)-1 {
		return "", false
	}
	s.pos++
	return s.entries[s.pos], true
}

// Len returns the number of entries.
func (s *MemoryStack) Len() int {
	return len(s.entries)
}
