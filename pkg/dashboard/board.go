// Package dashboard implements the pinned-container board: an ordered
// list of routes the user keeps on their dashboard. Each container
// stores its own full path string, which may carry a parameter
// segment — a pinned card's parameter state is anchored here, not to
// the shell's single current path.
package dashboard

import (
	"github.com/go-logr/logr"

	"github.com/oakwood-commons/navkit/pkg/pathcodec"
)

// Container is one pinned entry. Path may include a parameter segment.
type Container struct {
	Path  string
	Title string
}

// Board holds the pinned containers in pin order.
type Board struct {
	containers []Container
	log        logr.Logger
}

// NewBoard creates an empty Board.
func NewBoard(log logr.Logger) *Board {
	return &Board{log: log}
}

// Containers returns a copy of the pinned entries in order.
func (b *Board) Containers() []Container {
	out := make([]Container, len(b.containers))
	copy(out, b.containers)
	return out
}

// Pin adds a container, or updates the stored path and title when one
// with the same clean path is already pinned. Pinning never
// duplicates.
func (b *Board) Pin(path, title string) {
	clean, _ := pathcodec.Split(path)
	for i, c := range b.containers {
		existing, _ := pathcodec.Split(c.Path)
		if existing == clean {
			b.containers[i].Path = path
			if title != "" {
				b.containers[i].Title = title
			}
			return
		}
	}
	b.containers = append(b.containers, Container{Path: path, Title: title})
	b.log.V(1).Info("container pinned", "path", path)
}

// Unpin removes the container whose clean path matches, reporting
// whether one was found.
func (b *Board) Unpin(cleanPath string) bool {
	want, _ := pathcodec.Split(cleanPath)
	for i, c := range b.containers {
		existing, _ := pathcodec.Split(c.Path)
		if existing == want {
			b.containers = append(b.containers[:i], b.containers[i+1:]...)
			return true
		}
	}
	return false
}

// Find returns the container whose clean path matches containerPath.
func (b *Board) Find(containerPath string) (Container, bool) {
	want, _ := pathcodec.Split(containerPath)
	for _, c := range b.containers {
		existing, _ := pathcodec.Split(c.Path)
		if existing == want {
			return c, true
		}
	}
	return Container{}, false
}

// IsPinned reports whether a container with the same clean path exists.
func (b *Board) IsPinned(containerPath string) bool {
	_, ok := b.Find(containerPath)
	return ok
}

// RewritePath replaces the stored full path of the container matching
// oldCleanPath. Used when pruning stale cached parameters so a later
// render does not resurrect them.
func (b *Board) RewritePath(oldCleanPath, newFullPath string) {
	want, _ := pathcodec.Split(oldCleanPath)
	for i, c := range b.containers {
		existing, _ := pathcodec.Split(c.Path)
		if existing == want {
			b.containers[i].Path = newFullPath
			return
		}
	}
	b.log.V(1).Info("rewrite for unpinned container ignored", "path", oldCleanPath)
}
