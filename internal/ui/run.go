package ui

import (
	"os"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"
)

// Run starts the Bubble Tea shell and navigates to startPath first so
// the initial frame shows a real location. Width/height of 0
// auto-detect the terminal size. Extra ProgramOptions (e.g., custom
// IO) can be provided to mirror tea.NewProgram.
func Run(s *Shell, startPath string, width, height int, opts ...tea.ProgramOption) error {
	if startPath != "" {
		s.goTo(startPath)
	}

	if width <= 0 || height <= 0 {
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			if width <= 0 {
				width = w
			}
			if height <= 0 {
				height = h
			}
		}
	}
	if width > 0 && height > 0 {
		s.width = width
		s.height = height
		opts = append(opts, tea.WithWindowSize(width, height))
	}

	prog := tea.NewProgram(s, opts...)
	_, err := prog.Run()
	return err
}
