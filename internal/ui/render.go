package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/navkit/pkg/pathcodec"
)

const maxCrumbWidth = 24

// renderBreadcrumbs shows the current location as display names joined
// with chevrons. Each crumb is truncated so deep paths stay on one
// line.
func (s *Shell) renderBreadcrumbs(currentPath string) string {
	clean, _ := pathcodec.Split(currentPath)
	clean = strings.Trim(clean, "/")
	if clean == "" {
		return s.styled("(no location)", "243", false)
	}

	reg := s.navigator.Registry()
	segments := strings.Split(clean, "/")
	crumbs := make([]string, 0, len(segments))
	for i := range segments {
		partial := strings.Join(segments[:i+1], "/")
		name := reg.DisplayName(partial, false)
		crumbs = append(crumbs, runewidth.Truncate(name, maxCrumbWidth, "…"))
	}
	return s.styled(strings.Join(crumbs, " › "), "15", true)
}

// renderMenu lists the main sections with the cursor on the selected
// one.
func (s *Shell) renderMenu() string {
	var b strings.Builder
	for i, section := range s.sections() {
		prefix := "  "
		if i == s.menuIndex {
			prefix = "❯ "
		}
		line := prefix + section.DisplayName
		if section.Icon != "" {
			line = prefix + section.Icon + " " + section.DisplayName
		}
		if i == s.menuIndex {
			line = s.styled(line, "10", true)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// renderParams shows the parameters in effect for the current route as
// a two-column table.
func (s *Shell) renderParams() string {
	current := s.navigator.State().CurrentPath
	p := s.navigator.ResolveParams(current)
	if p.IsEmpty() {
		return s.styled("no parameters", "243", false)
	}

	keyWidth := 0
	for _, k := range p.Keys() {
		if w := runewidth.StringWidth(k); w > keyWidth {
			keyWidth = w
		}
	}

	var b strings.Builder
	b.WriteString(s.styled("PARAMETERS", "11", true))
	b.WriteString("\n")
	for _, k := range p.Keys() {
		v, _ := p.Get(k)
		b.WriteString("  ")
		b.WriteString(s.styled(runewidth.FillRight(k, keyWidth), "14", false))
		b.WriteString("  ")
		b.WriteString(v.Text())
		b.WriteString("\n")
	}
	return b.String()
}

// renderBoard lists the pinned containers when the dashboard is the
// current location.
func (s *Shell) renderBoard() string {
	containers := s.board.Containers()
	if len(containers) == 0 {
		return s.styled("nothing pinned", "243", false)
	}

	var b strings.Builder
	b.WriteString(s.styled("PINNED", "11", true))
	b.WriteString("\n")
	for _, c := range containers {
		clean, _ := pathcodec.Split(c.Path)
		title := c.Title
		if title == "" {
			title = s.navigator.Registry().DisplayName(clean, true)
		}
		b.WriteString("  " + title)
		params := s.navigator.ResolveParams(c.Path)
		if !params.IsEmpty() {
			b.WriteString(s.styled("  "+pathcodec.Encode(params), "243", false))
		}
		b.WriteString("\n")
	}
	return b.String()
}
