package nav

// State is the shared application state the host shell exposes to the
// navigation engine. The Navigator is the only component permitted to
// write CurrentPath; everything else reads it. MenuOpen is closed by
// the Navigator on a route change and may be toggled freely by the
// shell.
type State struct {
	CurrentPath string
	MenuOpen    bool
}
