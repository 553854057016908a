package config

// File is the full configuration document: application metadata, the
// navigable section tree, dashboard pins, and the access guard rule.
type File struct {
	App      AppConfig   `yaml:"app"`
	Sections []Section   `yaml:"sections"`
	Pins     []Pin       `yaml:"pins"`
	Guard    GuardConfig `yaml:"guard"`
}

// AppConfig carries top-level application metadata.
type AppConfig struct {
	Name string `yaml:"name"`
	// DashboardSection overrides the reserved section name that denotes
	// the pinned/dashboard context.
	DashboardSection string `yaml:"dashboard_section"`
	StartPath        string `yaml:"start_path"`
}

// Section declares a main navigation section and its route subtree.
type Section struct {
	Key            string       `yaml:"key"`
	DisplayName    string       `yaml:"display_name"`
	DashboardTitle string       `yaml:"dashboard_title"`
	Icon           string       `yaml:"icon"`
	Routes         []RouteEntry `yaml:"routes"`
}

// RouteEntry declares a route nested under a section, recursively.
type RouteEntry struct {
	Key            string       `yaml:"key"`
	DisplayName    string       `yaml:"display_name"`
	DashboardTitle string       `yaml:"dashboard_title"`
	Icon           string       `yaml:"icon"`
	Routes         []RouteEntry `yaml:"routes"`
}

// Pin declares a container pinned to the dashboard at startup. Path
// may carry a parameter segment.
type Pin struct {
	Path  string `yaml:"path"`
	Title string `yaml:"title"`
}

// GuardConfig configures the access guard. Rule is a CEL expression
// over the session map bound to "_"; empty means no gate.
type GuardConfig struct {
	Rule    string                 `yaml:"rule"`
	Session map[string]interface{} `yaml:"session"`
}
