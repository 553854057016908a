package main

import (
	"fmt"
	"html"
	"io"
	"os"
	"strings"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"gopkg.in/yaml.v3"
)

// Renders a static route-map page for a navigation config: the README
// converted to HTML, followed by the declared section tree and startup
// pins. Usage: generate_routemap <config.yaml> <out.html>

type routeEntry struct {
	Key            string       `yaml:"key"`
	DisplayName    string       `yaml:"display_name"`
	DashboardTitle string       `yaml:"dashboard_title"`
	Icon           string       `yaml:"icon"`
	Routes         []routeEntry `yaml:"routes"`
}

type navConfig struct {
	App struct {
		Name string `yaml:"name"`
	} `yaml:"app"`
	Sections []routeEntry `yaml:"sections"`
	Pins     []struct {
		Path  string `yaml:"path"`
		Title string `yaml:"title"`
	} `yaml:"pins"`
}

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintf(os.Stderr, "Usage: %s <config.yaml> <out.html>\n", os.Args[0])
		os.Exit(1)
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading config: %v\n", err)
		os.Exit(1)
	}
	var cfg navConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding config: %v\n", err)
		os.Exit(1)
	}

	f, err := os.Create(os.Args[2])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", os.Args[2], err)
		os.Exit(1)
	}
	defer f.Close()

	writeHeader(f, cfg.App.Name)

	if readme, err := os.ReadFile("README.md"); err == nil {
		f.Write(renderMarkdown(readme))
	}

	fmt.Fprintln(f, `  <h2>Route map</h2>`)
	fmt.Fprintln(f, `  <ul class="routemap">`)
	for _, s := range cfg.Sections {
		writeEntry(f, s, s.Key)
	}
	fmt.Fprintln(f, `  </ul>`)

	if len(cfg.Pins) > 0 {
		fmt.Fprintln(f, `  <h2>Pinned at startup</h2>`)
		fmt.Fprintln(f, `  <table class="pins">`)
		for _, p := range cfg.Pins {
			fmt.Fprintf(f, "    <tr><td>%s</td><td><code>%s</code></td></tr>\n",
				html.EscapeString(p.Title), html.EscapeString(p.Path))
		}
		fmt.Fprintln(f, `  </table>`)
	}

	writeFooter(f)
	fmt.Fprintf(os.Stderr, "Generated %s\n", os.Args[2])
}

func renderMarkdown(src []byte) []byte {
	extensions := parser.CommonExtensions | parser.AutoHeadingIDs | parser.NoEmptyLineBeforeBlock
	p := parser.NewWithExtensions(extensions)
	doc := p.Parse(src)

	opts := mdhtml.RendererOptions{Flags: mdhtml.CommonFlags | mdhtml.HrefTargetBlank}
	return markdown.Render(doc, mdhtml.NewRenderer(opts))
}

func writeEntry(w io.Writer, e routeEntry, path string) {
	name := e.DisplayName
	if name == "" {
		name = e.Key
	}
	label := html.EscapeString(name)
	if e.Icon != "" {
		label = e.Icon + " " + label
	}
	if e.DashboardTitle != "" {
		label += fmt.Sprintf(` <span class="board-title">(%s)</span>`, html.EscapeString(e.DashboardTitle))
	}
	fmt.Fprintf(w, "    <li>%s <code>%s</code>", label, html.EscapeString(path))
	if len(e.Routes) > 0 {
		fmt.Fprintln(w, "\n    <ul>")
		for _, child := range e.Routes {
			writeEntry(w, child, path+"/"+child.Key)
		}
		fmt.Fprintln(w, "    </ul>")
	}
	fmt.Fprintln(w, "</li>")
}

func writeHeader(w io.Writer, name string) {
	if name == "" {
		name = "navkit"
	}
	fmt.Fprintf(w, `<!doctype html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>%s - Route Map</title>
  <style>
    body { font-family: system-ui, -apple-system, sans-serif; max-width: 900px; margin: 40px auto; padding: 0 20px; line-height: 1.6; color: #333; }
    h1 { color: #2563eb; border-bottom: 2px solid #2563eb; padding-bottom: 10px; }
    h2 { color: #1e40af; margin-top: 30px; }
    code { background: #f1f5f9; padding: 2px 6px; border-radius: 3px; font-family: Monaco, Menlo, monospace; font-size: 0.9em; }
    pre { background: #1e293b; color: #e2e8f0; padding: 16px; border-radius: 6px; overflow-x: auto; }
    pre code { background: none; color: inherit; padding: 0; }
    .routemap li { margin: 4px 0; }
    .board-title { color: #64748b; font-size: 0.9em; }
    .pins { border-collapse: collapse; }
    .pins td { padding: 6px 12px; border-bottom: 1px solid #e2e8f0; }
  </style>
</head>
<body>
`, html.EscapeString(strings.TrimSpace(name)))
}

func writeFooter(w io.Writer) {
	fmt.Fprint(w, `</body>
</html>
`)
}
