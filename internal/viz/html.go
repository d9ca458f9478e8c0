package viz

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/matsen/dendro/internal/dendro"
)

// compiledTemplate is parsed at init time to fail fast on template errors.
var compiledTemplate *template.Template

func init() {
	compiledTemplate = template.Must(template.New("viz").Parse(htmlTemplate))
}

// Default canvas size in pixels.
const (
	DefaultWidth  = 800
	DefaultHeight = 500
)

// HTMLOptions configures HTML generation.
type HTMLOptions struct {
	Title  string
	Render dendro.RenderOptions
}

// DefaultOptions returns default HTML generation options.
func DefaultOptions() HTMLOptions {
	render := dendro.DefaultRenderOptions()
	render.Width = DefaultWidth
	render.Height = DefaultHeight
	return HTMLOptions{
		Title:  "Dendrogram",
		Render: render,
	}
}

// GenerateHTML generates a self-contained HTML file with the dendrogram
// drawn as inline SVG.
func GenerateHTML(d *dendro.Dendrogram, opts HTMLOptions) (string, error) {
	if d == nil {
		return "", fmt.Errorf("dendrogram cannot be nil")
	}

	if err := opts.Render.Validate(d); err != nil {
		return "", err
	}
	render := opts.Render.Normalize()
	if render.Width == 0 {
		render.Width = DefaultWidth
	}
	if render.Height == 0 {
		render.Height = DefaultHeight
	}
	if opts.Title == "" {
		opts.Title = "Dendrogram"
	}

	if d.IsEmpty() {
		return generateEmptyHTML(opts.Title), nil
	}

	data := templateData{
		Title: opts.Title,
		Chart: buildChart(d, render),
	}

	var buf bytes.Buffer
	if err := compiledTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering HTML template: %w", err)
	}

	return buf.String(), nil
}

// templateData holds data for the HTML template.
type templateData struct {
	Title string
	Chart svgChart
}

// generateEmptyHTML returns HTML for an empty dendrogram.
func generateEmptyHTML(title string) string {
	return `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>` + template.HTMLEscapeString(title) + ` - Empty</title>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      display: flex;
      justify-content: center;
      align-items: center;
      height: 100vh;
      margin: 0;
      background: #f5f5f5;
    }
    .empty-state {
      text-align: center;
      color: #666;
    }
    .empty-state h2 {
      margin-bottom: 0.5em;
      color: #333;
    }
    .empty-state code {
      background: #e0e0e0;
      padding: 2px 6px;
      border-radius: 3px;
    }
  </style>
</head>
<body>
  <div class="empty-state">
    <h2>No dendrogram data</h2>
    <p>The input has no links and no leaves to draw.</p>
    <p>Check the linkage with <code>dendro leaders</code></p>
  </div>
</body>
</html>`
}

const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>{{.Title}}</title>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      margin: 0;
      padding: 16px;
      background: #f5f5f5;
    }
    svg {
      background: white;
      box-shadow: 0 2px 8px rgba(0,0,0,0.15);
    }
    .tick {
      font-size: 11px;
      fill: #333;
    }
    .node:hover circle {
      stroke-width: 3;
    }
  </style>
</head>
<body>
  <svg xmlns="http://www.w3.org/2000/svg" width="{{.Chart.Width}}" height="{{.Chart.Height}}" viewBox="0 0 {{.Chart.Width}} {{.Chart.Height}}">
    <g class="links" fill="none">
      {{- range .Chart.Links}}
      <path d="{{.Path}}" stroke="{{.Color}}" stroke-width="{{.Width}}" stroke-dasharray="{{.Dash}}" stroke-opacity="{{.Opacity}}"></path>
      {{- end}}
    </g>
    <g class="nodes">
      {{- range .Chart.Nodes}}
      <g class="node">
        <circle cx="{{.CX}}" cy="{{.CY}}" r="{{.R}}" fill="{{.Fill}}" stroke="{{.Stroke}}" opacity="{{.Opacity}}">
          {{- if .Title}}<title>{{.Title}}</title>{{end -}}
        </circle>
        {{- if .Label}}
        <text x="{{.CX}}" y="{{.CY}}" dy="-10" text-anchor="middle" font-size="{{.LabelSize}}" fill="{{.LabelColor}}" paint-order="stroke" stroke="#333" stroke-width="2">{{.Label}}</text>
        {{- end}}
      </g>
      {{- end}}
    </g>
    <g class="axis">
      {{- range .Chart.Ticks}}
      <text class="tick" x="{{.X}}" y="{{.Y}}" text-anchor="{{.Anchor}}" dominant-baseline="middle"{{if .Transform}} transform="{{.Transform}}"{{end}}>{{.Text}}</text>
      {{- end}}
    </g>
  </svg>
</body>
</html>`
