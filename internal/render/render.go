// Package render turns extracted events into the static schedule page.
//
// The page is assembled from two embedded html/template definitions: "cards",
// the <main> section with one .card per event, and "page", the fixed shell with
// header, navigation menu, search box and footer. Every card carries a
// data-sport attribute and the menu links carry matching values; the
// stylesheet and script that act on those hooks are served alongside the page
// and are not generated here. All interpolated text is escaped.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/pfrederiksen/sportify/internal/event"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

// MenuItem is one sport filter entry in the navigation menu
type MenuItem struct {
	Sport string `mapstructure:"sport" json:"sport" yaml:"sport"`
	Label string `mapstructure:"label" json:"label" yaml:"label"`
}

// DefaultMenu mirrors the supported sports. It is maintained by hand, so the
// slugs do not always match the sport values on the cards ("field-hockey").
func DefaultMenu() []MenuItem {
	return []MenuItem{
		{Sport: "all", Label: "All"},
		{Sport: "soccer", Label: "Soccer"},
		{Sport: "cricket", Label: "Cricket"},
		{Sport: "field-hockey", Label: "Field Hockey"},
		{Sport: "tennis", Label: "Tennis"},
		{Sport: "boxing", Label: "Boxing"},
		{Sport: "wwe", Label: "WWE"},
		{Sport: "basketball", Label: "Basketball"},
		{Sport: "handball", Label: "Handball"},
		{Sport: "lacrosse", Label: "Lacrosse"},
		{Sport: "volleyball", Label: "Volleyball"},
		{Sport: "hockey", Label: "Hockey"},
	}
}

// Layout holds the fixed parts of the page
type Layout struct {
	Title      string
	Brand      string
	Stylesheet string
	Script     string
	TimeLabel  string
	Year       int
	Menu       []MenuItem
}

// Renderer renders events into HTML
type Renderer struct {
	tmpl   *template.Template
	layout Layout
}

// New parses the embedded templates
func New(layout Layout) (*Renderer, error) {
	tmpl, err := template.New("sportify").
		Funcs(template.FuncMap{"join": strings.Join}).
		ParseFS(templateFS, "templates/*.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	menu := make([]MenuItem, len(layout.Menu))
	copy(menu, layout.Menu)
	layout.Menu = menu

	return &Renderer{
		tmpl:   tmpl,
		layout: layout,
	}, nil
}

// Cards renders the <main> section holding one card per event
func (r *Renderer) Cards(events []*event.Event) (template.HTML, error) {
	data := struct {
		Events    []*event.Event
		TimeLabel string
	}{
		Events:    events,
		TimeLabel: r.layout.TimeLabel,
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "cards", data); err != nil {
		return "", fmt.Errorf("rendering cards: %w", err)
	}

	// Output of html/template is already escaped
	return template.HTML(buf.String()), nil // nolint:gosec
}

// Page wraps a rendered <main> section in the full document
func (r *Renderer) Page(section template.HTML) ([]byte, error) {
	data := struct {
		Layout
		Main template.HTML
	}{
		Layout: r.layout,
		Main:   section,
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "page", data); err != nil {
		return nil, fmt.Errorf("rendering page: %w", err)
	}
	return buf.Bytes(), nil
}

// Render produces the complete document for events
func (r *Renderer) Render(events []*event.Event) ([]byte, error) {
	section, err := r.Cards(events)
	if err != nil {
		return nil, err
	}
	return r.Page(section)
}
