// Package view composes the page sections and renders them with the
// embedded HTML templates.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/url"

	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/projects"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// href trusts links from the site's own content file, so tel: and other
// schemes html/template would otherwise reject are allowed.
var funcs = template.FuncMap{
	"categoryQuery": func(c string) string { return "/projects?category=" + url.QueryEscape(c) },
	"delay":         func(i int) string { return fmt.Sprintf("%.1fs", float64(i)*0.2) },
	"href":          func(s string) template.URL { return template.URL(s) },
}

// Templates parses the embedded templates. Each file is addressable by its
// file name and the fragments by their defined names.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
}

// Static returns the browser assets served under /static.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Page is the root composer: the four sections in their fixed order.
type Page struct {
	Title    string
	Hero     Hero
	Timeline Timeline
	Projects Projects
	Contact  Contact
}

type Hero struct {
	Profile      content.Profile
	Socials      []content.Link
	Technologies []content.TechGroup
}

type Timeline struct {
	Entries []TimelineItem
}

// TimelineItem alternates sides by position.
type TimelineItem struct {
	content.TimelineEntry
	Index int
	Left  bool
}

type Projects struct {
	Tabs     []Tab
	Selected string
	Visible  []content.ProjectEntry
}

type Tab struct {
	Name   string
	Active bool
}

type Contact struct {
	Heading  string
	Intro    string
	Channels []content.Channel
	Form     ContactForm
}

// ContactForm is the form fragment: current values plus the outcome of the
// last submission, if any.
type ContactForm struct {
	Values contact.Form
	Errors contact.FieldErrors
	Notice string
	Failed bool
}

// NewPage builds the page for the current gallery selection and form state.
func NewPage(site *content.Site, gallery *projects.Gallery, form ContactForm) Page {
	return Page{
		Title: site.Profile.Name + " | " + site.Profile.Headline,
		Hero: Hero{
			Profile:      site.Profile,
			Socials:      site.Socials,
			Technologies: site.Technologies,
		},
		Timeline: NewTimeline(site.Timeline),
		Projects: NewProjects(gallery),
		Contact: Contact{
			Heading:  site.Contact.Heading,
			Intro:    site.Contact.Intro,
			Channels: site.Contact.Channels,
			Form:     form,
		},
	}
}

func NewTimeline(entries []content.TimelineEntry) Timeline {
	items := make([]TimelineItem, len(entries))
	for i, e := range entries {
		items[i] = TimelineItem{TimelineEntry: e, Index: i, Left: i%2 == 0}
	}
	return Timeline{Entries: items}
}

func NewProjects(g *projects.Gallery) Projects {
	tabs := make([]Tab, 0, len(g.Categories()))
	for _, c := range g.Categories() {
		tabs = append(tabs, Tab{Name: c, Active: c == g.Selected()})
	}
	return Projects{Tabs: tabs, Selected: g.Selected(), Visible: g.Visible()}
}

// Render executes the named template into w.
func Render(t *template.Template, w io.Writer, name string, data any) error {
	if err := t.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("view: render %s: %w", name, err)
	}
	return nil
}
