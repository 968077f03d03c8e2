// Package content defines the data a portfolio page is rendered from and
// loads it from YAML.
package content

// AllCategory is the category sentinel: selecting it disables filtering.
const AllCategory = "All"

// Site is everything the page renders. It is read-only once loaded.
type Site struct {
	Profile      Profile         `yaml:"profile" json:"profile"`
	Socials      []Link          `yaml:"socials" json:"socials" validate:"dive"`
	Technologies []TechGroup     `yaml:"technologies" json:"technologies" validate:"dive"`
	Timeline     []TimelineEntry `yaml:"timeline" json:"timeline" validate:"dive"`
	Categories   []string        `yaml:"categories" json:"categories" validate:"dive,required"`
	Projects     []ProjectEntry  `yaml:"projects" json:"projects" validate:"dive"`
	Contact      Contact         `yaml:"contact" json:"contact"`
}

// Profile is the hero banner copy.
type Profile struct {
	Name     string `yaml:"name" json:"name" validate:"required"`
	Headline string `yaml:"headline" json:"headline"`
	Summary  string `yaml:"summary" json:"summary"`
	Avatar   string `yaml:"avatar" json:"avatar"`
}

// Link is an outbound link. Href is passed through untouched.
type Link struct {
	Label string `yaml:"label" json:"label" validate:"required"`
	Icon  string `yaml:"icon" json:"icon"`
	Href  string `yaml:"href" json:"href" validate:"required"`
}

type TechGroup struct {
	Name   string   `yaml:"name" json:"name" validate:"required"`
	Icon   string   `yaml:"icon" json:"icon"`
	Skills []string `yaml:"skills" json:"skills"`
}

// TimelineEntry is one career or education milestone. Entries have no
// identity beyond their position in Site.Timeline.
type TimelineEntry struct {
	Year         string   `yaml:"year" json:"year" validate:"required"`
	Organization string   `yaml:"organization" json:"organization" validate:"required"`
	Title        string   `yaml:"title" json:"title" validate:"required"`
	Description  string   `yaml:"description" json:"description"`
	Skills       []string `yaml:"skills" json:"skills"`
}

// ProjectEntry is one card in the project gallery.
type ProjectEntry struct {
	Title       string    `yaml:"title" json:"title" validate:"required"`
	Description string    `yaml:"description" json:"description"`
	Image       string    `yaml:"image" json:"image"`
	Category    string    `yaml:"category" json:"category" validate:"required"`
	Links       Links     `yaml:"links" json:"links"`
	Features    []Feature `yaml:"features" json:"features" validate:"dive"`
}

type Links struct {
	Source string `yaml:"source" json:"source,omitempty"`
	Demo   string `yaml:"demo" json:"demo,omitempty"`
}

// Feature is an {icon, label} badge on a project card.
type Feature struct {
	Icon  string `yaml:"icon" json:"icon"`
	Label string `yaml:"label" json:"label" validate:"required"`
}

type Contact struct {
	Heading  string    `yaml:"heading" json:"heading"`
	Intro    string    `yaml:"intro" json:"intro"`
	Channels []Channel `yaml:"channels" json:"channels" validate:"dive"`
}

// Channel is a way to reach the owner (email, phone, location).
type Channel struct {
	Icon  string `yaml:"icon" json:"icon"`
	Title string `yaml:"title" json:"title" validate:"required"`
	Value string `yaml:"value" json:"value" validate:"required"`
	Href  string `yaml:"href" json:"href"`
}

// HasCategory reports whether c is one of the site's filter categories.
func (s *Site) HasCategory(c string) bool {
	for _, existing := range s.Categories {
		if existing == c {
			return true
		}
	}
	return false
}
