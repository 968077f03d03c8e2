package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

var (
	// ErrNoCategories is returned when projects exist but no categories are listed.
	ErrNoCategories = errors.New("content: projects listed without categories")

	validate = validator.New()
)

// UnknownCategoryError reports a project whose category is not in Site.Categories.
type UnknownCategoryError struct {
	Project  string
	Category string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("content: project %q uses unknown category %q", e.Project, e.Category)
}

// Default returns the built-in site content.
func Default() (*Site, error) {
	return Parse(defaultYAML)
}

// Load reads, normalizes and validates a YAML content file.
func Load(path string) (*Site, error) {
	if path == "" {
		return nil, fmt.Errorf("content: path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("content: read %s: %w", path, err)
	}

	site, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return site, nil
}

// Parse decodes YAML content, ensures the category list starts with the
// sentinel and validates the result.
func Parse(data []byte) (*Site, error) {
	var site Site
	if err := yaml.Unmarshal(data, &site); err != nil {
		return nil, fmt.Errorf("content: parse yaml: %w", err)
	}

	site.normalize()

	if err := site.Validate(); err != nil {
		return nil, err
	}
	return &site, nil
}

func (s *Site) normalize() {
	categories := make([]string, 0, len(s.Categories)+1)
	categories = append(categories, AllCategory)
	for _, c := range s.Categories {
		if c == AllCategory {
			continue
		}
		categories = append(categories, c)
	}
	s.Categories = categories
}

// Validate checks required fields and that every project category is drawn
// from the category list.
func (s *Site) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("content: invalid: %w", err)
	}

	if len(s.Projects) > 0 && len(s.Categories) < 2 {
		return ErrNoCategories
	}

	for _, p := range s.Projects {
		if p.Category == AllCategory || !s.HasCategory(p.Category) {
			return &UnknownCategoryError{Project: p.Title, Category: p.Category}
		}
	}
	return nil
}
