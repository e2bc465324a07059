package classifier

import (
	"errors"
	"fmt"
	"regexp"
)

// FallbackName is the name of the catch-all category a table resolves to
// when nothing else scores above the threshold.
const FallbackName = "other"

// Priorities accepted by Category.Validate.
const (
	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

var (
	ErrInvalidCategory   = errors.New("invalid category")
	ErrDuplicateCategory = errors.New("category already registered")
	ErrEmptyTable        = errors.New("category table is empty")
)

// Category is a named ticket classification bucket with its matching rules
// and routing metadata. Keywords are matched as case-insensitive substrings,
// Patterns as regular expressions.
type Category struct {
	Name           string   `json:"name" yaml:"name"`
	Description    string   `json:"description" yaml:"description"`
	Keywords       []string `json:"keywords" yaml:"keywords"`
	Patterns       []string `json:"patterns" yaml:"patterns"`
	Priority       string   `json:"priority" yaml:"priority"`
	AutoResolvable bool     `json:"auto_resolvable" yaml:"auto_resolvable"`
}

// Validate checks the category definition. Invalid definitions are rejected
// at registration time, before they can reach a classifier.
func (c Category) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidCategory)
	}
	if c.Description == "" {
		return fmt.Errorf("%w: category %q: description is required", ErrInvalidCategory, c.Name)
	}
	switch c.Priority {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
	default:
		return fmt.Errorf("%w: category %q: unknown priority %q", ErrInvalidCategory, c.Name, c.Priority)
	}
	for _, k := range c.Keywords {
		if k == "" {
			return fmt.Errorf("%w: category %q: empty keyword", ErrInvalidCategory, c.Name)
		}
	}
	for _, p := range c.Patterns {
		if _, err := regexp.Compile("(?i)" + p); err != nil {
			return fmt.Errorf("%w: category %q: pattern %q: %v", ErrInvalidCategory, c.Name, p, err)
		}
	}
	return nil
}

// CategoryByName returns the first category with the given name, or false
// when the table has no such entry.
func CategoryByName(categories []Category, name string) (Category, bool) {
	for _, c := range categories {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}
