package types

import (
	"errors"
	"fmt"
	"strings"
)

// Supported backend drivers.
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Display defaults for new categories when config.yaml and the environment set none.
const (
	DefaultCategoryIcon        = "📚"
	DefaultCategoryColor       = "#4CAF50"
	DefaultCategoryDescription = "%s题库"
)

// Config holds the backend selection and the display defaults used when
// new categories are created.
type Config struct {
	Backend  string        `json:"driver" yaml:"driver"`
	Database string        `json:"database" yaml:"database"`
	Category CategoryStyle `json:"category" yaml:"category"`
}

// CategoryStyle is the display metadata written to newly created categories.
// Description is a fmt pattern receiving the category name.
type CategoryStyle struct {
	Icon        string `json:"icon" yaml:"icon"`
	Color       string `json:"color" yaml:"color"`
	Description string `json:"description" yaml:"description"`
}

// Config validation errors.
var (
	ErrBackendEmpty    = errors.New("backend must not be empty")
	ErrBackendUnknown  = errors.New("unknown backend")
	ErrDatabaseEmpty   = errors.New("database must not be empty")
	ErrInvalidTemplate = errors.New("category description must contain exactly one %s")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendSQLite:   true,
	BackendPostgres: true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return fmt.Errorf("%w: %q", ErrBackendUnknown, c.Backend)
	}
	if c.Database == "" {
		return ErrDatabaseEmpty
	}
	if d := c.Category.Description; d != "" && strings.Count(d, "%s") != 1 {
		return ErrInvalidTemplate
	}
	return nil
}

// WithDefaults returns a copy of the style with empty fields filled in.
func (s CategoryStyle) WithDefaults() CategoryStyle {
	if s.Icon == "" {
		s.Icon = DefaultCategoryIcon
	}
	if s.Color == "" {
		s.Color = DefaultCategoryColor
	}
	if s.Description == "" {
		s.Description = DefaultCategoryDescription
	}
	return s
}

// DescribeCategory renders the description for a new category.
func (s CategoryStyle) DescribeCategory(name string) string {
	return fmt.Sprintf(s.WithDefaults().Description, name)
}
