package gridlock

import (
	"fmt"

	"github.com/viant/gridlock/service/generator"
)

// Config is a serialisable representation of the engine configuration. It
// can be populated from JSON or YAML; the zero value inherits every package
// default.
type Config struct {
	Generator generator.Config `json:"generator" yaml:"generator"`
	Journal   JournalConfig    `json:"journal" yaml:"journal"`
	// CatalogURL points at an optional template catalog document loaded at
	// start-up through the meta service.
	CatalogURL string `json:"catalogURL,omitempty" yaml:"catalogURL,omitempty"`
}

type JournalConfig struct {
	Limit int `json:"limit" yaml:"limit"`
}

// DefaultConfig returns a Config populated with the package defaults.
// Callers may modify the returned struct before passing it to New.
func DefaultConfig() *Config {
	return &Config{
		Generator: generator.DefaultConfig(),
		Journal:   JournalConfig{Limit: 0}, // journal package default
	}
}

// Validate returns an error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if err := c.Generator.Validate(); err != nil {
		return err
	}
	if c.Journal.Limit < 0 {
		return fmt.Errorf("journal.limit must be >= 0")
	}
	return nil
}
