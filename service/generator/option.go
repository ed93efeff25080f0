package generator

import (
	"math/rand"

	"github.com/viant/gridlock/service/dao/catalog"
)

// Option customizes the generator service.
type Option func(s *Service)

// WithConfig replaces the generation settings.
func WithConfig(config Config) Option {
	return func(s *Service) {
		s.config = config
	}
}

// WithCatalog sets the template catalog.
func WithCatalog(catalogService *catalog.Service) Option {
	return func(s *Service) {
		s.catalog = catalogService
	}
}

// WithSeed makes generation deterministic for the supplied seed.
func WithSeed(seed int64) Option {
	return func(s *Service) {
		s.rand = rand.New(rand.NewSource(seed))
	}
}

// WithRandSource sets a custom random source.
func WithRandSource(source rand.Source) Option {
	return func(s *Service) {
		s.rand = rand.New(source)
	}
}
