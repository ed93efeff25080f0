package catalog

import "github.com/viant/gridlock/service/meta"

// Option customizes the catalog service.
type Option func(s *Service)

// WithMetaService sets the meta service
func WithMetaService(metaService *meta.Service) Option {
	return func(s *Service) {
		s.metaService = metaService
	}
}

// WithTemplates replaces the initial template set.
func WithTemplates(templates []*Template) Option {
	return func(s *Service) {
		s.templates = templates
	}
}
