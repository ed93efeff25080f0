package arbiter

import "github.com/viant/gridlock/service/detector"

// Option customizes the arbiter service.
type Option func(s *Service)

// WithDetector sets the deadlock detector.
func WithDetector(detectorService *detector.Service) Option {
	return func(s *Service) {
		s.detector = detectorService
	}
}
