package event

import (
	"github.com/viant/gridlock/service/messaging/memory"
)

type Option func(s *Service)

// WithNewMemoryQueueConfig sets the per-queue memory configuration factory.
func WithNewMemoryQueueConfig(newConfig func(name string) memory.Config) Option {
	return func(s *Service) {
		s.memNewQueueConfig = newConfig
	}
}
