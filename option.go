package gridlock

import (
	"math/rand"

	"github.com/viant/afs/storage"
	"github.com/viant/gridlock/model/types"
	"github.com/viant/gridlock/runtime/session"
	"github.com/viant/gridlock/service/dao"
	"github.com/viant/gridlock/service/dao/catalog"
	"github.com/viant/gridlock/service/event"
	"github.com/viant/gridlock/service/meta"
	"github.com/viant/gridlock/tracing"
	"github.com/viant/x"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option customizes the gridlock service.
type Option func(s *Service)

// WithConfig replaces the engine configuration.
func WithConfig(config *Config) Option {
	return func(s *Service) {
		s.config = config
	}
}

// WithSeed makes level generation deterministic for the supplied seed.
func WithSeed(seed int64) Option {
	return func(s *Service) {
		source := rand.NewSource(seed)
		s.randSource = &source
	}
}

// WithRandSource sets a custom random source for level generation.
func WithRandSource(source rand.Source) Option {
	return func(s *Service) {
		s.randSource = &source
	}
}

// WithExtensionTypes sets the extension types
func WithExtensionTypes(types ...*x.Type) Option {
	return func(s *Service) {
		s.extensionTypes = types
	}
}

// WithExtensionServices sets the extension services
func WithExtensionServices(services ...types.Service) Option {
	return func(s *Service) {
		s.extensionServices = services
	}
}

func WithEventService(service *event.Service) Option {
	return func(s *Service) {
		s.eventService = service
	}
}

// WithMetaService sets the meta service
func WithMetaService(service *meta.Service) Option {
	return func(s *Service) {
		s.metaService = service
	}
}

// WithMetaBaseURL sets the meta base URL
func WithMetaBaseURL(url string) Option {
	return func(s *Service) {
		s.metaBaseURL = url
	}
}

// WithMetaFsOptions with meta file system options
func WithMetaFsOptions(options ...storage.Option) Option {
	return func(s *Service) {
		s.metaFsOptions = options
	}
}

// WithCatalogURL loads the template catalog from the supplied location
// before the first level is generated.
func WithCatalogURL(url string) Option {
	return func(s *Service) {
		s.catalogURL = url
	}
}

// WithCatalogDAO sets the template catalog service.
func WithCatalogDAO(service *catalog.Service) Option {
	return func(s *Service) {
		s.catalogDAO = service
	}
}

// WithSessionDAO sets the session store.
func WithSessionDAO(service dao.Service[string, session.Session]) Option {
	return func(s *Service) {
		s.runtime.sessionDAO = service
	}
}

// WithTracing configures OpenTelemetry tracing for the service. If
// outputFile is empty the stdout exporter is used; otherwise traces are
// written to the supplied file path. Safe to call multiple times, the first
// successful initialisation wins.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		_ = tracing.Init(serviceName, serviceVersion, outputFile)
	}
}

// WithTracingExporter configures OpenTelemetry tracing using a custom
// SpanExporter, enabling integrations beyond the built-in stdout exporter
// (OTLP, Jaeger, Zipkin, ...). Safe to call multiple times, the first
// successful initialisation wins.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		_ = tracing.InitWithExporter(serviceName, serviceVersion, exporter)
	}
}
