package gridlock

import (
	"context"
	"math/rand"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/gridlock/extension"
	"github.com/viant/gridlock/model/types"
	aarbiter "github.com/viant/gridlock/service/action/arbiter"
	"github.com/viant/gridlock/service/arbiter"
	"github.com/viant/gridlock/service/dao/catalog"
	smemory "github.com/viant/gridlock/service/dao/session/memory"
	"github.com/viant/gridlock/service/detector"
	"github.com/viant/gridlock/service/event"
	"github.com/viant/gridlock/service/generator"
	"github.com/viant/gridlock/service/meta"

	"github.com/viant/x"
)

// Service assembles the engine: catalog, generator, detector, arbiter,
// session store, event service and the command registry.
type Service struct {
	runtime           *Runtime
	config            *Config
	metaService       *meta.Service
	catalogDAO        *catalog.Service
	eventService      *event.Service
	actions           *extension.Actions
	extensionTypes    []*x.Type
	extensionServices []types.Service
	randSource        *rand.Source
	metaBaseURL       string
	metaFsOptions     []storage.Option
	catalogURL        string
}

func (s *Service) init(options []Option) {
	for _, option := range options {
		option(s)
	}
	s.ensureBaseSetup()
	s.actions = extension.NewActions(s.extensionTypes...)
	s.actions.Register(aarbiter.New(s.runtime))
	for _, service := range s.extensionServices {
		s.actions.Register(service)
	}
	s.runtime.actions = s.actions
}

func (s *Service) ensureBaseSetup() {
	if s.config == nil {
		s.config = DefaultConfig()
	}
	if s.metaService == nil {
		s.metaService = meta.New(afs.New(), s.metaBaseURL, s.metaFsOptions...)
	}
	if s.catalogDAO == nil {
		s.catalogDAO = catalog.New(catalog.WithMetaService(s.metaService))
	}
	if s.catalogURL == "" {
		s.catalogURL = s.config.CatalogURL
	}
	if s.eventService == nil {
		s.eventService, _ = event.New()
	}
	if s.runtime.sessionDAO == nil {
		s.runtime.sessionDAO = smemory.New()
	}

	generatorOptions := []generator.Option{
		generator.WithConfig(s.config.Generator),
		generator.WithCatalog(s.catalogDAO),
	}
	if s.randSource != nil {
		generatorOptions = append(generatorOptions, generator.WithRandSource(*s.randSource))
	}
	s.runtime.config = s.config
	s.runtime.catalogDAO = s.catalogDAO
	s.runtime.catalogURL = s.catalogURL
	s.runtime.generator = generator.New(generatorOptions...)
	s.runtime.detector = detector.New()
	s.runtime.arbiter = arbiter.New(arbiter.WithDetector(s.runtime.detector))
	s.runtime.events = s.eventService
}

// RegisterExtensionTypes registers Go types with the command registry.
func (s *Service) RegisterExtensionTypes(types ...*x.Type) {
	for i := range types {
		s.actions.Types().Register(types[i])
	}
}

// RegisterExtensionServices registers command services with the registry.
func (s *Service) RegisterExtensionServices(services ...types.Service) {
	for i := range services {
		s.actions.Register(services[i])
	}
}

// Runtime returns the runtime handle.
func (s *Service) Runtime() *Runtime {
	return s.runtime
}

// EventService returns the event service observers subscribe to.
func (s *Service) EventService() *event.Service {
	return s.eventService
}

// LoadCatalog loads the template catalog from the configured URL. A blank
// URL keeps the built-in templates.
func (s *Service) LoadCatalog(ctx context.Context) error {
	if s.catalogURL == "" {
		return nil
	}
	_, err := s.catalogDAO.Load(ctx, s.catalogURL)
	return err
}

// New creates a gridlock service.
func New(options ...Option) *Service {
	ret := &Service{runtime: &Runtime{}}
	ret.init(options)
	return ret
}
