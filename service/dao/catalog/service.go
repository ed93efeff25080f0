// Package catalog manages the library of process templates a level is
// populated from. Templates ship with a built-in default set and can be
// overridden from any afs-addressable YAML document.
package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/gridlock/model/resource"
	"github.com/viant/gridlock/service/meta"
)

// Template describes a process blueprint: its display name and the resource
// demand a spawned process must satisfy to finish.
type Template struct {
	Name   string           `yaml:"name" json:"name"`
	Demand resource.Amounts `yaml:"demand" json:"demand"`
}

type document struct {
	Templates []*Template `yaml:"templates" json:"templates"`
}

// Service resolves templates either from the built-in defaults or from a
// previously loaded catalog document. Loaded catalogs are cached by URL.
type Service struct {
	metaService *meta.Service
	mux         sync.RWMutex
	templates   []*Template
	loaded      map[string][]*Template
}

// New creates a catalog service seeded with the default template set.
func New(opts ...Option) *Service {
	ret := &Service{
		metaService: meta.New(afs.New(), ""),
		templates:   Default(),
		loaded:      make(map[string][]*Template),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Default returns the built-in template set.
func Default() []*Template {
	return []*Template{
		{Name: "Text Editor", Demand: resource.Amounts{resource.KindCPU: 1, resource.KindMemory: 2}},
		{Name: "Compiler", Demand: resource.Amounts{resource.KindCPU: 2, resource.KindMemory: 1, resource.KindDisk: 1}},
		{Name: "Backup", Demand: resource.Amounts{resource.KindDisk: 2, resource.KindMemory: 1}},
		{Name: "Print Job", Demand: resource.Amounts{resource.KindPrinter: 1, resource.KindMemory: 1}},
		{Name: "Antivirus", Demand: resource.Amounts{resource.KindCPU: 1, resource.KindDisk: 1, resource.KindMemory: 1}},
		{Name: "Browser", Demand: resource.Amounts{resource.KindCPU: 2, resource.KindMemory: 3}},
		{Name: "Streaming", Demand: resource.Amounts{resource.KindCPU: 2, resource.KindMemory: 2, resource.KindDisk: 1}},
		{Name: "Database", Demand: resource.Amounts{resource.KindCPU: 1, resource.KindMemory: 2, resource.KindDisk: 2}},
	}
}

// Templates returns a snapshot of the active template set.
func (s *Service) Templates() []*Template {
	s.mux.RLock()
	defer s.mux.RUnlock()
	ret := make([]*Template, len(s.templates))
	for i, tmpl := range s.templates {
		ret[i] = &Template{Name: tmpl.Name, Demand: tmpl.Demand.Clone()}
	}
	return ret
}

// Lookup returns the template with the supplied name or nil.
func (s *Service) Lookup(name string) *Template {
	s.mux.RLock()
	defer s.mux.RUnlock()
	for _, tmpl := range s.templates {
		if tmpl.Name == name {
			return &Template{Name: tmpl.Name, Demand: tmpl.Demand.Clone()}
		}
	}
	return nil
}

// Load reads a catalog document from URL and makes it the active template
// set. Repeated loads of the same URL are served from cache.
func (s *Service) Load(ctx context.Context, URL string) ([]*Template, error) {
	s.mux.RLock()
	cached, ok := s.loaded[URL]
	s.mux.RUnlock()
	if ok {
		s.activate(cached)
		return cached, nil
	}
	return s.Refresh(ctx, URL)
}

// Refresh re-reads a catalog document from URL bypassing the cache.
func (s *Service) Refresh(ctx context.Context, URL string) ([]*Template, error) {
	var doc document
	if err := s.metaService.Load(ctx, URL, &doc); err != nil {
		return nil, fmt.Errorf("failed to load catalog from %s: %w", URL, err)
	}
	if err := Validate(doc.Templates); err != nil {
		return nil, fmt.Errorf("invalid catalog %s: %w", URL, err)
	}
	s.mux.Lock()
	s.loaded[URL] = doc.Templates
	s.mux.Unlock()
	s.activate(doc.Templates)
	return doc.Templates, nil
}

// Upsert adds the template to the active set, replacing any template with
// the same name.
func (s *Service) Upsert(template *Template) error {
	if template == nil {
		return fmt.Errorf("template was nil")
	}
	if err := Validate([]*Template{template}); err != nil {
		return err
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	for i, tmpl := range s.templates {
		if tmpl.Name == template.Name {
			s.templates[i] = template
			return nil
		}
	}
	s.templates = append(s.templates, template)
	return nil
}

func (s *Service) activate(templates []*Template) {
	s.mux.Lock()
	s.templates = templates
	s.mux.Unlock()
}

// Validate checks template names are unique and demands reference known
// kinds with positive amounts.
func Validate(templates []*Template) error {
	if len(templates) == 0 {
		return fmt.Errorf("catalog was empty")
	}
	seen := make(map[string]bool)
	for i, tmpl := range templates {
		if tmpl.Name == "" {
			return fmt.Errorf("template[%d] had empty name", i)
		}
		if seen[tmpl.Name] {
			return fmt.Errorf("duplicate template name: %s", tmpl.Name)
		}
		seen[tmpl.Name] = true
		if len(tmpl.Demand) == 0 {
			return fmt.Errorf("template %s had no demand", tmpl.Name)
		}
		for kind, amount := range tmpl.Demand {
			if !kind.Valid() {
				return fmt.Errorf("template %s referenced unknown resource kind: %s", tmpl.Name, kind)
			}
			if amount <= 0 {
				return fmt.Errorf("template %s demanded non-positive %s: %d", tmpl.Name, kind, amount)
			}
		}
	}
	return nil
}
