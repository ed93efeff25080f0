package generator

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/viant/gridlock/model"
	"github.com/viant/gridlock/model/process"
	"github.com/viant/gridlock/model/resource"
	"github.com/viant/gridlock/service/dao/catalog"
)

// Config tunes level generation.
type Config struct {
	// BaseCapacity holds the level-1 pool sizes before scaling.
	BaseCapacity resource.Amounts `yaml:"baseCapacity" json:"baseCapacity"`
	// MinCapacity is the floor any scaled capacity is clamped to.
	MinCapacity int `yaml:"minCapacity" json:"minCapacity"`
	// MoveLimit is the allocation budget per level.
	MoveLimit int `yaml:"moveLimit" json:"moveLimit"`
	// MaxProcesses caps how many processes a level spawns.
	MaxProcesses int `yaml:"maxProcesses" json:"maxProcesses"`
	// PerturbAboveLevel enables demand jitter for levels above this number.
	PerturbAboveLevel int `yaml:"perturbAboveLevel" json:"perturbAboveLevel"`
}

// DefaultConfig returns the standard generation settings.
func DefaultConfig() Config {
	return Config{
		BaseCapacity: resource.Amounts{
			resource.KindCPU:     4,
			resource.KindMemory:  4,
			resource.KindDisk:    3,
			resource.KindPrinter: 2,
		},
		MinCapacity:       2,
		MoveLimit:         20,
		MaxProcesses:      6,
		PerturbAboveLevel: 2,
	}
}

// Validate checks the configuration is usable.
func (c *Config) Validate() error {
	if len(c.BaseCapacity) == 0 {
		return fmt.Errorf("generator config had no base capacity")
	}
	for kind, amount := range c.BaseCapacity {
		if !kind.Valid() {
			return fmt.Errorf("generator config referenced unknown resource kind: %s", kind)
		}
		if amount <= 0 {
			return fmt.Errorf("generator config had non-positive capacity for %s: %d", kind, amount)
		}
	}
	if c.MinCapacity < 1 {
		return fmt.Errorf("generator config min capacity must be >= 1, had %d", c.MinCapacity)
	}
	if c.MoveLimit <= 0 {
		return fmt.Errorf("generator config move limit must be positive, had %d", c.MoveLimit)
	}
	if c.MaxProcesses < 1 {
		return fmt.Errorf("generator config max processes must be >= 1, had %d", c.MaxProcesses)
	}
	return nil
}

// Service generates levels from catalog templates. A seeded random source
// makes generation reproducible.
type Service struct {
	config  Config
	catalog *catalog.Service
	rand    *rand.Rand
}

// New creates a generator service.
func New(opts ...Option) *Service {
	ret := &Service{
		config: DefaultConfig(),
	}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.catalog == nil {
		ret.catalog = catalog.New()
	}
	if ret.rand == nil {
		ret.rand = rand.New(rand.NewSource(rand.Int63()))
	}
	return ret
}

// Generate builds the level with the supplied number. Capacity shrinks as
// levels climb so the same blueprints become harder to schedule.
func (s *Service) Generate(ctx context.Context, number int) (*model.Level, error) {
	if number < 1 {
		return nil, fmt.Errorf("level number must be >= 1, had %d", number)
	}
	if err := s.config.Validate(); err != nil {
		return nil, err
	}
	templates := s.catalog.Templates()
	if len(templates) == 0 {
		return nil, fmt.Errorf("catalog had no templates")
	}

	level := &model.Level{
		Number:    number,
		Pool:      resource.NewPool(s.capacity(number)),
		MoveLimit: s.config.MoveLimit,
	}

	count := 2 + number
	if count > s.config.MaxProcesses {
		count = s.config.MaxProcesses
	}
	for i, pick := range s.sample(templates, count) {
		demand := pick.Demand.Clone()
		if number > s.config.PerturbAboveLevel {
			demand = s.perturb(demand)
		}
		id := fmt.Sprintf("P%d", i+1)
		level.Processes = append(level.Processes, process.New(id, pick.Name, demand))
	}

	if issues := level.Validate(); len(issues) > 0 {
		return nil, fmt.Errorf("generated level %d was invalid: %v", number, issues[0])
	}
	return level, nil
}

// capacity scales the base pool by max(0.7, 1.2 - 0.1*number) and clamps
// each kind at the configured minimum.
func (s *Service) capacity(number int) resource.Amounts {
	multiplier := 1.2 - 0.1*float64(number)
	if multiplier < 0.7 {
		multiplier = 0.7
	}
	ret := resource.Amounts{}
	for kind, base := range s.config.BaseCapacity {
		scaled := int(float64(base) * multiplier)
		if scaled < s.config.MinCapacity {
			scaled = s.config.MinCapacity
		}
		ret[kind] = scaled
	}
	return ret
}

// sample picks count templates without replacement, cycling through fresh
// permutations when count exceeds the catalog size.
func (s *Service) sample(templates []*catalog.Template, count int) []*catalog.Template {
	var ret []*catalog.Template
	for len(ret) < count {
		for _, idx := range s.rand.Perm(len(templates)) {
			if len(ret) == count {
				break
			}
			ret = append(ret, templates[idx])
		}
	}
	return ret
}

// perturb jitters each demand by -1, 0 or +1, never below one unit. Kinds
// are visited in canonical order so a seeded source replays identically.
func (s *Service) perturb(demand resource.Amounts) resource.Amounts {
	ret := resource.Amounts{}
	for _, kind := range resource.Kinds() {
		amount := demand.Get(kind)
		if amount == 0 {
			continue
		}
		adjusted := amount + s.rand.Intn(3) - 1
		if adjusted < 1 {
			adjusted = 1
		}
		ret[kind] = adjusted
	}
	return ret
}
