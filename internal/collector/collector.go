package collector

import (
	"context"
	"fmt"
	"slices"
	"time"

	"TrendEngine/internal/domain"
)

// Request carries all parameters required to run one collector.
type Request struct {
	Day        time.Time
	SourceName string
	Targets    []string
	Options    map[string]string
}

// Option returns the named option or def when it is missing.
func (r Request) Option(key, def string) string {
	if v, ok := r.Options[key]; ok && v != "" {
		return v
	}
	return def
}

// Collector fills one or more sections of a snapshot. Sections the
// collector does not own stay nil.
type Collector interface {
	Name() string
	Collect(ctx context.Context, req Request) (domain.Snapshot, error)
}

// Registry keeps a mapping from collector names to their implementations.
type Registry struct {
	collectors map[string]Collector
}

// NewRegistry builds a registry holding the given collectors.
func NewRegistry(collectors ...Collector) *Registry {
	r := &Registry{collectors: map[string]Collector{}}
	for _, c := range collectors {
		r.Register(c)
	}
	return r
}

// Register adds or replaces a collector implementation.
func (r *Registry) Register(c Collector) {
	if r.collectors == nil {
		r.collectors = map[string]Collector{}
	}
	r.collectors[c.Name()] = c
}

// Resolve returns a collector by name or an error if it is absent.
func (r *Registry) Resolve(name string) (Collector, error) {
	if c, ok := r.collectors[name]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("collector %s is not registered", name)
}

// Names lists the registered collectors in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.collectors))
	for name := range r.collectors {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
