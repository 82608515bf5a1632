package pattern

import (
	"fmt"
	"sort"
	"sync"

	"github.com/HendrikReh/chessbuddy/internal/chessmodel"
)

// Registry holds the process-wide set of detectors, assembled once at
// startup and read-only for the remainder of the process (spec §4.5,
// design note "mutable shared state -> registry built at startup").
type Registry struct {
	mu        sync.RWMutex
	detectors map[string]Detector
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{detectors: make(map[string]Detector)}
}

// Register adds a detector, panicking on a duplicate pattern id since
// that indicates a startup-time programming error, not a runtime
// condition callers should handle.
func (r *Registry) Register(d Detector) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.detectors[d.PatternID()]; exists {
		panic(fmt.Sprintf("pattern: duplicate detector id %q", d.PatternID()))
	}
	r.detectors[d.PatternID()] = d
}

// All returns every registered detector, sorted by pattern id for
// deterministic iteration order.
func (r *Registry) All() []Detector {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Detector, 0, len(r.detectors))
	for _, d := range r.detectors {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PatternID() < out[j].PatternID() })
	return out
}

// ByType returns every registered detector of the given pattern type,
// sorted by pattern id.
func (r *Registry) ByType(t chessmodel.PatternType) []Detector {
	var out []Detector
	for _, d := range r.All() {
		if d.PatternType() == t {
			out = append(out, d)
		}
	}
	return out
}

// Lookup returns the detector registered under id, if any.
func (r *Registry) Lookup(id string) (Detector, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.detectors[id]
	return d, ok
}
