package wizard

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"course-service/internal/ids"
	"course-service/internal/suggest"
)

var ErrWizardNotFound = errors.New("wizard not found")

// DefaultIdleTTL is how long an untouched wizard survives a sweep.
const DefaultIdleTTL = 2 * time.Hour

type entry struct {
	wizard   *Wizard
	lastSeen time.Time
}

// Registry holds the wizards currently open, keyed by id. Wizards nobody has
// looked up for longer than the idle TTL are dropped by Sweep.
type Registry struct {
	mu      sync.RWMutex
	wizards map[string]*entry
	idleTTL time.Duration
	now     func() time.Time

	store     Store
	suggester suggest.Provider
	ids       ids.Generator
	imageIDs  ids.Generator
}

func NewRegistry(store Store, suggester suggest.Provider, wizardIDs, imageIDs ids.Generator) *Registry {
	return &Registry{
		wizards:   make(map[string]*entry),
		idleTTL:   DefaultIdleTTL,
		now:       time.Now,
		store:     store,
		suggester: suggester,
		ids:       wizardIDs,
		imageIDs:  imageIDs,
	}
}

// WithIdleTTL replaces the idle TTL. Non-positive values keep the default.
func (r *Registry) WithIdleTTL(ttl time.Duration) *Registry {
	if ttl > 0 {
		r.idleTTL = ttl
	}
	return r
}

func (r *Registry) Open() *Wizard {
	w := New(r.ids.NewID(), r.store, r.suggester, r.imageIDs)

	r.mu.Lock()
	r.wizards[w.ID()] = &entry{wizard: w, lastSeen: r.now()}
	r.mu.Unlock()
	return w
}

// Get returns an open wizard and marks it as seen. Wizards that have been
// closed are evicted on lookup.
func (r *Registry) Get(id string) (*Wizard, error) {
	r.mu.Lock()
	e, ok := r.wizards[id]
	if ok {
		e.lastSeen = r.now()
	}
	r.mu.Unlock()
	if !ok {
		return nil, ErrWizardNotFound
	}
	if e.wizard.Phase() == PhaseClosed {
		r.Remove(id)
		return nil, ErrWizardNotFound
	}
	return e.wizard, nil
}

func (r *Registry) Remove(id string) {
	r.mu.Lock()
	delete(r.wizards, id)
	r.mu.Unlock()
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.wizards)
}

// Sweep drops wizards that are closed or idle at now, and reports how many
// were removed. Unsaved input in an idle wizard is lost.
func (r *Registry) Sweep(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, e := range r.wizards {
		if now.Sub(e.lastSeen) >= r.idleTTL || e.wizard.Phase() == PhaseClosed {
			delete(r.wizards, id)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is done. A non-positive interval sweeps
// once a minute.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(r.now()); n > 0 {
				slog.InfoContext(ctx, "Swept idle wizards", slog.Int("removed", n), slog.Int("open", r.Len()))
			}
		}
	}
}
