// Package saved keeps the jobs the user bookmarked during this session.
// Nothing is persisted.
package saved

import (
	"sync"

	"jobfinder-engine/internal/domain"
)

// Registry is an insertion-ordered set of jobs keyed by ID. It stores its own
// copies, so later changes to a caller's Job never reach saved entries.
type Registry struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]domain.Job
}

func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]domain.Job)}
}

// Save adds job unless its ID is already present. It reports whether the
// registry changed.
func (r *Registry) Save(job domain.Job) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[job.ID]; ok {
		return false
	}
	r.byID[job.ID] = job.Clone()
	r.order = append(r.order, job.ID)
	return true
}

// Unsave removes id if present and reports whether it was.
func (r *Registry) Unsave(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return false
	}
	delete(r.byID, id)
	for i, cur := range r.order {
		if cur == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

func (r *Registry) IsSaved(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byID[id]
	return ok
}

// Get returns a copy of the saved entry for id.
func (r *Registry) Get(id string) (domain.Job, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	j, ok := r.byID[id]
	if !ok {
		return domain.Job{}, false
	}
	return j.Clone(), true
}

// List returns copies of the saved jobs, first saved first.
func (r *Registry) List() []domain.Job {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Job, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id].Clone())
	}
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
