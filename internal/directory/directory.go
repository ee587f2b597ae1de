// Package directory owns the fetched job collection and the filtered view
// the job list screen shows.
package directory

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"jobfinder-engine/internal/domain"
	"jobfinder-engine/internal/normalize"
	"jobfinder-engine/internal/source"
)

type Directory struct {
	src  source.Fetcher
	norm *normalize.Normalizer
	log  *zap.Logger

	// OnChange, when set, receives each snapshot Refresh produces. It runs
	// outside the lock.
	OnChange func(State)

	mu        sync.Mutex
	status    Status
	full      []domain.Job
	visible   []domain.Job
	message   string
	query     string
	fetchedAt time.Time
}

func New(src source.Fetcher, norm *normalize.Normalizer, log *zap.Logger) *Directory {
	if norm == nil {
		norm = normalize.New(normalize.Options{})
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Directory{
		src:    src,
		norm:   norm,
		log:    log,
		status: StatusLoading,
	}
}

// Refresh reloads the whole collection from the source. Any failure leaves
// the directory in the error state with nothing visible; nothing is retried.
// Overlapping calls are not coordinated: whichever finishes last wins.
func (d *Directory) Refresh(ctx context.Context) State {
	d.mu.Lock()
	d.status = StatusLoading
	d.message = ""
	loading := d.snapshotLocked()
	d.mu.Unlock()
	d.notify(loading)

	recs, err := d.src.Fetch(ctx)

	d.mu.Lock()
	if err != nil {
		d.status = StatusError
		d.message = errorMessage(err)
		d.full = nil
		d.visible = nil
		d.query = ""
		d.log.Warn("[directory] refresh failed", zap.String("message", d.message), zap.Error(err))
	} else {
		jobs := d.norm.NormalizeAll(recs)
		d.status = StatusReady
		d.message = ""
		d.full = jobs
		d.visible = jobs
		d.query = ""
		d.fetchedAt = time.Now().UTC()
		d.log.Info("[directory] refreshed", zap.Int("jobs", len(jobs)))
	}
	st := d.snapshotLocked()
	d.mu.Unlock()

	d.notify(st)
	return st
}

// SetSearchText re-derives the visible jobs from the full collection.
// It only applies while ready; otherwise it reports false and changes nothing.
func (d *Directory) SetSearchText(query string) (State, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.status != StatusReady {
		return d.snapshotLocked(), false
	}
	d.query = query
	d.visible = FilterByTitle(d.full, query)
	return d.snapshotLocked(), true
}

func (d *Directory) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.snapshotLocked()
}

// Job looks id up in the full collection, ignoring the active filter.
func (d *Directory) Job(id string) (domain.Job, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, j := range d.full {
		if j.ID == id {
			return j.Clone(), true
		}
	}
	return domain.Job{}, false
}

// snapshotLocked deep-copies the visible jobs. Only Ready carries jobs.
func (d *Directory) snapshotLocked() State {
	st := State{
		Status:  d.status,
		Jobs:    []domain.Job{},
		Message: d.message,
		Query:   d.query,
	}
	if d.status != StatusReady {
		return st
	}
	for _, j := range d.visible {
		st.Jobs = append(st.Jobs, j.Clone())
	}
	st.Total = len(d.full)
	if !d.fetchedAt.IsZero() {
		t := d.fetchedAt
		st.FetchedAt = &t
	}
	return st
}

func (d *Directory) notify(st State) {
	if d.OnChange != nil {
		d.OnChange(st)
	}
}

func errorMessage(err error) string {
	switch {
	case errors.Is(err, source.ErrStatus):
		return MsgFetchFailed
	case errors.Is(err, source.ErrPayload):
		return MsgParseFailed
	case errors.Is(err, context.DeadlineExceeded):
		return MsgFetchFailed + ": request timed out"
	case errors.Is(err, context.Canceled):
		return MsgFetchFailed + ": request canceled"
	default:
		return MsgFetchFailed + ": " + strings.TrimSpace(err.Error())
	}
}
