package application

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobfinder-engine/internal/domain"
)

type memStore struct {
	apps []domain.Application
	err  error
}

func (m *memStore) InsertApplication(_ context.Context, a domain.Application) error {
	if m.err != nil {
		return m.err
	}
	m.apps = append(m.apps, a)
	return nil
}

func (m *memStore) ListApplications(_ context.Context, limit int) ([]domain.Application, error) {
	out := append([]domain.Application(nil), m.apps...)
	sort.Slice(out, func(i, j int) bool { return out[i].SubmittedAt.After(out[j].SubmittedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

var acme = domain.Job{ID: "acme-x-0", Title: "X", Company: "ACME"}

func lookupOf(jobs ...domain.Job) LookupFunc {
	return func(id string) (domain.Job, bool) {
		for _, j := range jobs {
			if j.ID == id {
				return j, true
			}
		}
		return domain.Job{}, false
	}
}

func newTestService(store Store, lookups ...JobLookup) *Service {
	s := NewService(store, nil, lookups...)
	s.now = func() time.Time { return time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC) }
	s.newID = func() string { return "app-1" }
	return s
}

func validForm() Form {
	return Form{
		JobID:       "acme-x-0",
		Name:        "  Ada Lovelace ",
		Email:       "ada@example.com",
		Phone:       "+1 (555) 010-9999",
		CoverLetter: "Hello",
		ResumeURL:   "https://example.com/cv.pdf",
		FromScreen:  "JobFinder",
	}
}

func TestSubmit_Valid(t *testing.T) {
	store := &memStore{}
	s := newTestService(store, lookupOf(acme))

	var notified []domain.Application
	s.OnSubmit = func(a domain.Application) { notified = append(notified, a) }

	a, err := s.Submit(context.Background(), validForm())
	require.NoError(t, err)

	assert.Equal(t, "app-1", a.ID)
	assert.Equal(t, "Ada Lovelace", a.Name)
	assert.Equal(t, "X", a.JobTitle)
	assert.Equal(t, "ACME", a.Company)
	assert.Equal(t, "JobFinder", a.FromScreen)
	require.Len(t, store.apps, 1)
	assert.Equal(t, []domain.Application{a}, notified)
}

func TestSubmit_ValidationErrors(t *testing.T) {
	s := newTestService(&memStore{}, lookupOf(acme))

	f := validForm()
	f.Name = " "
	f.Email = "not-an-email"
	f.Phone = "abc"
	f.ResumeURL = "nope"
	f.FromScreen = "Settings"

	_, err := s.Submit(context.Background(), f)
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))

	fields := map[string]string{}
	for _, fe := range ve.Fields {
		fields[fe.Field] = fe.Message
	}
	assert.Equal(t, "is required", fields["name"])
	assert.Equal(t, "must be a valid email address", fields["email"])
	assert.Equal(t, "must be a phone number", fields["phone"])
	assert.Equal(t, "must be a valid URL", fields["resumeUrl"])
	assert.Contains(t, fields["fromScreen"], "must be one of")
	assert.Contains(t, err.Error(), "invalid application")
}

func TestSubmit_OptionalFieldsMayBeEmpty(t *testing.T) {
	s := newTestService(&memStore{}, lookupOf(acme))
	_, err := s.Submit(context.Background(), Form{JobID: "acme-x-0", Name: "Bo", Email: "bo@example.com"})
	assert.NoError(t, err)
}

func TestSubmit_UnknownJob(t *testing.T) {
	s := newTestService(&memStore{}, lookupOf(acme))
	f := validForm()
	f.JobID = "missing-0"

	_, err := s.Submit(context.Background(), f)
	assert.ErrorIs(t, err, ErrUnknownJob)
}

func TestSubmit_FallsBackToSecondLookup(t *testing.T) {
	saved := domain.Job{ID: "saved-job-3", Title: "Saved", Company: "Co"}
	s := newTestService(&memStore{}, nil, lookupOf(acme), lookupOf(saved))
	f := validForm()
	f.JobID = "saved-job-3"

	a, err := s.Submit(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, "Saved", a.JobTitle)
}

func TestSubmit_StoreError(t *testing.T) {
	boom := errors.New("disk full")
	s := newTestService(&memStore{err: boom}, lookupOf(acme))
	called := false
	s.OnSubmit = func(domain.Application) { called = true }

	_, err := s.Submit(context.Background(), validForm())
	assert.ErrorIs(t, err, boom)
	assert.False(t, called)
}
