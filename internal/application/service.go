// Package application takes in job application forms and records them
// locally.
package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"jobfinder-engine/internal/domain"
)

var ErrUnknownJob = errors.New("job not found")

type Store interface {
	InsertApplication(ctx context.Context, a domain.Application) error
	ListApplications(ctx context.Context, limit int) ([]domain.Application, error)
}

// JobLookup resolves a job id. The directory and the saved registry both
// serve as lookups: a saved job stays applicable after the list refetches.
type JobLookup interface {
	Job(id string) (domain.Job, bool)
}

type LookupFunc func(id string) (domain.Job, bool)

func (f LookupFunc) Job(id string) (domain.Job, bool) { return f(id) }

type Service struct {
	store   Store
	lookups []JobLookup
	v       *validator.Validate
	log     *zap.Logger

	// OnSubmit runs after a submission is stored.
	OnSubmit func(domain.Application)

	now   func() time.Time
	newID func() string
}

func NewService(store Store, log *zap.Logger, lookups ...JobLookup) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		store:   store,
		lookups: lookups,
		v:       newValidator(),
		log:     log,
		now:     func() time.Time { return time.Now().UTC() },
		newID:   uuid.NewString,
	}
}

// Submit validates f and records it. Validation problems come back as
// *ValidationError; an id nobody knows comes back as ErrUnknownJob.
func (s *Service) Submit(ctx context.Context, f Form) (domain.Application, error) {
	f = f.Trimmed()
	if err := s.v.Struct(f); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			return domain.Application{}, toValidationError(ve)
		}
		return domain.Application{}, err
	}

	job, ok := s.findJob(f.JobID)
	if !ok {
		return domain.Application{}, fmt.Errorf("%q: %w", f.JobID, ErrUnknownJob)
	}

	a := domain.Application{
		ID:          s.newID(),
		JobID:       job.ID,
		JobTitle:    job.Title,
		Company:     job.Company,
		Name:        f.Name,
		Email:       f.Email,
		Phone:       f.Phone,
		CoverLetter: f.CoverLetter,
		ResumeURL:   f.ResumeURL,
		FromScreen:  f.FromScreen,
		SubmittedAt: s.now(),
	}
	if err := s.store.InsertApplication(ctx, a); err != nil {
		return domain.Application{}, err
	}

	s.log.Info("[application] submitted",
		zap.String("id", a.ID),
		zap.String("job_id", a.JobID),
		zap.String("from", a.FromScreen),
	)
	if s.OnSubmit != nil {
		s.OnSubmit(a)
	}
	return a, nil
}

func (s *Service) List(ctx context.Context, limit int) ([]domain.Application, error) {
	return s.store.ListApplications(ctx, limit)
}

func (s *Service) findJob(id string) (domain.Job, bool) {
	for _, l := range s.lookups {
		if l == nil {
			continue
		}
		if j, ok := l.Job(id); ok {
			return j, true
		}
	}
	return domain.Job{}, false
}
