// Package memory holds map-backed implementations of the domain stores and
// directory, used when no database is configured and throughout the tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"go-jobboard-backend/internal/domain"
)

type applicationRepo struct {
	mu   sync.RWMutex
	apps map[string]domain.Application
}

// NewApplicationRepository creates an empty in-memory application store
func NewApplicationRepository() domain.ApplicationRepository {
	return &applicationRepo{apps: make(map[string]domain.Application)}
}

// Create inserts app unless a PENDING application already exists for the
// same job seeker and job. Check and insert happen under one lock.
func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if app.Status == domain.ApplicationStatusPending {
		for _, existing := range r.apps {
			if existing.Status == domain.ApplicationStatusPending &&
				existing.JobSeekerID == app.JobSeekerID &&
				existing.JobID == app.JobID {
				return domain.ErrDuplicatePending
			}
		}
	}

	r.apps[app.ID] = cloneApplication(*app)
	return nil
}

func (r *applicationRepo) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	app, ok := r.apps[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := cloneApplication(app)
	return &out, nil
}

func (r *applicationRepo) GetAll(ctx context.Context) ([]domain.Application, error) {
	return r.filter(func(domain.Application) bool { return true }), nil
}

func (r *applicationRepo) GetByJobID(ctx context.Context, jobID string) ([]domain.Application, error) {
	return r.filter(func(a domain.Application) bool { return a.JobID == jobID }), nil
}

func (r *applicationRepo) GetByJobSeekerID(ctx context.Context, jobSeekerID string) ([]domain.Application, error) {
	return r.filter(func(a domain.Application) bool { return a.JobSeekerID == jobSeekerID }), nil
}

func (r *applicationRepo) GetByJobIDAndStatus(ctx context.Context, jobID string, status domain.ApplicationStatus) ([]domain.Application, error) {
	return r.filter(func(a domain.Application) bool { return a.JobID == jobID && a.Status == status }), nil
}

func (r *applicationRepo) GetByJobSeekerIDAndStatus(ctx context.Context, jobSeekerID string, status domain.ApplicationStatus) ([]domain.Application, error) {
	return r.filter(func(a domain.Application) bool { return a.JobSeekerID == jobSeekerID && a.Status == status }), nil
}

func (r *applicationRepo) UpdateStatus(ctx context.Context, id string, from, to domain.ApplicationStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	app, ok := r.apps[id]
	if !ok {
		return domain.ErrNotFound
	}
	if app.Status != from {
		return domain.ErrStatusChanged
	}
	app.Status = to
	r.apps[id] = app
	return nil
}

func (r *applicationRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.apps[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.apps, id)
	return nil
}

// filter returns matches newest first, like the Postgres queries
func (r *applicationRepo) filter(match func(domain.Application) bool) []domain.Application {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Application, 0)
	for _, app := range r.apps {
		if match(app) {
			out = append(out, cloneApplication(app))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ApplicationDate.Equal(out[j].ApplicationDate) {
			return out[i].ID < out[j].ID
		}
		return out[i].ApplicationDate.After(out[j].ApplicationDate)
	})
	return out
}

func cloneApplication(app domain.Application) domain.Application {
	app.Skills = append([]string(nil), app.Skills...)
	return app
}
