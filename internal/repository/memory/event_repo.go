package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"go-jobboard-backend/internal/domain"
)

type eventRepo struct {
	mu     sync.RWMutex
	events map[string]domain.Event
}

func NewEventRepository() domain.EventRepository {
	return &eventRepo{events: make(map[string]domain.Event)}
}

func (r *eventRepo) Create(ctx context.Context, event *domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events[event.ID] = *event
	return nil
}

func (r *eventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	event, ok := r.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &event, nil
}

func (r *eventRepo) GetAll(ctx context.Context) ([]domain.Event, error) {
	return r.filter(func(domain.Event) bool { return true }), nil
}

func (r *eventRepo) GetByOrganizerID(ctx context.Context, organizerID string) ([]domain.Event, error) {
	return r.filter(func(e domain.Event) bool { return e.OrganizerID == organizerID }), nil
}

func (r *eventRepo) SearchByTitle(ctx context.Context, title string) ([]domain.Event, error) {
	needle := strings.ToLower(title)
	return r.filter(func(e domain.Event) bool {
		return strings.Contains(strings.ToLower(e.Title), needle)
	}), nil
}

func (r *eventRepo) Update(ctx context.Context, event *domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.events[event.ID]; !ok {
		return domain.ErrNotFound
	}
	r.events[event.ID] = *event
	return nil
}

func (r *eventRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.events[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.events, id)
	return nil
}

func (r *eventRepo) Exists(ctx context.Context, id string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.events[id]
	return ok, nil
}

func (r *eventRepo) filter(match func(domain.Event) bool) []domain.Event {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Event, 0)
	for _, e := range r.events {
		if match(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedDate.Equal(out[j].CreatedDate) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedDate.After(out[j].CreatedDate)
	})
	return out
}
