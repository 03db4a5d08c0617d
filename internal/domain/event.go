package domain

import (
	"context"
	"time"
)

// Event is a listing published by an organizer holding the event manager role.
// StartDate, EndDate and Capacity are pointers so a missing value can be told
// apart from a zero one.
type Event struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Capacity    *int       `json:"capacity"`
	OrganizerID string     `json:"organizer_id"`
	CreatedDate time.Time  `json:"created_date"`
}

// ApplyDetails replaces every mutable field with the values from details.
// ID, OrganizerID and CreatedDate are left untouched.
func (e *Event) ApplyDetails(details *Event) {
	e.Title = details.Title
	e.Description = details.Description
	e.Location = details.Location
	e.StartDate = details.StartDate
	e.EndDate = details.EndDate
	e.Capacity = details.Capacity
}

type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	GetAll(ctx context.Context) ([]Event, error)
	GetByOrganizerID(ctx context.Context, organizerID string) ([]Event, error)
	// SearchByTitle matches title as a case-insensitive substring.
	SearchByTitle(ctx context.Context, title string) ([]Event, error)
	Update(ctx context.Context, event *Event) error
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)
}

type EventUsecase interface {
	CreateEvent(ctx context.Context, event *Event) (*Event, error)
	GetEvent(ctx context.Context, id string) (*Event, error)
	ListEvents(ctx context.Context) ([]Event, error)
	ListByOrganizer(ctx context.Context, organizerID string) ([]Event, error)
	SearchByTitle(ctx context.Context, title string) ([]Event, error)
	UpdateEvent(ctx context.Context, id string, details *Event) (*Event, error)
	DeleteEvent(ctx context.Context, id string) error
}
