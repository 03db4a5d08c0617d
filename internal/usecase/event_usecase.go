package usecase

import (
	"context"
	"errors"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/logger"
	"go-jobboard-backend/pkg/validation"

	"github.com/google/uuid"
)

type eventUsecase struct {
	eventRepo domain.EventRepository
	directory domain.Directory
	policy    LookupPolicy
	now       func() time.Time
}

func NewEventUsecase(eventRepo domain.EventRepository, directory domain.Directory, policy LookupPolicy) domain.EventUsecase {
	return &eventUsecase{
		eventRepo: eventRepo,
		directory: directory,
		policy:    policy,
		now:       time.Now,
	}
}

// CreateEvent validates the fields, authorizes the organizer against the
// identity service and stores the event. Roles are never cached.
func (u *eventUsecase) CreateEvent(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	if event == nil {
		return nil, apperror.BadRequest("Event cannot be empty")
	}
	if err := u.authorizeAndValidate(ctx, event); err != nil {
		return nil, err
	}

	created := &domain.Event{
		ID:          uuid.NewString(),
		OrganizerID: event.OrganizerID,
		CreatedDate: u.now().UTC(),
	}
	created.ApplyDetails(event)

	if err := u.eventRepo.Create(ctx, created); err != nil {
		return nil, apperror.Internal(err)
	}

	logger.Log.Info("Event created", "event_id", created.ID, "organizer_id", created.OrganizerID)
	return created, nil
}

func (u *eventUsecase) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	if validation.IsBlank(id) {
		return nil, apperror.BadRequest("Event ID cannot be empty")
	}
	return u.load(ctx, id)
}

func (u *eventUsecase) ListEvents(ctx context.Context) ([]domain.Event, error) {
	events, err := u.eventRepo.GetAll(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return events, nil
}

func (u *eventUsecase) ListByOrganizer(ctx context.Context, organizerID string) ([]domain.Event, error) {
	if validation.IsBlank(organizerID) {
		return nil, apperror.BadRequest("Organizer ID cannot be empty")
	}
	events, err := u.eventRepo.GetByOrganizerID(ctx, organizerID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return events, nil
}

func (u *eventUsecase) SearchByTitle(ctx context.Context, title string) ([]domain.Event, error) {
	if validation.IsBlank(title) {
		return nil, apperror.BadRequest("Event title cannot be empty")
	}
	events, err := u.eventRepo.SearchByTitle(ctx, title)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return events, nil
}

// UpdateEvent replaces every mutable field of the stored event. The organizer
// named in details is re-authorized; the stored organizer never changes.
func (u *eventUsecase) UpdateEvent(ctx context.Context, id string, details *domain.Event) (*domain.Event, error) {
	if validation.IsBlank(id) {
		return nil, apperror.BadRequest("Event ID cannot be empty")
	}
	if details == nil {
		return nil, apperror.BadRequest("Event cannot be empty")
	}

	event, err := u.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := u.authorizeAndValidate(ctx, details); err != nil {
		return nil, err
	}

	event.ApplyDetails(details)
	if err := u.eventRepo.Update(ctx, event); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Event not found with id: " + id)
		}
		return nil, apperror.Internal(err)
	}

	logger.Log.Info("Event updated", "event_id", id, "requested_by", details.OrganizerID)
	return event, nil
}

// DeleteEvent removes an event. No organizer check is made here.
func (u *eventUsecase) DeleteEvent(ctx context.Context, id string) error {
	if validation.IsBlank(id) {
		return apperror.BadRequest("Event ID cannot be empty")
	}

	if err := u.eventRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Event not found with id: " + id)
		}
		return apperror.Internal(err)
	}

	logger.Log.Info("Event deleted", "event_id", id)
	return nil
}

// authorizeAndValidate runs the local field guard before the remote role
// check, so a malformed event is rejected the same way for every organizer
// and costs no round trip.
func (u *eventUsecase) authorizeAndValidate(ctx context.Context, event *domain.Event) error {
	if validation.IsBlank(event.OrganizerID) {
		return apperror.BadRequest("Organizer ID cannot be empty")
	}
	if err := validateEventFields(event); err != nil {
		return err
	}
	return u.authorizeOrganizer(ctx, event.OrganizerID)
}

// authorizeOrganizer requires a resolvable identity that holds EVENT_MANAGER.
func (u *eventUsecase) authorizeOrganizer(ctx context.Context, organizerID string) error {
	lookup := u.directory.Roles(ctx, organizerID)
	if err := u.policy.guardError(lookup, domain.KindIdentity, organizerID,
		"User not found with id: "+organizerID,
		"Error validating user, please try again later"); err != nil {
		return err
	}

	if !lookup.Roles.Has(domain.RoleEventManager) {
		logger.Log.Warn("Event mutation denied", "organizer_id", organizerID, "missing_role", string(domain.RoleEventManager))
		return apperror.Forbidden("User is not authorized to create events")
	}
	return nil
}

func validateEventFields(event *domain.Event) error {
	switch {
	case validation.IsBlank(event.Title):
		return apperror.BadRequest("Event title is required")
	case validation.IsBlank(event.Location):
		return apperror.BadRequest("Event location is required")
	case event.StartDate == nil:
		return apperror.BadRequest("Event start date is required")
	case event.EndDate == nil:
		return apperror.BadRequest("Event end date is required")
	case event.Capacity == nil || *event.Capacity <= 0:
		return apperror.BadRequest("Event capacity must be greater than 0")
	}
	return nil
}

func (u *eventUsecase) load(ctx context.Context, id string) (*domain.Event, error) {
	event, err := u.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Event not found with id: " + id)
		}
		return nil, apperror.Internal(err)
	}
	return event, nil
}
