package usecase_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/repository/memory"
	"go-jobboard-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEventFixture(policy usecase.LookupPolicy) (domain.EventUsecase, domain.EventRepository, *memory.Directory) {
	repo := memory.NewEventRepository()
	dir := memory.NewDirectory()
	dir.AddIdentity("U1", "EVENT_MANAGER")
	dir.AddIdentity("U2", "PARTICIPANT")
	return usecase.NewEventUsecase(repo, dir, policy), repo, dir
}

func validEvent(organizerID string) *domain.Event {
	start := time.Date(2026, 11, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(8 * time.Hour)
	capacity := 100
	return &domain.Event{
		Title:       "Go Meetup",
		Description: "Monthly meetup",
		Location:    "Jakarta",
		StartDate:   &start,
		EndDate:     &end,
		Capacity:    &capacity,
		OrganizerID: organizerID,
	}
}

func TestCreateEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("Should create an event for an event manager", func(t *testing.T) {
		uc, repo, _ := newEventFixture(usecase.LookupPolicy{})

		event, err := uc.CreateEvent(ctx, validEvent("U1"))
		require.NoError(t, err)
		assert.NotEmpty(t, event.ID)
		assert.Equal(t, "U1", event.OrganizerID)
		assert.False(t, event.CreatedDate.IsZero())

		exists, err := repo.Exists(ctx, event.ID)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("Should forbid an organizer without the role", func(t *testing.T) {
		uc, repo, _ := newEventFixture(usecase.LookupPolicy{})

		_, err := uc.CreateEvent(ctx, validEvent("U2"))
		assertCode(t, err, http.StatusForbidden)

		all, err := repo.GetAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("Should report an unknown organizer as not found", func(t *testing.T) {
		uc, _, _ := newEventFixture(usecase.LookupPolicy{})

		_, err := uc.CreateEvent(ctx, validEvent("ghost"))
		assertCode(t, err, http.StatusNotFound)
		assert.Contains(t, err.Error(), "User not found")
	})

	t.Run("Should reject zero capacity whatever the organizer's role", func(t *testing.T) {
		uc, _, dir := newEventFixture(usecase.LookupPolicy{})
		for _, organizer := range []string{"U1", "U2"} {
			event := validEvent(organizer)
			zero := 0
			event.Capacity = &zero

			_, err := uc.CreateEvent(ctx, event)
			assertCode(t, err, http.StatusBadRequest)
			assert.Equal(t, "Event capacity must be greater than 0", err.Error())
		}
		assert.Zero(t, dir.Calls(domain.KindIdentity))
	})

	t.Run("Should require every mandatory field", func(t *testing.T) {
		uc, _, _ := newEventFixture(usecase.LookupPolicy{})
		tests := []struct {
			mutate func(e *domain.Event)
			msg    string
		}{
			{func(e *domain.Event) { e.Title = "" }, "Event title is required"},
			{func(e *domain.Event) { e.Location = " " }, "Event location is required"},
			{func(e *domain.Event) { e.StartDate = nil }, "Event start date is required"},
			{func(e *domain.Event) { e.EndDate = nil }, "Event end date is required"},
			{func(e *domain.Event) { e.Capacity = nil }, "Event capacity must be greater than 0"},
			{func(e *domain.Event) { e.OrganizerID = "" }, "Organizer ID cannot be empty"},
		}
		for _, tt := range tests {
			event := validEvent("U1")
			tt.mutate(event)
			_, err := uc.CreateEvent(ctx, event)
			assertCode(t, err, http.StatusBadRequest)
			assert.Equal(t, tt.msg, err.Error())
		}
	})

	t.Run("Should fail closed when the identity service is down", func(t *testing.T) {
		uc, _, dir := newEventFixture(usecase.LookupPolicy{})
		dir.SetUnreachable(domain.KindIdentity, true)

		_, err := uc.CreateEvent(ctx, validEvent("U1"))
		assertCode(t, err, http.StatusServiceUnavailable)
	})

	t.Run("Should see a revoked role immediately", func(t *testing.T) {
		uc, _, dir := newEventFixture(usecase.LookupPolicy{})
		_, err := uc.CreateEvent(ctx, validEvent("U1"))
		require.NoError(t, err)

		dir.AddIdentity("U1", "PARTICIPANT")
		_, err = uc.CreateEvent(ctx, validEvent("U1"))
		assertCode(t, err, http.StatusForbidden)
	})
}

func TestUpdateEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("Should replace mutable fields and keep the organizer", func(t *testing.T) {
		uc, _, dir := newEventFixture(usecase.LookupPolicy{})
		dir.AddIdentity("U3", "event_manager")

		created, err := uc.CreateEvent(ctx, validEvent("U1"))
		require.NoError(t, err)

		details := validEvent("U3")
		details.Title = "Go Conference"
		details.Description = ""
		bigger := 500
		details.Capacity = &bigger

		updated, err := uc.UpdateEvent(ctx, created.ID, details)
		require.NoError(t, err)
		assert.Equal(t, "Go Conference", updated.Title)
		assert.Empty(t, updated.Description)
		assert.Equal(t, 500, *updated.Capacity)
		assert.Equal(t, "U1", updated.OrganizerID)
		assert.Equal(t, created.ID, updated.ID)
		assert.True(t, created.CreatedDate.Equal(updated.CreatedDate))

		stored, err := uc.GetEvent(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Go Conference", stored.Title)
	})

	t.Run("Should report a missing event before checking the requester", func(t *testing.T) {
		uc, _, _ := newEventFixture(usecase.LookupPolicy{})

		_, err := uc.UpdateEvent(ctx, "missing", validEvent("U2"))
		assertCode(t, err, http.StatusNotFound)
	})

	t.Run("Should forbid an update by a requester without the role", func(t *testing.T) {
		uc, _, _ := newEventFixture(usecase.LookupPolicy{})
		created, err := uc.CreateEvent(ctx, validEvent("U1"))
		require.NoError(t, err)

		details := validEvent("U2")
		details.Title = "Hijacked"
		_, err = uc.UpdateEvent(ctx, created.ID, details)
		assertCode(t, err, http.StatusForbidden)

		stored, err := uc.GetEvent(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Go Meetup", stored.Title)
	})
}

func TestDeleteEvent(t *testing.T) {
	ctx := context.Background()
	uc, _, _ := newEventFixture(usecase.LookupPolicy{})

	created, err := uc.CreateEvent(ctx, validEvent("U1"))
	require.NoError(t, err)

	require.NoError(t, uc.DeleteEvent(ctx, created.ID))
	assertCode(t, uc.DeleteEvent(ctx, created.ID), http.StatusNotFound)
	assertCode(t, uc.DeleteEvent(ctx, " "), http.StatusBadRequest)

	_, err = uc.GetEvent(ctx, created.ID)
	assertCode(t, err, http.StatusNotFound)
}

func TestEventQueries(t *testing.T) {
	ctx := context.Background()
	uc, _, dir := newEventFixture(usecase.LookupPolicy{})
	dir.AddIdentity("U3", "EVENT_MANAGER")

	_, err := uc.CreateEvent(ctx, validEvent("U1"))
	require.NoError(t, err)
	workshop := validEvent("U3")
	workshop.Title = "Rust Workshop"
	_, err = uc.CreateEvent(ctx, workshop)
	require.NoError(t, err)

	t.Run("Should list every event", func(t *testing.T) {
		all, err := uc.ListEvents(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("Should list by organizer", func(t *testing.T) {
		mine, err := uc.ListByOrganizer(ctx, "U3")
		require.NoError(t, err)
		require.Len(t, mine, 1)
		assert.Equal(t, "Rust Workshop", mine[0].Title)

		_, err = uc.ListByOrganizer(ctx, "")
		assertCode(t, err, http.StatusBadRequest)
	})

	t.Run("Should search titles case-insensitively", func(t *testing.T) {
		found, err := uc.SearchByTitle(ctx, "meetUP")
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "Go Meetup", found[0].Title)

		none, err := uc.SearchByTitle(ctx, "kotlin")
		require.NoError(t, err)
		assert.Empty(t, none)

		_, err = uc.SearchByTitle(ctx, " ")
		assertCode(t, err, http.StatusBadRequest)
	})
}
