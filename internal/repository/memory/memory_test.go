package memory

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go-jobboard-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingApp(id, seeker, job string, at time.Time) *domain.Application {
	return &domain.Application{
		ID:              id,
		JobID:           job,
		JobSeekerID:     seeker,
		Skills:          []string{"Go"},
		Status:          domain.ApplicationStatusPending,
		ApplicationDate: at,
	}
}

func TestApplicationRepo(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Should refuse a second PENDING for the same pair", func(t *testing.T) {
		repo := NewApplicationRepository()
		require.NoError(t, repo.Create(ctx, pendingApp("A1", "S1", "J1", base)))
		assert.ErrorIs(t, repo.Create(ctx, pendingApp("A2", "S1", "J1", base)), domain.ErrDuplicatePending)

		// other job or other seeker is fine
		assert.NoError(t, repo.Create(ctx, pendingApp("A3", "S1", "J2", base)))
		assert.NoError(t, repo.Create(ctx, pendingApp("A4", "S2", "J1", base)))
	})

	t.Run("Should let exactly one of many concurrent creates win", func(t *testing.T) {
		repo := NewApplicationRepository()
		var wins, dups int32
		var wg sync.WaitGroup
		for i := 0; i < 32; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				err := repo.Create(ctx, pendingApp(fmt.Sprintf("A%d", i), "S1", "J1", base))
				switch err {
				case nil:
					atomic.AddInt32(&wins, 1)
				case domain.ErrDuplicatePending:
					atomic.AddInt32(&dups, 1)
				}
			}(i)
		}
		wg.Wait()
		assert.Equal(t, int32(1), wins)
		assert.Equal(t, int32(31), dups)
	})

	t.Run("Should update status only from the expected value", func(t *testing.T) {
		repo := NewApplicationRepository()
		require.NoError(t, repo.Create(ctx, pendingApp("A1", "S1", "J1", base)))

		require.NoError(t, repo.UpdateStatus(ctx, "A1", domain.ApplicationStatusPending, domain.ApplicationStatusAccepted))
		assert.ErrorIs(t, repo.UpdateStatus(ctx, "A1", domain.ApplicationStatusPending, domain.ApplicationStatusRejected), domain.ErrStatusChanged)
		assert.ErrorIs(t, repo.UpdateStatus(ctx, "nope", domain.ApplicationStatusPending, domain.ApplicationStatusRejected), domain.ErrNotFound)

		app, err := repo.GetByID(ctx, "A1")
		require.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusAccepted, app.Status)

		// a final record no longer blocks a new PENDING
		assert.NoError(t, repo.Create(ctx, pendingApp("A2", "S1", "J1", base)))
	})

	t.Run("Should return newest first and copies", func(t *testing.T) {
		repo := NewApplicationRepository()
		require.NoError(t, repo.Create(ctx, pendingApp("old", "S1", "J1", base)))
		require.NoError(t, repo.Create(ctx, pendingApp("new", "S2", "J1", base.Add(time.Hour))))

		apps, err := repo.GetByJobID(ctx, "J1")
		require.NoError(t, err)
		require.Len(t, apps, 2)
		assert.Equal(t, "new", apps[0].ID)

		apps[0].Skills[0] = "mutated"
		again, err := repo.GetByID(ctx, "new")
		require.NoError(t, err)
		assert.Equal(t, "Go", again.Skills[0])
	})

	t.Run("Should delete once", func(t *testing.T) {
		repo := NewApplicationRepository()
		require.NoError(t, repo.Create(ctx, pendingApp("A1", "S1", "J1", base)))
		require.NoError(t, repo.Delete(ctx, "A1"))
		assert.ErrorIs(t, repo.Delete(ctx, "A1"), domain.ErrNotFound)
		_, err := repo.GetByID(ctx, "A1")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestEventRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepository()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, &domain.Event{ID: "E1", Title: "Go Meetup", OrganizerID: "U1", CreatedDate: base}))
	require.NoError(t, repo.Create(ctx, &domain.Event{ID: "E2", Title: "GopherCon", OrganizerID: "U2", CreatedDate: base.Add(time.Hour)}))

	found, err := repo.SearchByTitle(ctx, "GO")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "E2", found[0].ID)

	mine, err := repo.GetByOrganizerID(ctx, "U1")
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	assert.ErrorIs(t, repo.Update(ctx, &domain.Event{ID: "E9"}), domain.ErrNotFound)

	exists, err := repo.Exists(ctx, "E1")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, repo.Delete(ctx, "E1"))
	exists, err = repo.Exists(ctx, "E1")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestDirectory(t *testing.T) {
	ctx := context.Background()
	dir := NewDirectory()
	dir.AddIdentity("U1", "event_manager", " participant ")
	dir.AddListing("J1")

	lookup := dir.Roles(ctx, "U1")
	require.Equal(t, domain.LookupFound, lookup.Outcome)
	assert.True(t, lookup.Roles.Has(domain.RoleEventManager))
	assert.True(t, lookup.Roles.Has(domain.RoleParticipant))

	assert.Equal(t, domain.LookupNotFound, dir.Exists(ctx, domain.KindIdentity, "U2").Outcome)
	assert.Equal(t, domain.LookupFound, dir.Exists(ctx, domain.KindListing, "J1").Outcome)

	dir.SetUnreachable(domain.KindListing, true)
	assert.Equal(t, domain.LookupUnreachable, dir.Exists(ctx, domain.KindListing, "J1").Outcome)
	assert.Equal(t, domain.LookupFound, dir.Exists(ctx, domain.KindIdentity, "U1").Outcome)
	assert.Equal(t, 2, dir.Calls(domain.KindListing))
}
