//go:build integration

package postgres

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/database"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

func setupPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("jobboard"),
		tcpostgres.WithUsername("jobboard"),
		tcpostgres.WithPassword("jobboard"),
		tcpostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(container) })

	dbURL, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, database.MigrateUp(dbURL, filepath.Join(projectRoot(), database.DefaultMigrationsPath)))

	pc := database.DefaultPoolConfig()
	pc.MinConns = 1
	pool, err := database.NewPostgresConnection(ctx, dbURL, pc)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func projectRoot() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "..")
}

func TestApplicationRepositoryPostgres(t *testing.T) {
	pool := setupPostgres(t)
	repo := NewApplicationRepository(pool)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	newApp := func(id string) *domain.Application {
		return &domain.Application{
			ID: id, JobID: "J1", JobSeekerID: "S1",
			Name: "Jane", Phone: "+6281234567890", Email: "jane@example.com",
			Skills: []string{"Go", "SQL"}, Experience: "2y", Degree: "BSc",
			Status: domain.ApplicationStatusPending, ApplicationDate: now,
		}
	}

	t.Run("Should round trip skills and empty CV", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, newApp("A1")))

		app, err := repo.GetByID(ctx, "A1")
		require.NoError(t, err)
		assert.Equal(t, []string{"Go", "SQL"}, app.Skills)
		assert.Empty(t, app.CvFileURL)
		assert.True(t, now.Equal(app.ApplicationDate))
	})

	t.Run("Should map the pending index violation", func(t *testing.T) {
		assert.ErrorIs(t, repo.Create(ctx, newApp("A2")), domain.ErrDuplicatePending)
	})

	t.Run("Should update conditionally", func(t *testing.T) {
		require.NoError(t, repo.UpdateStatus(ctx, "A1", domain.ApplicationStatusPending, domain.ApplicationStatusRejected))
		assert.ErrorIs(t, repo.UpdateStatus(ctx, "A1", domain.ApplicationStatusPending, domain.ApplicationStatusAccepted), domain.ErrStatusChanged)
		assert.ErrorIs(t, repo.UpdateStatus(ctx, "missing", domain.ApplicationStatusPending, domain.ApplicationStatusAccepted), domain.ErrNotFound)

		// rejected history frees the pair
		require.NoError(t, repo.Create(ctx, newApp("A3")))
		pending, err := repo.GetByJobIDAndStatus(ctx, "J1", domain.ApplicationStatusPending)
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.Equal(t, "A3", pending[0].ID)
	})

	t.Run("Should let one concurrent create win", func(t *testing.T) {
		var wins int32
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				app := newApp(fmt.Sprintf("R%d", i))
				app.JobID = "J-race"
				if repo.Create(ctx, app) == nil {
					atomic.AddInt32(&wins, 1)
				}
			}(i)
		}
		wg.Wait()
		assert.Equal(t, int32(1), wins)
	})

	t.Run("Should delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, "A3"))
		assert.ErrorIs(t, repo.Delete(ctx, "A3"), domain.ErrNotFound)
	})
}

func TestEventRepositoryPostgres(t *testing.T) {
	pool := setupPostgres(t)
	repo := NewEventRepository(pool)
	ctx := context.Background()

	start := time.Date(2026, 11, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	capacity := 10
	event := &domain.Event{
		ID: "E1", Title: "100% Go_Meetup", Location: "Jakarta",
		StartDate: &start, EndDate: &end, Capacity: &capacity,
		OrganizerID: "U1", CreatedDate: time.Now().UTC(),
	}
	require.NoError(t, repo.Create(ctx, event))

	found, err := repo.SearchByTitle(ctx, "go_meet")
	require.NoError(t, err)
	assert.Len(t, found, 1)

	none, err := repo.SearchByTitle(ctx, "go%up")
	require.NoError(t, err)
	assert.Empty(t, none)

	event.Title = "Renamed"
	require.NoError(t, repo.Update(ctx, event))
	stored, err := repo.GetByID(ctx, "E1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", stored.Title)
	assert.Equal(t, 10, *stored.Capacity)

	exists, err := repo.Exists(ctx, "E1")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, repo.Delete(ctx, "E1"))
	_, err = repo.GetByID(ctx, "E1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
