package postgres

import (
	"context"
	"errors"

	"go-jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// PostgreSQL error codes
const (
	pgUniqueViolation = "23505"
)

const applicationColumns = `
	id, job_id, job_seeker_id, name, phone, email, COALESCE(cv_file_url, ''),
	skills, experience, degree, status, application_date`

type applicationRepo struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

// Create inserts a new application. The partial unique index on
// (job_seeker_id, job_id) WHERE status = 'PENDING' turns a racing duplicate
// into ErrDuplicatePending.
func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	query := `
		INSERT INTO applications (id, job_id, job_seeker_id, name, phone, email, cv_file_url,
			skills, experience, degree, status, application_date)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9, $10, $11, $12)`

	_, err := r.db.Exec(ctx, query,
		app.ID,
		app.JobID,
		app.JobSeekerID,
		app.Name,
		app.Phone,
		app.Email,
		app.CvFileURL,
		pq.Array(app.Skills),
		app.Experience,
		app.Degree,
		app.Status,
		app.ApplicationDate,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return domain.ErrDuplicatePending
		}
		return err
	}
	return nil
}

// GetByID retrieves an application by ID
func (r *applicationRepo) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1`

	app, err := scanApplication(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return app, nil
}

func (r *applicationRepo) GetAll(ctx context.Context) ([]domain.Application, error) {
	return r.list(ctx, `SELECT `+applicationColumns+` FROM applications ORDER BY application_date DESC, id`)
}

func (r *applicationRepo) GetByJobID(ctx context.Context, jobID string) ([]domain.Application, error) {
	return r.list(ctx, `SELECT `+applicationColumns+` FROM applications
		WHERE job_id = $1 ORDER BY application_date DESC, id`, jobID)
}

func (r *applicationRepo) GetByJobSeekerID(ctx context.Context, jobSeekerID string) ([]domain.Application, error) {
	return r.list(ctx, `SELECT `+applicationColumns+` FROM applications
		WHERE job_seeker_id = $1 ORDER BY application_date DESC, id`, jobSeekerID)
}

func (r *applicationRepo) GetByJobIDAndStatus(ctx context.Context, jobID string, status domain.ApplicationStatus) ([]domain.Application, error) {
	return r.list(ctx, `SELECT `+applicationColumns+` FROM applications
		WHERE job_id = $1 AND status = $2 ORDER BY application_date DESC, id`, jobID, status)
}

func (r *applicationRepo) GetByJobSeekerIDAndStatus(ctx context.Context, jobSeekerID string, status domain.ApplicationStatus) ([]domain.Application, error) {
	return r.list(ctx, `SELECT `+applicationColumns+` FROM applications
		WHERE job_seeker_id = $1 AND status = $2 ORDER BY application_date DESC, id`, jobSeekerID, status)
}

// UpdateStatus writes the new status only while the row still holds from.
// A miss is resolved into ErrNotFound or ErrStatusChanged with a second read.
func (r *applicationRepo) UpdateStatus(ctx context.Context, id string, from, to domain.ApplicationStatus) error {
	query := `UPDATE applications SET status = $3 WHERE id = $1 AND status = $2`
	result, err := r.db.Exec(ctx, query, id, from, to)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return domain.ErrStatusChanged
		}
		return err
	}
	if result.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM applications WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound
	}
	return domain.ErrStatusChanged
}

func (r *applicationRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *applicationRepo) list(ctx context.Context, query string, args ...interface{}) ([]domain.Application, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applications := make([]domain.Application, 0)
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		applications = append(applications, *app)
	}
	return applications, rows.Err()
}

func scanApplication(row pgx.Row) (*domain.Application, error) {
	var app domain.Application
	var skills []string
	err := row.Scan(
		&app.ID, &app.JobID, &app.JobSeekerID, &app.Name, &app.Phone, &app.Email, &app.CvFileURL,
		pq.Array(&skills), &app.Experience, &app.Degree, &app.Status, &app.ApplicationDate,
	)
	if err != nil {
		return nil, err
	}
	app.Skills = skills
	return &app, nil
}
