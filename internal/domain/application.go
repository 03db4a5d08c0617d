package domain

import (
	"context"
	"strings"
	"time"
)

// ApplicationStatus is the lifecycle state of an application.
type ApplicationStatus string

// Application status constants
const (
	ApplicationStatusPending  ApplicationStatus = "PENDING"
	ApplicationStatusAccepted ApplicationStatus = "ACCEPTED"
	ApplicationStatusRejected ApplicationStatus = "REJECTED"
)

// applicationTransitions lists every allowed move. Terminal states map to nothing.
var applicationTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationStatusPending:  {ApplicationStatusAccepted, ApplicationStatusRejected},
	ApplicationStatusAccepted: {},
	ApplicationStatusRejected: {},
}

// ParseApplicationStatus matches s case-insensitively against the known statuses.
func ParseApplicationStatus(s string) (ApplicationStatus, bool) {
	status := ApplicationStatus(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := applicationTransitions[status]; !ok {
		return "", false
	}
	return status, true
}

// IsFinal reports whether no transition may leave s.
func (s ApplicationStatus) IsFinal() bool {
	return len(applicationTransitions[s]) == 0
}

// CanTransitionTo reports whether next is reachable from s in one step.
// PENDING -> PENDING is allowed as a no-op rewrite.
func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	if s.IsFinal() {
		return false
	}
	if s == next {
		return true
	}
	for _, allowed := range applicationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Application represents a job seeker's application to a listing
type Application struct {
	ID              string            `json:"id"`
	JobID           string            `json:"job_id"`
	JobSeekerID     string            `json:"job_seeker_id"`
	Name            string            `json:"name"`
	Phone           string            `json:"phone"`
	Email           string            `json:"email"`
	CvFileURL       string            `json:"cv_file_url,omitempty"`
	Skills          []string          `json:"skills"`
	Experience      string            `json:"experience"`
	Degree          string            `json:"degree"`
	Status          ApplicationStatus `json:"status"`
	ApplicationDate time.Time         `json:"application_date"`
}

// ApplicationRepository defines data access methods for applications
type ApplicationRepository interface {
	// Create assigns nothing; the caller sets ID, Status and ApplicationDate.
	// Returns ErrDuplicatePending when a PENDING application for the same
	// (JobSeekerID, JobID) pair already exists.
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id string) (*Application, error)
	GetAll(ctx context.Context) ([]Application, error)
	GetByJobID(ctx context.Context, jobID string) ([]Application, error)
	GetByJobSeekerID(ctx context.Context, jobSeekerID string) ([]Application, error)
	GetByJobIDAndStatus(ctx context.Context, jobID string, status ApplicationStatus) ([]Application, error)
	GetByJobSeekerIDAndStatus(ctx context.Context, jobSeekerID string, status ApplicationStatus) ([]Application, error)
	// UpdateStatus only writes when the stored status still equals from.
	// Returns ErrNotFound or ErrStatusChanged otherwise.
	UpdateStatus(ctx context.Context, id string, from, to ApplicationStatus) error
	Delete(ctx context.Context, id string) error
}

// ApplicationUsecase defines business logic for applications
type ApplicationUsecase interface {
	CreateApplication(ctx context.Context, app *Application) (*Application, error)
	GetApplication(ctx context.Context, id string) (*Application, error)
	ListApplications(ctx context.Context) ([]Application, error)
	ListByJob(ctx context.Context, jobID string) ([]Application, error)
	ListByJobSeeker(ctx context.Context, jobSeekerID string) ([]Application, error)
	ListByJobAndStatus(ctx context.Context, jobID, status string) ([]Application, error)
	ListByJobSeekerAndStatus(ctx context.Context, jobSeekerID, status string) ([]Application, error)
	UpdateApplicationStatus(ctx context.Context, id, status string) (*Application, error)
	DeleteApplication(ctx context.Context, id string) error
	CountForJob(ctx context.Context, jobID string) (int64, error)
	CountPendingForJob(ctx context.Context, jobID string) (int64, error)
	CanApply(ctx context.Context, jobSeekerID, jobID string) bool
}
