package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/logger"
	"go-jobboard-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type applicationUsecase struct {
	applicationRepo domain.ApplicationRepository
	directory       domain.Directory
	validate        *validator.Validate
	policy          LookupPolicy
	now             func() time.Time
}

// NewApplicationUsecase creates a new application usecase. validate must have
// the custom tags from pkg/validation registered.
func NewApplicationUsecase(
	appRepo domain.ApplicationRepository,
	directory domain.Directory,
	validate *validator.Validate,
	policy LookupPolicy,
) domain.ApplicationUsecase {
	return &applicationUsecase{
		applicationRepo: appRepo,
		directory:       directory,
		validate:        validate,
		policy:          policy,
		now:             time.Now,
	}
}

// fieldCheck is one fail-fast validation step
type fieldCheck struct {
	value interface{}
	tag   string
	msg   string
}

func (uc *applicationUsecase) runChecks(checks []fieldCheck) error {
	for _, c := range checks {
		if err := uc.validate.Var(c.value, c.tag); err != nil {
			return apperror.BadRequest(c.msg)
		}
	}
	return nil
}

// CreateApplication validates the candidate, confirms the job seeker and job
// exist, rejects a duplicate PENDING application and persists a new PENDING record.
func (uc *applicationUsecase) CreateApplication(ctx context.Context, candidate *domain.Application) (*domain.Application, error) {
	if candidate == nil {
		return nil, apperror.BadRequest("Application cannot be empty")
	}

	// 1. Contact and reference fields, first violation wins
	if err := uc.runChecks([]fieldCheck{
		{candidate.JobID, validation.TagNotBlank, "Job ID is required"},
		{candidate.JobSeekerID, validation.TagNotBlank, "Job seeker ID is required"},
		{candidate.Name, validation.TagNotBlank, "Name is required"},
		{candidate.Email, validation.TagNotBlank, "Email is required"},
		{candidate.Phone, validation.TagNotBlank, "Phone number is required"},
		{candidate.Email, validation.TagEmail, "Invalid email format"},
		{candidate.Phone, validation.TagPhone, "Invalid phone number format"},
		{candidate.Skills, "min=1", "At least one skill is required"},
	}); err != nil {
		return nil, err
	}

	// 2. Job seeker and job must resolve
	seeker, job := uc.resolveSeekerAndJob(ctx, candidate.JobSeekerID, candidate.JobID)
	if err := uc.policy.guardError(seeker, domain.KindIdentity, candidate.JobSeekerID,
		"Job seeker not found with ID: "+candidate.JobSeekerID,
		"Unable to verify job seeker, please try again later"); err != nil {
		return nil, err
	}
	if err := uc.policy.guardError(job, domain.KindListing, candidate.JobID,
		"Job not found with ID: "+candidate.JobID,
		"Unable to verify job, please try again later"); err != nil {
		return nil, err
	}

	// 3. Duplicate check against PENDING applications only
	applied, err := uc.hasAlreadyApplied(ctx, candidate.JobSeekerID, candidate.JobID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if applied {
		return nil, apperror.Conflict("User has already applied for this job")
	}

	// 4. Secondary requirements
	if err := uc.runChecks([]fieldCheck{
		{candidate.Experience, validation.TagNotBlank, "Experience information is required"},
		{candidate.Degree, validation.TagNotBlank, "Degree information is required"},
		{candidate.CvFileURL, validation.TagCvURL, "Invalid CV file URL"},
	}); err != nil {
		return nil, err
	}

	// 5. Create application
	app := &domain.Application{
		ID:              uuid.NewString(),
		JobID:           candidate.JobID,
		JobSeekerID:     candidate.JobSeekerID,
		Name:            candidate.Name,
		Phone:           candidate.Phone,
		Email:           candidate.Email,
		CvFileURL:       candidate.CvFileURL,
		Skills:          append([]string(nil), candidate.Skills...),
		Experience:      candidate.Experience,
		Degree:          candidate.Degree,
		Status:          domain.ApplicationStatusPending,
		ApplicationDate: uc.now().UTC(),
	}

	if err := uc.applicationRepo.Create(ctx, app); err != nil {
		// the store lost a race with a concurrent identical create
		if errors.Is(err, domain.ErrDuplicatePending) {
			return nil, apperror.Conflict("User has already applied for this job")
		}
		return nil, apperror.Internal(err)
	}

	logger.Log.Info("Application created",
		"application_id", app.ID,
		"job_id", app.JobID,
		"job_seeker_id", app.JobSeekerID,
	)
	return app, nil
}

func (uc *applicationUsecase) GetApplication(ctx context.Context, id string) (*domain.Application, error) {
	if validation.IsBlank(id) {
		return nil, apperror.BadRequest("Application ID cannot be empty")
	}
	return uc.load(ctx, id)
}

func (uc *applicationUsecase) ListApplications(ctx context.Context) ([]domain.Application, error) {
	apps, err := uc.applicationRepo.GetAll(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return apps, nil
}

// ListByJob returns all applications for a job that still exists
func (uc *applicationUsecase) ListByJob(ctx context.Context, jobID string) ([]domain.Application, error) {
	if validation.IsBlank(jobID) {
		return nil, apperror.BadRequest("Job ID cannot be empty")
	}
	if err := uc.requireJob(ctx, jobID); err != nil {
		return nil, err
	}

	apps, err := uc.applicationRepo.GetByJobID(ctx, jobID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return apps, nil
}

// ListByJobSeeker returns all applications of a job seeker that still exists
func (uc *applicationUsecase) ListByJobSeeker(ctx context.Context, jobSeekerID string) ([]domain.Application, error) {
	if validation.IsBlank(jobSeekerID) {
		return nil, apperror.BadRequest("Job seeker ID cannot be empty")
	}
	if err := uc.requireJobSeeker(ctx, jobSeekerID); err != nil {
		return nil, err
	}

	apps, err := uc.applicationRepo.GetByJobSeekerID(ctx, jobSeekerID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return apps, nil
}

func (uc *applicationUsecase) ListByJobAndStatus(ctx context.Context, jobID, status string) ([]domain.Application, error) {
	if validation.IsBlank(jobID) {
		return nil, apperror.BadRequest("Job ID cannot be empty")
	}
	parsed, err := parseStatus(status)
	if err != nil {
		return nil, err
	}
	if err := uc.requireJob(ctx, jobID); err != nil {
		return nil, err
	}

	apps, err := uc.applicationRepo.GetByJobIDAndStatus(ctx, jobID, parsed)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return apps, nil
}

func (uc *applicationUsecase) ListByJobSeekerAndStatus(ctx context.Context, jobSeekerID, status string) ([]domain.Application, error) {
	if validation.IsBlank(jobSeekerID) {
		return nil, apperror.BadRequest("Job seeker ID cannot be empty")
	}
	parsed, err := parseStatus(status)
	if err != nil {
		return nil, err
	}
	if err := uc.requireJobSeeker(ctx, jobSeekerID); err != nil {
		return nil, err
	}

	apps, err := uc.applicationRepo.GetByJobSeekerIDAndStatus(ctx, jobSeekerID, parsed)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return apps, nil
}

// UpdateApplicationStatus moves a PENDING application to a new status.
// ACCEPTED and REJECTED are final: any further update is a conflict.
func (uc *applicationUsecase) UpdateApplicationStatus(ctx context.Context, id, status string) (*domain.Application, error) {
	// 1. Validate input
	if validation.IsBlank(id) {
		return nil, apperror.BadRequest("Application ID cannot be empty")
	}
	next, err := parseStatus(status)
	if err != nil {
		return nil, err
	}

	// 2. Get application
	app, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}

	// 3. Check transition table
	if !app.Status.CanTransitionTo(next) {
		return nil, apperror.Conflict(fmt.Sprintf("Cannot update application status from final state: %s", app.Status))
	}

	// 4. Conditional write, guarded on the status we just read
	if err := uc.applicationRepo.UpdateStatus(ctx, id, app.Status, next); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return nil, apperror.NotFound("Application not found with ID: " + id)
		case errors.Is(err, domain.ErrStatusChanged):
			return nil, apperror.Conflict("Application status was changed by another request")
		default:
			return nil, apperror.Internal(err)
		}
	}

	logger.Log.Info("Application status updated",
		"application_id", id,
		"from", string(app.Status),
		"to", string(next),
	)
	app.Status = next
	return app, nil
}

func (uc *applicationUsecase) DeleteApplication(ctx context.Context, id string) error {
	if validation.IsBlank(id) {
		return apperror.BadRequest("Application ID cannot be empty")
	}

	if err := uc.applicationRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Application not found with ID: " + id)
		}
		return apperror.Internal(err)
	}

	logger.Log.Info("Application deleted", "application_id", id)
	return nil
}

// CountForJob counts every application for jobID without re-checking the listing
func (uc *applicationUsecase) CountForJob(ctx context.Context, jobID string) (int64, error) {
	if validation.IsBlank(jobID) {
		return 0, apperror.BadRequest("Job ID cannot be empty")
	}
	apps, err := uc.applicationRepo.GetByJobID(ctx, jobID)
	if err != nil {
		return 0, apperror.Internal(err)
	}
	return int64(len(apps)), nil
}

func (uc *applicationUsecase) CountPendingForJob(ctx context.Context, jobID string) (int64, error) {
	if validation.IsBlank(jobID) {
		return 0, apperror.BadRequest("Job ID cannot be empty")
	}
	apps, err := uc.applicationRepo.GetByJobIDAndStatus(ctx, jobID, domain.ApplicationStatusPending)
	if err != nil {
		return 0, apperror.Internal(err)
	}
	return int64(len(apps)), nil
}

// CanApply reports whether a create for this pair would pass every remote and
// duplicate guard. It never writes and never fails: any doubt is false.
func (uc *applicationUsecase) CanApply(ctx context.Context, jobSeekerID, jobID string) bool {
	if validation.IsBlank(jobSeekerID) || validation.IsBlank(jobID) {
		return false
	}

	seeker, job := uc.resolveSeekerAndJob(ctx, jobSeekerID, jobID)
	if seeker.Outcome != domain.LookupFound || job.Outcome != domain.LookupFound {
		return false
	}

	applied, err := uc.hasAlreadyApplied(ctx, jobSeekerID, jobID)
	if err != nil {
		logger.Log.Error("Duplicate check failed", "job_seeker_id", jobSeekerID, "job_id", jobID, "error", err)
		return false
	}
	return !applied
}

// resolveSeekerAndJob issues both existence lookups concurrently. The caller
// still evaluates them in a fixed order so the first reported failure is stable.
func (uc *applicationUsecase) resolveSeekerAndJob(ctx context.Context, jobSeekerID, jobID string) (seeker, job domain.Lookup) {
	var g errgroup.Group
	g.Go(func() error {
		seeker = uc.directory.Exists(ctx, domain.KindIdentity, jobSeekerID)
		return nil
	})
	g.Go(func() error {
		job = uc.directory.Exists(ctx, domain.KindListing, jobID)
		return nil
	})
	_ = g.Wait()
	return seeker, job
}

func (uc *applicationUsecase) requireJob(ctx context.Context, jobID string) error {
	return uc.policy.guardError(uc.directory.Exists(ctx, domain.KindListing, jobID),
		domain.KindListing, jobID,
		"Job not found with ID: "+jobID,
		"Unable to verify job, please try again later")
}

func (uc *applicationUsecase) requireJobSeeker(ctx context.Context, jobSeekerID string) error {
	return uc.policy.guardError(uc.directory.Exists(ctx, domain.KindIdentity, jobSeekerID),
		domain.KindIdentity, jobSeekerID,
		"Job seeker not found with ID: "+jobSeekerID,
		"Unable to verify job seeker, please try again later")
}

// hasAlreadyApplied scans the job seeker's PENDING applications for jobID.
// Accepted or rejected history does not count.
func (uc *applicationUsecase) hasAlreadyApplied(ctx context.Context, jobSeekerID, jobID string) (bool, error) {
	pending, err := uc.applicationRepo.GetByJobSeekerIDAndStatus(ctx, jobSeekerID, domain.ApplicationStatusPending)
	if err != nil {
		return false, err
	}
	for _, app := range pending {
		if app.JobID == jobID {
			return true, nil
		}
	}
	return false, nil
}

func (uc *applicationUsecase) load(ctx context.Context, id string) (*domain.Application, error) {
	app, err := uc.applicationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Application not found with ID: " + id)
		}
		return nil, apperror.Internal(err)
	}
	return app, nil
}

func parseStatus(status string) (domain.ApplicationStatus, error) {
	if validation.IsBlank(status) {
		return "", apperror.BadRequest("Status cannot be empty")
	}
	parsed, ok := domain.ParseApplicationStatus(status)
	if !ok {
		return "", apperror.BadRequest("Invalid status. Must be PENDING, ACCEPTED, or REJECTED")
	}
	return parsed, nil
}
