package v1

import (
	"net/http"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	applicationUC domain.ApplicationUsecase
}

// NewApplicationHandler registers application routes. Mutating routes go
// through writes, which carries the rate limiter.
func NewApplicationHandler(r *gin.RouterGroup, writes gin.HandlerFunc, applicationUC domain.ApplicationUsecase) {
	handler := &ApplicationHandler{applicationUC: applicationUC}

	applications := r.Group("/applications")
	{
		applications.POST("", writes, handler.Create)
		applications.GET("", handler.List)
		applications.GET("/can-apply", handler.CanApply)
		applications.GET("/:id", handler.Get)
		applications.PATCH("/:id/status/:status", writes, handler.UpdateStatus)
		applications.DELETE("/:id", writes, handler.Delete)

		applications.GET("/job/:jobId", handler.ListByJob)
		applications.GET("/job/:jobId/status/:status", handler.ListByJobAndStatus)
		applications.GET("/job/:jobId/count", handler.CountForJob)
		applications.GET("/job/:jobId/pending/count", handler.CountPendingForJob)

		applications.GET("/jobseeker/:jobSeekerId", handler.ListByJobSeeker)
		applications.GET("/jobseeker/:jobSeekerId/status/:status", handler.ListByJobSeekerAndStatus)
	}
}

// CreateApplicationRequest is the payload for submitting an application.
// Field rules are enforced by the usecase so the first violation is reported.
type CreateApplicationRequest struct {
	JobID       string   `json:"job_id"`
	JobSeekerID string   `json:"job_seeker_id"`
	Name        string   `json:"name"`
	Phone       string   `json:"phone"`
	Email       string   `json:"email"`
	CvFileURL   string   `json:"cv_file_url"`
	Skills      []string `json:"skills"`
	Experience  string   `json:"experience"`
	Degree      string   `json:"degree"`
}

// CountResponse wraps a count
type CountResponse struct {
	Count int64 `json:"count"`
}

// CanApplyResponse wraps the eligibility answer
type CanApplyResponse struct {
	CanApply bool `json:"canApply"`
}

// CreateApplication godoc
// @Summary      Submit an application
// @Description  Create a PENDING application after checking the job seeker, the job and duplicates
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        body  body      CreateApplicationRequest  true  "Application data"
// @Success      201   {object}  response.Response{data=domain.Application}
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Failure      503   {object}  response.Response
// @Router       /applications [post]
func (h *ApplicationHandler) Create(c *gin.Context) {
	var req CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}

	app, err := h.applicationUC.CreateApplication(c.Request.Context(), &domain.Application{
		JobID:       req.JobID,
		JobSeekerID: req.JobSeekerID,
		Name:        req.Name,
		Phone:       req.Phone,
		Email:       req.Email,
		CvFileURL:   req.CvFileURL,
		Skills:      req.Skills,
		Experience:  req.Experience,
		Degree:      req.Degree,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Application submitted", app)
}

// ListApplications godoc
// @Summary      List applications
// @Tags         applications
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Application}
// @Router       /applications [get]
func (h *ApplicationHandler) List(c *gin.Context) {
	apps, err := h.applicationUC.ListApplications(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applications", apps)
}

// GetApplication godoc
// @Summary      Get an application
// @Tags         applications
// @Produce      json
// @Param        id   path      string  true  "Application ID"
// @Success      200  {object}  response.Response{data=domain.Application}
// @Failure      404  {object}  response.Response
// @Router       /applications/{id} [get]
func (h *ApplicationHandler) Get(c *gin.Context) {
	app, err := h.applicationUC.GetApplication(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application", app)
}

// ListByJob godoc
// @Summary      List applications for a job
// @Tags         applications
// @Produce      json
// @Param        jobId  path      string  true  "Job ID"
// @Success      200    {object}  response.Response{data=[]domain.Application}
// @Failure      404    {object}  response.Response
// @Failure      503    {object}  response.Response
// @Router       /applications/job/{jobId} [get]
func (h *ApplicationHandler) ListByJob(c *gin.Context) {
	apps, err := h.applicationUC.ListByJob(c.Request.Context(), c.Param("jobId"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applications for job", apps)
}

// ListByJobSeeker godoc
// @Summary      List applications of a job seeker
// @Tags         applications
// @Produce      json
// @Param        jobSeekerId  path      string  true  "Job seeker ID"
// @Success      200          {object}  response.Response{data=[]domain.Application}
// @Failure      404          {object}  response.Response
// @Failure      503          {object}  response.Response
// @Router       /applications/jobseeker/{jobSeekerId} [get]
func (h *ApplicationHandler) ListByJobSeeker(c *gin.Context) {
	apps, err := h.applicationUC.ListByJobSeeker(c.Request.Context(), c.Param("jobSeekerId"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applications for job seeker", apps)
}

// ListByJobAndStatus godoc
// @Summary      List applications for a job by status
// @Tags         applications
// @Produce      json
// @Param        jobId   path      string  true  "Job ID"
// @Param        status  path      string  true  "PENDING, ACCEPTED or REJECTED"
// @Success      200     {object}  response.Response{data=[]domain.Application}
// @Failure      400     {object}  response.Response
// @Router       /applications/job/{jobId}/status/{status} [get]
func (h *ApplicationHandler) ListByJobAndStatus(c *gin.Context) {
	apps, err := h.applicationUC.ListByJobAndStatus(c.Request.Context(), c.Param("jobId"), c.Param("status"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applications for job", apps)
}

// ListByJobSeekerAndStatus godoc
// @Summary      List applications of a job seeker by status
// @Tags         applications
// @Produce      json
// @Param        jobSeekerId  path      string  true  "Job seeker ID"
// @Param        status       path      string  true  "PENDING, ACCEPTED or REJECTED"
// @Success      200          {object}  response.Response{data=[]domain.Application}
// @Failure      400          {object}  response.Response
// @Router       /applications/jobseeker/{jobSeekerId}/status/{status} [get]
func (h *ApplicationHandler) ListByJobSeekerAndStatus(c *gin.Context) {
	apps, err := h.applicationUC.ListByJobSeekerAndStatus(c.Request.Context(), c.Param("jobSeekerId"), c.Param("status"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applications for job seeker", apps)
}

// UpdateApplicationStatus godoc
// @Summary      Update application status
// @Description  Move a PENDING application to ACCEPTED or REJECTED. Final states cannot change.
// @Tags         applications
// @Produce      json
// @Param        id      path      string  true  "Application ID"
// @Param        status  path      string  true  "PENDING, ACCEPTED or REJECTED"
// @Success      200     {object}  response.Response{data=domain.Application}
// @Failure      400     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Failure      409     {object}  response.Response
// @Router       /applications/{id}/status/{status} [patch]
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	app, err := h.applicationUC.UpdateApplicationStatus(c.Request.Context(), c.Param("id"), c.Param("status"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application status updated", app)
}

// DeleteApplication godoc
// @Summary      Delete an application
// @Tags         applications
// @Param        id   path  string  true  "Application ID"
// @Success      204
// @Failure      404  {object}  response.Response
// @Router       /applications/{id} [delete]
func (h *ApplicationHandler) Delete(c *gin.Context) {
	if err := h.applicationUC.DeleteApplication(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.NoContent(c)
}

// CountForJob godoc
// @Summary      Count applications for a job
// @Tags         applications
// @Produce      json
// @Param        jobId  path      string  true  "Job ID"
// @Success      200    {object}  response.Response{data=CountResponse}
// @Router       /applications/job/{jobId}/count [get]
func (h *ApplicationHandler) CountForJob(c *gin.Context) {
	count, err := h.applicationUC.CountForJob(c.Request.Context(), c.Param("jobId"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application count", CountResponse{Count: count})
}

// CountPendingForJob godoc
// @Summary      Count pending applications for a job
// @Tags         applications
// @Produce      json
// @Param        jobId  path      string  true  "Job ID"
// @Success      200    {object}  response.Response{data=CountResponse}
// @Router       /applications/job/{jobId}/pending/count [get]
func (h *ApplicationHandler) CountPendingForJob(c *gin.Context) {
	count, err := h.applicationUC.CountPendingForJob(c.Request.Context(), c.Param("jobId"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Pending application count", CountResponse{Count: count})
}

// CanApply godoc
// @Summary      Check eligibility to apply
// @Description  Reports whether a create for this pair would currently pass. Never writes.
// @Tags         applications
// @Produce      json
// @Param        jobSeekerId  query     string  true  "Job seeker ID"
// @Param        jobId        query     string  true  "Job ID"
// @Success      200          {object}  response.Response{data=CanApplyResponse}
// @Router       /applications/can-apply [get]
func (h *ApplicationHandler) CanApply(c *gin.Context) {
	ok := h.applicationUC.CanApply(c.Request.Context(), c.Query("jobSeekerId"), c.Query("jobId"))
	response.Success(c, http.StatusOK, "Eligibility", CanApplyResponse{CanApply: ok})
}
