package v1

import (
	"net/http"
	"strconv"

	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobUC domain.JobUsecase
}

func NewJobHandler(public *gin.RouterGroup, protected *gin.RouterGroup, jobUC domain.JobUsecase) {
	handler := &JobHandler{jobUC: jobUC}

	// Discovery path: no authentication, active jobs only.
	publicJobs := public.Group("/jobs")
	{
		publicJobs.GET("/public", handler.ListActive)
		publicJobs.GET("/public/:id", handler.GetActiveDetails)
	}

	protectedJobs := protected.Group("/jobs")
	{
		protectedJobs.GET("/:id", handler.GetDetails)
		protectedJobs.POST("", middleware.RequireRole(domain.RoleEmployer, domain.RoleAdmin), handler.Create)
		protectedJobs.PUT("/:id", middleware.RequireRole(domain.RoleEmployer, domain.RoleAdmin), handler.Update)
		protectedJobs.DELETE("/:id", middleware.RequireRole(domain.RoleEmployer, domain.RoleAdmin), handler.Delete)
	}

	employers := protected.Group("/employers", middleware.RequireRole(domain.RoleEmployer, domain.RoleAdmin))
	{
		employers.GET("/jobs", handler.ListByEmployer)
	}
}

type JobRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Location    string `json:"location" binding:"required"`
	Type        string `json:"type" binding:"required"`
	Salary      string `json:"salary"`
	Status      string `json:"status"`
}

func (r *JobRequest) toJob() *domain.Job {
	job := &domain.Job{
		Title:       r.Title,
		Description: r.Description,
		Location:    r.Location,
		Type:        domain.JobType(r.Type),
		Status:      domain.JobStatus(r.Status),
	}
	if r.Salary != "" {
		job.Salary = &r.Salary
	}
	return job
}

// ListActive is the public discovery endpoint: keyword/location/type
// filters combined with AND, 1-indexed pagination over the filtered set.
func (h *JobHandler) ListActive(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "0"))

	filter := domain.JobFilter{
		Keyword:  c.Query("keyword"),
		Location: c.Query("location"),
		Type:     c.Query("type"),
	}

	result, err := h.jobUC.ListActive(c.Request.Context(), filter, page, perPage)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job list", result)
}

func (h *JobHandler) GetActiveDetails(c *gin.Context) {
	job, err := h.jobUC.GetActiveJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job details", job)
}

func (h *JobHandler) GetDetails(c *gin.Context) {
	job, err := h.jobUC.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job details", job)
}

func (h *JobHandler) Create(c *gin.Context) {
	var req JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	job := req.toJob()
	if err := h.jobUC.CreateJob(c.Request.Context(), middleware.PrincipalFrom(c), job); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Job created", job)
}

func (h *JobHandler) Update(c *gin.Context) {
	var req JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	job := req.toJob()
	job.ID = c.Param("id")
	if job.Status == "" {
		job.Status = domain.JobStatusActive
	}

	if err := h.jobUC.UpdateJob(c.Request.Context(), middleware.PrincipalFrom(c), job); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job updated successfully", job)
}

func (h *JobHandler) Delete(c *gin.Context) {
	if err := h.jobUC.DeleteJob(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job deleted successfully", nil)
}

func (h *JobHandler) ListByEmployer(c *gin.Context) {
	jobs, err := h.jobUC.ListByEmployer(c.Request.Context(), middleware.PrincipalFrom(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Employer job list", gin.H{"jobs": jobs, "total": len(jobs)})
}
