package v1

import (
	"net/http"

	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	applicationUC domain.ApplicationUsecase
}

func NewApplicationHandler(r *gin.RouterGroup, applicationUC domain.ApplicationUsecase) {
	handler := &ApplicationHandler{applicationUC: applicationUC}

	candidates := r.Group("/candidates", middleware.RequireRole(domain.RoleCandidate))
	{
		candidates.POST("/jobs/:jobId/apply", handler.Apply)
		candidates.GET("/jobs/:jobId/applied", handler.HasApplied)
		candidates.GET("/applications", handler.ListMine)
	}

	r.GET("/applications/:id", handler.GetApplication)

	employers := r.Group("/employers", middleware.RequireRole(domain.RoleEmployer, domain.RoleAdmin))
	{
		employers.GET("/applications", handler.ListForEmployer)
		employers.GET("/applications/stats", handler.Stats)
		employers.PATCH("/applications/:id", handler.SetStatus)
		employers.GET("/applications/:id/cv-url", handler.CVDownloadURL)
	}
}

// Apply accepts multipart form-data: name, email, message and an optional
// "cv" file. Without a file the canonical profile CV backs the application.
func (h *ApplicationHandler) Apply(c *gin.Context) {
	form := &domain.ApplicationForm{
		Name:    c.PostForm("name"),
		Email:   c.PostForm("email"),
		Message: c.PostForm("message"),
	}

	if fileHeader, err := c.FormFile("cv"); err == nil {
		up, err := readUpload(fileHeader)
		if err != nil {
			c.Error(err)
			return
		}
		form.CV = up
	}

	app, err := h.applicationUC.Apply(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("jobId"), form)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Application submitted", app)
}

func (h *ApplicationHandler) HasApplied(c *gin.Context) {
	applied, err := h.applicationUC.HasApplied(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("jobId"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application check", gin.H{"applied": applied})
}

func (h *ApplicationHandler) ListMine(c *gin.Context) {
	apps, err := h.applicationUC.ListForCandidate(c.Request.Context(), middleware.PrincipalFrom(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applications", apps)
}

func (h *ApplicationHandler) GetApplication(c *gin.Context) {
	app, err := h.applicationUC.GetApplication(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application", app)
}

func (h *ApplicationHandler) ListForEmployer(c *gin.Context) {
	apps, err := h.applicationUC.ListForEmployer(c.Request.Context(), middleware.PrincipalFrom(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applications", apps)
}

func (h *ApplicationHandler) Stats(c *gin.Context) {
	stats, err := h.applicationUC.StatsForEmployer(c.Request.Context(), middleware.PrincipalFrom(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application stats", stats)
}

type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *ApplicationHandler) SetStatus(c *gin.Context) {
	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	status, ok := domain.ParseApplicationStatus(req.Status)
	if !ok {
		c.Error(apperror.BadRequest("Unknown application status: " + req.Status))
		return
	}

	if err := h.applicationUC.SetStatus(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"), status); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application status updated", gin.H{"id": c.Param("id"), "status": status})
}

func (h *ApplicationHandler) CVDownloadURL(c *gin.Context) {
	url, err := h.applicationUC.CVDownloadURL(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "CV URL", gin.H{"url": url})
}
