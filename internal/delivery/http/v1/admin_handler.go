package v1

import (
	"net/http"
	"strconv"

	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminUC domain.AdminUsecase
	jobUC   domain.JobUsecase
}

func NewAdminHandler(r *gin.RouterGroup, adminUC domain.AdminUsecase, jobUC domain.JobUsecase) {
	handler := &AdminHandler{adminUC: adminUC, jobUC: jobUC}

	admin := r.Group("/admin", middleware.RequireRole(domain.RoleAdmin))
	{
		admin.GET("/stats", handler.GetStats)
		admin.GET("/users", handler.ListUsers)
		admin.GET("/jobs", handler.ListJobs)
		admin.DELETE("/jobs/:id", handler.DeleteJob)
	}
}

func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.adminUC.GetStats(c.Request.Context(), middleware.PrincipalFrom(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Platform stats", stats)
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	page := queryInt(c, "page", 1)
	pageSize := queryInt(c, "page_size", 10)

	result, err := h.adminUC.ListUsers(c.Request.Context(), middleware.PrincipalFrom(c), c.Query("role"), page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Users", result)
}

func (h *AdminHandler) ListJobs(c *gin.Context) {
	page := queryInt(c, "page", 1)
	pageSize := queryInt(c, "page_size", 10)

	result, err := h.adminUC.ListJobs(c.Request.Context(), middleware.PrincipalFrom(c), page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Jobs", result)
}

// DeleteJob lets platform admins take down any posting. Applications keep
// their denormalized snapshot and survive the delete.
func (h *AdminHandler) DeleteJob(c *gin.Context) {
	if err := h.jobUC.DeleteJob(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job deleted", nil)
}

func queryInt(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil || v <= 0 {
		return def
	}
	return v
}
