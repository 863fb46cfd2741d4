package v1

import (
	"net/http"

	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type EmployerHandler struct {
	employerUC domain.EmployerUsecase
}

func NewEmployerHandler(r *gin.RouterGroup, employerUC domain.EmployerUsecase) {
	handler := &EmployerHandler{employerUC: employerUC}

	employers := r.Group("/employers", middleware.RequireRole(domain.RoleEmployer, domain.RoleAdmin))
	{
		employers.GET("/me", handler.GetProfile)
		employers.PUT("/me", handler.UpdateProfile)
	}
}

func (h *EmployerHandler) GetProfile(c *gin.Context) {
	p := middleware.PrincipalFrom(c)
	profile, err := h.employerUC.GetProfile(c.Request.Context(), p, p.ID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Employer profile", profile)
}

type UpdateEmployerProfileRequest struct {
	CompanyName string `json:"company_name" binding:"required"`
	Industry    string `json:"industry"`
	Location    string `json:"location"`
	Website     string `json:"website"`
	Description string `json:"description"`
}

func (h *EmployerHandler) UpdateProfile(c *gin.Context) {
	var req UpdateEmployerProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	profile := &domain.EmployerProfile{
		CompanyName: req.CompanyName,
		Industry:    req.Industry,
		Location:    req.Location,
		Website:     req.Website,
		Description: req.Description,
	}

	if err := h.employerUC.UpdateProfile(c.Request.Context(), middleware.PrincipalFrom(c), profile); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile updated", profile)
}
