package v1

import (
	"net/http"

	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUC domain.AuthUsecase
}

func NewAuthHandler(protected *gin.RouterGroup, authUC domain.AuthUsecase) {
	handler := &AuthHandler{authUC: authUC}

	auth := protected.Group("/auth")
	{
		auth.POST("/register", handler.Register)
		auth.GET("/me", handler.Me)
	}
}

type RegisterRequest struct {
	Name string `json:"name" binding:"required,min=2,max=120"`
	Role string `json:"role" binding:"required,oneof=candidate employer"`
}

// Register syncs the token identity into the local users table. The role
// is fixed here; re-registering an existing account changes nothing.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	role, _ := domain.ParseRole(req.Role)
	user := &domain.User{
		ID:    c.GetString(string(domain.KeyUserID)),
		Email: c.GetString(string(domain.KeyUserEmail)),
		Name:  req.Name,
		Role:  role,
	}

	created, err := h.authUC.EnsureUserExists(c.Request.Context(), user)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Account registered", created)
}

// Me resolves the current principal and its profile snapshot.
func (h *AuthHandler) Me(c *gin.Context) {
	snapshot, err := h.authUC.ResolveSnapshot(c.Request.Context(), middleware.PrincipalFrom(c))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Current account", snapshot)
}
