package v1

import (
	"net/http"
	"time"

	"go-jobboard-backend/config"
	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/auth"
	"go-jobboard-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

type RouterDeps struct {
	AuthUC        domain.AuthUsecase
	JobUC         domain.JobUsecase
	CandidateUC   domain.CandidateUsecase
	EmployerUC    domain.EmployerUsecase
	ApplicationUC domain.ApplicationUsecase
	AdminUC       domain.AdminUsecase
	UploadLimiter *security.UploadLimiter
	JWKSProvider  *auth.Provider
	Config        *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global middlewares. CORS must be first.
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL))
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig(
		deps.Config.RateLimitGlobalThreshold,
		time.Duration(deps.Config.RateLimitWindowSeconds)*time.Second,
	)))
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	// Health check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.JWKSProvider, deps.Config, deps.AuthUC))
	{
		NewAuthHandler(protected, deps.AuthUC)
		NewJobHandler(v1, protected, deps.JobUC)
		NewCandidateHandler(protected, deps.CandidateUC, deps.UploadLimiter)
		NewEmployerHandler(protected, deps.EmployerUC)
		NewApplicationHandler(protected, deps.ApplicationUC)
		NewAdminHandler(protected, deps.AdminUC, deps.JobUC)
	}

	return r
}
