package v1

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/logger"
	"go-jobboard-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

type CandidateHandler struct {
	candidateUC   domain.CandidateUsecase
	uploadLimiter *security.UploadLimiter
}

func NewCandidateHandler(r *gin.RouterGroup, candidateUC domain.CandidateUsecase, uploadLimiter *security.UploadLimiter) {
	handler := &CandidateHandler{candidateUC: candidateUC, uploadLimiter: uploadLimiter}

	candidates := r.Group("/candidates", middleware.RequireRole(domain.RoleCandidate))
	{
		candidates.GET("/me", handler.GetProfile)
		candidates.PUT("/me", handler.UpdateProfile)
		candidates.POST("/me/cv", handler.UploadCV)
		candidates.GET("/me/cv/url", handler.FreshCVURL)
	}
}

func (h *CandidateHandler) GetProfile(c *gin.Context) {
	p := middleware.PrincipalFrom(c)
	profile, err := h.candidateUC.GetProfile(c.Request.Context(), p, p.ID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Candidate profile", profile)
}

type UpdateCandidateProfileRequest struct {
	Phone    string   `json:"phone"`
	Location string   `json:"location"`
	Bio      string   `json:"bio"`
	Skills   []string `json:"skills"`
}

func (h *CandidateHandler) UpdateProfile(c *gin.Context) {
	var req UpdateCandidateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	profile := &domain.CandidateProfile{
		Phone:    req.Phone,
		Location: req.Location,
		Bio:      req.Bio,
		Skills:   req.Skills,
	}

	if err := h.candidateUC.UpdateProfile(c.Request.Context(), middleware.PrincipalFrom(c), profile); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile updated", profile)
}

// UploadCV receives the canonical profile CV as multipart form-data under
// the "file" field.
func (h *CandidateHandler) UploadCV(c *gin.Context) {
	p := middleware.PrincipalFrom(c)

	if allowed, retryAfter, err := h.uploadLimiter.AllowUpload(c.Request.Context(), c.ClientIP(), p.ID); err != nil {
		logger.Log.Warn("upload limiter unavailable", "error", err)
	} else if !allowed {
		c.Header("Retry-After", strconv.Itoa(retryAfter))
		c.Error(apperror.New(http.StatusTooManyRequests, "Upload limit reached. Try again later.", nil))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.Error(apperror.BadRequest("No file selected"))
		return
	}

	up, err := readUpload(fileHeader)
	if err != nil {
		c.Error(err)
		return
	}

	ref, err := h.candidateUC.UploadCV(c.Request.Context(), p, up)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "CV uploaded", ref)
}

// FreshCVURL re-presigns the canonical CV. Clients must not cache the
// result long-term.
func (h *CandidateHandler) FreshCVURL(c *gin.Context) {
	url, err := h.candidateUC.FreshCVURL(c.Request.Context(), middleware.PrincipalFrom(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "CV URL", gin.H{"url": url})
}

// readUpload loads a multipart file into memory. The 2 MiB ceiling makes
// buffering acceptable; anything over it is rejected before the read
// completes.
func readUpload(fh *multipart.FileHeader) (*domain.CVUpload, error) {
	if fh.Size > security.MaxCVBytes {
		return &domain.CVUpload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
		}, nil // size validation produces the proper error downstream
	}

	f, err := fh.Open()
	if err != nil {
		return nil, apperror.BadRequest("Could not read uploaded file")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, security.MaxCVBytes+1))
	if err != nil {
		return nil, apperror.BadRequest("Could not read uploaded file")
	}

	return &domain.CVUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Data:        data,
	}, nil
}
