package security_test

import (
	"testing"

	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/security"

	"github.com/stretchr/testify/assert"
)

func pdfBytes() []byte {
	return []byte("%PDF-1.4 fake document body")
}

func TestValidateCV(t *testing.T) {
	t.Run("Valid small PDF passes", func(t *testing.T) {
		err := security.ValidateCV("resume.pdf", "application/pdf", 1024, pdfBytes())
		assert.NoError(t, err)
	})

	t.Run("Oversize file fails naming the size", func(t *testing.T) {
		err := security.ValidateCV("resume.pdf", "application/pdf", 3*1024*1024, pdfBytes())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "less than 2MB")
		assert.Contains(t, err.Error(), "3.00MB")

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 413, appErr.Code)
	})

	t.Run("Non-PDF extension fails", func(t *testing.T) {
		err := security.ValidateCV("resume.docx", "application/pdf", 1024, pdfBytes())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "only PDF files are allowed")
	})

	t.Run("PDF extension with wrong content fails", func(t *testing.T) {
		err := security.ValidateCV("resume.pdf", "application/pdf", 1024, []byte("PK\x03\x04 zip content"))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not a valid PDF")
	})

	t.Run("Wrong declared MIME type fails", func(t *testing.T) {
		err := security.ValidateCV("resume.pdf", "application/msword", 1024, pdfBytes())
		assert.Error(t, err)

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 415, appErr.Code)
	})

	t.Run("Extension check is case-insensitive", func(t *testing.T) {
		err := security.ValidateCV("RESUME.PDF", "application/pdf", 1024, pdfBytes())
		assert.NoError(t, err)
	})

	t.Run("Exactly at the ceiling passes size check", func(t *testing.T) {
		err := security.ValidateCV("resume.pdf", "application/pdf", security.MaxCVBytes, pdfBytes())
		assert.NoError(t, err)
	})
}
