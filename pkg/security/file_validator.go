package security

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"go-jobboard-backend/pkg/apperror"
)

// MaxCVBytes is the upload size ceiling for resume documents (2 MiB).
const MaxCVBytes = 2 * 1024 * 1024

// pdfMagic is the %PDF signature every PDF file starts with.
var pdfMagic = []byte{0x25, 0x50, 0x44, 0x46}

var allowedCVMIMETypes = map[string]bool{
	"application/pdf": true,
}

// ValidateCV performs 3-layer validation on a resume upload:
// 1. Extension whitelist (.pdf only)
// 2. Magic byte verification (content is actually a PDF)
// 3. Declared MIME type whitelist
// Size is checked first so the error names the offending size.
func ValidateCV(filename string, declaredMIME string, size int64, data []byte) error {
	if size > MaxCVBytes {
		return apperror.PayloadTooLarge(fmt.Sprintf(
			"CV must be less than 2MB (your file: %.2fMB)", float64(size)/(1024*1024)))
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".pdf" {
		return apperror.UnsupportedMedia("only PDF files are allowed")
	}

	if len(data) < len(pdfMagic) || !bytes.HasPrefix(data, pdfMagic) {
		return apperror.UnsupportedMedia("file content is not a valid PDF")
	}

	// The declared type is the weakest signal but rejecting a wrong one
	// catches sloppy clients early.
	if declaredMIME != "" && !allowedCVMIMETypes[declaredMIME] {
		return apperror.UnsupportedMedia("only PDF files are allowed (got " + declaredMIME + ")")
	}

	return nil
}
