package storage

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/raindropsacademy/tuition-backend/pkg/apperror"
)

// MaxUploadSize is the upload ceiling for course images.
const MaxUploadSize = 2 << 20 // 2 MB

var allowedExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".gif":  {},
	".svg":  {},
	".webp": {},
}

// ValidateImage checks an upload against the extension allow-list and the size
// ceiling. It must be called before any database mutation that references the
// upload.
func ValidateImage(fileName string, size int64) error {
	ext := strings.ToLower(filepath.Ext(fileName))
	if _, ok := allowedExtensions[ext]; !ok {
		return fmt.Errorf("%w: file type %q is not allowed (use PNG, JPG, GIF, SVG or WEBP)", apperror.ErrInvalidUpload, ext)
	}

	if size <= 0 {
		return fmt.Errorf("%w: file is empty", apperror.ErrInvalidUpload)
	}
	if size > MaxUploadSize {
		return fmt.Errorf("%w: file exceeds the %d MB limit", apperror.ErrInvalidUpload, MaxUploadSize>>20)
	}

	return nil
}
