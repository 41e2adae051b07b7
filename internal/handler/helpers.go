package handler

import (
	"mime/multipart"

	"github.com/gin-gonic/gin"
	"github.com/raindropsacademy/tuition-backend/internal/dto"
	"github.com/raindropsacademy/tuition-backend/pkg/validator"
)

func formatValidationError(err error) string {
	return validator.FormatValidationError(err)
}

// imageFromForm opens the named multipart file, if present. The caller owns
// closing the returned file.
func imageFromForm(c *gin.Context, field string) (*dto.ImageFile, multipart.File, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil || fileHeader == nil {
		return nil, nil, nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, nil, err
	}

	return &dto.ImageFile{
		Reader:   file,
		FileName: fileHeader.Filename,
		Size:     fileHeader.Size,
	}, file, nil
}
