package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/raindropsacademy/tuition-backend/internal/dto"
	"github.com/raindropsacademy/tuition-backend/internal/service"
	"github.com/raindropsacademy/tuition-backend/pkg/response"
)

type EnrollmentHandler struct {
	enrollmentService service.EnrollmentService
}

func NewEnrollmentHandler(enrollmentService service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{
		enrollmentService: enrollmentService,
	}
}

func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.EnrollInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	enrollment, err := h.enrollmentService.Enroll(c.Request.Context(), userID.String(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, enrollment)
}

func (h *EnrollmentHandler) GetMine(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	enrollments, err := h.enrollmentService.GetMine(c.Request.Context(), userID.String())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, enrollments)
}

func (h *EnrollmentHandler) MarkCompleted(c *gin.Context) {
	enrollment, err := h.enrollmentService.MarkCompleted(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, enrollment)
}
