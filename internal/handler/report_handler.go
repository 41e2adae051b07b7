package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/raindropsacademy/tuition-backend/internal/model"
	"github.com/raindropsacademy/tuition-backend/internal/service"
	"github.com/raindropsacademy/tuition-backend/pkg/response"
)

type ReportHandler struct {
	reportService   service.ReportService
	reminderService service.ReminderService
}

func NewReportHandler(reportService service.ReportService, reminderService service.ReminderService) *ReportHandler {
	return &ReportHandler{
		reportService:   reportService,
		reminderService: reminderService,
	}
}

func (h *ReportHandler) AdminReport(c *gin.Context) {
	report, err := h.reportService.AdminReport(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) TeacherReport(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	teacher := user.(*model.User)
	report, err := h.reportService.TeacherReport(c.Request.Context(), teacher.ID.String())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) SendReminder(c *gin.Context) {
	res, err := h.reminderService.SendPaymentReminder(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
