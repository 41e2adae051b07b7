package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/raindropsacademy/tuition-backend/internal/dto"
	"github.com/raindropsacademy/tuition-backend/internal/service"
	"github.com/raindropsacademy/tuition-backend/pkg/response"
)

type AdminHandler struct {
	adminService service.AdminService
}

func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

func (h *AdminHandler) CreateUser(c *gin.Context) {
	var input dto.CreateUserInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	res, err := h.adminService.CreateUser(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

func (h *AdminHandler) GetAllUsers(c *gin.Context) {
	users, err := h.adminService.GetAllUsers(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

func (h *AdminHandler) UpdateUser(c *gin.Context) {
	var input dto.UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	res, err := h.adminService.UpdateUser(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	if err := h.adminService.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}
