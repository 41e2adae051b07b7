package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/raindropsacademy/tuition-backend/internal/dto"
	"github.com/raindropsacademy/tuition-backend/internal/model"
	"github.com/raindropsacademy/tuition-backend/internal/service"
	"github.com/raindropsacademy/tuition-backend/pkg/response"
)

type CourseHandler struct {
	courseService service.CourseService
}

func NewCourseHandler(courseService service.CourseService) *CourseHandler {
	return &CourseHandler{
		courseService: courseService,
	}
}

func (h *CourseHandler) GetAll(c *gin.Context) {
	courses, err := h.courseService.GetAll(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, courses)
}

func (h *CourseHandler) GetByID(c *gin.Context) {
	course, err := h.courseService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, course)
}

func (h *CourseHandler) Search(c *gin.Context) {
	var filter dto.CourseSearchFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	courses, err := h.courseService.Search(c.Request.Context(), filter)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, courses)
}

// MyCourses lists the courses assigned to the authenticated teacher.
func (h *CourseHandler) MyCourses(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	teacher := user.(*model.User)
	courses, err := h.courseService.GetByTeacher(c.Request.Context(), teacher.ID.String())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, courses)
}

func (h *CourseHandler) Create(c *gin.Context) {
	var input dto.CreateCourseInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	image, file, err := imageFromForm(c, "icon")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read course image"})
		return
	}
	if file != nil {
		defer file.Close()
	}

	course, err := h.courseService.Create(c.Request.Context(), input, image)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, course)
}

func (h *CourseHandler) Update(c *gin.Context) {
	var input dto.UpdateCourseInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	image, file, err := imageFromForm(c, "icon")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read course image"})
		return
	}
	if file != nil {
		defer file.Close()
	}

	course, err := h.courseService.Update(c.Request.Context(), c.Param("id"), input, image)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, course)
}

func (h *CourseHandler) Delete(c *gin.Context) {
	if err := h.courseService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "course deleted"})
}
