package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Mohamed-Kaizen/teached/internal/app/services"
	"github.com/Mohamed-Kaizen/teached/internal/middleware"
)

// ClassroomController handles the student classroom endpoints
type ClassroomController struct {
	enrollmentService *services.EnrollmentService
	logger            zerolog.Logger
}

// NewClassroomController creates a new ClassroomController
func NewClassroomController(enrollmentService *services.EnrollmentService, logger zerolog.Logger) *ClassroomController {
	return &ClassroomController{
		enrollmentService: enrollmentService,
		logger:            logger,
	}
}

// MyCourses lists the calling student's enrolled courses
func (c *ClassroomController) MyCourses(ctx *gin.Context) {
	student := middleware.CurrentStudent(ctx)
	courses, err := c.enrollmentService.Classroom(ctx.Request.Context(), student)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, courses)
}
