package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Mohamed-Kaizen/teached/internal/app/models/dto"
	"github.com/Mohamed-Kaizen/teached/internal/app/services"
	"github.com/Mohamed-Kaizen/teached/internal/middleware"
)

// ManageController handles the owner-only course management endpoints.
// Every handler runs behind CourseOwnerRequired, so the course and
// teacher are already resolved in the context.
type ManageController struct {
	courseService *services.CourseService
	logger        zerolog.Logger
}

// NewManageController creates a new ManageController
func NewManageController(courseService *services.CourseService, logger zerolog.Logger) *ManageController {
	return &ManageController{
		courseService: courseService,
		logger:        logger,
	}
}

// UpdateSettings toggles visibility flags and pricing on an owned course
func (c *ManageController) UpdateSettings(ctx *gin.Context) {
	var req dto.UpdateCourseSettingsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(ctx, err)
		return
	}

	course := middleware.CurrentCourse(ctx)
	if err := c.courseService.UpdateSettings(ctx.Request.Context(), course, req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusOK)
}

// UploadCover stores a new cover image for an owned course
func (c *ManageController) UploadCover(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("cover")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "cover file is required")
		ctx.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse(errorDetail))
		return
	}

	course := middleware.CurrentCourse(ctx)
	coverURL, err := c.courseService.UploadCover(ctx.Request.Context(), course, fileHeader)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.CoverUploadResponse{Cover: coverURL})
}

// CreateSection adds a section to an owned course
func (c *ManageController) CreateSection(ctx *gin.Context) {
	var req dto.CreateSectionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(ctx, err)
		return
	}

	course := middleware.CurrentCourse(ctx)
	section, err := c.courseService.CreateSection(ctx.Request.Context(), course, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, section)
}

// CreateLecture adds a lecture to a section of an owned course
func (c *ManageController) CreateLecture(ctx *gin.Context) {
	var req dto.CreateLectureRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(ctx, err)
		return
	}

	course := middleware.CurrentCourse(ctx)
	lecture, err := c.courseService.CreateLecture(ctx.Request.Context(), course, ctx.Param("sectionSlug"), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, lecture)
}

// CreateAssignment adds an assignment to a section of an owned course
func (c *ManageController) CreateAssignment(ctx *gin.Context) {
	var req dto.CreateAssignmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(ctx, err)
		return
	}

	course := middleware.CurrentCourse(ctx)
	assignment, err := c.courseService.CreateAssignment(ctx.Request.Context(), course, ctx.Param("sectionSlug"), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, assignment)
}

// CreateAnnouncement publishes a broadcast on an owned course
func (c *ManageController) CreateAnnouncement(ctx *gin.Context) {
	var req dto.CreateAnnouncementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(ctx, err)
		return
	}

	course := middleware.CurrentCourse(ctx)
	teacher := middleware.CurrentTeacher(ctx)
	if err := c.courseService.CreateAnnouncement(ctx.Request.Context(), course, teacher, req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewDetailResponse("announcement has been created"))
}
