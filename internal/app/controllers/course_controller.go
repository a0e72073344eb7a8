package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Mohamed-Kaizen/teached/internal/app/models/dto"
	"github.com/Mohamed-Kaizen/teached/internal/app/services"
	"github.com/Mohamed-Kaizen/teached/internal/middleware"
	"github.com/Mohamed-Kaizen/teached/internal/pkg/helpers"
)

// CourseController handles the public catalog and student engagement endpoints
type CourseController struct {
	courseService     *services.CourseService
	enrollmentService *services.EnrollmentService
	logger            zerolog.Logger
}

// NewCourseController creates a new CourseController
func NewCourseController(
	courseService *services.CourseService,
	enrollmentService *services.EnrollmentService,
	logger zerolog.Logger,
) *CourseController {
	return &CourseController{
		courseService:     courseService,
		enrollmentService: enrollmentService,
		logger:            logger,
	}
}

// List returns one page of the published catalog
func (c *CourseController) List(ctx *gin.Context) {
	var filter dto.CourseFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		respondInvalidBody(ctx, err)
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	response, err := c.courseService.ListPublished(ctx.Request.Context(), filter, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// Create handles course creation by a teacher
func (c *CourseController) Create(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(ctx, err)
		return
	}

	teacher := middleware.CurrentTeacher(ctx)
	slug, err := c.courseService.Create(ctx.Request.Context(), req, teacher)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.CreateCourseResponse{Slug: slug})
}

// Detail returns the full course page for the caller's identity
func (c *CourseController) Detail(ctx *gin.Context) {
	actor := middleware.CurrentUser(ctx)
	detail, err := c.courseService.Detail(ctx.Request.Context(), ctx.Param("slug"), actor)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, detail)
}

// Enroll adds the calling student to a course
func (c *CourseController) Enroll(ctx *gin.Context) {
	student := middleware.CurrentStudent(ctx)
	detail, err := c.enrollmentService.Enroll(ctx.Request.Context(), ctx.Param("slug"), student)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewDetailResponse(detail))
}

// Bookmark saves a course for the calling student
func (c *CourseController) Bookmark(ctx *gin.Context) {
	student := middleware.CurrentStudent(ctx)
	detail, err := c.enrollmentService.Bookmark(ctx.Request.Context(), ctx.Param("slug"), student)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewDetailResponse(detail))
}

// Bookmarks lists the calling student's saved courses
func (c *CourseController) Bookmarks(ctx *gin.Context) {
	student := middleware.CurrentStudent(ctx)
	bookmarks, err := c.enrollmentService.Bookmarks(ctx.Request.Context(), student)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, bookmarks)
}

// CreateReview records the calling student's review of a course
func (c *CourseController) CreateReview(ctx *gin.Context) {
	var req dto.CreateReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(ctx, err)
		return
	}

	student := middleware.CurrentStudent(ctx)
	detail, err := c.enrollmentService.Review(ctx.Request.Context(), ctx.Param("slug"), student, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewDetailResponse(detail))
}

// ListReviews returns the public review list of a course
func (c *CourseController) ListReviews(ctx *gin.Context) {
	reviews, err := c.enrollmentService.Reviews(ctx.Request.Context(), ctx.Param("slug"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, reviews)
}
