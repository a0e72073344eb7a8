package services

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/Mohamed-Kaizen/teached/internal/app/models"
	"github.com/Mohamed-Kaizen/teached/internal/app/models/dto"
	"github.com/Mohamed-Kaizen/teached/internal/app/repositories"
	"github.com/Mohamed-Kaizen/teached/internal/pkg/apperrors"
	"github.com/Mohamed-Kaizen/teached/internal/pkg/helpers"
	"github.com/Mohamed-Kaizen/teached/internal/pkg/sluggen"
)

// CourseStore is the persistence surface for the course catalog.
// CreateWithTaxonomy must persist the course and its taxonomy rows
// atomically.
type CourseStore interface {
	CreateWithTaxonomy(ctx context.Context, course *models.Course, categories, languages, requirements []string) (int64, error)
	ListPublished(ctx context.Context, filter dto.CourseFilter, offset, limit int) ([]repositories.CourseWithTeacher, int64, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*repositories.CourseWithTeacher, error)
	UpdateSettings(ctx context.Context, courseID int64, settings dto.UpdateCourseSettingsRequest) error
	UpdateCover(ctx context.Context, courseID int64, coverURL string) error
}

// TaxonomyStore reads the categories, languages and requirements
// attached to a course
type TaxonomyStore interface {
	CategoryNames(ctx context.Context, courseID int64) ([]string, error)
	LanguageNames(ctx context.Context, courseID int64) ([]string, error)
	RequirementNames(ctx context.Context, courseID int64) ([]string, error)
}

// ContentStore is the persistence surface for course content
type ContentStore interface {
	CreateSection(ctx context.Context, section *models.Section) error
	GetSectionBySlug(ctx context.Context, courseID int64, slug string) (*models.Section, error)
	ListSections(ctx context.Context, courseID int64) ([]models.Section, error)
	CreateLecture(ctx context.Context, lecture *models.Lecture) error
	CreateAssignment(ctx context.Context, assignment *models.Assignment) error
	CreateAnnouncement(ctx context.Context, announcement *models.Announcement) error
}

// RoleStore resolves role profiles for identity-dependent reads
type RoleStore interface {
	GetTeacherByUserID(ctx context.Context, userID int64) (*models.Teacher, error)
	GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error)
}

// CoverStorage persists uploaded files and returns their public URL
type CoverStorage interface {
	Save(fileHeader *multipart.FileHeader, subPath string) (string, error)
}

// CourseService handles catalog and course management operations
type CourseService struct {
	courseStore     CourseStore
	taxonomyStore   TaxonomyStore
	contentStore    ContentStore
	engagementStore EngagementStore
	roleStore       RoleStore
	storage         CoverStorage
	logger          zerolog.Logger
}

// NewCourseService creates a new CourseService
func NewCourseService(
	courseStore CourseStore,
	taxonomyStore TaxonomyStore,
	contentStore ContentStore,
	engagementStore EngagementStore,
	roleStore RoleStore,
	storage CoverStorage,
	logger zerolog.Logger,
) *CourseService {
	return &CourseService{
		courseStore:     courseStore,
		taxonomyStore:   taxonomyStore,
		contentStore:    contentStore,
		engagementStore: engagementStore,
		roleStore:       roleStore,
		storage:         storage,
		logger:          logger,
	}
}

// capitalize uppercases the first rune and lowercases the rest, so
// lookup names converge on one canonical spelling.
func capitalize(value string) string {
	if value == "" {
		return value
	}
	lowered := strings.ToLower(value)
	first, size := utf8.DecodeRuneInString(lowered)
	return string(unicode.ToUpper(first)) + lowered[size:]
}

// meanRating averages review rates, zero when there are none.
func meanRating(sum, count int) float64 {
	if count == 0 {
		return 0
	}
	return float64(sum) / float64(count)
}

// Create persists a new draft course with its categories, languages and
// requirements, and returns the generated slug.
func (s *CourseService) Create(ctx context.Context, req dto.CreateCourseRequest, teacher *models.Teacher) (string, error) {
	discount := 0.0
	if req.Discount != nil {
		discount = *req.Discount
	}

	course := &models.Course{
		Title:     req.Title,
		Overview:  req.Overview,
		Level:     models.Level(req.Level),
		TeacherID: &teacher.ID,
		Price:     req.Price,
		Discount:  discount,
		IsDraft:   true,
		IsActive:  true,
		Slug:      sluggen.Unique(req.Title),
	}

	if _, err := s.courseStore.CreateWithTaxonomy(ctx, course,
		capitalizeAll(req.Categories),
		capitalizeAll(req.Languages),
		capitalizeAll(req.Requirements),
	); err != nil {
		return "", err
	}

	s.logger.Info().Str("slug", course.Slug).Int64("teacherId", teacher.ID).Msg("Course created")
	return course.Slug, nil
}

func capitalizeAll(values []string) []string {
	result := make([]string, 0, len(values))
	for _, value := range values {
		result = append(result, capitalize(value))
	}
	return result
}

// ListPublished returns one catalog page matching the filter
func (s *CourseService) ListPublished(ctx context.Context, filter dto.CourseFilter, page, size int) (*dto.CourseListResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)

	entries, total, err := s.courseStore.ListPublished(ctx, filter, int(offset), limit)
	if err != nil {
		return nil, err
	}

	summaries := make([]dto.CourseSummary, 0, len(entries))
	for i := range entries {
		course := &entries[i].Course

		categories, err := s.taxonomyStore.CategoryNames(ctx, course.ID)
		if err != nil {
			return nil, err
		}
		languages, err := s.taxonomyStore.LanguageNames(ctx, course.ID)
		if err != nil {
			return nil, err
		}

		summaries = append(summaries, dto.FromCourseSummary(course, entries[i].TeacherUsername, categories, languages))
	}

	return &dto.CourseListResponse{
		Courses:    summaries,
		Pagination: helpers.NewPaginationInfo(total, page, limit),
	}, nil
}

// GetPublished resolves a catalog-visible course by slug
func (s *CourseService) GetPublished(ctx context.Context, slug string) (*models.Course, error) {
	entry, err := s.courseStore.GetPublishedBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return &entry.Course, nil
}

// Detail builds the full course page. The actor may be nil, which
// yields the anonymous variant of the computed fields.
func (s *CourseService) Detail(ctx context.Context, slug string, actor *models.User) (*dto.CourseDetailResponse, error) {
	entry, err := s.courseStore.GetPublishedBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	course := &entry.Course

	enrollments, err := s.engagementStore.CountEnrollments(ctx, course.ID)
	if err != nil {
		return nil, err
	}
	reviewCount, rateSum, err := s.engagementStore.RatingStats(ctx, course.ID)
	if err != nil {
		return nil, err
	}

	categories, err := s.taxonomyStore.CategoryNames(ctx, course.ID)
	if err != nil {
		return nil, err
	}
	languages, err := s.taxonomyStore.LanguageNames(ctx, course.ID)
	if err != nil {
		return nil, err
	}
	requirements, err := s.taxonomyStore.RequirementNames(ctx, course.ID)
	if err != nil {
		return nil, err
	}

	sections, err := s.contentStore.ListSections(ctx, course.ID)
	if err != nil {
		return nil, err
	}
	sectionSummaries := make([]dto.SectionSummary, 0, len(sections))
	for _, section := range sections {
		sectionSummaries = append(sectionSummaries, dto.SectionSummary{
			Title:     section.Title,
			Objective: section.Objective,
			Order:     section.Order,
			Slug:      section.Slug,
		})
	}

	detail := &dto.CourseDetailResponse{
		Title:        course.Title,
		Overview:     course.Overview,
		Level:        string(course.Level),
		Cover:        course.Cover,
		Video:        course.Video,
		Price:        course.Price,
		Discount:     course.Discount,
		Enrollments:  enrollments,
		Reviews:      reviewCount,
		Rate:         meanRating(rateSum, reviewCount),
		CreatedAt:    course.CreatedAt,
		UpdatedAt:    course.UpdatedAt,
		Categories:   categories,
		Languages:    languages,
		Requirements: requirements,
		Sections:     sectionSummaries,
	}
	if entry.TeacherUsername != "" {
		detail.Teacher = &dto.TeacherInfo{Username: entry.TeacherUsername}
	}

	if actor == nil {
		return detail, nil
	}
	detail.IsAuthenticated = true

	student, err := s.roleStore.GetStudentByUserID(ctx, actor.ID)
	if err != nil && !errors.Is(err, apperrors.ErrNotStudent) {
		return nil, err
	}
	if err == nil {
		hasEnroll, err := s.engagementStore.HasEnrollment(ctx, student.ID, course.ID)
		if err != nil {
			return nil, err
		}
		detail.HasEnroll = hasEnroll
	}

	teacher, err := s.roleStore.GetTeacherByUserID(ctx, actor.ID)
	if err != nil && !errors.Is(err, apperrors.ErrNotTeacher) {
		return nil, err
	}
	if err == nil && course.TeacherID != nil && *course.TeacherID == teacher.ID {
		detail.IsOwner = true
	}

	return detail, nil
}

// UpdateSettings applies visibility and pricing changes to an owned course
func (s *CourseService) UpdateSettings(ctx context.Context, course *models.Course, req dto.UpdateCourseSettingsRequest) error {
	return s.courseStore.UpdateSettings(ctx, course.ID, req)
}

// UploadCover stores the uploaded cover image and records its URL
func (s *CourseService) UploadCover(ctx context.Context, course *models.Course, fileHeader *multipart.FileHeader) (string, error) {
	coverURL, err := s.storage.Save(fileHeader, "covers")
	if err != nil {
		return "", err
	}

	if err := s.courseStore.UpdateCover(ctx, course.ID, coverURL); err != nil {
		return "", err
	}

	return coverURL, nil
}

// CreateSection adds a section to an owned course. Repeating the same
// title reports that the section already exists.
func (s *CourseService) CreateSection(ctx context.Context, course *models.Course, req dto.CreateSectionRequest) (*dto.SectionResponse, error) {
	section := &models.Section{
		CourseID:  course.ID,
		Title:     req.Title,
		Objective: req.Objective,
		Order:     req.Order,
		Slug:      sluggen.Unique(req.Title),
	}

	if err := s.contentStore.CreateSection(ctx, section); err != nil {
		if err == apperrors.ErrAlreadyCreated {
			return nil, apperrors.NewCustomError(apperrors.ErrAlreadyCreated, "This section was created before")
		}
		return nil, err
	}

	return &dto.SectionResponse{
		Title:     section.Title,
		Objective: section.Objective,
		Order:     section.Order,
		Slug:      section.Slug,
	}, nil
}

// CreateLecture adds a lecture to a section of an owned course
func (s *CourseService) CreateLecture(ctx context.Context, course *models.Course, sectionSlug string, req dto.CreateLectureRequest) (*dto.LectureResponse, error) {
	section, err := s.contentStore.GetSectionBySlug(ctx, course.ID, sectionSlug)
	if err != nil {
		return nil, err
	}

	lecture := &models.Lecture{
		SectionID: section.ID,
		Title:     req.Title,
		Text:      req.Text,
		Order:     req.Order,
		Slug:      sluggen.Unique(req.Title),
	}

	if err := s.contentStore.CreateLecture(ctx, lecture); err != nil {
		if err == apperrors.ErrAlreadyCreated {
			return nil, apperrors.NewCustomError(apperrors.ErrAlreadyCreated, "This lecture was created before")
		}
		return nil, err
	}

	return &dto.LectureResponse{
		Title: lecture.Title,
		Text:  lecture.Text,
		Video: lecture.Video,
		Order: lecture.Order,
		Slug:  lecture.Slug,
	}, nil
}

// CreateAssignment adds an assignment to a section of an owned course
func (s *CourseService) CreateAssignment(ctx context.Context, course *models.Course, sectionSlug string, req dto.CreateAssignmentRequest) (*dto.AssignmentResponse, error) {
	section, err := s.contentStore.GetSectionBySlug(ctx, course.ID, sectionSlug)
	if err != nil {
		return nil, err
	}

	assignment := &models.Assignment{
		SectionID:   section.ID,
		Title:       req.Title,
		Description: req.Description,
		Slug:        sluggen.Unique(req.Title),
	}

	if err := s.contentStore.CreateAssignment(ctx, assignment); err != nil {
		if err == apperrors.ErrAlreadyCreated {
			return nil, apperrors.NewCustomError(apperrors.ErrAlreadyCreated, "This assignment was created before")
		}
		return nil, err
	}

	return &dto.AssignmentResponse{
		Title:       assignment.Title,
		Description: assignment.Description,
		File:        assignment.File,
		Slug:        assignment.Slug,
	}, nil
}

// CreateAnnouncement publishes a teacher broadcast on an owned course
func (s *CourseService) CreateAnnouncement(ctx context.Context, course *models.Course, teacher *models.Teacher, req dto.CreateAnnouncementRequest) error {
	announcement := &models.Announcement{
		CourseID:    course.ID,
		TeacherID:   teacher.ID,
		Title:       req.Title,
		Description: req.Description,
	}
	return s.contentStore.CreateAnnouncement(ctx, announcement)
}
