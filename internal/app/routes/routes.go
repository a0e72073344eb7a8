package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Mohamed-Kaizen/teached/internal/app/controllers"
	"github.com/Mohamed-Kaizen/teached/internal/middleware"
)

// SetupRouter configures all application routes. Identify runs on
// every group so anonymous and identified callers share the same
// handlers; the guard middlewares narrow access per group.
func SetupRouter(
	router *gin.Engine,
	userController *controllers.UserController,
	courseController *controllers.CourseController,
	classroomController *controllers.ClassroomController,
	manageController *controllers.ManageController,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.Use(authMiddleware.Identify())

	users := router.Group("/users")
	{
		users.POST("/", userController.Register)
		users.POST("/login/", userController.Login)
		users.GET("/:username/", userController.GetUser)

		usersSelf := users.Group("")
		usersSelf.Use(authMiddleware.LoginRequired(), authMiddleware.ActiveRequired())
		{
			usersSelf.PATCH("/:username/personal/", userController.UpdatePersonalInfo)
			usersSelf.PATCH("/:username/general/", userController.UpdateGeneralInfo)
			usersSelf.PUT("/:username/password/", userController.ChangePassword)
		}
	}

	courses := router.Group("/courses")
	{
		courses.GET("/", courseController.List)
		courses.GET("/:slug/", courseController.Detail)
		courses.GET("/:slug/review/", courseController.ListReviews)

		coursesTeacher := courses.Group("")
		coursesTeacher.Use(authMiddleware.LoginRequired(), authMiddleware.ActiveRequired(), authMiddleware.TeacherRequired())
		{
			coursesTeacher.POST("/", courseController.Create)
		}

		coursesStudent := courses.Group("")
		coursesStudent.Use(authMiddleware.LoginRequired(), authMiddleware.ActiveRequired(), authMiddleware.StudentRequired())
		{
			coursesStudent.GET("/bookmarks/", courseController.Bookmarks)
			coursesStudent.POST("/:slug/", courseController.Enroll)
			coursesStudent.POST("/:slug/bookmark/", courseController.Bookmark)
			coursesStudent.POST("/:slug/review/", courseController.CreateReview)
		}

		manage := courses.Group("/:slug/manage")
		manage.Use(
			authMiddleware.LoginRequired(),
			authMiddleware.ActiveRequired(),
			authMiddleware.TeacherRequired(),
			authMiddleware.CourseOwnerRequired(),
		)
		{
			manage.PATCH("/settings/", manageController.UpdateSettings)
			manage.POST("/cover/", manageController.UploadCover)
			manage.POST("/section/", manageController.CreateSection)
			manage.POST("/announcement/", manageController.CreateAnnouncement)
			manage.POST("/section/:sectionSlug/lecture/", manageController.CreateLecture)
			manage.POST("/section/:sectionSlug/assignment/", manageController.CreateAssignment)
		}
	}

	classroom := router.Group("/my-classroom")
	classroom.Use(authMiddleware.LoginRequired(), authMiddleware.ActiveRequired(), authMiddleware.StudentRequired())
	{
		classroom.GET("/", classroomController.MyCourses)
	}
}
