// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Mohamed-Kaizen/teached/internal/app/models/dto"
	"github.com/Mohamed-Kaizen/teached/internal/app/services"
	"github.com/Mohamed-Kaizen/teached/internal/middleware"
)

// UserController handles registration, login and profile endpoints
type UserController struct {
	userService *services.UserService
	logger      zerolog.Logger
}

// NewUserController creates a new UserController
func NewUserController(userService *services.UserService, logger zerolog.Logger) *UserController {
	return &UserController{
		userService: userService,
		logger:      logger,
	}
}

func respondInvalidBody(ctx *gin.Context, err error) {
	errorDetail := dto.HandleValidationError(err)
	ctx.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse(errorDetail))
}

// Register handles sign up
func (c *UserController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid registration request payload")
		respondInvalidBody(ctx, err)
		return
	}

	if err := c.userService.Register(ctx.Request.Context(), req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewDetailResponse("user has been created"))
}

// Login handles form-encoded credential exchange
func (c *UserController) Login(ctx *gin.Context) {
	username := ctx.PostForm("username")
	password := ctx.PostForm("password")
	if username == "" || password == "" {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "username and password are required")
		ctx.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse(errorDetail))
		return
	}

	token, err := c.userService.Login(ctx.Request.Context(), username, password)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, token)
}

// GetUser returns a user's public profile
func (c *UserController) GetUser(ctx *gin.Context) {
	profile, err := c.userService.GetProfile(ctx.Request.Context(), ctx.Param("username"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, profile)
}

// UpdatePersonalInfo updates the caller's own profile fields
func (c *UserController) UpdatePersonalInfo(ctx *gin.Context) {
	var req dto.UpdatePersonalInfoRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(ctx, err)
		return
	}

	actor := middleware.CurrentUser(ctx)
	if err := c.userService.UpdatePersonalInfo(ctx.Request.Context(), actor, ctx.Param("username"), req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusOK)
}

// UpdateGeneralInfo updates the caller's own username and email
func (c *UserController) UpdateGeneralInfo(ctx *gin.Context) {
	var req dto.UpdateGeneralInfoRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(ctx, err)
		return
	}

	actor := middleware.CurrentUser(ctx)
	if err := c.userService.UpdateGeneralInfo(ctx.Request.Context(), actor, ctx.Param("username"), req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusOK)
}

// ChangePassword replaces the caller's own password
func (c *UserController) ChangePassword(ctx *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(ctx, err)
		return
	}

	actor := middleware.CurrentUser(ctx)
	if err := c.userService.ChangePassword(ctx.Request.Context(), actor, ctx.Param("username"), req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDetailResponse("password has been changed"))
}
