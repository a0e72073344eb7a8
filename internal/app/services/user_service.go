package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Mohamed-Kaizen/teached/internal/app/models"
	"github.com/Mohamed-Kaizen/teached/internal/app/models/dto"
	"github.com/Mohamed-Kaizen/teached/internal/pkg/apperrors"
	"github.com/Mohamed-Kaizen/teached/internal/pkg/auth"
	"github.com/Mohamed-Kaizen/teached/internal/pkg/validation"
)

// UserStore is the persistence surface the user service needs.
// CreateWithProfile must persist the user and its role profile
// atomically.
type UserStore interface {
	CreateWithProfile(ctx context.Context, user *models.User, role models.Role) (int64, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	UpdatePersonalInfo(ctx context.Context, username string, fullName, bio, phoneNumber *string) error
	UpdateGeneralInfo(ctx context.Context, username string, newUsername, newEmail *string) error
	UpdatePassword(ctx context.Context, userID int64, hashedPassword string) error
	UpdateLastLogin(ctx context.Context, userID int64) error
}

// BreachChecker reports how many times a password appears in known
// breach corpora.
type BreachChecker interface {
	Check(ctx context.Context, password string) (int, error)
}

// UserService handles registration, authentication and profile management
type UserService struct {
	userStore      UserStore
	breachChecker  BreachChecker
	jwtService     *auth.JWTService
	passwordPolicy validation.PasswordPolicy
	logger         zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	userStore UserStore,
	breachChecker BreachChecker,
	jwtService *auth.JWTService,
	passwordPolicy validation.PasswordPolicy,
	logger zerolog.Logger,
) *UserService {
	return &UserService{
		userStore:      userStore,
		breachChecker:  breachChecker,
		jwtService:     jwtService,
		passwordPolicy: passwordPolicy,
		logger:         logger,
	}
}

// validatePassword enforces the length policy, then the breach check.
// A breach-service failure rejects the password rather than letting an
// unchecked one through.
func (s *UserService) validatePassword(ctx context.Context, password string) error {
	if err := s.passwordPolicy.ValidatePasswordLength(password); err != nil {
		return err
	}

	count, err := s.breachChecker.Check(ctx, password)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Password breach check unavailable")
		return apperrors.NewCustomError(apperrors.ErrExternalService,
			"Could not verify the password against known breaches, please try again")
	}
	if count > 0 {
		return apperrors.NewCustomError(apperrors.ErrPasswordBreached,
			fmt.Sprintf("This password has appeared %d times in data breaches, pick another one", count))
	}

	return nil
}

// Register validates the sign up data, persists the user and creates
// exactly one role profile selected by Become.
func (s *UserService) Register(ctx context.Context, req dto.RegisterRequest) error {
	if err := validation.ValidateUsername(req.Username); err != nil {
		return err
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		return err
	}
	if req.PhoneNumber != nil {
		if err := validation.ValidatePhoneNumber(*req.PhoneNumber); err != nil {
			return err
		}
	}
	role := models.Role(req.Become)
	if role != models.RoleTeacher && role != models.RoleStudent {
		return apperrors.NewValidationError("become must be Teacher or Student")
	}
	if err := s.validatePassword(ctx, req.Password); err != nil {
		return err
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Username:    req.Username,
		Email:       req.Email,
		Password:    hashed,
		FullName:    req.FullName,
		Bio:         req.Bio,
		PhoneNumber: req.PhoneNumber,
	}

	if _, err := s.userStore.CreateWithProfile(ctx, user, role); err != nil {
		return err
	}

	s.logger.Info().Str("username", req.Username).Str("become", req.Become).Msg("User registered")
	return nil
}

// Login authenticates the credentials and issues an access token. Any
// failure collapses into ErrInvalidCredentials so callers cannot probe
// which part was wrong.
func (s *UserService) Login(ctx context.Context, username, password string) (*dto.TokenResponse, error) {
	user, err := s.userStore.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.Issue(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("error issuing token: %w", err)
	}

	if err := s.userStore.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn().Err(err).Int64("userId", user.ID).Msg("Failed to update last login")
	}

	return &dto.TokenResponse{AccessToken: token, TokenType: "bearer"}, nil
}

// GetProfile returns the public profile of a user
func (s *UserService) GetProfile(ctx context.Context, username string) (*dto.UserResponse, error) {
	user, err := s.userStore.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	profile := dto.FromUser(user)
	return &profile, nil
}

// UpdatePersonalInfo updates the acting user's own profile fields.
// Acting on another account reports not-found, never forbidden, so the
// endpoint does not confirm which usernames exist.
func (s *UserService) UpdatePersonalInfo(ctx context.Context, actor *models.User, username string, req dto.UpdatePersonalInfoRequest) error {
	if actor.Username != username {
		return apperrors.ErrResourceNotFound
	}
	if req.PhoneNumber != nil {
		if err := validation.ValidatePhoneNumber(*req.PhoneNumber); err != nil {
			return err
		}
	}
	return s.userStore.UpdatePersonalInfo(ctx, username, req.FullName, req.Bio, req.PhoneNumber)
}

// UpdateGeneralInfo updates the acting user's own username and email,
// which go through the same validation as registration.
func (s *UserService) UpdateGeneralInfo(ctx context.Context, actor *models.User, username string, req dto.UpdateGeneralInfoRequest) error {
	if actor.Username != username {
		return apperrors.ErrResourceNotFound
	}
	if req.Username != nil {
		if err := validation.ValidateUsername(*req.Username); err != nil {
			return err
		}
	}
	if req.Email != nil {
		if err := validation.ValidateEmail(*req.Email); err != nil {
			return err
		}
	}
	return s.userStore.UpdateGeneralInfo(ctx, username, req.Username, req.Email)
}

// ChangePassword replaces the acting user's own password after
// verifying the old one and vetting the new one.
func (s *UserService) ChangePassword(ctx context.Context, actor *models.User, username string, req dto.ChangePasswordRequest) error {
	if actor.Username != username {
		return apperrors.ErrResourceNotFound
	}

	if !auth.CheckPassword(actor.Password, req.OldPassword) {
		return apperrors.NewConflictError("incorrect password")
	}

	if err := s.validatePassword(ctx, req.NewPassword); err != nil {
		return err
	}

	hashed, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	return s.userStore.UpdatePassword(ctx, actor.ID, hashed)
}
