package dto

import (
	"time"

	"github.com/Mohamed-Kaizen/teached/internal/app/models"
)

// RegisterRequest represents a sign up request. Become selects the role
// profile created alongside the account.
type RegisterRequest struct {
	Username    string  `json:"username" binding:"required"`
	Email       string  `json:"email" binding:"required"`
	Password    string  `json:"password" binding:"required"`
	FullName    *string `json:"fullName,omitempty"`
	Bio         *string `json:"bio,omitempty"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
	Become      string  `json:"become" binding:"required,oneof=Teacher Student"`
}

// TokenResponse represents a successful login response
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type" example:"bearer"`
}

// UserResponse represents public user information
type UserResponse struct {
	ID          int64      `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	FullName    *string    `json:"fullName,omitempty"`
	Bio         *string    `json:"bio,omitempty"`
	PhoneNumber *string    `json:"phoneNumber,omitempty"`
	IsActive    bool       `json:"isActive"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	JoinedAt    time.Time  `json:"joinedAt"`
}

// FromUser converts a user model to its public representation
func FromUser(user *models.User) UserResponse {
	if user == nil {
		return UserResponse{}
	}
	return UserResponse{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		FullName:    user.FullName,
		Bio:         user.Bio,
		PhoneNumber: user.PhoneNumber,
		IsActive:    user.IsActive,
		LastLoginAt: user.LastLoginAt,
		JoinedAt:    user.JoinedAt,
	}
}

// UpdatePersonalInfoRequest updates the freeform profile fields. Nil
// fields are left untouched.
type UpdatePersonalInfoRequest struct {
	FullName    *string `json:"fullName,omitempty"`
	Bio         *string `json:"bio,omitempty"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
}

// UpdateGeneralInfoRequest updates the identity fields, which go through
// the same validation as registration.
type UpdateGeneralInfoRequest struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
}

// ChangePasswordRequest represents a password change request
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}
