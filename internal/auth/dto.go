package auth

import (
	pkgauth "github.com/ideabank/ideabank-backend/pkg/auth"
)

// LoginRequest carries the submitted credentials.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the minted token, the identity snapshot embedded in
// it, and the follow-up steps the client should walk the user through.
type LoginResponse struct {
	AccessToken         string           `json:"access_token"`
	User                pkgauth.Identity `json:"user"`
	NeedsIntroduction   bool             `json:"needs_introduction"`
	NeedsPasswordChange bool             `json:"needs_password_change"`
}

// ChangePasswordRequest carries an administrator's password rotation.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
}

// IntroductionRequest carries the first-login full name submission.
type IntroductionRequest struct {
	FullName string `json:"full_name" validate:"required"`
}
