package dto

import (
	"time"

	"stocktrack/internal/domain/auth"
)

// SignupRequest for POST /auth/signup.
type SignupRequest struct {
	Username       string `json:"username"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	RepeatPassword string `json:"rePassword,omitempty"`
	Role           string `json:"role,omitempty"`
}

// ToRegisterRequest converts to the domain request.
func (r SignupRequest) ToRegisterRequest() auth.RegisterRequest {
	return auth.RegisterRequest{
		Username:       r.Username,
		Email:          r.Email,
		Password:       r.Password,
		RepeatPassword: r.RepeatPassword,
		Role:           r.Role,
	}
}

// LoginRequest for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ToCredentials converts to the domain credentials.
func (r LoginRequest) ToCredentials() auth.Credentials {
	return auth.Credentials{
		Email:    r.Email,
		Password: r.Password,
	}
}

// UserResponse is the public user summary. The password hash never
// leaves the domain.
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// FromUser creates a UserResponse from a domain user.
func FromUser(u *auth.User) UserResponse {
	return UserResponse{
		ID:       u.ID.String(),
		Username: u.Username,
		Email:    u.Email,
		Role:     string(u.Role),
	}
}

// LoginResponse for POST /auth/login.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	Identity  UserResponse `json:"identity"`
}
