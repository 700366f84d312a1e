package auth

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"stocktrack/internal/core/apperror"
	"stocktrack/pkg/logger"
)

// ServiceConfig holds auth service configuration.
type ServiceConfig struct {
	PasswordMinLength int
}

// DefaultServiceConfig returns default configuration.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		PasswordMinLength: 8,
	}
}

// Service provides registration and login.
type Service struct {
	userRepo   UserRepository
	jwtService *JWTService
	config     ServiceConfig
}

// NewService creates a new auth service.
func NewService(userRepo UserRepository, jwtService *JWTService, config ServiceConfig) *Service {
	return &Service{
		userRepo:   userRepo,
		jwtService: jwtService,
		config:     config,
	}
}

// Register registers a new user. Passwords are bcrypt-hashed and never
// stored or logged in clear text.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	if req.Username == "" {
		return nil, apperror.NewValidation("username is required").WithDetail("field", "username")
	}
	if req.Email == "" {
		return nil, apperror.NewValidation("email is required").WithDetail("field", "email")
	}
	if len(req.Password) < s.config.PasswordMinLength {
		return nil, apperror.NewValidation(
			fmt.Sprintf("password must be at least %d characters", s.config.PasswordMinLength),
		).WithDetail("field", "password")
	}
	if req.RepeatPassword != "" && req.Password != req.RepeatPassword {
		return nil, apperror.NewValidation("password and confirmation do not match").
			WithDetail("field", "rePassword")
	}

	role := RoleEmployee
	if req.Role != "" {
		parsed, err := ParseRole(req.Role)
		if err != nil {
			return nil, err
		}
		role = parsed
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email exists: %w", err)
	}
	if exists {
		return nil, apperror.NewDuplicate("user", "email", req.Email)
	}

	exists, err = s.userRepo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("check username exists: %w", err)
	}
	if exists {
		return nil, apperror.NewDuplicate("user", "username", req.Username)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := NewUser(req.Username, req.Email, string(passwordHash), role)
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	logger.Info(ctx, "user registered",
		"user_id", user.ID,
		"role", user.Role)

	return user, nil
}

// Login authenticates a user and mints a signed access token.
// Unknown email and wrong password fail identically so accounts cannot
// be enumerated.
func (s *Service) Login(ctx context.Context, creds Credentials) (Token, *User, error) {
	if creds.Email == "" || creds.Password == "" {
		return Token{}, nil, apperror.NewValidation("email and password are required")
	}

	user, err := s.userRepo.GetByEmail(ctx, creds.Email)
	if err != nil {
		return Token{}, nil, apperror.NewUnauthorized("invalid credentials")
	}

	// bcrypt comparison is constant-time over the hash.
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		return Token{}, nil, apperror.NewUnauthorized("invalid credentials")
	}

	token, err := s.jwtService.GenerateAccessToken(user)
	if err != nil {
		return Token{}, nil, fmt.Errorf("generate token: %w", err)
	}

	logger.Info(ctx, "user logged in", "user_id", user.ID)

	return token, user, nil
}
