package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/realtimefeedback/feedback-api/internal/crypto"
	"github.com/realtimefeedback/feedback-api/internal/metrics"
	"github.com/realtimefeedback/feedback-api/internal/model"
	"github.com/realtimefeedback/feedback-api/internal/repository"
)

const (
	registeredMessage = "User registered successfully"
	tokenTypeBearer   = "bearer"
)

// dummyHash is verified against when the login email is unknown so that both
// failure paths cost one hash verification.
var dummyHash = sync.OnceValue(func() string {
	h, err := crypto.HashPassword("feedback-api-dummy-password")
	if err != nil {
		panic(fmt.Sprintf("hash dummy password: %v", err))
	}
	return h
})

// AuthService handles registration, login and the current user.
type AuthService struct {
	users  UserStore
	tokens *crypto.TokenIssuer
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, tokens *crypto.TokenIssuer) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
	}
}

// Register creates a user account. The email must not be registered yet.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.RegisterResponse, error) {
	exists, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return model.RegisterResponse{}, unavailable(err)
	}
	if exists {
		metrics.RegistrationsTotal.WithLabelValues("conflict").Inc()
		return model.RegisterResponse{}, ErrEmailExists
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return model.RegisterResponse{}, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
		Role:     req.Role,
	}

	// The unique key decides when two registrations race past the pre-check.
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			metrics.RegistrationsTotal.WithLabelValues("conflict").Inc()
			return model.RegisterResponse{}, ErrEmailExists
		}
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return model.RegisterResponse{}, unavailable(err)
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	return model.RegisterResponse{Message: registeredMessage, ID: user.ID}, nil
}

// Login verifies the credentials and issues an access token whose subject is
// the user's email.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.TokenResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			crypto.VerifyPassword(req.Password, dummyHash())
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			return model.TokenResponse{}, ErrInvalidCredentials
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return model.TokenResponse{}, unavailable(err)
	}

	if !crypto.VerifyPassword(req.Password, user.Password) {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return model.TokenResponse{}, ErrInvalidCredentials
	}

	if crypto.NeedsRehash(user.Password) {
		s.rehash(ctx, user, req.Password)
	}

	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return model.TokenResponse{}, fmt.Errorf("issue token: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return model.TokenResponse{
		AccessToken: token,
		TokenType:   tokenTypeBearer,
		ExpiresIn:   int64(s.tokens.Expiry().Seconds()),
	}, nil
}

// rehash upgrades a legacy or outdated hash. Failure does not fail the login.
func (s *AuthService) rehash(ctx context.Context, user *model.User, password string) {
	log := zerolog.Ctx(ctx).With().Int64("user_id", user.ID).Logger()

	hash, err := crypto.HashPassword(password)
	if err != nil {
		log.Warn().Err(err).Msg("rehash password")
		return
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		log.Warn().Err(err).Msg("store rehashed password")
		return
	}

	user.Password = hash
	metrics.PasswordRehashesTotal.Inc()
	log.Info().Msg("password hash upgraded")
}

// Me returns the authenticated user.
func (s *AuthService) Me(ctx context.Context, email string) (model.UserResponse, error) {
	user, err := access{users: s.users}.caller(ctx, email)
	if err != nil {
		return model.UserResponse{}, err
	}
	return user.ToResponse(), nil
}
