package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/tourguard/tourist-safety-backend/internal/auth"
	"github.com/tourguard/tourist-safety-backend/internal/config"
	"github.com/tourguard/tourist-safety-backend/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository defines the contract for the user store.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Update(ctx context.Context, id uuid.UUID, update models.UserUpdate) (*models.User, error)
}

// AuthService defines the contract for registration, login and profile access.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, update models.UserUpdate) (*models.User, error)
}

type authService struct {
	repo   UserRepository
	tokens *auth.JWTManager
	logger *logrus.Logger
	cfg    *config.Config
}

func NewAuthService(repo UserRepository, tokens *auth.JWTManager, logger *logrus.Logger, cfg *config.Config) AuthService {
	return &authService{
		repo:   repo,
		tokens: tokens,
		logger: logger,
		cfg:    cfg,
	}
}

// Register creates a new account and returns it with a signed token.
// The raw password is hashed before it reaches the repository and is
// never logged.
func (s *authService) Register(ctx context.Context, name, email, password string) (*models.User, string, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "auth",
		"method":  "Register",
		"email":   email,
	})
	log.Info("Attempting to register a new user")

	_, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		log.Warn("Registration rejected, email already in use")
		return nil, "", models.ErrEmailInUse
	}
	if !errors.Is(err, models.ErrNotFound) {
		log.WithError(err).Error("Failed to check existing email in repository")
		return nil, "", fmt.Errorf("service: could not register user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		log.WithError(err).Error("Failed to hash password")
		return nil, "", fmt.Errorf("service: could not hash password: %w", err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		log.WithError(err).Error("Failed to create user in repository")
		return nil, "", fmt.Errorf("service: could not create user: %w", err)
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		log.WithError(err).Error("Failed to generate token")
		return nil, "", fmt.Errorf("service: could not generate token: %w", err)
	}

	log.WithField("user_id", user.ID).Info("User registered successfully")
	return user, token, nil
}

// Login authenticates a credential pair and returns the user with a signed
// token. Unknown email and wrong password both come back as
// ErrInvalidCredentials so a caller cannot probe which accounts exist.
func (s *authService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "auth",
		"method":  "Login",
		"email":   email,
	})
	log.Info("Attempting to log in")

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			log.Warn("Login rejected, unknown email")
			return nil, "", models.ErrInvalidCredentials
		}
		log.WithError(err).Error("Failed to get user in repository")
		return nil, "", fmt.Errorf("service: could not log in: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Warn("Login rejected, password mismatch")
		return nil, "", models.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		log.WithError(err).Error("Failed to generate token")
		return nil, "", fmt.Errorf("service: could not generate token: %w", err)
	}

	log.WithField("user_id", user.ID).Info("User logged in successfully")
	return user, token, nil
}

// GetProfile returns the caller's account.
func (s *authService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "auth",
		"method":  "GetProfile",
		"user_id": userID,
	})

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			log.Warn("Profile not found")
			return nil, models.ErrNotFound
		}
		log.WithError(err).Error("Failed to get user in repository")
		return nil, fmt.Errorf("service: could not get profile: %w", err)
	}
	return user, nil
}

// UpdateProfile applies a partial update to the caller's account.
func (s *authService) UpdateProfile(ctx context.Context, userID uuid.UUID, update models.UserUpdate) (*models.User, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "auth",
		"method":  "UpdateProfile",
		"user_id": userID,
	})
	log.Info("Attempting to update profile")

	user, err := s.repo.Update(ctx, userID, update)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			log.Warn("Attempted to update a non-existent profile")
			return nil, models.ErrNotFound
		}
		log.WithError(err).Error("Failed to update user in repository")
		return nil, fmt.Errorf("service: could not update profile: %w", err)
	}

	log.Info("Profile updated successfully")
	return user, nil
}
