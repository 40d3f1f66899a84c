package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"shopapi/internal/auth"
	apperrors "shopapi/internal/errors"
	"shopapi/internal/logging"
	"shopapi/internal/model"
	"shopapi/internal/repository"
)

// AuthResult is returned by a successful register or login.
type AuthResult struct {
	Token string       `json:"token"`
	User  auth.Payload `json:"user"`
}

// AuthService handles authentication operations.
type AuthService interface {
	Register(ctx context.Context, email, password string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
}

type authService struct {
	userRepo   repository.UserRepository
	hasher     *auth.PasswordHasher
	jwtService *auth.JWTService
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, hasher *auth.PasswordHasher, jwtService *auth.JWTService) AuthService {
	return &authService{
		userRepo:   userRepo,
		hasher:     hasher,
		jwtService: jwtService,
	}
}

// Register creates a USER account and returns a token for it.
func (s *authService) Register(ctx context.Context, email, password string) (*AuthResult, error) {
	log := logging.FromContext(ctx)
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		log.Warn("Register attempt with missing fields")
		return nil, apperrors.ErrMissingCredentials
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		log.WithField("email", email).Warn("Register attempt for existing email")
		return nil, apperrors.ErrUserAlreadyExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// lost a race with a concurrent registration of the same email
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			log.WithField("email", email).Warn("Register attempt for existing email")
			return nil, apperrors.ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	if user.ID == 0 {
		return nil, errors.New("create user: no generated id")
	}

	log.WithFields(logrus.Fields{"email": email, "user_id": user.ID}).Info("New user registered")
	return s.issue(user)
}

// Login checks credentials and returns a token for the stored identity.
func (s *authService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	log := logging.FromContext(ctx)
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		log.Warn("Login attempt with missing fields")
		return nil, apperrors.ErrMissingCredentials
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.WithField("email", email).Warn("Login attempt for non-existent email")
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !ok {
		log.WithField("email", email).Warn("Failed login attempt")
		return nil, apperrors.ErrInvalidCredentials
	}

	log.WithFields(logrus.Fields{"email": email, "user_id": user.ID}).Info("User logged in")
	return s.issue(user)
}

func (s *authService) issue(user *model.User) (*AuthResult, error) {
	payload := auth.PayloadFromUser(user)
	token, err := s.jwtService.Sign(payload)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &AuthResult{Token: token, User: payload}, nil
}
