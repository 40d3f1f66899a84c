package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	apperrors "shopapi/internal/errors"
	"shopapi/internal/logging"
	"shopapi/internal/model"
	"shopapi/internal/repository"
)

// UserService exposes admin operations on accounts.
type UserService interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateRole(ctx context.Context, id uint, role model.Role, actorID uint) error
}

type userService struct {
	repo repository.UserRepository
}

// NewUserService builds a UserService over repo.
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// UpdateRole sets the role of user id. An admin may not change their own role.
func (s *userService) UpdateRole(ctx context.Context, id uint, role model.Role, actorID uint) error {
	log := logging.FromContext(ctx).WithFields(logrus.Fields{"user_id": id, "actor_id": actorID})
	if !role.Valid() {
		return apperrors.ErrInvalidRole
	}
	if id == actorID {
		log.Warn("Admin attempted to change their own role")
		return apperrors.ErrSelfRoleChange
	}

	n, err := s.repo.UpdateRole(ctx, id, role)
	if err != nil {
		return fmt.Errorf("update role of user %d: %w", id, err)
	}
	if n == 0 {
		return apperrors.ErrUserNotFound
	}

	log.WithField("role", role).Info("User role changed")
	return nil
}
