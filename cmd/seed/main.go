package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"shopapi/internal/auth"
	"shopapi/internal/config"
	"shopapi/internal/db"
	"shopapi/internal/logging"
	"shopapi/internal/model"
	"shopapi/internal/repository"
)

// seedResult tells what seedAdmin did.
type seedResult string

const (
	adminCreated  seedResult = "created"
	adminPromoted seedResult = "promoted"
	adminPresent  seedResult = "unchanged"
)

func main() {
	cfg := config.Read()
	log := logging.New(cfg.LogLevel, cfg.LogFormat)
	log.Info("Starting seed script...")

	if strings.TrimSpace(cfg.AdminEmail) == "" || cfg.AdminPassword == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD must be set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	gormDB, err := db.Open(ctx, cfg, log)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Info("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	repo := repository.NewUserRepository(gormDB)
	hasher := auth.NewPasswordHasher(auth.DefaultCost)

	res, err := seedAdmin(ctx, repo, hasher, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}

	log.WithFields(logrus.Fields{
		"email":  strings.TrimSpace(cfg.AdminEmail),
		"result": res,
	}).Info("Seed completed successfully")
}

// seedAdmin creates email as an ADMIN account, or promotes the existing
// account with that email. An existing password is left untouched.
func seedAdmin(ctx context.Context, repo repository.UserRepository, hasher *auth.PasswordHasher, email, password string) (seedResult, error) {
	email = strings.TrimSpace(email)

	existing, err := repo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("error checking user %s: %w", email, err)
	}

	if existing != nil {
		if existing.Role == model.RoleAdmin {
			return adminPresent, nil
		}
		if _, err := repo.UpdateRole(ctx, existing.ID, model.RoleAdmin); err != nil {
			return "", fmt.Errorf("error promoting user %s: %w", email, err)
		}
		return adminPromoted, nil
	}

	hash, err := hasher.Hash(password)
	if err != nil {
		return "", err
	}
	user := &model.User{Email: email, PasswordHash: hash, Role: model.RoleAdmin}
	if err := repo.Create(ctx, user); err != nil {
		return "", fmt.Errorf("error creating user %s: %w", email, err)
	}
	return adminCreated, nil
}
