package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"shopapi/internal/auth"
	"shopapi/internal/config"
	"shopapi/internal/db"
	"shopapi/internal/model"
	"shopapi/internal/repository"
)

func newRepo(t *testing.T) repository.UserRepository {
	t.Helper()
	gdb, err := db.Open(context.Background(), &config.Config{DBDriver: db.DriverSQLite, DBDSN: ":memory:"}, nil)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return repository.NewUserRepository(gdb)
}

func TestSeedAdmin(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	hasher := auth.NewPasswordHasher(bcrypt.MinCost)

	res, err := seedAdmin(ctx, repo, hasher, " root@shop.test ", "rootpass")
	require.NoError(t, err)
	assert.Equal(t, adminCreated, res)

	user, err := repo.FindByEmail(ctx, "root@shop.test")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, user.Role)
	ok, err := hasher.Verify("rootpass", user.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)

	res, err = seedAdmin(ctx, repo, hasher, "root@shop.test", "other")
	require.NoError(t, err)
	assert.Equal(t, adminPresent, res)
}

func TestSeedAdmin_PromotesExistingUser(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	hasher := auth.NewPasswordHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("original")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, &model.User{Email: "a@x.com", PasswordHash: hash, Role: model.RoleUser}))

	res, err := seedAdmin(ctx, repo, hasher, "a@x.com", "ignored")
	require.NoError(t, err)
	assert.Equal(t, adminPromoted, res)

	user, err := repo.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, user.Role)
	assert.Equal(t, hash, user.PasswordHash, "password is left untouched")
}
