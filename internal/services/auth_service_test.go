// internal/services/auth_service_test.go
package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/cartlink/internal/config"
	"github.com/javajoker/cartlink/internal/models"
	"github.com/javajoker/cartlink/internal/utils"
)

type fakeUsers struct {
	users   []*models.User
	touched map[uint]time.Time
}

func (f *fakeUsers) FindByLogin(ctx context.Context, login string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == login || u.Email == login {
			return u, nil
		}
	}
	return nil, ErrInvalidCredentials
}

func (f *fakeUsers) FindByID(ctx context.Context, id uint) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, fmt.Errorf("user %d: %w", id, ErrUserNotFound)
}

func (f *fakeUsers) TouchLastLogin(ctx context.Context, user *models.User, at time.Time) error {
	f.touched[user.ID] = at
	return nil
}

func newFakeUsers(t *testing.T) *fakeUsers {
	manager := &models.User{
		BaseModel: models.BaseModel{ID: 1},
		Username:  "manager",
		Email:     "manager@example.com",
		Role:      models.UserRoleShopManager,
		Status:    models.UserStatusActive,
	}
	require.NoError(t, manager.SetPassword("correct-horse"))

	suspended := &models.User{
		BaseModel: models.BaseModel{ID: 2},
		Username:  "former",
		Email:     "former@example.com",
		Role:      models.UserRoleShopManager,
		Status:    models.UserStatusSuspended,
	}
	require.NoError(t, suspended.SetPassword("correct-horse"))

	return &fakeUsers{users: []*models.User{manager, suspended}, touched: map[uint]time.Time{}}
}

func testConfig() *config.Config {
	return &config.Config{JWT: config.JWTConfig{SecretKey: "test-secret", AccessTokenTTL: 2}}
}

func TestLogin(t *testing.T) {
	users := newFakeUsers(t)
	svc := NewAuthService(users, testConfig())

	resp, err := svc.Login(context.Background(), &LoginRequest{Username: "manager@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, 7200, resp.ExpiresIn)
	assert.Equal(t, uint(1), resp.User.ID)
	assert.NotNil(t, resp.User.LastLoginAt)
	assert.Contains(t, users.touched, uint(1))

	claims, err := utils.ValidateJWT(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(1), claims.UserID)
	assert.Equal(t, string(models.UserRoleShopManager), claims.Role)
}

func TestLoginFailures(t *testing.T) {
	svc := NewAuthService(newFakeUsers(t), testConfig())
	ctx := context.Background()

	_, err := svc.Login(ctx, &LoginRequest{Username: "manager", Password: "wrong"})
	assert.True(t, errors.Is(err, ErrInvalidCredentials))

	_, err = svc.Login(ctx, &LoginRequest{Username: "nobody", Password: "correct-horse"})
	assert.True(t, errors.Is(err, ErrInvalidCredentials))

	_, err = svc.Login(ctx, &LoginRequest{Username: "former", Password: "correct-horse"})
	assert.True(t, errors.Is(err, ErrUserSuspended))

	_, err = svc.Login(ctx, &LoginRequest{Username: "", Password: ""})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestCurrentUser(t *testing.T) {
	svc := NewAuthService(newFakeUsers(t), testConfig())
	ctx := context.Background()

	user, err := svc.CurrentUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "manager", user.Username)

	_, err = svc.CurrentUser(ctx, 2)
	assert.True(t, errors.Is(err, ErrUserSuspended))

	_, err = svc.CurrentUser(ctx, 9)
	assert.True(t, errors.Is(err, ErrUserNotFound))
}
