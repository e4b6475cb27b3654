package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/sangkips/storefront-pos/internal/domain/entity"
	"github.com/sangkips/storefront-pos/internal/infrastructure/database"
	"github.com/sangkips/storefront-pos/internal/infrastructure/repository"
	"github.com/sangkips/storefront-pos/pkg/apperror"
	"github.com/sangkips/storefront-pos/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserServices(t *testing.T) (*AuthService, *UserService) {
	t.Helper()
	db, err := database.NewSQLiteDB(filepath.Join(t.TempDir(), "users.db"), false)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	users := repository.NewUserRepository(db)
	jwt := utils.NewJWTManager("test-secret", "storefront-pos", time.Hour)
	return NewAuthService(users, jwt), NewUserService(users)
}

func TestAuthService_LoginIssuesSessionToken(t *testing.T) {
	ctx := context.Background()
	auth, users := newUserServices(t)

	created, err := users.CreateUser(ctx, &CreateUserInput{Name: "Priya", Email: "Priya@Example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCashier, created.Role)

	_, err = auth.Login(ctx, &LoginInput{Email: "priya@example.com", Password: "wrong-password"})
	assert.True(t, errors.Is(err, apperror.ErrInvalidCredentials))

	out, err := auth.Login(ctx, &LoginInput{Email: " PRIYA@example.com ", Password: "correct-horse"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.AccessToken)
	assert.True(t, out.ExpiresAt.After(time.Now()))

	session, err := auth.ValidateToken(out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, created.ID, session.UserID)
	assert.Equal(t, entity.RoleCashier, session.Role)

	_, err = auth.ValidateToken(out.AccessToken + "x")
	assert.Error(t, err)
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctx := context.Background()
	auth, users := newUserServices(t)
	u, err := users.CreateUser(ctx, &CreateUserInput{Name: "Admin", Email: "admin@example.com", Password: "first-password", Role: entity.RoleAdmin})
	require.NoError(t, err)

	err = auth.ChangePassword(ctx, &ChangePasswordInput{UserID: u.ID, CurrentPassword: "nope", NewPassword: "second-password"})
	require.Error(t, err)

	require.NoError(t, auth.ChangePassword(ctx, &ChangePasswordInput{UserID: u.ID, CurrentPassword: "first-password", NewPassword: "second-password"}))
	_, err = auth.Login(ctx, &LoginInput{Email: "admin@example.com", Password: "second-password"})
	assert.NoError(t, err)
}

func TestUserService_CreateAndList(t *testing.T) {
	ctx := context.Background()
	_, users := newUserServices(t)

	_, err := users.CreateUser(ctx, &CreateUserInput{Name: "", Email: "bad", Password: "short", Role: "owner"})
	require.Error(t, err)
	assert.Len(t, apperror.GetAppError(err).Errors, 4)

	_, err = users.CreateUser(ctx, &CreateUserInput{Name: "Kiran", Email: "kiran@example.com", Password: "long-enough"})
	require.NoError(t, err)
	_, err = users.CreateUser(ctx, &CreateUserInput{Name: "Kiran Two", Email: "kiran@example.com", Password: "long-enough"})
	assert.Equal(t, 409, apperror.GetAppError(err).Code)

	result, err := users.ListUsers(ctx, &ListUsersInput{Page: 1, PerPage: 10, Search: "kir"})
	require.NoError(t, err)
	assert.Len(t, result.Items, 1)
	assert.Equal(t, int64(1), result.Pagination.Total)
}

func TestSession_FromContext(t *testing.T) {
	_, ok := SessionFromContext(context.Background())
	assert.False(t, ok)

	s, ok := SessionFromContext(signedIn())
	assert.True(t, ok)
	assert.Equal(t, "cashier@example.com", s.Email)
}
