package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/registrar-dev/academic-records-api/internal/models"
	appErrors "github.com/registrar-dev/academic-records-api/pkg/errors"
)

type fakeUserRepo struct {
	user *models.APIUser
	err  error
}

func (f *fakeUserRepo) FindByEmail(context.Context, string) (*models.APIUser, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func (f *fakeUserRepo) FindByID(context.Context, string) (*models.APIUser, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func testAuthService(repo *fakeUserRepo) *AuthService {
	return NewAuthService(repo, nil, nil, AuthConfig{
		Secret:     "test-secret",
		Expiration: time.Hour,
		Issuer:     "registrar-test",
	})
}

func activeUser(t *testing.T, password string) *models.APIUser {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &models.APIUser{
		ID:           "user-1",
		Email:        "ops@example.edu",
		PasswordHash: string(hash),
		FullName:     "Records Operator",
		Active:       true,
	}
}

func TestAuthServiceLogin_IssuesValidToken(t *testing.T) {
	svc := testAuthService(&fakeUserRepo{user: activeUser(t, "s3cret")})

	resp, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "ops@example.edu",
		Password: "s3cret",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
	assert.Equal(t, "user-1", resp.User.ID)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "ops@example.edu", claims.Email)
}

func TestAuthServiceLogin_RejectsWrongPassword(t *testing.T) {
	svc := testAuthService(&fakeUserRepo{user: activeUser(t, "s3cret")})

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "ops@example.edu",
		Password: "wrong",
	})
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErr.Code)
}

func TestAuthServiceLogin_UnknownEmailLooksLikeBadPassword(t *testing.T) {
	svc := testAuthService(&fakeUserRepo{err: sql.ErrNoRows})

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "nobody@example.edu",
		Password: "s3cret",
	})
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErr.Code)
}

func TestAuthServiceLogin_InactiveAccount(t *testing.T) {
	user := activeUser(t, "s3cret")
	user.Active = false
	svc := testAuthService(&fakeUserRepo{user: user})

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "ops@example.edu",
		Password: "s3cret",
	})
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrInactiveAccount.Code, appErr.Code)
}

func TestAuthServiceValidateToken_RejectsGarbage(t *testing.T) {
	svc := testAuthService(&fakeUserRepo{})

	_, err := svc.ValidateToken("not-a-token")
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErr.Code)
}
