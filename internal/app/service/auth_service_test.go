package service

import (
	"testing"
	"time"

	"github.com/flamingdiva/flamingdiva-backend/internal/app/repository"
	"github.com/flamingdiva/flamingdiva-backend/internal/db"
	"github.com/flamingdiva/flamingdiva-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthServiceTest(t *testing.T) AuthService {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	userRepo := repository.NewUserRepository(testDB)
	return NewAuthService(
		userRepo,
		"test-jwt-secret",
		15*time.Minute,
		7*24*time.Hour,
	)
}

func TestAuthService_Register(t *testing.T) {
	authService := setupAuthServiceTest(t)

	tests := []struct {
		name      string
		email     string
		password  string
		firstName string
		lastName  string
		wantErr   error
	}{
		{
			name:      "Valid registration",
			email:     "test@example.com",
			password:  "password123",
			firstName: "Test",
			lastName:  "User",
			wantErr:   nil,
		},
		{
			name:      "Duplicate email",
			email:     "test@example.com",
			password:  "password456",
			firstName: "Another",
			lastName:  "User",
			wantErr:   ErrEmailAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, tokens, err := authService.Register(
				tt.email,
				tt.password,
				tt.firstName,
				tt.lastName,
			)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.NotZero(t, user.ID)
			assert.Equal(t, tt.email, user.Email)
			assert.NotEqual(t, tt.password, user.PasswordHash)
			assert.NotEmpty(t, tokens.AccessToken)
			assert.NotEmpty(t, tokens.RefreshToken)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	authService := setupAuthServiceTest(t)

	_, _, err := authService.Register("login@example.com", "password123", "Login", "User")
	require.NoError(t, err)

	t.Run("Valid credentials", func(t *testing.T) {
		user, tokens, err := authService.Login("login@example.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, "login@example.com", user.Email)
		assert.NotEmpty(t, tokens.AccessToken)

		claims, err := util.ValidateToken(tokens.AccessToken, "test-jwt-secret")
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
	})

	t.Run("Wrong password", func(t *testing.T) {
		_, _, err := authService.Login("login@example.com", "wrong-password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Unknown email", func(t *testing.T) {
		_, _, err := authService.Login("nobody@example.com", "password123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthService_GetUserByID(t *testing.T) {
	authService := setupAuthServiceTest(t)

	user, _, err := authService.Register("me@example.com", "password123", "Me", "User")
	require.NoError(t, err)

	found, err := authService.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, found.Email)

	_, err = authService.GetUserByID(9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	authService := setupAuthServiceTest(t)

	user, _, err := authService.Register("profile@example.com", "password123", "Old", "Name")
	require.NoError(t, err)

	updated, err := authService.UpdateProfile(user.ID, "New", "Name")
	require.NoError(t, err)
	assert.Equal(t, "New", updated.FirstName)

	_, err = authService.UpdateProfile(9999, "Nobody", "There")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
