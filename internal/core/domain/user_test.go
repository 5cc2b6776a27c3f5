package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	t.Run("Success: Should create user with normalized email", func(t *testing.T) {
		t.Parallel()

		user, err := NewUser("123", "  Test.User@Gmail.COM  ")

		require.NoError(t, err)
		assert.Equal(t, "test.user@gmail.com", user.Email)
		assert.Equal(t, "123", user.ID)
		assert.False(t, user.CreatedAt.IsZero())
		assert.Equal(t, user.CreatedAt, user.UpdatedAt)
		assert.Empty(t, user.PasswordHash)
	})

	t.Run("Fail: Invalid email formats", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name  string
			email string
		}{
			{"Missing at sign", "invalid-email-format"},
			{"Empty", ""},
			{"Only spaces", "   "},
			{"Display name form", "Giacomo <giacomo@kanso.app>"},
			{"Missing local part", "@kanso.app"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := NewUser("123", tt.email)
				assert.ErrorIs(t, err, ErrInvalidEmail)
			})
		}
	})
}

func TestUserPassword(t *testing.T) {
	t.Parallel()

	t.Run("Success: Should hash password and update timestamp", func(t *testing.T) {
		t.Parallel()
		user, err := NewUser("123", "test@test.com")
		require.NoError(t, err)
		oldUpdatedAt := user.UpdatedAt

		time.Sleep(1 * time.Millisecond)

		require.NoError(t, user.SetPassword("superSecret123"))
		assert.NotEqual(t, "superSecret123", user.PasswordHash)
		assert.True(t, user.UpdatedAt.After(oldUpdatedAt))

		cost, err := bcrypt.Cost([]byte(user.PasswordHash))
		require.NoError(t, err)
		assert.Equal(t, passwordCost, cost)
	})

	t.Run("Minimum length boundary counts characters, not bytes", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name     string
			password string
			wantErr  error
		}{
			{"One below the minimum", strings.Repeat("a", MinPasswordLen-1), ErrPasswordTooShort},
			{"Exactly the minimum", strings.Repeat("a", MinPasswordLen), nil},
			{"Multi-byte runes below the minimum", strings.Repeat("é", MinPasswordLen-1), ErrPasswordTooShort},
			{"Multi-byte runes at the minimum", strings.Repeat("é", MinPasswordLen), nil},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				user, err := NewUser("123", "test@test.com")
				require.NoError(t, err)

				err = user.SetPassword(tt.password)
				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
					assert.Empty(t, user.PasswordHash, "a rejected password leaves no hash")
					return
				}
				assert.NoError(t, err)
				assert.NoError(t, user.CheckPassword(tt.password))
			})
		}
	})

	t.Run("CheckPassword wraps the bcrypt failure as invalid credentials", func(t *testing.T) {
		t.Parallel()
		user, err := NewUser("123", "test@test.com")
		require.NoError(t, err)
		require.NoError(t, user.SetPassword("correctPassword"))

		assert.NoError(t, user.CheckPassword("correctPassword"))

		err = user.CheckPassword("wrongPassword")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.ErrorIs(t, err, bcrypt.ErrMismatchedHashAndPassword)
	})

	t.Run("Fail: User without a password never authenticates", func(t *testing.T) {
		t.Parallel()
		user, err := NewUser("123", "test@test.com")
		require.NoError(t, err)

		assert.ErrorIs(t, user.CheckPassword(""), ErrInvalidCredentials)
	})
}
