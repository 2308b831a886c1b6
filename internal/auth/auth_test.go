package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-12345"

func TestHashPassword(t *testing.T) {
	t.Run("Successfully hash password", func(t *testing.T) {
		password := "mySecurePassword123"
		hashed, err := HashPassword(password)

		assert.NoError(t, err)
		assert.NotEmpty(t, hashed)
		assert.NotEqual(t, password, hashed)
	})

	t.Run("Different hashes for same password", func(t *testing.T) {
		password := "samePassword"
		hash1, _ := HashPassword(password)
		hash2, _ := HashPassword(password)

		assert.NotEqual(t, hash1, hash2)
	})
}

func TestCheckPassword(t *testing.T) {
	password := "correctPassword"
	hashed, _ := HashPassword(password)

	t.Run("Correct password", func(t *testing.T) {
		assert.True(t, CheckPassword(hashed, password))
	})

	t.Run("Incorrect password", func(t *testing.T) {
		assert.False(t, CheckPassword(hashed, "wrongPassword"))
	})

	t.Run("Empty password", func(t *testing.T) {
		assert.False(t, CheckPassword(hashed, ""))
	})
}

func TestParseRole(t *testing.T) {
	t.Run("Known roles", func(t *testing.T) {
		for _, s := range []string{"student", "staff", "admin"} {
			role, err := ParseRole(s)
			require.NoError(t, err)
			assert.Equal(t, Role(s), role)
		}
	})

	t.Run("Unknown role", func(t *testing.T) {
		_, err := ParseRole("superuser")
		assert.ErrorIs(t, err, ErrUnknownRole)
	})
}

func TestGenerateAccessToken(t *testing.T) {
	t.Run("Successfully generate access token", func(t *testing.T) {
		token, err := GenerateAccessToken(1, "student@campus.edu", RoleStudent, testSecret)

		assert.NoError(t, err)
		assert.NotEmpty(t, token)
	})

	t.Run("Empty secret fails", func(t *testing.T) {
		_, err := GenerateAccessToken(1, "student@campus.edu", RoleStudent, "")
		assert.ErrorIs(t, err, ErrEmptyJWTSecret)
	})
}

func TestValidateToken(t *testing.T) {
	t.Run("Valid token round trip", func(t *testing.T) {
		token, err := GenerateAccessToken(42, "staff@campus.edu", RoleStaff, testSecret)
		require.NoError(t, err)

		claims, err := ValidateToken(token, testSecret)
		require.NoError(t, err)

		assert.Equal(t, 42, claims.UserID)
		assert.Equal(t, "staff@campus.edu", claims.Email)
		assert.Equal(t, "staff", claims.Role)
		assert.Equal(t, "access", claims.TokenType)
	})

	t.Run("Wrong secret rejected", func(t *testing.T) {
		token, err := GenerateAccessToken(1, "student@campus.edu", RoleStudent, testSecret)
		require.NoError(t, err)

		_, err = ValidateToken(token, "different-secret")
		assert.Error(t, err)
	})

	t.Run("Garbage token rejected", func(t *testing.T) {
		_, err := ValidateToken("not.a.token", testSecret)
		assert.Error(t, err)
	})

	t.Run("Expired token rejected", func(t *testing.T) {
		claims := &JWTClaims{
			UserID:    1,
			Email:     "student@campus.edu",
			Role:      "student",
			TokenType: "access",
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    jwtIssuer,
				Audience:  []string{jwtAudience},
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
				IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			},
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signed, err := token.SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = ValidateToken(signed, testSecret)
		assert.ErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("Token with unknown role rejected", func(t *testing.T) {
		claims := &JWTClaims{
			UserID:    1,
			Email:     "x@campus.edu",
			Role:      "superuser",
			TokenType: "access",
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    jwtIssuer,
				Audience:  []string{jwtAudience},
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
				IssuedAt:  jwt.NewNumericDate(time.Now()),
			},
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signed, err := token.SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = ValidateToken(signed, testSecret)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestRefreshAccessToken(t *testing.T) {
	t.Run("Valid refresh token", func(t *testing.T) {
		refresh, err := GenerateRefreshToken(7, "student@campus.edu", RoleStudent, testSecret)
		require.NoError(t, err)

		access, claims, err := RefreshAccessToken(refresh, testSecret)
		require.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.Equal(t, 7, claims.UserID)
	})

	t.Run("Access token cannot refresh", func(t *testing.T) {
		access, err := GenerateAccessToken(7, "student@campus.edu", RoleStudent, testSecret)
		require.NoError(t, err)

		_, _, err = RefreshAccessToken(access, testSecret)
		assert.ErrorIs(t, err, ErrInvalidTokenType)
	})
}
