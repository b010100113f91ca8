package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndParse(t *testing.T) {
	p := NewHSProvider("secret", "auth", "checkout")
	uid := uuid.New()

	tok, exp, err := p.SignAccess(uid, "ROLE_ADMIN", "admin@example.com", time.Minute)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Minute), exp, 2*time.Second)

	c, err := p.ParseAndValidateAccess(tok)
	require.NoError(t, err)
	assert.Equal(t, uid, c.UserID)
	assert.Equal(t, "ROLE_ADMIN", c.Role)
	assert.Equal(t, "admin@example.com", c.Email)
}

func TestParseRejects(t *testing.T) {
	p := NewHSProvider("secret", "auth", "checkout")
	uid := uuid.New()

	t.Run("expired", func(t *testing.T) {
		tok, _, err := p.SignAccess(uid, "ROLE_CUSTOMER", "", -time.Minute)
		require.NoError(t, err)
		_, err = p.ParseAndValidateAccess(tok)
		require.Error(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewHSProvider("other", "auth", "checkout")
		tok, _, err := other.SignAccess(uid, "ROLE_CUSTOMER", "", time.Minute)
		require.NoError(t, err)
		_, err = p.ParseAndValidateAccess(tok)
		require.Error(t, err)
	})

	t.Run("wrong audience", func(t *testing.T) {
		other := NewHSProvider("secret", "auth", "gateway")
		tok, _, err := other.SignAccess(uid, "ROLE_CUSTOMER", "", time.Minute)
		require.NoError(t, err)
		_, err = p.ParseAndValidateAccess(tok)
		require.Error(t, err)
	})

	t.Run("wrong method", func(t *testing.T) {
		claims := jwt.MapClaims{"sub": uid.String(), "iss": "auth", "aud": "checkout", "exp": time.Now().Add(time.Minute).Unix()}
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
		require.NoError(t, err)
		_, err = p.ParseAndValidateAccess(tok)
		require.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := p.ParseAndValidateAccess("not-a-token")
		require.Error(t, err)
	})
}
