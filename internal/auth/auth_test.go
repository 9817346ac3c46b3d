package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokens_IssueParse(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)

	signed, err := tokens.Issue("user-1", "a@b.c")
	require.NoError(t, err)

	id, err := tokens.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, "user-1", id)
}

func TestTokens_Expired(t *testing.T) {
	tokens := NewTokens("secret", time.Minute)
	signed, err := tokens.Issue("user-1", "")
	require.NoError(t, err)

	tokens.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = tokens.Parse(signed)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokens_WrongSecret(t *testing.T) {
	signed, err := NewTokens("one", time.Hour).Issue("user-1", "")
	require.NoError(t, err)

	_, err = NewTokens("two", time.Hour).Parse(signed)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokens_RejectsOtherAlgorithms(t *testing.T) {
	claims := jwt.MapClaims{"user_id": "user-1", "exp": time.Now().Add(time.Hour).Unix()}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewTokens("secret", time.Hour).Parse(signed)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokens_RequiresUserID(t *testing.T) {
	claims := jwt.MapClaims{"sub": "x", "exp": time.Now().Add(time.Hour).Unix()}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewTokens("secret", time.Hour).Parse(signed)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswords(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	assert.True(t, CheckPassword(hash, "correct horse"))
	assert.False(t, CheckPassword(hash, "battery staple"))
	assert.False(t, CheckPassword("not-a-hash", "correct horse"))
}
