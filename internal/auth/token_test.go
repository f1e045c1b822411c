package auth

import (
	"testing"
	"time"

	"storeflow/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("auth-secret")

func TestTokenRoundTrip(t *testing.T) {
	identity := model.Identity{ID: "u-1", Email: "U@X.com", Name: "U", Role: model.RoleStaff}

	token, expiresAt, err := GenerateToken(secret, identity, time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	parsed, err := ParseToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", parsed.ID)
	assert.Equal(t, "u@x.com", parsed.Email)
	assert.Equal(t, model.RoleStaff, parsed.Role)

	_, err = ParseToken([]byte("other"), token)
	assert.Error(t, err)

	expired, _, err := GenerateToken(secret, identity, -time.Minute)
	require.NoError(t, err)
	_, err = ParseToken(secret, expired)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	noEmail, _, err := GenerateToken(secret, model.Identity{ID: "x"}, time.Hour)
	require.NoError(t, err)
	_, err = ParseToken(secret, noEmail)
	assert.ErrorIs(t, err, ErrMissingEmail)
}

func TestParseTokenRejectsOtherAlgorithms(t *testing.T) {
	claims := Claims{Email: "u@x.com", RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ParseToken(secret, token)
	assert.Error(t, err)
}
