package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *JWTService {
	return &JWTService{
		AccessTokenDuration:  15 * time.Minute,
		RefreshTokenDuration: 7 * 24 * time.Hour,
		jwtSecretKey:         "test-secret",
	}
}

func TestGenerateTokenPair_RoundTrip(t *testing.T) {
	svc := newTestJWTService()

	pair, err := svc.GenerateTokenPair("user-1")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.EqualValues(t, 900, pair.ExpiresIn)

	userID, err := svc.VerifyJWTToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)

	userID, err = svc.VerifyRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestVerifyJWTToken_RejectsRefreshToken(t *testing.T) {
	svc := newTestJWTService()

	pair, err := svc.GenerateTokenPair("user-1")
	require.NoError(t, err)

	_, err = svc.VerifyJWTToken(pair.RefreshToken)
	assert.Error(t, err)

	_, err = svc.VerifyRefreshToken(pair.AccessToken)
	assert.Error(t, err)
}

func TestVerifyJWTToken_RejectsExpiredToken(t *testing.T) {
	svc := newTestJWTService()
	svc.AccessTokenDuration = -time.Minute

	pair, err := svc.GenerateTokenPair("user-1")
	require.NoError(t, err)

	_, err = svc.VerifyJWTToken(pair.AccessToken)
	assert.Error(t, err)
}

func TestVerifyJWTToken_RejectsWrongSecret(t *testing.T) {
	pair, err := newTestJWTService().GenerateTokenPair("user-1")
	require.NoError(t, err)

	other := newTestJWTService()
	other.jwtSecretKey = "another-secret"

	_, err = other.VerifyJWTToken(pair.AccessToken)
	assert.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	svc := newTestJWTService()

	token, err := svc.ExtractTokenFromHeader("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = svc.ExtractTokenFromHeader("")
	assert.Error(t, err)

	_, err = svc.ExtractTokenFromHeader("abc.def.ghi")
	assert.Error(t, err)

	_, err = svc.ExtractTokenFromHeader("Basic abc")
	assert.Error(t, err)
}

func TestTokenRemainingLifetime(t *testing.T) {
	svc := newTestJWTService()

	pair, err := svc.GenerateTokenPair("user-1")
	require.NoError(t, err)

	remaining, err := svc.TokenRemainingLifetime(pair.AccessToken)
	require.NoError(t, err)
	assert.Greater(t, remaining, 14*time.Minute)
	assert.LessOrEqual(t, remaining, 15*time.Minute)
}
