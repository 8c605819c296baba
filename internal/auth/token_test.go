package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockroom/internal/config"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{JWTSecret: "test-secret", JWTIssuer: "stockroom-test"}
}

func TestMintAndParseAccessToken(t *testing.T) {
	cfg := testAuthConfig()
	company := int64(4)

	token, err := MintAccessToken(cfg, time.Now(), time.Hour, Claims{
		UserID:      12,
		CompanyID:   &company,
		Permissions: []string{"components.view", "components.checkout"},
	})
	require.NoError(t, err)

	claims, err := ParseAccessToken(cfg, token)
	require.NoError(t, err)
	assert.Equal(t, int64(12), claims.UserID)
	require.NotNil(t, claims.CompanyID)
	assert.Equal(t, int64(4), *claims.CompanyID)
	assert.False(t, claims.Superuser)
	assert.ElementsMatch(t, []string{"components.view", "components.checkout"}, claims.Permissions)
	assert.NotEmpty(t, claims.ID)
}

func TestParseAccessToken_Expired(t *testing.T) {
	cfg := testAuthConfig()

	token, err := MintAccessToken(cfg, time.Now().Add(-2*time.Hour), time.Hour, Claims{UserID: 1})
	require.NoError(t, err)

	_, err = ParseAccessToken(cfg, token)
	assert.Error(t, err)
}

func TestParseAccessToken_WrongSecret(t *testing.T) {
	token, err := MintAccessToken(testAuthConfig(), time.Now(), time.Hour, Claims{UserID: 1})
	require.NoError(t, err)

	_, err = ParseAccessToken(config.AuthConfig{JWTSecret: "other", JWTIssuer: "stockroom-test"}, token)
	assert.Error(t, err)
}

func TestParseAccessToken_WrongIssuer(t *testing.T) {
	token, err := MintAccessToken(testAuthConfig(), time.Now(), time.Hour, Claims{UserID: 1})
	require.NoError(t, err)

	_, err = ParseAccessToken(config.AuthConfig{JWTSecret: "test-secret", JWTIssuer: "elsewhere"}, token)
	assert.Error(t, err)
}

func TestMintAccessToken_RequiresSecretAndUser(t *testing.T) {
	_, err := MintAccessToken(config.AuthConfig{}, time.Now(), time.Hour, Claims{UserID: 1})
	assert.Error(t, err)

	_, err = MintAccessToken(testAuthConfig(), time.Now(), time.Hour, Claims{})
	assert.Error(t, err)
}
