package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imgdose/imgdose-api/config"
)

func testEnvConfig(secret string) *config.EnvConfig {
	cfg := &config.EnvConfig{}
	cfg.JWT.SecretKey = secret
	cfg.JWT.Expire = 3600
	return cfg
}

func TestGenerateAndParseToken(t *testing.T) {
	cfg := testEnvConfig("test-secret")

	tokenString, err := GenerateToken(cfg)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	token, err := ParseToken(tokenString, cfg)
	require.NoError(t, err)
	assert.True(t, token.Valid)
}

func TestParseTokenWrongSecret(t *testing.T) {
	tokenString, err := GenerateToken(testEnvConfig("right-secret"))
	require.NoError(t, err)

	_, err = ParseToken(tokenString, testEnvConfig("wrong-secret"))
	assert.Error(t, err)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := ParseToken("not-a-token", testEnvConfig("secret"))
	assert.Error(t, err)
}

func TestSecureCompare(t *testing.T) {
	assert.True(t, SecureCompare("password", "password"))
	assert.False(t, SecureCompare("password", "Password"))
	assert.False(t, SecureCompare("password", "password "))
	assert.True(t, SecureCompare("", ""))
}
