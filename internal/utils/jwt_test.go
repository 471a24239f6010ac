package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenRoundTrip(t *testing.T) {
	secret := "test-secret"

	token, err := GenerateToken(secret, 42, "admin", time.Hour)
	assert.Nil(t, err)

	userID, role, err := ParseToken(secret, token)
	assert.Nil(t, err)
	assert.EqualValues(t, 42, userID)
	assert.Equal(t, "admin", role)
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("secret-a", 42, "customer", time.Hour)
	assert.Nil(t, err)

	_, _, err = ParseToken("secret-b", token)
	assert.NotNil(t, err)
}

func TestTokenExpired(t *testing.T) {
	token, err := GenerateToken("test-secret", 42, "customer", -time.Minute)
	assert.Nil(t, err)

	_, _, err = ParseToken("test-secret", token)
	assert.NotNil(t, err)
}
