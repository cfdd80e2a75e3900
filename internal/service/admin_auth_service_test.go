package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/helpston-festival/festival-api/pkg/config"
	appErrors "github.com/helpston-festival/festival-api/pkg/errors"
)

func TestAdminAuthLoginAndValidate(t *testing.T) {
	svc := NewAdminAuthService(config.AdminConfig{
		Password:      "festival-secret",
		SessionSecret: "signing-key",
	}, nil)

	require.True(t, svc.Enabled())

	token, err := svc.Login("festival-secret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	assert.NoError(t, svc.ValidateSession(token))
}

func TestAdminAuthWrongPassword(t *testing.T) {
	svc := NewAdminAuthService(config.AdminConfig{Password: "festival-secret"}, nil)

	_, err := svc.Login("guess")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidPassword.Code, appErrors.FromError(err).Code)
}

func TestAdminAuthBcryptPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("festival-secret"), bcrypt.MinCost)
	require.NoError(t, err)
	svc := NewAdminAuthService(config.AdminConfig{
		Password:      string(hash),
		SessionSecret: "signing-key",
	}, nil)

	token, err := svc.Login("festival-secret")
	require.NoError(t, err)
	assert.NoError(t, svc.ValidateSession(token))

	_, err = svc.Login("guess")
	assert.Error(t, err)
}

func TestAdminAuthDisabledWithoutPassword(t *testing.T) {
	svc := NewAdminAuthService(config.AdminConfig{}, nil)

	assert.False(t, svc.Enabled())

	_, err := svc.Login("anything")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrAdminDisabled.Code, appErrors.FromError(err).Code)

	err = svc.ValidateSession("some-token")
	assert.Equal(t, appErrors.ErrAdminDisabled.Code, appErrors.FromError(err).Code)
}

func TestAdminAuthRejectsTamperedToken(t *testing.T) {
	svc := NewAdminAuthService(config.AdminConfig{Password: "festival-secret"}, nil)
	other := NewAdminAuthService(config.AdminConfig{Password: "different-secret"}, nil)

	token, err := svc.Login("festival-secret")
	require.NoError(t, err)

	assert.Error(t, other.ValidateSession(token))
	assert.Error(t, svc.ValidateSession(token+"x"))
	assert.Error(t, svc.ValidateSession(""))
}

func TestAdminAuthExpiredSession(t *testing.T) {
	svc := NewAdminAuthService(config.AdminConfig{
		Password:   "festival-secret",
		SessionTTL: -time.Minute,
	}, nil)

	// Negative TTL falls back to the 24h default, so the token is valid.
	assert.Equal(t, 24*time.Hour, svc.SessionTTL())
	token, err := svc.Login("festival-secret")
	require.NoError(t, err)
	assert.NoError(t, svc.ValidateSession(token))
}

func TestAdminAuthSessionTTLConfigured(t *testing.T) {
	svc := NewAdminAuthService(config.AdminConfig{
		Password:   "festival-secret",
		SessionTTL: time.Hour,
	}, nil)
	assert.Equal(t, time.Hour, svc.SessionTTL())
}
