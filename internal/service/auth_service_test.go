package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"innsikt/internal/model"
)

func TestAuthService_LoginAndValidate(t *testing.T) {
	svc := NewAuthService("admin", "hemmelig", "secret", []string{"flex"}, time.Hour)

	resp, err := svc.Login("admin", "hemmelig")
	require.NoError(t, err)
	assert.Equal(t, []string{"flex"}, resp.Teams)

	claims, err := svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.UserID, claims.UserID)
	assert.True(t, claims.CanAccess("flex"))
	assert.False(t, claims.CanAccess("team-x"))
}

func TestAuthService_BadCredentials(t *testing.T) {
	svc := NewAuthService("admin", "hemmelig", "secret", nil, time.Hour)

	_, err := svc.Login("admin", "feil")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login("", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_RejectsBadTokens(t *testing.T) {
	svc := NewAuthService("admin", "hemmelig", "secret", []string{"flex"}, time.Hour)
	resp, err := svc.Login("admin", "hemmelig")
	require.NoError(t, err)

	other := NewAuthService("admin", "hemmelig", "other-secret", []string{"*"}, time.Hour)
	_, err = other.ValidateToken(resp.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = svc.ValidateToken(resp.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, &model.DashboardClaims{Teams: []string{"*"}})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.ValidateToken(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
