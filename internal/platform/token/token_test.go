package token

import (
	"testing"
	"time"

	id "tutela/pkg/domain"
	dErrors "tutela/pkg/domain-errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var service = NewService(
	"test-signing-key",
	"test-issuer",
	"test-audience",
)
var userID = id.NewUserID()
var orgID = id.NewOrgID()
var expiresIn = time.Hour

func Test_GenerateAndValidate(t *testing.T) {
	token, err := service.Generate(userID, orgID, RoleDelegate, expiresIn)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.Validate(token)
	require.NoError(t, err)
	assert.NotNil(t, claims)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, orgID.String(), claims.OrgID)
	assert.Equal(t, RoleDelegate, claims.Role)
	assert.WithinDuration(t, time.Now().Add(expiresIn), claims.ExpiresAt.Time, time.Minute)
}

func Test_Validate_InvalidToken(t *testing.T) {
	_, err := service.Validate("invalid-token-string")
	require.ErrorIs(t, err, dErrors.New(dErrors.CodeUnauthorized, "invalid token"))
}

func Test_Validate_ExpiredToken(t *testing.T) {
	token, err := service.Generate(userID, orgID, RoleDelegate, -time.Hour)
	require.NoError(t, err)

	_, err = service.Validate(token)
	require.ErrorIs(t, err, dErrors.New(dErrors.CodeUnauthorized, "token has expired"))
}

func Test_Validate_WrongKey(t *testing.T) {
	other := NewService("other-key", "test-issuer", "test-audience")
	token, err := other.Generate(userID, orgID, RoleDelegate, expiresIn)
	require.NoError(t, err)

	_, err = service.Validate(token)
	require.ErrorIs(t, err, dErrors.New(dErrors.CodeUnauthorized, "invalid token"))
}
