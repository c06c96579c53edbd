package tokens

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var key = []byte("secret")

func TestGenerateAndValidate(t *testing.T) {
	userID, sessionID := uuid.New(), uuid.New()

	token, err := GenerateUserJWT(userID, sessionID, time.Now().Add(time.Hour), key)
	require.NoError(t, err)

	claims, err := ValidateUserJWT(token, key)
	require.NoError(t, err)

	gotUser, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, userID, gotUser)

	gotSession, err := claims.SessionID()
	require.NoError(t, err)
	assert.Equal(t, sessionID, gotSession)
}

func TestValidateExpired(t *testing.T) {
	token, err := GenerateUserJWT(uuid.New(), uuid.New(), time.Now().Add(-time.Minute), key)
	require.NoError(t, err)

	_, err = ValidateUserJWT(token, key)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateWrongKey(t *testing.T) {
	token, err := GenerateUserJWT(uuid.New(), uuid.New(), time.Now().Add(time.Hour), key)
	require.NoError(t, err)

	_, err = ValidateUserJWT(token, []byte("other"))
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ValidateUserJWT("garbage", key)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
