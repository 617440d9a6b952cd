package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-signing-secret"

func TestIssueAndVerify(t *testing.T) {
	issuer := NewIssuer(testSecret, time.Hour)

	token, err := issuer.Issue("64b0c1f2a3d4e5f60718293a")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "64b0c1f2a3d4e5f60718293a", claims.UserID)
	assert.True(t, claims.IsUser)

	expiresIn := time.Until(claims.ExpiresAt.Time)
	assert.Greater(t, expiresIn, 59*time.Minute)
	assert.LessOrEqual(t, expiresIn, time.Hour)
}

func TestVerifyExpiredToken(t *testing.T) {
	issuer := NewIssuer(testSecret, time.Hour)
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := issuer.Issue("64b0c1f2a3d4e5f60718293a")
	require.NoError(t, err)

	verifier := NewIssuer(testSecret, time.Hour)
	_, err = verifier.Verify(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyWrongSecret(t *testing.T) {
	issuer := NewIssuer(testSecret, time.Hour)
	token, err := issuer.Issue("64b0c1f2a3d4e5f60718293a")
	require.NoError(t, err)

	other := NewIssuer("a-different-secret", time.Hour)
	_, err = other.Verify(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyMalformedToken(t *testing.T) {
	issuer := NewIssuer(testSecret, time.Hour)

	for _, token := range []string{"", "garbage", "aaa.bbb.ccc"} {
		_, err := issuer.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", token)
	}
}
