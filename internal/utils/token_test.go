package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opportunity-hub/api/internal/user"
)

const testSecret = "test-secret"

func TestIssueAndParseToken(t *testing.T) {
	issuedAt := time.Now()
	signed, issued, err := IssueToken("user-1", user.Student, AccessToken, testSecret, time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, signed)
	require.NotEmpty(t, issued.ID)

	claims, err := ParseToken(signed, testSecret)
	require.NoError(t, err)

	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, user.Student, claims.Role)
	assert.Equal(t, AccessToken, claims.Kind)
	assert.Equal(t, issued.ID, claims.ID)
	assert.WithinDuration(t, issuedAt.Add(time.Minute), claims.ExpiresAt.Time, time.Second)
}

func TestParseTokenWrongSecret(t *testing.T) {
	signed, _, err := IssueToken("user-1", user.Student, AccessToken, testSecret, time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(signed, "another-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := ParseToken("not.a.jwt", testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenExpired(t *testing.T) {
	signed, _, err := IssueToken("user-1", user.Partner, AccessToken, testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(signed, testSecret)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenKindIsPreserved(t *testing.T) {
	signed, _, err := IssueToken("user-1", user.Student, RefreshToken, testSecret, time.Minute)
	require.NoError(t, err)

	claims, err := ParseToken(signed, testSecret)
	require.NoError(t, err)
	assert.Equal(t, RefreshToken, claims.Kind)
}

func TestEachTokenGetsFreshJTI(t *testing.T) {
	_, first, err := IssueToken("user-1", user.Student, AccessToken, testSecret, time.Minute)
	require.NoError(t, err)
	_, second, err := IssueToken("user-1", user.Student, AccessToken, testSecret, time.Minute)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}
