package hash

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	Cost = bcrypt.MinCost
	m.Run()
}

func TestPassword_Matches(t *testing.T) {
	t.Parallel()

	digest, err := Password("secret")
	require.NoError(t, err)
	assert.NotEqual(t, "secret", digest)

	assert.True(t, Matches(digest, "secret"))
	assert.False(t, Matches(digest, "Secret"))
	assert.False(t, Matches("not-a-hash", "secret"))
}

func TestPassword_Salted(t *testing.T) {
	t.Parallel()

	a, err := Password("secret")
	require.NoError(t, err)
	b, err := Password("secret")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestPassword_Length(t *testing.T) {
	t.Parallel()

	limit := strings.Repeat("я", MaxPasswordBytes/2)
	digest, err := Password(limit)
	require.NoError(t, err)
	assert.True(t, Matches(digest, limit))

	_, err = Password(limit + "x")
	assert.ErrorIs(t, err, ErrPasswordTooLong)
	assert.False(t, Matches(digest, limit+"x"))
}
