package helpers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	require.NotEqual(t, "secret123", hash)
	require.True(t, strings.HasPrefix(hash, "$2"))

	require.True(t, CompareHashAndPassword(hash, "secret123"))
	require.False(t, CompareHashAndPassword(hash, "secret124"))
}

func TestHashPassword_Salted(t *testing.T) {
	a, err := HashPassword("secret123")
	require.NoError(t, err)
	b, err := HashPassword("secret123")
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestCompareHashAndPassword_BadHash(t *testing.T) {
	require.False(t, CompareHashAndPassword("not-a-bcrypt-hash", "secret123"))
	require.False(t, CompareHashAndPassword("", "secret123"))
}
