package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHash_And_CompareHash(t *testing.T) {
	raw := "correct horse battery staple"

	hash, err := GetHash(raw)
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, raw, hash)

	assert.NoError(t, CompareHash(hash, raw))
	assert.Error(t, CompareHash(hash, "wrong password"))
}

func TestGetHash_SaltedHashesDiffer(t *testing.T) {
	raw := "password123"

	first, err := GetHash(raw)
	require.NoError(t, err)
	second, err := GetHash(raw)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.NoError(t, CompareHash(first, raw))
	assert.NoError(t, CompareHash(second, raw))
}

func TestCompareHash_MalformedHash(t *testing.T) {
	tests := []struct {
		name string
		hash string
	}{
		{"empty hash", ""},
		{"not a bcrypt hash", "plaintext"},
		{"truncated hash", strings.Repeat("x", 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, CompareHash(tt.hash, "password123"))
		})
	}
}
