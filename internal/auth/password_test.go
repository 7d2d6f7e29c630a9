package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomString(t *testing.T) {
	for _, n := range []int{0, 1, 12, 40} {
		s, err := RandomString(n)
		require.NoError(t, err)
		assert.Len(t, s, n)
		assert.Regexp(t, "^[a-zA-Z0-9]*$", s)
	}
}

func TestHashPassword_KnownVector(t *testing.T) {
	// stored value produced by the previous deployment for the seeded manager account
	stored := "VgGdZKkexOUy$e1f631580bc78759077f5398a4b4661c846e0f3ddea4ae992b51991fc6ae95d5"

	assert.True(t, VerifyPassword("manager_project", stored))
	assert.False(t, VerifyPassword("manareg_project", stored))
}

func TestHashPassword_Deterministic(t *testing.T) {
	h1 := HashPassword("secret", "saltsaltsalt")
	h2 := HashPassword("secret", "saltsaltsalt")
	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64)
	assert.NotEqual(t, h1, HashPassword("secret", "othersaltxyz"))
}

func TestEncodeVerify_RoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{name: "simple", password: "password"},
		{name: "punctuation", password: `p@$$w0rd!~"'`},
		{name: "spaces", password: "correct horse battery staple"},
		{name: "single char", password: "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stored, err := EncodePassword(tt.password)
			require.NoError(t, err)

			salt, hash, ok := strings.Cut(stored, "$")
			require.True(t, ok)
			assert.Len(t, salt, SaltLength)
			assert.Len(t, hash, 64)

			assert.True(t, VerifyPassword(tt.password, stored))

			// a single-character mutation must not verify
			mutated := []byte(tt.password)
			mutated[0]++
			assert.False(t, VerifyPassword(string(mutated), stored))
			assert.False(t, VerifyPassword(tt.password+"a", stored))
		})
	}
}

func TestVerifyPassword_Malformed(t *testing.T) {
	for _, stored := range []string{"", "nosalt", "$hash", "salt$"} {
		assert.False(t, VerifyPassword("anything", stored), stored)
	}
}
