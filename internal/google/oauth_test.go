package google

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenFileForAccount(t *testing.T) {
	tests := []struct {
		name    string
		account string
		want    string
	}{
		{name: "default account keeps legacy name", account: "default", want: "google.token"},
		{name: "empty account keeps legacy name", account: "", want: "google.token"},
		{name: "named account", account: "work", want: "google-work.token"},
		{name: "email as account", account: "alice@example.com", want: "google-alice@example.com.token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tokenFileForAccount(tt.account)
			assert.Equal(t, tt.want, filepath.Base(got))
			assert.Contains(t, got, "draftpatch")
		})
	}
}

func TestSanitizeAccount(t *testing.T) {
	tests := []struct {
		name    string
		account string
		want    string
	}{
		{name: "plain", account: "work", want: "work"},
		{name: "path separator", account: "a/b", want: "a_b"},
		{name: "backslash", account: "a\\b", want: "a_b"},
		{name: "parent traversal", account: "../etc", want: "__etc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeAccount(tt.account))
		})
	}
}

func TestHasTokenForAccount(t *testing.T) {
	cacheDir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheDir)

	assert.False(t, HasTokenForAccount("default"))
	assert.False(t, HasTokenForAccount("work"))

	tokenDir := filepath.Join(cacheDir, "draftpatch")
	require.NoError(t, os.MkdirAll(tokenDir, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(tokenDir, "google.token"), []byte("access refresh"), 0600))

	assert.True(t, HasTokenForAccount("default"))
	assert.True(t, HasToken())
	assert.False(t, HasTokenForAccount("work"))
}

func TestGetTokenSourceRejectsMalformedFile(t *testing.T) {
	cacheDir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheDir)

	tokenDir := filepath.Join(cacheDir, "draftpatch")
	require.NoError(t, os.MkdirAll(tokenDir, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(tokenDir, "google.token"), []byte("only-one-field"), 0600))

	_, err := GetTokenSource(t.Context())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token format")
}

func TestGetAuthURLForAccount(t *testing.T) {
	url := GetAuthURLForAccount("work")
	assert.True(t, strings.HasPrefix(url, "https://accounts.google.com/"))
	assert.Contains(t, url, "state-work")
}
