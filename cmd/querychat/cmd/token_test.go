package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenFile(t *testing.T) {
	t.Setenv("QUERYCHAT_TOKEN_FILE", filepath.Join(t.TempDir(), "nested", "token"))

	token, err := loadToken()
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, saveToken("abc.def.ghi"))
	token, err = loadToken()
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	require.NoError(t, removeToken())
	require.NoError(t, removeToken())
	token, err = loadToken()
	require.NoError(t, err)
	assert.Empty(t, token)
}
