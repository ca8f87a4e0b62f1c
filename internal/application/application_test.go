package application

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDir_HomeOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(HomeEnv, dir+string(filepath.Separator))

	got, err := resolveDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Clean(dir), got)
}

func TestResolveDir_Default(t *testing.T) {
	t.Setenv(HomeEnv, "")

	got, err := resolveDir()
	if err != nil {
		t.Skipf("no user config dir on this machine: %v", err)
	}

	assert.Equal(t, AppName, filepath.Base(got))
}
