package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetString(t *testing.T) {
	t.Setenv("TODOIT_TEST_URL", "mysql://localhost:3306/todoit")

	assert.Equal(t, "mysql://localhost:3306/todoit", GetString("TODOIT_TEST_URL", "x"))
	assert.Equal(t, "fallback", GetString("TODOIT_TEST_UNSET", "fallback"))
}

func TestGetStringEmptyIsSet(t *testing.T) {
	t.Setenv("TODOIT_TEST_PASSWORD", "")

	assert.Equal(t, "", GetString("TODOIT_TEST_PASSWORD", "default"))
}

func TestGetInt(t *testing.T) {
	t.Setenv("TODOIT_TEST_PORT", "9090")

	assert.Equal(t, 9090, GetInt("TODOIT_TEST_PORT", 8080))
	assert.Equal(t, 8080, GetInt("TODOIT_TEST_UNSET", 8080))
}

func TestGetIntPanicsOnGarbage(t *testing.T) {
	t.Setenv("TODOIT_TEST_PORT", "eighty")

	assert.Panics(t, func() { GetInt("TODOIT_TEST_PORT", 8080) })
}

func TestGetBool(t *testing.T) {
	t.Setenv("TODOIT_TEST_FLAG", "false")

	assert.False(t, GetBool("TODOIT_TEST_FLAG", true))
	assert.True(t, GetBool("TODOIT_TEST_UNSET", true))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("TODOIT_TEST_FROM_FILE=hello\nTODOIT_TEST_KEEP=file\n"), 0o600))

	t.Setenv("TODOIT_TEST_KEEP", "process")
	t.Cleanup(func() { _ = os.Unsetenv("TODOIT_TEST_FROM_FILE") })

	require.NoError(t, Load(path))

	assert.Equal(t, "hello", GetString("TODOIT_TEST_FROM_FILE", ""))
	assert.Equal(t, "process", GetString("TODOIT_TEST_KEEP", ""))
}

func TestLoadMissingFile(t *testing.T) {
	err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}
