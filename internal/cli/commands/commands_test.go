package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gint/internal/cli"
	"gint/internal/domain"
)

func newRoot(out *bytes.Buffer) *cobra.Command {
	root := &cobra.Command{Use: "gint", SilenceUsage: true, SilenceErrors: true}
	var flags cli.Flags
	NewCommands(out, false).Register(root, &flags)
	root.SetOut(out)
	root.SetErr(out)
	return root
}

func TestListCommand(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "auth"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "auth", "login.json"), []byte(`{"name":"Login"}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "auth", "logout.json"), []byte(`{"name":"Logout"}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte(`[]`), 0644))

	var out bytes.Buffer
	root := newRoot(&out)
	root.SetArgs([]string{"list", dir})
	require.NoError(t, root.Execute())

	text := out.String()
	assert.Contains(t, text, "Login")
	assert.Contains(t, text, "Logout")
	assert.Contains(t, text, "broken.json")
}

func TestListCommand_Filter(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "login.json"), []byte(`{"name":"Login"}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "checkout.json"), []byte(`{"name":"Checkout"}`), 0644))

	var out bytes.Buffer
	root := newRoot(&out)
	root.SetArgs([]string{"list", dir, "--filter", "check*"})
	require.NoError(t, root.Execute())

	assert.Contains(t, out.String(), "Checkout")
	assert.NotContains(t, out.String(), "Login")
}

func TestListCommand_Empty(t *testing.T) {
	var out bytes.Buffer
	root := newRoot(&out)
	root.SetArgs([]string{"list", t.TempDir()})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "No tests found")
}

func TestListCommand_NotFound(t *testing.T) {
	var out bytes.Buffer
	root := newRoot(&out)
	root.SetArgs([]string{"list", filepath.Join(t.TempDir(), "missing")})

	var notFound *domain.NotFoundError
	assert.ErrorAs(t, root.Execute(), &notFound)
}

func TestRunCommand_Args(t *testing.T) {
	var out bytes.Buffer
	root := newRoot(&out)
	root.SetArgs([]string{"run"})
	assert.Error(t, root.Execute())

	root = newRoot(&out)
	root.SetArgs([]string{"run", "tests"})
	assert.Error(t, root.Execute(), "output directory is required")

	root = newRoot(&out)
	root.SetArgs([]string{"run", "a", "b", "c"})
	assert.Error(t, root.Execute())
}

func TestRunCommand_EmptyDirectory(t *testing.T) {
	t.Setenv("GHOST_INSPECTOR_API_KEY", "")
	var out bytes.Buffer
	root := newRoot(&out)
	root.SetArgs([]string{"run", t.TempDir(), t.TempDir(), "--env-file", writeEnv(t, "")})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "Found 0 test file(s).")
}

func TestRunCommand_MissingOutputDir(t *testing.T) {
	var out bytes.Buffer
	root := newRoot(&out)
	missing := filepath.Join(t.TempDir(), "results")
	root.SetArgs([]string{"run", t.TempDir(), missing, "--env-file", writeEnv(t, "")})

	var invalid *domain.InvalidOutputDirError
	require.ErrorAs(t, root.Execute(), &invalid)
	assert.Equal(t, missing, invalid.Path)
}

func writeEnv(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
