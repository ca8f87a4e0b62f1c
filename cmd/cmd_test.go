package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/inovacc/clientdb/internal/kv"
	"github.com/inovacc/clientdb/internal/store"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags puts every flag back to its default so executions don't leak
// state into each other.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}

	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)

	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

type testEnv struct {
	t    *testing.T
	dir  string
	base []string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()

	return &testEnv{
		t:   t,
		dir: dir,
		base: []string{
			"--config", filepath.Join(dir, "missing.ini"),
			"--backend", "bolt",
			"--path", filepath.Join(dir, "clients.bolt"),
		},
	}
}

func (e *testEnv) run(stdin string, args ...string) (string, error) {
	e.t.Helper()

	resetFlags(rootCmd)

	var out bytes.Buffer

	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append(args, e.base...))

	err := rootCmd.Execute()

	closeSession()

	return out.String(), err
}

func (e *testEnv) list() []listedClient {
	e.t.Helper()

	out, err := e.run("", "list", "--json")
	require.NoError(e.t, err)

	var items []listedClient
	require.NoError(e.t, json.Unmarshal([]byte(out), &items), out)

	return items
}

func TestCommands_Scenario(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run("", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No clients registered.")

	out, err = env.run("", "add", "--name", "Ana", "--email", "a@x.com", "--phone", "111", "--city", "SP")
	require.NoError(t, err)
	assert.Contains(t, out, "Added: Ana (index 0)")

	items := env.list()
	require.Len(t, items, 1)
	assert.Equal(t, 0, items[0].Index)
	assert.Equal(t, "SP", items[0].City)
	assert.NotEmpty(t, items[0].ID)

	out, err = env.run("", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Ana")
	assert.Contains(t, out, "a@x.com")

	// editing the first record updates it in place
	_, err = env.run("", "edit", "0", "--city", "RJ")
	require.NoError(t, err)

	items = env.list()
	require.Len(t, items, 1)
	assert.Equal(t, "RJ", items[0].City)
	assert.Equal(t, "Ana", items[0].Name)

	out, err = env.run("y\n", "delete", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "Do you really want to delete client Ana? [y/N]")
	assert.Contains(t, out, "0 clients left")

	out, err = env.run("", "export")
	require.NoError(t, err)
	assert.Equal(t, "[]\n", out)
}

func TestAdd_PromptsForMissingFields(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run("a@x.com\n111\nSP\n", "add", "--name", "Ana")
	require.NoError(t, err)
	assert.Contains(t, out, "Email: ")
	assert.Contains(t, out, "City: ")

	items := env.list()
	require.Len(t, items, 1)
	assert.Equal(t, "a@x.com", items[0].Email)
	assert.Equal(t, "SP", items[0].City)
}

func TestAdd_Invalid(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run("", "add", "--name", "Ana", "--email", "nope", "--phone", "1", "--city", "SP")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email is not a valid address")

	assert.Empty(t, env.list())
}

func TestDelete_Declined(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run("", "add", "-n", "Ana", "-e", "a@x.com", "-p", "1", "-c", "SP")
	require.NoError(t, err)

	out, err := env.run("n\n", "delete", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "Cancelled.")

	assert.Len(t, env.list(), 1)
}

func TestDelete_ByIDAndShift(t *testing.T) {
	env := newTestEnv(t)

	for _, n := range []string{"a", "b", "c"} {
		_, err := env.run("", "add", "-n", n, "-e", n+"@x.com", "-p", "1", "-c", "X")
		require.NoError(t, err)
	}

	items := env.list()
	require.Len(t, items, 3)

	_, err := env.run("", "delete", "--id", items[1].ID, "--yes")
	require.NoError(t, err)

	items = env.list()
	require.Len(t, items, 2)
	assert.Equal(t, "c", items[1].Name, "later records shift down")
	assert.Equal(t, 1, items[1].Index)
}

func TestDelete_OutOfRange(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run("", "delete", "3", "--yes")
	require.Error(t, err)
	assert.True(t, errors.Is(err, store.ErrIndexOutOfRange))

	_, err = env.run("", "edit", "0", "--city", "RJ")
	assert.True(t, errors.Is(err, store.ErrIndexOutOfRange))
}

func TestResolveIndex_Errors(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run("", "delete", "abc", "--yes")
	assert.Error(t, err)

	_, err = env.run("", "delete", "--id", "missing", "--yes")
	assert.Error(t, err)

	_, err = env.run("", "delete", "--yes")
	assert.Error(t, err)
}

func TestImportExportClear(t *testing.T) {
	env := newTestEnv(t)

	file := filepath.Join(env.dir, "in.json")
	require.NoError(t, os.WriteFile(file, []byte(`[
		{"name":"Ana","email":"a@x.com","phone":"111","city":"SP"},
		{"id":"keep","name":"Bia","email":"b@x.com","phone":"222","city":"RJ"}
	]`), 0o600))

	out, err := env.run("", "import", file, "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 clients")

	items := env.list()
	require.Len(t, items, 2)
	assert.NotEmpty(t, items[0].ID)
	assert.Equal(t, "keep", items[1].ID)

	exported := filepath.Join(env.dir, "out.json")
	_, err = env.run("", "export", "--pretty", "-o", exported)
	require.NoError(t, err)

	data, err := os.ReadFile(exported)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"name": "Bia"`)

	out, err = env.run("y\n", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 2 clients")
	assert.Empty(t, env.list())
}

func TestImport_RejectsInvalidRecord(t *testing.T) {
	env := newTestEnv(t)

	file := filepath.Join(env.dir, "bad.json")
	require.NoError(t, os.WriteFile(file, []byte(`[{"name":"Ana"}]`), 0o600))

	_, err := env.run("", "import", file, "--yes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "record 0")
}

func TestConfigAndVersion(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run("", "config")
	require.NoError(t, err)
	assert.Contains(t, out, "[storage]")
	assert.Contains(t, out, "clients.bolt")

	out, err = env.run("", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "clientdb version")
}

func TestConfigFile(t *testing.T) {
	env := newTestEnv(t)

	cfgPath := filepath.Join(env.dir, "clientdb.ini")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[storage]\nkey = from_file\n"), 0o600))

	// later flags win, so point --config at the real file
	env.base[1] = cfgPath

	out, err := env.run("", "config")
	require.NoError(t, err)
	assert.Contains(t, out, "from_file")
}

func TestIsInteractive(t *testing.T) {
	assert.True(t, isInteractive(strings.NewReader("")))

	f, err := os.CreateTemp(t.TempDir(), "stdin")
	require.NoError(t, err)

	defer func() { _ = f.Close() }()

	assert.False(t, isInteractive(f))
}

func TestTitleCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "", expected: ""},
		{input: "name", expected: "Name"},
		{input: "City", expected: "City"},
	}

	for _, tt := range tests {
		if got := titleCase(tt.input); got != tt.expected {
			t.Errorf("titleCase(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestRootCommands(t *testing.T) {
	want := []string{"add", "clear", "config", "delete", "edit", "export", "import", "list", "version"}

	for _, name := range want {
		c, _, err := GetRootCmd().Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, c.Name())
	}
}

func TestSetupSession(t *testing.T) {
	prev := configPath
	configPath = filepath.Join(t.TempDir(), "missing.ini")

	t.Cleanup(func() {
		closeSession()
		configPath = prev
	})

	resetFlags(rootCmd)

	// the TUI owns the terminal, so logs are dropped without a log file
	require.NoError(t, setupSession(rootCmd, nil))
	require.NotNil(t, current)
	assert.Empty(t, current.closers)
	assert.False(t, current.logger.Enabled(context.Background(), slog.LevelError))

	require.NoError(t, setupSession(listCmd, nil))
	require.NotNil(t, current)
	assert.Len(t, current.closers, 1)
	assert.True(t, current.logger.Enabled(context.Background(), slog.LevelError))
}

func TestAdd_TrimsFlagValues(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run("", "add", "--name", "  Ana  ", "--email", " a@x.com ", "--phone", " 111", "--city", "SP ")
	require.NoError(t, err)

	items := env.list()
	require.Len(t, items, 1)
	assert.Equal(t, "Ana", items[0].Name)
	assert.Equal(t, "a@x.com", items[0].Email)
	assert.Equal(t, "111", items[0].Phone)
	assert.Equal(t, "SP", items[0].City)

	_, err = env.run("", "edit", "0", "--city", "  RJ ")
	require.NoError(t, err)
	assert.Equal(t, "RJ", env.list()[0].City)
}

func TestClear_Purge(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run("", "add", "-n", "Ana", "-e", "a@x.com", "-p", "1", "-c", "SP")
	require.NoError(t, err)

	out, err := env.run("", "clear", "--purge", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 1 clients")

	b, err := kv.NewBolt(filepath.Join(env.dir, "clients.bolt"))
	require.NoError(t, err)

	_, err = b.Get(context.Background(), store.DefaultKey)
	assert.True(t, errors.Is(err, kv.ErrNotFound))
	require.NoError(t, b.Close())

	assert.Empty(t, env.list())
}

func TestExport_ReportsFileErrors(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run("", "export", "-o", filepath.Join(env.dir, "missing", "out.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating")
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")

	require.NoError(t, writeFile(path, []byte("[]\n")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))

	assert.Error(t, writeFile(t.TempDir(), []byte("x")), "a directory cannot be created as a file")
}
