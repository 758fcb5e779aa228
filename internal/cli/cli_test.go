package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/tada-lists/internal/store/jsonstore"
)

type result struct {
	code           int
	stdout, stderr string
}

// cliEnv isolates a test from user config and returns the session file path.
func cliEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("HOME", dir)
	return filepath.Join(dir, "session.json")
}

func run(t *testing.T, session string, args ...string) result {
	t.Helper()
	var out, errOut bytes.Buffer
	full := append([]string{"--theme", "mono", "--session-file", session}, args...)
	code := Execute(full, &out, &errOut)
	return result{code: code, stdout: out.String(), stderr: errOut.String()}
}

func TestListsLifecycle(t *testing.T) {
	session := cliEnv(t)

	r := run(t, session, "lists", "new", "  Groceries ")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, "The list has been created. (id 1)")

	r = run(t, session, "lists", "new", "Groceries")
	assert.Equal(t, 2, r.code)
	assert.Contains(t, r.stderr, "List name must be unique.")

	r = run(t, session, "lists", "rename", "1", "Food")
	require.Equal(t, 0, r.code, r.stderr)

	r = run(t, session, "lists")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, "Food")

	s, err := jsonstore.Load(session)
	require.NoError(t, err)
	require.Len(t, s.Lists, 1)
	assert.Equal(t, "Food", s.Lists[0].Name)

	r = run(t, session, "lists", "rm", "1")
	require.Equal(t, 0, r.code, r.stderr)
	r = run(t, session, "lists", "rm", "1")
	assert.Equal(t, 2, r.code)
	assert.Contains(t, r.stderr, "The specified list was not found.")
}

func TestTodosLifecycle(t *testing.T) {
	session := cliEnv(t)
	require.Equal(t, 0, run(t, session, "lists", "new", "Groceries").code)

	r := run(t, session, "todos", "add", "1", "Milk")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, "(id 1)")
	require.Equal(t, 0, run(t, session, "todos", "add", "1", "Eggs").code)
	require.Equal(t, 0, run(t, session, "todos", "done", "1", "1").code)

	r = run(t, session, "todos", "ls", "1")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Less(t, bytes.Index([]byte(r.stdout), []byte("[ ] Eggs")), bytes.Index([]byte(r.stdout), []byte("[x] Milk")))

	require.Equal(t, 0, run(t, session, "todos", "undo", "1", "1").code)
	require.Equal(t, 0, run(t, session, "todos", "complete-all", "1").code)
	s, err := jsonstore.Load(session)
	require.NoError(t, err)
	assert.True(t, s.Lists[0].Todos[0].Completed)
	assert.True(t, s.Lists[0].Todos[1].Completed)

	require.Equal(t, 0, run(t, session, "todos", "rm", "1", "1").code)
	r = run(t, session, "todos", "rm", "1", "1")
	assert.Equal(t, 2, r.code)
	assert.Contains(t, r.stderr, "The specified todo was not found.")

	r = run(t, session, "todos", "add", "1", "   ")
	assert.Equal(t, 2, r.code)
	assert.Contains(t, r.stderr, "Todo must be between 1 and 100 characters.")
}

func TestUsageErrors(t *testing.T) {
	session := cliEnv(t)

	for _, args := range [][]string{
		{"lists", "new"},
		{"lists", "rm", "abc"},
		{"todos", "done", "1"},
		{"todos", "add", "x", "Milk"},
		{"--no-such-flag"},
		{"bogus"},
	} {
		r := run(t, session, args...)
		assert.Equal(t, 2, r.code, "%v: %s", args, r.stderr)
	}
	_, err := os.Stat(session)
	assert.True(t, os.IsNotExist(err), "nothing was saved")
}

func TestCorruptSessionFile(t *testing.T) {
	session := cliEnv(t)
	require.NoError(t, os.WriteFile(session, []byte(`{"lists":[{"id":"x"}]}`), 0o644))

	r := run(t, session, "lists")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, "invalid store")
}

func TestExport(t *testing.T) {
	session := cliEnv(t)
	require.Equal(t, 0, run(t, session, "lists", "new", "Groceries").code)
	out := filepath.Join(filepath.Dir(session), "groceries.pdf")

	r := run(t, session, "export", "1", out)
	require.Equal(t, 0, r.code, r.stderr)
	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF-")))
}
