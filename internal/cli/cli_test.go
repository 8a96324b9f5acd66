package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/quizimport/internal/paths"
	"github.com/mesh-intelligence/quizimport/internal/store"
	"github.com/mesh-intelligence/quizimport/pkg/types"
)

// workspace is a temp tree with config, source and database locations.
type workspace struct {
	configDir string
	sourceDir string
	database  string
}

func newWorkspace(t *testing.T) workspace {
	t.Helper()
	for _, env := range []string{
		paths.EnvConfigDir, paths.EnvSourceDir, paths.EnvDatabase,
		"QUIZIMPORT_DRIVER", "QUIZIMPORT_LOG_LEVEL",
	} {
		t.Setenv(env, "")
	}
	dir := t.TempDir()
	ws := workspace{
		configDir: filepath.Join(dir, "config"),
		sourceDir: filepath.Join(dir, "json"),
		database:  filepath.Join(dir, "quiz.sqlite"),
	}
	require.NoError(t, os.MkdirAll(ws.sourceDir, 0o755))
	return ws
}

func (ws workspace) addFile(t *testing.T, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(ws.sourceDir, name), []byte(content), 0o644))
}

// execute runs a fresh root command with the workspace flags prepended.
func (ws workspace) execute(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetIn(strings.NewReader(input))
	root.SetOut(&out)
	root.SetErr(&errOut)
	base := []string{
		"--config-dir", ws.configDir,
		"--source-dir", ws.sourceDir,
		"--database", ws.database,
	}
	root.SetArgs(append(append([]string{}, args...), base...))
	err := root.Execute()
	return out.String(), err
}

func (ws workspace) open(t *testing.T) *store.Backend {
	t.Helper()
	b := store.NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, Database: ws.database}))
	t.Cleanup(func() { b.Detach() })
	return b
}

func TestVersionCommand(t *testing.T) {
	ws := newWorkspace(t)
	out, err := ws.execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "quizimport v"+Version)
}

func TestInitCommand(t *testing.T) {
	ws := newWorkspace(t)

	out, err := ws.execute(t, "", "init", "--create-schema")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+filepath.Join(ws.configDir, "config.yaml"))
	assert.Contains(t, out, "Schema ready")

	data, err := os.ReadFile(filepath.Join(ws.configDir, "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "driver: sqlite")
	assert.Contains(t, string(data), "4CAF50")

	out, err = ws.execute(t, "", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Kept existing")

	n, err := ws.open(t).CountQuestions()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestImportCommand(t *testing.T) {
	ws := newWorkspace(t)
	_, err := ws.execute(t, "", "init", "--create-schema")
	require.NoError(t, err)

	ws.addFile(t, "algebra.json", `[{"content":"1+1","options":["1","2"],"answer":"2"},{"type":"multiple_choice","content":"evens","options":["1","2","4"],"answer":["2","4"]}]`)
	ws.addFile(t, "geometry.json", `[{"content":"sides of a square","options":["3","4"],"answer":"4"}]`)

	out, err := ws.execute(t, "y\nMath\ny\nBasics\ny\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Found 2 JSON files")
	assert.Contains(t, out, "Import finished: 2 of 2 files, 3 questions imported, 0 failed")

	got, err := ws.open(t).ListQuestions("Math", "Basics")
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestImportCommandUsesConfigFile(t *testing.T) {
	ws := newWorkspace(t)
	require.NoError(t, os.MkdirAll(ws.configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(ws.configDir, "config.yaml"), []byte(
		"category:\n  icon: \"🧮\"\n  description: \"%s drills\"\n",
	), 0o644))

	_, err := ws.execute(t, "", "init", "--create-schema")
	require.NoError(t, err)
	ws.addFile(t, "a.json", `[{"content":"q","answer":"a"}]`)

	_, err = ws.execute(t, "y\nMath\ny\nCh\ny\n")
	require.NoError(t, err)

	cat, err := ws.open(t).GetCategory("Math")
	require.NoError(t, err)
	assert.Equal(t, "🧮", cat.Icon)
	assert.Equal(t, types.DefaultCategoryColor, cat.Color)
	assert.Equal(t, "Math drills", cat.Description)
}

func TestImportCommandEarlyEndKeepsExitCode(t *testing.T) {
	ws := newWorkspace(t)
	out, err := ws.execute(t, "")
	require.NoError(t, err)
	assert.Contains(t, out, "No JSON files found")
}

func TestImportCommandRejectsUnknownDriver(t *testing.T) {
	ws := newWorkspace(t)
	_, err := ws.execute(t, "", "--driver", "mysql")
	assert.ErrorIs(t, err, types.ErrBackendUnknown)
}

func TestListCommand(t *testing.T) {
	ws := newWorkspace(t)
	ws.addFile(t, "b.json", "[]")
	ws.addFile(t, "a.json", "[{}]")

	out, err := ws.execute(t, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "2 JSON files")
	assert.Less(t, strings.Index(out, "1. a.json"), strings.Index(out, "2. b.json"))
}

func TestCheckCommand(t *testing.T) {
	ws := newWorkspace(t)
	ws.addFile(t, "good.json", `[{"content":"ok"},{"answer":{"x":1}}]`)

	out, err := ws.execute(t, "", "check")
	require.NoError(t, err)
	assert.Contains(t, out, "good.json: 2 questions, 1 ok, 1 failing")
	assert.Contains(t, out, "question 2:")

	ws.addFile(t, "object.json", `{"content":"not a list"}`)
	out, err = ws.execute(t, "", "check")
	assert.Error(t, err)
	assert.Contains(t, out, "object.json: rejected")
}

func TestLogLevelValidation(t *testing.T) {
	ws := newWorkspace(t)
	_, err := ws.execute(t, "", "version", "--log-level", "chatty")
	assert.Error(t, err)
}
