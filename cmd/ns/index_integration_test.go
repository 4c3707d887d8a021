package main_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildBinary compiles the ns binary and returns its path.
func buildBinary(t *testing.T) string {
	t.Helper()
	binName := "ns"
	if runtime.GOOS == "windows" {
		binName += ".exe"
	}
	bin := filepath.Join(t.TempDir(), binName)
	cmd := exec.Command("go", "build", "-o", bin, ".")
	cmd.Dir = filepath.Join(projectRoot(t), "cmd", "ns")
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "build failed: %s", string(out))
	return bin
}

func projectRoot(t *testing.T) string {
	t.Helper()
	_, filename, _, ok := runtime.Caller(0)
	require.True(t, ok, "runtime.Caller failed")
	dir := filepath.Dir(filename)
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		require.NotEqual(t, parent, dir, "could not find project root")
		dir = parent
	}
}

// createFixture builds a small repository with a couple of Go files and a
// .git directory, so `ns index` has something realistic to walk.
func createFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "eventstore.go"), []byte(`package store

// EventStore appends and replays domain events.
type EventStore struct {
	events []Event
}

type Event struct {
	Name string
}

func (s *EventStore) Append(e Event) {
	s.events = append(s.events, e)
}

func (s *EventStore) Replay() []Event {
	return s.events
}
`), 0o644))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.go"), []byte(`package main

import "fmt"

func main() {
	fmt.Println("hello")
}
`), 0o644))

	return dir
}

func TestIndex_CreatesIndex(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	bin := buildBinary(t)
	fixture := createFixture(t)

	cmd := exec.Command(bin, "index")
	cmd.Dir = fixture
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "index failed: %s", string(out))
	assert.Contains(t, string(out), "Indexed")

	_, err = os.Stat(filepath.Join(fixture, ".ns", "meta.json"))
	require.NoError(t, err, ".ns/meta.json should exist")
}

func TestIndex_SecondRunIsIncremental(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	bin := buildBinary(t)
	fixture := createFixture(t)

	cmd := exec.Command(bin, "index")
	cmd.Dir = fixture
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "first index failed: %s", string(out))

	require.NoError(t, os.WriteFile(filepath.Join(fixture, "extra.go"), []byte(`package store

func Extra() int { return 42 }
`), 0o644))

	cmd = exec.Command(bin, "index")
	cmd.Dir = fixture
	out, err = cmd.CombinedOutput()
	require.NoError(t, err, "second index failed: %s", string(out))
	assert.Contains(t, string(out), "Updated index")
	assert.Contains(t, string(out), "1 added")
}

func TestIndex_ForceRebuilds(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	bin := buildBinary(t)
	fixture := createFixture(t)

	cmd := exec.Command(bin, "index")
	cmd.Dir = fixture
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "first index failed: %s", string(out))

	cmd = exec.Command(bin, "index", "--force")
	cmd.Dir = fixture
	out, err = cmd.CombinedOutput()
	require.NoError(t, err, "force index failed: %s", string(out))
	assert.Contains(t, string(out), "Indexed")
}

func TestSearch_WithoutIndexFails(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	bin := buildBinary(t)
	fixture := createFixture(t)

	cmd := exec.Command(bin, "search", "EventStore")
	cmd.Dir = fixture
	out, err := cmd.CombinedOutput()
	require.Error(t, err)
	assert.Contains(t, string(out), "no index found")
}

func TestSearch_FindsSymbolMatch(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	bin := buildBinary(t)
	fixture := createFixture(t)

	cmd := exec.Command(bin, "index")
	cmd.Dir = fixture
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "index failed: %s", string(out))

	cmd = exec.Command(bin, "search", "EventStore")
	cmd.Dir = fixture
	out, err = cmd.CombinedOutput()
	require.NoError(t, err, "search failed: %s", string(out))
	assert.Contains(t, string(out), "eventstore.go")
}

func TestSearch_ZeroResultsExitsNonZero(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	bin := buildBinary(t)
	fixture := createFixture(t)

	cmd := exec.Command(bin, "index")
	cmd.Dir = fixture
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "index failed: %s", string(out))

	cmd = exec.Command(bin, "search", "xyzzy_no_such_term_anywhere")
	cmd.Dir = fixture
	out, err = cmd.CombinedOutput()
	require.Error(t, err, "expected nonzero exit for zero results, got output: %s", string(out))
	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.ExitCode())
	assert.Contains(t, string(out), "0 results")
}

func TestSearch_FilesOnly(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	bin := buildBinary(t)
	fixture := createFixture(t)

	cmd := exec.Command(bin, "index")
	cmd.Dir = fixture
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "index failed: %s", string(out))

	cmd = exec.Command(bin, "search", "-l", "EventStore")
	cmd.Dir = fixture
	out, err = cmd.CombinedOutput()
	require.NoError(t, err, "search -l failed: %s", string(out))
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 1)
	assert.Equal(t, "eventstore.go", lines[0])
}

func TestSearch_JSONMode(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	bin := buildBinary(t)
	fixture := createFixture(t)

	cmd := exec.Command(bin, "index")
	cmd.Dir = fixture
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "index failed: %s", string(out))

	cmd = exec.Command(bin, "search", "--json", "EventStore")
	cmd.Dir = fixture
	out, err = cmd.CombinedOutput()
	require.NoError(t, err, "search --json failed: %s", string(out))
	assert.Contains(t, string(out), "\"path\"")
	assert.Contains(t, string(out), "\"matched_symbols\"")
	assert.Contains(t, string(out), "\"ranking_factors\"")
	assert.Contains(t, string(out), "\"symbol_boost\": \"3x\"")
}

func TestStatus_ReportsIndexedFileCount(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	bin := buildBinary(t)
	fixture := createFixture(t)

	cmd := exec.Command(bin, "index")
	cmd.Dir = fixture
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "index failed: %s", string(out))

	cmd = exec.Command(bin, "status")
	cmd.Dir = fixture
	out, err = cmd.CombinedOutput()
	require.NoError(t, err, "status failed: %s", string(out))
	assert.Contains(t, string(out), "files indexed  : 2")
}

func TestHooksInstall_IsAStub(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	bin := buildBinary(t)
	fixture := createFixture(t)

	cmd := exec.Command(bin, "hooks", "install")
	cmd.Dir = fixture
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "hooks install failed: %s", string(out))
	assert.Contains(t, string(out), "not yet implemented")
}
