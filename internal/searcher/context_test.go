package searcher

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFixture(t *testing.T, dir, relPath, content string) {
	t.Helper()
	full := filepath.Join(dir, relPath)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestExtractContext_FindsMatchWithWindow(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "src/event_store.rs", "line1\npub struct EventStore {\nline3\nline4\n")

	ctx := ExtractContext(dir, "src/event_store.rs", "EventStore", 1, 0)
	if len(ctx.Lines) == 0 {
		t.Fatal("expected matching lines")
	}
	found := false
	for _, l := range ctx.Lines {
		if l.Text == "pub struct EventStore {" {
			found = true
		}
	}
	if !found {
		t.Error("expected to find the struct definition line")
	}
	for i := 1; i < len(ctx.Lines); i++ {
		if ctx.Lines[i-1].LineNumber >= ctx.Lines[i].LineNumber {
			t.Error("lines should be strictly increasing")
		}
	}
}

func TestExtractContext_ZeroWindowExactMatchOnly(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "src/event_store.rs", "before\nEventStore here\nafter\n")

	ctx := ExtractContext(dir, "src/event_store.rs", "EventStore", 0, 0)
	for _, l := range ctx.Lines {
		if !strings.Contains(strings.ToLower(l.Text), "eventstore") {
			t.Errorf("line %d %q should contain the term", l.LineNumber, l.Text)
		}
	}
}

func TestExtractContext_MissingFileReturnsEmpty(t *testing.T) {
	dir := t.TempDir()
	ctx := ExtractContext(dir, "nonexistent.rs", "anything", 1, 0)
	if len(ctx.Lines) != 0 {
		t.Error("missing file should yield no lines")
	}
}

func TestExtractContext_CapsAtMaxLines(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "f.go", "foo\nfoo\nfoo\nfoo\nfoo\n")

	ctx := ExtractContext(dir, "f.go", "foo", 0, 2)
	if len(ctx.Lines) != 2 {
		t.Fatalf("Lines = %d, want 2", len(ctx.Lines))
	}
	if ctx.TruncatedCount != 3 {
		t.Fatalf("TruncatedCount = %d, want 3", ctx.TruncatedCount)
	}
}
