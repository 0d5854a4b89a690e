package claude

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func fixturePath(parts ...string) string {
	elems := append([]string{"..", "..", "testdata"}, parts...)
	return filepath.Join(elems...)
}

func TestIterateRecords_WithTools(t *testing.T) {
	path := fixturePath("sessions", "sample-with-tools.jsonl")

	var records []Record
	err := IterateRecords(path, func(rec Record) error {
		records = append(records, rec)
		return nil
	})
	if err != nil {
		t.Fatalf("IterateRecords returned error: %v", err)
	}

	if len(records) != 6 {
		t.Fatalf("expected 6 records, got %d", len(records))
	}

	if records[0].Kind != EntryTypeUser {
		t.Fatalf("expected first record to be user, got %s", records[0].Kind)
	}
	if records[0].SessionID != "test-tools-session" {
		t.Fatalf("unexpected session id: %s", records[0].SessionID)
	}
	if records[0].CWD != "/Users/test/project" {
		t.Fatalf("unexpected cwd: %s", records[0].CWD)
	}

	readRec := records[1]
	if readRec.Kind != EntryTypeAssistant {
		t.Fatalf("expected assistant record, got %s", readRec.Kind)
	}
	if got := readRec.Timestamp.Format(time.RFC3339); got != "2025-01-05T10:00:02Z" {
		t.Fatalf("unexpected timestamp: %s", got)
	}
	if len(readRec.ToolUses) != 1 {
		t.Fatalf("expected 1 tool use, got %d", len(readRec.ToolUses))
	}
	if readRec.ToolUses[0].Name != "Read" {
		t.Fatalf("unexpected tool name: %s", readRec.ToolUses[0].Name)
	}
	if readRec.ToolUses[0].Input.FilePath != "/Users/test/project/README.md" {
		t.Fatalf("unexpected file path: %s", readRec.ToolUses[0].Input.FilePath)
	}

	// Explicit +00:00 offset parses the same as Z
	editRec := records[3]
	if got := editRec.Timestamp.Unix(); got != 1736071205 {
		t.Fatalf("unexpected unix timestamp: %d", got)
	}
	if len(editRec.ToolUses) != 2 {
		t.Fatalf("expected 2 tool uses, got %d", len(editRec.ToolUses))
	}

	notebookRec := records[4]
	if len(notebookRec.ToolUses) != 4 {
		t.Fatalf("expected 4 tool uses, got %d", len(notebookRec.ToolUses))
	}
	if notebookRec.ToolUses[3].Input.NotebookPath != "/Users/test/project/analysis.ipynb" {
		t.Fatalf("unexpected notebook path: %s", notebookRec.ToolUses[3].Input.NotebookPath)
	}
	// Fractional seconds truncate
	if got := notebookRec.Timestamp.Unix(); got != 1736071207 {
		t.Fatalf("unexpected unix timestamp: %d", got)
	}
}

func TestIterateRecords_SkipsInvalidLines(t *testing.T) {
	path := fixturePath("sessions", "sample-simple.jsonl")

	var records []Record
	err := IterateRecords(path, func(rec Record) error {
		records = append(records, rec)
		return nil
	})
	if err != nil {
		t.Fatalf("IterateRecords returned error: %v", err)
	}

	// The non-JSON line is skipped, the timestamp-less assistant entry is not
	if len(records) != 4 {
		t.Fatalf("expected 4 records, got %d", len(records))
	}
	if !records[2].Timestamp.IsZero() {
		t.Fatalf("expected zero timestamp for entry without one")
	}
	if len(records[2].ToolUses) != 1 {
		t.Fatalf("expected tool uses to decode even without a timestamp")
	}
}

func TestIterateRecords_BadTimestampIsFatal(t *testing.T) {
	path := fixturePath("invalid", "bad-timestamp.jsonl")

	err := IterateRecords(path, func(Record) error { return nil })
	if err == nil {
		t.Fatal("expected error for malformed timestamp")
	}
	if !strings.Contains(err.Error(), "parse timestamp") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDetectWorkDir(t *testing.T) {
	cwd, err := DetectWorkDir(fixturePath("sessions", "sample-with-tools.jsonl"))
	if err != nil {
		t.Fatalf("DetectWorkDir returned error: %v", err)
	}
	if cwd != "/Users/test/project" {
		t.Fatalf("unexpected cwd: %s", cwd)
	}
}

func TestDetectWorkDir_NoCWD(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "no-cwd.jsonl")
	content := `{"type":"user","sessionId":"s1","timestamp":"2025-01-05T10:00:00Z","message":{"role":"user","content":"hi"}}` + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cwd, err := DetectWorkDir(path)
	if err != nil {
		t.Fatalf("DetectWorkDir returned error: %v", err)
	}
	if cwd != "" {
		t.Fatalf("expected empty cwd, got %q", cwd)
	}
}

func TestReadSessionMeta(t *testing.T) {
	meta, err := ReadSessionMeta(fixturePath("sessions", "sample-with-tools.jsonl"))
	if err != nil {
		t.Fatalf("ReadSessionMeta returned error: %v", err)
	}

	if meta.ID != "test-tools-session" {
		t.Fatalf("unexpected session id: %s", meta.ID)
	}
	if meta.CWD != "/Users/test/project" {
		t.Fatalf("unexpected cwd: %s", meta.CWD)
	}
	if got := meta.StartedAt.Format(time.RFC3339); got != "2025-01-05T10:00:00Z" {
		t.Fatalf("unexpected start time: %s", got)
	}
}

func TestReadSessionMeta_Empty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.jsonl")
	if err := os.WriteFile(path, []byte("not json\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	if _, err := ReadSessionMeta(path); err != ErrSessionMetaNotFound {
		t.Fatalf("expected ErrSessionMetaNotFound, got %v", err)
	}
}
