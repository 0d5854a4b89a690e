package store

import (
	"path/filepath"
	"testing"
)

func TestListSessions(t *testing.T) {
	root := filepath.Join("..", "..", "testdata", "sessions")

	res, err := ListSessions(ListOptions{Root: root})
	if err != nil {
		t.Fatalf("ListSessions returned error: %v", err)
	}

	if len(res.Sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(res.Sessions))
	}
	if len(res.Warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", res.Warnings)
	}

	// Newest first
	if res.Sessions[0].ID != "test-tools-session" {
		t.Fatalf("unexpected first session: %s", res.Sessions[0].ID)
	}
	if res.Sessions[0].Events != 4 {
		t.Fatalf("unexpected event count: %d", res.Sessions[0].Events)
	}
	if res.Sessions[1].ID != "test-simple-session" {
		t.Fatalf("unexpected second session: %s", res.Sessions[1].ID)
	}
	if res.Sessions[1].Events != 1 {
		t.Fatalf("unexpected event count: %d", res.Sessions[1].Events)
	}
}

func TestListSessions_CWDFilter(t *testing.T) {
	root := filepath.Join("..", "..", "testdata", "sessions")

	res, err := ListSessions(ListOptions{Root: root, CWD: "/Users/test/project", ExactCWD: true})
	if err != nil {
		t.Fatalf("ListSessions returned error: %v", err)
	}

	if len(res.Sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(res.Sessions))
	}
	if res.Sessions[0].CWD != "/Users/test/project" {
		t.Fatalf("unexpected cwd: %s", res.Sessions[0].CWD)
	}
}

func TestListSessions_Limit(t *testing.T) {
	root := filepath.Join("..", "..", "testdata", "sessions")

	res, err := ListSessions(ListOptions{Root: root, Limit: 1})
	if err != nil {
		t.Fatalf("ListSessions returned error: %v", err)
	}
	if len(res.Sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(res.Sessions))
	}
}

func TestListSessions_WarnsOnBadFiles(t *testing.T) {
	root := filepath.Join("..", "..", "testdata", "invalid")

	res, err := ListSessions(ListOptions{Root: root})
	if err != nil {
		t.Fatalf("ListSessions returned error: %v", err)
	}
	if len(res.Sessions) != 0 {
		t.Fatalf("expected no sessions, got %d", len(res.Sessions))
	}
	if len(res.Warnings) == 0 {
		t.Fatal("expected a warning for the unparseable session")
	}
}

func TestListSessions_MissingRoot(t *testing.T) {
	if _, err := ListSessions(ListOptions{}); err == nil {
		t.Fatal("expected error for missing root")
	}
}
