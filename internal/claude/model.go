// Package claude provides types and a scanner for Claude Code session logs.
package claude

import "time"

// EntryType represents the top-level "type" field values in Claude Code JSONL logs.
type EntryType string

const (
	EntryTypeUser      EntryType = "user"
	EntryTypeAssistant EntryType = "assistant"
	EntryTypeSummary   EntryType = "summary"
)

// Record is one decoded line of a session JSONL file.
// Timestamp is zero when the entry carried no timestamp field.
type Record struct {
	Kind      EntryType
	Timestamp time.Time
	SessionID string
	CWD       string
	ToolUses  []ToolUse
}

// ToolUse is a tool_use content block from an assistant message.
type ToolUse struct {
	Name  string
	Input ToolInput
}

// ToolInput holds the tool argument fields the converter reads.
// Everything else in the input object is ignored.
type ToolInput struct {
	FilePath     string `json:"file_path"`
	NotebookPath string `json:"notebook_path"`
}

// SessionMeta represents metadata from the first valid entry of a session.
type SessionMeta struct {
	ID        string    // Session ID
	Path      string    // Full path to the JSONL file
	CWD       string    // Working directory
	StartedAt time.Time // First entry timestamp
}
