package claude

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

// ErrSessionMetaNotFound is returned when a JSONL file has no valid entries.
var ErrSessionMetaNotFound = errors.New("no valid entries found in session file")

type rawEntry struct {
	Type      string          `json:"type"`
	SessionID string          `json:"sessionId"`
	CWD       string          `json:"cwd"`
	Timestamp string          `json:"timestamp"`
	Message   json.RawMessage `json:"message"`
}

type messagePayload struct {
	Role    string          `json:"role"`
	Content json.RawMessage `json:"content"`
}

type contentBlock struct {
	Type  string          `json:"type"`
	Name  string          `json:"name"`
	Input json.RawMessage `json:"input"`
}

// IterateRecords walks through the session JSONL file and calls fn for each
// decoded record. Lines that are not valid JSON are skipped. A present but
// unparseable timestamp on an assistant entry aborts the iteration.
func IterateRecords(path string, fn func(Record) error) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open session file: %w", err)
	}
	defer file.Close() //nolint:errcheck

	scanner := newScanner(file)
	for scanner.Scan() {
		recBytes := scanner.Bytes()
		if len(recBytes) == 0 {
			continue
		}

		var entry rawEntry
		if err := json.Unmarshal(recBytes, &entry); err != nil {
			continue // Skip invalid entries
		}

		rec, err := buildRecord(entry)
		if err != nil {
			return err
		}

		if err := fn(rec); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan session: %w", err)
	}

	return nil
}

// DetectWorkDir returns the cwd of the first entry that has one, with a
// short-circuiting scan. It returns "" when no entry exposes a cwd.
func DetectWorkDir(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open session file: %w", err)
	}
	defer file.Close() //nolint:errcheck

	scanner := newScanner(file)
	for scanner.Scan() {
		recBytes := scanner.Bytes()
		if len(recBytes) == 0 {
			continue
		}

		var entry rawEntry
		if err := json.Unmarshal(recBytes, &entry); err != nil {
			continue
		}
		if entry.CWD != "" {
			return entry.CWD, nil
		}
	}

	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("scan session: %w", err)
	}

	return "", nil
}

// ReadSessionMeta loads metadata from the first timestamped entry in a
// session file.
func ReadSessionMeta(path string) (*SessionMeta, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open session file: %w", err)
	}
	defer file.Close() //nolint:errcheck

	scanner := newScanner(file)
	for scanner.Scan() {
		recBytes := scanner.Bytes()

		var entry rawEntry
		if err := json.Unmarshal(recBytes, &entry); err != nil {
			continue // Skip invalid entries
		}
		if entry.Timestamp == "" {
			continue
		}

		ts, err := parseTimestamp(entry.Timestamp)
		if err != nil {
			continue
		}

		return &SessionMeta{
			ID:        entry.SessionID,
			Path:      path,
			CWD:       entry.CWD,
			StartedAt: ts,
		}, nil
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan session: %w", err)
	}

	return nil, ErrSessionMetaNotFound
}

func buildRecord(entry rawEntry) (Record, error) {
	rec := Record{
		Kind:      EntryType(entry.Type),
		SessionID: entry.SessionID,
		CWD:       entry.CWD,
	}

	// Only assistant entries feed the timeline, so only their timestamps
	// are parsed; a malformed one means the source's time data cannot be
	// trusted and the run must stop.
	if rec.Kind != EntryTypeAssistant {
		return rec, nil
	}

	if entry.Timestamp != "" {
		ts, err := parseTimestamp(entry.Timestamp)
		if err != nil {
			return Record{}, fmt.Errorf("parse timestamp %q: %w", entry.Timestamp, err)
		}
		rec.Timestamp = ts
	}

	rec.ToolUses = decodeToolUses(entry.Message)
	return rec, nil
}

func decodeToolUses(raw json.RawMessage) []ToolUse {
	if len(raw) == 0 {
		return nil
	}

	var msg messagePayload
	if err := json.Unmarshal(raw, &msg); err != nil {
		return nil
	}

	var blocks []contentBlock
	if err := json.Unmarshal(msg.Content, &blocks); err != nil {
		return nil // Plain string content has no tool uses
	}

	var uses []ToolUse
	for _, block := range blocks {
		if block.Type != "tool_use" {
			continue
		}

		use := ToolUse{Name: block.Name}
		if len(block.Input) > 0 {
			// A malformed input object yields empty fields, which the
			// classifier drops.
			_ = json.Unmarshal(block.Input, &use.Input)
		}
		uses = append(uses, use)
	}

	return uses
}

func parseTimestamp(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("missing timestamp")
	}

	// Try RFC3339Nano first
	if ts, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return ts, nil
	}

	// Try RFC3339
	return time.Parse(time.RFC3339, value)
}

func newScanner(file *os.File) *bufio.Scanner {
	scanner := bufio.NewScanner(file)
	// Allow large payloads
	const maxCapacity = 8 * 1024 * 1024
	buf := make([]byte, 1024)
	scanner.Buffer(buf, maxCapacity)
	return scanner
}
