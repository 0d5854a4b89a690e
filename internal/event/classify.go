package event

import (
	"gourcelog/internal/claude"
)

// DefaultActor is used when neither an override nor a session ID is available.
const DefaultActor = "claude"

type pathAction struct {
	path   string
	action Action
}

type extractRule func(in claude.ToolInput) []pathAction

// toolRules maps tool names to path extraction rules. The table is closed:
// names not listed produce nothing, so unknown tools never break a run.
var toolRules = map[string]extractRule{
	"Read": func(in claude.ToolInput) []pathAction {
		return []pathAction{{in.FilePath, ActionAdded}}
	},
	"Edit": func(in claude.ToolInput) []pathAction {
		return []pathAction{{in.FilePath, ActionModified}}
	},
	"Write": func(in claude.ToolInput) []pathAction {
		return []pathAction{{in.FilePath, ActionAdded}}
	},
	"Glob": nil, // no single file path, skip
	"Grep": nil, // results come back in the tool result, skip for now
	"Bash": nil, // too noisy / no reliable file path
	"NotebookEdit": func(in claude.ToolInput) []pathAction {
		return []pathAction{{in.NotebookPath, ActionModified}}
	},
}

// Classify converts one record into raw events, before prefix stripping.
// Only assistant records with a timestamp contribute; actorOverride, when
// set, replaces the record's session ID.
func Classify(rec claude.Record, actorOverride string) []Event {
	if rec.Kind != claude.EntryTypeAssistant || rec.Timestamp.IsZero() {
		return nil
	}

	actor := actorOverride
	if actor == "" {
		actor = rec.SessionID
	}
	if actor == "" {
		actor = DefaultActor
	}

	unix := rec.Timestamp.Unix()

	var events []Event
	for _, use := range rec.ToolUses {
		rule := toolRules[use.Name]
		if rule == nil {
			continue
		}
		for _, pa := range rule(use.Input) {
			if pa.path == "" {
				continue
			}
			events = append(events, Event{
				Unix:   unix,
				Actor:  actor,
				Action: pa.action,
				Path:   pa.path,
			})
		}
	}

	return events
}
