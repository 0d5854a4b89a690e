// Package event turns Claude Code session records into Gource action events.
package event

// Action classifies what happened to a path, using the Gource custom log
// action letters.
type Action string

const (
	ActionAdded    Action = "A"
	ActionModified Action = "M"
	// ActionDeleted is reserved by the log format; the classifier never
	// produces it.
	ActionDeleted Action = "D"
)

// Event is one entry of the Gource custom log: who touched which path when.
type Event struct {
	Unix   int64
	Actor  string
	Action Action
	Path   string
}
