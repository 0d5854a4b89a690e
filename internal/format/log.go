// Package format renders events, activity stats, and session listings.
package format

import (
	"fmt"
	"io"

	"gourcelog/internal/event"
)

// WriteLog writes events in the Gource custom log format, one
// "timestamp|actor|action|path" line per event. Embedded separators are not
// escaped; that matches what Gource expects.
func WriteLog(w io.Writer, events []event.Event) error {
	for _, evt := range events {
		if _, err := fmt.Fprintf(w, "%d|%s|%s|%s\n", evt.Unix, evt.Actor, evt.Action, evt.Path); err != nil {
			return err
		}
	}
	return nil
}
