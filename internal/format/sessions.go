package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"gourcelog/internal/store"
)

// WriteSessions writes discovered sessions to w in the requested format.
func WriteSessions(w io.Writer, sessions []store.Session, includeHeader bool, format string, width int) error {
	switch strings.ToLower(format) {
	case "", "table":
		return writeSessionsTable(w, sessions, includeHeader, width)
	case "plain":
		return writeSessionsPlain(w, sessions, includeHeader)
	case "json":
		return writeSessionsJSON(w, sessions)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func writeSessionsPlain(w io.Writer, sessions []store.Session, includeHeader bool) error {
	if includeHeader {
		if _, err := fmt.Fprintln(w, "started_at\tsession_id\tcwd\tevents"); err != nil {
			return err
		}
	}

	for _, sess := range sessions {
		line := fmt.Sprintf(
			"%s\t%s\t%s\t%d",
			sess.StartedAt.Format(time.RFC3339),
			sess.ID,
			sess.CWD,
			sess.Events,
		)
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func writeSessionsJSON(w io.Writer, sessions []store.Session) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(sessions)
}

func writeSessionsTable(w io.Writer, sessions []store.Session, includeHeader bool, width int) error {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	if width > 0 {
		tw.SetAllowedRowLength(width)
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignCenter},
		{Number: 2, Align: text.AlignLeft, AlignHeader: text.AlignCenter},
		{Number: 3, Align: text.AlignLeft, AlignHeader: text.AlignCenter, WidthMax: 60},
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignCenter},
	})

	if includeHeader {
		tw.AppendHeader(table.Row{"Started", "Session", "CWD", "Events"})
	}

	for _, sess := range sessions {
		tw.AppendRow(table.Row{
			sess.StartedAt.Format(time.RFC3339),
			sess.ID,
			sess.CWD,
			sess.Events,
		})
	}

	tw.Render()
	return nil
}
