package format

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"gourcelog/internal/event"
)

// PathStat aggregates activity for one path across a run.
type PathStat struct {
	Path     string `json:"path"`
	Events   int    `json:"events"`
	Added    int    `json:"added"`
	Modified int    `json:"modified"`
	First    int64  `json:"first"`
	Last     int64  `json:"last"`
}

// CollectStats folds events into per-path stats, most active path first.
func CollectStats(events []event.Event) []PathStat {
	byPath := make(map[string]*PathStat)
	for _, evt := range events {
		stat, ok := byPath[evt.Path]
		if !ok {
			stat = &PathStat{Path: evt.Path, First: evt.Unix, Last: evt.Unix}
			byPath[evt.Path] = stat
		}

		stat.Events++
		switch evt.Action {
		case event.ActionAdded:
			stat.Added++
		case event.ActionModified:
			stat.Modified++
		}
		if evt.Unix < stat.First {
			stat.First = evt.Unix
		}
		if evt.Unix > stat.Last {
			stat.Last = evt.Unix
		}
	}

	stats := make([]PathStat, 0, len(byPath))
	for _, stat := range byPath {
		stats = append(stats, *stat)
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Events != stats[j].Events {
			return stats[i].Events > stats[j].Events
		}
		return stats[i].Path < stats[j].Path
	})

	return stats
}

// WriteStats writes per-path stats to w in the requested format. width, when
// positive, caps the rendered table width (ignored by other formats).
func WriteStats(w io.Writer, stats []PathStat, includeHeader bool, format string, width int) error {
	switch strings.ToLower(format) {
	case "", "table":
		return writeStatsTable(w, stats, includeHeader, width)
	case "plain":
		return writeStatsPlain(w, stats, includeHeader)
	case "json":
		return writeStatsJSON(w, stats)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func writeStatsPlain(w io.Writer, stats []PathStat, includeHeader bool) error {
	if includeHeader {
		if _, err := fmt.Fprintln(w, "path\tevents\tadded\tmodified\tfirst\tlast"); err != nil {
			return err
		}
	}

	for _, stat := range stats {
		line := fmt.Sprintf(
			"%s\t%d\t%d\t%d\t%s\t%s",
			stat.Path,
			stat.Events,
			stat.Added,
			stat.Modified,
			formatUnix(stat.First),
			formatUnix(stat.Last),
		)
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func writeStatsJSON(w io.Writer, stats []PathStat) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(stats)
}

func writeStatsTable(w io.Writer, stats []PathStat, includeHeader bool, width int) error {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	if width > 0 {
		tw.SetAllowedRowLength(width)
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignCenter, WidthMax: 80},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignCenter},
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignCenter},
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignCenter},
		{Number: 5, Align: text.AlignLeft, AlignHeader: text.AlignCenter},
		{Number: 6, Align: text.AlignLeft, AlignHeader: text.AlignCenter},
	})

	if includeHeader {
		tw.AppendHeader(table.Row{"Path", "Events", "A", "M", "First", "Last"})
	}

	for _, stat := range stats {
		tw.AppendRow(table.Row{
			stat.Path,
			stat.Events,
			stat.Added,
			stat.Modified,
			formatUnix(stat.First),
			formatUnix(stat.Last),
		})
	}

	tw.Render()
	return nil
}

func formatUnix(unix int64) string {
	return time.Unix(unix, 0).UTC().Format(time.RFC3339)
}
