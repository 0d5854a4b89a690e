package event

import (
	"sort"
	"strings"

	"gourcelog/internal/claude"
)

// Options configures one extraction run. The zero value keeps per-record
// session IDs and leaves paths untouched.
type Options struct {
	Actor       string // overrides every event's actor when set
	StripPrefix string // literal prefix removed from paths in every source
	AutoStrip   bool   // detect a per-source prefix from the cwd field
}

// ExtractFile reads one session file and returns its events in record order.
func ExtractFile(path string, opts Options) ([]Event, error) {
	prefix := opts.StripPrefix
	if opts.AutoStrip && prefix == "" {
		cwd, err := claude.DetectWorkDir(path)
		if err != nil {
			return nil, err
		}
		prefix = strings.TrimRight(cwd, "/")
	}

	var events []Event
	err := claude.IterateRecords(path, func(rec claude.Record) error {
		for _, evt := range Classify(rec, opts.Actor) {
			evt.Path = StripPrefix(evt.Path, prefix)
			if evt.Path == "" {
				continue
			}
			events = append(events, evt)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return events, nil
}

// ExtractAll merges events from all sources and sorts them by timestamp.
// The sort is stable so same-second events keep their extraction order,
// which Gource relies on for chronological playback.
func ExtractAll(paths []string, opts Options) ([]Event, error) {
	var events []Event
	for _, path := range paths {
		fileEvents, err := ExtractFile(path, opts)
		if err != nil {
			return nil, err
		}
		events = append(events, fileEvents...)
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Unix < events[j].Unix
	})

	return events, nil
}

// StripPrefix removes prefix from path along with any leading separator left
// behind. Paths that do not start with the prefix pass through unchanged.
func StripPrefix(path, prefix string) string {
	if prefix == "" || !strings.HasPrefix(path, prefix) {
		return path
	}
	return strings.TrimLeft(path[len(prefix):], "/")
}
