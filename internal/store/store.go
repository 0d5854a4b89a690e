// Package store enumerates Claude Code session files under a projects root.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gourcelog/internal/claude"
	"gourcelog/internal/event"
)

// Session describes one discovered session file.
type Session struct {
	ID        string    `json:"session_id"`
	Path      string    `json:"path"`
	CWD       string    `json:"cwd"`
	StartedAt time.Time `json:"started_at"`
	Events    int       `json:"events"`
}

// ListOptions controls how sessions are enumerated.
type ListOptions struct {
	Root     string
	CWD      string
	ExactCWD bool
	Limit    int
}

// ListResult contains discovered sessions and non-fatal warnings.
type ListResult struct {
	Sessions []Session
	Warnings []error
}

// ListSessions enumerates session files under Root, newest first. Files that
// cannot be parsed are reported as warnings rather than aborting the walk.
func ListSessions(opts ListOptions) (ListResult, error) {
	if opts.Root == "" {
		return ListResult{}, errors.New("root directory is required")
	}

	var result ListResult

	err := filepath.WalkDir(opts.Root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			result.Warnings = append(result.Warnings, fmt.Errorf("walk %s: %w", path, walkErr))
			return nil
		}

		if d.IsDir() || !strings.HasSuffix(d.Name(), ".jsonl") {
			return nil
		}

		meta, err := claude.ReadSessionMeta(path)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Errorf("parse meta %s: %w", path, err))
			return nil
		}

		if opts.CWD != "" {
			if opts.ExactCWD {
				if meta.CWD != opts.CWD {
					return nil
				}
			} else if !strings.HasPrefix(meta.CWD, opts.CWD) {
				return nil
			}
		}

		events, err := event.ExtractFile(path, event.Options{})
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Errorf("extract events %s: %w", path, err))
			return nil
		}

		id := meta.ID
		if id == "" {
			id = strings.TrimSuffix(d.Name(), ".jsonl")
		}

		result.Sessions = append(result.Sessions, Session{
			ID:        id,
			Path:      path,
			CWD:       meta.CWD,
			StartedAt: meta.StartedAt,
			Events:    len(events),
		})
		return nil
	})
	if err != nil {
		return ListResult{}, fmt.Errorf("walk sessions root: %w", err)
	}

	sort.Slice(result.Sessions, func(i, j int) bool {
		return result.Sessions[i].StartedAt.After(result.Sessions[j].StartedAt)
	})

	if opts.Limit > 0 && len(result.Sessions) > opts.Limit {
		result.Sessions = result.Sessions[:opts.Limit]
	}

	return result, nil
}
