// Package main provides the gourcelog CLI for turning Claude Code session
// logs into Gource timelines.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"gourcelog/internal/event"
	"gourcelog/internal/format"
	"gourcelog/internal/render"
	"gourcelog/internal/store"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:     "gourcelog",
	Short:   "Convert Claude Code JSONL session logs to Gource custom log format",
	Version: version,
}

func init() {
	rootCmd.AddCommand(newConvertCmd())
	rootCmd.AddCommand(newRenderCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newListCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "gourcelog: %v\n", err)
		os.Exit(1)
	}
}

// extractFlags are the options shared by every command that reads sessions.
type extractFlags struct {
	user        string
	stripPrefix string
	autoStrip   bool
}

func (f *extractFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.user, "user", "u", "", "username for Gource (default: session ID)")
	flags.StringVarP(&f.stripPrefix, "strip-prefix", "s", "", "strip this prefix from file paths (e.g. /home/user/project)")
	flags.BoolVarP(&f.autoStrip, "auto-strip", "a", false, "auto-detect project root from the cwd field and strip it")
}

func (f *extractFlags) options() event.Options {
	return event.Options{
		Actor:       f.user,
		StripPrefix: f.stripPrefix,
		AutoStrip:   f.autoStrip,
	}
}

func newConvertCmd() *cobra.Command {
	var extract extractFlags

	cmd := &cobra.Command{
		Use:   "convert <session.jsonl>...",
		Short: "Print Gource custom log lines for piping to gource",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := event.ExtractAll(args, extract.options())
			if err != nil {
				return err
			}
			return format.WriteLog(cmd.OutOrStdout(), events)
		},
	}

	extract.register(cmd)
	return cmd
}

func newRenderCmd() *cobra.Command {
	var (
		extract       extractFlags
		output        string
		configPath    string
		secondsPerDay float64
		showDate      bool
	)

	cmd := &cobra.Command{
		Use:   "render -o <output.mp4> <session.jsonl>...",
		Short: "Render sessions to a video via gource and ffmpeg",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				return errors.New("--output is required")
			}

			if configPath == "" {
				configPath = defaultConfigPath()
			}
			cfg, err := render.LoadConfig(configPath)
			if err != nil {
				return err
			}

			// Flags win over the config file when given explicitly.
			if cmd.Flags().Changed("seconds-per-day") {
				cfg.SecondsPerDay = secondsPerDay
			}
			if cmd.Flags().Changed("show-date") {
				cfg.ShowDate = showDate
			}

			events, err := event.ExtractAll(args, extract.options())
			if err != nil {
				return err
			}
			if len(events) == 0 {
				return errors.New("no events extracted, nothing to render")
			}

			return render.Render(events, output, cfg, cmd.ErrOrStderr())
		},
	}

	extract.register(cmd)
	flags := cmd.Flags()
	flags.StringVarP(&output, "output", "o", "", "output video file (e.g. out.mp4)")
	flags.StringVar(&configPath, "config", "", "render settings file (default: ~/.config/gourcelog/config.toml)")
	flags.Float64Var(&secondsPerDay, "seconds-per-day", 0.1, "Gource playback speed")
	flags.BoolVar(&showDate, "show-date", false, "show the date overlay (hidden by default)")

	return cmd
}

func newStatsCmd() *cobra.Command {
	var (
		extract    extractFlags
		formatFlag string
		noHeader   bool
	)

	cmd := &cobra.Command{
		Use:   "stats <session.jsonl>...",
		Short: "Summarize per-path activity across sessions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := event.ExtractAll(args, extract.options())
			if err != nil {
				return err
			}

			stats := format.CollectStats(events)
			out := cmd.OutOrStdout()
			return format.WriteStats(out, stats, !noHeader, strings.ToLower(formatFlag), tableWidth(out))
		},
	}

	extract.register(cmd)
	flags := cmd.Flags()
	flags.StringVar(&formatFlag, "format", "table", "output format: table, plain, or json")
	flags.BoolVar(&noHeader, "no-header", false, "omit header row")

	return cmd
}

func newListCmd() *cobra.Command {
	var (
		cwd         string
		all         bool
		limit       int
		formatFlag  string
		noHeader    bool
		sessionsDir string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List session files under the Claude projects root",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if all && cwd != "" {
				return errors.New("--cwd cannot be used with --all")
			}

			if sessionsDir == "" {
				sessionsDir = defaultSessionsDir()
			}

			opts := store.ListOptions{Root: sessionsDir, Limit: limit}
			if !all {
				if cwd != "" {
					opts.CWD = cwd
				} else {
					wd, err := os.Getwd()
					if err != nil {
						return fmt.Errorf("determine current directory: %w", err)
					}
					opts.CWD = wd
				}
				opts.ExactCWD = true
			}

			result, err := store.ListSessions(opts)
			if err != nil {
				return err
			}

			errs := cmd.ErrOrStderr()
			for _, warn := range result.Warnings {
				fmt.Fprintf(errs, "warning: %v\n", warn) //nolint:errcheck
			}

			out := cmd.OutOrStdout()
			return format.WriteSessions(out, result.Sessions, !noHeader, strings.ToLower(formatFlag), tableWidth(out))
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cwd, "cwd", "", "filter sessions whose cwd equals the provided path")
	flags.BoolVar(&all, "all", false, "include sessions from all directories")
	flags.IntVar(&limit, "limit", 0, "limit number of sessions returned (0 means no limit)")
	flags.StringVar(&formatFlag, "format", "table", "output format: table, plain, or json")
	flags.BoolVar(&noHeader, "no-header", false, "omit header row")
	flags.StringVar(&sessionsDir, "sessions-dir", "", "override the sessions directory (default: ~/.claude/projects)")

	return cmd
}

// defaultSessionsDir returns the Claude Code projects root.
func defaultSessionsDir() string {
	if dir := os.Getenv("GOURCELOG_SESSIONS_DIR"); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".claude", "projects")
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "gourcelog", "config.toml")
}

// tableWidth returns the terminal width when out is a TTY, 0 otherwise.
func tableWidth(out io.Writer) int {
	file, ok := out.(*os.File)
	if !ok || !isTerminal(file.Fd()) {
		return 0
	}
	if w, _, err := term.GetSize(int(file.Fd())); err == nil && w > 0 {
		return w
	}
	return 0
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
