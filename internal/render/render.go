package render

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"gourcelog/internal/event"
	"gourcelog/internal/format"
)

// Render stages events into a temp log file, then pipes
// `gource --output-ppm-stream -` into ffmpeg to produce output. Progress and
// the final size report go to progress (normally stderr).
func Render(events []event.Event, output string, cfg Config, progress io.Writer) error {
	tmp, err := os.CreateTemp("", "gourcelog-*.log")
	if err != nil {
		return fmt.Errorf("create temp log: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) //nolint:errcheck

	if err := format.WriteLog(tmp, events); err != nil {
		tmp.Close() //nolint:errcheck
		return fmt.Errorf("write temp log: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp log: %w", err)
	}

	fmt.Fprintf(progress, "Rendering %d events to %s...\n", len(events), output) //nolint:errcheck

	pr, pw, err := os.Pipe()
	if err != nil {
		return fmt.Errorf("create pipe: %w", err)
	}

	gourceCmd := exec.Command("gource", gourceArgs(cfg, tmpPath)...)
	gourceCmd.Stdout = pw

	var ffmpegStderr bytes.Buffer
	ffmpegCmd := exec.Command("ffmpeg", ffmpegArgs(cfg, output)...)
	ffmpegCmd.Stdin = pr
	ffmpegCmd.Stderr = &ffmpegStderr

	if err := gourceCmd.Start(); err != nil {
		pw.Close() //nolint:errcheck
		pr.Close() //nolint:errcheck
		return fmt.Errorf("start gource: %w", err)
	}
	if err := ffmpegCmd.Start(); err != nil {
		pw.Close() //nolint:errcheck
		pr.Close() //nolint:errcheck
		_ = gourceCmd.Wait()
		return fmt.Errorf("start ffmpeg: %w", err)
	}

	// Drop the parent's pipe ends so gource sees a broken pipe if ffmpeg
	// exits early; keeping them open would hang the pipeline.
	pw.Close() //nolint:errcheck
	pr.Close() //nolint:errcheck

	gourceErr := gourceCmd.Wait()
	if err := ffmpegCmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg: %w: %s", err, strings.TrimSpace(ffmpegStderr.String()))
	}
	if gourceErr != nil {
		return fmt.Errorf("gource: %w", gourceErr)
	}

	info, err := os.Stat(output)
	if err != nil {
		return fmt.Errorf("stat output: %w", err)
	}
	fmt.Fprintf(progress, "Done: %s (%.1f MB)\n", output, float64(info.Size())/1024/1024) //nolint:errcheck

	return nil
}

func gourceArgs(cfg Config, logPath string) []string {
	hideItems := "bloom,mouse,progress"
	if !cfg.ShowDate {
		hideItems += ",date"
	}

	return []string{
		"--log-format", "custom",
		"--seconds-per-day", formatFloat(cfg.SecondsPerDay),
		"--auto-skip-seconds", formatFloat(cfg.AutoSkipSeconds),
		"--file-idle-time", strconv.Itoa(cfg.FileIdleTime),
		"--max-file-lag", formatFloat(cfg.MaxFileLag),
		"--hide", hideItems,
		"--key",
		"--font-size", strconv.Itoa(cfg.FontSize),
		"--dir-name-depth", strconv.Itoa(cfg.DirNameDepth),
		"--filename-time", strconv.Itoa(cfg.FilenameTime),
		"--viewport", cfg.Viewport,
		"--output-framerate", strconv.Itoa(cfg.Framerate),
		"--output-ppm-stream", "-",
		logPath,
	}
}

func ffmpegArgs(cfg Config, output string) []string {
	return []string{
		"-y",
		"-f", "image2pipe",
		"-framerate", strconv.Itoa(cfg.Framerate),
		"-i", "-",
		"-c:v", "libx264",
		"-preset", cfg.Preset,
		"-crf", strconv.Itoa(cfg.CRF),
		"-pix_fmt", "yuv420p",
		"-movflags", "+faststart",
		output,
	}
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'g', -1, 64)
}
