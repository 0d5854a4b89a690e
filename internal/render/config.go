// Package render drives the gource and ffmpeg processes that turn an event
// log into a video file.
package render

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds gource and ffmpeg tuning knobs. Values map 1:1 onto the
// corresponding command-line flags of the two tools.
type Config struct {
	SecondsPerDay   float64 `toml:"seconds_per_day"`
	AutoSkipSeconds float64 `toml:"auto_skip_seconds"`
	FileIdleTime    int     `toml:"file_idle_time"`
	MaxFileLag      float64 `toml:"max_file_lag"`
	FontSize        int     `toml:"font_size"`
	DirNameDepth    int     `toml:"dir_name_depth"`
	FilenameTime    int     `toml:"filename_time"`
	Viewport        string  `toml:"viewport"`
	Framerate       int     `toml:"framerate"`
	ShowDate        bool    `toml:"show_date"`
	Preset          string  `toml:"preset"`
	CRF             int     `toml:"crf"`
}

// DefaultConfig returns the render settings used when no config file exists.
func DefaultConfig() Config {
	return Config{
		SecondsPerDay:   0.1,
		AutoSkipSeconds: 0.3,
		FileIdleTime:    30,
		MaxFileLag:      0.05,
		FontSize:        10,
		DirNameDepth:    2,
		FilenameTime:    2,
		Viewport:        "1920x1080",
		Framerate:       60,
		Preset:          "medium",
		CRF:             18,
	}
}

// LoadConfig reads a TOML config file, layering it over the defaults.
// A missing file is not an error; the defaults are returned.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}
