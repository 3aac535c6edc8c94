// Package audio clips and probes audio files by shelling out to ffmpeg and
// ffprobe.
package audio

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mylatinmass/audio-youtube-wf/pkg/executor"
)

type Clipper struct {
	exec executor.Executor
}

func NewClipper(exec executor.Executor) *Clipper {
	return &Clipper{exec: exec}
}

// Clip cuts [start, end) seconds out of input into output.
//
//   - end == 0 clips to the end of the file
//   - end < 0 drops the last |end| seconds instead
//   - padSilence > 0 appends that many seconds of silence after the clip
func (c *Clipper) Clip(ctx context.Context, input string, start, end float64, output string, padSilence float64) error {
	if end < 0 {
		total, err := c.Duration(ctx, input)
		if err != nil {
			return fmt.Errorf("probe duration for tail trim: %w", err)
		}
		end = total + end
		if end < start {
			end = start
		}
	}

	args := []string{"-y", "-i", input, "-ss", formatSeconds(start)}
	if end > 0 {
		args = append(args, "-to", formatSeconds(end))
	}
	if padSilence > 0 {
		args = append(args, "-af", fmt.Sprintf("apad=pad_dur=%s", formatSeconds(padSilence)))
	}
	args = append(args, "-c:a", "libmp3lame", output)

	if _, err := c.exec.Execute(ctx, "ffmpeg", args...); err != nil {
		return fmt.Errorf("ffmpeg clip: %w", err)
	}
	return nil
}

// Duration returns the length of the audio file in seconds via ffprobe.
func (c *Clipper) Duration(ctx context.Context, path string) (float64, error) {
	out, err := c.exec.Execute(ctx, "ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	if err != nil {
		return 0, fmt.Errorf("ffprobe duration: %w", err)
	}

	d, err := strconv.ParseFloat(strings.TrimSpace(out), 64)
	if err != nil {
		return 0, fmt.Errorf("parse ffprobe duration %q: %w", strings.TrimSpace(out), err)
	}
	return d, nil
}

func formatSeconds(s float64) string {
	return strconv.FormatFloat(s, 'f', 3, 64)
}
