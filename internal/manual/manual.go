// Package manual collects homily boundaries from the operator when the
// marker search cannot locate them in the transcript.
package manual

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mylatinmass/audio-youtube-wf/internal/homily"
	"github.com/mylatinmass/audio-youtube-wf/internal/logger"
	"github.com/mylatinmass/audio-youtube-wf/internal/transcript"
)

// DurationFunc reports the length of the source audio in seconds. It is
// only called when neither the operator nor the transcript supplies an
// end time.
type DurationFunc func(ctx context.Context) (float64, error)

type Prompter struct {
	in     *bufio.Scanner
	out    io.Writer
	logger logger.Logger
}

func NewPrompter(in io.Reader, out io.Writer, log logger.Logger) *Prompter {
	return &Prompter{
		in:     bufio.NewScanner(in),
		out:    out,
		logger: log,
	}
}

// Resolve asks the operator for start and end times and returns them as a
// boundary. An empty end falls back to the last transcript timestamp, then
// to the audio duration. Invalid entries are re-prompted.
func (p *Prompter) Resolve(ctx context.Context, t *transcript.Transcript, duration DurationFunc) (homily.Boundary, error) {
	fmt.Fprintln(p.out, "Could not locate the homily section in the transcript.")
	fmt.Fprintln(p.out, "Enter the start and end times manually.")

	var start float64
	for {
		line, err := p.readLine("Enter START time (e.g., 123 or 2:03): ")
		if err != nil {
			return homily.Boundary{}, err
		}
		start, err = ParseClock(line)
		if err == nil {
			break
		}
		fmt.Fprintln(p.out, "Invalid start time. Try again.")
	}

	for {
		line, err := p.readLine("Enter END time (or press Enter for end of file): ")
		if err != nil {
			return homily.Boundary{}, err
		}
		if line == "" {
			end, err := p.fallbackEnd(ctx, t, duration)
			if err != nil {
				return homily.Boundary{}, err
			}
			return homily.Boundary{First: start, Last: end}, nil
		}
		end, err := ParseClock(line)
		if err != nil {
			fmt.Fprintln(p.out, "Invalid end time. Try again.")
			continue
		}
		if end <= start {
			fmt.Fprintln(p.out, "End time must be after the start time. Try again.")
			continue
		}
		return homily.Boundary{First: start, Last: end}, nil
	}
}

func (p *Prompter) readLine(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", fmt.Errorf("input closed")
	}
	return strings.TrimSpace(p.in.Text()), nil
}

func (p *Prompter) fallbackEnd(ctx context.Context, t *transcript.Transcript, duration DurationFunc) (float64, error) {
	if end := t.EndTime(); end > 0 {
		p.logger.Debug(ctx, "Using transcript end %.3fs as homily end", end)
		return end, nil
	}
	if duration == nil {
		return 0, fmt.Errorf("transcript has no end time and no audio duration source")
	}
	end, err := duration(ctx)
	if err != nil {
		return 0, fmt.Errorf("probe audio duration: %w", err)
	}
	p.logger.Debug(ctx, "Using audio duration %.3fs as homily end", end)
	return end, nil
}

// ParseClock converts "mm:ss" or plain seconds to float seconds.
func ParseClock(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty time")
	}

	if mins, secs, ok := strings.Cut(s, ":"); ok {
		m, err := strconv.ParseFloat(mins, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid minutes %q", mins)
		}
		sec, err := strconv.ParseFloat(secs, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid seconds %q", secs)
		}
		if m < 0 || sec < 0 {
			return 0, fmt.Errorf("negative time %q", s)
		}
		return m*60 + sec, nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	if v < 0 {
		return 0, fmt.Errorf("negative time %q", s)
	}
	return v, nil
}

// CleanPath strips the whitespace and quotes a terminal adds when a file
// is dragged into the prompt.
func CleanPath(path string) string {
	return strings.Trim(strings.TrimSpace(path), `"'`)
}
