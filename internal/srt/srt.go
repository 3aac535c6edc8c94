// Package srt renders homily segments as SubRip caption files. Every
// timestamp can be shifted by a fixed offset to compensate for the intro
// video prepended ahead of the homily footage.
package srt

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/mylatinmass/audio-youtube-wf/internal/transcript"
)

// Write emits the segments in SRT form: sequential index, a
// "HH:MM:SS,mmm --> HH:MM:SS,mmm" line, the caption text, and a blank line
// between entries. shift seconds are added to every timestamp.
func Write(w io.Writer, segs []transcript.Segment, shift float64) error {
	for i, seg := range segs {
		_, err := fmt.Fprintf(w, "%d\n%s --> %s\n%s\n\n",
			i+1,
			Timestamp(seg.Start+shift),
			Timestamp(seg.End+shift),
			strings.TrimSpace(seg.Text),
		)
		if err != nil {
			return fmt.Errorf("write caption %d: %w", i+1, err)
		}
	}
	return nil
}

// WriteFile writes the captions to path.
func WriteFile(path string, segs []transcript.Segment, shift float64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create srt file: %w", err)
	}
	if err := Write(f, segs, shift); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Timestamp formats seconds as HH:MM:SS,mmm.
func Timestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	totalMs := int(math.Round(seconds * 1000))
	ms := totalMs % 1000
	whole := totalMs / 1000
	h := whole / 3600
	m := (whole % 3600) / 60
	s := whole % 60
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}
