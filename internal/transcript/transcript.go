package transcript

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// Word is the smallest timestamped unit from the speech-to-text engine.
// The raw text may carry punctuation and case; normalization happens later.
type Word struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Segment is one contiguous unit of speech. Word timestamps usually fall
// inside [Start, End], but transcription engines violate that slightly, so
// nothing downstream assumes strict containment.
type Segment struct {
	ID    int     `json:"id"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
	Words []Word  `json:"words,omitempty"`
}

// Transcript is the full speech-to-text result, shaped like Whisper's
// verbose_json output. Segments is the primary structure; Words is accepted
// as a fallback when a provider emits only a flat word list.
type Transcript struct {
	Text     string    `json:"text"`
	Language string    `json:"language,omitempty"`
	Segments []Segment `json:"segments"`
	Words    []Word    `json:"words,omitempty"`
}

// AllWords returns every word in transcript order: segment words when
// segments are present, otherwise the top-level word list.
func (t *Transcript) AllWords() []Word {
	if len(t.Segments) == 0 {
		return t.Words
	}
	var words []Word
	for _, seg := range t.Segments {
		words = append(words, seg.Words...)
	}
	return words
}

// EndTime returns the end timestamp of the last segment (or last word when
// segments are absent). Returns 0 for an empty transcript.
func (t *Transcript) EndTime() float64 {
	if n := len(t.Segments); n > 0 {
		return t.Segments[n-1].End
	}
	if n := len(t.Words); n > 0 {
		return t.Words[n-1].End
	}
	return 0
}

// Load reads a transcript JSON file.
func Load(path string) (*Transcript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}
	var t Transcript
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse transcript JSON: %w", err)
	}
	return &t, nil
}

// Save writes the transcript as indented JSON.
func Save(t *Transcript, path string) error {
	data, err := json.MarshalIndent(t, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal transcript: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}
	return nil
}

var timedLineRe = regexp.MustCompile(`\[(\d+):(\d+):(\d+)\s*-\s*(\d+):(\d+):(\d+)\]\s*(.*)`)

// ParseTimedText reads "[HH:MM:SS - HH:MM:SS] text" lines and builds a
// transcript with second-granularity segments and no word timestamps.
// Lines that don't match the pattern are skipped.
func ParseTimedText(r io.Reader) (*Transcript, error) {
	t := &Transcript{}
	var parts []string

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	id := 0
	for scanner.Scan() {
		m := timedLineRe.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}
		start := hms(m[1], m[2], m[3])
		end := hms(m[4], m[5], m[6])
		text := strings.TrimSpace(m[7])
		t.Segments = append(t.Segments, Segment{
			ID:    id,
			Start: start,
			End:   end,
			Text:  text,
		})
		parts = append(parts, text)
		id++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan timed text: %w", err)
	}
	t.Text = strings.Join(parts, "\n")
	return t, nil
}

// FormatTimedText renders the transcript in the "[HH:MM:SS - HH:MM:SS] text"
// form used for the human-readable transcription artifact.
func FormatTimedText(t *Transcript) string {
	var b strings.Builder
	for _, seg := range t.Segments {
		fmt.Fprintf(&b, "[%s - %s] %s\n", clock(seg.Start), clock(seg.End), strings.TrimSpace(seg.Text))
	}
	return b.String()
}

func hms(h, m, s string) float64 {
	hi, _ := strconv.Atoi(h)
	mi, _ := strconv.Atoi(m)
	si, _ := strconv.Atoi(s)
	return float64(hi*3600 + mi*60 + si)
}

func clock(seconds float64) string {
	s := int(seconds)
	h := s / 3600
	m := (s % 3600) / 60
	return fmt.Sprintf("%d:%02d:%02d", h, m, s%60)
}
