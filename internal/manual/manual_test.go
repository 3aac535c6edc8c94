package manual

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/mylatinmass/audio-youtube-wf/internal/logger"
	"github.com/mylatinmass/audio-youtube-wf/internal/transcript"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"123", 123, false},
		{"2:03", 123, false},
		{"0:30", 30, false},
		{"10:00.5", 600.5, false},
		{"  45 ", 45, false},
		{"", 0, true},
		{"abc", 0, true},
		{"1:xx", 0, true},
		{"-5", 0, true},
		{"-1:30", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseClock(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseClock(%q) expected error, got %v", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseClock(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCleanPath(t *testing.T) {
	tests := []struct{ in, want string }{
		{`  /tmp/a.mp3  `, "/tmp/a.mp3"},
		{`"/tmp/with space.mp3"`, "/tmp/with space.mp3"},
		{`'/tmp/b.mp3'`, "/tmp/b.mp3"},
		{"/tmp/plain.mp3", "/tmp/plain.mp3"},
	}
	for _, tt := range tests {
		if got := CleanPath(tt.in); got != tt.want {
			t.Errorf("CleanPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func testPrompter(input string) (*Prompter, *bytes.Buffer) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader(input), &out, logger.NewWithWriter(io.Discard, "error"))
	return p, &out
}

func transcriptEnding(end float64) *transcript.Transcript {
	return &transcript.Transcript{
		Segments: []transcript.Segment{{Start: 0, End: end, Text: "words"}},
	}
}

func TestResolveExplicitTimes(t *testing.T) {
	p, _ := testPrompter("2:03\n10:20\n")

	b, err := p.Resolve(context.Background(), transcriptEnding(700), nil)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if b.First != 123 || b.Last != 620 {
		t.Errorf("boundary = %+v, want {123 620}", b)
	}
}

func TestResolveEmptyEndUsesTranscript(t *testing.T) {
	p, _ := testPrompter("60\n\n")

	b, err := p.Resolve(context.Background(), transcriptEnding(654.3), nil)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if b.Last != 654.3 {
		t.Errorf("Last = %v, want transcript end 654.3", b.Last)
	}
}

func TestResolveEmptyEndFallsBackToAudio(t *testing.T) {
	p, _ := testPrompter("60\n\n")
	probed := false

	b, err := p.Resolve(context.Background(), &transcript.Transcript{}, func(ctx context.Context) (float64, error) {
		probed = true
		return 900, nil
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !probed {
		t.Error("expected audio duration probe")
	}
	if b.Last != 900 {
		t.Errorf("Last = %v, want 900", b.Last)
	}
}

func TestResolveRepromptsOnBadInput(t *testing.T) {
	p, out := testPrompter("nope\n1:00\n30\n2:00\n")

	b, err := p.Resolve(context.Background(), transcriptEnding(700), nil)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if b.First != 60 || b.Last != 120 {
		t.Errorf("boundary = %+v, want {60 120}", b)
	}
	if !strings.Contains(out.String(), "Invalid start time") {
		t.Error("missing start re-prompt message")
	}
	if !strings.Contains(out.String(), "after the start time") {
		t.Error("missing end-before-start re-prompt message")
	}
}

func TestResolveInputClosed(t *testing.T) {
	p, _ := testPrompter("")

	if _, err := p.Resolve(context.Background(), transcriptEnding(700), nil); err == nil {
		t.Error("expected error when input is closed")
	}
}

func TestResolveDurationError(t *testing.T) {
	p, _ := testPrompter("60\n\n")

	_, err := p.Resolve(context.Background(), &transcript.Transcript{}, func(ctx context.Context) (float64, error) {
		return 0, fmt.Errorf("no such file")
	})
	if err == nil {
		t.Error("expected probe error to surface")
	}
}
