package audio

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

// fakeExecutor records invocations and returns canned output per command.
type fakeExecutor struct {
	calls   [][]string
	outputs map[string]string
	err     error
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	if f.err != nil {
		return "", f.err
	}
	return f.outputs[name], nil
}

func (f *fakeExecutor) ExecuteInDir(ctx context.Context, dir string, name string, args ...string) (string, error) {
	return f.Execute(ctx, name, args...)
}

func (f *fakeExecutor) lastCall() []string {
	if len(f.calls) == 0 {
		return nil
	}
	return f.calls[len(f.calls)-1]
}

func TestClipBasic(t *testing.T) {
	fake := &fakeExecutor{outputs: map[string]string{}}
	c := NewClipper(fake)

	if err := c.Clip(context.Background(), "in.mp3", 42, 620, "out.mp3", 0); err != nil {
		t.Fatalf("Clip: %v", err)
	}

	call := strings.Join(fake.lastCall(), " ")
	for _, want := range []string{"ffmpeg", "-ss 42.000", "-to 620.000", "out.mp3"} {
		if !strings.Contains(call, want) {
			t.Errorf("call %q missing %q", call, want)
		}
	}
	if strings.Contains(call, "apad") {
		t.Errorf("unexpected silence pad in %q", call)
	}
}

func TestClipToEndWithPad(t *testing.T) {
	fake := &fakeExecutor{outputs: map[string]string{}}
	c := NewClipper(fake)

	if err := c.Clip(context.Background(), "in.mp3", 6.4, 0, "out.mp3", 1.0); err != nil {
		t.Fatalf("Clip: %v", err)
	}

	call := strings.Join(fake.lastCall(), " ")
	if strings.Contains(call, "-to") {
		t.Errorf("end=0 must clip to end of file, got %q", call)
	}
	if !strings.Contains(call, "apad=pad_dur=1.000") {
		t.Errorf("missing silence pad in %q", call)
	}
}

func TestClipNegativeEndTrimsTail(t *testing.T) {
	fake := &fakeExecutor{outputs: map[string]string{"ffprobe": "100.0\n"}}
	c := NewClipper(fake)

	if err := c.Clip(context.Background(), "in.mp3", 6.4, -6.4, "out.mp3", 0); err != nil {
		t.Fatalf("Clip: %v", err)
	}

	if len(fake.calls) != 2 {
		t.Fatalf("expected ffprobe then ffmpeg, got %d calls", len(fake.calls))
	}
	if fake.calls[0][0] != "ffprobe" {
		t.Errorf("first call = %v, want ffprobe", fake.calls[0])
	}
	call := strings.Join(fake.lastCall(), " ")
	if !strings.Contains(call, "-to 93.600") {
		t.Errorf("tail trim wrong: %q", call)
	}
}

func TestDuration(t *testing.T) {
	fake := &fakeExecutor{outputs: map[string]string{"ffprobe": " 1234.567 \n"}}
	c := NewClipper(fake)

	d, err := c.Duration(context.Background(), "in.mp3")
	if err != nil {
		t.Fatalf("Duration: %v", err)
	}
	if d != 1234.567 {
		t.Errorf("Duration = %v, want 1234.567", d)
	}
}

func TestDurationParseError(t *testing.T) {
	fake := &fakeExecutor{outputs: map[string]string{"ffprobe": "N/A"}}
	c := NewClipper(fake)

	if _, err := c.Duration(context.Background(), "in.mp3"); err == nil {
		t.Error("expected parse error for non-numeric ffprobe output")
	}
}

func TestClipExecutorFailure(t *testing.T) {
	fake := &fakeExecutor{err: fmt.Errorf("ffmpeg exploded")}
	c := NewClipper(fake)

	if err := c.Clip(context.Background(), "in.mp3", 0, 10, "out.mp3", 0); err == nil {
		t.Error("expected error when executor fails")
	}
}
