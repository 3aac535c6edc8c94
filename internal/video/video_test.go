package video

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mylatinmass/audio-youtube-wf/internal/logger"
)

// fakeExecutor records invocations and touches the output file (last arg)
// the way ffmpeg would, so the post-render move has something to move.
type fakeExecutor struct {
	calls    [][]string
	failures int
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	return f.ExecuteInDir(ctx, "", name, args...)
}

func (f *fakeExecutor) ExecuteInDir(ctx context.Context, dir string, name string, args ...string) (string, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	if f.failures > 0 {
		f.failures--
		return "", fmt.Errorf("exit status 1")
	}
	if name == "ffmpeg" && len(args) > 0 {
		out := args[len(args)-1]
		if !filepath.IsAbs(out) {
			out = filepath.Join(dir, out)
		}
		os.WriteFile(out, []byte("video"), 0644)
	}
	return "", nil
}

func (f *fakeExecutor) lastCall() string {
	if len(f.calls) == 0 {
		return ""
	}
	return strings.Join(f.calls[len(f.calls)-1], " ")
}

func testRenderer(fake *fakeExecutor) *Renderer {
	return NewRenderer(fake, logger.NewWithWriter(io.Discard, "error"), "h264_videotoolbox", "medium")
}

func TestRenderCaptioned(t *testing.T) {
	dir := t.TempDir()
	srt := filepath.Join(dir, "homily.srt")
	if err := os.WriteFile(srt, []byte("1\n00:00:11,000 --> 00:00:12,000\nhello\n"), 0644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "body.mp4")

	fake := &fakeExecutor{}
	r := testRenderer(fake)

	if err := r.RenderCaptioned(context.Background(), "art.png", "homily.mp3", srt, out); err != nil {
		t.Fatalf("RenderCaptioned: %v", err)
	}

	call := fake.lastCall()
	for _, want := range []string{"-loop 1", "subtitles=captions.srt", "-c:v h264_videotoolbox", "-preset medium", "-shortest"} {
		if !strings.Contains(call, want) {
			t.Errorf("call %q missing %q", call, want)
		}
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("output not written: %v", err)
	}
}

func TestRenderCaptionedFallsBackToLibx264(t *testing.T) {
	dir := t.TempDir()
	srt := filepath.Join(dir, "homily.srt")
	if err := os.WriteFile(srt, []byte("1\n00:00:11,000 --> 00:00:12,000\nhello\n"), 0644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "body.mp4")

	fake := &fakeExecutor{failures: 1}
	r := testRenderer(fake)

	if err := r.RenderCaptioned(context.Background(), "art.png", "homily.mp3", srt, out); err != nil {
		t.Fatalf("RenderCaptioned: %v", err)
	}
	if len(fake.calls) != 2 {
		t.Fatalf("expected retry, got %d calls", len(fake.calls))
	}
	if !strings.Contains(fake.lastCall(), "-c:v libx264") {
		t.Errorf("retry call %q did not use libx264", fake.lastCall())
	}
}

func TestRenderCaptionedBothEncodersFail(t *testing.T) {
	dir := t.TempDir()
	srt := filepath.Join(dir, "homily.srt")
	if err := os.WriteFile(srt, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	fake := &fakeExecutor{failures: 2}
	r := testRenderer(fake)

	err := r.RenderCaptioned(context.Background(), "art.png", "homily.mp3", srt, filepath.Join(dir, "body.mp4"))
	if err == nil {
		t.Error("expected error when both encoders fail")
	}
}

func TestConcatIntro(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "final.mp4")

	fake := &fakeExecutor{}
	r := testRenderer(fake)

	if err := r.ConcatIntro(context.Background(), "intro.mp4", "body.mp4", out, dir); err != nil {
		t.Fatalf("ConcatIntro: %v", err)
	}

	call := fake.lastCall()
	for _, want := range []string{"-f concat", "-safe 0", "-c copy", out} {
		if !strings.Contains(call, want) {
			t.Errorf("call %q missing %q", call, want)
		}
	}

	list, err := os.ReadFile(filepath.Join(dir, "concat_list.txt"))
	if err != nil {
		t.Fatalf("concat list not written: %v", err)
	}
	if strings.Count(string(list), "file '") != 2 {
		t.Errorf("concat list should name two files:\n%s", list)
	}
	intro := strings.Index(string(list), "intro.mp4")
	body := strings.Index(string(list), "body.mp4")
	if intro < 0 || body < 0 || intro > body {
		t.Errorf("intro must come before body:\n%s", list)
	}
}

func TestThumbnail(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "thumb.jpg")

	fake := &fakeExecutor{}
	r := testRenderer(fake)

	if err := r.Thumbnail(context.Background(), "art.png", out); err != nil {
		t.Fatalf("Thumbnail: %v", err)
	}
	if !strings.Contains(fake.lastCall(), "scale=1280:720") {
		t.Errorf("call %q missing thumbnail scale", fake.lastCall())
	}
}
