package pipeline

import (
	"context"

	"github.com/mylatinmass/audio-youtube-wf/internal/homily"
	"github.com/mylatinmass/audio-youtube-wf/internal/manual"
	"github.com/mylatinmass/audio-youtube-wf/internal/metadata"
	"github.com/mylatinmass/audio-youtube-wf/internal/transcribe"
	"github.com/mylatinmass/audio-youtube-wf/internal/transcript"
)

// Pipeline runs one recording through transcription, homily extraction,
// audio cleanup, rendering and publishing. Every artifact lands on disk
// and is skipped on re-runs, so a failed run resumes where it stopped.
type Pipeline interface {
	Process(ctx context.Context, audioPath, imagePath string) error
}

type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string, opts transcribe.Opts) (*transcript.Transcript, error)
}

type BoundaryResolver interface {
	Resolve(t *transcript.Transcript) (homily.Boundary, error)
}

// FallbackResolver is consulted when the marker search fails. Nil means
// unattended mode; the run fails instead of blocking on a prompt.
type FallbackResolver interface {
	Resolve(ctx context.Context, t *transcript.Transcript, duration manual.DurationFunc) (homily.Boundary, error)
}

type Clipper interface {
	Clip(ctx context.Context, input string, start, end float64, output string, padSilence float64) error
	Duration(ctx context.Context, path string) (float64, error)
}

type AudioCleaner interface {
	Start(ctx context.Context, audioPath string) (string, error)
	Download(ctx context.Context, uuid, dir string) (string, error)
}

type Renderer interface {
	RenderCaptioned(ctx context.Context, imagePath, audioPath, srtPath, outputPath string) error
	ConcatIntro(ctx context.Context, introPath, bodyPath, outputPath, workDir string) error
	Thumbnail(ctx context.Context, imagePath, outputPath string) error
}

type SitePublisher interface {
	PublishMDX(ctx context.Context, fm metadata.FrontMatter, page string) error
}
