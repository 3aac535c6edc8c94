package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/mylatinmass/audio-youtube-wf/internal/transcribe"
	"github.com/mylatinmass/audio-youtube-wf/internal/transcript"
)

// loadTranscript produces working/transcription.json. Preference order: an
// existing transcript from a previous run, a timed-text file dropped next
// to the audio, then the transcription service.
func (p *implPipeline) loadTranscript(ctx context.Context, ws *workspace) (*transcript.Transcript, error) {
	if fileExists(ws.transcriptJSON) {
		p.logger.Info(ctx, "Transcript already exists; skipping transcription")
		return transcript.Load(ws.transcriptJSON)
	}

	if timed := timedTextSibling(ws.audio); timed != "" {
		p.logger.Info(ctx, "Using timed-text transcript %s", timed)
		f, err := os.Open(timed)
		if err != nil {
			return nil, fmt.Errorf("open timed text: %w", err)
		}
		defer f.Close()

		t, err := transcript.ParseTimedText(f)
		if err != nil {
			return nil, fmt.Errorf("parse timed text: %w", err)
		}
		if err := transcript.Save(t, ws.transcriptJSON); err != nil {
			return nil, err
		}
		return t, nil
	}

	p.logger.Info(ctx, "Transcribing %s", ws.audio)
	t, err := p.deps.Transcriber.Transcribe(ctx, ws.audio, transcribe.Opts{
		Language: p.cfg.Whisper.Language,
		Prompt:   p.cfg.Whisper.Prompt,
	})
	if err != nil {
		return nil, err
	}
	if err := transcript.Save(t, ws.transcriptJSON); err != nil {
		return nil, err
	}
	p.logger.Info(ctx, "Transcript saved to %s", ws.transcriptJSON)
	return t, nil
}
