package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/mylatinmass/audio-youtube-wf/internal/homily"
	"github.com/mylatinmass/audio-youtube-wf/internal/srt"
	"github.com/mylatinmass/audio-youtube-wf/internal/transcript"
)

// prepareAudio clips the homily from the recording, sends it through the
// cleanup service and trims the service's fade edges from the result.
func (p *implPipeline) prepareAudio(ctx context.Context, ws *workspace, b homily.Boundary) error {
	if fileExists(ws.homilyRaw) {
		p.logger.Info(ctx, "Homily audio already exists; skipping clipping")
	} else {
		p.logger.Info(ctx, "Clipping homily (%.3fs to %.3fs)", b.First, b.Last)
		if err := p.deps.Clipper.Clip(ctx, ws.audio, b.First, b.Last, ws.homilyRaw, 0); err != nil {
			return fmt.Errorf("clip homily: %w", err)
		}
	}

	if fileExists(ws.homilyClean) {
		p.logger.Info(ctx, "Cleaned audio already exists; skipping cleanup")
	} else if p.deps.Cleaner == nil {
		p.logger.Warn(ctx, "No cleanup service configured; using raw homily audio")
		if err := copyArtifact(ws.homilyRaw, ws.homilyClean); err != nil {
			return err
		}
	} else {
		p.logger.Info(ctx, "Starting cleanup production")
		uuid, err := p.deps.Cleaner.Start(ctx, ws.homilyRaw)
		if err != nil {
			return fmt.Errorf("start cleanup: %w", err)
		}
		downloaded, err := p.deps.Cleaner.Download(ctx, uuid, ws.workingDir)
		if err != nil {
			return fmt.Errorf("download cleaned audio: %w", err)
		}
		if downloaded != ws.homilyClean {
			if err := os.Rename(downloaded, ws.homilyClean); err != nil {
				return fmt.Errorf("move cleaned audio: %w", err)
			}
		}
		p.logger.Info(ctx, "Cleaned audio saved to %s", ws.homilyClean)
	}

	if fileExists(ws.homilyFinal) {
		p.logger.Info(ctx, "Final audio already exists; skipping edge trim")
		return nil
	}

	trim := p.cfg.Audio.TrimEdge
	p.logger.Info(ctx, "Trimming %.1fs from both ends, padding %.1fs of silence", trim, p.cfg.Audio.PadSilence)
	if err := p.deps.Clipper.Clip(ctx, ws.homilyClean, trim, -trim, ws.homilyFinal, p.cfg.Audio.PadSilence); err != nil {
		return fmt.Errorf("trim cleaned audio: %w", err)
	}
	return nil
}

// writeCaptions emits both caption tracks: one aligned to the bare homily
// video for burn-in, one shifted by the intro length for YouTube.
func (p *implPipeline) writeCaptions(ctx context.Context, ws *workspace, segments []transcript.Segment) error {
	if !fileExists(ws.bodySRT) {
		if err := srt.WriteFile(ws.bodySRT, segments, 0); err != nil {
			return fmt.Errorf("write body captions: %w", err)
		}
	}
	if !fileExists(ws.videoSRT) {
		if err := srt.WriteFile(ws.videoSRT, segments, p.cfg.SRT.Shift); err != nil {
			return fmt.Errorf("write video captions: %w", err)
		}
		p.logger.Info(ctx, "Captions written (shift %.1fs)", p.cfg.SRT.Shift)
	}
	return nil
}

func (p *implPipeline) renderVideo(ctx context.Context, ws *workspace) error {
	if fileExists(ws.finalVideo) {
		p.logger.Info(ctx, "Final video already exists; skipping rendering")
	} else {
		if fileExists(ws.bodyVideo) {
			p.logger.Info(ctx, "Captioned video already exists; skipping render")
		} else {
			p.logger.Info(ctx, "Rendering captioned video")
			if err := p.deps.Renderer.RenderCaptioned(ctx, ws.image, ws.homilyFinal, ws.bodySRT, ws.bodyVideo); err != nil {
				return err
			}
		}

		intro := p.cfg.Video.IntroPath
		if intro == "" || !fileExists(intro) {
			return fmt.Errorf("intro video not found at %q", intro)
		}
		p.logger.Info(ctx, "Concatenating intro")
		if err := p.deps.Renderer.ConcatIntro(ctx, intro, ws.bodyVideo, ws.finalVideo, ws.workingDir); err != nil {
			return err
		}
	}

	if !fileExists(ws.thumbnail) {
		if err := p.deps.Renderer.Thumbnail(ctx, ws.image, ws.thumbnail); err != nil {
			return fmt.Errorf("render thumbnail: %w", err)
		}
	}
	return nil
}

func copyArtifact(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("read %s: %w", src, err)
	}
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", dst, err)
	}
	return nil
}
