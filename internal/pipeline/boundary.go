package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/mylatinmass/audio-youtube-wf/internal/homily"
	"github.com/mylatinmass/audio-youtube-wf/internal/transcript"
)

type boundaryFile struct {
	First  float64 `json:"first"`
	Last   float64 `json:"last"`
	Manual bool    `json:"manual,omitempty"`
}

// resolveBoundary locates the homily inside the transcript. A boundary
// from a previous run is reused so a manually entered one never has to be
// typed twice.
func (p *implPipeline) resolveBoundary(ctx context.Context, ws *workspace, t *transcript.Transcript) (homily.Boundary, error) {
	if fileExists(ws.boundaryJSON) {
		data, err := os.ReadFile(ws.boundaryJSON)
		if err != nil {
			return homily.Boundary{}, fmt.Errorf("read boundary: %w", err)
		}
		var bf boundaryFile
		if err := json.Unmarshal(data, &bf); err != nil {
			return homily.Boundary{}, fmt.Errorf("parse boundary: %w", err)
		}
		p.logger.Info(ctx, "Reusing boundary [%.3f, %.3f]", bf.First, bf.Last)
		return homily.Boundary{First: bf.First, Last: bf.Last}, nil
	}

	b, err := p.deps.Resolver.Resolve(t)
	manual := false
	if err != nil {
		if !errors.Is(err, homily.ErrNotFound) {
			return homily.Boundary{}, err
		}
		if p.deps.Fallback == nil {
			return homily.Boundary{}, fmt.Errorf("homily not found and no manual fallback available: %w", err)
		}
		p.logger.Warn(ctx, "Marker search failed: %v", err)
		b, err = p.deps.Fallback.Resolve(ctx, t, func(ctx context.Context) (float64, error) {
			return p.deps.Clipper.Duration(ctx, ws.audio)
		})
		if err != nil {
			return homily.Boundary{}, err
		}
		manual = true
	}

	p.logger.Info(ctx, "Homily boundary [%.3f, %.3f] (manual: %v)", b.First, b.Last, manual)

	data, err := json.MarshalIndent(boundaryFile{First: b.First, Last: b.Last, Manual: manual}, "", "  ")
	if err != nil {
		return homily.Boundary{}, err
	}
	if err := os.WriteFile(ws.boundaryJSON, data, 0644); err != nil {
		return homily.Boundary{}, fmt.Errorf("save boundary: %w", err)
	}
	return b, nil
}

// extractHomily trims the transcript to the boundary and persists the
// result as homily.json for the page generator.
func (p *implPipeline) extractHomily(ctx context.Context, ws *workspace, t *transcript.Transcript, b homily.Boundary) (string, []transcript.Segment, error) {
	if fileExists(ws.homilyJSON) {
		p.logger.Info(ctx, "Homily extract already exists; skipping")
		saved, err := transcript.Load(ws.homilyJSON)
		if err != nil {
			return "", nil, err
		}
		return saved.Text, saved.Segments, nil
	}

	text, segments := homily.Extract(t, b, p.variant)
	if text == "" {
		return "", nil, fmt.Errorf("boundary [%.3f, %.3f] retains no words", b.First, b.Last)
	}

	if err := transcript.Save(&transcript.Transcript{Text: text, Segments: segments}, ws.homilyJSON); err != nil {
		return "", nil, err
	}
	p.logger.Info(ctx, "Extracted homily: %d segments, %d chars", len(segments), len(text))
	return text, segments, nil
}
