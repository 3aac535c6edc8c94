package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// workspace holds every artifact path for one recording. Intermediate
// files live under working/, deliverables under final/, both siblings of
// the source audio.
type workspace struct {
	audio string
	image string

	workingDir string
	finalDir   string

	transcriptJSON string
	boundaryJSON   string
	homilyJSON     string

	homilyRaw   string
	homilyClean string
	homilyFinal string

	bodySRT  string
	videoSRT string

	bodyVideo  string
	finalVideo string
	thumbnail  string

	mdxPath   string
	docxPath  string
	videoIDTx string
}

func (p *implPipeline) newWorkspace(audioPath, imagePath string) (*workspace, error) {
	dir := filepath.Dir(audioPath)
	working := filepath.Join(dir, p.cfg.Paths.WorkingSuffix)
	final := filepath.Join(dir, p.cfg.Paths.FinalSuffix)

	for _, d := range []string{working, final} {
		if err := os.MkdirAll(d, 0755); err != nil {
			return nil, fmt.Errorf("create %s: %w", d, err)
		}
	}

	return &workspace{
		audio:          audioPath,
		image:          imagePath,
		workingDir:     working,
		finalDir:       final,
		transcriptJSON: filepath.Join(working, "transcription.json"),
		boundaryJSON:   filepath.Join(working, "boundary.json"),
		homilyJSON:     filepath.Join(working, "homily.json"),
		homilyRaw:      filepath.Join(working, "homily.mp3"),
		homilyClean:    filepath.Join(working, "homily_clean.mp3"),
		homilyFinal:    filepath.Join(working, "homily_final.mp3"),
		bodySRT:        filepath.Join(working, "body_captions.srt"),
		videoSRT:       filepath.Join(working, "video_captions.srt"),
		bodyVideo:      filepath.Join(working, "video-with-text.mp4"),
		finalVideo:     filepath.Join(final, "final-video.mp4"),
		thumbnail:      filepath.Join(final, "thumbnail.jpg"),
		mdxPath:        filepath.Join(final, "homily.mdx"),
		docxPath:       filepath.Join(final, "homily.docx"),
		videoIDTx:      filepath.Join(final, "youtube_id.txt"),
	}, nil
}

// Process runs the full workflow for one recording.
func (p *implPipeline) Process(ctx context.Context, audioPath, imagePath string) error {
	started := time.Now()
	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Processing recording: %s", audioPath)
	p.logger.Info(ctx, "========================================")

	ws, err := p.newWorkspace(audioPath, imagePath)
	if err != nil {
		return err
	}

	t, err := p.loadTranscript(ctx, ws)
	if err != nil {
		return fmt.Errorf("transcribe: %w", err)
	}

	boundary, err := p.resolveBoundary(ctx, ws, t)
	if err != nil {
		return fmt.Errorf("resolve boundary: %w", err)
	}

	text, segments, err := p.extractHomily(ctx, ws, t, boundary)
	if err != nil {
		return fmt.Errorf("extract homily: %w", err)
	}

	if err := p.prepareAudio(ctx, ws, boundary); err != nil {
		return fmt.Errorf("prepare audio: %w", err)
	}

	if err := p.writeCaptions(ctx, ws, segments); err != nil {
		return fmt.Errorf("write captions: %w", err)
	}

	if err := p.renderVideo(ctx, ws); err != nil {
		return fmt.Errorf("render video: %w", err)
	}

	fm, page, err := p.generatePage(ctx, ws, text)
	if err != nil {
		return fmt.Errorf("generate page: %w", err)
	}

	if err := p.publishAll(ctx, ws, fm, page); err != nil {
		return fmt.Errorf("publish: %w", err)
	}

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Completed %s in %s", filepath.Base(audioPath), time.Since(started).Round(time.Second))
	p.logger.Info(ctx, "Final video: %s", ws.finalVideo)
	p.logger.Info(ctx, "========================================")
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// timedTextSibling returns the path of a manually prepared timed-text
// transcript next to the audio file, or "" when there is none.
func timedTextSibling(audioPath string) string {
	base := strings.TrimSuffix(audioPath, filepath.Ext(audioPath))
	for _, candidate := range []string{base + ".txt", audioPath + ".txt"} {
		if fileExists(candidate) {
			return candidate
		}
	}
	return ""
}
