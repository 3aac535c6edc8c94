package pipeline

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mylatinmass/audio-youtube-wf/internal/metadata"
)

// generatePage produces the MDX page and the proofreading docx. The raw
// model output is cached so a re-run never burns another completion.
func (p *implPipeline) generatePage(ctx context.Context, ws *workspace, text string) (metadata.FrontMatter, string, error) {
	var page string
	if fileExists(ws.mdxPath) {
		p.logger.Info(ctx, "MDX page already exists; skipping generation")
		data, err := os.ReadFile(ws.mdxPath)
		if err != nil {
			return metadata.FrontMatter{}, "", err
		}
		page = string(data)
	} else {
		generated, err := p.deps.Metadata.GenerateMDX(ctx, text)
		if err != nil {
			return metadata.FrontMatter{}, "", err
		}
		page = generated
		if err := os.WriteFile(ws.mdxPath, []byte(page), 0644); err != nil {
			return metadata.FrontMatter{}, "", fmt.Errorf("write mdx: %w", err)
		}
		p.logger.Info(ctx, "MDX page written to %s", ws.mdxPath)
	}

	fm, _, err := metadata.ParseMDX(page)
	if err != nil {
		return metadata.FrontMatter{}, "", fmt.Errorf("parse generated page: %w", err)
	}

	if !fileExists(ws.docxPath) {
		if err := metadata.WriteTranscriptDocx(fm.Title, text, ws.docxPath); err != nil {
			return metadata.FrontMatter{}, "", fmt.Errorf("write docx: %w", err)
		}
		p.logger.Info(ctx, "Transcript docx written to %s", ws.docxPath)
	}

	return fm, page, nil
}

func (p *implPipeline) publishAll(ctx context.Context, ws *workspace, fm metadata.FrontMatter, page string) error {
	if p.deps.Uploader == nil {
		p.logger.Warn(ctx, "No YouTube credentials configured; skipping upload")
	} else if err := p.uploadVideo(ctx, ws, fm); err != nil {
		return err
	}

	if p.deps.Site == nil {
		p.logger.Warn(ctx, "No content repository configured; skipping site publish")
		return nil
	}
	return p.deps.Site.PublishMDX(ctx, fm, page)
}

func (p *implPipeline) uploadVideo(ctx context.Context, ws *workspace, fm metadata.FrontMatter) error {
	if fileExists(ws.videoIDTx) {
		data, err := os.ReadFile(ws.videoIDTx)
		if err != nil {
			return err
		}
		p.logger.Info(ctx, "Video already uploaded as %s; skipping", strings.TrimSpace(string(data)))
		return nil
	}

	videoID, err := p.deps.Uploader.Upload(ctx, ws.finalVideo, fm)
	if err != nil {
		return fmt.Errorf("upload video: %w", err)
	}
	if err := os.WriteFile(ws.videoIDTx, []byte(videoID+"\n"), 0644); err != nil {
		return fmt.Errorf("record video id: %w", err)
	}

	if err := p.deps.Uploader.Update(ctx, videoID, fm, ws.thumbnail); err != nil {
		return fmt.Errorf("update video: %w", err)
	}
	if err := p.deps.Uploader.UploadCaptions(ctx, videoID, ws.videoSRT); err != nil {
		return fmt.Errorf("upload captions: %w", err)
	}
	return nil
}
