// Package video renders the captioned homily video and assembles the final
// cut with ffmpeg.
package video

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mylatinmass/audio-youtube-wf/internal/logger"
	"github.com/mylatinmass/audio-youtube-wf/pkg/executor"
)

type Renderer struct {
	exec    executor.Executor
	logger  logger.Logger
	encoder string
	preset  string
}

func NewRenderer(exec executor.Executor, log logger.Logger, encoder, preset string) *Renderer {
	return &Renderer{exec: exec, logger: log, encoder: encoder, preset: preset}
}

// RenderCaptioned composites a still background image, the homily audio
// track and burned-in captions into a video. The subtitle file is copied
// into an isolated temp dir and referenced by relative path, which sidesteps
// ffmpeg's subtitles-filter path quoting issues.
func (r *Renderer) RenderCaptioned(ctx context.Context, imagePath, audioPath, srtPath, outputPath string) error {
	tempDir, err := os.MkdirTemp("", "render-*")
	if err != nil {
		return fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	tempSub := filepath.Join(tempDir, "captions.srt")
	if err := copyFile(srtPath, tempSub); err != nil {
		return fmt.Errorf("copy captions to temp: %w", err)
	}

	absImage, _ := filepath.Abs(imagePath)
	absAudio, _ := filepath.Abs(audioPath)
	tempOut := filepath.Join(tempDir, "body.mp4")

	renderArgs := func(encoder string) []string {
		return []string{
			"-y",
			"-loop", "1",
			"-i", absImage,
			"-i", absAudio,
			"-vf", fmt.Sprintf("scale=1920:1080:force_original_aspect_ratio=decrease,pad=1920:1080:(ow-iw)/2:(oh-ih)/2,subtitles=%s", filepath.Base(tempSub)),
			"-c:v", encoder,
			"-preset", r.preset,
			"-tune", "stillimage",
			"-c:a", "aac",
			"-b:a", "192k",
			"-pix_fmt", "yuv420p",
			"-shortest",
			tempOut,
		}
	}

	r.logger.Debug(ctx, "Rendering captioned video in %s", tempDir)
	if _, err := r.exec.ExecuteInDir(ctx, tempDir, "ffmpeg", renderArgs(r.encoder)...); err != nil {
		// Retry with the stock software encoder before giving up.
		r.logger.Warn(ctx, "Encoder %s failed, retrying with libx264: %v", r.encoder, err)
		if _, err := r.exec.ExecuteInDir(ctx, tempDir, "ffmpeg", renderArgs("libx264")...); err != nil {
			return fmt.Errorf("render captioned video: %w", err)
		}
	}

	if err := os.Rename(tempOut, outputPath); err != nil {
		if err := copyFile(tempOut, outputPath); err != nil {
			return fmt.Errorf("move rendered video: %w", err)
		}
	}
	return nil
}

// ConcatIntro prepends the intro video to the rendered body using the
// concat demuxer with stream copy, so nothing is re-encoded.
func (r *Renderer) ConcatIntro(ctx context.Context, introPath, bodyPath, outputPath, workDir string) error {
	absIntro, _ := filepath.Abs(introPath)
	absBody, _ := filepath.Abs(bodyPath)

	listPath := filepath.Join(workDir, "concat_list.txt")
	list := fmt.Sprintf("file '%s'\nfile '%s'\n", absIntro, absBody)
	if err := os.WriteFile(listPath, []byte(list), 0644); err != nil {
		return fmt.Errorf("write concat list: %w", err)
	}

	args := []string{
		"-y",
		"-f", "concat",
		"-safe", "0",
		"-i", listPath,
		"-c", "copy",
		outputPath,
	}
	if _, err := r.exec.Execute(ctx, "ffmpeg", args...); err != nil {
		return fmt.Errorf("concat intro: %w", err)
	}
	return nil
}

// Thumbnail scales the artwork to YouTube's 1280x720 thumbnail size.
func (r *Renderer) Thumbnail(ctx context.Context, imagePath, outputPath string) error {
	args := []string{
		"-y",
		"-i", imagePath,
		"-vf", "scale=1280:720",
		"-q:v", "2",
		outputPath,
	}
	if _, err := r.exec.Execute(ctx, "ffmpeg", args...); err != nil {
		return fmt.Errorf("render thumbnail: %w", err)
	}
	return nil
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return fmt.Errorf("write destination: %w", err)
	}
	return nil
}
