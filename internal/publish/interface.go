package publish

import (
	"context"

	"github.com/mylatinmass/audio-youtube-wf/internal/metadata"
)

// Uploader pushes the finished video and its captions to YouTube.
type Uploader interface {
	// Upload sends the video file and returns the new video ID.
	Upload(ctx context.Context, videoPath string, fm metadata.FrontMatter) (string, error)
	// Update refreshes title and description and sets the thumbnail.
	Update(ctx context.Context, videoID string, fm metadata.FrontMatter, thumbnailPath string) error
	// UploadCaptions attaches an SRT caption track to the video.
	UploadCaptions(ctx context.Context, videoID, srtPath string) error
}
