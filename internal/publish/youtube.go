package publish

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/mylatinmass/audio-youtube-wf/internal/config"
	"github.com/mylatinmass/audio-youtube-wf/internal/logger"
	"github.com/mylatinmass/audio-youtube-wf/internal/metadata"
)

const (
	captionLanguage = "en"
	captionName     = "English Captions"
)

type implYouTube struct {
	svc      *youtube.Service
	category string
	privacy  string
	logger   logger.Logger
}

// NewYouTube builds an Uploader from a long-lived OAuth refresh token.
// Access tokens are minted on demand by the token source, so the daemon
// can run unattended for months.
func NewYouTube(ctx context.Context, secrets config.Secrets, cfg config.YouTubeConfig, log logger.Logger) (Uploader, error) {
	if secrets.YouTubeClientID == "" || secrets.YouTubeSecret == "" || secrets.YouTubeRefreshToken == "" {
		return nil, fmt.Errorf("youtube upload requires YOUTUBE_CLIENT_ID, YOUTUBE_CLIENT_SECRET and YOUTUBE_REFRESH_TOKEN")
	}

	conf := &oauth2.Config{
		ClientID:     secrets.YouTubeClientID,
		ClientSecret: secrets.YouTubeSecret,
		Endpoint:     google.Endpoint,
		Scopes: []string{
			youtube.YoutubeUploadScope,
			youtube.YoutubeForceSslScope,
		},
	}
	ts := conf.TokenSource(ctx, &oauth2.Token{RefreshToken: secrets.YouTubeRefreshToken})

	svc, err := youtube.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}

	return &implYouTube{
		svc:      svc,
		category: cfg.CategoryID,
		privacy:  cfg.Privacy,
		logger:   log,
	}, nil
}

func (y *implYouTube) Upload(ctx context.Context, videoPath string, fm metadata.FrontMatter) (string, error) {
	f, err := os.Open(videoPath)
	if err != nil {
		return "", fmt.Errorf("open video: %w", err)
	}
	defer f.Close()

	video := &youtube.Video{
		Snippet: &youtube.VideoSnippet{
			Title:       fm.Title,
			Description: fm.YouTubeDescription,
			Tags:        fm.Tags(),
			CategoryId:  y.category,
		},
		Status: &youtube.VideoStatus{
			PrivacyStatus: y.privacy,
		},
	}

	y.logger.Info(ctx, "Uploading %s to YouTube as %q", videoPath, fm.Title)
	resp, err := y.svc.Videos.Insert([]string{"snippet", "status"}, video).
		Context(ctx).Media(f).Do()
	if err != nil {
		return "", fmt.Errorf("upload video: %w", err)
	}

	y.logger.Info(ctx, "Upload complete, video ID %s", resp.Id)
	return resp.Id, nil
}

func (y *implYouTube) Update(ctx context.Context, videoID string, fm metadata.FrontMatter, thumbnailPath string) error {
	list, err := y.svc.Videos.List([]string{"snippet"}).Id(videoID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("fetch video: %w", err)
	}
	if len(list.Items) == 0 {
		return fmt.Errorf("video %s not found", videoID)
	}

	snippet := list.Items[0].Snippet
	snippet.Title = fm.Title
	snippet.Description = fm.YouTubeDescription

	if _, err := y.svc.Videos.Update([]string{"snippet"}, &youtube.Video{
		Id:      videoID,
		Snippet: snippet,
	}).Context(ctx).Do(); err != nil {
		return fmt.Errorf("update video metadata: %w", err)
	}

	if thumbnailPath != "" {
		f, err := os.Open(thumbnailPath)
		if err != nil {
			return fmt.Errorf("open thumbnail: %w", err)
		}
		defer f.Close()

		if _, err := y.svc.Thumbnails.Set(videoID).Context(ctx).Media(f).Do(); err != nil {
			return fmt.Errorf("set thumbnail: %w", err)
		}
	}
	return nil
}

func (y *implYouTube) UploadCaptions(ctx context.Context, videoID, srtPath string) error {
	f, err := os.Open(srtPath)
	if err != nil {
		return fmt.Errorf("open captions: %w", err)
	}
	defer f.Close()

	caption := &youtube.Caption{
		Snippet: &youtube.CaptionSnippet{
			VideoId:  videoID,
			Language: captionLanguage,
			Name:     captionName,
			IsDraft:  false,
		},
	}

	if _, err := y.svc.Captions.Insert([]string{"snippet"}, caption).
		Context(ctx).Media(f).Do(); err != nil {
		return fmt.Errorf("upload captions: %w", err)
	}

	y.logger.Info(ctx, "Captions attached to video %s", videoID)
	return nil
}
