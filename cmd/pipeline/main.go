package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/mylatinmass/audio-youtube-wf/internal/audio"
	"github.com/mylatinmass/audio-youtube-wf/internal/cleaner"
	"github.com/mylatinmass/audio-youtube-wf/internal/config"
	"github.com/mylatinmass/audio-youtube-wf/internal/homily"
	"github.com/mylatinmass/audio-youtube-wf/internal/logger"
	"github.com/mylatinmass/audio-youtube-wf/internal/manual"
	"github.com/mylatinmass/audio-youtube-wf/internal/metadata"
	"github.com/mylatinmass/audio-youtube-wf/internal/pipeline"
	"github.com/mylatinmass/audio-youtube-wf/internal/publish"
	"github.com/mylatinmass/audio-youtube-wf/internal/transcribe"
	"github.com/mylatinmass/audio-youtube-wf/internal/video"
	"github.com/mylatinmass/audio-youtube-wf/internal/watcher"
	"github.com/mylatinmass/audio-youtube-wf/pkg/executor"
)

var imageExtensions = []string{".jpg", ".jpeg", ".png"}

func main() {
	configPath := flag.String("config", "config.yaml", "path to configuration file")
	envPath := flag.String("env", ".env", "path to credentials file")
	watch := flag.Bool("watch", false, "monitor the input directory instead of processing one recording")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	secrets := config.LoadSecrets(*envPath)

	log := logger.New(cfg.Logging.Level)
	log.Info(ctx, "========================================")
	log.Info(ctx, "Sermon Publishing Pipeline")
	log.Info(ctx, "========================================")

	pipe, err := buildPipeline(ctx, cfg, secrets, log, !*watch)
	if err != nil {
		log.Error(ctx, "Failed to build pipeline: %v", err)
		os.Exit(1)
	}

	if *watch {
		runWatch(ctx, cfg, pipe, log)
		return
	}
	runOnce(ctx, pipe, log)
}

func buildPipeline(ctx context.Context, cfg *config.Config, secrets *config.Secrets, log logger.Logger, interactive bool) (pipeline.Pipeline, error) {
	exec := executor.New()

	resolver, err := homily.NewResolver(homily.ResolverConfig{
		Marker:           cfg.Marker.Pattern,
		EndStrategy:      cfg.Marker.EndStrategy,
		SilenceThreshold: cfg.Marker.SilenceThreshold,
	})
	if err != nil {
		return nil, err
	}

	provider, err := metadata.New(cfg.Metadata, *secrets, log)
	if err != nil {
		return nil, err
	}

	deps := pipeline.Deps{
		Transcriber: transcribe.NewClient(cfg.Whisper.URL, cfg.Whisper.Model, secrets.OpenAIKey, 30*time.Minute),
		Resolver:    resolver,
		Clipper:     audio.NewClipper(exec),
		Renderer:    video.NewRenderer(exec, log, cfg.Video.Encoder, cfg.Video.Preset),
		Metadata:    provider,
	}

	if interactive {
		deps.Fallback = manual.NewPrompter(os.Stdin, os.Stdout, log)
	}

	if secrets.AuphonicKey != "" {
		deps.Cleaner = cleaner.New(cfg.Cleaner.URL, secrets.AuphonicKey, cfg.Cleaner.Preset)
	} else {
		log.Warn(ctx, "AUPHONIC_API_KEY not set; audio cleanup disabled")
	}

	if secrets.YouTubeRefreshToken != "" {
		uploader, err := publish.NewYouTube(ctx, *secrets, cfg.YouTube, log)
		if err != nil {
			return nil, err
		}
		deps.Uploader = uploader
	} else {
		log.Warn(ctx, "YouTube credentials not set; uploads disabled")
	}

	if cfg.Publish.ContentDir != "" {
		deps.Site = publish.NewSite(cfg.Publish, exec, log)
	} else {
		log.Warn(ctx, "publish.content_dir not set; site publishing disabled")
	}

	return pipeline.New(cfg, deps, log)
}

func runOnce(ctx context.Context, pipe pipeline.Pipeline, log logger.Logger) {
	audioPath, imagePath, err := resolveInputs(flag.Args())
	if err != nil {
		log.Error(ctx, "%v", err)
		os.Exit(1)
	}

	if err := pipe.Process(ctx, audioPath, imagePath); err != nil {
		log.Error(ctx, "Processing failed: %v", err)
		os.Exit(1)
	}
}

func runWatch(ctx context.Context, cfg *config.Config, pipe pipeline.Pipeline, log logger.Logger) {
	if cfg.Paths.Input == "" {
		log.Error(ctx, "paths.input is required for watch mode")
		os.Exit(1)
	}
	if err := os.MkdirAll(cfg.Paths.Input, 0755); err != nil {
		log.Error(ctx, "Failed to create input directory: %v", err)
		os.Exit(1)
	}

	handler := func(ctx context.Context, audioPath string) error {
		imagePath := siblingImage(audioPath)
		if imagePath == "" {
			return fmt.Errorf("no artwork image found next to %s", audioPath)
		}
		return pipe.Process(ctx, audioPath, imagePath)
	}

	w, err := watcher.New(cfg.Paths.Input, handler, log, cfg.Performance.MaxConcurrent)
	if err != nil {
		log.Error(ctx, "Failed to create watcher: %v", err)
		os.Exit(1)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := w.Start(ctx); err != nil && err != context.Canceled {
			errChan <- err
		}
	}()

	log.Info(ctx, "Monitoring %s. Press Ctrl+C to stop.", cfg.Paths.Input)

	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "Watcher error: %v", err)
	}

	cancel()
	log.Info(ctx, "Pipeline stopped")
}

// resolveInputs takes the audio and image paths from the command line, or
// prompts for them the way the interactive workflow always has.
func resolveInputs(args []string) (string, string, error) {
	var audioPath, imagePath string

	switch len(args) {
	case 2:
		audioPath, imagePath = args[0], args[1]
	case 1:
		audioPath = args[0]
		imagePath = siblingImage(audioPath)
		if imagePath == "" {
			var err error
			imagePath, err = prompt("Enter IMAGE FILE PATH (e.g., /path/to/image.jpg): ")
			if err != nil {
				return "", "", err
			}
		}
	case 0:
		var err error
		audioPath, err = prompt("Enter AUDIO FILE PATH (e.g., /path/to/audio.mp3): ")
		if err != nil {
			return "", "", err
		}
		imagePath, err = prompt("Enter IMAGE FILE PATH (e.g., /path/to/image.jpg): ")
		if err != nil {
			return "", "", err
		}
	default:
		return "", "", fmt.Errorf("usage: pipeline [audio] [image]")
	}

	for _, p := range []string{audioPath, imagePath} {
		if _, err := os.Stat(p); err != nil {
			return "", "", fmt.Errorf("input file %s: %w", p, err)
		}
	}
	return audioPath, imagePath, nil
}

func prompt(label string) (string, error) {
	fmt.Print(label)
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return "", fmt.Errorf("input closed")
	}
	return manual.CleanPath(scanner.Text()), nil
}

// siblingImage looks for artwork with the audio file's name and an image
// extension.
func siblingImage(audioPath string) string {
	base := strings.TrimSuffix(audioPath, filepath.Ext(audioPath))
	for _, ext := range imageExtensions {
		for _, candidate := range []string{base + ext, base + strings.ToUpper(ext)} {
			if _, err := os.Stat(candidate); err == nil {
				return candidate
			}
		}
	}
	return ""
}
