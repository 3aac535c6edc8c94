package pipeline

import (
	"fmt"

	"github.com/mylatinmass/audio-youtube-wf/internal/config"
	"github.com/mylatinmass/audio-youtube-wf/internal/homily"
	"github.com/mylatinmass/audio-youtube-wf/internal/logger"
	"github.com/mylatinmass/audio-youtube-wf/internal/metadata"
	"github.com/mylatinmass/audio-youtube-wf/internal/publish"
)

// Deps are the stage collaborators. Cleaner, Fallback, Uploader and Site
// may be nil; the matching stages are skipped with a warning.
type Deps struct {
	Transcriber Transcriber
	Resolver    BoundaryResolver
	Fallback    FallbackResolver
	Clipper     Clipper
	Cleaner     AudioCleaner
	Renderer    Renderer
	Metadata    metadata.Provider
	Uploader    publish.Uploader
	Site        SitePublisher
}

type implPipeline struct {
	cfg     *config.Config
	deps    Deps
	variant homily.Variant
	logger  logger.Logger
}

func New(cfg *config.Config, deps Deps, log logger.Logger) (Pipeline, error) {
	if deps.Transcriber == nil || deps.Resolver == nil || deps.Clipper == nil ||
		deps.Renderer == nil || deps.Metadata == nil {
		return nil, fmt.Errorf("pipeline requires transcriber, resolver, clipper, renderer and metadata provider")
	}

	variant, err := homily.ParseVariant(cfg.Marker.ExtractVariant)
	if err != nil {
		return nil, err
	}

	return &implPipeline{
		cfg:     cfg,
		deps:    deps,
		variant: variant,
		logger:  log,
	}, nil
}
