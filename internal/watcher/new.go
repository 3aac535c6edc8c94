package watcher

import (
	"fmt"

	"github.com/fsnotify/fsnotify"

	"github.com/mylatinmass/audio-youtube-wf/internal/logger"
)

// New creates a Watcher over inputDir. maxConcurrent bounds how many
// recordings are worked on at once; each run holds an Auphonic production
// and an ffmpeg render, so this usually stays at 1.
func New(inputDir string, handler EventHandler, log logger.Logger, maxConcurrent int) (Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := fsw.Add(inputDir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}

	return &implWatcher{
		inputDir:      inputDir,
		handler:       handler,
		logger:        log,
		watcher:       fsw,
		maxConcurrent: maxConcurrent,
		semaphore:     make(chan struct{}, maxConcurrent),
	}, nil
}
