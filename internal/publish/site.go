package publish

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/mylatinmass/audio-youtube-wf/internal/config"
	"github.com/mylatinmass/audio-youtube-wf/internal/logger"
	"github.com/mylatinmass/audio-youtube-wf/internal/metadata"
	"github.com/mylatinmass/audio-youtube-wf/pkg/executor"
)

var reNonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Site commits generated MDX pages to the content repository checkout and
// pushes them, which triggers the site build.
type Site struct {
	dir    string
	branch string
	exec   executor.Executor
	logger logger.Logger
}

func NewSite(cfg config.PublishConfig, exec executor.Executor, log logger.Logger) *Site {
	return &Site{
		dir:    cfg.ContentDir,
		branch: cfg.ContentBranch,
		exec:   exec,
		logger: log,
	}
}

// PublishMDX writes the page into the checkout at the front matter's
// mdx_file path and pushes a commit for it.
func (s *Site) PublishMDX(ctx context.Context, fm metadata.FrontMatter, page string) error {
	rel := fm.MDXFile
	if rel == "" {
		rel = filepath.Join("src", "mds", slugify(fm.Title)+".mdx")
	}
	rel = filepath.Clean(rel)
	if filepath.IsAbs(rel) || strings.HasPrefix(rel, "..") {
		return fmt.Errorf("refusing mdx path %q outside content repo", fm.MDXFile)
	}

	dest := filepath.Join(s.dir, rel)
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("create mdx dir: %w", err)
	}
	if err := os.WriteFile(dest, []byte(page), 0644); err != nil {
		return fmt.Errorf("write mdx page: %w", err)
	}
	s.logger.Info(ctx, "Wrote MDX page %s", dest)

	status, err := s.exec.ExecuteInDir(ctx, s.dir, "git", "status", "--porcelain", "--", rel)
	if err != nil {
		return fmt.Errorf("git status: %w", err)
	}
	if strings.TrimSpace(status) == "" {
		s.logger.Info(ctx, "Page %s already published; nothing to commit", rel)
		return nil
	}

	if _, err := s.exec.ExecuteInDir(ctx, s.dir, "git", "add", rel); err != nil {
		return fmt.Errorf("git add: %w", err)
	}
	msg := fmt.Sprintf("Add homily page: %s", fm.Title)
	if _, err := s.exec.ExecuteInDir(ctx, s.dir, "git", "commit", "-m", msg); err != nil {
		return fmt.Errorf("git commit: %w", err)
	}
	if _, err := s.exec.ExecuteInDir(ctx, s.dir, "git", "push", "origin", s.branch); err != nil {
		return fmt.Errorf("git push: %w", err)
	}

	s.logger.Info(ctx, "Pushed %s to %s", rel, s.branch)
	return nil
}

func slugify(s string) string {
	s = strings.ToLower(s)
	s = reNonSlug.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
