package publish

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mylatinmass/audio-youtube-wf/internal/config"
	"github.com/mylatinmass/audio-youtube-wf/internal/logger"
	"github.com/mylatinmass/audio-youtube-wf/internal/metadata"
)

type fakeExecutor struct {
	calls  [][]string
	status string
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	return f.ExecuteInDir(ctx, "", name, args...)
}

func (f *fakeExecutor) ExecuteInDir(ctx context.Context, dir string, name string, args ...string) (string, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	if name == "git" && len(args) > 0 && args[0] == "status" {
		return f.status, nil
	}
	return "", nil
}

func testSite(t *testing.T) (*Site, *fakeExecutor, string) {
	t.Helper()
	dir := t.TempDir()
	fake := &fakeExecutor{status: "?? src/mds/page.mdx"}
	site := NewSite(
		config.PublishConfig{ContentDir: dir, ContentBranch: "main"},
		fake,
		logger.NewWithWriter(io.Discard, "error"),
	)
	return site, fake, dir
}

func TestPublishMDX(t *testing.T) {
	site, fake, dir := testSite(t)

	fm := metadata.FrontMatter{
		Title:   "On the Feast of Pentecost",
		MDXFile: "src/mds/on-the-feast-of-pentecost.mdx",
	}
	page := "---\ntitle: \"On the Feast of Pentecost\"\n---\nbody\n"

	if err := site.PublishMDX(context.Background(), fm, page); err != nil {
		t.Fatalf("PublishMDX: %v", err)
	}

	written, err := os.ReadFile(filepath.Join(dir, "src", "mds", "on-the-feast-of-pentecost.mdx"))
	if err != nil {
		t.Fatalf("mdx not written: %v", err)
	}
	if string(written) != page {
		t.Error("mdx content mismatch")
	}

	if len(fake.calls) != 4 {
		t.Fatalf("expected status/add/commit/push, got %v", fake.calls)
	}
	wantSubcommands := []string{"status", "add", "commit", "push"}
	for i, want := range wantSubcommands {
		if fake.calls[i][0] != "git" || fake.calls[i][1] != want {
			t.Errorf("call %d = %v, want git %s", i, fake.calls[i], want)
		}
	}
	if !strings.Contains(strings.Join(fake.calls[3], " "), "origin main") {
		t.Errorf("push call = %v", fake.calls[3])
	}
}

func TestPublishMDXSkipsUnchangedPage(t *testing.T) {
	site, fake, _ := testSite(t)
	fake.status = ""

	fm := metadata.FrontMatter{Title: "x", MDXFile: "src/mds/x.mdx"}
	if err := site.PublishMDX(context.Background(), fm, "page"); err != nil {
		t.Fatalf("PublishMDX: %v", err)
	}

	if len(fake.calls) != 1 || fake.calls[0][1] != "status" {
		t.Errorf("only a status check expected, got %v", fake.calls)
	}
}

func TestPublishMDXDefaultsPathFromTitle(t *testing.T) {
	site, _, dir := testSite(t)

	fm := metadata.FrontMatter{Title: "Grace & Free Will!"}
	if err := site.PublishMDX(context.Background(), fm, "page"); err != nil {
		t.Fatalf("PublishMDX: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "src", "mds", "grace-free-will.mdx")); err != nil {
		t.Errorf("default path not used: %v", err)
	}
}

func TestPublishMDXRejectsEscapingPath(t *testing.T) {
	site, fake, _ := testSite(t)

	fm := metadata.FrontMatter{Title: "x", MDXFile: "../outside.mdx"}
	if err := site.PublishMDX(context.Background(), fm, "page"); err == nil {
		t.Error("expected error for path escaping the repo")
	}
	if len(fake.calls) != 0 {
		t.Errorf("no git calls expected, got %v", fake.calls)
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct{ in, want string }{
		{"On the Feast of Pentecost", "on-the-feast-of-pentecost"},
		{"Grace & Free Will!", "grace-free-will"},
		{"  spaced  ", "spaced"},
	}
	for _, tt := range tests {
		if got := slugify(tt.in); got != tt.want {
			t.Errorf("slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
