package metadata

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// FrontMatter is the YAML block at the top of a generated MDX page. The
// publish step reads the YouTube fields from here so the upload metadata
// and the site page can never drift apart.
type FrontMatter struct {
	Title              string `yaml:"title"`
	Description        string `yaml:"description"`
	Keywords           string `yaml:"keywords"`
	YouTubeDescription string `yaml:"youtube_description"`
	YouTubeHash        string `yaml:"youtube_hash"`
	MDXFile            string `yaml:"mdx_file"`
	Category           string `yaml:"category"`
	Slug               string `yaml:"slug"`
	Date               string `yaml:"date"`
	ModDate            string `yaml:"modDate"`
	Author             string `yaml:"author"`
	MediaType          string `yaml:"media_type"`
	MediaPath          string `yaml:"media_path"`
	MediaTitle         string `yaml:"media_title"`
	MediaAlt           string `yaml:"media_alt"`
	MediaAria          string `yaml:"media_aria"`
}

// Tags splits the comma-separated keywords field into a clean slice for
// the YouTube API.
func (f FrontMatter) Tags() []string {
	var tags []string
	for _, t := range strings.Split(f.Keywords, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// ParseMDX splits a generated page into its front matter and body. The
// page must open with a "---" fence on its own line.
func ParseMDX(page string) (FrontMatter, string, error) {
	page = strings.TrimLeft(page, "\n \t")
	if !strings.HasPrefix(page, "---\n") && page != "---" {
		return FrontMatter{}, "", fmt.Errorf("page has no front matter block")
	}

	rest := strings.TrimPrefix(page, "---\n")
	idx := strings.Index(rest, "\n---")
	if idx < 0 {
		return FrontMatter{}, "", fmt.Errorf("front matter block is not closed")
	}

	var fm FrontMatter
	if err := yaml.Unmarshal([]byte(rest[:idx]), &fm); err != nil {
		return FrontMatter{}, "", fmt.Errorf("parse front matter: %w", err)
	}
	if fm.Title == "" {
		return FrontMatter{}, "", fmt.Errorf("front matter has no title")
	}

	body := rest[idx+len("\n---"):]
	body = strings.TrimPrefix(body, "\n")
	return fm, body, nil
}

// stripCodeFence removes a surrounding markdown code fence, which models
// sometimes wrap the whole document in despite instructions.
func stripCodeFence(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return s
	}
	lines := strings.Split(trimmed, "\n")
	if len(lines) < 2 || strings.TrimSpace(lines[len(lines)-1]) != "```" {
		return s
	}
	return strings.Join(lines[1:len(lines)-1], "\n")
}
