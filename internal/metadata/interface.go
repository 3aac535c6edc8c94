package metadata

import "context"

// Provider turns a homily transcript into a complete MDX page with
// front matter ready for the content site.
type Provider interface {
	GenerateMDX(ctx context.Context, homilyText string) (string, error)
}
