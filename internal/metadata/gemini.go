package metadata

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/mylatinmass/audio-youtube-wf/internal/logger"
)

type implGemini struct {
	apiKeys    []string
	currentKey int
	model      string
	logger     logger.Logger
}

// newGemini creates a Provider that rotates through the supplied Gemini
// API keys when one is rate limited.
func newGemini(apiKeys []string, model string, log logger.Logger) Provider {
	return &implGemini{
		apiKeys: apiKeys,
		model:   model,
		logger:  log,
	}
}

func (p *implGemini) GenerateMDX(ctx context.Context, homilyText string) (string, error) {
	p.logger.Info(ctx, "Generating MDX with %s (%d chars of transcript)", p.model, len(homilyText))

	prompt := systemPrompt + "\n\n" + buildPrompt(homilyText, time.Now())

	attempts := len(p.apiKeys)
	var lastErr error

	for range attempts {
		key := p.apiKeys[p.currentKey]

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			p.rotateKey()
			continue
		}

		result, err := client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), nil)
		if err != nil {
			errMsg := err.Error()
			if strings.Contains(errMsg, "429") || strings.Contains(errMsg, "quota") || strings.Contains(errMsg, "RESOURCE_EXHAUSTED") {
				p.logger.Warn(ctx, "Key %d rate limited, rotating...", p.currentKey+1)
				p.rotateKey()
				lastErr = err
				continue
			}
			return "", fmt.Errorf("generate content: %w", err)
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var text strings.Builder
			for _, part := range result.Candidates[0].Content.Parts {
				if part.Text != "" {
					text.WriteString(part.Text)
				}
			}
			return stripCodeFence(text.String()), nil
		}

		return "", fmt.Errorf("empty response from Gemini")
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (p *implGemini) rotateKey() {
	p.currentKey = (p.currentKey + 1) % len(p.apiKeys)
}
