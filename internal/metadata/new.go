package metadata

import (
	"fmt"

	"github.com/mylatinmass/audio-youtube-wf/internal/config"
	"github.com/mylatinmass/audio-youtube-wf/internal/logger"
)

// New creates the Provider named by metadata.provider in the config.
func New(cfg config.MetadataConfig, secrets config.Secrets, log logger.Logger) (Provider, error) {
	switch cfg.Provider {
	case "openai":
		if secrets.OpenAIKey == "" {
			return nil, fmt.Errorf("metadata provider openai requires OPENAI_API_KEY")
		}
		return newOpenAI(secrets.OpenAIKey, cfg.Model, log), nil
	case "gemini":
		if len(secrets.GeminiKeys) == 0 {
			return nil, fmt.Errorf("metadata provider gemini requires GEMINI_API_KEYS")
		}
		return newGemini(secrets.GeminiKeys, cfg.Model, log), nil
	default:
		return nil, fmt.Errorf("unknown metadata provider %q", cfg.Provider)
	}
}
