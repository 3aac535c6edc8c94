package metadata

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/mylatinmass/audio-youtube-wf/internal/logger"
)

type implOpenAI struct {
	client *openai.Client
	model  string
	logger logger.Logger
}

func newOpenAI(apiKey, model string, log logger.Logger) Provider {
	return &implOpenAI{
		client: openai.NewClient(apiKey),
		model:  model,
		logger: log,
	}
}

func (p *implOpenAI) GenerateMDX(ctx context.Context, homilyText string) (string, error) {
	p.logger.Info(ctx, "Generating MDX with %s (%d chars of transcript)", p.model, len(homilyText))

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:               p.model,
		MaxCompletionTokens: 16000,
		Temperature:         0.7,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(homilyText, time.Now())},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from %s", p.model)
	}

	return stripCodeFence(resp.Choices[0].Message.Content), nil
}
