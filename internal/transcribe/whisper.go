// Package transcribe calls an OpenAI-compatible speech-to-text endpoint and
// returns word-level timestamped transcripts.
package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/mylatinmass/audio-youtube-wf/internal/transcript"
)

// Client posts audio files to a /v1/audio/transcriptions endpoint and parses
// the verbose_json response. Works against OpenAI's hosted API or any
// self-hosted compatible server.
type Client struct {
	url    string
	model  string
	apiKey string
	client *http.Client
}

// Opts are per-request transcription options. The prompt carries domain
// vocabulary (liturgical phrases, Ecclesiastical Latin) so the engine
// recognizes the marker phrase reliably.
type Opts struct {
	Language string
	Prompt   string
}

// NewClient creates a transcription client. apiKey may be empty for
// self-hosted servers that skip auth.
func NewClient(url, model, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Minute
	}
	return &Client{
		url:    url,
		model:  model,
		apiKey: apiKey,
		client: &http.Client{Timeout: timeout},
	}
}

// Transcribe uploads the audio file and returns the parsed transcript.
func (c *Client) Transcribe(ctx context.Context, audioPath string, opts Opts) (*transcript.Transcript, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return nil, fmt.Errorf("open audio file: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, fmt.Errorf("copy audio data: %w", err)
	}

	w.WriteField("model", c.model)
	w.WriteField("response_format", "verbose_json")
	w.WriteField("timestamp_granularities[]", "word")
	w.WriteField("timestamp_granularities[]", "segment")

	lang := opts.Language
	if lang == "" {
		lang = "en"
	}
	w.WriteField("language", lang)

	if opts.Prompt != "" {
		w.WriteField("prompt", opts.Prompt)
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, &buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("transcription request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("transcription server returned %d: %s", resp.StatusCode, truncate(string(body), 300))
	}

	var t transcript.Transcript
	if err := json.Unmarshal(body, &t); err != nil {
		return nil, fmt.Errorf("parse transcription response: %w", err)
	}
	distributeWords(&t)
	return &t, nil
}

// distributeWords assigns a flat top-level word list to segments by time
// range. Some servers emit words only at the top level; the boundary
// detector accepts either form but the segment extractor works best with
// words attached to their segments.
func distributeWords(t *transcript.Transcript) {
	if len(t.Words) == 0 || len(t.Segments) == 0 {
		return
	}
	for i := range t.Segments {
		if len(t.Segments[i].Words) > 0 {
			return
		}
	}

	wi := 0
	for i := range t.Segments {
		seg := &t.Segments[i]
		for wi < len(t.Words) && t.Words[wi].Start < seg.End {
			seg.Words = append(seg.Words, t.Words[wi])
			wi++
		}
	}
	// Trailing words past the last segment's end belong to the last segment.
	if wi < len(t.Words) {
		last := &t.Segments[len(t.Segments)-1]
		last.Words = append(last.Words, t.Words[wi:]...)
	}
	t.Words = nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
