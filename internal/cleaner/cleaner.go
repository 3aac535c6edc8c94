// Package cleaner submits audio to an Auphonic-style cleanup service and
// retrieves the processed result: start a production, poll until done,
// download the output file.
package cleaner

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
	"regexp"
	"strings"
	"time"
)

// Client talks to the cleanup API. PollInterval defaults to 10s and exists
// as a field so tests can shrink it.
type Client struct {
	baseURL      string
	apiKey       string
	preset       string
	client       *http.Client
	PollInterval time.Duration
}

func New(baseURL, apiKey, preset string) *Client {
	return &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		apiKey:       apiKey,
		preset:       preset,
		client:       &http.Client{Timeout: 5 * time.Minute},
		PollInterval: 10 * time.Second,
	}
}

// Production is the cleanup service's view of one submitted job.
type Production struct {
	UUID           string `json:"uuid"`
	StatusString   string `json:"status_string"`
	ErrorMessage   string `json:"error_message"`
	OutputBasename string `json:"output_basename"`
	OutputFiles    []struct {
		Ending      string `json:"ending"`
		DownloadURL string `json:"download_url"`
	} `json:"output_files"`
}

type productionResponse struct {
	Data Production `json:"data"`
}

// Start uploads the audio file and begins a production. Returns the
// production UUID used for subsequent polling and download.
func (c *Client) Start(ctx context.Context, audioPath string) (string, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return "", fmt.Errorf("open audio: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("input_file", filepath.Base(audioPath))
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return "", fmt.Errorf("copy audio: %w", err)
	}
	w.WriteField("preset", c.preset)
	w.WriteField("title", kebabCase(filepath.Base(audioPath)))
	w.WriteField("action", "start")
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("close multipart writer: %w", err)
	}

	var resp productionResponse
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/simple/productions.json", &buf, w.FormDataContentType(), &resp); err != nil {
		return "", fmt.Errorf("start production: %w", err)
	}
	if resp.Data.UUID == "" {
		return "", fmt.Errorf("start production: no uuid in response")
	}
	return resp.Data.UUID, nil
}

// Await polls the production status until it reports done. A production
// status of error or failed is terminal and returned as an error.
func (c *Client) Await(ctx context.Context, uuid string) (*Production, error) {
	url := fmt.Sprintf("%s/production/%s.json", c.baseURL, uuid)

	for {
		var resp productionResponse
		if err := c.do(ctx, http.MethodGet, url, nil, "", &resp); err != nil {
			return nil, fmt.Errorf("poll production: %w", err)
		}

		switch strings.ToLower(resp.Data.StatusString) {
		case "done":
			return &resp.Data, nil
		case "error", "failed":
			return nil, fmt.Errorf("production failed: %s", resp.Data.ErrorMessage)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.PollInterval):
		}
	}
}

// Download waits for the production to finish and saves the first output
// file into dir, returning its local path.
func (c *Client) Download(ctx context.Context, uuid, dir string) (string, error) {
	data, err := c.Await(ctx, uuid)
	if err != nil {
		return "", err
	}
	if len(data.OutputFiles) == 0 {
		return "", fmt.Errorf("production %s finished with no output files", uuid)
	}

	out := data.OutputFiles[0]
	url := out.DownloadURL
	if url == "" {
		url = fmt.Sprintf("%s/download/audio-result/%s/%s.%s", c.baseURL, uuid, data.OutputBasename, out.Ending)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create download request: %w", err)
	}
	req.Header.Set("Authorization", "bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download returned %d", resp.StatusCode)
	}

	ending := out.Ending
	if ending == "" {
		ending = "mp3"
	}
	local := filepath.Join(dir, fmt.Sprintf("%s.%s", data.OutputBasename, ending))
	f, err := os.Create(local)
	if err != nil {
		return "", fmt.Errorf("create output file: %w", err)
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		return "", fmt.Errorf("write output file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return local, nil
}

func (c *Client) do(ctx context.Context, method, url string, body io.Reader, contentType string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "bearer "+c.apiKey)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

var (
	kebabSpaceRe = regexp.MustCompile(`[\s_]+`)
	kebabJunkRe  = regexp.MustCompile(`[^a-z0-9-]`)
	kebabDashRe  = regexp.MustCompile(`-+`)
)

// kebabCase converts a filename to a lowercase dash-separated title with the
// extension removed.
func kebabCase(filename string) string {
	name := strings.TrimSuffix(filename, filepath.Ext(filename))
	name = kebabSpaceRe.ReplaceAllString(name, "-")
	name = kebabJunkRe.ReplaceAllString(strings.ToLower(name), "")
	name = kebabDashRe.ReplaceAllString(name, "-")
	return strings.Trim(name, "-")
}
