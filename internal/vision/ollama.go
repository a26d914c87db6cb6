package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/cascadia-snow/resortwatch/internal/images"
)

// Ollama is a vision client backed by a local or remote Ollama server.
type Ollama struct {
	Model      string
	Fetcher    *images.Fetcher
	HTTPClient *http.Client
}

func NewOllama(model string, fetcher *images.Fetcher) *Ollama {
	return &Ollama{
		Model:      model,
		Fetcher:    fetcher,
		HTTPClient: &http.Client{},
	}
}

func (o *Ollama) Analyze(ctx context.Context, req Request) (string, error) {
	ollamaURL := os.Getenv("OLLAMA_URL")
	if ollamaURL == "" {
		ollamaURL = os.Getenv("OLLAMA_HOST")
	}
	if ollamaURL == "" {
		ollamaURL = "http://localhost:11434"
	}

	imageData := req.ImageData
	if imageData == nil {
		data, err := o.Fetcher.Download(ctx, req.ImageURL)
		if err != nil {
			return "", fmt.Errorf("failed to download image for ollama: %w", err)
		}
		imageData = data
	}

	requestBody, err := json.Marshal(map[string]interface{}{
		"model":  o.Model,
		"prompt": req.Prompt,
		"images": []string{base64.StdEncoding.EncodeToString(imageData)},
		"stream": false,
		"format": "json",
		"options": map[string]interface{}{
			"temperature": 0.1,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, ollamaURL+"/api/generate", bytes.NewBuffer(requestBody))
	if err != nil {
		return "", fmt.Errorf("failed to create new request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := o.HTTPClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("received non-200 status code: %d - %s", resp.StatusCode, string(body))
	}

	var response struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode response body: %w", err)
	}

	return response.Response, nil
}
