package vision

import (
	"context"
	"fmt"
	"os"

	"github.com/cascadia-snow/resortwatch/internal/images"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Gemini is a vision client backed by Google Gemini.
type Gemini struct {
	Model   string
	Fetcher *images.Fetcher
}

// NewGemini returns a new Gemini client. Gemini takes image bytes, not URLs,
// so URL requests are downloaded through the fetcher first.
func NewGemini(model string, fetcher *images.Fetcher) *Gemini {
	return &Gemini{Model: model, Fetcher: fetcher}
}

func (g *Gemini) Analyze(ctx context.Context, req Request) (string, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return "", fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	imageData := req.ImageData
	if imageData == nil {
		data, err := g.Fetcher.Download(ctx, req.ImageURL)
		if err != nil {
			return "", fmt.Errorf("failed to download image for gemini: %w", err)
		}
		imageData = data
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create new gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(g.Model)
	model.SetTemperature(0.1)
	model.SetMaxOutputTokens(512)

	resp, err := model.GenerateContent(ctx, genai.ImageData("jpeg", imageData), genai.Text(req.Prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates returned from Gemini")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("empty content returned from Gemini")
	}

	if txt, ok := candidate.Content.Parts[0].(genai.Text); ok {
		return string(txt), nil
	}

	return "", fmt.Errorf("unexpected response format from Gemini")
}
