// Package vision abstracts the AI model call: an image plus a prompt in, a
// text payload out. The analysis engine depends only on this contract, never
// on a specific model's transport.
package vision

import (
	"context"
	"fmt"
	"os"

	"github.com/cascadia-snow/resortwatch/internal/images"
)

// Request carries one image and the prompt to rate it with. Exactly one of
// ImageURL or ImageData is set.
type Request struct {
	ImageURL  string
	ImageData []byte
	Prompt    string
}

// Client is the interface all model providers implement.
type Client interface {
	Analyze(ctx context.Context, req Request) (string, error)
}

// New returns a client for the named provider. An empty name falls back to
// VISION_PROVIDER, then to gemini. An empty model falls back to the
// provider's default.
func New(provider, model string, fetcher *images.Fetcher) (Client, error) {
	if provider == "" {
		provider = os.Getenv("VISION_PROVIDER")
		if provider == "" {
			provider = "gemini"
		}
	}
	if model == "" {
		model = defaultModel(provider)
	}

	switch provider {
	case "gemini":
		return NewGemini(model, fetcher), nil
	case "ollama":
		return NewOllama(model, fetcher), nil
	case "openai":
		return NewOpenAI(model), nil
	default:
		return nil, fmt.Errorf("unsupported vision provider: %s", provider)
	}
}

func defaultModel(provider string) string {
	switch provider {
	case "gemini":
		if model := os.Getenv("GEMINI_MODEL"); model != "" {
			return model
		}
		return "gemini-2.0-flash"
	case "ollama":
		if model := os.Getenv("OLLAMA_MODEL"); model != "" {
			return model
		}
		return "mistral-small3.2:24b"
	case "openai":
		if model := os.Getenv("OPENAI_MODEL"); model != "" {
			return model
		}
		return "gpt-4o"
	default:
		return ""
	}
}
