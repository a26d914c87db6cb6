// Package providers turns camera identifiers into usable image references.
//
// URL permanence varies by provider. Permanent references can be handed to
// the model as-is; temporary or blocked sources are downloaded and inlined as
// base64 instead.
package providers

import (
	"context"
	"fmt"

	"github.com/cascadia-snow/resortwatch/internal/images"
)

// ImageRef is a resolved image reference: either a fetchable URL or inline
// base64 data.
type ImageRef struct {
	URLOrData string
	IsBase64  bool
	// ExpiryMinutes is nil for permanent references; otherwise how many
	// minutes the underlying source reference stays fresh.
	ExpiryMinutes *int
}

// Provider resolves a camera id to an image reference.
type Provider interface {
	Name() string
	Resolve(ctx context.Context, cameraID string) (ImageRef, error)
}

// FrameExtractor decodes one still frame from a video stream URL, returned as
// base64-encoded image data.
type FrameExtractor interface {
	ExtractFrame(ctx context.Context, streamURL string) (string, error)
}

// Registry maps provider names to implementations.
type Registry struct {
	providers map[string]Provider
}

// NewRegistry builds a registry with all built-in providers wired to the
// given fetcher and frame extractor.
func NewRegistry(fetcher *images.Fetcher, extractor FrameExtractor) *Registry {
	r := &Registry{providers: make(map[string]Provider)}
	r.Register(NewBrownrice())
	r.Register(NewYouTube())
	r.Register(NewSki49n(fetcher))
	r.Register(NewWetMet(fetcher, extractor))
	r.Register(NewBigWhite(fetcher))
	return r
}

// Register adds or replaces a provider.
func (r *Registry) Register(p Provider) {
	r.providers[p.Name()] = p
}

// Get returns the provider for a name. Unknown names are configuration
// errors.
func (r *Registry) Get(name string) (Provider, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("unknown provider: %s", name)
	}
	return p, nil
}

func minutes(n int) *int {
	return &n
}
