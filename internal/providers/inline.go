package providers

import (
	"context"
	"fmt"

	"github.com/cascadia-snow/resortwatch/internal/images"
)

// Ski49n downloads images from the 49 Degrees North webcam server and inlines
// them. The address is permanent but the server blocks cloud IPs, so the
// image must be fetched here and embedded rather than referenced by URL.
type Ski49n struct {
	BaseURL string
	Fetcher *images.Fetcher
}

func NewSki49n(fetcher *images.Fetcher) *Ski49n {
	return &Ski49n{
		BaseURL: "https://www.ski49n.com/webcams",
		Fetcher: fetcher,
	}
}

func (s *Ski49n) Name() string { return "ski49n" }

func (s *Ski49n) Resolve(ctx context.Context, cameraID string) (ImageRef, error) {
	url := fmt.Sprintf("%s/%s.jpg", s.BaseURL, cameraID)
	data, err := s.Fetcher.DownloadBase64(ctx, url)
	if err != nil {
		return ImageRef{}, err
	}
	return ImageRef{URLOrData: data, IsBase64: true}, nil
}
