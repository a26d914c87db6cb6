package providers

import (
	"context"
	"fmt"
)

// Brownrice serves static snapshots for Stevens Pass, White Pass, Whistler
// Blackcomb and many Vail resorts. The universal snapshot URL auto-resolves
// to the correct server and always returns the current image.
type Brownrice struct {
	SnapshotURL string
}

func NewBrownrice() *Brownrice {
	return &Brownrice{SnapshotURL: "https://player.brownrice.com/snapshot"}
}

func (b *Brownrice) Name() string { return "brownrice" }

func (b *Brownrice) Resolve(ctx context.Context, cameraID string) (ImageRef, error) {
	return ImageRef{URLOrData: fmt.Sprintf("%s/%s", b.SnapshotURL, cameraID)}, nil
}

// YouTube resolves livestream thumbnails through the stable i.ytimg.com URL
// pattern. The URL is permanent; the image behind it lags by a few minutes.
type YouTube struct {
	ThumbnailURL string
}

func NewYouTube() *YouTube {
	return &YouTube{ThumbnailURL: "https://i.ytimg.com/vi"}
}

func (y *YouTube) Name() string { return "youtube" }

func (y *YouTube) Resolve(ctx context.Context, cameraID string) (ImageRef, error) {
	return ImageRef{URLOrData: fmt.Sprintf("%s/%s/maxresdefault_live.jpg", y.ThumbnailURL, cameraID)}, nil
}
