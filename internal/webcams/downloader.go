// Package webcams resolves cameras into ready-to-analyze image references.
package webcams

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cascadia-snow/resortwatch/internal/catalog"
	"github.com/cascadia-snow/resortwatch/internal/providers"
)

// ImageInfo describes one acquired image. It lives for a single analysis
// attempt and is never cached across runs.
type ImageInfo struct {
	Resort *catalog.Resort
	Camera *catalog.Camera
	// URL holds either a fetchable URL or base64 image data, discriminated
	// by IsBase64.
	URL           string
	IsBase64      bool
	ExpiryMinutes *int
}

// Downloader produces ImageInfo values for cataloged cameras.
type Downloader struct {
	catalog  *catalog.Catalog
	registry *providers.Registry
}

func NewDownloader(cat *catalog.Catalog, registry *providers.Registry) *Downloader {
	return &Downloader{catalog: cat, registry: registry}
}

// CameraImage resolves a single camera. Unknown resort, camera, or provider
// names are hard failures here since the camera was explicitly requested.
func (d *Downloader) CameraImage(ctx context.Context, resortKey, cameraID string) (*ImageInfo, error) {
	resort, camera, err := d.catalog.Camera(resortKey, cameraID)
	if err != nil {
		return nil, err
	}

	info, err := d.resolve(ctx, resort, camera)
	if err != nil {
		return nil, err
	}
	return info, nil
}

// ResortImages resolves every camera of a resort. Cameras whose provider
// fails are logged and skipped; they never fail the batch. The returned slice
// may be shorter than the camera list.
func (d *Downloader) ResortImages(ctx context.Context, resortKey string) ([]ImageInfo, error) {
	resort, ok := d.catalog.Resort(resortKey)
	if !ok {
		return nil, fmt.Errorf("unknown resort: %s", resortKey)
	}

	infos := make([]ImageInfo, 0, len(resort.Cameras))
	for i := range resort.Cameras {
		camera := &resort.Cameras[i]
		info, err := d.resolve(ctx, resort, camera)
		if err != nil {
			slog.Warn("Skipping camera", "resort", resortKey, "camera", camera.Name, "error", err)
			continue
		}
		infos = append(infos, *info)
	}
	return infos, nil
}

// AllImages resolves every camera across all resorts, skipping failures.
func (d *Downloader) AllImages(ctx context.Context) []ImageInfo {
	var infos []ImageInfo
	for _, key := range d.catalog.Keys() {
		resortInfos, err := d.ResortImages(ctx, key)
		if err != nil {
			continue
		}
		infos = append(infos, resortInfos...)
	}
	return infos
}

func (d *Downloader) resolve(ctx context.Context, resort *catalog.Resort, camera *catalog.Camera) (*ImageInfo, error) {
	provider, err := d.registry.Get(camera.Provider)
	if err != nil {
		return nil, err
	}

	ref, err := provider.Resolve(ctx, camera.ID)
	if err != nil {
		return nil, err
	}

	return &ImageInfo{
		Resort:        resort,
		Camera:        camera,
		URL:           ref.URLOrData,
		IsBase64:      ref.IsBase64,
		ExpiryMinutes: ref.ExpiryMinutes,
	}, nil
}
