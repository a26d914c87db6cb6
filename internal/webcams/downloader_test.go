package webcams

import (
	"context"
	"errors"
	"testing"

	"github.com/cascadia-snow/resortwatch/internal/catalog"
	"github.com/cascadia-snow/resortwatch/internal/providers"
)

type fakeProvider struct {
	name string
	ref  providers.ImageRef
	err  error
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Resolve(ctx context.Context, cameraID string) (providers.ImageRef, error) {
	if f.err != nil {
		return providers.ImageRef{}, f.err
	}
	ref := f.ref
	if ref.URLOrData == "" {
		ref.URLOrData = "https://img.example/" + cameraID
	}
	return ref, nil
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	data := []byte(`
resorts:
  - key: alpine
    name: Alpine
    cameras:
      - id: summit
        name: Summit
        provider: good
        categories: [snow_quality]
      - id: base
        name: Base
        provider: broken
        categories: [visibility]
      - id: lodge
        name: Lodge
        provider: good
        categories: [activity]
`)
	cat, err := catalog.Load(data)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	return cat
}

func testRegistry(expiry *int) *providers.Registry {
	r := providers.NewRegistry(nil, nil)
	r.Register(&fakeProvider{name: "good", ref: providers.ImageRef{ExpiryMinutes: expiry}})
	r.Register(&fakeProvider{name: "broken", err: errors.New("camera offline")})
	return r
}

func TestResortImagesSkipsFailedCameras(t *testing.T) {
	expiry := 30
	d := NewDownloader(testCatalog(t), testRegistry(&expiry))

	infos, err := d.ResortImages(context.Background(), "alpine")
	if err != nil {
		t.Fatalf("ResortImages() returned error: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("expected 2 images after skipping the broken camera, got %d", len(infos))
	}

	first := infos[0]
	if first.Resort.Key != "alpine" {
		t.Errorf("expected resort key alpine, got %s", first.Resort.Key)
	}
	if first.Camera.Name != "Summit" {
		t.Errorf("expected first camera Summit, got %s", first.Camera.Name)
	}
	if first.URL != "https://img.example/summit" {
		t.Errorf("unexpected image URL: %s", first.URL)
	}
	if first.ExpiryMinutes == nil || *first.ExpiryMinutes != 30 {
		t.Errorf("expected expiry 30, got %v", first.ExpiryMinutes)
	}
	if infos[1].Camera.Name != "Lodge" {
		t.Errorf("expected camera order preserved, got %s", infos[1].Camera.Name)
	}
}

func TestResortImagesUnknownResort(t *testing.T) {
	d := NewDownloader(testCatalog(t), testRegistry(nil))
	if _, err := d.ResortImages(context.Background(), "nowhere"); err == nil {
		t.Error("expected error for unknown resort")
	}
}

func TestCameraImageHardFailures(t *testing.T) {
	d := NewDownloader(testCatalog(t), testRegistry(nil))

	info, err := d.CameraImage(context.Background(), "alpine", "summit")
	if err != nil {
		t.Fatalf("CameraImage() returned error: %v", err)
	}
	if info.Camera.ID != "summit" {
		t.Errorf("expected camera summit, got %s", info.Camera.ID)
	}

	if _, err := d.CameraImage(context.Background(), "alpine", "base"); err == nil {
		t.Error("expected provider failure to surface for an explicitly requested camera")
	}
	if _, err := d.CameraImage(context.Background(), "alpine", "ghost"); err == nil {
		t.Error("expected error for unknown camera")
	}
}

func TestAllImages(t *testing.T) {
	d := NewDownloader(testCatalog(t), testRegistry(nil))

	infos := d.AllImages(context.Background())
	if len(infos) != 2 {
		t.Errorf("expected 2 images across all resorts, got %d", len(infos))
	}
}
