package catalog

import "testing"

func TestDefaultCatalog(t *testing.T) {
	cat, err := Default()
	if err != nil {
		t.Fatalf("Default() returned error: %v", err)
	}

	keys := cat.Keys()
	if len(keys) == 0 {
		t.Fatal("expected at least one resort in the default catalog")
	}
	if keys[0] != "stevens_pass" {
		t.Errorf("expected first resort key stevens_pass, got %s", keys[0])
	}

	resort, ok := cat.Resort("stevens_pass")
	if !ok {
		t.Fatal("stevens_pass not found")
	}
	if resort.Name != "Stevens Pass" {
		t.Errorf("expected resort name Stevens Pass, got %s", resort.Name)
	}
	if resort.Region != "Washington" {
		t.Errorf("expected region Washington, got %s", resort.Region)
	}
	if len(resort.Cameras) != 5 {
		t.Errorf("expected 5 cameras, got %d", len(resort.Cameras))
	}
}

func TestDefaultCatalogProvidersAndCategories(t *testing.T) {
	cat, err := Default()
	if err != nil {
		t.Fatalf("Default() returned error: %v", err)
	}

	known := map[string]bool{
		"brownrice": true,
		"youtube":   true,
		"ski49n":    true,
		"wetmet":    true,
		"bigwhite":  true,
	}

	for _, key := range cat.Keys() {
		resort, _ := cat.Resort(key)
		for _, camera := range resort.Cameras {
			if !known[camera.Provider] {
				t.Errorf("camera %s/%s uses unknown provider %q", key, camera.ID, camera.Provider)
			}
		}
	}
}

func TestCameraLookup(t *testing.T) {
	cat, err := Default()
	if err != nil {
		t.Fatalf("Default() returned error: %v", err)
	}

	resort, camera, err := cat.Camera("big_white", "powpow")
	if err != nil {
		t.Fatalf("Camera() returned error: %v", err)
	}
	if resort.Key != "big_white" {
		t.Errorf("expected resort key big_white, got %s", resort.Key)
	}
	if camera.Name != "Pow Cam" {
		t.Errorf("expected camera name Pow Cam, got %s", camera.Name)
	}
	names := camera.CategoryNames()
	if len(names) != 1 || names[0] != "snow_quality" {
		t.Errorf("expected categories [snow_quality], got %v", names)
	}

	if _, _, err := cat.Camera("big_white", "nope"); err == nil {
		t.Error("expected error for unknown camera")
	}
	if _, _, err := cat.Camera("nope", "powpow"); err == nil {
		t.Error("expected error for unknown resort")
	}
}

func TestLoadRejectsUnknownCategory(t *testing.T) {
	data := []byte(`
resorts:
  - key: test
    name: Test
    cameras:
      - id: cam1
        name: Cam 1
        provider: brownrice
        categories: [snowiness]
`)
	if _, err := Load(data); err == nil {
		t.Error("expected error for unknown category")
	}
}

func TestLoadRejectsDuplicateKeys(t *testing.T) {
	data := []byte(`
resorts:
  - key: test
    name: Test A
  - key: test
    name: Test B
`)
	if _, err := Load(data); err == nil {
		t.Error("expected error for duplicate resort key")
	}
}

func TestLoadEmptyCategoriesAllowed(t *testing.T) {
	data := []byte(`
resorts:
  - key: test
    name: Test
    cameras:
      - id: cam1
        name: Viewer Only
        provider: youtube
        categories: []
`)
	cat, err := Load(data)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	_, camera, err := cat.Camera("test", "cam1")
	if err != nil {
		t.Fatalf("Camera() returned error: %v", err)
	}
	if len(camera.CategoryNames()) != 0 {
		t.Errorf("expected no categories, got %v", camera.CategoryNames())
	}
}
