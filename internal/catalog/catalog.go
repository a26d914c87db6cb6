package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Category is one rated dimension of webcam conditions.
type Category string

const (
	SnowQuality Category = "snow_quality"
	Visibility  Category = "visibility"
	Weather     Category = "weather_conditions"
	Activity    Category = "activity"
)

// AllCategories lists every category a camera may request.
var AllCategories = []Category{SnowQuality, Visibility, Weather, Activity}

// Camera represents a single webcam.
type Camera struct {
	ID         string     `yaml:"id"`
	Name       string     `yaml:"name"`
	Provider   string     `yaml:"provider"`
	Categories []Category `yaml:"categories"`
}

// CategoryNames returns the category names to evaluate for this camera.
func (c *Camera) CategoryNames() []string {
	names := make([]string, 0, len(c.Categories))
	for _, cat := range c.Categories {
		names = append(names, string(cat))
	}
	return names
}

// Resort represents a ski resort with webcams.
type Resort struct {
	Key     string   `yaml:"key"`
	Name    string   `yaml:"name"`
	Website string   `yaml:"website"`
	Region  string   `yaml:"region"`
	Cameras []Camera `yaml:"cameras"`
}

// Catalog is the static registry of resorts and their cameras. It is built
// once at startup and read-only afterwards.
type Catalog struct {
	keys    []string
	resorts map[string]*Resort
}

//go:embed resorts.yaml
var defaultResorts []byte

type catalogFile struct {
	Resorts []Resort `yaml:"resorts"`
}

// Load parses and validates a catalog from YAML.
func Load(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	cat := &Catalog{resorts: make(map[string]*Resort, len(file.Resorts))}
	for i := range file.Resorts {
		resort := &file.Resorts[i]
		if resort.Key == "" {
			return nil, fmt.Errorf("resort %q has no key", resort.Name)
		}
		if _, exists := cat.resorts[resort.Key]; exists {
			return nil, fmt.Errorf("duplicate resort key: %s", resort.Key)
		}
		for _, camera := range resort.Cameras {
			if camera.ID == "" || camera.Provider == "" {
				return nil, fmt.Errorf("camera %q in resort %s needs an id and a provider", camera.Name, resort.Key)
			}
			for _, category := range camera.Categories {
				if !validCategory(category) {
					return nil, fmt.Errorf("camera %q in resort %s has unknown category %q", camera.Name, resort.Key, category)
				}
			}
		}
		cat.keys = append(cat.keys, resort.Key)
		cat.resorts[resort.Key] = resort
	}

	return cat, nil
}

// LoadFile loads a catalog from a YAML file on disk.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return Load(data)
}

// Default returns the catalog built from the embedded resort definitions.
func Default() (*Catalog, error) {
	return Load(defaultResorts)
}

// Keys returns resort keys in catalog order.
func (c *Catalog) Keys() []string {
	keys := make([]string, len(c.keys))
	copy(keys, c.keys)
	return keys
}

// Resort looks up a resort by key.
func (c *Catalog) Resort(key string) (*Resort, bool) {
	resort, ok := c.resorts[key]
	return resort, ok
}

// Camera looks up a single camera by resort key and camera id.
func (c *Catalog) Camera(resortKey, cameraID string) (*Resort, *Camera, error) {
	resort, ok := c.resorts[resortKey]
	if !ok {
		return nil, nil, fmt.Errorf("unknown resort: %s", resortKey)
	}
	for i := range resort.Cameras {
		if resort.Cameras[i].ID == cameraID {
			return resort, &resort.Cameras[i], nil
		}
	}
	return nil, nil, fmt.Errorf("unknown camera: %s for resort %s", cameraID, resortKey)
}

func validCategory(c Category) bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}
