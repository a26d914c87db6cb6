// Package results owns the persisted JSON results document. Its schema is the
// contract the viewer consumes and must stay stable.
package results

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/cascadia-snow/resortwatch/internal/analysis"
	"github.com/cascadia-snow/resortwatch/internal/ranking"
)

// Document is the top-level persisted result.
type Document struct {
	UpdatedAt time.Time      `json:"updated_at"`
	Resorts   []ResortResult `json:"resorts"`
}

// ResortResult is one resort's entry, in ranked order.
type ResortResult struct {
	ResortName string         `json:"resort_name"`
	ResortKey  string         `json:"resort_key"`
	Cameras    []CameraResult `json:"cameras"`
}

// CameraResult records one camera's outcome. Rating and Error are mutually
// exclusive; the unset one serializes as null.
type CameraResult struct {
	CameraName string  `json:"camera_name"`
	ImageURL   string  `json:"image_url"`
	IsBase64   bool    `json:"is_base64"`
	Rating     *Rating `json:"rating"`
	Error      *string `json:"error"`
}

// Rating mirrors analysis.Rating in the wire format.
type Rating struct {
	Confidence int            `json:"confidence"`
	Notes      string         `json:"notes"`
	Categories map[string]int `json:"categories"`
}

// FromSummaries converts ranked summaries into a document stamped with the
// current time.
func FromSummaries(summaries []ranking.ResortSummary) Document {
	doc := Document{
		UpdatedAt: time.Now().UTC(),
		Resorts:   make([]ResortResult, 0, len(summaries)),
	}

	for _, summary := range summaries {
		resort := ResortResult{
			ResortName: summary.ResortName,
			ResortKey:  summary.ResortKey,
			Cameras:    make([]CameraResult, 0, len(summary.CameraAnalyses)),
		}
		for _, a := range summary.CameraAnalyses {
			resort.Cameras = append(resort.Cameras, cameraResult(a))
		}
		doc.Resorts = append(doc.Resorts, resort)
	}
	return doc
}

func cameraResult(a analysis.CameraAnalysis) CameraResult {
	result := CameraResult{
		CameraName: a.CameraName,
		ImageURL:   a.ImageURL,
		IsBase64:   a.IsBase64,
	}
	if a.Rating != nil {
		result.Rating = &Rating{
			Confidence: a.Rating.Confidence,
			Notes:      a.Rating.Notes,
			Categories: a.Rating.Categories,
		}
	}
	if a.Error != "" {
		msg := a.Error
		result.Error = &msg
	}
	return result
}

// Save writes the document as indented JSON.
func (d Document) Save(path string) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write results file: %w", err)
	}
	return nil
}

// Load reads a document from disk.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read results file: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse results file: %w", err)
	}
	return &doc, nil
}

// RankedResort is a resort's standing computed from a saved document.
type RankedResort struct {
	ResortName      string             `json:"resort_name"`
	ResortKey       string             `json:"resort_key"`
	CompositeScore  float64            `json:"composite_score"`
	Averages        map[string]float64 `json:"averages"`
	CamerasAnalyzed int                `json:"cameras_analyzed"`
	CamerasTotal    int                `json:"cameras_total"`
}

// Rankings recomputes per-resort averages and composites from the document,
// sorted best first. Document order breaks ties.
func (d *Document) Rankings() []RankedResort {
	ranked := make([]RankedResort, 0, len(d.Resorts))
	for _, resort := range d.Resorts {
		entry := RankedResort{
			ResortName:   resort.ResortName,
			ResortKey:    resort.ResortKey,
			CamerasTotal: len(resort.Cameras),
		}

		var ratings []map[string]float64
		for _, camera := range resort.Cameras {
			if camera.Rating == nil {
				continue
			}
			entry.CamerasAnalyzed++
			rating := make(map[string]float64, len(camera.Rating.Categories)+1)
			for category, score := range camera.Rating.Categories {
				rating[category] = float64(score)
			}
			rating["confidence"] = float64(camera.Rating.Confidence)
			ratings = append(ratings, rating)
		}

		entry.Averages, entry.CompositeScore = ranking.CalcAverages(ratings)
		ranked = append(ranked, entry)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].CompositeScore > ranked[j].CompositeScore
	})
	return ranked
}
