// Package analysis drives the per-camera model calls and their retry policy.
package analysis

import (
	"context"
	"encoding/base64"
	"log/slog"
	"sync"
	"time"

	"github.com/cascadia-snow/resortwatch/internal/vision"
	"github.com/cascadia-snow/resortwatch/internal/webcams"
)

// CameraAnalysis is one rating attempt's outcome for one camera. Exactly one
// of Rating and Error is set.
type CameraAnalysis struct {
	ResortName string
	CameraName string
	Rating     *Rating
	Error      string
	// Echoed for display.
	ImageURL string
	IsBase64 bool
}

// Analyzer rates acquired webcam images through a vision client.
type Analyzer struct {
	Client vision.Client
	// MaxRetries is the total number of attempts per camera.
	MaxRetries  int
	RetryDelay  time.Duration
	CallTimeout time.Duration
	Concurrency int

	sleep func(time.Duration)
}

func NewAnalyzer(client vision.Client) *Analyzer {
	return &Analyzer{
		Client:      client,
		MaxRetries:  3,
		RetryDelay:  time.Second,
		CallTimeout: 60 * time.Second,
		Concurrency: 4,
		sleep:       time.Sleep,
	}
}

// AnalyzeCamera produces exactly one CameraAnalysis for an acquired image.
// Any failure (network, malformed response, bad scores) is retried up to
// MaxRetries total attempts with a short delay; the final attempt's error is
// what gets recorded.
func (a *Analyzer) AnalyzeCamera(ctx context.Context, info webcams.ImageInfo) CameraAnalysis {
	analysis := CameraAnalysis{
		ResortName: info.Resort.Name,
		CameraName: info.Camera.Name,
		ImageURL:   info.URL,
		IsBase64:   info.IsBase64,
	}

	categories := info.Camera.CategoryNames()
	req := vision.Request{Prompt: BuildPrompt(categories)}
	if info.IsBase64 {
		data, err := base64.StdEncoding.DecodeString(info.URL)
		if err != nil {
			analysis.Error = "invalid base64 image data: " + err.Error()
			return analysis
		}
		req.ImageData = data
	} else {
		req.ImageURL = info.URL
	}

	var lastErr error
	for attempt := 1; attempt <= a.MaxRetries; attempt++ {
		rating, err := a.rate(ctx, req, categories)
		if err == nil {
			analysis.Rating = rating
			return analysis
		}

		lastErr = err
		slog.Warn("Analysis attempt failed",
			"camera", info.Camera.Name,
			"attempt", attempt,
			"error", err)
		if attempt < a.MaxRetries {
			a.sleep(a.RetryDelay)
		}
	}

	analysis.Error = lastErr.Error()
	return analysis
}

func (a *Analyzer) rate(ctx context.Context, req vision.Request, categories []string) (*Rating, error) {
	callCtx, cancel := context.WithTimeout(ctx, a.CallTimeout)
	defer cancel()

	raw, err := a.Client.Analyze(callCtx, req)
	if err != nil {
		return nil, err
	}
	return ParseRating(raw, categories)
}

// AnalyzeResort rates all acquired images of one resort in parallel, bounded
// by Concurrency, and joins before returning. Cameras with no requested
// categories are never sent to the model. Completion order is not
// significant.
func (a *Analyzer) AnalyzeResort(ctx context.Context, infos []webcams.ImageInfo) []CameraAnalysis {
	rated := make([]webcams.ImageInfo, 0, len(infos))
	for _, info := range infos {
		if len(info.Camera.Categories) == 0 {
			slog.Info("Camera has no rating categories, skipping analysis", "camera", info.Camera.Name)
			continue
		}
		rated = append(rated, info)
	}

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, a.Concurrency)
	results := make(chan CameraAnalysis, len(rated))

	for _, info := range rated {
		wg.Add(1)
		go func(info webcams.ImageInfo) {
			defer wg.Done()
			semaphore <- struct{}{}        // Acquire
			defer func() { <-semaphore }() // Release

			results <- a.AnalyzeCamera(ctx, info)
		}(info)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	analyses := make([]CameraAnalysis, 0, len(rated))
	for analysis := range results {
		analyses = append(analyses, analysis)
	}
	return analyses
}
