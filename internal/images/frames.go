package images

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"
)

// FFmpeg extracts single frames from video streams by shelling out to the
// ffmpeg binary.
type FFmpeg struct {
	Binary  string
	Timeout time.Duration
}

// NewFFmpeg creates a frame extractor using the ffmpeg found on PATH.
func NewFFmpeg() *FFmpeg {
	return &FFmpeg{
		Binary:  "ffmpeg",
		Timeout: 30 * time.Second,
	}
}

// ExtractFrame decodes one frame from a stream URL (HLS, RTSP, ...) and
// returns it as base64-encoded JPEG.
func (f *FFmpeg) ExtractFrame(ctx context.Context, streamURL string) (string, error) {
	tmp, err := os.CreateTemp("", "frame-*.jpg")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	ctx, cancel := context.WithTimeout(ctx, f.Timeout)
	defer cancel()

	// -frames:v 1 extracts a single frame, -q:v 2 keeps JPEG quality high.
	cmd := exec.CommandContext(ctx, f.Binary,
		"-y",
		"-i", streamURL,
		"-frames:v", "1",
		"-q:v", "2",
		tmpPath,
	)

	if out, err := cmd.CombinedOutput(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", fmt.Errorf("ffmpeg is required but not found on PATH")
		}
		msg := string(out)
		if len(msg) > 500 {
			msg = msg[:500]
		}
		return "", fmt.Errorf("ffmpeg failed: %s", msg)
	}

	data, err := os.ReadFile(tmpPath)
	if err != nil {
		return "", fmt.Errorf("failed to read extracted frame: %w", err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("ffmpeg produced an empty frame for %s", streamURL)
	}

	return base64.StdEncoding.EncodeToString(data), nil
}
