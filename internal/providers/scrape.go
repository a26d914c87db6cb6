package providers

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"sync"

	"github.com/cascadia-snow/resortwatch/internal/images"
)

// Image paths on the Big White webcams page look like
// /sites/default/files/village_849.jpg, where the digits rotate over time.
var bigWhiteImagePattern = regexp.MustCompile(`/sites/default/files/(\w+)_\d+\.jpg`)

// BigWhite scrapes the Big White webcams page for current image URLs, then
// downloads the resolved image and inlines it.
//
// The scraped name->URL mapping is cached for the lifetime of the process;
// the first caller pays the scrape cost. There is no invalidation: if the
// real URLs rotate mid-run, resolution fails until restart. Two callers
// racing to populate the cache may scrape twice, which is wasteful but never
// incorrect since the overwrite is idempotent.
type BigWhite struct {
	PageURL string
	Fetcher *images.Fetcher

	mu       sync.Mutex
	urlCache map[string]string
}

func NewBigWhite(fetcher *images.Fetcher) *BigWhite {
	return &BigWhite{
		PageURL: "https://www.bigwhite.com/mountain-conditions/webcams",
		Fetcher: fetcher,
	}
}

func (b *BigWhite) Name() string { return "bigwhite" }

func (b *BigWhite) Resolve(ctx context.Context, cameraID string) (ImageRef, error) {
	urls, err := b.webcamURLs(ctx)
	if err != nil {
		return ImageRef{}, err
	}

	imageURL, ok := urls[strings.ToLower(cameraID)]
	if !ok {
		return ImageRef{}, fmt.Errorf("camera %q not found on Big White webcams page", cameraID)
	}

	data, err := b.Fetcher.DownloadBase64(ctx, imageURL)
	if err != nil {
		return ImageRef{}, err
	}
	return ImageRef{URLOrData: data, IsBase64: true}, nil
}

// webcamURLs returns the cached name->URL mapping, scraping the page on first
// use. The scrape itself runs outside the lock.
func (b *BigWhite) webcamURLs(ctx context.Context) (map[string]string, error) {
	b.mu.Lock()
	cached := b.urlCache
	b.mu.Unlock()
	if cached != nil {
		return cached, nil
	}

	scraped, err := b.scrape(ctx)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	b.urlCache = scraped
	b.mu.Unlock()
	return scraped, nil
}

func (b *BigWhite) scrape(ctx context.Context) (map[string]string, error) {
	html, err := b.Fetcher.FetchPage(ctx, b.PageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to scrape Big White webcams page: %w", err)
	}

	root, err := siteRoot(b.PageURL)
	if err != nil {
		return nil, err
	}

	urls := make(map[string]string)
	for _, match := range bigWhiteImagePattern.FindAllStringSubmatch(html, -1) {
		urls[strings.ToLower(match[1])] = root + match[0]
	}

	if len(urls) == 0 {
		return nil, fmt.Errorf("no webcam images found on %s", b.PageURL)
	}
	return urls, nil
}

func siteRoot(pageURL string) (string, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("invalid page URL %q: %w", pageURL, err)
	}
	return u.Scheme + "://" + u.Host, nil
}
