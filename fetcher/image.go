package fetcher

import (
	"fmt"
	"time"

	"github.com/gocolly/colly/v2"

	"linkedin-scraper/logger"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// ImageFetcher downloads image bytes through colly, rate limited on the
// LinkedIn CDN
type ImageFetcher struct {
	collector *colly.Collector
	body      []byte
}

// NewImageFetcher creates an ImageFetcher for the LinkedIn media CDN
func NewImageFetcher() *ImageFetcher {
	f := &ImageFetcher{}

	c := colly.NewCollector(
		colly.UserAgent(userAgent),
		colly.AllowURLRevisit(),
	)
	c.SetRequestTimeout(10 * time.Second)

	c.Limit(&colly.LimitRule{
		DomainGlob:  "*licdn.com*",
		Parallelism: 1,
		Delay:       1 * time.Second,
	})

	c.OnResponse(func(r *colly.Response) {
		f.body = append([]byte(nil), r.Body...)
	})

	c.OnError(func(r *colly.Response, err error) {
		logger.Get().Debugf("Error fetching %s: %v", r.Request.URL, err)
	})

	f.collector = c
	return f
}

// Fetch downloads one image and returns its raw bytes. The scraper is
// single-threaded so requests never overlap.
func (f *ImageFetcher) Fetch(url string) ([]byte, error) {
	f.body = nil

	if err := f.collector.Visit(url); err != nil {
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	f.collector.Wait()

	if f.body == nil {
		return nil, fmt.Errorf("no response body for %s", url)
	}
	return f.body, nil
}
