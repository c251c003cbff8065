package opentowork

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"linkedin-scraper/logger"
)

// textIndicators are matched against lowercased markup and image attributes.
// The list mixes English phrases, the badge anchor fragment, and the locale
// variants seen on non-English LinkedIn.
var textIndicators = []string{
	"open to work",
	"open-to-work",
	"opentowork",
	"#opentowork",
	"open for opportunities",
	"actively seeking",
	"available for hire",
	"à l'écoute d'opportunités", // French
	"offen für neue aufgaben",   // German
	"disponibile a lavorare",    // Italian
}

// badgeSelectors are tried in order against the card scope
var badgeSelectors = []string{
	"[data-test-id='open-to-work-badge']",
	".pv-open-to-work-card",
	".pv-member-badge--is-open-to-work",
	"img[alt*='Open to work']",
	"img[alt*='open to work']",
	"[class*='open-to-work']",
	"[class*='opentowork']",
	"[class*='job-seeker']",
	".member-badge--open-to-work",
	"svg[aria-label*='open to work']",
}

// photoFrameIndicators are class fragments and color codes LinkedIn uses
// for the green photo ring treatment
var photoFrameIndicators = []string{
	"open-to-work-photo-frame",
	"photo-frame--open-to-work",
	"#01754f",
	"rgb(1, 117, 79)",
}

// ImageFetcher retrieves raw image bytes for ring color sampling
type ImageFetcher interface {
	Fetch(url string) ([]byte, error)
}

// Detector classifies a result card as open-to-work or not.
// Five signals are checked in order of cost; any positive wins and every
// per-signal failure counts as a negative, so Detect never fails.
type Detector struct {
	fetcher ImageFetcher
}

// NewDetector creates a Detector. A nil fetcher disables photo-ring
// sampling; the four markup signals still run.
func NewDetector(fetcher ImageFetcher) *Detector {
	return &Detector{fetcher: fetcher}
}

// Detect reports whether the card markup carries any open-to-work signal
func (d *Detector) Detect(cardHTML string) bool {
	lowerHTML := strings.ToLower(cardHTML)

	for _, indicator := range textIndicators {
		if strings.Contains(lowerHTML, indicator) {
			return true
		}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(cardHTML))
	if err != nil {
		logger.Get().Debugf("Failed to parse card markup: %v", err)
		return false
	}

	for _, selector := range badgeSelectors {
		if doc.Find(selector).Length() > 0 {
			return true
		}
	}

	for _, indicator := range photoFrameIndicators {
		if strings.Contains(lowerHTML, indicator) {
			return true
		}
	}

	if d.scanImageAttributes(doc) {
		return true
	}

	return d.sampleProfilePhotos(doc)
}

// DetectOnPage checks a full profile page rather than a result card.
// Only the cheap markup signals apply at page granularity.
func (d *Detector) DetectOnPage(pageHTML string) bool {
	lowerHTML := strings.ToLower(pageHTML)

	for _, indicator := range textIndicators {
		if strings.Contains(lowerHTML, indicator) {
			return true
		}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		logger.Get().Debugf("Failed to parse page markup: %v", err)
		return false
	}

	for _, selector := range badgeSelectors {
		if doc.Find(selector).Length() > 0 {
			return true
		}
	}

	return false
}

// scanImageAttributes checks src+alt of every image against the indicator
// list
func (d *Detector) scanImageAttributes(doc *goquery.Document) bool {
	match := false
	doc.Find("img").EachWithBreak(func(i int, img *goquery.Selection) bool {
		combined := strings.ToLower(img.AttrOr("src", "") + img.AttrOr("alt", ""))
		for _, indicator := range textIndicators {
			if strings.Contains(combined, indicator) {
				match = true
				return false
			}
		}
		return true
	})
	return match
}

// sampleProfilePhotos fetches profile photo thumbnails and samples their
// border ring color. The most expensive signal, so it runs last and only
// on images that look like profile thumbnails.
func (d *Detector) sampleProfilePhotos(doc *goquery.Document) bool {
	if d.fetcher == nil {
		return false
	}

	match := false
	doc.Find("img").EachWithBreak(func(i int, img *goquery.Selection) bool {
		src := img.AttrOr("src", "")
		if !looksLikeProfilePhoto(src) {
			return true
		}

		data, err := d.fetcher.Fetch(src)
		if err != nil {
			logger.Get().Debugf("Failed to fetch photo %s: %v", src, err)
			return true
		}

		green, err := HasGreenRing(data)
		if err != nil {
			logger.Get().Debugf("Failed to sample photo %s: %v", src, err)
			return true
		}
		if green {
			match = true
			return false
		}
		return true
	})
	return match
}
