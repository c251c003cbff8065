package opentowork

import (
	"bytes"
	"fmt"
	"image"
	"math"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

const (
	ringSamples     = 36
	ringRadiusRatio = 0.95
)

// thumbnailSizeTokens appear in LinkedIn profile photo CDN URLs
var thumbnailSizeTokens = []string{
	"shrink_100_100",
	"shrink_200_200",
	"shrink_400_400",
	"100_100",
	"200_200",
}

// looksLikeProfilePhoto reports whether an image URL is plausibly a profile
// photo thumbnail worth fetching for ring sampling
func looksLikeProfilePhoto(src string) bool {
	lower := strings.ToLower(src)
	if !strings.Contains(lower, "profile-displayphoto") {
		return false
	}
	for _, token := range thumbnailSizeTokens {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return false
}

// HasGreenRing decodes an image and samples points around a circle at 95%
// of the radius. More than half the samples matching the LinkedIn ring
// green means the photo carries the open-to-work frame.
func HasGreenRing(data []byte) (bool, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return false, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width == 0 || height == 0 {
		return false, fmt.Errorf("empty image")
	}

	centerX := float64(bounds.Min.X) + float64(width)/2
	centerY := float64(bounds.Min.Y) + float64(height)/2
	radius := math.Min(float64(width), float64(height)) / 2 * ringRadiusRatio

	greenCount := 0
	for i := 0; i < ringSamples; i++ {
		angle := 2 * math.Pi * float64(i) / ringSamples
		x := int(centerX + radius*math.Cos(angle))
		y := int(centerY + radius*math.Sin(angle))

		if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
			continue
		}

		r, g, b, _ := img.At(x, y).RGBA()
		if isRingGreen(uint8(r>>8), uint8(g>>8), uint8(b>>8)) {
			greenCount++
		}
	}

	return greenCount > ringSamples/2, nil
}

// isRingGreen classifies one sampled pixel as LinkedIn ring green
func isRingGreen(r, g, b uint8) bool {
	return g > 120 &&
		g > r && g > b &&
		int(g)-int(r) > 30 &&
		int(g)-int(b) > 20
}
