package opentowork

import (
	"errors"
	"image/color"
	"testing"
)

type fakeFetcher struct {
	data  []byte
	err   error
	calls int
}

func (f *fakeFetcher) Fetch(url string) ([]byte, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.data, nil
}

const ringPhotoCard = `<li><img src="https://media.licdn.com/dms/image/profile-displayphoto-shrink_100_100/photo.png" alt=""></li>`

// Each signal is exercised with markup that only that signal can match, so
// the OR semantics are visible per path.
func TestDetectSignalPaths(t *testing.T) {
	tests := []struct {
		name string
		card string
		want bool
	}{
		{
			"text indicator",
			`<li><span>Open to Work</span></li>`,
			true,
		},
		{
			"badge anchor fragment",
			`<li><a href="https://www.linkedin.com/in/x#OPENTOWORK">profile</a></li>`,
			true,
		},
		{
			"badge selector without indicator text",
			`<li><div class="job-seeker-badge"></div></li>`,
			true,
		},
		{
			"photo frame color code",
			`<li><div style="border-color:#01754f"></div></li>`,
			true,
		},
		{
			// The indicator only appears when src and alt are concatenated,
			// so neither the markup scan nor a single attribute matches
			"image attributes combined",
			`<li><img src="https://cdn.example/xopento" alt="workx"></li>`,
			true,
		},
		{
			"plain card",
			`<li><span>Jane Smith</span><div>Engineer at Initech</div></li>`,
			false,
		},
		{
			"empty markup",
			``,
			false,
		},
	}

	d := NewDetector(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.Detect(tt.card); got != tt.want {
				t.Errorf("Detect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectRingSampling(t *testing.T) {
	greenPhoto := encodePNG(t, func(x, y int) color.NRGBA { return ringGreen })
	whitePhoto := encodePNG(t, func(x, y int) color.NRGBA { return white })

	t.Run("green ring photo", func(t *testing.T) {
		f := &fakeFetcher{data: greenPhoto}
		d := NewDetector(f)
		if !d.Detect(ringPhotoCard) {
			t.Error("Detect() = false for a green-ring photo")
		}
		if f.calls != 1 {
			t.Errorf("fetcher called %d times, want 1", f.calls)
		}
	})

	t.Run("plain photo", func(t *testing.T) {
		d := NewDetector(&fakeFetcher{data: whitePhoto})
		if d.Detect(ringPhotoCard) {
			t.Error("Detect() = true for a photo without a ring")
		}
	})

	t.Run("fetch failure is a negative", func(t *testing.T) {
		d := NewDetector(&fakeFetcher{err: errors.New("network down")})
		if d.Detect(ringPhotoCard) {
			t.Error("Detect() must treat a failed fetch as negative")
		}
	})

	t.Run("undecodable bytes are a negative", func(t *testing.T) {
		d := NewDetector(&fakeFetcher{data: []byte("not an image")})
		if d.Detect(ringPhotoCard) {
			t.Error("Detect() must treat a decode failure as negative")
		}
	})

	t.Run("nil fetcher skips sampling", func(t *testing.T) {
		d := NewDetector(nil)
		if d.Detect(ringPhotoCard) {
			t.Error("Detect() = true with sampling disabled")
		}
	})

	t.Run("non-thumbnail images are not fetched", func(t *testing.T) {
		f := &fakeFetcher{data: greenPhoto}
		d := NewDetector(f)
		d.Detect(`<li><img src="https://cdn.example/banner.png"></li>`)
		if f.calls != 0 {
			t.Errorf("fetcher called %d times for a non-profile image", f.calls)
		}
	})
}

func TestDetectOnPage(t *testing.T) {
	d := NewDetector(nil)

	pageWithBadge := `<html><body><div class="pv-open-to-work-card">Open to work</div></body></html>`
	if !d.DetectOnPage(pageWithBadge) {
		t.Error("DetectOnPage() = false for a page with the badge card")
	}

	plainPage := `<html><body><h1>Jane Smith</h1><p>Engineer at Initech</p></body></html>`
	if d.DetectOnPage(plainPage) {
		t.Error("DetectOnPage() = true for a plain profile page")
	}
}
