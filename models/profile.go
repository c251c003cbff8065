package models

import (
	"strings"
	"time"
)

// Profile represents one scraped LinkedIn profile
type Profile struct {
	FirstName      string
	LastName       string
	FullName       string
	Headline       string
	CurrentCompany string
	Location       string
	ProfileURL     string // canonical, query string stripped; dedup key
	IsOpenToWork   bool
	ScrapedAt      time.Time
}

// ExportHeaders is the column order used by every exporter
var ExportHeaders = []string{
	"first_name",
	"last_name",
	"full_name",
	"headline",
	"current_company",
	"location",
	"profile_url",
	"is_open_to_work",
	"scraped_at",
}

// IsValid reports whether the profile satisfies the minimum requirement
// to be emitted: a name or a URL
func (p *Profile) IsValid() bool {
	return p.FullName != "" || p.ProfileURL != ""
}

// ToRow converts the profile to a row matching ExportHeaders
func (p *Profile) ToRow() []string {
	openToWork := "false"
	if p.IsOpenToWork {
		openToWork = "true"
	}
	return []string{
		p.FirstName,
		p.LastName,
		p.FullName,
		p.Headline,
		p.CurrentCompany,
		p.Location,
		p.ProfileURL,
		openToWork,
		p.ScrapedAt.Format(time.RFC3339),
	}
}

// CanonicalURL strips the query string from a profile URL so the same
// profile reached through different tracking parameters dedups to one key.
// Applying it twice is the same as applying it once.
func CanonicalURL(rawURL string) string {
	if idx := strings.Index(rawURL, "?"); idx != -1 {
		return rawURL[:idx]
	}
	return rawURL
}
