package parser

import (
	"testing"

	"linkedin-scraper/locator"
)

const sampleCard = `
<li class="reusable-search__result-container">
  <div class="entity-result__title-text">
    <a href="https://www.linkedin.com/in/john-doe?miniProfileUrn=abc123">
      <span aria-hidden="true">John Doe (PhD)</span>
    </a>
  </div>
  <div class="entity-result__primary-subtitle">Software Engineer at Google</div>
  <div class="entity-result__secondary-subtitle">London, England</div>
</li>`

func TestParseCardHTML(t *testing.T) {
	cp := NewCardParser(locator.Defaults())

	profile, ok := cp.ParseCardHTML(sampleCard, true)
	if !ok {
		t.Fatal("ParseCardHTML() rejected a valid card")
	}

	if profile.FullName != "John Doe (PhD)" {
		t.Errorf("FullName = %q, want %q", profile.FullName, "John Doe (PhD)")
	}
	if profile.FirstName != "John" || profile.LastName != "Doe" {
		t.Errorf("split name = (%q, %q), want (John, Doe)", profile.FirstName, profile.LastName)
	}
	if profile.Headline != "Software Engineer at Google" {
		t.Errorf("Headline = %q", profile.Headline)
	}
	if profile.CurrentCompany != "Google" {
		t.Errorf("CurrentCompany = %q, want Google", profile.CurrentCompany)
	}
	if profile.Location != "London, England" {
		t.Errorf("Location = %q", profile.Location)
	}
	if profile.ProfileURL != "https://www.linkedin.com/in/john-doe" {
		t.Errorf("ProfileURL = %q, want query string stripped", profile.ProfileURL)
	}
	if !profile.IsOpenToWork {
		t.Error("IsOpenToWork should carry the classifier result")
	}
	if profile.ScrapedAt.IsZero() {
		t.Error("ScrapedAt should be set at creation")
	}
}

func TestParseCardHTMLFallbackSelectors(t *testing.T) {
	// Older markup variant: .actor-name and .subline-level-1 instead of
	// the entity-result classes
	card := `
	<li class="search-result__wrapper">
	  <span class="actor-name">Jane Smith</span>
	  <div class="subline-level-1">Designer chez Renault</div>
	  <div class="subline-level-2">Paris</div>
	  <a class="app-aware-link" href="https://www.linkedin.com/in/jane-smith?trk=xyz"></a>
	</li>`

	cp := NewCardParser(locator.Defaults())
	profile, ok := cp.ParseCardHTML(card, false)
	if !ok {
		t.Fatal("ParseCardHTML() rejected a valid legacy card")
	}

	if profile.FullName != "Jane Smith" {
		t.Errorf("FullName = %q, want Jane Smith", profile.FullName)
	}
	if profile.CurrentCompany != "Renault" {
		t.Errorf("CurrentCompany = %q, want Renault", profile.CurrentCompany)
	}
	if profile.ProfileURL != "https://www.linkedin.com/in/jane-smith" {
		t.Errorf("ProfileURL = %q", profile.ProfileURL)
	}
}

func TestParseCardHTMLInvalid(t *testing.T) {
	tests := []struct {
		name string
		card string
	}{
		{"empty card", `<li class="reusable-search__result-container"></li>`},
		{"no name and no link", `<li><div class="entity-result__primary-subtitle">Engineer</div></li>`},
	}

	cp := NewCardParser(locator.Defaults())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := cp.ParseCardHTML(tt.card, false); ok {
				t.Error("ParseCardHTML() accepted a card with neither name nor URL")
			}
		})
	}
}

func TestParseCardHTMLPartialFields(t *testing.T) {
	// A link alone is enough: missing fields stay empty instead of
	// aborting the card
	card := `<li><a class="app-aware-link" href="https://www.linkedin.com/in/ghost?x=1"></a></li>`

	cp := NewCardParser(locator.Defaults())
	profile, ok := cp.ParseCardHTML(card, false)
	if !ok {
		t.Fatal("ParseCardHTML() rejected a card that has a profile URL")
	}
	if profile.FullName != "" || profile.Headline != "" || profile.Location != "" {
		t.Error("missing fields should stay empty")
	}
	if profile.ProfileURL != "https://www.linkedin.com/in/ghost" {
		t.Errorf("ProfileURL = %q", profile.ProfileURL)
	}
}
