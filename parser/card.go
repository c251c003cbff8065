package parser

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"linkedin-scraper/locator"
	"linkedin-scraper/models"
)

// CardParser turns one search result card into a Profile
type CardParser struct {
	strategies locator.Strategies
}

// NewCardParser creates a CardParser using the given selector strategies
func NewCardParser(strategies locator.Strategies) *CardParser {
	return &CardParser{strategies: strategies}
}

// ParseCard extracts a profile from a card scope. A field whose selectors
// all miss is left empty; the card is only rejected when neither a name nor
// a profile URL could be found.
func (cp *CardParser) ParseCard(card *goquery.Selection, isOpenToWork bool) (*models.Profile, bool) {
	profile := &models.Profile{
		IsOpenToWork: isOpenToWork,
		ScrapedAt:    time.Now(),
	}

	if nameEl, ok := cp.strategies.FirstInSelection(card, locator.FieldName); ok {
		profile.FullName = strings.TrimSpace(nameEl.Text())
	}
	if profile.FullName != "" {
		profile.FirstName, profile.LastName = SplitName(profile.FullName)
	}

	if headlineEl, ok := cp.strategies.FirstInSelection(card, locator.FieldHeadline); ok {
		profile.Headline = strings.TrimSpace(headlineEl.Text())
	}
	if profile.Headline != "" {
		profile.CurrentCompany = ExtractCompany(profile.Headline)
	}

	if locationEl, ok := cp.strategies.FirstInSelection(card, locator.FieldLocation); ok {
		profile.Location = strings.TrimSpace(locationEl.Text())
	}

	if linkEl, ok := cp.strategies.FirstInSelection(card, locator.FieldLink); ok {
		if href, exists := linkEl.Attr("href"); exists {
			profile.ProfileURL = models.CanonicalURL(href)
		}
	}

	if !profile.IsValid() {
		return nil, false
	}
	return profile, true
}

// ParseCardHTML parses a card from its raw HTML. Used where the card was
// captured as markup rather than a live DOM handle.
func (cp *CardParser) ParseCardHTML(cardHTML string, isOpenToWork bool) (*models.Profile, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(cardHTML))
	if err != nil {
		return nil, false
	}
	return cp.ParseCard(doc.Selection, isOpenToWork)
}
