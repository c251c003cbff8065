package locator

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/go-rod/rod"
)

// Field names a logical piece of a search result the scraper needs to find.
// Each field maps to an ordered list of selector strategies; earlier entries
// are the current LinkedIn markup, later ones cover older variants.
type Field string

const (
	FieldContainer  Field = "container"
	FieldName       Field = "name"
	FieldHeadline   Field = "headline"
	FieldLocation   Field = "location"
	FieldLink       Field = "link"
	FieldNextButton Field = "next"
)

// GenericContainerSelector is the last-resort card container selector used
// when every configured strategy comes up empty
const GenericContainerSelector = "li.reusable-search__result-container"

// Strategies maps each field to its ordered selector fallback chain
type Strategies map[Field][]string

// Defaults returns a fresh copy of the built-in strategy lists
func Defaults() Strategies {
	return Strategies{
		FieldContainer: {
			"li.reusable-search__result-container",
			"[data-chameleon-result-urn]",
			".search-result__wrapper",
		},
		FieldName: {
			".entity-result__title-text a span[aria-hidden='true']",
			".entity-result__title-text a",
			".actor-name",
			"span.name",
		},
		FieldHeadline: {
			".entity-result__primary-subtitle",
			".search-result__snippets",
			".subline-level-1",
		},
		FieldLocation: {
			".entity-result__secondary-subtitle",
			".subline-level-2",
		},
		FieldLink: {
			".entity-result__title-text a",
			"a[data-control-name='search_srp_result']",
			"a.app-aware-link",
		},
		FieldNextButton: {
			"button[aria-label='Next']",
			"button[aria-label='Suivant']", // French
			"button[aria-label='Weiter']",  // German
			"a[aria-label='Next']",
			"a[aria-label='Suivant']",
			"button.artdeco-pagination__button--next",
			"button[class*='pagination__button--next']",
			"li.artdeco-pagination__indicator--number:last-child button",
		},
	}
}

// Apply merges override lists on top of the defaults. An override replaces
// the whole chain for its field so ordering stays under the operator's
// control.
func (s Strategies) Apply(overrides map[string][]string) {
	for field, selectors := range overrides {
		if len(selectors) > 0 {
			s[Field(field)] = selectors
		}
	}
}

// FirstInSelection tries each strategy for the field against a parsed card
// scope and returns the first selector with at least one match
func (s Strategies) FirstInSelection(scope *goquery.Selection, field Field) (*goquery.Selection, bool) {
	for _, selector := range s[field] {
		found := scope.Find(selector)
		if found.Length() > 0 {
			return found.First(), true
		}
	}
	return nil, false
}

// ElementsOnPage tries each strategy for the field against a live page and
// returns the first non-empty element list. Individual selector errors are
// swallowed; a broken strategy just moves on to the next one.
func (s Strategies) ElementsOnPage(page *rod.Page, field Field) (rod.Elements, bool) {
	for _, selector := range s[field] {
		elements, err := page.Elements(selector)
		if err != nil {
			continue
		}
		if len(elements) > 0 {
			return elements, true
		}
	}
	return nil, false
}
