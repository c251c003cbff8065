package scraper

import (
	"fmt"
	"iter"
	"math/rand"
	"time"

	"linkedin-scraper/config"
	"linkedin-scraper/locator"
	"linkedin-scraper/logger"
	"linkedin-scraper/models"
	"linkedin-scraper/opentowork"
	"linkedin-scraper/pace"
	"linkedin-scraper/parser"
)

// scrollCyclesPerPage is how many scroll+pause rounds run before card
// discovery, enough to trigger lazy rendering of the result list
const scrollCyclesPerPage = 3

// Options control one search traversal
type Options struct {
	JobTitle       string
	Location       string
	MaxProfiles    int
	OpenToWorkOnly bool
}

// State is the mutable traversal bookkeeping for one run. It belongs to a
// single Scraper instance and is reset at the start of every traversal.
type State struct {
	Collected    int
	TotalScanned int
	SeenURLs     map[string]struct{}
	PageNumber   int
}

// Scraper drives the search result traversal: scrolling, card discovery,
// classification, extraction, dedup, quota enforcement, and pagination
type Scraper struct {
	cfg        *config.Config
	session    *Session
	pacer      *pace.Pacer
	strategies locator.Strategies
	detector   *opentowork.Detector
	cards      *parser.CardParser
	rng        *rand.Rand
	state      State
}

// New creates a Scraper around an already-constructed session
func New(cfg *config.Config, session *Session, pacer *pace.Pacer, strategies locator.Strategies, detector *opentowork.Detector) *Scraper {
	return &Scraper{
		cfg:        cfg,
		session:    session,
		pacer:      pacer,
		strategies: strategies,
		detector:   detector,
		cards:      parser.NewCardParser(strategies),
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// State returns a snapshot of the traversal bookkeeping
func (s *Scraper) State() State {
	return s.state
}

// ScrapeSearchResults returns a lazy, single-pass sequence of profiles
// matching the search. Profiles are yielded as soon as they are accepted;
// the consumer may stop iterating at any point and the session stays open
// (it belongs to the caller).
//
// The stream ends cleanly when the requested maximum is collected, the
// session scan ceiling is hit, a page has no cards, or no working
// pagination control remains. Authentication failure produces an empty
// stream, not an error.
func (s *Scraper) ScrapeSearchResults(opts Options) iter.Seq[models.Profile] {
	return func(yield func(models.Profile) bool) {
		log := logger.Get()

		maxProfiles := opts.MaxProfiles
		if maxProfiles <= 0 || maxProfiles > s.cfg.MaxProfilesPerSession {
			maxProfiles = s.cfg.MaxProfilesPerSession
		}
		opts.MaxProfiles = maxProfiles

		if !s.session.IsLoggedIn() {
			if !s.session.WaitForLogin(s.cfg.LoginTimeout) {
				log.Error("Could not log in to LinkedIn, nothing to scrape")
				return
			}
		}

		searchURL := BuildSearchURL(s.cfg.SearchURL, opts.JobTitle, opts.Location)
		if opts.Location != "" {
			log.Infof("Navigating to search: %s in %s", opts.JobTitle, opts.Location)
		} else {
			log.Infof("Navigating to search: %s", opts.JobTitle)
		}

		if err := s.session.Navigate(searchURL); err != nil {
			log.Errorf("Failed to open search results: %v", err)
			return
		}
		s.pacer.HumanDelay(3*time.Second, 5*time.Second)

		s.state = State{
			SeenURLs:   make(map[string]struct{}),
			PageNumber: 1,
		}

		for {
			for i := 0; i < scrollCyclesPerPage; i++ {
				s.scrollPage()
				s.pacer.HumanDelay(1*time.Second, 2*time.Second)
			}

			cardHTML := s.currentPageCards()
			if len(cardHTML) == 0 {
				log.Warn("No profile cards found on page, treating as end of results")
				return
			}
			log.Infof("Page %d: Found %d profile cards", s.state.PageNumber, len(cardHTML))

			if !s.collectFromCards(cardHTML, opts, yield) {
				return
			}

			if !s.goToNextPage() {
				log.Info("No more pages available")
				return
			}
			s.state.PageNumber++
			s.pacer.HumanDelay(2*time.Second, 4*time.Second)
		}
	}
}

// currentPageCards resolves the card container list and snapshots each
// card's markup. A card whose HTML cannot be read is skipped.
func (s *Scraper) currentPageCards() []string {
	page := s.session.Page()

	elements, ok := s.strategies.ElementsOnPage(page, locator.FieldContainer)
	if !ok {
		var err error
		elements, err = page.Elements(locator.GenericContainerSelector)
		if err != nil {
			logger.Get().Debugf("Generic container selector failed: %v", err)
			return nil
		}
	}

	cardHTML := make([]string, 0, len(elements))
	for _, el := range elements {
		html, err := el.HTML()
		if err != nil {
			logger.Get().Debugf("Failed to read card markup: %v", err)
			continue
		}
		cardHTML = append(cardHTML, html)
	}
	return cardHTML
}

// collectFromCards runs the per-card pipeline over one page of cards:
// classify, extract, dedup, enforce quotas, filter, yield. Returns false
// when the traversal must stop (quota hit, ceiling hit, or the consumer
// stopped pulling).
func (s *Scraper) collectFromCards(cardHTML []string, opts Options, yield func(models.Profile) bool) bool {
	log := logger.Get()

	for _, html := range cardHTML {
		if s.state.Collected >= opts.MaxProfiles {
			log.Infof("Collected %d profiles, stopping", s.state.Collected)
			return false
		}

		isOpen := s.detector.Detect(html)

		profile, ok := s.cards.ParseCardHTML(html, isOpen)
		if !ok {
			continue
		}

		if _, seen := s.state.SeenURLs[profile.ProfileURL]; seen {
			continue
		}

		if s.state.TotalScanned >= s.cfg.MaxProfilesPerSession {
			log.Warn("Session scan limit reached")
			return false
		}
		s.state.SeenURLs[profile.ProfileURL] = struct{}{}
		s.state.TotalScanned++

		if opts.OpenToWorkOnly && !profile.IsOpenToWork {
			continue
		}

		s.state.Collected++
		if !yield(*profile) {
			return false
		}

		if s.state.Collected >= opts.MaxProfiles {
			log.Infof("Collected %d profiles, stopping", s.state.Collected)
			return false
		}
	}
	return true
}

// scrollPage scrolls down a random amount to trigger lazy loading and
// reports whether the document grew
func (s *Scraper) scrollPage() bool {
	page := s.session.Page()

	prevHeight := s.pageHeight()

	amount := 300 + s.rng.Intn(301)
	if _, err := page.Eval(fmt.Sprintf("() => window.scrollBy(0, %d)", amount)); err != nil {
		logger.Get().Debugf("Scroll error: %v", err)
		return false
	}
	s.pacer.ScrollPause()
	s.pacer.RecordAction()

	return s.pageHeight() > prevHeight
}

func (s *Scraper) pageHeight() int {
	res, err := s.session.Page().Eval("() => document.body.scrollHeight")
	if err != nil {
		return 0
	}
	return res.Value.Int()
}

// goToNextPage clicks the first visible, enabled pagination control from
// the localized strategy list. When nothing matches it scrolls to the
// bottom (pagination renders lazily) and tries once more. A missing
// control is the end-of-results signal, not an error.
func (s *Scraper) goToNextPage() bool {
	if s.clickNextButton() {
		return true
	}

	page := s.session.Page()
	if _, err := page.Eval("() => window.scrollTo(0, document.body.scrollHeight)"); err != nil {
		logger.Get().Debugf("Scroll to bottom failed: %v", err)
		return false
	}
	s.pacer.HumanDelay(1*time.Second, 2*time.Second)

	return s.clickNextButton()
}

func (s *Scraper) clickNextButton() bool {
	log := logger.Get()
	page := s.session.Page()

	for _, selector := range s.strategies[locator.FieldNextButton] {
		elements, err := page.Elements(selector)
		if err != nil || len(elements) == 0 {
			continue
		}
		btn := elements.First()

		visible, err := btn.Visible()
		if err != nil || !visible {
			continue
		}

		if disabled, err := btn.Attribute("disabled"); err == nil && disabled != nil {
			continue
		}

		s.pacer.HumanDelayDefault()
		if err := btn.Click("left", 1); err != nil {
			log.Debugf("Failed to click next button %s: %v", selector, err)
			continue
		}
		s.pacer.HumanDelay(2*time.Second, 4*time.Second)
		s.pacer.RecordAction()

		page.WaitLoad()
		log.Debugf("Navigated to next page using: %s", selector)
		return true
	}
	return false
}
