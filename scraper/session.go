package scraper

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/stealth"

	"linkedin-scraper/config"
	"linkedin-scraper/logger"
	"linkedin-scraper/pace"
)

// SessionState tracks where the browser session is in its lifecycle
type SessionState string

const (
	StateNotStarted SessionState = "not_started"
	StateStarted    SessionState = "started"
	StateLoggedIn   SessionState = "logged_in"
	StateLoggedOut  SessionState = "logged_out"
	StateClosed     SessionState = "closed"
)

// ErrProfileLocked means another running instance holds the persistent
// Chrome profile. This is fatal: retrying cannot help and an ephemeral
// fallback would silently lose the login.
var ErrProfileLocked = errors.New("chrome profile is locked by another running instance")

// loggedInIndicators are DOM elements only present on an authenticated page
var loggedInIndicators = []string{
	"nav.global-nav",
	"[data-control-name='nav.settings']",
	".feed-identity-module",
	".global-nav__me",
}

// Session owns the browser for one scraping run: launch, login detection,
// the manual-login wait, and teardown
type Session struct {
	cfg       *config.Config
	pacer     *pace.Pacer
	launcher  *launcher.Launcher
	browser   *rod.Browser
	page      *rod.Page
	state     SessionState
	ephemeral bool
}

// NewSession creates a Session; the browser is not launched until Start
func NewSession(cfg *config.Config, pacer *pace.Pacer) *Session {
	return &Session{
		cfg:   cfg,
		pacer: pacer,
		state: StateNotStarted,
	}
}

// Start launches Chrome with the persistent user profile so an existing
// LinkedIn login carries over. If the profile cannot be used for any reason
// other than lock contention, it falls back to an ephemeral session and the
// user will have to log in again.
func (s *Session) Start() error {
	log := logger.Get()
	log.Info("Starting browser...")

	userDataDir := s.cfg.ChromeUserDataDir
	if userDataDir == "" {
		userDataDir = defaultChromeUserDataDir()
	}
	log.Infof("Using Chrome profile: %s", userDataDir)

	controlURL, err := s.newLauncher().UserDataDir(userDataDir).Launch()
	if err != nil {
		if isProfileLockError(err) {
			return fmt.Errorf("%w: close the other instance and retry", ErrProfileLocked)
		}

		log.Warnf("Failed to launch with persistent profile: %v", err)
		log.Info("Falling back to a fresh browser instance, login will be required")

		controlURL, err = s.newLauncher().Launch()
		if err != nil {
			return fmt.Errorf("failed to launch browser: %w", err)
		}
		s.ephemeral = true
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return fmt.Errorf("failed to connect to browser: %w", err)
	}
	s.browser = browser

	page, err := stealth.Page(browser)
	if err != nil {
		s.browser.Close()
		return fmt.Errorf("failed to open page: %w", err)
	}
	s.page = page

	s.state = StateStarted
	log.Info("Browser started successfully")
	return nil
}

// newLauncher builds a launcher with the anti-automation-detection flags
func (s *Session) newLauncher() *launcher.Launcher {
	l := launcher.New().
		Headless(s.cfg.Headless).
		Leakless(false).
		Set("disable-blink-features", "AutomationControlled").
		Set("disable-infobars").
		Set("start-maximized").
		Set("no-first-run").
		Set("no-default-browser-check").
		Set("disable-dev-shm-usage")

	if bin := findChromeBinary(); bin != "" {
		l = l.Bin(bin)
	}
	s.launcher = l
	return l
}

// State returns the current lifecycle state
func (s *Session) State() SessionState {
	return s.state
}

// Ephemeral reports whether the session fell back to a fresh profile
func (s *Session) Ephemeral() bool {
	return s.ephemeral
}

// Page returns the session's page for traversal use
func (s *Session) Page() *rod.Page {
	return s.page
}

// Navigate loads a URL and waits until the document is parseable
func (s *Session) Navigate(url string) error {
	if err := s.page.Navigate(url); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	s.page.WaitLoad()
	if err := s.page.Timeout(10 * time.Second).WaitStable(500 * time.Millisecond); err != nil {
		logger.Get().Debugf("Page did not stabilize, continuing anyway: %v", err)
	}
	return nil
}

// IsLoggedIn navigates to the landing page and classifies the login state
// from the current URL and a few authenticated-only DOM indicators.
// Anything ambiguous counts as logged out.
func (s *Session) IsLoggedIn() bool {
	log := logger.Get()

	if err := s.Navigate(s.cfg.BaseURL); err != nil {
		log.Errorf("Error checking login status: %v", err)
		s.state = StateLoggedOut
		return false
	}
	s.pacer.HumanDelay(2*time.Second, 4*time.Second)

	info, err := s.page.Info()
	if err != nil {
		log.Errorf("Error reading page info: %v", err)
		s.state = StateLoggedOut
		return false
	}

	if strings.Contains(info.URL, "/login") || strings.Contains(info.URL, "/checkpoint") {
		s.state = StateLoggedOut
		return false
	}

	if strings.Contains(info.URL, "/feed") {
		s.state = StateLoggedIn
		return true
	}

	for _, selector := range loggedInIndicators {
		elements, err := s.page.Elements(selector)
		if err != nil {
			continue
		}
		if len(elements) > 0 {
			s.state = StateLoggedIn
			return true
		}
	}

	s.state = StateLoggedOut
	return false
}

// WaitForLogin opens the login page and polls until the user finishes
// logging in manually or the timeout elapses
func (s *Session) WaitForLogin(timeout time.Duration) bool {
	log := logger.Get()
	log.Info("Please log in to LinkedIn in the browser window...")
	log.Infof("Waiting up to %.0f seconds...", timeout.Seconds())

	if err := s.Navigate(s.cfg.BaseURL + "/login"); err != nil {
		log.Errorf("Failed to open login page: %v", err)
		return false
	}

	deadline := time.Now().Add(timeout)
	for {
		if time.Now().After(deadline) {
			log.Error("Login timeout exceeded")
			return false
		}

		if s.IsLoggedIn() {
			log.Info("Login successful!")
			return true
		}

		s.pacer.HumanDelay(2*time.Second, 3*time.Second)
	}
}

// FetchProfilePage loads a single profile URL and returns its rendered HTML
func (s *Session) FetchProfilePage(url string) (string, error) {
	if err := s.Navigate(url); err != nil {
		return "", err
	}
	s.pacer.HumanDelayDefault()

	html, err := s.page.HTML()
	if err != nil {
		return "", fmt.Errorf("failed to get page HTML: %w", err)
	}
	return html, nil
}

// Close releases the browser and launcher. Safe to call more than once and
// on a session that never started.
func (s *Session) Close() error {
	if s.state == StateClosed || s.state == StateNotStarted {
		s.state = StateClosed
		return nil
	}

	var err error
	if s.browser != nil {
		err = s.browser.Close()
		s.browser = nil
	}
	if s.launcher != nil {
		s.launcher.Cleanup()
		s.launcher = nil
	}
	s.page = nil
	s.state = StateClosed
	logger.Get().Info("Browser closed")
	return err
}

// isProfileLockError recognizes Chrome's profile-in-use failures
func isProfileLockError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "SingletonLock") ||
		strings.Contains(msg, "ProcessSingleton") ||
		strings.Contains(msg, "user data directory is already in use")
}

// defaultChromeUserDataDir returns the platform's Chrome profile directory
func defaultChromeUserDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	switch runtime.GOOS {
	case "windows":
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			return filepath.Join(localAppData, "Google", "Chrome", "User Data")
		}
		return filepath.Join(home, "AppData", "Local", "Google", "Chrome", "User Data")
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Google", "Chrome")
	default:
		return filepath.Join(home, ".config", "google-chrome")
	}
}

// findChromeBinary probes the usual install locations so rod does not have
// to download its own Chromium
func findChromeBinary() string {
	var candidates []string

	switch runtime.GOOS {
	case "windows":
		candidates = []string{
			`C:\Program Files\Google\Chrome\Application\chrome.exe`,
			`C:\Program Files (x86)\Google\Chrome\Application\chrome.exe`,
		}
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			candidates = append(candidates, filepath.Join(localAppData, "Google", "Chrome", "Application", "chrome.exe"))
		}
	case "darwin":
		candidates = []string{
			"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
		}
	default:
		candidates = []string{
			"/usr/bin/google-chrome",
			"/usr/bin/google-chrome-stable",
			"/usr/bin/chromium",
			"/usr/bin/chromium-browser",
			"/snap/bin/chromium",
		}
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
