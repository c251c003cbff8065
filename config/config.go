package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all runtime settings. Values come from the environment
// (optionally seeded from a .env file) with sensible defaults.
type Config struct {
	// Delay settings
	MinDelay          time.Duration
	MaxDelay          time.Duration
	ScrollPause       time.Duration
	LongPauseInterval int
	LongPauseDuration time.Duration

	// Safety limits
	MaxProfilesPerSession int
	LoginTimeout          time.Duration

	// Browser
	ChromeUserDataDir string
	Headless          bool

	// LinkedIn URLs
	BaseURL   string
	SearchURL string

	// Output
	OutputDir string
}

// Load reads .env (if present) and builds the configuration from the
// environment. A missing .env file is not an error.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		MinDelay:              secondsEnv("MIN_DELAY", 2),
		MaxDelay:              secondsEnv("MAX_DELAY", 5),
		ScrollPause:           secondsEnv("SCROLL_PAUSE", 1),
		LongPauseInterval:     intEnv("LONG_PAUSE_INTERVAL", 50),
		LongPauseDuration:     secondsEnv("LONG_PAUSE_DURATION", 30),
		MaxProfilesPerSession: intEnv("MAX_PROFILES_PER_SESSION", 500),
		LoginTimeout:          secondsEnv("LOGIN_TIMEOUT", 300),
		ChromeUserDataDir:     os.Getenv("CHROME_USER_DATA_DIR"),
		Headless:              boolEnv("HEADLESS", false),
		BaseURL:               stringEnv("LINKEDIN_BASE_URL", "https://www.linkedin.com"),
		SearchURL:             stringEnv("LINKEDIN_SEARCH_URL", "https://www.linkedin.com/search/results/people/"),
		OutputDir:             stringEnv("OUTPUT_DIR", "output"),
	}
}

// EnsureOutputDir creates the output directory if necessary and returns it
func (c *Config) EnsureOutputDir() (string, error) {
	if err := os.MkdirAll(c.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", c.OutputDir, err)
	}
	return c.OutputDir, nil
}

func stringEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func intEnv(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func boolEnv(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}

func secondsEnv(key string, defaultValue float64) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return time.Duration(defaultValue * float64(time.Second))
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return time.Duration(defaultValue * float64(time.Second))
	}
	return time.Duration(f * float64(time.Second))
}

// SelectorOverrides replaces or extends the built-in selector strategy lists
// for individual fields. LinkedIn renames classes often enough that shipping
// a new selector should not require a rebuild.
type SelectorOverrides struct {
	Selectors map[string][]string `yaml:"selectors"`
}

// LoadSelectorOverrides parses a YAML selector override file
func LoadSelectorOverrides(path string) (*SelectorOverrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read selector file: %w", err)
	}

	var overrides SelectorOverrides
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("failed to parse selector file: %w", err)
	}

	return &overrides, nil
}
