package pace

import (
	"math/rand"
	"time"

	"linkedin-scraper/config"
	"linkedin-scraper/logger"
)

// Pacer owns the humanized delay policy for one scraping session.
// A single action counter drives the periodic long pause, so the aggregate
// interaction rate stays bounded no matter which code path performs the
// action.
type Pacer struct {
	minDelay    time.Duration
	maxDelay    time.Duration
	scrollBase  time.Duration
	longEvery   int
	longBase    time.Duration
	actionCount int
	rng         *rand.Rand
	sleep       func(time.Duration)
}

// New creates a Pacer from configuration
func New(cfg *config.Config) *Pacer {
	return &Pacer{
		minDelay:   cfg.MinDelay,
		maxDelay:   cfg.MaxDelay,
		scrollBase: cfg.ScrollPause,
		longEvery:  cfg.LongPauseInterval,
		longBase:   cfg.LongPauseDuration,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
		sleep:      time.Sleep,
	}
}

// HumanDelay sleeps for a uniform random duration in [min, max]
func (p *Pacer) HumanDelay(min, max time.Duration) {
	p.sleep(p.uniform(min, max))
}

// HumanDelayDefault sleeps using the configured default delay bounds
func (p *Pacer) HumanDelayDefault() {
	p.HumanDelay(p.minDelay, p.maxDelay)
}

// ScrollPause sleeps for a short random duration after a scroll
func (p *Pacer) ScrollPause() {
	p.sleep(p.uniform(p.scrollBase, p.scrollBase+500*time.Millisecond))
}

// RecordAction increments the action counter and inserts a long pause
// every longEvery actions to break up the automation rhythm
func (p *Pacer) RecordAction() {
	p.actionCount++

	if p.longEvery > 0 && p.actionCount%p.longEvery == 0 {
		logger.Get().Infof("Taking a break after %d actions...", p.actionCount)
		p.sleep(p.longPauseDuration())
	}
}

// Actions returns how many humanized actions have been recorded
func (p *Pacer) Actions() int {
	return p.actionCount
}

// longPauseDuration is base plus uniform(-5s, +10s), floored at 10s
func (p *Pacer) longPauseDuration() time.Duration {
	variation := p.uniform(-5*time.Second, 10*time.Second)
	duration := p.longBase + variation
	if duration < 10*time.Second {
		duration = 10 * time.Second
	}
	return duration
}

func (p *Pacer) uniform(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(p.rng.Int63n(int64(max-min)))
}
