package monitoring

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ProgressMonitor tracks a batch of games and periodically logs how far it got
type ProgressMonitor struct {
	mu            sync.RWMutex
	total         int
	started       int
	finished      int
	failed        int
	active        int
	peakActive    int
	outcomes      map[string]int
	startedAt     time.Time
	checkInterval time.Duration
	stopChan      chan struct{}
	stopOnce      sync.Once
	logger        zerolog.Logger
}

// NewProgressMonitor creates a monitor for a batch of total games. A zero
// interval disables periodic logging.
func NewProgressMonitor(total int, interval time.Duration, logger zerolog.Logger) *ProgressMonitor {
	return &ProgressMonitor{
		total:         total,
		outcomes:      make(map[string]int),
		startedAt:     time.Now(),
		checkInterval: interval,
		stopChan:      make(chan struct{}),
		logger:        logger.With().Str("component", "ProgressMonitor").Logger(),
	}
}

// Start begins periodic progress logging
func (pm *ProgressMonitor) Start() {
	if pm.checkInterval <= 0 {
		return
	}
	go pm.monitor()
	pm.logger.Info().
		Int("total", pm.total).
		Dur("interval", pm.checkInterval).
		Msg("Started progress monitoring")
}

// Stop ends periodic logging. Safe to call more than once.
func (pm *ProgressMonitor) Stop() {
	pm.stopOnce.Do(func() { close(pm.stopChan) })
}

func (pm *ProgressMonitor) monitor() {
	defer func() {
		if r := recover(); r != nil {
			pm.logger.Error().
				Interface("panic", r).
				Msg("Progress monitor panicked")
		}
	}()

	ticker := time.NewTicker(pm.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pm.logProgress()
		case <-pm.stopChan:
			return
		}
	}
}

func (pm *ProgressMonitor) logProgress() {
	m := pm.GetMetrics()
	pm.logger.Info().
		Int("finished", m.Finished).
		Int("total", m.Total).
		Int("active", m.Active).
		Int("failed", m.Failed).
		Float64("games_per_sec", m.GamesPerSecond).
		Msg("Simulation progress")
}

// GameStarted records a game being picked up by a worker
func (pm *ProgressMonitor) GameStarted() {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.started++
	pm.active++
	if pm.active > pm.peakActive {
		pm.peakActive = pm.active
	}
}

// GameFinished records a finished game under its outcome label, or a failure
func (pm *ProgressMonitor) GameFinished(outcome string, err error) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.active--
	if err != nil {
		pm.failed++
		return
	}
	pm.finished++
	pm.outcomes[outcome]++
}

// GetMetrics returns a snapshot of the progress so far
func (pm *ProgressMonitor) GetMetrics() ProgressMetrics {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	elapsed := time.Since(pm.startedAt)
	rate := 0.0
	if secs := elapsed.Seconds(); secs > 0 {
		rate = float64(pm.finished) / secs
	}
	return ProgressMetrics{
		Total:          pm.total,
		Started:        pm.started,
		Finished:       pm.finished,
		Failed:         pm.failed,
		Active:         pm.active,
		PeakActive:     pm.peakActive,
		Outcomes:       copyMap(pm.outcomes),
		Elapsed:        elapsed,
		GamesPerSecond: rate,
	}
}

// ProgressMetrics contains batch progress statistics
type ProgressMetrics struct {
	Total          int            `json:"total"`
	Started        int            `json:"started"`
	Finished       int            `json:"finished"`
	Failed         int            `json:"failed"`
	Active         int            `json:"active"`
	PeakActive     int            `json:"peak_active"`
	Outcomes       map[string]int `json:"outcomes"`
	Elapsed        time.Duration  `json:"elapsed"`
	GamesPerSecond float64        `json:"games_per_sec"`
}

func copyMap(m map[string]int) map[string]int {
	result := make(map[string]int, len(m))
	for k, v := range m {
		result[k] = v
	}
	return result
}
