package monitor

import (
	"math/rand"
	"sync"
	"time"
)

// Snapshot is the current view of the simulated usage stream.
type Snapshot struct {
	Timestamp string    `json:"timestamp"`
	UsageData []float64 `json:"usage_data"`
	Message   string    `json:"message"`
}

// LiveMonitor samples a simulated electricity usage reading on a fixed
// interval into a bounded window. Readings are uniform in [700, 1200) kW.
type LiveMonitor struct {
	mu        sync.RWMutex
	readings  []float64
	window    int
	threshold float64
	interval  time.Duration
	stop      chan struct{}
	stopOnce  sync.Once
	rng       *rand.Rand
}

func NewLiveMonitor(interval time.Duration, window int, threshold float64) *LiveMonitor {
	if window <= 0 {
		window = 30
	}
	if threshold <= 0 {
		threshold = 1000
	}
	return &LiveMonitor{
		window:    window,
		threshold: threshold,
		interval:  interval,
		stop:      make(chan struct{}),
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Start launches the background sampler. It returns immediately.
func (m *LiveMonitor) Start() {
	go func() {
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.Sample()
			case <-m.stop:
				return
			}
		}
	}()
}

// Stop halts the background sampler. Safe to call more than once.
func (m *LiveMonitor) Stop() {
	m.stopOnce.Do(func() { close(m.stop) })
}

// Sample appends one reading, evicting the oldest when the window is full.
func (m *LiveMonitor) Sample() {
	m.mu.Lock()
	defer m.mu.Unlock()

	usage := 700 + m.rng.Float64()*500
	usage = float64(int(usage*100)) / 100

	m.readings = append(m.readings, usage)
	if len(m.readings) > m.window {
		m.readings = m.readings[1:]
	}
}

// Record appends an explicit reading; used by tests and manual feeds.
func (m *LiveMonitor) Record(usage float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.readings = append(m.readings, usage)
	if len(m.readings) > m.window {
		m.readings = m.readings[1:]
	}
}

// Snapshot returns the window plus an advisory message derived from the
// mean of the last three readings.
func (m *LiveMonitor) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data := make([]float64, len(m.readings))
	copy(data, m.readings)

	message := "Collecting initial readings..."
	if len(data) >= 3 {
		recent := data[len(data)-3:]
		var sum float64
		for _, u := range recent {
			sum += u
		}
		avg := sum / float64(len(recent))

		switch {
		case avg > m.threshold:
			message = "High energy usage detected! Please minimize electricity consumption."
		case avg < 800:
			message = "Excellent efficiency! Emissions predicted to remain well below threshold."
		default:
			message = "Stable usage - keep monitoring for sustainable operation."
		}
	}

	return Snapshot{
		Timestamp: time.Now().Format("15:04:05"),
		UsageData: data,
		Message:   message,
	}
}
