package metrics

import (
	"sync"
	"time"
)

// Metrics counts quiz activity for the /metrics endpoint.
type Metrics struct {
	mu               sync.RWMutex
	attemptsStarted  int64
	answersSubmitted int64
	attemptsFinished int64
	attemptsFailed   int64
	resultsAppended  int64
	lastUpdateTime   time.Time
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	AttemptsStarted  int64     `json:"attemptsStarted"`
	AnswersSubmitted int64     `json:"answersSubmitted"`
	AttemptsFinished int64     `json:"attemptsFinished"`
	AttemptsFailed   int64     `json:"attemptsFailed"`
	ResultsAppended  int64     `json:"resultsAppended"`
	LastUpdateTime   time.Time `json:"lastUpdateTime"`
}

func NewMetrics() *Metrics {
	return &Metrics{
		lastUpdateTime: time.Now(),
	}
}

func (m *Metrics) IncrementAttemptsStarted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attemptsStarted++
	m.lastUpdateTime = time.Now()
}

func (m *Metrics) IncrementAnswersSubmitted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.answersSubmitted++
	m.lastUpdateTime = time.Now()
}

// IncrementOutcome records a terminal outcome; finished selects which counter.
func (m *Metrics) IncrementOutcome(finished bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if finished {
		m.attemptsFinished++
	} else {
		m.attemptsFailed++
	}
	m.resultsAppended++
	m.lastUpdateTime = time.Now()
}

func (m *Metrics) GetSnapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Snapshot{
		AttemptsStarted:  m.attemptsStarted,
		AnswersSubmitted: m.answersSubmitted,
		AttemptsFinished: m.attemptsFinished,
		AttemptsFailed:   m.attemptsFailed,
		ResultsAppended:  m.resultsAppended,
		LastUpdateTime:   m.lastUpdateTime,
	}
}
