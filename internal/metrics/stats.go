package metrics

import (
	"sync"
	"time"
)

const defaultRecentScans = 20

// ScanRecord is one finished content load. Posts is zero for failed loads.
type ScanRecord struct {
	Trigger    string    `json:"trigger"`
	At         time.Time `json:"at"`
	DurationMs int64     `json:"duration_ms"`
	Posts      int       `json:"posts"`
	Error      string    `json:"error,omitempty"`
}

// TriggerCounts tallies the loads started by one trigger.
type TriggerCounts struct {
	Runs     int `json:"runs"`
	Failures int `json:"failures"`
}

// ScanSummary is the JSON view of a ScanLog. Latency distributions are in
// the ScanDuration histogram.
type ScanSummary struct {
	Count       int                      `json:"count"`
	Failures    int                      `json:"failures"`
	ByTrigger   map[string]TriggerCounts `json:"by_trigger"`
	LastSuccess *time.Time               `json:"last_success,omitempty"`
	LastFailure *ScanRecord              `json:"last_failure,omitempty"`
	Recent      []ScanRecord             `json:"recent"`
}

// ScanLog keeps per-trigger counters and the most recent loads.
type ScanLog struct {
	mu          sync.Mutex
	keep        int
	recent      []ScanRecord // oldest first, at most keep
	byTrigger   map[string]TriggerCounts
	lastSuccess time.Time
	lastFailure *ScanRecord
	now         func() time.Time
}

// NewScanLog keeps the last keep loads. keep <= 0 means 20.
func NewScanLog(keep int) *ScanLog {
	if keep <= 0 {
		keep = defaultRecentScans
	}
	return &ScanLog{
		keep:      keep,
		recent:    make([]ScanRecord, 0, keep),
		byTrigger: make(map[string]TriggerCounts),
		now:       time.Now,
	}
}

// Record adds one finished load.
func (l *ScanLog) Record(trigger string, d time.Duration, size int, err error) {
	rec := ScanRecord{
		Trigger:    trigger,
		At:         l.now(),
		DurationMs: max(d.Milliseconds(), 0),
		Posts:      size,
	}
	if err != nil {
		rec.Posts = 0
		rec.Error = err.Error()
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	counts := l.byTrigger[trigger]
	counts.Runs++
	if err != nil {
		counts.Failures++
		failed := rec
		l.lastFailure = &failed
	} else {
		l.lastSuccess = rec.At
	}
	l.byTrigger[trigger] = counts

	if len(l.recent) == l.keep {
		copy(l.recent, l.recent[1:])
		l.recent = l.recent[:l.keep-1]
	}
	l.recent = append(l.recent, rec)
}

// Summary returns the counters and the recent loads, newest first.
func (l *ScanLog) Summary() ScanSummary {
	l.mu.Lock()
	defer l.mu.Unlock()

	sum := ScanSummary{
		ByTrigger: make(map[string]TriggerCounts, len(l.byTrigger)),
		Recent:    make([]ScanRecord, 0, len(l.recent)),
	}
	for trigger, c := range l.byTrigger {
		sum.ByTrigger[trigger] = c
		sum.Count += c.Runs
		sum.Failures += c.Failures
	}
	if !l.lastSuccess.IsZero() {
		at := l.lastSuccess
		sum.LastSuccess = &at
	}
	if l.lastFailure != nil {
		failed := *l.lastFailure
		sum.LastFailure = &failed
	}
	for i := len(l.recent) - 1; i >= 0; i-- {
		sum.Recent = append(sum.Recent, l.recent[i])
	}
	return sum
}
