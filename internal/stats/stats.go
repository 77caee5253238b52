package stats

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const (
	// DateLayout is the calendar-date key format of the daily buckets.
	DateLayout = "2006-01-02"
	// TimeLayout is the format of the last_updated stamp.
	TimeLayout = "2006-01-02 15:04:05"
)

// Usage is the aggregate counter document. It mirrors the history store
// incrementally so stats queries stay O(1) over the history length.
type Usage struct {
	TotalRewrites   int            `json:"total_rewrites"`
	DailyUsage      map[string]int `json:"daily_usage"`
	AvgTextLength   float64        `json:"avg_text_length"`
	TotalCharacters int            `json:"total_characters"`
	LastUpdated     string         `json:"last_updated"`
}

// DayCount is one point of a gap-filled daily usage series.
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// Aggregator maintains running usage counters backed by a single JSON
// document, rewritten in full on every mutation. Safe for concurrent use.
type Aggregator struct {
	path  string
	mu    sync.Mutex
	usage Usage
	now   func() time.Time
}

func NewAggregator(path string) (*Aggregator, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure dir: %w", err)
	}
	a := &Aggregator{path: path, now: time.Now}
	a.load()
	return a, nil
}

func (a *Aggregator) load() {
	data, err := os.ReadFile(a.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("failed to read stats file %s: %v", a.path, err)
		}
		a.usage = a.zeroUsage()
		return
	}
	var u Usage
	if err := json.Unmarshal(data, &u); err != nil {
		log.Printf("stats file %s is malformed, starting empty: %v", a.path, err)
		a.usage = a.zeroUsage()
		return
	}
	if u.DailyUsage == nil {
		u.DailyUsage = make(map[string]int)
	}
	a.usage = u
}

func (a *Aggregator) zeroUsage() Usage {
	return Usage{
		DailyUsage:  make(map[string]int),
		LastUpdated: a.now().Format(TimeLayout),
	}
}

// Record accounts for one successful rewrite of originalLen characters on
// the given day. Must be called exactly once per history append.
func (a *Aggregator) Record(originalLen int, day time.Time) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.usage.TotalRewrites++
	a.usage.TotalCharacters += originalLen
	a.usage.AvgTextLength = float64(a.usage.TotalCharacters) / float64(a.usage.TotalRewrites)
	a.usage.DailyUsage[day.Format(DateLayout)]++
	a.usage.LastUpdated = a.now().Format(TimeLayout)
	if err := a.saveUnlocked(); err != nil {
		return fmt.Errorf("persist stats: %w", err)
	}
	return nil
}

// Snapshot returns a copy of the current counters.
func (a *Aggregator) Snapshot() Usage {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := a.usage
	out.DailyUsage = make(map[string]int, len(a.usage.DailyUsage))
	for k, v := range a.usage.DailyUsage {
		out.DailyUsage[k] = v
	}
	return out
}

// DailySeries returns counts for the last days calendar days ending today,
// in ascending date order. Days with no recorded activity appear with a
// zero count so callers always get a contiguous series.
func (a *Aggregator) DailySeries(days int) []DayCount {
	a.mu.Lock()
	defer a.mu.Unlock()
	today := a.now()
	out := make([]DayCount, 0, days)
	for i := days - 1; i >= 0; i-- {
		date := today.AddDate(0, 0, -i).Format(DateLayout)
		out = append(out, DayCount{Date: date, Count: a.usage.DailyUsage[date]})
	}
	return out
}

// Reset reinitializes all counters and persists the zero state.
func (a *Aggregator) Reset() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.usage = a.zeroUsage()
	if err := a.saveUnlocked(); err != nil {
		return fmt.Errorf("persist stats: %w", err)
	}
	return nil
}

func (a *Aggregator) saveUnlocked() error {
	f, err := os.OpenFile(a.path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func(f *os.File) {
		err := f.Close()
		if err != nil {
		}
	}(f)
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(a.usage)
}
