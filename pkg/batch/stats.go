package batch

import (
	"cmp"
	"slices"
	"sync"
	"time"
)

// Stats summarises a run.
type Stats struct {
	// Records is the number of input rows, including skipped ones.
	Records   int
	Generated int
	Skipped   int
	Failed    int
	Elapsed   time.Duration
	// Failures are ordered by record index.
	Failures []*RecordError
}

// Average is Elapsed divided by Records, or zero for an empty input.
func (s *Stats) Average() time.Duration {
	if s == nil || s.Records == 0 {
		return 0
	}
	return s.Elapsed / time.Duration(s.Records)
}

// tally collects per-record outcomes from concurrent workers.
type tally struct {
	mu    sync.Mutex
	stats Stats
}

func (t *tally) generated() {
	t.mu.Lock()
	t.stats.Generated++
	t.mu.Unlock()
}

func (t *tally) skipped() {
	t.mu.Lock()
	t.stats.Skipped++
	t.mu.Unlock()
}

func (t *tally) failed(err *RecordError) {
	t.mu.Lock()
	t.stats.Failed++
	t.stats.Failures = append(t.stats.Failures, err)
	t.mu.Unlock()
}

func (t *tally) snapshot(records int, elapsed time.Duration) *Stats {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.stats
	s.Records = records
	s.Elapsed = elapsed
	s.Failures = append([]*RecordError(nil), t.stats.Failures...)
	slices.SortStableFunc(s.Failures, func(a, b *RecordError) int { return cmp.Compare(a.Index, b.Index) })
	return &s
}
