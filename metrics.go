package launcherkit

import (
	"sync/atomic"
	"time"

	"github.com/hupe1980/launcherkit/search"
)

// MetricsCollector receives operational metrics from a Kit.
// Implement it to feed a monitoring system.
type MetricsCollector interface {
	// RecordMerge is called after every search merge.
	RecordMerge(stats search.MergeStats, duration time.Duration)

	// RecordIconLoad is called after every icon load. hit reports whether
	// the decoded icon was already in memory.
	RecordIconLoad(hit bool, duration time.Duration, err error)

	// RecordIconStore is called after every icon store or removal.
	RecordIconStore(duration time.Duration, err error)

	// RecordCommit is called after every commit.
	RecordCommit(version uint64, duration time.Duration, err error)
}

// NoopMetricsCollector drops all metrics.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordMerge(search.MergeStats, time.Duration) {}
func (NoopMetricsCollector) RecordIconLoad(bool, time.Duration, error)    {}
func (NoopMetricsCollector) RecordIconStore(time.Duration, error)         {}
func (NoopMetricsCollector) RecordCommit(uint64, time.Duration, error)    {}

// BasicMetricsCollector keeps counters in memory.
type BasicMetricsCollector struct {
	MergeCount       atomic.Int64
	MergeTotalNanos  atomic.Int64
	MergedWebResults atomic.Int64
	SectionHeaders   atomic.Int64
	IconLoads        atomic.Int64
	IconHits         atomic.Int64
	IconLoadErrors   atomic.Int64
	IconLoadNanos    atomic.Int64
	IconStores       atomic.Int64
	IconStoreErrors  atomic.Int64
	Commits          atomic.Int64
	CommitErrors     atomic.Int64
	LastVersion      atomic.Uint64
}

// RecordMerge implements MetricsCollector.
func (b *BasicMetricsCollector) RecordMerge(stats search.MergeStats, duration time.Duration) {
	b.MergeCount.Add(1)
	b.MergeTotalNanos.Add(duration.Nanoseconds())
	b.MergedWebResults.Add(int64(stats.WebCount))
	if stats.SectionHeader {
		b.SectionHeaders.Add(1)
	}
}

// RecordIconLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordIconLoad(hit bool, duration time.Duration, err error) {
	b.IconLoads.Add(1)
	b.IconLoadNanos.Add(duration.Nanoseconds())
	if hit {
		b.IconHits.Add(1)
	}
	if err != nil {
		b.IconLoadErrors.Add(1)
	}
}

// RecordIconStore implements MetricsCollector.
func (b *BasicMetricsCollector) RecordIconStore(_ time.Duration, err error) {
	b.IconStores.Add(1)
	if err != nil {
		b.IconStoreErrors.Add(1)
	}
}

// RecordCommit implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCommit(version uint64, _ time.Duration, err error) {
	b.Commits.Add(1)
	if err != nil {
		b.CommitErrors.Add(1)
		return
	}
	b.LastVersion.Store(version)
}

// GetStats returns a snapshot of the counters.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		MergeCount:      b.MergeCount.Load(),
		MergeAvgNanos:   avg(b.MergeTotalNanos.Load(), b.MergeCount.Load()),
		MergedWeb:       b.MergedWebResults.Load(),
		SectionHeaders:  b.SectionHeaders.Load(),
		IconLoads:       b.IconLoads.Load(),
		IconHits:        b.IconHits.Load(),
		IconLoadErrors:  b.IconLoadErrors.Load(),
		IconLoadAvg:     avg(b.IconLoadNanos.Load(), b.IconLoads.Load()),
		IconStores:      b.IconStores.Load(),
		IconStoreErrors: b.IconStoreErrors.Load(),
		Commits:         b.Commits.Load(),
		CommitErrors:    b.CommitErrors.Load(),
		LastVersion:     b.LastVersion.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector.
type BasicMetricsStats struct {
	MergeCount      int64
	MergeAvgNanos   int64
	MergedWeb       int64
	SectionHeaders  int64
	IconLoads       int64
	IconHits        int64
	IconLoadErrors  int64
	IconLoadAvg     int64
	IconStores      int64
	IconStoreErrors int64
	Commits         int64
	CommitErrors    int64
	LastVersion     uint64
}
