package repository

import "time"

// Option applies a configuration option to the TreapStore.
type Option func(*TreapStore)

// WithInitialRating sets the points assigned to a newly tracked team.
func WithInitialRating(points float64) Option {
	return func(s *TreapStore) {
		s.initialRating = points
	}
}

// WithSnapshotInterval sets how often a ranking snapshot is taken
// automatically. A non-positive interval disables periodic snapshots.
func WithSnapshotInterval(d time.Duration) Option {
	return func(s *TreapStore) {
		s.snapshotInterval = d
	}
}

// WithMaxSnapshots bounds the snapshot history; the oldest entries are
// dropped first.
func WithMaxSnapshots(n int) Option {
	return func(s *TreapStore) {
		if n > 0 {
			s.maxSnapshots = n
		}
	}
}

// WithRecentMatchesCapacity bounds the in-memory match audit log.
func WithRecentMatchesCapacity(n int) Option {
	return func(s *TreapStore) {
		if n > 0 {
			s.recentCapacity = n
		}
	}
}
