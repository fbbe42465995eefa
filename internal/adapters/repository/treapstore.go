package repository

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/pitchrank/pitchrank/internal/domain/model"
	"github.com/pitchrank/pitchrank/pkg/metrics"
)

// Treap-based, in-memory Store implementation.
//
// Ordering: points DESC, then team id ASC (deterministic). The BST
// comparator treats "less" as "ranks earlier", so an in-order traversal
// yields the ranking table from best to worst.

// pointsScale converts points to fixed-point for exact comparison.
// Deltas are rounded to one decimal before they reach the store, so one
// extra digit of headroom is enough to keep comparisons exact.
const pointsScale = 100

type pointsFP int64

func toFixedPoint(x float64) pointsFP {
	if math.IsNaN(x) {
		return 0
	}
	scaled := math.Round(x * pointsScale)
	if scaled > float64(math.MaxInt64) {
		return pointsFP(math.MaxInt64)
	}
	if scaled < float64(math.MinInt64) {
		return pointsFP(math.MinInt64)
	}
	return pointsFP(scaled)
}

// treap node
type node struct {
	id     int64
	points pointsFP
	prio   uint64
	left   *node
	right  *node
	size   int
}

func nsize(n *node) int {
	if n == nil {
		return 0
	}
	return n.size
}

func fix(n *node) {
	if n != nil {
		n.size = 1 + nsize(n.left) + nsize(n.right)
	}
}

// less reports whether (aPoints, aID) ranks earlier than (bPoints, bID).
func less(aPoints pointsFP, aID int64, bPoints pointsFP, bID int64) bool {
	if aPoints != bPoints {
		return aPoints > bPoints // more points ranks earlier
	}
	return aID < bID // tie-breaker by id asc
}

func rotateRight(y *node) *node {
	x := y.left
	t2 := x.right
	x.right = y
	y.left = t2
	fix(y)
	fix(x)
	return x
}

func rotateLeft(x *node) *node {
	y := x.right
	t2 := y.left
	y.left = x
	x.right = t2
	fix(x)
	fix(y)
	return y
}

// pointsToPriority keeps higher-rated teams near the root, which skews
// lookups toward the hot top of the table.
func pointsToPriority(p pointsFP) uint64 {
	const offset = uint64(1) << 63
	return uint64(p) + offset
}

func insert(n *node, id int64, points pointsFP) *node {
	if n == nil {
		return &node{id: id, points: points, prio: pointsToPriority(points), size: 1}
	}
	if less(points, id, n.points, n.id) {
		n.left = insert(n.left, id, points)
		if n.left.prio > n.prio {
			n = rotateRight(n)
		}
	} else {
		n.right = insert(n.right, id, points)
		if n.right.prio > n.prio {
			n = rotateLeft(n)
		}
	}
	fix(n)
	return n
}

func deleteNode(n *node, id int64, points pointsFP) *node {
	if n == nil {
		return nil
	}
	if points == n.points && id == n.id {
		if n.left == nil {
			return n.right
		}
		if n.right == nil {
			return n.left
		}
		if n.left.prio > n.right.prio {
			n = rotateRight(n)
			n.right = deleteNode(n.right, id, points)
		} else {
			n = rotateLeft(n)
			n.left = deleteNode(n.left, id, points)
		}
	} else if less(points, id, n.points, n.id) {
		n.left = deleteNode(n.left, id, points)
	} else {
		n.right = deleteNode(n.right, id, points)
	}
	fix(n)
	return n
}

// countBetter counts nodes with strictly more points than p in O(log n)
// expected time, via subtree sizes. The MinInt64 sentinel id makes
// equal-points nodes compare after the key, so ties are excluded.
func countBetter(n *node, p pointsFP) int {
	count := 0
	for n != nil {
		if less(n.points, n.id, p, math.MinInt64) {
			count += nsize(n.left) + 1
			n = n.right
		} else {
			n = n.left
		}
	}
	return count
}

// collectTopN appends up to limit teams in rank order.
func collectTopN(n *node, limit int, teams map[int64]model.Team, out *[]Entry) {
	if n == nil || len(*out) >= limit {
		return
	}
	collectTopN(n.left, limit, teams, out)
	if len(*out) < limit {
		if team, ok := teams[n.id]; ok {
			*out = append(*out, Entry{Team: team})
		}
	}
	if len(*out) < limit {
		collectTopN(n.right, limit, teams, out)
	}
}

// collectAll appends every team in rank order.
func collectAll(n *node, teams map[int64]model.Team, out *[]Entry) {
	if n == nil {
		return
	}
	collectAll(n.left, teams, out)
	if team, ok := teams[n.id]; ok {
		*out = append(*out, Entry{Team: team})
	}
	collectAll(n.right, teams, out)
}

// assignRanks fills the Rank field of rank-ordered entries using standard
// competition ranking: equal points share a rank and the next distinct
// points value resumes at its positional rank.
func assignRanks(entries []Entry) {
	for i := range entries {
		if i > 0 && entries[i].Team.Points == entries[i-1].Team.Points {
			entries[i].Rank = entries[i-1].Rank
			continue
		}
		entries[i].Rank = i + 1
	}
}

// TreapStore is the in-memory Store implementation.
type TreapStore struct {
	mu    sync.RWMutex
	root  *node
	teams map[int64]model.Team

	initialRating    float64
	snapshotInterval time.Duration
	maxSnapshots     int
	recentCapacity   int

	recent    []model.ProcessedMatch // newest last
	snapshots []model.Snapshot       // oldest first

	wg       sync.WaitGroup
	stopChan chan struct{}
}

// NewTreapStore constructs a store with configuration options and starts
// the periodic snapshot goroutine unless disabled.
func NewTreapStore(ctx context.Context, opts ...Option) *TreapStore {
	s := &TreapStore{
		initialRating:    1500,
		snapshotInterval: time.Hour,
		maxSnapshots:     168,
		recentCapacity:   500,
		teams:            make(map[int64]model.Team),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.stopChan = make(chan struct{})
	if s.snapshotInterval > 0 {
		s.startPeriodicSnapshots(ctx)
	}
	return s
}

func (s *TreapStore) startPeriodicSnapshots(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.snapshotInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopChan:
				return
			case <-ticker.C:
				_, _ = s.SaveSnapshot(ctx)
			}
		}
	}()
}

// Close stops the periodic snapshot goroutine.
func (s *TreapStore) Close() error {
	select {
	case <-s.stopChan:
	default:
		close(s.stopChan)
	}
	s.wg.Wait()
	return nil
}

// GetOrCreate implements Store.GetOrCreate.
func (s *TreapStore) GetOrCreate(ctx context.Context, teamID int64, name string) (model.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if team, ok := s.teams[teamID]; ok {
		if name != "" && team.Name != name {
			team.Name = name
			s.teams[teamID] = team
		}
		return team, nil
	}

	team := model.Team{
		ID:        teamID,
		Name:      name,
		Points:    s.initialRating,
		UpdatedAt: time.Now().UTC(),
	}
	s.teams[teamID] = team
	s.root = insert(s.root, teamID, toFixedPoint(team.Points))
	metrics.UpdateStoreTeams(len(s.teams))
	return team, nil
}

// Get implements Store.Get.
func (s *TreapStore) Get(ctx context.Context, teamID int64) (model.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	team, ok := s.teams[teamID]
	if !ok {
		return model.Team{}, fmt.Errorf("team %d: %w", teamID, ErrNotFound)
	}
	return team, nil
}

// ApplyMatch implements Store.ApplyMatch with O(log n) expected time per
// side.
func (s *TreapStore) ApplyMatch(ctx context.Context, pm model.ProcessedMatch) error {
	start := time.Now()
	defer func() {
		metrics.RecordStoreUpdateLatency(float64(time.Since(start).Milliseconds()))
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	home, ok := s.teams[pm.HomeTeamID]
	if !ok {
		metrics.RecordErrorByComponent("repository", "not_found")
		return fmt.Errorf("home team %d: %w", pm.HomeTeamID, ErrNotFound)
	}
	away, ok := s.teams[pm.AwayTeamID]
	if !ok {
		metrics.RecordErrorByComponent("repository", "not_found")
		return fmt.Errorf("away team %d: %w", pm.AwayTeamID, ErrNotFound)
	}

	at := pm.ProcessedAt
	if at.IsZero() {
		at = time.Now().UTC()
	}

	s.applyside(&home, pm.Home, pm.HomeScore, pm.AwayScore, pm.PenaltyShootout, at)
	s.applyside(&away, pm.Away, pm.AwayScore, pm.HomeScore, pm.PenaltyShootout, at)

	s.teams[pm.HomeTeamID] = home
	s.teams[pm.AwayTeamID] = away

	s.recent = append(s.recent, pm)
	if len(s.recent) > s.recentCapacity {
		s.recent = s.recent[len(s.recent)-s.recentCapacity:]
	}
	return nil
}

// applyside moves one team to its post-match points and updates its
// played/won/drawn/lost and goal tallies. A shootout match counts as a
// draw in the tallies: the match itself ended level.
func (s *TreapStore) applyside(team *model.Team, calc model.Calculation, goalsFor, goalsAgainst int, shootout bool, at time.Time) {
	s.root = deleteNode(s.root, team.ID, toFixedPoint(team.Points))
	team.Points = calc.PointsAfter
	s.root = insert(s.root, team.ID, toFixedPoint(team.Points))

	team.MatchesPlayed++
	team.GoalsFor += goalsFor
	team.GoalsAgainst += goalsAgainst
	switch {
	case shootout || goalsFor == goalsAgainst:
		team.Draws++
	case goalsFor > goalsAgainst:
		team.Wins++
	default:
		team.Losses++
	}
	team.UpdatedAt = at
}

// Rank implements Store.Rank in O(log n) expected time.
func (s *TreapStore) Rank(ctx context.Context, teamID int64) (Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	team, ok := s.teams[teamID]
	if !ok {
		metrics.RecordErrorByComponent("repository", "not_found")
		return Entry{}, fmt.Errorf("team %d: %w", teamID, ErrNotFound)
	}
	return Entry{
		Rank: countBetter(s.root, toFixedPoint(team.Points)) + 1,
		Team: team,
	}, nil
}

// TopN implements Store.TopN.
func (s *TreapStore) TopN(ctx context.Context, n int) ([]Entry, error) {
	if n < 1 {
		metrics.RecordErrorByComponent("repository", "invalid_limit")
		return nil, ErrInvalidLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Entry, 0, n)
	collectTopN(s.root, n, s.teams, &out)
	assignRanks(out)
	return out, nil
}

// Count implements Store.Count.
func (s *TreapStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.teams)
}

// RecentMatches implements Store.RecentMatches, newest first.
func (s *TreapStore) RecentMatches(ctx context.Context, limit int) []model.ProcessedMatch {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || limit > len(s.recent) {
		limit = len(s.recent)
	}
	out := make([]model.ProcessedMatch, 0, limit)
	for i := len(s.recent) - 1; i >= len(s.recent)-limit; i-- {
		out = append(out, s.recent[i])
	}
	return out
}

// SaveSnapshot implements Store.SaveSnapshot.
func (s *TreapStore) SaveSnapshot(ctx context.Context) (model.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]Entry, 0, len(s.teams))
	collectAll(s.root, s.teams, &entries)
	assignRanks(entries)

	snap := model.Snapshot{
		TakenAt: time.Now().UTC(),
		Entries: make([]model.SnapshotEntry, 0, len(entries)),
	}
	for _, e := range entries {
		snap.Entries = append(snap.Entries, model.SnapshotEntry{
			Rank:   e.Rank,
			TeamID: e.Team.ID,
			Name:   e.Team.Name,
			Points: e.Team.Points,
		})
	}

	s.snapshots = append(s.snapshots, snap)
	if len(s.snapshots) > s.maxSnapshots {
		s.snapshots = s.snapshots[len(s.snapshots)-s.maxSnapshots:]
	}
	metrics.RecordSnapshot()
	return snap, nil
}

// Snapshots implements Store.Snapshots.
func (s *TreapStore) Snapshots(ctx context.Context) []model.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Snapshot, len(s.snapshots))
	copy(out, s.snapshots)
	return out
}
