// Command seed-matches generates synthetic completed fixtures and posts
// them to a running rating service, for load and smoke testing.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/pitchrank/pitchrank/internal/domain/tournament"
)

const (
	defaultNumMatches = 1000
	defaultWorkers    = 8
	defaultTimeout    = 10 * time.Second
	maxGoals          = 4
)

// teamNames is a pool of national sides the generator draws from. Team
// ids are their index plus one, so repeated runs hit the same teams.
var teamNames = []string{
	"Argentina", "France", "Spain", "England", "Brazil", "Portugal",
	"Netherlands", "Belgium", "Italy", "Germany", "Croatia", "Morocco",
	"Uruguay", "Colombia", "Japan", "USA", "Mexico", "Senegal",
	"Switzerland", "Denmark", "Austria", "Ukraine", "Turkey", "Sweden",
	"Wales", "Poland", "Ecuador", "South Korea", "Australia", "Nigeria",
	"Egypt", "Canada",
}

// roundsByTier maps competition tiers to plausible round labels.
var roundsByTier = map[int][]string{
	tournament.TierGlobal:        {"Group Stage - 1", "Group Stage - 3", "Round of 16", "Quarter-finals", "Semi-finals", "Final"},
	tournament.TierContinental:   {"Group Stage - 2", "Round of 16", "Quarter-finals", "Final"},
	tournament.TierQualifier:     {"Group Stage - 4", "Play-offs"},
	tournament.TierNationsLeague: {"League A - Group 2", "Semi-finals", "Final"},
	tournament.TierSubRegional:   {"Group Stage - 1", "Final"},
	tournament.TierYouth:         {"Group Stage - 1", "Quarter-finals"},
	tournament.TierFriendly:      {"Friendlies 1"},
}

type matchPayload struct {
	FixtureID       int64  `json:"fixture_id"`
	LeagueID        int    `json:"league_id"`
	LeagueName      string `json:"league_name"`
	Season          int    `json:"season"`
	Round           string `json:"round"`
	Status          string `json:"status"`
	KickoffTime     string `json:"kickoff_time"`
	HomeTeamID      int64  `json:"home_team_id"`
	HomeTeamName    string `json:"home_team_name"`
	AwayTeamID      int64  `json:"away_team_id"`
	AwayTeamName    string `json:"away_team_name"`
	HomeScore       int    `json:"home_score"`
	AwayScore       int    `json:"away_score"`
	PenaltyShootout bool   `json:"penalty_shootout"`
	HomePenalties   int    `json:"home_penalties,omitempty"`
	AwayPenalties   int    `json:"away_penalties,omitempty"`
}

type tally struct {
	accepted   atomic.Int64
	duplicates atomic.Int64
	rejected   atomic.Int64
	failed     atomic.Int64
}

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:9080", "Base URL of the service")
		numMatches = flag.Int("matches", defaultNumMatches, "Number of synthetic results to submit")
		workers    = flag.Int("workers", defaultWorkers, "Number of concurrent submitters")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		seed       = flag.Int64("seed", time.Now().UnixNano(), "Random seed (repeatable runs)")
		verbose    = flag.Bool("verbose", false, "Log every submission")
	)
	flag.Parse()

	runID := uuid.NewString()
	fmt.Printf("seed-matches run %s: %d matches, %d workers, seed %d\n", runID, *numMatches, *workers, *seed)

	entries := tournament.New().All()
	payloads := generate(rand.New(rand.NewSource(*seed)), entries, *numMatches)

	client := &http.Client{Timeout: *timeout}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	jobs := make(chan matchPayload)
	var counts tally
	var wg sync.WaitGroup
	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range jobs {
				submit(ctx, client, *baseURL, p, &counts, *verbose)
			}
		}()
	}

	start := time.Now()
	for _, p := range payloads {
		jobs <- p
	}
	close(jobs)
	wg.Wait()

	elapsed := time.Since(start)
	fmt.Printf("done in %s: accepted=%d duplicates=%d rejected=%d failed=%d (%.0f req/s)\n",
		elapsed.Round(time.Millisecond),
		counts.accepted.Load(), counts.duplicates.Load(), counts.rejected.Load(), counts.failed.Load(),
		float64(*numMatches)/elapsed.Seconds())

	if counts.failed.Load() > 0 {
		os.Exit(1)
	}
}

// generate builds numMatches completed fixtures spread across the
// registry's competitions.
func generate(rng *rand.Rand, entries []tournament.Entry, numMatches int) []matchPayload {
	now := time.Now().UTC()
	payloads := make([]matchPayload, 0, numMatches)
	for i := 0; i < numMatches; i++ {
		entry := entries[rng.Intn(len(entries))]
		rounds := roundsByTier[entry.Tier]
		if len(rounds) == 0 {
			rounds = []string{"Group Stage - 1"}
		}

		homeIdx := rng.Intn(len(teamNames))
		awayIdx := rng.Intn(len(teamNames) - 1)
		if awayIdx >= homeIdx {
			awayIdx++
		}

		p := matchPayload{
			FixtureID:    now.UnixNano()/1000 + int64(i),
			LeagueID:     entry.LeagueID,
			LeagueName:   entry.Name,
			Season:       now.Year(),
			Round:        rounds[rng.Intn(len(rounds))],
			Status:       "FT",
			KickoffTime:  now.AddDate(0, 0, -rng.Intn(30)).Format(time.RFC3339),
			HomeTeamID:   int64(homeIdx + 1),
			HomeTeamName: teamNames[homeIdx],
			AwayTeamID:   int64(awayIdx + 1),
			AwayTeamName: teamNames[awayIdx],
			HomeScore:    rng.Intn(maxGoals + 1),
			AwayScore:    rng.Intn(maxGoals + 1),
		}

		// Level knockout matches go to penalties.
		if p.HomeScore == p.AwayScore && rng.Intn(4) == 0 {
			p.Status = "PEN"
			p.PenaltyShootout = true
			p.HomePenalties = 3 + rng.Intn(3)
			p.AwayPenalties = p.HomePenalties - 1
			if rng.Intn(2) == 0 {
				p.HomePenalties, p.AwayPenalties = p.AwayPenalties, p.HomePenalties
			}
		}

		payloads = append(payloads, p)
	}
	return payloads
}

func submit(ctx context.Context, client *http.Client, baseURL string, p matchPayload, counts *tally, verbose bool) {
	body, err := json.Marshal(p)
	if err != nil {
		counts.failed.Add(1)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/results", bytes.NewReader(body))
	if err != nil {
		counts.failed.Add(1)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		counts.failed.Add(1)
		if verbose {
			fmt.Fprintf(os.Stderr, "fixture %d: %v\n", p.FixtureID, err)
		}
		return
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusAccepted:
		counts.accepted.Add(1)
	case http.StatusOK:
		counts.duplicates.Add(1)
	default:
		counts.rejected.Add(1)
		if verbose {
			fmt.Fprintf(os.Stderr, "fixture %d: status %d\n", p.FixtureID, resp.StatusCode)
		}
	}

	if verbose && resp.StatusCode == http.StatusAccepted {
		fmt.Printf("fixture %d: %s %d-%d %s (%s)\n", p.FixtureID, p.HomeTeamName, p.HomeScore, p.AwayScore, p.AwayTeamName, p.Round)
	}
}
