// Package fixtures pulls completed international fixtures from the
// upstream football data API.
//
// The provider uses header token auth and a flat query-parameter scheme;
// results arrive wrapped in a "response" envelope. Calls are rate limited
// client-side to stay inside the plan quota.
package fixtures

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/pitchrank/pitchrank/internal/domain/model"
	"github.com/pitchrank/pitchrank/pkg/logger"
	"github.com/pitchrank/pitchrank/pkg/metrics"
)

const defaultBaseURL = "https://v3.football.api-sports.io"

// completedStatuses selects fixtures that finished in regulation, after
// extra time, or on penalties.
const completedStatuses = "FT-AET-PEN"

// Client is the rate-limited HTTP client for the fixtures provider.
type Client struct {
	httpClient *http.Client
	apiToken   string
	baseURL    string
	limiter    *rate.Limiter
	logger     logger.Logger
}

// NewClient creates a fixtures client with client-side rate limiting.
func NewClient(apiToken string, requestsPerMinute int, opts ...ClientOption) *Client {
	if requestsPerMinute < 1 {
		requestsPerMinute = 60
	}
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		apiToken:   apiToken,
		baseURL:    defaultBaseURL,
		limiter:    rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), 1),
		logger:     logger.Get().Named("fixtures"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ClientOption applies a configuration option to the Client.
type ClientOption func(*Client)

// WithBaseURL overrides the provider endpoint, mainly for tests.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets a custom logger for the client.
func WithLogger(l logger.Logger) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// envelope is the provider's common response wrapper.
type envelope struct {
	Errors   json.RawMessage  `json:"errors"`
	Response []fixturePayload `json:"response"`
}

// fixturePayload mirrors the provider's fixture shape. Goals are pointers:
// the provider sends null for unplayed fixtures.
type fixturePayload struct {
	Fixture struct {
		ID     int64  `json:"id"`
		Date   string `json:"date"`
		Status struct {
			Short string `json:"short"`
		} `json:"status"`
	} `json:"fixture"`
	League struct {
		ID     int    `json:"id"`
		Name   string `json:"name"`
		Season int    `json:"season"`
		Round  string `json:"round"`
	} `json:"league"`
	Teams struct {
		Home struct {
			ID   int64  `json:"id"`
			Name string `json:"name"`
		} `json:"home"`
		Away struct {
			ID   int64  `json:"id"`
			Name string `json:"name"`
		} `json:"away"`
	} `json:"teams"`
	Goals struct {
		Home *int `json:"home"`
		Away *int `json:"away"`
	} `json:"goals"`
	Score struct {
		Penalty struct {
			Home *int `json:"home"`
			Away *int `json:"away"`
		} `json:"penalty"`
	} `json:"score"`
}

// CompletedFixtures returns the finished fixtures for one league between
// from and to (inclusive, dates only). The season is taken from the year
// of from, matching the provider's season addressing for national-team
// competitions.
func (c *Client) CompletedFixtures(ctx context.Context, leagueID int, from, to time.Time) ([]model.Match, error) {
	params := url.Values{}
	params.Set("league", strconv.Itoa(leagueID))
	params.Set("season", strconv.Itoa(from.Year()))
	params.Set("from", from.Format("2006-01-02"))
	params.Set("to", to.Format("2006-01-02"))
	params.Set("status", completedStatuses)

	env, err := c.get(ctx, "/fixtures", params)
	if err != nil {
		return nil, err
	}

	matches := make([]model.Match, 0, len(env.Response))
	for _, p := range env.Response {
		m, err := parseFixture(p)
		if err != nil {
			c.logger.Warn(ctx, "skipping unparseable fixture",
				logger.Int64("fixture_id", p.Fixture.ID),
				logger.Error(err),
			)
			continue
		}
		matches = append(matches, m)
	}
	metrics.RecordFixturesFetched(len(matches))
	return matches, nil
}

// get performs one rate-limited GET against the provider.
func (c *Client) get(ctx context.Context, path string, params url.Values) (*envelope, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	u := c.baseURL + path + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("x-apisports-key", c.apiToken)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.RecordFixturesHTTPLatency(float64(time.Since(start).Milliseconds()))
	if err != nil {
		return nil, fmt.Errorf("http request %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fixtures API %s returned %d: %s", path, resp.StatusCode, truncate(body, 200))
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &env, nil
}

// parseFixture converts one provider payload into a domain match.
func parseFixture(p fixturePayload) (model.Match, error) {
	if p.Fixture.ID == 0 {
		return model.Match{}, fmt.Errorf("missing fixture id")
	}
	if p.Goals.Home == nil || p.Goals.Away == nil {
		return model.Match{}, fmt.Errorf("fixture %d has no final score", p.Fixture.ID)
	}

	kickoff, err := time.Parse(time.RFC3339, p.Fixture.Date)
	if err != nil {
		// An unknown kickoff degrades friendlies to out-of-window; the
		// fixture is still ratable.
		kickoff = time.Time{}
	}

	m := model.Match{
		FixtureID:    p.Fixture.ID,
		LeagueID:     p.League.ID,
		LeagueName:   p.League.Name,
		Season:       p.League.Season,
		Round:        p.League.Round,
		Status:       p.Fixture.Status.Short,
		KickoffTime:  kickoff,
		HomeTeamID:   p.Teams.Home.ID,
		HomeTeamName: p.Teams.Home.Name,
		AwayTeamID:   p.Teams.Away.ID,
		AwayTeamName: p.Teams.Away.Name,
		HomeScore:    *p.Goals.Home,
		AwayScore:    *p.Goals.Away,
	}

	if p.Fixture.Status.Short == "PEN" {
		if p.Score.Penalty.Home == nil || p.Score.Penalty.Away == nil {
			return model.Match{}, fmt.Errorf("fixture %d ended on penalties without a tally", p.Fixture.ID)
		}
		m.PenaltyShootout = true
		m.HomePenalties = *p.Score.Penalty.Home
		m.AwayPenalties = *p.Score.Penalty.Away
	}
	return m, nil
}

// truncate shortens a body for error messages.
func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
