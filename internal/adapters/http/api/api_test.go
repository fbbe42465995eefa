package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pitchrank/pitchrank/internal/adapters/http/api"
	"github.com/pitchrank/pitchrank/internal/app"
	"github.com/pitchrank/pitchrank/internal/domain/model"
	"github.com/pitchrank/pitchrank/internal/domain/tournament"
	"github.com/pitchrank/pitchrank/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func newTestServer(t *testing.T) (*httptest.Server, *app.Service) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())

	svc := app.New(
		app.WithWorkerCount(2),
		app.WithSnapshotInterval(0),
	)
	if err := svc.Start(ctx); err != nil {
		t.Fatalf("start service: %v", err)
	}

	mux := http.NewServeMux()
	api.NewServer(svc, 200).Register(ctx, mux)
	srv := httptest.NewServer(mux)

	t.Cleanup(func() {
		srv.Close()
		svc.Stop(context.Background())
		cancel()
	})
	return srv, svc
}

func postResult(t *testing.T, srv *httptest.Server, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(srv.URL+"/results", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post result: %v", err)
	}
	return resp
}

func resultBody(fixtureID int64) string {
	return fmt.Sprintf(`{
		"fixture_id": %d,
		"league_id": 1,
		"league_name": "World Cup",
		"round": "Group Stage - 1",
		"status": "FT",
		"kickoff_time": "2026-06-12T18:00:00Z",
		"home_team_id": 10,
		"home_team_name": "Brazil",
		"away_team_id": 26,
		"away_team_name": "Argentina",
		"home_score": 2,
		"away_score": 0
	}`, fixtureID)
}

func waitForTeams(svc *app.Service, want int) bool {
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if svc.GetStats(context.Background()).TrackedTeams >= want {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func TestResultsEndpoint(t *testing.T) {
	convey.Convey("Given a running API", t, func() {
		srv, svc := newTestServer(t)

		convey.Convey("When a completed match is posted", func() {
			resp := postResult(t, srv, resultBody(8001))

			convey.Convey("Then it is accepted for processing", func() {
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusAccepted)
				ack := decode[map[string]any](t, resp)
				convey.So(ack["status"], convey.ShouldEqual, "accepted")
				convey.So(ack["duplicate"], convey.ShouldEqual, false)
				convey.So(waitForTeams(svc, 2), convey.ShouldBeTrue)
			})

			convey.Convey("And a repeat post acknowledges as duplicate", func() {
				repeat := postResult(t, srv, resultBody(8001))
				convey.So(repeat.StatusCode, convey.ShouldEqual, http.StatusOK)
				ack := decode[map[string]any](t, repeat)
				convey.So(ack["duplicate"], convey.ShouldEqual, true)
			})
		})

		convey.Convey("When the payload is malformed", func() {
			convey.Convey("Then junk JSON is rejected", func() {
				resp := postResult(t, srv, "{not json")
				defer resp.Body.Close()
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusBadRequest)
			})

			convey.Convey("Then a missing fixture id is rejected", func() {
				resp := postResult(t, srv, `{"home_team_id": 1, "away_team_id": 2}`)
				defer resp.Body.Close()
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusBadRequest)
			})

			convey.Convey("Then a level shootout tally is rejected", func() {
				resp := postResult(t, srv, `{
					"fixture_id": 9, "home_team_id": 1, "away_team_id": 2,
					"home_score": 1, "away_score": 1,
					"penalty_shootout": true, "home_penalties": 3, "away_penalties": 3
				}`)
				defer resp.Body.Close()
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusBadRequest)
			})
		})

		convey.Convey("When the wrong method is used", func() {
			resp, err := http.Get(srv.URL + "/results")
			convey.So(err, convey.ShouldBeNil)
			defer resp.Body.Close()

			convey.Convey("Then the route is not found", func() {
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestRankingsAndRankEndpoints(t *testing.T) {
	convey.Convey("Given an API with one processed match", t, func() {
		srv, svc := newTestServer(t)
		resp := postResult(t, srv, resultBody(8101))
		resp.Body.Close()
		convey.So(waitForTeams(svc, 2), convey.ShouldBeTrue)

		convey.Convey("When the ranking table is fetched", func() {
			resp, err := http.Get(srv.URL + "/rankings?limit=10")
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then winner leads loser", func() {
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)
				entries := decode[[]api.Entry](t, resp)
				convey.So(entries, convey.ShouldHaveLength, 2)
				convey.So(entries[0].Team.ID, convey.ShouldEqual, 10)
				convey.So(entries[0].Rank, convey.ShouldEqual, 1)
				convey.So(entries[0].Team.Points, convey.ShouldEqual, 1525)
			})
		})

		convey.Convey("When the limit is out of range", func() {
			over, err := http.Get(srv.URL + "/rankings?limit=100000")
			convey.So(err, convey.ShouldBeNil)
			over.Body.Close()
			zero, err := http.Get(srv.URL + "/rankings?limit=0")
			convey.So(err, convey.ShouldBeNil)
			zero.Body.Close()

			convey.Convey("Then both are rejected", func() {
				convey.So(over.StatusCode, convey.ShouldEqual, http.StatusBadRequest)
				convey.So(zero.StatusCode, convey.ShouldEqual, http.StatusBadRequest)
			})
		})

		convey.Convey("When a single team is looked up", func() {
			resp, err := http.Get(srv.URL + "/rank/26")
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then its entry comes back", func() {
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)
				entry := decode[api.Entry](t, resp)
				convey.So(entry.Team.ID, convey.ShouldEqual, 26)
				convey.So(entry.Rank, convey.ShouldEqual, 2)
			})
		})

		convey.Convey("When an unknown team is looked up", func() {
			resp, err := http.Get(srv.URL + "/rank/424242")
			convey.So(err, convey.ShouldBeNil)
			defer resp.Body.Close()

			convey.Convey("Then the lookup 404s", func() {
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusNotFound)
			})
		})

		convey.Convey("When the team id is not numeric", func() {
			resp, err := http.Get(srv.URL + "/rank/brazil")
			convey.So(err, convey.ShouldBeNil)
			defer resp.Body.Close()

			convey.Convey("Then the lookup is rejected", func() {
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestTournamentsEndpoint(t *testing.T) {
	convey.Convey("Given a running API", t, func() {
		srv, _ := newTestServer(t)

		convey.Convey("When all tournaments are fetched", func() {
			resp, err := http.Get(srv.URL + "/tournaments")
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then the curated table comes back", func() {
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)
				entries := decode[[]tournament.Entry](t, resp)
				convey.So(len(entries), convey.ShouldBeGreaterThan, 40)
			})
		})

		convey.Convey("When filtered by confederation and tier", func() {
			resp, err := http.Get(srv.URL + "/tournaments?confederation=uefa&tier=2")
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then only matching continental competitions remain", func() {
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)
				entries := decode[[]tournament.Entry](t, resp)
				convey.So(len(entries), convey.ShouldBeGreaterThan, 0)
				for _, e := range entries {
					convey.So(e.Tier, convey.ShouldEqual, tournament.TierContinental)
				}
			})
		})

		convey.Convey("When the confederation is unknown", func() {
			resp, err := http.Get(srv.URL + "/tournaments?confederation=MARS")
			convey.So(err, convey.ShouldBeNil)
			defer resp.Body.Close()

			convey.Convey("Then the filter is rejected", func() {
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestPreviewEndpoint(t *testing.T) {
	convey.Convey("Given a running API", t, func() {
		srv, _ := newTestServer(t)

		convey.Convey("When a World Cup group fixture is previewed", func() {
			resp, err := http.Get(srv.URL + "/preview?home_id=61&away_id=62&league_id=1&round=Group%20Stage%20-%201&kickoff=2026-06-12T18:00:00Z")
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then all three outcomes are quoted", func() {
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)
				preview := decode[model.Preview](t, resp)
				convey.So(preview.Importance, convey.ShouldEqual, 50)
				convey.So(preview.HomeWin.HomeChange, convey.ShouldEqual, 25)
				convey.So(preview.AwayWin.HomeChange, convey.ShouldEqual, -25)
				convey.So(preview.Draw.HomeChange, convey.ShouldEqual, 0)
			})
		})

		convey.Convey("When required parameters are missing", func() {
			resp, err := http.Get(srv.URL + "/preview?home_id=61")
			convey.So(err, convey.ShouldBeNil)
			defer resp.Body.Close()

			convey.Convey("Then the request is rejected", func() {
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestMatchesStatsHealthSnapshots(t *testing.T) {
	convey.Convey("Given an API with one processed match", t, func() {
		srv, svc := newTestServer(t)
		resp := postResult(t, srv, resultBody(8201))
		resp.Body.Close()
		convey.So(waitForTeams(svc, 2), convey.ShouldBeTrue)

		convey.Convey("Then /matches lists the processed fixture", func() {
			resp, err := http.Get(srv.URL + "/matches?limit=5")
			convey.So(err, convey.ShouldBeNil)
			convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)
			matches := decode[[]model.ProcessedMatch](t, resp)
			convey.So(matches, convey.ShouldHaveLength, 1)
			convey.So(matches[0].FixtureID, convey.ShouldEqual, 8201)
			convey.So(matches[0].Home.PointsChange, convey.ShouldEqual, 25)
		})

		convey.Convey("Then /stats reports the pipeline state", func() {
			resp, err := http.Get(srv.URL + "/stats")
			convey.So(err, convey.ShouldBeNil)
			convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)
			stats := decode[app.Stats](t, resp)
			convey.So(stats.Started, convey.ShouldBeTrue)
			convey.So(stats.TrackedTeams, convey.ShouldEqual, 2)
		})

		convey.Convey("Then /healthz serves scrapeable metrics", func() {
			resp, err := http.Get(srv.URL + "/healthz")
			convey.So(err, convey.ShouldBeNil)
			defer resp.Body.Close()
			convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)
		})

		convey.Convey("Then snapshots can be captured and listed", func() {
			resp, err := http.Post(srv.URL+"/snapshots", "application/json", nil)
			convey.So(err, convey.ShouldBeNil)
			convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusCreated)
			snap := decode[model.Snapshot](t, resp)
			convey.So(snap.Entries, convey.ShouldHaveLength, 2)

			listResp, err := http.Get(srv.URL + "/snapshots")
			convey.So(err, convey.ShouldBeNil)
			convey.So(listResp.StatusCode, convey.ShouldEqual, http.StatusOK)
			snaps := decode[[]model.Snapshot](t, listResp)
			convey.So(snaps, convey.ShouldHaveLength, 1)
		})
	})
}
