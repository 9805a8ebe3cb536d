package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/fairway/internal/adapters/http/api"
	"github.com/okian/fairway/internal/adapters/repository"
	"github.com/okian/fairway/internal/domain/types"
	"github.com/okian/fairway/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// stubDeps implements api.Dependencies and api.StatsProvider with canned
// responses for handler tests.
type stubDeps struct {
	sessions   []types.SessionInfo
	aggregates []types.ClubAggregate
	trends     []types.ClubTrend
	rounds     []types.RoundSummary

	uploadName string
	uploadErr  error
	lastBasis  string
	syncOK     bool
}

func (s *stubDeps) Sessions(context.Context) []types.SessionInfo { return s.sessions }

func (s *stubDeps) Aggregates(_ context.Context, basisOverride string) []types.ClubAggregate {
	s.lastBasis = basisOverride
	return s.aggregates
}

func (s *stubDeps) Trends(context.Context) []types.ClubTrend { return s.trends }

func (s *stubDeps) Rounds(context.Context) []types.RoundSummary { return s.rounds }

func (s *stubDeps) UploadSession(_ context.Context, filename string, _ []byte) (string, error) {
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	if s.uploadName != "" {
		return s.uploadName, nil
	}
	return filename, nil
}

func (s *stubDeps) SyncRounds(context.Context) bool { return s.syncOK }

func (s *stubDeps) GetStats() map[string]interface{} {
	return map[string]interface{}{"started": true}
}

func newTestMux(deps *stubDeps) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(deps, deps, 1<<20).Register(context.Background(), mux)
	return mux
}

func TestSessionsEndpoint(t *testing.T) {
	Convey("Given the API with one loaded session", t, func() {
		deps := &stubDeps{
			sessions: []types.SessionInfo{
				{File: "saturday__05_46_pm.csv", Label: "Saturday 05:46 PM", Shots: 42},
			},
		}
		mux := newTestMux(deps)

		Convey("When listing sessions", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sessions", nil))

			Convey("Then the session list comes back as JSON", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var got []types.SessionInfo
				So(json.Unmarshal(rec.Body.Bytes(), &got), ShouldBeNil)
				So(got, ShouldHaveLength, 1)
				So(got[0].Label, ShouldEqual, "Saturday 05:46 PM")
			})
		})

		Convey("When uploading via multipart form", func() {
			var body bytes.Buffer
			mw := multipart.NewWriter(&body)
			part, err := mw.CreateFormFile("file", "sunday__09_15_am.csv")
			So(err, ShouldBeNil)
			_, err = part.Write([]byte("Shot,Club,Smash\n1,Driver,1.44\n"))
			So(err, ShouldBeNil)
			So(mw.Close(), ShouldBeNil)

			req := httptest.NewRequest(http.MethodPost, "/sessions", &body)
			req.Header.Set("Content-Type", mw.FormDataContentType())
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			Convey("Then the upload is accepted", func() {
				So(rec.Code, ShouldEqual, http.StatusCreated)
				So(rec.Body.String(), ShouldContainSubstring, "sunday__09_15_am.csv")
			})
		})

		Convey("When uploading a raw body with a name parameter", func() {
			req := httptest.NewRequest(http.MethodPost, "/sessions?name=range.csv",
				strings.NewReader("Shot,Club,Smash\n1,Driver,1.44\n"))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			Convey("Then the upload is accepted", func() {
				So(rec.Code, ShouldEqual, http.StatusCreated)
			})
		})

		Convey("When uploading a raw body without a name", func() {
			req := httptest.NewRequest(http.MethodPost, "/sessions", strings.NewReader("data"))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			Convey("Then the request is rejected", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the upload lacks a club column", func() {
			deps.uploadErr = repository.ErrMissingClubColumn
			req := httptest.NewRequest(http.MethodPost, "/sessions?name=bad.csv",
				strings.NewReader("Shot,Smash\n1,1.44\n"))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			Convey("Then the client gets a 400, not a 500", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestAggregatesEndpoint(t *testing.T) {
	Convey("Given the API with aggregated rows", t, func() {
		smash := 1.45
		deps := &stubDeps{
			aggregates: []types.ClubAggregate{
				{SessionLabel: "S1", Club: "Driver", Shots: 10, SmashAvg: &smash, TargetSmash: 1.48},
			},
		}
		mux := newTestMux(deps)

		Convey("When fetching aggregates", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/aggregates", nil))

			Convey("Then the table comes back", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Body.String(), ShouldContainSubstring, "Driver")
				So(deps.lastBasis, ShouldEqual, "")
			})
		})

		Convey("When overriding the basis metric", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/aggregates?metric=total", nil))

			Convey("Then the override is passed through", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(deps.lastBasis, ShouldEqual, "total")
			})
		})

		Convey("When the metric name is unknown", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/aggregates?metric=vibes", nil))

			Convey("Then the request is rejected", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
				So(rec.Body.String(), ShouldContainSubstring, "unknown metric")
			})
		})
	})
}

func TestTrendsEndpoint(t *testing.T) {
	Convey("Given the API with a trend row", t, func() {
		deps := &stubDeps{
			trends: []types.ClubTrend{{Club: "7 Iron", Sessions: 2, Direction: "improving"}},
		}
		mux := newTestMux(deps)

		Convey("When fetching trends", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/trends", nil))

			Convey("Then the table comes back", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Body.String(), ShouldContainSubstring, "improving")
			})
		})
	})
}

func TestRoundsEndpoints(t *testing.T) {
	Convey("Given the API with one round", t, func() {
		deps := &stubDeps{
			rounds: []types.RoundSummary{{RoundID: "12345", Course: "Pebble Creek", Holes: 18}},
			syncOK: true,
		}
		mux := newTestMux(deps)

		Convey("When fetching rounds", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/rounds", nil))

			Convey("Then the summaries come back", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Body.String(), ShouldContainSubstring, "Pebble Creek")
			})
		})

		Convey("When scheduling a sync", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/rounds/sync", nil))

			Convey("Then the job is accepted", func() {
				So(rec.Code, ShouldEqual, http.StatusAccepted)
				So(rec.Body.String(), ShouldContainSubstring, "scheduled")
			})
		})

		Convey("When the sync queue is full", func() {
			deps.syncOK = false
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/rounds/sync", nil))

			Convey("Then the client is told to back off", func() {
				So(rec.Code, ShouldEqual, http.StatusTooManyRequests)
			})
		})

		Convey("When using the wrong method on sync", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/rounds/sync", nil))

			Convey("Then it is not found", func() {
				So(rec.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestStatsEndpoint(t *testing.T) {
	Convey("Given the API", t, func() {
		mux := newTestMux(&stubDeps{})

		Convey("When fetching stats", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))

			Convey("Then the service stats come back as JSON", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Body.String(), ShouldContainSubstring, "started")
			})
		})
	})
}

func TestHealthEndpoint(t *testing.T) {
	Convey("Given the API", t, func() {
		mux := newTestMux(&stubDeps{})

		Convey("When scraping the health endpoint", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			Convey("Then the Prometheus exposition is served", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Body.String(), ShouldContainSubstring, "fairway_")
			})
		})
	})
}

func TestRootRedirect(t *testing.T) {
	Convey("Given the API", t, func() {
		mux := newTestMux(&stubDeps{})

		Convey("When fetching the root", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			Convey("Then it redirects to the dashboard", func() {
				So(rec.Code, ShouldEqual, http.StatusFound)
				So(rec.Header().Get("Location"), ShouldEqual, "/dashboard")
			})
		})

		Convey("When fetching an unknown path", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

			Convey("Then it is not found", func() {
				So(rec.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestDashboardEndpoint(t *testing.T) {
	Convey("Given the API", t, func() {
		mux := newTestMux(&stubDeps{})

		Convey("When fetching the dashboard", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

			Convey("Then the embedded page is served", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Header().Get("Content-Type"), ShouldContainSubstring, "text/html")
				So(rec.Body.String(), ShouldContainSubstring, "Fairway")
			})
		})
	})
}
