package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/TaleirOfDeynai/NAI-Lore-Helper/internal/metrics"
	"github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/adapters/memory"
	"github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/builder"
	"github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/lorebook"
	"github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/phrase"
	"github.com/TaleirOfDeynai/NAI-Lore-Helper/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compileProject(_ context.Context, p *ports.Project) (*lorebook.Lorebook, error) {
	return builder.New(p.BuilderOptions()...).Lorebook(p.Settings, p.Entries...), nil
}

func newTestServer(entries ...builder.Entry) *Server {
	return &Server{
		Loader:  memory.NewLoader(ports.Project{Name: "world", Entries: entries}),
		Compile: compileProject,
		Metrics: metrics.New(),
	}
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestGetHealth(t *testing.T) {
	rr := get(t, NewHandler(newTestServer()), "/healthz")

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestGetLorebook(t *testing.T) {
	s := newTestServer(builder.Entry{
		Name: "Kingdom",
		Keys: []phrase.Phrase{phrase.Word("kingdom")},
		Text: []string{"A small kingdom."},
	})
	rr := get(t, NewHandler(s), "/lorebook")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))

	lb, err := lorebook.Parse(rr.Body.Bytes())
	require.NoError(t, err)
	require.Len(t, lb.Entries, 1)
	assert.Equal(t, "Kingdom", lb.Entries[0].DisplayName)
	assert.Equal(t, "A small kingdom.", lb.Entries[0].Text)
}

func TestGetGraph(t *testing.T) {
	s := newTestServer(builder.Entry{Name: "Kingdom", Text: []string{"x"}})
	rr := get(t, NewHandler(s), "/graph")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "graph TD")
	assert.Contains(t, rr.Body.String(), "Kingdom")
}

func TestGetValidate(t *testing.T) {
	t.Run("clean", func(t *testing.T) {
		s := newTestServer(builder.Entry{
			Name: "Kingdom",
			Keys: []phrase.Phrase{phrase.Word("kingdom")},
			Text: []string{"x"},
		})
		rr := get(t, NewHandler(s), "/validate")

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, "[]", rr.Body.String())
	})

	t.Run("errors", func(t *testing.T) {
		s := newTestServer(builder.Entry{
			Name:   "Broken",
			Keys:   []phrase.Phrase{phrase.Word("x")},
			Text:   []string{"x"},
			Config: lorebook.Config{Context: lorebook.ContextOverride{TokenBudget: lorebook.Ptr(-1)}},
		})
		rr := get(t, NewHandler(s), "/validate")

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		var issues []issueResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &issues))
		require.NotEmpty(t, issues)
		assert.Equal(t, "Broken", issues[0].Entry)
		assert.Equal(t, "error", issues[0].Severity)
	})
}

func TestCompileFailure(t *testing.T) {
	s := newTestServer()
	s.Compile = func(context.Context, *ports.Project) (*lorebook.Lorebook, error) {
		return nil, errors.New("boom")
	}
	rr := get(t, NewHandler(s), "/lorebook")

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "boom")
}

func TestGetMetrics(t *testing.T) {
	s := newTestServer()
	s.Metrics.ObserveBuild("world", nil)
	rr := get(t, NewHandler(s), "/metrics")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `lorehelper_builds_total{outcome="success",project="world"} 1`)

	s.Metrics = nil
	assert.Equal(t, http.StatusNotFound, get(t, NewHandler(s), "/metrics").Code)
}

func TestOptionsPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/lorebook", nil)
	rr := httptest.NewRecorder()
	NewHandler(newTestServer()).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "GET, OPTIONS", rr.Header().Get("Access-Control-Allow-Methods"))
}

type watchLoader struct {
	*memory.Loader
	events chan string
}

func (w *watchLoader) Watch(context.Context) (<-chan string, error) {
	return w.events, nil
}

func TestSubscribeEvents(t *testing.T) {
	t.Run("not watchable", func(t *testing.T) {
		rr := get(t, NewHandler(newTestServer()), "/events")
		assert.Equal(t, http.StatusNotImplemented, rr.Code)
	})

	t.Run("reload", func(t *testing.T) {
		events := make(chan string, 1)
		events <- "world.yaml"
		close(events)

		s := newTestServer()
		s.Loader = &watchLoader{Loader: memory.NewLoader(ports.Project{}), events: events}
		rr := get(t, NewHandler(s), "/events")

		assert.Equal(t, "text/event-stream", rr.Header().Get("Content-Type"))
		assert.Equal(t, "event: ping\ndata: connected\n\ndata: reload\n\n", rr.Body.String())
	})
}
