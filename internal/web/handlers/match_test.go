package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/watchlist-screener/internal/matcher"
	"github.com/watchlist-screener/internal/model"
	"github.com/watchlist-screener/internal/registry"
	"github.com/watchlist-screener/internal/schema"
	"github.com/watchlist-screener/internal/scoring"
	"github.com/watchlist-screener/internal/source"
)

func newTestHandler(t *testing.T, entities ...*model.Entity) *MatchHandler {
	t.Helper()
	schemas := schema.Builtin()
	m := matcher.New(registry.New(schemas, registry.Options{}))
	screener := matcher.NewScreener(&source.Static{Entities: entities}, m, 10, zap.NewNop(), nil)
	return &MatchHandler{
		Screener: screener,
		Schemas:  schemas,
		Defaults: scoring.Default(),
		Log:      zap.NewNop(),
	}
}

func mustEntity(t *testing.T, id, schemaName string, props map[string][]string) *model.Entity {
	t.Helper()
	e, err := model.NewEntity(schema.Builtin(), id, schemaName, props)
	require.NoError(t, err)
	return e
}

func postMatch(t *testing.T, h *MatchHandler, url string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, url, bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	h.Match(rec, req)
	return rec
}

func TestMatchEndpoint(t *testing.T) {
	h := newTestHandler(t,
		mustEntity(t, "A", "Person", map[string][]string{
			"name":      {"Vladimir Putin"},
			"birthDate": {"1952-10-07"},
		}),
		mustEntity(t, "B", "Person", map[string][]string{
			"name":      {"Vladimir Putinov"},
			"birthDate": {"1965"},
		}),
	)

	rec := postMatch(t, h, "/match", MatchRequest{
		Queries: map[string]EntityExample{
			"q1": {
				Schema: "Person",
				Properties: map[string][]string{
					"name":      {"Vladimir Putin"},
					"birthDate": {"1952"},
				},
			},
		},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
	assert.Equal(t, "1", rec.Header().Get("X-Batch-Size"))

	var resp MatchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	block, ok := resp.Responses["q1"]
	require.True(t, ok)
	require.NotEmpty(t, block.Results)
	assert.Equal(t, "A", block.Results[0].Entity.ID)
	assert.Equal(t, model.Match, block.Results[0].Classification)
	assert.NotEmpty(t, block.Results[0].Features, "breakdown must be exposed for explanations")
}

func TestMatchRejectsUnknownSchema(t *testing.T) {
	h := newTestHandler(t)
	rec := postMatch(t, h, "/match", MatchRequest{
		Queries: map[string]EntityExample{
			"q1": {Schema: "Spaceship", Properties: map[string][]string{"name": {"X"}}},
		},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMatchRejectsIllegalProperty(t *testing.T) {
	h := newTestHandler(t)
	rec := postMatch(t, h, "/match", MatchRequest{
		Queries: map[string]EntityExample{
			"q1": {Schema: "Person", Properties: map[string][]string{"imoNumber": {"123"}}},
		},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMatchRejectsBadThresholds(t *testing.T) {
	h := newTestHandler(t)
	rec := postMatch(t, h, "/match?match_threshold=0.3&possible_threshold=0.6", MatchRequest{
		Queries: map[string]EntityExample{
			"q1": {Schema: "Person", Properties: map[string][]string{"name": {"X"}}},
		},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMatchRejectsEmptyBatch(t *testing.T) {
	h := newTestHandler(t)
	rec := postMatch(t, h, "/match", MatchRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMatchThresholdOverride(t *testing.T) {
	h := newTestHandler(t,
		mustEntity(t, "B", "Person", map[string][]string{
			"name": {"Vladimir Putinov"},
		}),
	)
	// Default thresholds would classify this as possible; a raised
	// possible_threshold filters it out entirely.
	rec := postMatch(t, h, "/match?match_threshold=0.99&possible_threshold=0.98", MatchRequest{
		Queries: map[string]EntityExample{
			"q1": {Schema: "Person", Properties: map[string][]string{"name": {"Vladimir Putin"}}},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var resp MatchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Responses["q1"].Results)
}
