package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/watchlist-screener/internal/matcher"
	"github.com/watchlist-screener/internal/model"
	"github.com/watchlist-screener/internal/schema"
	"github.com/watchlist-screener/internal/scoring"
)

// MatchHandler exposes query-by-example screening. Callers submit a batch
// of named example entities; each gets an independently ranked result list
// keyed by the caller-chosen name.
type MatchHandler struct {
	Screener *matcher.Screener
	Schemas  *schema.Registry
	Defaults scoring.Config
	Log      *zap.Logger
}

// EntityExample is the wire form of a query entity.
type EntityExample struct {
	Schema     string              `json:"schema"`
	Properties map[string][]string `json:"properties"`
}

// MatchRequest is the body of POST /match.
type MatchRequest struct {
	Queries map[string]EntityExample `json:"queries"`
}

// EntityMatches is the per-query response block.
type EntityMatches struct {
	Query   EntityExample       `json:"query"`
	Results []model.MatchResult `json:"results"`
}

// MatchResponse is the full response body.
type MatchResponse struct {
	Responses map[string]EntityMatches `json:"responses"`
}

type errorResponse struct {
	Error string `json:"error"`
}

const maxBatch = 100

// Match handles POST /match. Threshold overrides come in as query
// parameters and are validated before any scoring happens.
func (h *MatchHandler) Match(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	log := h.Log.With(zap.String("request_id", requestID))
	w.Header().Set("X-Request-Id", requestID)

	var req MatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if len(req.Queries) == 0 {
		writeError(w, http.StatusBadRequest, "no queries provided")
		return
	}
	if len(req.Queries) > maxBatch {
		writeError(w, http.StatusBadRequest, "too many queries in one batch")
		return
	}

	cfg, err := h.configFor(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp := MatchResponse{Responses: make(map[string]EntityMatches, len(req.Queries))}
	for name, example := range req.Queries {
		query, err := model.NewEntity(h.Schemas, "", example.Schema, example.Properties)
		if err != nil {
			writeError(w, http.StatusBadRequest, "cannot parse example entity: "+err.Error())
			return
		}
		results, err := h.Screener.Screen(r.Context(), query, cfg)
		if err != nil {
			status := http.StatusInternalServerError
			var schemaErr *schema.Error
			var cfgErr *scoring.ConfigError
			if errors.As(err, &schemaErr) || errors.As(err, &cfgErr) {
				status = http.StatusBadRequest
			}
			log.Error("match failed", zap.String("query", name), zap.Error(err))
			writeError(w, status, err.Error())
			return
		}
		resp.Responses[name] = EntityMatches{Query: example, Results: results}
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Batch-Size", strconv.Itoa(len(resp.Responses)))
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Error("response encoding failed", zap.Error(err))
	}
}

// configFor applies per-request threshold overrides to the process
// defaults.
func (h *MatchHandler) configFor(r *http.Request) (scoring.Config, error) {
	cfg := h.Defaults
	q := r.URL.Query()
	if v := q.Get("match_threshold"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return cfg, errors.New("match_threshold must be a number")
		}
		cfg.MatchThreshold = f
	}
	if v := q.Get("possible_threshold"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return cfg, errors.New("possible_threshold must be a number")
		}
		cfg.PossibleThreshold = f
	}
	if v := q.Get("include_no_match"); v != "" {
		cfg.IncludeNoMatch = v == "true" || v == "1"
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: msg})
}
