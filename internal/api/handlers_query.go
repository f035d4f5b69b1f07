package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/dgallion1/docindex/internal/reason"
	"github.com/dgallion1/docindex/internal/retrieve"
	"github.com/dgallion1/docindex/internal/search"
	"github.com/dgallion1/docindex/internal/store"
	"github.com/go-chi/chi/v5"
)

// queryRequest selects a search strategy over a built index.
type queryRequest struct {
	Query      string  `json:"query"`
	Strategy   string  `json:"strategy,omitempty"` // tree | graph | reason
	MaxResults int     `json:"max_results,omitempty"`
	MaxDepth   float64 `json:"max_depth,omitempty"`
	Baseline   bool    `json:"baseline,omitempty"` // graph only: plain distance order
}

type queryResponse struct {
	Strategy  string              `json:"strategy"`
	Rationale string              `json:"rationale,omitempty"`
	Paths     []search.PathResult `json:"paths,omitempty"`
	NodeIDs   []string            `json:"node_ids"`
	Records   []retrieve.Record   `json:"records"`
	Context   string              `json:"context"`
}

// handleQuery runs one of the search strategies against a cached index and
// returns the selected nodes plus a formatted context string.
func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	entry := s.orchestrator.Indexes().Get(chi.URLParam(r, "docID"))
	if entry == nil {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}

	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid json body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Query == "" {
		jsonError(w, "query is required", http.StatusBadRequest)
		return
	}
	if req.MaxResults <= 0 {
		req.MaxResults = s.cfg.SearchMaxResults
	}

	switch req.Strategy {
	case "", "tree":
		s.queryTree(w, entry, req)
	case "graph":
		s.queryGraph(w, entry, req)
	case "reason":
		s.queryReason(r.Context(), w, entry, req)
	default:
		jsonError(w, "unknown strategy: "+req.Strategy, http.StatusBadRequest)
	}
}

func (s *Server) queryTree(w http.ResponseWriter, entry *store.Entry, req queryRequest) {
	result := search.SearchTree(entry.Tree, req.Query, req.MaxResults)

	ids := make([]string, 0, len(result.Nodes))
	for _, n := range result.Nodes {
		ids = append(ids, n.Node.ID)
	}
	records := retrieve.FromTree(entry.Tree, ids)

	writeJSON(w, http.StatusOK, queryResponse{
		Strategy:  "tree",
		Rationale: result.Rationale,
		NodeIDs:   ids,
		Records:   records,
		Context:   retrieve.FormatContext(records),
	})
}

func (s *Server) queryGraph(w http.ResponseWriter, entry *store.Entry, req queryRequest) {
	sources := search.Sources(entry.Graph, req.Query)
	result := search.SearchGraph(entry.Graph, sources, search.Options{
		MaxResults:    req.MaxResults,
		MaxDepth:      orDefault(req.MaxDepth, s.cfg.GraphMaxDepth),
		MinEdgeWeight: s.cfg.MinEdgeWeight,
		Selective:     !req.Baseline,
	})

	records := retrieve.FromGraph(entry.Graph, result.NodeIDs)

	writeJSON(w, http.StatusOK, queryResponse{
		Strategy: "graph",
		Paths:    result.Paths,
		NodeIDs:  result.NodeIDs,
		Records:  records,
		Context:  retrieve.FormatContext(records),
	})
}

// queryReason delegates node selection to the reasoning model, falling back
// to the keyword scorer when the model is unavailable or its answer is
// unusable.
func (s *Server) queryReason(ctx context.Context, w http.ResponseWriter, entry *store.Entry, req queryRequest) {
	if !s.reasoner.Enabled() {
		s.queryTree(w, entry, req)
		return
	}

	outline := reason.RenderOutline(entry.Tree)

	var ids []string
	var err error
	for attempt := 0; attempt < reason.MaxRetries; attempt++ {
		ids, err = s.reasoner.SelectNodes(ctx, req.Query, outline)
		if err == nil || !reason.IsRetryable(err) {
			break
		}
		s.log.Warn("retryable reasoning error", "attempt", attempt, "error", err)
		select {
		case <-time.After(reason.Backoff(attempt)):
		case <-ctx.Done():
			jsonError(w, "request cancelled", http.StatusRequestTimeout)
			return
		}
	}
	if err != nil {
		s.log.Warn("reasoning failed, falling back to keyword scorer", "error", err)
		s.queryTree(w, entry, req)
		return
	}

	known := make(map[string]bool)
	for id := range entry.Tree.Lookup() {
		known[id] = true
	}
	valid, err := reason.ValidateSelection(ids, known)
	if err != nil {
		s.log.Warn("invalid selection, falling back to keyword scorer", "error", err)
		s.queryTree(w, entry, req)
		return
	}

	records := retrieve.FromTree(entry.Tree, valid)
	writeJSON(w, http.StatusOK, queryResponse{
		Strategy:  "reason",
		Rationale: "nodes selected by reasoning model",
		NodeIDs:   valid,
		Records:   records,
		Context:   retrieve.FormatContext(records),
	})
}

func orDefault(v, fallback float64) float64 {
	if v > 0 {
		return v
	}
	return fallback
}
