package api

import "net/http"

func (s *Server) handleLLMStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.reasoner.Stats().Snapshot())
}

func (s *Server) handleCacheStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"indexes":     s.orchestrator.Indexes().Stats(),
		"queue_depth": s.orchestrator.QueueDepth(),
	})
}
