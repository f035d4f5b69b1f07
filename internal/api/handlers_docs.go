package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// handleListDocuments lists all indexed documents currently cached.
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	entries := s.orchestrator.Indexes().List()

	docs := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		doc := map[string]any{
			"doc_id":       e.DocID,
			"title":        e.Title,
			"content_hash": e.ContentHash,
			"created_at":   e.CreatedAt,
		}
		if e.Tree != nil {
			doc["tree_nodes"] = e.Tree.CountNodes()
		}
		if e.Graph != nil {
			doc["graph_nodes"] = len(e.Graph.Nodes)
			doc["graph_edges"] = len(e.Graph.Edges)
		}
		docs = append(docs, doc)
	}

	writeJSON(w, http.StatusOK, map[string]any{"documents": docs})
}

// handleGetTree returns the serialized tree index for a document.
func (s *Server) handleGetTree(w http.ResponseWriter, r *http.Request) {
	entry := s.orchestrator.Indexes().Get(chi.URLParam(r, "docID"))
	if entry == nil || entry.Tree == nil {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, entry.Tree)
}

// handleGetGraph returns the serialized graph index for a document.
func (s *Server) handleGetGraph(w http.ResponseWriter, r *http.Request) {
	entry := s.orchestrator.Indexes().Get(chi.URLParam(r, "docID"))
	if entry == nil || entry.Graph == nil {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, entry.Graph)
}

// handleDeleteDocument drops a document's indexes from the cache.
func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	if !s.orchestrator.Indexes().Delete(docID) {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": docID})
}
