package pipeline

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dgallion1/docindex/internal/graph"
	"github.com/dgallion1/docindex/internal/hierarchy"
	"github.com/dgallion1/docindex/internal/parser"
	"github.com/dgallion1/docindex/internal/store"
)

// Worker builds both index shapes for a single job.
type Worker struct {
	trees   *hierarchy.Builder
	graphs  *graph.Indexer
	indexes *store.IndexStore
	log     *slog.Logger
}

func NewWorker(trees *hierarchy.Builder, graphs *graph.Indexer, indexes *store.IndexStore, log *slog.Logger) *Worker {
	return &Worker{
		trees:   trees,
		graphs:  graphs,
		indexes: indexes,
		log:     log,
	}
}

// Process runs the full index-construction pipeline for a job.
func (w *Worker) Process(job *Job) {
	log := w.log.With("job_id", job.ID, "doc_id", job.DocID)

	// Phase 1: Parse (skipped for pre-extracted text).
	text := job.rawText
	if text == "" {
		job.SetStatus(StatusParsing, "parsing")
		p, err := parser.ForFile(job.Filename)
		if err != nil {
			log.Error("unsupported format", "error", err)
			job.AddError(err.Error())
			job.SetStatus(StatusFailed, "parsing")
			return
		}
		extracted, err := p.Parse(bytes.NewReader(job.fileData), job.Filename)
		if err != nil {
			log.Error("parse failed", "error", err)
			job.AddError(fmt.Sprintf("parse: %s", err))
			job.SetStatus(StatusFailed, "parsing")
			return
		}
		text = extracted.Text
		job.FillTitle(extracted.Title)
	}

	hash := ContentHashHex([]byte(text))
	job.SetContentHash(hash)
	if existing := w.indexes.FindByHash(hash); existing != nil {
		log.Info("duplicate document, skipping", "existing_doc_id", existing.DocID)
		job.SetDocID(existing.DocID)
		job.SetStatus(StatusDupSkipped, "dedup")
		return
	}

	// Phase 2: Build both index shapes. Empty input is not a failure; the
	// stored indexes just have zero nodes.
	job.SetStatus(StatusBuilding, "building")
	tree := w.trees.Build(text, job.Title, job.Description)
	tree.Source = job.Filename
	gr := w.graphs.Build(text, job.Title, job.Description)

	// The graph holds one node per segment plus the document root.
	segments := len(gr.Nodes)
	if segments > 0 {
		segments--
	}
	job.SetCounts(segments, tree.CountNodes(), len(gr.Nodes), len(gr.Edges))

	if strings.TrimSpace(text) == "" {
		log.Warn("no indexable content")
	}

	w.indexes.Put(&store.Entry{
		DocID:       job.DocID,
		Title:       job.Title,
		ContentHash: hash,
		Tree:        tree,
		Graph:       gr,
		CreatedAt:   tree.CreatedAt,
	})

	log.Info("indexed document",
		"tree_nodes", tree.CountNodes(),
		"graph_nodes", len(gr.Nodes),
		"graph_edges", len(gr.Edges),
	)
	job.SetStatus(StatusCompleted, "done")
}
