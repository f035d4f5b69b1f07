package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dgallion1/docindex/internal/config"
	"github.com/dgallion1/docindex/internal/graph"
	"github.com/dgallion1/docindex/internal/hierarchy"
	"github.com/dgallion1/docindex/internal/ident"
	"github.com/dgallion1/docindex/internal/segment"
	"github.com/dgallion1/docindex/internal/store"
)

// Orchestrator manages the asynchronous index-construction pipeline.
type Orchestrator struct {
	jobs    *JobStore
	queue   chan *Job
	indexes *store.IndexStore
	log     *slog.Logger
	cfg     config.Config

	trees  *hierarchy.Builder
	graphs *graph.Indexer

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewOrchestrator wires the builders and worker pool.
func NewOrchestrator(cfg config.Config, indexes *store.IndexStore, log *slog.Logger) *Orchestrator {
	segCfg := segment.Config{HeadingPatterns: cfg.HeadingPatterns()}

	return &Orchestrator{
		jobs:    NewJobStore(cfg.JobTTL),
		queue:   make(chan *Job, cfg.MaxQueueSize),
		indexes: indexes,
		log:     log,
		cfg:     cfg,
		trees: hierarchy.NewBuilder(hierarchy.Config{
			SummaryMaxLength: cfg.SummaryMaxLength,
			Segment:          segCfg,
		}, ident.UUIDGenerator{}),
		graphs: graph.NewIndexer(graph.Config{
			MaxDepth:                cfg.GraphMaxDepth,
			MaxResults:              cfg.GraphMaxResults,
			MinEdgeWeight:           cfg.MinEdgeWeight,
			EnableCrossReferences:   cfg.EnableCrossReferences,
			PrecomputeRelationships: cfg.PrecomputeRelationships,
			Segment:                 segCfg,
		}, ident.UUIDGenerator{}),
	}
}

// Start launches worker goroutines.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	for i := 0; i < o.cfg.WorkerCount; i++ {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			w := NewWorker(o.trees, o.graphs, o.indexes, o.log)
			for {
				select {
				case <-workerCtx.Done():
					return
				case job, ok := <-o.queue:
					if !ok {
						return
					}
					w.Process(job)
				}
			}
		}()
	}

	// Evict expired jobs and indexes.
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				o.jobs.Cleanup()
				o.indexes.Cleanup()
			}
		}
	}()
}

// Stop gracefully shuts down the pipeline.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
	close(o.queue)
	o.wg.Wait()
}

// Submit queues a new job for processing.
func (o *Orchestrator) Submit(job *Job) error {
	o.jobs.Put(job)
	select {
	case o.queue <- job:
		return nil
	default:
		job.SetStatus(StatusFailed, "queue_full")
		return fmt.Errorf("job queue is full (%d)", o.cfg.MaxQueueSize)
	}
}

// GetJob returns a job by ID.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.jobs.Get(id)
}

// QueueDepth returns current queue depth.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}

// Indexes returns the index store for direct use by API handlers.
func (o *Orchestrator) Indexes() *store.IndexStore {
	return o.indexes
}
