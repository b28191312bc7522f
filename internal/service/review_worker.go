package service

import (
	"context"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"medverify/internal/domain"
	"medverify/internal/port"
)

// ReviewJob is a verification that needs a review artifact and a reviewer
// notification.
type ReviewJob struct {
	Record *domain.VerificationRecord
}

// ReviewWorkerConfig holds settings for the review worker.
type ReviewWorkerConfig struct {
	QueueSize   int
	Concurrency int
	JobTimeout  time.Duration
}

// ReviewWorker writes review artifacts and notifies reviewers off the
// request path. Every step is best-effort: failures are logged only.
type ReviewWorker struct {
	artifacts port.ArtifactStore
	notifier  port.ReviewNotifier
	cfg       ReviewWorkerConfig
	jobs      chan ReviewJob
	wg        sync.WaitGroup
}

// NewReviewWorker creates a new ReviewWorker. Either collaborator may be nil.
func NewReviewWorker(artifacts port.ArtifactStore, notifier port.ReviewNotifier, cfg ReviewWorkerConfig) *ReviewWorker {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 64
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 2
	}
	if cfg.JobTimeout <= 0 {
		cfg.JobTimeout = 30 * time.Second
	}
	return &ReviewWorker{
		artifacts: artifacts,
		notifier:  notifier,
		cfg:       cfg,
		jobs:      make(chan ReviewJob, cfg.QueueSize),
	}
}

// Enqueue hands a job to the worker without blocking. It reports false when
// the queue is full.
func (w *ReviewWorker) Enqueue(job ReviewJob) bool {
	select {
	case w.jobs <- job:
		return true
	default:
		return false
	}
}

// Start processes jobs until ctx is canceled. Jobs already queued at that
// point are still processed; Start returns once they and all in-flight jobs
// have finished.
func (w *ReviewWorker) Start(ctx context.Context) {
	sem := make(chan struct{}, w.cfg.Concurrency)

	log.Printf("reviewWorker: started (queue=%d, concurrency=%d)", w.cfg.QueueSize, w.cfg.Concurrency)

	for {
		select {
		case <-ctx.Done():
			log.Printf("reviewWorker: shutting down, draining %d queued jobs...", len(w.jobs))
			for {
				select {
				case job := <-w.jobs:
					w.dispatch(sem, job)
				default:
					w.wg.Wait()
					log.Printf("reviewWorker: shutdown complete")
					return
				}
			}
		case job := <-w.jobs:
			w.dispatch(sem, job)
		}
	}
}

func (w *ReviewWorker) dispatch(sem chan struct{}, job ReviewJob) {
	sem <- struct{}{} // acquire
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer func() { <-sem }() // release

		// Fresh context so shutdown does not cut jobs short.
		ctx, cancel := context.WithTimeout(context.Background(), w.cfg.JobTimeout)
		defer cancel()
		w.Process(ctx, job)
	}()
}

// Process runs a single job synchronously.
func (w *ReviewWorker) Process(ctx context.Context, job ReviewJob) {
	rec := job.Record
	if rec == nil {
		return
	}
	if w.artifacts != nil {
		body := rec.RawText
		loc, err := w.artifacts.Save(ctx, port.ArtifactInput{
			Name:        ArtifactName(rec.Filename, rec.CreatedAt),
			Body:        strings.NewReader(body),
			ContentType: "text/plain; charset=utf-8",
			Size:        int64(len(body)),
		})
		if err != nil {
			log.Printf("reviewWorker.Process: failed to write review artifact for %s: %v", rec.ID, err)
		} else {
			log.Printf("reviewWorker.Process: review artifact for %s written to %s", rec.ID, loc)
		}
	}
	if w.notifier != nil {
		if err := w.notifier.NotifyReview(ctx, rec); err != nil {
			log.Printf("reviewWorker.Process: failed to notify reviewers for %s: %v", rec.ID, err)
		}
	}
}

// ArtifactName builds "<base>-<YYYYMMDD-HHMMSS>.txt" from the uploaded
// filename, stripped of directories and extension.
func ArtifactName(filename string, at time.Time) string {
	base := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." || base == "/" {
		base = "upload"
	}
	return base + "-" + at.UTC().Format("20060102-150405") + ".txt"
}
