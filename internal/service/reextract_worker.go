package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ReextractConfig holds settings for batch re-extraction.
type ReextractConfig struct {
	Concurrency int
	ScanTimeout time.Duration
}

// ReextractWorker replays stored documents through the extraction engine
// with bounded concurrency. Used by the backfill command after engine or
// keyword-set changes.
type ReextractWorker struct {
	scans ScanService
	cfg   ReextractConfig
	wg    sync.WaitGroup
}

// NewReextractWorker creates a new ReextractWorker.
func NewReextractWorker(scans ScanService, cfg ReextractConfig) *ReextractWorker {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 4
	}
	if cfg.ScanTimeout <= 0 {
		cfg.ScanTimeout = 5 * time.Minute
	}
	return &ReextractWorker{scans: scans, cfg: cfg}
}

// Run re-extracts every given scan and blocks until all are done or ctx is
// canceled. Returns the number of scans that completed without an
// infrastructure error.
func (w *ReextractWorker) Run(ctx context.Context, ids []uuid.UUID) int {
	sem := make(chan struct{}, w.cfg.Concurrency)
	var mu sync.Mutex
	completed := 0

	log.Printf("reextractWorker: started (scans=%d, concurrency=%d)", len(ids), w.cfg.Concurrency)

	for _, id := range ids {
		if ctx.Err() != nil {
			break
		}

		sem <- struct{}{} // acquire
		w.wg.Add(1)
		go func(id uuid.UUID) {
			defer w.wg.Done()
			defer func() { <-sem }() // release

			scanCtx, cancel := context.WithTimeout(ctx, w.cfg.ScanTimeout)
			defer cancel()

			scan, err := w.scans.Reextract(scanCtx, id)
			if err != nil {
				log.Printf("reextractWorker: scan %s failed: %v", id, err)
				return
			}
			log.Printf("reextractWorker: scan %s -> %s", id, scan.Status)

			mu.Lock()
			completed++
			mu.Unlock()
		}(id)
	}

	w.wg.Wait()
	return completed
}
