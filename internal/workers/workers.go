package workers

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-feed-client/internal/logger"
)

// Workers runs a fixed set of workers as one unit.
type Workers struct {
	workers []Worker
}

// New groups ws. Nil workers are skipped.
func New(ws ...Worker) *Workers {
	out := &Workers{workers: make([]Worker, 0, len(ws))}
	for _, w := range ws {
		if w != nil {
			out.workers = append(out.workers, w)
		}
	}
	return out
}

// Run starts every worker in its own goroutine and blocks until all of them
// have returned. The context passed to the workers is cancelled as soon as
// any worker returns, with or without an error. Run returns the first
// non-nil error. Worker errors are logged with the logger carried by ctx.
func (w *Workers) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)
	g, ctx := errgroup.WithContext(ctx)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	for _, worker := range w.workers {
		g.Go(func() error {
			defer cancel()
			if err := worker.Run(ctx); err != nil {
				log.Err(err).Str("func", "*Workers.Run").Msg("worker stopped with error")
				return err
			}
			return nil
		})
	}

	return g.Wait()
}
