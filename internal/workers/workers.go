// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"

	"github.com/MKhiriev/go-compositor/internal/logger"
	"golang.org/x/sync/errgroup"
)

// Workers runs a set of workers together. When one of them fails the others
// are cancelled.
type Workers struct {
	workers []Worker
	logger  *logger.Logger
}

// NewWorkers drops nil entries so optional workers can be passed as-is.
func NewWorkers(log *logger.Logger, workers ...Worker) *Workers {
	ws := &Workers{logger: log}
	for _, w := range workers {
		if w != nil {
			ws.workers = append(ws.workers, w)
		}
	}
	return ws
}

// Len reports how many workers will run.
func (w *Workers) Len() int {
	return len(w.workers)
}

// Run starts every worker and waits for all of them to return.
func (w *Workers) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, worker := range w.workers {
		g.Go(func() error {
			return worker.Run(ctx)
		})
	}

	err := g.Wait()
	if err != nil {
		w.logger.Err(err).Msg("background workers stopped with error")
	}
	return err
}
