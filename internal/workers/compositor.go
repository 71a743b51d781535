// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import "context"

// Loop is the composition loop driven by the vsync generator.
type Loop interface {
	Run(ctx context.Context) error
}

type compositorWorker struct {
	loop Loop
}

// NewCompositorWorker wraps the composition loop as a Worker.
func NewCompositorWorker(loop Loop) Worker {
	return &compositorWorker{loop: loop}
}

func (c *compositorWorker) Run(ctx context.Context) error {
	return c.loop.Run(ctx)
}
