// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package backend

import (
	"context"
	"sync"
)

// Fence signals when a committed frame was presented.
type Fence struct {
	once      sync.Once
	done      chan struct{}
	timestamp int64
}

func NewFence() *Fence {
	return &Fence{done: make(chan struct{})}
}

// NewSignaledFence returns a fence already signaled at timestamp.
func NewSignaledFence(timestamp int64) *Fence {
	f := NewFence()
	f.Signal(timestamp)
	return f
}

// Signal marks the fence presented at timestamp. Later calls are ignored.
func (f *Fence) Signal(timestamp int64) {
	f.once.Do(func() {
		f.timestamp = timestamp
		close(f.done)
	})
}

// Wait blocks until the fence is signaled or ctx is done.
func (f *Fence) Wait(ctx context.Context) error {
	select {
	case <-f.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *Fence) Signaled() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Timestamp returns the presentation time, zero until signaled.
func (f *Fence) Timestamp() int64 {
	if !f.Signaled() {
		return 0
	}
	return f.timestamp
}
