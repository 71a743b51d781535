// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package composer

import (
	"sync"

	"github.com/MKhiriev/go-compositor/models"
)

// SynthesisModeCounter counts frames per composition mode. Every increment
// also bumps the total, so the per-mode counts always sum to it.
type SynthesisModeCounter struct {
	mu   sync.Mutex
	info models.LayerSynthesisModeInfo
}

func (c *SynthesisModeCounter) Inc(mode models.CompositionMode) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch mode {
	case models.CompositionUniform:
		c.info.UniformFrames++
	case models.CompositionOffline:
		c.info.OfflineFrames++
	case models.CompositionRedraw:
		c.info.RedrawFrames++
	default:
		return
	}
	c.info.TotalFrames++
}

// MoveOfflineToRedraw reclassifies one offline frame as a redraw frame.
// It fails without touching the counters when no offline frame is recorded.
func (c *SynthesisModeCounter) MoveOfflineToRedraw() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.info.OfflineFrames == 0 {
		return ErrCounterUnderflow
	}
	c.info.OfflineFrames--
	c.info.RedrawFrames++
	return nil
}

func (c *SynthesisModeCounter) Info() models.LayerSynthesisModeInfo {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.info
}

// Reset zeroes the counters and returns what was cleared.
func (c *SynthesisModeCounter) Reset() models.LayerSynthesisModeInfo {
	c.mu.Lock()
	defer c.mu.Unlock()

	info := c.info
	c.info = models.LayerSynthesisModeInfo{}
	return info
}

// Consistent reports whether the per-mode counts add up to the total.
func (c *SynthesisModeCounter) Consistent() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.info.UniformFrames+c.info.OfflineFrames+c.info.RedrawFrames == c.info.TotalFrames
}
