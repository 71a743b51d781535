// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/MKhiriev/go-compositor/internal/config"
	"github.com/MKhiriev/go-compositor/internal/logger"
	"github.com/fsnotify/fsnotify"
)

type configWatcher struct {
	path   string
	rates  RefreshRateSetter
	logger *logger.Logger

	// current holds the last applied values so unrelated edits are ignored.
	refreshRate uint32
	logLevel    string
}

// NewConfigWatcher reloads path whenever it changes and applies the fields
// that can change at runtime: vsync refresh rate and log level. It returns
// nil when path is empty.
func NewConfigWatcher(path string, current config.StructuredConfig, rates RefreshRateSetter, log *logger.Logger) Worker {
	if path == "" {
		return nil
	}
	return &configWatcher{
		path:        filepath.Clean(path),
		rates:       rates,
		logger:      log.Component("config-watcher"),
		refreshRate: current.VSync.RefreshRate,
		logLevel:    current.App.LogLevel,
	}
}

// Run watches the parent directory so editors that replace the file via
// rename are still noticed.
func (w *configWatcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("error creating config watcher: %w", err)
	}
	defer watcher.Close()

	if err = watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("error watching %s: %w", w.path, err)
	}

	w.logger.Info().Str("path", w.path).Msg("config watcher started")
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !changesContent(event) {
				continue
			}
			w.reload()
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Err(werr).Msg("config watcher error")
		}
	}
}

func (w *configWatcher) reload() {
	cfg, err := config.ParseJSONFile(w.path)
	if err != nil {
		// partial writes are common, the next event retries
		w.logger.Debug().Err(err).Msg("config file not readable yet")
		return
	}

	if rate := cfg.VSync.RefreshRate; rate != 0 && rate != w.refreshRate {
		if err = w.rates.SetRefreshRate(rate); err != nil {
			w.logger.Err(err).Uint32("refresh_rate", rate).Msg("refresh rate rejected")
		} else {
			w.logger.Info().Uint32("old", w.refreshRate).Uint32("new", rate).Msg("refresh rate changed")
			w.refreshRate = rate
		}
	}

	if level := cfg.App.LogLevel; level != "" && level != w.logLevel {
		if err = logger.SetLevel(level); err != nil {
			w.logger.Err(err).Msg("log level rejected")
		} else {
			w.logger.Info().Str("level", level).Msg("log level changed")
			w.logLevel = level
		}
	}
}

// changesContent reports whether event may have changed the file's bytes.
// Editors that save by rename show up as Create.
func changesContent(event fsnotify.Event) bool {
	return event.Op&(fsnotify.Write|fsnotify.Create) != 0
}
