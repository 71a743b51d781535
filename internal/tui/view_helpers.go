// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-compositor/models"
	"github.com/charmbracelet/bubbles/table"
)

const uiDivider = "──────────────────────────────────────────────────────"

func renderPage(title, data, hotKeys string) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(uiDivider)
	b.WriteString("\n\n")

	if strings.TrimSpace(data) != "" {
		b.WriteString(data)
		b.WriteString("\n")
	} else {
		b.WriteString("-\n")
	}

	b.WriteString("\n")
	b.WriteString(uiDivider)
	b.WriteString("\n")

	if strings.TrimSpace(hotKeys) != "" {
		b.WriteString(helpStyle.Render(hotKeys))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("q: quit"))

	return appStyle.Render(b.String())
}

var screenColumns = []table.Column{
	{Title: "ID", Width: 12},
	{Title: "Name", Width: 14},
	{Title: "Size", Width: 11},
	{Title: "Kind", Width: 8},
	{Title: "State", Width: 12},
	{Title: "Layers", Width: 8},
}

func screenRows(screens []models.ScreenInfo) []table.Row {
	rows := make([]table.Row, 0, len(screens))
	for _, s := range screens {
		kind := "physical"
		if s.Virtual {
			kind = "virtual"
		}
		rows = append(rows, table.Row{
			fmt.Sprint(uint64(s.ScreenID)),
			fitText(s.Name, 14),
			fmt.Sprintf("%dx%d", s.Width, s.Height),
			kind,
			s.State.String(),
			fmt.Sprintf("%d/%d", s.Layers, s.LayerCapacity),
		})
	}
	return rows
}

// percent returns part/total as a percentage, zero when total is zero.
func percent(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) * 100 / float64(total)
}

func renderSynthesis(info models.LayerSynthesisModeInfo) string {
	return fmt.Sprintf("frames %d  uniform %d (%.1f%%)  offline %d (%.1f%%)  redraw %d (%.1f%%)",
		info.TotalFrames,
		info.UniformFrames, percent(info.UniformFrames, info.TotalFrames),
		info.OfflineFrames, percent(info.OfflineFrames, info.TotalFrames),
		info.RedrawFrames, percent(info.RedrawFrames, info.TotalFrames),
	)
}

func renderDirtyRegions(regions []models.GpuDirtyRegionInfo) string {
	if len(regions) == 0 {
		return "no dirty regions recorded"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-10s %-14s %14s %14s %8s\n", "surface", "window", "active avg", "global avg", "skipped")
	for _, r := range regions {
		fmt.Fprintf(&b, "%-10d %-14s %14d %14d %8d\n",
			uint64(r.SurfaceID), fitText(r.WindowName, 14),
			r.ActiveDirtyRegionAreaAverage, r.GlobalDirtyRegionAreaAverage, r.SkipProcessFramesNumber)
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderVSync(status models.VSyncStatus, last models.VSyncEvent, received uint64) string {
	var b strings.Builder

	fmt.Fprintf(&b, "refresh rate %d Hz, period %s, ticks %d\n",
		status.RefreshRate, time.Duration(status.Period), status.Ticks)
	if received > 0 {
		fmt.Fprintf(&b, "monitor connection: %d events, last frame %d\n", received, last.FrameCount)
	}
	b.WriteString("\n")

	if len(status.Connections) == 0 {
		b.WriteString("no connections")
		return b.String()
	}

	fmt.Fprintf(&b, "%-6s %-8s %-14s %5s %5s %6s %10s %8s\n", "id", "pid", "name", "rate", "auto", "armed", "delivered", "dropped")
	for _, c := range status.Connections {
		fmt.Fprintf(&b, "%-6d %-8d %-14s %5d %5t %6t %10d %8d\n",
			uint64(c.ID), c.Pid, fitText(c.Name, 14), c.Rate, c.AutoTrigger, c.Armed, c.Delivered, c.Dropped)
	}
	return strings.TrimRight(b.String(), "\n")
}

func fitText(v string, max int) string {
	if max <= 0 || len(v) <= max {
		return v
	}
	if max <= 3 {
		return v[:max]
	}
	return v[:max-3] + "..."
}
