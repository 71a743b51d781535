// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/MKhiriev/go-compositor/models"
)

func renderBuildInfoWindow(client, server models.AppBuildInfo) string {
	var b strings.Builder

	b.WriteString("Monitor\n")
	writeBuildInfo(&b, client)
	b.WriteString("\nCompositor\n")
	writeBuildInfo(&b, server)

	return renderPage("BUILD INFO", overlayBoxStyle.Render(b.String()), "esc: back")
}

func writeBuildInfo(b *strings.Builder, info models.AppBuildInfo) {
	b.WriteString("  Version: ")
	b.WriteString(valueOrNA(info.Version))
	b.WriteString("\n  Date: ")
	b.WriteString(valueOrNA(info.Date))
	b.WriteString("\n  Commit: ")
	b.WriteString(valueOrNA(info.Commit))
	b.WriteString("\n")
}

func valueOrNA(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "N/A"
	}
	return v
}
