// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	tab        key.Binding
	backtab    key.Binding
	enter      key.Binding
	esc        key.Binding
	quit       key.Binding
	refresh    key.Binding
	newScreen  key.Binding
	remove     key.Binding
	checkpoint key.Binding
	copy       key.Binding
	buildInfo  key.Binding
	yes        key.Binding
	no         key.Binding
}

var keys = keyMap{
	tab:        key.NewBinding(key.WithKeys("tab")),
	backtab:    key.NewBinding(key.WithKeys("shift+tab")),
	enter:      key.NewBinding(key.WithKeys("enter")),
	esc:        key.NewBinding(key.WithKeys("esc")),
	quit:       key.NewBinding(key.WithKeys("q", "ctrl+c")),
	refresh:    key.NewBinding(key.WithKeys("r")),
	newScreen:  key.NewBinding(key.WithKeys("n")),
	remove:     key.NewBinding(key.WithKeys("d")),
	checkpoint: key.NewBinding(key.WithKeys("c")),
	copy:       key.NewBinding(key.WithKeys("y")),
	buildInfo:  key.NewBinding(key.WithKeys("v")),
	yes:        key.NewBinding(key.WithKeys("y")),
	no:         key.NewBinding(key.WithKeys("n", "esc")),
}
