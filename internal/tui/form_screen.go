// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strconv"
	"strings"

	"github.com/MKhiriev/go-compositor/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	fieldName = iota
	fieldWidth
	fieldHeight
	fieldProducer
	fieldCount
)

// screenForm collects the parameters of a new virtual screen.
type screenForm struct {
	inputs [fieldCount]textinput.Model
	focus  int
	err    error
}

func newScreenForm() *screenForm {
	f := &screenForm{}

	placeholders := [fieldCount]string{"name", "width", "height", "producer handle (optional)"}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 32
		f.inputs[i] = ti
	}
	f.inputs[fieldName].SetValue("virtual")
	f.inputs[fieldWidth].SetValue("640")
	f.inputs[fieldHeight].SetValue("480")
	f.inputs[fieldName].Focus()

	return f
}

func (f *screenForm) next(step int) tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + step + fieldCount) % fieldCount
	return f.inputs[f.focus].Focus()
}

// update handles navigation between fields and returns submitted=true when
// enter is pressed on the last field.
func (f *screenForm) update(msg tea.Msg) (cmd tea.Cmd, submitted bool) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, keys.tab):
			return f.next(1), false
		case key.Matches(k, keys.backtab):
			return f.next(-1), false
		case key.Matches(k, keys.enter):
			if f.focus == fieldCount-1 {
				return nil, true
			}
			return f.next(1), false
		}
	}

	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd, false
}

// request validates the form. Virtual screen ids are picked by the server.
func (f *screenForm) request() (models.VirtualScreenRequest, error) {
	name := strings.TrimSpace(f.inputs[fieldName].Value())
	if name == "" {
		return models.VirtualScreenRequest{}, ErrInvalidName
	}

	width, err := strconv.ParseInt(strings.TrimSpace(f.inputs[fieldWidth].Value()), 10, 32)
	if err != nil || width <= 0 {
		return models.VirtualScreenRequest{}, ErrInvalidSize
	}
	height, err := strconv.ParseInt(strings.TrimSpace(f.inputs[fieldHeight].Value()), 10, 32)
	if err != nil || height <= 0 {
		return models.VirtualScreenRequest{}, ErrInvalidSize
	}

	var producer uint64
	if raw := strings.TrimSpace(f.inputs[fieldProducer].Value()); raw != "" {
		producer, err = strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return models.VirtualScreenRequest{}, err
		}
	}

	return models.VirtualScreenRequest{
		Name:     name,
		Width:    int32(width),
		Height:   int32(height),
		Producer: models.BufferHandle(producer),
	}, nil
}

func (f *screenForm) view() string {
	var b strings.Builder
	labels := [fieldCount]string{"Name", "Width", "Height", "Producer"}
	for i, in := range f.inputs {
		b.WriteString(labels[i])
		b.WriteString(": ")
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	if f.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(f.err.Error()))
	}
	return renderPage("NEW VIRTUAL SCREEN", strings.TrimRight(b.String(), "\n"), "tab: next field • enter: next/create • esc: cancel")
}
