// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package transaction

import (
	"fmt"

	"github.com/MKhiriev/go-compositor/models"
)

// Validate rejects transactions that could never be applied: no commands,
// unknown command types or negative geometry.
func Validate(txn models.Transaction) error {
	if len(txn.Commands) == 0 {
		return ErrEmptyTransaction
	}

	for i, cmd := range txn.Commands {
		if !cmd.Type.IsKnown() {
			return fmt.Errorf("command %d (%q): %w", i, cmd.Type, ErrUnknownCommand)
		}

		switch cmd.Type {
		case models.CommandCreateSurface, models.CommandUpdateGeometry:
			if !cmd.Rect.IsValid() {
				return fmt.Errorf("command %d: %w", i, ErrInvalidDimensions)
			}
		}
	}

	return nil
}
