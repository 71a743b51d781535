// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package transaction

import (
	"testing"
	"time"

	"github.com/MKhiriev/go-compositor/internal/logger"
	"github.com/MKhiriev/go-compositor/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Unix(1_700_000_000, 0)

func newTestSynchronizer() *Synchronizer {
	s := NewSynchronizer(time.Second, 16, logger.Nop())
	s.now = func() time.Time { return epoch }
	return s
}

func txn(version uint64, surfaces ...models.SurfaceID) models.Transaction {
	t := models.Transaction{Version: version}
	for _, id := range surfaces {
		t.Commands = append(t.Commands, models.Command{Type: models.CommandMarkDirty, SurfaceID: id})
	}
	return t
}

func syncTxn(version, syncID uint64, surface models.SurfaceID) models.Transaction {
	t := txn(version, surface)
	t.SyncID = syncID
	return t
}

func surfaces(cmds []models.Command) []models.SurfaceID {
	ids := make([]models.SurfaceID, 0, len(cmds))
	for _, c := range cmds {
		ids = append(ids, c.SurfaceID)
	}
	return ids
}

// ── Submit / DrainForFrame ───────────────────────────────────────────────────

func TestDrainForFrame_PerPidOrder(t *testing.T) {
	s := newTestSynchronizer()

	require.NoError(t, s.Submit(2, txn(1, 20)))
	require.NoError(t, s.Submit(1, txn(1, 10, 11)))
	require.NoError(t, s.Submit(1, txn(2, 12)))
	require.NoError(t, s.Submit(2, txn(5, 21)))

	cmds := s.DrainForFrame(epoch)
	assert.Equal(t, []models.SurfaceID{10, 11, 12, 20, 21}, surfaces(cmds))

	assert.Equal(t, int32(1), cmds[0].Pid)
	assert.Equal(t, uint64(2), cmds[2].Version)
	assert.Equal(t, uint64(5), cmds[4].Version)

	assert.Empty(t, s.DrainForFrame(epoch))
	assert.Empty(t, s.Pending())
}

func TestSubmit_DuplicateVersionDropped(t *testing.T) {
	s := newTestSynchronizer()

	require.NoError(t, s.Submit(1, txn(3, 1)))
	err := s.Submit(1, txn(3, 2))
	assert.ErrorIs(t, err, ErrStaleTransaction)
	assert.ErrorIs(t, err, models.ErrStaleState)
	assert.ErrorIs(t, s.Submit(1, txn(2, 3)), ErrStaleTransaction)

	assert.Equal(t, []models.SurfaceID{1}, surfaces(s.DrainForFrame(epoch)))

	assert.ErrorIs(t, s.Submit(1, txn(3, 4)), ErrStaleTransaction, "version history survives draining")
}

func TestSubmit_CopiesCommands(t *testing.T) {
	s := newTestSynchronizer()

	original := models.Transaction{Version: 1, Commands: []models.Command{{
		Type:       models.CommandMarkDirty,
		SurfaceID:  1,
		DirtyRects: []models.Rect{{W: 1, H: 1}},
	}}}
	require.NoError(t, s.Submit(1, original))

	original.Commands[0].SurfaceID = 99
	original.Commands[0].DirtyRects[0].W = 50

	cmds := s.DrainForFrame(epoch)
	require.Len(t, cmds, 1)
	assert.Equal(t, models.SurfaceID(1), cmds[0].SurfaceID)
	assert.Equal(t, int32(1), cmds[0].DirtyRects[0].W)
}

func TestSubmit_PidMismatch(t *testing.T) {
	s := newTestSynchronizer()
	tx := txn(1, 1)
	tx.Pid = 5

	assert.ErrorIs(t, s.Submit(6, tx), ErrPidMismatch)
}

func TestSubmit_QueueLimit(t *testing.T) {
	s := NewSynchronizer(time.Second, 2, logger.Nop())

	require.NoError(t, s.Submit(1, txn(1, 1)))
	require.NoError(t, s.Submit(1, txn(2, 1)))
	assert.ErrorIs(t, s.Submit(1, txn(3, 1)), ErrQueueFull)
	require.NoError(t, s.Submit(2, txn(1, 1)))
}

// ── Barriers ─────────────────────────────────────────────────────────────────

func TestBarrier_AtomicRelease(t *testing.T) {
	s := newTestSynchronizer()
	require.NoError(t, s.OpenSyncTransaction(7, []int32{1, 2}))
	require.NoError(t, s.CloseSyncTransaction(7))

	require.NoError(t, s.Submit(1, syncTxn(1, 7, 10)))
	require.NoError(t, s.Submit(1, txn(2, 11)))
	require.NoError(t, s.Submit(3, txn(1, 30)))

	assert.Equal(t, []models.SurfaceID{30}, surfaces(s.DrainForFrame(epoch)),
		"held transactions and everything queued behind them wait")
	assert.Equal(t, map[int32]int{1: 2}, s.Pending())

	require.NoError(t, s.Submit(2, syncTxn(1, 7, 20)))
	assert.Equal(t, 0, s.OpenBarriers())

	assert.Equal(t, []models.SurfaceID{10, 11, 20}, surfaces(s.DrainForFrame(epoch)))
}

func TestBarrier_CloseAfterAllArrived(t *testing.T) {
	s := newTestSynchronizer()
	require.NoError(t, s.OpenSyncTransaction(1, []int32{1, 2}))

	require.NoError(t, s.Submit(1, syncTxn(1, 1, 10)))
	require.NoError(t, s.Submit(2, syncTxn(1, 1, 20)))

	assert.Empty(t, s.DrainForFrame(epoch), "barrier is not closed yet")

	require.NoError(t, s.CloseSyncTransaction(1))
	assert.Equal(t, []models.SurfaceID{10, 20}, surfaces(s.DrainForFrame(epoch)))
}

func TestBarrier_TimeoutAppliesPartial(t *testing.T) {
	s := newTestSynchronizer()
	require.NoError(t, s.OpenSyncTransaction(9, []int32{1, 2}))
	require.NoError(t, s.CloseSyncTransaction(9))
	require.NoError(t, s.Submit(1, syncTxn(1, 9, 10)))

	assert.Empty(t, s.DrainForFrame(epoch.Add(999*time.Millisecond)))

	assert.Equal(t, []models.SurfaceID{10}, surfaces(s.DrainForFrame(epoch.Add(time.Second))))
	assert.Equal(t, 0, s.OpenBarriers())

	require.NoError(t, s.Submit(2, syncTxn(1, 9, 20)))
	assert.Equal(t, []models.SurfaceID{20}, surfaces(s.DrainForFrame(epoch.Add(time.Second))),
		"late participant is applied as a plain transaction")
}

func TestBarrier_NonParticipantNotHeld(t *testing.T) {
	s := newTestSynchronizer()
	require.NoError(t, s.OpenSyncTransaction(4, []int32{1}))
	require.NoError(t, s.Submit(5, syncTxn(1, 4, 50)))

	assert.Equal(t, []models.SurfaceID{50}, surfaces(s.DrainForFrame(epoch)))
}

func TestBarrier_Errors(t *testing.T) {
	s := newTestSynchronizer()

	assert.ErrorIs(t, s.OpenSyncTransaction(0, []int32{1}), ErrInvalidSyncID)
	assert.ErrorIs(t, s.OpenSyncTransaction(1, nil), ErrNoParticipants)
	require.NoError(t, s.OpenSyncTransaction(1, []int32{1}))
	assert.ErrorIs(t, s.OpenSyncTransaction(1, []int32{2}), ErrBarrierExists)
	assert.ErrorIs(t, s.CloseSyncTransaction(2), ErrBarrierNotFound)
}

// ── OnPeerLost ───────────────────────────────────────────────────────────────

func TestOnPeerLost_DiscardsAndCompletesBarrier(t *testing.T) {
	s := newTestSynchronizer()
	require.NoError(t, s.OpenSyncTransaction(3, []int32{1, 2}))
	require.NoError(t, s.CloseSyncTransaction(3))

	require.NoError(t, s.Submit(1, syncTxn(1, 3, 10)))
	require.NoError(t, s.Submit(2, txn(4, 20)))

	assert.Equal(t, []models.SurfaceID{20}, surfaces(s.DrainForFrame(epoch)))
	require.NoError(t, s.Submit(2, txn(5, 21)))

	assert.Equal(t, 1, s.OnPeerLost(2))
	assert.Equal(t, 0, s.OpenBarriers())

	assert.Equal(t, []models.SurfaceID{10}, surfaces(s.DrainForFrame(epoch)))

	require.NoError(t, s.Submit(2, txn(1, 22)), "a restarted process starts a new version history")
}

// ── Validate ─────────────────────────────────────────────────────────────────

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		txn     models.Transaction
		wantErr error
	}{
		{name: "ok", txn: txn(1, 1)},
		{name: "empty", txn: models.Transaction{Version: 1}, wantErr: ErrEmptyTransaction},
		{
			name:    "unknown type",
			txn:     models.Transaction{Commands: []models.Command{{Type: "paint"}}},
			wantErr: ErrUnknownCommand,
		},
		{
			name: "negative geometry",
			txn: models.Transaction{Commands: []models.Command{{
				Type: models.CommandCreateSurface, Rect: models.Rect{W: -1, H: 10},
			}}},
			wantErr: ErrInvalidDimensions,
		},
		{
			name: "invalid dirty rect is left to the engine",
			txn: models.Transaction{Commands: []models.Command{{
				Type: models.CommandMarkDirty, DirtyRects: []models.Rect{{W: -5}},
			}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.txn)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, models.ErrInvalidArgument)
		})
	}
}
