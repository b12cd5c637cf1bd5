package badger

import (
	"context"
	"testing"
	"time"

	"github.com/poiesic/docsift/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerRoundTrip(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	defer backend.Close()

	ledger := NewLedger(backend)
	ctx := context.Background()

	fp := core.Fingerprint("aa11bb22cc33")

	processed, err := ledger.IsProcessed(ctx, fp)
	require.NoError(t, err)
	assert.False(t, processed, "unknown fingerprint is unprocessed")

	err = ledger.Record(ctx, &core.LedgerEntry{
		Fingerprint: string(fp),
		Filename:    "report.pdf",
		Collection:  "policy_collection",
	})
	require.NoError(t, err)

	processed, err = ledger.IsProcessed(ctx, fp)
	require.NoError(t, err)
	assert.True(t, processed)
}

func TestLedgerRecordIsInsertIfAbsent(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	defer backend.Close()

	ledger := NewLedger(backend)
	ctx := context.Background()

	first := &core.LedgerEntry{
		Fingerprint: "samefp",
		Filename:    "original.pdf",
		Collection:  "a_collection",
		RecordedAt:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, ledger.Record(ctx, first))

	// Second record with the same fingerprint does not error and does not
	// disturb the processed state.
	second := &core.LedgerEntry{
		Fingerprint: "samefp",
		Filename:    "redelivered.pdf",
		Collection:  "b_collection",
	}
	require.NoError(t, ledger.Record(ctx, second))

	processed, err := ledger.IsProcessed(ctx, "samefp")
	require.NoError(t, err)
	assert.True(t, processed)
}

func TestLedgerValidatesEntries(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	defer backend.Close()

	ledger := NewLedger(backend)
	err = ledger.Record(context.Background(), &core.LedgerEntry{Filename: "x.pdf"})
	assert.ErrorIs(t, err, core.ErrEmptyFingerprint)
}
