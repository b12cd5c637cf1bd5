package storage

import (
	"testing"
	"time"

	"github.com/poiesic/docsift/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkRecordRoundTrip(t *testing.T) {
	record := &core.ChunkRecord{
		Id:         core.IDFromContent("chunk body"),
		Collection: "policy_collection",
		Content:    "chunk body",
		Metadata: map[string]string{
			"source": "policy.pdf",
			"region": "NY",
		},
		Vector:     []float32{0.1, 0.2, 0.3},
		InsertedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	data := MarshalChunkRecord(record)
	got, err := UnmarshalChunkRecord(data)
	require.NoError(t, err)

	assert.Equal(t, record.Id, got.Id)
	assert.Equal(t, record.Collection, got.Collection)
	assert.Equal(t, record.Content, got.Content)
	assert.Equal(t, record.Metadata, got.Metadata)
	assert.Equal(t, record.Vector, got.Vector)
	// The codec may decode into a different location; compare instants.
	assert.True(t, record.InsertedAt.Equal(got.InsertedAt))
}

func TestIngestTaskRoundTrip(t *testing.T) {
	task := &core.IngestTask{
		TaskId:   "b4c5e9a1",
		FilePath: "/var/staging/b4c5e9a1.pdf",
		Filename: "policy.pdf",
		Attempts: 2,
	}

	data := MarshalIngestTask(task)
	got, err := UnmarshalIngestTask(data)
	require.NoError(t, err)
	assert.Equal(t, task, got)
}

func TestLedgerEntryRoundTrip(t *testing.T) {
	entry := &core.LedgerEntry{
		Fingerprint: "ab12cd34",
		Filename:    "policy.pdf",
		Collection:  "policy_collection",
		RecordedAt:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	data := MarshalLedgerEntry(entry)
	got, err := UnmarshalLedgerEntry(data)
	require.NoError(t, err)

	assert.Equal(t, entry.Fingerprint, got.Fingerprint)
	assert.Equal(t, entry.Filename, got.Filename)
	assert.Equal(t, entry.Collection, got.Collection)
	assert.True(t, entry.RecordedAt.Equal(got.RecordedAt))
}

func TestUnmarshalTruncatedData(t *testing.T) {
	record := &core.ChunkRecord{
		Id:         1,
		Collection: "c_collection",
		Content:    "text",
		Metadata:   map[string]string{},
		InsertedAt: time.Now().UTC(),
	}
	data := MarshalChunkRecord(record)

	_, err := UnmarshalChunkRecord(data[:len(data)/2])
	assert.Error(t, err)
}
