package badger

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/poiesic/docsift/core"
)

// Key prefixes for different data types
const (
	ledgerPrefix      = "ledg"
	chunkPrefix       = "chnk"
	queuePendPrefix   = "qpen"
	queueFlightPrefix = "qinf"
	queueDeadPrefix   = "qdlq"
	queueSeq          = "qseq"
)

// makeLedgerKey generates a key for a ledger entry by fingerprint.
func makeLedgerKey(fingerprint core.Fingerprint) []byte {
	return []byte(fmt.Sprintf("%s:%s", ledgerPrefix, fingerprint))
}

// makeChunkKey generates a key for a chunk record.
// Format: prefix:collection:id. Collection names are normalized to
// word characters, so the colon separator is unambiguous.
func makeChunkKey(collection string, id core.ID) []byte {
	prefix := fmt.Sprintf("%s:%s:", chunkPrefix, collection)
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makeChunkCollectionPrefix generates the scan prefix for one collection.
func makeChunkCollectionPrefix(collection string) []byte {
	return []byte(fmt.Sprintf("%s:%s:", chunkPrefix, collection))
}

// chunkKeyCollection extracts the collection name from a chunk key.
func chunkKeyCollection(key []byte) string {
	s := string(key)
	s = strings.TrimPrefix(s, chunkPrefix+":")
	if idx := strings.IndexByte(s, ':'); idx >= 0 {
		return s[:idx]
	}
	return ""
}

// makeQueueKey generates an ordered key within one queue segment.
// Format: prefix:seq, BigEndian so iteration order is FIFO.
func makeQueueKey(prefix string, seq uint64) []byte {
	p := prefix + ":"
	buf := make([]byte, len(p)+8)
	offset := copy(buf, p)
	binary.BigEndian.PutUint64(buf[offset:], seq)
	return buf
}

// queueKeySeq extracts the sequence number from a queue key.
func queueKeySeq(key []byte) uint64 {
	if len(key) < 8 {
		return 0
	}
	return binary.BigEndian.Uint64(key[len(key)-8:])
}
