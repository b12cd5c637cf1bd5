// Code generated by musgen-go. DO NOT EDIT.

package core

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

var (
	mapYusLU0fLLΔ15R5buptY3YQΞΞ   = ord.NewMapSer[string, string](ord.String, ord.String)
	sliceOITjk6ftx47PZjlVjdhw0wΞΞ = ord.NewSliceSer[float32](varint.Float32)
)

var IDMUS = iDMUS{}

type iDMUS struct{}

func (s iDMUS) Marshal(v ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (s iDMUS) Unmarshal(bs []byte) (v ID, n int, err error) {
	tmp, n, err := varint.Uint64.Unmarshal(bs)
	if err != nil {
		return
	}
	v = ID(tmp)
	return
}

func (s iDMUS) Size(v ID) (size int) {
	return varint.Uint64.Size(uint64(v))
}

func (s iDMUS) Skip(bs []byte) (n int, err error) {
	return varint.Uint64.Skip(bs)
}

var ChunkRecordMUS = chunkRecordMUS{}

type chunkRecordMUS struct{}

func (s chunkRecordMUS) Marshal(v ChunkRecord, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Collection, bs[n:])
	n += ord.String.Marshal(v.Content, bs[n:])
	n += mapYusLU0fLLΔ15R5buptY3YQΞΞ.Marshal(v.Metadata, bs[n:])
	n += sliceOITjk6ftx47PZjlVjdhw0wΞΞ.Marshal(v.Vector, bs[n:])
	return n + raw.TimeUnixMicro.Marshal(v.InsertedAt, bs[n:])
}

func (s chunkRecordMUS) Unmarshal(bs []byte) (v ChunkRecord, n int, err error) {
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Collection, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Content, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Metadata, n1, err = mapYusLU0fLLΔ15R5buptY3YQΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Vector, n1, err = sliceOITjk6ftx47PZjlVjdhw0wΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.InsertedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	return
}

func (s chunkRecordMUS) Size(v ChunkRecord) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.Collection)
	size += ord.String.Size(v.Content)
	size += mapYusLU0fLLΔ15R5buptY3YQΞΞ.Size(v.Metadata)
	size += sliceOITjk6ftx47PZjlVjdhw0wΞΞ.Size(v.Vector)
	return size + raw.TimeUnixMicro.Size(v.InsertedAt)
}

func (s chunkRecordMUS) Skip(bs []byte) (n int, err error) {
	n, err = IDMUS.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = mapYusLU0fLLΔ15R5buptY3YQΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = sliceOITjk6ftx47PZjlVjdhw0wΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	return
}

var IngestTaskMUS = ingestTaskMUS{}

type ingestTaskMUS struct{}

func (s ingestTaskMUS) Marshal(v IngestTask, bs []byte) (n int) {
	n = ord.String.Marshal(v.TaskId, bs)
	n += ord.String.Marshal(v.FilePath, bs[n:])
	n += ord.String.Marshal(v.Filename, bs[n:])
	return n + varint.Int.Marshal(v.Attempts, bs[n:])
}

func (s ingestTaskMUS) Unmarshal(bs []byte) (v IngestTask, n int, err error) {
	v.TaskId, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.FilePath, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Filename, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Attempts, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	return
}

func (s ingestTaskMUS) Size(v IngestTask) (size int) {
	size = ord.String.Size(v.TaskId)
	size += ord.String.Size(v.FilePath)
	size += ord.String.Size(v.Filename)
	return size + varint.Int.Size(v.Attempts)
}

func (s ingestTaskMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	return
}

var LedgerEntryMUS = ledgerEntryMUS{}

type ledgerEntryMUS struct{}

func (s ledgerEntryMUS) Marshal(v LedgerEntry, bs []byte) (n int) {
	n = ord.String.Marshal(v.Fingerprint, bs)
	n += ord.String.Marshal(v.Filename, bs[n:])
	n += ord.String.Marshal(v.Collection, bs[n:])
	return n + raw.TimeUnixMicro.Marshal(v.RecordedAt, bs[n:])
}

func (s ledgerEntryMUS) Unmarshal(bs []byte) (v LedgerEntry, n int, err error) {
	v.Fingerprint, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Filename, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Collection, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.RecordedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	return
}

func (s ledgerEntryMUS) Size(v LedgerEntry) (size int) {
	size = ord.String.Size(v.Fingerprint)
	size += ord.String.Size(v.Filename)
	size += ord.String.Size(v.Collection)
	return size + raw.TimeUnixMicro.Size(v.RecordedAt)
}

func (s ledgerEntryMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	return
}
