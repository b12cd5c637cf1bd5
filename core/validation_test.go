package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUnit(t *testing.T) {
	tests := []struct {
		name    string
		unit    *Unit
		wantErr error
	}{
		{
			name:    "valid prose unit",
			unit:    &Unit{Content: "some text", Metadata: Metadata{MetaSource: "a.txt"}},
			wantErr: nil,
		},
		{
			name:    "nil unit",
			unit:    nil,
			wantErr: ErrInvalidUnit,
		},
		{
			name:    "empty content",
			unit:    &Unit{Content: ""},
			wantErr: ErrEmptyContent,
		},
		{
			name:    "invalid utf8",
			unit:    &Unit{Content: string([]byte{0xff, 0xfe})},
			wantErr: ErrInvalidUTF8,
		},
		{
			name:    "non-scalar metadata value",
			unit:    &Unit{Content: "x", Metadata: Metadata{"rows": []string{"a"}}},
			wantErr: ErrInvalidMetadataValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUnit(tt.unit)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateTask(t *testing.T) {
	valid := &IngestTask{TaskId: "t1", FilePath: "/tmp/x.pdf", Filename: "x.pdf"}
	assert.NoError(t, ValidateTask(valid))

	assert.ErrorIs(t, ValidateTask(nil), ErrInvalidTask)
	assert.ErrorIs(t, ValidateTask(&IngestTask{FilePath: "/tmp/x"}), ErrEmptyTaskId)
	assert.ErrorIs(t, ValidateTask(&IngestTask{TaskId: "t1"}), ErrEmptyFilePath)
}

func TestValidateLedgerEntry(t *testing.T) {
	valid := &LedgerEntry{Fingerprint: strings.Repeat("ab", 32), Filename: "x.pdf"}
	assert.NoError(t, ValidateLedgerEntry(valid))

	assert.ErrorIs(t, ValidateLedgerEntry(nil), ErrInvalidLedgerEntry)
	assert.ErrorIs(t, ValidateLedgerEntry(&LedgerEntry{}), ErrEmptyFingerprint)
}
