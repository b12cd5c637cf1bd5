package ingest

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/go-crypt/x/blake2b"
	"github.com/poiesic/docsift/core"
)

// fingerprintBlockSize is the read block for streaming fingerprinting.
const fingerprintBlockSize = 64 * 1024

// FingerprintFile computes the 256-bit content digest of a file, streaming
// it in fixed-size blocks so large uploads never load fully into memory.
func FingerprintFile(path string) (core.Fingerprint, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening file for fingerprinting: %w", err)
	}
	defer f.Close()

	return fingerprintReader(f)
}

func fingerprintReader(r io.Reader) (core.Fingerprint, error) {
	h, err := blake2b.New(32, nil)
	if err != nil {
		return "", fmt.Errorf("initializing digest: %w", err)
	}

	buf := make([]byte, fingerprintBlockSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			h.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("reading content: %w", err)
		}
	}

	return core.Fingerprint(hex.EncodeToString(h.Sum(nil))), nil
}
