package blob

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"io"
)

// inflate reverses deflate: col is a column value as stored on disk,
// beginning with a 4-byte big-endian uncompressed length followed by
// a zlib stream. An empty column is legal and yields a nil payload.
func inflate(col []byte) ([]byte, error) {
	if len(col) == 0 {
		return nil, nil
	}
	if len(col) < 4 {
		logger.Printf("[ERROR] Blob column of %d bytes is too short for a length prefix\n", len(col))
		return nil, fmt.Errorf("%w: column too short for length prefix", ErrCorruptBlob)
	}

	wantLen := binary.BigEndian.Uint32(col[:4])

	zr, err := zlib.NewReader(bytes.NewReader(col[4:]))
	if err != nil {
		logger.Printf("[ERROR] Cannot open zlib reader on blob column: %s\n", err.Error())
		return nil, fmt.Errorf("%w: zlib: %v", ErrCorruptBlob, err)
	}
	defer zr.Close()

	payload, err := io.ReadAll(zr)
	if err != nil {
		logger.Printf("[ERROR] Cannot inflate blob column: %s\n", err.Error())
		return nil, fmt.Errorf("%w: zlib: %v", ErrCorruptBlob, err)
	}

	if uint32(len(payload)) != wantLen {
		logger.Printf("[ERROR] Blob column uncompressed length mismatch: header says %d, got %d\n",
			wantLen, len(payload))
		return nil, fmt.Errorf("%w: uncompressed length mismatch: header says %d, got %d",
			ErrCorruptBlob, wantLen, len(payload))
	}

	return payload, nil
} // func inflate(col []byte) ([]byte, error)

// deflate is the inverse of inflate: it produces the on-disk column
// value for payload — a 4-byte big-endian uncompressed length
// followed by a zlib stream of payload. The compressed bytes are not
// guaranteed to be stable across Go versions or compression levels;
// only the uncompressed form is a compatibility guarantee.
func deflate(payload []byte) ([]byte, error) {
	var buf bytes.Buffer

	var lenPrefix [4]byte
	binary.BigEndian.PutUint32(lenPrefix[:], uint32(len(payload)))
	buf.Write(lenPrefix[:])

	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(payload); err != nil {
		return nil, fmt.Errorf("zlib: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("zlib: %w", err)
	}

	return buf.Bytes(), nil
} // func deflate(payload []byte) ([]byte, error)
