// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/pierrec/lz4/v4"
	"github.com/zeebo/blake3"

	"github.com/taskflow-project/taskflow/lib/schema/category"
	"github.com/taskflow-project/taskflow/lib/schema/task"
	"github.com/taskflow-project/taskflow/lib/schema/user"
)

// Snapshot is the cached dashboard state.
type Snapshot struct {
	// SavedAt is when the snapshot was written.
	SavedAt time.Time `cbor:"savedAt"`

	// User is the viewer the data belongs to. A snapshot saved for one
	// account must not warm-start another, so loads are rejected when
	// the user ID differs.
	User user.User `cbor:"user"`

	Tasks      []task.Task         `cbor:"tasks"`
	Categories []category.Category `cbor:"categories"`
}

// Format constants. Changing any of these invalidates existing
// snapshot files, which is safe — they re-read as "no snapshot".
const (
	formatVersion = 1

	// headerSize is magic (4) + version (1) + compression (1) +
	// reserved (2) + uncompressed size (4) + checksum (32).
	headerSize = 44

	// maxPayloadSize bounds the uncompressed payload. A snapshot is a
	// couple of list pages; anything near this limit is corrupt.
	maxPayloadSize = 16 << 20
)

var magic = [4]byte{'T', 'F', 'S', 'N'}

// Compression tags stored in the header.
const (
	compressionNone uint8 = 0
	compressionLZ4  uint8 = 1
)

// checksumKey is the 32-byte key for BLAKE3 keyed hashing. The bytes
// are the ASCII domain name zero-padded to 32, so the key is readable
// in hex dumps without losing any cryptographic property.
var checksumKey = [32]byte{
	't', 'a', 's', 'k', 'f', 'l', 'o', 'w', '.', 's', 'n', 'a', 'p', 's', 'h', 'o',
	't', '.', 'v', '1', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// encMode is the CBOR encoder configured with Core Deterministic
// Encoding: same logical data always produces identical bytes, so a
// rewrite of unchanged state is a byte-identical file.
var encMode cbor.EncMode

// decMode accepts standard CBOR and ignores unknown fields, so older
// clients can read snapshots written by newer ones.
var decMode cbor.DecMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("snapshot: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("snapshot: CBOR decoder initialization failed: " + err.Error())
	}
}

// Save writes the snapshot to path atomically: temp file in the same
// directory, then rename. Parent directories are created as needed.
func Save(path string, snap *Snapshot) error {
	payload, err := encMode.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	if len(payload) > maxPayloadSize {
		return fmt.Errorf("snapshot payload is %d bytes, limit %d", len(payload), maxPayloadSize)
	}

	checksum := keyedChecksum(payload)

	compression := compressionLZ4
	compressed := compressLZ4(payload)
	if compressed == nil {
		// Incompressible. Store the payload as-is.
		compression = compressionNone
		compressed = payload
	}

	buffer := make([]byte, headerSize+len(compressed))
	copy(buffer[0:4], magic[:])
	buffer[4] = formatVersion
	buffer[5] = compression
	binary.LittleEndian.PutUint32(buffer[8:12], uint32(len(payload)))
	copy(buffer[12:44], checksum[:])
	copy(buffer[headerSize:], compressed)

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}

	temp, err := os.CreateTemp(filepath.Dir(path), ".snapshot-*")
	if err != nil {
		return fmt.Errorf("creating snapshot temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(buffer); err != nil {
		temp.Close()
		os.Remove(tempPath)
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := temp.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("closing snapshot temp file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("replacing snapshot: %w", err)
	}
	return nil
}

// Load reads the snapshot at path. It returns (nil, nil) when the
// file does not exist — a cold start, not an error. Any other problem
// (truncation, version mismatch, checksum failure, undecodable CBOR)
// is an error; callers log it and proceed as a cold start.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	if len(data) < headerSize {
		return nil, fmt.Errorf("snapshot file is %d bytes, header needs %d", len(data), headerSize)
	}
	if [4]byte(data[0:4]) != magic {
		return nil, fmt.Errorf("snapshot file has wrong magic")
	}
	if data[4] != formatVersion {
		return nil, fmt.Errorf("snapshot format version %d, want %d", data[4], formatVersion)
	}

	payloadSize := binary.LittleEndian.Uint32(data[8:12])
	if payloadSize > maxPayloadSize {
		return nil, fmt.Errorf("snapshot payload size %d exceeds limit %d", payloadSize, maxPayloadSize)
	}

	var storedChecksum [32]byte
	copy(storedChecksum[:], data[12:44])

	compressed := data[headerSize:]
	var payload []byte
	switch data[5] {
	case compressionNone:
		if len(compressed) != int(payloadSize) {
			return nil, fmt.Errorf("snapshot payload is %d bytes, header says %d", len(compressed), payloadSize)
		}
		payload = compressed
	case compressionLZ4:
		payload = make([]byte, payloadSize)
		read, err := lz4.UncompressBlock(compressed, payload)
		if err != nil {
			return nil, fmt.Errorf("decompressing snapshot: %w", err)
		}
		if read != int(payloadSize) {
			return nil, fmt.Errorf("snapshot decompressed to %d bytes, header says %d", read, payloadSize)
		}
	default:
		return nil, fmt.Errorf("snapshot has unknown compression tag %d", data[5])
	}

	if keyedChecksum(payload) != storedChecksum {
		return nil, fmt.Errorf("snapshot checksum mismatch")
	}

	var snap Snapshot
	if err := decMode.Unmarshal(payload, &snap); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	return &snap, nil
}

// LoadFor loads the snapshot at path and returns it only when it
// belongs to the given user. A snapshot for a different account reads
// as no snapshot, with no error.
func LoadFor(path string, userID string) (*Snapshot, error) {
	snap, err := Load(path)
	if err != nil || snap == nil {
		return nil, err
	}
	if snap.User.ID != userID {
		return nil, nil
	}
	return snap, nil
}

// Age returns how long ago the snapshot was saved.
func (s *Snapshot) Age() time.Duration {
	return time.Since(s.SavedAt)
}

// compressLZ4 block-compresses data, or returns nil when the data is
// incompressible (the caller stores it uncompressed).
func compressLZ4(data []byte) []byte {
	destination := make([]byte, lz4.CompressBlockBound(len(data)))
	written, err := lz4.CompressBlock(data, destination, nil)
	if err != nil || written == 0 || written >= len(data) {
		return nil
	}
	return destination[:written]
}

// keyedChecksum computes the keyed BLAKE3 checksum of the payload.
func keyedChecksum(payload []byte) [32]byte {
	hasher, err := blake3.NewKeyed(checksumKey[:])
	if err != nil {
		panic("snapshot: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(payload)
	var sum [32]byte
	copy(sum[:], hasher.Sum(nil))
	return sum
}
