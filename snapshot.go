package gesturestore

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/gesturestore/model"
	"github.com/hupe1980/gesturestore/persistence"
)

// Compression selects the snapshot compression codec.
type Compression uint8

const (
	// CompressionZSTD compresses snapshots with zstd (better ratio).
	CompressionZSTD Compression = iota + 1
	// CompressionLZ4 compresses snapshots with LZ4 (faster).
	CompressionLZ4
)

func (c Compression) String() string {
	switch c {
	case CompressionZSTD:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(c))
	}
}

// snapshotMagic identifies a snapshot file. The byte after the magic
// names the codec, so import can pick the matching decompressor.
var snapshotMagic = [4]byte{'G', 'S', 'N', 'P'}

// ExportSnapshot writes a compressed copy of the library's store
// payload to filename, atomically. Snapshots are a backup/transfer
// format; the canonical store file written by Save stays uncompressed.
// Exporting does not touch the dirty flag.
func (l *Library) ExportSnapshot(filename string, c Compression) error {
	l.mu.RLock()
	defer l.mu.RUnlock()

	err := persistence.SaveToFile(filename, func(w io.Writer) error {
		if _, err := w.Write(snapshotMagic[:]); err != nil {
			return err
		}
		if _, err := w.Write([]byte{byte(c)}); err != nil {
			return err
		}

		switch c {
		case CompressionZSTD:
			enc, err := zstd.NewWriter(w)
			if err != nil {
				return err
			}
			if err := persistence.WriteStore(enc, l.namedGestures); err != nil {
				_ = enc.Close()
				return err
			}
			return enc.Close()
		case CompressionLZ4:
			zw := lz4.NewWriter(w)
			if err := persistence.WriteStore(zw, l.namedGestures); err != nil {
				_ = zw.Close()
				return err
			}
			return zw.Close()
		default:
			return fmt.Errorf("unsupported snapshot compression: %d", c)
		}
	})
	l.logger.LogSnapshot("export", filename, err)
	return err
}

// ImportSnapshot replaces the in-memory label mapping and classifier
// state with a snapshot's contents, re-extracting instances under the
// current policy. The library is marked dirty: the imported state has
// not been written to the canonical store file yet.
func (l *Library) ImportSnapshot(filename string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var entries map[string][]*model.Gesture
	err := persistence.LoadFromFile(filename, func(r io.Reader) error {
		var header [5]byte
		if _, err := io.ReadFull(r, header[:]); err != nil {
			return &persistence.DecodeError{Field: "snapshotHeader"}
		}
		if [4]byte(header[:4]) != snapshotMagic {
			return &persistence.DecodeError{Field: "snapshotMagic"}
		}

		var payload io.Reader
		switch Compression(header[4]) {
		case CompressionZSTD:
			dec, err := zstd.NewReader(r)
			if err != nil {
				return err
			}
			defer dec.Close()
			payload = dec
		case CompressionLZ4:
			payload = lz4.NewReader(r)
		default:
			return &persistence.DecodeError{Field: "snapshotCompression"}
		}

		var err error
		entries, err = persistence.ReadStore(payload)
		return err
	})
	if err != nil {
		l.logger.LogSnapshot("import", filename, err)
		return err
	}

	if err := l.replaceLocked(entries); err != nil {
		l.logger.LogSnapshot("import", filename, err)
		return err
	}

	l.changed = true
	l.logger.LogSnapshot("import", filename, nil)
	return nil
}
