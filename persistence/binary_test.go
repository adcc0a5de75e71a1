package persistence

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterReader(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		var buf bytes.Buffer
		w := NewWriter(&buf)
		require.NoError(t, w.WriteInt16(-7))
		require.NoError(t, w.WriteInt32(123456))
		require.NoError(t, w.WriteInt64(-987654321012345))
		require.NoError(t, w.WriteFloat32(float32(math.Pi)))
		require.NoError(t, w.WriteString("héllo"))
		require.NoError(t, w.Flush())

		r := NewReader(&buf)
		i16, err := r.ReadInt16("a")
		require.NoError(t, err)
		assert.Equal(t, int16(-7), i16)
		i32, err := r.ReadInt32("b")
		require.NoError(t, err)
		assert.Equal(t, int32(123456), i32)
		i64, err := r.ReadInt64("c")
		require.NoError(t, err)
		assert.Equal(t, int64(-987654321012345), i64)
		f, err := r.ReadFloat32("d")
		require.NoError(t, err)
		assert.Equal(t, float32(math.Pi), f)
		s, err := r.ReadString("e")
		require.NoError(t, err)
		assert.Equal(t, "héllo", s)
	})

	t.Run("BigEndianOnTheWire", func(t *testing.T) {
		var buf bytes.Buffer
		w := NewWriter(&buf)
		require.NoError(t, w.WriteInt32(1))
		require.NoError(t, w.Flush())
		assert.Equal(t, []byte{0, 0, 0, 1}, buf.Bytes())
	})

	t.Run("FloatBitsSurviveExactly", func(t *testing.T) {
		// A value that is not representable exactly in decimal.
		v := math.Float32frombits(0x3dcccccd) // 0.1
		var buf bytes.Buffer
		w := NewWriter(&buf)
		require.NoError(t, w.WriteFloat32(v))
		require.NoError(t, w.Flush())

		got, err := NewReader(&buf).ReadFloat32("x")
		require.NoError(t, err)
		assert.Equal(t, math.Float32bits(v), math.Float32bits(got))
	})

	t.Run("ShortReadNamesField", func(t *testing.T) {
		r := NewReader(bytes.NewReader([]byte{0, 0}))
		_, err := r.ReadInt64("timestamp")
		var de *DecodeError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "timestamp", de.Field)
	})
}

func TestSaveToFile(t *testing.T) {
	t.Run("CreatesParentDirectories", func(t *testing.T) {
		filename := filepath.Join(t.TempDir(), "nested", "dir", "store.bin")
		err := SaveToFile(filename, func(w io.Writer) error {
			_, err := w.Write([]byte("payload"))
			return err
		})
		require.NoError(t, err)

		data, err := os.ReadFile(filename)
		require.NoError(t, err)
		assert.Equal(t, []byte("payload"), data)
	})

	t.Run("FailedWriteLeavesPriorFile", func(t *testing.T) {
		filename := filepath.Join(t.TempDir(), "store.bin")
		require.NoError(t, os.WriteFile(filename, []byte("old"), 0o644))

		err := SaveToFile(filename, func(w io.Writer) error {
			return assert.AnError
		})
		require.Error(t, err)

		data, err := os.ReadFile(filename)
		require.NoError(t, err)
		assert.Equal(t, []byte("old"), data)
	})
}

// Ensure the endianness constant is never changed by accident: legacy
// stores are big-endian network order.
func TestByteOrderIsNetworkOrder(t *testing.T) {
	assert.Equal(t, binary.BigEndian, byteOrder)
}
