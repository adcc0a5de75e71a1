package gesturestore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/gesturestore/model"
	"github.com/hupe1980/gesturestore/testutil"
)

func trainedLibrary(t *testing.T) *Library {
	t.Helper()
	lib := New(storePath(t))
	require.NoError(t, lib.AddGesture("line", model.NewGesture(testutil.LineStroke(8, 0, 0, 40, 0))))
	require.NoError(t, lib.AddGesture("line", model.NewGesture(testutil.LineStroke(8, 0, 0, 0, 40))))
	require.NoError(t, lib.AddGesture("circle", model.NewGesture(testutil.CircleStroke(16, 20, 20, 15))))
	return lib
}

func TestSnapshotRoundTrip(t *testing.T) {
	for _, c := range []Compression{CompressionZSTD, CompressionLZ4} {
		t.Run(c.String(), func(t *testing.T) {
			lib := trainedLibrary(t)
			snap := filepath.Join(t.TempDir(), "backup.snap")
			require.NoError(t, lib.ExportSnapshot(snap, c))

			restored := New(storePath(t))
			require.NoError(t, restored.ImportSnapshot(snap))

			assert.ElementsMatch(t, lib.GestureEntries(), restored.GestureEntries())
			assert.Equal(t, lib.GestureCount(), restored.GestureCount())

			query := model.NewGesture(testutil.LineStroke(8, 0, 1, 40, 1))
			want, err := lib.Recognize(query)
			require.NoError(t, err)
			got, err := restored.Recognize(query)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestSnapshotExport(t *testing.T) {
	t.Run("DoesNotTouchDirtyFlag", func(t *testing.T) {
		path := storePath(t)
		lib := New(path)
		require.NoError(t, lib.AddGesture("a", model.NewGesture(testutil.LineStroke(4, 0, 0, 10, 10))))
		require.True(t, lib.Save())

		snap := filepath.Join(t.TempDir(), "backup.snap")
		require.NoError(t, lib.ExportSnapshot(snap, CompressionZSTD))

		// Still clean: a second save must not recreate the store file.
		require.NoError(t, os.Remove(path))
		require.True(t, lib.Save())
		_, err := os.Stat(path)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("UnsupportedCodec", func(t *testing.T) {
		lib := trainedLibrary(t)
		snap := filepath.Join(t.TempDir(), "backup.snap")
		require.Error(t, lib.ExportSnapshot(snap, Compression(9)))
		_, err := os.Stat(snap)
		assert.True(t, os.IsNotExist(err))
	})
}

func TestSnapshotImport(t *testing.T) {
	t.Run("MarksLibraryDirty", func(t *testing.T) {
		lib := trainedLibrary(t)
		snap := filepath.Join(t.TempDir(), "backup.snap")
		require.NoError(t, lib.ExportSnapshot(snap, CompressionLZ4))

		path := storePath(t)
		restored := New(path)
		require.NoError(t, restored.ImportSnapshot(snap))

		require.True(t, restored.Save())
		_, err := os.Stat(path)
		assert.NoError(t, err)
	})

	t.Run("BadMagic", func(t *testing.T) {
		snap := filepath.Join(t.TempDir(), "bogus.snap")
		require.NoError(t, os.WriteFile(snap, []byte("NOPE\x01rest"), 0o644))

		err := New(storePath(t)).ImportSnapshot(snap)
		var de *DecodeError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "snapshotMagic", de.Field)
	})

	t.Run("UnknownCodecByte", func(t *testing.T) {
		snap := filepath.Join(t.TempDir(), "bogus.snap")
		require.NoError(t, os.WriteFile(snap, append([]byte("GSNP"), 9), 0o644))

		err := New(storePath(t)).ImportSnapshot(snap)
		var de *DecodeError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "snapshotCompression", de.Field)
	})

	t.Run("TruncatedHeader", func(t *testing.T) {
		snap := filepath.Join(t.TempDir(), "bogus.snap")
		require.NoError(t, os.WriteFile(snap, []byte("GS"), 0o644))

		err := New(storePath(t)).ImportSnapshot(snap)
		var de *DecodeError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "snapshotHeader", de.Field)
	})
}
