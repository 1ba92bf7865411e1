package imagestore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiskStore_SaveAndDelete(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "images")
	st := NewDiskStore(dir)

	stored, err := st.Save(context.Background(), strings.NewReader("png-bytes"), "cat.png", "image/png")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(stored, "images/"))
	require.True(t, strings.HasSuffix(stored, "-cat.png"))

	onDisk := filepath.Join(dir, filepath.Base(stored))
	data, err := os.ReadFile(onDisk)
	require.NoError(t, err)
	require.Equal(t, "png-bytes", string(data))

	require.NoError(t, st.Delete(context.Background(), stored))
	_, err = os.Stat(onDisk)
	require.ErrorIs(t, err, os.ErrNotExist)
}

// The source's MIME filter accepted anything; the allow-list is
// enforced here instead, and the caller gets no file reference.
func TestDiskStore_SaveRejectsNonImageType(t *testing.T) {
	t.Parallel()

	st := NewDiskStore(filepath.Join(t.TempDir(), "images"))

	stored, err := st.Save(context.Background(), strings.NewReader("not an image"), "x.exe", "application/octet-stream")
	require.ErrorIs(t, err, ErrUnsupportedType)
	require.Empty(t, stored)
}

func TestDiskStore_DeleteMissingFileIsBestEffort(t *testing.T) {
	t.Parallel()

	st := NewDiskStore(filepath.Join(t.TempDir(), "images"))

	require.NoError(t, st.Delete(context.Background(), "images/never-existed.png"))
}

func TestDiskStore_SaveStripsPathComponents(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "images")
	st := NewDiskStore(dir)

	stored, err := st.Save(context.Background(), strings.NewReader("x"), "../../etc/passwd.png", "image/png")
	require.NoError(t, err)
	require.NotContains(t, stored, "..")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.True(t, strings.HasSuffix(entries[0].Name(), "-passwd.png"))
}

func TestAllowedImageType(t *testing.T) {
	t.Parallel()

	for _, mt := range []string{"image/png", "image/jpg", "image/jpeg"} {
		require.Truef(t, AllowedImageType(mt), "%s should be allowed", mt)
	}
	for _, mt := range []string{"", "image/gif", "text/html", "application/pdf"} {
		require.Falsef(t, AllowedImageType(mt), "%s should be rejected", mt)
	}
}
