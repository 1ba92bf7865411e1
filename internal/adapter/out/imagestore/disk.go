package imagestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"socialfeed/pkg/logger"
)

// ErrUnsupportedType marks a declared MIME type outside the image
// allow-list. Upload handlers translate it into "no file stored", not
// into a request failure.
var ErrUnsupportedType = errors.New("unsupported file type")

// AllowedImageType reports whether the declared MIME type may be
// stored. The original filter accepted everything because of a broken
// conditional; the allow-list is enforced here on purpose.
func AllowedImageType(mimeType string) bool {
	switch mimeType {
	case "image/png", "image/jpg", "image/jpeg":
		return true
	default:
		return false
	}
}

// DiskStore keeps uploaded images as plain files under a single
// directory and hands out paths relative to that directory's parent,
// e.g. "images/2025-08-31T12:00:00Z-cat.png".
type DiskStore struct {
	dir string
	now func() time.Time
}

func NewDiskStore(dir string) *DiskStore {
	return &DiskStore{
		dir: dir,
		now: time.Now,
	}
}

// Save persists the blob under a timestamp-prefixed name. The scheme is
// collision-resistant, not collision-proof; two uploads of the same
// file in the same nanosecond overwrite each other and that risk is
// accepted.
func (s *DiskStore) Save(ctx context.Context, r io.Reader, originalName, mimeType string) (string, error) {
	if !AllowedImageType(mimeType) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, mimeType)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating images dir: %w", err)
	}

	name := s.now().UTC().Format(time.RFC3339Nano) + "-" + sanitizeName(originalName)
	full := filepath.Join(s.dir, name)

	f, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("creating image file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		_ = os.Remove(full)
		return "", fmt.Errorf("writing image file: %w", err)
	}

	return filepath.ToSlash(filepath.Join(filepath.Base(s.dir), name)), nil
}

// Delete unlinks a stored image best-effort. A missing file or an I/O
// failure is logged and reported as nil so cleanup can never block the
// mutation that triggered it.
func (s *DiskStore) Delete(ctx context.Context, storedPath string) error {
	name := filepath.Base(filepath.FromSlash(storedPath))
	if name == "." || name == string(filepath.Separator) {
		return nil
	}

	if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
		logger.FromContext(ctx).Warn("image unlink failed", "path", storedPath, "error", err)
	}
	return nil
}

// sanitizeName strips any path components from a client-supplied
// filename.
func sanitizeName(name string) string {
	name = filepath.Base(filepath.FromSlash(name))
	name = strings.ReplaceAll(name, string(filepath.Separator), "")
	if name == "" || name == "." {
		name = "upload"
	}
	return name
}
