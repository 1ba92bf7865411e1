package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"

	"socialfeed/internal/adapter/out/imagestore"
	"socialfeed/internal/auth"

	"github.com/stretchr/testify/require"
)

func multipartBody(t *testing.T, fields map[string]string, fileName, fileType, fileContent string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}

	if fileName != "" {
		hdr := make(textproto.MIMEHeader)
		hdr.Set("Content-Disposition", `form-data; name="image"; filename="`+fileName+`"`)
		hdr.Set("Content-Type", fileType)
		part, err := w.CreatePart(hdr)
		require.NoError(t, err)
		_, err = part.Write([]byte(fileContent))
		require.NoError(t, err)
	}

	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func uploadRequest(t *testing.T, body *bytes.Buffer, contentType string, authenticated bool) *http.Request {
	t.Helper()

	req := httptest.NewRequest(http.MethodPut, "/post-image", body)
	req.Header.Set("Content-Type", contentType)
	if authenticated {
		ctx := auth.WithIdentity(context.Background(), auth.Identity{UserID: 1, Name: "u1"})
		req = req.WithContext(ctx)
	}
	return req
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func TestImageHandler_Upload(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "images")
	h := NewImageHandler(imagestore.NewDiskStore(dir))

	body, contentType := multipartBody(t, nil, "cat.png", "image/png", "png-bytes")
	rec := httptest.NewRecorder()
	h.Upload(rec, uploadRequest(t, body, contentType, true))

	require.Equal(t, http.StatusCreated, rec.Code)
	got := decodeBody(t, rec)
	require.Equal(t, "file stored", got["message"])
	require.Contains(t, got["filePath"], "images/")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestImageHandler_Upload_Unauthenticated(t *testing.T) {
	t.Parallel()

	h := NewImageHandler(imagestore.NewDiskStore(filepath.Join(t.TempDir(), "images")))

	body, contentType := multipartBody(t, nil, "cat.png", "image/png", "png-bytes")
	rec := httptest.NewRecorder()
	h.Upload(rec, uploadRequest(t, body, contentType, false))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestImageHandler_Upload_NoFile(t *testing.T) {
	t.Parallel()

	h := NewImageHandler(imagestore.NewDiskStore(filepath.Join(t.TempDir(), "images")))

	body, contentType := multipartBody(t, map[string]string{"oldPath": ""}, "", "", "")
	rec := httptest.NewRecorder()
	h.Upload(rec, uploadRequest(t, body, contentType, true))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "No file provided", decodeBody(t, rec)["message"])
}

// The original's filter accepted any declared type; here the allow-list
// is enforced, but the outcome stays "no file", never a failure.
func TestImageHandler_Upload_DisallowedTypeStoresNothing(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "images")
	h := NewImageHandler(imagestore.NewDiskStore(dir))

	body, contentType := multipartBody(t, nil, "x.pdf", "application/pdf", "%PDF")
	rec := httptest.NewRecorder()
	h.Upload(rec, uploadRequest(t, body, contentType, true))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "No file provided", decodeBody(t, rec)["message"])

	_, err := os.ReadDir(dir)
	require.True(t, os.IsNotExist(err), "nothing should have been written")
}

func TestImageHandler_Upload_ReplacesOldImage(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "images")
	store := imagestore.NewDiskStore(dir)
	h := NewImageHandler(store)

	oldPath, err := store.Save(context.Background(), bytes.NewReader([]byte("old")), "old.png", "image/png")
	require.NoError(t, err)

	body, contentType := multipartBody(t, map[string]string{"oldPath": oldPath}, "new.png", "image/png", "new")
	rec := httptest.NewRecorder()
	h.Upload(rec, uploadRequest(t, body, contentType, true))

	require.Equal(t, http.StatusCreated, rec.Code)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.NotEqual(t, filepath.Base(oldPath), entries[0].Name())
}
