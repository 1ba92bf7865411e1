package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"socialfeed/internal/adapter/out/imagestore"
	"socialfeed/internal/auth"
	"socialfeed/pkg/logger"
)

const maxUploadMemory = 8 << 20

type ImageStore interface {
	Save(ctx context.Context, r io.Reader, originalName, mimeType string) (string, error)
	Delete(ctx context.Context, path string) error
}

type ImageHandler struct {
	store ImageStore
}

func NewImageHandler(store ImageStore) *ImageHandler {
	return &ImageHandler{store: store}
}

// Upload handles PUT /post-image. The stored path it returns is what
// clients pass to the GraphQL mutations as imageUrl; a declared
// non-image type stores nothing and still answers 200 "No file
// provided", so the caller simply ends up without a file reference.
func (h *ImageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if _, ok := auth.FromContext(ctx); !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"message": "not authenticated",
			"status":  http.StatusUnauthorized,
		})
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"message": "invalid multipart body",
			"status":  http.StatusUnprocessableEntity,
		})
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]any{"message": "No file provided"})
		return
	}
	defer file.Close()

	mimeType := header.Header.Get("Content-Type")
	storedPath, err := h.store.Save(ctx, file, header.Filename, mimeType)
	if err != nil {
		if errors.Is(err, imagestore.ErrUnsupportedType) {
			writeJSON(w, http.StatusOK, map[string]any{"message": "No file provided"})
			return
		}
		logger.FromContext(ctx).Error("storing image failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"message": "could not store file",
			"status":  http.StatusInternalServerError,
		})
		return
	}

	if oldPath := r.FormValue("oldPath"); oldPath != "" {
		_ = h.store.Delete(ctx, oldPath)
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message":  "file stored",
		"filePath": storedPath,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
