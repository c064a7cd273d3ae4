package http

import (
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"impactolocal-backend/internal/domain"
	"impactolocal-backend/internal/storage"
)

const presignExpiry = 15 * time.Minute

// UploadHandler serves attachment uploads and downloads against the mock
// storage backend, plus the presign endpoint volunteers call before
// uploading an application attachment.
type UploadHandler struct {
	store storage.StorageInterface
}

func NewUploadHandler(store storage.StorageInterface) *UploadHandler {
	return &UploadHandler{store: store}
}

type presignRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}

type presignResponse struct {
	Key       string `json:"key"`
	UploadURL string `json:"upload_url"`
}

// Presign issues an upload URL for a new attachment key scoped to the
// authenticated volunteer.
func (h *UploadHandler) Presign(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireRole(w, r, domain.RoleVolunteer)
	if !ok {
		return
	}
	var req presignRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Filename == "" {
		respondError(w, http.StatusBadRequest, "filename is required")
		return
	}
	if req.ContentType == "" {
		req.ContentType = "application/octet-stream"
	}

	key := storage.NewAttachmentKey(claims.UserID, uuid.New().String(), req.Filename)
	url, err := h.store.GeneratePresignedUploadURL(r.Context(), key, req.ContentType, presignExpiry)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, presignResponse{Key: key, UploadURL: url})
}

// HandleUpload accepts PUT requests against mock presigned URLs.
func (h *UploadHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		http.Error(w, "Missing key parameter", http.StatusBadRequest)
		return
	}

	if err := h.store.SaveFile(key, r.Body); err != nil {
		http.Error(w, "Failed to save file", http.StatusInternalServerError)
		return
	}

	w.Header().Set("ETag", `"mock-etag-success"`)
	w.WriteHeader(http.StatusOK)
}

// HandleDownload streams a stored attachment back to the caller.
func (h *UploadHandler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		http.Error(w, "Missing key parameter", http.StatusBadRequest)
		return
	}

	file, err := h.store.ReadFile(key)
	if err != nil {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}
	defer file.Close()

	contentType := "application/octet-stream"
	switch filepath.Ext(key) {
	case ".pdf":
		contentType = "application/pdf"
	case ".jpg", ".jpeg":
		contentType = "image/jpeg"
	case ".png":
		contentType = "image/png"
	case ".txt":
		contentType = "text/plain; charset=utf-8"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "private, max-age=3600")
	io.Copy(w, file) //nolint:errcheck
}
