package v1

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/yab-g4u/Ablack/internal/delivery/http/middleware"
	"github.com/yab-g4u/Ablack/pkg/logger"
	"github.com/yab-g4u/Ablack/pkg/storage"
	"github.com/yab-g4u/Ablack/pkg/utils"
)

var (
	allowedMimeTypes = map[string]bool{
		"image/jpeg": true,
		"image/jpg":  true,
		"image/png":  true,
		"image/webp": true,
	}
	allowedExtensions = map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
		".webp": true,
	}
)

// UploadHandler accepts avatar images for the account page.
type UploadHandler struct {
	storage       *storage.ObjectStorage
	maxUploadSize int64
}

func NewUploadHandler(s *storage.ObjectStorage, maxUploadSizeMB int64) *UploadHandler {
	return &UploadHandler{
		storage:       s,
		maxUploadSize: maxUploadSizeMB << 20,
	}
}

func (h *UploadHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "File too large or invalid format")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid file")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !allowedMimeTypes[contentType] {
		utils.WriteError(w, http.StatusBadRequest, "Unsupported file type")
		return
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		utils.WriteError(w, http.StatusBadRequest, "Unsupported file extension")
		return
	}

	url, err := h.storage.UploadFile(r.Context(), file, header)
	if err != nil {
		logger.Error().Err(err).Str("user_id", user.ID).Msg("avatar upload failed")
		utils.WriteError(w, http.StatusInternalServerError, "Upload failed")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"url": url})
}
