package relay

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// maxUploadBytes caps avatar uploads at 5MB.
const maxUploadBytes = 5 << 20

// UploadAvatar stores a multipart image upload under a fresh uuid filename
// and returns its public URL.
func (s *Server) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("image")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "image file is required",
		})
		return
	}
	defer file.Close()

	if ct := header.Header.Get("Content-Type"); !strings.HasPrefix(ct, "image/") {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "only image uploads are accepted",
		})
		return
	}

	if err := os.MkdirAll(s.cfg.UploadDir, 0o755); err != nil {
		s.log.Error(r.Context(), "could not create upload dir", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   "internal error",
		})
		return
	}

	name := uuid.NewString() + filepath.Ext(header.Filename)
	dst, err := os.Create(filepath.Join(s.cfg.UploadDir, name))
	if err != nil {
		s.log.Error(r.Context(), "could not create upload file", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   "internal error",
		})
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "upload failed or exceeds the 5MB limit",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"imageUrl": fmt.Sprintf("%s/uploads/%s", strings.TrimRight(s.cfg.PublicBaseURL, "/"), name),
	})
}
