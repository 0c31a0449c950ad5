package api

import (
	"bytes"
	"io"
	"net/http"

	"github.com/echoverse/echo-web/internal/http/response"
)

// UploadResponse is returned after an image was stored by the gateway.
type UploadResponse struct {
	URL string `json:"url"`
}

// handleUploadImage forwards one image to the gateway and returns its URL.
// POST /admin/items/upload-image.
// Content-Type: multipart/form-data with "image" field.
// This is a chi handler (not Huma) because Huma doesn't easily support multipart forms.
func (s *Server) handleUploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize+1<<20)
	if err := r.ParseMultipartForm(MaxUploadSize); err != nil {
		response.BadRequest(w, "Failed to parse form data", s.logger)
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("image")
	if err != nil {
		response.BadRequest(w, "No file uploaded. Use 'image' field in multipart form", s.logger)
		return
	}
	defer file.Close()

	if header.Size > MaxUploadSize {
		response.BadRequest(w, "File too large. Maximum size is 10MB", s.logger)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		s.logger.Error("Failed to read uploaded file", "error", err, "filename", header.Filename)
		response.BadRequest(w, "Failed to read uploaded file", s.logger)
		return
	}

	if detectImageType(data) == "" {
		response.BadRequest(w, "Invalid image format. Supported formats: JPEG, PNG, WebP, GIF", s.logger)
		return
	}

	url, err := s.services.Admin.UploadImage(r.Context(), header.Filename, bytes.NewReader(data))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	s.logger.Info("image uploaded", "filename", header.Filename, "size", len(data))
	response.Created(w, UploadResponse{URL: url}, s.logger)
}

// detectImageType returns the MIME type from magic bytes, or "" when unsupported.
func detectImageType(data []byte) string {
	switch {
	case len(data) < 12:
		return ""
	case data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF:
		return "image/jpeg"
	case bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")):
		return "image/png"
	case bytes.HasPrefix(data, []byte("GIF87a")), bytes.HasPrefix(data, []byte("GIF89a")):
		return "image/gif"
	case bytes.HasPrefix(data, []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WEBP")):
		return "image/webp"
	default:
		return ""
	}
}
