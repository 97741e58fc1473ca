package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/raqueto/backend/internal/application/upload"
	"github.com/raqueto/backend/internal/interfaces/http/dto"
)

const uploadFormField = "files"

// UploadHandler receives admin file uploads
type UploadHandler struct {
	BaseHandler
	uploads     *upload.Service
	maxFiles    int
	maxFileSize int64
}

// NewUploadHandler creates a new UploadHandler. maxFiles and maxFileSizeMB
// of zero disable the respective limit.
func NewUploadHandler(uploads *upload.Service, maxFiles int, maxFileSizeMB int64) *UploadHandler {
	return &UploadHandler{
		uploads:     uploads,
		maxFiles:    maxFiles,
		maxFileSize: maxFileSizeMB << 20,
	}
}

type uploadResponse struct {
	Files []upload.StoredFile `json:"files"`
}

// Upload handles POST /admin/uploads with a multipart "files" field
func (h *UploadHandler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		h.BadRequest(c, "Expected a multipart form with files")
		return
	}
	headers := form.File[uploadFormField]
	if h.maxFiles > 0 && len(headers) > h.maxFiles {
		h.BadRequest(c, fmt.Sprintf("At most %d files can be uploaded at once", h.maxFiles))
		return
	}

	files := make([]upload.File, 0, len(headers))
	for _, fh := range headers {
		if h.maxFileSize > 0 && fh.Size > h.maxFileSize {
			h.Error(c, dto.ErrCodeRequestTooLarge, fmt.Sprintf("File %q exceeds the %d MB limit", fh.Filename, h.maxFileSize>>20))
			return
		}
		files = append(files, upload.File{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Open: func() (io.ReadCloser, error) {
				return fh.Open()
			},
		})
	}

	stored, err := h.uploads.Upload(c.Request.Context(), files)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, uploadResponse{Files: stored})
}
