package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/projecthub/internal/common"
	"github.com/dmitrijs2005/projecthub/internal/logging"
	"github.com/dmitrijs2005/projecthub/internal/server/models"
)

// maxUploadMemory bounds the in-memory part of multipart parsing; larger
// bodies spill to temporary files.
const maxUploadMemory = 32 << 20

// DocumentServiceInterface is the service contract the document handler
// depends on.
type DocumentServiceInterface interface {
	Upload(ctx context.Context, r io.Reader, originalFilename, contentType string, projectID, uploaderID int64) (*models.Document, error)
	ListForProject(ctx context.Context, projectID int64) ([]*models.Document, error)
	Get(ctx context.Context, documentID int64) (*models.Document, error)
	Download(ctx context.Context, documentID int64) (*models.Document, io.ReadCloser, error)
	Delete(ctx context.Context, documentID, callerID int64) error
}

type DocumentHandler struct {
	service DocumentServiceInterface
	logger  logging.Logger
}

func NewDocumentHandler(service DocumentServiceInterface, logger logging.Logger) *DocumentHandler {
	return &DocumentHandler{
		service: service,
		logger:  logger.With("module", "document_handler"),
	}
}

type documentResponse struct {
	ID          int64     `json:"id"`
	Filename    string    `json:"filename"`
	FileSize    int64     `json:"file_size"`
	ContentType string    `json:"content_type"`
	ProjectID   int64     `json:"project_id"`
	UploadedBy  int64     `json:"uploaded_by"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

func toDocumentResponse(d *models.Document) documentResponse {
	return documentResponse{
		ID:          d.ID,
		Filename:    d.OriginalFilename,
		FileSize:    d.FileSize,
		ContentType: d.ContentType,
		ProjectID:   d.ProjectID,
		UploadedBy:  d.UploadedBy,
		UploadedAt:  d.UploadedAt,
	}
}

// Upload handles POST /api/projects/{id}/documents with a multipart body
// carrying the file under the "file" field.
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	projectID, err := idParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	caller, err := callerID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(w, common.ErrValidation)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, common.ErrFilenameRequired)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	document, err := h.service.Upload(r.Context(), file, header.Filename, contentType, projectID, caller)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toDocumentResponse(document))
}

// List handles GET /api/projects/{id}/documents.
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	projectID, err := idParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	documents, err := h.service.ListForProject(r.Context(), projectID)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]documentResponse, 0, len(documents))
	for _, d := range documents {
		resp = append(resp, toDocumentResponse(d))
	}

	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /api/documents/{id}.
func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	document, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toDocumentResponse(document))
}

// Download handles GET /api/documents/{id}/content, streaming the stored
// bytes with the original filename as the attachment name.
func (h *DocumentHandler) Download(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	document, rc, err := h.service.Download(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", document.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", document.OriginalFilename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", document.FileSize))

	if _, err := io.Copy(w, rc); err != nil {
		// headers are already out, all we can do is log
		h.logger.Error(r.Context(), "error streaming document", "document_id", id, "error", err.Error())
	}
}

// Delete handles DELETE /api/documents/{id}.
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	caller, err := callerID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.service.Delete(r.Context(), id, caller); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
