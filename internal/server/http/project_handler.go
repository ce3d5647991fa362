package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dmitrijs2005/projecthub/internal/common"
	"github.com/dmitrijs2005/projecthub/internal/logging"
	"github.com/dmitrijs2005/projecthub/internal/server/models"
)

// ProjectServiceInterface is the service contract the project handler
// depends on.
type ProjectServiceInterface interface {
	Create(ctx context.Context, name, description string, ownerID int64) (*models.Project, error)
	Get(ctx context.Context, projectID int64) (*models.Project, error)
	GetProjectsForUser(ctx context.Context, userID int64) ([]*models.Project, error)
	Update(ctx context.Context, projectID int64, name, description string) (*models.Project, error)
	Delete(ctx context.Context, projectID, callerID int64) error
	AddParticipant(ctx context.Context, projectID, userID, callerID int64) error
	RemoveParticipant(ctx context.Context, projectID, userID, callerID int64) error
}

type ProjectHandler struct {
	service ProjectServiceInterface
	logger  logging.Logger
}

func NewProjectHandler(service ProjectServiceInterface, logger logging.Logger) *ProjectHandler {
	return &ProjectHandler{
		service: service,
		logger:  logger.With("module", "project_handler"),
	}
}

type projectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type participantRequest struct {
	UserID int64 `json:"user_id"`
}

type projectResponse struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	OwnerID      int64   `json:"owner_id"`
	Participants []int64 `json:"participants"`
}

func toProjectResponse(p *models.Project) projectResponse {
	participants := p.Participants
	if participants == nil {
		participants = []int64{}
	}
	return projectResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		OwnerID:      p.OwnerID,
		Participants: participants,
	}
}

// Create handles POST /api/projects. The caller becomes the owner.
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, err := callerID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req projectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, common.ErrValidation)
		return
	}

	project, err := h.service.Create(r.Context(), req.Name, req.Description, caller)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toProjectResponse(project))
}

// Get handles GET /api/projects/{id}.
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	project, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toProjectResponse(project))
}

// ListForUser handles GET /api/users/{id}/projects.
func (h *ProjectHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	projects, err := h.service.GetProjectsForUser(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]projectResponse, 0, len(projects))
	for _, p := range projects {
		resp = append(resp, toProjectResponse(p))
	}

	writeJSON(w, http.StatusOK, resp)
}

// Update handles PUT /api/projects/{id}.
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req projectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, common.ErrValidation)
		return
	}

	project, err := h.service.Update(r.Context(), id, req.Name, req.Description)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toProjectResponse(project))
}

// Delete handles DELETE /api/projects/{id}.
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

// AddParticipant handles POST /api/projects/{id}/participants.
func (h *ProjectHandler) AddParticipant(w http.ResponseWriter, r *http.Request) {
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

	var req participantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, common.ErrValidation)
		return
	}

	if err := h.service.AddParticipant(r.Context(), id, req.UserID, caller); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RemoveParticipant handles DELETE /api/projects/{id}/participants/{userID}.
func (h *ProjectHandler) RemoveParticipant(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	userID, err := idParam(r, "userID")
	if err != nil {
		writeError(w, err)
		return
	}

	caller, err := callerID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.service.RemoveParticipant(r.Context(), id, userID, caller); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
