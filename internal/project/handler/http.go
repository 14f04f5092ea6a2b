package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"portfolio/backend/internal/logutil"
	"portfolio/backend/internal/platform/httpx"
	"portfolio/backend/internal/platform/validate"
	"portfolio/backend/internal/project/domain"
	"portfolio/backend/internal/project/service"
	"portfolio/backend/internal/server/middleware"
)

// ProjectService is implemented by *service.ProjectService.
type ProjectService interface {
	List(ctx context.Context, page httpx.Page) (*service.ListResult, error)
	Get(ctx context.Context, id string) (*domain.Project, error)
	Create(ctx context.Context, in domain.Input) (*domain.Project, error)
	Update(ctx context.Context, id string, patch domain.Patch) (*domain.Project, error)
	Delete(ctx context.Context, id string) error
}

// ProjectHandler serves /projects.
type ProjectHandler struct {
	svc ProjectService
}

func NewProjectHandler(svc ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.List(r.Context(), httpx.ParsePage(r))
	if err != nil {
		h.writeErr(w, r, err, "Error fetching projects")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}

func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Get(r.Context(), projectID(r))
	if err != nil {
		h.writeErr(w, r, err, "Server Error")
		return
	}
	httpx.WriteJSONCached(w, r, p)
}

func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request, id middleware.Identity) {
	var in domain.Input
	if err := httpx.DecodeJSON(w, r, &in); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	p, err := h.svc.Create(r.Context(), in)
	if err != nil {
		h.writeErr(w, r, err, "Error creating project")
		return
	}
	logger := logutil.GetOrDefault(r.Context())
	logger.Info().Str("project.id", p.ID).Msg("project created")
	httpx.WriteJSON(w, http.StatusCreated, p)
}

func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request, id middleware.Identity) {
	var patch domain.Patch
	if err := httpx.DecodeJSON(w, r, &patch); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	p, err := h.svc.Update(r.Context(), projectID(r), patch)
	if err != nil {
		h.writeErr(w, r, err, "Update failed")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, p)
}

func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request, id middleware.Identity) {
	if err := h.svc.Delete(r.Context(), projectID(r)); err != nil {
		h.writeErr(w, r, err, "Delete failed")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "Project deleted"})
}

func (h *ProjectHandler) writeErr(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "Project not found")
	case errors.Is(err, validate.ErrInvalid):
		httpx.WriteError(w, http.StatusBadRequest, validate.Message(err, "Invalid input"))
	default:
		logger := logutil.GetOrDefault(r.Context())
		logger.Error().Err(err).Msg(fallback)
		httpx.WriteError(w, http.StatusInternalServerError, fallback)
	}
}

func projectID(r *http.Request) string {
	return httprouter.ParamsFromContext(r.Context()).ByName("id")
}
