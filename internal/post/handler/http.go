package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"portfolio/backend/internal/logutil"
	"portfolio/backend/internal/platform/httpx"
	"portfolio/backend/internal/platform/validate"
	"portfolio/backend/internal/post/domain"
	"portfolio/backend/internal/post/service"
	"portfolio/backend/internal/server/middleware"
)

// PostService is implemented by *service.PostService.
type PostService interface {
	List(ctx context.Context, page httpx.Page) (*service.ListResult, error)
	Get(ctx context.Context, id string) (*domain.Post, error)
	Create(ctx context.Context, in domain.Input) (*domain.Post, error)
	Update(ctx context.Context, id string, patch domain.Patch) (*domain.Post, error)
	Delete(ctx context.Context, id string) error
}

// PostHandler serves /posts. Reads are public; writes are AuthedHandlers.
type PostHandler struct {
	svc PostService
}

func NewPostHandler(svc PostService) *PostHandler {
	return &PostHandler{svc: svc}
}

func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.List(r.Context(), httpx.ParsePage(r))
	if err != nil {
		serverError(w, r, err, "Error fetching posts")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}

func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Get(r.Context(), postID(r))
	if err != nil {
		h.writeErr(w, r, err, "Server Error")
		return
	}
	httpx.WriteJSONCached(w, r, p)
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request, id middleware.Identity) {
	var in domain.Input
	if err := httpx.DecodeJSON(w, r, &in); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	p, err := h.svc.Create(r.Context(), in)
	if err != nil {
		h.writeErr(w, r, err, "Server error")
		return
	}
	logger := logutil.GetOrDefault(r.Context())
	logger.Info().Str("post.id", p.ID).Msg("post created")
	httpx.WriteJSON(w, http.StatusCreated, p)
}

func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request, id middleware.Identity) {
	var patch domain.Patch
	if err := httpx.DecodeJSON(w, r, &patch); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	p, err := h.svc.Update(r.Context(), postID(r), patch)
	if err != nil {
		h.writeErr(w, r, err, "Update failed")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, p)
}

func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request, id middleware.Identity) {
	if err := h.svc.Delete(r.Context(), postID(r)); err != nil {
		h.writeErr(w, r, err, "Delete failed")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "Post deleted"})
}

func (h *PostHandler) writeErr(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "Post not found")
	case errors.Is(err, validate.ErrInvalid):
		httpx.WriteError(w, http.StatusBadRequest, validate.Message(err, "Invalid input"))
	default:
		serverError(w, r, err, fallback)
	}
}

func serverError(w http.ResponseWriter, r *http.Request, err error, message string) {
	logger := logutil.GetOrDefault(r.Context())
	logger.Error().Err(err).Msg(message)
	httpx.WriteError(w, http.StatusInternalServerError, message)
}

func postID(r *http.Request) string {
	return httprouter.ParamsFromContext(r.Context()).ByName("id")
}
