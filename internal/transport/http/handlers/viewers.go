package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	threadv1 "github.com/pribylovaa/comment-thread/api/threadv1"
	"github.com/pribylovaa/comment-thread/internal/transport/http/apierrors"
)

// CurrentViewer — профиль из X-Viewer-Id; для анонима {"viewer":null}.
func (h *Handlers) CurrentViewer(w http.ResponseWriter, r *http.Request) {
	resp, err := h.API.CurrentViewer(r.Context(), &threadv1.CurrentViewerRequest{})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// SaveViewer — id берётся из пути и перекрывает id в теле.
func (h *Handlers) SaveViewer(w http.ResponseWriter, r *http.Request) {
	var in threadv1.Viewer
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, apierrors.InvalidArgument())
		return
	}
	in.ID = chi.URLParam(r, "id")

	resp, err := h.API.SaveViewer(r.Context(), &threadv1.SaveViewerRequest{Viewer: &in})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) DeleteViewer(w http.ResponseWriter, r *http.Request) {
	_, err := h.API.DeleteViewer(r.Context(), &threadv1.DeleteViewerRequest{ID: chi.URLParam(r, "id")})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
