package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	threadv1 "github.com/pribylovaa/comment-thread/api/threadv1"
	"github.com/pribylovaa/comment-thread/internal/transport/http/apierrors"
)

func (h *Handlers) GetThread(w http.ResponseWriter, r *http.Request) {
	resp, err := h.API.GetThread(r.Context(), &threadv1.GetThreadRequest{PageID: chi.URLParam(r, "page_id")})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) ListRootComments(w http.ResponseWriter, r *http.Request) {
	size, ok := pageSize(r)
	if !ok {
		apierrors.WriteError(w, r, apierrors.InvalidArgument())
		return
	}

	resp, err := h.API.ListByPage(r.Context(), &threadv1.ListByPageRequest{
		PageID:    chi.URLParam(r, "page_id"),
		PageSize:  size,
		PageToken: r.URL.Query().Get("page_token"),
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) GetCommentByID(w http.ResponseWriter, r *http.Request) {
	resp, err := h.API.CommentByID(r.Context(), &threadv1.CommentByIDRequest{ID: chi.URLParam(r, "id")})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) ListReplies(w http.ResponseWriter, r *http.Request) {
	size, ok := pageSize(r)
	if !ok {
		apierrors.WriteError(w, r, apierrors.InvalidArgument())
		return
	}

	resp, err := h.API.ListReplies(r.Context(), &threadv1.ListRepliesRequest{
		ParentID:  chi.URLParam(r, "id"),
		PageSize:  size,
		PageToken: r.URL.Query().Get("page_token"),
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) CreateComment(w http.ResponseWriter, r *http.Request) {
	var in threadv1.CreateCommentRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, apierrors.InvalidArgument())
		return
	}

	resp, err := h.API.CreateComment(r.Context(), &in)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handlers) DeleteComment(w http.ResponseWriter, r *http.Request) {
	_, err := h.API.DeleteComment(r.Context(), &threadv1.DeleteCommentRequest{ID: chi.URLParam(r, "id")})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) ToggleLike(w http.ResponseWriter, r *http.Request) {
	resp, err := h.API.ToggleLike(r.Context(), &threadv1.ToggleLikeRequest{ID: chi.URLParam(r, "id")})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
