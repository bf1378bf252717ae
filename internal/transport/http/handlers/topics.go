package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/BoalRolo/newsdotai/internal/service"
	"github.com/BoalRolo/newsdotai/internal/transport/http/apierrors"
)

// ListTopics — GET /topics/{userId}.
func (h *Handlers) ListTopics(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Topics(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	out := make([]topicDTO, len(items))
	for i, t := range items {
		out[i] = topicFromModel(t)
	}

	writeJSON(w, http.StatusOK, out)
}

// CreateTopic — POST /topics/{userId}, тело {label, topic, useMock}.
func (h *Handlers) CreateTopic(w http.ResponseWriter, r *http.Request) {
	var req topicBody
	if err := decodeStrict(w, r, &req); err != nil {
		apierrors.WriteError(w, r, invalidArgument("decode body"))
		return
	}

	topic, err := h.svc.AddTopic(r.Context(), service.TopicInput{
		UserID:    chi.URLParam(r, "userId"),
		Label:     req.Label,
		Topic:     req.Topic,
		AllowMock: req.UseMock,
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, topicFromModel(*topic))
}

// UpdateTopic — PUT /topics/{userId}/{topicId}.
func (h *Handlers) UpdateTopic(w http.ResponseWriter, r *http.Request) {
	var req topicBody
	if err := decodeStrict(w, r, &req); err != nil {
		apierrors.WriteError(w, r, invalidArgument("decode body"))
		return
	}

	topic, err := h.svc.EditTopic(r.Context(), service.TopicInput{
		ID:        chi.URLParam(r, "topicId"),
		UserID:    chi.URLParam(r, "userId"),
		Label:     req.Label,
		Topic:     req.Topic,
		AllowMock: req.UseMock,
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, topicFromModel(*topic))
}

// DeleteTopic — DELETE /topics/{userId}/{topicId}.
func (h *Handlers) DeleteTopic(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteTopic(r.Context(), chi.URLParam(r, "userId"), chi.URLParam(r, "topicId")); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, successDTO{Success: true})
}
