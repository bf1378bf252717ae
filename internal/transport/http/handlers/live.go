package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/BoalRolo/newsdotai/internal/models"
	"github.com/BoalRolo/newsdotai/internal/service"
	"github.com/BoalRolo/newsdotai/internal/transport/http/apierrors"
)

// FetchNews — POST /news/fetch/{userId}: выборка по темам для показа.
//
// Без ключа в живом режиме отвечает 503, но выдача пользователя при этом
// уже содержит ошибку по каждой теме (её видно через GET /news/live/{userId}).
func (h *Handlers) FetchNews(w http.ResponseWriter, r *http.Request) {
	var req fetchRequest
	if err := decodeStrict(w, r, &req); err != nil {
		apierrors.WriteError(w, r, invalidArgument("decode body"))
		return
	}

	topics := make([]models.TopicRequest, len(req.Topics))
	for i, t := range req.Topics {
		topics[i] = models.TopicRequest{Label: t.Label, Topic: t.Topic}
	}

	live, err := h.svc.FetchForDisplay(r.Context(), service.FetchInput{
		UserID:  chi.URLParam(r, "userId"),
		Topics:  topics,
		UseMock: req.UseMock,
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, liveFromModel(live))
}

// LiveNews — GET /news/live/{userId}: текущая выдача без новой выборки.
func (h *Handlers) LiveNews(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if userID == "" {
		apierrors.WriteError(w, r, invalidArgument("userId"))
		return
	}

	writeJSON(w, http.StatusOK, liveFromModel(h.svc.LiveView(userID)))
}

// ClearLive — DELETE /news/live/{userId}.
func (h *Handlers) ClearLive(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if userID == "" {
		apierrors.WriteError(w, r, invalidArgument("userId"))
		return
	}

	h.svc.ClearLive(userID)
	w.WriteHeader(http.StatusNoContent)
}
