package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/BoalRolo/newsdotai/internal/models"
	"github.com/BoalRolo/newsdotai/internal/service"
	"github.com/BoalRolo/newsdotai/internal/transport/http/apierrors"
)

// SearchNews — GET /news: прокси поискового API, тело ответа без изменений.
func (h *Handlers) SearchNews(w http.ResponseWriter, r *http.Request) {
	body, err := h.svc.Search(r.Context(), r.URL.Query())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// StoreNews — POST /news/store: articles может быть объектом или массивом.
func (h *Handlers) StoreNews(w http.ResponseWriter, r *http.Request) {
	var req storeRequest
	if err := decodeStrict(w, r, &req); err != nil {
		apierrors.WriteError(w, r, invalidArgument("decode body"))
		return
	}

	articles, err := splitArticles(req.Articles)
	if err != nil {
		apierrors.WriteError(w, r, invalidArgument(err.Error()))
		return
	}

	if err := checkOwner(r, strings.TrimSpace(req.UserID)); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	stored, err := h.svc.StoreArticles(r.Context(), service.StoreInput{
		UserID:     req.UserID,
		TopicID:    req.TopicID,
		TopicLabel: req.TopicLabel,
		Articles:   articles,
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, storedFromModel(stored))
}

// Feed — GET /news/feed/{userId}?topicId&isFavorite&fromDate&toDate&keywords&category&language&limit.
func (h *Handlers) Feed(w http.ResponseWriter, r *http.Request) {
	f, err := feedFilterFromQuery(r)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	items, err := h.svc.Feed(r.Context(), chi.URLParam(r, "userId"), f)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, storedFromModel(items))
}

func feedFilterFromQuery(r *http.Request) (models.FeedFilter, error) {
	q := r.URL.Query()

	f := models.FeedFilter{
		TopicID:  strings.TrimSpace(q.Get("topicId")),
		FromDate: strings.TrimSpace(q.Get("fromDate")),
		ToDate:   strings.TrimSpace(q.Get("toDate")),
		Keywords: strings.TrimSpace(q.Get("keywords")),
		Category: strings.TrimSpace(q.Get("category")),
		Language: strings.TrimSpace(q.Get("language")),
	}

	if v := q.Get("isFavorite"); v != "" {
		fav, err := strconv.ParseBool(v)
		if err != nil {
			return f, invalidArgument("isFavorite")
		}
		f.IsFavorite = &fav
	}

	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return f, invalidArgument("limit")
		}
		f.Limit = n
	}

	return f, nil
}

// ToggleFavorite — PATCH /news/favorite/{userId}/{newsId}, тело {"isFavorite": bool}.
func (h *Handlers) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	var req favoriteRequest
	if err := decodeStrict(w, r, &req); err != nil || req.IsFavorite == nil {
		apierrors.WriteError(w, r, invalidArgument("isFavorite"))
		return
	}

	res, err := h.svc.ToggleFavorite(r.Context(), chi.URLParam(r, "userId"), chi.URLParam(r, "newsId"), *req.IsFavorite)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, favoriteDTO{Success: res.Success, IsFavorite: res.IsFavorite})
}

// DeleteNews — DELETE /news/{userId}/{newsId}.
func (h *Handlers) DeleteNews(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteArticle(r.Context(), chi.URLParam(r, "userId"), chi.URLParam(r, "newsId")); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, successDTO{Success: true})
}

// Stats — GET /news/stats/{userId}.
func (h *Handlers) Stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Stats(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	topics := st.Topics
	if topics == nil {
		topics = map[string]int{}
	}

	writeJSON(w, http.StatusOK, statsDTO{Total: st.Total, Favorites: st.Favorites, Topics: topics})
}
