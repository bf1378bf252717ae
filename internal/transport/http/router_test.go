package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/BoalRolo/newsdotai/internal/config"
	"github.com/BoalRolo/newsdotai/internal/fetcher"
	"github.com/BoalRolo/newsdotai/internal/models"
	"github.com/BoalRolo/newsdotai/internal/newsapi"
	"github.com/BoalRolo/newsdotai/internal/service"
	"github.com/BoalRolo/newsdotai/internal/storage"
	"github.com/BoalRolo/newsdotai/mocks"
)

var fixedNow = time.Date(2025, 1, 21, 9, 0, 0, 0, time.UTC)

type env struct {
	handler http.Handler
	storage *mocks.MockStorage
	search  *mocks.MockSearchProxy
}

// newEnv собирает роутер поверх настоящего сервиса: хранилище и прокси поиска заменены моками,
// а fetcher настоящий и без ключа API (доступен только mock-режим).
func newEnv(t *testing.T, auth config.AuthConfig) env {
	t.Helper()

	ctrl := gomock.NewController(t)
	ms := mocks.NewMockStorage(ctrl)
	sp := mocks.NewMockSearchProxy(ctrl)

	cfg := config.Config{
		Limits:   config.LimitsConfig{Max: 500},
		Sessions: config.SessionsConfig{TTL: time.Hour, Max: 10},
	}

	f := fetcher.New(nil, newsapi.MustMock(), 2, fetcher.WithClock(func() time.Time { return fixedNow }))
	svc := service.New(ms, f, sp, cfg, service.WithClock(func() time.Time { return fixedNow }))

	h := NewRouter(svc, Options{
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Timeout: time.Second,
		Auth:    auth,
	})

	return env{handler: h, storage: ms, search: sp}
}

func do(t *testing.T, h http.Handler, method, target, body string, hdr ...string) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != "" {
		rd = bytes.NewBufferString(body)
	}

	req := httptest.NewRequest(method, target, rd)
	for i := 0; i+1 < len(hdr); i += 2 {
		req.Header.Set(hdr[i], hdr[i+1])
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func errCode(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()

	var env struct {
		Error struct {
			Code      string `json:"code"`
			RequestID string `json:"request_id"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env), rr.Body.String())
	require.NotEmpty(t, env.Error.RequestID)
	return env.Error.Code
}

func stored(id string, a models.Article) models.StoredArticle {
	return models.StoredArticle{
		Article:    a,
		ID:         id,
		UserID:     "u1",
		TopicID:    "t1",
		TopicLabel: "Sporting",
		CreatedAt:  fixedNow,
		UpdatedAt:  fixedNow,
	}
}

func echoStore(_ context.Context, userID string, arts []models.Article, topicID, label string) ([]models.StoredArticle, error) {
	out := make([]models.StoredArticle, len(arts))
	for i, a := range arts {
		out[i] = models.StoredArticle{Article: a, ID: string(rune('a' + i)), UserID: userID, TopicID: topicID, TopicLabel: label}
	}
	return out, nil
}

// articles: одиночный объект и массив сохраняются одинаково.
func TestRouter_StoreNews_ObjectOrArray(t *testing.T) {
	e := newEnv(t, config.AuthConfig{})

	e.storage.EXPECT().
		StoreArticles(gomock.Any(), "u1", gomock.Len(1), "t1", "Sporting").
		DoAndReturn(echoStore)
	e.storage.EXPECT().
		StoreArticles(gomock.Any(), "u1", gomock.Len(2), "t1", "Sporting").
		DoAndReturn(echoStore)

	single := `{"userId":"u1","topicId":"t1","topicLabel":"Sporting",
		"articles":{"title":"A","url":"https://a","publishedAt":"2025-01-20T15:30:00.000Z","source":{"name":"Record"},"imageUrl":"https://img"}}`
	rr := do(t, e.handler, http.MethodPost, "/news/store", single)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var out []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	require.Len(t, out, 1)
	require.Equal(t, "A", out[0]["title"])
	require.Equal(t, "https://img", out[0]["imageUrl"])
	require.Equal(t, "2025-01-20T15:30:00.000Z", out[0]["publishedAt"])
	require.Equal(t, "Record", out[0]["source"].(map[string]any)["name"])
	require.Equal(t, "a", out[0]["id"])
	require.Equal(t, false, out[0]["isFavorite"])
	require.Equal(t, "Sporting", out[0]["topicLabel"])

	array := `{"userId":"u1","topicId":"t1","topicLabel":"Sporting","articles":[{"title":"A"},{"title":"B"}]}`
	rr = do(t, e.handler, http.MethodPost, "/news/store", array)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	require.Len(t, out, 2)
}

func TestRouter_StoreNews_BadRequests(t *testing.T) {
	e := newEnv(t, config.AuthConfig{})

	bodies := []string{
		`not json`,
		`{"userId":"u1","topicId":"t1","topicLabel":"L","articles":"str"}`,
		`{"userId":"u1","topicId":"t1","topicLabel":"L"}`,
		`{"userId":"u1","topicId":"t1","topicLabel":"L","articles":[]}`,
		`{"userId":"u1","topicId":"t1","topicLabel":"L","articles":{},"extra":1}`,
		`{"userId":"","topicId":"t1","topicLabel":"L","articles":{"title":"a"}}`,
	}

	for _, b := range bodies {
		rr := do(t, e.handler, http.MethodPost, "/news/store", b)
		require.Equal(t, http.StatusBadRequest, rr.Code, b)
		require.Equal(t, "invalid_argument", errCode(t, rr))
	}
}

func TestRouter_Feed_QueryParsing(t *testing.T) {
	e := newEnv(t, config.AuthConfig{})

	fav := true
	e.storage.EXPECT().
		QueryArticles(gomock.Any(), "u1", models.FeedFilter{
			TopicID:    "t1",
			IsFavorite: &fav,
			FromDate:   "2025-01-15",
			ToDate:     "2025-01-20",
			Keywords:   "fc porto",
			Limit:      20,
		}).
		Return([]models.StoredArticle{stored("x1", models.Article{Title: "A", URL: "u", PublishedAt: "p", Source: models.Source{Name: "S"}})}, nil)

	rr := do(t, e.handler, http.MethodGet,
		"/news/feed/u1?topicId=t1&isFavorite=true&fromDate=2025-01-15&toDate=2025-01-20&keywords=fc+porto&limit=20", "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var out []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	require.Len(t, out, 1)
	require.Equal(t, "x1", out[0]["id"])
	require.Equal(t, "t1", out[0]["topicId"])

	for _, q := range []string{"isFavorite=maybe", "limit=-1", "limit=abc", "fromDate=2025-02-01&toDate=2025-01-01"} {
		rr := do(t, e.handler, http.MethodGet, "/news/feed/u1?"+q, "")
		require.Equal(t, http.StatusBadRequest, rr.Code, q)
	}
}

func TestRouter_Feed_EmptyIsArray(t *testing.T) {
	e := newEnv(t, config.AuthConfig{})

	e.storage.EXPECT().QueryArticles(gomock.Any(), "u1", gomock.Any()).Return([]models.StoredArticle{}, nil)

	rr := do(t, e.handler, http.MethodGet, "/news/feed/u1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `[]`, rr.Body.String())
}

func TestRouter_ToggleFavorite(t *testing.T) {
	e := newEnv(t, config.AuthConfig{})

	e.storage.EXPECT().SetFavorite(gomock.Any(), "u1", "n1", true).Return(nil)
	rr := do(t, e.handler, http.MethodPatch, "/news/favorite/u1/n1", `{"isFavorite":true}`)
	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `{"success":true,"isFavorite":true}`, rr.Body.String())

	e.storage.EXPECT().SetFavorite(gomock.Any(), "u1", "missing", false).Return(storage.ErrNotFound)
	rr = do(t, e.handler, http.MethodPatch, "/news/favorite/u1/missing", `{"isFavorite":false}`)
	require.Equal(t, http.StatusNotFound, rr.Code)
	require.Equal(t, "not_found", errCode(t, rr))

	rr = do(t, e.handler, http.MethodPatch, "/news/favorite/u1/n1", `{}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRouter_DeleteNews(t *testing.T) {
	e := newEnv(t, config.AuthConfig{})

	e.storage.EXPECT().DeleteArticle(gomock.Any(), "u1", "n1").Return(nil)
	rr := do(t, e.handler, http.MethodDelete, "/news/u1/n1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `{"success":true}`, rr.Body.String())

	e.storage.EXPECT().DeleteArticle(gomock.Any(), "u1", "n1").Return(storage.ErrNotFound)
	rr = do(t, e.handler, http.MethodDelete, "/news/u1/n1", "")
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRouter_Stats(t *testing.T) {
	e := newEnv(t, config.AuthConfig{})

	e.storage.EXPECT().Stats(gomock.Any(), "u1").
		Return(&models.Stats{Total: 3, Favorites: 1, Topics: map[string]int{"Sporting": 3}}, nil)

	rr := do(t, e.handler, http.MethodGet, "/news/stats/u1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `{"total":3,"favorites":1,"topics":{"Sporting":3}}`, rr.Body.String())

	e.storage.EXPECT().Stats(gomock.Any(), "u1").Return(nil, errors.New("db down"))
	rr = do(t, e.handler, http.MethodGet, "/news/stats/u1", "")
	require.Equal(t, http.StatusInternalServerError, rr.Code)
	require.Equal(t, "internal", errCode(t, rr))
}

// Mock-режим работает без ключа; выдача доступна повторно и очищается.
func TestRouter_FetchLiveClear_Mock(t *testing.T) {
	e := newEnv(t, config.AuthConfig{})

	body := `{"useMock":true,"topics":[{"label":"Sporting","topic":"sportingcp"},{"label":"Nothing","topic":"unknown"}]}`
	rr := do(t, e.handler, http.MethodPost, "/news/fetch/u1", body)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var live []struct {
		Label     string           `json:"label"`
		Topic     string           `json:"topic"`
		Articles  []map[string]any `json:"articles"`
		IsLoading bool             `json:"isLoading"`
		Error     string           `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &live))
	require.Len(t, live, 2)
	require.Equal(t, "Sporting", live[0].Label)
	require.Len(t, live[0].Articles, 3)
	require.Equal(t, "Record", live[0].Articles[0]["source"].(map[string]any)["name"])
	require.False(t, live[0].IsLoading)
	require.NotNil(t, live[1].Articles)
	require.Empty(t, live[1].Articles)

	rr = do(t, e.handler, http.MethodGet, "/news/live/u1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &live))
	require.Len(t, live, 2)

	rr = do(t, e.handler, http.MethodDelete, "/news/live/u1", "")
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr = do(t, e.handler, http.MethodGet, "/news/live/u1", "")
	require.JSONEq(t, `[]`, rr.Body.String())
}

// Живой режим без ключа: 503, но выдача хранит ошибку по каждой теме.
func TestRouter_Fetch_NotConfigured(t *testing.T) {
	e := newEnv(t, config.AuthConfig{})

	rr := do(t, e.handler, http.MethodPost, "/news/fetch/u1", `{"topics":[{"label":"AI","topic":"Technology"}]}`)
	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
	require.Equal(t, "not_configured", errCode(t, rr))

	rr = do(t, e.handler, http.MethodGet, "/news/live/u1", "")
	require.JSONEq(t, `[{"label":"AI","topic":"Technology","articles":[],"isLoading":false,"error":"news API key is not configured"}]`, rr.Body.String())
}

func TestRouter_Topics(t *testing.T) {
	e := newEnv(t, config.AuthConfig{})

	e.storage.EXPECT().ListTopics(gomock.Any(), "u1").
		Return([]models.Topic{{ID: "t1", UserID: "u1", Label: "Sporting", Topic: "Sports"}}, nil).Times(2)

	rr := do(t, e.handler, http.MethodGet, "/topics/u1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), `"label":"Sporting"`)

	rr = do(t, e.handler, http.MethodPost, "/topics/u1", `{"label":"SPORTING","topic":"Sports"}`)
	require.Equal(t, http.StatusConflict, rr.Code)
	require.Equal(t, "already_exists", errCode(t, rr))

	rr = do(t, e.handler, http.MethodPost, "/topics/u1", `{"label":"x","topic":"Cooking"}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)

	e.storage.EXPECT().DeleteTopic(gomock.Any(), "u1", "t1").Return(nil)
	rr = do(t, e.handler, http.MethodDelete, "/topics/u1/t1", "")
	require.Equal(t, http.StatusOK, rr.Code)

	e.storage.EXPECT().ListTopics(gomock.Any(), "u1").Return(nil, nil)
	e.storage.EXPECT().UpdateTopic(gomock.Any(), models.Topic{ID: "t9", UserID: "u1", Label: "AI", Topic: "Science"}).
		Return(&models.Topic{ID: "t9", UserID: "u1", Label: "AI", Topic: "Science"}, nil)
	rr = do(t, e.handler, http.MethodPut, "/topics/u1/t9", `{"label":"AI","topic":"Science"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	require.Contains(t, rr.Body.String(), `"id":"t9"`)
}

func TestRouter_Search(t *testing.T) {
	e := newEnv(t, config.AuthConfig{})

	e.search.EXPECT().Configured().Return(true).AnyTimes()
	e.search.EXPECT().Proxy(gomock.Any(), gomock.Any()).Return(json.RawMessage(`{"status":"success","results":[]}`), nil)

	rr := do(t, e.handler, http.MethodGet, "/news?q=ai", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `{"status":"success","results":[]}`, rr.Body.String())

	e.search.EXPECT().Proxy(gomock.Any(), gomock.Any()).Return(nil, newsapi.ErrRateLimited)
	rr = do(t, e.handler, http.MethodGet, "/news?q=ai", "")
	require.Equal(t, http.StatusTooManyRequests, rr.Code)
}

// С секретом пользовательские маршруты требуют токен владельца.
func TestRouter_Auth(t *testing.T) {
	const secret = "s3cret"
	e := newEnv(t, config.AuthConfig{JWTSecret: secret})

	token := func(sub string) string {
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Subject:   sub,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}).SignedString([]byte(secret))
		require.NoError(t, err)
		return "Bearer " + tok
	}

	rr := do(t, e.handler, http.MethodGet, "/news/stats/u1", "")
	require.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = do(t, e.handler, http.MethodGet, "/news/stats/u1", "", "Authorization", token("u2"))
	require.Equal(t, http.StatusForbidden, rr.Code)

	// userId в теле сверяется с токеном.
	rr = do(t, e.handler, http.MethodPost, "/news/store",
		`{"userId":"u1","topicId":"t1","topicLabel":"L","articles":{"title":"a"}}`, "Authorization", token("u2"))
	require.Equal(t, http.StatusForbidden, rr.Code)

	e.storage.EXPECT().Stats(gomock.Any(), "u1").Return(&models.Stats{Topics: map[string]int{}}, nil)
	rr = do(t, e.handler, http.MethodGet, "/news/stats/u1", "", "Authorization", token("u1"))
	require.Equal(t, http.StatusOK, rr.Code)
}
