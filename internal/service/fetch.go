package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/BoalRolo/newsdotai/internal/fetcher"
	"github.com/BoalRolo/newsdotai/internal/models"
	"github.com/BoalRolo/newsdotai/internal/newsapi"
	"github.com/BoalRolo/newsdotai/pkg/log"
)

// FetchInput — выборка новостей для показа.
type FetchInput struct {
	UserID  string
	Topics  []models.TopicRequest
	UseMock bool
}

// FetchForDisplay — обновляет живую выдачу пользователя и возвращает её снимок.
//
// Жизненный цикл: StartFetch (все темы в IsLoading) -> FetchTopics ->
// CompleteFetch, либо FailAll при глобальной ошибке. Ошибки отдельных тем
// остаются в TopicWithNews.Error и не прерывают вызов.
// Результаты не сохраняются в ленту: для этого есть StoreArticles.
//
// Поведение/ошибки:
//   - ErrInvalidArgument — пустой userID или тема без label;
//   - ErrNotConfigured — живой режим без ключа API (записи выдачи получают ошибку);
//   - ErrUpstream — прочие глобальные сбои выборки.
func (s *Service) FetchForDisplay(ctx context.Context, in FetchInput) ([]models.TopicWithNews, error) {
	const op = "service/fetch/FetchForDisplay"

	in.UserID = strings.TrimSpace(in.UserID)
	lg := log.From(ctx).With(
		slog.String("op", op),
		slog.String("user_id", in.UserID),
		slog.Bool("use_mock", in.UseMock),
	)

	if in.UserID == "" {
		lg.Warn("fetch_invalid_argument", slog.String("reason", "empty user_id"))
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	topics := make([]models.TopicRequest, len(in.Topics))
	for i, t := range in.Topics {
		t.Label = strings.TrimSpace(t.Label)
		t.Topic = strings.TrimSpace(t.Topic)
		if t.Label == "" {
			lg.Warn("fetch_invalid_argument", slog.String("reason", "empty label"), slog.Int("index", i))
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
		}
		topics[i] = t
	}

	st := s.live.Get(in.UserID)
	gen := st.StartFetch(topics)

	results, err := s.fetcher.FetchTopics(ctx, topics, in.UseMock)
	if err != nil {
		if errors.Is(err, fetcher.ErrNotConfigured) {
			st.FailAll(gen, ErrNotConfigured.Error())
			lg.Warn("fetch_not_configured")
			return nil, fmt.Errorf("%s: %w", op, ErrNotConfigured)
		}

		st.FailAll(gen, newsapi.Message(err))
		lg.Error("fetch_failed", slog.String("err", err.Error()))
		return nil, fmt.Errorf("%s: %w: %w", op, ErrUpstream, err)
	}

	if !st.CompleteFetch(gen, results) {
		// Выдачу успели перезапустить или очистить: результат этой выборки не виден.
		lg.Info("fetch_result_stale", slog.Uint64("generation", gen))
	} else {
		lg.Info("fetch_ok", slog.Int("topics", len(topics)))
	}

	return st.Snapshot(), nil
}

// LiveView возвращает текущую выдачу пользователя; без выдачи возвращает пустой список.
func (s *Service) LiveView(userID string) []models.TopicWithNews {
	st, ok := s.live.Peek(strings.TrimSpace(userID))
	if !ok {
		return []models.TopicWithNews{}
	}

	return st.Snapshot()
}

// ClearLive сбрасывает выдачу; незавершённые выборки будут отброшены.
func (s *Service) ClearLive(userID string) {
	userID = strings.TrimSpace(userID)

	if st, ok := s.live.Peek(userID); ok {
		st.Clear()
	}
	s.live.Drop(userID)
}
