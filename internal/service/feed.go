package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/BoalRolo/newsdotai/internal/filter"
	"github.com/BoalRolo/newsdotai/internal/models"
	"github.com/BoalRolo/newsdotai/internal/normalizer"
	"github.com/BoalRolo/newsdotai/internal/storage"
	"github.com/BoalRolo/newsdotai/pkg/log"
)

// StoreInput — сохранение новостей темы в ленту.
// Articles — записи в любом из известных форматов, нормализуются перед вставкой.
type StoreInput struct {
	UserID     string
	TopicID    string
	TopicLabel string
	Articles   []json.RawMessage
}

// StoreArticles — сохраняет новости в ленту пользователя.
//
// Валидация:
//   - UserID, TopicID, TopicLabel непустые после TrimSpace;
//   - хотя бы одна запись.
//
// Поведение/ошибки:
//   - ErrInternal — ошибка стораджа; вставленные до сбоя записи остаются в ленте.
func (s *Service) StoreArticles(ctx context.Context, in StoreInput) ([]models.StoredArticle, error) {
	const op = "service/feed/StoreArticles"

	in.UserID = strings.TrimSpace(in.UserID)
	in.TopicID = strings.TrimSpace(in.TopicID)
	in.TopicLabel = strings.TrimSpace(in.TopicLabel)

	lg := log.From(ctx).With(
		slog.String("op", op),
		slog.String("user_id", in.UserID),
		slog.String("topic_id", in.TopicID),
	)

	switch {
	case in.UserID == "":
		lg.Warn("store_invalid_argument", slog.String("reason", "empty user_id"))
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	case in.TopicID == "" || in.TopicLabel == "":
		lg.Warn("store_invalid_argument", slog.String("reason", "empty topic"))
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	case len(in.Articles) == 0:
		lg.Warn("store_invalid_argument", slog.String("reason", "no articles"))
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	articles := normalizer.NormalizeAll(in.Articles, s.now())

	stored, err := s.storage.StoreArticles(ctx, in.UserID, articles, in.TopicID, in.TopicLabel)
	s.metrics.ArticlesStored(len(stored))
	if err != nil {
		lg.Error("store_failed",
			slog.Int("stored_before_failure", len(stored)),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	lg.Info("store_ok", slog.Int("count", len(stored)))

	return stored, nil
}

// StoreArticle — сохранение одиночной записи.
func (s *Service) StoreArticle(ctx context.Context, userID string, article json.RawMessage, topicID, topicLabel string) (*models.StoredArticle, error) {
	stored, err := s.StoreArticles(ctx, StoreInput{
		UserID:     userID,
		TopicID:    topicID,
		TopicLabel: topicLabel,
		Articles:   []json.RawMessage{article},
	})
	if err != nil {
		return nil, err
	}

	return &stored[0], nil
}

// Feed — лента пользователя по фильтру, сначала свежие.
//
// Limit: 0 -> вся лента без ограничения, больше cfg.Limits.Max -> cfg.Limits.Max.
//
// Поведение/ошибки:
//   - ErrInvalidArgument — пустой userID, отрицательный limit или fromDate > toDate;
//   - ErrInternal — ошибка стораджа.
func (s *Service) Feed(ctx context.Context, userID string, f models.FeedFilter) ([]models.StoredArticle, error) {
	const op = "service/feed/Feed"

	userID = strings.TrimSpace(userID)
	lg := log.From(ctx).With(slog.String("op", op), slog.String("user_id", userID))

	if userID == "" || f.Limit < 0 {
		lg.Warn("feed_invalid_argument")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if err := filter.Validate(f); err != nil {
		lg.Warn("feed_invalid_filter", slog.String("from", f.FromDate), slog.String("to", f.ToDate))
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	f.Limit = s.normalizeLimit(f.Limit)

	items, err := s.storage.QueryArticles(ctx, userID, f)
	if err != nil {
		lg.Error("feed_query_failed", slog.String("err", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	lg.Debug("feed_query_ok", slog.Int("count", len(items)))

	return items, nil
}

func (s *Service) normalizeLimit(limit int) int {
	if limit == 0 {
		return 0
	}

	if ceil := s.cfg.Limits.Max; ceil > 0 && limit > ceil {
		limit = ceil
	}

	return limit
}

// ToggleFavorite — выставляет признак избранного.
//
// Поведение/ошибки:
//   - ErrInvalidArgument — пустой userID или id;
//   - ErrNotFound — статьи нет в ленте пользователя;
//   - ErrInternal — иные ошибки стораджа.
func (s *Service) ToggleFavorite(ctx context.Context, userID, id string, value bool) (models.FavoriteResult, error) {
	const op = "service/feed/ToggleFavorite"

	userID, id = strings.TrimSpace(userID), strings.TrimSpace(id)
	lg := log.From(ctx).With(slog.String("op", op), slog.String("user_id", userID), slog.String("id", id))

	if userID == "" || id == "" {
		lg.Warn("toggle_favorite_invalid_argument")
		return models.FavoriteResult{}, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if err := s.storage.SetFavorite(ctx, userID, id, value); err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("toggle_favorite_not_found")
			return models.FavoriteResult{}, fmt.Errorf("%s: %w", op, ErrNotFound)
		default:
			lg.Error("toggle_favorite_failed", slog.String("err", err.Error()))
			return models.FavoriteResult{}, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	return models.FavoriteResult{Success: true, IsFavorite: value}, nil
}

// DeleteArticle — удаляет статью из ленты безвозвратно.
func (s *Service) DeleteArticle(ctx context.Context, userID, id string) error {
	const op = "service/feed/DeleteArticle"

	userID, id = strings.TrimSpace(userID), strings.TrimSpace(id)
	lg := log.From(ctx).With(slog.String("op", op), slog.String("user_id", userID), slog.String("id", id))

	if userID == "" || id == "" {
		lg.Warn("delete_article_invalid_argument")
		return fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if err := s.storage.DeleteArticle(ctx, userID, id); err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("delete_article_not_found")
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		default:
			lg.Error("delete_article_failed", slog.String("err", err.Error()))
			return fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	return nil
}

// Stats — агрегаты ленты пользователя.
func (s *Service) Stats(ctx context.Context, userID string) (*models.Stats, error) {
	const op = "service/feed/Stats"

	userID = strings.TrimSpace(userID)
	lg := log.From(ctx).With(slog.String("op", op), slog.String("user_id", userID))

	if userID == "" {
		lg.Warn("stats_invalid_argument")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	st, err := s.storage.Stats(ctx, userID)
	if err != nil {
		lg.Error("stats_failed", slog.String("err", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return st, nil
}
