package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/samber/lo"

	"github.com/BoalRolo/newsdotai/internal/models"
	"github.com/BoalRolo/newsdotai/internal/storage"
	"github.com/BoalRolo/newsdotai/pkg/log"
)

// TopicInput — создание или правка темы.
// AllowMock разрешает mock-теги в качестве категории.
type TopicInput struct {
	ID        string
	UserID    string
	Label     string
	Topic     string
	AllowMock bool
}

func (in *TopicInput) normalize() {
	in.ID = strings.TrimSpace(in.ID)
	in.UserID = strings.TrimSpace(in.UserID)
	in.Label = strings.TrimSpace(in.Label)
	in.Topic = strings.TrimSpace(in.Topic)
}

// AddTopic — создаёт тему пользователя.
//
// Валидация:
//   - UserID и Label непустые после TrimSpace;
//   - Topic — одна из models.Categories (или mock-тег при AllowMock).
//
// Поведение/ошибки:
//   - ErrConflict — label уже занят (без учёта регистра);
//   - ErrInternal — иные ошибки стораджа.
func (s *Service) AddTopic(ctx context.Context, in TopicInput) (*models.Topic, error) {
	const op = "service/topics/AddTopic"

	in.normalize()
	lg := log.From(ctx).With(slog.String("op", op), slog.String("user_id", in.UserID), slog.String("label", in.Label))

	if err := validateTopic(in); err != nil {
		lg.Warn("add_topic_invalid_argument", slog.String("reason", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if err := s.checkLabelFree(ctx, in.UserID, in.Label, ""); err != nil {
		lg.Warn("add_topic_rejected", slog.String("err", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	topic, err := s.storage.CreateTopic(ctx, models.Topic{UserID: in.UserID, Label: in.Label, Topic: in.Topic})
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrConflict):
			lg.Warn("add_topic_conflict")
			return nil, fmt.Errorf("%s: %w", op, ErrConflict)
		default:
			lg.Error("add_topic_failed", slog.String("err", err.Error()))
			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	return topic, nil
}

// EditTopic — меняет label и категорию темы.
//
// Поведение/ошибки:
//   - ErrInvalidArgument — как в AddTopic, плюс пустой ID;
//   - ErrNotFound — темы нет у пользователя;
//   - ErrConflict — новый label занят другой темой.
func (s *Service) EditTopic(ctx context.Context, in TopicInput) (*models.Topic, error) {
	const op = "service/topics/EditTopic"

	in.normalize()
	lg := log.From(ctx).With(slog.String("op", op), slog.String("user_id", in.UserID), slog.String("id", in.ID))

	if in.ID == "" {
		lg.Warn("edit_topic_invalid_argument", slog.String("reason", "empty id"))
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if err := validateTopic(in); err != nil {
		lg.Warn("edit_topic_invalid_argument", slog.String("reason", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if err := s.checkLabelFree(ctx, in.UserID, in.Label, in.ID); err != nil {
		lg.Warn("edit_topic_rejected", slog.String("err", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	topic, err := s.storage.UpdateTopic(ctx, models.Topic{ID: in.ID, UserID: in.UserID, Label: in.Label, Topic: in.Topic})
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("edit_topic_not_found")
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		case errors.Is(err, storage.ErrConflict):
			lg.Warn("edit_topic_conflict")
			return nil, fmt.Errorf("%s: %w", op, ErrConflict)
		default:
			lg.Error("edit_topic_failed", slog.String("err", err.Error()))
			return nil, fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	return topic, nil
}

// DeleteTopic — удаляет тему; сохранённые по ней новости остаются в ленте.
func (s *Service) DeleteTopic(ctx context.Context, userID, id string) error {
	const op = "service/topics/DeleteTopic"

	userID, id = strings.TrimSpace(userID), strings.TrimSpace(id)
	lg := log.From(ctx).With(slog.String("op", op), slog.String("user_id", userID), slog.String("id", id))

	if userID == "" || id == "" {
		lg.Warn("delete_topic_invalid_argument")
		return fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if err := s.storage.DeleteTopic(ctx, userID, id); err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("delete_topic_not_found")
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		default:
			lg.Error("delete_topic_failed", slog.String("err", err.Error()))
			return fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	return nil
}

// Topics — темы пользователя, сначала новые.
func (s *Service) Topics(ctx context.Context, userID string) ([]models.Topic, error) {
	const op = "service/topics/Topics"

	userID = strings.TrimSpace(userID)
	lg := log.From(ctx).With(slog.String("op", op), slog.String("user_id", userID))

	if userID == "" {
		lg.Warn("topics_invalid_argument")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	items, err := s.storage.ListTopics(ctx, userID)
	if err != nil {
		lg.Error("topics_failed", slog.String("err", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return items, nil
}

func validateTopic(in TopicInput) error {
	switch {
	case in.UserID == "":
		return errors.New("empty user_id")
	case in.Label == "":
		return errors.New("empty label")
	case !models.IsKnownCategory(in.Topic, in.AllowMock):
		return fmt.Errorf("unknown topic %q", in.Topic)
	}

	return nil
}

// checkLabelFree — предварительная проверка уникальности label.
// Окончательно её гарантирует уникальный индекс хранилища.
func (s *Service) checkLabelFree(ctx context.Context, userID, label, exceptID string) error {
	existing, err := s.storage.ListTopics(ctx, userID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}

	taken := lo.ContainsBy(existing, func(t models.Topic) bool {
		return t.ID != exceptID && strings.EqualFold(strings.TrimSpace(t.Label), label)
	})
	if taken {
		return ErrConflict
	}

	return nil
}
