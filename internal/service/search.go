package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/BoalRolo/newsdotai/pkg/log"
)

// Search — проксирует поисковый запрос во внешний API с серверным ключом.
//
// Поведение/ошибки:
//   - ErrNotConfigured — ключ не задан;
//   - context.Canceled / context.DeadlineExceeded: отмена или дедлайн вызывающего;
//   - ErrUpstream — ошибка внешнего API (исходная ошибка доступна через errors.Is).
func (s *Service) Search(ctx context.Context, query url.Values) (json.RawMessage, error) {
	const op = "service/search/Search"

	lg := log.From(ctx).With(slog.String("op", op), slog.String("q", query.Get("q")))

	if s.search == nil || !s.search.Configured() {
		lg.Warn("search_not_configured")
		return nil, fmt.Errorf("%s: %w", op, ErrNotConfigured)
	}

	body, err := s.search.Proxy(ctx, query)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			lg.Warn("search_canceled", slog.String("err", err.Error()))
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		lg.Warn("search_upstream_failed", slog.String("err", err.Error()))
		return nil, fmt.Errorf("%s: %w: %w", op, ErrUpstream, err)
	}

	return body, nil
}
