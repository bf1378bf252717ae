// fetcher выполняет поиск новостей сразу по нескольким темам.
//
// Поиск по каждой теме идёт в отдельной горутине, все поиски стартуют сразу.
// Необязательный предел maxConcurrent (по умолчанию выключен) ограничивает их число.
// Ошибка одной темы не отменяет остальные: она попадает в TopicResult.Err,
// а сам вызов завершается ошибкой только при глобальной проблеме (нет конфигурации).
package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/BoalRolo/newsdotai/internal/metrics"
	"github.com/BoalRolo/newsdotai/internal/models"
	"github.com/BoalRolo/newsdotai/internal/newsapi"
	"github.com/BoalRolo/newsdotai/internal/normalizer"
	"github.com/BoalRolo/newsdotai/pkg/log"
)

// ErrNotConfigured — живой поиск невозможен: нет ключа API.
var ErrNotConfigured = errors.New("news API key is not configured")

// MockSource — статический набор данных mock-режима.
type MockSource interface {
	Lookup(topic string) []json.RawMessage
}

// Fetcher реализует выборку по темам поверх newsapi.Searcher.
type Fetcher struct {
	searcher newsapi.Searcher
	mock     MockSource
	maxConc  int
	metrics  *metrics.Metrics
	now      func() time.Time
}

// Option — функциональная опция Fetcher.
type Option func(*Fetcher)

// WithMetrics подключает prometheus-коллекторы.
func WithMetrics(m *metrics.Metrics) Option {
	return func(f *Fetcher) { f.metrics = m }
}

// WithClock подменяет источник текущего времени (для нормализации).
func WithClock(now func() time.Time) Option {
	return func(f *Fetcher) { f.now = now }
}

// New создаёт Fetcher. maxConcurrent <= 0 снимает ограничение: поиски по всем
// темам стартуют сразу и не ждут друг друга.
func New(searcher newsapi.Searcher, mock MockSource, maxConcurrent int, opts ...Option) *Fetcher {
	if maxConcurrent <= 0 {
		maxConcurrent = -1
	}

	f := &Fetcher{
		searcher: searcher,
		mock:     mock,
		maxConc:  maxConcurrent,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Configured сообщает, доступен ли живой поиск.
func (f *Fetcher) Configured() bool {
	return f.searcher != nil && f.searcher.Configured()
}

// FetchTopics возвращает ровно len(topics) результатов в порядке входа.
func (f *Fetcher) FetchTopics(ctx context.Context, topics []models.TopicRequest, useMock bool) ([]models.TopicResult, error) {
	const op = "fetcher/fetcher/FetchTopics"

	lg := log.From(ctx)

	if !useMock && !f.Configured() {
		lg.Warn("fetch_not_configured", slog.String("op", op))
		return nil, fmt.Errorf("%s: %w", op, ErrNotConfigured)
	}

	results := make([]models.TopicResult, len(topics))
	now := f.now()

	if useMock {
		for i, t := range topics {
			results[i] = f.fromMock(t, now)
		}

		lg.Debug("fetch_mock_ok", slog.String("op", op), slog.Int("topics", len(topics)))
		return results, nil
	}

	var g errgroup.Group
	g.SetLimit(f.maxConc)

	for i, t := range topics {
		g.Go(func() error {
			results[i] = f.fromSearch(ctx, t, now)
			return nil
		})
	}

	_ = g.Wait()

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}

	lg.Info("fetch_topics_done",
		slog.String("op", op),
		slog.Int("topics", len(topics)),
		slog.Int("failed", failed),
	)

	return results, nil
}

func (f *Fetcher) fromMock(t models.TopicRequest, now time.Time) models.TopicResult {
	var raws []json.RawMessage
	if f.mock != nil {
		raws = f.mock.Lookup(strings.ToLower(t.Topic))
	}
	f.metrics.TopicFetched(metrics.ResultMock, 0)

	return models.TopicResult{
		Label:    t.Label,
		Topic:    t.Topic,
		Articles: normalizer.NormalizeAll(raws, now),
	}
}

func (f *Fetcher) fromSearch(ctx context.Context, t models.TopicRequest, now time.Time) models.TopicResult {
	const op = "fetcher/fetcher/fromSearch"

	res := models.TopicResult{Label: t.Label, Topic: t.Topic, Articles: []models.Article{}}

	start := time.Now()
	resp, err := f.searcher.Search(ctx, newsapi.SearchParams{Query: t.Label})
	took := time.Since(start)

	if err != nil {
		f.metrics.TopicFetched(metrics.ResultError, took)
		log.From(ctx).Warn("topic_fetch_failed",
			slog.String("op", op),
			slog.String("label", t.Label),
			slog.String("err", err.Error()),
		)

		res.Err = err
		return res
	}

	f.metrics.TopicFetched(metrics.ResultOK, took)
	res.Articles = normalizer.NormalizeAll(resp.Results, now)

	return res
}
