// service содержит бизнес-логику newsdotai: живую выдачу по темам,
// ленту сохранённых новостей, темы пользователя и прокси поиска.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"time"

	"github.com/BoalRolo/newsdotai/internal/aggregation"
	"github.com/BoalRolo/newsdotai/internal/config"
	"github.com/BoalRolo/newsdotai/internal/fetcher"
	"github.com/BoalRolo/newsdotai/internal/metrics"
	"github.com/BoalRolo/newsdotai/internal/models"
	"github.com/BoalRolo/newsdotai/internal/storage"
)

var (
	// ErrNotFound — сущность отсутствует в хранилище.
	ErrNotFound = errors.New("not found")
	// ErrConflict — label темы уже занят.
	ErrConflict = errors.New("conflict")
	// ErrInvalidArgument — неверные входные параметры запроса к сервису.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotConfigured — живой поиск невозможен без ключа API (тот же sentinel, что у fetcher).
	ErrNotConfigured = fetcher.ErrNotConfigured
	// ErrUpstream — поисковый API вернул ошибку.
	ErrUpstream = errors.New("upstream")
	// ErrInternal — внутренняя ошибка (стораж/БД/контекст/и т.д.).
	ErrInternal = errors.New("internal")
)

// TopicFetcher — выборка новостей по нескольким темам.
type TopicFetcher interface {
	FetchTopics(ctx context.Context, topics []models.TopicRequest, useMock bool) ([]models.TopicResult, error)
	Configured() bool
}

// SearchProxy — прямой поиск с подстановкой серверного ключа.
type SearchProxy interface {
	Proxy(ctx context.Context, query url.Values) (json.RawMessage, error)
	Configured() bool
}

// Service — описывает бизнес-логику newsdotai.
type Service struct {
	storage storage.Storage
	fetcher TopicFetcher
	search  SearchProxy
	live    *aggregation.Registry
	metrics *metrics.Metrics
	cfg     config.Config
	now     func() time.Time
}

// Option — функциональная опция Service.
type Option func(*Service)

// WithMetrics подключает prometheus-коллекторы.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithClock подменяет источник текущего времени.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New создает новый экземпляр Service.
func New(storage storage.Storage, fetcher TopicFetcher, search SearchProxy, cfg config.Config, opts ...Option) *Service {
	s := &Service{
		storage: storage,
		fetcher: fetcher,
		search:  search,
		live:    aggregation.NewRegistry(cfg.Sessions.TTL, cfg.Sessions.Max),
		cfg:     cfg,
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Ping проверяет готовность хранилища.
func (s *Service) Ping(ctx context.Context) error {
	return s.storage.Ping(ctx)
}
