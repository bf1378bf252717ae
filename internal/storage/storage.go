// storage определяет контракты доступа к БД для ленты и тем пользователя.
package storage

import (
	"context"
	"errors"

	"github.com/BoalRolo/newsdotai/internal/models"
)

var (
	// ErrNotFound — сущность отсутствует в хранилище (или принадлежит другому пользователю).
	ErrNotFound = errors.New("not found")
	// ErrConflict — конфликт уникальности (label темы в пределах пользователя).
	ErrConflict = errors.New("conflict")
)

// FeedStorage описывает ленту сохранённых статей. Все операции ограничены userID.
type FeedStorage interface {
	// StoreArticles сохраняет статьи по одной; атомарность пачки не гарантируется:
	// при ошибке уже вставленные документы остаются.
	// ID, IsFavorite=false, CreatedAt/UpdatedAt выставляет хранилище.
	StoreArticles(ctx context.Context, userID string, articles []models.Article, topicID, topicLabel string) ([]models.StoredArticle, error)
	// QueryArticles возвращает статьи по фильтру, сначала свежие (published_at DESC).
	QueryArticles(ctx context.Context, userID string, filter models.FeedFilter) ([]models.StoredArticle, error)
	// SetFavorite выставляет признак избранного; ErrNotFound, если статьи нет.
	SetFavorite(ctx context.Context, userID, id string, value bool) error
	// DeleteArticle удаляет статью безвозвратно; ErrNotFound, если статьи нет.
	DeleteArticle(ctx context.Context, userID, id string) error
	// Stats считает агрегаты по ленте пользователя.
	Stats(ctx context.Context, userID string) (*models.Stats, error)
}

// TopicStorage описывает темы пользователя.
type TopicStorage interface {
	// CreateTopic создаёт тему; ErrConflict при совпадении label без учёта регистра.
	CreateTopic(ctx context.Context, topic models.Topic) (*models.Topic, error)
	// UpdateTopic меняет label/topic; ErrNotFound или ErrConflict.
	UpdateTopic(ctx context.Context, topic models.Topic) (*models.Topic, error)
	// DeleteTopic удаляет тему; ErrNotFound, если её нет.
	DeleteTopic(ctx context.Context, userID, id string) error
	// ListTopics возвращает темы пользователя, сначала новые (created_at DESC).
	ListTopics(ctx context.Context, userID string) ([]models.Topic, error)
}

// Storage задаёт полный контракт хранилища.
type Storage interface {
	FeedStorage
	TopicStorage
	// Ping проверяет доступность БД (readiness).
	Ping(ctx context.Context) error
	// Close закрывает соединения/ресурсы хранилища.
	Close(ctx context.Context) error
}
