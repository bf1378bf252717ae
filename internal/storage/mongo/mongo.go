package mongo

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/BoalRolo/newsdotai/internal/config"
)

const (
	articlesCollection = "articles"
	topicsCollection   = "topics"
	defaultDBName      = "newsdotai"
)

// Mongo - тонкий адаптер для подключения и коллекций MongoDB.
type Mongo struct {
	client   *mongodriver.Client
	db       *mongodriver.Database
	articles *mongodriver.Collection
	topics   *mongodriver.Collection
	now      func() time.Time
}

// New подключается к MongoDB, проверяет его, подготавливает коллекции и обеспечивает индексацию.
func New(ctx context.Context, cfg *config.Config) (*Mongo, error) {
	if cfg == nil {
		return nil, fmt.Errorf("mongo: nil config")
	}

	if cfg.DB.URL == "" {
		return nil, fmt.Errorf("mongo: empty cfg.DB.URL")
	}

	cli, err := mongodriver.Connect(ctx, options.Client().ApplyURI(cfg.DB.URL))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := cli.Ping(ctx, readpref.Primary()); err != nil {
		_ = cli.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := cli.Database(databaseFromURI(cfg.DB.URL))

	m := &Mongo{
		client:   cli,
		db:       db,
		articles: db.Collection(articlesCollection),
		topics:   db.Collection(topicsCollection),
		now:      time.Now,
	}

	if err := m.ensureIndexes(ctx); err != nil {
		_ = m.Close(ctx)
		return nil, err
	}

	return m, nil
}

// Close закрывает соединение.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// Ping проверяет доступность primary.
func (m *Mongo) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

// ensureIndexes создаёт индексы ленты и тем.
// - лента: user_id + published_at(desc), user_id + topic_id, user_id + is_favorite;
// - темы: уникальность label без учёта регистра в пределах пользователя, список по created_at(desc).
func (m *Mongo) ensureIndexes(ctx context.Context) error {
	articleIdx := []mongodriver.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "published_at", Value: -1}, {Key: "_id", Value: -1}},
			Options: options.Index().SetName("user_published_desc"),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "topic_id", Value: 1}},
			Options: options.Index().SetName("user_topic"),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "is_favorite", Value: 1}},
			Options: options.Index().SetName("user_favorite"),
		},
	}

	if _, err := m.articles.Indexes().CreateMany(ctx, articleIdx); err != nil {
		return fmt.Errorf("mongo ensure article indexes: %w", err)
	}

	topicIdx := []mongodriver.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "label_lower", Value: 1}},
			Options: options.Index().SetName("user_label_unique").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("user_created_desc"),
		},
	}

	if _, err := m.topics.Indexes().CreateMany(ctx, topicIdx); err != nil {
		return fmt.Errorf("mongo ensure topic indexes: %w", err)
	}

	return nil
}

// toMS — MongoDB DateTime хранит миллисекунды.
func toMS(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

// databaseFromURI извлекает имя базы данных из URI-пути mongodb.
// Если оно отсутствует или не поддается расшифровке, возвращает значение по умолчанию.
func databaseFromURI(uri string) string {
	u, err := url.Parse(uri)
	if err == nil {
		if name := strings.Trim(u.Path, "/"); name != "" {
			return name
		}
	}

	return defaultDBName
}
