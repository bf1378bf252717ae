package mongo

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/BoalRolo/newsdotai/internal/filter"
	"github.com/BoalRolo/newsdotai/internal/models"
	"github.com/BoalRolo/newsdotai/internal/storage"
)

var _ storage.Storage = (*Mongo)(nil)

// StoreArticles вставляет статьи по одной, без транзакции.
// При ошибке возвращаются уже вставленные записи вместе с ошибкой.
func (m *Mongo) StoreArticles(ctx context.Context, userID string, articles []models.Article, topicID, topicLabel string) ([]models.StoredArticle, error) {
	const op = "storage/mongo/StoreArticles"

	out := make([]models.StoredArticle, 0, len(articles))
	for _, a := range articles {
		doc := newArticleDoc(userID, topicID, topicLabel, a, toMS(m.now()))

		res, err := m.articles.InsertOne(ctx, doc)
		if err != nil {
			return out, fmt.Errorf("%s: insert: %w", op, err)
		}

		oid, ok := res.InsertedID.(primitive.ObjectID)
		if !ok {
			return out, fmt.Errorf("%s: inserted id type", op)
		}

		doc.ID = oid
		out = append(out, doc.toModel())
	}

	return out, nil
}

// QueryArticles возвращает статьи пользователя по фильтру.
// Сортировка: published_at DESC, _id DESC. Limit <= 0 снимает ограничение.
func (m *Mongo) QueryArticles(ctx context.Context, userID string, f models.FeedFilter) ([]models.StoredArticle, error) {
	const op = "storage/mongo/QueryArticles"

	findOpts := options.Find().SetSort(filter.Sort())
	if f.Limit > 0 {
		findOpts.SetLimit(int64(f.Limit))
	}

	cur, err := m.articles.Find(ctx, filter.ToQuery(userID, f), findOpts)
	if err != nil {
		return nil, fmt.Errorf("%s: find: %w", op, err)
	}
	defer cur.Close(ctx)

	items := []models.StoredArticle{}
	for cur.Next(ctx) {
		var doc articleDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%s: decode: %w", op, err)
		}

		items = append(items, doc.toModel())
	}

	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s: cursor: %w", op, err)
	}

	return items, nil
}

// SetFavorite выставляет is_favorite. Повторный вызов с тем же значением не ошибка.
// Некорректный формат id трактуется как «нет такой записи».
func (m *Mongo) SetFavorite(ctx context.Context, userID, id string, value bool) error {
	const op = "storage/mongo/SetFavorite"

	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	res, err := m.articles.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: oid}, {Key: "user_id", Value: userID}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "is_favorite", Value: value},
			{Key: "updated_at", Value: toMS(m.now())},
		}}},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// DeleteArticle удаляет статью пользователя.
func (m *Mongo) DeleteArticle(ctx context.Context, userID, id string) error {
	const op = "storage/mongo/DeleteArticle"

	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	res, err := m.articles.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}, {Key: "user_id", Value: userID}})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// statsRow — строка агрегации по topic_label.
type statsRow struct {
	Label     string `bson:"_id"`
	Count     int    `bson:"count"`
	Favorites int    `bson:"favorites"`
}

// Stats группирует ленту пользователя по topic_label.
func (m *Mongo) Stats(ctx context.Context, userID string) (*models.Stats, error) {
	const op = "storage/mongo/Stats"

	pipeline := bson.A{
		bson.D{{Key: "$match", Value: bson.D{{Key: "user_id", Value: userID}}}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$topic_label"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "favorites", Value: bson.D{{Key: "$sum", Value: bson.D{
				{Key: "$cond", Value: bson.A{"$is_favorite", 1, 0}},
			}}}},
		}}},
	}

	cur, err := m.articles.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("%s: aggregate: %w", op, err)
	}
	defer cur.Close(ctx)

	stats := &models.Stats{Topics: map[string]int{}}
	for cur.Next(ctx) {
		var row statsRow
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("%s: decode: %w", op, err)
		}

		stats.Total += row.Count
		stats.Favorites += row.Favorites
		stats.Topics[row.Label] += row.Count
	}

	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s: cursor: %w", op, err)
	}

	return stats, nil
}
