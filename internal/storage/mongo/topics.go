package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/BoalRolo/newsdotai/internal/models"
	"github.com/BoalRolo/newsdotai/internal/storage"
)

// CreateTopic создаёт тему. Совпадение label (без учёта регистра) у того же
// пользователя ловится уникальным индексом -> storage.ErrConflict.
func (m *Mongo) CreateTopic(ctx context.Context, t models.Topic) (*models.Topic, error) {
	const op = "storage/mongo/CreateTopic"

	now := toMS(m.now())
	doc := topicDoc{
		UserID:     t.UserID,
		Label:      strings.TrimSpace(t.Label),
		LabelLower: labelKey(t.Label),
		Topic:      t.Topic,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	res, err := m.topics.InsertOne(ctx, doc)
	if err != nil {
		if mongodriver.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrConflict)
		}

		return nil, fmt.Errorf("%s: insert: %w", op, err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("%s: inserted id type", op)
	}

	doc.ID = oid
	out := doc.toModel()

	return &out, nil
}

// UpdateTopic меняет label и topic существующей темы пользователя.
func (m *Mongo) UpdateTopic(ctx context.Context, t models.Topic) (*models.Topic, error) {
	const op = "storage/mongo/UpdateTopic"

	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(t.ID))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	var out topicDoc
	err = m.topics.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: oid}, {Key: "user_id", Value: t.UserID}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "label", Value: strings.TrimSpace(t.Label)},
			{Key: "label_lower", Value: labelKey(t.Label)},
			{Key: "topic", Value: t.Topic},
			{Key: "updated_at", Value: toMS(m.now())},
		}}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&out)

	switch {
	case err == nil:
	case errors.Is(err, mongodriver.ErrNoDocuments):
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	case mongodriver.IsDuplicateKeyError(err):
		return nil, fmt.Errorf("%s: %w", op, storage.ErrConflict)
	default:
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	res := out.toModel()

	return &res, nil
}

// DeleteTopic удаляет тему. Сохранённые статьи темы остаются в ленте.
func (m *Mongo) DeleteTopic(ctx context.Context, userID, id string) error {
	const op = "storage/mongo/DeleteTopic"

	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	res, err := m.topics.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}, {Key: "user_id", Value: userID}})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// ListTopics возвращает темы пользователя, сначала новые.
func (m *Mongo) ListTopics(ctx context.Context, userID string) ([]models.Topic, error) {
	const op = "storage/mongo/ListTopics"

	cur, err := m.topics.Find(ctx,
		bson.D{{Key: "user_id", Value: userID}},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: find: %w", op, err)
	}
	defer cur.Close(ctx)

	items := []models.Topic{}
	for cur.Next(ctx) {
		var doc topicDoc
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
