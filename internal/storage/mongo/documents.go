package mongo

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/BoalRolo/newsdotai/internal/models"
)

// articleDoc — документ коллекции articles.
type articleDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      string             `bson:"user_id"`
	TopicID     string             `bson:"topic_id"`
	TopicLabel  string             `bson:"topic_label"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	URL         string             `bson:"url"`
	ImageURL    string             `bson:"image_url,omitempty"`
	// ISO-8601 UTC строкой: диапазонные фильтры сравнивают строки.
	PublishedAt string    `bson:"published_at"`
	SourceName  string    `bson:"source_name"`
	SourceURL   string    `bson:"source_url,omitempty"`
	Category    []string  `bson:"category,omitempty"`
	Keywords    []string  `bson:"keywords,omitempty"`
	Language    string    `bson:"language,omitempty"`
	Country     []string  `bson:"country,omitempty"`
	IsFavorite  bool      `bson:"is_favorite"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

func newArticleDoc(userID, topicID, topicLabel string, a models.Article, now time.Time) articleDoc {
	return articleDoc{
		UserID:      userID,
		TopicID:     topicID,
		TopicLabel:  topicLabel,
		Title:       a.Title,
		Description: a.Description,
		URL:         a.URL,
		ImageURL:    a.ImageURL,
		PublishedAt: a.PublishedAt,
		SourceName:  a.Source.Name,
		SourceURL:   a.Source.URL,
		Category:    a.Category,
		Keywords:    a.Keywords,
		Language:    a.Language,
		Country:     a.Country,
		IsFavorite:  false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (d articleDoc) toModel() models.StoredArticle {
	return models.StoredArticle{
		Article: models.Article{
			Title:       d.Title,
			Description: d.Description,
			URL:         d.URL,
			ImageURL:    d.ImageURL,
			PublishedAt: d.PublishedAt,
			Source:      models.Source{Name: d.SourceName, URL: d.SourceURL},
			Category:    d.Category,
			Keywords:    d.Keywords,
			Language:    d.Language,
			Country:     d.Country,
		},
		ID:         d.ID.Hex(),
		TopicID:    d.TopicID,
		TopicLabel: d.TopicLabel,
		UserID:     d.UserID,
		IsFavorite: d.IsFavorite,
		CreatedAt:  d.CreatedAt.UTC(),
		UpdatedAt:  d.UpdatedAt.UTC(),
	}
}

// topicDoc — документ коллекции topics.
type topicDoc struct {
	ID     primitive.ObjectID `bson:"_id,omitempty"`
	UserID string             `bson:"user_id"`
	Label  string             `bson:"label"`
	// LabelLower — ключ уникальности.
	LabelLower string    `bson:"label_lower"`
	Topic      string    `bson:"topic"`
	CreatedAt  time.Time `bson:"created_at"`
	UpdatedAt  time.Time `bson:"updated_at"`
}

func labelKey(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

func (d topicDoc) toModel() models.Topic {
	return models.Topic{
		ID:        d.ID.Hex(),
		UserID:    d.UserID,
		Label:     d.Label,
		Topic:     d.Topic,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}
