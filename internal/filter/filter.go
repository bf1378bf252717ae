// filter переводит models.FeedFilter в предикаты MongoDB для ленты пользователя.
//
// Все предикаты объединяются по AND, лента всегда ограничена владельцем (user_id).
// Тема фильтруется только по topic_id; topic_label используется лишь для отображения и статистики.
package filter

import (
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/BoalRolo/newsdotai/internal/models"
	"github.com/BoalRolo/newsdotai/internal/normalizer"
)

// Имена полей документа статьи.
const (
	FieldID          = "_id"
	FieldUserID      = "user_id"
	FieldTopicID     = "topic_id"
	FieldTopicLabel  = "topic_label"
	FieldIsFavorite  = "is_favorite"
	FieldPublishedAt = "published_at"
	FieldKeywords    = "keywords"
	FieldCategory    = "category"
	FieldLanguage    = "language"
	FieldCreatedAt   = "created_at"
	FieldUpdatedAt   = "updated_at"
)

// ErrInvalidFilter — противоречивые значения фильтра.
var ErrInvalidFilter = errors.New("invalid filter")

// Validate отклоняет диапазон дат с fromDate > toDate.
func Validate(f models.FeedFilter) error {
	from, to := lowerBound(f.FromDate), upperBound(f.ToDate)
	if from != "" && to != "" && from > to {
		return ErrInvalidFilter
	}

	return nil
}

// ToQuery строит документ запроса. Пустые значения фильтра игнорируются.
func ToQuery(userID string, f models.FeedFilter) bson.D {
	q := bson.D{{Key: FieldUserID, Value: userID}}

	if v := strings.TrimSpace(f.TopicID); v != "" {
		q = append(q, bson.E{Key: FieldTopicID, Value: v})
	}

	if f.IsFavorite != nil {
		q = append(q, bson.E{Key: FieldIsFavorite, Value: *f.IsFavorite})
	}

	rng := bson.D{}
	if v := lowerBound(f.FromDate); v != "" {
		rng = append(rng, bson.E{Key: "$gte", Value: v})
	}
	if v := upperBound(f.ToDate); v != "" {
		rng = append(rng, bson.E{Key: "$lte", Value: v})
	}
	if len(rng) > 0 {
		q = append(q, bson.E{Key: FieldPublishedAt, Value: rng})
	}

	// Для поля-массива равенство означает «содержит элемент».
	if v := strings.TrimSpace(f.Keywords); v != "" {
		q = append(q, bson.E{Key: FieldKeywords, Value: v})
	}

	if v := strings.TrimSpace(f.Category); v != "" {
		q = append(q, bson.E{Key: FieldCategory, Value: v})
	}

	if v := strings.TrimSpace(f.Language); v != "" {
		q = append(q, bson.E{Key: FieldLanguage, Value: v})
	}

	return q
}

// Sort — порядок ленты: сначала свежие, при равенстве дат по _id убыванию.
func Sort() bson.D {
	return bson.D{
		{Key: FieldPublishedAt, Value: -1},
		{Key: FieldID, Value: -1},
	}
}

const dateOnly = "2006-01-02"

// lowerBound приводит границу к формату published_at.
// Дата без времени означает начало суток.
func lowerBound(v string) string {
	return bound(v, 0)
}

// upperBound — то же для верхней границы: дата без времени означает конец суток.
func upperBound(v string) string {
	return bound(v, 24*time.Hour-time.Millisecond)
}

func bound(v string, dayOffset time.Duration) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}

	if t, err := time.Parse(dateOnly, v); err == nil {
		return normalizer.FormatTime(t.Add(dayOffset))
	}

	if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
		return normalizer.FormatTime(t)
	}

	return v
}
