package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"

	"github.com/BoalRolo/newsdotai/internal/models"
)

// Формат JSON совпадает с клиентским: camelCase, id документа в поле "id".

type sourceDTO struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

type articleDTO struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	PublishedAt string    `json:"publishedAt"`
	Source      sourceDTO `json:"source"`
	Category    []string  `json:"category,omitempty"`
	Keywords    []string  `json:"keywords,omitempty"`
	Language    string    `json:"language,omitempty"`
	Country     []string  `json:"country,omitempty"`
}

type storedArticleDTO struct {
	articleDTO
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	TopicID    string    `json:"topicId"`
	TopicLabel string    `json:"topicLabel"`
	IsFavorite bool      `json:"isFavorite"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type topicWithNewsDTO struct {
	Label     string       `json:"label"`
	Topic     string       `json:"topic"`
	Articles  []articleDTO `json:"articles"`
	IsLoading bool         `json:"isLoading"`
	Error     string       `json:"error,omitempty"`
}

type topicDTO struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Label     string    `json:"label"`
	Topic     string    `json:"topic"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type statsDTO struct {
	Total     int            `json:"total"`
	Favorites int            `json:"favorites"`
	Topics    map[string]int `json:"topics"`
}

type favoriteDTO struct {
	Success    bool `json:"success"`
	IsFavorite bool `json:"isFavorite"`
}

type successDTO struct {
	Success bool `json:"success"`
}

// Запросы.

type storeRequest struct {
	UserID     string          `json:"userId"`
	Articles   json.RawMessage `json:"articles"`
	TopicID    string          `json:"topicId"`
	TopicLabel string          `json:"topicLabel"`
}

type favoriteRequest struct {
	IsFavorite *bool `json:"isFavorite"`
}

type topicRequestDTO struct {
	Label string `json:"label"`
	Topic string `json:"topic"`
}

type fetchRequest struct {
	Topics  []topicRequestDTO `json:"topics"`
	UseMock bool              `json:"useMock"`
}

type topicBody struct {
	Label   string `json:"label"`
	Topic   string `json:"topic"`
	UseMock bool   `json:"useMock"`
}

var errArticlesShape = errors.New("articles must be an object or an array of objects")

// splitArticles принимает одиночный объект или массив объектов.
func splitArticles(raw json.RawMessage) ([]json.RawMessage, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, errArticlesShape
	}

	switch raw[0] {
	case '{':
		return []json.RawMessage{raw}, nil
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, errArticlesShape
		}
		return items, nil
	default:
		return nil, errArticlesShape
	}
}

func articleFromModel(a models.Article) articleDTO {
	return articleDTO{
		Title:       a.Title,
		Description: a.Description,
		URL:         a.URL,
		ImageURL:    a.ImageURL,
		PublishedAt: a.PublishedAt,
		Source:      sourceDTO{Name: a.Source.Name, URL: a.Source.URL},
		Category:    a.Category,
		Keywords:    a.Keywords,
		Language:    a.Language,
		Country:     a.Country,
	}
}

func articlesFromModel(items []models.Article) []articleDTO {
	out := make([]articleDTO, len(items))
	for i, a := range items {
		out[i] = articleFromModel(a)
	}
	return out
}

func storedFromModel(items []models.StoredArticle) []storedArticleDTO {
	out := make([]storedArticleDTO, len(items))
	for i, s := range items {
		out[i] = storedArticleDTO{
			articleDTO: articleFromModel(s.Article),
			ID:         s.ID,
			UserID:     s.UserID,
			TopicID:    s.TopicID,
			TopicLabel: s.TopicLabel,
			IsFavorite: s.IsFavorite,
			CreatedAt:  s.CreatedAt,
			UpdatedAt:  s.UpdatedAt,
		}
	}
	return out
}

func liveFromModel(items []models.TopicWithNews) []topicWithNewsDTO {
	out := make([]topicWithNewsDTO, len(items))
	for i, t := range items {
		out[i] = topicWithNewsDTO{
			Label:     t.Label,
			Topic:     t.Topic,
			Articles:  articlesFromModel(t.Articles),
			IsLoading: t.IsLoading,
			Error:     t.Error,
		}
	}
	return out
}

func topicFromModel(t models.Topic) topicDTO {
	return topicDTO{
		ID:        t.ID,
		UserID:    t.UserID,
		Label:     t.Label,
		Topic:     t.Topic,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
