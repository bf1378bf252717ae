// models содержит доменные сущности newsdotai.
// Эти типы используются слоями бизнес-логики, хранилища и транспорта.
package models

import "time"

// Source — издатель новости.
type Source struct {
	// Name — название источника, после нормализации всегда непустое.
	Name string
	// URL — сайт источника, может отсутствовать.
	URL string
}

// Article — каноническая новость после нормализации.
//
// Инварианты (обеспечивает normalizer):
//   - Title, URL, PublishedAt и Source.Name непустые;
//   - PublishedAt — строка ISO-8601 (UTC, миллисекунды), если исходное значение удалось разобрать.
type Article struct {
	Title       string
	Description string
	URL         string
	ImageURL    string
	PublishedAt string
	Source      Source
	// Описательные теги переносятся без изменений.
	Category []string
	Keywords []string
	Language string
	Country  []string
}

// StoredArticle — новость, сохранённая в ленту пользователя.
//
// Особенности:
//   - ID — ObjectID MongoDB в hex;
//   - UserID — владелец, чужие записи не видны;
//   - CreatedAt/UpdatedAt проставляет хранилище (UTC).
type StoredArticle struct {
	Article

	ID         string
	TopicID    string
	TopicLabel string
	UserID     string
	IsFavorite bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// FeedFilter — пользовательский набор фильтров ленты.
// Пустое значение поля означает «без ограничения».
type FeedFilter struct {
	TopicID string
	// IsFavorite — трёхзначный флаг, nil означает «без фильтра».
	IsFavorite *bool
	// FromDate/ToDate — включительные границы по PublishedAt (ISO-8601 строки).
	FromDate string
	ToDate   string
	Keywords string
	Category string
	Language string
	// Limit == 0 -> без ограничения; явный limit не больше config.LimitsConfig.Max.
	Limit int
}

// Stats — агрегаты по ленте пользователя.
type Stats struct {
	Total     int
	Favorites int
	// Topics — количество новостей по TopicLabel.
	Topics map[string]int
}

// FavoriteResult — результат переключения избранного.
type FavoriteResult struct {
	Success    bool
	IsFavorite bool
}
