package models

import (
	"strings"
	"time"

	"github.com/samber/lo"
)

// Topic — пользовательская пара (label, категория), по label идёт поиск.
type Topic struct {
	ID     string
	UserID string
	// Label уникален в пределах пользователя без учёта регистра.
	Label     string
	Topic     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TopicRequest — тема, переданная на выборку новостей.
type TopicRequest struct {
	Label string
	Topic string
}

// TopicResult — итог поиска по одной теме.
// Err != nil -> Articles пуст, ошибка изолирована в пределах темы.
type TopicResult struct {
	Label    string
	Topic    string
	Articles []Article
	Err      error
}

// TopicWithNews — временное состояние выдачи по теме, в БД не сохраняется.
type TopicWithNews struct {
	Label     string
	Topic     string
	Articles  []Article
	IsLoading bool
	Error     string
}

// Categories — фиксированный набор категорий для живого поиска.
var Categories = []string{"Technology", "Finance", "Sports", "Politics", "Science"}

// MockCategories — теги, для которых есть статические данные mock-режима.
var MockCategories = []string{"sportingcp", "technology", "business", "politics", "entertainment"}

// IsKnownCategory сообщает, допустима ли категория.
// Mock-теги принимаются только при allowMock.
func IsKnownCategory(tag string, allowMock bool) bool {
	tag = strings.TrimSpace(tag)
	if lo.Contains(Categories, tag) {
		return true
	}

	return allowMock && lo.Contains(MockCategories, strings.ToLower(tag))
}
