package newsapi

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"
)

//go:embed data/mock_news.json
var mockNewsJSON []byte

// Mock — статическая таблица новостей по тегу темы (в нижнем регистре).
// Не требует конфигурации и никогда не возвращает ошибку.
type Mock struct {
	data map[string][]json.RawMessage
}

// NewMock разбирает встроенный набор данных.
func NewMock() (*Mock, error) {
	var data map[string][]json.RawMessage
	if err := json.Unmarshal(mockNewsJSON, &data); err != nil {
		return nil, fmt.Errorf("newsapi/mock/NewMock: %w", err)
	}

	return &Mock{data: data}, nil
}

// MustMock — NewMock с panic при повреждённом наборе.
func MustMock() *Mock {
	m, err := NewMock()
	if err != nil {
		panic(err)
	}

	return m
}

// Lookup возвращает сырые записи для темы; неизвестная тема даёт nil.
func (m *Mock) Lookup(topic string) []json.RawMessage {
	if m == nil {
		return nil
	}

	recs := m.data[strings.ToLower(strings.TrimSpace(topic))]
	if len(recs) == 0 {
		return nil
	}

	out := make([]json.RawMessage, len(recs))
	copy(out, recs)

	return out
}

// Topics — список доступных mock-тем.
func (m *Mock) Topics() []string {
	if m == nil {
		return nil
	}

	out := lo.Keys(m.data)
	sort.Strings(out)

	return out
}
