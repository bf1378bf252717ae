// aggregation хранит «живую» выдачу по темам для одного пользователя.
//
// State — упорядоченный список TopicWithNews, который проходит жизненный цикл
// StartFetch -> CompleteFetch | FailAll, либо сбрасывается Clear.
// Каждый StartFetch/Clear увеличивает поколение; завершение устаревшего
// поколения отбрасывается без изменений.
package aggregation

import (
	"sync"

	"github.com/BoalRolo/newsdotai/internal/models"
	"github.com/BoalRolo/newsdotai/internal/newsapi"
)

// State — потокобезопасное состояние выдачи.
type State struct {
	mu      sync.RWMutex
	gen     uint64
	entries []models.TopicWithNews
}

// NewState создаёт пустое состояние.
func NewState() *State {
	return &State{}
}

// StartFetch заменяет записи заготовками (IsLoading=true, без статей)
// в порядке topics и возвращает номер нового поколения.
func (s *State) StartFetch(topics []models.TopicRequest) uint64 {
	entries := make([]models.TopicWithNews, len(topics))
	for i, t := range topics {
		entries[i] = models.TopicWithNews{
			Label:     t.Label,
			Topic:     t.Topic,
			Articles:  []models.Article{},
			IsLoading: true,
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	s.entries = entries

	return s.gen
}

// CompleteFetch подставляет результаты поколения gen.
// Возвращает false, если поколение устарело.
func (s *State) CompleteFetch(gen uint64, results []models.TopicResult) bool {
	entries := make([]models.TopicWithNews, len(results))
	for i, r := range results {
		articles := r.Articles
		if articles == nil {
			articles = []models.Article{}
		}

		entries[i] = models.TopicWithNews{
			Label:    r.Label,
			Topic:    r.Topic,
			Articles: articles,
		}

		if r.Err != nil {
			entries[i].Error = newsapi.Message(r.Err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		return false
	}

	s.entries = entries

	return true
}

// FailAll помечает все записи поколения gen ошибкой message; статьи не трогает.
func (s *State) FailAll(gen uint64, message string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		return false
	}

	for i := range s.entries {
		s.entries[i].IsLoading = false
		s.entries[i].Error = message
	}

	return true
}

// Clear очищает выдачу; незавершённые выборки становятся устаревшими.
func (s *State) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	s.entries = nil
}

// Generation — текущее поколение.
func (s *State) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.gen
}

// Snapshot возвращает копию записей в порядке подачи тем.
func (s *State) Snapshot() []models.TopicWithNews {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.TopicWithNews, len(s.entries))
	for i, e := range s.entries {
		e.Articles = append([]models.Article(nil), e.Articles...)
		if e.Articles == nil {
			e.Articles = []models.Article{}
		}
		out[i] = e
	}

	return out
}
