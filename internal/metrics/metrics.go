// metrics — prometheus-коллекторы прикладного уровня.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Результаты поиска по одной теме.
const (
	ResultOK    = "ok"
	ResultError = "error"
	ResultMock  = "mock"
)

// Metrics — набор коллекторов сервиса. Нулевой указатель допустим: все методы no-op.
type Metrics struct {
	topicFetches  *prometheus.CounterVec
	fetchDuration prometheus.Histogram
	storedArticle prometheus.Counter
}

// New создаёт коллекторы и регистрирует их в reg (если reg != nil).
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		topicFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "newsdotai",
			Name:      "topic_fetch_total",
			Help:      "Topic searches by result.",
		}, []string{"result"}),
		fetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "newsdotai",
			Name:      "topic_fetch_duration_seconds",
			Help:      "Duration of a single topic search.",
			Buckets:   prometheus.DefBuckets,
		}),
		storedArticle: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "newsdotai",
			Name:      "feed_articles_stored_total",
			Help:      "Articles persisted to user feeds.",
		}),
	}

	if reg != nil {
		reg.MustRegister(m.topicFetches, m.fetchDuration, m.storedArticle)
	}

	return m
}

// TopicFetched учитывает один поиск по теме.
func (m *Metrics) TopicFetched(result string, took time.Duration) {
	if m == nil {
		return
	}

	m.topicFetches.WithLabelValues(result).Inc()
	if result != ResultMock {
		m.fetchDuration.Observe(took.Seconds())
	}
}

// ArticlesStored учитывает сохранённые статьи.
func (m *Metrics) ArticlesStored(n int) {
	if m == nil || n <= 0 {
		return
	}

	m.storedArticle.Add(float64(n))
}
