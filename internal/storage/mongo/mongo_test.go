package mongo

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/BoalRolo/newsdotai/internal/config"
	"github.com/BoalRolo/newsdotai/internal/models"
	"github.com/BoalRolo/newsdotai/internal/service"
	"github.com/BoalRolo/newsdotai/internal/storage"
)

// testTimeout — общий дедлайн на операции с БД в тестах.
const testTimeout = 10 * time.Second

// TestMain запускает MongoDB в контейнере один раз на весь пакет тестов.
// Адрес контейнера прокидывается в ENV DATABASE_URL, а каждый тест
// создаёт свою БД с уникальным именем (см. newTestConfig).
func TestMain(m *testing.M) {
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		os.Exit(m.Run())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	req := testcontainers.ContainerRequest{
		Image:        "mongo:7.0",
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor:   wait.ForLog("Waiting for connections").WithStartupTimeout(90 * time.Second),
	}

	mongoC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start mongo testcontainer: %v\n", err)
		os.Exit(1)
	}

	host, err := mongoC.Host(ctx)
	if err != nil {
		_ = mongoC.Terminate(ctx)
		fmt.Fprintf(os.Stderr, "failed to get container host: %v\n", err)
		os.Exit(1)
	}

	port, err := mongoC.MappedPort(ctx, "27017/tcp")
	if err != nil {
		_ = mongoC.Terminate(ctx)
		fmt.Fprintf(os.Stderr, "failed to get mapped port: %v\n", err)
		os.Exit(1)
	}

	_ = os.Setenv("DATABASE_URL", fmt.Sprintf("mongodb://%s:%s", host, port.Port()))

	code := m.Run()

	_ = mongoC.Terminate(context.Background())
	os.Exit(code)
}

// newTestConfig создаёт конфиг с отдельной тестовой БД.
// Без контейнера и без DATABASE_URL интеграционные тесты пропускаются.
func newTestConfig(t *testing.T) *config.Config {
	t.Helper()

	baseURL := os.Getenv("DATABASE_URL")
	if baseURL == "" {
		t.Skip("integration test: set GO_TEST_INTEGRATION=1 or DATABASE_URL")
	}

	dbName := "newsdotai_test_" + uuid.New().String()
	if baseURL[len(baseURL)-1] == '/' {
		baseURL += dbName
	} else {
		baseURL += "/" + dbName
	}

	return &config.Config{DB: config.DBConfig{URL: baseURL}}
}

// mustNewMongo создаёт подключение к тестовой БД и регистрирует очистку по завершении теста.
func mustNewMongo(t *testing.T) *Mongo {
	t.Helper()

	cfg := newTestConfig(t)

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	m, err := New(ctx, cfg)
	require.NoError(t, err, "cannot connect to MongoDB (DATABASE_URL=%s)", cfg.DB.URL)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
		defer cancel()
		_ = m.db.Drop(ctx)
		_ = m.Close(ctx)
	})

	return m
}

func testCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	t.Cleanup(cancel)
	return ctx
}

func article(title, published string) models.Article {
	return models.Article{
		Title:       title,
		Description: "d",
		URL:         "https://x/" + title,
		PublishedAt: published,
		Source:      models.Source{Name: "S"},
		Keywords:    []string{"kw-" + title},
		Category:    []string{"sports"},
		Language:    "english",
	}
}

func ids(items []models.StoredArticle) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func ptr[T any](v T) *T { return &v }

func TestDatabaseFromURI(t *testing.T) {
	t.Parallel()

	require.Equal(t, "feed", databaseFromURI("mongodb://localhost:27017/feed?replicaSet=rs0"))
	require.Equal(t, defaultDBName, databaseFromURI("mongodb://localhost:27017"))
	require.Equal(t, defaultDBName, databaseFromURI("mongodb://localhost:27017/"))
	require.Equal(t, defaultDBName, databaseFromURI("::bad"))
}

func TestNew_NilOrEmptyConfig(t *testing.T) {
	t.Parallel()

	_, err := New(context.Background(), nil)
	require.Error(t, err)

	_, err = New(context.Background(), &config.Config{})
	require.Error(t, err)
}

// TestStoreAndQuery_RoundTripOrderedDesc — сохранённое возвращается целиком, сначала свежие.
func TestStoreAndQuery_RoundTripOrderedDesc(t *testing.T) {
	m := mustNewMongo(t)
	ctx := testCtx(t)

	stored, err := m.StoreArticles(ctx, "u1", []models.Article{
		article("mid", "2025-01-19T20:15:00.000Z"),
		article("new", "2025-01-20T15:30:00.000Z"),
		article("old", "2025-01-18T12:00:00.000Z"),
	}, "t1", "Sporting")
	require.NoError(t, err)
	require.Len(t, stored, 3)

	for _, s := range stored {
		require.NotEmpty(t, s.ID)
		require.Equal(t, "u1", s.UserID)
		require.Equal(t, "t1", s.TopicID)
		require.Equal(t, "Sporting", s.TopicLabel)
		require.False(t, s.IsFavorite)
		require.False(t, s.CreatedAt.IsZero())
		require.Equal(t, s.CreatedAt, s.UpdatedAt)
	}

	// Чужая лента не видна.
	_, err = m.StoreArticles(ctx, "u2", []models.Article{article("foreign", "2025-01-21T00:00:00.000Z")}, "t9", "Other")
	require.NoError(t, err)

	got, err := m.QueryArticles(ctx, "u1", models.FeedFilter{})
	require.NoError(t, err)
	require.Equal(t, []string{stored[1].ID, stored[0].ID, stored[2].ID}, ids(got))
	require.Equal(t, "new", got[0].Title)
	require.Equal(t, []string{"kw-new"}, got[0].Keywords)
	require.Equal(t, "S", got[0].Source.Name)

	limited, err := m.QueryArticles(ctx, "u1", models.FeedFilter{Limit: 2})
	require.NoError(t, err)
	require.Equal(t, []string{stored[1].ID, stored[0].ID}, ids(limited))
}

// TestSetFavorite_Idempotent — повторная установка того же значения не ошибка.
// TestFeed_UnfilteredReturnsEverything — лента без фильтров и без limit возвращает
// все сохранённые записи, даже если их больше, чем предел явного limit.
func TestFeed_UnfilteredReturnsEverything(t *testing.T) {
	m := mustNewMongo(t)
	ctx := testCtx(t)

	const n = 130
	cfg := config.Config{
		Limits:   config.LimitsConfig{Max: 50},
		Sessions: config.SessionsConfig{TTL: time.Minute, Max: 1},
	}
	svc := service.New(m, nil, nil, cfg)

	raws := make([]json.RawMessage, n)
	for i := range raws {
		raws[i] = json.RawMessage(fmt.Sprintf(
			`{"title":"a-%03d","link":"https://x/%d","source_name":"S","pubDate":"2025-01-20 10:%02d:00"}`, i, i, i%60))
	}

	stored, err := svc.StoreArticles(ctx, service.StoreInput{UserID: "u1", TopicID: "t1", TopicLabel: "L", Articles: raws})
	require.NoError(t, err)
	require.Len(t, stored, n)

	all, err := svc.Feed(ctx, "u1", models.FeedFilter{})
	require.NoError(t, err)
	require.ElementsMatch(t, ids(stored), ids(all))

	capped, err := svc.Feed(ctx, "u1", models.FeedFilter{Limit: 1000})
	require.NoError(t, err)
	require.Len(t, capped, 50)
}

func TestSetFavorite_Idempotent(t *testing.T) {
	m := mustNewMongo(t)
	ctx := testCtx(t)

	stored, err := m.StoreArticles(ctx, "u1", []models.Article{article("a", "2025-01-20T00:00:00.000Z")}, "t1", "L")
	require.NoError(t, err)
	id := stored[0].ID

	require.NoError(t, m.SetFavorite(ctx, "u1", id, true))
	require.NoError(t, m.SetFavorite(ctx, "u1", id, true))

	got, err := m.QueryArticles(ctx, "u1", models.FeedFilter{IsFavorite: ptr(true)})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.True(t, got[0].IsFavorite)

	// Чужой пользователь не может менять запись.
	require.ErrorIs(t, m.SetFavorite(ctx, "u2", id, false), storage.ErrNotFound)
}

// TestSetFavoriteAndDelete_NotFound — несуществующий или битый id.
func TestSetFavoriteAndDelete_NotFound(t *testing.T) {
	m := mustNewMongo(t)
	ctx := testCtx(t)

	missing := "65a000000000000000000000"
	require.ErrorIs(t, m.SetFavorite(ctx, "u1", missing, true), storage.ErrNotFound)
	require.ErrorIs(t, m.SetFavorite(ctx, "u1", "not-an-id", true), storage.ErrNotFound)
	require.ErrorIs(t, m.DeleteArticle(ctx, "u1", missing), storage.ErrNotFound)
	require.ErrorIs(t, m.DeleteArticle(ctx, "u1", "not-an-id"), storage.ErrNotFound)
}

// TestDeleteArticle_Hard — удалённая статья исчезает из ленты, повторное удаление ErrNotFound.
func TestDeleteArticle_Hard(t *testing.T) {
	m := mustNewMongo(t)
	ctx := testCtx(t)

	stored, err := m.StoreArticles(ctx, "u1", []models.Article{
		article("a", "2025-01-20T00:00:00.000Z"),
		article("b", "2025-01-19T00:00:00.000Z"),
	}, "t1", "L")
	require.NoError(t, err)

	require.ErrorIs(t, m.DeleteArticle(ctx, "u2", stored[0].ID), storage.ErrNotFound)
	require.NoError(t, m.DeleteArticle(ctx, "u1", stored[0].ID))
	require.ErrorIs(t, m.DeleteArticle(ctx, "u1", stored[0].ID), storage.ErrNotFound)

	got, err := m.QueryArticles(ctx, "u1", models.FeedFilter{})
	require.NoError(t, err)
	require.Equal(t, []string{stored[1].ID}, ids(got))
}

// TestQuery_FilterComposition — isFavorite + диапазон дат дают ровно пересечение условий.
func TestQuery_FilterComposition(t *testing.T) {
	m := mustNewMongo(t)
	ctx := testCtx(t)

	s1, err := m.StoreArticles(ctx, "u1", []models.Article{
		article("in-fav-1", "2025-01-18T12:00:00.000Z"),
		article("in-notfav", "2025-01-19T12:00:00.000Z"),
		article("out-fav-early", "2025-01-10T12:00:00.000Z"),
	}, "t1", "Sporting")
	require.NoError(t, err)

	s2, err := m.StoreArticles(ctx, "u1", []models.Article{
		article("in-fav-2", "2025-01-20T08:00:00.000Z"),
		article("out-fav-late", "2025-01-25T12:00:00.000Z"),
	}, "t2", "Tech")
	require.NoError(t, err)

	for _, id := range []string{s1[0].ID, s1[2].ID, s2[0].ID, s2[1].ID} {
		require.NoError(t, m.SetFavorite(ctx, "u1", id, true))
	}

	got, err := m.QueryArticles(ctx, "u1", models.FeedFilter{
		IsFavorite: ptr(true),
		FromDate:   "2025-01-15",
		ToDate:     "2025-01-20",
	})
	require.NoError(t, err)
	require.Equal(t, []string{s2[0].ID, s1[0].ID}, ids(got))

	byTopic, err := m.QueryArticles(ctx, "u1", models.FeedFilter{TopicID: "t2"})
	require.NoError(t, err)
	require.Equal(t, []string{s2[1].ID, s2[0].ID}, ids(byTopic))

	byKeyword, err := m.QueryArticles(ctx, "u1", models.FeedFilter{Keywords: "kw-in-notfav"})
	require.NoError(t, err)
	require.Equal(t, []string{s1[1].ID}, ids(byKeyword))

	none, err := m.QueryArticles(ctx, "u1", models.FeedFilter{Language: "klingon"})
	require.NoError(t, err)
	require.NotNil(t, none)
	require.Empty(t, none)
}

// TestStats — агрегаты по topic_label.
func TestStats(t *testing.T) {
	m := mustNewMongo(t)
	ctx := testCtx(t)

	empty, err := m.Stats(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, &models.Stats{Topics: map[string]int{}}, empty)

	s1, err := m.StoreArticles(ctx, "u1", []models.Article{
		article("a", "2025-01-18T12:00:00.000Z"),
		article("b", "2025-01-19T12:00:00.000Z"),
	}, "t1", "Sporting")
	require.NoError(t, err)
	_, err = m.StoreArticles(ctx, "u1", []models.Article{article("c", "2025-01-20T12:00:00.000Z")}, "t2", "Tech")
	require.NoError(t, err)
	require.NoError(t, m.SetFavorite(ctx, "u1", s1[0].ID, true))

	st, err := m.Stats(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, 3, st.Total)
	require.Equal(t, 1, st.Favorites)
	require.Equal(t, map[string]int{"Sporting": 2, "Tech": 1}, st.Topics)
}

// TestTopics_CRUD — создание, уникальность label без учёта регистра, список, правка, удаление.
func TestTopics_CRUD(t *testing.T) {
	m := mustNewMongo(t)
	ctx := testCtx(t)

	first, err := m.CreateTopic(ctx, models.Topic{UserID: "u1", Label: " Sporting ", Topic: "Sports"})
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)
	require.Equal(t, "Sporting", first.Label)

	_, err = m.CreateTopic(ctx, models.Topic{UserID: "u1", Label: "sporting", Topic: "Sports"})
	require.ErrorIs(t, err, storage.ErrConflict)

	// Другой пользователь может завести такой же label.
	_, err = m.CreateTopic(ctx, models.Topic{UserID: "u2", Label: "Sporting", Topic: "Sports"})
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	second, err := m.CreateTopic(ctx, models.Topic{UserID: "u1", Label: "AI", Topic: "Technology"})
	require.NoError(t, err)

	list, err := m.ListTopics(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, second.ID, list[0].ID)
	require.Equal(t, first.ID, list[1].ID)

	_, err = m.UpdateTopic(ctx, models.Topic{ID: second.ID, UserID: "u1", Label: "SPORTING", Topic: "Sports"})
	require.ErrorIs(t, err, storage.ErrConflict)

	upd, err := m.UpdateTopic(ctx, models.Topic{ID: second.ID, UserID: "u1", Label: "Machine Learning", Topic: "Science"})
	require.NoError(t, err)
	require.Equal(t, "Machine Learning", upd.Label)
	require.Equal(t, "Science", upd.Topic)
	require.False(t, upd.UpdatedAt.Before(upd.CreatedAt))

	_, err = m.UpdateTopic(ctx, models.Topic{ID: second.ID, UserID: "u2", Label: "x", Topic: "Science"})
	require.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, m.DeleteTopic(ctx, "u1", first.ID))
	require.ErrorIs(t, m.DeleteTopic(ctx, "u1", first.ID), storage.ErrNotFound)
	require.ErrorIs(t, m.DeleteTopic(ctx, "u1", "bad"), storage.ErrNotFound)

	list, err = m.ListTopics(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
}

// TestEnsureIndexes_Created — индексы ленты и тем существуют.
func TestEnsureIndexes_Created(t *testing.T) {
	m := mustNewMongo(t)
	ctx := testCtx(t)

	names := func(cnames ...string) map[string]bool {
		out := map[string]bool{}
		for _, c := range cnames {
			cur, err := m.db.Collection(c).Indexes().List(ctx)
			require.NoError(t, err)

			var specs []struct {
				Name   string `bson:"name"`
				Unique bool   `bson:"unique"`
			}
			require.NoError(t, cur.All(ctx, &specs))
			for _, s := range specs {
				out[s.Name] = s.Unique
			}
		}
		return out
	}(articlesCollection, topicsCollection)

	for _, n := range []string{"user_published_desc", "user_topic", "user_favorite", "user_created_desc"} {
		_, ok := names[n]
		require.True(t, ok, "index %s missing", n)
	}
	require.True(t, names["user_label_unique"])
}
