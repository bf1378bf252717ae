package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/BoalRolo/newsdotai/internal/config"
	"github.com/BoalRolo/newsdotai/internal/service"
	"github.com/BoalRolo/newsdotai/internal/transport/http/handlers"
	"github.com/BoalRolo/newsdotai/internal/transport/http/middleware"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger   *slog.Logger
	Timeout  time.Duration
	Auth     config.AuthConfig
	BasePath string // например, "/api"; пустой регистрирует роуты на корне.
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(svc *service.Service, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),            // безопасно ловим паники
		middleware.RequestID(),          // формируем/прокидываем X-Request-Id (до логирования!)
		middleware.Logging(opts.Logger), // кладём request-scoped логгер в контекст и логируем
	)
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout)) // общий дедлайн запроса
	}

	h := handlers.New(svc)

	if opts.BasePath != "" {
		sub := chi.NewRouter()
		registerRoutes(sub, h, opts.Auth)
		root.Mount(opts.BasePath, sub)
		return root
	}

	registerRoutes(root, h, opts.Auth)
	return root
}

// registerRoutes — единая точка регистрации всех REST-эндпойнтов.
func registerRoutes(r chi.Router, h *handlers.Handlers, auth config.AuthConfig) {
	// поиск без привязки к пользователю
	r.Get("/news", h.SearchNews)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Owner(auth, "userId"))

		// лента
		r.Post("/news/store", h.StoreNews)
		r.Get("/news/feed/{userId}", h.Feed)
		r.Patch("/news/favorite/{userId}/{newsId}", h.ToggleFavorite)
		r.Get("/news/stats/{userId}", h.Stats)
		r.Delete("/news/{userId}/{newsId}", h.DeleteNews)

		// живая выдача
		r.Post("/news/fetch/{userId}", h.FetchNews)
		r.Get("/news/live/{userId}", h.LiveNews)
		r.Delete("/news/live/{userId}", h.ClearLive)

		// темы
		r.Get("/topics/{userId}", h.ListTopics)
		r.Post("/topics/{userId}", h.CreateTopic)
		r.Put("/topics/{userId}/{topicId}", h.UpdateTopic)
		r.Delete("/topics/{userId}/{topicId}", h.DeleteTopic)
	})
}
