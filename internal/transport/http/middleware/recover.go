package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/BoalRolo/newsdotai/internal/transport/http/apierrors"
	logctx "github.com/BoalRolo/newsdotai/pkg/log"
)

var errPanic = errors.New("panic in handler")

// Recover перехватывает panic и отвечает 500/internal; детали паники клиенту не отдаются.
// http.ErrAbortHandler пробрасывается дальше: им net/http обрывает соединение.
func Recover() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				logctx.From(r.Context()).
					LogAttrs(r.Context(), slog.LevelError, "panic_recovered",
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
						slog.Any("reason", rec),
					)
				apierrors.WriteError(w, r, errPanic)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
