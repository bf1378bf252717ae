package newsapi

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-pkgz/requester/middleware"
	"github.com/samber/lo"

	"github.com/BoalRolo/newsdotai/pkg/log"
)

// secretParams — query-параметры, которые не попадают в лог.
var secretParams = []string{"apikey", "apiKey", "api_key"}

// loggingRoundTripper пишет в лог каждый исходящий запрос к API.
// Логгер берётся из контекста запроса, ключ API маскируется.
func loggingRoundTripper(level slog.Level) middleware.RoundTripperHandler {
	return func(next http.RoundTripper) http.RoundTripper {
		return middleware.RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			lg := log.From(req.Context())
			target := maskURL(req.URL)

			start := time.Now()
			resp, err := next.RoundTrip(req)
			elapsed := time.Since(start)

			attrs := []slog.Attr{
				slog.String("method", req.Method),
				slog.String("url", target),
				slog.Duration("elapsed", elapsed),
			}

			if err != nil {
				lg.LogAttrs(req.Context(), slog.LevelWarn, "news_api_request_failed",
					append(attrs, slog.String("err", err.Error()))...)
				return resp, err
			}

			lg.LogAttrs(req.Context(), level, "news_api_response",
				append(attrs, slog.Int("status", resp.StatusCode))...)

			return resp, nil
		})
	}
}

func maskURL(u *url.URL) string {
	if u == nil {
		return ""
	}

	masked := *u
	q := masked.Query()
	for key := range q {
		if lo.Contains(secretParams, key) {
			q.Set(key, "***")
		}
	}
	masked.RawQuery = q.Encode()

	return strings.TrimSuffix(masked.String(), "?")
}
