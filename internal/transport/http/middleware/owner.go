package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BoalRolo/newsdotai/internal/config"
	"github.com/BoalRolo/newsdotai/internal/transport/http/apierrors"
	logctx "github.com/BoalRolo/newsdotai/pkg/log"
)

type ctxKeySubject struct{}

// Owner проверяет, что Bearer-токен провайдера идентификации выдан владельцу
// ресурса: sub токена должен совпасть с URL-параметром param (обычно userId).
//
// Токен — HS256 JWT, подписанный cfg.JWTSecret; при непустом cfg.Issuer
// проверяется iss. Пустой cfg.JWTSecret отключает проверку.
//
// Ошибки: нет/битый/просроченный токен -> 401, чужой sub -> 403.
func Owner(cfg config.AuthConfig, param string) Middleware {
	return func(next http.Handler) http.Handler {
		if cfg.JWTSecret == "" {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lg := logctx.From(r.Context())

			raw, ok := bearer(r.Header.Get("Authorization"))
			if !ok {
				lg.Warn("auth_missing_token", slog.String("path", r.URL.Path))
				apierrors.WriteError(w, r, apierrors.ErrUnauthenticated)
				return
			}

			sub, err := parseSubject(raw, cfg)
			if err != nil {
				lg.Warn("auth_invalid_token", slog.String("err", err.Error()))
				apierrors.WriteError(w, r, apierrors.ErrUnauthenticated)
				return
			}

			if owner := chi.URLParam(r, param); owner != "" && owner != sub {
				lg.Warn("auth_foreign_resource", slog.String("sub", sub), slog.String("owner", owner))
				apierrors.WriteError(w, r, apierrors.ErrPermissionDenied)
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeySubject{}, sub)
			ctx = logctx.With(ctx, slog.String("sub", sub))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SubjectFrom возвращает sub проверенного токена или "".
func SubjectFrom(ctx context.Context) string {
	sub, _ := ctx.Value(ctxKeySubject{}).(string)
	return sub
}

func bearer(header string) (string, bool) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}

	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

func parseSubject(raw string, cfg config.AuthConfig) (string, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(5 * time.Second),
		jwt.WithExpirationRequired(),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(cfg.JWTSecret), nil
	}, opts...)
	if err != nil {
		return "", err
	}

	if claims.Subject == "" {
		return "", errors.New("empty sub")
	}

	return claims.Subject, nil
}
