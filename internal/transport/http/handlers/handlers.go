// handlers — REST-обработчики newsdotai поверх service.Service.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/BoalRolo/newsdotai/internal/service"
	"github.com/BoalRolo/newsdotai/internal/transport/http/apierrors"
	"github.com/BoalRolo/newsdotai/internal/transport/http/middleware"
)

// maxBodyBytes — предел тела запроса (пачка статей на сохранение).
const maxBodyBytes = 4 << 20

// Handlers агрегирует зависимости.
type Handlers struct {
	svc *service.Service
}

func New(svc *service.Service) *Handlers {
	return &Handlers{svc: svc}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через apierrors.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(w http.ResponseWriter, r *http.Request, value any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(value)
}

// invalidArgument — локальная ошибка разбора запроса -> 400.
func invalidArgument(reason string) error {
	return fmt.Errorf("%s: %w", reason, service.ErrInvalidArgument)
}

// checkOwner сверяет userId из тела с subject токена (если проверка включена).
func checkOwner(r *http.Request, userID string) error {
	if sub := middleware.SubjectFrom(r.Context()); sub != "" && sub != userID {
		return apierrors.ErrPermissionDenied
	}

	return nil
}
