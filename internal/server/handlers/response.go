package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/iudanet/todokeeper/internal/apperr"
	"github.com/iudanet/todokeeper/pkg/api"
)

// SendJSON отправляет JSON ответ
func SendJSON(w http.ResponseWriter, logger *slog.Logger, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// SendError отправляет JSON ответ с ошибкой
func SendError(w http.ResponseWriter, logger *slog.Logger, message string, statusCode int) {
	if statusCode == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}

	resp := api.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	SendJSON(w, logger, resp, statusCode)
}

// StatusFor переводит класс ошибки в HTTP статус
func StatusFor(err error) int {
	switch {
	case errors.Is(err, apperr.ErrAuthentication):
		return http.StatusUnauthorized
	case errors.Is(err, apperr.ErrAuthorization):
		return http.StatusForbidden
	case errors.Is(err, apperr.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperr.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// WriteError отправляет ошибку сервисного слоя.
// Неклассифицированные ошибки логируются и скрываются от клиента.
func WriteError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status := StatusFor(err)

	if status == http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("error", err))
		SendError(w, logger, "internal server error", status)
		return
	}

	logger.WarnContext(r.Context(), "request rejected",
		slog.String("path", r.URL.Path),
		slog.Int("status", status),
		slog.Any("error", err))
	SendError(w, logger, err.Error(), status)
}

// decodeJSON декодирует тело запроса. Неизвестные поля игнорируются,
// ошибка разбора относится к ErrValidation.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid request body: %v", apperr.ErrValidation, err)
	}
	return nil
}
