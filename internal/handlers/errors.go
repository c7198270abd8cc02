package handlers

import (
	"errors"
	"net/http"

	"taskKeeper/internal/logger"
	"taskKeeper/internal/repository"
	"taskKeeper/internal/service"

	"go.uber.org/zap"
)

// respondServiceError переводит типизированные ошибки ядра в HTTP-статусы.
// Любая неожиданная ошибка — 500 без деталей для клиента.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, repository.ErrNoLogs):
		logger.Warn("HTTP: Ресурс не найден", zap.Error(err))
		responseWithError(w, http.StatusNotFound, err.Error())

	case errors.Is(err, repository.ErrConflict):
		logger.Warn("HTTP: Конфликт уникальности", zap.Error(err))
		responseWithError(w, http.StatusConflict, err.Error())

	case errors.Is(err, service.ErrInvalidCredentials):
		logger.Warn("HTTP: Неудачная попытка входа")
		responseWithError(w, http.StatusUnauthorized, err.Error())

	case errors.Is(err, repository.ErrPersistence):
		logger.Error("HTTP: Ошибка сохранения данных", err)
		responseWithError(w, http.StatusInternalServerError, "не удалось сохранить данные")

	default:
		logger.Error("HTTP: Внутренняя ошибка", err)
		responseWithError(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
	}
}
