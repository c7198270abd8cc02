package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"taskKeeper/internal/handlers/dto"
	"taskKeeper/internal/logger"
	"taskKeeper/internal/middleware"
	"taskKeeper/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TaskHandler struct {
	TaskService TaskService
	LogService  LogService
	Health      HealthChecker
}

func NewTaskHandler(taskService TaskService, logService LogService, health HealthChecker) TaskHandler {
	return TaskHandler{
		TaskService: taskService,
		LogService:  logService,
		Health:      health,
	}
}

func (h *TaskHandler) GetTasks(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		responseWithError(w, http.StatusUnauthorized, "пользователь не определён")
		return
	}

	tasks, err := h.TaskService.GetTasks(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	logger.Info("HTTP_OUT: Задачи получены",
		zap.Int("count", len(tasks)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, toPayload("data", dto.FromTaskList(tasks)))
}

func (h *TaskHandler) PostTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		responseWithError(w, http.StatusUnauthorized, "пользователь не определён")
		return
	}

	if !checkContentType(r, "application/json") {
		logger.Warn("HTTP: Неверный Content-Type",
			zap.String("content_type", r.Header.Get("Content-Type")),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusUnsupportedMediaType, "ожидается application/json")
		return
	}

	var request dto.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "неверное тело запроса: "+err.Error())
		return
	}

	// title, description, dueDate и priority обязательны
	for field, value := range map[string]string{
		"title":       request.Title,
		"description": request.Description,
		"dueDate":     request.DueDate,
		"priority":    request.Priority,
	} {
		if value == "" {
			logger.Warn("HTTP: Ошибка валидации",
				zap.String("field", field),
				zap.String("error", "empty_field"),
				zap.String("client_ip", r.RemoteAddr))
			responseWithError(w, http.StatusBadRequest, "поле "+field+" обязательно")
			return
		}
	}

	task, err := h.TaskService.CreateTask(r.Context(), userID, service.TaskDraft{
		Title:       request.Title,
		Description: request.Description,
		DueDate:     request.DueDate,
		Priority:    request.Priority,
		Notes:       request.Notes,
		ItemsNeeded: request.ItemsNeeded,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	logger.Info("HTTP_OUT: Задача создана",
		zap.String("task_id", task.ID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	responseWithJSON(w, http.StatusCreated, toPayload("data", dto.FromTask(task)))
}

func (h *TaskHandler) GetTaskByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		responseWithError(w, http.StatusUnauthorized, "пользователь не определён")
		return
	}

	taskID, ok := parseTaskID(w, r)
	if !ok {
		return
	}

	task, err := h.TaskService.GetTaskByID(r.Context(), taskID, userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	logger.Info("HTTP_OUT: Задача получена",
		zap.String("task_id", task.ID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, toPayload("data", dto.FromTask(task)))
}

func (h *TaskHandler) UpdateTaskByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		responseWithError(w, http.StatusUnauthorized, "пользователь не определён")
		return
	}

	taskID, ok := parseTaskID(w, r)
	if !ok {
		return
	}

	if !checkContentType(r, "application/json") {
		logger.Warn("HTTP: Неверный Content-Type",
			zap.String("content_type", r.Header.Get("Content-Type")),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusUnsupportedMediaType, "ожидается application/json")
		return
	}

	var request dto.UpdateTaskRequest
	decoder := json.NewDecoder(r.Body)
	defer r.Body.Close()

	if err := decoder.Decode(&request); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "неверно переданы параметры обновления: "+err.Error())
		return
	}

	// пустое обновление дальше этого слоя не проходит
	if request.IsEmpty() {
		logger.Warn("HTTP: Ошибка валидации",
			zap.String("error", "empty_update"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "обновление не содержит ни одного поля")
		return
	}

	task, err := h.TaskService.UpdateTask(r.Context(), taskID, userID, request.ToUpdate())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	logger.Info("HTTP_OUT: Задача обновлена",
		zap.String("task_id", task.ID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, toPayload("data", dto.FromTask(task)))
}

func (h *TaskHandler) DeleteTaskByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		responseWithError(w, http.StatusUnauthorized, "пользователь не определён")
		return
	}

	taskID, ok := parseTaskID(w, r)
	if !ok {
		return
	}

	task, err := h.TaskService.DeleteTask(r.Context(), taskID, userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	logger.Info("HTTP_OUT: Задача удалена",
		zap.String("task_id", task.ID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, toPayload("data", dto.FromTask(task)))
}

func (h *TaskHandler) GetTaskLog(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		responseWithError(w, http.StatusUnauthorized, "пользователь не определён")
		return
	}

	taskID, ok := parseTaskID(w, r)
	if !ok {
		return
	}

	entries, err := h.LogService.GetTaskLog(r.Context(), taskID, userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	logger.Info("HTTP_OUT: Логи получены",
		zap.String("task_id", taskID.String()),
		zap.Int("count", len(entries)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, toPayload("data", dto.FromLogEntries(entries)))
}

func (h *TaskHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP: Health check")

	if err := h.Health.HealthCheck(r.Context()); err != nil {
		logger.Error("HTTP: Хранилище недоступно", err)
		responseWithJSON(w, http.StatusServiceUnavailable, toPayload("status", "UNAVAILABLE"))
		return
	}

	responseWithJSON(w, http.StatusOK, toPayload("status", "OK"))
}

func parseTaskID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	idParam := chi.URLParam(r, "id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		logger.Warn("HTTP: Не удалось получить id",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "не удалось получить id: "+err.Error())
		return uuid.Nil, false
	}
	if id == uuid.Nil {
		logger.Warn("HTTP: Неверное значение id",
			zap.String("error", "nil id"),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "id не может быть пустым")
		return uuid.Nil, false
	}
	return id, true
}
