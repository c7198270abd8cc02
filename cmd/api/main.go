package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskKeeper/internal/auth"
	"taskKeeper/internal/config"
	"taskKeeper/internal/handlers"
	"taskKeeper/internal/logger"
	"taskKeeper/internal/middleware"
	"taskKeeper/internal/repository/jsonfile"
	"taskKeeper/internal/repository/postgres"
	"taskKeeper/internal/service"
	"taskKeeper/internal/worker"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// storage объединяет всё, что сервер требует от выбранного бэкенда.
type storage interface {
	service.TaskRepository
	service.UserRepository
	worker.LogScanner
	HealthCheck(ctx context.Context) error
}

func main() {
	cfg, err := config.Load("config.yml")
	if err != nil {
		logger.Init(true)
		logger.Error("Не удалось загрузить конфигурацию", err)
		os.Exit(1)
	}

	logger.Init(cfg.Logging.Development)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var repo storage
	switch cfg.Storage.Type {
	case "postgres":
		pg, err := postgres.New(ctx, cfg.Storage.Database)
		if err != nil {
			logger.Error("Не удалось подключиться к базе данных", err)
			os.Exit(1)
		}
		defer pg.Close()

		if err := pg.Migrate(ctx); err != nil {
			logger.Error("Не удалось применить миграции", err)
			os.Exit(1)
		}
		repo = pg
	default:
		store, err := jsonfile.Open(cfg.Storage.FilePath)
		if err != nil {
			logger.Error("Не удалось открыть файл хранилища", err)
			os.Exit(1)
		}
		repo = store
	}
	logger.Info("Хранилище готово", zap.String("type", cfg.Storage.Type))

	tokens := auth.NewTokenManager(cfg.Auth.Secret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)

	taskService := service.NewTaskService(repo)
	logService := service.NewLogService(repo)
	authService := service.NewAuthService(repo, tokens)

	taskHandler := handlers.NewTaskHandler(&taskService, &logService, repo)
	authHandler := handlers.NewAuthHandler(&authService)

	integrityWorker := worker.NewIntegrityWorker(repo, &cfg.Worker.Interval)
	go integrityWorker.Start(ctx)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))
	r.Use(middleware.RateLimit(100))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register) // POST /api/v1/auth/register
			r.Post("/login", authHandler.Login)       // POST /api/v1/auth/login
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Use(middleware.Auth(tokens))

			r.Get("/", taskHandler.GetTasks)  // GET /api/v1/tasks
			r.Post("/", taskHandler.PostTask) // POST /api/v1/tasks

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", taskHandler.GetTaskByID)       // GET /api/v1/tasks/{id}
				r.Put("/", taskHandler.UpdateTaskByID)    // PUT /api/v1/tasks/{id}
				r.Delete("/", taskHandler.DeleteTaskByID) // DELETE /api/v1/tasks/{id}

				r.Get("/logs", taskHandler.GetTaskLog) // GET /api/v1/tasks/{id}/logs
			})
		})
	})

	r.Get("/health", taskHandler.HealthCheck)

	server := &http.Server{
		Addr:    cfg.GetServerAddr(),
		Handler: r,
	}

	go func() {
		logger.Info("Сервер запущен", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Ошибка сервера", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Остановка сервера")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Ошибка при остановке сервера", err)
	}
}
