package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tutorhub/config"
	_ "tutorhub/docs"
	"tutorhub/internal/repository"
	"tutorhub/internal/service"
	"tutorhub/internal/transport/rest"
	"tutorhub/migrations"
	"tutorhub/pkg/auth"
	"tutorhub/pkg/cache"
	"tutorhub/pkg/database"
	"tutorhub/pkg/logger"
)

// @title TutorHub API
// @version 1.0
// @description API расписания и бронирования занятий с репетиторами
// @BasePath /api/v1

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		panic(err)
	}

	log, err := logger.NewLogger(cfg.Environment, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx := context.Background()

	db, err := database.NewPostgresDB(ctx, cfg.Postgres)
	if err != nil {
		log.Fatal("Не удалось подключиться к БД", zap.Error(err))
	}
	defer db.Close()

	log.Info("Запуск миграций базы данных")
	if err := database.RunMigrations(ctx, db, migrations.FS, log); err != nil {
		log.Fatal("Ошибка при выполнении миграций", zap.Error(err))
	}

	checks := map[string]rest.ReadinessCheck{
		"postgres": db.Ping,
	}

	var limiter rest.RateLimiter
	rdb, err := cache.NewRedisClient(ctx, cfg.Redis)
	switch {
	case err == nil:
		defer rdb.Close()
		limiter = cache.NewRateLimiter(rdb, cfg.RateLimit.Bookings, cfg.RateLimit.Window, "ratelimit")
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	case cfg.RateLimit.FailOpen:
		log.Warn("Redis недоступен, ограничение частоты бронирований отключено", zap.Error(err))
	default:
		log.Fatal("Не удалось подключиться к Redis", zap.Error(err))
	}

	repos := repository.NewRepositories(db)

	services := service.NewServices(service.Deps{
		Repos:  repos,
		Logger: log,
		Config: cfg,
		Tokens: auth.NewTokenManager(cfg.JWT.SigningKey),
	})

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	rest.NewHandler(services, log, cfg, limiter, checks).InitRoutes(router)

	srv := &http.Server{
		Addr:           ":" + cfg.HTTP.Port,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderMB << 20,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Ошибка запуска сервера", zap.Error(err))
		}
	}()

	log.Info("Сервер запущен", zap.String("addr", srv.Addr), zap.String("env", cfg.Environment))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Выключение сервера...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Ошибка при остановке сервера", zap.Error(err))
		return
	}

	log.Info("Сервер успешно остановлен")
}
