package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/aidar/invento-api/internal/config"
	"github.com/aidar/invento-api/internal/handler"
	"github.com/aidar/invento-api/internal/mailer"
	"github.com/aidar/invento-api/internal/metrics"
	"github.com/aidar/invento-api/internal/middleware"
	"github.com/aidar/invento-api/internal/repository"
	"github.com/aidar/invento-api/internal/repository/memory"
	"github.com/aidar/invento-api/internal/repository/postgres"
	redisrepo "github.com/aidar/invento-api/internal/repository/redis"
	"github.com/aidar/invento-api/internal/service"
)

// App представляет приложение со всеми зависимостями
type App struct {
	config  *config.Config
	db      *pgxpool.Pool
	redis   *goredis.Client
	server  *http.Server
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// New создает новый экземпляр приложения
func New(cfg *config.Config) (*App, error) {
	// Инициализируем структурированный логгер (JSON формат)
	level := slog.LevelInfo
	if cfg.Server.IsDevelopment() {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	app := &App{
		config:  cfg,
		logger:  logger,
		metrics: metrics.New(),
	}

	return app, nil
}

// Initialize инициализирует все компоненты приложения
func (a *App) Initialize(ctx context.Context) error {
	// Подключаемся к базе данных
	if err := a.connectDB(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Redis опционален, без него блокировка входа работает в памяти процесса
	if err := a.connectRedis(ctx); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}

	// Настраиваем HTTP сервер и роутинг
	if err := a.setupServer(); err != nil {
		return err
	}

	a.logger.Info("Application initialized successfully")
	return nil
}

// connectDB устанавливает подключение к PostgreSQL с connection pool
func (a *App) connectDB(ctx context.Context) error {
	poolConfig, err := pgxpool.ParseConfig(a.config.Database.DSN())
	if err != nil {
		return fmt.Errorf("failed to parse database config: %w", err)
	}

	// Настраиваем размеры connection pool
	poolConfig.MaxConns = a.config.Database.MaxConns
	poolConfig.MinConns = a.config.Database.MinConns

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Проверяем подключение к БД
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	a.db = pool
	a.logger.Info("Connected to database")
	return nil
}

// connectRedis подключается к Redis если задан REDIS_URL
func (a *App) connectRedis(ctx context.Context) error {
	client, err := redisrepo.NewClient(ctx, a.config.Redis.URL)
	if err != nil {
		return err
	}
	if client != nil {
		a.redis = client
		a.logger.Info("Connected to redis")
	}
	return nil
}

// newSender создает SMTP отправителя. Возвращает nil интерфейс, если почта не настроена
func (a *App) newSender() (mailer.Sender, error) {
	if !a.config.Mail.Enabled() {
		a.logger.Warn("EMAIL_HOST is not set, confirmation emails are disabled")
		return nil, nil
	}

	sender, err := mailer.NewSMTPSender(mailer.SMTPConfig{
		Host:     a.config.Mail.Host,
		Port:     a.config.Mail.Port,
		Username: a.config.Mail.User,
		Password: a.config.Mail.Password,
		From:     a.config.Mail.From,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to configure mail sender: %w", err)
	}
	return sender, nil
}

// lockoutStore выбирает хранилище счетчиков неудачных входов
func (a *App) lockoutStore() repository.LoginLockoutStore {
	if a.redis != nil {
		return redisrepo.NewLockoutStore(a.redis)
	}
	return memory.NewLockoutStore()
}

// setupServer инициализирует HTTP роутер и обработчики
func (a *App) setupServer() error {
	policy, err := a.config.Registration.LeaderPolicy()
	if err != nil {
		return fmt.Errorf("invalid registration config: %w", err)
	}

	sender, err := a.newSender()
	if err != nil {
		return err
	}

	// Инициализируем слой репозиториев (работа с БД)
	teamRepo := postgres.NewTeamRepository(a.db)
	adminRepo := postgres.NewAdminRepository(a.db)

	// Инициализируем слой сервисов (бизнес-логика)
	notificationService := service.NewNotificationService(sender, a.logger, a.metrics)
	teamService := service.NewTeamService(teamRepo, notificationService, policy, a.logger, a.metrics)
	statsService := service.NewStatsService(teamRepo)
	authService := service.NewAuthService(
		adminRepo,
		a.config.JWT.Secret,
		a.config.JWT.GetExpiration(),
		service.WithLogger(a.logger),
		service.WithMetrics(a.metrics),
		service.WithLockout(a.lockoutStore(), a.config.Redis.LoginMaxFailures, a.config.Redis.LockoutWindow()),
	)

	// Инициализируем HTTP обработчики
	errs := handler.NewErrorResponder(a.logger, a.config.Server.IsDevelopment())
	authHandler := handler.NewAuthHandler(authService, errs)
	teamHandler := handler.NewTeamHandler(teamService, errs)
	statsHandler := handler.NewStatsHandler(statsService, errs)

	// Инициализируем middleware для JWT авторизации
	authMiddleware := middleware.AuthMiddleware(authService)

	// Настраиваем роутер
	r := chi.NewRouter()

	// Глобальные middleware (применяются ко всем запросам)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: a.config.Server.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Origin", "X-Requested-With", "Content-Type", "Accept", "Authorization"},
		MaxAge:         300,
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		handler.RespondWithJSON(w, r, http.StatusOK, map[string]string{"message": "Invento API working perfectly"})
	})

	// Health check для мониторинга
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := a.db.Ping(r.Context()); err != nil {
			a.logger.Error("Health check failed", "error", err)
			handler.RespondWithJSON(w, r, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		handler.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Метрики Prometheus
	r.Method(http.MethodGet, "/metrics", a.metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			// Публичные эндпоинты (без авторизации)
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware)
				r.Get("/me", authHandler.Me)
				r.Put("/update", authHandler.UpdateProfile)
			})
		})

		r.Route("/teams", func(r chi.Router) {
			// Регистрация команды доступна всем
			r.Post("/register", teamHandler.RegisterTeam)

			// Защищенные эндпоинты (требуют JWT токен в заголовке Authorization)
			r.Group(func(r chi.Router) {
				r.Use(authMiddleware)

				r.Get("/", teamHandler.ListTeams)
				r.Get("/stats", statsHandler.GetStats)
				r.Get("/name/{teamName}", teamHandler.GetTeamByName)
				r.Get("/{id}", teamHandler.GetTeam)
				r.Get("/{id}/screenshot", teamHandler.GetScreenshot)
				r.Put("/{id}", teamHandler.UpdateTeam)
				r.Delete("/{id}", teamHandler.DeleteTeam)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handler.RespondWithError(w, r, http.StatusNotFound, "Route not found")
	})

	// Создаем HTTP сервер с настройками таймаутов
	addr := fmt.Sprintf("%s:%s", a.config.Server.Host, a.config.Server.Port)
	a.server = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second, // Регистрация ждет отправки всех писем
		IdleTimeout:  60 * time.Second,
	}

	a.logger.Info("HTTP server configured", "addr", addr, "leader_fields", policy.Describe(), "mail_enabled", sender != nil)
	return nil
}

// Handler возвращает корневой HTTP обработчик (для httptest)
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run запускает HTTP сервер
func (a *App) Run() error {
	a.logger.Info("Starting HTTP server", "addr", a.server.Addr)
	if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown корректно останавливает приложение
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Shutting down application")

	// Останавливаем HTTP сервер (ждем завершения текущих запросов)
	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
	}

	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("Failed to close redis client", "error", err)
		}
	}

	// Закрываем подключения к базе данных
	if a.db != nil {
		a.db.Close()
	}

	a.logger.Info("Application stopped gracefully")
	return nil
}
