package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/klimenko666/dptmptch/internal/app"
	"github.com/klimenko666/dptmptch/internal/config"
	"github.com/klimenko666/dptmptch/internal/database"
	apphttp "github.com/klimenko666/dptmptch/internal/http"
	"github.com/klimenko666/dptmptch/internal/http/handlers"
	"github.com/klimenko666/dptmptch/internal/http/metrics"
	httpmw "github.com/klimenko666/dptmptch/internal/http/middleware"
	"github.com/klimenko666/dptmptch/internal/http/response"
	"github.com/klimenko666/dptmptch/internal/integration/mailqueue"
	"github.com/klimenko666/dptmptch/internal/observability"
	"github.com/klimenko666/dptmptch/internal/repository/postgres"
	"github.com/klimenko666/dptmptch/internal/security"
)

func main() {
	cfg := config.Load()
	logger := observability.NewLogger()

	db := database.NewPostgres(context.Background(), database.PostgresConfig{
		DSN:             cfg.PostgresDSN,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxIdle:     cfg.DBConnMaxIdle,
		ConnMaxLifetime: cfg.DBConnMaxLife,
	})
	defer db.Close()

	if err := database.EnsureSchema(context.Background(), db); err != nil {
		log.Fatalf("failed to initialize schema: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	var mail mailqueue.Publisher = mailqueue.NopPublisher{}
	if cfg.AMQPURL != "" {
		publisher, err := mailqueue.NewAMQPPublisher(cfg.AMQPURL, cfg.MailQueue)
		if err != nil {
			log.Fatalf("failed to connect to amqp: %v", err)
		}
		defer publisher.Close()
		mail = publisher
	} else {
		logger.Info("mail notifications disabled: AMQP_URL not set")
	}

	employerRepo := postgres.NewEmployerRepository(db)
	vacancyRepo := postgres.NewVacancyRepository(db)

	hasher := security.NewPasswordHasher(cfg.BcryptCost)
	sessions := security.NewSessionStore(redisClient, cfg.SessionTTL)

	authService := app.NewAuthService(employerRepo, hasher, sessions, logger)
	employerService := app.NewEmployerService(employerRepo)
	vacancyService := app.NewVacancyService(vacancyRepo, employerRepo, mail, logger)

	collector := metrics.NewCollector()
	response.SetErrorCollector(collector)

	archiverCtx, stopArchiver := context.WithCancel(context.Background())
	defer stopArchiver()
	archiver := app.NewArchiver(vacancyRepo, func(ctx context.Context) error {
		return database.EnsureSchema(ctx, db)
	}, collector, logger, cfg.ArchiveInterval)
	archiver.Start(archiverCtx)

	rateLimiter := httpmw.NewRedisLimiter(redisClient)
	authHandler := handlers.NewAuthHandler(authService, rateLimiter, cfg.SessionTTL)
	employerHandler := handlers.NewEmployerHandler(employerService)
	vacancyHandler := handlers.NewVacancyHandler(vacancyService)
	sessionAuth := httpmw.NewSessionMiddleware(sessions)

	router := apphttp.NewRouter(apphttp.RouterDependencies{
		AuthHandler:     authHandler,
		EmployerHandler: employerHandler,
		VacancyHandler:  vacancyHandler,
		SessionAuth:     sessionAuth,
		Metrics:         collector,
		RequestTimeout:  cfg.RequestTimeout,
	})
	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("API started on :" + cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	stopArchiver()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal(err)
	}
}
