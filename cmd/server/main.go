package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/gofiber/contrib/otelfiber/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	_ "github.com/jackc/pgx/v5/stdlib"

	"course-service/internal/api"
	"course-service/internal/config"
	"course-service/internal/events"
	"course-service/internal/ids"
	"course-service/internal/kv"
	"course-service/internal/repository"
	"course-service/internal/s3"
	"course-service/internal/service"
	"course-service/internal/suggest"
	"course-service/internal/tracing"
	"course-service/internal/wizard"
	_ "course-service/migrations"
)

const serviceName = "course-service"

func main() {
	cfg := config.Load()

	api.SetupGlobalHandler(serviceName)

	shutdownTracer, err := tracing.InitTracerProvider(context.Background(), serviceName, cfg.OtelEndpoint)
	if err != nil {
		log.Fatalf("Failed to initialize OpenTelemetry: %v", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Printf("Error shutting down tracer provider: %v", err)
		}
	}()

	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		handleMigrations(cfg)
		return
	}

	store, closeStore := openStore(cfg)
	defer closeStore()

	uuids := ids.NewUUIDGenerator()
	draftRepo := repository.NewKVDraftRepository(store, uuids)
	courseRepo := repository.NewKVCourseRepository(store, uuids)
	announcementRepo := repository.NewKVAnnouncementRepository(store, uuids)
	attachmentRepo := repository.NewKVAttachmentRepository(store, uuids)

	activityService := service.NewActivityService(courseRepo)

	var publisher events.EventPublisher = events.NoopPublisher{}
	if cfg.NatsURL != "" {
		nc, err := events.Connect(cfg.NatsURL)
		if err != nil {
			log.Fatalf("Failed to connect to NATS: %v", err)
		}
		defer nc.Close()
		log.Println("Successfully connected to NATS.")

		publisher = events.NewNatsPublisher(nc)
		if _, err := events.NewActivitySubscriber(nc, activityService).Subscribe(); err != nil {
			log.Printf("WARNING: Failed to start activity subscriber: %v", err)
		}
	} else {
		log.Println("NATS_URL not set, course events are disabled.")
	}

	courseService := service.NewCourseService(draftRepo, courseRepo, announcementRepo, attachmentRepo, publisher, cfg.DefaultCoursePrice)
	announcementService := service.NewAnnouncementService(courseService, announcementRepo)
	attachmentService := service.NewAttachmentService(courseService, attachmentRepo, cfg.AttachmentMaxBytes)

	registry := wizard.NewRegistry(courseService, suggest.NewRandomProvider(cfg.SuggestSeed, cfg.SuggestDelay), uuids, uuids).
		WithIdleTTL(cfg.WizardIdleTTL)
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go registry.Run(sweepCtx, cfg.WizardSweepInterval)

	var presigner s3.UploadPresigner
	if cfg.S3Enabled() {
		p, err := s3.NewFilePresigner(context.Background(), s3.Options{
			Endpoint:     cfg.S3Endpoint,
			Region:       cfg.AWSRegion,
			Bucket:       cfg.S3BucketName,
			AccessKey:    cfg.AWSAccessKey,
			SecretKey:    cfg.AWSSecretKey,
			UsePathStyle: cfg.S3UsePathStyle,
		})
		if err != nil {
			log.Fatalf("Failed to initialize S3 presigner: %v", err)
		}
		presigner = p
		log.Println("Successfully initialized S3 presigner.")
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: api.ErrorHandler,
		BodyLimit:    cfg.BodyLimitBytes,
	})
	app.Use(otelfiber.Middleware())
	app.Use(api.PrometheusMiddleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": serviceName, "store": cfg.StoreDriver})
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api.SetupRoutes(app, api.Handlers{
		Wizard:    api.NewWizardHandler(registry, courseService),
		Course:    api.NewCourseHandler(courseService, announcementService, attachmentService, activityService),
		Dashboard: api.NewDashboardHandler(courseService),
		Media:     api.NewMediaHandler(presigner),
	}, api.RateLimiter(cfg.RateLimitMax, cfg.RateLimitExpiration))

	log.Printf("Listening %s on port %s", serviceName, cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}

// openStore picks the kv backend named by STORE_DRIVER. The returned func
// releases its connection.
func openStore(cfg *config.Config) (kv.Store, func()) {
	switch cfg.StoreDriver {
	case kv.DriverMemory:
		log.Println("Using in-memory store; data is lost on restart.")
		return kv.NewMemoryStore(), func() {}

	case kv.DriverPostgres:
		db, err := sqlx.Connect("pgx", cfg.DatabaseURL())
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		log.Println("Successfully connected to the database.")
		return kv.NewPostgresStore(db), func() { db.Close() }

	case kv.DriverRedis:
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Invalid REDIS_URL: %v", err)
		}
		client := redis.NewClient(opts)
		if err := client.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		log.Println("Successfully connected to Redis.")
		return kv.NewRedisStore(client, "course:"), func() { client.Close() }
	}

	log.Fatal(kv.UnknownDriverError(cfg.StoreDriver))
	return nil, nil
}

func handleMigrations(cfg *config.Config) {
	fmt.Println("Running database migrations...")

	db, err := sql.Open("pgx", cfg.DatabaseURL())
	if err != nil {
		log.Fatalf("failed to connect to database for migration: %v", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("failed to set goose dialect: %v", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		log.Fatalf("goose: failed to run migrations: %v", err)
	}

	fmt.Println("Migrations applied successfully!")
}
