package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/saikrishna7004/campus-360-backend/common/auth"
	apperrors "github.com/saikrishna7004/campus-360-backend/common/errors"
	"github.com/saikrishna7004/campus-360-backend/common/logger"
	"github.com/saikrishna7004/campus-360-backend/controllers"
	"github.com/saikrishna7004/campus-360-backend/database"
	"github.com/saikrishna7004/campus-360-backend/kafka"
	"github.com/saikrishna7004/campus-360-backend/middleware"
	aws_pkg "github.com/saikrishna7004/campus-360-backend/pkg/aws"
	"github.com/saikrishna7004/campus-360-backend/repository"
	"github.com/saikrishna7004/campus-360-backend/routes"
	"github.com/saikrishna7004/campus-360-backend/services"
	"go.uber.org/zap"
)

const serviceName = "campus-360-backend"

// handlers groups the controllers mounted on the router.
type handlers struct {
	orders   *controllers.OrderController
	carts    *controllers.CartController
	vendors  *controllers.VendorController
	users    *controllers.UserController
	products *controllers.ProductController
	news     *controllers.NewsController
	books    *controllers.BookController
	office   *controllers.OfficeController
}

func main() {
	// Load .env file (optional, falls back to system env)
	_ = godotenv.Load()

	log, err := logger.Initialize(getEnv("ENV", "development"))
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}

	cfg, err := LoadConfig()
	if err != nil {
		log.Fatal("Config load failed", zap.Error(err))
	}

	// --- AWS setup (only when an AWS-backed feature is enabled) ---
	var awsCfg sdkaws.Config
	needsAWS := cfg.CloudWatchEnabled || cfg.UploadsBucket != "" || cfg.EventsBackend == EventsSNS
	if needsAWS {
		awsCfg, err = aws_pkg.LoadAWSConfig(context.Background())
		if err != nil {
			log.Fatal("Failed to load AWS config", zap.Error(err))
		}
	}

	var metricsClient *aws_pkg.MetricsClient
	if cfg.CloudWatchEnabled {
		writer, err := aws_pkg.NewCloudWatchLogsWriter(context.Background(), awsCfg, cfg.CloudWatchLogGroup, serviceName)
		if err != nil {
			log.Warn("CloudWatch Logs writer init failed (non-fatal)", zap.Error(err))
		} else {
			log = attachLogTee(log, cfg.Env, writer, logger.InitializeWithWriter)
		}
		metricsClient = aws_pkg.NewMetricsClient(awsCfg, cfg.CloudWatchNamespace, true)
	}
	defer func() { _ = log.Sync() }()

	// --- Database ---
	mongoDB, err := database.ConnectWithConfig(context.Background(), cfg.MongoURL, cfg.MongoDB, log)
	if err != nil {
		log.Fatal("DB connection failed", zap.Error(err))
	}
	indexCtx, cancelIndexes := context.WithTimeout(context.Background(), 30*time.Second)
	if err := mongoDB.EnsureIndexes(indexCtx); err != nil {
		log.Warn("Failed to ensure indexes", zap.Error(err))
	}
	cancelIndexes()

	// --- Event publisher ---
	var publisher services.EventPublisher
	var producer *kafka.Producer
	switch cfg.EventsBackend {
	case EventsKafka:
		producer = kafka.NewProducer(cfg.KafkaBrokers, log)
		publisher = producer
	case EventsSNS:
		publisher = aws_pkg.NewSNSClient(awsCfg)
	}

	var presigner services.Presigner
	if cfg.UploadsBucket != "" {
		presigner = aws_pkg.NewS3Presigner(awsCfg, cfg.UploadsBucket, cfg.UploadsPublicBaseURL)
	}

	var recorder services.MetricsRecorder
	if metricsClient != nil {
		recorder = metricsClient
	}

	if err := controllers.RegisterValidators(); err != nil {
		log.Fatal("Failed to register validators", zap.Error(err))
	}

	// --- Dependency injection ---
	db := mongoDB.DB
	orderRepo := repository.NewOrderRepository(db)
	vendorRepo := repository.NewVendorRepository(db)
	userRepo := repository.NewUserRepository(db)
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	orderService := services.NewOrderService(orderRepo, vendorRepo, userRepo, publisher, recorder, services.OrderConfig{
		LenientTransitions: cfg.LenientTransitions,
		EnforceTotal:       cfg.EnforceTotal,
		EventTopic:         cfg.EventTopic(),
		Location:           cfg.AnalyticsLocation,
	}, log)
	uploadService := services.NewUploadService(presigner, cfg.PresignExpiry, log)

	h := handlers{
		orders: controllers.NewOrderController(orderService),
		carts: controllers.NewCartController(
			services.NewCartService(repository.NewCartRepository(db), recorder, log), uploadService),
		vendors: controllers.NewVendorController(
			services.NewVendorService(vendorRepo, recorder, log),
			orderService,
			services.NewDashboardService(orderRepo, cfg.AnalyticsLocation, log)),
		users: controllers.NewUserController(services.NewUserService(userRepo, tokens, log)),
		products: controllers.NewProductController(
			services.NewCatalogService(repository.NewProductRepository(db), vendorRepo, log), uploadService),
		news: controllers.NewNewsController(services.NewNewsService(repository.NewNewsRepository(db), log)),
		books: controllers.NewBookController(services.NewLibraryService(
			repository.NewBookRepository(db), repository.NewBookTrackRepository(db), log)),
		office: controllers.NewOfficeController(
			services.NewOfficeService(repository.NewOfficeRequestRepository(db), log)),
	}

	limiter := middleware.NewRateLimiter(middleware.PerMinute(cfg.RateLimitPerMinute), cfg.RateLimitBurst, 10*time.Minute)
	stopLimiter := make(chan struct{})
	go limiter.Run(stopLimiter)

	r := newRouter(cfg, log, metricsClient, limiter, tokens, h)

	// --- HTTP server ---
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		log.Info("Campus backend started", zap.String("port", cfg.Port), zap.String("events", cfg.EventsBackend))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Initiating graceful shutdown...")
	httpShutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(httpShutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}
	close(stopLimiter)

	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Error("Kafka producer close error", zap.Error(err))
		}
	}
	if err := mongoDB.Close(); err != nil {
		log.Error("Database close error", zap.Error(err))
	}

	log.Info("Campus backend stopped gracefully")
}

// attachLogTee rebuilds the logger so entries are also written to w. When the
// teed logger cannot be built, base is kept and the failure is logged.
func attachLogTee(base *zap.Logger, env string, w io.Writer, build func(string, io.Writer) (*zap.Logger, error)) *zap.Logger {
	teed, err := build(env, w)
	if err != nil {
		base.Warn("CloudWatch Logs tee init failed (non-fatal)", zap.Error(err))
		return base
	}
	return teed
}

// newRouter builds the engine with the cross-cutting middleware chain and all routes.
func newRouter(cfg *Config, log *zap.Logger, metricsClient *aws_pkg.MetricsClient, limiter *middleware.RateLimiter, tokens middleware.TokenParser, h handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(limiter.Middleware())
	r.Use(middleware.MetricsMiddleware(metricsClient, serviceName))
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(apperrors.ErrorMiddleware(log))

	authMW := middleware.AuthMiddleware(tokens)
	routes.RegisterOrderRoutes(r, h.orders, authMW)
	routes.RegisterCartRoutes(r, h.carts, authMW)
	routes.RegisterVendorRoutes(r, h.vendors, authMW)
	routes.RegisterUserRoutes(r, h.users, authMW)
	routes.RegisterProductRoutes(r, h.products, authMW)
	routes.RegisterNewsRoutes(r, h.news, authMW)
	routes.RegisterBookRoutes(r, h.books, authMW)
	routes.RegisterOfficeRoutes(r, h.office, authMW)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "service": serviceName})
	})
	return r
}
