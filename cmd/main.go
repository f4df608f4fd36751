package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"

	"github.com/sbilibin2017/gw-finance-bot/internal/conversation"
	"github.com/sbilibin2017/gw-finance-bot/internal/facades"
	"github.com/sbilibin2017/gw-finance-bot/internal/handlers"
	"github.com/sbilibin2017/gw-finance-bot/internal/logger"
	"github.com/sbilibin2017/gw-finance-bot/internal/repositories"
	"github.com/sbilibin2017/gw-finance-bot/internal/services"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// Bot update delivery modes
const (
	modePolling = "polling"
	modeWebhook = "webhook"
)

// Storage back ends
const (
	storagePostgres = "postgres"
	storageMemory   = "memory"
	storageRedis    = "redis"
)

func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// config holds application, bot, storage and messaging settings.
type config struct {
	AppHost  string
	AppPort  string
	LogLevel string

	BotToken       string
	BotMode        string
	BotWebhookURL  string
	BotPollTimeout int // seconds

	LedgerStorage  string
	PGHost         string
	PGPort         int
	PGUser         string
	PGPassword     string
	PGDB           string
	PGMaxOpenConns int
	PGMaxIdleConns int

	SessionStorage    string
	RedisHost         string
	RedisPort         int
	RedisDB           int
	RedisPassword     string
	RedisPoolSize     int
	RedisMinIdleConns int
	RedisSessionExp   int // seconds, 0 disables expiry

	KafkaBrokers []string
	KafkaTopic   string
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Version: %s, Commit: %s, Build: %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns the application config.
func parseConfig(path string) (cfg config, err error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}
	getInt := func(key, defaultValue string) (int, error) {
		v, err := strconv.Atoi(getEnv(key, defaultValue))
		if err != nil {
			return 0, fmt.Errorf("%s: %w", key, err)
		}
		return v, nil
	}

	// Application config
	cfg.AppHost = getEnv("APP_HOST", "localhost")
	cfg.AppPort = getEnv("APP_PORT", "8080")
	cfg.LogLevel = getEnv("APP_LOG_LEVEL", "info")

	// Bot config
	cfg.BotToken = getEnv("BOT_TOKEN", "")
	cfg.BotMode = getEnv("BOT_MODE", modePolling)
	cfg.BotWebhookURL = getEnv("BOT_WEBHOOK_URL", "")
	if cfg.BotPollTimeout, err = getInt("BOT_POLL_TIMEOUT_SECOND", "60"); err != nil {
		return config{}, err
	}
	switch cfg.BotMode {
	case modePolling:
	case modeWebhook:
		if cfg.BotWebhookURL == "" {
			return config{}, errors.New("BOT_WEBHOOK_URL is required in webhook mode")
		}
	default:
		return config{}, fmt.Errorf("BOT_MODE: unknown mode %q", cfg.BotMode)
	}

	// PostgreSQL config
	cfg.LedgerStorage = getEnv("LEDGER_STORAGE", storagePostgres)
	if cfg.LedgerStorage != storagePostgres && cfg.LedgerStorage != storageMemory {
		return config{}, fmt.Errorf("LEDGER_STORAGE: unknown storage %q", cfg.LedgerStorage)
	}
	cfg.PGHost = getEnv("POSTGRES_HOST", "localhost")
	cfg.PGUser = getEnv("POSTGRES_USER", "user")
	cfg.PGPassword = getEnv("POSTGRES_PASSWORD", "password")
	cfg.PGDB = getEnv("POSTGRES_DB", "database")
	if cfg.PGPort, err = getInt("POSTGRES_PORT", "5432"); err != nil {
		return config{}, err
	}
	if cfg.PGMaxOpenConns, err = getInt("POSTGRES_MAX_OPEN_CONNS", "16"); err != nil {
		return config{}, err
	}
	if cfg.PGMaxIdleConns, err = getInt("POSTGRES_MAX_IDLE_CONNS", "8"); err != nil {
		return config{}, err
	}

	// Redis config
	cfg.SessionStorage = getEnv("SESSION_STORAGE", storageMemory)
	if cfg.SessionStorage != storageMemory && cfg.SessionStorage != storageRedis {
		return config{}, fmt.Errorf("SESSION_STORAGE: unknown storage %q", cfg.SessionStorage)
	}
	cfg.RedisHost = getEnv("REDIS_HOST", "localhost")
	if cfg.RedisPort, err = getInt("REDIS_PORT", "6379"); err != nil {
		return config{}, err
	}
	if cfg.RedisDB, err = getInt("REDIS_DB", "0"); err != nil {
		return config{}, err
	}
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	if cfg.RedisPoolSize, err = getInt("REDIS_POOL_SIZE", "10"); err != nil {
		return config{}, err
	}
	if cfg.RedisMinIdleConns, err = getInt("REDIS_MIN_IDLE_CONNS", "2"); err != nil {
		return config{}, err
	}
	if cfg.RedisSessionExp, err = getInt("REDIS_SESSION_EXP_SECOND", "0"); err != nil {
		return config{}, err
	}

	// Kafka config
	for _, b := range strings.Split(getEnv("KAFKA_BROKERS", ""), ",") {
		if b = strings.TrimSpace(b); b != "" {
			cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
		}
	}
	cfg.KafkaTopic = getEnv("KAFKA_TOPIC", "ledger-events")

	return cfg, nil
}

// ledgerStack is the ledger back end shared by the services.
type ledgerStack struct {
	reader services.LedgerReader
	writer services.LedgerWriter
	tx     services.Transactor
	close  func()
}

// openLedger connects the configured ledger storage and brings its schema up to date.
func openLedger(ctx context.Context, cfg config) (*ledgerStack, error) {
	if cfg.LedgerStorage == storageMemory {
		logger.Log.Warn("Using in-memory ledger, data is lost on restart")
		mem := repositories.NewLedgerMemoryRepository()
		return &ledgerStack{reader: mem, writer: mem, tx: mem, close: func() {}}, nil
	}

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.PGUser, cfg.PGPassword, cfg.PGHost, cfg.PGPort, cfg.PGDB)
	logger.Log.Infow("Connecting to PostgreSQL", "host", cfg.PGHost, "port", cfg.PGPort, "db", cfg.PGDB)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("PostgreSQL connection error: %w", err)
	}
	db.SetMaxOpenConns(cfg.PGMaxOpenConns)
	db.SetMaxIdleConns(cfg.PGMaxIdleConns)

	if err := repositories.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrations failed: %w", err)
	}

	repo := repositories.NewLedgerRepository(db, repositories.GetTxFromContext)
	return &ledgerStack{
		reader: repo,
		writer: repo,
		tx:     repositories.NewTransactor(db),
		close:  func() { db.Close() },
	}, nil
}

// openSessions connects the configured session storage.
func openSessions(ctx context.Context, cfg config) (conversation.SessionStore, func(), error) {
	if cfg.SessionStorage == storageMemory {
		return repositories.NewSessionMemoryRepository(), func() {}, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		PoolSize:     cfg.RedisPoolSize,
		MinIdleConns: cfg.RedisMinIdleConns,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, nil, fmt.Errorf("Redis connection error: %w", err)
	}

	exp := time.Duration(cfg.RedisSessionExp) * time.Second
	return repositories.NewSessionRedisRepository(rdb, exp), func() { rdb.Close() }, nil
}

// newKafkaWriter returns nil when no brokers are configured.
func newKafkaWriter(cfg config) *kafka.Writer {
	if len(cfg.KafkaBrokers) == 0 {
		return nil
	}
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaTopic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
}

// run initializes the logger, storages, Kafka writer, Telegram bot and HTTP server,
// then serves updates until a shutdown signal arrives.
func run(ctx context.Context, cfg config) error {
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Sync()
	logger.Log.Infof("Logger initialized with level %s", cfg.LogLevel)

	ledger, err := openLedger(ctx, cfg)
	if err != nil {
		return err
	}
	defer ledger.close()

	sessions, closeSessions, err := openSessions(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSessions()

	var kafkaWriter services.KafkaWriter
	if w := newKafkaWriter(cfg); w != nil {
		logger.Log.Infow("Publishing ledger events to Kafka", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
		kafkaWriter = w
		defer w.Close()
	}

	// Initialize services
	registry := services.NewRegistryService(ledger.reader, ledger.writer)
	balances := services.NewBalanceService(ledger.reader, ledger.writer)
	ledgerService := services.NewLedgerService(ledger.tx, registry, balances, ledger.writer, kafkaWriter)

	// Initialize bot
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return fmt.Errorf("bot init: %w", err)
	}
	logger.Log.Infow("Authorized on Telegram", "bot", bot.Self.UserName)

	telegram := facades.NewTelegramFacade(bot)
	engine := conversation.NewEngine(sessions, registry, ledgerService, balances, telegram)
	updateHandler := handlers.NewUpdateHandler(engine, telegram)

	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	var webhook http.Handler
	switch cfg.BotMode {
	case modeWebhook:
		wh, err := tgbotapi.NewWebhook(cfg.BotWebhookURL)
		if err != nil {
			return fmt.Errorf("invalid webhook url: %w", err)
		}
		if _, err := bot.Request(wh); err != nil {
			return fmt.Errorf("failed to set webhook: %w", err)
		}
		webhook = handlers.NewWebhookHandler(updateHandler)
		logger.Log.Infow("Receiving updates via webhook", "url", cfg.BotWebhookURL)
	default:
		if _, err := bot.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
			logger.Log.Warnw("failed to delete webhook before polling", "error", err)
		}
		u := tgbotapi.NewUpdate(0)
		u.Timeout = cfg.BotPollTimeout
		updates := bot.GetUpdatesChan(u)
		defer bot.StopReceivingUpdates()

		go updateHandler.Poll(ctxShutdown, updates)
		logger.Log.Infow("Receiving updates via long polling", "timeout", cfg.BotPollTimeout)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort),
		Handler: handlers.NewRouter(webhook),
	}

	// Graceful shutdown
	errChan := make(chan error, 1)

	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", cfg.AppHost, cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}
