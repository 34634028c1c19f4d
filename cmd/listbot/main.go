package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/ListboT/internal/api"
	"github.com/Kerhoff/ListboT/internal/config"
	"github.com/Kerhoff/ListboT/internal/handlers"
	"github.com/Kerhoff/ListboT/internal/repository/memory"
	"github.com/Kerhoff/ListboT/internal/repository/postgres"
	"github.com/Kerhoff/ListboT/internal/service"
	"github.com/Kerhoff/ListboT/internal/telegram"
	"github.com/Kerhoff/ListboT/pkg/logger"
)

const webhookPath = "/telegram/webhook"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	l := logger.New(cfg.LogLevel, cfg.LogFormat)
	l.Info("Starting ListboT...")

	// Storage
	repos, closeStore, err := openStore(context.Background(), cfg, l)
	if err != nil {
		l.Fatalf("Failed to open storage: %v", err)
	}

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := service.NewMetrics(registry)

	// Service layer
	svc := service.New(repos, l, metrics)

	apiServer := api.NewServer(svc, l)

	// Telegram bot
	var bot *telegram.Bot
	if cfg.TelegramToken != "" {
		bot, err = telegram.NewBot(cfg.TelegramToken, l)
		if err != nil {
			l.Fatalf("Failed to create Telegram bot: %v", err)
		}
		registerCommands(bot, svc, l)
	} else {
		l.Warn("TELEGRAM_TOKEN is not set, Telegram bot disabled")
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		l.Info("Received shutdown signal...")
		cancel()
	}()

	if bot != nil {
		if cfg.WebhookURL != "" {
			if err := bot.SetWebhook(cfg.WebhookURL); err != nil {
				l.Fatalf("Failed to set webhook: %v", err)
			}
			apiServer.Mount("POST "+webhookPath, bot.WebhookHandler())
		} else {
			go func() {
				if err := bot.Start(ctx); err != nil {
					l.Errorf("Bot error: %v", err)
				}
			}()
		}
	}

	go svc.StartStatsCollector(ctx, cfg.StatsInterval)

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           apiServer.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	metricsMux := http.NewServeMux()
	metricsMux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	metricsServer := &http.Server{
		Addr:              ":" + cfg.PrometheusPort,
		Handler:           metricsMux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serve(httpServer, "HTTP API", l)
	serve(metricsServer, "Metrics", l)

	l.Info("ListboT started successfully")

	<-ctx.Done()

	l.Info("Shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	var result *multierror.Error
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		result = multierror.Append(result, err)
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		result = multierror.Append(result, err)
	}
	if err := closeStore(); err != nil {
		result = multierror.Append(result, err)
	}
	if err := result.ErrorOrNil(); err != nil {
		l.Errorf("Shutdown finished with errors: %v", err)
		os.Exit(1)
	}

	l.Info("ListboT stopped")
}

func openStore(ctx context.Context, cfg *config.Config, l *logrus.Logger) (service.Repositories, func() error, error) {
	if cfg.StorageDriver == config.DriverMemory {
		l.Warn("Using in-memory storage, data will not survive a restart")
		store := memory.New()
		return service.Repositories{
			Users:       store.Users(),
			Bookmarks:   store.Bookmarks(),
			Lists:       store.Lists(),
			Memberships: store.Memberships(),
		}, func() error { return nil }, nil
	}

	db, err := config.NewDatabase(ctx, cfg, l)
	if err != nil {
		return service.Repositories{}, nil, err
	}

	if err := db.Migrate(cfg.MigrationsPath); err != nil {
		_ = db.Close()
		return service.Repositories{}, nil, err
	}

	return service.Repositories{
		Users:       postgres.NewUserRepository(db.DB),
		Bookmarks:   postgres.NewBookmarkRepository(db.DB),
		Lists:       postgres.NewListRepository(db.DB),
		Memberships: postgres.NewMembershipRepository(db.DB),
	}, db.Close, nil
}

func registerCommands(bot *telegram.Bot, svc *service.Service, l *logrus.Logger) {
	bot.RegisterCommand("start", handlers.NewStartHandler(svc, l))
	bot.RegisterCommand("help", handlers.NewHelpHandler(l))

	// List handlers
	bot.RegisterCommand("lists", handlers.NewListsHandler(svc, l))
	bot.RegisterCommand("newlist", handlers.NewCreateListHandler(svc, l))
	bot.RegisterCommand("smartlist", handlers.NewCreateSmartListHandler(svc, l))
	bot.RegisterCommand("rename", handlers.NewRenameListHandler(svc, l))
	bot.RegisterCommand("dellist", handlers.NewDeleteListHandler(svc, l))

	// Bookmark and membership handlers
	bot.RegisterCommand("bookmark", handlers.NewBookmarkHandler(svc, l))
	bot.RegisterCommand("addto", handlers.NewAddToListHandler(svc, l))
	bot.RegisterCommand("removefrom", handlers.NewRemoveFromListHandler(svc, l))
	bot.RegisterCommand("inlists", handlers.NewInListsHandler(svc, l))
}

func serve(srv *http.Server, name string, l *logrus.Logger) {
	go func() {
		l.Infof("%s listening on %s", name, srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Errorf("%s server error: %v", name, err)
		}
	}()
}
