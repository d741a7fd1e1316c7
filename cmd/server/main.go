package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/Skotchmaster/nutshop/internal/config"
	"github.com/Skotchmaster/nutshop/internal/db"
	"github.com/Skotchmaster/nutshop/internal/events"
	"github.com/Skotchmaster/nutshop/internal/httpserver"
	"github.com/Skotchmaster/nutshop/internal/logging"
	"github.com/Skotchmaster/nutshop/internal/metrics"
	"github.com/Skotchmaster/nutshop/internal/repo"
	"github.com/Skotchmaster/nutshop/internal/search"
	"github.com/Skotchmaster/nutshop/internal/service"
)

func main() {
	cfg := config.Load()

	logger := logging.New(cfg.ServiceName, cfg.LogLevel)
	ctx := logging.IntoContext(context.Background(), logger)

	initCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	gdb, err := db.Open(initCtx, cfg.DBDriver, cfg.DatabaseURL)
	if err == nil {
		err = db.Migrate(initCtx, gdb)
	}
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	r := &repo.GormRepo{DB: gdb}

	var publisher events.Publisher = events.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafka(cfg.KafkaBrokers, cfg.KafkaTopic)
		logger.Info("kafka publisher enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	catalogSvc := &service.CatalogService{Repo: r, Events: publisher}
	if cfg.ESURL != "" {
		client, err := search.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			logger.Warn("elasticsearch unavailable, using store scan for search", "error", err)
		} else {
			searcher := search.New(client, cfg.ESIndex)
			if err := searcher.EnsureIndex(ctx); err != nil {
				logger.Warn("elasticsearch index setup failed", "index", cfg.ESIndex, "error", err)
			}
			catalogSvc.Index = searcher
		}
	}

	if cfg.SeedCatalog {
		products, err := db.Seed(ctx, gdb)
		if err != nil {
			log.Fatalf("seed error: %v", err)
		}
		if len(products) > 0 {
			logger.Info("catalog seeded", "products", len(products))
		}
	}
	if err := catalogSvc.Reindex(ctx); err != nil {
		logger.Warn("catalog reindex failed", "error", err)
	}

	authSvc := &service.AuthService{Repo: r, Events: publisher}
	historySvc := &service.HistoryService{Repo: r}

	e := httpserver.New(&httpserver.Deps{
		DB:            gdb,
		Logger:        logger,
		Metrics:       metrics.New(),
		Authenticator: authSvc,
		Recorder:      historySvc,
		Auth:          &httpserver.AuthHTTP{Svc: authSvc},
		Profile:       &httpserver.ProfileHTTP{Svc: &service.ProfileService{Repo: r}},
		Catalog:       &httpserver.CatalogHTTP{Svc: catalogSvc},
		Cart:          &httpserver.CartHTTP{Svc: &service.CartService{Repo: r}},
		Wishlist:      &httpserver.WishlistHTTP{Svc: &service.WishlistService{Repo: r}},
		Orders:        &httpserver.OrderHTTP{Svc: &service.OrderService{Repo: r, Events: publisher}},
		Balance:       &httpserver.BalanceHTTP{Svc: &service.BalanceService{Repo: r, Events: publisher}},
		History:       &httpserver.HistoryHTTP{Svc: historySvc},
	})

	addr := ":" + strconv.Itoa(cfg.ServerPort)
	go func() {
		logger.Info("starting server", "addr", addr, "db_driver", cfg.DBDriver)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("echo start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	logger.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("echo shutdown", "error", err)
	}
	if err := publisher.Close(); err != nil {
		logger.Error("publisher close", "error", err)
	}
	if sqlDB, err := gdb.DB(); err == nil {
		_ = sqlDB.Close()
	}

	logger.Info("server stopped")
}
