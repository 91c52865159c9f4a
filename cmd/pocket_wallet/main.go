package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"log/slog"

	applogger "pocket_wallet/internal/pkg/logger"
	"pocket_wallet/internal/pkg/metrics"
	"pocket_wallet/internal/pkg/utils"

	"pocket_wallet/internal/app/service"
	"pocket_wallet/internal/infrastructure/chainregistry"
	"pocket_wallet/internal/infrastructure/configloader"
	"pocket_wallet/internal/infrastructure/httpclient"
	"pocket_wallet/internal/infrastructure/keyvault"
	"pocket_wallet/internal/infrastructure/logostore"
	"pocket_wallet/internal/infrastructure/network/client"
	"pocket_wallet/internal/infrastructure/restapi"

	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)
	log.SetLevel(logrus.InfoLevel)

	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize zap logger: %v", err)
	}
	defer zapLogger.Sync()

	slogHandler := zapslog.NewHandler(zapLogger.Core())
	slog.SetDefault(slog.New(slogHandler))

	cfgPath := utils.GetEnv("CONFIG_PATH", "config/config.yml")
	cfg, err := configloader.Load(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		log.Warnf("Invalid log level in config: %s. Defaulting to Info.", cfg.Logging.Level)
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	applogger.InitSlog(cfg.Logging.Level)
	appLog := applogger.NewSlogAdapter()

	zapLogger.Info("Configuration loaded", zap.String("path", cfgPath))

	metrics.MustRegisterMetrics()

	registry := chainregistry.NewRegistry(cfg.RPC.InfuraKey, appLog)
	provider := client.NewEVMClientProvider(cfg, zapLogger)

	dataTimeout := time.Duration(cfg.DataAPI.RequestTimeoutMillis) * time.Millisecond
	dataClient := httpclient.NewMoralisClient(cfg.DataAPI.BaseURL, cfg.DataAPI.APIKey, dataTimeout, zapLogger)
	zapLogger.Info("Wallet data client initialized", zap.String("baseURL", cfg.DataAPI.BaseURL))

	logoStore, err := logostore.NewStore(
		cfg.Logos.Directory,
		time.Duration(cfg.Logos.CacheTTLMinutes)*time.Minute,
		zapLogger,
	)
	if err != nil {
		log.Fatalf("Failed to initialize logo store: %v", err)
	}

	poller := service.NewGasPoller(
		provider,
		appLog,
		cfg.Gas.DefaultGasLimit,
		time.Duration(cfg.Gas.PollIntervalSeconds)*time.Second,
	)
	poller.Start()
	defer poller.Stop()

	merger := service.NewHistoryMerger(cfg.Session.IPFSGateway, "/logo?symbol=placeholder")
	networth := service.NewNetworthCalculator()
	vault := keyvault.NewMemoryVault()

	session := service.NewWalletSession(
		registry,
		provider,
		dataClient,
		vault,
		merger,
		networth,
		poller,
		appLog,
		time.Duration(cfg.Session.RefreshDelaySeconds)*time.Second,
		cfg.Gas.DefaultGasLimit,
	)
	zapLogger.Info("Wallet session service initialized")

	handler := restapi.NewWalletHandler(session, registry, dataClient, logoStore, merger, networth, zapLogger)
	router := restapi.SetupRouter(handler, zapLogger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		zapLogger.Info(fmt.Sprintf("Server starting on port %s", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		zapLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exiting")
}
