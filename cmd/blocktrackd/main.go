package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	"blocktrack/chain"
	"blocktrack/config"
	"blocktrack/core/events"
	"blocktrack/native/payments"
	"blocktrack/native/supply"
	"blocktrack/observability/logging"
	"blocktrack/rpc"
	"blocktrack/storage"
	"blocktrack/wallet"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configFile := flag.String("config", "./config.toml", "Path to the configuration file")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.Setup("blocktrackd", cfg.Env, logging.ParseLevel(cfg.LogLevel))

	db, err := storage.NewLevelDB(cfg.DataDir)
	if err != nil {
		logger.Error("open database failed", "dataDir", cfg.DataDir, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	repo := storage.NewRepository(db, logger)

	emitter := events.NewLogEmitter(logger)

	engine, err := supply.NewEngine(repo)
	if err != nil {
		logger.Error("initialise supply engine failed", "error", err)
		os.Exit(1)
	}
	engine.SetEmitter(emitter)

	provider, err := wallet.DialProvider(cfg.ProviderURL)
	if err != nil {
		logger.Error("dial wallet provider failed", "url", cfg.ProviderURL, "error", err)
		os.Exit(1)
	}
	defer provider.Close()

	caller, err := ethclient.Dial(cfg.ProviderURL)
	if err != nil {
		logger.Error("dial chain endpoint failed", "url", cfg.ProviderURL, "error", err)
		os.Exit(1)
	}
	defer caller.Close()

	adapter, err := chain.NewAdapter(
		caller,
		provider,
		common.HexToAddress(cfg.ProductRegistryAddress),
		common.HexToAddress(cfg.ParticipantRegistryAddress),
		logger,
	)
	if err != nil {
		logger.Error("initialise contract adapter failed", "error", err)
		os.Exit(1)
	}

	bridge := wallet.NewBridge(provider, adapter, cfg.ExpectedChainID, logger)
	bridge.SetEmitter(emitter)

	ledger, err := payments.NewLedger(repo, bridge, adapter, engine)
	if err != nil {
		logger.Error("initialise payment ledger failed", "error", err)
		os.Exit(1)
	}
	ledger.SetEmitter(emitter)

	server := rpc.NewServer(engine, ledger, bridge, adapter, cfg.AuthToken, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go provider.Watch(ctx, cfg.ProviderPollInterval())
	go bridge.Run(ctx)

	httpServer := &http.Server{
		Addr:              cfg.ListenAddress,
		Handler:           server.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("rpc server listening",
			"address", cfg.ListenAddress,
			"chainId", cfg.ExpectedChainID,
			"authEnabled", strings.TrimSpace(cfg.AuthToken) != "",
		)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("rpc server failed", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("rpc server shutdown failed", "error", err)
	}
	bridge.Disconnect()
	logger.Info("shutdown complete")
}
