package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/distributed-mis/pkg/cluster"
	"github.com/distributed-mis/pkg/config"
	"github.com/distributed-mis/pkg/graphio"
	"github.com/distributed-mis/pkg/mis"
	"github.com/distributed-mis/pkg/runtime"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to configuration file (YAML)")
		metricsAddr = flag.String("metrics-addr", ":9090", "address to serve /metrics on")
	)
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if *configPath == "" {
		logger.Fatal("no configuration file provided; pass -config path/to/node.yaml")
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}
	logger.Info("loaded configuration", zap.String("path", *configPath), zap.String("machine_id", cfg.MachineID))

	g, err := graphio.ReadEdgesFromCSV(cfg.DataPath)
	if err != nil {
		logger.Fatal("failed to load topology", zap.String("data_path", cfg.DataPath), zap.Error(err))
	}
	logger.Info("loaded topology", zap.Int("node_count", len(g.NodeIDs())))

	transport := cluster.NewTransport(cfg.MachineID, logger)
	provider := cluster.NewSimpleProvider(cfg.MachineID, transport, logger)
	for _, peer := range cfg.Network.Peers {
		provider.RegisterMachine(peer.ID, peer.Address)
	}

	go serveMetrics(*metricsAddr, logger)

	newStrategy := func(nodeID int) mis.Strategy {
		strat, err := cfg.NewStrategy(nodeID)
		if err != nil {
			logger.Fatal("building strategy", zap.Int("node_id", nodeID), zap.Error(err))
		}
		return strat
	}

	run, err := runtime.NewRun(cfg.MachineID, g, newStrategy, string(cfg.Algorithm), transport, provider, logger)
	if err != nil {
		logger.Fatal("failed to build run", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := run.Start(ctx); err != nil {
		logger.Fatal("failed to start run", zap.Error(err))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	doneChan := make(chan runtime.RunComplete, 1)
	go func() {
		rc, err := run.Wait(ctx)
		if err != nil {
			return
		}
		doneChan <- rc
	}()

	select {
	case <-sigChan:
		logger.Info("received shutdown signal")
	case rc := <-doneChan:
		summary := run.Supervisor.Outcomes().Summarize()
		logger.Info("run complete",
			zap.Int("total_nodes", summary.TotalNodes),
			zap.Int("in_mis", summary.InMIS),
			zap.Int("dormant", summary.Dormant),
		)
		_ = rc
	case <-time.After(1 * time.Hour):
		logger.Warn("run exceeded the maximum wait time")
	}

	logger.Info("shutting down")
	run.Shutdown()
	logger.Info("shutdown complete")
}

func serveMetrics(addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", runtime.MetricsHandler())
	logger.Info("serving metrics", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("metrics server stopped", zap.Error(err))
	}
}
