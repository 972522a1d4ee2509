package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/distributed-mis/pkg/config"
	"github.com/distributed-mis/pkg/graph"
	"github.com/distributed-mis/pkg/mis"
	"github.com/distributed-mis/pkg/runtime"
)

const (
	DefaultTimeout = 30 * time.Second
)

func main() {
	var (
		topology  = flag.String("topology", "star:5", "demo topology: path:N, cycle:N, complete:N, star:N, empty:N")
		algorithm = flag.String("algorithm", string(config.AlgorithmFastMIS), "slow-mis, fast-mis, or desire-level-mis")
		outPath   = flag.String("out", "", "optional CSV path to write the final outcomes to")
		verbose   = flag.Bool("verbose", false, "enable debug-level logging")
	)
	flag.Parse()

	logger, err := newLogger(*verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	g, err := parseTopology(*topology)
	if err != nil {
		logger.Fatal("invalid topology", zap.Error(err))
	}

	cfg := &config.Config{
		MachineID: "simulate",
		Algorithm: config.Algorithm(*algorithm),
		Timing: config.Timing{
			InitialStartDelay:    20 * time.Millisecond,
			PhaseInterval:        50 * time.Millisecond,
			RandomValueSendDelay: 10 * time.Millisecond,
			RoundInterval:        50 * time.Millisecond,
			DesireLevelSendDelay: 10 * time.Millisecond,
		},
	}

	newStrategy := func(nodeID int) mis.Strategy {
		strat, err := cfg.NewStrategy(nodeID)
		if err != nil {
			logger.Fatal("building strategy", zap.Int("node_id", nodeID), zap.Error(err))
		}
		return strat
	}

	run, err := runtime.NewRun(cfg.MachineID, g, newStrategy, *algorithm, nil, nil, logger)
	if err != nil {
		logger.Fatal("building run", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), DefaultTimeout)
	defer cancel()

	if err := run.Start(ctx); err != nil {
		logger.Fatal("starting run", zap.Error(err))
	}
	defer run.Shutdown()

	rc, err := run.Wait(ctx)
	if err != nil {
		logger.Fatal("run did not complete before the timeout", zap.Error(err))
	}

	summary := run.Supervisor.Outcomes().Summarize()
	logger.Info("run complete",
		zap.String("algorithm", *algorithm),
		zap.String("topology", *topology),
		zap.Int("total_nodes", summary.TotalNodes),
		zap.Int("in_mis", summary.InMIS),
		zap.Int("dormant", summary.Dormant),
		zap.Int("max_rounds_or_phases", summary.MaxRounds),
	)

	for _, o := range rc.Outcomes {
		fmt.Printf("node %d: in_mis=%t rounds_or_phases=%d messages_sent=%d messages_received=%d\n",
			o.NodeID, o.InMIS, o.RoundsOrPhasesUsed, o.MessagesSent, o.MessagesReceived)
	}

	if *outPath != "" {
		if err := run.Supervisor.Outcomes().WriteCSV(*outPath); err != nil {
			logger.Error("writing outcomes CSV", zap.Error(err))
		}
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	return cfg.Build()
}

func parseTopology(spec string) (*graph.Graph, error) {
	kind, count, ok := strings.Cut(spec, ":")
	if !ok {
		return nil, fmt.Errorf("expected KIND:N (e.g. star:5), got %q", spec)
	}
	var n int
	if _, err := fmt.Sscanf(count, "%d", &n); err != nil {
		return nil, fmt.Errorf("expected KIND:N (e.g. star:5), got %q: %w", spec, err)
	}

	switch kind {
	case "path":
		return graph.Path(n), nil
	case "cycle":
		return graph.Cycle(n), nil
	case "complete":
		return graph.Complete(n), nil
	case "star":
		return graph.Star(n), nil
	case "empty":
		return graph.Empty(n), nil
	default:
		return nil, fmt.Errorf("unknown topology kind %q", kind)
	}
}
