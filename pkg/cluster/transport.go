package cluster

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/distributed-mis/pkg/actor"
)

// Transport is the cross-machine send path an actor.ActorSystem falls
// back to once a PID resolves to a different machine. Real network I/O
// (gRPC, TCP framing, retries) is out of scope here — the node core never
// has any dynamic-membership or cross-host networking requirement to
// drive one, so this stays a logging stub that proves out the wire
// encoding (JSON, per the external-interfaces contract) without actually
// opening a socket.
type Transport struct {
	machineID string
	logger    *zap.Logger
}

func NewTransport(machineID string, logger *zap.Logger) *Transport {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Transport{machineID: machineID, logger: logger}
}

func (t *Transport) Start(ctx context.Context) error {
	t.logger.Info("transport started", zap.String("machine_id", t.machineID))
	return nil
}

func (t *Transport) Send(to actor.PID, msg actor.Message) error {
	if to.MachineID == t.machineID {
		return fmt.Errorf("transport should only handle remote messages, got local PID %s", to)
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to serialize message: %w", err)
	}

	t.logger.Info("would send message over the network",
		zap.String("to", to.String()),
		zap.String("type", msg.Type()),
		zap.Int("bytes", len(data)),
	)
	return nil
}

func (t *Transport) Stop() error {
	t.logger.Info("transport stopped", zap.String("machine_id", t.machineID))
	return nil
}
