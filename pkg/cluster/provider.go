package cluster

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/distributed-mis/pkg/actor"
)

// SimpleProvider resolves peers across a statically configured set of
// machines. There is no dynamic membership here — peers are registered
// once at startup from config, never discovered or changed mid-run,
// matching the no-dynamic-membership scope of a node run.
type SimpleProvider struct {
	machineID string
	machines  map[string]string
	transport *Transport
	actorMap  map[actor.ActorType][]actor.PID
	byID      map[string]actor.PID
	logger    *zap.Logger
	mu        sync.RWMutex
}

func NewSimpleProvider(machineID string, transport *Transport, logger *zap.Logger) *SimpleProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SimpleProvider{
		machineID: machineID,
		machines:  make(map[string]string),
		transport: transport,
		actorMap:  make(map[actor.ActorType][]actor.PID),
		byID:      make(map[string]actor.PID),
		logger:    logger,
	}
}

func (p *SimpleProvider) MachineID() string { return p.machineID }

func (p *SimpleProvider) Start(ctx context.Context) error {
	p.mu.Lock()
	p.machines[p.machineID] = "localhost"
	p.mu.Unlock()

	if p.transport != nil {
		return p.transport.Start(ctx)
	}
	return nil
}

func (p *SimpleProvider) RegisterMachine(machineID, address string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, exists := p.machines[machineID]; !exists {
		p.machines[machineID] = address
		p.logger.Info("registered peer machine", zap.String("machine_id", machineID), zap.String("address", address))
	}
}

// RegisterActor records a remote (or local) actor's PID under actorType,
// so GetActors and FindActor can resolve it later.
func (p *SimpleProvider) RegisterActor(actorType actor.ActorType, pid actor.PID) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.actorMap[actorType] = append(p.actorMap[actorType], pid)
	p.byID[pid.ActorID] = pid

	actors := p.actorMap[actorType]
	sort.Slice(actors, func(i, j int) bool {
		if actors[i].MachineID != actors[j].MachineID {
			return actors[i].MachineID < actors[j].MachineID
		}
		return actors[i].ActorID < actors[j].ActorID
	})

	return nil
}

func (p *SimpleProvider) GetActors(actorType actor.ActorType) []actor.PID {
	p.mu.RLock()
	defer p.mu.RUnlock()

	actors := make([]actor.PID, len(p.actorMap[actorType]))
	copy(actors, p.actorMap[actorType])
	return actors
}

func (p *SimpleProvider) FindActor(actorID string) (actor.PID, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	pid, exists := p.byID[actorID]
	if !exists {
		return actor.PID{}, fmt.Errorf("no actor registered with id %s", actorID)
	}
	return pid, nil
}

func (p *SimpleProvider) Stop() error {
	if p.transport != nil {
		return p.transport.Stop()
	}
	return nil
}
