package actor

import (
	"context"
	"fmt"
	"sync"
)

// Transport delivers messages to actors hosted on a different machine.
type Transport interface {
	Send(to PID, msg Message) error
	Start(ctx context.Context) error
	Stop() error
}

// Provider resolves actors beyond this machine: peer lookups by type or ID.
type Provider interface {
	GetActors(actorType ActorType) []PID
	FindActor(actorID string) (PID, error)
	Start(ctx context.Context) error
	Stop() error
}

// ActorSystem owns local actor registration and routes messages to local or
// remote actors. A local actor's type is recorded at registration time so
// Broadcast can target every actor of a given type without the caller
// needing to track PIDs itself.
type ActorSystem struct {
	machineID string
	actors    map[string]Actor
	typeIndex map[ActorType][]PID
	mu        sync.RWMutex
	transport Transport
	provider  Provider
	ctx       context.Context
	cancel    context.CancelFunc
}

func NewActorSystem(machineID string, transport Transport, provider Provider) *ActorSystem {
	ctx, cancel := context.WithCancel(context.Background())
	return &ActorSystem{
		machineID: machineID,
		actors:    make(map[string]Actor),
		typeIndex: make(map[ActorType][]PID),
		transport: transport,
		provider:  provider,
		ctx:       ctx,
		cancel:    cancel,
	}
}

func (s *ActorSystem) MachineID() string { return s.machineID }

func (s *ActorSystem) Start() error {
	if s.provider != nil {
		if err := s.provider.Start(s.ctx); err != nil {
			return err
		}
	}
	if s.transport != nil {
		return s.transport.Start(s.ctx)
	}
	return nil
}

// Register adds a local actor under the given type, enabling Broadcast and
// GetLocalActors to find it without a separate provider round trip.
func (s *ActorSystem) Register(a Actor, actorType ActorType) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pid := a.PID()
	if _, exists := s.actors[pid.ActorID]; exists {
		return fmt.Errorf("actor %s already registered", pid.ActorID)
	}

	s.actors[pid.ActorID] = a
	s.typeIndex[actorType] = append(s.typeIndex[actorType], pid)
	return nil
}

func (s *ActorSystem) Unregister(actorID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.actors, actorID)
	for t, pids := range s.typeIndex {
		filtered := pids[:0]
		for _, pid := range pids {
			if pid.ActorID != actorID {
				filtered = append(filtered, pid)
			}
		}
		s.typeIndex[t] = filtered
	}
}

func (s *ActorSystem) Send(to PID, msg Message) error {
	if to.IsLocal(s.machineID) {
		return s.localDeliver(to, msg)
	}
	return s.remoteDeliver(to, msg)
}

func (s *ActorSystem) localDeliver(to PID, msg Message) error {
	s.mu.RLock()
	a, exists := s.actors[to.ActorID]
	s.mu.RUnlock()

	if !exists {
		return ErrActorNotFound
	}

	mailbox := a.GetMailbox()
	if mailbox != nil {
		return mailbox.Send(msg)
	}

	go a.Receive(s.ctx, msg)
	return nil
}

func (s *ActorSystem) remoteDeliver(to PID, msg Message) error {
	if s.transport == nil {
		return fmt.Errorf("no transport configured for remote delivery")
	}
	return s.transport.Send(to, msg)
}

func (s *ActorSystem) GetActor(actorID string) (Actor, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, exists := s.actors[actorID]
	return a, exists
}

// GetLocalActors returns the PIDs registered locally under actorType.
func (s *ActorSystem) GetLocalActors(actorType ActorType) []PID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pids := make([]PID, len(s.typeIndex[actorType]))
	copy(pids, s.typeIndex[actorType])
	return pids
}

// Broadcast delivers msg to every locally registered actor of actorType.
// This is intentionally local-only: cross-machine fan-out is a host
// runtime concern the domain core never requires (neighbor messaging uses
// direct per-neighbor Send, not a systemwide broadcast).
func (s *ActorSystem) Broadcast(actorType ActorType, msg Message) {
	s.mu.RLock()
	pids := make([]PID, len(s.typeIndex[actorType]))
	copy(pids, s.typeIndex[actorType])
	s.mu.RUnlock()

	for _, pid := range pids {
		go s.localDeliver(pid, msg)
	}
}

func (s *ActorSystem) Shutdown() {
	s.cancel()

	s.mu.RLock()
	actors := make([]Actor, 0, len(s.actors))
	for _, a := range s.actors {
		actors = append(actors, a)
	}
	s.mu.RUnlock()

	for _, a := range actors {
		a.Stop()
	}

	if s.transport != nil {
		s.transport.Stop()
	}
	if s.provider != nil {
		s.provider.Stop()
	}
}

func (s *ActorSystem) GetActors(actorType ActorType) []PID {
	if s.provider != nil {
		return s.provider.GetActors(actorType)
	}
	return s.GetLocalActors(actorType)
}

func (s *ActorSystem) FindActor(actorID string) (PID, error) {
	if s.provider != nil {
		return s.provider.FindActor(actorID)
	}
	return PID{}, fmt.Errorf("no cluster provider available")
}
