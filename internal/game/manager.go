package game

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Match couples an engine with the mutex that serializes its commands.
// PlayerState is mutated in multi-step sequences, so every external
// command for a match must run under this lock.
type Match struct {
	ID        string
	Engine    *Engine
	Events    *EventBuffer
	CreatedAt time.Time

	mu sync.Mutex
}

// Manager owns all live matches in the process.
type Manager struct {
	logger *zap.Logger

	mu      sync.RWMutex
	matches map[string]*Match

	eventBufferSize int
}

// NewManager creates a match manager. bufferSize bounds each match's
// retained event tail; zero or less means unbounded.
func NewManager(logger *zap.Logger, bufferSize int) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		logger:          logger,
		matches:         make(map[string]*Match),
		eventBufferSize: bufferSize,
	}
}

// CreateMatch creates a new two-player match with a generated id. The
// match's event buffer is installed as the engine sink ahead of any
// caller-supplied options.
func (m *Manager) CreateMatch(playerIDs []string, opts ...Option) (*Match, error) {
	matchID := uuid.NewString()
	events := NewEventBuffer(m.eventBufferSize)

	engineOpts := append([]Option{WithSink(events)}, opts...)
	engine, err := NewEngine(matchID, playerIDs, m.logger, engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("create match: %w", err)
	}

	match := &Match{
		ID:        matchID,
		Engine:    engine,
		Events:    events,
		CreatedAt: time.Now(),
	}

	m.mu.Lock()
	m.matches[matchID] = match
	m.mu.Unlock()

	m.logger.Info("match created",
		zap.String("match_id", matchID),
		zap.Strings("players", playerIDs),
	)
	return match, nil
}

// Get returns the match with the given id.
func (m *Manager) Get(matchID string) (*Match, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	match, ok := m.matches[matchID]
	return match, ok
}

// Remove drops a match from the manager.
func (m *Manager) Remove(matchID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.matches, matchID)
}

// List returns the ids of all live matches.
func (m *Manager) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0, len(m.matches))
	for id := range m.matches {
		ids = append(ids, id)
	}
	return ids
}

// Do runs fn against the match's engine with the match lock held. This is
// the serialization point for all external commands.
func (m *Manager) Do(matchID string, fn func(*Engine) error) error {
	match, ok := m.Get(matchID)
	if !ok {
		return fmt.Errorf("game: no such match %q", matchID)
	}

	match.mu.Lock()
	defer match.mu.Unlock()
	return fn(match.Engine)
}
