// Package runtime owns the room registry, the per-room state caches,
// and their concurrency guards. It carries no transport or UI logic.
package runtime

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"mailroom/domain"
	"mailroom/repositories"
)

// Registry is the top-level map from room id to cached room state.
// Rooms are created lazily on first touch; creation is idempotent.
// The registry mutex only guards the map itself, never a room's
// operations, so a slow room never blocks the others.
type Registry struct {
	mu      sync.Mutex
	log     *slog.Logger
	history repositories.HistoryRepository
	rooms   map[string]*RoomState
}

func NewRegistry(log *slog.Logger, history repositories.HistoryRepository) *Registry {
	return &Registry{
		log:     log,
		history: history,
		rooms:   make(map[string]*RoomState),
	}
}

// GetOrCreate returns the cached state for roomID, inserting a fresh
// entry if absent. Rehydration from the durable log happens under the
// room's own guard, outside the registry mutex.
func (r *Registry) GetOrCreate(roomID string) (*RoomState, error) {
	state := r.lookupOrInsert(roomID)
	state.mu.Lock()
	err := state.hydrateLocked()
	state.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return state, nil
}

func (r *Registry) lookupOrInsert(roomID string) *RoomState {
	r.mu.Lock()
	defer r.mu.Unlock()
	state, ok := r.rooms[roomID]
	if !ok {
		state = newRoomState(roomID, r.history, r.log)
		r.rooms[roomID] = state
	}
	return state
}

// withRoom runs op against the room's live cache entry. If the entry
// was retired by the evictor between lookup and lock acquisition, the
// lookup is retried on a fresh entry; the durable log makes the retry
// lossless.
func (r *Registry) withRoom(roomID string, op func(*RoomState) error) error {
	for {
		err := op(r.lookupOrInsert(roomID))
		if errors.Is(err, errRetired) {
			continue
		}
		return err
	}
}

func (r *Registry) Join(roomID, displayName string) (string, error) {
	var clientID string
	err := r.withRoom(roomID, func(state *RoomState) error {
		var err error
		clientID, err = state.Join(displayName)
		return err
	})
	return clientID, err
}

func (r *Registry) Send(roomID, clientID, content string) (uint64, error) {
	var seq uint64
	err := r.withRoom(roomID, func(state *RoomState) error {
		var err error
		seq, err = state.Send(clientID, content)
		return err
	})
	return seq, err
}

func (r *Registry) Leave(roomID, clientID string) error {
	return r.withRoom(roomID, func(state *RoomState) error {
		return state.Leave(clientID)
	})
}

func (r *Registry) Status(roomID string) (domain.RoomStatus, error) {
	var status domain.RoomStatus
	err := r.withRoom(roomID, func(state *RoomState) error {
		var err error
		status, err = state.Status()
		return err
	})
	return status, err
}

// History reads straight from the durable log. Reads need no exclusive
// guard: the storage engine's snapshot isolation guarantees a torn
// record is never observed.
func (r *Registry) History(roomID string, limit int) ([]domain.Message, error) {
	return r.history.Tail(roomID, limit)
}

// EvictIdle drops cache entries untouched for at least ttl and returns
// how many were evicted. Dropping is safe: the next touch rehydrates
// the room from its log. Rooms with an operation in flight are skipped.
func (r *Registry) EvictIdle(ttl time.Duration) int {
	now := time.Now()
	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	for id, state := range r.rooms {
		if state.tryRetire(now, ttl) {
			delete(r.rooms, id)
			evicted++
		}
	}
	return evicted
}

// Len reports the number of cached rooms.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rooms)
}
