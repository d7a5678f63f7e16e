package repositories

import (
	"sync"

	"mailroom/domain"
)

// MemoryHistory implements HistoryRepository without touching disk.
// It honors the same contract (sequence assignment, oldest-first Tail)
// so business logic can be tested independently of the storage engine.
type MemoryHistory struct {
	mu   sync.RWMutex
	logs map[string][]domain.Message
}

func NewMemoryHistory() *MemoryHistory {
	return &MemoryHistory{logs: make(map[string][]domain.Message)}
}

func (h *MemoryHistory) Append(roomID string, message domain.Message) (uint64, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	// Sequences are gap-free per room, so the next one is the length.
	seq := uint64(len(h.logs[roomID]) + 1)
	message.Seq = seq
	message.RoomID = roomID
	h.logs[roomID] = append(h.logs[roomID], message)
	return seq, nil
}

func (h *MemoryHistory) Load(roomID string) ([]domain.Message, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	log := h.logs[roomID]
	if len(log) == 0 {
		return nil, nil
	}
	out := make([]domain.Message, len(log))
	copy(out, log)
	return out, nil
}

func (h *MemoryHistory) Tail(roomID string, limit int) ([]domain.Message, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	log := h.logs[roomID]
	if limit > 0 && limit < len(log) {
		log = log[len(log)-limit:]
	}
	if len(log) == 0 {
		return nil, nil
	}
	out := make([]domain.Message, len(log))
	copy(out, log)
	return out, nil
}
