package runtime

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"mailroom/domain"
	apperrors "mailroom/errors"
	"mailroom/repositories"

	"github.com/samber/lo"
)

// errRetired signals that this cache entry was evicted between lookup
// and lock acquisition. The registry retries on a fresh entry.
var errRetired = fmt.Errorf("room state retired")

// RoomState is the in-memory cache of one room: the participant set in
// join order and the running message count. It is rehydrated from the
// durable log on first access and owns the room's exclusive guard.
//
// Every mutating operation holds the guard for its full duration,
// including the durable append, so sequence numbers are assigned
// without gaps and concurrent senders never interleave a half-finished
// append. A failed append leaves the cache untouched.
type RoomState struct {
	mu      sync.RWMutex
	id      string
	log     *slog.Logger
	history repositories.HistoryRepository

	hydrated     bool
	retired      bool
	participants []domain.Participant
	count        int
	createdAt    time.Time
	lastActivity time.Time
	lastAt       time.Time
	lastTouch    time.Time
}

func newRoomState(id string, history repositories.HistoryRepository, log *slog.Logger) *RoomState {
	return &RoomState{id: id, history: history, log: log, lastTouch: time.Now()}
}

// hydrateLocked replays the durable log once to rebuild the cache:
// every message bumps the count, join and leave notices rebuild the
// participant set deterministically. Caller holds the write lock.
func (s *RoomState) hydrateLocked() error {
	if s.retired {
		return errRetired
	}
	if s.hydrated {
		return nil
	}

	messages, err := s.history.Load(s.id)
	if err != nil {
		return err
	}

	for _, m := range messages {
		s.count++
		s.lastAt = m.At
		s.lastActivity = m.At
		switch {
		case domain.IsJoinNotice(m):
			s.participants = append(s.participants, domain.Participant{
				ClientID:    m.ClientID,
				DisplayName: m.DisplayName,
				JoinedAt:    m.At,
			})
		case domain.IsLeaveNotice(m):
			s.removeLocked(m.ClientID)
		}
	}
	if len(messages) > 0 {
		s.createdAt = messages[0].At
	} else {
		s.createdAt = time.Now().UTC()
	}
	s.hydrated = true
	if s.count > 0 {
		s.log.Debug("room rehydrated", "room_id", s.id, "message_count", s.count)
	}
	return nil
}

// clockLocked returns a capture time that never moves backwards within
// a room, even if the wall clock does.
func (s *RoomState) clockLocked() time.Time {
	ts := time.Now().UTC()
	if ts.Before(s.lastAt) {
		ts = s.lastAt
	}
	return ts
}

func (s *RoomState) findLocked(clientID string) (domain.Participant, bool) {
	return lo.Find(s.participants, func(p domain.Participant) bool {
		return p.ClientID == clientID
	})
}

func (s *RoomState) removeLocked(clientID string) {
	s.participants = lo.Reject(s.participants, func(p domain.Participant, _ int) bool {
		return p.ClientID == clientID
	})
}

// appendLocked writes through to the durable log and only then updates
// the cached count and activity. A request that fails before
// persistence must not partially mutate state.
func (s *RoomState) appendLocked(message domain.Message) (uint64, error) {
	seq, err := s.history.Append(s.id, message)
	if err != nil {
		return 0, err
	}
	s.count++
	s.lastAt = message.At
	s.lastActivity = message.At
	return seq, nil
}

// Join adds a fresh participant identity and records a system join
// notice in the log.
func (s *RoomState) Join(displayName string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hydrateLocked(); err != nil {
		return "", err
	}

	ts := s.clockLocked()
	participant := domain.NewParticipant(displayName, ts)
	_, err := s.appendLocked(domain.Message{
		RoomID:      s.id,
		ClientID:    participant.ClientID,
		DisplayName: displayName,
		Content:     domain.JoinNotice(displayName),
		Kind:        domain.KindSystem,
		At:          ts,
	})
	if err != nil {
		return "", err
	}
	s.participants = append(s.participants, participant)
	s.lastTouch = time.Now()
	return participant.ClientID, nil
}

// Send appends a user message with the sender's current display name.
// The name is snapshotted into the message so later renames never
// rewrite history.
func (s *RoomState) Send(clientID, content string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hydrateLocked(); err != nil {
		return 0, err
	}

	participant, ok := s.findLocked(clientID)
	if !ok {
		return 0, apperrors.ErrNotAMember
	}

	seq, err := s.appendLocked(domain.Message{
		RoomID:      s.id,
		ClientID:    participant.ClientID,
		DisplayName: participant.DisplayName,
		Content:     content,
		Kind:        domain.KindUser,
		At:          s.clockLocked(),
	})
	if err != nil {
		return 0, err
	}
	s.lastTouch = time.Now()
	return seq, nil
}

// Leave removes the participant from the active set and records a
// system leave notice. Past messages from that client stay in the log.
func (s *RoomState) Leave(clientID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hydrateLocked(); err != nil {
		return err
	}

	participant, ok := s.findLocked(clientID)
	if !ok {
		return apperrors.ErrNotAMember
	}

	_, err := s.appendLocked(domain.Message{
		RoomID:      s.id,
		ClientID:    participant.ClientID,
		DisplayName: participant.DisplayName,
		Content:     domain.LeaveNotice(participant.DisplayName),
		Kind:        domain.KindSystem,
		At:          s.clockLocked(),
	})
	if err != nil {
		return err
	}
	s.removeLocked(clientID)
	s.lastTouch = time.Now()
	return nil
}

// Status is an O(1) snapshot read. It takes the shared lock only, so
// readers never queue behind each other, yet always observe a state
// that existed at a single instant.
func (s *RoomState) Status() (domain.RoomStatus, error) {
	s.mu.RLock()
	if s.hydrated && !s.retired {
		status := s.statusLocked()
		s.mu.RUnlock()
		return status, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.hydrateLocked(); err != nil {
		return domain.RoomStatus{}, err
	}
	return s.statusLocked(), nil
}

func (s *RoomState) statusLocked() domain.RoomStatus {
	return domain.RoomStatus{
		RoomID:       s.id,
		MessageCount: s.count,
		Participants: lo.Map(s.participants, func(p domain.Participant, _ int) string {
			return p.DisplayName
		}),
		CreatedAt:    s.createdAt,
		LastActivity: s.lastActivity,
	}
}

// tryRetire marks the entry dead if it has been idle for at least ttl.
// It refuses when the guard is contended: an in-flight operation always
// wins over eviction.
func (s *RoomState) tryRetire(now time.Time, ttl time.Duration) bool {
	if !s.mu.TryLock() {
		return false
	}
	defer s.mu.Unlock()
	if now.Sub(s.lastTouch) < ttl {
		return false
	}
	s.retired = true
	return true
}
