//go:generate go run go.uber.org/mock/mockgen -source=history.go -destination=../mocks/mock_history_repository.go -package=mocks
package repositories

import (
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"sync"
	"time"

	"mailroom/domain"
	apperrors "mailroom/errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/fxamacker/cbor/v2"
	"github.com/samber/lo"
)

// HistoryRepository is the durable, append-only log of a room.
// Anything visible to Load or Tail survives a process restart.
//
// Append assigns the next sequence number for the room and persists the
// message before returning. Appends for a given room must be serialized
// by the caller (the registry's room guard provides this); appends on
// distinct rooms may run concurrently.
type HistoryRepository interface {
	Append(roomID string, message domain.Message) (uint64, error)
	Load(roomID string) ([]domain.Message, error)
	Tail(roomID string, limit int) ([]domain.Message, error)
}

type BadgerHistory struct {
	db  *badger.DB
	log *slog.Logger

	mu      sync.Mutex
	lastSeq map[string]uint64
}

func NewBadgerHistory(db *badger.DB, log *slog.Logger) *BadgerHistory {
	return &BadgerHistory{db: db, log: log, lastSeq: make(map[string]uint64)}
}

// record is the persisted shape of a message. Fields may be added but
// never renamed or removed, so records stay readable across versions.
type record struct {
	Seq         uint64 `cbor:"seq"`
	Room        string `cbor:"room"`
	ClientID    string `cbor:"client_id"`
	DisplayName string `cbor:"display_name"`
	Content     string `cbor:"content"`
	Kind        string `cbor:"kind"`
	At          int64  `cbor:"at"`
}

// roomPrefix escapes the caller-supplied room id so that no two rooms
// can ever share a key prefix. The 19-digit zero padded sequence in
// messageKey makes lexicographic order equal sequence order.
func roomPrefix(roomID string) []byte {
	return []byte(fmt.Sprintf("msg:%s:", url.QueryEscape(roomID)))
}

func messageKey(roomID string, seq uint64) []byte {
	return append(roomPrefix(roomID), []byte(fmt.Sprintf("%019d", seq))...)
}

// Append persists the message in a single transaction: either the full
// record is durable or nothing is visible to subsequent reads.
func (h *BadgerHistory) Append(roomID string, message domain.Message) (uint64, error) {
	seq, err := h.nextSeq(roomID)
	if err != nil {
		return 0, err
	}
	message.Seq = seq
	message.RoomID = roomID

	bytes, err := cbor.Marshal(toRecord(message))
	if err != nil {
		return 0, &apperrors.StorageWriteError{Room: roomID, Err: err}
	}
	err = h.db.Update(func(txn *badger.Txn) error {
		return txn.Set(messageKey(roomID, seq), bytes)
	})
	if err != nil {
		return 0, &apperrors.StorageWriteError{Room: roomID, Err: err}
	}

	h.mu.Lock()
	h.lastSeq[roomID] = seq
	h.mu.Unlock()
	return seq, nil
}

// nextSeq resumes numbering after the highest stored sequence. The
// reverse seek only happens on the first append after startup; later
// appends use the cached value.
func (h *BadgerHistory) nextSeq(roomID string) (uint64, error) {
	h.mu.Lock()
	last, ok := h.lastSeq[roomID]
	h.mu.Unlock()
	if ok {
		return last + 1, nil
	}

	err := h.db.View(func(txn *badger.Txn) error {
		prefix := roomPrefix(roomID)
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		options.PrefetchValues = false
		it := txn.NewIterator(options)
		defer it.Close()

		// Seek past the largest possible sequence, then step back onto
		// the highest existing key for this room.
		it.Seek(append(prefix, []byte("9999999999999999999")...))
		if !it.ValidForPrefix(prefix) {
			return nil
		}
		parsed, err := strconv.ParseUint(string(it.Item().Key()[len(prefix):]), 10, 64)
		if err != nil {
			return err
		}
		last = parsed
		return nil
	})
	if err != nil {
		return 0, &apperrors.StorageReadError{Room: roomID, Err: err}
	}

	if last > 0 {
		h.log.Debug(fmt.Sprintf("Resuming room %q at sequence %d", roomID, last))
	}
	h.mu.Lock()
	h.lastSeq[roomID] = last
	h.mu.Unlock()
	return last + 1, nil
}

func (h *BadgerHistory) Load(roomID string) ([]domain.Message, error) {
	var byteMessages [][]byte
	err := h.db.View(func(txn *badger.Txn) error {
		prefix := roomPrefix(roomID)
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(value []byte) error {
				byteMessages = append(byteMessages, append([]byte(nil), value...))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, &apperrors.StorageReadError{Room: roomID, Err: err}
	}
	return decodeAll(roomID, byteMessages)
}

// Tail returns the most recent limit messages, oldest first. A
// non-positive limit returns the full history; a limit beyond the
// available count returns everything without error.
func (h *BadgerHistory) Tail(roomID string, limit int) ([]domain.Message, error) {
	if limit <= 0 {
		return h.Load(roomID)
	}

	var byteMessages [][]byte
	err := h.db.View(func(txn *badger.Txn) error {
		prefix := roomPrefix(roomID)
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		seekKey := append(prefix, []byte("9999999999999999999")...)
		for it.Seek(seekKey); it.ValidForPrefix(prefix) && len(byteMessages) < limit; it.Next() {
			err := it.Item().Value(func(value []byte) error {
				byteMessages = append(byteMessages, append([]byte(nil), value...))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, &apperrors.StorageReadError{Room: roomID, Err: err}
	}

	// Collected newest first, hand back chronological.
	lo.Reverse(byteMessages)
	return decodeAll(roomID, byteMessages)
}

func decodeAll(roomID string, byteMessages [][]byte) ([]domain.Message, error) {
	var messages []domain.Message
	for _, b := range byteMessages {
		var r record
		if err := cbor.Unmarshal(b, &r); err != nil {
			return nil, &apperrors.RehydrationError{Room: roomID, Err: err}
		}
		messages = append(messages, fromRecord(r))
	}
	return messages, nil
}

func toRecord(message domain.Message) record {
	return record{
		Seq:         message.Seq,
		Room:        message.RoomID,
		ClientID:    message.ClientID,
		DisplayName: message.DisplayName,
		Content:     message.Content,
		Kind:        string(message.Kind),
		At:          message.At.UnixNano(),
	}
}

func fromRecord(r record) domain.Message {
	return domain.Message{
		Seq:         r.Seq,
		RoomID:      r.Room,
		ClientID:    r.ClientID,
		DisplayName: r.DisplayName,
		Content:     r.Content,
		Kind:        domain.Kind(r.Kind),
		At:          time.Unix(0, r.At).UTC(),
	}
}
