package runtime

import (
	"log/slog"
	"sync"
	"testing"
	"time"

	apperrors "mailroom/errors"
	"mailroom/mocks"
	"mailroom/repositories"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestRegistry() *Registry {
	return NewRegistry(logs.GetLoggerFromLevel(slog.LevelError), repositories.NewMemoryHistory())
}

func Test_GetOrCreate_Is_Idempotent(t *testing.T) {
	req := require.New(t)
	registry := newTestRegistry()

	first, err := registry.GetOrCreate("r1")
	req.NoError(err)
	second, err := registry.GetOrCreate("r1")
	req.NoError(err)
	req.Same(first, second)

	status, err := registry.Status("r1")
	req.NoError(err)
	req.Zero(status.MessageCount)
	req.Empty(status.Participants)
}

func Test_Send_Requires_Prior_Join(t *testing.T) {
	req := require.New(t)
	registry := newTestRegistry()

	_, err := registry.Send("r1", "never-joined", "hello?")
	req.ErrorIs(err, apperrors.ErrNotAMember)

	status, err := registry.Status("r1")
	req.NoError(err)
	req.Zero(status.MessageCount)
}

func Test_Leave_Requires_Membership_And_Keeps_History(t *testing.T) {
	req := require.New(t)
	registry := newTestRegistry()

	req.ErrorIs(registry.Leave("r1", "ghost"), apperrors.ErrNotAMember)

	clientID, err := registry.Join("r1", "Alice")
	req.NoError(err)
	_, err = registry.Send("r1", clientID, "hello")
	req.NoError(err)
	req.NoError(registry.Leave("r1", clientID))

	// A departed client can no longer send, but nothing is deleted.
	_, err = registry.Send("r1", clientID, "again")
	req.ErrorIs(err, apperrors.ErrNotAMember)

	status, err := registry.Status("r1")
	req.NoError(err)
	req.Equal(3, status.MessageCount) // join + message + leave
	req.Empty(status.Participants)
}

func Test_Rejoin_Issues_A_Fresh_Identity(t *testing.T) {
	req := require.New(t)
	registry := newTestRegistry()

	first, err := registry.Join("r1", "Alice")
	req.NoError(err)
	req.NoError(registry.Leave("r1", first))
	second, err := registry.Join("r1", "Alice")
	req.NoError(err)
	req.NotEqual(first, second)

	// The old identity stays retired.
	_, err = registry.Send("r1", first, "hello")
	req.ErrorIs(err, apperrors.ErrNotAMember)
}

func Test_Concurrent_Senders_Get_Gap_Free_Increasing_Sequences(t *testing.T) {
	req := require.New(t)
	registry := newTestRegistry()

	clientID, err := registry.Join("r1", "Alice")
	req.NoError(err)

	const senders = 20
	seqs := make(chan uint64, senders)
	var wg sync.WaitGroup
	for i := 0; i < senders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seq, err := registry.Send("r1", clientID, "concurrent")
			req.NoError(err)
			seqs <- seq
		}()
	}
	wg.Wait()
	close(seqs)

	seen := make(map[uint64]bool)
	for seq := range seqs {
		req.False(seen[seq], "sequence assigned twice")
		seen[seq] = true
	}
	// Join took seq 1, the senders must fill 2..senders+1 with no gap.
	for seq := uint64(2); seq <= senders+1; seq++ {
		req.True(seen[seq], "missing sequence %d", seq)
	}

	messages, err := registry.History("r1", 0)
	req.NoError(err)
	req.Len(messages, senders+1)
	for i := 1; i < len(messages); i++ {
		req.Greater(messages[i].Seq, messages[i-1].Seq)
		req.False(messages[i].At.Before(messages[i-1].At))
	}
}

func Test_Blocked_Room_Never_Blocks_Another_Room(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	history := mocks.NewMockHistoryRepository(ctrl)
	registry := NewRegistry(logs.GetLoggerFromLevel(slog.LevelError), history)

	history.EXPECT().Load(gomock.Any()).Return(nil, nil).AnyTimes()

	release := make(chan struct{})
	history.EXPECT().
		Append("slow", gomock.Any()).
		DoAndReturn(func(string, any) (uint64, error) {
			<-release
			return 1, nil
		})
	history.EXPECT().Append("fast", gomock.Any()).Return(uint64(1), nil)

	slowDone := make(chan struct{})
	go func() {
		defer close(slowDone)
		_, err := registry.Join("slow", "Alice")
		req.NoError(err)
	}()

	fastDone := make(chan struct{})
	go func() {
		defer close(fastDone)
		_, err := registry.Join("fast", "Bob")
		req.NoError(err)
	}()

	select {
	case <-fastDone:
		// Room "fast" finished while "slow" is still stuck in its append.
	case <-time.After(2 * time.Second):
		req.Fail("operation on an independent room was blocked")
	}

	close(release)
	<-slowDone
}

func Test_Failed_Append_Mutates_Nothing(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	history := mocks.NewMockHistoryRepository(ctrl)
	registry := NewRegistry(logs.GetLoggerFromLevel(slog.LevelError), history)

	history.EXPECT().Load("r1").Return(nil, nil)
	gomock.InOrder(
		history.EXPECT().Append("r1", gomock.Any()).Return(uint64(1), nil),
		history.EXPECT().Append("r1", gomock.Any()).
			Return(uint64(0), &apperrors.StorageWriteError{Room: "r1"}),
	)

	clientID, err := registry.Join("r1", "Alice")
	req.NoError(err)

	_, err = registry.Send("r1", clientID, "rejected by the medium")
	var writeErr *apperrors.StorageWriteError
	req.ErrorAs(err, &writeErr)

	status, err := registry.Status("r1")
	req.NoError(err)
	req.Equal(1, status.MessageCount)
	req.Equal([]string{"Alice"}, status.Participants)
}

func Test_Evicted_Room_Rehydrates_From_Its_Log(t *testing.T) {
	req := require.New(t)
	registry := newTestRegistry()

	clientID, err := registry.Join("r1", "Alice")
	req.NoError(err)
	_, err = registry.Send("r1", clientID, "survives eviction")
	req.NoError(err)

	req.Equal(1, registry.EvictIdle(0))
	req.Zero(registry.Len())

	status, err := registry.Status("r1")
	req.NoError(err)
	req.Equal(2, status.MessageCount)
	req.Equal([]string{"Alice"}, status.Participants)

	// Membership survives eviction too: it lives in the log.
	_, err = registry.Send("r1", clientID, "still a member")
	req.NoError(err)
}

func Test_EvictIdle_Skips_Recently_Touched_Rooms(t *testing.T) {
	req := require.New(t)
	registry := newTestRegistry()

	_, err := registry.Join("r1", "Alice")
	req.NoError(err)

	req.Zero(registry.EvictIdle(time.Hour))
	req.Equal(1, registry.Len())
}
