package services

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"mailroom/domain"
	"mailroom/mocks"
	"mailroom/repositories"
	"mailroom/runtime"

	"github.com/mama165/sdk-go/logs"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestService(t *testing.T) *ChatService {
	t.Helper()
	log := logs.GetLoggerFromLevel(slog.LevelError)
	registry := runtime.NewRegistry(log, repositories.NewMemoryHistory())
	return NewChatService(registry, log, nil)
}

func Test_End_To_End_Scenario(t *testing.T) {
	ctx := context.Background()
	req := require.New(t)
	service := newTestService(t)

	c1, err := service.JoinRoom(ctx, domain.JoinRoomCommand{Room: "r1", DisplayName: "Alice"})
	req.NoError(err)
	c2, err := service.JoinRoom(ctx, domain.JoinRoomCommand{Room: "r1", DisplayName: "Bob"})
	req.NoError(err)

	_, err = service.SendMessage(ctx, domain.SendMessageCommand{Room: "r1", ClientID: c1, Content: "hi"})
	req.NoError(err)
	_, err = service.SendMessage(ctx, domain.SendMessageCommand{Room: "r1", ClientID: c2, Content: "hey"})
	req.NoError(err)

	status, err := service.GetRoomStatus(ctx, "r1")
	req.NoError(err)
	req.Equal(4, status.MessageCount) // 2 join notices + 2 user messages
	req.Equal([]string{"Alice", "Bob"}, status.Participants)

	history, err := service.GetHistory(ctx, domain.HistoryQuery{Room: "r1", Limit: lo.ToPtr(2)})
	req.NoError(err)
	req.Len(history, 2)
	req.Equal("hi", history[0].Content)
	req.Equal("Alice", history[0].DisplayName)
	req.Equal("hey", history[1].Content)
	req.Equal("Bob", history[1].DisplayName)

	full, err := service.GetHistory(ctx, domain.HistoryQuery{Room: "r1", Limit: lo.ToPtr(100)})
	req.NoError(err)
	req.Len(full, 4)
}

func Test_GetRoomStatus_Unknown_Room_Is_Empty(t *testing.T) {
	req := require.New(t)
	service := newTestService(t)

	status, err := service.GetRoomStatus(context.Background(), "never-seen")
	req.NoError(err)
	req.Zero(status.MessageCount)
	req.Empty(status.Participants)
}

func Test_GetHistory_Applies_The_Default_Cap_Only_Without_Explicit_Limit(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	history := mocks.NewMockHistoryRepository(ctrl)
	log := logs.GetLoggerFromLevel(slog.LevelError)
	registry := runtime.NewRegistry(log, history)
	service := NewChatService(registry, log, lo.ToPtr(50))

	gomock.InOrder(
		history.EXPECT().Tail("r1", 50).Return(nil, nil),
		history.EXPECT().Tail("r1", 3).Return(nil, nil),
		history.EXPECT().Tail("r1", 0).Return(nil, nil),
	)

	_, err := service.GetHistory(context.Background(), domain.HistoryQuery{Room: "r1"})
	req.NoError(err)
	_, err = service.GetHistory(context.Background(), domain.HistoryQuery{Room: "r1", Limit: lo.ToPtr(3)})
	req.NoError(err)
	// An explicit non-positive limit asks for the full history.
	_, err = service.GetHistory(context.Background(), domain.HistoryQuery{Room: "r1", Limit: lo.ToPtr(0)})
	req.NoError(err)
}

func Test_Abandoned_Request_Is_Not_Sent(t *testing.T) {
	req := require.New(t)
	service := newTestService(t)

	ctx := context.Background()
	clientID, err := service.JoinRoom(ctx, domain.JoinRoomCommand{Room: "r1", DisplayName: "Alice"})
	req.NoError(err)

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = service.SendMessage(canceled, domain.SendMessageCommand{Room: "r1", ClientID: clientID, Content: "too late"})
	req.ErrorIs(err, context.Canceled)

	status, err := service.GetRoomStatus(ctx, "r1")
	req.NoError(err)
	req.Equal(1, status.MessageCount)
}

func Test_Message_Timestamps_Are_Monotonic_Per_Room(t *testing.T) {
	ctx := context.Background()
	req := require.New(t)
	service := newTestService(t)

	clientID, err := service.JoinRoom(ctx, domain.JoinRoomCommand{Room: "r1", DisplayName: "Alice"})
	req.NoError(err)
	for i := 0; i < 5; i++ {
		_, err = service.SendMessage(ctx, domain.SendMessageCommand{Room: "r1", ClientID: clientID, Content: "tick"})
		req.NoError(err)
	}

	history, err := service.GetHistory(ctx, domain.HistoryQuery{Room: "r1"})
	req.NoError(err)
	req.Len(history, 6)
	var previous time.Time
	for _, m := range history {
		req.False(m.At.Before(previous))
		previous = m.At
	}
}
