//go:generate go run go.uber.org/mock/mockgen -source=chat_service.go -destination=../mocks/mock_chat_service.go -package=mocks
package services

import (
	"context"
	"log/slog"

	"mailroom/domain"
	"mailroom/runtime"
)

// IChatService exposes the five mailbox operations to the transport
// layer. Senders never wait for a reply: SendMessage returns as soon as
// the message is durably appended.
type IChatService interface {
	JoinRoom(ctx context.Context, cmd domain.JoinRoomCommand) (string, error)
	SendMessage(ctx context.Context, cmd domain.SendMessageCommand) (uint64, error)
	GetRoomStatus(ctx context.Context, roomID string) (domain.RoomStatus, error)
	GetHistory(ctx context.Context, query domain.HistoryQuery) ([]domain.Message, error)
	LeaveChat(ctx context.Context, cmd domain.LeaveChatCommand) error
}

type ChatService struct {
	registry     *runtime.Registry
	log          *slog.Logger
	defaultLimit *int
}

func NewChatService(registry *runtime.Registry, log *slog.Logger, defaultLimit *int) *ChatService {
	return &ChatService{registry: registry, log: log, defaultLimit: defaultLimit}
}

// JoinRoom creates the room on first touch and always succeeds for a
// reachable room: knowledge of the room id is the credential.
func (s *ChatService) JoinRoom(ctx context.Context, cmd domain.JoinRoomCommand) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	clientID, err := s.registry.Join(cmd.Room, cmd.DisplayName)
	if err != nil {
		return "", err
	}
	s.log.Info("participant joined", "room_id", cmd.Room, "display_name", cmd.DisplayName)
	return clientID, nil
}

func (s *ChatService) SendMessage(ctx context.Context, cmd domain.SendMessageCommand) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return s.registry.Send(cmd.Room, cmd.ClientID, cmd.Content)
}

// GetRoomStatus never fails on an unknown room id: it reports an empty
// room, which is indistinguishable from a created-but-unjoined one.
func (s *ChatService) GetRoomStatus(_ context.Context, roomID string) (domain.RoomStatus, error) {
	return s.registry.Status(roomID)
}

// GetHistory returns the most recent messages in chronological order.
// Without an explicit limit the configured default cap applies, if any.
func (s *ChatService) GetHistory(_ context.Context, query domain.HistoryQuery) ([]domain.Message, error) {
	limit := 0
	switch {
	case query.Limit != nil && *query.Limit > 0:
		limit = *query.Limit
	case query.Limit == nil && s.defaultLimit != nil:
		limit = *s.defaultLimit
	}
	return s.registry.History(query.Room, limit)
}

func (s *ChatService) LeaveChat(ctx context.Context, cmd domain.LeaveChatCommand) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.registry.Leave(cmd.Room, cmd.ClientID); err != nil {
		return err
	}
	s.log.Info("participant left", "room_id", cmd.Room, "client_id", cmd.ClientID)
	return nil
}
