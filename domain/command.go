package domain

// Command is an intent targeting a single room.
type Command interface {
	RoomID() string
}

type JoinRoomCommand struct {
	Room        string
	DisplayName string
}

func (c JoinRoomCommand) RoomID() string {
	return c.Room
}

type SendMessageCommand struct {
	Room     string
	ClientID string
	Content  string
}

func (c SendMessageCommand) RoomID() string {
	return c.Room
}

type LeaveChatCommand struct {
	Room     string
	ClientID string
}

func (c LeaveChatCommand) RoomID() string {
	return c.Room
}

// HistoryQuery asks for the most recent messages of a room in
// chronological order. A nil or non-positive Limit means full history.
type HistoryQuery struct {
	Room  string
	Limit *int
}

func (c HistoryQuery) RoomID() string {
	return c.Room
}
