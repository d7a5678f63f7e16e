package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func Test_Notices_Round_Trip(t *testing.T) {
	req := require.New(t)

	join := Message{Kind: KindSystem, Content: JoinNotice("Alice")}
	req.True(IsJoinNotice(join))
	req.False(IsLeaveNotice(join))

	leave := Message{Kind: KindSystem, Content: LeaveNotice("Alice")}
	req.True(IsLeaveNotice(leave))
	req.False(IsJoinNotice(leave))
}

func Test_Notices_Survive_Awkward_Display_Names(t *testing.T) {
	req := require.New(t)

	// A name that itself ends in " left" must still classify correctly.
	join := Message{Kind: KindSystem, Content: JoinNotice("nobody left")}
	req.True(IsJoinNotice(join))
	req.False(IsLeaveNotice(join))

	leave := Message{Kind: KindSystem, Content: LeaveNotice("almost joined")}
	req.True(IsLeaveNotice(leave))
	req.False(IsJoinNotice(leave))
}

func Test_User_Messages_Are_Never_Notices(t *testing.T) {
	req := require.New(t)

	m := Message{Kind: KindUser, Content: "Alice joined", At: time.Now()}
	req.False(IsJoinNotice(m))
	req.False(IsLeaveNotice(m))
}

func Test_NewParticipant_Generates_Unique_Ids(t *testing.T) {
	req := require.New(t)

	now := time.Now().UTC()
	first := NewParticipant("Alice", now)
	second := NewParticipant("Alice", now)
	req.NotEmpty(first.ClientID)
	req.NotEqual(first.ClientID, second.ClientID)
	req.Equal("Alice", first.DisplayName)
}
