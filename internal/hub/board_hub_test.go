package hub

import (
	"sync"
	"testing"

	"syncBoard/internal/enums"
	"syncBoard/internal/models"
	socketModels "syncBoard/internal/models/socket"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	mu     sync.Mutex
	events []socketModels.ServerEvent
	closed bool
}

func (f *fakeConn) WriteJSON(v interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, v.(socketModels.ServerEvent))
	return nil
}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeConn) eventNames() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	names := make([]string, 0, len(f.events))
	for _, ev := range f.events {
		names = append(names, ev.Event)
	}
	return names
}

func newTestClient(userId uint, email string) (*models.SocketClient, *fakeConn) {
	conn := &fakeConn{}
	return &models.SocketClient{
		Conn:      conn,
		UserId:    userId,
		UserEmail: email,
	}, conn
}

func TestJoinConfirmsCallerAndNotifiesPeers(t *testing.T) {
	bh := NewBoardHub()
	alice, aliceConn := newTestClient(1, "alice@example.com")
	bob, bobConn := newTestClient(2, "bob@example.com")
	bh.Register(alice)
	bh.Register(bob)

	bh.Join(alice, 10, enums.ACCESS_LEVEL_EDIT)
	bh.Join(bob, 10, enums.ACCESS_LEVEL_VIEW)

	require.Equal(t, []string{enums.SOCKET_EVENT_JOINED_BOARD, enums.SOCKET_EVENT_JOINED_BOARD}, aliceConn.eventNames())
	require.Equal(t, []string{enums.SOCKET_EVENT_JOINED_BOARD}, bobConn.eventNames())

	// Alice's second event is Bob's arrival notice
	arrival := aliceConn.events[1].Payload.(socketModels.RoomPresencePayload)
	assert.Equal(t, uint(10), arrival.BoardId)
	assert.Equal(t, uint(2), arrival.UserId)
	assert.Equal(t, "bob@example.com", arrival.UserEmail)

	session, ok := bh.Session(bob)
	require.True(t, ok)
	assert.Equal(t, uint(10), session.BoardId)
	assert.Equal(t, enums.ACCESS_LEVEL_VIEW, session.Access)
}

func TestJoinSwitchesRoomWithImplicitLeave(t *testing.T) {
	bh := NewBoardHub()
	alice, aliceConn := newTestClient(1, "alice@example.com")
	bob, bobConn := newTestClient(2, "bob@example.com")
	bh.Register(alice)
	bh.Register(bob)

	bh.Join(bob, 10, enums.ACCESS_LEVEL_EDIT)
	bh.Join(alice, 10, enums.ACCESS_LEVEL_EDIT)
	bh.Join(alice, 20, enums.ACCESS_LEVEL_EDIT)

	// Alice: joined 10, left 10, joined 20 - leave ack precedes join confirmation
	require.Equal(t, []string{
		enums.SOCKET_EVENT_JOINED_BOARD,
		enums.SOCKET_EVENT_LEFT_BOARD,
		enums.SOCKET_EVENT_JOINED_BOARD,
	}, aliceConn.eventNames())

	leftPayload := aliceConn.events[1].Payload.(socketModels.RoomPresencePayload)
	assert.Equal(t, uint(10), leftPayload.BoardId)
	joinedPayload := aliceConn.events[2].Payload.(socketModels.RoomPresencePayload)
	assert.Equal(t, uint(20), joinedPayload.BoardId)

	// Bob saw Alice arrive then leave room 10
	require.Equal(t, []string{
		enums.SOCKET_EVENT_JOINED_BOARD,
		enums.SOCKET_EVENT_JOINED_BOARD,
		enums.SOCKET_EVENT_LEAVE_BOARD,
	}, bobConn.eventNames())

	session, ok := bh.Session(alice)
	require.True(t, ok)
	assert.Equal(t, uint(20), session.BoardId)
}

func TestLeaveBoardNotJoinedFails(t *testing.T) {
	bh := NewBoardHub()
	alice, aliceConn := newTestClient(1, "alice@example.com")
	bh.Register(alice)

	serr := bh.Leave(alice, 10)
	require.NotNil(t, serr)
	assert.Equal(t, 400, serr.Status)
	assert.Empty(t, aliceConn.eventNames())

	bh.Join(alice, 10, enums.ACCESS_LEVEL_EDIT)
	serr = bh.Leave(alice, 99)
	require.NotNil(t, serr)
	assert.Equal(t, 400, serr.Status)

	session, ok := bh.Session(alice)
	require.True(t, ok)
	assert.Equal(t, uint(10), session.BoardId)
}

func TestBroadcastExcludesSenderAndPreservesOrder(t *testing.T) {
	bh := NewBoardHub()
	alice, aliceConn := newTestClient(1, "alice@example.com")
	bob, bobConn := newTestClient(2, "bob@example.com")
	carol, carolConn := newTestClient(3, "carol@example.com")
	bh.Register(alice)
	bh.Register(bob)
	bh.Register(carol)
	bh.Join(alice, 10, enums.ACCESS_LEVEL_EDIT)
	bh.Join(bob, 10, enums.ACCESS_LEVEL_EDIT)
	bh.Join(carol, 10, enums.ACCESS_LEVEL_VIEW)

	aliceEvents := len(aliceConn.eventNames())
	bh.Broadcast(10, alice, enums.SOCKET_EVENT_CURSOR_MOVED, "e1")
	bh.Broadcast(10, alice, enums.SOCKET_EVENT_CURSOR_MOVED, "e2")

	assert.Len(t, aliceConn.eventNames(), aliceEvents, "sender must not receive its own cursor broadcast")

	for _, conn := range []*fakeConn{bobConn, carolConn} {
		var payloads []interface{}
		for _, ev := range conn.events {
			if ev.Event == enums.SOCKET_EVENT_CURSOR_MOVED {
				payloads = append(payloads, ev.Payload)
			}
		}
		require.Equal(t, []interface{}{"e1", "e2"}, payloads)
	}
}

func TestBroadcastAllIncludesSender(t *testing.T) {
	bh := NewBoardHub()
	alice, aliceConn := newTestClient(1, "alice@example.com")
	bh.Register(alice)
	bh.Join(alice, 10, enums.ACCESS_LEVEL_EDIT)

	bh.BroadcastAll(10, enums.SOCKET_EVENT_NEW_DRAWING, "shape")

	names := aliceConn.eventNames()
	assert.Equal(t, enums.SOCKET_EVENT_NEW_DRAWING, names[len(names)-1])
}

func TestDisconnectCleansUpMembership(t *testing.T) {
	bh := NewBoardHub()
	alice, _ := newTestClient(1, "alice@example.com")
	bob, bobConn := newTestClient(2, "bob@example.com")
	bh.Register(alice)
	bh.Register(bob)
	bh.Join(alice, 10, enums.ACCESS_LEVEL_EDIT)
	bh.Join(bob, 10, enums.ACCESS_LEVEL_EDIT)

	bh.Disconnect(alice)

	names := bobConn.eventNames()
	assert.Equal(t, enums.SOCKET_EVENT_LEAVE_BOARD, names[len(names)-1])

	_, ok := bh.Session(alice)
	assert.False(t, ok)

	// Nothing more reaches the disconnected client
	before := len(bobConn.eventNames())
	bh.Broadcast(10, bob, enums.SOCKET_EVENT_CURSOR_MOVED, "e1")
	assert.Len(t, bobConn.eventNames(), before)
}

func TestEmitError(t *testing.T) {
	bh := NewBoardHub()
	alice, aliceConn := newTestClient(1, "alice@example.com")
	bh.Register(alice)

	bh.Emit(alice, enums.SOCKET_EVENT_ERROR, "boom")
	require.Equal(t, []string{enums.SOCKET_EVENT_ERROR}, aliceConn.eventNames())
}
