package hub

import (
	"log"
	"net/http"
	"sync"

	"syncBoard/internal/enums"
	"syncBoard/internal/errs"
	"syncBoard/internal/models"
	socketModels "syncBoard/internal/models/socket"
	"syncBoard/internal/msgs"
)

// BoardHub owns the room registry and every live session. All membership
// mutation and every outgoing write happens under one mutex, so events from a
// given sender reach each peer in the order they were dispatched.
type BoardHub struct {
	mu       sync.Mutex
	boards   map[uint][]*models.SocketClient
	sessions map[*models.SocketClient]*models.Session
}

func NewBoardHub() *BoardHub {
	return &BoardHub{
		boards:   make(map[uint][]*models.SocketClient),
		sessions: make(map[*models.SocketClient]*models.Session),
	}
}

// Register creates the unjoined session for a freshly authenticated
// connection.
func (bh *BoardHub) Register(client *models.SocketClient) {
	bh.mu.Lock()
	defer bh.mu.Unlock()
	bh.sessions[client] = &models.Session{
		UserId:    client.UserId,
		UserEmail: client.UserEmail,
	}
}

// Session returns a copy of the client's current session state.
func (bh *BoardHub) Session(client *models.SocketClient) (models.Session, bool) {
	bh.mu.Lock()
	defer bh.mu.Unlock()
	session, ok := bh.sessions[client]
	if !ok {
		return models.Session{}, false
	}
	return *session, true
}

// Join moves the client into the board room under the given access level. If
// the client is already in another room it is implicitly removed from that
// room first, with the usual leave notifications, so a connection is never in
// two rooms at once. The caller is confirmed with joinedBoard and existing
// members are notified of the arrival.
func (bh *BoardHub) Join(client *models.SocketClient, boardId uint, access enums.AccessLevel) {
	bh.mu.Lock()
	defer bh.mu.Unlock()

	session, ok := bh.sessions[client]
	if !ok {
		return
	}
	if session.Joined() {
		bh.leaveLocked(client, session)
	}

	bh.boards[boardId] = append(bh.boards[boardId], client)
	session.BoardId = boardId
	session.Access = access

	payload := socketModels.RoomPresencePayload{
		BoardId:   boardId,
		UserId:    client.UserId,
		UserEmail: client.UserEmail,
	}
	bh.emitLocked(client, enums.SOCKET_EVENT_JOINED_BOARD, payload)
	bh.broadcastLocked(boardId, client, enums.SOCKET_EVENT_JOINED_BOARD, payload)
}

// Leave removes the client from the given board room. Leaving a room the
// client is not in is a no-op surfaced as an error to the caller only.
func (bh *BoardHub) Leave(client *models.SocketClient, boardId uint) *errs.SocketError {
	bh.mu.Lock()
	defer bh.mu.Unlock()

	session, ok := bh.sessions[client]
	if !ok || session.BoardId != boardId {
		return errs.NewSocketError(http.StatusBadRequest, msgs.MsgBoardNotJoined)
	}
	bh.leaveLocked(client, session)
	return nil
}

// Disconnect performs leave-side cleanup and discards the session.
func (bh *BoardHub) Disconnect(client *models.SocketClient) {
	bh.mu.Lock()
	defer bh.mu.Unlock()

	session, ok := bh.sessions[client]
	if ok && session.Joined() {
		bh.leaveLocked(client, session)
	}
	delete(bh.sessions, client)
}

// Broadcast sends an event to every room member except the sender.
func (bh *BoardHub) Broadcast(boardId uint, sender *models.SocketClient, event string, payload interface{}) {
	bh.mu.Lock()
	defer bh.mu.Unlock()
	bh.broadcastLocked(boardId, sender, event, payload)
}

// BroadcastAll sends an event to every room member including the sender.
func (bh *BoardHub) BroadcastAll(boardId uint, event string, payload interface{}) {
	bh.mu.Lock()
	defer bh.mu.Unlock()
	bh.broadcastLocked(boardId, nil, event, payload)
}

// BroadcastGlobal sends an event to every live connection, used for presence.
func (bh *BoardHub) BroadcastGlobal(event string, payload interface{}) {
	bh.mu.Lock()
	defer bh.mu.Unlock()
	for client := range bh.sessions {
		bh.emitLocked(client, event, payload)
	}
}

// Emit sends an event to a single connection.
func (bh *BoardHub) Emit(client *models.SocketClient, event string, payload interface{}) {
	bh.mu.Lock()
	defer bh.mu.Unlock()
	bh.emitLocked(client, event, payload)
}

// EmitError reports a failure to the originating connection only.
func (bh *BoardHub) EmitError(client *models.SocketClient, serr *errs.SocketError) {
	bh.Emit(client, enums.SOCKET_EVENT_ERROR, serr)
}

// CloseAll closes every connection, used on server shutdown.
func (bh *BoardHub) CloseAll() {
	bh.mu.Lock()
	defer bh.mu.Unlock()
	for client := range bh.sessions {
		if err := client.Conn.Close(); err != nil {
			log.Printf("Error closing connection: %v", err)
		}
		delete(bh.sessions, client)
	}
	bh.boards = make(map[uint][]*models.SocketClient)
}

func (bh *BoardHub) leaveLocked(client *models.SocketClient, session *models.Session) {
	boardId := session.BoardId
	for i, member := range bh.boards[boardId] {
		if member == client {
			bh.boards[boardId] = append(bh.boards[boardId][:i], bh.boards[boardId][i+1:]...)
			break
		}
	}
	if len(bh.boards[boardId]) == 0 {
		delete(bh.boards, boardId)
	}
	session.BoardId = 0
	session.Access = enums.ACCESS_LEVEL_NONE

	payload := socketModels.RoomPresencePayload{
		BoardId:   boardId,
		UserId:    client.UserId,
		UserEmail: client.UserEmail,
	}
	bh.emitLocked(client, enums.SOCKET_EVENT_LEFT_BOARD, payload)
	bh.broadcastLocked(boardId, client, enums.SOCKET_EVENT_LEAVE_BOARD, payload)
}

func (bh *BoardHub) broadcastLocked(boardId uint, sender *models.SocketClient, event string, payload interface{}) {
	for _, member := range bh.boards[boardId] {
		if member == sender {
			continue
		}
		bh.emitLocked(member, event, payload)
	}
}

func (bh *BoardHub) emitLocked(client *models.SocketClient, event string, payload interface{}) {
	err := client.Conn.WriteJSON(socketModels.ServerEvent{
		Event:   event,
		Payload: payload,
	})
	if err != nil {
		log.Printf("Error writing json to user %v: %v", client.UserId, err)
		if err := client.Conn.Close(); err != nil {
			log.Printf("Error closing connection: %v", err)
		}
	}
}
