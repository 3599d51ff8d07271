package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"
	"time"

	"syncBoard/internal/enums"
	"syncBoard/internal/errs"
	"syncBoard/internal/hub"
	"syncBoard/internal/models"
	socketModels "syncBoard/internal/models/socket"
	"syncBoard/internal/msgs"
	"syncBoard/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeConn struct {
	mu     sync.Mutex
	events []socketModels.ServerEvent
}

func (f *fakeConn) WriteJSON(v interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, v.(socketModels.ServerEvent))
	return nil
}

func (f *fakeConn) Close() error { return nil }

func (f *fakeConn) snapshot() []socketModels.ServerEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]socketModels.ServerEvent(nil), f.events...)
}

func (f *fakeConn) lastEvent() (socketModels.ServerEvent, bool) {
	events := f.snapshot()
	if len(events) == 0 {
		return socketModels.ServerEvent{}, false
	}
	return events[len(events)-1], true
}

type fakeBoardStore struct {
	mu     sync.Mutex
	boards map[uint]*models.Board
}

func newFakeBoardStore(boards ...*models.Board) *fakeBoardStore {
	store := &fakeBoardStore{boards: make(map[uint]*models.Board)}
	for _, board := range boards {
		store.boards[board.ID] = board
	}
	return store
}

func (f *fakeBoardStore) CreateBoard(board *models.Board) (*models.Board, error) {
	return board, nil
}

func (f *fakeBoardStore) GetBoardByID(id uint) (*models.Board, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	board, ok := f.boards[id]
	if !ok {
		return nil, errs.ErrBoardNotFound
	}
	copied := *board
	return &copied, nil
}

func (f *fakeBoardStore) GetUserBoards(userId uint, page, size int) (*models.BoardListResponse, error) {
	return &models.BoardListResponse{}, nil
}

func (f *fakeBoardStore) SearchUserBoards(userId uint, name string, page, size int) (*models.BoardListResponse, error) {
	return &models.BoardListResponse{}, nil
}

func (f *fakeBoardStore) DeleteBoard(id uint) error                                  { return nil }
func (f *fakeBoardStore) AddCollaborator(collaborator *models.BoardCollaborator) error { return nil }
func (f *fakeBoardStore) RemoveCollaborator(boardId, userId uint) error              { return nil }
func (f *fakeBoardStore) UpdateSecurity(boardId uint, security string) error         { return nil }
func (f *fakeBoardStore) UpdateThumbnail(boardId uint, url string) error             { return nil }

func (f *fakeBoardStore) UpsertBoardPage(boardId uint, page models.Page) (models.Pages, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	board, ok := f.boards[boardId]
	if !ok {
		return nil, errs.ErrBoardNotFound
	}
	replaced := false
	for i, p := range board.Pages {
		if p.PageNumber == page.PageNumber {
			board.Pages[i] = page
			replaced = true
			break
		}
	}
	if !replaced {
		board.Pages = append(board.Pages, page)
	}
	return append(models.Pages(nil), board.Pages...), nil
}

func (f *fakeBoardStore) DeleteBoardPage(boardId uint, pageNumber int) (models.Pages, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	board, ok := f.boards[boardId]
	if !ok {
		return nil, errs.ErrBoardNotFound
	}
	remaining := make(models.Pages, 0, len(board.Pages))
	found := false
	for _, p := range board.Pages {
		if p.PageNumber == pageNumber {
			found = true
			continue
		}
		remaining = append(remaining, p)
	}
	if !found {
		return nil, errs.ErrPageNotFound
	}
	board.Pages = remaining
	return append(models.Pages(nil), board.Pages...), nil
}

func (f *fakeBoardStore) pages(boardId uint) models.Pages {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append(models.Pages(nil), f.boards[boardId].Pages...)
}

type fakeChangeStore struct {
	mu      sync.Mutex
	changes []*models.BoardChange
}

func (f *fakeChangeStore) CreateBoardChange(change *models.BoardChange) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.changes = append(f.changes, change)
	return nil
}

func (f *fakeChangeStore) GetBoardChanges(boardId uint, page, size int) (*models.BoardChangeListResponse, error) {
	return &models.BoardChangeListResponse{}, nil
}

func (f *fakeChangeStore) snapshot() []*models.BoardChange {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*models.BoardChange(nil), f.changes...)
}

type testRig struct {
	handler *SocketBoardHandler
	hub     *hub.BoardHub
	store   *fakeBoardStore
	changes *fakeChangeStore
}

func newTestRig(boards ...*models.Board) *testRig {
	store := newFakeBoardStore(boards...)
	changes := &fakeChangeStore{}
	boardHub := hub.NewBoardHub()
	return &testRig{
		handler: &SocketBoardHandler{
			ctx:          context.Background(),
			hub:          boardHub,
			boardService: services.NewBoardService(store, changes),
			syncService:  services.NewSyncService(store, changes),
		},
		hub:     boardHub,
		store:   store,
		changes: changes,
	}
}

func (r *testRig) connect(userId uint, email string) (*models.SocketClient, *fakeConn) {
	conn := &fakeConn{}
	client := &models.SocketClient{Conn: conn, UserId: userId, UserEmail: email}
	r.hub.Register(client)
	return client, conn
}

func (r *testRig) send(t *testing.T, client *models.SocketClient, event string, payload interface{}) {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	r.handler.HandleEvent(client, socketModels.SocketEvent{Event: event, Payload: raw})
}

func sharedBoard(id, owner uint, security string, collaborators ...models.BoardCollaborator) *models.Board {
	return &models.Board{
		Model:         gorm.Model{ID: id},
		Name:          "roadmap",
		CreatedBy:     owner,
		Security:      security,
		Collaborators: collaborators,
		Pages:         models.Pages{},
	}
}

func TestDrawIsBroadcastAndPersisted(t *testing.T) {
	rig := newTestRig(sharedBoard(10, 1, enums.BOARD_SECURITY_PRIVATE,
		models.BoardCollaborator{BoardID: 10, UserID: 2, Permission: enums.ACCESS_LEVEL_EDIT},
	))
	owner, ownerConn := rig.connect(1, "owner@example.com")
	collab, collabConn := rig.connect(2, "collab@example.com")

	rig.send(t, owner, enums.SOCKET_EVENT_JOIN_BOARD, socketModels.JoinBoardPayload{BoardId: 10})
	rig.send(t, collab, enums.SOCKET_EVENT_JOIN_BOARD, socketModels.JoinBoardPayload{BoardId: 10})

	rig.send(t, owner, enums.SOCKET_EVENT_DRAW, socketModels.PageUpdatePayload{
		BoardId: 10,
		UpdatedBoardPage: models.Page{
			PageNumber:        1,
			WhiteBoardObjects: []map[string]interface{}{{"type": "rect"}},
		},
	})

	// Both room members see the drawing, sender included
	for _, conn := range []*fakeConn{ownerConn, collabConn} {
		last, ok := conn.lastEvent()
		require.True(t, ok)
		require.Equal(t, enums.SOCKET_EVENT_NEW_DRAWING, last.Event)
		payload := last.Payload.(socketModels.PageUpdatedPayload)
		assert.Equal(t, uint(1), payload.UserId)
		assert.Equal(t, "owner@example.com", payload.UserEmail)
		assert.Equal(t, 1, payload.UpdatedBoardPage.PageNumber)
	}

	require.Eventually(t, func() bool {
		return len(rig.changes.snapshot()) == 1
	}, time.Second, 10*time.Millisecond)

	pages := rig.store.pages(10)
	require.Len(t, pages, 1)
	assert.Equal(t, 1, pages[0].PageNumber)

	change := rig.changes.snapshot()[0]
	assert.Equal(t, uint(10), change.BoardID)
	assert.Equal(t, uint(1), change.ChangerID)
	assert.Empty(t, change.OldPages)
	assert.Len(t, change.NewPages, 1)
}

func TestViewerCannotDraw(t *testing.T) {
	rig := newTestRig(sharedBoard(10, 1, enums.BOARD_SECURITY_PUBLIC))
	owner, ownerConn := rig.connect(1, "owner@example.com")
	viewer, viewerConn := rig.connect(4, "viewer@example.com")

	rig.send(t, owner, enums.SOCKET_EVENT_JOIN_BOARD, socketModels.JoinBoardPayload{BoardId: 10})
	rig.send(t, viewer, enums.SOCKET_EVENT_JOIN_BOARD, socketModels.JoinBoardPayload{BoardId: 10})
	ownerEvents := len(ownerConn.snapshot())

	rig.send(t, viewer, enums.SOCKET_EVENT_DRAW, socketModels.PageUpdatePayload{
		BoardId:          10,
		UpdatedBoardPage: models.Page{PageNumber: 1},
	})

	last, ok := viewerConn.lastEvent()
	require.True(t, ok)
	require.Equal(t, enums.SOCKET_EVENT_ERROR, last.Event)
	serr := last.Payload.(*errs.SocketError)
	assert.Equal(t, http.StatusForbidden, serr.Status)
	assert.Equal(t, msgs.MsgNoPermissionToDraw, serr.Message)

	// Nothing was broadcast and nothing persisted
	assert.Len(t, ownerConn.snapshot(), ownerEvents)
	assert.Empty(t, rig.store.pages(10))
	assert.Empty(t, rig.changes.snapshot())
}

func TestStrangerCannotJoinPrivateBoard(t *testing.T) {
	rig := newTestRig(sharedBoard(10, 1, enums.BOARD_SECURITY_PRIVATE))
	stranger, strangerConn := rig.connect(4, "stranger@example.com")

	rig.send(t, stranger, enums.SOCKET_EVENT_JOIN_BOARD, socketModels.JoinBoardPayload{BoardId: 10})

	last, ok := strangerConn.lastEvent()
	require.True(t, ok)
	require.Equal(t, enums.SOCKET_EVENT_ERROR, last.Event)
	serr := last.Payload.(*errs.SocketError)
	assert.Equal(t, http.StatusForbidden, serr.Status)
	assert.Equal(t, msgs.MsgBoardAccessDenied, serr.Message)

	session, sessionExists := rig.hub.Session(stranger)
	require.True(t, sessionExists)
	assert.False(t, session.Joined())
}

func TestDrawWithoutJoiningFails(t *testing.T) {
	rig := newTestRig(sharedBoard(10, 1, enums.BOARD_SECURITY_PRIVATE))
	owner, ownerConn := rig.connect(1, "owner@example.com")

	rig.send(t, owner, enums.SOCKET_EVENT_DRAW, socketModels.PageUpdatePayload{
		BoardId:          10,
		UpdatedBoardPage: models.Page{PageNumber: 1},
	})

	last, ok := ownerConn.lastEvent()
	require.True(t, ok)
	require.Equal(t, enums.SOCKET_EVENT_ERROR, last.Event)
	serr := last.Payload.(*errs.SocketError)
	assert.Equal(t, http.StatusBadRequest, serr.Status)
	assert.Equal(t, msgs.MsgBoardNotJoined, serr.Message)
}

func TestCursorMoveReachesPeersOnly(t *testing.T) {
	rig := newTestRig(sharedBoard(10, 1, enums.BOARD_SECURITY_PUBLIC))
	owner, ownerConn := rig.connect(1, "owner@example.com")
	viewer, viewerConn := rig.connect(4, "viewer@example.com")

	rig.send(t, owner, enums.SOCKET_EVENT_JOIN_BOARD, socketModels.JoinBoardPayload{BoardId: 10})
	rig.send(t, viewer, enums.SOCKET_EVENT_JOIN_BOARD, socketModels.JoinBoardPayload{BoardId: 10})
	viewerEvents := len(viewerConn.snapshot())

	// Viewers may move their cursor, it is not an edit
	rig.send(t, viewer, enums.SOCKET_EVENT_CURSOR_MOVE, socketModels.CursorMovePayload{BoardId: 10, X: 3, Y: 7})

	last, ok := ownerConn.lastEvent()
	require.True(t, ok)
	require.Equal(t, enums.SOCKET_EVENT_CURSOR_MOVED, last.Event)
	payload := last.Payload.(socketModels.CursorMovedPayload)
	assert.Equal(t, uint(4), payload.UserId)
	assert.Equal(t, float64(3), payload.X)
	assert.Equal(t, float64(7), payload.Y)

	assert.Len(t, viewerConn.snapshot(), viewerEvents, "sender must not echo its own cursor")
	assert.Empty(t, rig.changes.snapshot(), "cursor movement is never persisted")
}

func TestDeleteMissingPageReportsToSenderOnly(t *testing.T) {
	rig := newTestRig(sharedBoard(10, 1, enums.BOARD_SECURITY_PRIVATE))
	owner, ownerConn := rig.connect(1, "owner@example.com")

	rig.send(t, owner, enums.SOCKET_EVENT_JOIN_BOARD, socketModels.JoinBoardPayload{BoardId: 10})
	rig.send(t, owner, enums.SOCKET_EVENT_DELETE_PAGE, socketModels.PageNumberPayload{BoardId: 10, PageNumber: 7})

	require.Eventually(t, func() bool {
		last, ok := ownerConn.lastEvent()
		return ok && last.Event == enums.SOCKET_EVENT_ERROR
	}, time.Second, 10*time.Millisecond)

	last, _ := ownerConn.lastEvent()
	serr := last.Payload.(*errs.SocketError)
	assert.Equal(t, http.StatusNotFound, serr.Status)
	assert.Contains(t, serr.Message, msgs.MsgEditNotSaved)
	assert.Empty(t, rig.changes.snapshot())
}

func TestClearPagePersistsEmptyPage(t *testing.T) {
	board := sharedBoard(10, 1, enums.BOARD_SECURITY_PRIVATE)
	board.Pages = models.Pages{{
		PageNumber:        1,
		WhiteBoardObjects: []map[string]interface{}{{"type": "rect"}},
	}}
	rig := newTestRig(board)
	owner, ownerConn := rig.connect(1, "owner@example.com")

	rig.send(t, owner, enums.SOCKET_EVENT_JOIN_BOARD, socketModels.JoinBoardPayload{BoardId: 10})
	rig.send(t, owner, enums.SOCKET_EVENT_CLEAR_PAGE, socketModels.PageNumberPayload{BoardId: 10, PageNumber: 1})

	last, ok := ownerConn.lastEvent()
	require.True(t, ok)
	assert.Equal(t, enums.SOCKET_EVENT_CLEARED_PAGE, last.Event)

	require.Eventually(t, func() bool {
		return len(rig.changes.snapshot()) == 1
	}, time.Second, 10*time.Millisecond)

	pages := rig.store.pages(10)
	require.Len(t, pages, 1)
	assert.Equal(t, 1, pages[0].PageNumber)
	assert.Empty(t, pages[0].WhiteBoardObjects)
}

func TestDrawAcceptsClientWireFormat(t *testing.T) {
	rig := newTestRig(sharedBoard(10, 1, enums.BOARD_SECURITY_PRIVATE))
	owner, ownerConn := rig.connect(1, "owner@example.com")

	rig.handler.HandleEvent(owner, socketModels.SocketEvent{
		Event:   enums.SOCKET_EVENT_JOIN_BOARD,
		Payload: json.RawMessage(`{"boardId":10}`),
	})
	last, ok := ownerConn.lastEvent()
	require.True(t, ok)
	require.Equal(t, enums.SOCKET_EVENT_JOINED_BOARD, last.Event)

	// A single whiteboard object is accepted where a collection is expected
	rig.handler.HandleEvent(owner, socketModels.SocketEvent{
		Event:   enums.SOCKET_EVENT_DRAW,
		Payload: json.RawMessage(`{"boardId":10,"updatedBoardPage":{"pageNumber":1,"whiteBoardObjects":{"type":"rect"}}}`),
	})

	last, ok = ownerConn.lastEvent()
	require.True(t, ok)
	require.Equal(t, enums.SOCKET_EVENT_NEW_DRAWING, last.Event)
	payload := last.Payload.(socketModels.PageUpdatedPayload)
	assert.Equal(t, uint(10), payload.BoardId)
	require.Len(t, payload.UpdatedBoardPage.WhiteBoardObjects, 1)
	assert.Equal(t, "rect", payload.UpdatedBoardPage.WhiteBoardObjects[0]["type"])

	require.Eventually(t, func() bool {
		return len(rig.changes.snapshot()) == 1
	}, time.Second, 10*time.Millisecond)

	pages := rig.store.pages(10)
	require.Len(t, pages, 1)
	assert.Equal(t, 1, pages[0].PageNumber)
	require.Len(t, pages[0].WhiteBoardObjects, 1)
	assert.Equal(t, "rect", pages[0].WhiteBoardObjects[0]["type"])
}

func TestMalformedPayloadFails(t *testing.T) {
	rig := newTestRig(sharedBoard(10, 1, enums.BOARD_SECURITY_PRIVATE))
	owner, ownerConn := rig.connect(1, "owner@example.com")

	rig.handler.HandleEvent(owner, socketModels.SocketEvent{
		Event:   enums.SOCKET_EVENT_JOIN_BOARD,
		Payload: json.RawMessage(`{"boardId": "not a number"`),
	})

	last, ok := ownerConn.lastEvent()
	require.True(t, ok)
	require.Equal(t, enums.SOCKET_EVENT_ERROR, last.Event)
	serr := last.Payload.(*errs.SocketError)
	assert.Equal(t, http.StatusBadRequest, serr.Status)
}
