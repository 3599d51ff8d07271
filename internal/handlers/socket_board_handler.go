package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"syncBoard/internal/enums"
	"syncBoard/internal/errs"
	"syncBoard/internal/hub"
	"syncBoard/internal/models"
	redisModels "syncBoard/internal/models/redis"
	socketModels "syncBoard/internal/models/socket"
	"syncBoard/internal/msgs"
	"syncBoard/internal/services"
	"syncBoard/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
)

type SocketBoardHandler struct {
	ctx          context.Context
	upgrader     websocket.Upgrader
	hub          *hub.BoardHub
	Redis        *redis.Client
	boardService *services.BoardService
	syncService  *services.SyncService
	authService  *services.AuthenticationService
}

func NewSocketBoardHandler(
	redis *redis.Client,
	ctx context.Context,
	boardHub *hub.BoardHub,
	boardService *services.BoardService,
	syncService *services.SyncService,
	authService *services.AuthenticationService,
) *SocketBoardHandler {
	sbh := &SocketBoardHandler{
		ctx:          ctx,
		hub:          boardHub,
		Redis:        redis,
		boardService: boardService,
		syncService:  syncService,
		authService:  authService,
	}
	go sbh.HandlePresenceMessages()
	return sbh
}

func (sbh *SocketBoardHandler) HandleSocketBoardRoute(ctx *gin.Context) {
	// Authenticate user before any handler attaches
	userInfo, err := sbh.authorize(ctx)
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrUnauthorized},
		})
		return
	}

	sbh.HandleConnections(ctx, userInfo)
}

// authorize extracts the session token from the handshake, cookie first, then
// the Authorization header.
func (sbh *SocketBoardHandler) authorize(ctx *gin.Context) (*models.Claims, error) {
	jwtToken, err := ctx.Cookie("jwt_token")
	if err != nil || jwtToken == "" {
		jwtToken = ctx.Request.Header.Get("Authorization")
		jwtToken = strings.TrimPrefix(jwtToken, "Bearer ")
	}
	if jwtToken == "" {
		return nil, errs.ErrUnauthorized
	}
	userInfo, err := utils.VerifyToken(jwtToken, utils.GetJwtKey())
	if err != nil {
		return nil, err
	}
	return userInfo, nil
}

func (sbh *SocketBoardHandler) upgradeHttpToWs(ctx *gin.Context) (*websocket.Conn, error) {
	sbh.upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
	ws, err := sbh.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		return nil, err
	}
	return ws, nil
}

func (sbh *SocketBoardHandler) HandleConnections(ctx *gin.Context, userInfo *models.Claims) {
	ws, err := sbh.upgradeHttpToWs(ctx)
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{err},
		})
		return
	}
	defer func(ws *websocket.Conn) {
		err := ws.Close()
		if err != nil {
			log.Printf("Error closing connection: %v", err)
		}
	}(ws)

	client := &models.SocketClient{
		Conn:      ws,
		UserId:    userInfo.ID,
		UserEmail: userInfo.Email,
	}
	sbh.hub.Register(client)
	sbh.setOnlineStatus(client, true)

	sbh.handleIncomingEvents(ws, client)
}

func (sbh *SocketBoardHandler) handleIncomingEvents(ws *websocket.Conn, client *models.SocketClient) {
	for {
		var event socketModels.SocketEvent
		err := ws.ReadJSON(&event)
		if err != nil {
			sbh.hub.Disconnect(client)
			sbh.setOnlineStatus(client, false)
			break
		}
		sbh.HandleEvent(client, event)
	}
}

// HandleEvent dispatches one client event. Edit events are gated on the
// session's access level, broadcast synchronously, and persisted in the
// background; a persistence failure is reported to the sender only.
func (sbh *SocketBoardHandler) HandleEvent(client *models.SocketClient, event socketModels.SocketEvent) {
	switch event.Event {
	case enums.SOCKET_EVENT_JOIN_BOARD:
		sbh.handleJoinBoard(client, event.Payload)
	case enums.SOCKET_EVENT_LEAVE_BOARD:
		sbh.handleLeaveBoard(client, event.Payload)
	case enums.SOCKET_EVENT_CURSOR_MOVE:
		sbh.handleCursorMove(client, event.Payload)
	case enums.SOCKET_EVENT_DRAW:
		sbh.handlePageUpdate(client, event.Payload, enums.SOCKET_EVENT_NEW_DRAWING, msgs.MsgNoPermissionToDraw)
	case enums.SOCKET_EVENT_ERASE:
		sbh.handlePageUpdate(client, event.Payload, enums.SOCKET_EVENT_ERASED, msgs.MsgNoPermissionToDraw)
	case enums.SOCKET_EVENT_EDIT_SHAPE:
		sbh.handlePageUpdate(client, event.Payload, enums.SOCKET_EVENT_EDITED_SHAPE, msgs.MsgNoPermissionToDraw)
	case enums.SOCKET_EVENT_ADD_TEXT:
		sbh.handlePageUpdate(client, event.Payload, enums.SOCKET_EVENT_ADDED_TEXT, msgs.MsgNoPermissionToAlterText)
	case enums.SOCKET_EVENT_BACKSPACE_TEXT:
		sbh.handlePageUpdate(client, event.Payload, enums.SOCKET_EVENT_BACKSPACED_TEXT, msgs.MsgNoPermissionToAlterText)
	case enums.SOCKET_EVENT_EDIT_TEXT:
		sbh.handlePageUpdate(client, event.Payload, enums.SOCKET_EVENT_EDITED_TEXT, msgs.MsgNoPermissionToAlterText)
	case enums.SOCKET_EVENT_CLEAR_PAGE:
		sbh.handleClearPage(client, event.Payload)
	case enums.SOCKET_EVENT_DELETE_PAGE:
		sbh.handleDeletePage(client, event.Payload)
	default:
		log.Printf("Unknown event: %v", event.Event)
	}
}

func (sbh *SocketBoardHandler) handleJoinBoard(client *models.SocketClient, payload json.RawMessage) {
	var joinPayload socketModels.JoinBoardPayload
	if err := json.Unmarshal(payload, &joinPayload); err != nil {
		sbh.hub.EmitError(client, errs.NewSocketError(http.StatusBadRequest, errs.ErrInvalidRequest.Error()))
		return
	}

	// Access is re-resolved on every join, never cached on the connection
	access, serr := sbh.boardService.ResolveAccess(joinPayload.BoardId, client.UserId)
	if serr != nil {
		sbh.hub.EmitError(client, serr)
		return
	}
	sbh.hub.Join(client, joinPayload.BoardId, access)
}

func (sbh *SocketBoardHandler) handleLeaveBoard(client *models.SocketClient, payload json.RawMessage) {
	var leavePayload socketModels.LeaveBoardPayload
	if err := json.Unmarshal(payload, &leavePayload); err != nil {
		sbh.hub.EmitError(client, errs.NewSocketError(http.StatusBadRequest, errs.ErrInvalidRequest.Error()))
		return
	}
	if serr := sbh.hub.Leave(client, leavePayload.BoardId); serr != nil {
		sbh.hub.EmitError(client, serr)
	}
}

func (sbh *SocketBoardHandler) handleCursorMove(client *models.SocketClient, payload json.RawMessage) {
	var cursorPayload socketModels.CursorMovePayload
	if err := json.Unmarshal(payload, &cursorPayload); err != nil {
		sbh.hub.EmitError(client, errs.NewSocketError(http.StatusBadRequest, errs.ErrInvalidRequest.Error()))
		return
	}

	session, serr := sbh.requireRoom(client, cursorPayload.BoardId)
	if serr != nil {
		sbh.hub.EmitError(client, serr)
		return
	}

	// Ephemeral, never persisted, peers only
	sbh.hub.Broadcast(session.BoardId, client, enums.SOCKET_EVENT_CURSOR_MOVED, socketModels.CursorMovedPayload{
		CursorMovePayload: cursorPayload,
		UserId:            client.UserId,
		UserEmail:         client.UserEmail,
	})
}

func (sbh *SocketBoardHandler) handlePageUpdate(client *models.SocketClient, payload json.RawMessage, outEvent, forbiddenMsg string) {
	var updatePayload socketModels.PageUpdatePayload
	if err := json.Unmarshal(payload, &updatePayload); err != nil {
		sbh.hub.EmitError(client, errs.NewSocketError(http.StatusBadRequest, errs.ErrInvalidRequest.Error()))
		return
	}

	session, serr := sbh.requireEdit(client, updatePayload.BoardId, forbiddenMsg)
	if serr != nil {
		sbh.hub.EmitError(client, serr)
		return
	}

	// Broadcast first for low perceived latency, then persist in the
	// background. Peers are never told the edit might not be durable.
	sbh.hub.BroadcastAll(session.BoardId, outEvent, socketModels.PageUpdatedPayload{
		PageUpdatePayload: updatePayload,
		UserId:            client.UserId,
		UserEmail:         client.UserEmail,
	})

	go sbh.persistPageUpdate(client, updatePayload.BoardId, updatePayload.UpdatedBoardPage)
}

func (sbh *SocketBoardHandler) handleClearPage(client *models.SocketClient, payload json.RawMessage) {
	var pagePayload socketModels.PageNumberPayload
	if err := json.Unmarshal(payload, &pagePayload); err != nil {
		sbh.hub.EmitError(client, errs.NewSocketError(http.StatusBadRequest, errs.ErrInvalidRequest.Error()))
		return
	}

	session, serr := sbh.requireEdit(client, pagePayload.BoardId, msgs.MsgNoPermissionToDraw)
	if serr != nil {
		sbh.hub.EmitError(client, serr)
		return
	}

	sbh.hub.BroadcastAll(session.BoardId, enums.SOCKET_EVENT_CLEARED_PAGE, socketModels.PageNumberedPayload{
		PageNumberPayload: pagePayload,
		UserId:            client.UserId,
		UserEmail:         client.UserEmail,
	})

	// Clearing persists as a replacement of the page with no objects
	go sbh.persistPageUpdate(client, pagePayload.BoardId, models.Page{
		PageNumber:        pagePayload.PageNumber,
		WhiteBoardObjects: []map[string]interface{}{},
	})
}

func (sbh *SocketBoardHandler) handleDeletePage(client *models.SocketClient, payload json.RawMessage) {
	var pagePayload socketModels.PageNumberPayload
	if err := json.Unmarshal(payload, &pagePayload); err != nil {
		sbh.hub.EmitError(client, errs.NewSocketError(http.StatusBadRequest, errs.ErrInvalidRequest.Error()))
		return
	}

	session, serr := sbh.requireEdit(client, pagePayload.BoardId, msgs.MsgNoPermissionToDraw)
	if serr != nil {
		sbh.hub.EmitError(client, serr)
		return
	}

	sbh.hub.BroadcastAll(session.BoardId, enums.SOCKET_EVENT_DELETED_PAGE, socketModels.PageNumberedPayload{
		PageNumberPayload: pagePayload,
		UserId:            client.UserId,
		UserEmail:         client.UserEmail,
	})

	go sbh.persistPageDelete(client, pagePayload.BoardId, pagePayload.PageNumber)
}

func (sbh *SocketBoardHandler) persistPageUpdate(client *models.SocketClient, boardId uint, page models.Page) {
	if serr := sbh.syncService.SyncPageUpdate(boardId, client.UserId, page); serr != nil {
		log.Printf("Failed to persist page update for board %v: %v", boardId, serr)
		sbh.hub.EmitError(client, errs.NewSocketError(serr.Status, msgs.MsgEditNotSaved+": "+serr.Message))
	}
}

func (sbh *SocketBoardHandler) persistPageDelete(client *models.SocketClient, boardId uint, pageNumber int) {
	if serr := sbh.syncService.SyncPageDelete(boardId, client.UserId, pageNumber); serr != nil {
		log.Printf("Failed to persist page delete for board %v: %v", boardId, serr)
		sbh.hub.EmitError(client, errs.NewSocketError(serr.Status, msgs.MsgEditNotSaved+": "+serr.Message))
	}
}

func (sbh *SocketBoardHandler) requireRoom(client *models.SocketClient, boardId uint) (models.Session, *errs.SocketError) {
	session, ok := sbh.hub.Session(client)
	if !ok || !session.Joined() || session.BoardId != boardId {
		return models.Session{}, errs.NewSocketError(http.StatusBadRequest, msgs.MsgBoardNotJoined)
	}
	return session, nil
}

func (sbh *SocketBoardHandler) requireEdit(client *models.SocketClient, boardId uint, forbiddenMsg string) (models.Session, *errs.SocketError) {
	session, serr := sbh.requireRoom(client, boardId)
	if serr != nil {
		return models.Session{}, serr
	}
	if session.Access != enums.ACCESS_LEVEL_EDIT {
		return models.Session{}, errs.NewSocketError(http.StatusForbidden, forbiddenMsg)
	}
	return session, nil
}

func (sbh *SocketBoardHandler) setOnlineStatus(client *models.SocketClient, online bool) {
	if err := sbh.authService.SetOnlineStatus(client.UserId, online); err != nil {
		log.Printf("Failed to set online status for user %v: %v", client.UserId, err)
	}

	event := enums.SOCKET_EVENT_USER_ONLINE
	if !online {
		event = enums.SOCKET_EVENT_USER_OFFLINE
	}
	presenceEvent := redisModels.RedisPresenceEvent{
		Event:     event,
		UserId:    client.UserId,
		UserEmail: client.UserEmail,
	}
	jsonEvent, err := json.Marshal(presenceEvent)
	if err != nil {
		log.Printf("Error marshalling presence event: %v", err)
		return
	}
	if err := sbh.PublishMessage(sbh.Redis, redisModels.REDIS_CHANNEL_PRESENCE, jsonEvent); err != nil {
		log.Printf("Error publishing presence event: %v", err)
	}
}

func (sbh *SocketBoardHandler) HandlePresenceMessages() {
	ch := sbh.SubscribeToChannel(sbh.Redis, redisModels.REDIS_CHANNEL_PRESENCE)
	for msg := range ch {
		var presenceEvent redisModels.RedisPresenceEvent
		if err := json.Unmarshal([]byte(msg.Payload), &presenceEvent); err != nil {
			log.Printf("Error unmarshalling message: %v", err)
			continue
		}
		sbh.hub.BroadcastGlobal(presenceEvent.Event, presenceEvent)
	}
}

func (sbh *SocketBoardHandler) PublishMessage(redis *redis.Client, channel string, message []byte) error {
	return redis.Publish(sbh.ctx, channel, message).Err()
}

func (sbh *SocketBoardHandler) SubscribeToChannel(redis *redis.Client, channel string) <-chan *redis.Message {
	pubsub := redis.Subscribe(sbh.ctx, channel)
	_, err := pubsub.Receive(sbh.ctx)
	if err != nil {
		log.Fatalf("Could not subscribe to channel: %v", err)
	}
	return pubsub.Channel()
}
