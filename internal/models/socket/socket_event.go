package socket

import (
	"encoding/json"

	"syncBoard/internal/models"
)

// SocketEvent is the envelope every client message arrives in.
type SocketEvent struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// ServerEvent is the envelope every outgoing message is written in.
type ServerEvent struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
}

type JoinBoardPayload struct {
	BoardId uint `json:"boardId"`
}

type LeaveBoardPayload struct {
	BoardId uint `json:"boardId"`
}

type CursorMovePayload struct {
	BoardId uint    `json:"boardId"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
}

type CursorMovedPayload struct {
	CursorMovePayload
	UserId    uint   `json:"userId"`
	UserEmail string `json:"userEmail"`
}

// PageUpdatePayload carries a full replacement page for draw, erase,
// editShape and the text events.
type PageUpdatePayload struct {
	BoardId          uint        `json:"boardId"`
	UpdatedBoardPage models.Page `json:"updatedBoardPage"`
}

type PageUpdatedPayload struct {
	PageUpdatePayload
	UserId    uint   `json:"userId"`
	UserEmail string `json:"userEmail"`
}

// PageNumberPayload addresses a page without carrying its contents, used by
// clearPage and deletePage.
type PageNumberPayload struct {
	BoardId    uint `json:"boardId"`
	PageNumber int  `json:"pageNumber"`
}

type PageNumberedPayload struct {
	PageNumberPayload
	UserId    uint   `json:"userId"`
	UserEmail string `json:"userEmail"`
}

// RoomPresencePayload announces room membership changes to the caller and to
// peers (joinedBoard, leftBoard, leaveBoard).
type RoomPresencePayload struct {
	BoardId   uint   `json:"boardId"`
	UserId    uint   `json:"userId"`
	UserEmail string `json:"userEmail"`
}
