package enums

// Client to server events
const (
	SOCKET_EVENT_JOIN_BOARD     = "joinBoard"
	SOCKET_EVENT_LEAVE_BOARD    = "leaveBoard"
	SOCKET_EVENT_CURSOR_MOVE    = "cursorMove"
	SOCKET_EVENT_DRAW           = "draw"
	SOCKET_EVENT_ERASE          = "erase"
	SOCKET_EVENT_EDIT_SHAPE     = "editShape"
	SOCKET_EVENT_CLEAR_PAGE     = "clearPage"
	SOCKET_EVENT_DELETE_PAGE    = "deletePage"
	SOCKET_EVENT_ADD_TEXT       = "addText"
	SOCKET_EVENT_BACKSPACE_TEXT = "backspaceText"
	SOCKET_EVENT_EDIT_TEXT      = "editText"
)

// Server to client events. SOCKET_EVENT_LEAVE_BOARD is reused as the
// notification peers receive when a member leaves their room.
const (
	SOCKET_EVENT_JOINED_BOARD    = "joinedBoard"
	SOCKET_EVENT_LEFT_BOARD      = "leftBoard"
	SOCKET_EVENT_CURSOR_MOVED    = "cursorMoved"
	SOCKET_EVENT_NEW_DRAWING     = "newDrawing"
	SOCKET_EVENT_ERASED          = "erased"
	SOCKET_EVENT_EDITED_SHAPE    = "editedShape"
	SOCKET_EVENT_CLEARED_PAGE    = "clearedPage"
	SOCKET_EVENT_DELETED_PAGE    = "deletedPage"
	SOCKET_EVENT_ADDED_TEXT      = "addedText"
	SOCKET_EVENT_BACKSPACED_TEXT = "backspacedText"
	SOCKET_EVENT_EDITED_TEXT     = "editedText"
	SOCKET_EVENT_USER_ONLINE     = "userOnline"
	SOCKET_EVENT_USER_OFFLINE    = "userOffline"
	SOCKET_EVENT_ERROR           = "error"
)
