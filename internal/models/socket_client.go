package models

// SocketConn is the subset of *websocket.Conn the hub writes through.
// Narrowed to an interface so room logic can be exercised without a live
// websocket.
type SocketConn interface {
	WriteJSON(v interface{}) error
	Close() error
}

type SocketClient struct {
	Conn      SocketConn
	UserId    uint
	UserEmail string
}
