package errs

// SocketError carries an HTTP style status code so socket clients can handle
// failures the same way they handle REST ones. It is the only error shape
// emitted over a websocket connection.
type SocketError struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func (e *SocketError) Error() string { return e.Message }

func NewSocketError(status int, message string) *SocketError {
	return &SocketError{
		Message: message,
		Status:  status,
	}
}
