package models

import "syncBoard/internal/enums"

// Session is the per connection mutable state. A connection is joined to at
// most one board room at a time; BoardId zero means unjoined.
type Session struct {
	UserId    uint
	UserEmail string
	BoardId   uint
	Access    enums.AccessLevel
}

func (s *Session) Joined() bool {
	return s.BoardId != 0
}
