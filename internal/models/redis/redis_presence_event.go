package redis

const REDIS_CHANNEL_PRESENCE = "board_presence"

// RedisPresenceEvent is published on connect and disconnect so every server
// side consumer can mirror who is currently online.
type RedisPresenceEvent struct {
	Event     string `json:"event"`
	UserId    uint   `json:"userId"`
	UserEmail string `json:"userEmail"`
}
