package enums

// AccessLevel is what a given identity may do on a given board.
type AccessLevel string

const (
	ACCESS_LEVEL_EDIT AccessLevel = "edit"
	ACCESS_LEVEL_VIEW AccessLevel = "view"
	ACCESS_LEVEL_NONE AccessLevel = ""
)

const (
	BOARD_SECURITY_PUBLIC  = "public"
	BOARD_SECURITY_PRIVATE = "private"
)
