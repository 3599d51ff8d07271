package errs

type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrInvalidRequestBody     = Error("invalid request body")
	ErrUserAlreadyExists      = Error("user already exists")
	ErrUserNotFound           = Error("user not found")
	ErrWrongPassword          = Error("wrong password")
	ErrInvalidToken           = Error("invalid token")
	ErrInvalidEmail           = Error("invalid email")
	ErrInvalidPassword        = Error("invalid password")
	ErrInvalidUser            = Error("invalid user")
	ErrInvalidRequest         = Error("invalid request")
	ErrInvalidParams          = Error("invalid params")
	ErrInvalidPageOrSize      = Error("invalid page or size")
	ErrFirstName              = Error("first name is empty or too short")
	ErrLastName               = Error("last name is empty or too short")
	ErrUnauthorized           = Error("unauthorized")
	ErrInvalidBoardId         = Error("invalid board id")
	ErrInvalidBoardName       = Error("board name is empty or too short")
	ErrInvalidPermission      = Error("permission must be view or edit")
	ErrInvalidSecurity        = Error("security must be public or private")
	ErrBoardNotFound          = Error("the specified board does not exist")
	ErrPageNotFound           = Error("the specified page does not exist")
	ErrBoardNameTaken         = Error("you already own a board with this name")
	ErrBoardCreationFailed    = Error("board creation failed")
	ErrNotBoardOwner          = Error("only the board owner may do this")
	ErrCollaboratorNotFound   = Error("collaborator not found")
	ErrCollaboratorExists     = Error("user is already a collaborator")
)
