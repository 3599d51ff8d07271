package msgs

const (
	MsgOperationFailed            = "Operation failed"
	MsgOperationSuccessful        = "Operation successful"
	MsgUserCreatedSuccessfully    = "User created successfully"
	MsgYouMustLoginFirst          = "You must login first"
	MsgBoardCreatedSuccessfully   = "Board created successfully"
	MsgBoardDeletedSuccessfully   = "Board deleted successfully"
	MsgEditNotSaved               = "Edit broadcast but not durably saved"
	MsgNoPermissionToView         = "You do not have permission to view this."
	MsgNoPermissionToDraw         = "You do not have permission to draw."
	MsgNoPermissionToAlterText    = "You do not have permission to alter text."
	MsgBoardNotJoined             = "You have not joined this board room"
	MsgBoardIdMustBeProvided      = "BoardId needs to be provided"
	MsgBoardAccessDenied          = "You are not authorized to access this board"
)
