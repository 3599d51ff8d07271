package services

import (
	"errors"
	"net/http"

	"syncBoard/internal/enums"
	"syncBoard/internal/errs"
	"syncBoard/internal/models"
	"syncBoard/internal/msgs"
	"syncBoard/internal/validators"
)

// BoardStore is the slice of the board repository this service consumes.
type BoardStore interface {
	CreateBoard(board *models.Board) (*models.Board, error)
	GetBoardByID(id uint) (*models.Board, error)
	GetUserBoards(userId uint, page, size int) (*models.BoardListResponse, error)
	SearchUserBoards(userId uint, name string, page, size int) (*models.BoardListResponse, error)
	DeleteBoard(id uint) error
	AddCollaborator(collaborator *models.BoardCollaborator) error
	RemoveCollaborator(boardId, userId uint) error
	UpdateSecurity(boardId uint, security string) error
	UpdateThumbnail(boardId uint, url string) error
}

type ChangeStore interface {
	CreateBoardChange(change *models.BoardChange) error
	GetBoardChanges(boardId uint, page, size int) (*models.BoardChangeListResponse, error)
}

type BoardService struct {
	boardRepo  BoardStore
	changeRepo ChangeStore
}

func NewBoardService(boardRepo BoardStore, changeRepo ChangeStore) *BoardService {
	return &BoardService{
		boardRepo:  boardRepo,
		changeRepo: changeRepo,
	}
}

// ResolveAccess computes the caller's access level for a board. Resolution
// order: owner, collaborator entry, public fallback. The owner wins even when
// also listed as a collaborator, and a private board never grants view to a
// stranger.
func (bs *BoardService) ResolveAccess(boardId, userId uint) (enums.AccessLevel, *errs.SocketError) {
	if boardId == 0 {
		return enums.ACCESS_LEVEL_NONE, errs.NewSocketError(http.StatusBadRequest, msgs.MsgBoardIdMustBeProvided)
	}

	board, err := bs.boardRepo.GetBoardByID(boardId)
	if err != nil {
		if errors.Is(err, errs.ErrBoardNotFound) {
			return enums.ACCESS_LEVEL_NONE, errs.NewSocketError(http.StatusNotFound, errs.ErrBoardNotFound.Error())
		}
		return enums.ACCESS_LEVEL_NONE, errs.NewSocketError(http.StatusInternalServerError, err.Error())
	}

	if board.CreatedBy == userId {
		return enums.ACCESS_LEVEL_EDIT, nil
	}

	for _, collaborator := range board.Collaborators {
		if collaborator.UserID == userId {
			return collaborator.Permission, nil
		}
	}

	if board.Security == enums.BOARD_SECURITY_PUBLIC {
		return enums.ACCESS_LEVEL_VIEW, nil
	}

	return enums.ACCESS_LEVEL_NONE, errs.NewSocketError(http.StatusForbidden, msgs.MsgBoardAccessDenied)
}

func (bs *BoardService) CreateBoard(userId uint, body *models.CreateBoardRequestBody) (*models.Board, []error) {
	var errors []error

	validationErrs := validators.ValidateCreateBoard(body)
	if len(validationErrs) > 0 {
		errors = append(errors, validationErrs...)
		return nil, errors
	}

	security := body.Security
	if security == "" {
		security = enums.BOARD_SECURITY_PRIVATE
	}

	board, err := bs.boardRepo.CreateBoard(&models.Board{
		Name:      body.Name,
		CreatedBy: userId,
		Security:  security,
		Pages:     models.Pages{},
	})
	if err != nil {
		errors = append(errors, err)
		return nil, errors
	}
	return board, nil
}

func (bs *BoardService) GetBoard(boardId, userId uint) (*models.Board, []error) {
	var errors []error

	board, err := bs.boardRepo.GetBoardByID(boardId)
	if err != nil {
		errors = append(errors, err)
		return nil, errors
	}

	if _, serr := bs.ResolveAccess(boardId, userId); serr != nil {
		errors = append(errors, serr)
		return nil, errors
	}
	return board, nil
}

func (bs *BoardService) GetUserBoards(userId uint, page, size int) (*models.BoardListResponse, []error) {
	var errors []error
	if page < 0 || size < 0 {
		errors = append(errors, errs.ErrInvalidPageOrSize)
		return nil, errors
	}
	response, err := bs.boardRepo.GetUserBoards(userId, page, size)
	if err != nil {
		errors = append(errors, err)
		return nil, errors
	}
	return response, nil
}

func (bs *BoardService) SearchBoards(userId uint, name string, page, size int) (*models.BoardListResponse, []error) {
	var errors []error
	if name == "" {
		errors = append(errors, errs.ErrInvalidParams)
		return nil, errors
	}
	response, err := bs.boardRepo.SearchUserBoards(userId, name, page, size)
	if err != nil {
		errors = append(errors, err)
		return nil, errors
	}
	return response, nil
}

func (bs *BoardService) DeleteBoard(boardId, userId uint) []error {
	var errors []error

	if err := bs.requireOwner(boardId, userId); err != nil {
		errors = append(errors, err)
		return errors
	}
	if err := bs.boardRepo.DeleteBoard(boardId); err != nil {
		errors = append(errors, err)
		return errors
	}
	return nil
}

func (bs *BoardService) AddCollaborator(boardId, ownerId uint, body *models.CollaboratorRequestBody) []error {
	var errors []error

	if body == nil || body.UserID == 0 {
		errors = append(errors, errs.ErrInvalidRequestBody)
		return errors
	}
	if !validators.ValidatePermission(body.Permission) {
		errors = append(errors, errs.ErrInvalidPermission)
		return errors
	}
	if err := bs.requireOwner(boardId, ownerId); err != nil {
		errors = append(errors, err)
		return errors
	}
	if err := bs.boardRepo.AddCollaborator(&models.BoardCollaborator{
		BoardID:    boardId,
		UserID:     body.UserID,
		Permission: body.Permission,
	}); err != nil {
		errors = append(errors, err)
		return errors
	}
	return nil
}

func (bs *BoardService) RemoveCollaborator(boardId, ownerId, userId uint) []error {
	var errors []error

	if err := bs.requireOwner(boardId, ownerId); err != nil {
		errors = append(errors, err)
		return errors
	}
	if err := bs.boardRepo.RemoveCollaborator(boardId, userId); err != nil {
		errors = append(errors, err)
		return errors
	}
	return nil
}

func (bs *BoardService) UpdateSecurity(boardId, ownerId uint, security string) []error {
	var errors []error

	if !validators.ValidateSecurity(security) {
		errors = append(errors, errs.ErrInvalidSecurity)
		return errors
	}
	if err := bs.requireOwner(boardId, ownerId); err != nil {
		errors = append(errors, err)
		return errors
	}
	if err := bs.boardRepo.UpdateSecurity(boardId, security); err != nil {
		errors = append(errors, err)
		return errors
	}
	return nil
}

func (bs *BoardService) UpdateThumbnail(boardId, ownerId uint, url string) []error {
	var errors []error

	if err := bs.requireOwner(boardId, ownerId); err != nil {
		errors = append(errors, err)
		return errors
	}
	if err := bs.boardRepo.UpdateThumbnail(boardId, url); err != nil {
		errors = append(errors, err)
		return errors
	}
	return nil
}

func (bs *BoardService) GetBoardChanges(boardId, userId uint, page, size int) (*models.BoardChangeListResponse, []error) {
	var errors []error

	if _, serr := bs.ResolveAccess(boardId, userId); serr != nil {
		errors = append(errors, serr)
		return nil, errors
	}
	response, err := bs.changeRepo.GetBoardChanges(boardId, page, size)
	if err != nil {
		errors = append(errors, err)
		return nil, errors
	}
	return response, nil
}

func (bs *BoardService) requireOwner(boardId, userId uint) error {
	board, err := bs.boardRepo.GetBoardByID(boardId)
	if err != nil {
		return err
	}
	if board.CreatedBy != userId {
		return errs.ErrNotBoardOwner
	}
	return nil
}
