package services

import (
	"errors"
	"log"
	"net/http"

	"syncBoard/internal/errs"
	"syncBoard/internal/models"
)

// SyncBoardStore is the slice of the board repository the synchronizer
// consumes.
type SyncBoardStore interface {
	GetBoardByID(id uint) (*models.Board, error)
	UpsertBoardPage(boardId uint, page models.Page) (models.Pages, error)
	DeleteBoardPage(boardId uint, pageNumber int) (models.Pages, error)
}

type ChangeWriter interface {
	CreateBoardChange(change *models.BoardChange) error
}

// SyncService reconciles in-memory edits with durable storage. Each call does
// its own read-then-write and does not serialize against concurrent calls for
// the same board, two simultaneous edits to the same page race and the later
// write wins. History snapshots may therefore not form a strict linear
// history under concurrency.
type SyncService struct {
	boardRepo  SyncBoardStore
	changeRepo ChangeWriter
}

func NewSyncService(boardRepo SyncBoardStore, changeRepo ChangeWriter) *SyncService {
	return &SyncService{
		boardRepo:  boardRepo,
		changeRepo: changeRepo,
	}
}

// SyncPageUpdate replaces the page matching page.PageNumber, or appends it as
// a new page, then records a history entry with the before and after state.
func (ss *SyncService) SyncPageUpdate(boardId, changerId uint, page models.Page) *errs.SocketError {
	board, err := ss.boardRepo.GetBoardByID(boardId)
	if err != nil {
		return ss.wrap(err)
	}

	oldPages := clonePages(board.Pages)

	newPages, err := ss.boardRepo.UpsertBoardPage(boardId, page)
	if err != nil {
		return ss.wrap(err)
	}

	if err := ss.changeRepo.CreateBoardChange(&models.BoardChange{
		BoardID:   boardId,
		ChangerID: changerId,
		OldPages:  oldPages,
		NewPages:  newPages,
	}); err != nil {
		log.Printf("Failed to record board change for board %v: %v", boardId, err)
		return errs.NewSocketError(http.StatusInternalServerError, err.Error())
	}
	return nil
}

// SyncPageDelete removes a page by number. A missing board or page fails with
// 404 and produces no history record.
func (ss *SyncService) SyncPageDelete(boardId, changerId uint, pageNumber int) *errs.SocketError {
	board, err := ss.boardRepo.GetBoardByID(boardId)
	if err != nil {
		return ss.wrap(err)
	}

	pageExists := false
	for _, p := range board.Pages {
		if p.PageNumber == pageNumber {
			pageExists = true
			break
		}
	}
	if !pageExists {
		return errs.NewSocketError(http.StatusNotFound, errs.ErrPageNotFound.Error())
	}

	oldPages := clonePages(board.Pages)

	newPages, err := ss.boardRepo.DeleteBoardPage(boardId, pageNumber)
	if err != nil {
		return ss.wrap(err)
	}

	if err := ss.changeRepo.CreateBoardChange(&models.BoardChange{
		BoardID:   boardId,
		ChangerID: changerId,
		OldPages:  oldPages,
		NewPages:  newPages,
	}); err != nil {
		log.Printf("Failed to record board change for board %v: %v", boardId, err)
		return errs.NewSocketError(http.StatusInternalServerError, err.Error())
	}
	return nil
}

func (ss *SyncService) wrap(err error) *errs.SocketError {
	var serr *errs.SocketError
	if errors.As(err, &serr) {
		return serr
	}
	switch {
	case errors.Is(err, errs.ErrBoardNotFound):
		return errs.NewSocketError(http.StatusNotFound, errs.ErrBoardNotFound.Error())
	case errors.Is(err, errs.ErrPageNotFound):
		return errs.NewSocketError(http.StatusNotFound, errs.ErrPageNotFound.Error())
	default:
		return errs.NewSocketError(http.StatusInternalServerError, err.Error())
	}
}

func clonePages(pages models.Pages) models.Pages {
	cloned := make(models.Pages, len(pages))
	copy(cloned, pages)
	return cloned
}
