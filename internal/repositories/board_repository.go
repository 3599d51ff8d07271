package repositories

import (
	"errors"

	"syncBoard/internal/errs"
	"syncBoard/internal/models"
	"syncBoard/internal/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BoardRepository struct {
	db *gorm.DB
}

func NewBoardRepository(db *gorm.DB) *BoardRepository {
	return &BoardRepository{
		db: db,
	}
}

func (br *BoardRepository) CreateBoard(board *models.Board) (*models.Board, error) {
	var existing models.Board
	result := br.db.Where("created_by = ? AND name = ?", board.CreatedBy, board.Name).First(&existing)
	if result.Error == nil && result.RowsAffected > 0 {
		return nil, errs.ErrBoardNameTaken
	}

	result = br.db.Create(board)
	if err := result.Error; err != nil {
		return nil, err
	}
	if result.RowsAffected <= 0 {
		return nil, errs.ErrBoardCreationFailed
	}
	return board, nil
}

func (br *BoardRepository) GetBoardByID(id uint) (*models.Board, error) {
	var board models.Board
	result := br.db.Preload("Collaborators").First(&board, id)
	if err := result.Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrBoardNotFound
		}
		return nil, err
	}
	return &board, nil
}

func (br *BoardRepository) GetUserBoards(userId uint, page, size int) (*models.BoardListResponse, error) {
	var boards []models.Board
	var total int64

	query := br.db.Model(&models.Board{}).
		Preload("Collaborators").
		Where("created_by = ? OR id IN (SELECT board_id FROM board_collaborators WHERE user_id = ? AND deleted_at IS NULL)", userId, userId)

	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}
	if err := query.Scopes(utils.Paginate(page, size)).Order("updated_at DESC").Find(&boards).Error; err != nil {
		return nil, err
	}

	return &models.BoardListResponse{
		Boards:     boards,
		Page:       page,
		Size:       size,
		TotalCount: total,
	}, nil
}

func (br *BoardRepository) SearchUserBoards(userId uint, name string, page, size int) (*models.BoardListResponse, error) {
	var boards []models.Board
	var total int64

	query := br.db.Model(&models.Board{}).
		Preload("Collaborators").
		Where("name ILIKE ?", "%"+name+"%").
		Where("created_by = ? OR security = ? OR id IN (SELECT board_id FROM board_collaborators WHERE user_id = ? AND deleted_at IS NULL)",
			userId, "public", userId)

	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}
	if err := query.Scopes(utils.Paginate(page, size)).Order("updated_at DESC").Find(&boards).Error; err != nil {
		return nil, err
	}

	return &models.BoardListResponse{
		Boards:     boards,
		Page:       page,
		Size:       size,
		TotalCount: total,
	}, nil
}

func (br *BoardRepository) DeleteBoard(id uint) error {
	return br.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("board_id = ?", id).Delete(&models.BoardCollaborator{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Board{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errs.ErrBoardNotFound
		}
		return nil
	})
}

func (br *BoardRepository) AddCollaborator(collaborator *models.BoardCollaborator) error {
	var existing models.BoardCollaborator
	result := br.db.Where("board_id = ? AND user_id = ?", collaborator.BoardID, collaborator.UserID).First(&existing)
	if result.Error == nil && result.RowsAffected > 0 {
		return errs.ErrCollaboratorExists
	}
	return br.db.Create(collaborator).Error
}

func (br *BoardRepository) RemoveCollaborator(boardId, userId uint) error {
	result := br.db.Where("board_id = ? AND user_id = ?", boardId, userId).Delete(&models.BoardCollaborator{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.ErrCollaboratorNotFound
	}
	return nil
}

func (br *BoardRepository) UpdateSecurity(boardId uint, security string) error {
	result := br.db.Model(&models.Board{}).Where("id = ?", boardId).Update("security", security)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.ErrBoardNotFound
	}
	return nil
}

func (br *BoardRepository) UpdateThumbnail(boardId uint, url string) error {
	result := br.db.Model(&models.Board{}).Where("id = ?", boardId).Update("thumbnail_img", url)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.ErrBoardNotFound
	}
	return nil
}

// UpsertBoardPage replaces the object collection of the page matching
// page.PageNumber, or appends the page when no such page number exists. The
// read-modify-write runs inside one transaction holding the board row lock,
// so each call applies atomically at the store level. Calls for the same
// board are not otherwise serialized, the last write wins.
func (br *BoardRepository) UpsertBoardPage(boardId uint, page models.Page) (models.Pages, error) {
	var pages models.Pages
	err := br.db.Transaction(func(tx *gorm.DB) error {
		var board models.Board
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&board, boardId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.ErrBoardNotFound
			}
			return err
		}

		replaced := false
		for i := range board.Pages {
			if board.Pages[i].PageNumber == page.PageNumber {
				board.Pages[i].WhiteBoardObjects = page.WhiteBoardObjects
				replaced = true
				break
			}
		}
		if !replaced {
			board.Pages = append(board.Pages, page)
		}

		if err := tx.Model(&board).Update("pages", board.Pages).Error; err != nil {
			return err
		}
		pages = board.Pages
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pages, nil
}

// DeleteBoardPage removes the page with the given page number under the same
// locking scheme as UpsertBoardPage.
func (br *BoardRepository) DeleteBoardPage(boardId uint, pageNumber int) (models.Pages, error) {
	var pages models.Pages
	err := br.db.Transaction(func(tx *gorm.DB) error {
		var board models.Board
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&board, boardId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.ErrBoardNotFound
			}
			return err
		}

		remaining := make(models.Pages, 0, len(board.Pages))
		found := false
		for _, p := range board.Pages {
			if p.PageNumber == pageNumber {
				found = true
				continue
			}
			remaining = append(remaining, p)
		}
		if !found {
			return errs.ErrPageNotFound
		}

		if err := tx.Model(&board).Update("pages", remaining).Error; err != nil {
			return err
		}
		pages = remaining
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pages, nil
}
