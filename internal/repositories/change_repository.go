package repositories

import (
	"syncBoard/internal/models"
	"syncBoard/internal/utils"

	"gorm.io/gorm"
)

type ChangeRepository struct {
	db *gorm.DB
}

func NewChangeRepository(db *gorm.DB) *ChangeRepository {
	return &ChangeRepository{
		db: db,
	}
}

func (cr *ChangeRepository) CreateBoardChange(change *models.BoardChange) error {
	return cr.db.Create(change).Error
}

func (cr *ChangeRepository) GetBoardChanges(boardId uint, page, size int) (*models.BoardChangeListResponse, error) {
	var changes []models.BoardChange
	var total int64

	query := cr.db.Model(&models.BoardChange{}).Where("board_id = ?", boardId)

	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}
	if err := query.Scopes(utils.Paginate(page, size)).Order("created_at DESC").Find(&changes).Error; err != nil {
		return nil, err
	}

	return &models.BoardChangeListResponse{
		Changes:    changes,
		Page:       page,
		Size:       size,
		TotalCount: total,
	}, nil
}
