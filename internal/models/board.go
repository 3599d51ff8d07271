package models

import (
	"syncBoard/internal/enums"

	"gorm.io/gorm"
)

// Board is the shared document being collaboratively edited. (CreatedBy, Name)
// is unique so one user cannot own two boards with the same name.
type Board struct {
	gorm.Model
	Name          string              `gorm:"not null;uniqueIndex:idx_boards_owner_name" json:"name"`
	CreatedBy     uint                `gorm:"not null;uniqueIndex:idx_boards_owner_name" json:"created_by"`
	Collaborators []BoardCollaborator `json:"collaborators"`
	Pages         Pages               `gorm:"type:jsonb;default:'[]'" json:"pages"`
	ThumbnailImg  string              `json:"thumbnail_img"`
	Security      string              `gorm:"default:private" json:"security"`
}

type BoardCollaborator struct {
	gorm.Model
	BoardID    uint              `gorm:"not null;uniqueIndex:idx_board_collaborator" json:"board_id"`
	UserID     uint              `gorm:"not null;uniqueIndex:idx_board_collaborator" json:"user_id"`
	Permission enums.AccessLevel `gorm:"not null" json:"permission"`
}
