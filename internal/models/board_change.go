package models

import "gorm.io/gorm"

// BoardChange is an immutable audit record of one persisted page mutation.
// Records are only ever created, never updated or deleted by this subsystem.
type BoardChange struct {
	gorm.Model
	BoardID   uint  `gorm:"not null;index" json:"board_id"`
	ChangerID uint  `gorm:"not null" json:"changer_id"`
	OldPages  Pages `gorm:"type:jsonb" json:"old_pages"`
	NewPages  Pages `gorm:"type:jsonb" json:"new_pages"`
}
