package models

import "syncBoard/internal/enums"

type CreateBoardRequestBody struct {
	Name     string `json:"name"`
	Security string `json:"security"`
}

type CollaboratorRequestBody struct {
	UserID     uint              `json:"user_id"`
	Permission enums.AccessLevel `json:"permission"`
}

type UpdateSecurityRequestBody struct {
	Security string `json:"security"`
}

type BoardListResponse struct {
	Boards     []Board `json:"boards"`
	Page       int     `json:"page"`
	Size       int     `json:"size"`
	TotalCount int64   `json:"total_count"`
}

type BoardChangeListResponse struct {
	Changes    []BoardChange `json:"changes"`
	Page       int           `json:"page"`
	Size       int           `json:"size"`
	TotalCount int64         `json:"total_count"`
}
