package dto

type CreateFolderRequestDTO struct {
	Name     string `json:"name" binding:"required"`
	ParentID string `json:"parent_id"`
}

type RenameRequestDTO struct {
	NewName string `json:"new_name" binding:"required"`
}
