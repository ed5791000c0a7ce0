package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// FileObject is one node of the folder/file forest. ParentID is a plain
// column, not a foreign key: a purge may leave trashed descendants
// pointing at a row that no longer exists, and breadcrumb reconstruction
// truncates at such dangling references.
type FileObject struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	ParentID    *uuid.UUID `json:"parent_id" gorm:"type:uuid;index"`
	IsFolder    bool       `json:"is_folder" gorm:"not null;default:false"`
	Name        string     `json:"name" gorm:"type:varchar(512);not null"`
	StoragePath *string    `json:"storage_path,omitempty" gorm:"type:varchar(1024)"`
	Mimetype    *string    `json:"mimetype,omitempty" gorm:"type:varchar(255)"`
	SizeBytes   int64      `json:"size_bytes" gorm:"not null;default:0"`
	IsDeleted   bool       `json:"is_deleted" gorm:"not null;default:false;index"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at" gorm:"not null;autoCreateTime"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

func (FileObject) TableName() string {
	return "file_objects"
}

// IsRoot reports whether the object sits at the top level of the forest.
func (o *FileObject) IsRoot() bool {
	return o.ParentID == nil
}

// IsImage reports whether the object is a file with an image mimetype.
// Folders and files with unknown mimetypes are not previewable.
func (o *FileObject) IsImage() bool {
	if o.IsFolder || o.Mimetype == nil {
		return false
	}
	return strings.HasPrefix(*o.Mimetype, "image/")
}
