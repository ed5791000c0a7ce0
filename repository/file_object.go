package repository

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nitchakan-dev/filevault/entity"
	"gorm.io/gorm"
)

type FileObjectRepository struct {
	db *gorm.DB
}

func NewFileObjectRepository(db *gorm.DB) *FileObjectRepository {
	return &FileObjectRepository{db: db}
}

func (r *FileObjectRepository) Create(object *entity.FileObject) error {
	return r.db.Create(object).Error
}

func (r *FileObjectRepository) FindByID(id uuid.UUID) (*entity.FileObject, error) {
	var object entity.FileObject
	err := r.db.Where("id = ?", id).First(&object).Error
	if err != nil {
		return nil, err
	}
	return &object, nil
}

// FindChildren returns the direct children of parentID (nil means root
// level), folders first then name ascending. Trashed rows are excluded
// unless includeDeleted is set; cascade traversal sets it so already
// trashed descendants are still reached.
func (r *FileObjectRepository) FindChildren(parentID *uuid.UUID, includeDeleted bool) ([]entity.FileObject, error) {
	var objects []entity.FileObject
	query := r.db.Order("is_folder DESC, name ASC")
	if parentID == nil {
		query = query.Where("parent_id IS NULL")
	} else {
		query = query.Where("parent_id = ?", *parentID)
	}
	if !includeDeleted {
		query = query.Where("is_deleted = ?", false)
	}
	err := query.Find(&objects).Error
	if err != nil {
		return nil, err
	}
	return objects, nil
}

// Rename replaces the display name. Sibling collisions are allowed.
// Returns the number of rows touched so callers can detect a missing id.
func (r *FileObjectRepository) Rename(id uuid.UUID, newName string) (int64, error) {
	result := r.db.Model(&entity.FileObject{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"name":       newName,
			"updated_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}

// SetDeletedFlag flips is_deleted and deleted_at together in one UPDATE.
func (r *FileObjectRepository) SetDeletedFlag(id uuid.UUID, deleted bool) (int64, error) {
	updates := map[string]interface{}{
		"is_deleted": deleted,
		"updated_at": time.Now(),
	}
	if deleted {
		updates["deleted_at"] = time.Now()
	} else {
		updates["deleted_at"] = nil
	}
	result := r.db.Model(&entity.FileObject{}).Where("id = ?", id).Updates(updates)
	return result.RowsAffected, result.Error
}

// Delete removes the row permanently. The caller is responsible for
// removing any associated blob first. Zero rows affected is not an error
// here; concurrent cascades may have removed the row already.
func (r *FileObjectRepository) Delete(id uuid.UUID) (int64, error) {
	result := r.db.Delete(&entity.FileObject{}, "id = ?", id)
	return result.RowsAffected, result.Error
}

// FindTrashed lists every trashed object, most recently trashed first.
func (r *FileObjectRepository) FindTrashed() ([]entity.FileObject, error) {
	var objects []entity.FileObject
	err := r.db.Where("is_deleted = ?", true).Order("deleted_at DESC").Find(&objects).Error
	if err != nil {
		return nil, err
	}
	return objects, nil
}

// SearchByName returns active objects whose name contains q as a
// case-insensitive substring.
func (r *FileObjectRepository) SearchByName(q string) ([]entity.FileObject, error) {
	var objects []entity.FileObject
	pattern := "%" + strings.ToLower(q) + "%"
	err := r.db.Where("LOWER(name) LIKE ? AND is_deleted = ?", pattern, false).Find(&objects).Error
	if err != nil {
		return nil, err
	}
	return objects, nil
}
