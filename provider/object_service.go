package provider

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/nitchakan-dev/filevault/entity"
	"github.com/nitchakan-dev/filevault/infra"
	"github.com/nitchakan-dev/filevault/repository"
)

// UploadInput is one file payload of an upload batch.
type UploadInput struct {
	Name     string
	Mimetype string
	Size     int64
	Reader   io.Reader
}

// ObjectService covers creation, rename, listing, search and content
// access for file objects.
type ObjectService struct {
	repo   *repository.Repository
	blob   infra.BlobStorage
	logger *infra.LoggerClient
	tree   *TreeService
}

func NewObjectService(infr *infra.Infra, repo *repository.Repository, tree *TreeService) *ObjectService {
	return &ObjectService{
		repo:   repo,
		blob:   infr.Blob,
		logger: infr.Logger,
		tree:   tree,
	}
}

func (s *ObjectService) Get(ctx context.Context, id uuid.UUID) (*entity.FileObject, error) {
	object, err := s.repo.FileObjectRepo.FindByID(id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return object, nil
}

// CreateFolder inserts a folder row. The parent, when given, must be an
// existing folder; names need not be unique among siblings.
func (s *ObjectService) CreateFolder(ctx context.Context, actor, name string, parentID *uuid.UUID) (*entity.FileObject, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: folder name is required", ErrValidation)
	}
	if err := s.checkParent(parentID); err != nil {
		return nil, err
	}

	folder := &entity.FileObject{
		ID:       uuid.New(),
		ParentID: parentID,
		IsFolder: true,
		Name:     name,
	}
	if err := s.repo.FileObjectRepo.Create(folder); err != nil {
		return nil, err
	}

	s.audit(ctx, actor, entity.AuditActionCreateFolder, &folder.ID, map[string]interface{}{"name": name})
	return folder, nil
}

// UploadFiles stores each payload's content and inserts one row per file.
// Earlier files of the batch stay persisted when a later one fails, which
// matches the per-row behaviour of the upload form.
func (s *ObjectService) UploadFiles(ctx context.Context, actor string, parentID *uuid.UUID, files []UploadInput) ([]entity.FileObject, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no files uploaded", ErrValidation)
	}
	if err := s.checkParent(parentID); err != nil {
		return nil, err
	}

	created := make([]entity.FileObject, 0, len(files))
	for _, f := range files {
		name := strings.TrimSpace(f.Name)
		if name == "" {
			return created, fmt.Errorf("%w: file name is required", ErrValidation)
		}
		mimetype := f.Mimetype
		if mimetype == "" {
			mimetype = "application/octet-stream"
		}

		storagePath, err := s.blob.Store(ctx, f.Reader, f.Size, name)
		if err != nil {
			return created, fmt.Errorf("%w: %v", ErrStorageIO, err)
		}

		object := &entity.FileObject{
			ID:          uuid.New(),
			ParentID:    parentID,
			IsFolder:    false,
			Name:        name,
			StoragePath: &storagePath,
			Mimetype:    &mimetype,
			SizeBytes:   f.Size,
		}
		if err := s.repo.FileObjectRepo.Create(object); err != nil {
			// Metadata insert failed; drop the blob we just wrote.
			if rmErr := s.blob.Remove(ctx, storagePath); rmErr != nil {
				s.logger.WarningWithContextf(ctx, "[Object] failed to remove blob %s after insert failure: %v", storagePath, rmErr)
			}
			return created, err
		}

		s.audit(ctx, actor, entity.AuditActionUpload, &object.ID, map[string]interface{}{
			"name":       name,
			"mimetype":   mimetype,
			"size_bytes": f.Size,
		})
		created = append(created, *object)
	}

	return created, nil
}

// Rename replaces the display name only. Renaming to the current name is
// a harmless no-op.
func (s *ObjectService) Rename(ctx context.Context, actor string, id uuid.UUID, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return fmt.Errorf("%w: new name is required", ErrValidation)
	}

	rows, err := s.repo.FileObjectRepo.Rename(id, newName)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}

	s.tree.InvalidateBreadcrumbs(ctx, id)
	s.audit(ctx, actor, entity.AuditActionRename, &id, map[string]interface{}{"new_name": newName})
	return nil
}

// ListFolder returns the active direct children of parentID plus the
// breadcrumb chain for rendering a folder page.
func (s *ObjectService) ListFolder(ctx context.Context, parentID *uuid.UUID) ([]entity.FileObject, []Breadcrumb, error) {
	children, err := s.repo.FileObjectRepo.FindChildren(parentID, false)
	if err != nil {
		return nil, nil, err
	}
	breadcrumbs, err := s.tree.Breadcrumbs(ctx, parentID)
	if err != nil {
		return nil, nil, err
	}
	return children, breadcrumbs, nil
}

// Search returns active objects whose name contains q, case-insensitive.
// A blank query returns an empty result rather than the whole namespace.
func (s *ObjectService) Search(ctx context.Context, q string) ([]entity.FileObject, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []entity.FileObject{}, nil
	}
	objects, err := s.repo.FileObjectRepo.SearchByName(q)
	if err != nil {
		return nil, err
	}
	if objects == nil {
		objects = []entity.FileObject{}
	}
	return objects, nil
}

// Download opens the blob of an active file object. Folders, trashed
// objects and rows whose blob is gone all come back as ErrNotFound.
func (s *ObjectService) Download(ctx context.Context, id uuid.UUID) (*entity.FileObject, io.ReadCloser, error) {
	object, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if object.IsFolder || object.IsDeleted || object.StoragePath == nil {
		return nil, nil, ErrNotFound
	}
	if !s.blob.Exists(ctx, *object.StoragePath) {
		return nil, nil, ErrNotFound
	}
	reader, err := s.blob.Open(ctx, *object.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrStorageIO, err)
	}
	return object, reader, nil
}

// Preview is Download restricted to image mimetypes.
func (s *ObjectService) Preview(ctx context.Context, id uuid.UUID) (*entity.FileObject, io.ReadCloser, error) {
	object, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if object.IsFolder || object.IsDeleted {
		return nil, nil, ErrNotFound
	}
	if !object.IsImage() {
		return nil, nil, fmt.Errorf("%w: preview is only available for images", ErrValidation)
	}
	return s.Download(ctx, id)
}

func (s *ObjectService) checkParent(parentID *uuid.UUID) error {
	if parentID == nil {
		return nil
	}
	parent, err := s.repo.FileObjectRepo.FindByID(*parentID)
	if err != nil {
		return fmt.Errorf("%w: parent folder does not exist", ErrValidation)
	}
	if !parent.IsFolder {
		return fmt.Errorf("%w: parent is not a folder", ErrValidation)
	}
	return nil
}

func (s *ObjectService) audit(ctx context.Context, actor, action string, objectID *uuid.UUID, details map[string]interface{}) {
	recordAudit(ctx, s.repo, s.logger, actor, action, objectID, details)
}
