package provider

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/nitchakan-dev/filevault/entity"
	"github.com/nitchakan-dev/filevault/infra"
	"github.com/nitchakan-dev/filevault/infra/produce"
	"github.com/nitchakan-dev/filevault/repository"
	"gorm.io/gorm"
)

// LifecycleService drives the object state machine:
//
//	ACTIVE --soft-delete--> TRASHED --restore--> ACTIVE
//	TRASHED --permanent-delete--> removed
//	ACTIVE --permanent-delete--> removed
type LifecycleService struct {
	repo    *repository.Repository
	blob    infra.BlobStorage
	logger  *infra.LoggerClient
	produce *produce.Produce // optional
	tree    *TreeService
}

func NewLifecycleService(infr *infra.Infra, repo *repository.Repository, tree *TreeService) *LifecycleService {
	return &LifecycleService{
		repo:    repo,
		blob:    infr.Blob,
		logger:  infr.Logger,
		produce: infr.Produce,
		tree:    tree,
	}
}

// SoftDelete flags the target object only. Children are never flagged
// individually; their trashed status is inherited through traversal, so
// restoring the parent later brings the whole subtree back at once.
func (s *LifecycleService) SoftDelete(ctx context.Context, actor string, id uuid.UUID) error {
	rows, err := s.repo.FileObjectRepo.SetDeletedFlag(id, true)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}

	s.tree.InvalidateBreadcrumbs(ctx, id)
	recordAudit(ctx, s.repo, s.logger, actor, entity.AuditActionSoftDelete, &id, nil)
	return nil
}

// Restore clears the trashed flag. The parent chain is not validated: an
// object whose parent was purged in the meantime simply becomes a new
// root.
func (s *LifecycleService) Restore(ctx context.Context, actor string, id uuid.UUID) error {
	rows, err := s.repo.FileObjectRepo.SetDeletedFlag(id, false)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}

	s.tree.InvalidateBreadcrumbs(ctx, id)
	recordAudit(ctx, s.repo, s.logger, actor, entity.AuditActionRestore, &id, nil)
	return nil
}

// PermanentlyDelete removes an object, all of its descendants and every
// descendant file's blob. An already-removed target is a no-op success,
// which makes the operation idempotent and lets overlapping cascades
// race without failing.
//
// Blob removal failures are logged and skipped; row deletion runs in one
// transaction and is the only fatal phase.
func (s *LifecycleService) PermanentlyDelete(ctx context.Context, actor string, id uuid.UUID) error {
	root, err := s.repo.FileObjectRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	descendants, err := s.tree.Descendants(ctx, id)
	if err != nil {
		return err
	}

	victims := append(descendants, *root)

	storagePaths := make([]string, 0, len(victims))
	for _, object := range victims {
		if object.IsFolder || object.StoragePath == nil {
			continue
		}
		storagePaths = append(storagePaths, *object.StoragePath)
		if err := s.blob.Remove(ctx, *object.StoragePath); err != nil {
			s.logger.WarningWithContextf(ctx, "[Lifecycle] failed to remove blob %s for object %s: %v", *object.StoragePath, object.ID, err)
		}
	}

	tx := s.repo.BeginTransaction()
	if tx.Error != nil {
		return tx.Error
	}
	txRepo := s.repo.WithTransaction(tx)
	// Descendants come back pre-order (parents first); delete in reverse
	// so children go before their parents, then the root last.
	for i := len(descendants) - 1; i >= 0; i-- {
		if _, err := txRepo.FileObjectRepo.Delete(descendants[i].ID); err != nil {
			tx.Rollback()
			return err
		}
	}
	if _, err := txRepo.FileObjectRepo.Delete(root.ID); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit().Error; err != nil {
		return err
	}

	s.tree.InvalidateBreadcrumbs(ctx, id)
	s.publishCleanup(ctx, id, storagePaths)
	recordAudit(ctx, s.repo, s.logger, actor, entity.AuditActionPurge, &id, map[string]interface{}{
		"removed_objects": len(victims),
		"removed_blobs":   len(storagePaths),
	})
	return nil
}

// EmptyTrash purges every trashed object. A trashed child that was
// already removed by an earlier cascade in the same batch is skipped, so
// the batch never aborts on an expected NotFound. Fatal store errors
// abort the remainder; rerunning the operation finishes the leftover
// work.
func (s *LifecycleService) EmptyTrash(ctx context.Context, actor string) (int, error) {
	trashed, err := s.repo.FileObjectRepo.FindTrashed()
	if err != nil {
		return 0, err
	}

	purged := 0
	for _, object := range trashed {
		if err := s.PermanentlyDelete(ctx, actor, object.ID); err != nil {
			return purged, err
		}
		purged++
	}

	recordAudit(ctx, s.repo, s.logger, actor, entity.AuditActionEmptyTrash, nil, map[string]interface{}{
		"trashed_roots": len(trashed),
	})
	return purged, nil
}

// TrashListing returns the trash page contents, most recently trashed
// first.
func (s *LifecycleService) TrashListing(ctx context.Context) ([]entity.FileObject, error) {
	return s.repo.FileObjectRepo.FindTrashed()
}

func (s *LifecycleService) publishCleanup(ctx context.Context, id uuid.UUID, storagePaths []string) {
	if s.produce == nil || len(storagePaths) == 0 {
		return
	}
	msg := produce.BlobCleanupMessage{
		ObjectID:     id.String(),
		StoragePaths: storagePaths,
	}
	if err := s.produce.CleanupService.PublishBlobCleanup(ctx, msg); err != nil {
		s.logger.WarningWithContextf(ctx, "[Lifecycle] failed to publish cleanup for %s: %v", id, err)
	}
}
