package provider

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/nitchakan-dev/filevault/config"
	"github.com/nitchakan-dev/filevault/entity"
	"github.com/nitchakan-dev/filevault/infra"
	"github.com/nitchakan-dev/filevault/repository"
	"gorm.io/gorm"
)

const breadcrumbCacheTTL = 30 * time.Second

// Breadcrumb is one hop of the root-to-folder navigation path.
type Breadcrumb struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// TreeService walks the parent-pointer hierarchy: breadcrumb chains and
// depth-first descendant enumeration for cascades.
type TreeService struct {
	repo       *repository.Repository
	cache      *infra.RedisClient // optional
	logger     *infra.LoggerClient
	maxObjects int
}

func NewTreeService(cfg *config.EnvConfig, infr *infra.Infra, repo *repository.Repository) *TreeService {
	maxObjects := 0
	if cfg != nil {
		maxObjects = cfg.Cascade.MaxObjects
	}
	return &TreeService{
		repo:       repo,
		cache:      infr.Redis,
		logger:     infr.Logger,
		maxObjects: maxObjects,
	}
}

// Breadcrumbs returns the ancestor chain from root to folderID in order.
// A missing ancestor truncates the chain instead of failing, so a folder
// whose parent was purged still renders with a shortened path. A nil
// folderID means the root level and yields an empty chain.
func (s *TreeService) Breadcrumbs(ctx context.Context, folderID *uuid.UUID) ([]Breadcrumb, error) {
	if folderID == nil {
		return []Breadcrumb{}, nil
	}

	cacheKey := "breadcrumbs:" + folderID.String()
	if s.cache != nil {
		var cached []Breadcrumb
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	breadcrumbs := []Breadcrumb{}
	visited := make(map[uuid.UUID]bool)
	currentID := folderID
	for currentID != nil {
		if visited[*currentID] {
			// Malformed parent graph; stop rather than loop forever.
			s.logger.WarningWithContextf(ctx, "[Tree] breadcrumb walk hit a parent cycle at %s", *currentID)
			break
		}
		visited[*currentID] = true

		object, err := s.repo.FileObjectRepo.FindByID(*currentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				break
			}
			return nil, err
		}
		breadcrumbs = append([]Breadcrumb{{ID: object.ID, Name: object.Name}}, breadcrumbs...)
		currentID = object.ParentID
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, breadcrumbs, breadcrumbCacheTTL); err != nil {
			s.logger.WarningWithContextf(ctx, "[Tree] failed to cache breadcrumbs for %s: %v", *folderID, err)
		}
	}

	return breadcrumbs, nil
}

// Descendants enumerates every object below id, depth-first pre-order,
// regardless of is_deleted: cascades must reach descendants that were
// already trashed. The target itself is not included. Fails with ErrCycle
// on a malformed parent graph and with ErrCascadeLimit past the
// configured budget.
func (s *TreeService) Descendants(ctx context.Context, id uuid.UUID) ([]entity.FileObject, error) {
	var result []entity.FileObject
	visited := map[uuid.UUID]bool{id: true}

	pushChildren := func(stack []entity.FileObject, parentID uuid.UUID) ([]entity.FileObject, error) {
		children, err := s.repo.FileObjectRepo.FindChildren(&parentID, true)
		if err != nil {
			return nil, err
		}
		// Push in reverse so the first child is popped first.
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
		return stack, nil
	}

	stack, err := pushChildren(nil, id)
	if err != nil {
		return nil, err
	}

	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if visited[current.ID] {
			return nil, ErrCycle
		}
		visited[current.ID] = true

		result = append(result, current)
		if s.maxObjects > 0 && len(result) > s.maxObjects {
			return nil, ErrCascadeLimit
		}

		if current.IsFolder {
			stack, err = pushChildren(stack, current.ID)
			if err != nil {
				return nil, err
			}
		}
	}

	return result, nil
}

// InvalidateBreadcrumbs drops the cached chain for one folder. Chains of
// descendants age out via TTL instead of being tracked individually.
func (s *TreeService) InvalidateBreadcrumbs(ctx context.Context, id uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, "breadcrumbs:"+id.String()); err != nil {
		s.logger.WarningWithContextf(ctx, "[Tree] failed to invalidate breadcrumbs for %s: %v", id, err)
	}
}
