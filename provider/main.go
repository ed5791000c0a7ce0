package provider

import (
	"github.com/nitchakan-dev/filevault/config"
	"github.com/nitchakan-dev/filevault/infra"
	"github.com/nitchakan-dev/filevault/repository"
)

type Provider struct {
	Tree      *TreeService
	Objects   *ObjectService
	Lifecycle *LifecycleService
}

func NewProvider(cfg *config.EnvConfig, infra *infra.Infra, repo *repository.Repository) *Provider {
	tree := NewTreeService(cfg, infra, repo)
	objects := NewObjectService(infra, repo, tree)
	lifecycle := NewLifecycleService(infra, repo, tree)

	return &Provider{
		Tree:      tree,
		Objects:   objects,
		Lifecycle: lifecycle,
	}
}
