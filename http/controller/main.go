package controller

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nitchakan-dev/filevault/config"
	"github.com/nitchakan-dev/filevault/infra"
	"github.com/nitchakan-dev/filevault/provider"
	"github.com/nitchakan-dev/filevault/repository"
	"github.com/nitchakan-dev/filevault/utils"
)

type Controller struct {
	Config     *config.Config
	Infra      *infra.Infra
	Repository *repository.Repository
	Provider   *provider.Provider
}

func NewController(config *config.Config, infra *infra.Infra, repo *repository.Repository, prov *provider.Provider) *Controller {
	if repo == nil {
		panic("Failed to initialize Repository")
	}
	if prov == nil {
		panic("Failed to initialize Provider")
	}
	return &Controller{
		Config:     config,
		Infra:      infra,
		Repository: repo,
		Provider:   prov,
	}
}

func (ctrl *Controller) Health(c *gin.Context) {
	utils.JSON200(c, gin.H{"status": "ok"})
}

// respondError maps provider sentinel errors to HTTP statuses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, provider.ErrValidation):
		utils.JSON400(c, err.Error())
	case errors.Is(err, provider.ErrNotFound):
		utils.JSON404(c, "Object not found")
	case errors.Is(err, provider.ErrCycle), errors.Is(err, provider.ErrCascadeLimit):
		utils.JSON500(c, err.Error())
	default:
		utils.JSON500(c, "Internal server error")
	}
}

// parseOptionalID turns an optional form/query value into a *uuid.UUID;
// empty and the literal "undefined" both mean root, matching what the
// original frontend sends.
func parseOptionalID(value string) (*uuid.UUID, error) {
	if value == "" || value == "undefined" || value == "null" {
		return nil, nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
