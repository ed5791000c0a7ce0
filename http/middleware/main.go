package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/nitchakan-dev/filevault/http/controller"
)

type Middlewares struct {
	CORSMiddleware       gin.HandlerFunc
	SuperadminMiddleware gin.HandlerFunc
}

func NewMiddlewares(ctrl *controller.Controller) (*Middlewares, error) {
	cors := CORSMiddleware(ctrl.Config.EnvConfig)
	superadmin := SuperadminMiddleware(ctrl.Config.EnvConfig, ctrl.Infra.Redis)

	return &Middlewares{
		CORSMiddleware:       cors,
		SuperadminMiddleware: superadmin,
	}, nil
}
