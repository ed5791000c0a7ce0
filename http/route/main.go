package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/nitchakan-dev/filevault/http/controller"
	middlewares "github.com/nitchakan-dev/filevault/http/middleware"
)

func SetupRouter(ctrl *controller.Controller) *gin.Engine {
	r := gin.Default()
	middles, err := middlewares.NewMiddlewares(ctrl)
	if err != nil {
		panic(err)
	}

	r.Use(middles.CORSMiddleware)
	r.GET("/health", ctrl.Health)

	apiRoutes := r.Group("/api/v1")
	{
		authRoutes := apiRoutes.Group("/auth")
		{
			authRoutes.POST("/login", ctrl.Login)
			authRoutes.GET("/logout", ctrl.Logout)
		}

		fileRoutes := apiRoutes.Group("/files")
		{
			// Public routes
			fileRoutes.GET("/browse", ctrl.Browse)
			fileRoutes.GET("/browse/:parent_id", ctrl.Browse)
			fileRoutes.GET("/search", ctrl.Search)
			fileRoutes.GET("/download/:id", ctrl.Download)

			// Superadmin routes
			adminRoutes := fileRoutes.Group("")
			adminRoutes.Use(middles.SuperadminMiddleware)
			{
				adminRoutes.POST("/folder", ctrl.CreateFolder)
				adminRoutes.POST("/upload", ctrl.UploadFiles)
				adminRoutes.POST("/rename/:id", ctrl.RenameObject)
				adminRoutes.POST("/delete/:id", ctrl.SoftDeleteObject)
				adminRoutes.POST("/restore/:id", ctrl.RestoreObject)
				adminRoutes.POST("/perm-delete/:id", ctrl.PermanentlyDeleteObject)
				adminRoutes.POST("/empty-trash", ctrl.EmptyTrash)
				adminRoutes.GET("/trash", ctrl.ShowTrash)
				adminRoutes.GET("/preview/:id", ctrl.Preview)
				adminRoutes.GET("/audit", ctrl.ShowAuditLog)
			}
		}
	}
	return r
}
