package controller

import (
	"errors"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nitchakan-dev/filevault/http/controller/dto"
	"github.com/nitchakan-dev/filevault/provider"
	"github.com/nitchakan-dev/filevault/utils"
)

func (ctrl *Controller) CreateFolder(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateFolderRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSON400(c, "Folder name is required")
		return
	}

	parentID, err := parseOptionalID(req.ParentID)
	if err != nil {
		utils.JSON400(c, "Invalid parent_id format")
		return
	}

	folder, err := ctrl.Provider.Objects.CreateFolder(ctx, c.GetString("username"), req.Name, parentID)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[File] Failed to create folder: %v", err)
		respondError(c, err)
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[File] Created folder '%s' (%s)", folder.Name, folder.ID)
	utils.JSON201(c, folder)
}

func (ctrl *Controller) UploadFiles(c *gin.Context) {
	ctx := c.Request.Context()

	form, err := c.MultipartForm()
	if err != nil {
		utils.JSON400(c, "Failed to parse multipart form: "+err.Error())
		return
	}

	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		utils.JSON400(c, "No files uploaded")
		return
	}

	parentID, err := parseOptionalID(c.PostForm("parent_id"))
	if err != nil {
		utils.JSON400(c, "Invalid parent_id format")
		return
	}

	inputs := make([]provider.UploadInput, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		f, err := fh.Open()
		if err != nil {
			utils.JSON400(c, "Failed to read file: "+err.Error())
			return
		}
		defer f.Close()

		inputs = append(inputs, provider.UploadInput{
			// Multipart filenames can arrive Latin-1 mangled; repair
			// before the name is persisted.
			Name:     utils.RepairFilename(fh.Filename),
			Mimetype: fh.Header.Get("Content-Type"),
			Size:     fh.Size,
			Reader:   f,
		})
	}

	created, err := ctrl.Provider.Objects.UploadFiles(ctx, c.GetString("username"), parentID, inputs)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[File] Upload failed after %d of %d files: %v", len(created), len(inputs), err)
		respondError(c, err)
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[File] Uploaded %d files", len(created))
	utils.JSON201(c, gin.H{"objects": created, "count": len(created)})
}

func (ctrl *Controller) RenameObject(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.JSON400(c, "Invalid id format")
		return
	}

	var req dto.RenameRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSON400(c, "New name is required")
		return
	}

	if err := ctrl.Provider.Objects.Rename(ctx, c.GetString("username"), id, req.NewName); err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[File] Failed to rename object %s: %v", id, err)
		respondError(c, err)
		return
	}

	utils.JSON200(c, gin.H{"message": "Renamed successfully"})
}

func (ctrl *Controller) Browse(c *gin.Context) {
	ctx := c.Request.Context()

	parentID, err := parseOptionalID(c.Param("parent_id"))
	if err != nil {
		utils.JSON400(c, "Invalid parent_id format")
		return
	}

	objects, breadcrumbs, err := ctrl.Provider.Objects.ListFolder(ctx, parentID)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[File] Failed to list folder: %v", err)
		respondError(c, err)
		return
	}

	utils.JSON200(c, gin.H{
		"objects":     objects,
		"breadcrumbs": breadcrumbs,
		"count":       len(objects),
	})
}

func (ctrl *Controller) Search(c *gin.Context) {
	ctx := c.Request.Context()

	results, err := ctrl.Provider.Objects.Search(ctx, c.Query("q"))
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[File] Search failed: %v", err)
		respondError(c, err)
		return
	}

	utils.JSON200(c, results)
}

func (ctrl *Controller) SoftDeleteObject(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.JSON400(c, "Invalid id format")
		return
	}

	if err := ctrl.Provider.Lifecycle.SoftDelete(ctx, c.GetString("username"), id); err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[File] Failed to trash object %s: %v", id, err)
		respondError(c, err)
		return
	}

	utils.JSON200(c, gin.H{"message": "Moved to trash"})
}

func (ctrl *Controller) RestoreObject(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.JSON400(c, "Invalid id format")
		return
	}

	if err := ctrl.Provider.Lifecycle.Restore(ctx, c.GetString("username"), id); err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[File] Failed to restore object %s: %v", id, err)
		respondError(c, err)
		return
	}

	utils.JSON200(c, gin.H{"message": "Restored successfully"})
}

func (ctrl *Controller) PermanentlyDeleteObject(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.JSON400(c, "Invalid id format")
		return
	}

	if err := ctrl.Provider.Lifecycle.PermanentlyDelete(ctx, c.GetString("username"), id); err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[File] Failed to permanently delete object %s: %v", id, err)
		respondError(c, err)
		return
	}

	utils.JSON200(c, gin.H{"message": "Permanently deleted"})
}

func (ctrl *Controller) EmptyTrash(c *gin.Context) {
	ctx := c.Request.Context()

	purged, err := ctrl.Provider.Lifecycle.EmptyTrash(ctx, c.GetString("username"))
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[File] Empty trash aborted after %d objects: %v", purged, err)
		respondError(c, err)
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[File] Emptied trash, purged %d objects", purged)
	utils.JSON200(c, gin.H{"message": "Trash emptied", "purged": purged})
}

func (ctrl *Controller) ShowTrash(c *gin.Context) {
	ctx := c.Request.Context()

	items, err := ctrl.Provider.Lifecycle.TrashListing(ctx)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[File] Failed to list trash: %v", err)
		respondError(c, err)
		return
	}

	utils.JSON200(c, gin.H{"items": items, "count": len(items)})
}

func (ctrl *Controller) Download(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.JSON400(c, "Invalid id format")
		return
	}

	object, reader, err := ctrl.Provider.Objects.Download(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	defer reader.Close()

	mimetype := "application/octet-stream"
	if object.Mimetype != nil {
		mimetype = *object.Mimetype
	}
	// FormatMediaType switches to the RFC 5987 filename* form for
	// non-ASCII names, so repaired upload names survive the round trip.
	extraHeaders := map[string]string{
		"Content-Disposition": mime.FormatMediaType("attachment", map[string]string{"filename": object.Name}),
	}
	c.DataFromReader(http.StatusOK, object.SizeBytes, mimetype, reader, extraHeaders)
}

func (ctrl *Controller) Preview(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.JSON400(c, "Invalid id format")
		return
	}

	object, reader, err := ctrl.Provider.Objects.Preview(ctx, id)
	if err != nil {
		if errors.Is(err, provider.ErrValidation) {
			utils.JSON403(c, "Preview is only available for images")
			return
		}
		respondError(c, err)
		return
	}
	defer reader.Close()

	c.DataFromReader(http.StatusOK, object.SizeBytes, *object.Mimetype, reader, nil)
}
