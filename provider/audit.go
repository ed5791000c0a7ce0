package provider

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/nitchakan-dev/filevault/entity"
	"github.com/nitchakan-dev/filevault/infra"
	"github.com/nitchakan-dev/filevault/repository"
)

// recordAudit appends one audit row. Failures are logged and swallowed;
// the audit trail never blocks the operation it describes.
func recordAudit(ctx context.Context, repo *repository.Repository, logger *infra.LoggerClient, actor, action string, objectID *uuid.UUID, details map[string]interface{}) {
	payload, err := json.Marshal(details)
	if err != nil {
		payload = nil
	}
	event := &entity.AuditEvent{
		ID:       uuid.New(),
		Action:   action,
		ObjectID: objectID,
		Actor:    actor,
		Details:  payload,
	}
	if err := repo.AuditEventRepo.Create(event); err != nil {
		logger.WarningWithContextf(ctx, "[Audit] failed to record %s: %v", action, err)
	}
}
