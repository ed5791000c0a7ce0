package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nitchakan-dev/filevault/infra"
	"github.com/nitchakan-dev/filevault/infra/produce"
	amqp "github.com/rabbitmq/amqp091-go"
)

// CleanupConsumer sweeps blobs left behind by a purge whose inline
// removal was skipped or failed. Rows are gone by the time the message
// arrives, so any listed path still present in blob storage is an
// orphan.
type CleanupConsumer struct {
	channel *amqp.Channel
	infra   *infra.Infra
}

func NewCleanupConsumer(channel *amqp.Channel, infra *infra.Infra) *CleanupConsumer {
	return &CleanupConsumer{
		channel: channel,
		infra:   infra,
	}
}

func (c *CleanupConsumer) Start(ctx context.Context) error {
	msgs, err := c.channel.Consume(
		produce.BlobCleanupQueue,
		"",
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register blob cleanup consumer: %w", err)
	}

	c.infra.Logger.InfoWithContextf(ctx, "[Cleanup Consumer] Started listening for cleanup jobs on queue: %s", produce.BlobCleanupQueue)

	go func() {
		for {
			select {
			case <-ctx.Done():
				c.infra.Logger.InfoWithContextf(ctx, "[Cleanup Consumer] Shutting down...")
				return
			case msg, ok := <-msgs:
				if !ok {
					c.infra.Logger.WarningWithContextf(ctx, "[Cleanup Consumer] Channel closed")
					return
				}
				c.handleCleanup(ctx, msg)
			}
		}
	}()

	return nil
}

// handleCleanup sweeps every listed path and acks only when all of them
// are gone. A delivery with failed sweeps is requeued once; on its
// redelivery the remaining blobs are given up on instead of cycling the
// message forever.
func (c *CleanupConsumer) handleCleanup(ctx context.Context, msg amqp.Delivery) {
	var payload produce.BlobCleanupMessage
	if err := json.Unmarshal(msg.Body, &payload); err != nil {
		c.infra.Logger.ErrorWithContextf(ctx, err, "[Cleanup Consumer] Failed to unmarshal message: %v", err)
		_ = msg.Nack(false, false)
		return
	}

	swept := 0
	failed := 0
	for _, path := range payload.StoragePaths {
		if !c.infra.Blob.Exists(ctx, path) {
			continue
		}
		if err := c.infra.Blob.Remove(ctx, path); err != nil {
			c.infra.Logger.WarningWithContextf(ctx, "[Cleanup Consumer] Failed to sweep blob %s: %v", path, err)
			failed++
			continue
		}
		swept++
	}

	if swept > 0 {
		c.infra.Logger.InfoWithContextf(ctx, "[Cleanup Consumer] Swept %d leftover blobs for object %s", swept, payload.ObjectID)
	}

	if failed > 0 {
		if msg.Redelivered {
			c.infra.Logger.ErrorWithContextf(ctx, nil, "[Cleanup Consumer] Giving up on %d blobs for object %s after redelivery", failed, payload.ObjectID)
			_ = msg.Ack(false)
			return
		}
		c.infra.Logger.WarningWithContextf(ctx, "[Cleanup Consumer] Requeueing cleanup for object %s, %d blobs still present", payload.ObjectID, failed)
		_ = msg.Nack(false, true)
		return
	}

	_ = msg.Ack(false)
}
