package produce

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	BlobCleanupQueue      = "blob.cleanup"
	BlobCleanupExchange   = "blob.exchange"
	BlobCleanupRoutingKey = "blob.cleanup"
)

// BlobCleanupMessage asks the cleanup worker to verify that the listed
// storage paths are gone. It is published after every permanent delete so
// blobs whose inline removal failed still get swept.
type BlobCleanupMessage struct {
	ObjectID     string   `json:"object_id"`     // root of the purged subtree
	StoragePaths []string `json:"storage_paths"` // blob keys of every purged file
	Timestamp    int64    `json:"timestamp"`
}

// CleanupService publishes blob cleanup jobs.
type CleanupService struct {
	channel *amqp.Channel
}

func InitCleanupService(channel *amqp.Channel) *CleanupService {
	service := &CleanupService{
		channel: channel,
	}

	err := channel.ExchangeDeclare(
		BlobCleanupExchange,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		return nil
	}

	queue, err := channel.QueueDeclare(
		BlobCleanupQueue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return nil
	}

	err = channel.QueueBind(
		queue.Name,
		BlobCleanupRoutingKey,
		BlobCleanupExchange,
		false,
		nil,
	)
	if err != nil {
		return nil
	}

	return service
}

func (s *CleanupService) PublishBlobCleanup(ctx context.Context, msg BlobCleanupMessage) error {
	if msg.Timestamp == 0 {
		msg.Timestamp = time.Now().Unix()
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal cleanup message: %w", err)
	}

	err = s.channel.PublishWithContext(ctx,
		BlobCleanupExchange,
		BlobCleanupRoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish cleanup message: %w", err)
	}

	return nil
}
