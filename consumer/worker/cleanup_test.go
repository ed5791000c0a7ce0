package worker

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nitchakan-dev/filevault/config"
	"github.com/nitchakan-dev/filevault/infra"
	"github.com/nitchakan-dev/filevault/infra/produce"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAcknowledger struct {
	acked   bool
	nacked  bool
	requeue bool
}

func (a *fakeAcknowledger) Ack(tag uint64, multiple bool) error {
	a.acked = true
	return nil
}

func (a *fakeAcknowledger) Nack(tag uint64, multiple, requeue bool) error {
	a.nacked = true
	a.requeue = requeue
	return nil
}

func (a *fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	a.nacked = true
	a.requeue = requeue
	return nil
}

type cleanupEnv struct {
	consumer *CleanupConsumer
	blob     *infra.LocalBlobStorage
	blobDir  string
}

func newCleanupEnv(t *testing.T) *cleanupEnv {
	t.Helper()

	blobDir := filepath.Join(t.TempDir(), "blobs")
	blob, err := infra.NewLocalBlobStorage(blobDir)
	require.NoError(t, err)

	infr := &infra.Infra{
		Logger: infra.InitLoggerClient(&config.EnvConfig{}),
		Blob:   blob,
	}

	return &cleanupEnv{
		consumer: NewCleanupConsumer(nil, infr),
		blob:     blob,
		blobDir:  blobDir,
	}
}

// stuckBlob plants a path the local driver cannot remove: a non-empty
// directory stats fine but fails os.Remove.
func (env *cleanupEnv) stuckBlob(t *testing.T, name string) string {
	t.Helper()
	dir := filepath.Join(env.blobDir, name)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "inner"), []byte("x"), 0o644))
	return name
}

func (env *cleanupEnv) delivery(t *testing.T, redelivered bool, paths ...string) (amqp.Delivery, *fakeAcknowledger) {
	t.Helper()
	body, err := json.Marshal(produce.BlobCleanupMessage{
		ObjectID:     "11111111-1111-1111-1111-111111111111",
		StoragePaths: paths,
	})
	require.NoError(t, err)

	acker := &fakeAcknowledger{}
	return amqp.Delivery{
		Acknowledger: acker,
		Body:         body,
		Redelivered:  redelivered,
	}, acker
}

func TestHandleCleanup_SweepsOrphans(t *testing.T) {
	env := newCleanupEnv(t)
	ctx := context.Background()

	key, err := env.blob.Store(ctx, strings.NewReader("orphan"), 6, "orphan.txt")
	require.NoError(t, err)

	msg, acker := env.delivery(t, false, key, "already-gone")
	env.consumer.handleCleanup(ctx, msg)

	assert.True(t, acker.acked)
	assert.False(t, acker.nacked)
	assert.False(t, env.blob.Exists(ctx, key))
}

func TestHandleCleanup_RequeuesFailedSweep(t *testing.T) {
	env := newCleanupEnv(t)
	ctx := context.Background()

	key := env.stuckBlob(t, "stuck")

	msg, acker := env.delivery(t, false, key)
	env.consumer.handleCleanup(ctx, msg)

	assert.False(t, acker.acked)
	assert.True(t, acker.nacked)
	assert.True(t, acker.requeue)
	assert.True(t, env.blob.Exists(ctx, key))
}

func TestHandleCleanup_GivesUpAfterRedelivery(t *testing.T) {
	env := newCleanupEnv(t)
	ctx := context.Background()

	key := env.stuckBlob(t, "stuck")

	msg, acker := env.delivery(t, true, key)
	env.consumer.handleCleanup(ctx, msg)

	assert.True(t, acker.acked)
	assert.False(t, acker.nacked)
}

func TestHandleCleanup_PartialFailureStillRequeues(t *testing.T) {
	env := newCleanupEnv(t)
	ctx := context.Background()

	good, err := env.blob.Store(ctx, strings.NewReader("x"), 1, "good.txt")
	require.NoError(t, err)
	stuck := env.stuckBlob(t, "stuck")

	msg, acker := env.delivery(t, false, good, stuck)
	env.consumer.handleCleanup(ctx, msg)

	assert.False(t, env.blob.Exists(ctx, good))
	assert.True(t, acker.nacked)
	assert.True(t, acker.requeue)
}

func TestHandleCleanup_BadPayload(t *testing.T) {
	env := newCleanupEnv(t)

	acker := &fakeAcknowledger{}
	env.consumer.handleCleanup(context.Background(), amqp.Delivery{
		Acknowledger: acker,
		Body:         []byte("not json"),
	})

	assert.True(t, acker.nacked)
	assert.False(t, acker.requeue)
}
