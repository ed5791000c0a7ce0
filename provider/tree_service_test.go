package provider

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/nitchakan-dev/filevault/config"
	"github.com/nitchakan-dev/filevault/entity"
	infraPkg "github.com/nitchakan-dev/filevault/infra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (env *testEnv) mustCreateFolder(t *testing.T, name string, parentID *uuid.UUID) *entity.FileObject {
	t.Helper()
	folder, err := env.provider.Objects.CreateFolder(context.Background(), "tester", name, parentID)
	require.NoError(t, err)
	return folder
}

func (env *testEnv) mustUpload(t *testing.T, name string, parentID *uuid.UUID) entity.FileObject {
	t.Helper()
	created, err := env.provider.Objects.UploadFiles(context.Background(), "tester", parentID, []UploadInput{
		{Name: name, Mimetype: "text/plain", Size: 5, Reader: strings.NewReader("hello")},
	})
	require.NoError(t, err)
	require.Len(t, created, 1)
	return created[0]
}

func TestBreadcrumbs_RootLevel(t *testing.T) {
	env := newTestEnv(t)

	crumbs, err := env.provider.Tree.Breadcrumbs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, crumbs)
}

func TestBreadcrumbs_Chain(t *testing.T) {
	env := newTestEnv(t)

	a := env.mustCreateFolder(t, "a", nil)
	b := env.mustCreateFolder(t, "b", &a.ID)
	c := env.mustCreateFolder(t, "c", &b.ID)

	crumbs, err := env.provider.Tree.Breadcrumbs(context.Background(), &c.ID)
	require.NoError(t, err)
	require.Len(t, crumbs, 3)
	assert.Equal(t, []Breadcrumb{
		{ID: a.ID, Name: "a"},
		{ID: b.ID, Name: "b"},
		{ID: c.ID, Name: "c"},
	}, crumbs)
}

func TestBreadcrumbs_DanglingParentTruncates(t *testing.T) {
	env := newTestEnv(t)

	ghost := uuid.New()
	orphan := &entity.FileObject{
		ID:       uuid.New(),
		ParentID: &ghost,
		IsFolder: true,
		Name:     "orphan",
	}
	require.NoError(t, env.repo.FileObjectRepo.Create(orphan))

	crumbs, err := env.provider.Tree.Breadcrumbs(context.Background(), &orphan.ID)
	require.NoError(t, err)
	require.Len(t, crumbs, 1)
	assert.Equal(t, "orphan", crumbs[0].Name)
}

func TestBreadcrumbs_CycleStops(t *testing.T) {
	env := newTestEnv(t)

	a := env.mustCreateFolder(t, "a", nil)
	b := env.mustCreateFolder(t, "b", &a.ID)
	// Corrupt the graph: a now claims b as its parent.
	require.NoError(t, env.db.Model(&entity.FileObject{}).Where("id = ?", a.ID).
		Update("parent_id", b.ID).Error)

	crumbs, err := env.provider.Tree.Breadcrumbs(context.Background(), &b.ID)
	require.NoError(t, err)
	assert.Len(t, crumbs, 2)
}

func TestDescendants_PreOrder(t *testing.T) {
	env := newTestEnv(t)

	a := env.mustCreateFolder(t, "a", nil)
	b := env.mustCreateFolder(t, "b", &a.ID)
	c := env.mustCreateFolder(t, "c", &a.ID)
	f := env.mustUpload(t, "f.txt", &b.ID)

	descendants, err := env.provider.Tree.Descendants(context.Background(), a.ID)
	require.NoError(t, err)
	require.Len(t, descendants, 3)

	// Depth-first pre-order: b, then b's subtree, then c.
	assert.Equal(t, b.ID, descendants[0].ID)
	assert.Equal(t, f.ID, descendants[1].ID)
	assert.Equal(t, c.ID, descendants[2].ID)
}

func TestDescendants_IncludesTrashed(t *testing.T) {
	env := newTestEnv(t)

	a := env.mustCreateFolder(t, "a", nil)
	b := env.mustCreateFolder(t, "b", &a.ID)
	require.NoError(t, env.provider.Lifecycle.SoftDelete(context.Background(), "tester", b.ID))

	descendants, err := env.provider.Tree.Descendants(context.Background(), a.ID)
	require.NoError(t, err)
	require.Len(t, descendants, 1)
	assert.True(t, descendants[0].IsDeleted)
}

func TestDescendants_Leaf(t *testing.T) {
	env := newTestEnv(t)

	a := env.mustCreateFolder(t, "a", nil)

	descendants, err := env.provider.Tree.Descendants(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Empty(t, descendants)
}

func TestDescendants_CycleDetected(t *testing.T) {
	env := newTestEnv(t)

	a := env.mustCreateFolder(t, "a", nil)
	b := env.mustCreateFolder(t, "b", &a.ID)
	require.NoError(t, env.db.Model(&entity.FileObject{}).Where("id = ?", a.ID).
		Update("parent_id", b.ID).Error)

	_, err := env.provider.Tree.Descendants(context.Background(), a.ID)
	assert.ErrorIs(t, err, ErrCycle)
}

func TestDescendants_CascadeLimit(t *testing.T) {
	env := newTestEnv(t)

	a := env.mustCreateFolder(t, "a", nil)
	for i := 0; i < 3; i++ {
		env.mustUpload(t, "file.txt", &a.ID)
	}

	cfg := &config.EnvConfig{}
	cfg.Cascade.MaxObjects = 2
	limited := NewTreeService(cfg, &infraPkg.Infra{
		Logger: infraPkg.InitLoggerClient(cfg),
		Blob:   env.blob,
	}, env.repo)

	_, err := limited.Descendants(context.Background(), a.ID)
	assert.ErrorIs(t, err, ErrCascadeLimit)
}
