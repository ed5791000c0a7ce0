package provider

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFolder_BlankName(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.provider.Objects.CreateFolder(context.Background(), "tester", "   ", nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateFolder_MissingParent(t *testing.T) {
	env := newTestEnv(t)

	ghost := uuid.New()
	_, err := env.provider.Objects.CreateFolder(context.Background(), "tester", "docs", &ghost)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateFolder_ParentMustBeFolder(t *testing.T) {
	env := newTestEnv(t)

	file := env.mustUpload(t, "readme.txt", nil)
	_, err := env.provider.Objects.CreateFolder(context.Background(), "tester", "docs", &file.ID)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUploadFiles_PersistsRowAndBlob(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.provider.Objects.UploadFiles(ctx, "tester", nil, []UploadInput{
		{Name: "notes.txt", Mimetype: "text/plain", Size: 11, Reader: strings.NewReader("hello world")},
	})
	require.NoError(t, err)
	require.Len(t, created, 1)

	object := created[0]
	assert.False(t, object.IsFolder)
	assert.Equal(t, int64(11), object.SizeBytes)
	require.NotNil(t, object.StoragePath)
	assert.True(t, env.blob.Exists(ctx, *object.StoragePath))
}

func TestUploadFiles_EmptyBatch(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.provider.Objects.UploadFiles(context.Background(), "tester", nil, nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUploadFiles_DefaultsMimetype(t *testing.T) {
	env := newTestEnv(t)

	created, err := env.provider.Objects.UploadFiles(context.Background(), "tester", nil, []UploadInput{
		{Name: "blob.bin", Size: 3, Reader: strings.NewReader("abc")},
	})
	require.NoError(t, err)
	require.NotNil(t, created[0].Mimetype)
	assert.Equal(t, "application/octet-stream", *created[0].Mimetype)
}

func TestUploadFiles_DuplicateNamesCoexist(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first := env.mustUpload(t, "report.pdf", nil)
	second := env.mustUpload(t, "report.pdf", nil)

	assert.NotEqual(t, first.ID, second.ID)
	assert.NotEqual(t, *first.StoragePath, *second.StoragePath)

	children, _, err := env.provider.Objects.ListFolder(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, children, 2)
}

func TestRename_UpdatesNameOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	file := env.mustUpload(t, "old.txt", nil)
	require.NoError(t, env.provider.Objects.Rename(ctx, "tester", file.ID, "new.txt"))

	got, err := env.provider.Objects.Get(ctx, file.ID)
	require.NoError(t, err)
	assert.Equal(t, "new.txt", got.Name)
	assert.Equal(t, *file.StoragePath, *got.StoragePath)
}

func TestRename_SameNameIsNoOp(t *testing.T) {
	env := newTestEnv(t)

	file := env.mustUpload(t, "same.txt", nil)
	assert.NoError(t, env.provider.Objects.Rename(context.Background(), "tester", file.ID, "same.txt"))
}

func TestRename_Missing(t *testing.T) {
	env := newTestEnv(t)

	err := env.provider.Objects.Rename(context.Background(), "tester", uuid.New(), "name")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRename_BlankName(t *testing.T) {
	env := newTestEnv(t)

	file := env.mustUpload(t, "keep.txt", nil)
	err := env.provider.Objects.Rename(context.Background(), "tester", file.ID, "  ")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestListFolder_ExcludesTrashed(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	folder := env.mustCreateFolder(t, "docs", nil)
	kept := env.mustUpload(t, "kept.txt", &folder.ID)
	gone := env.mustUpload(t, "gone.txt", &folder.ID)
	require.NoError(t, env.provider.Lifecycle.SoftDelete(ctx, "tester", gone.ID))

	children, crumbs, err := env.provider.Objects.ListFolder(ctx, &folder.ID)
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, kept.ID, children[0].ID)
	require.Len(t, crumbs, 1)
	assert.Equal(t, "docs", crumbs[0].Name)
}

func TestSearch_BlankQuery(t *testing.T) {
	env := newTestEnv(t)

	env.mustUpload(t, "anything.txt", nil)
	results, err := env.provider.Objects.Search(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearch_MatchesSubstringCaseInsensitive(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.mustUpload(t, "Quarterly Report.pdf", nil)
	env.mustUpload(t, "unrelated.txt", nil)

	results, err := env.provider.Objects.Search(ctx, "report")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Quarterly Report.pdf", results[0].Name)
}

func TestDownload_StreamsContent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	file := env.mustUpload(t, "body.txt", nil)

	object, reader, err := env.provider.Objects.Download(ctx, file.ID)
	require.NoError(t, err)
	defer reader.Close()

	body, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(body))
	assert.Equal(t, file.ID, object.ID)
}

func TestDownload_RejectsFolders(t *testing.T) {
	env := newTestEnv(t)

	folder := env.mustCreateFolder(t, "docs", nil)
	_, _, err := env.provider.Objects.Download(context.Background(), folder.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDownload_RejectsTrashed(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	file := env.mustUpload(t, "trashed.txt", nil)
	require.NoError(t, env.provider.Lifecycle.SoftDelete(ctx, "tester", file.ID))

	_, _, err := env.provider.Objects.Download(ctx, file.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDownload_MissingBlob(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	file := env.mustUpload(t, "hollow.txt", nil)
	require.NoError(t, env.blob.Remove(ctx, *file.StoragePath))

	_, _, err := env.provider.Objects.Download(ctx, file.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPreview_NonImage(t *testing.T) {
	env := newTestEnv(t)

	file := env.mustUpload(t, "plain.txt", nil)
	_, _, err := env.provider.Objects.Preview(context.Background(), file.ID)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestPreview_Image(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.provider.Objects.UploadFiles(ctx, "tester", nil, []UploadInput{
		{Name: "photo.png", Mimetype: "image/png", Size: 4, Reader: strings.NewReader("\x89PNG")},
	})
	require.NoError(t, err)

	object, reader, err := env.provider.Objects.Preview(ctx, created[0].ID)
	require.NoError(t, err)
	defer reader.Close()
	assert.Equal(t, "photo.png", object.Name)
}
