//go:build integration
// +build integration

package app

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/profyt7/carelinkai-sub005/internal/domain/audit"
	"github.com/profyt7/carelinkai-sub005/internal/domain/documents"
	"github.com/profyt7/carelinkai-sub005/internal/domain/families"
	"github.com/profyt7/carelinkai-sub005/internal/domain/users"
	"github.com/profyt7/carelinkai-sub005/internal/infrastructure/persistence"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/apperr"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type documentFixture struct {
	services *TestServices
	owner    users.Principal
	member   users.Principal
	viewer   users.Principal
	family   *families.Family
}

func setupDocumentFixture(t *testing.T) *documentFixture {
	t.Helper()

	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()
	db := services.DBContext
	owner := Principal(persistence.CreateTestUser(t, db, users.RoleFamily))
	member := Principal(persistence.CreateTestUser(t, db, users.RoleFamily))
	viewer := Principal(persistence.CreateTestUser(t, db, users.RoleFamily))

	family, err := services.Families.Create(ctx, owner, "Clarke family")
	require.NoError(t, err)
	_, err = services.Families.AddMember(ctx, owner, family.ID, member.ID, families.MemberMember)
	require.NoError(t, err)
	_, err = services.Families.AddMember(ctx, owner, family.ID, viewer.ID, families.MemberViewer)
	require.NoError(t, err)

	return &documentFixture{services: services, owner: owner, member: member, viewer: viewer, family: family}
}

func (f *documentFixture) upload(t *testing.T, caller users.Principal, docType documents.Type, content string) *documents.FamilyDocument {
	t.Helper()

	document, err := f.services.Documents.Upload(context.Background(), caller, &documents.UploadInput{
		FamilyID: f.family.ID,
		Title:    "Care plan 2025",
		Type:     docType,
		Tags:     []string{"Plan", "plan", " nursing "},
	}, &documents.Upload{
		FileName:    "../care plan (v2).pdf",
		ContentType: "application/pdf",
		Size:        int64(len(content)),
		Content:     strings.NewReader(content),
	})
	require.NoError(t, err)
	return document
}

func TestDocumentService_Upload_Medical_Record_Is_Encrypted_At_Rest(t *testing.T) {
	f := setupDocumentFixture(t)
	ctx := context.Background()

	document := f.upload(t, f.member, documents.TypeMedicalRecord, "blood pressure 120/80")
	assert.True(t, document.Encrypted)
	assert.True(t, strings.HasPrefix(document.StorageKey, "family/"+f.family.ID+"/documents/care_plan__v2__"))
	assert.True(t, strings.HasSuffix(document.StorageKey, ".pdf"))
	assert.Equal(t, []string{"Plan", "nursing"}, document.Tags)
	assert.Equal(t, "care plan (v2).pdf", document.FileName)

	stored, err := f.services.Storage.Get(ctx, document.StorageKey)
	require.NoError(t, err)
	assert.False(t, bytes.Contains(stored, []byte("blood pressure")))

	download, err := f.services.Documents.Download(ctx, f.viewer, document.ID)
	require.NoError(t, err)
	assert.Equal(t, "blood pressure 120/80", string(download.Content))

	trail, err := f.services.Audit.ResourceTrail(ctx, audit.ResourceDocument, document.ID, 10)
	require.NoError(t, err)
	actions := map[audit.Action]bool{}
	for _, log := range trail {
		actions[log.Action] = true
	}
	assert.True(t, actions[audit.ActionDocumentUploaded])
	assert.True(t, actions[audit.ActionRead])

	activity, err := f.services.Families.ListActivity(ctx, f.owner, f.family.ID, 0)
	require.NoError(t, err)
	types := make([]families.ActivityType, 0, len(activity))
	for _, entry := range activity {
		types = append(types, entry.Type)
	}
	assert.Contains(t, types, families.ActivityDocumentUploaded)
}

func TestDocumentService_Upload_Stores_Read_Size(t *testing.T) {
	f := setupDocumentFixture(t)
	ctx := context.Background()
	content := "visiting hours changed to 2pm"

	document, err := f.services.Documents.Upload(ctx, f.owner, &documents.UploadInput{
		FamilyID: f.family.ID,
		Title:    "Visiting hours",
		Type:     documents.TypeOther,
		Encrypt:  true,
	}, &documents.Upload{
		FileName:    "hours.txt",
		ContentType: "text/plain",
		Size:        3,
		Content:     strings.NewReader(content),
	})
	require.NoError(t, err)

	// Size is what was read, before the cipher adds its nonce and tag
	assert.Equal(t, int64(len(content)), document.FileSize)
	assert.True(t, document.Encrypted)

	stored, err := f.services.Storage.Get(ctx, document.StorageKey)
	require.NoError(t, err)
	assert.Greater(t, len(stored), len(content))
}

func TestDocumentService_Upload_Rejects_Viewer_And_Bad_Files(t *testing.T) {
	f := setupDocumentFixture(t)
	ctx := context.Background()
	input := &documents.UploadInput{FamilyID: f.family.ID, Title: "Photo", Type: documents.TypePhoto}

	_, err := f.services.Documents.Upload(ctx, f.viewer, input, &documents.Upload{
		FileName: "a.png", ContentType: "image/png", Size: 3, Content: strings.NewReader("png"),
	})
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = f.services.Documents.Upload(ctx, f.owner, input, &documents.Upload{
		FileName: "run.exe", ContentType: "application/x-msdownload", Size: 3, Content: strings.NewReader("MZ!"),
	})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = f.services.Documents.Upload(ctx, f.owner, input, &documents.Upload{
		FileName: "huge.png", ContentType: "image/png", Size: config.DefaultMaxUploadBytes + 1, Content: strings.NewReader("x"),
	})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestDocumentService_Outsider_Cannot_Read(t *testing.T) {
	f := setupDocumentFixture(t)
	ctx := context.Background()
	document := f.upload(t, f.owner, documents.TypeCarePlan, "plan")
	outsider := Principal(persistence.CreateTestUser(t, f.services.DBContext, users.RoleFamily))

	_, err := f.services.Documents.Get(ctx, outsider, document.ID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = f.services.Documents.Download(ctx, outsider, document.ID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	trail, err := f.services.Audit.UserTrail(ctx, outsider.ID, 10)
	require.NoError(t, err)
	require.NotEmpty(t, trail)
	assert.Equal(t, audit.ActionAccessDenied, trail[0].Action)
}

func TestDocumentService_Delete_Only_Uploader_Or_Owner(t *testing.T) {
	f := setupDocumentFixture(t)
	ctx := context.Background()
	byOwner := f.upload(t, f.owner, documents.TypeCarePlan, "plan")
	byMember := f.upload(t, f.member, documents.TypeCarePlan, "plan")

	assert.ErrorIs(t, f.services.Documents.Delete(ctx, f.member, byOwner.ID), apperr.ErrForbidden)
	require.NoError(t, f.services.Documents.Delete(ctx, f.owner, byMember.ID))

	_, err := f.services.Documents.Get(ctx, f.owner, byMember.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	_, err = f.services.Storage.Get(ctx, byMember.StorageKey)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestDocumentService_Metadata_And_Comments(t *testing.T) {
	f := setupDocumentFixture(t)
	ctx := context.Background()
	document := f.upload(t, f.member, documents.TypeCarePlan, "plan")

	title := "Updated <b>plan</b>"
	updated, err := f.services.Documents.UpdateMetadata(ctx, f.member, document.ID, &documents.MetadataUpdate{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Updated plan", updated.Title)

	_, err = f.services.Documents.AddComment(ctx, f.viewer, document.ID, "looks good")
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	comment, err := f.services.Documents.AddComment(ctx, f.owner, document.ID, "Looks good")
	require.NoError(t, err)

	comments, err := f.services.Documents.ListComments(ctx, f.viewer, document.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, comment.ID, comments[0].ID)

	page, err := f.services.Documents.List(ctx, f.viewer, documents.NewQuery(f.family.ID))
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, 1, page.TotalPages)
}
