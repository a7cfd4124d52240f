//go:build integration
// +build integration

package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/documents"
	"github.com/profyt7/carelinkai-sub005/internal/domain/families"
	"github.com/profyt7/carelinkai-sub005/internal/domain/users"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/apperr"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFamilySqliteRepository_Membership(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)
	owner := CreateTestUser(t, ctx, users.RoleFamily)
	sibling := CreateTestUser(t, ctx, users.RoleFamily)

	family := CreateTestFamily(t, ctx, owner.ID)

	member, err := ctx.FamilyRepo.GetMember(context.Background(), family.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, families.MemberOwner, member.Role)

	_, err = ctx.FamilyRepo.GetMember(context.Background(), family.ID, sibling.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	addition := &families.Member{
		ID:       uuid.NewString(),
		FamilyID: family.ID,
		UserID:   sibling.ID,
		Role:     families.MemberViewer,
		JoinedAt: time.Now().UTC(),
	}
	require.NoError(t, ctx.FamilyRepo.AddMember(context.Background(), addition))

	addition.ID = uuid.NewString()
	err = ctx.FamilyRepo.AddMember(context.Background(), addition)
	assert.ErrorIs(t, err, apperr.ErrConflict)

	members, err := ctx.FamilyRepo.ListMembers(context.Background(), family.ID)
	require.NoError(t, err)
	assert.Len(t, members, 2)

	mine, err := ctx.FamilyRepo.ListByUser(context.Background(), sibling.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, family.ID, mine[0].ID)
}

func TestFamilySqliteRepository_Activity(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)
	owner := CreateTestUser(t, ctx, users.RoleFamily)
	family := CreateTestFamily(t, ctx, owner.ID)

	base := time.Now().UTC()
	for i := 0; i < 3; i++ {
		require.NoError(t, ctx.FamilyRepo.CreateActivity(context.Background(), &families.Activity{
			ID:          uuid.NewString(),
			FamilyID:    family.ID,
			ActorID:     owner.ID,
			Type:        families.ActivityCommentAdded,
			Description: "Commented",
			CreatedAt:   base.Add(time.Duration(i) * time.Second),
		}))
	}

	activity, err := ctx.FamilyRepo.ListActivity(context.Background(), family.ID, 2)
	require.NoError(t, err)
	require.Len(t, activity, 2)
	assert.True(t, activity[0].CreatedAt.After(activity[1].CreatedAt))
}

func newTestDocument(familyID, uploaderID, title string, tags ...string) *documents.FamilyDocument {
	now := time.Now().UTC()
	name := documents.SecureFileName(title+".pdf", now)
	return &documents.FamilyDocument{
		ID:          uuid.NewString(),
		FamilyID:    familyID,
		UploaderID:  uploaderID,
		Title:       title,
		Type:        documents.TypeCarePlan,
		FileName:    name,
		StorageKey:  documents.StorageKey(familyID, name),
		ContentType: "application/pdf",
		FileSize:    2048,
		Tags:        tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestDocumentSqliteRepository_ListFilters(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)
	owner := CreateTestUser(t, ctx, users.RoleFamily)
	family := CreateTestFamily(t, ctx, owner.ID)

	require.NoError(t, ctx.DocumentRepo.Create(context.Background(), newTestDocument(family.ID, owner.ID, "Care plan 2026", "care", "plan")))
	require.NoError(t, ctx.DocumentRepo.Create(context.Background(), newTestDocument(family.ID, owner.ID, "Insurance card", "insurance")))
	require.NoError(t, ctx.DocumentRepo.Create(context.Background(), newTestDocument(family.ID, owner.ID, "Medication list")))

	query := documents.NewQuery(family.ID)
	query.Search = "CARE"
	list, total, err := ctx.DocumentRepo.List(context.Background(), query)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Care plan 2026", list[0].Title)

	query = documents.NewQuery(family.ID)
	query.Tags = []string{"insurance", "plan"}
	_, total, err = ctx.DocumentRepo.List(context.Background(), query)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	query = documents.NewQuery(family.ID)
	query.SortBy = "title"
	query.SortOrder = "asc"
	list, _, err = ctx.DocumentRepo.List(context.Background(), query)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Care plan 2026", list[0].Title)
	assert.Equal(t, "Medication list", list[2].Title)
}

func TestDocumentSqliteRepository_DeleteRemovesComments(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)
	owner := CreateTestUser(t, ctx, users.RoleFamily)
	family := CreateTestFamily(t, ctx, owner.ID)

	document := newTestDocument(family.ID, owner.ID, "Care plan")
	require.NoError(t, ctx.DocumentRepo.Create(context.Background(), document))
	require.NoError(t, ctx.DocumentRepo.CreateComment(context.Background(), &documents.Comment{
		ID:         uuid.NewString(),
		DocumentID: document.ID,
		AuthorID:   owner.ID,
		Content:    "Reviewed with the nurse",
		CreatedAt:  time.Now().UTC(),
	}))

	comments, err := ctx.DocumentRepo.ListComments(context.Background(), document.ID)
	require.NoError(t, err)
	assert.Len(t, comments, 1)

	require.NoError(t, ctx.DocumentRepo.Delete(context.Background(), document.ID))

	comments, err = ctx.DocumentRepo.ListComments(context.Background(), document.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)

	err = ctx.DocumentRepo.Delete(context.Background(), document.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
