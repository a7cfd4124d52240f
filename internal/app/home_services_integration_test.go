//go:build integration
// +build integration

package app

import (
	"context"
	"testing"
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/assessments"
	"github.com/profyt7/carelinkai-sub005/internal/domain/audit"
	"github.com/profyt7/carelinkai-sub005/internal/domain/families"
	"github.com/profyt7/carelinkai-sub005/internal/domain/homes"
	"github.com/profyt7/carelinkai-sub005/internal/domain/users"
	"github.com/profyt7/carelinkai-sub005/internal/infrastructure/persistence"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/apperr"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type residentFixture struct {
	services *TestServices
	operator users.Principal
	relative users.Principal
	home     *homes.Home
	resident *homes.Resident
}

func newResidentFixture(t *testing.T) *residentFixture {
	t.Helper()
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()
	db := services.DBContext

	operator := Principal(persistence.CreateTestUser(t, db, users.RoleOperator))
	relative := Principal(persistence.CreateTestUser(t, db, users.RoleFamily))
	family := persistence.CreateTestFamily(t, db, relative.ID)

	home, err := services.Homes.CreateHome(ctx, operator, &homes.Home{Name: "Maple <i>Grove</i>", Address: "12 Maple Street", Capacity: 20})
	require.NoError(t, err)

	resident, err := services.Homes.CreateResident(ctx, operator, &homes.Resident{
		HomeID:      home.ID,
		FamilyID:    &family.ID,
		FirstName:   "Edith",
		LastName:    "Clarke",
		DateOfBirth: time.Date(1938, time.March, 10, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return &residentFixture{services: services, operator: operator, relative: relative, home: home, resident: resident}
}

func TestHomeService_Ownership(t *testing.T) {
	f := newResidentFixture(t)
	ctx := context.Background()
	assert.Equal(t, f.operator.ID, f.home.OperatorID)
	assert.Equal(t, "Maple Grove", f.home.Name)
	assert.Equal(t, homes.HomeActive, f.home.Status)
	assert.Equal(t, homes.ResidentActive, f.resident.Status)

	other := Principal(persistence.CreateTestUser(t, f.services.DBContext, users.RoleOperator))
	_, err := f.services.Homes.AuthorizeHome(ctx, other, f.home.ID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = f.services.Homes.ListResidents(ctx, other, f.home.ID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	roster, err := f.services.Homes.ListResidents(ctx, f.operator, f.home.ID)
	require.NoError(t, err)
	assert.Len(t, roster, 1)

	caregiver := Principal(persistence.CreateTestUser(t, f.services.DBContext, users.RoleCaregiver))
	_, err = f.services.Homes.CreateHome(ctx, caregiver, &homes.Home{Name: "Nope", Address: "Nowhere", Capacity: 1})
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	admin := Principal(persistence.CreateTestUser(t, f.services.DBContext, users.RoleAdmin))
	_, err = f.services.Homes.CreateHome(ctx, admin, &homes.Home{Name: "Orphan", Address: "Somewhere", Capacity: 1})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestHomeService_ResidentAccess_FamilyReadsOnly(t *testing.T) {
	f := newResidentFixture(t)
	ctx := context.Background()

	got, err := f.services.Homes.GetResident(ctx, f.relative, f.resident.ID)
	require.NoError(t, err)
	assert.Equal(t, "Edith", got.FirstName)

	_, err = f.services.Homes.AuthorizeResident(ctx, f.relative, f.resident.ID, true)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	caregiver := Principal(persistence.CreateTestUser(t, f.services.DBContext, users.RoleCaregiver))
	_, err = f.services.Homes.GetResident(ctx, caregiver, f.resident.ID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	trail, err := f.services.Audit.UserTrail(ctx, caregiver.ID, 10)
	require.NoError(t, err)
	require.Len(t, trail, 1)
	assert.Equal(t, audit.ActionAccessDenied, trail[0].Action)
}

func TestAssessmentService_Create_And_PHIAccess(t *testing.T) {
	f := newResidentFixture(t)
	ctx := context.Background()

	_, err := f.services.Assessments.Create(ctx, f.relative, &assessments.CreateInput{ResidentID: f.resident.ID, Type: assessments.TypeADL})
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	future := time.Now().Add(48 * time.Hour)
	_, err = f.services.Assessments.Create(ctx, f.operator, &assessments.CreateInput{
		ResidentID: f.resident.ID, Type: assessments.TypeADL, AssessedAt: &future,
	})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = f.services.Assessments.Create(ctx, f.operator, &assessments.CreateInput{ResidentID: f.resident.ID, Type: assessments.TypeADL, Score: 140})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	created, err := f.services.Assessments.Create(ctx, f.operator, &assessments.CreateInput{
		ResidentID: f.resident.ID,
		Type:       assessments.TypeFallRisk,
		Score:      35,
		Findings:   "Unsteady <u>gait</u> in the evening",
	})
	require.NoError(t, err)
	assert.Equal(t, f.operator.ID, created.AssessedBy)
	assert.Equal(t, "Unsteady gait in the evening", created.Findings)

	list, err := f.services.Assessments.ListByResident(ctx, f.relative, f.resident.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	accessed, err := f.services.Audit.HasAccessedBefore(ctx, f.relative.ID, audit.ResourceResident, f.resident.ID)
	require.NoError(t, err)
	assert.True(t, accessed)

	outsider := Principal(persistence.CreateTestUser(t, f.services.DBContext, users.RoleFamily))
	_, err = f.services.Assessments.Get(ctx, outsider, created.ID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	denied, err := f.services.Audit.UserTrail(ctx, outsider.ID, 10)
	require.NoError(t, err)
	require.Len(t, denied, 1)
	assert.Equal(t, audit.ActionAccessDenied, denied[0].Action)
	assert.Equal(t, created.ID, denied[0].ResourceID)
}

func TestFamilyService_Membership(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()
	db := services.DBContext
	owner := Principal(persistence.CreateTestUser(t, db, users.RoleFamily))
	cousin := Principal(persistence.CreateTestUser(t, db, users.RoleFamily))

	family, err := services.Families.Create(ctx, owner, "The Clarkes")
	require.NoError(t, err)

	_, err = services.Families.RequireMember(ctx, cousin, family.ID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	member, err := services.Families.AddMember(ctx, owner, family.ID, cousin.ID, families.MemberViewer)
	require.NoError(t, err)
	assert.Equal(t, families.MemberViewer, member.Role)

	_, err = services.Families.AddMember(ctx, cousin, family.ID, owner.ID, families.MemberMember)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	members, err := services.Families.ListMembers(ctx, cousin, family.ID)
	require.NoError(t, err)
	assert.Len(t, members, 2)

	mine, err := services.Families.ListMine(ctx, cousin)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, family.ID, mine[0].ID)
}
