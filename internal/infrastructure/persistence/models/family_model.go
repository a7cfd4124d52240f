package models

import (
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/families"
)

// FamilyModel is the GORM database model for family workspaces
type FamilyModel struct {
	ID        string `gorm:"primaryKey;type:uuid"`
	Name      string `gorm:"not null;type:varchar(200)"`
	CreatedBy string `gorm:"not null;index;type:uuid"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for GORM
func (FamilyModel) TableName() string {
	return "families"
}

// ToDomain converts GORM model to domain entity
func (m *FamilyModel) ToDomain() *families.Family {
	return &families.Family{
		ID:        m.ID,
		Name:      m.Name,
		CreatedBy: m.CreatedBy,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *FamilyModel) FromDomain(f *families.Family) {
	m.ID = f.ID
	m.Name = f.Name
	m.CreatedBy = f.CreatedBy
	m.CreatedAt = f.CreatedAt
	m.UpdatedAt = f.UpdatedAt
}

// FamilyMemberModel is the GORM database model for family memberships
type FamilyMemberModel struct {
	ID       string    `gorm:"primaryKey;type:uuid"`
	FamilyID string    `gorm:"not null;uniqueIndex:idx_family_member;type:uuid"`
	UserID   string    `gorm:"not null;uniqueIndex:idx_family_member;index;type:uuid"`
	Role     string    `gorm:"not null;type:varchar(20)"`
	JoinedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (FamilyMemberModel) TableName() string {
	return "family_members"
}

// ToDomain converts GORM model to domain entity
func (m *FamilyMemberModel) ToDomain() *families.Member {
	return &families.Member{
		ID:       m.ID,
		FamilyID: m.FamilyID,
		UserID:   m.UserID,
		Role:     families.MemberRole(m.Role),
		JoinedAt: m.JoinedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *FamilyMemberModel) FromDomain(member *families.Member) {
	m.ID = member.ID
	m.FamilyID = member.FamilyID
	m.UserID = member.UserID
	m.Role = string(member.Role)
	m.JoinedAt = member.JoinedAt
}

// FamilyActivityModel is the GORM database model for the family feed
type FamilyActivityModel struct {
	ID           string    `gorm:"primaryKey;type:uuid"`
	FamilyID     string    `gorm:"not null;index;type:uuid"`
	ActorID      string    `gorm:"not null;type:uuid"`
	Type         string    `gorm:"not null;type:varchar(50)"`
	Description  string    `gorm:"not null;type:varchar(1000)"`
	ResourceType string    `gorm:"type:varchar(50)"`
	ResourceID   string    `gorm:"type:varchar(64)"`
	CreatedAt    time.Time `gorm:"not null;index"`
}

// TableName specifies the table name for GORM
func (FamilyActivityModel) TableName() string {
	return "family_activities"
}

// ToDomain converts GORM model to domain entity
func (m *FamilyActivityModel) ToDomain() *families.Activity {
	return &families.Activity{
		ID:           m.ID,
		FamilyID:     m.FamilyID,
		ActorID:      m.ActorID,
		Type:         families.ActivityType(m.Type),
		Description:  m.Description,
		ResourceType: m.ResourceType,
		ResourceID:   m.ResourceID,
		CreatedAt:    m.CreatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *FamilyActivityModel) FromDomain(a *families.Activity) {
	m.ID = a.ID
	m.FamilyID = a.FamilyID
	m.ActorID = a.ActorID
	m.Type = string(a.Type)
	m.Description = a.Description
	m.ResourceType = a.ResourceType
	m.ResourceID = a.ResourceID
	m.CreatedAt = a.CreatedAt
}
