package models

import (
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/homes"
)

// HomeModel is the GORM database model for assisted-living homes
type HomeModel struct {
	ID         string `gorm:"primaryKey;type:uuid"`
	OperatorID string `gorm:"not null;index;type:uuid"`
	Name       string `gorm:"not null;type:varchar(200)"`
	Address    string `gorm:"not null;type:varchar(500)"`
	Capacity   int    `gorm:"not null"`
	Status     string `gorm:"not null;type:varchar(20)"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName specifies the table name for GORM
func (HomeModel) TableName() string {
	return "homes"
}

// ToDomain converts GORM model to domain entity
func (m *HomeModel) ToDomain() *homes.Home {
	return &homes.Home{
		ID:         m.ID,
		OperatorID: m.OperatorID,
		Name:       m.Name,
		Address:    m.Address,
		Capacity:   m.Capacity,
		Status:     homes.HomeStatus(m.Status),
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *HomeModel) FromDomain(h *homes.Home) {
	m.ID = h.ID
	m.OperatorID = h.OperatorID
	m.Name = h.Name
	m.Address = h.Address
	m.Capacity = h.Capacity
	m.Status = string(h.Status)
	m.CreatedAt = h.CreatedAt
	m.UpdatedAt = h.UpdatedAt
}

// ResidentModel is the GORM database model for residents
type ResidentModel struct {
	ID          string    `gorm:"primaryKey;type:uuid"`
	HomeID      string    `gorm:"not null;index;type:uuid"`
	FamilyID    *string   `gorm:"index;type:uuid"`
	FirstName   string    `gorm:"not null;type:varchar(100)"`
	LastName    string    `gorm:"not null;type:varchar(100)"`
	DateOfBirth time.Time `gorm:"not null"`
	CareLevel   string    `gorm:"type:varchar(50)"`
	Status      string    `gorm:"not null;type:varchar(20)"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the table name for GORM
func (ResidentModel) TableName() string {
	return "residents"
}

// ToDomain converts GORM model to domain entity
func (m *ResidentModel) ToDomain() *homes.Resident {
	return &homes.Resident{
		ID:          m.ID,
		HomeID:      m.HomeID,
		FamilyID:    m.FamilyID,
		FirstName:   m.FirstName,
		LastName:    m.LastName,
		DateOfBirth: m.DateOfBirth,
		CareLevel:   m.CareLevel,
		Status:      homes.ResidentStatus(m.Status),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *ResidentModel) FromDomain(r *homes.Resident) {
	m.ID = r.ID
	m.HomeID = r.HomeID
	m.FamilyID = r.FamilyID
	m.FirstName = r.FirstName
	m.LastName = r.LastName
	m.DateOfBirth = r.DateOfBirth
	m.CareLevel = r.CareLevel
	m.Status = string(r.Status)
	m.CreatedAt = r.CreatedAt
	m.UpdatedAt = r.UpdatedAt
}
