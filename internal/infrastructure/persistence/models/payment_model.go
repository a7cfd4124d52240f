package models

import (
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/payments"

	"github.com/shopspring/decimal"
)

// PaymentModel is the GORM database model for payments
type PaymentModel struct {
	ID        string          `gorm:"primaryKey;type:uuid"`
	PayeeID   string          `gorm:"not null;index;type:uuid"`
	ShiftID   *string         `gorm:"index;type:uuid"`
	Type      string          `gorm:"not null;type:varchar(30)"`
	Amount    decimal.Decimal `gorm:"not null;type:numeric(12,2)"`
	Status    string          `gorm:"not null;index;type:varchar(20)"`
	PaidAt    *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts GORM model to domain entity
func (m *PaymentModel) ToDomain() *payments.Payment {
	return &payments.Payment{
		ID:        m.ID,
		PayeeID:   m.PayeeID,
		ShiftID:   m.ShiftID,
		Type:      payments.Type(m.Type),
		Amount:    m.Amount,
		Status:    payments.Status(m.Status),
		PaidAt:    m.PaidAt,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *PaymentModel) FromDomain(p *payments.Payment) {
	m.ID = p.ID
	m.PayeeID = p.PayeeID
	m.ShiftID = p.ShiftID
	m.Type = string(p.Type)
	m.Amount = p.Amount
	m.Status = string(p.Status)
	m.PaidAt = p.PaidAt
	m.CreatedAt = p.CreatedAt
	m.UpdatedAt = p.UpdatedAt
}
