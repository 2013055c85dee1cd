package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PendingApproval is a user waiting for operator approval. Only counted by the dashboard.
type PendingApproval struct {
	ID        uuid.UUID `gorm:"type:uuid;primarykey" json:"id"`
	Reference string    `                            json:"reference"`
	CreatedAt time.Time `                            json:"createdAt"`
}

func (p *PendingApproval) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// PendingOrderApproval is an order waiting for operator approval.
type PendingOrderApproval struct {
	ID        uuid.UUID `gorm:"type:uuid;primarykey" json:"id"`
	Reference string    `                            json:"reference"`
	CreatedAt time.Time `                            json:"createdAt"`
}

func (p *PendingOrderApproval) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
