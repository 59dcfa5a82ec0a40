package models

import (
	"time"

	"gorm.io/gorm"
)

// Pairing is one candidate startup↔investor association produced by the
// external matching engine. This service never creates or rescores pairings;
// it only stores the engine's output and projects it per tier.
type Pairing struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	StartupID    string         `gorm:"type:varchar(64);index;not null" json:"startup_id"`
	StartupName  string         `gorm:"type:varchar(255);not null" json:"startup_name"`
	InvestorID   string         `gorm:"type:varchar(64);index;not null" json:"investor_id"`
	InvestorName string         `gorm:"type:varchar(255);not null" json:"investor_name"`
	Reason       string         `gorm:"type:text" json:"reason"`
	Confidence   *float64       `gorm:"type:decimal(4,3)" json:"confidence"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// ConfidenceValue returns the confidence score, treating a missing value as 0.
func (p *Pairing) ConfidenceValue() float64 {
	if p.Confidence == nil {
		return 0
	}
	return *p.Confidence
}
