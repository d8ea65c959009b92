package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Topic 表示一個辯論題目
// IsUsed 一旦變為 true 就不再回復（題目只會被一場辯論消耗一次）
type Topic struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	IsUsed      bool      `gorm:"not null;default:false" json:"is_used"`
	CreatedBy   string    `gorm:"type:uuid" json:"created_by"` // 建立題目的管理員 ID
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (t *Topic) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
