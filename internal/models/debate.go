package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Debate 表示一場排程的辯論活動
type Debate struct {
	ID           string       `gorm:"type:uuid;primaryKey" json:"id"`
	TopicID      *string      `gorm:"type:uuid" json:"topic_id"` // 揭示前為 null
	Topic        *Topic       `gorm:"foreignKey:TopicID" json:"topic,omitempty"`
	Date         time.Time    `gorm:"not null" json:"date"`     // 辯論日期（只取日曆日）
	Time         string       `gorm:"not null" json:"time"`     // "HH:MM"，24 小時制 IST 牆上時間
	Location     string       `gorm:"not null" json:"location"` // 地點
	RevealStatus bool         `gorm:"not null;default:false" json:"reveal_status"`
	Status       DebateStatus `gorm:"not null;default:upcoming" json:"status"`
	Participants []User       `gorm:"many2many:debate_participants" json:"participants,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// DebateStatus 定義辯論狀態的類型
type DebateStatus string

const (
	DebateStatusUpcoming  DebateStatus = "upcoming"  // 尚未開始
	DebateStatusActive    DebateStatus = "active"    // 題目已揭示，進行中
	DebateStatusCompleted DebateStatus = "completed" // 已結束
	DebateStatusCancelled DebateStatus = "cancelled" // 已被管理員取消
)

// BeforeCreate 在寫入前補上 UUID 主鍵
func (d *Debate) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}
