package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User 表示由外部身份供應商（Clerk）同步過來的用戶
// JoinedDebates 與 Debate.Participants 共用同一張 debate_participants 關聯表，
// 因此兩邊永遠一致
type User struct {
	ID            string    `gorm:"type:uuid;primaryKey" json:"id"`
	ClerkID       string    `gorm:"uniqueIndex;not null" json:"clerk_id"`
	Name          string    `gorm:"not null" json:"name"`
	Email         string    `gorm:"uniqueIndex;not null" json:"email"`
	Avatar        string    `json:"avatar"`
	JoinedDebates []Debate  `gorm:"many2many:debate_participants" json:"joined_debates,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
