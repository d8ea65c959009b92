package repository

import (
	"errors"

	"debate_hub/internal/storage"
)

// 條件更新沒有命中任何資料列時回傳的哨兵錯誤。
// 這類衝突代表另一個流程已經先完成了同樣的轉換，呼叫端應視為良性跳過。
var (
	ErrConflict   = errors.New("更新衝突：記錄已被其他操作修改")
	ErrTopicTaken = errors.New("題目已被其他辯論取用")
)

type Repositories struct {
	User   UserRepository
	Admin  AdminRepository
	Topic  TopicRepository
	Debate DebateRepository
}

func NewRepositories(db *storage.PostgresDB) *Repositories {
	return &Repositories{
		User:   NewUserRepository(db),
		Admin:  NewAdminRepository(db),
		Topic:  NewTopicRepository(db),
		Debate: NewDebateRepository(db),
	}
}
