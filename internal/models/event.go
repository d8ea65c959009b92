package models

import "time"

// Event 代表透過 WebSocket 推送給訂閱者的辯論狀態事件，不會寫入資料庫
type Event struct {
	Type      string    `json:"type"` // user_joined / user_left / topic_revealed / debate_completed
	DebateID  string    `json:"debate_id"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// NewEvent 建立一個帶有當前時間戳的事件
func NewEvent(eventType, debateID, content string) *Event {
	return &Event{
		Type:      eventType,
		DebateID:  debateID,
		Content:   content,
		Timestamp: time.Now(),
	}
}
