package repository

import (
	"gorm.io/gorm"

	"debate_hub/internal/models"
	"debate_hub/internal/storage"
)

type DebateRepository interface {
	Create(debate *models.Debate) error
	FindByID(id string) (*models.Debate, error)
	FindAll() ([]models.Debate, error)
	FindPendingReveal() ([]models.Debate, error)
	FindByStatus(status models.DebateStatus) ([]models.Debate, error)
	UpdateFields(id string, prior models.DebateStatus, fields map[string]interface{}) error
	Delete(id string) error
	Reveal(debateID, topicID string) error
	Complete(debateID string) error
	HasParticipant(debateID, userID string) (bool, error)
	AddParticipant(debateID, userID string) error
	RemoveParticipant(debateID, userID string) error
	Count() (int64, error)
	CountByStatus(status models.DebateStatus) (int64, error)
}

type debateRepository struct {
	db *storage.PostgresDB
}

func NewDebateRepository(db *storage.PostgresDB) DebateRepository {
	return &debateRepository{db: db}
}

func (r *debateRepository) Create(debate *models.Debate) error {
	return r.db.Create(debate).Error
}

func (r *debateRepository) FindByID(id string) (*models.Debate, error) {
	var debate models.Debate
	err := r.db.Preload("Topic").Preload("Participants").First(&debate, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &debate, nil
}

// FindAll 查詢所有辯論，依日期排序
func (r *debateRepository) FindAll() ([]models.Debate, error) {
	var debates []models.Debate
	err := r.db.Preload("Topic").Preload("Participants").Order("date ASC").Find(&debates).Error
	return debates, err
}

// FindPendingReveal 查詢所有等待揭示的辯論（upcoming 且尚未揭示），
// 自動排程的規則 A 以此為候選集合
func (r *debateRepository) FindPendingReveal() ([]models.Debate, error) {
	var debates []models.Debate
	err := r.db.Preload("Participants").
		Where("status = ? AND reveal_status = ?", models.DebateStatusUpcoming, false).
		Find(&debates).Error
	return debates, err
}

func (r *debateRepository) FindByStatus(status models.DebateStatus) ([]models.Debate, error) {
	var debates []models.Debate
	err := r.db.Where("status = ?", status).Find(&debates).Error
	return debates, err
}

// UpdateFields 只寫入指定的欄位，並以讀取時的狀態作為條件。
// 整筆覆寫會把讀取後才發生的揭示寫入（reveal_status、topic_id）回捲掉，
// 所以這裡永遠不碰揭示相關欄位；狀態與預期不符時回傳 ErrConflict。
func (r *debateRepository) UpdateFields(id string, prior models.DebateStatus, fields map[string]interface{}) error {
	res := r.db.Model(&models.Debate{}).
		Where("id = ? AND status = ?", id, prior).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConflict
	}
	return nil
}

// Delete 刪除辯論並清掉 debate_participants 中的成員關聯
func (r *debateRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		debate := models.Debate{ID: id}
		if err := tx.Model(&debate).Association("Participants").Clear(); err != nil {
			return err
		}
		return tx.Delete(&models.Debate{}, "id = ?", id).Error
	})
}

// Reveal 在單一交易內完成「認領題目 + 揭示辯論」：
//  1. 題目 is_used false→true 的條件更新，輸掉競賽回傳 ErrTopicTaken
//  2. 辯論 upcoming 且未揭示 → 設定 topic_id、reveal_status、active 的條件更新，
//     沒命中代表另一次執行已處理，回傳 ErrConflict
//
// 任一步失敗整筆回滾，因此不會出現被消耗卻沒指派出去的題目。
func (r *debateRepository) Reveal(debateID, topicID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Topic{}).
			Where("id = ? AND is_used = ?", topicID, false).
			Update("is_used", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrTopicTaken
		}

		res = tx.Model(&models.Debate{}).
			Where("id = ? AND status = ? AND reveal_status = ?",
				debateID, models.DebateStatusUpcoming, false).
			Updates(map[string]interface{}{
				"topic_id":      topicID,
				"reveal_status": true,
				"status":        models.DebateStatusActive,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrConflict
		}
		return nil
	})
}

// Complete 以條件更新將 active 的辯論標記為 completed，
// 沒命中代表另一次執行已處理，回傳 ErrConflict
func (r *debateRepository) Complete(debateID string) error {
	res := r.db.Model(&models.Debate{}).
		Where("id = ? AND status = ?", debateID, models.DebateStatusActive).
		Update("status", models.DebateStatusCompleted)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConflict
	}
	return nil
}

func (r *debateRepository) HasParticipant(debateID, userID string) (bool, error) {
	var count int64
	err := r.db.Table("debate_participants").
		Where("debate_id = ? AND user_id = ?", debateID, userID).
		Count(&count).Error
	return count > 0, err
}

// AddParticipant 在交易內寫入成員關聯。
// Debate.Participants 與 User.JoinedDebates 共用同一張關聯表，
// 所以這一筆寫入同時維持了雙向關係。
func (r *debateRepository) AddParticipant(debateID, userID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		debate := models.Debate{ID: debateID}
		user := models.User{ID: userID}
		return tx.Model(&debate).Association("Participants").Append(&user)
	})
}

func (r *debateRepository) RemoveParticipant(debateID, userID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		debate := models.Debate{ID: debateID}
		user := models.User{ID: userID}
		return tx.Model(&debate).Association("Participants").Delete(&user)
	})
}

func (r *debateRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Debate{}).Count(&count).Error
	return count, err
}

func (r *debateRepository) CountByStatus(status models.DebateStatus) (int64, error) {
	var count int64
	err := r.db.Model(&models.Debate{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
