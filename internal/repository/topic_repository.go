package repository

import (
	"debate_hub/internal/models"
	"debate_hub/internal/storage"
)

type TopicRepository interface {
	Create(topic *models.Topic) error
	FindByID(id string) (*models.Topic, error)
	FindAll() ([]models.Topic, error)
	FindUnused() ([]models.Topic, error)
	Claim(id string) error
	Delete(id string) error
	ReferencedByDebate(id string) (bool, error)
}

type topicRepository struct {
	db *storage.PostgresDB
}

func NewTopicRepository(db *storage.PostgresDB) TopicRepository {
	return &topicRepository{db: db}
}

func (r *topicRepository) Create(topic *models.Topic) error {
	return r.db.Create(topic).Error
}

func (r *topicRepository) FindByID(id string) (*models.Topic, error) {
	var topic models.Topic
	err := r.db.First(&topic, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &topic, nil
}

// FindAll 查詢所有題目，新建立的排前面
func (r *topicRepository) FindAll() ([]models.Topic, error) {
	var topics []models.Topic
	err := r.db.Order("created_at DESC").Find(&topics).Error
	return topics, err
}

func (r *topicRepository) FindUnused() ([]models.Topic, error) {
	var topics []models.Topic
	err := r.db.Where("is_used = ?", false).Find(&topics).Error
	return topics, err
}

// Claim 以條件更新認領題目：只有 is_used 仍為 false 時才會成功，
// 因此兩個並發的認領永遠不會拿到同一個題目。
// 輸掉競賽時回傳 ErrTopicTaken，呼叫端可改抽其他題目。
func (r *topicRepository) Claim(id string) error {
	res := r.db.Model(&models.Topic{}).
		Where("id = ? AND is_used = ?", id, false).
		Update("is_used", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrTopicTaken
	}
	return nil
}

func (r *topicRepository) Delete(id string) error {
	return r.db.Delete(&models.Topic{}, "id = ?", id).Error
}

// ReferencedByDebate 回報是否有辯論引用了該題目（被引用的題目不可刪除）
func (r *topicRepository) ReferencedByDebate(id string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Debate{}).Where("topic_id = ?", id).Count(&count).Error
	return count > 0, err
}
