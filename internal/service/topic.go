package service

import (
	"errors"
	"math/rand"

	"gorm.io/gorm"

	"debate_hub/internal/models"
	"debate_hub/internal/repository"
)

// TopicService 管理題目池：題目的增刪查詢，以及隨機認領
type TopicService struct {
	topicRepo repository.TopicRepository
}

func NewTopicService(topicRepo repository.TopicRepository) *TopicService {
	return &TopicService{topicRepo: topicRepo}
}

func (s *TopicService) CreateTopic(title, description, adminID string) (*models.Topic, error) {
	topic := &models.Topic{
		Title:       title,
		Description: description,
		CreatedBy:   adminID,
	}
	if err := s.topicRepo.Create(topic); err != nil {
		return nil, err
	}
	return topic, nil
}

func (s *TopicService) GetTopic(id string) (*models.Topic, error) {
	topic, err := s.topicRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTopicNotFound
	}
	if err != nil {
		return nil, err
	}
	return topic, nil
}

func (s *TopicService) ListTopics() ([]models.Topic, error) {
	return s.topicRepo.FindAll()
}

// ListUnused 查詢所有尚未被任何辯論使用的題目
func (s *TopicService) ListUnused() ([]models.Topic, error) {
	return s.topicRepo.FindUnused()
}

// DeleteTopic 刪除題目。被辯論引用的題目不可刪除
func (s *TopicService) DeleteTopic(id string) error {
	if _, err := s.GetTopic(id); err != nil {
		return err
	}

	referenced, err := s.topicRepo.ReferencedByDebate(id)
	if err != nil {
		return err
	}
	if referenced {
		return ErrTopicInUse
	}

	return s.topicRepo.Delete(id)
}

// ClaimRandom 在未使用的題目中均勻隨機抽一個並標記為已使用。
// 認領透過條件更新完成，輸掉競賽時改抽下一個；
// 題目池空了回傳 ErrNoTopicsAvailable。
// 這是題目池的獨立認領入口，適用於認領本身就是整筆交易的場景；
// 辯論揭示需要把認領和辯論的狀態轉換綁進同一筆交易，
// 走的是 DebateService.claimAndReveal，不經過這裡。
func (s *TopicService) ClaimRandom() (*models.Topic, error) {
	for {
		unused, err := s.topicRepo.FindUnused()
		if err != nil {
			return nil, err
		}
		if len(unused) == 0 {
			return nil, ErrNoTopicsAvailable
		}

		pick := unused[rand.Intn(len(unused))]
		err = s.topicRepo.Claim(pick.ID)
		if errors.Is(err, repository.ErrTopicTaken) {
			continue // 被其他認領搶走，重抽
		}
		if err != nil {
			return nil, err
		}

		pick.IsUsed = true
		return &pick, nil
	}
}
