package service

import (
	"errors"
	"log"
	"math/rand"
	"time"

	"gorm.io/gorm"

	"debate_hub/internal/mailer"
	"debate_hub/internal/models"
	"debate_hub/internal/repository"
	"debate_hub/internal/utils"
)

// DebateService 管理辯論的建立、更新、成員進出與題目揭示
type DebateService struct {
	debateRepo repository.DebateRepository
	topicRepo  repository.TopicRepository
	userRepo   repository.UserRepository
	notifier   mailer.Notifier
	feed       *EventFeed
}

func NewDebateService(debateRepo repository.DebateRepository, topicRepo repository.TopicRepository,
	userRepo repository.UserRepository, notifier mailer.Notifier, feed *EventFeed) *DebateService {
	return &DebateService{
		debateRepo: debateRepo,
		topicRepo:  topicRepo,
		userRepo:   userRepo,
		notifier:   notifier,
		feed:       feed,
	}
}

func (s *DebateService) CreateDebate(date time.Time, clock, location string) (*models.Debate, error) {
	if _, _, err := utils.ParseClock(clock); err != nil {
		return nil, err
	}

	debate := &models.Debate{
		Date:     date,
		Time:     clock,
		Location: location,
		Status:   models.DebateStatusUpcoming,
	}
	if err := s.debateRepo.Create(debate); err != nil {
		return nil, err
	}
	return debate, nil
}

func (s *DebateService) GetDebate(id string) (*models.Debate, error) {
	debate, err := s.debateRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDebateNotFound
	}
	if err != nil {
		return nil, err
	}
	return debate, nil
}

func (s *DebateService) ListDebates() ([]models.Debate, error) {
	return s.debateRepo.FindAll()
}

// UpdateDebateInput 是管理員更新辯論時可修改的欄位，nil 表示不變
type UpdateDebateInput struct {
	Date     *time.Time
	Time     *string
	Location *string
	Status   *models.DebateStatus
}

// UpdateDebate 由管理員修改辯論欄位。狀態只允許往前走：
// upcoming → active/cancelled、active → completed/cancelled，
// completed 與 cancelled 是終點。
// 只寫入有變動的欄位，並以讀到的狀態作為條件，
// 讀取與寫入之間被並發揭示改掉狀態時回傳 ErrDebateModified，
// 而不是用過期的整筆資料覆寫回捲揭示結果。
func (s *DebateService) UpdateDebate(id string, input UpdateDebateInput) (*models.Debate, error) {
	debate, err := s.GetDebate(id)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if input.Time != nil {
		if _, _, err := utils.ParseClock(*input.Time); err != nil {
			return nil, err
		}
		fields["time"] = *input.Time
	}
	if input.Date != nil {
		fields["date"] = *input.Date
	}
	if input.Location != nil {
		fields["location"] = *input.Location
	}
	if input.Status != nil && *input.Status != debate.Status {
		if !statusTransitionAllowed(debate.Status, *input.Status) {
			return nil, ErrInvalidStatus
		}
		fields["status"] = *input.Status
	}
	if len(fields) == 0 {
		return debate, nil
	}

	err = s.debateRepo.UpdateFields(id, debate.Status, fields)
	if errors.Is(err, repository.ErrConflict) {
		return nil, ErrDebateModified
	}
	if err != nil {
		return nil, err
	}
	return s.GetDebate(id)
}

func statusTransitionAllowed(from, to models.DebateStatus) bool {
	switch from {
	case models.DebateStatusUpcoming:
		return to == models.DebateStatusActive || to == models.DebateStatusCancelled
	case models.DebateStatusActive:
		return to == models.DebateStatusCompleted || to == models.DebateStatusCancelled
	default:
		return false // completed 與 cancelled 是終態
	}
}

func (s *DebateService) DeleteDebate(id string) error {
	if _, err := s.GetDebate(id); err != nil {
		return err
	}
	return s.debateRepo.Delete(id)
}

// Join 讓用戶加入辯論。成員關聯在單一交易內寫入，
// 通知郵件是盡力而為，失敗不影響加入結果
func (s *DebateService) Join(debateID, userID string) error {
	debate, err := s.GetDebate(debateID)
	if err != nil {
		return err
	}

	user, err := s.userRepo.FindByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return err
	}

	if debate.Status == models.DebateStatusCancelled {
		return ErrDebateCancelled
	}

	joined, err := s.debateRepo.HasParticipant(debateID, userID)
	if err != nil {
		return err
	}
	if joined {
		return ErrAlreadyJoined
	}

	if err := s.debateRepo.AddParticipant(debateID, userID); err != nil {
		return err
	}

	body, err := mailer.DebateJoined(mailer.DebateJoinedData{
		UserName: user.Name,
		Date:     debate.Date,
		Time:     debate.Time,
		Location: debate.Location,
	})
	if err != nil {
		log.Printf("render joined email failed: %v", err)
	} else if err := s.notifier.Send(user.Email, "Debate Joined Successfully", body); err != nil {
		log.Printf("send joined email to %s failed: %v", user.Email, err)
	}

	s.feed.Broadcast(models.NewEvent("user_joined", debateID, user.Name+" 加入了辯論"))
	return nil
}

// Leave 讓用戶退出辯論。進行中或已結束的辯論不可退出
func (s *DebateService) Leave(debateID, userID string) error {
	debate, err := s.GetDebate(debateID)
	if err != nil {
		return err
	}

	joined, err := s.debateRepo.HasParticipant(debateID, userID)
	if err != nil {
		return err
	}
	if !joined {
		return ErrNotJoined
	}

	if debate.Status == models.DebateStatusActive || debate.Status == models.DebateStatusCompleted {
		return ErrDebateLocked
	}

	if err := s.debateRepo.RemoveParticipant(debateID, userID); err != nil {
		return err
	}

	s.feed.Broadcast(models.NewEvent("user_left", debateID, "一位成員退出了辯論"))
	return nil
}

// RevealNow 是管理員手動揭示：略過排程時間檢查，
// 直接執行與自動排程相同的認領加指派流程
func (s *DebateService) RevealNow(debateID string) (*models.Topic, error) {
	debate, err := s.GetDebate(debateID)
	if err != nil {
		return nil, err
	}

	if debate.RevealStatus {
		return nil, ErrAlreadyRevealed
	}
	if debate.Status == models.DebateStatusCancelled {
		return nil, ErrDebateCancelled
	}

	topic, err := s.claimAndReveal(debate)
	if errors.Is(err, repository.ErrConflict) {
		// 條件更新沒命中：另一個流程剛剛完成了揭示
		return nil, ErrAlreadyRevealed
	}
	if err != nil {
		return nil, err
	}

	s.notifyReveal(debate, topic)
	return topic, nil
}

// claimAndReveal 隨機抽一個未使用的題目並在單一交易內指派給辯論。
// 不走 TopicService.ClaimRandom：先在池層認領再轉換辯論，
// 會在辯論端條件更新落空時留下一個被消耗卻沒指派出去的題目，
// 所以認領與轉換必須綁在 debateRepo.Reveal 的同一筆交易裡。
// 題目被搶走時重抽；題目池空了回傳 ErrNoTopicsAvailable；
// 辯論端的條件更新沒命中時把 repository.ErrConflict 原樣傳回。
func (s *DebateService) claimAndReveal(debate *models.Debate) (*models.Topic, error) {
	for {
		unused, err := s.topicRepo.FindUnused()
		if err != nil {
			return nil, err
		}
		if len(unused) == 0 {
			return nil, ErrNoTopicsAvailable
		}

		pick := unused[rand.Intn(len(unused))]
		err = s.debateRepo.Reveal(debate.ID, pick.ID)
		if errors.Is(err, repository.ErrTopicTaken) {
			continue
		}
		if err != nil {
			return nil, err
		}

		pick.IsUsed = true
		debate.TopicID = &pick.ID
		debate.RevealStatus = true
		debate.Status = models.DebateStatusActive
		return &pick, nil
	}
}

// notifyReveal 向每位成員發送題目揭示通知並廣播事件。
// 郵件失敗只記錄，不回滾已完成的狀態轉換
func (s *DebateService) notifyReveal(debate *models.Debate, topic *models.Topic) {
	for _, participant := range debate.Participants {
		body, err := mailer.TopicRevealed(mailer.TopicRevealedData{
			UserName:         participant.Name,
			TopicTitle:       topic.Title,
			TopicDescription: topic.Description,
			Date:             debate.Date,
			Time:             debate.Time,
			Location:         debate.Location,
		})
		if err != nil {
			log.Printf("render reveal email failed: %v", err)
			continue
		}
		if err := s.notifier.Send(participant.Email, "Debate Topic Revealed", body); err != nil {
			log.Printf("send reveal email to %s failed: %v", participant.Email, err)
		}
	}

	s.feed.Broadcast(models.NewEvent("topic_revealed", debate.ID, "題目已揭示："+topic.Title))
}
