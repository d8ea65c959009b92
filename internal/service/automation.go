package service

import (
	"errors"
	"log"
	"time"

	"debate_hub/internal/models"
	"debate_hub/internal/repository"
	"debate_hub/internal/utils"
)

// completionDelay 是辯論從排程時間起算到自動結束的間隔
const completionDelay = time.Hour

// AutomationSummary 是一次自動排程執行的結果統計
type AutomationSummary struct {
	Revealed  int `json:"revealed"`
	Completed int `json:"completed"`
	Failed    int `json:"failed"`
}

// AutomationService 是排程核心：每次 Run 對全部辯論做一次掃描，
// 套用揭示與結束兩條規則。所有狀態轉換都走條件更新，
// 因此重複執行或並發執行不會產生重複效果。
type AutomationService struct {
	debateRepo repository.DebateRepository
	debates    *DebateService
	feed       *EventFeed
	now        func() time.Time // 可在測試中替換
}

func NewAutomationService(debateRepo repository.DebateRepository, debates *DebateService, feed *EventFeed) *AutomationService {
	return &AutomationService{
		debateRepo: debateRepo,
		debates:    debates,
		feed:       feed,
		now:        time.Now,
	}
}

// Run 執行一次完整掃描：
//
//	規則 A — 到時的 upcoming 辯論抽題揭示並通知成員
//	規則 B — 排程時間過後一小時的 active 辯論標記為 completed
//
// 規則 A 先對整個候選集合跑完，規則 B 再重新查詢 active 集合，
// 所以同一次執行中剛揭示、但時間已超過一小時的辯論會直接被結束。
// 單筆失敗不中斷掃描，只累計進 Failed。
func (s *AutomationService) Run() AutomationSummary {
	now := s.now()
	var summary AutomationSummary

	s.revealDue(now, &summary)
	s.completeElapsed(now, &summary)

	return summary
}

// revealDue 規則 A：自動揭示
func (s *AutomationService) revealDue(now time.Time, summary *AutomationSummary) {
	pending, err := s.debateRepo.FindPendingReveal()
	if err != nil {
		log.Printf("automation: list pending debates failed: %v", err)
		summary.Failed++
		return
	}

	for i := range pending {
		debate := &pending[i]

		instant, err := utils.DebateInstant(debate.Date, debate.Time)
		if err != nil {
			log.Printf("automation: debate %s has invalid time %q: %v", debate.ID, debate.Time, err)
			summary.Failed++
			continue
		}
		if now.Before(instant) {
			continue // 還沒到時間
		}

		topic, err := s.debates.claimAndReveal(debate)
		switch {
		case errors.Is(err, ErrNoTopicsAvailable):
			// 題目池空了：不動任何旗標，下次執行再試
			continue
		case errors.Is(err, repository.ErrConflict):
			// 另一次執行已經處理了這場辯論
			continue
		case err != nil:
			log.Printf("automation: reveal debate %s failed: %v", debate.ID, err)
			summary.Failed++
			continue
		}

		s.debates.notifyReveal(debate, topic)
		summary.Revealed++
	}
}

// completeElapsed 規則 B：自動結束
func (s *AutomationService) completeElapsed(now time.Time, summary *AutomationSummary) {
	active, err := s.debateRepo.FindByStatus(models.DebateStatusActive)
	if err != nil {
		log.Printf("automation: list active debates failed: %v", err)
		summary.Failed++
		return
	}

	for i := range active {
		debate := &active[i]

		instant, err := utils.DebateInstant(debate.Date, debate.Time)
		if err != nil {
			log.Printf("automation: debate %s has invalid time %q: %v", debate.ID, debate.Time, err)
			summary.Failed++
			continue
		}
		if now.Before(instant.Add(completionDelay)) {
			continue
		}

		err = s.debateRepo.Complete(debate.ID)
		if errors.Is(err, repository.ErrConflict) {
			continue // 另一次執行已經結束了這場辯論
		}
		if err != nil {
			log.Printf("automation: complete debate %s failed: %v", debate.ID, err)
			summary.Failed++
			continue
		}

		s.feed.Broadcast(models.NewEvent("debate_completed", debate.ID, "辯論已結束"))
		summary.Completed++
	}
}
