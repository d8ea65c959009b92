package service

import (
	"errors"
	"testing"
	"time"

	"debate_hub/internal/models"
)

// 2025-03-15 09:00 IST = 2025-03-15 03:30 UTC
var (
	testDate    = time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	testInstant = time.Date(2025, 3, 15, 3, 30, 0, 0, time.UTC)
)

func fixNow(env *testEnv, now time.Time) {
	env.automation.now = func() time.Time { return now }
}

func TestRunRevealsDueDebate(t *testing.T) {
	env := newTestEnv()
	t1 := env.topics.addTopic("Topic One", "First description")
	t2 := env.topics.addTopic("Topic Two", "Second description")
	alice := env.users.addUser("Alice", "alice@example.com")
	bob := env.users.addUser("Bob", "bob@example.com")
	debate := env.debates.addDebate(testDate, "09:00", models.DebateStatusUpcoming)
	env.debates.withParticipants(debate, alice, bob)

	fixNow(env, testInstant) // 正好到時

	summary := env.automation.Run()
	if summary.Revealed != 1 || summary.Completed != 0 || summary.Failed != 0 {
		t.Fatalf("summary = %+v, want revealed=1", summary)
	}

	stored, _ := env.debates.FindByID(debate.ID)
	if stored.Status != models.DebateStatusActive || !stored.RevealStatus {
		t.Fatalf("debate not revealed: status=%s reveal=%v", stored.Status, stored.RevealStatus)
	}
	if stored.TopicID == nil || (*stored.TopicID != t1.ID && *stored.TopicID != t2.ID) {
		t.Fatalf("unexpected topic assignment: %v", stored.TopicID)
	}

	// 只消耗一個題目，另一個保持未使用
	claimed, _ := env.topics.FindByID(*stored.TopicID)
	if !claimed.IsUsed {
		t.Error("assigned topic not marked used")
	}
	unused, _ := env.topics.FindUnused()
	if len(unused) != 1 {
		t.Errorf("unused topics = %d, want 1", len(unused))
	}

	// 每位成員各收到一封揭示通知
	if env.notifier.count() != 2 {
		t.Errorf("sent emails = %d, want 2", env.notifier.count())
	}
}

func TestRunSkipsDebateBeforeScheduledTime(t *testing.T) {
	env := newTestEnv()
	env.topics.addTopic("Topic", "Description")
	debate := env.debates.addDebate(testDate, "09:00", models.DebateStatusUpcoming)

	fixNow(env, testInstant.Add(-time.Minute))

	summary := env.automation.Run()
	if summary.Revealed != 0 || summary.Failed != 0 {
		t.Fatalf("summary = %+v, want all zero", summary)
	}

	stored, _ := env.debates.FindByID(debate.ID)
	if stored.Status != models.DebateStatusUpcoming || stored.RevealStatus {
		t.Fatalf("debate touched before scheduled time: %+v", stored)
	}
}

func TestRunWithEmptyPoolLeavesDebateEligible(t *testing.T) {
	env := newTestEnv()
	debate := env.debates.addDebate(testDate, "09:00", models.DebateStatusUpcoming)
	fixNow(env, testInstant)

	summary := env.automation.Run()
	if summary.Revealed != 0 || summary.Failed != 0 {
		t.Fatalf("empty pool must be a silent skip, got %+v", summary)
	}

	stored, _ := env.debates.FindByID(debate.ID)
	if stored.Status != models.DebateStatusUpcoming || stored.RevealStatus {
		t.Fatalf("debate flags flipped despite empty pool: %+v", stored)
	}

	// 補上題目後下一次執行要能揭示
	env.topics.addTopic("Late topic", "Arrived late")
	summary = env.automation.Run()
	if summary.Revealed != 1 {
		t.Fatalf("debate not revealed on next run: %+v", summary)
	}
}

func TestRunTwiceIsIdempotent(t *testing.T) {
	env := newTestEnv()
	env.topics.addTopic("Topic", "Description")
	user := env.users.addUser("Alice", "alice@example.com")
	debate := env.debates.addDebate(testDate, "09:00", models.DebateStatusUpcoming)
	env.debates.withParticipants(debate, user)

	fixNow(env, testInstant)

	first := env.automation.Run()
	if first.Revealed != 1 {
		t.Fatalf("first run: %+v", first)
	}
	emails := env.notifier.count()

	second := env.automation.Run()
	if second.Revealed != 0 || second.Completed != 0 || second.Failed != 0 {
		t.Fatalf("second run must be a no-op, got %+v", second)
	}
	if env.notifier.count() != emails {
		t.Errorf("duplicate notifications sent on second run")
	}
}

func TestRunCompletesActiveAfterOneHour(t *testing.T) {
	env := newTestEnv()
	debate := env.debates.addDebate(testDate, "09:00", models.DebateStatusActive)

	fixNow(env, testInstant.Add(61*time.Minute))

	summary := env.automation.Run()
	if summary.Completed != 1 || summary.Failed != 0 {
		t.Fatalf("summary = %+v, want completed=1", summary)
	}

	stored, _ := env.debates.FindByID(debate.ID)
	if stored.Status != models.DebateStatusCompleted {
		t.Fatalf("status = %s, want completed", stored.Status)
	}
}

func TestRunLeavesActiveUnderOneHour(t *testing.T) {
	env := newTestEnv()
	debate := env.debates.addDebate(testDate, "09:00", models.DebateStatusActive)

	fixNow(env, testInstant.Add(30*time.Minute))

	summary := env.automation.Run()
	if summary.Completed != 0 {
		t.Fatalf("summary = %+v, want completed=0", summary)
	}

	stored, _ := env.debates.FindByID(debate.ID)
	if stored.Status != models.DebateStatusActive {
		t.Fatalf("status = %s, want active", stored.Status)
	}
}

// 規則 A 揭示後，規則 B 重新查詢 active 集合，
// 所以時間早已超過一小時的辯論會在同一次執行中被結束
func TestRunRevealsAndCompletesInSamePass(t *testing.T) {
	env := newTestEnv()
	env.topics.addTopic("Topic", "Description")
	debate := env.debates.addDebate(testDate, "09:00", models.DebateStatusUpcoming)

	fixNow(env, testInstant.Add(61*time.Minute))

	summary := env.automation.Run()
	if summary.Revealed != 1 || summary.Completed != 1 {
		t.Fatalf("summary = %+v, want revealed=1 completed=1", summary)
	}

	stored, _ := env.debates.FindByID(debate.ID)
	if stored.Status != models.DebateStatusCompleted || !stored.RevealStatus {
		t.Fatalf("debate = %+v, want completed and revealed", stored)
	}
}

func TestRunContinuesPastPerItemFailures(t *testing.T) {
	env := newTestEnv()
	broken := env.debates.addDebate(testDate, "09:00", models.DebateStatusActive)
	healthy := env.debates.addDebate(testDate, "09:00", models.DebateStatusActive)
	env.debates.completeErr[broken.ID] = errors.New("connection reset")

	fixNow(env, testInstant.Add(2*time.Hour))

	summary := env.automation.Run()
	if summary.Completed != 1 || summary.Failed != 1 {
		t.Fatalf("summary = %+v, want completed=1 failed=1", summary)
	}

	stored, _ := env.debates.FindByID(healthy.ID)
	if stored.Status != models.DebateStatusCompleted {
		t.Errorf("healthy debate not completed: %s", stored.Status)
	}
}

func TestRunNotificationFailureIsNonFatal(t *testing.T) {
	env := newTestEnv()
	env.topics.addTopic("Topic", "Description")
	user := env.users.addUser("Alice", "alice@example.com")
	debate := env.debates.addDebate(testDate, "09:00", models.DebateStatusUpcoming)
	env.debates.withParticipants(debate, user)
	env.notifier.fail = errors.New("smtp unavailable")

	fixNow(env, testInstant)

	summary := env.automation.Run()
	if summary.Revealed != 1 || summary.Failed != 0 {
		t.Fatalf("summary = %+v, notification failure must not fail the run", summary)
	}

	stored, _ := env.debates.FindByID(debate.ID)
	if stored.Status != models.DebateStatusActive {
		t.Fatalf("state change rolled back on email failure: %s", stored.Status)
	}
}

func TestRunInvalidTimeCountsAsFailed(t *testing.T) {
	env := newTestEnv()
	env.topics.addTopic("Topic", "Description")
	env.debates.addDebate(testDate, "25:99", models.DebateStatusUpcoming)

	fixNow(env, testInstant)

	summary := env.automation.Run()
	if summary.Failed != 1 || summary.Revealed != 0 {
		t.Fatalf("summary = %+v, want failed=1", summary)
	}
}
