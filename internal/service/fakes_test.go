package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"debate_hub/internal/models"
	"debate_hub/internal/repository"
)

// 記憶體版的 repository 實作，模擬條件更新的語義供服務層測試使用

type memTopicRepo struct {
	mu         sync.Mutex
	topics     map[string]*models.Topic
	order      []string
	referenced map[string]bool // 標記被辯論引用的題目
}

func newMemTopicRepo() *memTopicRepo {
	return &memTopicRepo{
		topics:     make(map[string]*models.Topic),
		referenced: make(map[string]bool),
	}
}

func (r *memTopicRepo) addTopic(title, description string) *models.Topic {
	topic := &models.Topic{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		CreatedAt:   time.Now(),
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.topics[topic.ID] = topic
	r.order = append(r.order, topic.ID)
	return topic
}

func (r *memTopicRepo) Create(topic *models.Topic) error {
	if topic.ID == "" {
		topic.ID = uuid.NewString()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.topics[topic.ID] = topic
	r.order = append(r.order, topic.ID)
	return nil
}

func (r *memTopicRepo) FindByID(id string) (*models.Topic, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	topic, ok := r.topics[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *topic
	return &copied, nil
}

func (r *memTopicRepo) FindAll() ([]models.Topic, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Topic
	for _, id := range r.order {
		if topic, ok := r.topics[id]; ok {
			out = append(out, *topic)
		}
	}
	return out, nil
}

func (r *memTopicRepo) FindUnused() ([]models.Topic, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Topic
	for _, id := range r.order {
		if topic, ok := r.topics[id]; ok && !topic.IsUsed {
			out = append(out, *topic)
		}
	}
	return out, nil
}

// Claim 模擬資料庫的條件更新：is_used 仍為 false 才會成功
func (r *memTopicRepo) Claim(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	topic, ok := r.topics[id]
	if !ok || topic.IsUsed {
		return repository.ErrTopicTaken
	}
	topic.IsUsed = true
	return nil
}

func (r *memTopicRepo) release(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if topic, ok := r.topics[id]; ok {
		topic.IsUsed = false
	}
}

func (r *memTopicRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.topics, id)
	return nil
}

func (r *memTopicRepo) ReferencedByDebate(id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.referenced[id], nil
}

type memUserRepo struct {
	mu      sync.Mutex
	users   map[string]*models.User
	debates *memDebateRepo // 刪除用戶時連帶清成員關聯
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*models.User)}
}

func (r *memUserRepo) addUser(name, email string) *models.User {
	user := &models.User{
		ID:      uuid.NewString(),
		ClerkID: "clerk_" + uuid.NewString(),
		Name:    name,
		Email:   email,
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	return user
}

func (r *memUserRepo) Create(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	return nil
}

func (r *memUserRepo) Update(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	return nil
}

func (r *memUserRepo) FindByID(id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *memUserRepo) FindByClerkID(clerkID string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.ClerkID == clerkID {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memUserRepo) FindByIDWithDebates(id string) (*models.User, error) {
	return r.FindByID(id)
}

func (r *memUserRepo) FindAllWithDebates() ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.User
	for _, user := range r.users {
		out = append(out, *user)
	}
	return out, nil
}

func (r *memUserRepo) DeleteByClerkID(clerkID string) error {
	r.mu.Lock()
	var removed []string
	for id, user := range r.users {
		if user.ClerkID == clerkID {
			removed = append(removed, id)
			delete(r.users, id)
		}
	}
	r.mu.Unlock()

	// 模擬單一交易內連帶清掉 debate_participants 的關聯列
	if r.debates != nil {
		for _, id := range removed {
			r.debates.removeUserMemberships(id)
		}
	}
	return nil
}

func (r *memUserRepo) Count() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

func (r *memUserRepo) CountWithJoinedDebates() (int64, error) {
	return 0, nil
}

type memDebateRepo struct {
	mu      sync.Mutex
	debates map[string]*models.Debate
	members map[string]map[string]bool // debateID -> userID 集合
	topics  *memTopicRepo
	users   *memUserRepo

	completeErr map[string]error // 模擬單筆存儲失敗
}

func newMemDebateRepo(topics *memTopicRepo, users *memUserRepo) *memDebateRepo {
	return &memDebateRepo{
		debates:     make(map[string]*models.Debate),
		members:     make(map[string]map[string]bool),
		topics:      topics,
		users:       users,
		completeErr: make(map[string]error),
	}
}

func (r *memDebateRepo) addDebate(date time.Time, clock string, status models.DebateStatus) *models.Debate {
	debate := &models.Debate{
		ID:       uuid.NewString(),
		Date:     date,
		Time:     clock,
		Location: "Auditorium A",
		Status:   status,
	}
	if status == models.DebateStatusActive {
		debate.RevealStatus = true
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.debates[debate.ID] = debate
	r.members[debate.ID] = make(map[string]bool)
	return debate
}

// withParticipants 把用戶掛進辯論，回傳同一個辯論方便鏈式設置
func (r *memDebateRepo) withParticipants(debate *models.Debate, users ...*models.User) *models.Debate {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range users {
		r.members[debate.ID][user.ID] = true
	}
	return debate
}

func (r *memDebateRepo) participantsLocked(debateID string) []models.User {
	var out []models.User
	for userID := range r.members[debateID] {
		if user, ok := r.users.users[userID]; ok {
			out = append(out, *user)
		}
	}
	return out
}

func (r *memDebateRepo) Create(debate *models.Debate) error {
	if debate.ID == "" {
		debate.ID = uuid.NewString()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.debates[debate.ID] = debate
	r.members[debate.ID] = make(map[string]bool)
	return nil
}

func (r *memDebateRepo) FindByID(id string) (*models.Debate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	debate, ok := r.debates[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *debate
	copied.Participants = r.participantsLocked(id)
	return &copied, nil
}

func (r *memDebateRepo) FindAll() ([]models.Debate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Debate
	for id, debate := range r.debates {
		copied := *debate
		copied.Participants = r.participantsLocked(id)
		out = append(out, copied)
	}
	return out, nil
}

func (r *memDebateRepo) FindPendingReveal() ([]models.Debate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Debate
	for id, debate := range r.debates {
		if debate.Status == models.DebateStatusUpcoming && !debate.RevealStatus {
			copied := *debate
			copied.Participants = r.participantsLocked(id)
			out = append(out, copied)
		}
	}
	return out, nil
}

func (r *memDebateRepo) FindByStatus(status models.DebateStatus) ([]models.Debate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Debate
	for _, debate := range r.debates {
		if debate.Status == status {
			out = append(out, *debate)
		}
	}
	return out, nil
}

// UpdateFields 模擬條件式的欄位更新：狀態與讀取時不符就落空，
// 只改動指定的欄位，揭示相關欄位永遠不會被覆寫
func (r *memDebateRepo) UpdateFields(id string, prior models.DebateStatus, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	debate, ok := r.debates[id]
	if !ok || debate.Status != prior {
		return repository.ErrConflict
	}
	for column, value := range fields {
		switch column {
		case "date":
			debate.Date = value.(time.Time)
		case "time":
			debate.Time = value.(string)
		case "location":
			debate.Location = value.(string)
		case "status":
			debate.Status = value.(models.DebateStatus)
		}
	}
	return nil
}

func (r *memDebateRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.debates, id)
	delete(r.members, id)
	return nil
}

// Reveal 模擬單一交易：題目認領失敗直接回報，
// 辯論端條件沒命中時回滾題目認領
func (r *memDebateRepo) Reveal(debateID, topicID string) error {
	if err := r.topics.Claim(topicID); err != nil {
		return err
	}

	r.mu.Lock()
	debate, ok := r.debates[debateID]
	if !ok || debate.Status != models.DebateStatusUpcoming || debate.RevealStatus {
		r.mu.Unlock()
		r.topics.release(topicID)
		return repository.ErrConflict
	}

	debate.TopicID = &topicID
	debate.RevealStatus = true
	debate.Status = models.DebateStatusActive
	r.mu.Unlock()
	return nil
}

func (r *memDebateRepo) Complete(debateID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err, ok := r.completeErr[debateID]; ok {
		return err
	}
	debate, ok := r.debates[debateID]
	if !ok || debate.Status != models.DebateStatusActive {
		return repository.ErrConflict
	}
	debate.Status = models.DebateStatusCompleted
	return nil
}

func (r *memDebateRepo) HasParticipant(debateID, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.members[debateID][userID], nil
}

func (r *memDebateRepo) AddParticipant(debateID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.members[debateID] == nil {
		r.members[debateID] = make(map[string]bool)
	}
	r.members[debateID][userID] = true
	return nil
}

func (r *memDebateRepo) RemoveParticipant(debateID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.members[debateID], userID)
	return nil
}

func (r *memDebateRepo) removeUserMemberships(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, members := range r.members {
		delete(members, userID)
	}
}

func (r *memDebateRepo) Count() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.debates)), nil
}

func (r *memDebateRepo) CountByStatus(status models.DebateStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, debate := range r.debates {
		if debate.Status == status {
			count++
		}
	}
	return count, nil
}

// recordingNotifier 記錄送出的郵件，可配置成一律失敗
type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentMail
	fail error
}

type sentMail struct {
	To      string
	Subject string
}

func (n *recordingNotifier) Send(to, subject, html string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail != nil {
		return n.fail
	}
	n.sent = append(n.sent, sentMail{To: to, Subject: subject})
	return nil
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}

// testEnv 把常用的測試替身組裝起來
type testEnv struct {
	topics   *memTopicRepo
	users    *memUserRepo
	debates  *memDebateRepo
	notifier *recordingNotifier

	topicService  *TopicService
	debateService *DebateService
	userService   *UserService
	automation    *AutomationService
}

func newTestEnv() *testEnv {
	topics := newMemTopicRepo()
	users := newMemUserRepo()
	debates := newMemDebateRepo(topics, users)
	users.debates = debates
	notifier := &recordingNotifier{}
	feed := NewEventFeed()

	topicService := NewTopicService(topics)
	debateService := NewDebateService(debates, topics, users, notifier, feed)
	userService := NewUserService(users)
	automation := NewAutomationService(debates, debateService, feed)

	return &testEnv{
		topics:        topics,
		users:         users,
		debates:       debates,
		notifier:      notifier,
		topicService:  topicService,
		debateService: debateService,
		userService:   userService,
		automation:    automation,
	}
}
