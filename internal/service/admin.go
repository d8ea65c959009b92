package service

import (
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"debate_hub/internal/models"
	"debate_hub/internal/repository"
	"debate_hub/internal/utils"
)

// AdminService 處理管理員登入與後台統計
type AdminService struct {
	adminRepo  repository.AdminRepository
	userRepo   repository.UserRepository
	debateRepo repository.DebateRepository
}

func NewAdminService(adminRepo repository.AdminRepository, userRepo repository.UserRepository, debateRepo repository.DebateRepository) *AdminService {
	return &AdminService{
		adminRepo:  adminRepo,
		userRepo:   userRepo,
		debateRepo: debateRepo,
	}
}

// Login 驗證管理員帳密並簽發 JWT token
func (s *AdminService) Login(email, password string) (string, *models.Admin, error) {
	admin, err := s.adminRepo.FindByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(admin.ID)
	if err != nil {
		return "", nil, err
	}
	return token, admin, nil
}

// EnsureDefaultAdmin 在啟動時補種預設管理員帳號（已存在則不動）
func (s *AdminService) EnsureDefaultAdmin(email, password, name string) error {
	if email == "" || password == "" {
		return nil
	}

	_, err := s.adminRepo.FindByEmail(email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &models.Admin{
		Email:    email,
		Password: string(hashed),
		Name:     name,
	}
	if err := s.adminRepo.Create(admin); err != nil {
		return err
	}

	log.Printf("default admin created: %s", email)
	return nil
}

// Stats 是管理後台儀表板的統計數字
type Stats struct {
	TotalUsers      int64 `json:"totalUsers"`
	TotalDebates    int64 `json:"totalDebates"`
	UpcomingDebates int64 `json:"upcomingDebates"`
	ActiveUsers     int64 `json:"activeUsers"` // 至少加入過一場辯論的用戶
}

func (s *AdminService) GetStats() (*Stats, error) {
	totalUsers, err := s.userRepo.Count()
	if err != nil {
		return nil, err
	}
	totalDebates, err := s.debateRepo.Count()
	if err != nil {
		return nil, err
	}
	upcoming, err := s.debateRepo.CountByStatus(models.DebateStatusUpcoming)
	if err != nil {
		return nil, err
	}
	activeUsers, err := s.userRepo.CountWithJoinedDebates()
	if err != nil {
		return nil, err
	}

	return &Stats{
		TotalUsers:      totalUsers,
		TotalDebates:    totalDebates,
		UpcomingDebates: upcoming,
		ActiveUsers:     activeUsers,
	}, nil
}
