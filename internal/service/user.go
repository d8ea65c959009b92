package service

import (
	"errors"

	"gorm.io/gorm"

	"debate_hub/internal/models"
	"debate_hub/internal/repository"
)

// UserService 管理由 Clerk 同步過來的用戶資料
type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// SyncUser 依 Clerk ID 建立或更新用戶（前端登入後與 webhook 都會呼叫）
func (s *UserService) SyncUser(clerkID, name, email, avatar string) (*models.User, error) {
	user, err := s.userRepo.FindByClerkID(clerkID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = &models.User{
			ClerkID: clerkID,
			Name:    name,
			Email:   email,
			Avatar:  avatar,
		}
		if err := s.userRepo.Create(user); err != nil {
			return nil, err
		}
		return user, nil
	}
	if err != nil {
		return nil, err
	}

	user.Name = name
	user.Email = email
	if avatar != "" {
		user.Avatar = avatar
	}
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetByClerkID 供認證中間件查詢當前用戶
func (s *UserService) GetByClerkID(clerkID string) (*models.User, error) {
	user, err := s.userRepo.FindByClerkID(clerkID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetProfile 查詢用戶資料並帶出已加入的辯論（含題目）
func (s *UserService) GetProfile(userID string) (*models.User, error) {
	user, err := s.userRepo.FindByIDWithDebates(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ListUsers 供管理後台列出所有用戶與其加入的辯論
func (s *UserService) ListUsers() ([]models.User, error) {
	return s.userRepo.FindAllWithDebates()
}

// DeleteByClerkID 處理 Clerk 的 user.deleted webhook 事件
func (s *UserService) DeleteByClerkID(clerkID string) error {
	return s.userRepo.DeleteByClerkID(clerkID)
}
