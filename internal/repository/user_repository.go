package repository

import (
	"errors"

	"gorm.io/gorm"

	"debate_hub/internal/models"
	"debate_hub/internal/storage"
)

type UserRepository interface {
	Create(user *models.User) error
	Update(user *models.User) error
	FindByID(id string) (*models.User, error)
	FindByClerkID(clerkID string) (*models.User, error)
	FindByIDWithDebates(id string) (*models.User, error)
	FindAllWithDebates() ([]models.User, error)
	DeleteByClerkID(clerkID string) error
	Count() (int64, error)
	CountWithJoinedDebates() (int64, error)
}

type userRepository struct {
	db *storage.PostgresDB
}

func NewUserRepository(db *storage.PostgresDB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *userRepository) FindByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByClerkID(clerkID string) (*models.User, error) {
	var user models.User
	err := r.db.Where("clerk_id = ?", clerkID).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByIDWithDebates 查詢用戶並帶出已加入的辯論（含題目）
func (r *userRepository) FindByIDWithDebates(id string) (*models.User, error) {
	var user models.User
	err := r.db.Preload("JoinedDebates").Preload("JoinedDebates.Topic").
		First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindAllWithDebates() ([]models.User, error) {
	var users []models.User
	err := r.db.Preload("JoinedDebates").Order("created_at DESC").Find(&users).Error
	return users, err
}

// DeleteByClerkID 刪除用戶並在同一筆交易內清掉 debate_participants 的成員關聯，
// 避免留下懸空的關聯列灌水成員數統計
func (r *userRepository) DeleteByClerkID(clerkID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		err := tx.Where("clerk_id = ?", clerkID).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := tx.Model(&user).Association("JoinedDebates").Clear(); err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
}

func (r *userRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}

// CountWithJoinedDebates 統計至少加入過一場辯論的用戶數
func (r *userRepository) CountWithJoinedDebates() (int64, error) {
	var count int64
	err := r.db.Table("debate_participants").Distinct("user_id").Count(&count).Error
	return count, err
}
