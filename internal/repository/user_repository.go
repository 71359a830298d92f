// Package repository 定义了与数据库进行数据交换的接口和实现。
package repository

import (
	"context"

	"curalink-go/internal/model"

	"gorm.io/gorm"
)

// UserRepository 接口定义了用户数据的持久化操作。
type UserRepository interface {
	// CreateWithProfile 在同一事务中创建用户及其角色对应的 profile
	CreateWithProfile(ctx context.Context, user *model.User, fullName string) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, userID uint) (*model.User, error)
}

// userRepository 是 UserRepository 接口的 GORM 实现。
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建一个新的 UserRepository 实例。
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// CreateWithProfile 创建用户，PATIENT 同时写入 patient_profiles，RESEARCHER 写入 researcher_profiles。
// 任一步失败整体回滚。
func (r *userRepository) CreateWithProfile(ctx context.Context, user *model.User, fullName string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		switch user.Role {
		case model.RolePatient:
			return tx.Create(&model.PatientProfile{UserID: user.ID, FullName: fullName}).Error
		case model.RoleResearcher:
			return tx.Create(&model.ResearcherProfile{UserID: user.ID, FullName: fullName}).Error
		}
		return nil
	})
}

// FindByEmail 根据邮箱从数据库中查找一个用户。
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID 根据用户 ID 从数据库中查找一个用户。
func (r *userRepository) FindByID(ctx context.Context, userID uint) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).First(&user, userID).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}
