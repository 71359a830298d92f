package repository

import (
	"curalink-go/internal/model"

	"gorm.io/gorm"
)

// AutoMigrate 创建或更新本服务负责的表结构。
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.PatientProfile{},
		&model.ResearcherProfile{},
		&model.Publication{},
		&model.ClinicalTrial{},
	)
}
