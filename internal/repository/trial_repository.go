package repository

import (
	"context"

	"curalink-go/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TrialRepository 定义了临床试验记录的持久化操作。
type TrialRepository interface {
	// InsertIfAbsent 仅当主键不存在时插入，返回是否真正写入了新行。
	InsertIfAbsent(ctx context.Context, trial *model.ClinicalTrial) (bool, error)
	FindByID(ctx context.Context, id string) (*model.ClinicalTrial, error)
	Count(ctx context.Context) (int64, error)
}

type trialRepository struct {
	db *gorm.DB
}

// NewTrialRepository 创建一个新的 TrialRepository 实例。
func NewTrialRepository(db *gorm.DB) TrialRepository {
	return &trialRepository{db: db}
}

func (r *trialRepository) InsertIfAbsent(ctx context.Context, trial *model.ClinicalTrial) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(trial)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *trialRepository) FindByID(ctx context.Context, id string) (*model.ClinicalTrial, error) {
	var trial model.ClinicalTrial
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&trial).Error; err != nil {
		return nil, err
	}
	return &trial, nil
}

func (r *trialRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.ClinicalTrial{}).Count(&n).Error
	return n, err
}
