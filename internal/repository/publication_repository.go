package repository

import (
	"context"

	"curalink-go/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PublicationRepository 定义了文献记录的持久化操作。
type PublicationRepository interface {
	// InsertIfAbsent 仅当主键不存在时插入，返回是否真正写入了新行。
	InsertIfAbsent(ctx context.Context, pub *model.Publication) (bool, error)
	FindByID(ctx context.Context, id string) (*model.Publication, error)
	Count(ctx context.Context) (int64, error)
}

type publicationRepository struct {
	db *gorm.DB
}

// NewPublicationRepository 创建一个新的 PublicationRepository 实例。
func NewPublicationRepository(db *gorm.DB) PublicationRepository {
	return &publicationRepository{db: db}
}

// InsertIfAbsent 使用 ON CONFLICT DO NOTHING，已有记录不会被更新。
func (r *publicationRepository) InsertIfAbsent(ctx context.Context, pub *model.Publication) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(pub)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *publicationRepository) FindByID(ctx context.Context, id string) (*model.Publication, error) {
	var pub model.Publication
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&pub).Error; err != nil {
		return nil, err
	}
	return &pub, nil
}

func (r *publicationRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Publication{}).Count(&n).Error
	return n, err
}
