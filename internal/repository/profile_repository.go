package repository

import (
	"context"
	"strings"

	"curalink-go/internal/model"

	"gorm.io/gorm"
)

// ProfileRepository 定义了研究者资料的查询操作。
type ProfileRepository interface {
	// SearchResearchers 在姓名、专长、研究兴趣中做大小写不敏感的包含匹配
	SearchResearchers(ctx context.Context, term string) ([]model.ResearcherProfile, error)
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository 创建一个新的 ProfileRepository 实例。
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// likePattern 转义 LIKE 通配符后包成 %term%
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(term)) + "%"
}

// researcherMatchSQL 按方言生成匹配条件，JSON 列先转成文本再比较。
func researcherMatchSQL(dialect string) string {
	switch dialect {
	case "postgres":
		return `full_name ILIKE @q OR specialties::text ILIKE @q OR research_interests::text ILIKE @q`
	case "mysql":
		return `LOWER(full_name) LIKE @q OR LOWER(CAST(specialties AS CHAR)) LIKE @q OR LOWER(CAST(research_interests AS CHAR)) LIKE @q`
	default:
		return `LOWER(full_name) LIKE @q ESCAPE '\' OR LOWER(specialties) LIKE @q ESCAPE '\' OR LOWER(research_interests) LIKE @q ESCAPE '\'`
	}
}

func (r *profileRepository) SearchResearchers(ctx context.Context, term string) ([]model.ResearcherProfile, error) {
	var profiles []model.ResearcherProfile
	db := r.db.WithContext(ctx)
	err := db.
		Select("user_id", "full_name", "specialties", "research_interests").
		Where(researcherMatchSQL(db.Dialector.Name()), map[string]interface{}{"q": likePattern(term)}).
		Order("user_id").
		Find(&profiles).Error
	return profiles, err
}
