package model

import "time"

// Publication 对应 'publications' 表，主键为 PubMed 的 PMID。
// 记录只会在检索时以 "不存在才插入" 的方式写入，不会被检索流程更新。
type Publication struct {
	ID             string    `gorm:"type:varchar(32);primaryKey" json:"id"`
	Title          string    `gorm:"type:text" json:"title"`
	Abstract       string    `gorm:"type:text" json:"abstract"`
	AISummary      string    `gorm:"type:text;column:ai_summary" json:"ai_summary"`
	PublicationURL string    `gorm:"type:varchar(255);column:publication_url" json:"publication_url"`
	PublishedAt    time.Time `gorm:"type:date;column:published_at" json:"published_at"`
}

func (Publication) TableName() string {
	return "publications"
}

// ClinicalTrial 对应 'clinical_trials' 表，主键为 NCT 编号。
// ResearcherID 仅在研究者手动登记试验时存在，检索写入的记录为 NULL。
type ClinicalTrial struct {
	ID           string `gorm:"type:varchar(32);primaryKey" json:"id"`
	Title        string `gorm:"type:text" json:"title"`
	Description  string `gorm:"type:text" json:"description"`
	AISummary    string `gorm:"type:text;column:ai_summary" json:"ai_summary"`
	Status       string `gorm:"type:varchar(64)" json:"status"`
	Location     string `gorm:"type:varchar(255)" json:"location"`
	ContactEmail string `gorm:"type:varchar(255);column:contact_email" json:"contact_email"`
	TrialURL     string `gorm:"type:varchar(255);column:trial_url" json:"trial_url"`
	ResearcherID *uint  `gorm:"index;column:researcher_id" json:"researcher_id"`
}

func (ClinicalTrial) TableName() string {
	return "clinical_trials"
}
