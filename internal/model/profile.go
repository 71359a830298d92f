package model

import "gorm.io/datatypes"

// PatientProfile 对应 'patient_profiles' 表，注册 PATIENT 时同事务创建。
type PatientProfile struct {
	UserID     uint           `gorm:"primaryKey;autoIncrement:false;column:user_id" json:"user_id"`
	FullName   string         `gorm:"type:varchar(255);not null;column:full_name" json:"full_name"`
	Location   string         `gorm:"type:varchar(255)" json:"location"`
	Conditions datatypes.JSON `json:"conditions"`
}

func (PatientProfile) TableName() string {
	return "patient_profiles"
}

// ResearcherProfile 对应 'researcher_profiles' 表。
// Specialties 与 ResearchInterests 以 JSON 数组存储，专家检索会在其文本形式上做包含匹配。
type ResearcherProfile struct {
	UserID                 uint           `gorm:"primaryKey;autoIncrement:false;column:user_id" json:"user_id"`
	FullName               string         `gorm:"type:varchar(255);not null;column:full_name" json:"full_name"`
	Specialties            datatypes.JSON `json:"specialties"`
	ResearchInterests      datatypes.JSON `gorm:"column:research_interests" json:"research_interests"`
	OrcidLink              string         `gorm:"type:varchar(255);column:orcid_link" json:"orcid_link"`
	ResearchgateLink       string         `gorm:"type:varchar(255);column:researchgate_link" json:"researchgate_link"`
	IsAvailableForMeetings bool           `gorm:"not null;default:false;column:is_available_for_meetings" json:"is_available_for_meetings"`
}

func (ResearcherProfile) TableName() string {
	return "researcher_profiles"
}
