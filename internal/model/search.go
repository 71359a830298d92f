package model

import "time"

// Source 标识检索记录的外部数据源。
type Source string

const (
	SourcePubMed         Source = "pubmed"
	SourceClinicalTrials Source = "clinicaltrials"
)

// SearchResult 是归一化后的检索记录，尚未摘要、尚未持久化。
type SearchResult struct {
	Source     Source
	ExternalID string
	Title      string
	// Text 为长文本：文献摘要或试验简述
	Text string

	// 文献专有
	PublishedAt time.Time

	// 试验专有
	Status       string
	Location     string
	ContactEmail string
}

// EnrichedRecord 是附带 AI 摘要与详情链接的检索记录。
type EnrichedRecord struct {
	SearchResult
	AISummary string
	DetailURL string
}

// PublicationDTO 定义了 /search/publications 返回给前端的结构。
type PublicationDTO struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Abstract       string `json:"abstract"`
	AISummary      string `json:"ai_summary"`
	PublicationURL string `json:"publication_url"`
	PublishedAt    Date   `json:"published_at"`
}

// TrialDTO 定义了 /search/trials 返回给前端的结构。
type TrialDTO struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	AISummary    string `json:"ai_summary"`
	Status       string `json:"status"`
	Location     string `json:"location"`
	ContactEmail string `json:"contact_email"`
	TrialURL     string `json:"trial_url"`
}

// ExpertDTO 定义了 /search/experts 返回给前端的结构。
type ExpertDTO struct {
	UserID            uint        `json:"user_id"`
	FullName          string      `json:"full_name"`
	Specialties       interface{} `json:"specialties"`
	ResearchInterests interface{} `json:"research_interests"`
}

// ToPublicationDTO 将富化记录转换为文献响应结构。
func (r EnrichedRecord) ToPublicationDTO() PublicationDTO {
	return PublicationDTO{
		ID:             r.ExternalID,
		Title:          r.Title,
		Abstract:       r.Text,
		AISummary:      r.AISummary,
		PublicationURL: r.DetailURL,
		PublishedAt:    Date(r.PublishedAt),
	}
}

// ToTrialDTO 将富化记录转换为试验响应结构。
func (r EnrichedRecord) ToTrialDTO() TrialDTO {
	return TrialDTO{
		ID:           r.ExternalID,
		Title:        r.Title,
		Description:  r.Text,
		AISummary:    r.AISummary,
		Status:       r.Status,
		Location:     r.Location,
		ContactEmail: r.ContactEmail,
		TrialURL:     r.DetailURL,
	}
}

// ToPublication 将富化记录转换为待持久化的 Publication。
func (r EnrichedRecord) ToPublication() *Publication {
	return &Publication{
		ID:             r.ExternalID,
		Title:          r.Title,
		Abstract:       r.Text,
		AISummary:      r.AISummary,
		PublicationURL: r.DetailURL,
		PublishedAt:    r.PublishedAt,
	}
}

// ToClinicalTrial 将富化记录转换为待持久化的 ClinicalTrial。
func (r EnrichedRecord) ToClinicalTrial() *ClinicalTrial {
	return &ClinicalTrial{
		ID:           r.ExternalID,
		Title:        r.Title,
		Description:  r.Text,
		AISummary:    r.AISummary,
		Status:       r.Status,
		Location:     r.Location,
		ContactEmail: r.ContactEmail,
		TrialURL:     r.DetailURL,
	}
}
