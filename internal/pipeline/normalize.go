package pipeline

import (
	"time"

	"curalink-go/internal/model"
	"curalink-go/pkg/clinicaltrials"
	"curalink-go/pkg/log"
	"curalink-go/pkg/pubmed"
)

// 缺少出版年份时使用的占位年份
const fallbackYear = "1970"

// 试验缺少地点或联系人时的占位值
const notAvailable = "N/A"

// PublicationURL 返回 PubMed 文献详情页地址。
func PublicationURL(pmid string) string {
	return "https://pubmed.ncbi.nlm.nih.gov/" + pmid + "/"
}

// TrialURL 返回 ClinicalTrials.gov 试验详情页地址。
func TrialURL(nctID string) string {
	return "https://clinicaltrials.gov/study/" + nctID
}

// NormalizeArticles 把 efetch 解码结果转换为 SearchResult。
// 缺少 PMID 或摘要为空的文献被丢弃，重复的 PMID 只保留第一次出现。
func NormalizeArticles(articles []pubmed.Article) []model.SearchResult {
	results := make([]model.SearchResult, 0, len(articles))
	seen := make(map[string]struct{}, len(articles))
	for _, a := range articles {
		pmid := a.PMID()
		if pmid == "" {
			log.Warnf("[Normalizer] 跳过缺少 MedlineCitation/PMID 的文献")
			continue
		}
		if _, ok := seen[pmid]; ok {
			continue
		}
		abstract := a.AbstractText()
		if abstract == "" {
			log.Infof("[Normalizer] 文献 %s 没有摘要, 已跳过", pmid)
			continue
		}
		seen[pmid] = struct{}{}

		results = append(results, model.SearchResult{
			Source:      model.SourcePubMed,
			ExternalID:  pmid,
			Title:       a.Title(),
			Text:        abstract,
			PublishedAt: publishedAt(a.Year()),
		})
	}
	return results
}

func publishedAt(year string) time.Time {
	if t, ok := model.YearStart(year); ok {
		return t
	}
	t, _ := model.YearStart(fallbackYear)
	return t
}

// NormalizeStudies 把 v2 API 的 study 转换为 SearchResult。
// 缺少 NCT 编号或简述为空的试验被丢弃。
func NormalizeStudies(studies []clinicaltrials.Study) []model.SearchResult {
	results := make([]model.SearchResult, 0, len(studies))
	seen := make(map[string]struct{}, len(studies))
	for _, s := range studies {
		id := s.NCTID()
		if id == "" {
			log.Warnf("[Normalizer] 跳过缺少 NCT 编号的试验")
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		summary := s.Summary()
		if summary == "" {
			log.Infof("[Normalizer] 试验 %s 没有简述, 已跳过", id)
			continue
		}
		seen[id] = struct{}{}

		location, ok := s.FirstLocation()
		if !ok {
			location = notAvailable
		}
		email, ok := s.FirstContactEmail()
		if !ok {
			email = notAvailable
		}

		results = append(results, model.SearchResult{
			Source:       model.SourceClinicalTrials,
			ExternalID:   id,
			Title:        s.Title(),
			Text:         summary,
			Status:       s.Status(),
			Location:     location,
			ContactEmail: email,
		})
	}
	return results
}
