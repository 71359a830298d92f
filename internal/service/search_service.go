// Package service 提供了检索与富化相关的业务逻辑。
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"curalink-go/internal/model"
	"curalink-go/internal/pipeline"
	"curalink-go/internal/repository"
	"curalink-go/pkg/clinicaltrials"
	"curalink-go/pkg/log"
	"curalink-go/pkg/metrics"
	"curalink-go/pkg/pubmed"
)

// MaxResults 是每次检索向上游请求的最大记录数
const MaxResults = 5

// SearchService 接口定义了检索操作。
type SearchService interface {
	SearchPublications(ctx context.Context, term string) ([]model.PublicationDTO, error)
	SearchTrials(ctx context.Context, term, statusFilter string) ([]model.TrialDTO, error)
	SearchExperts(ctx context.Context, term string) ([]model.ExpertDTO, error)
}

type searchService struct {
	pubmedClient pubmed.Client
	trialsClient clinicaltrials.Client
	enricher     *pipeline.Enricher
	pubSink      pipeline.Sink
	trialSink    pipeline.Sink
	profileRepo  repository.ProfileRepository
}

// NewSearchService 创建一个新的 SearchService 实例。
func NewSearchService(
	pubmedClient pubmed.Client,
	trialsClient clinicaltrials.Client,
	enricher *pipeline.Enricher,
	pubRepo repository.PublicationRepository,
	trialRepo repository.TrialRepository,
	profileRepo repository.ProfileRepository,
) SearchService {
	return &searchService{
		pubmedClient: pubmedClient,
		trialsClient: trialsClient,
		enricher:     enricher,
		pubSink:      pipeline.NewPublicationSink(pubRepo),
		trialSink:    pipeline.NewTrialSink(trialRepo),
		profileRepo:  profileRepo,
	}
}

// SearchPublications 执行 esearch -> efetch -> 归一化 -> 摘要 -> 落库。
func (s *searchService) SearchPublications(ctx context.Context, term string) ([]model.PublicationDTO, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		countSearch(model.SourcePubMed, "bad_request")
		return nil, ErrSearchTermRequired
	}
	log.Infof("[SearchService] 开始检索文献, term: %q", term)

	// 1. esearch 获取 PMID
	ids, err := s.pubmedClient.Search(ctx, term, MaxResults)
	if err != nil {
		countSearch(model.SourcePubMed, "error")
		return nil, fmt.Errorf("pubmed esearch: %w", err)
	}
	if len(ids) == 0 {
		countSearch(model.SourcePubMed, "no_results")
		return nil, ErrNoResults
	}

	// 2. efetch 一次性拉取详情
	articles, err := s.pubmedClient.Fetch(ctx, ids)
	if err != nil {
		countSearch(model.SourcePubMed, "error")
		return nil, fmt.Errorf("pubmed efetch: %w", err)
	}

	// 3. 归一化，丢弃无摘要的文献
	results := capResults(pipeline.NormalizeArticles(articles))
	log.Infof("[SearchService] 文献归一化完成, PMID 数: %d, 可用记录数: %d", len(ids), len(results))
	if len(results) == 0 {
		countSearch(model.SourcePubMed, "no_results")
		return nil, ErrNoResults
	}

	// 4. 摘要与落库
	records := s.enricher.Enrich(ctx, results, s.pubSink)

	dtos := make([]model.PublicationDTO, 0, len(records))
	for _, rec := range records {
		dtos = append(dtos, rec.ToPublicationDTO())
	}
	countSearch(model.SourcePubMed, "ok")
	return dtos, nil
}

// SearchTrials 执行 /studies 检索 -> 归一化 -> 摘要 -> 落库。
// statusFilter 为空或 "ALL" 时不过滤状态。
func (s *searchService) SearchTrials(ctx context.Context, term, statusFilter string) ([]model.TrialDTO, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		countSearch(model.SourceClinicalTrials, "bad_request")
		return nil, ErrSearchTermRequired
	}
	status, err := clinicaltrials.ParseStatus(statusFilter)
	if err != nil {
		countSearch(model.SourceClinicalTrials, "bad_request")
		return nil, fmt.Errorf("%w: %v", ErrInvalidStatusFilter, err)
	}
	log.Infof("[SearchService] 开始检索临床试验, term: %q, status: %q", term, status)

	studies, err := s.trialsClient.SearchStudies(ctx, clinicaltrials.Query{Term: term, Status: status, PageSize: MaxResults})
	if err != nil {
		countSearch(model.SourceClinicalTrials, "error")
		return nil, fmt.Errorf("clinicaltrials search: %w", err)
	}
	if len(studies) == 0 {
		countSearch(model.SourceClinicalTrials, "no_results")
		return nil, ErrNoResults
	}

	results := capResults(pipeline.NormalizeStudies(studies))
	log.Infof("[SearchService] 试验归一化完成, 返回数: %d, 可用记录数: %d", len(studies), len(results))
	if len(results) == 0 {
		countSearch(model.SourceClinicalTrials, "no_results")
		return nil, ErrNoResults
	}

	records := s.enricher.Enrich(ctx, results, s.trialSink)

	dtos := make([]model.TrialDTO, 0, len(records))
	for _, rec := range records {
		dtos = append(dtos, rec.ToTrialDTO())
	}
	countSearch(model.SourceClinicalTrials, "ok")
	return dtos, nil
}

// SearchExperts 在研究者资料中检索，无结果时返回空列表。
func (s *searchService) SearchExperts(ctx context.Context, term string) ([]model.ExpertDTO, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, ErrSearchTermRequired
	}

	profiles, err := s.profileRepo.SearchResearchers(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("search researchers: %w", err)
	}

	dtos := make([]model.ExpertDTO, 0, len(profiles))
	for _, p := range profiles {
		dtos = append(dtos, model.ExpertDTO{
			UserID:            p.UserID,
			FullName:          p.FullName,
			Specialties:       rawJSON(p.Specialties),
			ResearchInterests: rawJSON(p.ResearchInterests),
		})
	}
	return dtos, nil
}

func rawJSON(b []byte) interface{} {
	if len(b) == 0 {
		return nil
	}
	return json.RawMessage(b)
}

func capResults(results []model.SearchResult) []model.SearchResult {
	if len(results) > MaxResults {
		return results[:MaxResults]
	}
	return results
}

func countSearch(source model.Source, outcome string) {
	metrics.SearchRequests.WithLabelValues(string(source), outcome).Inc()
}
