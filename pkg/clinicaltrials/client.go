// Package clinicaltrials provides a client for the ClinicalTrials.gov v2 REST API.
package clinicaltrials

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"curalink-go/internal/config"
	"curalink-go/pkg/log"
	"curalink-go/pkg/metrics"
)

// Fields 是请求中 fields 参数的白名单，只拉取检索流程需要的字段
const Fields = "NCTId,BriefTitle,BriefSummary,OverallStatus,LocationCity,LocationCountry,CentralContactEMail"

// Client defines the interface for a ClinicalTrials.gov client.
type Client interface {
	SearchStudies(ctx context.Context, q Query) ([]Study, error)
}

// Query 描述一次 /studies 检索。Status 为空时不加状态过滤。
type Query struct {
	Term     string
	Status   StudyStatus
	PageSize int
}

// APIError 表示 ClinicalTrials.gov 返回了非 2xx 状态码。
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("clinicaltrials.gov returned status %d: %s", e.StatusCode, e.Body)
}

// IsBadRequest 判断上游是否因为参数错误拒绝了请求。
func (e *APIError) IsBadRequest() bool {
	return e.StatusCode == http.StatusBadRequest
}

type restClient struct {
	cfg    config.ClinicalTrialsConfig
	client *http.Client
}

// NewClient creates a new ClinicalTrials.gov client.
func NewClient(cfg config.ClinicalTrialsConfig) Client {
	return &restClient{
		cfg:    cfg,
		client: &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
	}
}

// SearchStudies 调用 GET /studies。
func (c *restClient) SearchStudies(ctx context.Context, q Query) ([]Study, error) {
	params := url.Values{
		"query.term": {q.Term},
		"fields":     {Fields},
		"format":     {"json"},
	}
	if q.PageSize > 0 {
		params.Set("pageSize", strconv.Itoa(q.PageSize))
	}
	if q.Status != "" {
		params.Set("filter.overallStatus", string(q.Status))
	}
	log.Infof("[ClinicalTrialsClient] 检索试验, term: %q, status: %q, pageSize: %d", q.Term, q.Status, q.PageSize)

	defer metrics.ObserveUpstream("clinicaltrials", "studies", time.Now())

	reqURL := strings.TrimRight(c.cfg.BaseURL, "/") + "/studies?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create studies request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send studies request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var res studiesResponse
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, fmt.Errorf("failed to decode studies response: %w", err)
	}
	log.Infof("[ClinicalTrialsClient] 返回 %d 个试验", len(res.Studies))
	return res.Studies, nil
}
