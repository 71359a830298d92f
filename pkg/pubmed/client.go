// Package pubmed provides a client for the NCBI E-utilities (esearch / efetch) API.
package pubmed

import (
	"context"
	"encoding/json"
	"encoding/xml"
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

	"golang.org/x/time/rate"
)

// NCBI 对未携带 api_key 的调用限制为每秒 3 次，携带后为 10 次
const (
	defaultRateLimit    = 3
	defaultRateLimitKey = 10
)

// Client defines the interface for a PubMed client.
type Client interface {
	// Search 返回与检索词匹配的 PMID 列表（去重，最多 max 个）
	Search(ctx context.Context, term string, max int) ([]string, error)
	// Fetch 一次性拉取多个 PMID 的文献详情
	Fetch(ctx context.Context, ids []string) ([]Article, error)
}

// APIError 表示 E-utilities 返回了非 2xx 状态码。
type APIError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("pubmed %s returned status %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

type eutilsClient struct {
	cfg     config.PubMedConfig
	client  *http.Client
	limiter *rate.Limiter
}

// NewClient creates a new PubMed client.
func NewClient(cfg config.PubMedConfig) Client {
	limit := cfg.RateLimit
	if limit <= 0 {
		limit = defaultRateLimit
		if cfg.APIKey != "" {
			limit = defaultRateLimitKey
		}
	}
	return &eutilsClient{
		cfg:     cfg,
		client:  &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		limiter: rate.NewLimiter(rate.Limit(limit), 1),
	}
}

type esearchResponse struct {
	ESearchResult struct {
		Count  string   `json:"count"`
		IDList []string `json:"idlist"`
		Error  string   `json:"ERROR"`
	} `json:"esearchresult"`
}

// Search 调用 esearch.fcgi（retmode=json）。
func (c *eutilsClient) Search(ctx context.Context, term string, max int) ([]string, error) {
	log.Infof("[PubMedClient] esearch, term: %q, retmax: %d", term, max)
	params := url.Values{
		"db":      {"pubmed"},
		"term":    {term},
		"retmode": {"json"},
		"retmax":  {strconv.Itoa(max)},
	}

	body, err := c.get(ctx, "esearch", params)
	if err != nil {
		return nil, err
	}

	var res esearchResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("failed to decode esearch response: %w", err)
	}
	if res.ESearchResult.Error != "" {
		return nil, fmt.Errorf("esearch error: %s", res.ESearchResult.Error)
	}

	seen := make(map[string]struct{}, len(res.ESearchResult.IDList))
	ids := make([]string, 0, len(res.ESearchResult.IDList))
	for _, id := range res.ESearchResult.IDList {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
		if max > 0 && len(ids) == max {
			break
		}
	}
	log.Infof("[PubMedClient] esearch 返回 %d 个 PMID (count=%s)", len(ids), res.ESearchResult.Count)
	return ids, nil
}

// Fetch 调用 efetch.fcgi（retmode=xml）。ids 为空时不发起请求。
func (c *eutilsClient) Fetch(ctx context.Context, ids []string) ([]Article, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	log.Infof("[PubMedClient] efetch, ids: %s", strings.Join(ids, ","))
	params := url.Values{
		"db":      {"pubmed"},
		"id":      {strings.Join(ids, ",")},
		"retmode": {"xml"},
	}

	body, err := c.get(ctx, "efetch", params)
	if err != nil {
		return nil, err
	}

	var set ArticleSet
	if err := xml.Unmarshal(body, &set); err != nil {
		return nil, fmt.Errorf("failed to decode efetch response: %w", err)
	}
	return set.Articles, nil
}

func (c *eutilsClient) get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	if c.cfg.APIKey != "" {
		params.Set("api_key", c.cfg.APIKey)
	}
	if c.cfg.Tool != "" {
		params.Set("tool", c.cfg.Tool)
	}
	if c.cfg.Email != "" {
		params.Set("email", c.cfg.Email)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("pubmed rate limiter: %w", err)
	}
	defer metrics.ObserveUpstream("pubmed", endpoint, time.Now())

	reqURL := strings.TrimRight(c.cfg.BaseURL, "/") + "/" + endpoint + ".fcgi?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s request: %w", endpoint, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send %s request: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", endpoint, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{Endpoint: endpoint, StatusCode: resp.StatusCode, Body: truncate(string(body), 512)}
	}
	return body, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
