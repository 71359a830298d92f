// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"errors"
	"net/http"

	"curalink-go/internal/service"
	"curalink-go/pkg/clinicaltrials"
	"curalink-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// SearchHandler 负责处理检索相关的 API 请求。
type SearchHandler struct {
	searchService service.SearchService
}

// NewSearchHandler 创建一个新的 SearchHandler 实例。
func NewSearchHandler(searchService service.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// SearchRequest 定义了检索 API 的请求体结构。
// searchTerm 的必填校验在 service 层完成，保证缺失时不发起任何外部请求。
type SearchRequest struct {
	SearchTerm   string `json:"searchTerm"`
	StatusFilter string `json:"statusFilter"`
}

func (h *SearchHandler) bind(c *gin.Context) (SearchRequest, bool) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("[SearchHandler] Invalid request payload, path: %s, error: %v", c.FullPath(), err)
		c.JSON(http.StatusBadRequest, gin.H{"error": service.ErrSearchTermRequired.Error()})
		return req, false
	}
	return req, true
}

// SearchPublications 处理 POST /api/search/publications。
func (h *SearchHandler) SearchPublications(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}

	pubs, err := h.searchService.SearchPublications(c.Request.Context(), req.SearchTerm)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSearchTermRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrNoResults):
			c.JSON(http.StatusNotFound, gin.H{"message": "No publications found."})
		default:
			log.Errorf("[SearchHandler] 文献检索失败, term: %q, error: %v", req.SearchTerm, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error fetching publications"})
		}
		return
	}

	c.JSON(http.StatusOK, pubs)
}

// SearchTrials 处理 POST /api/search/trials。
func (h *SearchHandler) SearchTrials(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}

	trials, err := h.searchService.SearchTrials(c.Request.Context(), req.SearchTerm, req.StatusFilter)
	if err != nil {
		var apiErr *clinicaltrials.APIError
		switch {
		case errors.Is(err, service.ErrSearchTermRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrInvalidStatusFilter):
			c.JSON(http.StatusBadRequest, gin.H{"error": service.ErrInvalidStatusFilter.Error()})
		case errors.Is(err, service.ErrNoResults):
			c.JSON(http.StatusNotFound, gin.H{"message": "No clinical trials found."})
		case errors.As(err, &apiErr) && apiErr.IsBadRequest():
			log.Errorf("[SearchHandler] ClinicalTrials.gov 拒绝了请求参数: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Trial search service failed. Bad parameters."})
		default:
			log.Errorf("[SearchHandler] 试验检索失败, term: %q, error: %v", req.SearchTerm, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error fetching trials"})
		}
		return
	}

	c.JSON(http.StatusOK, trials)
}

// SearchExperts 处理 POST /api/search/experts。
func (h *SearchHandler) SearchExperts(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}

	experts, err := h.searchService.SearchExperts(c.Request.Context(), req.SearchTerm)
	if err != nil {
		if errors.Is(err, service.ErrSearchTermRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Errorf("[SearchHandler] 专家检索失败, term: %q, error: %v", req.SearchTerm, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error fetching experts"})
		return
	}

	c.JSON(http.StatusOK, experts)
}
