// Package pipeline 定义了检索结果的富化流程：摘要生成与持久化。
package pipeline

import (
	"context"

	"curalink-go/internal/model"
	"curalink-go/pkg/log"
	"curalink-go/pkg/metrics"

	"golang.org/x/sync/errgroup"
)

// PlaceholderSummary 是摘要生成失败时写入的固定文本
const PlaceholderSummary = "Summary not available."

// Summarizer 对一段文本生成摘要。summarizer.Client 满足该接口。
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// Sink 持久化一条富化记录。
type Sink interface {
	Save(ctx context.Context, rec model.EnrichedRecord) error
}

// Enricher 为每条检索结果生成摘要并写入 Sink。
type Enricher struct {
	summarizer  Summarizer
	concurrency int
}

// NewEnricher 创建一个 Enricher。concurrency <= 1 时逐条顺序调用摘要模型。
func NewEnricher(summarizer Summarizer, concurrency int) *Enricher {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Enricher{summarizer: summarizer, concurrency: concurrency}
}

// Enrich 返回与输入顺序一致的富化记录。
// 单条摘要失败使用占位文本，单条持久化失败只记录日志，都不影响其它记录。
func (e *Enricher) Enrich(ctx context.Context, results []model.SearchResult, sink Sink) []model.EnrichedRecord {
	// 客户端断开后仍要完成摘要与落库，只保留 ctx 中的值
	ctx = context.WithoutCancel(ctx)

	records := make([]model.EnrichedRecord, len(results))
	for i, r := range results {
		records[i] = model.EnrichedRecord{SearchResult: r, DetailURL: detailURL(r)}
	}

	if e.concurrency == 1 {
		for i := range records {
			records[i].AISummary = e.summarize(ctx, records[i].SearchResult)
		}
	} else {
		// summarize 不返回错误，Wait 只用于等待全部完成
		g := new(errgroup.Group)
		g.SetLimit(e.concurrency)
		for i := range records {
			i := i
			g.Go(func() error {
				records[i].AISummary = e.summarize(ctx, records[i].SearchResult)
				return nil
			})
		}
		_ = g.Wait()
	}

	if sink != nil {
		for _, rec := range records {
			if err := sink.Save(ctx, rec); err != nil {
				log.Errorf("[Enricher] 保存记录失败, source: %s, id: %s, error: %v", rec.Source, rec.ExternalID, err)
			}
		}
	}
	return records
}

func (e *Enricher) summarize(ctx context.Context, r model.SearchResult) string {
	if e.summarizer == nil {
		metrics.Summaries.WithLabelValues("placeholder").Inc()
		return PlaceholderSummary
	}
	log.Infof("[Enricher] 生成摘要, source: %s, id: %s", r.Source, r.ExternalID)
	summary, err := e.summarizer.Summarize(ctx, r.Text)
	if err != nil || summary == "" {
		log.Warnf("[Enricher] 摘要生成失败, 使用占位文本, id: %s, error: %v", r.ExternalID, err)
		metrics.Summaries.WithLabelValues("placeholder").Inc()
		return PlaceholderSummary
	}
	metrics.Summaries.WithLabelValues("ok").Inc()
	return summary
}

func detailURL(r model.SearchResult) string {
	switch r.Source {
	case model.SourcePubMed:
		return PublicationURL(r.ExternalID)
	case model.SourceClinicalTrials:
		return TrialURL(r.ExternalID)
	}
	return ""
}
