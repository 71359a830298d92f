package pipeline

import (
	"context"

	"curalink-go/internal/model"
	"curalink-go/internal/repository"
	"curalink-go/pkg/log"
	"curalink-go/pkg/metrics"
)

// PublicationSink 把文献记录写入 publications 表，已存在的 PMID 不会被覆盖。
type PublicationSink struct {
	repo repository.PublicationRepository
}

func NewPublicationSink(repo repository.PublicationRepository) *PublicationSink {
	return &PublicationSink{repo: repo}
}

func (s *PublicationSink) Save(ctx context.Context, rec model.EnrichedRecord) error {
	inserted, err := s.repo.InsertIfAbsent(ctx, rec.ToPublication())
	observePersist("publication", inserted, err)
	if err == nil && !inserted {
		log.Infof("[PublicationSink] PMID %s 已存在, 跳过写入", rec.ExternalID)
	}
	return err
}

// TrialSink 把试验记录写入 clinical_trials 表，已存在的 NCT 编号不会被覆盖。
type TrialSink struct {
	repo repository.TrialRepository
}

func NewTrialSink(repo repository.TrialRepository) *TrialSink {
	return &TrialSink{repo: repo}
}

func (s *TrialSink) Save(ctx context.Context, rec model.EnrichedRecord) error {
	inserted, err := s.repo.InsertIfAbsent(ctx, rec.ToClinicalTrial())
	observePersist("trial", inserted, err)
	if err == nil && !inserted {
		log.Infof("[TrialSink] %s 已存在, 跳过写入", rec.ExternalID)
	}
	return err
}

func observePersist(kind string, inserted bool, err error) {
	outcome := "existing"
	switch {
	case err != nil:
		outcome = "failed"
	case inserted:
		outcome = "inserted"
	}
	metrics.Persisted.WithLabelValues(kind, outcome).Inc()
}
