package pipeline

import (
	"context"
	"testing"

	"curalink-go/internal/model"
	"curalink-go/internal/repository"
	"curalink-go/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSinks_InsertOnce(t *testing.T) {
	ctx := context.Background()
	db, err := database.Open(database.DriverSQLite, ":memory:")
	require.NoError(t, err)
	require.NoError(t, repository.AutoMigrate(db))

	pubRepo := repository.NewPublicationRepository(db)
	pubSink := NewPublicationSink(pubRepo)
	rec := model.EnrichedRecord{
		SearchResult: model.SearchResult{Source: model.SourcePubMed, ExternalID: "42", Title: "T", Text: "A"},
		AISummary:    "S",
		DetailURL:    PublicationURL("42"),
	}
	require.NoError(t, pubSink.Save(ctx, rec))
	require.NoError(t, pubSink.Save(ctx, rec))
	n, err := pubRepo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	trialRepo := repository.NewTrialRepository(db)
	trialSink := NewTrialSink(trialRepo)
	trial := model.EnrichedRecord{
		SearchResult: model.SearchResult{Source: model.SourceClinicalTrials, ExternalID: "NCT1", Text: "B", Status: "RECRUITING", Location: "N/A", ContactEmail: "N/A"},
		AISummary:    PlaceholderSummary,
		DetailURL:    TrialURL("NCT1"),
	}
	require.NoError(t, trialSink.Save(ctx, trial))
	require.NoError(t, trialSink.Save(ctx, trial))
	stored, err := trialRepo.FindByID(ctx, "NCT1")
	require.NoError(t, err)
	assert.Equal(t, "https://clinicaltrials.gov/study/NCT1", stored.TrialURL)
	n, err = trialRepo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
