package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"curalink-go/internal/model"
	"curalink-go/pkg/database"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(database.DriverSQLite, ":memory:")
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	return db
}

func TestPublicationRepository_InsertIfAbsent(t *testing.T) {
	ctx := context.Background()
	repo := NewPublicationRepository(newTestDB(t))

	first := &model.Publication{ID: "111", Title: "First", Abstract: "a", AISummary: "s1", PublishedAt: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)}
	inserted, err := repo.InsertIfAbsent(ctx, first)
	require.NoError(t, err)
	assert.True(t, inserted)

	second := &model.Publication{ID: "111", Title: "Changed", Abstract: "b", AISummary: "s2"}
	inserted, err = repo.InsertIfAbsent(ctx, second)
	require.NoError(t, err)
	assert.False(t, inserted)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	stored, err := repo.FindByID(ctx, "111")
	require.NoError(t, err)
	assert.Equal(t, "First", stored.Title)
	assert.Equal(t, "s1", stored.AISummary)
}

func TestTrialRepository_InsertIfAbsent(t *testing.T) {
	ctx := context.Background()
	repo := NewTrialRepository(newTestDB(t))

	inserted, err := repo.InsertIfAbsent(ctx, &model.ClinicalTrial{ID: "NCT01", Title: "T", Status: "RECRUITING"})
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = repo.InsertIfAbsent(ctx, &model.ClinicalTrial{ID: "NCT01", Title: "T2", Status: "COMPLETED"})
	require.NoError(t, err)
	assert.False(t, inserted)

	stored, err := repo.FindByID(ctx, "NCT01")
	require.NoError(t, err)
	assert.Equal(t, "RECRUITING", stored.Status)
	assert.Nil(t, stored.ResearcherID)

	_, err = repo.FindByID(ctx, "NCT99")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestUserRepository_CreateWithProfile(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewUserRepository(db)

	patient := &model.User{Email: "p@x.org", PasswordHash: "h", Role: model.RolePatient}
	require.NoError(t, repo.CreateWithProfile(ctx, patient, "Pat Ient"))
	assert.NotZero(t, patient.ID)

	var pp model.PatientProfile
	require.NoError(t, db.First(&pp, "user_id = ?", patient.ID).Error)
	assert.Equal(t, "Pat Ient", pp.FullName)

	researcher := &model.User{Email: "r@x.org", PasswordHash: "h", Role: model.RoleResearcher}
	require.NoError(t, repo.CreateWithProfile(ctx, researcher, "Re Searcher"))

	var rp model.ResearcherProfile
	require.NoError(t, db.First(&rp, "user_id = ?", researcher.ID).Error)
	assert.Equal(t, "Re Searcher", rp.FullName)

	found, err := repo.FindByEmail(ctx, "r@x.org")
	require.NoError(t, err)
	assert.Equal(t, researcher.ID, found.ID)

	found, err = repo.FindByID(ctx, patient.ID)
	require.NoError(t, err)
	assert.Equal(t, "p@x.org", found.Email)
}

func TestUserRepository_DuplicateEmailRollsBack(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewUserRepository(db)

	require.NoError(t, repo.CreateWithProfile(ctx, &model.User{Email: "dup@x.org", PasswordHash: "h", Role: model.RolePatient}, "One"))
	err := repo.CreateWithProfile(ctx, &model.User{Email: "dup@x.org", PasswordHash: "h", Role: model.RoleResearcher}, "Two")
	require.Error(t, err)

	var profiles int64
	require.NoError(t, db.Model(&model.ResearcherProfile{}).Count(&profiles).Error)
	assert.Zero(t, profiles)
}

func TestProfileRepository_SearchResearchers(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	rows := []model.ResearcherProfile{
		{UserID: 1, FullName: "Alice Neuro", Specialties: datatypes.JSON(`["Neurology"]`), ResearchInterests: datatypes.JSON(`["Glioma","Immunotherapy"]`)},
		{UserID: 2, FullName: "Bob Heart", Specialties: datatypes.JSON(`["Cardiology"]`), ResearchInterests: datatypes.JSON(`["Arrhythmia"]`)},
		{UserID: 3, FullName: "Carol 100%", Specialties: datatypes.JSON(`[]`)},
	}
	require.NoError(t, db.Create(&rows).Error)

	repo := NewProfileRepository(db)

	got, err := repo.SearchResearchers(ctx, "GLIOMA")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, uint(1), got[0].UserID)

	got, err = repo.SearchResearchers(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Bob Heart", got[0].FullName)

	got, err = repo.SearchResearchers(ctx, "ology")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = repo.SearchResearchers(ctx, "%")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, uint(3), got[0].UserID)
}

func TestTokenBlacklist(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	bl := NewTokenBlacklist(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	revoked, err := bl.IsRevoked(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, bl.Revoke(ctx, "tok", time.Minute))
	revoked, err = bl.IsRevoked(ctx, "tok")
	require.NoError(t, err)
	assert.True(t, revoked)

	mr.FastForward(2 * time.Minute)
	revoked, err = bl.IsRevoked(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestNewTokenBlacklist_NilClient(t *testing.T) {
	assert.Nil(t, NewTokenBlacklist(nil))
}
