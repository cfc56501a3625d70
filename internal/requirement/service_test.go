package requirement

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) RequirementService {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&CountryRequirement{}))

	return NewRequirementService(NewRequirementRepository(db), zap.NewNop())
}

func sampleInputs() []RequirementInput {
	return []RequirementInput{
		{DocumentType: "passport", Description: "valid passport", Mandatory: true},
		{DocumentType: "transcript", Description: "certified transcript", Mandatory: true},
		{DocumentType: "motivation letter", Description: "one page", Mandatory: false},
	}
}

func TestCreateForCountry(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	created, err := service.CreateForCountry(ctx, "Germany", sampleInputs())
	require.NoError(t, err)
	require.Len(t, created, 3)
	for _, req := range created {
		assert.NotEqual(t, uuid.Nil, req.ID)
		assert.Equal(t, "Germany", req.Country)
	}
}

func TestListByCountryCaseInsensitive(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	_, err := service.CreateForCountry(ctx, "Germany", sampleInputs())
	require.NoError(t, err)

	listed, err := service.ListByCountry(ctx, "gErMaNy")
	require.NoError(t, err)
	assert.Len(t, listed, 3)
}

func TestListByCountryEmpty(t *testing.T) {
	service := newTestService(t)

	_, err := service.ListByCountry(context.Background(), "Atlantis")
	assert.ErrorIs(t, err, ErrNoRequirements)
}

func TestUpdateRequirement(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	created, err := service.CreateForCountry(ctx, "France", sampleInputs()[:1])
	require.NoError(t, err)

	description := "passport valid for at least six months"
	mandatory := false
	updated, err := service.Update(ctx, created[0].ID, &UpdateInput{
		Description: &description,
		Mandatory:   &mandatory,
	})
	require.NoError(t, err)
	assert.Equal(t, description, updated.Description)
	assert.False(t, updated.Mandatory)
	// unset fields stay untouched
	assert.Equal(t, "passport", updated.DocumentType)
}

func TestUpdateUnknownRequirement(t *testing.T) {
	service := newTestService(t)

	description := "whatever"
	_, err := service.Update(context.Background(), uuid.New(), &UpdateInput{Description: &description})
	assert.ErrorIs(t, err, ErrRequirementNotFound)
}

func TestDeleteRequirement(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	created, err := service.CreateForCountry(ctx, "France", sampleInputs()[:1])
	require.NoError(t, err)

	deleted, err := service.Delete(ctx, created[0].ID)
	require.NoError(t, err)
	assert.Equal(t, created[0].ID, deleted.ID)

	_, err = service.Delete(ctx, created[0].ID)
	assert.ErrorIs(t, err, ErrRequirementNotFound)

	_, err = service.ListByCountry(ctx, "France")
	assert.ErrorIs(t, err, ErrNoRequirements)
}
