package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/map-annotation-service/internal/domain"
	"github.com/map-annotation-service/internal/pkg/errors"
	"github.com/map-annotation-service/internal/repository/memory"
)

func TestFeatureStore_AddAndGet(t *testing.T) {
	ctx := context.Background()
	store := memory.NewFeatureStore()

	marker := domain.Marker{
		ID:          7,
		Category:    domain.CategoryChecked,
		Coordinate:  domain.Coordinate{X: 4420570.33, Y: 5981353.34},
		Title:       "Pothole",
		Description: "Large pothole on Main St",
	}

	require.NoError(t, store.Add(ctx, marker))

	got, err := store.GetByID(ctx, domain.CategoryChecked, 7)
	require.NoError(t, err)
	assert.Equal(t, marker, *got)

	t.Run("wrong category is not found", func(t *testing.T) {
		_, err := store.GetByID(ctx, domain.CategoryText, 7)
		assert.ErrorIs(t, err, errors.ErrMarkerNotFound)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		_, err := store.GetByID(ctx, domain.CategoryChecked, 8)
		assert.ErrorIs(t, err, errors.ErrMarkerNotFound)
	})

	t.Run("duplicate id is rejected", func(t *testing.T) {
		dup := marker
		dup.Title = "Another"
		err := store.Add(ctx, dup)
		assert.ErrorIs(t, err, errors.ErrDuplicateMarkerID)

		all, err := store.All(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
		assert.Equal(t, "Pothole", all[0].Title)
	})

	t.Run("unknown category is rejected", func(t *testing.T) {
		err := store.Add(ctx, domain.Marker{ID: 99})
		assert.ErrorIs(t, err, errors.ErrInvalidCategory)
	})
}

func TestFeatureStore_AllKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	store := memory.NewFeatureStore()

	ids := []domain.FeatureID{5, 2, 9, 1}
	for _, id := range ids {
		require.NoError(t, store.Add(ctx, domain.Marker{ID: id, Category: domain.CategoryText}))
	}

	all, err := store.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, len(ids))
	for i, id := range ids {
		assert.Equal(t, id, all[i].ID)
	}

	// Возвращается копия - изменения снаружи не попадают в хранилище
	all[0].Title = "mutated"
	again, err := store.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, again[0].Title)
}
