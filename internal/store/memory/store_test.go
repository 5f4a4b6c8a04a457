package memory_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/chargeflow/internal/charge"
	"github.com/davidbz/chargeflow/internal/domain"
	"github.com/davidbz/chargeflow/internal/store/memory"
)

func TestStore_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	t.Run("should return a saved charge", func(t *testing.T) {
		c := &domain.Charge{
			ID:         "chg-1",
			Model:      charge.ModelStandard,
			Properties: charge.Properties{"amount": "1.50"},
		}
		require.NoError(t, store.Save(ctx, c))

		loaded, err := store.Get(ctx, "chg-1")
		require.NoError(t, err)
		require.Equal(t, c, loaded)
	})

	t.Run("should isolate stored properties from callers", func(t *testing.T) {
		props := charge.Properties{"amount": "1"}
		require.NoError(t, store.Save(ctx, &domain.Charge{ID: "chg-2", Properties: props}))

		props["amount"] = "2"
		loaded, err := store.Get(ctx, "chg-2")
		require.NoError(t, err)
		require.Equal(t, "1", loaded.Properties["amount"])

		loaded.Properties["amount"] = "3"
		again, err := store.Get(ctx, "chg-2")
		require.NoError(t, err)
		require.Equal(t, "1", again.Properties["amount"])
	})

	t.Run("should isolate nested tiers from callers", func(t *testing.T) {
		tier := map[string]any{"from_value": 0, "per_unit_amount": "1"}
		props := charge.Properties{"graduated_ranges": []any{tier}}
		require.NoError(t, store.Save(ctx, &domain.Charge{ID: "chg-3", Properties: props}))

		tier["per_unit_amount"] = "9"
		loaded, err := store.Get(ctx, "chg-3")
		require.NoError(t, err)

		ranges, ok := loaded.Properties["graduated_ranges"].([]any)
		require.True(t, ok)
		loadedTier, ok := ranges[0].(map[string]any)
		require.True(t, ok)
		require.Equal(t, "1", loadedTier["per_unit_amount"])

		loadedTier["per_unit_amount"] = "5"
		ranges[0] = nil
		again, err := store.Get(ctx, "chg-3")
		require.NoError(t, err)
		againTier := again.Properties["graduated_ranges"].([]any)[0].(map[string]any)
		require.Equal(t, "1", againTier["per_unit_amount"])
	})

	t.Run("should reject charges without id", func(t *testing.T) {
		require.ErrorIs(t, store.Save(ctx, &domain.Charge{}), domain.ErrEmptyChargeID)
		require.ErrorIs(t, store.Save(ctx, nil), domain.ErrEmptyChargeID)
	})

	t.Run("should report missing charges", func(t *testing.T) {
		_, err := store.Get(ctx, "missing")
		require.ErrorIs(t, err, domain.ErrChargeNotFound)
	})
}

func TestStore_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.Save(ctx, &domain.Charge{ID: "late", CreatedAt: base.Add(time.Hour)}))
	require.NoError(t, store.Save(ctx, &domain.Charge{ID: "b", CreatedAt: base}))
	require.NoError(t, store.Save(ctx, &domain.Charge{ID: "a", CreatedAt: base}))

	charges, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, charges, 3)
	require.Equal(t, "a", charges[0].ID)
	require.Equal(t, "b", charges[1].ID)
	require.Equal(t, "late", charges[2].ID)

	require.NoError(t, store.Delete(ctx, "b"))
	require.ErrorIs(t, store.Delete(ctx, "b"), domain.ErrChargeNotFound)

	charges, err = store.List(ctx)
	require.NoError(t, err)
	require.Len(t, charges, 2)
}

func TestStore_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := fmt.Sprintf("chg-%d", i)
			_ = store.Save(ctx, &domain.Charge{ID: id})
			_, _ = store.Get(ctx, id)
			_, _ = store.List(ctx)
		}()
	}
	wg.Wait()

	charges, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, charges, 50)
}
