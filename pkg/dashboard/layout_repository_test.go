package dashboard

import (
	"testing"
	"time"

	"github.com/finboard/finboard/internal/database"
	"github.com/finboard/finboard/internal/test_utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepository(t *testing.T) *LayoutRepositoryImpl {
	return NewLayoutRepository(test_utils.SetupTestDB(t), database.DriverSQLite)
}

func TestLayoutRepository(t *testing.T) {
	ctx := test_utils.UserContext()
	uid := test_utils.TestUserUid

	t.Run("should return not found for new user", func(t *testing.T) {
		repo := setupRepository(t)

		_, err := repo.Get(ctx, uid)

		assert.ErrorIs(t, err, ErrLayoutNotFound)
	})

	t.Run("should store and read layout", func(t *testing.T) {
		repo := setupRepository(t)
		layout := StoredLayout{
			Order:          []WidgetId{SpendingChart, BalanceOverview},
			Visible:        []WidgetId{SpendingChart},
			PinnedAccounts: []string{"a2", "a1"},
			UpdatedAt:      now,
		}

		require.NoError(t, repo.Store(ctx, uid, layout))
		stored, err := repo.Get(ctx, uid)

		require.NoError(t, err)
		assert.Equal(t, layout.Order, stored.Order)
		assert.Equal(t, layout.Visible, stored.Visible)
		assert.Equal(t, layout.PinnedAccounts, stored.PinnedAccounts)
		assert.True(t, now.Equal(stored.UpdatedAt), "got %v", stored.UpdatedAt)
	})

	t.Run("should overwrite existing layout", func(t *testing.T) {
		repo := setupRepository(t)
		require.NoError(t, repo.Store(ctx, uid, StoredLayout{Order: []WidgetId{BalanceOverview}, UpdatedAt: now}))

		require.NoError(t, repo.Store(ctx, uid, StoredLayout{Order: []WidgetId{MonthlyStatus}, UpdatedAt: now.Add(time.Minute), Revision: 1}))
		stored, err := repo.Get(ctx, uid)

		require.NoError(t, err)
		assert.Equal(t, int64(2), stored.Revision)
		assert.Equal(t, []WidgetId{MonthlyStatus}, stored.Order)
		assert.Empty(t, stored.Visible)
		assert.NotNil(t, stored.Visible)
		assert.True(t, now.Add(time.Minute).Equal(stored.UpdatedAt))
	})

	t.Run("should reject a write based on an outdated revision", func(t *testing.T) {
		repo := setupRepository(t)
		require.NoError(t, repo.Store(ctx, uid, StoredLayout{Order: []WidgetId{BalanceOverview}, UpdatedAt: now}))
		require.NoError(t, repo.Store(ctx, uid, StoredLayout{Order: []WidgetId{SpendingChart}, UpdatedAt: now, Revision: 1}))

		err := repo.Store(ctx, uid, StoredLayout{Order: []WidgetId{MonthlyStatus}, UpdatedAt: now, Revision: 1})
		assert.ErrorIs(t, err, ErrLayoutConflict)
		err = repo.Store(ctx, uid, StoredLayout{Order: []WidgetId{MonthlyStatus}, UpdatedAt: now})
		assert.ErrorIs(t, err, ErrLayoutConflict)

		stored, err := repo.Get(ctx, uid)
		require.NoError(t, err)
		assert.Equal(t, []WidgetId{SpendingChart}, stored.Order)
	})

	t.Run("should reject an update of a deleted layout", func(t *testing.T) {
		repo := setupRepository(t)
		require.NoError(t, repo.Store(ctx, uid, StoredLayout{Order: []WidgetId{BalanceOverview}, UpdatedAt: now}))
		_, err := repo.Delete(ctx, uid)
		require.NoError(t, err)

		err = repo.Store(ctx, uid, StoredLayout{Order: []WidgetId{MonthlyStatus}, UpdatedAt: now, Revision: 1})

		assert.ErrorIs(t, err, ErrLayoutConflict)
	})

	t.Run("should keep users apart", func(t *testing.T) {
		repo := setupRepository(t)
		require.NoError(t, repo.Store(ctx, "other", StoredLayout{Order: []WidgetId{BalanceOverview}, UpdatedAt: now}))

		_, err := repo.Get(ctx, uid)

		assert.ErrorIs(t, err, ErrLayoutNotFound)
	})

	t.Run("should delete layout", func(t *testing.T) {
		repo := setupRepository(t)
		require.NoError(t, repo.Store(ctx, uid, StoredLayout{Order: []WidgetId{BalanceOverview}, UpdatedAt: now}))

		deleted, err := repo.Delete(ctx, uid)
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = repo.Delete(ctx, uid)
		require.NoError(t, err)
		assert.False(t, deleted)
		_, err = repo.Get(ctx, uid)
		assert.ErrorIs(t, err, ErrLayoutNotFound)
	})
}
