package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertExactlyOnce(t *testing.T, order []WidgetId, ids ...[]WidgetId) {
	t.Helper()
	counts := map[WidgetId]int{}
	for _, id := range order {
		counts[id]++
	}
	for _, list := range ids {
		for _, id := range list {
			assert.Equal(t, 1, counts[id], "widget %s", id)
		}
	}
	for id, count := range counts {
		assert.Equal(t, 1, count, "widget %s", id)
	}
}

func TestMerge(t *testing.T) {
	registry := DefaultRegistry()

	t.Run("should use defaults without stored preference", func(t *testing.T) {
		layout := Merge(registry, nil)

		assert.Equal(t, registry.DefaultOrder(), layout.Order)
		assert.Equal(t, registry.DefaultVisible(), layout.Visible)
		assert.NotNil(t, layout.PinnedAccounts)
		assert.False(t, layout.Customized)
		assert.Nil(t, layout.UpdatedAt)
	})

	t.Run("should include every default and stored id exactly once", func(t *testing.T) {
		stored := StoredLayout{
			Order:     []WidgetId{SavingsGoals, "retiredWidget", BalanceOverview, SavingsGoals, MonthlyStatus},
			Visible:   []WidgetId{SavingsGoals, BalanceOverview},
			UpdatedAt: now,
		}

		layout := Merge(registry, &stored)

		assertExactlyOnce(t, layout.Order, registry.DefaultOrder(), stored.Order)
		assert.Equal(t, []WidgetId{SavingsGoals, "retiredWidget", BalanceOverview, MonthlyStatus}, layout.Order[:4])
		assert.Len(t, layout.Order, len(registry.DefaultOrder())+1)
		assert.True(t, layout.Customized)
		require.NotNil(t, layout.UpdatedAt)
		assert.Equal(t, now, *layout.UpdatedAt)
	})

	t.Run("should append unseen widgets in default order with default visibility", func(t *testing.T) {
		stored := StoredLayout{
			Order:   []WidgetId{BudgetStatus, BalanceOverview},
			Visible: []WidgetId{BudgetStatus},
		}

		layout := Merge(registry, &stored)

		expectedOrder := []WidgetId{BudgetStatus, BalanceOverview}
		for _, id := range registry.DefaultOrder() {
			if id != BudgetStatus && id != BalanceOverview {
				expectedOrder = append(expectedOrder, id)
			}
		}
		assert.Equal(t, expectedOrder, layout.Order)
		assert.True(t, layout.IsVisible(BudgetStatus))
		assert.False(t, layout.IsVisible(BalanceOverview))
		assert.True(t, layout.IsVisible(MonthlyStatus))
		assert.False(t, layout.IsVisible(AccountsList))
	})

	t.Run("should dedupe pinned accounts keeping their order", func(t *testing.T) {
		stored := StoredLayout{PinnedAccounts: []string{"a2", "a1", "a2"}}

		layout := Merge(registry, &stored)

		assert.Equal(t, []string{"a2", "a1"}, layout.PinnedAccounts)
	})
}

func TestLayout_VisibleInOrder(t *testing.T) {
	layout := Layout{
		Order:   []WidgetId{SpendingChart, BalanceOverview, MonthlyStatus},
		Visible: []WidgetId{MonthlyStatus, SpendingChart},
	}

	assert.Equal(t, []WidgetId{SpendingChart, MonthlyStatus}, layout.VisibleInOrder())
}

func TestLayout_Version(t *testing.T) {
	a := Layout{Order: []WidgetId{BalanceOverview, MonthlyStatus}, Visible: []WidgetId{BalanceOverview}}
	b := Layout{Order: []WidgetId{MonthlyStatus, BalanceOverview}, Visible: []WidgetId{BalanceOverview}}
	updated := time.Now()
	c := a
	c.UpdatedAt = &updated

	assert.NotEqual(t, a.Version(), b.Version())
	assert.Equal(t, a.Version(), c.Version())
	assert.Len(t, a.Version(), 16)
}

func TestSwap(t *testing.T) {
	order := []WidgetId{"a", "b", "c", "d"}

	t.Run("should swap dragged widget with drop target", func(t *testing.T) {
		swapped, changed := Swap(order, "a", "c")

		assert.True(t, changed)
		assert.Equal(t, []WidgetId{"c", "b", "a", "d"}, swapped)
		assert.Equal(t, []WidgetId{"a", "b", "c", "d"}, order)
	})

	t.Run("should not change when dropped on itself", func(t *testing.T) {
		swapped, changed := Swap(order, "b", "b")

		assert.False(t, changed)
		assert.Equal(t, order, swapped)
	})

	t.Run("should not change for unknown widget", func(t *testing.T) {
		_, changed := Swap(order, "a", "x")

		assert.False(t, changed)
	})
}

func TestMoveAfter(t *testing.T) {
	order := []WidgetId{"a", "b", "c", "d"}

	tests := []struct {
		name      string
		widget    WidgetId
		preceding WidgetId
		expected  []WidgetId
		changed   bool
	}{
		{"move forward", "a", "c", []WidgetId{"b", "c", "a", "d"}, true},
		{"move backward", "d", "a", []WidgetId{"a", "d", "b", "c"}, true},
		{"move to front", "c", "", []WidgetId{"c", "a", "b", "d"}, true},
		{"move to end", "b", "d", []WidgetId{"a", "c", "d", "b"}, true},
		{"already in place", "b", "a", order, false},
		{"already first", "a", "", order, false},
		{"after itself", "b", "b", order, false},
		{"unknown widget", "x", "a", order, false},
		{"unknown preceding", "a", "x", order, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			moved, changed := MoveAfter(order, tt.widget, tt.preceding)

			assert.Equal(t, tt.changed, changed)
			assert.Equal(t, tt.expected, moved)
			assertExactlyOnce(t, moved, order)
		})
	}
}
