package dashboard

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"slices"
	"time"
)

// StoredLayout is a user's persisted dashboard preference. Revision counts
// the writes; zero means nothing is stored yet.
type StoredLayout struct {
	Order          []WidgetId
	Visible        []WidgetId
	PinnedAccounts []string
	UpdatedAt      time.Time
	Revision       int64
}

// Layout is the preference merged with the registry: what the user actually sees.
type Layout struct {
	Order          []WidgetId `json:"order"`
	Visible        []WidgetId `json:"visible"`
	PinnedAccounts []string   `json:"pinnedAccounts"`
	Customized     bool       `json:"customized"`
	UpdatedAt      *time.Time `json:"updatedAt,omitempty"`

	revision int64
}

// IsVisible reports whether id is among the visible widgets.
func (l Layout) IsVisible(id WidgetId) bool {
	return slices.Contains(l.Visible, id)
}

// VisibleInOrder returns the visible widgets following Order.
func (l Layout) VisibleInOrder() []WidgetId {
	ids := make([]WidgetId, 0, len(l.Visible))
	for _, id := range l.Order {
		if l.IsVisible(id) {
			ids = append(ids, id)
		}
	}
	return ids
}

// Version is a short hash of what the layout renders: order, visibility and pinned accounts.
func (l Layout) Version() string {
	encoded, _ := json.Marshal([]any{l.Order, l.Visible, l.PinnedAccounts})
	h := fnv.New64a()
	_, _ = h.Write(encoded)
	return fmt.Sprintf("%016x", h.Sum64())
}

func (l Layout) toStored() StoredLayout {
	return StoredLayout{
		Order:          slices.Clone(l.Order),
		Visible:        slices.Clone(l.Visible),
		PinnedAccounts: slices.Clone(l.PinnedAccounts),
		Revision:       l.revision,
	}
}

// Merge combines the registry defaults with a stored preference. The order
// holds every id of the default order and of the stored order exactly once:
// stored ids first in stored order, then registry ids the user has never
// seen, in default order. Ids the registry no longer knows are kept so the
// preference survives a catalogue change; they are skipped when rendering.
// Widgets new to the user get their default visibility.
func Merge(registry *Registry, stored *StoredLayout) Layout {
	if stored == nil {
		return Layout{
			Order:          registry.DefaultOrder(),
			Visible:        registry.DefaultVisible(),
			PinnedAccounts: []string{},
		}
	}

	order := dedupe(stored.Order)
	seen := make(map[WidgetId]bool, len(order))
	for _, id := range order {
		seen[id] = true
	}

	visible := dedupe(stored.Visible)
	for _, d := range registry.Definitions() {
		if seen[d.Id] {
			continue
		}
		order = append(order, d.Id)
		if d.DefaultVisible && !slices.Contains(visible, d.Id) {
			visible = append(visible, d.Id)
		}
	}

	updatedAt := stored.UpdatedAt
	return Layout{
		Order:          order,
		Visible:        visible,
		PinnedAccounts: dedupe(stored.PinnedAccounts),
		Customized:     true,
		UpdatedAt:      &updatedAt,
		revision:       stored.Revision,
	}
}

// Swap exchanges the positions of two widgets, the way the grid behaves when
// one widget is dropped over another. It reports whether the order changed.
func Swap(order []WidgetId, activeId, overId WidgetId) ([]WidgetId, bool) {
	if activeId == overId {
		return order, false
	}
	activeIdx := slices.Index(order, activeId)
	overIdx := slices.Index(order, overId)
	if activeIdx == -1 || overIdx == -1 {
		return order, false
	}
	swapped := slices.Clone(order)
	swapped[activeIdx], swapped[overIdx] = swapped[overIdx], swapped[activeIdx]
	return swapped, true
}

// MoveAfter moves widgetId right after precedingId, or to the front when
// precedingId is empty. It reports whether the order changed.
func MoveAfter(order []WidgetId, widgetId, precedingId WidgetId) ([]WidgetId, bool) {
	itemIdx := slices.Index(order, widgetId)
	if itemIdx == -1 || widgetId == precedingId {
		return order, false
	}
	if precedingId != "" && !slices.Contains(order, precedingId) {
		return order, false
	}

	moved := slices.Delete(slices.Clone(order), itemIdx, itemIdx+1)
	insertAt := 0
	if precedingId != "" {
		insertAt = slices.Index(moved, precedingId) + 1
	}
	moved = slices.Insert(moved, insertAt, widgetId)
	return moved, !slices.Equal(moved, order)
}

func dedupe[T comparable](ids []T) []T {
	result := make([]T, 0, len(ids))
	seen := make(map[T]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		result = append(result, id)
	}
	return result
}
