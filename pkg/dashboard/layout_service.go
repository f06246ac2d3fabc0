package dashboard

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/finboard/finboard/internal/event_bus"
	"github.com/finboard/finboard/internal/utils"
	"github.com/finboard/finboard/pkg/user"
	log "github.com/sirupsen/logrus"
)

// maxLayoutAttempts bounds the retries of an update that lost a concurrent write.
const maxLayoutAttempts = 3

// LayoutService reads and changes the dashboard layout of the user in ctx.
type LayoutService interface {
	GetLayout(ctx context.Context) (Layout, error)
	Reorder(ctx context.Context, activeId, overId WidgetId) (Layout, error)
	MoveWidgetAfter(ctx context.Context, widgetId, precedingId WidgetId) (Layout, error)
	SaveVisibleWidgets(ctx context.Context, ids []WidgetId) (Layout, error)
	SavePinnedAccounts(ctx context.Context, accountIds []string) (Layout, error)
	Reset(ctx context.Context) (Layout, error)
}

// LayoutServiceImpl persists layout changes and announces them as LayoutUpdated.
type LayoutServiceImpl struct {
	repo     LayoutRepository
	registry *Registry
	eventBus *event_bus.EventBus
	clock    utils.Clock
}

// NewLayoutService publishes layout changes on eventBus when it is not nil.
func NewLayoutService(repo LayoutRepository, registry *Registry, eventBus *event_bus.EventBus, clock utils.Clock) *LayoutServiceImpl {
	return &LayoutServiceImpl{repo: repo, registry: registry, eventBus: eventBus, clock: clock}
}

// GetLayout returns the user's layout merged with the registry defaults.
func (s *LayoutServiceImpl) GetLayout(ctx context.Context) (Layout, error) {
	userUid, err := user.CurrentUid(ctx)
	if err != nil {
		return Layout{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.load(ctx, userUid)
}

func (s *LayoutServiceImpl) load(ctx context.Context, userUid string) (Layout, error) {
	stored, err := s.repo.Get(ctx, userUid)
	if errors.Is(err, ErrLayoutNotFound) {
		return Merge(s.registry, nil), nil
	}
	if err != nil {
		return Layout{}, err
	}
	return Merge(s.registry, &stored), nil
}

// Reorder handles the end of a drag: the dragged widget and the one it was
// dropped over swap places. Dropping a widget on itself changes nothing.
func (s *LayoutServiceImpl) Reorder(ctx context.Context, activeId, overId WidgetId) (Layout, error) {
	if err := s.registry.Validate(activeId, overId); err != nil {
		return Layout{}, err
	}
	return s.update(ctx, func(layout *Layout) bool {
		var changed bool
		layout.Order, changed = Swap(layout.Order, activeId, overId)
		return changed
	})
}

// MoveWidgetAfter places widgetId right after precedingId, or first when precedingId is empty.
func (s *LayoutServiceImpl) MoveWidgetAfter(ctx context.Context, widgetId, precedingId WidgetId) (Layout, error) {
	if err := s.registry.Validate(widgetId); err != nil {
		return Layout{}, err
	}
	if precedingId != "" {
		if err := s.registry.Validate(precedingId); err != nil {
			return Layout{}, err
		}
	}
	return s.update(ctx, func(layout *Layout) bool {
		var changed bool
		layout.Order, changed = MoveAfter(layout.Order, widgetId, precedingId)
		return changed
	})
}

// SaveVisibleWidgets replaces the set of visible widgets.
func (s *LayoutServiceImpl) SaveVisibleWidgets(ctx context.Context, ids []WidgetId) (Layout, error) {
	if err := s.registry.Validate(ids...); err != nil {
		return Layout{}, err
	}
	visible := dedupe(ids)
	return s.update(ctx, func(layout *Layout) bool {
		changed := !slices.Equal(layout.Visible, visible)
		layout.Visible = visible
		return changed || !layout.Customized
	})
}

// SavePinnedAccounts replaces the accounts shown in the summary row, in the given order.
func (s *LayoutServiceImpl) SavePinnedAccounts(ctx context.Context, accountIds []string) (Layout, error) {
	pinned := dedupe(accountIds)
	if slices.Contains(pinned, "") {
		return Layout{}, fmt.Errorf("%w: empty account id", ErrInvalidLayout)
	}
	return s.update(ctx, func(layout *Layout) bool {
		changed := !slices.Equal(layout.PinnedAccounts, pinned)
		layout.PinnedAccounts = pinned
		return changed || !layout.Customized
	})
}

// Reset drops the stored preference, going back to the registry defaults.
func (s *LayoutServiceImpl) Reset(ctx context.Context) (Layout, error) {
	userUid, err := user.CurrentUid(ctx)
	if err != nil {
		return Layout{}, fmt.Errorf("failed to get current user: %w", err)
	}
	deleted, err := s.repo.Delete(ctx, userUid)
	if err != nil {
		return Layout{}, err
	}
	layout := Merge(s.registry, nil)
	if deleted {
		log.Infof("dashboard layout of %s reset to defaults", userUid)
		s.publish(ctx, userUid, layout)
	}
	return layout, nil
}

// update loads the merged layout, applies change and persists the result when
// change reports a modification. A write that raced with another one is
// retried on the fresh layout, so neither change is lost.
func (s *LayoutServiceImpl) update(ctx context.Context, change func(*Layout) bool) (Layout, error) {
	userUid, err := user.CurrentUid(ctx)
	if err != nil {
		return Layout{}, fmt.Errorf("failed to get current user: %w", err)
	}
	for attempt := 1; ; attempt++ {
		layout, err := s.load(ctx, userUid)
		if err != nil {
			return Layout{}, err
		}
		if !change(&layout) {
			return layout, nil
		}

		stored := layout.toStored()
		stored.UpdatedAt = s.clock.Now()
		err = s.repo.Store(ctx, userUid, stored)
		if errors.Is(err, ErrLayoutConflict) && attempt < maxLayoutAttempts {
			log.Debugf("dashboard layout of %s changed concurrently, retrying", userUid)
			continue
		}
		if err != nil {
			return Layout{}, err
		}
		stored.Revision++
		updated := Merge(s.registry, &stored)
		s.publish(ctx, userUid, updated)
		return updated, nil
	}
}

func (s *LayoutServiceImpl) publish(ctx context.Context, userUid string, layout Layout) {
	if s.eventBus == nil {
		return
	}
	err := s.eventBus.Publish(event_bus.NewEvent(context.WithoutCancel(ctx), event_bus.LayoutUpdated, event_bus.DashboardLayoutUpdated{
		UserUid:        userUid,
		Order:          widgetIdStrings(layout.Order),
		Visible:        widgetIdStrings(layout.Visible),
		PinnedAccounts: slices.Clone(layout.PinnedAccounts),
	}))
	if err != nil {
		log.Errorf("failed to publish layout update of %s: %v", userUid, err)
	}
}

func widgetIdStrings(ids []WidgetId) []string {
	result := make([]string, len(ids))
	for i, id := range ids {
		result[i] = string(id)
	}
	return result
}
