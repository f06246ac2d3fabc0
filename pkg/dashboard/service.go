package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/finboard/finboard/internal/utils"
	"github.com/finboard/finboard/pkg/user"
	log "github.com/sirupsen/logrus"
)

// Page is the rendered dashboard: the visible widgets in layout order.
type Page struct {
	// Version identifies the data snapshot, LayoutVersion the layout it was rendered with.
	// RenderedOn is the day the relative dates ("in 3 days") were computed for.
	Version        string                `json:"version"`
	LayoutVersion  string                `json:"layoutVersion"`
	RenderedOn     string                `json:"renderedOn"`
	Widgets        []RenderedWidget      `json:"widgets"`
	Loading        map[string]bool       `json:"loading"`
	Errors         map[SourceName]string `json:"errors"`
	Critical       string                `json:"critical,omitempty"`
	PinnedAccounts []string              `json:"pinnedAccounts"`
}

// Service renders the dashboard of the user in ctx.
type Service interface {
	GetDashboard(ctx context.Context, forceRefresh bool) (Page, error)
	Widgets() []WidgetDefinition
}

// ServiceImpl renders pages from the latest snapshot and the user's layout.
type ServiceImpl struct {
	aggregator *Aggregator
	snapshots  *SnapshotStore
	layouts    LayoutService
	registry   *Registry
	clock      utils.Clock
}

func NewService(aggregator *Aggregator, snapshots *SnapshotStore, layouts LayoutService, registry *Registry, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{
		aggregator: aggregator,
		snapshots:  snapshots,
		layouts:    layouts,
		registry:   registry,
		clock:      clock,
	}
}

// Widgets lists the registry definitions in default order.
func (s *ServiceImpl) Widgets() []WidgetDefinition {
	return s.registry.Definitions()
}

// GetDashboard renders the page, fetching a new snapshot when the cached one
// is missing, stale or forceRefresh is set.
func (s *ServiceImpl) GetDashboard(ctx context.Context, forceRefresh bool) (Page, error) {
	userUid, err := user.CurrentUid(ctx)
	if err != nil {
		return Page{}, fmt.Errorf("failed to get current user: %w", err)
	}
	layout, err := s.layouts.GetLayout(ctx)
	if err != nil {
		return Page{}, err
	}
	snapshot := s.snapshot(ctx, userUid, forceRefresh)

	now := s.clock.Now()
	wc := WidgetContext{
		Result:         snapshot.Result,
		PinnedAccounts: layout.PinnedAccounts,
		Now:            now,
	}
	widgets := make([]RenderedWidget, 0, len(layout.Visible))
	for _, id := range layout.VisibleInOrder() {
		definition, ok := s.registry.Get(id)
		if !ok {
			continue
		}
		widgets = append(widgets, definition.Render(wc))
	}

	return Page{
		Version:        snapshot.Version,
		LayoutVersion:  layout.Version(),
		RenderedOn:     now.Format(time.DateOnly),
		Widgets:        widgets,
		Loading:        snapshot.Result.Loading,
		Errors:         snapshot.Result.Errors,
		Critical:       snapshot.Result.Critical,
		PinnedAccounts: layout.PinnedAccounts,
	}, nil
}

// ETag identifies the page content. Empty when the page must not be cached.
// Widgets show day counts, so the same snapshot renders differently the next day.
func (p Page) ETag() string {
	if p.Version == "" {
		return ""
	}
	return fmt.Sprintf(`"%s-%s-%s"`, p.Version, p.LayoutVersion, p.RenderedOn)
}

func (s *ServiceImpl) snapshot(ctx context.Context, userUid string, forceRefresh bool) Snapshot {
	if !forceRefresh {
		if snapshot, ok := s.snapshots.Get(userUid); ok {
			log.Debugf("serving dashboard snapshot %s of %s", snapshot.Version, userUid)
			return snapshot
		}
	}
	generation := s.snapshots.Generation(userUid)
	result := s.aggregator.Fetch(ctx)
	if result.IsCritical() {
		// a critical baseline is not remembered and carries no version, the next request retries
		return Snapshot{Result: result, CreatedAt: s.clock.Now()}
	}
	return s.snapshots.Publish(userUid, generation, result)
}
