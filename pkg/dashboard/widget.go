package dashboard

import (
	"errors"
	"fmt"
	"time"
)

// WidgetId identifies a widget in the registry and in stored layouts.
type WidgetId string

// State tells the client whether a widget can be drawn.
type State string

const (
	StateReady   State = "ready"
	StateLoading State = "loading"
	StateError   State = "error"
	StateEmpty   State = "empty"
)

var (
	ErrUnknownWidget = errors.New("unknown widget")
	ErrInvalidLayout = errors.New("invalid dashboard layout")
)

// WidgetContext is everything a widget may read to compute its props.
type WidgetContext struct {
	Result         Result
	PinnedAccounts []string
	Now            time.Time
}

// WidgetDefinition describes one dashboard panel. Select computes its props
// from the snapshot; the boolean reports whether there is anything to show.
type WidgetDefinition struct {
	Id             WidgetId     `json:"id"`
	Title          string       `json:"title"`
	Sources        []SourceName `json:"sources"`
	DefaultVisible bool         `json:"defaultVisible"`

	selectProps func(WidgetContext) (any, bool)
}

// NewWidget binds a typed prop selector to a widget definition.
func NewWidget[P any](id WidgetId, title string, defaultVisible bool, sources []SourceName, selector func(WidgetContext) (P, bool)) WidgetDefinition {
	return WidgetDefinition{
		Id:             id,
		Title:          title,
		Sources:        sources,
		DefaultVisible: defaultVisible,
		selectProps: func(wc WidgetContext) (any, bool) {
			return selector(wc)
		},
	}
}

// RenderedWidget is one widget of a Page with the props it is drawn with.
type RenderedWidget struct {
	Id    WidgetId `json:"id"`
	Title string   `json:"title"`
	State State    `json:"state"`
	Error string   `json:"error,omitempty"`
	Props any      `json:"props,omitempty"`
}

// Render resolves the widget state: error when one of its sources failed,
// loading on a critical baseline, empty when the selector found nothing to show.
func (d WidgetDefinition) Render(wc WidgetContext) RenderedWidget {
	rendered := RenderedWidget{Id: d.Id, Title: d.Title}
	for _, source := range d.Sources {
		if msg, failed := wc.Result.Failed(source); failed {
			rendered.State = StateError
			rendered.Error = msg
			return rendered
		}
	}
	if wc.Result.IsCritical() {
		rendered.State = StateLoading
		return rendered
	}

	props, ok := d.selectProps(wc)
	if !ok {
		rendered.State = StateEmpty
		return rendered
	}
	rendered.State = StateReady
	rendered.Props = props
	return rendered
}

// Registry is the catalogue of widgets a dashboard can show, in default order.
type Registry struct {
	definitions []WidgetDefinition
	byId        map[WidgetId]int
}

// NewRegistry fails on empty or duplicate ids and on widgets without a prop selector.
func NewRegistry(definitions ...WidgetDefinition) (*Registry, error) {
	r := &Registry{byId: make(map[WidgetId]int, len(definitions))}
	for _, d := range definitions {
		if d.Id == "" {
			return nil, errors.New("widget without id")
		}
		if _, exists := r.byId[d.Id]; exists {
			return nil, fmt.Errorf("duplicate widget id %q", d.Id)
		}
		if d.selectProps == nil {
			return nil, fmt.Errorf("widget %q has no prop selector", d.Id)
		}
		r.byId[d.Id] = len(r.definitions)
		r.definitions = append(r.definitions, d)
	}
	return r, nil
}

// Definitions returns the widgets in default order.
func (r *Registry) Definitions() []WidgetDefinition {
	return append([]WidgetDefinition(nil), r.definitions...)
}

func (r *Registry) Get(id WidgetId) (WidgetDefinition, bool) {
	idx, ok := r.byId[id]
	if !ok {
		return WidgetDefinition{}, false
	}
	return r.definitions[idx], true
}

func (r *Registry) Has(id WidgetId) bool {
	_, ok := r.byId[id]
	return ok
}

// DefaultOrder is the order of a user without a stored layout.
func (r *Registry) DefaultOrder() []WidgetId {
	ids := make([]WidgetId, 0, len(r.definitions))
	for _, d := range r.definitions {
		ids = append(ids, d.Id)
	}
	return ids
}

// DefaultVisible lists the widgets shown by default, in default order.
func (r *Registry) DefaultVisible() []WidgetId {
	ids := make([]WidgetId, 0, len(r.definitions))
	for _, d := range r.definitions {
		if d.DefaultVisible {
			ids = append(ids, d.Id)
		}
	}
	return ids
}

// Validate returns ErrUnknownWidget for the first id missing from the registry.
func (r *Registry) Validate(ids ...WidgetId) error {
	for _, id := range ids {
		if !r.Has(id) {
			return fmt.Errorf("%w: %q", ErrUnknownWidget, id)
		}
	}
	return nil
}
