package investment

import (
	"context"

	"github.com/finboard/finboard/internal/event_bus"
)

const domain = "investment"

// Service manages the investments of the user in ctx through the finance API.
type Service interface {
	List(ctx context.Context) ([]Investment, error)
	Get(ctx context.Context, id string) (Investment, error)
	Create(ctx context.Context, investment Investment) (Investment, error)
	Update(ctx context.Context, investment Investment) (Investment, error)
	Delete(ctx context.Context, id string) error
	Highlights(ctx context.Context) (Highlights, error)
}

// ServiceImpl validates writes, forwards them to the finance API and
// announces every successful write as a FinanceDataChanged event.
type ServiceImpl struct {
	client   Client
	eventBus *event_bus.EventBus
}

func NewService(client Client, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{client: client, eventBus: eventBus}
}

func (s *ServiceImpl) List(ctx context.Context) ([]Investment, error) {
	return s.client.List(ctx)
}

func (s *ServiceImpl) Get(ctx context.Context, id string) (Investment, error) {
	return s.client.Get(ctx, id)
}

// Create validates the new Investment before sending it.
func (s *ServiceImpl) Create(ctx context.Context, investment Investment) (Investment, error) {
	if err := investment.Validate(); err != nil {
		return Investment{}, err
	}
	created, err := s.client.Create(ctx, investment)
	if err != nil {
		return Investment{}, err
	}
	event_bus.PublishChange(s.eventBus, ctx, domain, "create", created.Id)
	return created, nil
}

func (s *ServiceImpl) Update(ctx context.Context, investment Investment) (Investment, error) {
	if err := investment.Validate(); err != nil {
		return Investment{}, err
	}
	updated, err := s.client.Update(ctx, investment)
	if err != nil {
		return Investment{}, err
	}
	event_bus.PublishChange(s.eventBus, ctx, domain, "update", updated.Id)
	return updated, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.client.Delete(ctx, id); err != nil {
		return err
	}
	event_bus.PublishChange(s.eventBus, ctx, domain, "delete", id)
	return nil
}

// Highlights summarizes the portfolio for the dashboard.
func (s *ServiceImpl) Highlights(ctx context.Context) (Highlights, error) {
	return s.client.Highlights(ctx)
}
