package recurring

import (
	"context"

	"github.com/finboard/finboard/internal/event_bus"
)

const domain = "recurring"

// Service manages the recurring transactions of the user in ctx through the finance API.
type Service interface {
	List(ctx context.Context) ([]RecurringTransaction, error)
	Create(ctx context.Context, transaction RecurringTransaction) (RecurringTransaction, error)
	Update(ctx context.Context, transaction RecurringTransaction) (RecurringTransaction, error)
	Delete(ctx context.Context, id string) error
	SetActive(ctx context.Context, id string, active bool) (RecurringTransaction, error)
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

func (s *ServiceImpl) List(ctx context.Context) ([]RecurringTransaction, error) {
	return s.client.List(ctx)
}

// Create validates the new RecurringTransaction before sending it.
func (s *ServiceImpl) Create(ctx context.Context, transaction RecurringTransaction) (RecurringTransaction, error) {
	if err := transaction.Validate(); err != nil {
		return RecurringTransaction{}, err
	}
	created, err := s.client.Create(ctx, transaction)
	if err != nil {
		return RecurringTransaction{}, err
	}
	event_bus.PublishChange(s.eventBus, ctx, domain, "create", created.Id)
	return created, nil
}

func (s *ServiceImpl) Update(ctx context.Context, transaction RecurringTransaction) (RecurringTransaction, error) {
	if err := transaction.Validate(); err != nil {
		return RecurringTransaction{}, err
	}
	updated, err := s.client.Update(ctx, transaction)
	if err != nil {
		return RecurringTransaction{}, err
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

// SetActive pauses or resumes a transaction.
func (s *ServiceImpl) SetActive(ctx context.Context, id string, active bool) (RecurringTransaction, error) {
	updated, err := s.client.SetActive(ctx, id, active)
	if err != nil {
		return RecurringTransaction{}, err
	}
	action := "deactivate"
	if active {
		action = "activate"
	}
	event_bus.PublishChange(s.eventBus, ctx, domain, action, id)
	return updated, nil
}
