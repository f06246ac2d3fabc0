package account

import (
	"context"

	"github.com/finboard/finboard/internal/event_bus"
)

const domain = "account"

// Service manages the accounts of the user in ctx through the finance API.
type Service interface {
	List(ctx context.Context) ([]Account, error)
	Get(ctx context.Context, id string) (Account, error)
	Create(ctx context.Context, account Account) (Account, error)
	Update(ctx context.Context, account Account) (Account, error)
	Delete(ctx context.Context, id string) error
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

func (s *ServiceImpl) List(ctx context.Context) ([]Account, error) {
	return s.client.List(ctx)
}

func (s *ServiceImpl) Get(ctx context.Context, id string) (Account, error) {
	return s.client.Get(ctx, id)
}

// Create validates the new Account before sending it.
func (s *ServiceImpl) Create(ctx context.Context, account Account) (Account, error) {
	if err := account.Validate(); err != nil {
		return Account{}, err
	}
	created, err := s.client.Create(ctx, account)
	if err != nil {
		return Account{}, err
	}
	event_bus.PublishChange(s.eventBus, ctx, domain, "create", created.Id)
	return created, nil
}

func (s *ServiceImpl) Update(ctx context.Context, account Account) (Account, error) {
	if err := account.Validate(); err != nil {
		return Account{}, err
	}
	updated, err := s.client.Update(ctx, account)
	if err != nil {
		return Account{}, err
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
