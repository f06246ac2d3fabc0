package debt

import (
	"context"
	"fmt"

	"github.com/finboard/finboard/internal/event_bus"
	log "github.com/sirupsen/logrus"
)

const domain = "debt"

// Service manages the debts and loans of the user in ctx through the finance API.
type Service interface {
	List(ctx context.Context, debtType Type) ([]DebtAndLoan, error)
	Get(ctx context.Context, id string) (DebtAndLoan, error)
	Create(ctx context.Context, debt DebtAndLoan) (DebtAndLoan, error)
	Update(ctx context.Context, debt DebtAndLoan) (DebtAndLoan, error)
	Delete(ctx context.Context, id string) error
	RegisterPayment(ctx context.Context, id string, payment PaymentRequest) (DebtAndLoan, error)
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

// List filters by type; an empty type returns debts and loans.
func (s *ServiceImpl) List(ctx context.Context, debtType Type) ([]DebtAndLoan, error) {
	return s.client.List(ctx, debtType)
}

func (s *ServiceImpl) Get(ctx context.Context, id string) (DebtAndLoan, error) {
	return s.client.Get(ctx, id)
}

// Create validates the new DebtAndLoan before sending it.
func (s *ServiceImpl) Create(ctx context.Context, debt DebtAndLoan) (DebtAndLoan, error) {
	if debt.Status == "" {
		debt.Status = Pending
	}
	if err := debt.Validate(); err != nil {
		return DebtAndLoan{}, err
	}
	created, err := s.client.Create(ctx, debt)
	if err != nil {
		return DebtAndLoan{}, err
	}
	event_bus.PublishChange(s.eventBus, ctx, domain, "create", created.Id)
	return created, nil
}

func (s *ServiceImpl) Update(ctx context.Context, debt DebtAndLoan) (DebtAndLoan, error) {
	if err := debt.Validate(); err != nil {
		return DebtAndLoan{}, err
	}
	updated, err := s.client.Update(ctx, debt)
	if err != nil {
		return DebtAndLoan{}, err
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

// RegisterPayment rejects payments on closed items and payments above the
// remaining amount. The paying account changes too, so it is announced as well.
func (s *ServiceImpl) RegisterPayment(ctx context.Context, id string, payment PaymentRequest) (DebtAndLoan, error) {
	if err := payment.Validate(); err != nil {
		return DebtAndLoan{}, err
	}
	current, err := s.client.Get(ctx, id)
	if err != nil {
		return DebtAndLoan{}, err
	}
	if current.Status == Cancelled || current.IsSettled() {
		return DebtAndLoan{}, fmt.Errorf("%w: %s is already %s", ErrInvalidPayment, current.Type, current.DisplayStatus())
	}
	if payment.Amount.GreaterThan(current.Remaining()) {
		return DebtAndLoan{}, fmt.Errorf("%w: amount exceeds remaining %s", ErrInvalidPayment, current.Remaining())
	}

	updated, err := s.client.RegisterPayment(ctx, id, payment)
	if err != nil {
		return DebtAndLoan{}, err
	}
	log.Debugf("registered payment of %s on %s %s, remaining %s", payment.Amount, current.Type, id, updated.Remaining())
	event_bus.PublishChange(s.eventBus, ctx, domain, "payment", id)
	event_bus.PublishChange(s.eventBus, ctx, "account", "payment", payment.AccountId)
	return updated, nil
}
