package goal

import (
	"context"
	"fmt"

	"github.com/finboard/finboard/internal/event_bus"
	log "github.com/sirupsen/logrus"
)

const domain = "goal"

// Service manages the savings goals of the user in ctx through the finance API.
type Service interface {
	List(ctx context.Context, status Status) ([]Goal, error)
	Get(ctx context.Context, id string) (Goal, error)
	Create(ctx context.Context, goal Goal) (Goal, error)
	Update(ctx context.Context, goal Goal) (Goal, error)
	Delete(ctx context.Context, id string) error
	AddProgress(ctx context.Context, id string, progress ProgressRequest) (Goal, error)
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

// List filters by status; an empty status returns every goal.
func (s *ServiceImpl) List(ctx context.Context, status Status) ([]Goal, error) {
	return s.client.List(ctx, status)
}

func (s *ServiceImpl) Get(ctx context.Context, id string) (Goal, error) {
	return s.client.Get(ctx, id)
}

// Create validates the new Goal before sending it.
func (s *ServiceImpl) Create(ctx context.Context, goal Goal) (Goal, error) {
	if goal.Status == "" {
		goal.Status = Active
	}
	if err := goal.Validate(); err != nil {
		return Goal{}, err
	}
	created, err := s.client.Create(ctx, goal)
	if err != nil {
		return Goal{}, err
	}
	event_bus.PublishChange(s.eventBus, ctx, domain, "create", created.Id)
	return created, nil
}

func (s *ServiceImpl) Update(ctx context.Context, goal Goal) (Goal, error) {
	if err := goal.Validate(); err != nil {
		return Goal{}, err
	}
	updated, err := s.client.Update(ctx, goal)
	if err != nil {
		return Goal{}, err
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

// AddProgress adds money to an active goal. Both the goal and the debited
// account change, so the change is announced for both domains.
func (s *ServiceImpl) AddProgress(ctx context.Context, id string, progress ProgressRequest) (Goal, error) {
	if err := progress.Validate(); err != nil {
		return Goal{}, err
	}
	current, err := s.client.Get(ctx, id)
	if err != nil {
		return Goal{}, err
	}
	if current.Status != Active {
		return Goal{}, fmt.Errorf("%w: goal is %s", ErrInvalidProgress, current.Status)
	}

	updated, err := s.client.AddProgress(ctx, id, progress)
	if err != nil {
		return Goal{}, err
	}
	log.Debugf("added %s to goal %s, progress now %s%%", progress.Amount, id, updated.Progress())
	event_bus.PublishChange(s.eventBus, ctx, domain, "progress", id)
	event_bus.PublishChange(s.eventBus, ctx, "account", "debit", progress.AccountId)
	return updated, nil
}
