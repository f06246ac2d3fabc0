package goal

import (
	"context"
	"fmt"
	"sync"

	"github.com/finboard/finboard/internal/upstream"
)

type ClientStub struct {
	mu      sync.RWMutex
	goals   []Goal
	nextId  int
	ListErr error
}

func NewClientStub(goals ...Goal) *ClientStub {
	return &ClientStub{goals: goals}
}

func (c *ClientStub) List(ctx context.Context, status Status) ([]Goal, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.ListErr != nil {
		return nil, c.ListErr
	}
	result := make([]Goal, 0, len(c.goals))
	for _, g := range c.goals {
		if status == "" || g.Status == status {
			result = append(result, g)
		}
	}
	return result, nil
}

func (c *ClientStub) Get(ctx context.Context, id string) (Goal, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	idx := c.find(id)
	if idx == -1 {
		return Goal{}, notFound()
	}
	return c.goals[idx], nil
}

func (c *ClientStub) Create(ctx context.Context, goal Goal) (Goal, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextId++
	goal.Id = fmt.Sprintf("goal-%d", c.nextId)
	if goal.Status == "" {
		goal.Status = Active
	}
	c.goals = append(c.goals, goal)
	return goal, nil
}

func (c *ClientStub) Update(ctx context.Context, goal Goal) (Goal, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx := c.find(goal.Id)
	if idx == -1 {
		return Goal{}, notFound()
	}
	c.goals[idx] = goal
	return goal, nil
}

func (c *ClientStub) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx := c.find(id)
	if idx == -1 {
		return notFound()
	}
	c.goals = append(c.goals[:idx], c.goals[idx+1:]...)
	return nil
}

func (c *ClientStub) AddProgress(ctx context.Context, id string, progress ProgressRequest) (Goal, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx := c.find(id)
	if idx == -1 {
		return Goal{}, notFound()
	}
	g := c.goals[idx]
	g.CurrentAmount = g.CurrentAmount.Add(progress.Amount)
	if g.IsReached() {
		g.Status = Completed
	}
	c.goals[idx] = g
	return g, nil
}

func (c *ClientStub) find(id string) int {
	for i, g := range c.goals {
		if g.Id == id {
			return i
		}
	}
	return -1
}

func notFound() error {
	return &upstream.APIError{Status: 404, Message: "goal not found"}
}
