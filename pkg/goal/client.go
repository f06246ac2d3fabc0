package goal

import (
	"context"
	"net/url"

	"github.com/finboard/finboard/internal/upstream"
)

type Client interface {
	List(ctx context.Context, status Status) ([]Goal, error)
	Get(ctx context.Context, id string) (Goal, error)
	Create(ctx context.Context, goal Goal) (Goal, error)
	Update(ctx context.Context, goal Goal) (Goal, error)
	Delete(ctx context.Context, id string) error
	AddProgress(ctx context.Context, id string, progress ProgressRequest) (Goal, error)
}

type ClientImpl struct {
	goals upstream.Resource[Goal]
}

func NewClient(api *upstream.Client) *ClientImpl {
	return &ClientImpl{goals: upstream.NewResource[Goal](api, "/goals")}
}

// List returns goals filtered by status; an empty status lists all of them.
func (c *ClientImpl) List(ctx context.Context, status Status) ([]Goal, error) {
	var query url.Values
	if status != "" {
		query = url.Values{"status": {string(status)}}
	}
	return c.goals.List(ctx, query)
}

func (c *ClientImpl) Get(ctx context.Context, id string) (Goal, error) {
	return c.goals.Get(ctx, id)
}

func (c *ClientImpl) Create(ctx context.Context, goal Goal) (Goal, error) {
	return c.goals.Create(ctx, goal)
}

func (c *ClientImpl) Update(ctx context.Context, goal Goal) (Goal, error) {
	return c.goals.Update(ctx, goal.Id, goal)
}

func (c *ClientImpl) Delete(ctx context.Context, id string) error {
	return c.goals.Delete(ctx, id)
}

func (c *ClientImpl) AddProgress(ctx context.Context, id string, progress ProgressRequest) (Goal, error) {
	return c.goals.Action(ctx, id, "progress", progress)
}
