package upstream

import (
	"context"
	"net/url"
)

// Resource is a REST collection of the finance API exposing the usual CRUD calls.
type Resource[T any] struct {
	client *Client
	path   string
}

func NewResource[T any](client *Client, path string) Resource[T] {
	return Resource[T]{client: client, path: path}
}

func (r Resource[T]) List(ctx context.Context, query url.Values) ([]T, error) {
	var items []T
	if err := r.client.Get(ctx, r.path, query, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (r Resource[T]) Get(ctx context.Context, id string) (T, error) {
	var item T
	err := r.client.Get(ctx, r.itemPath(id), nil, &item)
	return item, err
}

func (r Resource[T]) Create(ctx context.Context, item T) (T, error) {
	var created T
	err := r.client.Post(ctx, r.path, item, &created)
	return created, err
}

func (r Resource[T]) Update(ctx context.Context, id string, item T) (T, error) {
	var updated T
	err := r.client.Put(ctx, r.itemPath(id), item, &updated)
	return updated, err
}

func (r Resource[T]) Delete(ctx context.Context, id string) error {
	return r.client.Delete(ctx, r.itemPath(id))
}

// Action posts body to a sub-path of an item, e.g. /goals/{id}/progress.
func (r Resource[T]) Action(ctx context.Context, id string, action string, body any) (T, error) {
	var result T
	err := r.client.Post(ctx, r.itemPath(id)+"/"+action, body, &result)
	return result, err
}

func (r Resource[T]) itemPath(id string) string {
	return r.path + "/" + url.PathEscape(id)
}
