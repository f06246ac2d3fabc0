package dashboard

import (
	"context"
	"slices"
	"sync"
)

// LayoutRepositoryStub is an in-memory LayoutRepository.
type LayoutRepositoryStub struct {
	mu      sync.Mutex
	layouts map[string]StoredLayout
	// StoreErr makes every Store call fail.
	StoreErr error
	// BeforeStore runs at the start of Store, outside the lock.
	BeforeStore func()
}

func NewLayoutRepositoryStub() *LayoutRepositoryStub {
	return &LayoutRepositoryStub{layouts: map[string]StoredLayout{}}
}

func (r *LayoutRepositoryStub) Get(ctx context.Context, userUid string) (StoredLayout, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	layout, ok := r.layouts[userUid]
	if !ok {
		return StoredLayout{}, ErrLayoutNotFound
	}
	return clone(layout), nil
}

func (r *LayoutRepositoryStub) Store(ctx context.Context, userUid string, layout StoredLayout) error {
	if hook := r.BeforeStore; hook != nil {
		r.BeforeStore = nil
		hook()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.StoreErr != nil {
		return r.StoreErr
	}
	if r.layouts[userUid].Revision != layout.Revision {
		return ErrLayoutConflict
	}
	layout.Revision++
	r.layouts[userUid] = clone(layout)
	return nil
}

func (r *LayoutRepositoryStub) Delete(ctx context.Context, userUid string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.layouts[userUid]
	delete(r.layouts, userUid)
	return ok, nil
}

func clone(l StoredLayout) StoredLayout {
	return StoredLayout{
		Order:          slices.Clone(l.Order),
		Visible:        slices.Clone(l.Visible),
		PinnedAccounts: slices.Clone(l.PinnedAccounts),
		UpdatedAt:      l.UpdatedAt,
		Revision:       l.Revision,
	}
}
