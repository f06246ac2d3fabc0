package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/finboard/finboard/internal/cache"
	"github.com/finboard/finboard/internal/config"
	"github.com/finboard/finboard/internal/event_bus"
	"github.com/finboard/finboard/internal/utils"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Snapshot is a versioned aggregator result. The version changes only when the
// content does, so it can be used as an ETag.
type Snapshot struct {
	Version   string    `json:"version"`
	Result    Result    `json:"result"`
	CreatedAt time.Time `json:"createdAt"`

	fingerprint []byte
	stale       bool
}

// SnapshotStore keeps the last snapshot of each user.
//
// Two results are equal when the canonical JSON encoding of their data, their
// error maps and their critical message are byte-identical. encoding/json
// writes struct fields in declaration order and map keys sorted, which makes
// the encoding canonical for Result.
//
// Every invalidation bumps the user's generation. A fetch records the
// generation it started at, and a result published after an invalidation is
// stored stale so the next request fetches again.
type SnapshotStore struct {
	mu          sync.Mutex
	snapshots   *cache.LRUCache[Snapshot]
	generations map[string]uint64
	clock       utils.Clock
}

// NewSnapshotStore keeps up to cfg.SnapshotCacheSize snapshots for cfg.SnapshotTTL.
func NewSnapshotStore(cfg config.Dashboard, clock utils.Clock) *SnapshotStore {
	return &SnapshotStore{
		snapshots:   cache.NewLRUCache[Snapshot](cfg.SnapshotCacheSize, cfg.SnapshotTTL, clock),
		generations: make(map[string]uint64),
		clock:       clock,
	}
}

// Generation is the user's invalidation counter. Read it before fetching and
// hand it to Publish.
func (s *SnapshotStore) Generation(userUid string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generations[userUid]
}

// Get returns the user's snapshot unless it is missing, expired or invalidated.
func (s *SnapshotStore) Get(userUid string) (Snapshot, bool) {
	snapshot, ok := s.snapshots.Get(userUid)
	if !ok || snapshot.stale {
		return Snapshot{}, false
	}
	return snapshot, true
}

// Publish stores result as the user's latest snapshot. When it equals the
// previous one, the previous snapshot and its version are kept. A result
// fetched at an older generation is returned but stored stale.
func (s *SnapshotStore) Publish(userUid string, generation uint64, result Result) Snapshot {
	fingerprint := Fingerprint(result)

	s.mu.Lock()
	defer s.mu.Unlock()
	stale := s.generations[userUid] != generation
	if stale {
		log.Debugf("dashboard snapshot of %s changed while fetching, storing it stale", userUid)
	}
	if previous, ok := s.snapshots.Get(userUid); ok && bytes.Equal(previous.fingerprint, fingerprint) {
		previous.stale = stale
		s.snapshots.Set(userUid, previous)
		return previous
	}

	snapshot := Snapshot{
		Version:     uuid.NewString(),
		Result:      result,
		CreatedAt:   s.clock.Now(),
		fingerprint: fingerprint,
		stale:       stale,
	}
	s.snapshots.Set(userUid, snapshot)
	return snapshot
}

// Invalidate forces the next dashboard request of the user to fetch again,
// including a fetch that is already running.
// The stale snapshot is kept so an unchanged refetch keeps its version.
func (s *SnapshotStore) Invalidate(userUid string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generations[userUid]++
	snapshot, ok := s.snapshots.Get(userUid)
	if !ok {
		return
	}
	snapshot.stale = true
	s.snapshots.Set(userUid, snapshot)
}

// Sweep drops expired snapshots every interval until ctx is done.
func (s *SnapshotStore) Sweep(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *SnapshotStore) sweep() int {
	removed := s.snapshots.CleanExpired()
	if removed > 0 {
		log.Debugf("dropped %d expired dashboard snapshots, %d left", removed, s.snapshots.Size())
	}
	return removed
}

// InvalidateOn marks a user's snapshot stale whenever their finance data changes.
func (s *SnapshotStore) InvalidateOn(bus *event_bus.EventBus) {
	event_bus.SubscribeTyped(bus, event_bus.FinanceDataChanged, func(e event_bus.TypedEvent[event_bus.FinanceDataChange]) error {
		log.Debugf("invalidating dashboard snapshot of %s after %s %s", e.Payload.UserUid, e.Payload.Domain, e.Payload.Action)
		s.Invalidate(e.Payload.UserUid)
		return nil
	})
}

// Fingerprint is the canonical encoding used for equality. Loading flags are
// left out since they are all false on a settled result.
func Fingerprint(r Result) []byte {
	errs := r.Errors
	if errs == nil {
		errs = map[SourceName]string{}
	}
	encoded, err := json.Marshal(struct {
		Data     Data                  `json:"data"`
		Errors   map[SourceName]string `json:"errors"`
		Critical string                `json:"critical"`
	}{r.Data, errs, r.Critical})
	if err != nil {
		// a random fingerprint never matches, so the result gets a new version
		log.Errorf("failed to encode dashboard result: %v", err)
		return []byte(uuid.NewString())
	}
	return encoded
}
