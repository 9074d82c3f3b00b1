package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Lister reads up to limit catalog records from the store.
type Lister interface {
	ScrollAll(ctx context.Context, limit int) ([]Record, error)
}

// Snapshot is the in-memory name index used by the fuzzy fallback tier.
// It reloads from the store on an interval, so ingestion done by the loader
// process becomes visible without a restart.
type Snapshot struct {
	lister Lister
	limit  int
	log    *logrus.Entry

	mu     sync.RWMutex
	byName map[string]Record
}

func NewSnapshot(lister Lister, limit int) *Snapshot {
	if limit <= 0 {
		limit = 1000
	}
	return &Snapshot{
		lister: lister,
		limit:  limit,
		log:    logrus.WithField("component", "catalog-snapshot"),
		byName: map[string]Record{},
	}
}

// Refresh replaces the snapshot with the store's current contents.
func (s *Snapshot) Refresh(ctx context.Context) error {
	records, err := s.lister.ScrollAll(ctx, s.limit)
	if err != nil {
		return err
	}
	byName := make(map[string]Record, len(records))
	for _, r := range records {
		byName[r.Name] = r
	}

	s.mu.Lock()
	s.byName = byName
	s.mu.Unlock()

	s.log.WithField("records", len(byName)).Info("snapshot refreshed")
	return nil
}

// Run refreshes the snapshot every interval until ctx is done. A failed
// refresh keeps the previous snapshot.
func (s *Snapshot) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Refresh(ctx); err != nil {
				s.log.WithError(err).Warn("snapshot refresh failed")
			}
		}
	}
}

// Names returns all known catalog names.
func (s *Snapshot) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.byName))
	for name := range s.byName {
		names = append(names, name)
	}
	return names
}

// Get looks a record up by its exact name.
func (s *Snapshot) Get(name string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.byName[name]
	return r, ok
}
