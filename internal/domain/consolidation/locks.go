package consolidation

import (
	"sync"

	"github.com/google/uuid"
)

// siteLocks serializes consolidation runs per site so that two concurrent
// answers cannot both pass the "no existing FAQ matches" check and create
// divergent FAQs. Different sites proceed fully in parallel.
type siteLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func newSiteLocks() *siteLocks {
	return &siteLocks{locks: make(map[uuid.UUID]*sync.Mutex)}
}

func (l *siteLocks) forSite(siteID uuid.UUID) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	lock, ok := l.locks[siteID]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[siteID] = lock
	}
	return lock
}
