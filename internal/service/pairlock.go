package service

import (
	"sync"

	"github.com/wager-duel-backend/internal/models"
)

// pairLocks hands out one mutex per unordered player pair. HTTP calls
// overlap, so the read-modify-write sequences in StartGame and Respond
// need a per-pair exclusive section to keep settlement exactly-once.
type pairLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newPairLocks() *pairLocks {
	return &pairLocks{
		locks: make(map[string]*sync.Mutex),
	}
}

// lock acquires the mutex for the unordered pair and returns its
// unlock function.
func (p *pairLocks) lock(a, b string) func() {
	a, b = models.SortPair(a, b)
	key := a + "\x00" + b

	p.mu.Lock()
	m, ok := p.locks[key]
	if !ok {
		m = &sync.Mutex{}
		p.locks[key] = m
	}
	p.mu.Unlock()

	m.Lock()
	return m.Unlock
}
