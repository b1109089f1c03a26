package cart

import (
	"sync"
	"time"

	"github.com/brazcamiseteria/storefront/internal/domain"
	"github.com/shopspring/decimal"
)

// Store holds the ordered line items of one browsing session. All writes go
// through mu, so a Store can be shared by concurrent requests of the session.
type Store struct {
	mu         sync.RWMutex
	id         string
	items      []domain.LineItem
	total      decimal.Decimal
	lastActive time.Time
	now        func() time.Time
}

func NewStore(id string) *Store {
	return &Store{
		id:         id,
		total:      decimal.Zero,
		lastActive: time.Now(),
		now:        time.Now,
	}
}

func (s *Store) ID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.id
}

func (s *Store) rename(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.id = id
}

// Add appends item. The duplicate check is repeated under the lock so two
// racing adds of the same configuration cannot both land.
func (s *Store) Add(item domain.LineItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.items {
		if existing.SameConfiguration(item) {
			return domain.ErrDuplicateConfiguration
		}
	}
	s.items = append(s.items, item)
	s.changed()
	return nil
}

// Remove drops the item with the given id. Unknown ids are ignored.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, item := range s.items {
		if item.ID == id {
			s.items = append(s.items[:i:i], s.items[i+1:]...)
			s.changed()
			return
		}
	}
	s.touch()
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.changed()
}

func (s *Store) Total() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.total
}

// Items returns a copy of the line items in insertion order.
func (s *Store) Items() []domain.LineItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]domain.LineItem, len(s.items))
	copy(items, s.items)
	return items
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *Store) IsEmpty() bool {
	return s.Len() == 0
}

// View returns items and total read under a single lock.
func (s *Store) View() domain.CartView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]domain.LineItem, len(s.items))
	copy(items, s.items)
	return domain.CartView{Items: items, Total: s.total}
}

func (s *Store) idleSince() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastActive
}

// changed must be called with mu held.
func (s *Store) changed() {
	s.total = domain.SumLineTotals(s.items)
	s.touch()
}

func (s *Store) touch() {
	s.lastActive = s.now()
}

func (s *Store) markActive() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
}
