package cart

import (
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/flamingdiva/flamingdiva-backend/pkg/logger"
)

// LineItem is one cart entry. Identity is (Name, Size): adding the same pair
// again merges quantities instead of appending. UnitPriceCents is carried
// alongside the display string so totals never re-parse formatted prices.
type LineItem struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Size           string `json:"size"`
	PriceText      string `json:"price"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	Quantity       int    `json:"quantity"`
	Image          string `json:"image,omitempty"`
}

// Store owns an ordered line-item collection backed by a Storage snapshot.
// Every mutation persists the full collection and notifies subscribers.
// Storage failures are logged and swallowed; the in-memory state stays
// authoritative for the rest of the session.
type Store struct {
	mu          sync.Mutex
	items       []LineItem
	storage     Storage
	subscribers []func(items []LineItem)
}

// NewStore creates a store and rehydrates it from storage. Absent or corrupt
// data starts an empty cart; the failure is logged, not surfaced.
func NewStore(storage Storage) *Store {
	s := &Store{storage: storage}

	items, err := storage.Load()
	if err != nil {
		logger.Warn("Could not load cart from storage, starting empty", map[string]interface{}{
			"error": err.Error(),
		})
		return s
	}
	s.items = items
	return s
}

// Subscribe registers a callback invoked with the full collection after every
// mutation. Callbacks run synchronously on the mutating goroutine.
func (s *Store) Subscribe(fn func(items []LineItem)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// AddItem adds a product/size pair to the cart. An existing (name, size) line
// has its quantity incremented; otherwise a new line is appended with a fresh
// id. Quantity defaults to 1 when not positive.
func (s *Store) AddItem(name, priceText, size, image string, quantity int) LineItem {
	if quantity <= 0 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].Name == name && s.items[i].Size == size {
			s.items[i].Quantity += quantity
			item := s.items[i]
			s.persistAndNotify()
			return item
		}
	}

	item := LineItem{
		ID:             newLineItemID(),
		Name:           name,
		Size:           size,
		PriceText:      priceText,
		UnitPriceCents: ParsePriceCents(priceText),
		Quantity:       quantity,
		Image:          image,
	}
	s.items = append(s.items, item)
	s.persistAndNotify()
	return item
}

// UpdateQuantity applies a delta to the matching line's quantity. A resulting
// quantity of zero or less removes the line entirely; no zero-quantity line
// is ever observable. Returns false when no line matches.
func (s *Store) UpdateQuantity(id string, delta int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}
		s.items[i].Quantity += delta
		if s.items[i].Quantity <= 0 {
			s.items = append(s.items[:i], s.items[i+1:]...)
		}
		s.persistAndNotify()
		return true
	}
	return false
}

// RemoveItem deletes the matching line unconditionally
func (s *Store) RemoveItem(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.persistAndNotify()
			return true
		}
	}
	return false
}

// Clear empties the cart
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.persistAndNotify()
}

// Items returns a copy of the ordered line-item collection
func (s *Store) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]LineItem(nil), s.items...)
}

// Count returns the total quantity across all lines
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

// SubtotalCents sums unit price times quantity over all lines
func (s *Store) SubtotalCents() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total int64
	for _, item := range s.items {
		total += item.UnitPriceCents * int64(item.Quantity)
	}
	return total
}

// Total returns the formatted display total, e.g. "$200 USD"
func (s *Store) Total() string {
	return FormatPrice(s.SubtotalCents())
}

// persistAndNotify snapshots the collection to storage and fans out to
// subscribers. Called with the lock held.
func (s *Store) persistAndNotify() {
	if err := s.storage.Save(s.items); err != nil {
		logger.Warn("Could not save cart to storage", map[string]interface{}{
			"error": err.Error(),
			"items": len(s.items),
		})
	}

	snapshot := append([]LineItem(nil), s.items...)
	for _, fn := range s.subscribers {
		fn(snapshot)
	}
}

// newLineItemID builds a locally unique id: monotonic-time base plus a short
// random suffix. Collisions within one cart are treated as negligible.
func newLineItemID() string {
	return strconv.FormatInt(time.Now().UnixNano(), 36) + "-" + randomSuffix(6)
}

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

func randomSuffix(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = base36[rand.Intn(len(base36))]
	}
	return string(b)
}
