// internal/cart/cart.go
package cart

import (
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/xpbeats/xpbeats-backend/internal/models"
)

// StorageKey is the fixed namespace the cart persists under.
const StorageKey = "xp-beats-cart"

// Item is one (beat, license tier) selection. Title, price, cover and slug
// are denormalized display snapshots so the UI can render the cart without
// refetching the catalog.
type Item struct {
	BeatID        uuid.UUID          `json:"beat_id"`
	Title         string             `json:"title"`
	LicenseType   models.LicenseType `json:"license_type"`
	Price         float64            `json:"price"`
	CoverImageURL string             `json:"cover_image_url,omitempty"`
	Slug          string             `json:"slug"`
}

// Store persists cart items between sessions, keyed by a namespace.
type Store interface {
	Load(key string) ([]Item, error)
	Save(key string, items []Item) error
}

// Cart holds the current session's selections. It is owned by the
// composition root and passed down explicitly; there is no package-level
// instance. The drawer open/closed flag is UI state and is intentionally
// excluded from persistence.
type Cart struct {
	mu    sync.Mutex
	store Store
	items []Item
	open  bool
}

// New builds a cart backed by the given store, loading any previously
// persisted items. A load failure starts an empty cart rather than
// surfacing an error to the UI.
func New(store Store) *Cart {
	c := &Cart{store: store}
	if store != nil {
		items, err := store.Load(StorageKey)
		if err != nil {
			logrus.WithError(err).Warn("Failed to load persisted cart, starting empty")
		} else {
			c.items = items
		}
	}
	return c
}

// Add inserts the item unless an entry with the same (beat, tier) key
// already exists; duplicate adds are silently ignored.
func (c *Cart) Add(item Item) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, existing := range c.items {
		if existing.BeatID == item.BeatID && existing.LicenseType == item.LicenseType {
			return
		}
	}

	c.items = append(c.items, item)
	c.persist()
}

// Remove deletes the matching entry if present; no-op otherwise.
func (c *Cart) Remove(beatID uuid.UUID, licenseType models.LicenseType) {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.items[:0]
	removed := false
	for _, item := range c.items {
		if item.BeatID == beatID && item.LicenseType == licenseType {
			removed = true
			continue
		}
		kept = append(kept, item)
	}
	c.items = kept

	if removed {
		c.persist()
	}
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = nil
	c.persist()
}

// TotalPrice sums the recorded price of every line.
func (c *Cart) TotalPrice() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total float64
	for _, item := range c.items {
		total += item.Price
	}
	return total
}

// ItemCount is the number of line entries. Quantity is not modeled: each
// tier purchase is a single unit.
func (c *Cart) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Items returns a copy of the current selections.
func (c *Cart) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Toggle() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = !c.open
}

func (c *Cart) SetOpen(open bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = open
}

func (c *Cart) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

// persist writes the item list through the store. Callers hold c.mu.
// Persistence failures are logged, not surfaced: cart operations are total.
func (c *Cart) persist() {
	if c.store == nil {
		return
	}
	items := make([]Item, len(c.items))
	copy(items, c.items)
	if err := c.store.Save(StorageKey, items); err != nil {
		logrus.WithError(err).Warn("Failed to persist cart")
	}
}
