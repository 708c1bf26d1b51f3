// internal/cart/cart_test.go
package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xpbeats/xpbeats-backend/internal/models"
)

func testItem(title string, tier models.LicenseType, price float64) Item {
	return Item{
		BeatID:      uuid.New(),
		Title:       title,
		LicenseType: tier,
		Price:       price,
		Slug:        title,
	}
}

func TestAddAndCount(t *testing.T) {
	c := New(NewMemoryStore())

	c.Add(testItem("midnight-drive", models.LicenseTypeBasic, 29.99))
	c.Add(testItem("golden-hour", models.LicenseTypePremium, 99.99))

	assert.Equal(t, 2, c.ItemCount())
	assert.InDelta(t, 129.98, c.TotalPrice(), 0.001)
}

func TestDuplicateAddIsIgnored(t *testing.T) {
	c := New(NewMemoryStore())
	item := testItem("midnight-drive", models.LicenseTypeBasic, 29.99)

	c.Add(item)
	c.Add(item)

	assert.Equal(t, 1, c.ItemCount())
	assert.InDelta(t, 29.99, c.TotalPrice(), 0.001)
}

func TestSameBeatDifferentTiersAreSeparateLines(t *testing.T) {
	c := New(NewMemoryStore())
	beatID := uuid.New()

	c.Add(Item{BeatID: beatID, Title: "midnight-drive", LicenseType: models.LicenseTypeBasic, Price: 29.99})
	c.Add(Item{BeatID: beatID, Title: "midnight-drive", LicenseType: models.LicenseTypeExclusive, Price: 499})

	assert.Equal(t, 2, c.ItemCount())
}

func TestRemove(t *testing.T) {
	c := New(NewMemoryStore())
	item := testItem("midnight-drive", models.LicenseTypeBasic, 29.99)
	other := testItem("golden-hour", models.LicenseTypePremium, 99.99)

	c.Add(item)
	c.Add(other)

	c.Remove(item.BeatID, item.LicenseType)
	assert.Equal(t, 1, c.ItemCount())
	assert.Equal(t, other.BeatID, c.Items()[0].BeatID)

	// Removing a line that is not there changes nothing.
	c.Remove(item.BeatID, item.LicenseType)
	assert.Equal(t, 1, c.ItemCount())
}

func TestClear(t *testing.T) {
	c := New(NewMemoryStore())
	c.Add(testItem("midnight-drive", models.LicenseTypeBasic, 29.99))

	c.Clear()

	assert.Equal(t, 0, c.ItemCount())
	assert.Zero(t, c.TotalPrice())
}

func TestItemsReturnsCopy(t *testing.T) {
	c := New(NewMemoryStore())
	c.Add(testItem("midnight-drive", models.LicenseTypeBasic, 29.99))

	items := c.Items()
	items[0].Price = 0

	assert.InDelta(t, 29.99, c.TotalPrice(), 0.001)
}

func TestPersistenceRoundtrip(t *testing.T) {
	store := NewMemoryStore()

	first := New(store)
	item := testItem("midnight-drive", models.LicenseTypeBasic, 29.99)
	first.Add(item)

	second := New(store)
	require.Equal(t, 1, second.ItemCount())
	assert.Equal(t, item.BeatID, second.Items()[0].BeatID)
	assert.Equal(t, item.LicenseType, second.Items()[0].LicenseType)
}

func TestOpenFlagIsNotPersisted(t *testing.T) {
	store := NewMemoryStore()

	first := New(store)
	first.Add(testItem("midnight-drive", models.LicenseTypeBasic, 29.99))
	first.SetOpen(true)
	assert.True(t, first.IsOpen())

	second := New(store)
	assert.Equal(t, 1, second.ItemCount())
	assert.False(t, second.IsOpen())
}

func TestToggle(t *testing.T) {
	c := New(nil)

	assert.False(t, c.IsOpen())
	c.Toggle()
	assert.True(t, c.IsOpen())
	c.Toggle()
	assert.False(t, c.IsOpen())
}

func TestFileStoreRoundtrip(t *testing.T) {
	dir := t.TempDir()

	store, err := NewFileStore(dir)
	require.NoError(t, err)

	first := New(store)
	item := testItem("midnight-drive", models.LicenseTypeUnlimited, 149.99)
	first.Add(item)

	reopened, err := NewFileStore(dir)
	require.NoError(t, err)

	second := New(reopened)
	require.Equal(t, 1, second.ItemCount())
	assert.Equal(t, item.BeatID, second.Items()[0].BeatID)
	assert.InDelta(t, 149.99, second.TotalPrice(), 0.001)
}

func TestFileStoreEmptyOnFirstLoad(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	c := New(store)
	assert.Equal(t, 0, c.ItemCount())
}
