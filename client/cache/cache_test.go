package cache

import (
	"testing"

	"github.com/AMechouate/Warenbuchung-App-sub002/pkg/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open("")
	assert.NoError(t, err)
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

func TestSaveAndReadProduct(t *testing.T) {
	store := newTestStore(t)

	product := models.Product{
		ID:            1,
		Name:          "Kabel",
		SKU:           "A-100",
		Price:         decimal.NewFromInt(10),
		StockQuantity: 5,
	}

	assert.NoError(t, store.SaveProduct(product, false))

	got, err := store.Product(1)
	assert.NoError(t, err)
	assert.NotNil(t, got)
	assert.Equal(t, "Kabel", got.Name)
	assert.Equal(t, 5, got.StockQuantity)

	missing, err := store.Product(99)
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestDirtyRecordsAndMarkSynced(t *testing.T) {
	store := newTestStore(t)

	assert.NoError(t, store.SaveProduct(models.Product{ID: 1, Name: "Kabel"}, false))
	assert.NoError(t, store.SaveProduct(models.Product{ID: 2, Name: "Stecker"}, true))
	assert.NoError(t, store.SaveWareneingang(models.WareneingangView{ID: 3, ProductID: 1}, true))

	dirty, err := store.DirtyRecords()
	assert.NoError(t, err)
	assert.Len(t, dirty, 2)

	assert.NoError(t, store.MarkSynced(TableProducts, 2))

	dirty, err = store.DirtyRecords()
	assert.NoError(t, err)
	assert.Len(t, dirty, 1)
	assert.Equal(t, TableWareneingaenge, dirty[0].Table)
	assert.Equal(t, 3, dirty[0].ID)
}

func TestMarkSyncedUnknownRecordIsNoop(t *testing.T) {
	store := newTestStore(t)

	assert.NoError(t, store.MarkSynced(TableProducts, 12345))
}

func TestDeleteRemovesRecord(t *testing.T) {
	store := newTestStore(t)

	assert.NoError(t, store.SaveProduct(models.Product{ID: 1, Name: "Kabel"}, false))
	assert.NoError(t, store.Delete(TableProducts, 1))

	got, err := store.Product(1)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestSyncQueueKeepsEnqueueOrder(t *testing.T) {
	store := newTestStore(t)

	first, err := store.Enqueue(TableProducts, 1, OpUpsert, models.Product{ID: 1, Name: "Kabel"})
	assert.NoError(t, err)
	second, err := store.Enqueue(TableWarenausgaenge, 2, OpDelete, nil)
	assert.NoError(t, err)
	assert.Greater(t, second, first)

	ops, err := store.PendingOps()
	assert.NoError(t, err)
	assert.Len(t, ops, 2)
	assert.Equal(t, OpUpsert, ops[0].Op)
	assert.Equal(t, TableProducts, ops[0].Table)
	assert.Equal(t, OpDelete, ops[1].Op)
	assert.Nil(t, ops[1].Payload)

	assert.NoError(t, store.DropQueued(first))

	ops, err = store.PendingOps()
	assert.NoError(t, err)
	assert.Len(t, ops, 1)
	assert.Equal(t, second, ops[0].Seq)
}

func TestClearDropsEverything(t *testing.T) {
	store := newTestStore(t)

	assert.NoError(t, store.SaveProduct(models.Product{ID: 1}, true))
	assert.NoError(t, store.SaveWarenausgang(models.WarenausgangView{ID: 2}, true))

	assert.NoError(t, store.Clear())

	dirty, err := store.DirtyRecords()
	assert.NoError(t, err)
	assert.Empty(t, dirty)

	products, err := store.Products()
	assert.NoError(t, err)
	assert.Empty(t, products)
}
