package store

import (
	"context"
	"io"
	"testing"

	"storefront/internal/domain/model"
	"storefront/internal/infra/kv"
	repo "storefront/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.Out = io.Discard
	return log
}

func productFixture(id int64, name string, price string) model.Product {
	p, _ := decimal.NewFromString(price)
	return model.Product{ID: id, Name: name, Price: p, IsActive: true}
}

func TestCartStore_AddItem_MergesSameProduct(t *testing.T) {
	ctx := context.Background()
	cart := NewCartStore(ctx, kv.NewMemory(), "cart:test", testLogger())

	assert.NoError(t, cart.AddItem(ctx, productFixture(1, "Coffee", "5.00"), 2))
	assert.NoError(t, cart.AddItem(ctx, productFixture(1, "Coffee", "5.00"), 3))

	items := cart.Items()
	assert.Equal(t, 1, len(items))
	assert.Equal(t, int64(5), items[0].Quantity)
}

func TestCartStore_AddItem_RejectsNonPositiveQuantity(t *testing.T) {
	ctx := context.Background()
	cart := NewCartStore(ctx, kv.NewMemory(), "cart:test", testLogger())

	assert.Error(t, cart.AddItem(ctx, productFixture(1, "Coffee", "5.00"), 0))
	assert.Error(t, cart.AddItem(ctx, productFixture(1, "Coffee", "5.00"), -1))
	assert.Equal(t, 0, len(cart.Items()))
}

func TestCartStore_KeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	cart := NewCartStore(ctx, kv.NewMemory(), "cart:test", testLogger())

	assert.NoError(t, cart.AddItem(ctx, productFixture(2, "Tea", "3.00"), 1))
	assert.NoError(t, cart.AddItem(ctx, productFixture(1, "Coffee", "5.00"), 1))
	assert.NoError(t, cart.AddItem(ctx, productFixture(2, "Tea", "3.00"), 1))

	items := cart.Items()
	assert.Equal(t, 2, len(items))
	assert.Equal(t, int64(2), items[0].ProductID)
	assert.Equal(t, int64(1), items[1].ProductID)
}

func TestCartStore_UpdateQuantity_ZeroRemoves(t *testing.T) {
	ctx := context.Background()
	cart := NewCartStore(ctx, kv.NewMemory(), "cart:test", testLogger())

	assert.NoError(t, cart.AddItem(ctx, productFixture(1, "Coffee", "5.00"), 2))
	assert.NoError(t, cart.UpdateQuantity(ctx, 1, 0))

	assert.Equal(t, 0, len(cart.Items()))
}

func TestCartStore_UpdateQuantity_SetsQuantity(t *testing.T) {
	ctx := context.Background()
	cart := NewCartStore(ctx, kv.NewMemory(), "cart:test", testLogger())

	assert.NoError(t, cart.AddItem(ctx, productFixture(1, "Coffee", "5.00"), 2))
	assert.NoError(t, cart.UpdateQuantity(ctx, 1, 7))

	items := cart.Items()
	assert.Equal(t, int64(7), items[0].Quantity)
}

func TestCartStore_UpdateQuantity_NoopWhenAbsent(t *testing.T) {
	ctx := context.Background()
	cart := NewCartStore(ctx, kv.NewMemory(), "cart:test", testLogger())

	assert.NoError(t, cart.UpdateQuantity(ctx, 999, 3))
	assert.Equal(t, 0, len(cart.Items()))
}

func TestCartStore_RemoveItem_NoopWhenAbsent(t *testing.T) {
	ctx := context.Background()
	cart := NewCartStore(ctx, kv.NewMemory(), "cart:test", testLogger())

	assert.NoError(t, cart.AddItem(ctx, productFixture(1, "Coffee", "5.00"), 1))
	assert.NoError(t, cart.RemoveItem(ctx, 999))
	assert.Equal(t, 1, len(cart.Items()))
}

func TestCartStore_Totals(t *testing.T) {
	ctx := context.Background()
	cart := NewCartStore(ctx, kv.NewMemory(), "cart:test", testLogger())

	assert.NoError(t, cart.AddItem(ctx, productFixture(1, "Coffee", "5.00"), 2))
	assert.NoError(t, cart.AddItem(ctx, productFixture(2, "Tea", "3.50"), 3))

	assert.Equal(t, int64(5), cart.TotalQuantity())
	assert.True(t, cart.TotalPrice().Equal(decimal.RequireFromString("20.50")))

	//数量を変えたら再計算される
	assert.NoError(t, cart.UpdateQuantity(ctx, 2, 1))
	assert.True(t, cart.TotalPrice().Equal(decimal.RequireFromString("13.50")))
}

func TestCartStore_Clear_RemovesPersistedSnapshot(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	cart := NewCartStore(ctx, mem, "cart:test", testLogger())

	assert.NoError(t, cart.AddItem(ctx, productFixture(1, "Coffee", "5.00"), 2))
	assert.NoError(t, cart.Clear(ctx))

	assert.Equal(t, 0, len(cart.Items()))
	assert.Equal(t, int64(0), cart.TotalQuantity())
	assert.True(t, cart.TotalPrice().IsZero())

	//空リストを書くのではなくキー自体が消える
	_, err := mem.Get(ctx, "cart:test")
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestCartStore_RehydrationRoundTrip(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()

	cart := NewCartStore(ctx, mem, "cart:test", testLogger())
	assert.NoError(t, cart.AddItem(ctx, productFixture(1, "Coffee", "5.00"), 2))
	assert.NoError(t, cart.AddItem(ctx, productFixture(2, "Tea", "3.50"), 1))

	//再起動相当：同じKVから作り直す
	reloaded := NewCartStore(ctx, mem, "cart:test", testLogger())

	//PriceはJSON経由で指数表現が変わりうるので数値として比較する
	before := cart.Items()
	after := reloaded.Items()
	assert.Equal(t, len(before), len(after))
	for i := range before {
		assert.Equal(t, before[i].ProductID, after[i].ProductID)
		assert.Equal(t, before[i].Name, after[i].Name)
		assert.Equal(t, before[i].Quantity, after[i].Quantity)
		assert.True(t, before[i].Price.Equal(after[i].Price))
	}
	assert.True(t, cart.TotalPrice().Equal(reloaded.TotalPrice()))
}

func TestCartStore_RehydrationCorruptSnapshot_StartsEmpty(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	assert.NoError(t, mem.Set(ctx, "cart:test", []byte("{not json")))

	cart := NewCartStore(ctx, mem, "cart:test", testLogger())
	assert.Equal(t, 0, len(cart.Items()))
}

// どんな操作列でも product_id は重複せず quantity >= 1 が保たれる
func TestCartStore_Invariants(t *testing.T) {
	ctx := context.Background()
	cart := NewCartStore(ctx, kv.NewMemory(), "cart:test", testLogger())

	_ = cart.AddItem(ctx, productFixture(1, "Coffee", "5.00"), 1)
	_ = cart.AddItem(ctx, productFixture(2, "Tea", "3.00"), 4)
	_ = cart.AddItem(ctx, productFixture(1, "Coffee", "5.00"), 2)
	_ = cart.UpdateQuantity(ctx, 2, -5)
	_ = cart.UpdateQuantity(ctx, 1, 9)
	_ = cart.RemoveItem(ctx, 3)
	_ = cart.AddItem(ctx, productFixture(3, "Mug", "12.00"), 1)

	seen := map[int64]bool{}
	for _, it := range cart.Items() {
		assert.False(t, seen[it.ProductID])
		seen[it.ProductID] = true
		assert.GreaterOrEqual(t, it.Quantity, int64(1))
	}
}
