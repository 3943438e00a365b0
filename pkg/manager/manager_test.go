package manager

import (
	"Purchase-Tracker/domain"
	"Purchase-Tracker/entities"
	"Purchase-Tracker/internal/testutil"
	"Purchase-Tracker/pkg/category"
	"Purchase-Tracker/pkg/product"
	"Purchase-Tracker/pkg/share"
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager(t *testing.T) (*Manager, *testutil.MemoryStore, *testutil.Calls) {
	t.Helper()
	calls := &testutil.Calls{}
	store := testutil.NewMemoryStore(calls)
	s3 := testutil.NewFakeS3(calls)
	m := New(
		category.NewCategoryService(store),
		product.NewProductService(store, store, s3),
		share.NewShareService(store, nil),
	)
	return m, store, calls
}

func count(names []string, name string) int {
	n := 0
	for _, v := range names {
		if v == name {
			n++
		}
	}
	return n
}

func TestLoadAndFilter(t *testing.T) {
	m, store, _ := newManager(t)
	ctx := context.Background()

	snacks := store.SeedCategory("Snacks")
	store.SeedProduct(&entities.Product{Name: "Instant Noodles", Store: "Lotus", CategoryID: &snacks.ID})
	store.SeedProduct(&entities.Product{Name: "Fish Sauce", Store: "BigC"})

	require.NoError(t, m.Load(ctx))
	shown, total := m.Counts()
	assert.Equal(t, 2, shown)
	assert.Equal(t, 2, total)

	m.SetFilter(domain.ProductFilter{Store: "Lotus"})
	shown, total = m.Counts()
	assert.Equal(t, 1, shown)
	assert.Equal(t, 2, total)
	assert.Equal(t, "Instant Noodles", m.Visible()[0].Name)

	m.SetFilter(domain.ProductFilter{Store: "BigC", CategoryID: snacks.ID.String()})
	assert.Empty(t, m.Visible())

	m.SetFilter(domain.ProductFilter{})
	assert.Equal(t, domain.FilterAll, m.Filter().Store)
	assert.Len(t, m.Visible(), 2)

	assert.ElementsMatch(t, []string{"Lotus", "BigC"}, m.Stores())
	assert.Equal(t, int64(1), m.ProductCount(snacks.ID.String()))
	assert.False(t, m.CanDeleteCategory(snacks.ID.String()))
}

func TestLoadFailureKeepsErrorAndEmptyLists(t *testing.T) {
	m, store, _ := newManager(t)
	store.SeedProduct(&entities.Product{Name: "Rice", Store: "Makro"})
	require.NoError(t, m.Load(context.Background()))

	store.ReadErr = errors.New("connection refused")
	err := m.Load(context.Background())
	assert.Error(t, err)
	assert.Equal(t, err, m.Err())
	assert.Empty(t, m.Visible())
	assert.Empty(t, m.Categories())

	store.ReadErr = nil
	require.NoError(t, m.Load(context.Background()))
	assert.NoError(t, m.Err())
	assert.Len(t, m.Visible(), 1)
}

func TestSaveProductReloads(t *testing.T) {
	m, _, calls := newManager(t)
	ctx := context.Background()
	require.NoError(t, m.Load(ctx))

	res, err := m.SaveProduct(ctx, "", testutil.Noodles(), testutil.Image("noodles.jpg"))
	require.NoError(t, err)
	assert.Len(t, m.Visible(), 1)
	assert.NotNil(t, res.ImageURL)

	names := calls.Names()
	upload := indexOf(names, "image.upload")
	add := indexOf(names, "product.add")
	require.GreaterOrEqual(t, upload, 0)
	assert.Less(t, upload, add)
	assert.Greater(t, lastIndexOf(names, "product.list"), add)

	req := testutil.Noodles()
	req.Price = decimal.RequireFromString("8.50")
	updated, err := m.SaveProduct(ctx, res.ID, req, nil)
	require.NoError(t, err)
	assert.Equal(t, 8.5, updated.Price)
	assert.Equal(t, 8.5, m.Visible()[0].Price)
	assert.Equal(t, res.ImageURL, m.Visible()[0].ImageURL)
}

func TestSaveProductErrorIsSurfaced(t *testing.T) {
	m, store, calls := newManager(t)
	ctx := context.Background()
	require.NoError(t, m.Load(ctx))

	store.WriteErr = errors.New("insert failed")
	_, err := m.SaveProduct(ctx, "", testutil.Noodles(), nil)
	assert.EqualError(t, err, "insert failed")
	assert.Equal(t, err, m.Err())
	assert.Equal(t, 1, count(calls.Names(), "product.list"))

	req := testutil.Noodles()
	req.PurchaseDate = "yesterday"
	store.WriteErr = nil
	_, err = m.SaveProduct(ctx, "", req, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidPurchaseDate)
	assert.ErrorIs(t, m.Err(), domain.ErrInvalidPurchaseDate)
}

func TestDeleteProductRequiresConfirmation(t *testing.T) {
	m, store, calls := newManager(t)
	ctx := context.Background()
	p := store.SeedProduct(&entities.Product{Name: "Instant Noodles", Store: "Lotus"})
	require.NoError(t, m.Load(ctx))

	var prompt string
	decline := ConfirmFunc(func(p string) bool {
		prompt = p
		return false
	})

	assert.ErrorIs(t, m.DeleteProduct(ctx, p.ID.String(), decline), domain.ErrNotConfirmed)
	assert.ErrorIs(t, m.DeleteProduct(ctx, p.ID.String(), nil), domain.ErrNotConfirmed)
	assert.Contains(t, prompt, "Instant Noodles")
	assert.Zero(t, count(calls.Names(), "product.delete"))
	assert.NoError(t, m.Err())

	require.NoError(t, m.DeleteProduct(ctx, p.ID.String(), Confirmed))
	assert.Empty(t, m.Visible())
	assert.Equal(t, 1, count(calls.Names(), "product.delete"))
}

func TestDeleteCategoryGuard(t *testing.T) {
	m, store, calls := newManager(t)
	ctx := context.Background()
	snacks := store.SeedCategory("Snacks")
	drinks := store.SeedCategory("Drinks")
	store.SeedProduct(&entities.Product{Name: "Chips", Store: "Lotus", CategoryID: &snacks.ID})
	require.NoError(t, m.Load(ctx))

	err := m.DeleteCategory(ctx, snacks.ID.String(), Confirmed)
	assert.ErrorIs(t, err, domain.ErrCategoryInUse)
	assert.Zero(t, count(calls.Names(), "category.delete"))
	assert.Len(t, m.Categories(), 2)

	assert.ErrorIs(t, m.DeleteCategory(ctx, drinks.ID.String(), ConfirmFunc(func(string) bool { return false })), domain.ErrNotConfirmed)

	require.NoError(t, m.DeleteCategory(ctx, drinks.ID.String(), Confirmed))
	require.Len(t, m.Categories(), 1)
	assert.Equal(t, "Snacks", m.Categories()[0].Name)
}

func TestAddCategoryReloadsOrderedByName(t *testing.T) {
	m, _, _ := newManager(t)
	ctx := context.Background()
	require.NoError(t, m.Load(ctx))

	_, err := m.AddCategory(ctx, domain.CategoryRequest{Name: "Snacks"})
	require.NoError(t, err)
	_, err = m.AddCategory(ctx, domain.CategoryRequest{Name: "Beverages"})
	require.NoError(t, err)

	require.Len(t, m.Categories(), 2)
	assert.Equal(t, "Beverages", m.Categories()[0].Name)
	assert.True(t, m.Categories()[0].CanDelete)

	_, err = m.AddCategory(ctx, domain.CategoryRequest{Name: "   "})
	assert.Error(t, err)
	assert.Error(t, m.Err())
}

func TestShareTwiceReturnsSameLink(t *testing.T) {
	m, store, _ := newManager(t)
	ctx := context.Background()
	p := store.SeedProduct(&entities.Product{Name: "Instant Noodles", Store: "Lotus"})
	require.NoError(t, m.Load(ctx))

	first, err := m.Share(ctx, p.ID.String(), "http://localhost:8080")
	require.NoError(t, err)
	second, err := m.Share(ctx, p.ID.String(), "http://localhost:8080")
	require.NoError(t, err)

	assert.Equal(t, first.URL, second.URL)
	require.NotNil(t, m.Visible()[0].ShareToken)
	assert.Equal(t, first.Token, *m.Visible()[0].ShareToken)
}

func TestSuggestions(t *testing.T) {
	m, store, _ := newManager(t)
	store.SeedProduct(&entities.Product{Name: "Milk", Store: "Tops", Unit: "ขวด", QuantityUnit: "ml"})
	store.SeedProduct(&entities.Product{Name: "Rice", Store: "Makro", Unit: "ถุง", QuantityUnit: "กก."})
	require.NoError(t, m.Load(context.Background()))

	s := m.Suggestions()
	assert.ElementsMatch(t, []string{"Tops", "Makro"}, s.Stores)
	assert.Equal(t, domain.StandardUnits, s.Units[:len(domain.StandardUnits)])
	assert.Contains(t, s.Units, "ขวด")
	assert.Contains(t, s.Units, "ถุง")
	assert.Equal(t, domain.StandardQuantityUnits, s.QuantityUnits)
}

func indexOf(names []string, name string) int {
	for i, v := range names {
		if v == name {
			return i
		}
	}
	return -1
}

func lastIndexOf(names []string, name string) int {
	for i := len(names) - 1; i >= 0; i-- {
		if names[i] == name {
			return i
		}
	}
	return -1
}
