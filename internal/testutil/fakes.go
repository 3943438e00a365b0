// Package testutil holds in-memory stand-ins for the gorm repositories and the
// object store, shared by service, view-model and handler tests.
package testutil

import (
	"Purchase-Tracker/domain"
	"Purchase-Tracker/entities"
	"context"
	"errors"
	"mime/multipart"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Calls records the order of side effects across fakes.
type Calls struct {
	mu    sync.Mutex
	names []string
}

func (c *Calls) Record(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.names = append(c.names, name)
}

func (c *Calls) Names() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.names...)
}

// MemoryStore satisfies both product.ProductRepository and
// category.CategoryRepository.
type MemoryStore struct {
	mu         sync.Mutex
	products   map[string]*entities.Product
	categories map[string]*entities.Category
	now        time.Time

	Calls *Calls
	// ReadErr and WriteErr force failures on reads and writes respectively.
	ReadErr  error
	WriteErr error
}

func NewMemoryStore(calls *Calls) *MemoryStore {
	if calls == nil {
		calls = &Calls{}
	}
	return &MemoryStore{
		products:   map[string]*entities.Product{},
		categories: map[string]*entities.Category{},
		now:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Calls:      calls,
	}
}

func (m *MemoryStore) tick() time.Time {
	m.now = m.now.Add(time.Second)
	return m.now
}

func cloneProduct(p *entities.Product) *entities.Product {
	c := *p
	return &c
}

func (m *MemoryStore) withCategory(p *entities.Product) *entities.Product {
	c := cloneProduct(p)
	c.Category = nil
	if c.CategoryID != nil {
		if cat, ok := m.categories[c.CategoryID.String()]; ok {
			cc := *cat
			c.Category = &cc
		}
	}
	return c
}

func (m *MemoryStore) AddProduct(ctx context.Context, product *entities.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.Record("product.add")
	if m.WriteErr != nil {
		return m.WriteErr
	}
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	now := m.tick()
	product.CreatedAt, product.UpdatedAt = now, now
	m.products[product.ID.String()] = cloneProduct(product)
	return nil
}

func (m *MemoryStore) GetProductByID(ctx context.Context, id string) (*entities.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	p, ok := m.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m.withCategory(p), nil
}

func (m *MemoryStore) GetProducts(ctx context.Context) ([]*entities.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.Record("product.list")
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	out := make([]*entities.Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, m.withCategory(p))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].PurchaseDate.Equal(out[j].PurchaseDate) {
			return out[i].PurchaseDate.After(out[j].PurchaseDate)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *MemoryStore) UpdateProduct(ctx context.Context, product *entities.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.Record("product.update")
	if m.WriteErr != nil {
		return m.WriteErr
	}
	existing, ok := m.products[product.ID.String()]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	updated := cloneProduct(product)
	updated.ShareToken = existing.ShareToken
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = m.tick()
	m.products[product.ID.String()] = updated
	return nil
}

func (m *MemoryStore) DeleteProduct(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.Record("product.delete")
	if m.WriteErr != nil {
		return m.WriteErr
	}
	if _, ok := m.products[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *MemoryStore) GetProductByShareToken(ctx context.Context, token string) (*entities.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	for _, p := range m.products {
		if p.ShareToken != nil && *p.ShareToken == token {
			return m.withCategory(p), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MemoryStore) AssignShareToken(ctx context.Context, id string, token string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.Record("product.share")
	if m.WriteErr != nil {
		return false, m.WriteErr
	}
	p, ok := m.products[id]
	if !ok || p.ShareToken != nil {
		return false, nil
	}
	for _, other := range m.products {
		if other.ShareToken != nil && *other.ShareToken == token {
			return false, errors.New("duplicate key value violates unique constraint")
		}
	}
	t := token
	p.ShareToken = &t
	return true, nil
}

func (m *MemoryStore) GetDistinctValues(ctx context.Context, column string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := map[string]bool{}
	var values []string
	for _, p := range m.products {
		var v string
		switch column {
		case "store":
			v = p.Store
		case "unit":
			v = p.Unit
		case "quantity_unit":
			v = p.QuantityUnit
		default:
			return nil, errors.New("unsupported column")
		}
		if v != "" && !seen[v] {
			seen[v] = true
			values = append(values, v)
		}
	}
	sort.Strings(values)
	return values, nil
}

func (m *MemoryStore) AddCategory(ctx context.Context, category *entities.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.Record("category.add")
	if m.WriteErr != nil {
		return m.WriteErr
	}
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	now := m.tick()
	category.CreatedAt, category.UpdatedAt = now, now
	c := *category
	m.categories[category.ID.String()] = &c
	return nil
}

func (m *MemoryStore) GetCategories(ctx context.Context) ([]*entities.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.Record("category.list")
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	out := make([]*entities.Category, 0, len(m.categories))
	for _, c := range m.categories {
		cc := *c
		out = append(out, &cc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *MemoryStore) GetCategoryByID(ctx context.Context, id string) (*entities.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cc := *c
	return &cc, nil
}

func (m *MemoryStore) CountProductsByCategory(ctx context.Context) (map[string]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := map[string]int64{}
	for _, p := range m.products {
		if p.CategoryID != nil {
			counts[p.CategoryID.String()]++
		}
	}
	return counts, nil
}

func (m *MemoryStore) DeleteCategory(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls.Record("category.delete")
	if m.WriteErr != nil {
		return m.WriteErr
	}
	for _, p := range m.products {
		if p.CategoryID != nil && p.CategoryID.String() == id {
			return domain.ErrCategoryInUse
		}
	}
	if _, ok := m.categories[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.categories, id)
	return nil
}

// SeedProduct stores p directly, bypassing service validation.
func (m *MemoryStore) SeedProduct(p *entities.Product) *entities.Product {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := m.tick()
	p.CreatedAt, p.UpdatedAt = now, now
	m.products[p.ID.String()] = cloneProduct(p)
	return p
}

// SeedCategory stores c directly.
func (m *MemoryStore) SeedCategory(name string) *entities.Category {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := &entities.Category{ID: uuid.New(), Name: name}
	m.categories[c.ID.String()] = c
	return c
}

// FakeS3 records uploads without any network access.
type FakeS3 struct {
	mu      sync.Mutex
	Calls   *Calls
	Err     error
	Keys    []string
	Deleted []string
}

const FakePublicBase = "https://cdn.test/product-images/"

func NewFakeS3(calls *Calls) *FakeS3 {
	if calls == nil {
		calls = &Calls{}
	}
	return &FakeS3{Calls: calls}
}

func (f *FakeS3) UploadFile(ctx context.Context, fileName string, file *multipart.FileHeader, folder string, allowedExt ...string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls.Record("image.upload")
	if f.Err != nil {
		return "", f.Err
	}
	key := fileName
	if folder != "" {
		key = folder + "/" + fileName
	}
	f.Keys = append(f.Keys, key)
	return key, nil
}

func (f *FakeS3) DeleteFile(ctx context.Context, objectKey string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls.Record("image.delete")
	f.Deleted = append(f.Deleted, objectKey)
	return nil
}

func (f *FakeS3) GetPublicLinkKey(objectKey string) string {
	return FakePublicBase + objectKey
}

func (f *FakeS3) GetObjectKeyFromLink(link string) string {
	if !strings.HasPrefix(link, FakePublicBase) {
		return ""
	}
	return strings.TrimPrefix(link, FakePublicBase)
}

// Image returns a file header suitable for passing to services that never open it.
func Image(name string) *multipart.FileHeader {
	return &multipart.FileHeader{Filename: name, Size: 4}
}

// Noodles is the reference purchase used across tests.
func Noodles() domain.ProductRequest {
	return domain.ProductRequest{
		Name:         "Instant Noodles",
		Store:        "Lotus",
		Price:        decimal.RequireFromString("7.00"),
		Quantity:     decimal.NewFromInt(55),
		QuantityUnit: "g",
		PurchaseDate: "2024-01-10",
	}
}
