package manager

import (
	"Purchase-Tracker/domain"
	"Purchase-Tracker/entities"
	"Purchase-Tracker/pkg/category"
	"Purchase-Tracker/pkg/product"
	"Purchase-Tracker/pkg/share"
	"context"
	"fmt"
	"mime/multipart"

	"github.com/gofiber/fiber/v2/log"
)

// Confirmer asks the user to approve an irreversible action.
type Confirmer interface {
	Confirm(prompt string) bool
}

type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// Confirmed approves every prompt.
var Confirmed Confirmer = ConfirmFunc(func(string) bool { return true })

// Manager holds the product and category lists for one page view. Every
// mutation re-fetches both lists; nothing is patched locally.
type Manager struct {
	categoryService category.CategoryService
	productService  product.ProductService
	shareService    share.ShareService

	filter     domain.ProductFilter
	categories []domain.CategoryResponse
	products   []*entities.Product
	visible    []*entities.Product
	err        error
}

func New(categoryService category.CategoryService, productService product.ProductService, shareService share.ShareService) *Manager {
	return &Manager{
		categoryService: categoryService,
		productService:  productService,
		shareService:    shareService,
		filter:          domain.ProductFilter{}.Normalize(),
	}
}

// Load fetches categories and products. On failure both lists are left empty
// and the error is kept for display.
func (m *Manager) Load(ctx context.Context) error {
	categories, err := m.categoryService.GetCategories(ctx)
	if err != nil {
		log.Errorf("error loading categories: %v", err)
		m.reset(err)
		return err
	}

	products, err := m.productService.ListProducts(ctx)
	if err != nil {
		log.Errorf("error loading products: %v", err)
		m.reset(err)
		return err
	}

	m.categories = categories
	m.products = products
	m.visible = product.Filter(m.products, m.filter)
	m.err = nil
	return nil
}

func (m *Manager) SetFilter(f domain.ProductFilter) {
	m.filter = f.Normalize()
	m.visible = product.Filter(m.products, m.filter)
}

func (m *Manager) Filter() domain.ProductFilter {
	return m.filter
}

func (m *Manager) Visible() []domain.ProductResponse {
	out := make([]domain.ProductResponse, 0, len(m.visible))
	for _, p := range m.visible {
		out = append(out, product.ToProductResponse(p))
	}
	return out
}

// Counts returns the number of visible products and the total loaded.
func (m *Manager) Counts() (shown int, total int) {
	return len(m.visible), len(m.products)
}

func (m *Manager) Categories() []domain.CategoryResponse {
	return m.categories
}

func (m *Manager) Stores() []string {
	return product.UniqueStores(m.products)
}

func (m *Manager) Product(id string) (domain.ProductResponse, bool) {
	for _, p := range m.products {
		if p.ID.String() == id {
			return product.ToProductResponse(p), true
		}
	}
	return domain.ProductResponse{}, false
}

func (m *Manager) ProductCount(categoryID string) int64 {
	var n int64
	for _, p := range m.products {
		if p.CategoryID != nil && p.CategoryID.String() == categoryID {
			n++
		}
	}
	return n
}

func (m *Manager) CanDeleteCategory(categoryID string) bool {
	return m.ProductCount(categoryID) == 0
}

// Suggestions derives the form suggestions from the loaded products.
func (m *Manager) Suggestions() domain.SuggestionsResponse {
	var units, quantityUnits []string
	for _, p := range m.products {
		units = append(units, p.Unit)
		quantityUnits = append(quantityUnits, p.QuantityUnit)
	}
	return domain.SuggestionsResponse{
		Stores:        m.Stores(),
		Units:         product.MergeSuggestions(domain.StandardUnits, units),
		QuantityUnits: product.MergeSuggestions(domain.StandardQuantityUnits, quantityUnits),
	}
}

// SaveProduct creates the product when id is empty and updates it otherwise.
func (m *Manager) SaveProduct(ctx context.Context, id string, req domain.ProductRequest, image *multipart.FileHeader) (domain.ProductResponse, error) {
	var (
		res domain.ProductResponse
		err error
	)
	if id == "" {
		res, err = m.productService.AddProduct(ctx, req, image)
	} else {
		res, err = m.productService.UpdateProduct(ctx, id, req, image)
	}
	if err != nil {
		return domain.ProductResponse{}, m.fail("error saving product", err)
	}
	return res, m.Load(ctx)
}

func (m *Manager) DeleteProduct(ctx context.Context, id string, confirmer Confirmer) error {
	prompt := "Delete this product?"
	if p, ok := m.Product(id); ok {
		prompt = fmt.Sprintf("Delete %q? This cannot be undone.", p.Name)
	}
	if confirmer == nil || !confirmer.Confirm(prompt) {
		return domain.ErrNotConfirmed
	}

	if err := m.productService.DeleteProduct(ctx, id); err != nil {
		return m.fail("error deleting product", err)
	}
	return m.Load(ctx)
}

func (m *Manager) AddCategory(ctx context.Context, req domain.CategoryRequest) (domain.CategoryResponse, error) {
	res, err := m.categoryService.AddCategory(ctx, req)
	if err != nil {
		return domain.CategoryResponse{}, m.fail("error adding category", err)
	}
	return res, m.Load(ctx)
}

func (m *Manager) DeleteCategory(ctx context.Context, id string, confirmer Confirmer) error {
	if !m.CanDeleteCategory(id) {
		return m.fail("error deleting category", domain.ErrCategoryInUse)
	}

	prompt := "Delete this category?"
	for _, c := range m.categories {
		if c.ID == id {
			prompt = fmt.Sprintf("Delete category %q?", c.Name)
		}
	}
	if confirmer == nil || !confirmer.Confirm(prompt) {
		return domain.ErrNotConfirmed
	}

	if err := m.categoryService.DeleteCategory(ctx, id); err != nil {
		return m.fail("error deleting category", err)
	}
	return m.Load(ctx)
}

func (m *Manager) Share(ctx context.Context, id string, origin string) (domain.ShareResponse, error) {
	res, err := m.shareService.Share(ctx, id, origin)
	if err != nil {
		return domain.ShareResponse{}, m.fail("error sharing product", err)
	}
	return res, m.Load(ctx)
}

// Err returns the last load or write failure.
func (m *Manager) Err() error {
	return m.err
}

func (m *Manager) fail(msg string, err error) error {
	log.Errorf("%s: %v", msg, err)
	m.err = err
	return err
}

func (m *Manager) reset(err error) {
	m.err = err
	m.categories = nil
	m.products = nil
	m.visible = nil
}
