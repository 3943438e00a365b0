package category

import (
	"Purchase-Tracker/domain"
	"Purchase-Tracker/entities"
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// MockCategoryRepo keeps categories and product references in memory.
type MockCategoryRepo struct {
	Categories map[string]*entities.Category
	// ProductCategory maps product id to the referenced category id.
	ProductCategory map[string]string
	Err             error
}

func NewMockCategoryRepo() *MockCategoryRepo {
	return &MockCategoryRepo{
		Categories:      map[string]*entities.Category{},
		ProductCategory: map[string]string{},
	}
}

func (m *MockCategoryRepo) AddCategory(ctx context.Context, category *entities.Category) error {
	if m.Err != nil {
		return m.Err
	}
	m.Categories[category.ID.String()] = category
	return nil
}

func (m *MockCategoryRepo) GetCategories(ctx context.Context) ([]*entities.Category, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]*entities.Category, 0, len(m.Categories))
	for _, c := range m.Categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *MockCategoryRepo) GetCategoryByID(ctx context.Context, id string) (*entities.Category, error) {
	c, ok := m.Categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (m *MockCategoryRepo) CountProductsByCategory(ctx context.Context) (map[string]int64, error) {
	counts := map[string]int64{}
	for _, categoryID := range m.ProductCategory {
		counts[categoryID]++
	}
	return counts, nil
}

func (m *MockCategoryRepo) DeleteCategory(ctx context.Context, id string) error {
	for _, categoryID := range m.ProductCategory {
		if categoryID == id {
			return domain.ErrCategoryInUse
		}
	}
	if _, ok := m.Categories[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.Categories, id)
	return nil
}

func TestAddCategory(t *testing.T) {
	repo := NewMockCategoryRepo()
	svc := NewCategoryService(repo)

	res, err := svc.AddCategory(context.Background(), domain.CategoryRequest{Name: "  Snacks ", Description: ""})
	require.NoError(t, err)

	assert.Equal(t, "Snacks", res.Name)
	assert.Nil(t, res.Description)
	assert.True(t, res.CanDelete)
	assert.Len(t, repo.Categories, 1)

	_, err = svc.AddCategory(context.Background(), domain.CategoryRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrCategoryNameEmpty)
}

func TestGetCategoriesOrderedWithCounts(t *testing.T) {
	repo := NewMockCategoryRepo()
	svc := NewCategoryService(repo)
	ctx := context.Background()

	drinks, err := svc.AddCategory(ctx, domain.CategoryRequest{Name: "Drinks"})
	require.NoError(t, err)
	_, err = svc.AddCategory(ctx, domain.CategoryRequest{Name: "Cleaning", Description: "soap and such"})
	require.NoError(t, err)
	repo.ProductCategory[uuid.NewString()] = drinks.ID

	categories, err := svc.GetCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 2)

	assert.Equal(t, "Cleaning", categories[0].Name)
	assert.Equal(t, "soap and such", *categories[0].Description)
	assert.True(t, categories[0].CanDelete)
	assert.Equal(t, "Drinks", categories[1].Name)
	assert.Equal(t, int64(1), categories[1].ProductCount)
	assert.False(t, categories[1].CanDelete)
}

func TestDeleteCategory(t *testing.T) {
	testCases := []struct {
		name        string
		referencing int
		id          func(existing string) string
		expectedErr error
	}{
		{name: "refused while referenced", referencing: 1, id: func(e string) string { return e }, expectedErr: domain.ErrCategoryInUse},
		{name: "refused with many references", referencing: 3, id: func(e string) string { return e }, expectedErr: domain.ErrCategoryInUse},
		{name: "accepted when unreferenced", referencing: 0, id: func(e string) string { return e }},
		{name: "unknown id", id: func(string) string { return uuid.NewString() }, expectedErr: domain.ErrCategoryNotFound},
		{name: "malformed id", id: func(string) string { return "not-a-uuid" }, expectedErr: domain.ErrParseUUID},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := NewMockCategoryRepo()
			svc := NewCategoryService(repo)
			ctx := context.Background()

			created, err := svc.AddCategory(ctx, domain.CategoryRequest{Name: "Snacks"})
			require.NoError(t, err)
			for i := 0; i < tc.referencing; i++ {
				repo.ProductCategory[uuid.NewString()] = created.ID
			}

			err = svc.DeleteCategory(ctx, tc.id(created.ID))
			if tc.expectedErr != nil {
				assert.True(t, errors.Is(err, tc.expectedErr), "got %v", err)
				return
			}
			assert.NoError(t, err)
			assert.Empty(t, repo.Categories)
		})
	}
}

func TestRecreatedCategoryIsNotRelinked(t *testing.T) {
	repo := NewMockCategoryRepo()
	svc := NewCategoryService(repo)
	ctx := context.Background()

	original, err := svc.AddCategory(ctx, domain.CategoryRequest{Name: "Snacks"})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteCategory(ctx, original.ID))

	recreated, err := svc.AddCategory(ctx, domain.CategoryRequest{Name: "Snacks"})
	require.NoError(t, err)
	assert.NotEqual(t, original.ID, recreated.ID)

	// a product still carrying the old id is not counted against the new category
	repo.ProductCategory[uuid.NewString()] = original.ID

	categories, err := svc.GetCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, int64(0), categories[0].ProductCount)
	assert.NoError(t, svc.DeleteCategory(ctx, recreated.ID))
}
