package product

import (
	"Purchase-Tracker/domain"
	"Purchase-Tracker/entities"
	"strings"
)

// Filter returns the products matching the search query, category and store
// filters, keeping the input order. Empty or "all" category/store values pass
// everything through.
func Filter(products []*entities.Product, f domain.ProductFilter) []*entities.Product {
	f = f.Normalize()
	query := strings.ToLower(strings.TrimSpace(f.Query))

	filtered := make([]*entities.Product, 0, len(products))
	for _, p := range products {
		if query != "" && !matchesQuery(p, query) {
			continue
		}
		if f.CategoryID != domain.FilterAll && (p.CategoryID == nil || p.CategoryID.String() != f.CategoryID) {
			continue
		}
		if f.Store != domain.FilterAll && p.Store != f.Store {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

func matchesQuery(p *entities.Product, query string) bool {
	if strings.Contains(strings.ToLower(p.Name), query) ||
		strings.Contains(strings.ToLower(p.Store), query) {
		return true
	}
	return p.Notes != nil && strings.Contains(strings.ToLower(*p.Notes), query)
}

// UniqueStores lists distinct non-empty stores in first-seen order.
func UniqueStores(products []*entities.Product) []string {
	seen := map[string]bool{}
	var stores []string
	for _, p := range products {
		if p.Store == "" || seen[p.Store] {
			continue
		}
		seen[p.Store] = true
		stores = append(stores, p.Store)
	}
	return stores
}
