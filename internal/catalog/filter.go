package catalog

import (
	"sort"
	"strings"

	"github.com/flamingdiva/flamingdiva-backend/internal/app/model"
)

// PriceRange buckets products by display-dollar price.
type PriceRange string

const (
	PriceRangeNone      PriceRange = ""
	PriceRangeUnder500  PriceRange = "under500"  // < $500
	PriceRange500To1000 PriceRange = "500to1000" // $500 - $1000 inclusive
	PriceRangeOver1000  PriceRange = "over1000"  // > $1000
)

// SortKey orders a filtered product list.
type SortKey string

const (
	SortFeatured  SortKey = "featured" // curated order, leaves input untouched
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortNewest    SortKey = "newest"
)

// MinQueryLength is the threshold below which a non-empty search query is
// reported as too short rather than matched against the catalog.
const MinQueryLength = 2

// FilterState holds the active facet selections. Values within one dimension
// are OR'd; dimensions are AND'd together.
type FilterState struct {
	Categories  []model.ProductCategory
	Collections []model.ProductCollection
	PriceRange  PriceRange
}

// IsZero reports whether no facet is active.
func (f FilterState) IsZero() bool {
	return len(f.Categories) == 0 && len(f.Collections) == 0 && f.PriceRange == PriceRangeNone
}

// Result is the outcome of applying filters or a search to the catalog.
// Count always equals len(Products). QueryTooShort is set when a non-empty
// query was under MinQueryLength; Products is then the unfiltered input.
type Result struct {
	Products      []model.Product
	Count         int
	QueryTooShort bool
}

// Apply runs search, facet filtering, and sorting over products, in that
// order. A query of at least MinQueryLength pre-empts the facet state
// entirely; filters are only consulted when no effective query is present.
// The input slice is never mutated.
func Apply(products []model.Product, state FilterState, query string, sortKey SortKey) Result {
	query = strings.TrimSpace(query)

	if query != "" {
		if len([]rune(query)) < MinQueryLength {
			out := append([]model.Product(nil), products...)
			sortProducts(out, sortKey)
			return Result{Products: out, Count: len(out), QueryTooShort: true}
		}
		out := searchProducts(products, query)
		sortProducts(out, sortKey)
		return Result{Products: out, Count: len(out)}
	}

	out := make([]model.Product, 0, len(products))
	for _, p := range products {
		if matchesState(p, state) {
			out = append(out, p)
		}
	}
	sortProducts(out, sortKey)
	return Result{Products: out, Count: len(out)}
}

func matchesState(p model.Product, state FilterState) bool {
	if len(state.Categories) > 0 && !containsCategory(state.Categories, p.Category) {
		return false
	}
	if len(state.Collections) > 0 && !containsCollection(state.Collections, p.Collection) {
		return false
	}
	if state.PriceRange != PriceRangeNone && !matchesPriceRange(p.PriceCents, state.PriceRange) {
		return false
	}
	return true
}

func containsCategory(cats []model.ProductCategory, c model.ProductCategory) bool {
	for _, v := range cats {
		if v == c {
			return true
		}
	}
	return false
}

func containsCollection(cols []model.ProductCollection, c model.ProductCollection) bool {
	for _, v := range cols {
		if v == c {
			return true
		}
	}
	return false
}

// matchesPriceRange buckets on whole display dollars, not cents.
func matchesPriceRange(priceCents int64, r PriceRange) bool {
	dollars := priceCents / 100
	switch r {
	case PriceRangeUnder500:
		return dollars < 500
	case PriceRange500To1000:
		return dollars >= 500 && dollars <= 1000
	case PriceRangeOver1000:
		return dollars > 1000
	default:
		return true
	}
}

// searchProducts matches the query case-insensitively against product name,
// description, category, and collection.
func searchProducts(products []model.Product, query string) []model.Product {
	q := strings.ToLower(query)
	out := make([]model.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) ||
			strings.Contains(strings.ToLower(string(p.Category)), q) ||
			strings.Contains(strings.ToLower(string(p.Collection)), q) {
			out = append(out, p)
		}
	}
	return out
}

// sortProducts orders in place. All sorts are stable so equal-priced products
// keep their curated relative order.
func sortProducts(products []model.Product, key SortKey) {
	switch key {
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].PriceCents < products[j].PriceCents
		})
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].PriceCents > products[j].PriceCents
		})
	case SortNewest:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].CreatedAt.After(products[j].CreatedAt)
		})
	}
}

// ParseSortKey maps a request parameter to a SortKey, defaulting to featured.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortPriceAsc, SortPriceDesc, SortNewest:
		return SortKey(s)
	default:
		return SortFeatured
	}
}

// ParsePriceRange maps a request parameter to a PriceRange. Unknown values
// deactivate the facet.
func ParsePriceRange(s string) PriceRange {
	switch PriceRange(s) {
	case PriceRangeUnder500, PriceRange500To1000, PriceRangeOver1000:
		return PriceRange(s)
	default:
		return PriceRangeNone
	}
}
