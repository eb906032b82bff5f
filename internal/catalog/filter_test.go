package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flamingdiva/flamingdiva-backend/internal/app/model"
)

func sampleProducts() []model.Product {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return []model.Product{
		{ID: 1, Name: "Third Eye Patched Leather", Description: "Hand-patched leather jacket", Category: model.CategoryLeather, Collection: model.CollectionInferno, PriceCents: 129500, CreatedAt: base},
		{ID: 2, Name: "Flaming Skull Bomber", Description: "Embroidered bomber", Category: model.CategoryBomber, Collection: model.CollectionInferno, PriceCents: 89500, CreatedAt: base.Add(24 * time.Hour)},
		{ID: 3, Name: "Phoenix Rising Varsity", Description: "Wool-blend varsity", Category: model.CategoryVarsity, Collection: model.CollectionPhoenix, PriceCents: 59500, CreatedAt: base.Add(48 * time.Hour)},
		{ID: 4, Name: "Desert Rose Trucker", Description: "Washed denim trucker", Category: model.CategoryTrucker, Collection: model.CollectionEssentials, PriceCents: 44500, CreatedAt: base.Add(72 * time.Hour)},
		{ID: 5, Name: "Zen Master Coach", Description: "Lightweight coach jacket", Category: model.CategoryCoach, Collection: model.CollectionEssentials, PriceCents: 39500, CreatedAt: base.Add(96 * time.Hour)},
		{ID: 6, Name: "Midnight Canvas Field", Description: "Waxed canvas field jacket", Category: model.CategoryField, Collection: model.CollectionPhoenix, PriceCents: 50000, CreatedAt: base.Add(120 * time.Hour)},
	}
}

func TestApply_NoFiltersReturnsAll(t *testing.T) {
	products := sampleProducts()

	result := Apply(products, FilterState{}, "", SortFeatured)

	assert.Len(t, result.Products, len(products))
	assert.Equal(t, len(result.Products), result.Count)
	assert.False(t, result.QueryTooShort)
}

func TestApply_CountAlwaysMatchesLength(t *testing.T) {
	products := sampleProducts()

	cases := []struct {
		state   FilterState
		query   string
		sortKey SortKey
	}{
		{FilterState{}, "", SortFeatured},
		{FilterState{Categories: []model.ProductCategory{model.CategoryLeather}}, "", SortPriceAsc},
		{FilterState{PriceRange: PriceRangeOver1000}, "", SortNewest},
		{FilterState{}, "jacket", SortPriceDesc},
		{FilterState{}, "x", SortFeatured},
		{FilterState{}, "nomatchxyz", SortFeatured},
	}
	for _, tc := range cases {
		result := Apply(products, tc.state, tc.query, tc.sortKey)
		assert.Equal(t, len(result.Products), result.Count)
	}
}

func TestApply_SingleCategory(t *testing.T) {
	result := Apply(sampleProducts(), FilterState{
		Categories: []model.ProductCategory{model.CategoryLeather},
	}, "", SortFeatured)

	require.Len(t, result.Products, 1)
	assert.Equal(t, "Third Eye Patched Leather", result.Products[0].Name)
}

func TestApply_CategoriesAreORedWithinDimension(t *testing.T) {
	result := Apply(sampleProducts(), FilterState{
		Categories: []model.ProductCategory{model.CategoryLeather, model.CategoryBomber},
	}, "", SortFeatured)

	assert.Len(t, result.Products, 2)
}

func TestApply_DimensionsAreANDedTogether(t *testing.T) {
	// Inferno collection has a leather and a bomber; category narrows it to one
	result := Apply(sampleProducts(), FilterState{
		Categories:  []model.ProductCategory{model.CategoryBomber},
		Collections: []model.ProductCollection{model.CollectionInferno},
	}, "", SortFeatured)

	require.Len(t, result.Products, 1)
	assert.Equal(t, "Flaming Skull Bomber", result.Products[0].Name)
}

func TestApply_PriceBuckets(t *testing.T) {
	products := sampleProducts()

	under := Apply(products, FilterState{PriceRange: PriceRangeUnder500}, "", SortFeatured)
	mid := Apply(products, FilterState{PriceRange: PriceRange500To1000}, "", SortFeatured)
	over := Apply(products, FilterState{PriceRange: PriceRangeOver1000}, "", SortFeatured)

	// $445 and $395 are under; $595, $895 and exactly $500 are mid; $1295 is over
	assert.Len(t, under.Products, 2)
	assert.Len(t, mid.Products, 3)
	require.Len(t, over.Products, 1)
	assert.Equal(t, "Third Eye Patched Leather", over.Products[0].Name)

	// The buckets partition the catalog
	assert.Equal(t, len(products), under.Count+mid.Count+over.Count)
}

func TestApply_PriceBucketBoundaries(t *testing.T) {
	products := []model.Product{
		{ID: 1, Name: "At 500", PriceCents: 50000},
		{ID: 2, Name: "At 1000", PriceCents: 100000},
	}

	mid := Apply(products, FilterState{PriceRange: PriceRange500To1000}, "", SortFeatured)
	assert.Len(t, mid.Products, 2)

	assert.Empty(t, Apply(products, FilterState{PriceRange: PriceRangeUnder500}, "", SortFeatured).Products)
	assert.Empty(t, Apply(products, FilterState{PriceRange: PriceRangeOver1000}, "", SortFeatured).Products)
}

func TestApply_ZeroMatches(t *testing.T) {
	result := Apply(sampleProducts(), FilterState{
		Categories: []model.ProductCategory{model.CategoryDenim},
	}, "", SortFeatured)

	assert.Empty(t, result.Products)
	assert.Equal(t, 0, result.Count)
}

func TestApply_SearchMatchesNameDescriptionCategoryCollection(t *testing.T) {
	products := sampleProducts()

	byName := Apply(products, FilterState{}, "zen master", SortFeatured)
	require.Len(t, byName.Products, 1)
	assert.Equal(t, "Zen Master Coach", byName.Products[0].Name)

	byDescription := Apply(products, FilterState{}, "waxed", SortFeatured)
	require.Len(t, byDescription.Products, 1)
	assert.Equal(t, "Midnight Canvas Field", byDescription.Products[0].Name)

	byCategory := Apply(products, FilterState{}, "bomber", SortFeatured)
	assert.Len(t, byCategory.Products, 2)

	// "phoenix" names one product and tags another; both belong in the results
	byCollection := Apply(products, FilterState{}, "phoenix", SortFeatured)
	require.Len(t, byCollection.Products, 2)
	assert.Equal(t, "Phoenix Rising Varsity", byCollection.Products[0].Name)
	assert.Equal(t, "Midnight Canvas Field", byCollection.Products[1].Name)
}

func TestApply_SearchMatchesCollectionTagOnly(t *testing.T) {
	// Neither name nor description nor category mentions the collection
	products := []model.Product{
		{ID: 1, Name: "Flaming Skull Bomber", Description: "Embroidered bomber", Category: model.CategoryBomber, Collection: model.CollectionPhoenix, PriceCents: 89500},
		{ID: 2, Name: "Third Eye Patched Leather", Description: "Hand-patched jacket", Category: model.CategoryLeather, Collection: model.CollectionInferno, PriceCents: 129500},
	}

	result := Apply(products, FilterState{}, "phoenix", SortFeatured)

	require.Len(t, result.Products, 1)
	assert.Equal(t, "Flaming Skull Bomber", result.Products[0].Name)

	inferno := Apply(products, FilterState{}, "inferno", SortFeatured)
	require.Len(t, inferno.Products, 1)
	assert.Equal(t, "Third Eye Patched Leather", inferno.Products[0].Name)
}

func TestApply_SearchIsCaseInsensitive(t *testing.T) {
	result := Apply(sampleProducts(), FilterState{}, "THIRD EYE", SortFeatured)
	assert.Len(t, result.Products, 1)
}

func TestApply_SearchPreemptsFilters(t *testing.T) {
	// Query matches a product the facet state would exclude
	result := Apply(sampleProducts(), FilterState{
		Categories: []model.ProductCategory{model.CategoryCoach},
	}, "leather", SortFeatured)

	require.Len(t, result.Products, 1)
	assert.Equal(t, "Third Eye Patched Leather", result.Products[0].Name)
}

func TestApply_ShortQueryIsDistinctFromZeroMatches(t *testing.T) {
	products := sampleProducts()

	short := Apply(products, FilterState{}, "x", SortFeatured)
	assert.True(t, short.QueryTooShort)
	assert.Equal(t, len(products), short.Count)

	none := Apply(products, FilterState{}, "zzzznothing", SortFeatured)
	assert.False(t, none.QueryTooShort)
	assert.Equal(t, 0, none.Count)
}

func TestApply_WhitespaceQueryIgnored(t *testing.T) {
	result := Apply(sampleProducts(), FilterState{}, "   ", SortFeatured)
	assert.False(t, result.QueryTooShort)
	assert.Len(t, result.Products, len(sampleProducts()))
}

func TestApply_SortPriceAscending(t *testing.T) {
	result := Apply(sampleProducts(), FilterState{}, "", SortPriceAsc)

	for i := 1; i < len(result.Products); i++ {
		assert.LessOrEqual(t, result.Products[i-1].PriceCents, result.Products[i].PriceCents)
	}
}

func TestApply_SortPriceDescending(t *testing.T) {
	result := Apply(sampleProducts(), FilterState{}, "", SortPriceDesc)

	for i := 1; i < len(result.Products); i++ {
		assert.GreaterOrEqual(t, result.Products[i-1].PriceCents, result.Products[i].PriceCents)
	}
}

func TestApply_SortNewestFirst(t *testing.T) {
	result := Apply(sampleProducts(), FilterState{}, "", SortNewest)

	require.NotEmpty(t, result.Products)
	assert.Equal(t, "Midnight Canvas Field", result.Products[0].Name)
	for i := 1; i < len(result.Products); i++ {
		assert.False(t, result.Products[i-1].CreatedAt.Before(result.Products[i].CreatedAt))
	}
}

func TestApply_SortIsStableForEqualPrices(t *testing.T) {
	products := []model.Product{
		{ID: 1, Name: "First", PriceCents: 50000},
		{ID: 2, Name: "Second", PriceCents: 50000},
		{ID: 3, Name: "Third", PriceCents: 50000},
	}

	result := Apply(products, FilterState{}, "", SortPriceAsc)

	require.Len(t, result.Products, 3)
	assert.Equal(t, "First", result.Products[0].Name)
	assert.Equal(t, "Second", result.Products[1].Name)
	assert.Equal(t, "Third", result.Products[2].Name)
}

func TestApply_FeaturedLeavesCuratedOrder(t *testing.T) {
	products := sampleProducts()
	result := Apply(products, FilterState{}, "", SortFeatured)

	for i := range products {
		assert.Equal(t, products[i].ID, result.Products[i].ID)
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	products := sampleProducts()
	originalFirst := products[0].Name

	Apply(products, FilterState{}, "", SortPriceAsc)

	assert.Equal(t, originalFirst, products[0].Name)
}

func TestParseSortKey(t *testing.T) {
	assert.Equal(t, SortPriceAsc, ParseSortKey("price-asc"))
	assert.Equal(t, SortPriceDesc, ParseSortKey("price-desc"))
	assert.Equal(t, SortNewest, ParseSortKey("newest"))
	assert.Equal(t, SortFeatured, ParseSortKey("featured"))
	assert.Equal(t, SortFeatured, ParseSortKey(""))
	assert.Equal(t, SortFeatured, ParseSortKey("bogus"))
}

func TestParsePriceRange(t *testing.T) {
	assert.Equal(t, PriceRangeUnder500, ParsePriceRange("under500"))
	assert.Equal(t, PriceRange500To1000, ParsePriceRange("500to1000"))
	assert.Equal(t, PriceRangeOver1000, ParsePriceRange("over1000"))
	assert.Equal(t, PriceRangeNone, ParsePriceRange(""))
	assert.Equal(t, PriceRangeNone, ParsePriceRange("cheap"))
}
