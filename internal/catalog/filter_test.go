package catalog

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"storefront-api/internal/model"
)

func fixtures() []*model.Product {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	return []*model.Product{
		{ID: "mini_dragon", Name: "Dragon Miniature", Description: "Hand-painted resin dragon", Category: "miniatures", Material: "resin", Price: decimal.NewFromFloat(18.50), CreatedAt: base},
		{ID: "mini_knight", Name: "Knight Miniature", Description: "Pewter knight with shield", Category: "miniatures", Material: "pewter", Price: decimal.NewFromFloat(24.00), CreatedAt: base.Add(24 * time.Hour)},
		{ID: "dice_oak", Name: "Oak Dice Set", Description: "Seven-piece carved oak dice set", Category: "dice", Material: "wood", Price: decimal.NewFromFloat(32.00), CreatedAt: base.Add(48 * time.Hour)},
		{ID: "tray_walnut", Name: "Walnut Dice Tray", Description: "Folding walnut tray with felt lining", Category: "accessories", Material: "wood", Price: decimal.NewFromFloat(45.00), CreatedAt: base.Add(72 * time.Hour)},
	}
}

func ids(products []*model.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestApply_CategoryFilter(t *testing.T) {
	got := Apply(fixtures(), Query{Category: "miniatures", Sort: SortOldest})

	require.Len(t, got, 2)
	for _, p := range got {
		assert.Equal(t, "miniatures", p.Category)
	}
}

func TestApply_CategoryAndPriceRangeNarrows(t *testing.T) {
	min := decimal.Zero
	max := decimal.NewFromInt(20)

	got := Apply(fixtures(), Query{
		Category: "miniatures",
		MinPrice: &min,
		MaxPrice: &max,
	})

	require.Len(t, got, 1)
	assert.Equal(t, "mini_dragon", got[0].ID)
}

func TestApply_SearchIsCaseInsensitive(t *testing.T) {
	tests := []struct {
		name   string
		search string
		want   []string
	}{
		{name: "matches name", search: "DICE", want: []string{"dice_oak", "tray_walnut"}},
		{name: "matches description", search: "felt", want: []string{"tray_walnut"}},
		{name: "matches material", search: "resin", want: []string{"mini_dragon"}},
		{name: "no match", search: "plastic", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(fixtures(), Query{Search: tt.search, Sort: SortOldest})
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestApply_MaterialSetMembership(t *testing.T) {
	got := Apply(fixtures(), Query{Materials: []string{"wood", "pewter"}, Sort: SortOldest})
	assert.Equal(t, []string{"mini_knight", "dice_oak", "tray_walnut"}, ids(got))
}

func TestApply_SortOrders(t *testing.T) {
	tests := []struct {
		sort string
		want []string
	}{
		{SortNewest, []string{"tray_walnut", "dice_oak", "mini_knight", "mini_dragon"}},
		{SortOldest, []string{"mini_dragon", "mini_knight", "dice_oak", "tray_walnut"}},
		{SortPriceAsc, []string{"mini_dragon", "mini_knight", "dice_oak", "tray_walnut"}},
		{SortPriceDesc, []string{"tray_walnut", "dice_oak", "mini_knight", "mini_dragon"}},
		{SortNameAsc, []string{"mini_dragon", "mini_knight", "dice_oak", "tray_walnut"}},
		{SortNameDesc, []string{"tray_walnut", "dice_oak", "mini_knight", "mini_dragon"}},
		{"garbage", []string{"tray_walnut", "dice_oak", "mini_knight", "mini_dragon"}}, // falls back to newest
	}

	for _, tt := range tests {
		t.Run(tt.sort, func(t *testing.T) {
			got := Apply(fixtures(), Query{Sort: tt.sort})
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	in := fixtures()
	Apply(in, Query{Sort: SortPriceDesc})
	assert.Equal(t, "mini_dragon", in[0].ID, "input slice order must be preserved")
}
