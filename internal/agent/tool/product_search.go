package tool

import (
	"context"
	"sort"
	"strings"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"github.com/evoai/commerce-agent/internal/agent/model"
	"github.com/evoai/commerce-agent/internal/store"
)

type ProductSearchInput struct {
	Query    string   `json:"query"`
	PriceMax float64  `json:"price_max,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

type ProductSearchOutput struct {
	Products []model.Product `json:"products"`
	Total    int             `json:"total"`
	Error    string          `json:"error,omitempty"`
}

func newProductSearchTool(cat *store.Catalog) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolProductSearch,
			Desc: "Search the product catalog by title keywords, with an optional price ceiling and tag filter. Returns up to 2 matching products sorted by price.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"query": {
					Type:     schema.String,
					Desc:     "Title search keywords, e.g. 'midi dress'. Every keyword must appear in the title.",
					Required: true,
				},
				"price_max": {
					Type: schema.Number,
					Desc: "Maximum price in dollars. Products above this price are excluded.",
				},
				"tags": {
					Type:     schema.Array,
					ElemInfo: &schema.ParameterInfo{Type: schema.String},
					Desc:     "Tags the product must carry, e.g. [\"wedding\", \"midi\"].",
				},
			}),
		},
		func(ctx context.Context, in *ProductSearchInput) (*ProductSearchOutput, error) {
			if cat == nil {
				return &ProductSearchOutput{Error: storeUnavailableMessage}, nil
			}
			results := SearchProducts(cat.Products(), in.Query, in.PriceMax, in.Tags)
			return &ProductSearchOutput{Products: results, Total: len(results)}, nil
		},
	)
}

// SearchProducts filters by title keywords, price ceiling, and tags, then
// returns up to 2 items sorted by ascending price for determinism.
func SearchProducts(products []model.Product, query string, priceMax float64, tags []string) []model.Product {
	tokens := strings.Fields(strings.ToLower(query))

	var results []model.Product
	for _, p := range products {
		if priceMax > 0 && p.Price > priceMax {
			continue
		}
		title := strings.ToLower(p.Title)
		matched := true
		for _, tok := range tokens {
			if !strings.Contains(title, tok) {
				matched = false
				break
			}
		}
		if !matched {
			continue
		}
		if !hasAllTags(p.Tags, tags) {
			continue
		}
		results = append(results, p)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Price < results[j].Price
	})
	if len(results) > 2 {
		results = results[:2]
	}
	return results
}

func hasAllTags(have, want []string) bool {
	for _, w := range want {
		found := false
		for _, h := range have {
			if strings.EqualFold(h, w) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
