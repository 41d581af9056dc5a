// Package store loads the read-only product and order catalogs.
//
// Catalogs are immutable for the lifetime of a run; concurrent reads need no
// locking because nothing writes to them. Failures surface as ErrStoreAccess
// so the tools can answer with a structured "try again later" result instead
// of crashing the turn.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/evoai/commerce-agent/internal/agent/model"
	logx "github.com/evoai/commerce-agent/pkg/logger"
)

// ErrStoreAccess marks an unreadable or corrupt catalog file.
var ErrStoreAccess = errors.New("catalog store unavailable")

// Catalog is the read-only lookup capability shared by the tools.
type Catalog struct {
	products []model.Product
	orders   []model.Order
}

// Load reads both catalogs from disk.
func Load(cfg model.CatalogConfig) (*Catalog, error) {
	products, err := readProducts(cfg.ProductsPath)
	if err != nil {
		return nil, err
	}
	orders, err := readOrders(cfg.OrdersPath)
	if err != nil {
		return nil, err
	}

	logx.Debug().
		Int("products", len(products)).
		Int("orders", len(orders)).
		Msg("catalogs loaded")

	return &Catalog{products: products, orders: orders}, nil
}

// New builds a catalog directly from records; used by tests and fixtures.
func New(products []model.Product, orders []model.Order) *Catalog {
	return &Catalog{
		products: append([]model.Product(nil), products...),
		orders:   append([]model.Order(nil), orders...),
	}
}

// Products returns all catalog products.
func (c *Catalog) Products() []model.Product {
	return c.products
}

// Orders returns all order records.
func (c *Catalog) Orders() []model.Order {
	return c.orders
}

// FindOrder returns the order with the given id, if present.
func (c *Catalog) FindOrder(orderID string) (model.Order, bool) {
	for _, o := range c.orders {
		if o.OrderID == orderID {
			return o, true
		}
	}
	return model.Order{}, false
}

func readProducts(path string) ([]model.Product, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		logx.Error().Err(err).Str("path", path).Msg("failed to read product catalog")
		return nil, fmt.Errorf("%w: read %s: %v", ErrStoreAccess, path, err)
	}
	var products []model.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		logx.Error().Err(err).Str("path", path).Msg("failed to decode product catalog")
		return nil, fmt.Errorf("%w: decode %s: %v", ErrStoreAccess, path, err)
	}
	return products, nil
}

func readOrders(path string) ([]model.Order, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		logx.Error().Err(err).Str("path", path).Msg("failed to read order catalog")
		return nil, fmt.Errorf("%w: read %s: %v", ErrStoreAccess, path, err)
	}
	var orders []model.Order
	if err := json.Unmarshal(raw, &orders); err != nil {
		logx.Error().Err(err).Str("path", path).Msg("failed to decode order catalog")
		return nil, fmt.Errorf("%w: decode %s: %v", ErrStoreAccess, path, err)
	}
	return orders, nil
}
