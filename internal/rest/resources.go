package rest

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"salesdesk/pkg/domain"
)

// Typed resource bindings for the three entity kinds. Per-entity behavior
// lives here as configuration over the generic Resource; only products add
// an extra operation.

// Customers binds the client to /api/customers.
func Customers(c *Client) *Resource[domain.Customer, domain.CustomerCreate, domain.CustomerUpdate] {
	return NewResource[domain.Customer, domain.CustomerCreate, domain.CustomerUpdate](c, "/api/customers")
}

// Orders binds the client to /api/orders.
func Orders(c *Client) *Resource[domain.Order, domain.OrderCreate, domain.OrderUpdate] {
	return NewResource[domain.Order, domain.OrderCreate, domain.OrderUpdate](c, "/api/orders")
}

// ProductResource extends the generic product resource with the low-stock
// query the backend exposes alongside the collection.
type ProductResource struct {
	*Resource[domain.Product, domain.ProductCreate, domain.ProductUpdate]
}

// Products binds the client to /api/products.
func Products(c *Client) *ProductResource {
	return &ProductResource{
		Resource: NewResource[domain.Product, domain.ProductCreate, domain.ProductUpdate](c, "/api/products"),
	}
}

// DefaultLowStockThreshold matches the backend's default cutoff.
const DefaultLowStockThreshold = 10

// LowStock lists products whose stock is at or below threshold. A threshold
// below one falls back to the default.
func (r *ProductResource) LowStock(ctx context.Context, threshold int) ([]domain.Product, error) {
	if threshold < 1 {
		threshold = DefaultLowStockThreshold
	}
	query := url.Values{"threshold": []string{strconv.Itoa(threshold)}}
	var out []domain.Product
	if err := r.client.Do(ctx, http.MethodGet, "/api/products/low-stock", query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
