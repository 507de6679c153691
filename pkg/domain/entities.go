// Package domain defines the sales-management entity kinds, their create and
// update payloads, and the status enumerations shared across the client layers.
package domain

import "time"

// Customer is a person or company orders are placed for.
type Customer struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Key returns the customer identity.
func (c Customer) Key() int64 { return c.ID }

// Product is a sellable catalog item. Price, cost and stock invariants are
// enforced server-side, not here.
type Product struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Price       float64       `json:"price"`
	Cost        float64       `json:"cost"`
	Stock       int           `json:"stock"`
	Category    string        `json:"category"`
	Supplier    string        `json:"supplier"`
	Status      ProductStatus `json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// Key returns the product identity.
func (p Product) Key() int64 { return p.ID }

// OrderItem is one line of an order. Total is the server-computed line total
// (quantity times unit price).
type OrderItem struct {
	ID          int64   `json:"id"`
	ProductID   int64   `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Total       float64 `json:"total"`
}

// Order references a customer by id (with a denormalized display name) and
// carries its line items plus server-computed monetary totals. The backend
// guarantees total = subtotal + tax + shipping and subtotal = sum of line totals.
type Order struct {
	ID            int64         `json:"id"`
	CustomerID    int64         `json:"customerId"`
	CustomerName  string        `json:"customerName"`
	Status        OrderStatus   `json:"status"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	Items         []OrderItem   `json:"items"`
	Subtotal      float64       `json:"subtotal"`
	Tax           float64       `json:"tax"`
	Shipping      float64       `json:"shipping"`
	Total         float64       `json:"total"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// Key returns the order identity.
func (o Order) Key() int64 { return o.ID }

// Notification is a backend-issued message for the admin inbox.
type Notification struct {
	ID        int64            `json:"id"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"createdAt"`
}

// Key returns the notification identity.
func (n Notification) Key() int64 { return n.ID }
