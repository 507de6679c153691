package domain

// Create payloads mirror the required-field subset the backend accepts on POST.
// Update payloads carry the target id plus optional fields; nil means "leave
// unchanged" and is omitted from the request body.

// CustomerCreate is the POST body for a new customer.
type CustomerCreate struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// CustomerUpdate is the PUT body for an existing customer.
type CustomerUpdate struct {
	ID      int64   `json:"id"`
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
}

// PayloadID returns the id of the customer being updated.
func (u CustomerUpdate) PayloadID() int64 { return u.ID }

// ProductCreate is the POST body for a new product.
type ProductCreate struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Price       float64       `json:"price"`
	Cost        float64       `json:"cost"`
	Stock       int           `json:"stock"`
	Category    string        `json:"category"`
	Supplier    string        `json:"supplier"`
	Status      ProductStatus `json:"status"`
}

// ProductUpdate is the PUT body for an existing product.
type ProductUpdate struct {
	ID          int64          `json:"id"`
	Name        *string        `json:"name,omitempty"`
	Description *string        `json:"description,omitempty"`
	Price       *float64       `json:"price,omitempty"`
	Cost        *float64       `json:"cost,omitempty"`
	Stock       *int           `json:"stock,omitempty"`
	Category    *string        `json:"category,omitempty"`
	Supplier    *string        `json:"supplier,omitempty"`
	Status      *ProductStatus `json:"status,omitempty"`
}

// PayloadID returns the id of the product being updated.
func (u ProductUpdate) PayloadID() int64 { return u.ID }

// OrderItemCreate selects a product and quantity for a new order line.
type OrderItemCreate struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// OrderCreate is the POST body for a new order. Line prices and totals are
// computed server-side from the referenced products.
type OrderCreate struct {
	CustomerID int64             `json:"customerId"`
	Items      []OrderItemCreate `json:"items"`
	Tax        float64           `json:"tax"`
	Shipping   float64           `json:"shipping"`
}

// OrderUpdate is the PUT body for an existing order. Only the status fields
// are mutable after creation.
type OrderUpdate struct {
	ID            int64          `json:"id"`
	Status        *OrderStatus   `json:"status,omitempty"`
	PaymentStatus *PaymentStatus `json:"paymentStatus,omitempty"`
}

// PayloadID returns the id of the order being updated.
func (u OrderUpdate) PayloadID() int64 { return u.ID }
