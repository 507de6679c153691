package view

import "salesdesk/pkg/domain"

// Form models mirror the modal's editable fields for each entity kind. A
// blank form carries type-appropriate defaults; a form built from an entity
// copies every editable field. Update payloads send the full field set; the
// backend treats omitted fields as unchanged, but the forms always send all
// of them.

// CustomerForm holds the editable customer fields.
type CustomerForm struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// NewCustomerForm returns a blank form, or one pre-populated from entity.
func NewCustomerForm(entity *domain.Customer) CustomerForm {
	if entity == nil {
		return CustomerForm{}
	}
	return CustomerForm{
		Name:    entity.Name,
		Email:   entity.Email,
		Phone:   entity.Phone,
		Address: entity.Address,
	}
}

// CreatePayload builds the POST body.
func (f CustomerForm) CreatePayload() domain.CustomerCreate {
	return domain.CustomerCreate{Name: f.Name, Email: f.Email, Phone: f.Phone, Address: f.Address}
}

// UpdatePayload builds the PUT body for the given id.
func (f CustomerForm) UpdatePayload(id int64) domain.CustomerUpdate {
	return domain.CustomerUpdate{
		ID:      id,
		Name:    &f.Name,
		Email:   &f.Email,
		Phone:   &f.Phone,
		Address: &f.Address,
	}
}

// ProductForm holds the editable product fields.
type ProductForm struct {
	Name        string
	Description string
	Price       float64
	Cost        float64
	Stock       int
	Category    string
	Supplier    string
	Status      domain.ProductStatus
}

// NewProductForm returns a blank form (status defaults to active), or one
// pre-populated from entity.
func NewProductForm(entity *domain.Product) ProductForm {
	if entity == nil {
		return ProductForm{Status: domain.ProductActive}
	}
	return ProductForm{
		Name:        entity.Name,
		Description: entity.Description,
		Price:       entity.Price,
		Cost:        entity.Cost,
		Stock:       entity.Stock,
		Category:    entity.Category,
		Supplier:    entity.Supplier,
		Status:      entity.Status,
	}
}

// CreatePayload builds the POST body.
func (f ProductForm) CreatePayload() domain.ProductCreate {
	return domain.ProductCreate{
		Name:        f.Name,
		Description: f.Description,
		Price:       f.Price,
		Cost:        f.Cost,
		Stock:       f.Stock,
		Category:    f.Category,
		Supplier:    f.Supplier,
		Status:      f.Status,
	}
}

// UpdatePayload builds the PUT body for the given id.
func (f ProductForm) UpdatePayload(id int64) domain.ProductUpdate {
	return domain.ProductUpdate{
		ID:          id,
		Name:        &f.Name,
		Description: &f.Description,
		Price:       &f.Price,
		Cost:        &f.Cost,
		Stock:       &f.Stock,
		Category:    &f.Category,
		Supplier:    &f.Supplier,
		Status:      &f.Status,
	}
}

// OrderForm holds the editable order fields. Creation selects a customer and
// line items; after creation only the status pair is mutable.
type OrderForm struct {
	CustomerID    int64
	Items         []domain.OrderItemCreate
	Tax           float64
	Shipping      float64
	Status        domain.OrderStatus
	PaymentStatus domain.PaymentStatus
}

// NewOrderForm returns a blank form (both statuses default to pending), or
// one pre-populated from entity.
func NewOrderForm(entity *domain.Order) OrderForm {
	if entity == nil {
		return OrderForm{Status: domain.OrderPending, PaymentStatus: domain.PaymentPending}
	}
	items := make([]domain.OrderItemCreate, 0, len(entity.Items))
	for _, item := range entity.Items {
		items = append(items, domain.OrderItemCreate{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return OrderForm{
		CustomerID:    entity.CustomerID,
		Items:         items,
		Tax:           entity.Tax,
		Shipping:      entity.Shipping,
		Status:        entity.Status,
		PaymentStatus: entity.PaymentStatus,
	}
}

// CreatePayload builds the POST body.
func (f OrderForm) CreatePayload() domain.OrderCreate {
	return domain.OrderCreate{
		CustomerID: f.CustomerID,
		Items:      f.Items,
		Tax:        f.Tax,
		Shipping:   f.Shipping,
	}
}

// UpdatePayload builds the PUT body for the given id.
func (f OrderForm) UpdatePayload(id int64) domain.OrderUpdate {
	return domain.OrderUpdate{
		ID:            id,
		Status:        &f.Status,
		PaymentStatus: &f.PaymentStatus,
	}
}
