package view

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"salesdesk/internal/store"
	"salesdesk/pkg/domain"
)

// scriptedRemote implements the customer accessor with overridable behavior.
type scriptedRemote struct {
	createErr error
	updateErr error
	deleteErr error
}

func (s *scriptedRemote) List(context.Context) ([]domain.Customer, error) {
	return nil, fmt.Errorf("unexpected List")
}

func (s *scriptedRemote) Get(_ context.Context, id int64) (domain.Customer, error) {
	return domain.Customer{ID: id}, nil
}

func (s *scriptedRemote) Create(_ context.Context, payload domain.CustomerCreate) (domain.Customer, error) {
	if s.createErr != nil {
		return domain.Customer{}, s.createErr
	}
	return domain.Customer{ID: 10, Name: payload.Name, Email: payload.Email}, nil
}

func (s *scriptedRemote) Update(_ context.Context, payload domain.CustomerUpdate) (domain.Customer, error) {
	if s.updateErr != nil {
		return domain.Customer{}, s.updateErr
	}
	out := domain.Customer{ID: payload.ID}
	if payload.Name != nil {
		out.Name = *payload.Name
	}
	return out, nil
}

func (s *scriptedRemote) Delete(context.Context, int64) error {
	return s.deleteErr
}

func newCustomerFixture(remote *scriptedRemote) (*store.Collection[domain.Customer, domain.CustomerCreate, domain.CustomerUpdate], *Notifier, *Modal[domain.Customer, domain.CustomerCreate, domain.CustomerUpdate]) {
	col := store.NewCollection[domain.Customer, domain.CustomerCreate, domain.CustomerUpdate]("customer", "customers", remote)
	feedback := NewNotifier(0)
	modal := NewModal("customer", col, feedback)
	return col, feedback, modal
}

func TestModalSubmitCreateClosesOnSuccess(t *testing.T) {
	col, feedback, modal := newCustomerFixture(&scriptedRemote{})
	modal.OpenBlank()

	form := NewCustomerForm(nil)
	form.Name = "Acme"
	if err := modal.Submit(context.Background(), form); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if modal.IsOpen() {
		t.Fatalf("modal should close on success")
	}
	snap := col.Snapshot()
	if len(snap.Entities) != 1 || snap.Entities[0].Name != "Acme" {
		t.Fatalf("created entity not appended: %+v", snap.Entities)
	}
	fb, ok := feedback.Current()
	if !ok || fb.Severity != SeveritySuccess {
		t.Fatalf("expected success feedback, got %+v ok=%v", fb, ok)
	}
	if fb.Message != "Customer created successfully" {
		t.Fatalf("unexpected message %q", fb.Message)
	}
}

func TestModalSubmitStaysOpenOnFailure(t *testing.T) {
	col, feedback, modal := newCustomerFixture(&scriptedRemote{createErr: fmt.Errorf("boom")})
	modal.OpenBlank()

	if err := modal.Submit(context.Background(), NewCustomerForm(nil)); err == nil {
		t.Fatalf("expected error")
	}
	if !modal.IsOpen() {
		t.Fatalf("modal should stay open on failure")
	}
	if n := len(col.Snapshot().Entities); n != 0 {
		t.Fatalf("no entity should be appended, got %d", n)
	}
	fb, ok := feedback.Current()
	if !ok || fb.Severity != SeverityError {
		t.Fatalf("expected error feedback, got %+v ok=%v", fb, ok)
	}
}

func TestModalSubmitEditRoutesToUpdate(t *testing.T) {
	col, feedback, modal := newCustomerFixture(&scriptedRemote{})
	col.Replace([]domain.Customer{{ID: 1, Name: "Acme"}})
	modal.OpenEdit(domain.Customer{ID: 1, Name: "Acme"})

	form := NewCustomerForm(&domain.Customer{ID: 1, Name: "Acme"})
	form.Name = "Acme Corp"
	if err := modal.Submit(context.Background(), form); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got := col.Snapshot().Entities[0].Name; got != "Acme Corp" {
		t.Fatalf("entity not updated, got %q", got)
	}
	fb, _ := feedback.Current()
	if fb.Message != "Customer updated successfully" {
		t.Fatalf("unexpected message %q", fb.Message)
	}
}

func TestModalDelete(t *testing.T) {
	col, feedback, modal := newCustomerFixture(&scriptedRemote{})
	col.Replace([]domain.Customer{{ID: 1}})

	if err := modal.Delete(context.Background(), 1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if n := len(col.Snapshot().Entities); n != 0 {
		t.Fatalf("entity should be removed, got %d", n)
	}
	fb, _ := feedback.Current()
	if fb.Message != "Customer deleted successfully" {
		t.Fatalf("unexpected message %q", fb.Message)
	}
}

func TestModalDeleteFailure(t *testing.T) {
	col, feedback, modal := newCustomerFixture(&scriptedRemote{deleteErr: fmt.Errorf("down")})
	col.Replace([]domain.Customer{{ID: 1}})

	if err := modal.Delete(context.Background(), 1); err == nil {
		t.Fatalf("expected error")
	}
	if n := len(col.Snapshot().Entities); n != 1 {
		t.Fatalf("entity should survive a failed delete")
	}
	fb, _ := feedback.Current()
	if fb.Severity != SeverityError {
		t.Fatalf("expected error feedback")
	}
}

func TestNotifierExpires(t *testing.T) {
	n := NewNotifier(DefaultFeedbackTTL)
	base := time.Now()
	n.nowFn = func() time.Time { return base }

	n.Success("saved")
	if _, ok := n.Current(); !ok {
		t.Fatalf("message should be live")
	}
	base = base.Add(DefaultFeedbackTTL - time.Millisecond)
	if _, ok := n.Current(); !ok {
		t.Fatalf("message should still be live just before the TTL")
	}
	base = base.Add(2 * time.Millisecond)
	if _, ok := n.Current(); ok {
		t.Fatalf("message should auto-dismiss after the TTL")
	}
}

func TestNotifierShowRestartsTimer(t *testing.T) {
	n := NewNotifier(DefaultFeedbackTTL)
	base := time.Now()
	n.nowFn = func() time.Time { return base }

	n.Success("first")
	base = base.Add(5 * time.Second)
	n.Error("second")
	base = base.Add(5 * time.Second)
	fb, ok := n.Current()
	if !ok || fb.Message != "second" {
		t.Fatalf("latest message should still be live, got %+v ok=%v", fb, ok)
	}
}

func TestNotifierDismiss(t *testing.T) {
	n := NewNotifier(0)
	n.Success("saved")
	n.Dismiss()
	if _, ok := n.Current(); ok {
		t.Fatalf("dismissed message should not be returned")
	}
}

func TestCustomerFormRoundTrip(t *testing.T) {
	entity := domain.Customer{ID: 4, Name: "Acme", Email: "a@acme.test", Phone: "555", Address: "1 Main"}
	form := NewCustomerForm(&entity)
	payload := form.UpdatePayload(entity.ID)
	if payload.ID != 4 || *payload.Name != "Acme" || *payload.Email != "a@acme.test" {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestProductFormDefaults(t *testing.T) {
	form := NewProductForm(nil)
	if form.Status != domain.ProductActive {
		t.Fatalf("blank product form should default to active, got %q", form.Status)
	}
}

func TestOrderFormDefaults(t *testing.T) {
	form := NewOrderForm(nil)
	if form.Status != domain.OrderPending || form.PaymentStatus != domain.PaymentPending {
		t.Fatalf("blank order form should default both statuses to pending, got %+v", form)
	}
}

func TestOrderFormUpdateOnlySendsStatuses(t *testing.T) {
	entity := domain.Order{ID: 2, CustomerID: 1, Status: domain.OrderProcessing, PaymentStatus: domain.PaymentPaid}
	payload := NewOrderForm(&entity).UpdatePayload(entity.ID)
	if payload.ID != 2 || *payload.Status != domain.OrderProcessing || *payload.PaymentStatus != domain.PaymentPaid {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestAccentsFallBackToGray(t *testing.T) {
	if got := OrderStatusAccent("bogus"); got != AccentGray {
		t.Fatalf("unknown order status should be gray, got %q", got)
	}
	if got := PaymentStatusAccent("bogus"); got != AccentGray {
		t.Fatalf("unknown payment status should be gray, got %q", got)
	}
	if got := ProductStatusAccent("bogus"); got != AccentGray {
		t.Fatalf("unknown product status should be gray, got %q", got)
	}
	if got := NotificationAccent("bogus"); got != AccentGray {
		t.Fatalf("unknown notification type should be gray, got %q", got)
	}
}

func TestAccentMapping(t *testing.T) {
	if OrderStatusAccent(domain.OrderShipped) != AccentPurple {
		t.Fatalf("shipped should be purple")
	}
	if PaymentStatusAccent(domain.PaymentRefunded) != AccentBlue {
		t.Fatalf("refunded should be blue")
	}
	if ProductStatusAccent(domain.ProductDiscontinued) != AccentRed {
		t.Fatalf("discontinued should be red")
	}
}

func TestRenderCustomersShowsStateAndRows(t *testing.T) {
	var buf bytes.Buffer
	RenderCustomers(&buf, store.Snapshot[domain.Customer]{
		Entities: []domain.Customer{{ID: 1, Name: "Acme", Email: "a@acme.test"}},
		Err:      "backend unreachable",
	})
	out := buf.String()
	if !strings.Contains(out, "error: backend unreachable") {
		t.Fatalf("error line missing:\n%s", out)
	}
	if !strings.Contains(out, "Acme") {
		t.Fatalf("row missing:\n%s", out)
	}
}

func TestRenderOrdersColorizesStatuses(t *testing.T) {
	var buf bytes.Buffer
	RenderOrders(&buf, store.Snapshot[domain.Order]{
		Entities: []domain.Order{{ID: 1, CustomerName: "Acme", Status: domain.OrderDelivered, PaymentStatus: domain.PaymentPaid}},
	}, true)
	if !strings.Contains(buf.String(), "\x1b[32m") {
		t.Fatalf("expected green accent in output:\n%q", buf.String())
	}
}

func TestRenderNotificationsMarksUnread(t *testing.T) {
	var buf bytes.Buffer
	RenderNotifications(&buf, []domain.Notification{
		{ID: 1, Title: "Low stock", Read: false},
		{ID: 2, Title: "Order shipped", Read: true},
	}, false)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus two rows, got %d lines", len(lines))
	}
	if !strings.Contains(lines[1], "*") {
		t.Fatalf("unread row should carry a marker: %q", lines[1])
	}
	if strings.Contains(lines[2], "*") {
		t.Fatalf("read row should not carry a marker: %q", lines[2])
	}
}

func TestRenderFeedback(t *testing.T) {
	n := NewNotifier(0)
	n.Error("Error saving customer")
	var buf bytes.Buffer
	RenderFeedback(&buf, n, false)
	if got := strings.TrimSpace(buf.String()); got != "Error saving customer" {
		t.Fatalf("unexpected output %q", got)
	}
}
