package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"salesdesk/pkg/domain"
)

// fakeBackend serves a minimal customer and product API and records the
// requests it saw.
func fakeBackend(t *testing.T) (*httptest.Server, *[]string) {
	t.Helper()
	var seen []string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/customers", func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Method+" "+r.URL.String())
		json.NewEncoder(w).Encode([]domain.Customer{{ID: 1, Name: "Acme"}, {ID: 2, Name: "Globex"}})
	})
	mux.HandleFunc("GET /api/customers/1", func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Method+" "+r.URL.String())
		json.NewEncoder(w).Encode(domain.Customer{ID: 1, Name: "Acme"})
	})
	mux.HandleFunc("POST /api/customers", func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Method+" "+r.URL.String())
		var payload domain.CustomerCreate
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(domain.Customer{ID: 3, Name: payload.Name, Email: payload.Email})
	})
	mux.HandleFunc("PUT /api/customers/1", func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Method+" "+r.URL.String())
		var payload domain.CustomerUpdate
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		out := domain.Customer{ID: 1, Name: "Acme"}
		if payload.Name != nil {
			out.Name = *payload.Name
		}
		json.NewEncoder(w).Encode(out)
	})
	mux.HandleFunc("DELETE /api/customers/2", func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Method+" "+r.URL.String())
		json.NewEncoder(w).Encode(map[string]string{"message": "Customer deleted successfully"})
	})
	mux.HandleFunc("GET /api/products/low-stock", func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Method+" "+r.URL.String())
		json.NewEncoder(w).Encode([]domain.Product{{ID: 7, Name: "Widget", Stock: 2}})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &seen
}

func testClient(t *testing.T, base string) *Client {
	t.Helper()
	client, err := NewClient(base, WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestResourceList(t *testing.T) {
	srv, _ := fakeBackend(t)
	customers := Customers(testClient(t, srv.URL))

	got, err := customers.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].Name != "Acme" || got[1].Name != "Globex" {
		t.Fatalf("unexpected list %+v", got)
	}
}

func TestResourceGet(t *testing.T) {
	srv, _ := fakeBackend(t)
	customers := Customers(testClient(t, srv.URL))

	got, err := customers.Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != 1 || got.Name != "Acme" {
		t.Fatalf("unexpected entity %+v", got)
	}
}

func TestResourceGetMissing(t *testing.T) {
	srv, _ := fakeBackend(t)
	customers := Customers(testClient(t, srv.URL))

	_, err := customers.Get(context.Background(), 404)
	if !IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestResourceCreate(t *testing.T) {
	srv, seen := fakeBackend(t)
	customers := Customers(testClient(t, srv.URL))

	created, err := customers.Create(context.Background(), domain.CustomerCreate{Name: "Initech", Email: "it@initech.test"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != 3 || created.Name != "Initech" {
		t.Fatalf("unexpected created entity %+v", created)
	}
	last := (*seen)[len(*seen)-1]
	if last != "POST /api/customers" {
		t.Fatalf("unexpected request %q", last)
	}
}

func TestResourceUpdateTargetsPayloadID(t *testing.T) {
	srv, seen := fakeBackend(t)
	customers := Customers(testClient(t, srv.URL))

	name := "Acme Corp"
	updated, err := customers.Update(context.Background(), domain.CustomerUpdate{ID: 1, Name: &name})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Acme Corp" {
		t.Fatalf("unexpected entity %+v", updated)
	}
	last := (*seen)[len(*seen)-1]
	if last != "PUT /api/customers/1" {
		t.Fatalf("unexpected request %q", last)
	}
}

func TestResourceDelete(t *testing.T) {
	srv, seen := fakeBackend(t)
	customers := Customers(testClient(t, srv.URL))

	if err := customers.Delete(context.Background(), 2); err != nil {
		t.Fatalf("delete: %v", err)
	}
	last := (*seen)[len(*seen)-1]
	if last != "DELETE /api/customers/2" {
		t.Fatalf("unexpected request %q", last)
	}
}

func TestProductLowStock(t *testing.T) {
	srv, seen := fakeBackend(t)
	products := Products(testClient(t, srv.URL))

	got, err := products.LowStock(context.Background(), 5)
	if err != nil {
		t.Fatalf("low stock: %v", err)
	}
	if len(got) != 1 || got[0].Stock != 2 {
		t.Fatalf("unexpected products %+v", got)
	}
	last := (*seen)[len(*seen)-1]
	if last != "GET /api/products/low-stock?threshold=5" {
		t.Fatalf("unexpected request %q", last)
	}
}

func TestProductLowStockDefaultThreshold(t *testing.T) {
	srv, seen := fakeBackend(t)
	products := Products(testClient(t, srv.URL))

	if _, err := products.LowStock(context.Background(), 0); err != nil {
		t.Fatalf("low stock: %v", err)
	}
	last := (*seen)[len(*seen)-1]
	if last != "GET /api/products/low-stock?threshold=10" {
		t.Fatalf("unexpected request %q", last)
	}
}
