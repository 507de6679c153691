// Package app composes the client, the collection stores, the notification
// inbox and the reporting layer into one explicit container. Instances are
// constructed once at process start and passed by reference; there are no
// package-level singletons.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"salesdesk/internal/auth"
	"salesdesk/internal/blob"
	"salesdesk/internal/cache"
	"salesdesk/internal/notify"
	"salesdesk/internal/reporting"
	"salesdesk/internal/rest"
	"salesdesk/internal/store"
	"salesdesk/pkg/domain"
)

// Instantiated collection types, named for readability at call sites.
type (
	CustomerStore = store.Collection[domain.Customer, domain.CustomerCreate, domain.CustomerUpdate]
	ProductStore  = store.Collection[domain.Product, domain.ProductCreate, domain.ProductUpdate]
	OrderStore    = store.Collection[domain.Order, domain.OrderCreate, domain.OrderUpdate]
)

// DefaultBaseURL is the development backend address.
const DefaultBaseURL = "http://localhost:8001"

// Config carries the externally supplied pieces. Only BaseURL is required.
type Config struct {
	BaseURL         string
	CredentialsFile string
	Logger          *slog.Logger
	Recorder        rest.Recorder // optional remote-call metrics
	Cache           cache.Store   // optional snapshot persistence
	Archive         blob.Store    // optional report archive backend
}

// App is the root container handed to consumers.
type App struct {
	Log    *slog.Logger
	Tokens *auth.FileStore
	Client *rest.Client

	Customers *CustomerStore
	Products  *ProductStore
	Orders    *OrderStore

	ProductAPI *rest.ProductResource // low-stock query lives on the accessor
	Inbox      *notify.Inbox
	Reports    *reporting.Client
	Archive    *reporting.Archive

	cache cache.Store
}

// New wires the container from config.
func New(cfg Config) (*App, error) {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	credsPath := cfg.CredentialsFile
	if credsPath == "" {
		var err error
		credsPath, err = auth.DefaultCredentialsFile()
		if err != nil {
			return nil, err
		}
	}
	tokens := auth.NewFileStore(credsPath)

	opts := []rest.Option{
		rest.WithTokenSource(tokens),
		rest.WithLogger(log),
	}
	if cfg.Recorder != nil {
		opts = append(opts, rest.WithRecorder(cfg.Recorder))
	}
	client, err := rest.NewClient(cfg.BaseURL, opts...)
	if err != nil {
		return nil, err
	}

	products := rest.Products(client)
	a := &App{
		Log:        log,
		Tokens:     tokens,
		Client:     client,
		Customers:  store.NewCollection[domain.Customer, domain.CustomerCreate, domain.CustomerUpdate]("customer", "customers", rest.Customers(client), store.WithLogger(log)),
		Products:   store.NewCollection[domain.Product, domain.ProductCreate, domain.ProductUpdate]("product", "products", products, store.WithLogger(log)),
		Orders:     store.NewCollection[domain.Order, domain.OrderCreate, domain.OrderUpdate]("order", "orders", rest.Orders(client), store.WithLogger(log)),
		ProductAPI: products,
		Inbox:      notify.NewInbox(notify.NewClient(client)),
		Reports:    reporting.NewClient(client),
		cache:      cfg.Cache,
	}
	if cfg.Archive != nil {
		a.Archive = reporting.NewArchive(cfg.Archive)
	}
	return a, nil
}

// FromEnv builds the container from process environment:
// SALESDESK_API_URL plus the cache and blob variables documented in their
// packages.
func FromEnv(ctx context.Context) (*App, error) {
	snapshots, err := cache.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("open snapshot cache: %w", err)
	}
	archive, err := blob.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("open report archive: %w", err)
	}
	return New(Config{
		BaseURL: os.Getenv("SALESDESK_API_URL"),
		Cache:   snapshots,
		Archive: archive,
	})
}

// Snapshot kinds used as cache keys.
const (
	snapCustomers = "customers"
	snapProducts  = "products"
	snapOrders    = "orders"
)

// SaveSnapshots persists each collection's current entity list to the cache.
// A nil cache makes this a no-op.
func (a *App) SaveSnapshots(ctx context.Context) error {
	if a.cache == nil {
		return nil
	}
	if err := saveKind(ctx, a.cache, snapCustomers, a.Customers.Snapshot().Entities); err != nil {
		return err
	}
	if err := saveKind(ctx, a.cache, snapProducts, a.Products.Snapshot().Entities); err != nil {
		return err
	}
	return saveKind(ctx, a.cache, snapOrders, a.Orders.Snapshot().Entities)
}

// LoadSnapshots hydrates the collections from the cache. Kinds with no
// snapshot are left empty; decode failures are reported.
func (a *App) LoadSnapshots(ctx context.Context) error {
	if a.cache == nil {
		return nil
	}
	if err := loadKind(ctx, a.cache, snapCustomers, a.Customers); err != nil {
		return err
	}
	if err := loadKind(ctx, a.cache, snapProducts, a.Products); err != nil {
		return err
	}
	return loadKind(ctx, a.cache, snapOrders, a.Orders)
}

// Close releases held resources.
func (a *App) Close() error {
	if a.cache == nil {
		return nil
	}
	return a.cache.Close()
}

func saveKind[E store.Keyed](ctx context.Context, c cache.Store, kind string, entities []E) error {
	payload, err := json.Marshal(entities)
	if err != nil {
		return fmt.Errorf("encode %s snapshot: %w", kind, err)
	}
	if err := c.Save(ctx, kind, payload); err != nil {
		return fmt.Errorf("save %s snapshot: %w", kind, err)
	}
	return nil
}

func loadKind[E store.Keyed, C any, U store.Payload](ctx context.Context, c cache.Store, kind string, col *store.Collection[E, C, U]) error {
	payload, _, err := c.Load(ctx, kind)
	if err != nil {
		if errors.Is(err, cache.ErrNoSnapshot) {
			return nil
		}
		return fmt.Errorf("load %s snapshot: %w", kind, err)
	}
	var entities []E
	if err := json.Unmarshal(payload, &entities); err != nil {
		return fmt.Errorf("decode %s snapshot: %w", kind, err)
	}
	col.Replace(entities)
	return nil
}
