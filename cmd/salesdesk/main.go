// Command salesdesk is a terminal administration console for the sales
// backend: customers, products and orders CRUD plus reports and the
// notification inbox.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"salesdesk/internal/app"
	"salesdesk/internal/auth"
	"salesdesk/internal/blob"
	"salesdesk/internal/cache"
	"salesdesk/internal/rest"
	"salesdesk/internal/store"
	"salesdesk/internal/telemetry"
	"salesdesk/internal/view"
	"salesdesk/pkg/domain"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Sales administration console\n\n")
	fmt.Fprintf(os.Stderr, "Usage:\n")
	fmt.Fprintf(os.Stderr, "  salesdesk [flags] <command> [args]\n\n")
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  customers     list | create | update | delete\n")
	fmt.Fprintf(os.Stderr, "  products      list | low-stock | create | update | delete\n")
	fmt.Fprintf(os.Stderr, "  orders        list | create | update | delete\n")
	fmt.Fprintf(os.Stderr, "  reports       sales | generate\n")
	fmt.Fprintf(os.Stderr, "  notifications list | read | read-all\n")
	fmt.Fprintf(os.Stderr, "  login | logout\n\n")
	fmt.Fprintf(os.Stderr, "Flags:\n")
	fmt.Fprintf(os.Stderr, "  --api URL     Backend base URL (default $SALESDESK_API_URL)\n")
	fmt.Fprintf(os.Stderr, "  --color       Colorize status columns\n")
	fmt.Fprintf(os.Stderr, "  --log-level L debug|info|warn|error\n")
}

func run(args []string) error {
	flags := flag.NewFlagSet("salesdesk", flag.ContinueOnError)
	flags.Usage = usage
	apiURL := flags.String("api", os.Getenv("SALESDESK_API_URL"), "backend base URL")
	colorize := flags.Bool("color", false, "colorize status columns")
	logLevel := flags.String("log-level", "warn", "log level")
	if err := flags.Parse(args); err != nil {
		return err
	}
	argv := flags.Args()
	if len(argv) == 0 {
		usage()
		return fmt.Errorf("command required")
	}

	ctx := context.Background()
	log := telemetry.NewLogger(telemetry.LogConfig{Level: *logLevel})

	snapshots, err := cache.Open(ctx)
	if err != nil {
		return fmt.Errorf("open snapshot cache: %w", err)
	}
	archive, err := blob.Open(ctx)
	if err != nil {
		return fmt.Errorf("open report archive: %w", err)
	}

	a, err := app.New(app.Config{
		BaseURL:  *apiURL,
		Logger:   log,
		Recorder: telemetry.NewExpvarRecorder("salesdesk_remote"),
		Cache:    snapshots,
		Archive:  archive,
	})
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	warnExpiredToken(a)

	ui := console{app: a, colorize: *colorize, feedback: view.NewNotifier(0)}
	return ui.dispatch(ctx, argv[0], argv[1:])
}

func warnExpiredToken(a *app.App) {
	token, ok := a.Tokens.Token()
	if ok && auth.Expired(token, time.Now()) {
		a.Log.Warn("stored token is expired; requests will go out anyway and the backend will reject them")
	}
}

type console struct {
	app      *app.App
	colorize bool
	feedback *view.Notifier
}

func (c *console) dispatch(ctx context.Context, command string, args []string) error {
	switch command {
	case "customers":
		return c.customers(ctx, args)
	case "products":
		return c.products(ctx, args)
	case "orders":
		return c.orders(ctx, args)
	case "reports":
		return c.reports(ctx, args)
	case "notifications":
		return c.notifications(ctx, args)
	case "login":
		return c.login(args)
	case "logout":
		return c.app.Tokens.ClearToken()
	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func sub(args []string) (string, []string) {
	if len(args) == 0 {
		return "", nil
	}
	return args[0], args[1:]
}

func (c *console) customers(ctx context.Context, args []string) error {
	verb, args := sub(args)
	modal := view.NewModal("customer", c.app.Customers, c.feedback)
	switch verb {
	case "list", "":
		if err := c.app.Customers.FetchAll(ctx); err != nil {
			c.app.Log.Warn("fetch failed; showing last-known data", "err", err)
			_ = c.app.LoadSnapshots(ctx)
		}
		view.RenderCustomers(os.Stdout, c.app.Customers.Snapshot())
		return c.app.SaveSnapshots(ctx)
	case "create", "update":
		fs := flag.NewFlagSet("customers "+verb, flag.ContinueOnError)
		id := fs.Int64("id", 0, "customer id (update only)")
		name := fs.String("name", "", "name")
		email := fs.String("email", "", "email")
		phone := fs.String("phone", "", "phone")
		address := fs.String("address", "", "address")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if verb == "update" {
			entity, err := c.app.Customers.FetchByID(ctx, *id)
			if err != nil {
				return err
			}
			form := view.NewCustomerForm(&entity)
			applyString(name, &form.Name)
			applyString(email, &form.Email)
			applyString(phone, &form.Phone)
			applyString(address, &form.Address)
			modal.OpenEdit(entity)
			err = modal.Submit(ctx, form)
			c.printFeedback()
			return err
		}
		form := view.NewCustomerForm(nil)
		form.Name, form.Email, form.Phone, form.Address = *name, *email, *phone, *address
		modal.OpenBlank()
		err := modal.Submit(ctx, form)
		c.printFeedback()
		return err
	case "delete":
		id, err := parseID(args)
		if err != nil {
			return err
		}
		err = modal.Delete(ctx, id)
		c.printFeedback()
		return err
	default:
		return fmt.Errorf("unknown customers verb %q", verb)
	}
}

func (c *console) products(ctx context.Context, args []string) error {
	verb, args := sub(args)
	modal := view.NewModal("product", c.app.Products, c.feedback)
	switch verb {
	case "list", "":
		if err := c.app.Products.FetchAll(ctx); err != nil {
			c.app.Log.Warn("fetch failed; showing last-known data", "err", err)
			_ = c.app.LoadSnapshots(ctx)
		}
		view.RenderProducts(os.Stdout, c.app.Products.Snapshot(), c.colorize)
		return c.app.SaveSnapshots(ctx)
	case "low-stock":
		fs := flag.NewFlagSet("products low-stock", flag.ContinueOnError)
		threshold := fs.Int("threshold", rest.DefaultLowStockThreshold, "stock cutoff")
		if err := fs.Parse(args); err != nil {
			return err
		}
		low, err := c.app.ProductAPI.LowStock(ctx, *threshold)
		if err != nil {
			return err
		}
		view.RenderProducts(os.Stdout, store.Snapshot[domain.Product]{Entities: low}, c.colorize)
		return nil
	case "create", "update":
		fs := flag.NewFlagSet("products "+verb, flag.ContinueOnError)
		id := fs.Int64("id", 0, "product id (update only)")
		name := fs.String("name", "", "name")
		description := fs.String("description", "", "description")
		price := fs.Float64("price", 0, "sale price")
		cost := fs.Float64("cost", 0, "unit cost")
		stock := fs.Int("stock", 0, "stock quantity")
		category := fs.String("category", "", "category")
		supplier := fs.String("supplier", "", "supplier")
		status := fs.String("status", "", "active|inactive|discontinued")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if verb == "update" {
			entity, err := c.app.Products.FetchByID(ctx, *id)
			if err != nil {
				return err
			}
			form := view.NewProductForm(&entity)
			applyString(name, &form.Name)
			applyString(description, &form.Description)
			applyFloat(price, &form.Price)
			applyFloat(cost, &form.Cost)
			applyInt(stock, &form.Stock)
			applyString(category, &form.Category)
			applyString(supplier, &form.Supplier)
			if *status != "" {
				form.Status = domain.ProductStatus(*status)
			}
			modal.OpenEdit(entity)
			err = modal.Submit(ctx, form)
			c.printFeedback()
			return err
		}
		form := view.NewProductForm(nil)
		form.Name, form.Description = *name, *description
		form.Price, form.Cost, form.Stock = *price, *cost, *stock
		form.Category, form.Supplier = *category, *supplier
		if *status != "" {
			form.Status = domain.ProductStatus(*status)
		}
		modal.OpenBlank()
		err := modal.Submit(ctx, form)
		c.printFeedback()
		return err
	case "delete":
		id, err := parseID(args)
		if err != nil {
			return err
		}
		err = modal.Delete(ctx, id)
		c.printFeedback()
		return err
	default:
		return fmt.Errorf("unknown products verb %q", verb)
	}
}

func (c *console) orders(ctx context.Context, args []string) error {
	verb, args := sub(args)
	modal := view.NewModal("order", c.app.Orders, c.feedback)
	switch verb {
	case "list", "":
		if err := c.app.Orders.FetchAll(ctx); err != nil {
			c.app.Log.Warn("fetch failed; showing last-known data", "err", err)
			_ = c.app.LoadSnapshots(ctx)
		}
		view.RenderOrders(os.Stdout, c.app.Orders.Snapshot(), c.colorize)
		return c.app.SaveSnapshots(ctx)
	case "create":
		fs := flag.NewFlagSet("orders create", flag.ContinueOnError)
		customerID := fs.Int64("customer", 0, "customer id")
		productID := fs.Int64("product", 0, "product id for a single line item")
		quantity := fs.Int("quantity", 1, "line item quantity")
		tax := fs.Float64("tax", 0, "tax amount")
		shipping := fs.Float64("shipping", 0, "shipping amount")
		if err := fs.Parse(args); err != nil {
			return err
		}
		form := view.NewOrderForm(nil)
		form.CustomerID = *customerID
		form.Items = []domain.OrderItemCreate{{ProductID: *productID, Quantity: *quantity}}
		form.Tax, form.Shipping = *tax, *shipping
		modal.OpenBlank()
		err := modal.Submit(ctx, form)
		c.printFeedback()
		return err
	case "update":
		fs := flag.NewFlagSet("orders update", flag.ContinueOnError)
		id := fs.Int64("id", 0, "order id")
		status := fs.String("status", "", "pending|processing|shipped|delivered|cancelled")
		payment := fs.String("payment", "", "pending|paid|failed|refunded")
		if err := fs.Parse(args); err != nil {
			return err
		}
		entity, err := c.app.Orders.FetchByID(ctx, *id)
		if err != nil {
			return err
		}
		form := view.NewOrderForm(&entity)
		if *status != "" {
			form.Status = domain.OrderStatus(*status)
		}
		if *payment != "" {
			form.PaymentStatus = domain.PaymentStatus(*payment)
		}
		modal.OpenEdit(entity)
		err = modal.Submit(ctx, form)
		c.printFeedback()
		return err
	case "delete":
		id, err := parseID(args)
		if err != nil {
			return err
		}
		err = modal.Delete(ctx, id)
		c.printFeedback()
		return err
	default:
		return fmt.Errorf("unknown orders verb %q", verb)
	}
}

func (c *console) reports(ctx context.Context, args []string) error {
	verb, args := sub(args)
	switch verb {
	case "sales", "":
		fs := flag.NewFlagSet("reports sales", flag.ContinueOnError)
		period := fs.String("period", "", "reporting period (default month)")
		if err := fs.Parse(args); err != nil {
			return err
		}
		report, err := c.app.Reports.Sales(ctx, *period)
		if err != nil {
			return err
		}
		view.RenderSalesReport(os.Stdout, report)
		return nil
	case "generate":
		fs := flag.NewFlagSet("reports generate", flag.ContinueOnError)
		reportType := fs.String("type", "", "report type")
		period := fs.String("period", "", "optional period parameter")
		archive := fs.Bool("archive", false, "store the result in the report archive")
		if err := fs.Parse(args); err != nil {
			return err
		}
		params := map[string]any{}
		if *period != "" {
			params["period"] = *period
		}
		generated, err := c.app.Reports.Generate(ctx, *reportType, params)
		if err != nil {
			return err
		}
		fmt.Printf("%s (generated %s)\n%s\n", generated.Title, generated.GeneratedAt.Format(time.RFC3339), string(generated.Data))
		if *archive && c.app.Archive != nil {
			info, err := c.app.Archive.Save(ctx, *reportType, generated)
			if err != nil {
				return err
			}
			fmt.Printf("archived as %s\n", info.Key)
		}
		return nil
	default:
		return fmt.Errorf("unknown reports verb %q", verb)
	}
}

func (c *console) notifications(ctx context.Context, args []string) error {
	verb, args := sub(args)
	switch verb {
	case "list", "":
		if err := c.app.Inbox.Refresh(ctx); err != nil {
			return err
		}
		view.RenderNotifications(os.Stdout, c.app.Inbox.Items(), c.colorize)
		fmt.Printf("%d unread\n", c.app.Inbox.Unread())
		return nil
	case "read":
		id, err := parseID(args)
		if err != nil {
			return err
		}
		_, err = c.app.Inbox.MarkRead(ctx, id)
		return err
	case "read-all":
		return c.app.Inbox.MarkAllRead(ctx)
	default:
		return fmt.Errorf("unknown notifications verb %q", verb)
	}
}

func (c *console) login(args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	token := fs.String("token", "", "bearer token to store")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *token == "" {
		return fmt.Errorf("--token required")
	}
	return c.app.Tokens.SetToken(*token)
}

func (c *console) printFeedback() {
	view.RenderFeedback(os.Stdout, c.feedback, c.colorize)
}

func parseID(args []string) (int64, error) {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	id := fs.Int64("id", 0, "entity id")
	if err := fs.Parse(args); err != nil {
		return 0, err
	}
	if *id == 0 {
		return 0, fmt.Errorf("--id required")
	}
	return *id, nil
}

func applyString(flagValue *string, field *string) {
	if *flagValue != "" {
		*field = *flagValue
	}
}

func applyFloat(flagValue *float64, field *float64) {
	if *flagValue != 0 {
		*field = *flagValue
	}
}

func applyInt(flagValue *int, field *int) {
	if *flagValue != 0 {
		*field = *flagValue
	}
}
