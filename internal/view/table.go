package view

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"salesdesk/internal/reporting"
	"salesdesk/internal/store"
	"salesdesk/pkg/domain"
)

// Table rendering for the terminal. Each renderer writes one collection
// snapshot as an aligned table, prefixed with loading/error state when
// present.

func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func renderState(w io.Writer, loading bool, errText string) {
	if loading {
		fmt.Fprintln(w, "loading...")
	}
	if errText != "" {
		fmt.Fprintf(w, "error: %s\n", errText)
	}
}

// RenderCustomers writes the customer table.
func RenderCustomers(w io.Writer, snap store.Snapshot[domain.Customer]) {
	renderState(w, snap.Loading, snap.Err)
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tPHONE\tADDRESS")
	for _, c := range snap.Entities {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Email, c.Phone, c.Address)
	}
	_ = tw.Flush()
}

// RenderProducts writes the product table with an accented status column.
func RenderProducts(w io.Writer, snap store.Snapshot[domain.Product], colorize bool) {
	renderState(w, snap.Loading, snap.Err)
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE\tSTOCK\tSTATUS")
	for _, p := range snap.Entities {
		status := string(p.Status)
		if colorize {
			status = ProductStatusAccent(p.Status).Paint(status)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.2f\t%d\t%s\n", p.ID, p.Name, p.Category, p.Price, p.Stock, status)
	}
	_ = tw.Flush()
}

// RenderOrders writes the order table with accented status and payment
// columns.
func RenderOrders(w io.Writer, snap store.Snapshot[domain.Order], colorize bool) {
	renderState(w, snap.Loading, snap.Err)
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "ID\tCUSTOMER\tSTATUS\tPAYMENT\tITEMS\tTOTAL")
	for _, o := range snap.Entities {
		status := string(o.Status)
		payment := string(o.PaymentStatus)
		if colorize {
			status = OrderStatusAccent(o.Status).Paint(status)
			payment = PaymentStatusAccent(o.PaymentStatus).Paint(payment)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%.2f\n", o.ID, o.CustomerName, status, payment, len(o.Items), o.Total)
	}
	_ = tw.Flush()
}

// RenderNotifications writes the inbox with unread markers.
func RenderNotifications(w io.Writer, items []domain.Notification, colorize bool) {
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "ID\t \tTYPE\tTITLE\tMESSAGE\tAT")
	for _, n := range items {
		marker := " "
		if !n.Read {
			marker = "*"
		}
		kind := string(n.Type)
		if colorize {
			kind = NotificationAccent(n.Type).Paint(kind)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", n.ID, marker, kind, n.Title, n.Message, n.CreatedAt.Format(time.RFC3339))
	}
	_ = tw.Flush()
}

// RenderSalesReport writes the aggregate report and its top-product
// breakdown.
func RenderSalesReport(w io.Writer, report reporting.SalesReport) {
	fmt.Fprintf(w, "period: %s\n", report.Period)
	fmt.Fprintf(w, "revenue: %.2f  orders: %d  avg order: %.2f\n", report.TotalRevenue, report.TotalOrders, report.AverageOrderValue)
	if len(report.TopProducts) == 0 {
		return
	}
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "PRODUCT\tSOLD\tREVENUE")
	for _, tp := range report.TopProducts {
		fmt.Fprintf(tw, "%s\t%d\t%.2f\n", tp.ProductName, tp.QuantitySold, tp.Revenue)
	}
	_ = tw.Flush()
}

// RenderFeedback writes the live transient message, if any.
func RenderFeedback(w io.Writer, n *Notifier, colorize bool) {
	fb, ok := n.Current()
	if !ok {
		return
	}
	msg := fb.Message
	if colorize {
		accent := AccentGreen
		if fb.Severity == SeverityError {
			accent = AccentRed
		}
		msg = accent.Paint(msg)
	}
	fmt.Fprintln(w, msg)
}
