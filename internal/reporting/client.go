// Package reporting wraps the reports endpoints and archives generated
// reports to the blob store.
package reporting

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"salesdesk/internal/rest"
)

// TopProduct is one line of a sales report's best-seller breakdown.
type TopProduct struct {
	ProductID    int64   `json:"productId"`
	ProductName  string  `json:"productName"`
	QuantitySold int     `json:"quantitySold"`
	Revenue      float64 `json:"revenue"`
}

// SalesReport aggregates revenue for one period.
type SalesReport struct {
	Period            string       `json:"period"`
	TotalRevenue      float64      `json:"totalRevenue"`
	TotalOrders       int          `json:"totalOrders"`
	AverageOrderValue float64      `json:"averageOrderValue"`
	TopProducts       []TopProduct `json:"topProducts"`
}

// Generated is the payload of an on-demand report. Data stays raw: its shape
// depends on the requested report type.
type Generated struct {
	Title       string          `json:"title"`
	Data        json.RawMessage `json:"data"`
	GeneratedAt time.Time       `json:"generatedAt"`
}

// DefaultPeriod matches the backend's default reporting window.
const DefaultPeriod = "month"

// Client wraps the report endpoints.
type Client struct {
	c *rest.Client
}

// NewClient binds a rest client to /api/reports.
func NewClient(c *rest.Client) *Client {
	return &Client{c: c}
}

// Sales fetches the aggregate sales report for the period (default "month").
func (r *Client) Sales(ctx context.Context, period string) (SalesReport, error) {
	if period == "" {
		period = DefaultPeriod
	}
	query := url.Values{"period": []string{period}}
	var out SalesReport
	if err := r.c.Do(ctx, http.MethodGet, "/api/reports/sales", query, nil, &out); err != nil {
		return SalesReport{}, err
	}
	return out, nil
}

// Generate requests an on-demand report. params are flattened into the
// request body next to reportType, matching the backend's contract.
func (r *Client) Generate(ctx context.Context, reportType string, params map[string]any) (Generated, error) {
	if reportType == "" {
		return Generated{}, fmt.Errorf("report type required")
	}
	body := make(map[string]any, len(params)+1)
	for k, v := range params {
		body[k] = v
	}
	body["reportType"] = reportType
	var out Generated
	if err := r.c.Do(ctx, http.MethodPost, "/api/reports/generate", nil, body, &out); err != nil {
		return Generated{}, err
	}
	return out, nil
}
