// Package notify implements the notification inbox: a thin client over the
// notifications endpoints and an in-memory store reconciled the same way as
// the entity collections.
package notify

import (
	"context"
	"fmt"
	"net/http"

	"salesdesk/internal/rest"
	"salesdesk/pkg/domain"
)

// Client wraps the notification endpoints.
type Client struct {
	c *rest.Client
}

// NewClient binds a rest client to /api/notifications.
func NewClient(c *rest.Client) *Client {
	return &Client{c: c}
}

// List reads all notifications, newest first per server order.
func (n *Client) List(ctx context.Context) ([]domain.Notification, error) {
	var out []domain.Notification
	if err := n.c.Do(ctx, http.MethodGet, "/api/notifications", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkRead flags one notification as read and returns the updated record.
func (n *Client) MarkRead(ctx context.Context, id int64) (domain.Notification, error) {
	var out domain.Notification
	path := fmt.Sprintf("/api/notifications/%d/read", id)
	if err := n.c.Do(ctx, http.MethodPut, path, nil, nil, &out); err != nil {
		return domain.Notification{}, err
	}
	return out, nil
}

// MarkAllRead flags every notification as read. The endpoint returns no body.
func (n *Client) MarkAllRead(ctx context.Context) error {
	return n.c.Do(ctx, http.MethodPut, "/api/notifications/read-all", nil, nil, nil)
}
