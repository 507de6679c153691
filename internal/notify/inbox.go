package notify

import (
	"context"
	"sync"

	"salesdesk/pkg/domain"
)

// Inbox caches the notification list and tracks unread state. Like the
// entity collections it only changes after a remote call resolves.
type Inbox struct {
	remote *Client

	mu    sync.Mutex
	items []domain.Notification
}

// NewInbox constructs an empty inbox over the given client.
func NewInbox(remote *Client) *Inbox {
	return &Inbox{remote: remote}
}

// Refresh replaces the cached list with the server's.
func (i *Inbox) Refresh(ctx context.Context) error {
	items, err := i.remote.List(ctx)
	if err != nil {
		return err
	}
	i.mu.Lock()
	i.items = items
	i.mu.Unlock()
	return nil
}

// MarkRead flags one notification read and reconciles the returned record
// into the cache.
func (i *Inbox) MarkRead(ctx context.Context, id int64) (domain.Notification, error) {
	updated, err := i.remote.MarkRead(ctx, id)
	if err != nil {
		return domain.Notification{}, err
	}
	i.mu.Lock()
	for idx := range i.items {
		if i.items[idx].ID == updated.ID {
			i.items[idx] = updated
			break
		}
	}
	i.mu.Unlock()
	return updated, nil
}

// MarkAllRead flags everything read server-side, then locally.
func (i *Inbox) MarkAllRead(ctx context.Context) error {
	if err := i.remote.MarkAllRead(ctx); err != nil {
		return err
	}
	i.mu.Lock()
	for idx := range i.items {
		i.items[idx].Read = true
	}
	i.mu.Unlock()
	return nil
}

// Items returns a copy of the cached notifications.
func (i *Inbox) Items() []domain.Notification {
	i.mu.Lock()
	defer i.mu.Unlock()
	return append([]domain.Notification(nil), i.items...)
}

// Unread counts cached notifications not yet read.
func (i *Inbox) Unread() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	n := 0
	for _, item := range i.items {
		if !item.Read {
			n++
		}
	}
	return n
}
