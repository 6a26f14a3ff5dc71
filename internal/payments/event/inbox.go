package event

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/shandysiswandi/gopay/internal/payments/entity"
)

const defaultInboxSize = 50

// Inbox is the delivery end of notifications: it keeps the latest alerts per
// account so the owner can read them back.
type Inbox struct {
	mu    sync.RWMutex
	size  int
	items map[int64][]entity.Notification
}

func NewInbox(size int) *Inbox {
	if size < 1 {
		size = defaultInboxSize
	}

	return &Inbox{
		size:  size,
		items: make(map[int64][]entity.Notification),
	}
}

func (i *Inbox) Handle(ctx context.Context, n entity.Notification) error {
	if n.EventID == "" {
		return errors.New("missing event id")
	}

	i.mu.Lock()
	list := append(i.items[n.AccountID], n)
	if len(list) > i.size {
		list = list[len(list)-i.size:]
	}
	i.items[n.AccountID] = list
	i.mu.Unlock()

	slog.InfoContext(ctx, "notification delivered", "event_id", n.EventID, "account_id", n.AccountID, "title", n.Title)
	return nil
}

// List returns the account's notifications, oldest first.
func (i *Inbox) List(accountID int64) []entity.Notification {
	i.mu.RLock()
	defer i.mu.RUnlock()

	items := i.items[accountID]
	out := make([]entity.Notification, len(items))
	copy(out, items)
	return out
}
