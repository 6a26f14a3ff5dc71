package event

import (
	"context"
	"time"

	"github.com/shandysiswandi/gopay/internal/payments/entity"
	"github.com/shandysiswandi/gopay/internal/pkg/pkguid"
)

// Notifier turns alerts into notification events on the bus. It returns once
// the event is queued; delivery happens on the consumer's workers.
type Notifier struct {
	bus *Bus
	id  pkguid.StringID
	now func() time.Time
}

func NewNotifier(bus *Bus, id pkguid.StringID) *Notifier {
	if id == nil {
		id = pkguid.NewUUID()
	}

	return &Notifier{bus: bus, id: id, now: time.Now}
}

func (n *Notifier) Notify(ctx context.Context, accountID int64, title, body string) error {
	return n.bus.Publish(ctx, entity.Notification{
		EventID:   n.id.Generate(),
		AccountID: accountID,
		Title:     title,
		Body:      body,
		CreatedAt: n.now(),
	})
}
