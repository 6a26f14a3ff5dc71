package store

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/shandysiswandi/gopay/internal/payments/entity"
	"github.com/shandysiswandi/gopay/internal/pkg/pkgerror"
)

// Directory is the in-memory account directory.
//
// Each account has an ownership lock held for a whole read-modify-write
// (including the persistence round trip of a transfer) and a RWMutex that only
// guards the stored value, so readers see the last committed state without
// waiting for writers.
type Directory struct {
	mu    sync.RWMutex
	slots map[int64]*accountSlot
}

type accountSlot struct {
	owner chan struct{}
	mu    sync.RWMutex
	acc   entity.Account
}

func newAccountSlot(acc entity.Account) *accountSlot {
	return &accountSlot{
		owner: make(chan struct{}, 1),
		acc:   acc.Clone(),
	}
}

func (s *accountSlot) acquire(ctx context.Context) error {
	select {
	case s.owner <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *accountSlot) release() {
	<-s.owner
}

func (s *accountSlot) load() entity.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.acc.Clone()
}

func (s *accountSlot) store(acc entity.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.acc = acc
}

func NewDirectory(accounts ...entity.Account) *Directory {
	d := &Directory{slots: make(map[int64]*accountSlot, len(accounts))}
	for _, acc := range accounts {
		d.slots[acc.ID] = newAccountSlot(acc)
	}
	return d
}

// Find returns a copy of the account with id.
func (d *Directory) Find(id int64) (entity.Account, bool) {
	slot, ok := d.get(id)
	if !ok {
		return entity.Account{}, false
	}
	return slot.load(), true
}

// Update applies fn to the account under its ownership lock. The change is
// discarded when fn returns an error.
func (d *Directory) Update(ctx context.Context, id int64, fn func(acc *entity.Account) error) error {
	return d.WithAccounts(ctx, []int64{id}, func(accs map[int64]*entity.Account) error {
		return fn(accs[id])
	})
}

// WithAccounts locks every id in ascending order, hands fn working copies and
// writes them back only if fn returns nil. Locks are released in reverse order.
// A missing id fails with pkgerror.ErrNotFound before anything is locked.
func (d *Directory) WithAccounts(ctx context.Context, ids []int64, fn func(accs map[int64]*entity.Account) error) error {
	ordered := slices.Clone(ids)
	slices.Sort(ordered)
	ordered = slices.Compact(ordered)

	slots := make([]*accountSlot, 0, len(ordered))
	for _, id := range ordered {
		slot, ok := d.get(id)
		if !ok {
			return pkgerror.ErrNotFound
		}
		slots = append(slots, slot)
	}

	for i, slot := range slots {
		if err := slot.acquire(ctx); err != nil {
			for j := i - 1; j >= 0; j-- {
				slots[j].release()
			}
			return err
		}
	}
	defer func() {
		for i := len(slots) - 1; i >= 0; i-- {
			slots[i].release()
		}
	}()

	working := make(map[int64]*entity.Account, len(slots))
	for i, slot := range slots {
		acc := slot.load()
		working[ordered[i]] = &acc
	}

	if err := fn(working); err != nil {
		return err
	}

	for i, slot := range slots {
		slot.store(*working[ordered[i]])
	}

	return nil
}

// Replace stores accounts fetched from the backend. Accounts absent from the
// input are kept. An existing account is overwritten under its ownership lock
// only when its current history is a prefix of the incoming one, so a snapshot
// taken before a later commit never rolls that commit back. When ids repeat,
// the last one wins.
func (d *Directory) Replace(ctx context.Context, accounts []entity.Account) error {
	for _, acc := range accounts {
		d.mu.Lock()
		slot, ok := d.slots[acc.ID]
		if !ok {
			d.slots[acc.ID] = newAccountSlot(acc)
		}
		d.mu.Unlock()

		if !ok {
			continue
		}

		if err := slot.acquire(ctx); err != nil {
			return err
		}
		if extends(slot.load().Transactions, acc.Transactions) {
			slot.store(acc.Clone())
		}
		slot.release()
	}

	return nil
}

func extends(current, incoming []entity.Transaction) bool {
	if len(incoming) < len(current) {
		return false
	}
	for i, tx := range current {
		if tx.ID != incoming[i].ID || !tx.Amount.Equal(incoming[i].Amount) {
			return false
		}
	}
	return true
}

// List returns a copy of every account ordered by id.
func (d *Directory) List() []entity.Account {
	d.mu.RLock()
	slots := make([]*accountSlot, 0, len(d.slots))
	for _, slot := range d.slots {
		slots = append(slots, slot)
	}
	d.mu.RUnlock()

	out := make([]entity.Account, 0, len(slots))
	for _, slot := range slots {
		out = append(out, slot.load())
	}
	slices.SortFunc(out, func(a, b entity.Account) int {
		return cmp.Compare(a.ID, b.ID)
	})

	return out
}

func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.slots)
}

func (d *Directory) get(id int64) (*accountSlot, bool) {
	d.mu.RLock()
	slot, ok := d.slots[id]
	d.mu.RUnlock()
	return slot, ok
}
