package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shandysiswandi/gopay/internal/payments/entity"
	"github.com/shandysiswandi/gopay/internal/pkg/pkgerror"
)

const (
	notificationTitle = "New Transaction"
	notifyTimeout     = time.Second
)

// Transfer moves in.Amount from the authenticated sender to the receiver.
//
// Both accounts stay locked while the change is persisted. The debit, credit
// and record become visible together, or not at all when persistence fails or
// the transfer times out.
func (u *Usecase) Transfer(ctx context.Context, in TransferInput) (TransferResult, error) {
	if u.directory == nil || u.records == nil || u.backend == nil || u.entryID == nil || u.recordID == nil {
		return TransferResult{}, pkgerror.NewServer(errors.New("missing dependency"))
	}

	if err := CheckAmount(in.Amount); err != nil {
		return TransferResult{}, err
	}
	if in.Amount.GreaterThan(u.cfg.MaxTransferAmount) {
		return TransferResult{}, ErrInvalidAmount
	}
	if in.SenderID == in.ReceiverID {
		return TransferResult{}, ErrSameAccount
	}

	ctx, cancel := context.WithTimeout(ctx, u.cfg.TransferTimeout)
	defer cancel()

	var result TransferResult
	err := u.directory.WithAccounts(ctx, []int64{in.SenderID, in.ReceiverID}, func(accs map[int64]*entity.Account) error {
		sender, receiver := accs[in.SenderID], accs[in.ReceiverID]
		now := u.clock.Now()

		debit := entity.Transaction{
			ID:         u.entryID.Generate(),
			SenderID:   sender.ID,
			ReceiverID: receiver.ID,
			Amount:     in.Amount.Neg(),
			Timestamp:  now,
		}
		credit := entity.Transaction{
			ID:         u.entryID.Generate(),
			SenderID:   sender.ID,
			ReceiverID: receiver.ID,
			Amount:     in.Amount,
			Timestamp:  now,
		}

		sender.Post(debit)
		receiver.Post(credit)

		if !u.cfg.AllowOverdraft && !sender.Unlimited && sender.Balance.IsNegative() {
			return ErrInsufficientFunds
		}

		record := entity.TransactionRecord{
			ID:           u.recordID.Generate(),
			SenderName:   sender.Name,
			ReceiverName: receiver.Name,
			Amount:       in.Amount,
			Timestamp:    now,
		}

		if err := u.backend.CommitTransfer(ctx, entity.TransferCommit{
			Sender:   *sender,
			Receiver: *receiver,
			Debit:    debit,
			Credit:   credit,
			Record:   record,
		}); err != nil {
			slog.WarnContext(ctx, "failed to persist transfer", "sender_id", sender.ID, "receiver_id", receiver.ID, "error", err)
			return unavailable(err)
		}

		u.records.Append(record)

		result = TransferResult{
			Debit:         debit,
			Credit:        credit,
			Record:        record,
			SenderBalance: sender.Balance,
		}
		return nil
	})
	if err != nil {
		return TransferResult{}, mapStoreErr(err)
	}

	slog.InfoContext(ctx, "transfer committed",
		"record_id", result.Record.ID,
		"sender_id", in.SenderID,
		"receiver_id", in.ReceiverID,
		"amount", in.Amount.String(),
	)

	u.notifyReceiver(ctx, in.ReceiverID, result.Record)

	return result, nil
}

func (u *Usecase) notifyReceiver(ctx context.Context, receiverID int64, record entity.TransactionRecord) {
	if u.notifier == nil {
		return
	}

	// The transfer is already committed; its deadline must not drop the alert.
	nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()

	body := fmt.Sprintf("%s received from %s", record.Amount.StringFixed(2), record.SenderName)
	if err := u.notifier.Notify(nctx, receiverID, notificationTitle, body); err != nil {
		slog.WarnContext(ctx, "failed to publish notification", "receiver_id", receiverID, "record_id", record.ID, "error", err)
	}
}
