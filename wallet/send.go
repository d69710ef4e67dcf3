package wallet

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/litewallet/wallet-bridge/dispatch"
	werrors "github.com/litewallet/wallet-bridge/errors"
	"github.com/litewallet/wallet-bridge/relay"
)

// SendTransaction builds and broadcasts a value transfer, publishing each
// stage to the progress relay so a concurrent poller observes the
// intermediate states. Only the terminal stage is returned: a {"txid": ...}
// body on success, an {"error": ...} body otherwise.
//
// Stages for one operation are published with strictly increasing progress:
//
//	sending(0) -> sending(10) -> [engine note progress, 50-90] ->
//	sending(90) -> completed(100, txid) | error(message)
//
// The amount is validated locally before any engine call: the engine's
// amount type cannot represent negative values, and a silent cast would
// corrupt the value.
func (b *Bridge) SendTransaction(ctx context.Context, address string, amount int64, memo *string) string {
	h, ok := b.reg.Get()
	if !ok {
		b.log.Warn("send rejected",
			zap.Error(werrors.NotInitialized(werrors.PhaseSend, "wallet")))
		return dispatch.ErrNotInitialized
	}
	defer h.Release()

	opID := uuid.NewString()

	if amount < 0 {
		const msg = "Invalid amount: cannot be negative"
		b.publishError(opID, msg)
		return dispatch.ErrorResult(msg)
	}

	b.publishSending(opID, 0)
	b.pace()
	b.publishSending(opID, 10) // preparing

	txid, err := h.Engine().Send(ctx, address, uint64(amount), memo)
	if err != nil {
		b.log.Warn("send failed", zap.String("op", opID), zap.Error(err))
		b.publishError(opID, err.Error())
		return dispatch.ErrorResult(err.Error())
	}

	b.publishSending(opID, 90) // broadcasting
	b.pace()
	b.publishCompleted(opID, txid)

	b.log.Info("transaction sent", zap.String("op", opID), zap.String("txid", txid))
	return fmt.Sprintf(`{"txid": "%s"}`, txid)
}

// pace makes fast-path stage transitions observable to a polling consumer.
// Not required for correctness; tuned to zero in non-interactive use.
func (b *Bridge) pace() {
	if b.delay > 0 {
		time.Sleep(b.delay)
	}
}

func (b *Bridge) publishSending(opID string, progress uint64) {
	_, _ = b.relay.Publish(relay.Event{
		ID:       opID,
		Status:   relay.StatusSending,
		Progress: progress,
		Total:    100,
	})
}

func (b *Bridge) publishCompleted(opID, txid string) {
	_, _ = b.relay.Publish(relay.Event{
		ID:       opID,
		Status:   relay.StatusCompleted,
		Progress: 100,
		Total:    100,
		TxID:     &txid,
	})
}

func (b *Bridge) publishError(opID, msg string) {
	_, _ = b.relay.Publish(relay.Event{
		ID:     opID,
		Status: relay.StatusError,
		Total:  100,
		Error:  &msg,
	})
}
