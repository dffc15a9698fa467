package notify

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Ed-Isingoma/hostelmgrserv/internal/config"
	"github.com/Ed-Isingoma/hostelmgrserv/internal/events"
	"github.com/Ed-Isingoma/hostelmgrserv/internal/record"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	AppConfig config.Config
	DB        *gorm.DB
	Log       *zap.Logger
	Outbox    *events.Outbox
	Sender    Sender
	Config    Config `optional:"true"`
}

// Worker drains the receipt outbox and delivers one message per
// payment event.
type Worker struct {
	db       *gorm.DB
	log      *zap.Logger
	outbox   *events.Outbox
	sender   Sender
	senderID string
	cfg      Config
}

func NewWorker(p Params) *Worker {
	return &Worker{
		db:       p.DB,
		log:      p.Log.Named("notify.worker"),
		outbox:   p.Outbox,
		sender:   p.Sender,
		senderID: p.AppConfig.ReceiptSenderID,
		cfg:      p.Config.withDefaults(),
	}
}

func (w *Worker) RunForever(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	for {
		if err := w.RunOnce(); err != nil {
			w.log.Warn("receipt delivery run failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (w *Worker) RunOnce() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := w.ProcessBatch(ctx, w.cfg.BatchSize)
	return err
}

// ProcessBatch handles up to limit pending events and returns how many
// were marked. Events whose data is missing or whose contact is
// unusable are marked with a descriptive outcome rather than retried.
// Only gateway failures leave an event pending.
func (w *Worker) ProcessBatch(ctx context.Context, limit int) (int, error) {
	if w.db == nil || w.outbox == nil || w.sender == nil {
		return 0, errors.New("notify_worker_unavailable")
	}
	if limit <= 0 {
		limit = w.cfg.BatchSize
	}

	rows, err := w.outbox.Pending(ctx, limit)
	if err != nil {
		return 0, err
	}

	processed := 0
	for _, row := range rows {
		outcome, err := w.deliver(ctx, row)
		if err != nil {
			w.log.Warn("receipt delivery failed, will retry",
				zap.Int64("event_id", int64(row.ID)),
				zap.Error(err),
			)
			continue
		}
		if err := w.outbox.MarkPublished(ctx, row.ID, outcome); err != nil {
			return processed, err
		}
		processed++
	}
	return processed, nil
}

type receiptRow struct {
	TenantName  string
	OwnContact  *string
	KinContact  *string
	Amount      int64
	AgreedPrice int64
	TotalPaid   int64
	CycleName   string
	OwnEndDate  *time.Time
}

func (w *Worker) deliver(ctx context.Context, row events.Row) (string, error) {
	if row.EventType != events.EventPaymentReceived {
		return "skipped: unknown event type " + row.EventType, nil
	}

	paymentID, ok := paymentIDFromPayload(row.Payload)
	if !ok {
		return "skipped: event payload has no payment id", nil
	}

	var data receiptRow
	res := w.db.WithContext(ctx).Raw(
		`SELECT t.name AS tenant_name, t.own_contact, t.kin_contact,
		        p.amount, c.agreed_price, cy.name AS cycle_name, c.own_end_date,
		        COALESCE((SELECT SUM(p2.amount) FROM payments p2
		                  WHERE p2.contract_id = c.id AND p2.status = ?), 0) AS total_paid
		 FROM payments p
		 JOIN occupancy_contracts c ON c.id = p.contract_id AND c.status = ?
		 JOIN tenants t ON t.id = c.tenant_id AND t.status = ?
		 JOIN billing_cycles cy ON cy.id = c.cycle_id AND cy.status = ?
		 WHERE p.id = ? AND p.status = ?`,
		record.StatusActive,
		record.StatusActive,
		record.StatusActive,
		record.StatusActive,
		paymentID,
		record.StatusActive,
	).Scan(&data)
	if res.Error != nil {
		return "", res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Sprintf("skipped: payment %d no longer exists", paymentID), nil
	}

	contact := ""
	if data.OwnContact != nil {
		contact = *data.OwnContact
	}
	if contact == "" && data.KinContact != nil {
		contact = *data.KinContact
	}
	if contact == "" {
		return "skipped: tenant has no contact on file", nil
	}
	if !ValidContact(contact) {
		return "skipped: contact is not a usable phone number", nil
	}

	receipt := Receipt{
		TenantName: data.TenantName,
		Contact:    contact,
		Amount:     data.Amount,
		Remaining:  data.AgreedPrice - data.TotalPaid,
		CycleName:  data.CycleName,
		OwnEndDate: data.OwnEndDate,
		SenderID:   w.senderID,
	}
	if err := w.sender.Send(ctx, contact, receipt.Render()); err != nil {
		return "", err
	}
	return "sent", nil
}

func paymentIDFromPayload(payload map[string]any) (int64, bool) {
	raw, ok := payload["payment_id"]
	if !ok {
		return 0, false
	}
	switch v := raw.(type) {
	case string:
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, false
		}
		return id, true
	case float64:
		return int64(v), true
	case int64:
		return v, true
	default:
		return 0, false
	}
}
