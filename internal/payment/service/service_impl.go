package service

import (
	"context"
	"errors"
	"time"

	cycledomain "github.com/Ed-Isingoma/hostelmgrserv/internal/billingcycle/domain"
	contractdomain "github.com/Ed-Isingoma/hostelmgrserv/internal/contract/domain"
	"github.com/Ed-Isingoma/hostelmgrserv/internal/events"
	paymentdomain "github.com/Ed-Isingoma/hostelmgrserv/internal/payment/domain"
	"github.com/Ed-Isingoma/hostelmgrserv/internal/record"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	GenID  *snowflake.Node
	Outbox *events.Outbox
}

type Service struct {
	db     *gorm.DB
	log    *zap.Logger
	genID  *snowflake.Node
	outbox *events.Outbox
}

func NewService(p Params) paymentdomain.Service {
	return &Service{
		db:     p.DB,
		log:    p.Log.Named("payment.service"),
		genID:  p.GenID,
		outbox: p.Outbox,
	}
}

// Create records a payment and queues a receipt event in the same
// transaction, so a receipt is never sent for a payment that did not
// commit.
func (s *Service) Create(ctx context.Context, req paymentdomain.CreatePaymentRequest) (*paymentdomain.Payment, error) {
	if req.ContractID == 0 {
		return nil, paymentdomain.ErrInvalidContract
	}
	if req.Amount <= 0 {
		return nil, paymentdomain.ErrInvalidAmount
	}
	date, err := cycledomain.ParseDate(req.Date)
	if err != nil {
		return nil, paymentdomain.ErrInvalidDate
	}

	var contractRow contractdomain.OccupancyContract
	err = s.db.WithContext(ctx).
		Where("id = ? AND status = ?", req.ContractID, record.StatusActive).
		First(&contractRow).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, paymentdomain.ErrInvalidContract
	}
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	row := &paymentdomain.Payment{
		ID:         s.genID.Generate(),
		ContractID: req.ContractID,
		Date:       date,
		Amount:     req.Amount,
		Status:     record.StatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(row).Error; err != nil {
			return err
		}
		return s.outbox.PublishTx(ctx, tx, events.Event{
			Type:      events.EventPaymentReceived,
			DedupeKey: "receipt:" + row.ID.String(),
			Payload: map[string]any{
				"payment_id": row.ID.String(),
			},
		})
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (s *Service) Update(ctx context.Context, id snowflake.ID, req paymentdomain.UpdatePaymentRequest) (int64, error) {
	updates := map[string]any{}
	if req.Date != nil {
		date, err := cycledomain.ParseDate(*req.Date)
		if err != nil {
			return 0, paymentdomain.ErrInvalidDate
		}
		updates["date"] = date
	}
	if req.Amount != nil {
		if *req.Amount <= 0 {
			return 0, paymentdomain.ErrInvalidAmount
		}
		updates["amount"] = *req.Amount
	}
	if len(updates) == 0 {
		return 0, nil
	}
	updates["updated_at"] = time.Now().UTC()

	res := s.db.WithContext(ctx).
		Model(&paymentdomain.Payment{}).
		Where("id = ? AND status = ?", id, record.StatusActive).
		Updates(updates)
	return res.RowsAffected, res.Error
}

func (s *Service) Delete(ctx context.Context, id snowflake.ID) (int64, error) {
	res := s.db.WithContext(ctx).
		Model(&paymentdomain.Payment{}).
		Where("id = ? AND status = ?", id, record.StatusActive).
		Updates(map[string]any{
			"status":     record.StatusDeleted,
			"updated_at": time.Now().UTC(),
		})
	return res.RowsAffected, res.Error
}

func (s *Service) Get(ctx context.Context, id snowflake.ID) (*paymentdomain.Payment, error) {
	var row paymentdomain.Payment
	err := s.db.WithContext(ctx).
		Where("id = ? AND status = ?", id, record.StatusActive).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, paymentdomain.ErrPaymentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *Service) ListByContract(ctx context.Context, contractID snowflake.ID) ([]paymentdomain.Payment, error) {
	var rows []paymentdomain.Payment
	err := s.db.WithContext(ctx).
		Where("contract_id = ? AND status = ?", contractID, record.StatusActive).
		Order("date DESC").
		Find(&rows).Error
	return rows, err
}

func (s *Service) MostRecent(ctx context.Context, contractID snowflake.ID) (*paymentdomain.Payment, error) {
	var row paymentdomain.Payment
	err := s.db.WithContext(ctx).
		Where("contract_id = ? AND status = ?", contractID, record.StatusActive).
		Order("date DESC").
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, paymentdomain.ErrPaymentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *Service) ListByCycle(ctx context.Context, cycleID snowflake.ID) ([]paymentdomain.Payment, error) {
	var rows []paymentdomain.Payment
	err := s.db.WithContext(ctx).Raw(
		`SELECT p.*
		 FROM payments p
		 JOIN occupancy_contracts c ON c.id = p.contract_id AND c.status = ?
		 WHERE c.cycle_id = ? AND p.status = ?
		 ORDER BY p.date DESC`,
		record.StatusActive,
		cycleID,
		record.StatusActive,
	).Scan(&rows).Error
	return rows, err
}
