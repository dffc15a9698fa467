package events

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Event describes a notification event to store in the outbox.
type Event struct {
	Type      string
	Payload   map[string]any
	DedupeKey string
}

// Row is a stored outbox entry awaiting delivery.
type Row struct {
	ID          snowflake.ID      `gorm:"primaryKey"`
	EventType   string            `gorm:"type:text;not null"`
	Payload     datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'"`
	DedupeKey   *string           `gorm:"type:text"`
	Published   bool              `gorm:"not null;default:false"`
	Outcome     *string           `gorm:"type:text"`
	CreatedAt   time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP"`
	PublishedAt *time.Time
}

// TableName sets the database table name.
func (Row) TableName() string { return "receipt_events" }

// Outbox inserts notification events into the receipt_events table.
type Outbox struct {
	db    *gorm.DB
	genID *snowflake.Node
}

func NewOutbox(db *gorm.DB, genID *snowflake.Node) *Outbox {
	return &Outbox{db: db, genID: genID}
}

// Publish stores an event using the default database connection.
func (o *Outbox) Publish(ctx context.Context, event Event) error {
	return o.publish(ctx, o.db, event)
}

// PublishTx stores an event using an existing transaction.
func (o *Outbox) PublishTx(ctx context.Context, tx *gorm.DB, event Event) error {
	if tx == nil {
		return errors.New("missing_transaction")
	}
	return o.publish(ctx, tx, event)
}

func (o *Outbox) publish(ctx context.Context, db *gorm.DB, event Event) error {
	if o == nil || db == nil || o.genID == nil {
		return errors.New("outbox_unavailable")
	}
	name := strings.TrimSpace(event.Type)
	if name == "" {
		return errors.New("missing_event_type")
	}

	payload := datatypes.JSONMap{}
	for key, value := range event.Payload {
		if strings.TrimSpace(key) == "" {
			continue
		}
		payload[key] = value
	}

	dedupe := strings.TrimSpace(event.DedupeKey)
	var dedupeValue any
	if dedupe != "" {
		dedupeValue = dedupe
	}

	now := time.Now().UTC()
	return db.WithContext(ctx).Exec(
		`INSERT INTO receipt_events (id, event_type, payload, dedupe_key, published, created_at)
		 VALUES (?, ?, ?, ?, false, ?)
		 ON CONFLICT (dedupe_key) DO NOTHING`,
		o.genID.Generate(),
		name,
		payload,
		dedupeValue,
		now,
	).Error
}

// Pending returns up to limit unpublished events, oldest first.
func (o *Outbox) Pending(ctx context.Context, limit int) ([]Row, error) {
	var rows []Row
	err := o.db.WithContext(ctx).
		Where("published = ?", false).
		Order("created_at").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

// MarkPublished flags an event as handled, recording how delivery
// went. Undeliverable events are still marked so they are not retried
// forever.
func (o *Outbox) MarkPublished(ctx context.Context, id snowflake.ID, outcome string) error {
	now := time.Now().UTC()
	updates := map[string]any{"published": true, "published_at": now}
	if trimmed := strings.TrimSpace(outcome); trimmed != "" {
		updates["outcome"] = trimmed
	}
	return o.db.WithContext(ctx).
		Model(&Row{}).
		Where("id = ?", id).
		Updates(updates).Error
}
