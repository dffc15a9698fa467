package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Balance is the financial position of one occupancy contract.
// Outstanding may be negative: overpayment is a legal, observable
// state, not an error.
type Balance struct {
	ContractID  snowflake.ID `json:"contract_id"`
	AgreedPrice int64        `json:"agreed_price"`
	TotalPaid   int64        `json:"total_paid"`
	Outstanding int64        `json:"outstanding"`
}

// PaymentRow is one payment in a cycle's ledger listing. OwingAmount
// is the contract balance immediately after this payment, produced by
// accumulating the contract's payments in ascending date order; the
// listing itself is presented in descending date order.
type PaymentRow struct {
	PaymentID   snowflake.ID `json:"payment_id"`
	ContractID  snowflake.ID `json:"contract_id"`
	TenantID    snowflake.ID `json:"tenant_id"`
	TenantName  string       `json:"tenant_name"`
	Contact     *string      `json:"contact,omitempty"`
	RoomName    string       `json:"room_name"`
	CycleName   string       `json:"cycle_name"`
	Date        time.Time    `json:"date"`
	Amount      int64        `json:"amount"`
	AgreedPrice int64        `json:"agreed_price"`
	OwingAmount int64        `json:"owing_amount"`
}

// TenantBalance is a tenant's position within one cycle.
type TenantBalance struct {
	TenantID         snowflake.ID `json:"tenant_id"`
	TenantName       string       `json:"tenant_name"`
	Gender           string       `json:"gender"`
	RoomName         string       `json:"room_name"`
	ContractID       snowflake.ID `json:"contract_id"`
	AgreedPrice      int64        `json:"agreed_price"`
	OwingAmount      int64        `json:"owing_amount"`
	LastPaymentDate  *time.Time   `json:"last_payment_date,omitempty"`
	DemandNoticeDate *time.Time   `json:"demand_notice_date,omitempty"`
	PaysMonthly      bool         `json:"pays_monthly"`
}

// RoomTenantBalance is a room-scoped owing row.
type RoomTenantBalance struct {
	TenantName  string `json:"tenant_name"`
	Gender      string `json:"gender"`
	OwingAmount int64  `json:"owing_amount"`
}
