package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// RawTable is the ephemeral result of reading one report file: the original
// header strings plus the raw cell text for every data row. It exists only
// during a single ingestion run.
type RawTable struct {
	Headers []string
	Rows    [][]string
}

// TransactionRecord is one item-level row of a commission report after header
// mapping and value normalization. Money fields use NullDecimal so that an
// empty or unparsable cell stays absent rather than becoming zero.
type TransactionRecord struct {
	OrderID string `json:"order_id"`
	ItemID  *int64 `json:"item_id"`

	PurchaseTime *time.Time `json:"purchase_time,omitempty"`
	CompleteTime *time.Time `json:"complete_time,omitempty"`
	ClickTime    *time.Time `json:"click_time,omitempty"`

	Qty                *int64              `json:"qty,omitempty"`
	ItemPrice          decimal.NullDecimal `json:"item_price"`
	ActualAmount       decimal.NullDecimal `json:"actual_amount"`
	NetCommission      decimal.NullDecimal `json:"net_commission"`
	PlatformCommission decimal.NullDecimal `json:"platform_commission"`
	SellerCommission   decimal.NullDecimal `json:"seller_commission"`
	Refund             decimal.NullDecimal `json:"refund"`
	CommissionRate     decimal.NullDecimal `json:"commission_rate"`
	ItemRate           decimal.NullDecimal `json:"item_rate"`

	Status          string `json:"status"`
	Channel         string `json:"channel"`
	Category        string `json:"category"`
	ItemName        string `json:"item_name"`
	ShopName        string `json:"shop_name"`
	AttributionType string `json:"attribution_type"`
	SubID1          string `json:"sub_id1"`
	SubID2          string `json:"sub_id2"`
	SubID3          string `json:"sub_id3"`
	SubID4          string `json:"sub_id4"`
	SubID5          string `json:"sub_id5"`
}

// Key returns the natural key used for deduplication and upsert. Callers must
// only invoke it on validated records, where ItemID is guaranteed present.
func (t TransactionRecord) Key() string {
	return fmt.Sprintf("%s|%d", t.OrderID, *t.ItemID)
}

// ClickRecord is one row of a click report. Clicks carry no natural key;
// duplicate rows are independent events and are all kept.
type ClickRecord struct {
	ClickTime *time.Time `json:"click_time"`
	Region    string     `json:"region"`
	Referrer  string     `json:"referrer"`
	ClickPV   int        `json:"click_pv"`
	SubID1    string     `json:"sub_id1"`
	SubID2    string     `json:"sub_id2"`
	SubID3    string     `json:"sub_id3"`
	SubID4    string     `json:"sub_id4"`
	SubID5    string     `json:"sub_id5"`
}

// OrderAggregate collapses the item rows of one order into a single figure.
// GMV sums item amounts; NetCommission takes the maximum across items because
// the platform bills commission once per order, not per line item.
type OrderAggregate struct {
	OrderID       string          `json:"order_id"`
	GMV           decimal.Decimal `json:"gmv"`
	NetCommission decimal.Decimal `json:"net_commission"`
	Status        string          `json:"status"`
	Day           string          `json:"day"`
}

// KPISummary holds the headline financial metrics over a set of order
// aggregates whose status passed the valid-status allowlist.
type KPISummary struct {
	TotalGMV      decimal.Decimal `json:"total_gmv"`
	NetCommission decimal.Decimal `json:"net_commission"`
	TotalOrders   int             `json:"total_orders"`
	AvgTicket     decimal.Decimal `json:"avg_ticket"`
}

// DailyPoint is one calendar day of the trend series, keyed by the source
// platform's business day.
type DailyPoint struct {
	Day           string          `json:"day"`
	GMV           decimal.Decimal `json:"gmv"`
	NetCommission decimal.Decimal `json:"net_commission"`
	Orders        int             `json:"orders"`
}

// UploadHistory is written once per completed ingestion run, independent of
// per-batch outcomes.
type UploadHistory struct {
	ID         string    `json:"id"`
	FileName   string    `json:"file_name"`
	RecordType string    `json:"record_type"`
	RowCount   int       `json:"row_count"`
	FileSize   int64     `json:"file_size"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// IngestPhase is the per-file ingestion state machine.
type IngestPhase string

const (
	PhaseIdle      IngestPhase = "idle"
	PhaseParsing   IngestPhase = "parsing"
	PhaseUploading IngestPhase = "uploading"
	PhaseSuccess   IngestPhase = "success"
	PhaseError     IngestPhase = "error"
)

// IngestReport is returned to the caller after a run. DuplicatesRemoved and
// FailedRows are distinct counters: consolidated duplicates are not failures
// and must never be folded into the failed tally.
type IngestReport struct {
	RunID             string      `json:"run_id"`
	Phase             IngestPhase `json:"phase"`
	ReportType        ReportType  `json:"report_type"`
	TotalRows         int         `json:"total_rows"`
	AcceptedRows      int         `json:"accepted_rows"`
	FailedRows        int         `json:"failed_rows"`
	DuplicatesRemoved int         `json:"duplicates_removed"`
	ErrorMessage      string      `json:"error_message,omitempty"`
}
