package models

// ReportType identifies which of the two recognized report families a file
// belongs to.
type ReportType string

const (
	ReportTransactions ReportType = "transactions"
	ReportClicks       ReportType = "clicks"
)

// FieldKind declares how a canonical field's raw cell text must be parsed.
type FieldKind int

const (
	KindText FieldKind = iota
	KindCurrency
	KindPercentage
	KindDateTime
	KindInteger
)

// CanonicalField is the internal, locale-independent name for a report column.
// Header mapping resolves every recognized localized header to one of these.
type CanonicalField string

const (
	FieldOrderID            CanonicalField = "order_id"
	FieldItemID             CanonicalField = "item_id"
	FieldPurchaseTime       CanonicalField = "purchase_time"
	FieldCompleteTime       CanonicalField = "complete_time"
	FieldClickTime          CanonicalField = "click_time"
	FieldQty                CanonicalField = "qty"
	FieldItemPrice          CanonicalField = "item_price"
	FieldActualAmount       CanonicalField = "actual_amount"
	FieldNetCommission      CanonicalField = "net_commission"
	FieldPlatformCommission CanonicalField = "platform_commission"
	FieldSellerCommission   CanonicalField = "seller_commission"
	FieldRefund             CanonicalField = "refund"
	FieldCommissionRate     CanonicalField = "commission_rate"
	FieldItemRate           CanonicalField = "item_rate"
	FieldStatus             CanonicalField = "status"
	FieldChannel            CanonicalField = "channel"
	FieldCategory           CanonicalField = "category"
	FieldItemName           CanonicalField = "item_name"
	FieldShopName           CanonicalField = "shop_name"
	FieldRegion             CanonicalField = "region"
	FieldAttributionType    CanonicalField = "attribution_type"
	FieldReferrer           CanonicalField = "referrer"
	FieldClickPV            CanonicalField = "click_pv"
	FieldSubID1             CanonicalField = "sub_id1"
	FieldSubID2             CanonicalField = "sub_id2"
	FieldSubID3             CanonicalField = "sub_id3"
	FieldSubID4             CanonicalField = "sub_id4"
	FieldSubID5             CanonicalField = "sub_id5"
)

// FieldSpec ties a canonical field to its parsing rule and whether a record
// missing it is rejected.
type FieldSpec struct {
	Kind     FieldKind
	Required bool
}

// TransactionFieldSpecs covers every canonical field of the transaction report
// family. Only order_id and item_id are required; everything else is optional
// and may be absent in a given export.
var TransactionFieldSpecs = map[CanonicalField]FieldSpec{
	FieldOrderID:            {Kind: KindText, Required: true},
	FieldItemID:             {Kind: KindInteger, Required: true},
	FieldPurchaseTime:       {Kind: KindDateTime},
	FieldCompleteTime:       {Kind: KindDateTime},
	FieldClickTime:          {Kind: KindDateTime},
	FieldQty:                {Kind: KindInteger},
	FieldItemPrice:          {Kind: KindCurrency},
	FieldActualAmount:       {Kind: KindCurrency},
	FieldNetCommission:      {Kind: KindCurrency},
	FieldPlatformCommission: {Kind: KindCurrency},
	FieldSellerCommission:   {Kind: KindCurrency},
	FieldRefund:             {Kind: KindCurrency},
	FieldCommissionRate:     {Kind: KindPercentage},
	FieldItemRate:           {Kind: KindPercentage},
	FieldStatus:             {Kind: KindText},
	FieldChannel:            {Kind: KindText},
	FieldCategory:           {Kind: KindText},
	FieldItemName:           {Kind: KindText},
	FieldShopName:           {Kind: KindText},
	FieldAttributionType:    {Kind: KindText},
	FieldSubID1:             {Kind: KindText},
	FieldSubID2:             {Kind: KindText},
	FieldSubID3:             {Kind: KindText},
	FieldSubID4:             {Kind: KindText},
	FieldSubID5:             {Kind: KindText},
}

// ClickFieldSpecs covers the click report family. click_time is the only
// required field; click_pv defaults to 1 when the column is missing.
var ClickFieldSpecs = map[CanonicalField]FieldSpec{
	FieldClickTime: {Kind: KindDateTime, Required: true},
	FieldRegion:    {Kind: KindText},
	FieldReferrer:  {Kind: KindText},
	FieldClickPV:   {Kind: KindInteger},
	FieldSubID1:    {Kind: KindText},
	FieldSubID2:    {Kind: KindText},
	FieldSubID3:    {Kind: KindText},
	FieldSubID4:    {Kind: KindText},
	FieldSubID5:    {Kind: KindText},
}
