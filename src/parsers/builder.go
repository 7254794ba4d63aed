package parsers

import (
	"sort"

	"github.com/RaphaelSchultz/afiliatedash-sub000/src/models"
	"github.com/RaphaelSchultz/afiliatedash-sub000/src/security/validation"
)

// mapColumns resolves each header position to a canonical field once per
// table. Unmapped columns get an empty field and are skipped per row.
func mapColumns(reportType models.ReportType, headers []string) []models.CanonicalField {
	cols := make([]models.CanonicalField, len(headers))
	for i, h := range headers {
		if f, ok := MapHeader(reportType, h); ok {
			cols[i] = f
		}
	}
	return cols
}

func fieldSpecs(reportType models.ReportType) map[models.CanonicalField]models.FieldSpec {
	if reportType == models.ReportClicks {
		return models.ClickFieldSpecs
	}
	return models.TransactionFieldSpecs
}

// MissingRequiredColumns returns the required canonical fields of a report
// family that no header maps to. A file missing one would reject every row, so
// callers treat a non-empty result as fatal for the whole file.
func MissingRequiredColumns(reportType models.ReportType, headers []string) []models.CanonicalField {
	present := make(map[models.CanonicalField]bool, len(headers))
	for _, f := range mapColumns(reportType, headers) {
		if f != "" {
			present[f] = true
		}
	}

	var missing []models.CanonicalField
	for f, spec := range fieldSpecs(reportType) {
		if spec.Required && !present[f] {
			missing = append(missing, f)
		}
	}
	sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
	return missing
}

func cleanText(raw string) (string, bool) {
	s, ok := ParseText(raw)
	if !ok {
		return "", false
	}
	return validation.StripUnprintable(s), true
}

// BuildTransactions assembles canonical transaction records from raw rows.
// Rows missing order_id or item_id are rejected and counted, never defaulted.
func BuildTransactions(table *models.RawTable) (records []models.TransactionRecord, failed int) {
	cols := mapColumns(models.ReportTransactions, table.Headers)

	for _, row := range table.Rows {
		var rec models.TransactionRecord
		for i, cell := range row {
			if i >= len(cols) || cols[i] == "" {
				continue
			}
			assignTransactionField(&rec, cols[i], cell)
		}
		if rec.OrderID == "" || rec.ItemID == nil {
			failed++
			continue
		}
		records = append(records, rec)
	}
	return records, failed
}

func assignTransactionField(rec *models.TransactionRecord, field models.CanonicalField, cell string) {
	switch field {
	case models.FieldOrderID:
		rec.OrderID, _ = cleanText(cell)
	case models.FieldItemID:
		rec.ItemID = ParseInteger(cell)
	case models.FieldPurchaseTime:
		rec.PurchaseTime = ParseDateTime(cell)
	case models.FieldCompleteTime:
		rec.CompleteTime = ParseDateTime(cell)
	case models.FieldClickTime:
		rec.ClickTime = ParseDateTime(cell)
	case models.FieldQty:
		rec.Qty = ParseInteger(cell)
	case models.FieldItemPrice:
		rec.ItemPrice = ParseCurrency(cell)
	case models.FieldActualAmount:
		rec.ActualAmount = ParseCurrency(cell)
	case models.FieldNetCommission:
		rec.NetCommission = ParseCurrency(cell)
	case models.FieldPlatformCommission:
		rec.PlatformCommission = ParseCurrency(cell)
	case models.FieldSellerCommission:
		rec.SellerCommission = ParseCurrency(cell)
	case models.FieldRefund:
		rec.Refund = ParseCurrency(cell)
	case models.FieldCommissionRate:
		rec.CommissionRate = ParsePercentage(cell)
	case models.FieldItemRate:
		rec.ItemRate = ParsePercentage(cell)
	case models.FieldStatus:
		rec.Status, _ = cleanText(cell)
	case models.FieldChannel:
		rec.Channel, _ = cleanText(cell)
	case models.FieldCategory:
		rec.Category, _ = cleanText(cell)
	case models.FieldItemName:
		if s, ok := cleanText(cell); ok {
			rec.ItemName = validation.SanitizeForFormulaInjection(s)
		}
	case models.FieldShopName:
		if s, ok := cleanText(cell); ok {
			rec.ShopName = validation.SanitizeForFormulaInjection(s)
		}
	case models.FieldAttributionType:
		rec.AttributionType, _ = cleanText(cell)
	case models.FieldSubID1:
		rec.SubID1, _ = cleanText(cell)
	case models.FieldSubID2:
		rec.SubID2, _ = cleanText(cell)
	case models.FieldSubID3:
		rec.SubID3, _ = cleanText(cell)
	case models.FieldSubID4:
		rec.SubID4, _ = cleanText(cell)
	case models.FieldSubID5:
		rec.SubID5, _ = cleanText(cell)
	}
}

// BuildClicks assembles click records. A missing click_time rejects the row;
// the builder never substitutes the current time. click_pv defaults to 1,
// each row being one click event.
func BuildClicks(table *models.RawTable) (records []models.ClickRecord, failed int) {
	cols := mapColumns(models.ReportClicks, table.Headers)

	for _, row := range table.Rows {
		rec := models.ClickRecord{ClickPV: 1}
		for i, cell := range row {
			if i >= len(cols) || cols[i] == "" {
				continue
			}
			assignClickField(&rec, cols[i], cell)
		}
		if rec.ClickTime == nil {
			failed++
			continue
		}
		records = append(records, rec)
	}
	return records, failed
}

func assignClickField(rec *models.ClickRecord, field models.CanonicalField, cell string) {
	switch field {
	case models.FieldClickTime:
		rec.ClickTime = ParseDateTime(cell)
	case models.FieldRegion:
		rec.Region, _ = cleanText(cell)
	case models.FieldReferrer:
		rec.Referrer, _ = cleanText(cell)
	case models.FieldClickPV:
		if n := ParseInteger(cell); n != nil {
			rec.ClickPV = int(*n)
		}
	case models.FieldSubID1:
		rec.SubID1, _ = cleanText(cell)
	case models.FieldSubID2:
		rec.SubID2, _ = cleanText(cell)
	case models.FieldSubID3:
		rec.SubID3, _ = cleanText(cell)
	case models.FieldSubID4:
		rec.SubID4, _ = cleanText(cell)
	case models.FieldSubID5:
		rec.SubID5, _ = cleanText(cell)
	}
}
