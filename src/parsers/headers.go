package parsers

import (
	"errors"
	"strings"

	"github.com/RaphaelSchultz/afiliatedash-sub000/src/models"
)

// ErrUnknownReportType aborts a run before any persistence is attempted.
var ErrUnknownReportType = errors.New("unrecognized report format")

// NormalizeHeader lower-cases, trims, and strips a leading byte-order mark
// from a raw column header.
func NormalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\uFEFF")
	return strings.ToLower(strings.TrimSpace(h))
}

var (
	orderTokens      = []string{"order", "pedido", "encomenda"}
	commissionTokens = []string{"commission", "comissão", "comissao"}
	clickTokens      = []string{"click", "clique"}
)

func containsAny(s string, tokens []string) bool {
	for _, tok := range tokens {
		if strings.Contains(s, tok) {
			return true
		}
	}
	return false
}

// DetectReportType classifies a header set as one of the two recognized
// report families. Any order or commission token marks a transaction report;
// a click token that is not also an order token marks a click report.
// Anything else is fatal for the whole run.
func DetectReportType(headers []string) (models.ReportType, error) {
	sawClick := false
	for _, raw := range headers {
		h := NormalizeHeader(raw)
		if containsAny(h, orderTokens) || containsAny(h, commissionTokens) {
			return models.ReportTransactions, nil
		}
		if containsAny(h, clickTokens) {
			sawClick = true
		}
	}
	if sawClick {
		return models.ReportClicks, nil
	}
	return "", ErrUnknownReportType
}

// transactionAliases maps normalized localized headers to canonical fields.
// Several raw spellings may map to one field; the reverse direction is never
// ambiguous.
var transactionAliases = map[string]models.CanonicalField{
	"order id":     models.FieldOrderID,
	"order_id":     models.FieldOrderID,
	"id do pedido": models.FieldOrderID,
	"id da ordem":  models.FieldOrderID,

	"item id":    models.FieldItemID,
	"item_id":    models.FieldItemID,
	"id do item": models.FieldItemID,

	"purchase time":     models.FieldPurchaseTime,
	"order time":        models.FieldPurchaseTime,
	"horário do pedido": models.FieldPurchaseTime,
	"horario do pedido": models.FieldPurchaseTime,
	"hora da compra":    models.FieldPurchaseTime,

	"complete time":         models.FieldCompleteTime,
	"completed time":        models.FieldCompleteTime,
	"horário de conclusão":  models.FieldCompleteTime,
	"horario de conclusao":  models.FieldCompleteTime,
	"tempo de concluído":    models.FieldCompleteTime,

	"click time":        models.FieldClickTime,
	"horário do clique": models.FieldClickTime,
	"horario do clique": models.FieldClickTime,

	"qty":        models.FieldQty,
	"quantity":   models.FieldQty,
	"quantidade": models.FieldQty,

	"item price":    models.FieldItemPrice,
	"price":         models.FieldItemPrice,
	"preço do item": models.FieldItemPrice,
	"preco do item": models.FieldItemPrice,

	"actual amount":         models.FieldActualAmount,
	"purchase value":        models.FieldActualAmount,
	"valor real":            models.FieldActualAmount,
	"valor de compra":       models.FieldActualAmount,
	"valor de compra real":  models.FieldActualAmount,

	"net commission":   models.FieldNetCommission,
	"comissão líquida": models.FieldNetCommission,
	"comissao liquida": models.FieldNetCommission,

	"platform commission":    models.FieldPlatformCommission,
	"comissão da plataforma": models.FieldPlatformCommission,
	"comissao da plataforma": models.FieldPlatformCommission,

	"seller commission":    models.FieldSellerCommission,
	"comissão do vendedor": models.FieldSellerCommission,
	"comissao do vendedor": models.FieldSellerCommission,

	"refund":            models.FieldRefund,
	"refund amount":     models.FieldRefund,
	"valor reembolsado": models.FieldRefund,

	"commission rate":  models.FieldCommissionRate,
	"taxa de comissão": models.FieldCommissionRate,
	"taxa de comissao": models.FieldCommissionRate,

	"item commission rate":      models.FieldItemRate,
	"taxa de comissão do item":  models.FieldItemRate,
	"taxa de comissao do item":  models.FieldItemRate,

	"order status":     models.FieldStatus,
	"status":           models.FieldStatus,
	"status do pedido": models.FieldStatus,

	"channel": models.FieldChannel,
	"canal":   models.FieldChannel,

	"category":           models.FieldCategory,
	"categoria":          models.FieldCategory,
	"global category l1": models.FieldCategory,
	"categoria global l1": models.FieldCategory,

	"item name":    models.FieldItemName,
	"nome do item": models.FieldItemName,

	"shop name":    models.FieldShopName,
	"nome da loja": models.FieldShopName,

	"attribution type":   models.FieldAttributionType,
	"tipo de atribuição": models.FieldAttributionType,
	"tipo de atribuicao": models.FieldAttributionType,
}

// clickAliases is the click-report mapping table.
var clickAliases = map[string]models.CanonicalField{
	"click time":        models.FieldClickTime,
	"horário do clique": models.FieldClickTime,
	"horario do clique": models.FieldClickTime,
	"data do clique":    models.FieldClickTime,

	"region": models.FieldRegion,
	"região": models.FieldRegion,
	"regiao": models.FieldRegion,

	"referrer":      models.FieldReferrer,
	"referenciador": models.FieldReferrer,
	"origem":        models.FieldReferrer,

	"clicks":   models.FieldClickPV,
	"click pv": models.FieldClickPV,
	"cliques":  models.FieldClickPV,
}

func init() {
	// Both families share the sub-id columns under the same spellings.
	subIDs := map[string]models.CanonicalField{
		"sub_id1": models.FieldSubID1, "sub id 1": models.FieldSubID1, "subid1": models.FieldSubID1,
		"sub_id2": models.FieldSubID2, "sub id 2": models.FieldSubID2, "subid2": models.FieldSubID2,
		"sub_id3": models.FieldSubID3, "sub id 3": models.FieldSubID3, "subid3": models.FieldSubID3,
		"sub_id4": models.FieldSubID4, "sub id 4": models.FieldSubID4, "subid4": models.FieldSubID4,
		"sub_id5": models.FieldSubID5, "sub id 5": models.FieldSubID5, "subid5": models.FieldSubID5,
	}
	for k, v := range subIDs {
		transactionAliases[k] = v
		clickAliases[k] = v
	}
}

// MapHeader resolves a raw header to its canonical field for the detected
// report family. Unmapped headers are reported as not ok and later dropped by
// the record builder.
func MapHeader(reportType models.ReportType, rawHeader string) (models.CanonicalField, bool) {
	h := NormalizeHeader(rawHeader)
	switch reportType {
	case models.ReportTransactions:
		f, ok := transactionAliases[h]
		return f, ok
	case models.ReportClicks:
		f, ok := clickAliases[h]
		return f, ok
	}
	return "", false
}
