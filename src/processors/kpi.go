package processors

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/RaphaelSchultz/afiliatedash-sub000/src/models"
)

// validStatuses is the allowlist of order statuses that count toward KPIs,
// matched case-insensitively. Cancelled, refunded, and unknown statuses are
// excluded.
var validStatuses = map[string]bool{
	"completed": true,
	"complete":  true,
	"concluído": true,
	"concluido": true,
	"pending":   true,
	"pendente":  true,
}

// IsValidStatus reports whether an order status counts toward summaries.
func IsValidStatus(status string) bool {
	return validStatuses[strings.ToLower(strings.TrimSpace(status))]
}

// CalculateKPIs computes the summary metrics over order aggregates whose
// status passes the allowlist. AvgTicket is zero when no orders qualify;
// division by zero never propagates.
func CalculateKPIs(aggregates []models.OrderAggregate) models.KPISummary {
	summary := models.KPISummary{}
	for _, agg := range aggregates {
		if !IsValidStatus(agg.Status) {
			continue
		}
		summary.TotalGMV = summary.TotalGMV.Add(agg.GMV)
		summary.NetCommission = summary.NetCommission.Add(agg.NetCommission)
		summary.TotalOrders++
	}
	if summary.TotalOrders > 0 {
		summary.AvgTicket = summary.TotalGMV.Div(decimal.NewFromInt(int64(summary.TotalOrders)))
	}
	return summary
}
