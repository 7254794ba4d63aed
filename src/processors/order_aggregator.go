// src/processors/order_aggregator.go
package processors

import (
	"sort"

	"github.com/RaphaelSchultz/afiliatedash-sub000/src/models"
)

// AggregateOrders collapses item-level transaction records into one aggregate
// per order, in first-seen order. GMV sums the non-absent actual amounts.
// Net commission takes the maximum across the order's items: the platform
// assesses commission once per order, so summing would double count it on
// multi-item orders. Status is carried from the first item that has one; the
// platform emits one status per order, so no reconciliation is attempted.
func AggregateOrders(records []models.TransactionRecord) []models.OrderAggregate {
	byOrder := make(map[string]int, len(records))
	aggregates := make([]models.OrderAggregate, 0, len(records))

	for _, rec := range records {
		idx, ok := byOrder[rec.OrderID]
		if !ok {
			idx = len(aggregates)
			byOrder[rec.OrderID] = idx
			agg := models.OrderAggregate{OrderID: rec.OrderID}
			if rec.PurchaseTime != nil {
				agg.Day = SourceDay(*rec.PurchaseTime)
			}
			aggregates = append(aggregates, agg)
		}

		agg := &aggregates[idx]
		if rec.ActualAmount.Valid {
			agg.GMV = agg.GMV.Add(rec.ActualAmount.Decimal)
		}
		if rec.NetCommission.Valid && rec.NetCommission.Decimal.GreaterThan(agg.NetCommission) {
			agg.NetCommission = rec.NetCommission.Decimal
		}
		if agg.Status == "" {
			agg.Status = rec.Status
		}
	}
	return aggregates
}

// DailySeries groups order aggregates into the source business-day trend
// series, sorted by day. Aggregates without a day bucket (no purchase time)
// are left out of the series.
func DailySeries(aggregates []models.OrderAggregate) []models.DailyPoint {
	byDay := make(map[string]int)
	points := make([]models.DailyPoint, 0)

	for _, agg := range aggregates {
		if agg.Day == "" {
			continue
		}
		idx, ok := byDay[agg.Day]
		if !ok {
			idx = len(points)
			byDay[agg.Day] = idx
			points = append(points, models.DailyPoint{Day: agg.Day})
		}
		points[idx].GMV = points[idx].GMV.Add(agg.GMV)
		points[idx].NetCommission = points[idx].NetCommission.Add(agg.NetCommission)
		points[idx].Orders++
	}

	// Day keys are ISO dates, so lexical order is chronological.
	sort.Slice(points, func(i, j int) bool { return points[i].Day < points[j].Day })
	return points
}
