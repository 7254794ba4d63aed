package processors

import (
	"github.com/RaphaelSchultz/afiliatedash-sub000/src/models"
)

// DedupTransactions collapses records sharing a natural key, last wins: a
// later row replaces an earlier one's values while keeping its position.
// Applied once over the whole parsed dataset and again within each batch
// before persistence, since batch boundaries can still carry leftovers.
// Running it on its own output is a no-op.
func DedupTransactions(records []models.TransactionRecord) ([]models.TransactionRecord, int) {
	if len(records) == 0 {
		return records, 0
	}

	out := make([]models.TransactionRecord, 0, len(records))
	seen := make(map[string]int, len(records))
	for _, rec := range records {
		key := rec.Key()
		if idx, ok := seen[key]; ok {
			out[idx] = rec
			continue
		}
		seen[key] = len(out)
		out = append(out, rec)
	}
	return out, len(records) - len(out)
}
