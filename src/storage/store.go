// src/storage/store.go
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/RaphaelSchultz/afiliatedash-sub000/src/models"
)

// Store is the batch persister over the SQLite database. Transactions are
// written with an idempotent upsert on the (user, order, item) natural key;
// clicks are plain inserts since duplicate click rows are independent events.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

const timeLayout = "2006-01-02T15:04:05Z"

func timeToDB(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC().Format(timeLayout)
}

func decToDB(d decimal.NullDecimal) interface{} {
	if !d.Valid {
		return nil
	}
	return d.Decimal.String()
}

func intToDB(n *int64) interface{} {
	if n == nil {
		return nil
	}
	return *n
}

// UpsertTransactionsBatch writes one batch of validated, deduplicated
// transaction records. A conflicting row is fully overwritten by the batch's
// values rather than partially merged, which makes re-running ingestion on
// the same file idempotent.
func (s *Store) UpsertTransactionsBatch(userID int64, batch []models.TransactionRecord) error {
	if len(batch) == 0 {
		return nil
	}

	dbTx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("error beginning database transaction: %w", err)
	}
	defer dbTx.Rollback()

	stmt, err := dbTx.Prepare(`INSERT INTO affiliate_transactions
		(user_id, order_id, item_id, purchase_time, complete_time, click_time, qty,
		 item_price, actual_amount, net_commission, platform_commission, seller_commission,
		 refund, commission_rate, item_rate, status, channel, category, item_name,
		 shop_name, attribution_type, sub_id1, sub_id2, sub_id3, sub_id4, sub_id5)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, order_id, item_id) DO UPDATE SET
		 purchase_time=excluded.purchase_time, complete_time=excluded.complete_time,
		 click_time=excluded.click_time, qty=excluded.qty, item_price=excluded.item_price,
		 actual_amount=excluded.actual_amount, net_commission=excluded.net_commission,
		 platform_commission=excluded.platform_commission, seller_commission=excluded.seller_commission,
		 refund=excluded.refund, commission_rate=excluded.commission_rate, item_rate=excluded.item_rate,
		 status=excluded.status, channel=excluded.channel, category=excluded.category,
		 item_name=excluded.item_name, shop_name=excluded.shop_name,
		 attribution_type=excluded.attribution_type, sub_id1=excluded.sub_id1,
		 sub_id2=excluded.sub_id2, sub_id3=excluded.sub_id3, sub_id4=excluded.sub_id4,
		 sub_id5=excluded.sub_id5`)
	if err != nil {
		return fmt.Errorf("error preparing upsert statement: %w", err)
	}
	defer stmt.Close()

	for _, rec := range batch {
		_, err := stmt.Exec(userID, rec.OrderID, *rec.ItemID,
			timeToDB(rec.PurchaseTime), timeToDB(rec.CompleteTime), timeToDB(rec.ClickTime),
			intToDB(rec.Qty), decToDB(rec.ItemPrice), decToDB(rec.ActualAmount),
			decToDB(rec.NetCommission), decToDB(rec.PlatformCommission),
			decToDB(rec.SellerCommission), decToDB(rec.Refund),
			decToDB(rec.CommissionRate), decToDB(rec.ItemRate),
			rec.Status, rec.Channel, rec.Category, rec.ItemName, rec.ShopName,
			rec.AttributionType, rec.SubID1, rec.SubID2, rec.SubID3, rec.SubID4, rec.SubID5)
		if err != nil {
			return fmt.Errorf("error upserting transaction (OrderID: %s): %w", rec.OrderID, err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction batch: %w", err)
	}
	return nil
}

// InsertClicksBatch writes one batch of click records with no conflict key.
func (s *Store) InsertClicksBatch(userID int64, batch []models.ClickRecord) error {
	if len(batch) == 0 {
		return nil
	}

	dbTx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("error beginning database transaction: %w", err)
	}
	defer dbTx.Rollback()

	stmt, err := dbTx.Prepare(`INSERT INTO clicks
		(user_id, click_time, region, referrer, click_pv, sub_id1, sub_id2, sub_id3, sub_id4, sub_id5)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("error preparing click insert statement: %w", err)
	}
	defer stmt.Close()

	for _, rec := range batch {
		_, err := stmt.Exec(userID, timeToDB(rec.ClickTime), rec.Region, rec.Referrer,
			rec.ClickPV, rec.SubID1, rec.SubID2, rec.SubID3, rec.SubID4, rec.SubID5)
		if err != nil {
			return fmt.Errorf("error inserting click row: %w", err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("error committing click batch: %w", err)
	}
	return nil
}

const transactionColumns = `order_id, item_id, purchase_time, complete_time, click_time, qty,
	item_price, actual_amount, net_commission, platform_commission, seller_commission,
	refund, commission_rate, item_rate, status, channel, category, item_name,
	shop_name, attribution_type, sub_id1, sub_id2, sub_id3, sub_id4, sub_id5`

// FetchTransactions returns all stored transaction records for a user.
func (s *Store) FetchTransactions(userID int64) ([]models.TransactionRecord, error) {
	rows, err := s.db.Query(`SELECT `+transactionColumns+`
		FROM affiliate_transactions WHERE user_id = ? ORDER BY purchase_time ASC, id ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying transactions for userID %d: %w", userID, err)
	}
	defer rows.Close()
	return scanTransactions(rows)
}

// FetchTransactionsBetween returns stored transactions whose purchase time
// falls within [fromUTC, toUTC). Stored timestamps are fixed-width UTC
// strings, so the range comparison is done directly in SQL.
func (s *Store) FetchTransactionsBetween(userID int64, fromUTC, toUTC time.Time) ([]models.TransactionRecord, error) {
	rows, err := s.db.Query(`SELECT `+transactionColumns+`
		FROM affiliate_transactions
		WHERE user_id = ? AND purchase_time >= ? AND purchase_time < ?
		ORDER BY purchase_time ASC, id ASC`,
		userID, fromUTC.UTC().Format(timeLayout), toUTC.UTC().Format(timeLayout))
	if err != nil {
		return nil, fmt.Errorf("error querying transactions for userID %d: %w", userID, err)
	}
	defer rows.Close()
	return scanTransactions(rows)
}

func scanTransactions(rows *sql.Rows) ([]models.TransactionRecord, error) {
	var records []models.TransactionRecord
	for rows.Next() {
		var rec models.TransactionRecord
		var itemID int64
		var purchase, complete, click, itemPrice, actual, netComm, platComm, sellComm,
			refund, commRate, itemRate, status, channel, category, itemName, shopName,
			attribution, sub1, sub2, sub3, sub4, sub5 sql.NullString
		var qty sql.NullInt64

		err := rows.Scan(&rec.OrderID, &itemID, &purchase, &complete, &click, &qty,
			&itemPrice, &actual, &netComm, &platComm, &sellComm, &refund, &commRate,
			&itemRate, &status, &channel, &category, &itemName, &shopName,
			&attribution, &sub1, &sub2, &sub3, &sub4, &sub5)
		if err != nil {
			return nil, fmt.Errorf("error scanning transaction row: %w", err)
		}

		rec.ItemID = &itemID
		rec.PurchaseTime = timeFromDB(purchase)
		rec.CompleteTime = timeFromDB(complete)
		rec.ClickTime = timeFromDB(click)
		if qty.Valid {
			v := qty.Int64
			rec.Qty = &v
		}
		rec.ItemPrice = decFromDB(itemPrice)
		rec.ActualAmount = decFromDB(actual)
		rec.NetCommission = decFromDB(netComm)
		rec.PlatformCommission = decFromDB(platComm)
		rec.SellerCommission = decFromDB(sellComm)
		rec.Refund = decFromDB(refund)
		rec.CommissionRate = decFromDB(commRate)
		rec.ItemRate = decFromDB(itemRate)
		rec.Status = status.String
		rec.Channel = channel.String
		rec.Category = category.String
		rec.ItemName = itemName.String
		rec.ShopName = shopName.String
		rec.AttributionType = attribution.String
		rec.SubID1, rec.SubID2, rec.SubID3 = sub1.String, sub2.String, sub3.String
		rec.SubID4, rec.SubID5 = sub4.String, sub5.String

		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over transaction rows: %w", err)
	}
	return records, nil
}

func timeFromDB(v sql.NullString) *time.Time {
	if !v.Valid || v.String == "" {
		return nil
	}
	t, err := time.Parse(timeLayout, v.String)
	if err != nil {
		return nil
	}
	return &t
}

func decFromDB(v sql.NullString) decimal.NullDecimal {
	if !v.Valid || v.String == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(v.String)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

// CountTransactions returns the number of stored transaction rows for a user.
func (s *Store) CountTransactions(userID int64) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM affiliate_transactions WHERE user_id = ?`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("error counting transactions for userID %d: %w", userID, err)
	}
	return n, nil
}

// CountClicks returns the number of stored click rows for a user.
func (s *Store) CountClicks(userID int64) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM clicks WHERE user_id = ?`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("error counting clicks for userID %d: %w", userID, err)
	}
	return n, nil
}

// InsertUploadHistory records one completed ingestion run.
func (s *Store) InsertUploadHistory(userID int64, h models.UploadHistory) error {
	_, err := s.db.Exec(`INSERT INTO upload_history
		(id, user_id, file_name, record_type, row_count, file_size, uploaded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		h.ID, userID, h.FileName, h.RecordType, h.RowCount, h.FileSize,
		h.UploadedAt.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("error inserting upload history: %w", err)
	}
	return nil
}

// ListUploadHistory returns a user's upload records, newest first.
func (s *Store) ListUploadHistory(userID int64) ([]models.UploadHistory, error) {
	rows, err := s.db.Query(`SELECT id, file_name, record_type, row_count, file_size, uploaded_at
		FROM upload_history WHERE user_id = ? ORDER BY uploaded_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying upload history for userID %d: %w", userID, err)
	}
	defer rows.Close()

	var history []models.UploadHistory
	for rows.Next() {
		var h models.UploadHistory
		var uploadedAt string
		if err := rows.Scan(&h.ID, &h.FileName, &h.RecordType, &h.RowCount, &h.FileSize, &uploadedAt); err != nil {
			return nil, fmt.Errorf("error scanning upload history row: %w", err)
		}
		if t, err := time.Parse(timeLayout, uploadedAt); err == nil {
			h.UploadedAt = t
		}
		history = append(history, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over upload history rows: %w", err)
	}
	return history, nil
}
