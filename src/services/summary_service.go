package services

import (
	"fmt"

	"github.com/patrickmn/go-cache"

	"github.com/RaphaelSchultz/afiliatedash-sub000/src/logger"
	"github.com/RaphaelSchultz/afiliatedash-sub000/src/models"
	"github.com/RaphaelSchultz/afiliatedash-sub000/src/processors"
	"github.com/RaphaelSchultz/afiliatedash-sub000/src/storage"
)

const (
	ckKPISummary  = "agg_kpi_summary_user_%d_%s_%s"
	ckDailySeries = "agg_daily_series_user_%d_%s_%s"
	ckCacheMarker = "agg_keys_user_%d"
)

type summaryServiceImpl struct {
	store       *storage.Store
	resultCache *cache.Cache
}

func NewSummaryService(store *storage.Store, resultCache *cache.Cache) SummaryService {
	return &summaryServiceImpl{store: store, resultCache: resultCache}
}

// fetchRange loads the transactions backing a summary. An empty range means
// everything; otherwise the user-selected display-timezone dates are
// converted into UTC query bounds before hitting the store.
func (s *summaryServiceImpl) fetchRange(userID int64, fromDate, toDate string) ([]models.TransactionRecord, error) {
	if fromDate == "" && toDate == "" {
		return s.store.FetchTransactions(userID)
	}
	if fromDate == "" {
		fromDate = toDate
	}
	if toDate == "" {
		toDate = fromDate
	}

	fromUTC, _, err := processors.DisplayRangeBounds(fromDate)
	if err != nil {
		return nil, err
	}
	_, toUTC, err := processors.DisplayRangeBounds(toDate)
	if err != nil {
		return nil, err
	}
	return s.store.FetchTransactionsBetween(userID, fromUTC, toUTC)
}

func (s *summaryServiceImpl) trackKey(userID int64, key string) {
	markerKey := fmt.Sprintf(ckCacheMarker, userID)
	var keys []string
	if existing, found := s.resultCache.Get(markerKey); found {
		keys = existing.([]string)
	}
	s.resultCache.Set(markerKey, append(keys, key), cache.NoExpiration)
}

func (s *summaryServiceImpl) GetKPISummary(userID int64, fromDate, toDate string) (*models.KPISummary, error) {
	cacheKey := fmt.Sprintf(ckKPISummary, userID, fromDate, toDate)
	if cached, found := s.resultCache.Get(cacheKey); found {
		logger.L.Debug("Cache hit for KPI summary", "userID", userID)
		return cached.(*models.KPISummary), nil
	}
	logger.L.Info("Cache miss for KPI summary, computing from store", "userID", userID)

	records, err := s.fetchRange(userID, fromDate, toDate)
	if err != nil {
		return nil, err
	}

	aggregates := processors.AggregateOrders(records)
	summary := processors.CalculateKPIs(aggregates)

	s.resultCache.SetDefault(cacheKey, &summary)
	s.trackKey(userID, cacheKey)
	return &summary, nil
}

func (s *summaryServiceImpl) GetDailySeries(userID int64, fromDate, toDate string) ([]models.DailyPoint, error) {
	cacheKey := fmt.Sprintf(ckDailySeries, userID, fromDate, toDate)
	if cached, found := s.resultCache.Get(cacheKey); found {
		logger.L.Debug("Cache hit for daily series", "userID", userID)
		return cached.([]models.DailyPoint), nil
	}
	logger.L.Info("Cache miss for daily series, computing from store", "userID", userID)

	records, err := s.fetchRange(userID, fromDate, toDate)
	if err != nil {
		return nil, err
	}

	series := processors.DailySeries(processors.AggregateOrders(records))

	s.resultCache.SetDefault(cacheKey, series)
	s.trackKey(userID, cacheKey)
	return series, nil
}

func (s *summaryServiceImpl) GetUploadHistory(userID int64) ([]models.UploadHistory, error) {
	return s.store.ListUploadHistory(userID)
}

// InvalidateUserCache clears every cached summary for a user, forcing a full
// recomputation on the next request.
func (s *summaryServiceImpl) InvalidateUserCache(userID int64) {
	markerKey := fmt.Sprintf(ckCacheMarker, userID)
	if existing, found := s.resultCache.Get(markerKey); found {
		for _, key := range existing.([]string) {
			s.resultCache.Delete(key)
		}
	}
	s.resultCache.Delete(markerKey)
	logger.L.Info("Invalidated summary caches for user", "userID", userID)
}
