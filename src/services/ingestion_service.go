// src/services/ingestion_service.go
package services

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/RaphaelSchultz/afiliatedash-sub000/src/logger"
	"github.com/RaphaelSchultz/afiliatedash-sub000/src/models"
	"github.com/RaphaelSchultz/afiliatedash-sub000/src/parsers"
	"github.com/RaphaelSchultz/afiliatedash-sub000/src/processors"
	"github.com/RaphaelSchultz/afiliatedash-sub000/src/storage"
)

type ingestionServiceImpl struct {
	store          *storage.Store
	summaryService SummaryService
	batchSize      int
}

func NewIngestionService(store *storage.Store, summaryService SummaryService, batchSize int) IngestionService {
	return &ingestionServiceImpl{
		store:          store,
		summaryService: summaryService,
		batchSize:      batchSize,
	}
}

// IngestReportFile processes one complete report file through the state
// machine idle -> parsing -> uploading -> success|error. Schema detection and
// read failures are fatal and happen before any persistence; row validation
// and batch persistence failures are counted and the run continues.
func (s *ingestionServiceImpl) IngestReportFile(fileReader io.Reader, fileName string, fileSize int64, userID int64) (*models.IngestReport, error) {
	startTime := time.Now()
	report := &models.IngestReport{
		RunID: uuid.NewString(),
		Phase: models.PhaseParsing,
	}
	logger.L.Info("Ingestion START", "runID", report.RunID, "userID", userID, "fileName", fileName)

	parsed, err := parsers.ParseReport(fileReader, fileName)
	if err != nil {
		report.Phase = models.PhaseError
		report.ErrorMessage = err.Error()
		return report, fmt.Errorf("%w: %v", ErrParsingFailed, err)
	}

	report.ReportType = parsed.Type
	report.TotalRows = parsed.TotalRows
	report.FailedRows = parsed.FailedRows
	report.Phase = models.PhaseUploading

	switch parsed.Type {
	case models.ReportTransactions:
		s.persistTransactions(userID, parsed.Transactions, report)
	case models.ReportClicks:
		s.persistClicks(userID, parsed.Clicks, report)
	}

	history := models.UploadHistory{
		ID:         report.RunID,
		FileName:   fileName,
		RecordType: string(parsed.Type),
		RowCount:   report.AcceptedRows,
		FileSize:   fileSize,
		UploadedAt: time.Now().UTC(),
	}
	if err := s.store.InsertUploadHistory(userID, history); err != nil {
		// Best effort, at most once: the run outcome stands even when the
		// history write fails.
		logger.L.Error("Failed to record upload history", "runID", report.RunID, "userID", userID, "error", err)
	}

	s.summaryService.InvalidateUserCache(userID)

	report.Phase = models.PhaseSuccess
	logger.L.Info("Ingestion END", "runID", report.RunID, "userID", userID,
		"accepted", report.AcceptedRows, "failed", report.FailedRows,
		"duplicatesRemoved", report.DuplicatesRemoved, "duration", time.Since(startTime))
	return report, nil
}

// persistTransactions runs the two dedup passes and writes fixed-size batches
// strictly in sequence. Ordering is a correctness requirement: an out-of-order
// write could land an older batch's values over a newer upsert for the same
// natural key.
func (s *ingestionServiceImpl) persistTransactions(userID int64, records []models.TransactionRecord, report *models.IngestReport) {
	deduped, removed := processors.DedupTransactions(records)
	report.DuplicatesRemoved += removed

	for start := 0; start < len(deduped); start += s.batchSize {
		end := start + s.batchSize
		if end > len(deduped) {
			end = len(deduped)
		}

		batch, removedInBatch := processors.DedupTransactions(deduped[start:end])
		report.DuplicatesRemoved += removedInBatch

		if err := s.store.UpsertTransactionsBatch(userID, batch); err != nil {
			logger.L.Warn("Transaction batch failed, continuing with next batch",
				"runID", report.RunID, "userID", userID, "batchStart", start, "error", err)
			report.FailedRows += len(batch)
			continue
		}
		report.AcceptedRows += len(batch)
	}
}

func (s *ingestionServiceImpl) persistClicks(userID int64, records []models.ClickRecord, report *models.IngestReport) {
	for start := 0; start < len(records); start += s.batchSize {
		end := start + s.batchSize
		if end > len(records) {
			end = len(records)
		}
		batch := records[start:end]

		if err := s.store.InsertClicksBatch(userID, batch); err != nil {
			logger.L.Warn("Click batch failed, continuing with next batch",
				"runID", report.RunID, "userID", userID, "batchStart", start, "error", err)
			report.FailedRows += len(batch)
			continue
		}
		report.AcceptedRows += len(batch)
	}
}
