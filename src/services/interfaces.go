package services

import (
	"errors"
	"io"

	"github.com/RaphaelSchultz/afiliatedash-sub000/src/models"
)

var (
	// ErrParsingFailed covers unreadable files and header sets the detector
	// cannot place; both abort the run before any persistence.
	ErrParsingFailed = errors.New("error parsing report file")
)

// IngestionService runs the full per-file pipeline: detect, map, normalize,
// build, deduplicate, persist in batches, record history.
type IngestionService interface {
	IngestReportFile(fileReader io.Reader, fileName string, fileSize int64, userID int64) (*models.IngestReport, error)
}

// SummaryService derives the aggregation outputs the display layer consumes.
// It never exposes raw rows or intermediate parser state.
type SummaryService interface {
	GetKPISummary(userID int64, fromDate, toDate string) (*models.KPISummary, error)
	GetDailySeries(userID int64, fromDate, toDate string) ([]models.DailyPoint, error)
	GetUploadHistory(userID int64) ([]models.UploadHistory, error)
	InvalidateUserCache(userID int64)
}
