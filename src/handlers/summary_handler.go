package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/RaphaelSchultz/afiliatedash-sub000/src/logger"
	"github.com/RaphaelSchultz/afiliatedash-sub000/src/models"
	"github.com/RaphaelSchultz/afiliatedash-sub000/src/services"
	"github.com/RaphaelSchultz/afiliatedash-sub000/src/utils"
)

type SummaryHandler struct {
	summaryService services.SummaryService
}

func NewSummaryHandler(service services.SummaryService) *SummaryHandler {
	return &SummaryHandler{
		summaryService: service,
	}
}

// HandleGetKPISummary serves the headline metrics for an optional date range.
// from/to are calendar dates in the display timezone.
func (h *SummaryHandler) HandleGetKPISummary(w http.ResponseWriter, r *http.Request) {
	userID := tenantIDFromRequest(r)
	fromDate := r.URL.Query().Get("from")
	toDate := r.URL.Query().Get("to")

	summary, err := h.summaryService.GetKPISummary(userID, fromDate, toDate)
	if err != nil {
		logger.L.Error("Error computing KPI summary", "userID", userID, "error", err)
		utils.SendJSONError(w, fmt.Sprintf("Error computing KPI summary: %v", err), http.StatusInternalServerError)
		return
	}

	h.writeWithETag(w, r, userID, summary)
}

// HandleGetDailySeries serves the source business-day trend series.
func (h *SummaryHandler) HandleGetDailySeries(w http.ResponseWriter, r *http.Request) {
	userID := tenantIDFromRequest(r)
	fromDate := r.URL.Query().Get("from")
	toDate := r.URL.Query().Get("to")

	series, err := h.summaryService.GetDailySeries(userID, fromDate, toDate)
	if err != nil {
		logger.L.Error("Error computing daily series", "userID", userID, "error", err)
		utils.SendJSONError(w, fmt.Sprintf("Error computing daily series: %v", err), http.StatusInternalServerError)
		return
	}
	if series == nil {
		series = []models.DailyPoint{}
	}

	h.writeWithETag(w, r, userID, series)
}

func (h *SummaryHandler) HandleGetUploadHistory(w http.ResponseWriter, r *http.Request) {
	userID := tenantIDFromRequest(r)

	history, err := h.summaryService.GetUploadHistory(userID)
	if err != nil {
		logger.L.Error("Error retrieving upload history", "userID", userID, "error", err)
		utils.SendJSONError(w, fmt.Sprintf("Error retrieving upload history: %v", err), http.StatusInternalServerError)
		return
	}
	if history == nil {
		history = []models.UploadHistory{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(history); err != nil {
		logger.L.Error("Error encoding upload history response", "userID", userID, "error", err)
	}
}

func (h *SummaryHandler) writeWithETag(w http.ResponseWriter, r *http.Request, userID int64, payload interface{}) {
	w.Header().Set("Cache-Control", "no-cache, private")

	currentETag, etagErr := utils.GenerateETag(payload)
	if etagErr == nil && currentETag != "" {
		quotedETag := fmt.Sprintf("%q", currentETag)
		w.Header().Set("ETag", quotedETag)
		for _, cETag := range strings.Split(r.Header.Get("If-None-Match"), ",") {
			if strings.TrimSpace(cETag) == quotedETag {
				w.WriteHeader(http.StatusNotModified)
				return
			}
		}
	} else {
		logger.L.Warn("Proceeding without ETag check", "userID", userID, "error", etagErr)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.L.Error("Error encoding summary response", "userID", userID, "error", err)
	}
}
