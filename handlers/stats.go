package handlers

import (
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/omegonstudio/fotospatagonia-backend/database"
)

// StatsHandler serves the admin dashboard aggregates straight off the
// underlying sql.DB.
type StatsHandler struct {
	DB *sql.DB
}

func NewStatsHandler(db *sql.DB) *StatsHandler {
	return &StatsHandler{DB: db}
}

func (h *StatsHandler) EarningsSummary(w http.ResponseWriter, r *http.Request) {
	summaries, err := database.GetEarningsSummaryAll(h.DB)
	if err != nil {
		log.Printf("Error building earnings summary: %v", err)
		WriteAPIError(w, http.StatusInternalServerError, "stats_failed", "failed to build earnings summary")
		return
	}
	if summaries == nil {
		summaries = []database.EarningsSummary{}
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (h *StatsHandler) PhotographerEarnings(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamUint(r, "id")
	if !ok {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", "invalid photographer id")
		return
	}

	summary, err := database.GetEarningsSummaryByPhotographer(h.DB, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "photographer not found")
			return
		}
		log.Printf("Error building earnings summary for photographer %d: %v", id, err)
		WriteAPIError(w, http.StatusInternalServerError, "stats_failed", "failed to build earnings summary")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *StatsHandler) PhotoSales(w http.ResponseWriter, r *http.Request) {
	limit := uint64(50)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			WriteAPIError(w, http.StatusBadRequest, "invalid_limit", "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	stats, err := database.GetPhotoSalesStats(h.DB, limit)
	if err != nil {
		log.Printf("Error building photo sales stats: %v", err)
		WriteAPIError(w, http.StatusInternalServerError, "stats_failed", "failed to build photo sales stats")
		return
	}
	if stats == nil {
		stats = []database.PhotoSalesStat{}
	}
	writeJSON(w, http.StatusOK, stats)
}
