package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"tripweave/database"
	"tripweave/planner"
	"tripweave/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PlanRequest struct {
	SearchID      string `json:"search_id" binding:"required"`
	OutboundIndex int    `json:"outbound_index"`
	ReturnIndex   int    `json:"return_index"`
	HotelIndex    int    `json:"hotel_index"`
	TravelerName  string `json:"traveler_name"`
}

type PlanResponse struct {
	ItineraryID string       `json:"itinerary_id"`
	Plan        planner.Plan `json:"plan"`
	Summary     string       `json:"summary"`
	PDFURL      string       `json:"pdf_url"`
}

func parseTripDates(departure, ret string) (time.Time, time.Time, error) {
	depDate, err := time.Parse("2006-01-02", departure)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("departure date %q: %w", departure, err)
	}
	retDate, err := time.Parse("2006-01-02", ret)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("return date %q: %w", ret, err)
	}
	return depDate, retDate, nil
}

// PlanHandler composes the full day-by-day itinerary from a cached search:
// selected flights and hotel become anchors, activities fill the days between,
// and everything lands in one chronological timeline.
func PlanHandler(c *gin.Context) {
	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	// Fetch search from DB
	search, err := database.GetSearch(req.SearchID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Search session not found"})
		return
	}
	if search.ResultsJSON == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "No cached results for this search"})
		return
	}

	var bundle services.SearchBundle
	if err := json.Unmarshal([]byte(search.ResultsJSON), &bundle); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse cached search results"})
		return
	}

	// Bounds-check the selected indices
	if req.OutboundIndex < 0 || req.OutboundIndex >= len(bundle.Outbound) {
		req.OutboundIndex = 0
	}
	if req.ReturnIndex < 0 || req.ReturnIndex >= len(bundle.Return) {
		req.ReturnIndex = 0
	}
	if req.HotelIndex < 0 || req.HotelIndex >= len(bundle.Hotels) {
		req.HotelIndex = 0
	}

	// Validated at search time, but the row may predate the current rules.
	depDate, retDate, err := parseTripDates(search.DepartureDate, search.ReturnDate)
	if err != nil {
		log.Printf("❌ Search %s has unusable dates: %v", search.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stored search has invalid dates"})
		return
	}

	trip := services.BuildTrip(search.Origin, search.Destination, depDate, retDate, search.Travelers)
	results := services.BuildResults(bundle, req.OutboundIndex, req.ReturnIndex, req.HotelIndex)

	plan := planner.Compose(trip, results, planner.DefaultConfig())

	for _, d := range plan.Diagnostics.Entries {
		log.Printf("⚠️  plan %s: %s", d.Kind, d.Message)
	}

	// ── Trip summary (best effort) ────────────────────────────────────────────
	summary, err := services.GetAIClient().SummarizePlan(plan)
	if err != nil {
		log.Printf("⚠️  AI summary failed: %v — using fallback text", err)
		summary = services.FallbackSummary(plan)
	}

	// ── PDF (no filesystem — stored in PostgreSQL) ────────────────────────────
	pdfBytes, err := services.GeneratePDFBytes(services.PDFData{
		TravelerName: req.TravelerName,
		Origin:       search.Origin,
		Destination:  search.Destination,
		Plan:         plan,
		AISummary:    summary,
		IsEstimated:  bundle.Source == "estimated",
	})
	if err != nil {
		log.Printf("❌ PDF generation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF"})
		return
	}

	itemsJSON, _ := json.Marshal(plan.Items)
	diagsJSON, _ := json.Marshal(plan.Diagnostics)

	itineraryID := uuid.New().String()
	if err := database.SaveItinerary(&database.Itinerary{
		ID:              itineraryID,
		SearchID:        req.SearchID,
		ItemsJSON:       string(itemsJSON),
		DiagnosticsJSON: string(diagsJSON),
		Summary:         summary,
		PDFData:         pdfBytes,
		TravelerName:    req.TravelerName,
	}); err != nil {
		log.Printf("❌ Failed to save itinerary: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save itinerary"})
		return
	}

	log.Printf("✅ Itinerary %s composed: %d items over %d days (%d bytes PDF)",
		itineraryID, len(plan.Items), plan.TripDays, len(pdfBytes))

	c.JSON(http.StatusOK, PlanResponse{
		ItineraryID: itineraryID,
		Plan:        plan,
		Summary:     summary,
		PDFURL:      "/api/download/" + itineraryID,
	})
}
