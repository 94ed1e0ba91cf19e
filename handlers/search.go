package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"tripweave/database"
	"tripweave/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SearchRequest struct {
	Origin        string  `json:"origin" binding:"required"`
	Destination   string  `json:"destination" binding:"required"`
	DepartureDate string  `json:"departure_date" binding:"required"`
	ReturnDate    string  `json:"return_date" binding:"required"`
	Budget        float64 `json:"budget"`
	Travelers     int     `json:"travelers"`
}

type SearchResponse struct {
	SearchID   string              `json:"search_id"`
	Outbound   []services.Flight   `json:"outbound"`
	Return     []services.Flight   `json:"return"`
	Hotels     []services.Hotel    `json:"hotels"`
	Activities []services.Activity `json:"activities"`
	Source     string              `json:"source"` // "live" or "estimated"
}

func SearchHandler(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	req.Origin = strings.ToUpper(strings.TrimSpace(req.Origin))
	req.Destination = strings.ToUpper(strings.TrimSpace(req.Destination))

	if req.Travelers <= 0 {
		req.Travelers = 1
	}

	// Validate airport code length
	if len(req.Origin) != 3 || len(req.Destination) != 3 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Airport codes must be exactly 3 characters (e.g. LHR, JFK)"})
		return
	}

	// Validate dates
	depDate, err := time.Parse("2006-01-02", req.DepartureDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid departure date format. Use YYYY-MM-DD"})
		return
	}

	retDate, err := time.Parse("2006-01-02", req.ReturnDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid return date format. Use YYYY-MM-DD"})
		return
	}

	if !retDate.After(depDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Return date must be after departure date"})
		return
	}

	// ── Concurrent provider fan-out ───────────────────────────────────────────
	bundle := services.SearchAll(c.Request.Context(), services.SearchParams{
		Origin:        req.Origin,
		Destination:   req.Destination,
		DepartureDate: req.DepartureDate,
		ReturnDate:    req.ReturnDate,
		Travelers:     req.Travelers,
		Budget:        req.Budget,
	})

	// ── Persist to DB ─────────────────────────────────────────────────────────
	resultsJSON, _ := json.Marshal(bundle)

	searchID := uuid.New().String()
	if err := database.SaveSearch(&database.Search{
		ID:            searchID,
		Origin:        req.Origin,
		Destination:   req.Destination,
		DepartureDate: req.DepartureDate,
		ReturnDate:    req.ReturnDate,
		Budget:        req.Budget,
		Travelers:     req.Travelers,
		ResultsJSON:   string(resultsJSON),
	}); err != nil {
		log.Printf("❌ Failed to save search: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save search"})
		return
	}

	c.JSON(http.StatusOK, SearchResponse{
		SearchID:   searchID,
		Outbound:   bundle.Outbound,
		Return:     bundle.Return,
		Hotels:     bundle.Hotels,
		Activities: bundle.Activities,
		Source:     bundle.Source,
	})
}
