package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"tripweave/planner"
)

type PDFData struct {
	TravelerName string
	Origin       string
	Destination  string
	Plan         planner.Plan
	AISummary    string
	IsEstimated  bool // true when providers fell back to generated data
}

// GeneratePDFBytes renders the day-by-day itinerary and returns raw bytes
// (no filesystem needed).
func GeneratePDFBytes(data PDFData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	// ── Watermark ────────────────────────────────────────────
	pdf.SetTextColor(230, 230, 230)
	pdf.SetFont("Helvetica", "B", 55)
	pdf.TransformBegin()
	pdf.TransformRotate(42, 60, 200)
	pdf.Text(60, 200, "SAMPLE")
	pdf.TransformEnd()
	pdf.SetTextColor(0, 0, 0)

	// ── Header Bar ───────────────────────────────────────────
	pdf.SetFillColor(13, 24, 37)
	pdf.Rect(0, 0, 210, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(20, 8)
	pdf.CellFormat(100, 10, "TripWeave", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(212, 168, 67)
	pdf.SetXY(20, 18)
	pdf.CellFormat(170, 6, "Day-by-Day Travel Itinerary", "", 1, "L", false, 0, "")

	pdf.SetY(35)
	pdf.SetTextColor(0, 0, 0)

	// ── Disclaimer ───────────────────────────────────────────
	pdf.SetFillColor(255, 248, 225)
	pdf.SetDrawColor(212, 168, 67)
	pdf.SetTextColor(130, 90, 20)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetLineWidth(0.4)
	y := pdf.GetY()
	pdf.Rect(20, y, 170, 12, "FD")
	pdf.SetXY(23, y+2)
	disclaimer := "This is NOT a booking confirmation. Times are shown in local time; prices are estimates. Verify with providers before booking."
	if data.IsEstimated {
		disclaimer = "ESTIMATED DATA - provider APIs unavailable. This is NOT a booking confirmation. Verify all details before booking."
	}
	pdf.MultiCell(164, 4, disclaimer, "", "C", false)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.2)
	pdf.Ln(6)

	// ── Section Helper ───────────────────────────────────────
	sectionHeader := func(title string) {
		pdf.SetFillColor(13, 24, 37)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(170, 8, "  "+title, "", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(55, 7, label, "", 0, "L", false, 0, "")
		pdf.SetTextColor(20, 20, 20)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(115, 7, value, "", 1, "L", false, 0, "")
	}

	itemRow := func(it planner.ItineraryItem) {
		when := "time TBD"
		if !it.Window.Start.IsZero() {
			when = it.Window.Start.Format("15:04")
			if !it.Window.End.IsZero() && it.Window.End.After(it.Window.Start) {
				when += "-" + it.Window.End.Format("15:04")
			}
		}
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(28, 6, when, "", 0, "L", false, 0, "")
		pdf.SetTextColor(20, 20, 20)
		pdf.SetFont("Helvetica", "B", 9)
		title := it.Title
		if it.Price > 0 {
			title += fmt.Sprintf("  ($%.0f)", it.Price)
		}
		pdf.CellFormat(142, 6, title, "", 1, "L", false, 0, "")
		if it.Detail != "" {
			pdf.SetFont("Helvetica", "", 8)
			pdf.SetTextColor(120, 120, 120)
			pdf.SetX(48)
			pdf.MultiCell(142, 4, it.Detail, "", "L", false)
			pdf.SetTextColor(20, 20, 20)
		}
	}

	// ── Traveler Info ─────────────────────────────────────────
	sectionHeader("Traveler Information")
	name := data.TravelerName
	if name == "" {
		name = "Guest Traveler"
	}
	row("Name", name)
	row("Travelers", fmt.Sprintf("%d", data.Plan.Travelers))
	row("Generated", time.Now().Format("02 Jan 2006, 15:04 UTC"))
	pdf.Ln(4)

	// ── Trip Overview ─────────────────────────────────────────
	sectionHeader("Trip Overview")
	row("Route", fmt.Sprintf("%s - %s - %s", data.Origin, data.Destination, data.Origin))
	row("Duration", fmt.Sprintf("%d day(s)", data.Plan.TripDays))
	row("Scheduled items", fmt.Sprintf("%d", len(data.Plan.Items)))
	pdf.Ln(4)

	// ── Day-by-Day Plan ───────────────────────────────────────
	for _, day := range data.Plan.Days {
		if pdf.GetY() > 240 {
			pdf.AddPage()
		}
		sectionHeader(fmt.Sprintf("Day %d  -  %s", day.DayIndex+1, day.Date.Format("Monday, 02 Jan 2006")))
		if len(day.Items) == 0 {
			pdf.SetFont("Helvetica", "I", 9)
			pdf.SetTextColor(150, 150, 150)
			pdf.CellFormat(170, 6, "Free day", "", 1, "L", false, 0, "")
			pdf.SetTextColor(0, 0, 0)
		}
		for _, it := range day.Items {
			itemRow(it)
		}
		pdf.Ln(3)
	}

	// ── Cost Summary ──────────────────────────────────────────
	if pdf.GetY() > 230 {
		pdf.AddPage()
	}
	sectionHeader("Cost Estimate")
	currency := data.Plan.Currency
	if currency == "" {
		currency = "USD"
	}
	pdf.SetFillColor(212, 168, 67)
	pdf.SetTextColor(13, 24, 37)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(55, 9, "TOTAL ESTIMATE", "", 0, "L", true, 0, "")
	pdf.CellFormat(115, 9, fmt.Sprintf("$%.0f %s", data.Plan.TotalCost, currency), "", 1, "L", true, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	// ── Planning Notes ────────────────────────────────────────
	if len(data.Plan.Diagnostics.Entries) > 0 {
		sectionHeader("Planning Notes")
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(130, 90, 20)
		for _, d := range data.Plan.Diagnostics.Entries {
			pdf.MultiCell(170, 5, "- "+d.Message, "", "L", false)
		}
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(4)
	}

	// ── AI Summary ────────────────────────────────────────────
	if data.AISummary != "" {
		sectionHeader("Trip Summary")
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(40, 40, 40)
		pdf.MultiCell(170, 5, data.AISummary, "", "L", false)
		pdf.Ln(4)
	}

	// ── Footer ────────────────────────────────────────────────
	pdf.SetY(-22)
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.3)
	pdf.Line(20, pdf.GetY(), 190, pdf.GetY())
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(150, 150, 150)
	pdf.CellFormat(0, 8,
		"Generated by TripWeave Travel Planner · Not a booking confirmation · Prices subject to change",
		"", 0, "C", false, 0, "")

	// ── Write to buffer ───────────────────────────────────────
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("PDF output failed: %w", err)
	}
	return buf.Bytes(), nil
}
