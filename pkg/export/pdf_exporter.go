package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/alexkm13/scarlet-planner/internal/models"
	"github.com/alexkm13/scarlet-planner/internal/schedule"
)

const (
	pageLeft   = 15.0
	pageTop    = 30.0
	gridWidth  = 180.0
	gridHeight = 150.0
	gridStart  = 8 * 60  // 08:00
	gridEnd    = 22 * 60 // 22:00
)

// PDFExporter renders a schedule snapshot as a weekly day/time grid.
// Overlapping events share a day's width according to their assigned
// column and total_columns.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render creates a landscape A4 page with one column per weekday that
// carries events, plus a footer with credit totals and conflicts.
func (e *PDFExporter) Render(snapshot models.ScheduleSnapshot, title string) ([]byte, error) {
	days := activeDays(snapshot.Events)
	if len(days) == 0 {
		days = schedule.DayOrder[:5]
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(pageLeft, 15, pageLeft)
	pdf.AddPage()

	if title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
	}

	dayWidth := gridWidth / float64(len(days))
	minuteScale := gridHeight / float64(gridEnd-gridStart)

	// Day headers and hour lines.
	pdf.SetFont("Arial", "B", 9)
	for i, day := range days {
		x := pageLeft + float64(i)*dayWidth
		pdf.SetXY(x, pageTop-8)
		pdf.CellFormat(dayWidth, 7, day, "1", 0, "C", false, 0, "")
	}
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetFont("Arial", "", 6)
	for minutes := gridStart; minutes <= gridEnd; minutes += 60 {
		y := pageTop + float64(minutes-gridStart)*minuteScale
		pdf.Line(pageLeft, y, pageLeft+gridWidth, y)
		pdf.SetXY(pageLeft-10, y-2)
		pdf.CellFormat(9, 4, fmt.Sprintf("%02d:00", minutes/60), "", 0, "R", false, 0, "")
	}
	pdf.SetDrawColor(0, 0, 0)

	dayIndex := make(map[string]int, len(days))
	for i, day := range days {
		dayIndex[day] = i
	}

	for _, event := range snapshot.Events {
		idx, ok := dayIndex[event.Day]
		if !ok {
			continue
		}
		start := clampMinutes(event.StartMinutes)
		end := clampMinutes(event.EndMinutes)
		if end <= start {
			continue
		}

		colWidth := dayWidth / float64(event.TotalColumns)
		x := pageLeft + float64(idx)*dayWidth + float64(event.Column)*colWidth
		y := pageTop + float64(start-gridStart)*minuteScale
		h := float64(end-start) * minuteScale

		r, g, b := hexToRGB(event.Color)
		pdf.SetFillColor(r, g, b)
		pdf.Rect(x, y, colWidth, h, "FD")

		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Arial", "B", 6)
		pdf.SetXY(x+0.5, y+0.5)
		pdf.CellFormat(colWidth-1, 3, event.CourseCode, "", 2, "L", false, 0, "")
		pdf.SetFont("Arial", "", 5)
		pdf.CellFormat(colWidth-1, 3, fmt.Sprintf("%s-%s", event.StartTime, event.EndTime), "", 2, "L", false, 0, "")
		if event.Location != "" {
			pdf.CellFormat(colWidth-1, 3, event.Location, "", 2, "L", false, 0, "")
		}
		pdf.SetTextColor(0, 0, 0)
	}

	pdf.SetFont("Arial", "", 8)
	pdf.SetXY(pageLeft, pageTop+gridHeight+4)
	summary := fmt.Sprintf("%d courses, %d credits", snapshot.CourseCount, snapshot.TotalCredits)
	if snapshot.HasConflicts {
		summary += fmt.Sprintf(", %d time conflicts", len(snapshot.Conflicts))
	}
	pdf.CellFormat(0, 5, summary, "", 1, "L", false, 0, "")

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// activeDays keeps the canonical weekday order, restricted to days that
// actually hold events. Weekends only show up when scheduled.
func activeDays(events []models.ScheduleEvent) []string {
	present := make(map[string]bool, 7)
	for _, event := range events {
		present[event.Day] = true
	}
	var days []string
	for _, day := range schedule.DayOrder {
		if present[day] {
			days = append(days, day)
		}
	}
	return days
}

func clampMinutes(m int) int {
	if m < gridStart {
		return gridStart
	}
	if m > gridEnd {
		return gridEnd
	}
	return m
}

func hexToRGB(hex string) (int, int, int) {
	if len(hex) != 7 || hex[0] != '#' {
		return 120, 120, 120
	}
	var r, g, b int
	if _, err := fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b); err != nil {
		return 120, 120, 120
	}
	return r, g, b
}
