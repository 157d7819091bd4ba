package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/alexkm13/scarlet-planner/internal/models"
)

var csvHeaders = []string{
	"course_code", "course_title", "section", "section_type",
	"instructor", "day", "start_time", "end_time", "location", "credits",
}

// CSVExporter renders a schedule snapshot into a flat CSV event table.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render produces CSV encoded bytes, one row per schedule event.
func (e *CSVExporter) Render(snapshot models.ScheduleSnapshot) ([]byte, error) {
	credits := make(map[string]int, len(snapshot.Courses))
	for _, course := range snapshot.Courses {
		credits[course.ID] = course.Credits
	}

	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	if err := writer.Write(csvHeaders); err != nil {
		return nil, fmt.Errorf("write csv headers: %w", err)
	}
	for _, event := range snapshot.Events {
		record := []string{
			event.CourseCode,
			event.CourseTitle,
			event.Section,
			event.SectionType,
			event.Instructor,
			event.Day,
			event.StartTime,
			event.EndTime,
			event.Location,
			strconv.Itoa(credits[event.CourseID]),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
