package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/alexkm13/scarlet-planner/internal/models"
	"github.com/alexkm13/scarlet-planner/pkg/config"
	appErrors "github.com/alexkm13/scarlet-planner/pkg/errors"
	"github.com/alexkm13/scarlet-planner/pkg/export"
)

type plannerSnapshots interface {
	Snapshot(ctx context.Context, userID, planID string) (*models.Plan, []models.Course, models.ScheduleSnapshot, error)
}

// ExportArtifact is a rendered export ready to stream to the client.
type ExportArtifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders plan schedules as ICS, PDF or CSV. Terms
// missing from the configured date table export against the default
// term's range.
type ExportService struct {
	planner     plannerSnapshots
	ics         *export.ICSExporter
	pdf         *export.PDFExporter
	csv         *export.CSVExporter
	defaultTerm string
	termDates   map[string]config.TermRange
	logger      *zap.Logger
}

// NewExportService constructs an export service.
func NewExportService(planner plannerSnapshots, cfg config.ExportConfig, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		planner:     planner,
		ics:         export.NewICSExporter(cfg.CalendarName),
		pdf:         export.NewPDFExporter(),
		csv:         export.NewCSVExporter(),
		defaultTerm: cfg.DefaultTerm,
		termDates:   cfg.TermDates,
		logger:      logger,
	}
}

// Render produces the requested export format for a plan.
func (s *ExportService) Render(ctx context.Context, userID, planID, format string) (*ExportArtifact, error) {
	plan, courses, snapshot, err := s.planner.Snapshot(ctx, userID, planID)
	if err != nil {
		return nil, err
	}

	switch format {
	case "ics":
		start, end := s.termRange(plan.Term)
		data, err := s.ics.Render(courses, start, end)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render calendar")
		}
		return &ExportArtifact{
			Filename:    exportFilename(plan.Name, "ics"),
			ContentType: "text/calendar",
			Data:        data,
		}, nil
	case "pdf":
		data, err := s.pdf.Render(snapshot, plan.Name)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportArtifact{
			Filename:    exportFilename(plan.Name, "pdf"),
			ContentType: "application/pdf",
			Data:        data,
		}, nil
	case "csv":
		data, err := s.csv.Render(snapshot)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportArtifact{
			Filename:    exportFilename(plan.Name, "csv"),
			ContentType: "text/csv",
			Data:        data,
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}

func (s *ExportService) termRange(term string) (time.Time, time.Time) {
	dates, ok := s.termDates[term]
	if !ok {
		if dates, ok = s.termDates[s.defaultTerm]; !ok {
			now := time.Now()
			return now, now.AddDate(0, 4, 0)
		}
		s.logger.Debug("unknown term, using default term dates", zap.String("term", term))
	}
	start, _ := time.Parse("2006-01-02", dates.Start)
	end, _ := time.Parse("2006-01-02", dates.End)
	return start, end
}

func exportFilename(planName, ext string) string {
	name := "schedule"
	if planName != "" {
		name = planName
	}
	return fmt.Sprintf("%s.%s", name, ext)
}
