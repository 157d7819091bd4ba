package schedule

import "github.com/alexkm13/scarlet-planner/internal/models"

// Palette is the fixed course color cycle. A course's color depends
// only on its position in the input list, so two builds over the same
// ordered selection always render identically.
var Palette = []string{
	"#CC0000", // scarlet
	"#3B82F6", // blue
	"#10B981", // green
	"#8B5CF6", // purple
	"#F59E0B", // amber
	"#EC4899", // pink
	"#06B6D4", // cyan
	"#84CC16", // lime
	"#F97316", // orange
	"#6366F1", // indigo
}

// ColorFor returns the palette color for the course at position i.
func ColorFor(i int) string {
	if i < 0 {
		i = -i
	}
	return Palette[i%len(Palette)]
}

// EmptySnapshot returns the canonical empty schedule: all collections
// empty (non-nil, so they serialise as []), zero totals, no conflicts.
// Build over an empty selection returns exactly this value.
func EmptySnapshot() models.ScheduleSnapshot {
	return models.ScheduleSnapshot{
		Courses:   []models.PlanCourse{},
		Events:    []models.ScheduleEvent{},
		Conflicts: []models.ScheduleConflict{},
	}
}

// Build computes the complete schedule snapshot for an ordered course
// list: colored per-day events with column layout, the full conflict
// list and aggregate totals. It is a pure derivation; callers recompute
// it whenever the selection changes.
func Build(courses []models.Course) models.ScheduleSnapshot {
	snapshot := EmptySnapshot()

	byDay := make(map[string][]models.ScheduleEvent, len(DayOrder))
	for i, course := range courses {
		for _, event := range Expand(course, ColorFor(i)) {
			byDay[event.Day] = append(byDay[event.Day], event)
		}

		snapshot.Courses = append(snapshot.Courses, models.PlanCourse{
			ID:         course.ID,
			Code:       course.Code,
			Title:      course.Title,
			Section:    course.Section,
			Credits:    course.Credits,
			Instructor: course.Instructor,
			Term:       course.Term,
		})
		snapshot.TotalCredits += course.Credits
	}

	for _, day := range DayOrder {
		if events, ok := byDay[day]; ok {
			snapshot.Events = append(snapshot.Events, AssignColumns(events)...)
		}
	}

	if conflicts := Detect(courses); len(conflicts) > 0 {
		snapshot.Conflicts = conflicts
	}
	snapshot.CourseCount = len(courses)
	snapshot.HasConflicts = len(snapshot.Conflicts) > 0

	return snapshot
}
