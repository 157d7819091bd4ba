package schedule

import (
	"strings"

	"github.com/alexkm13/scarlet-planner/internal/models"
)

// Expand converts one course into atomic schedule events, one per
// (meeting, weekday) pair. Meetings with a blank or "TBA" day code are
// skipped, as are meetings whose start and end both parse to the 0
// sentinel. The course itself is never mutated.
func Expand(course models.Course, color string) []models.ScheduleEvent {
	var events []models.ScheduleEvent

	for _, meeting := range course.Meetings {
		if meeting.Days == "" || strings.EqualFold(meeting.Days, "TBA") {
			continue
		}

		start := ParseClock(meeting.StartTime)
		end := ParseClock(meeting.EndTime)
		if start == 0 && end == 0 {
			continue
		}

		for _, day := range ParseDays(meeting.Days) {
			events = append(events, models.ScheduleEvent{
				CourseID:     course.ID,
				CourseCode:   course.Code,
				CourseTitle:  course.Title,
				Section:      course.Section,
				SectionType:  course.SectionType,
				Instructor:   course.Instructor,
				Day:          day,
				StartMinutes: start,
				EndMinutes:   end,
				StartTime:    meeting.StartTime,
				EndTime:      meeting.EndTime,
				Location:     meeting.Location,
				Color:        color,
				Column:       0,
				TotalColumns: 1,
			})
		}
	}

	return events
}
