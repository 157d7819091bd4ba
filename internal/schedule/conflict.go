package schedule

import "github.com/alexkm13/scarlet-planner/internal/models"

// Detect computes every pairwise time overlap between the given
// courses' events. Courses are compared i < j in input order and events
// in expansion order, so the result is deterministic for a fixed input.
// One conflict is emitted per colliding event pair: two courses meeting
// on three overlapping weekdays produce three records.
func Detect(courses []models.Course) []models.ScheduleConflict {
	var conflicts []models.ScheduleConflict

	expanded := make([][]models.ScheduleEvent, len(courses))
	for i, course := range courses {
		// Color plays no part in overlap detection.
		expanded[i] = Expand(course, "")
	}

	for i := 0; i < len(courses); i++ {
		for j := i + 1; j < len(courses); j++ {
			for _, a := range expanded[i] {
				for _, b := range expanded[j] {
					if !a.Overlaps(b) {
						continue
					}
					conflicts = append(conflicts, models.ScheduleConflict{
						Course1ID:      a.CourseID,
						Course1Code:    a.CourseCode,
						Course2ID:      b.CourseID,
						Course2Code:    b.CourseCode,
						Day:            a.Day,
						OverlapMinutes: overlapMinutes(a, b),
					})
				}
			}
		}
	}

	return conflicts
}

// overlapMinutes returns the positive overlap length of two events that
// are already known to intersect.
func overlapMinutes(a, b models.ScheduleEvent) int {
	start := a.StartMinutes
	if b.StartMinutes > start {
		start = b.StartMinutes
	}
	end := a.EndMinutes
	if b.EndMinutes < end {
		end = b.EndMinutes
	}
	return end - start
}
