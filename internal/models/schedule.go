package models

// ScheduleEvent is one concrete (course, meeting, weekday) occurrence on
// the weekly grid. StartMinutes/EndMinutes are minutes since midnight;
// StartTime/EndTime keep the original display strings. Column and
// TotalColumns are assigned by the layout pass only.
type ScheduleEvent struct {
	CourseID     string `json:"course_id"`
	CourseCode   string `json:"course_code"`
	CourseTitle  string `json:"course_title"`
	Section      string `json:"section"`
	SectionType  string `json:"section_type"`
	Instructor   string `json:"instructor"`
	Day          string `json:"day"`
	StartMinutes int    `json:"start_minutes"`
	EndMinutes   int    `json:"end_minutes"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	Location     string `json:"location"`
	Color        string `json:"color"`
	Column       int    `json:"column"`
	TotalColumns int    `json:"total_columns"`
}

// Duration returns the event length in minutes.
func (e ScheduleEvent) Duration() int {
	return e.EndMinutes - e.StartMinutes
}

// Overlaps reports whether two events share time on the same weekday.
// Intervals are half-open, so back-to-back events do not overlap.
func (e ScheduleEvent) Overlaps(other ScheduleEvent) bool {
	if e.Day != other.Day {
		return false
	}
	return e.StartMinutes < other.EndMinutes && other.StartMinutes < e.EndMinutes
}

// ScheduleConflict records one colliding event pair between two courses.
type ScheduleConflict struct {
	Course1ID      string `json:"course1_id"`
	Course1Code    string `json:"course1_code"`
	Course2ID      string `json:"course2_id"`
	Course2Code    string `json:"course2_code"`
	Day            string `json:"day"`
	OverlapMinutes int    `json:"overlap_minutes"`
}

// PlanCourse summarises a course inside a schedule snapshot.
type PlanCourse struct {
	ID         string `json:"id"`
	Code       string `json:"code"`
	Title      string `json:"title"`
	Section    string `json:"section"`
	Credits    int    `json:"credits"`
	Instructor string `json:"instructor"`
	Term       string `json:"term"`
}

// ScheduleSnapshot is the complete derived view for an ordered course
// list: laid-out events, all conflicts and aggregate totals. It is
// recomputed from scratch on every change to the underlying selection.
type ScheduleSnapshot struct {
	Courses      []PlanCourse       `json:"courses"`
	Events       []ScheduleEvent    `json:"events"`
	Conflicts    []ScheduleConflict `json:"conflicts"`
	TotalCredits int                `json:"total_credits"`
	CourseCount  int                `json:"course_count"`
	HasConflicts bool               `json:"has_conflicts"`
}

// ScheduleValidation reports whether a course id list is conflict free.
type ScheduleValidation struct {
	Valid        bool               `json:"valid"`
	Conflicts    []ScheduleConflict `json:"conflicts"`
	TotalCredits int                `json:"total_credits"`
}
