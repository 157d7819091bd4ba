package models

import "time"

// Plan is a named course selection owned by a user. The planner engine
// never touches plans directly; it only receives the resolved course
// list for one plan.
type Plan struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Name      string    `db:"name" json:"name"`
	Term      string    `db:"term" json:"term"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// PlanEntry links a course into a plan at a stable position. Position
// order drives deterministic color assignment.
type PlanEntry struct {
	PlanID   string    `db:"plan_id" json:"plan_id"`
	CourseID string    `db:"course_id" json:"course_id"`
	Position int       `db:"position" json:"position"`
	AddedAt  time.Time `db:"added_at" json:"added_at"`
}
