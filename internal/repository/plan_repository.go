package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/alexkm13/scarlet-planner/internal/models"
)

// PlanRepository stores plans and their ordered course selections.
type PlanRepository struct {
	db *sqlx.DB
}

// NewPlanRepository creates a new plan repository.
func NewPlanRepository(db *sqlx.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

// ListPlans returns all plans owned by a user, newest first.
func (r *PlanRepository) ListPlans(ctx context.Context, userID string) ([]models.Plan, error) {
	const query = `SELECT id, user_id, name, term, created_at, updated_at
        FROM plans WHERE user_id = $1 ORDER BY created_at DESC`
	var plans []models.Plan
	if err := r.db.SelectContext(ctx, &plans, query, userID); err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	return plans, nil
}

// FindPlan loads one plan scoped to its owner.
func (r *PlanRepository) FindPlan(ctx context.Context, userID, planID string) (*models.Plan, error) {
	const query = `SELECT id, user_id, name, term, created_at, updated_at
        FROM plans WHERE id = $1 AND user_id = $2`
	var plan models.Plan
	if err := r.db.GetContext(ctx, &plan, query, planID, userID); err != nil {
		return nil, err
	}
	return &plan, nil
}

// CreatePlan inserts a new empty plan.
func (r *PlanRepository) CreatePlan(ctx context.Context, userID, name, term string) (*models.Plan, error) {
	now := time.Now().UTC()
	plan := &models.Plan{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      name,
		Term:      term,
		CreatedAt: now,
		UpdatedAt: now,
	}
	const query = `INSERT INTO plans (id, user_id, name, term, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.db.ExecContext(ctx, query, plan.ID, plan.UserID, plan.Name, plan.Term, plan.CreatedAt, plan.UpdatedAt); err != nil {
		return nil, fmt.Errorf("create plan: %w", err)
	}
	return plan, nil
}

// DeletePlan removes a plan and its entries.
func (r *PlanRepository) DeletePlan(ctx context.Context, userID, planID string) error {
	const query = `DELETE FROM plans WHERE id = $1 AND user_id = $2`
	res, err := r.db.ExecContext(ctx, query, planID, userID)
	if err != nil {
		return fmt.Errorf("delete plan: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListCourseIDs returns a plan's course ids in selection order.
func (r *PlanRepository) ListCourseIDs(ctx context.Context, planID string) ([]string, error) {
	const query = `SELECT course_id FROM plan_courses WHERE plan_id = $1 ORDER BY position ASC`
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, planID); err != nil {
		return nil, fmt.Errorf("list plan courses: %w", err)
	}
	return ids, nil
}

// AddCourse appends a course at the end of the selection. Adding an
// already-selected course is a no-op.
func (r *PlanRepository) AddCourse(ctx context.Context, planID, courseID string) error {
	const query = `INSERT INTO plan_courses (plan_id, course_id, position, added_at)
        VALUES ($1, $2, (SELECT COALESCE(MAX(position), -1) + 1 FROM plan_courses WHERE plan_id = $1), $3)
        ON CONFLICT (plan_id, course_id) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, query, planID, courseID, time.Now().UTC()); err != nil {
		return fmt.Errorf("add plan course: %w", err)
	}
	return r.touch(ctx, planID)
}

// RemoveCourse drops one course from the selection.
func (r *PlanRepository) RemoveCourse(ctx context.Context, planID, courseID string) error {
	const query = `DELETE FROM plan_courses WHERE plan_id = $1 AND course_id = $2`
	res, err := r.db.ExecContext(ctx, query, planID, courseID)
	if err != nil {
		return fmt.Errorf("remove plan course: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return sql.ErrNoRows
	}
	return r.touch(ctx, planID)
}

// Clear empties a plan's selection.
func (r *PlanRepository) Clear(ctx context.Context, planID string) error {
	const query = `DELETE FROM plan_courses WHERE plan_id = $1`
	if _, err := r.db.ExecContext(ctx, query, planID); err != nil {
		return fmt.Errorf("clear plan: %w", err)
	}
	return r.touch(ctx, planID)
}

// Replace swaps the full selection atomically, preserving the order of
// the given ids as positions.
func (r *PlanRepository) Replace(ctx context.Context, planID string, courseIDs []string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM plan_courses WHERE plan_id = $1`, planID); err != nil {
		return fmt.Errorf("replace plan courses: %w", err)
	}
	now := time.Now().UTC()
	for i, courseID := range courseIDs {
		const insert = `INSERT INTO plan_courses (plan_id, course_id, position, added_at)
            VALUES ($1, $2, $3, $4) ON CONFLICT (plan_id, course_id) DO NOTHING`
		if _, err := tx.ExecContext(ctx, insert, planID, courseID, i, now); err != nil {
			return fmt.Errorf("replace plan course %s: %w", courseID, err)
		}
	}
	if _, err := tx.ExecContext(ctx, `UPDATE plans SET updated_at = $1 WHERE id = $2`, now, planID); err != nil {
		return fmt.Errorf("touch plan: %w", err)
	}
	return tx.Commit()
}

func (r *PlanRepository) touch(ctx context.Context, planID string) error {
	const query = `UPDATE plans SET updated_at = $1 WHERE id = $2`
	if _, err := r.db.ExecContext(ctx, query, time.Now().UTC(), planID); err != nil {
		return fmt.Errorf("touch plan: %w", err)
	}
	return nil
}
