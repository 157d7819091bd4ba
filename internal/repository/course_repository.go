package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/alexkm13/scarlet-planner/internal/models"
)

const courseColumns = "id, code, title, description, section, section_type, instructor, term, COALESCE(credits, 0) AS credits, department, college, status, hub_units, COALESCE(enrollment_cap, 0) AS enrollment_cap, COALESCE(enrollment_total, 0) AS enrollment_total, meetings, created_at, updated_at"

// CourseRepository provides persistence for the course catalog.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository creates a new course repository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// List returns catalog courses with optional filtering and pagination.
func (r *CourseRepository) List(ctx context.Context, filter models.CourseFilter) ([]models.Course, int, error) {
	base := "FROM courses WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		conditions = append(conditions, fmt.Sprintf("(code ILIKE $%d OR title ILIKE $%d OR instructor ILIKE $%d)", len(args)+1, len(args)+1, len(args)+1))
		args = append(args, pattern)
	}
	if len(filter.Subjects) > 0 {
		conditions = append(conditions, fmt.Sprintf("department = ANY($%d)", len(args)+1))
		args = append(args, pq.Array(filter.Subjects))
	}
	if len(filter.Terms) > 0 {
		conditions = append(conditions, fmt.Sprintf("term = ANY($%d)", len(args)+1))
		args = append(args, pq.Array(filter.Terms))
	}
	if len(filter.HubUnits) > 0 {
		conditions = append(conditions, fmt.Sprintf("hub_units ?| $%d", len(args)+1))
		args = append(args, pq.Array(filter.HubUnits))
	}
	if len(filter.Statuses) > 0 {
		conditions = append(conditions, fmt.Sprintf("status = ANY($%d)", len(args)+1))
		args = append(args, pq.Array(filter.Statuses))
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	sortBy := filter.SortBy
	allowedSorts := map[string]bool{
		"code":       true,
		"title":      true,
		"credits":    true,
		"term":       true,
		"created_at": true,
	}
	if !allowedSorts[sortBy] {
		sortBy = "code"
	}
	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "ASC"
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 500 {
		size = 50
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY %s %s LIMIT %d OFFSET %d", courseColumns, base, sortBy, order, size, offset)
	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list courses: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count courses: %w", err)
	}

	return courses, total, nil
}

// FindByID loads a single course.
func (r *CourseRepository) FindByID(ctx context.Context, id string) (*models.Course, error) {
	query := fmt.Sprintf("SELECT %s FROM courses WHERE id = $1", courseColumns)
	var course models.Course
	if err := r.db.GetContext(ctx, &course, query, id); err != nil {
		return nil, err
	}
	return &course, nil
}

// FindByIDs loads the given courses. Missing ids are silently absent;
// callers needing input order re-sort by position themselves.
func (r *CourseRepository) FindByIDs(ctx context.Context, ids []string) ([]models.Course, error) {
	if len(ids) == 0 {
		return []models.Course{}, nil
	}
	query := fmt.Sprintf("SELECT %s FROM courses WHERE id = ANY($1)", courseColumns)
	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("find courses by ids: %w", err)
	}
	return courses, nil
}

// Subjects returns the distinct department codes in the catalog.
func (r *CourseRepository) Subjects(ctx context.Context) ([]string, error) {
	const query = `SELECT DISTINCT department FROM courses WHERE department <> '' ORDER BY department ASC`
	var subjects []string
	if err := r.db.SelectContext(ctx, &subjects, query); err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	return subjects, nil
}

// Terms returns the distinct term labels in the catalog.
func (r *CourseRepository) Terms(ctx context.Context) ([]string, error) {
	const query = `SELECT DISTINCT term FROM courses WHERE term <> '' ORDER BY term ASC`
	var terms []string
	if err := r.db.SelectContext(ctx, &terms, query); err != nil {
		return nil, fmt.Errorf("list terms: %w", err)
	}
	return terms, nil
}

// HubUnits returns the distinct Hub requirement labels in the catalog.
func (r *CourseRepository) HubUnits(ctx context.Context) ([]string, error) {
	const query = `SELECT DISTINCT hub FROM courses, jsonb_array_elements_text(hub_units) AS hub ORDER BY hub ASC`
	var units []string
	if err := r.db.SelectContext(ctx, &units, query); err != nil {
		return nil, fmt.Errorf("list hub units: %w", err)
	}
	return units, nil
}

// Upsert inserts or replaces one catalog course, used by the importer.
func (r *CourseRepository) Upsert(ctx context.Context, course *models.Course) error {
	now := time.Now().UTC()
	if course.CreatedAt.IsZero() {
		course.CreatedAt = now
	}
	course.UpdatedAt = now

	const query = `INSERT INTO courses (id, code, title, description, section, section_type, instructor, term, credits, department, college, status, hub_units, enrollment_cap, enrollment_total, meetings, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
        ON CONFLICT (id) DO UPDATE SET
            code = EXCLUDED.code, title = EXCLUDED.title, description = EXCLUDED.description,
            section = EXCLUDED.section, section_type = EXCLUDED.section_type, instructor = EXCLUDED.instructor,
            term = EXCLUDED.term, credits = EXCLUDED.credits, department = EXCLUDED.department,
            college = EXCLUDED.college, status = EXCLUDED.status, hub_units = EXCLUDED.hub_units,
            enrollment_cap = EXCLUDED.enrollment_cap, enrollment_total = EXCLUDED.enrollment_total,
            meetings = EXCLUDED.meetings, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.ExecContext(ctx, query,
		course.ID, course.Code, course.Title, course.Description, course.Section,
		course.SectionType, course.Instructor, course.Term, course.Credits,
		course.Department, course.College, course.Status, course.HubUnits,
		course.EnrollmentCap, course.EnrollmentTotal, course.Meetings,
		course.CreatedAt, course.UpdatedAt,
	); err != nil {
		return fmt.Errorf("upsert course %s: %w", course.ID, err)
	}
	return nil
}
