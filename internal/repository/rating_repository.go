package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/alexkm13/scarlet-planner/internal/models"
)

// RatingRepository reads instructor rating aggregates.
type RatingRepository struct {
	db *sqlx.DB
}

// NewRatingRepository creates a new rating repository.
func NewRatingRepository(db *sqlx.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

// FindByName returns the rating row for an instructor, matched
// case-insensitively on the stored display name.
func (r *RatingRepository) FindByName(ctx context.Context, name string) (*models.InstructorRating, error) {
	const query = `SELECT name, rating, num_ratings, difficulty, would_take_again, url
        FROM instructor_ratings WHERE LOWER(name) = LOWER($1) LIMIT 1`
	var rating models.InstructorRating
	if err := r.db.GetContext(ctx, &rating, query, name); err != nil {
		return nil, err
	}
	return &rating, nil
}
