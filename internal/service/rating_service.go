package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/alexkm13/scarlet-planner/internal/models"
	appErrors "github.com/alexkm13/scarlet-planner/pkg/errors"
)

type ratingRepository interface {
	FindByName(ctx context.Context, name string) (*models.InstructorRating, error)
}

// RatingService serves instructor ratings with an in-process TTL cache.
// Negative lookups are cached too so repeated misses stay cheap.
type RatingService struct {
	repo   ratingRepository
	cache  *gocache.Cache
	logger *zap.Logger
}

// NewRatingService constructs a rating service.
func NewRatingService(repo ratingRepository, ttl time.Duration, logger *zap.Logger) *RatingService {
	if ttl <= 0 {
		ttl = time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RatingService{
		repo:   repo,
		cache:  gocache.New(ttl, 2*ttl),
		logger: logger,
	}
}

// Get returns the rating for an instructor name.
func (s *RatingService) Get(ctx context.Context, name string) (*models.InstructorRating, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "instructor name is required")
	}

	key := strings.ToLower(name)
	if cached, ok := s.cache.Get(key); ok {
		if cached == nil {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "no rating found for instructor")
		}
		return cached.(*models.InstructorRating), nil
	}

	rating, err := s.repo.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.cache.SetDefault(key, nil)
			return nil, appErrors.Clone(appErrors.ErrNotFound, "no rating found for instructor")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load rating")
	}

	s.cache.SetDefault(key, rating)
	return rating, nil
}

// GetBatch resolves several instructor names in one call. Names with
// no rating map to nil rather than failing the whole batch.
func (s *RatingService) GetBatch(ctx context.Context, names []string) (map[string]*models.InstructorRating, error) {
	out := make(map[string]*models.InstructorRating, len(names))
	for _, name := range names {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			continue
		}
		rating, err := s.Get(ctx, trimmed)
		if err != nil {
			var appErr *appErrors.Error
			if errors.As(err, &appErr) && appErr.Code == appErrors.ErrNotFound.Code {
				out[trimmed] = nil
				continue
			}
			return nil, err
		}
		out[trimmed] = rating
	}
	return out, nil
}
