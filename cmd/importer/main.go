package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/alexkm13/scarlet-planner/internal/models"
	"github.com/alexkm13/scarlet-planner/internal/repository"
	"github.com/alexkm13/scarlet-planner/internal/service"
	"github.com/alexkm13/scarlet-planner/pkg/cache"
	"github.com/alexkm13/scarlet-planner/pkg/config"
	"github.com/alexkm13/scarlet-planner/pkg/database"
	"github.com/alexkm13/scarlet-planner/pkg/logger"
)

// The importer loads a course catalog dump into Postgres. The input is
// a JSON array of course objects using the same field names the API
// serves, so a previously exported catalog round-trips unchanged.
func main() {
	var (
		file         = flag.String("file", "catalog.json", "path to the catalog JSON dump")
		term         = flag.String("term", "", "override the term label for every imported course")
		excludeTerms = flag.String("exclude-terms", "", "comma separated term labels to skip")
		timeout      = flag.Duration("timeout", 5*time.Minute, "overall import timeout")
	)
	flag.Parse()

	excluded := map[string]bool{}
	for _, label := range strings.Split(*excludeTerms, ",") {
		if trimmed := strings.TrimSpace(label); trimmed != "" {
			excluded[trimmed] = true
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	raw, err := os.ReadFile(*file)
	if err != nil {
		logr.Fatal("failed to read catalog file", zap.String("file", *file), zap.Error(err))
	}

	var courses []models.Course
	if err := json.Unmarshal(raw, &courses); err != nil {
		logr.Fatal("failed to parse catalog file", zap.String("file", *file), zap.Error(err))
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	repo := repository.NewCourseRepository(db)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	imported := 0
	skipped := 0
	for i := range courses {
		course := &courses[i]
		if course.ID == "" || course.Code == "" {
			skipped++
			logr.Warn("skipping course without id or code", zap.Int("index", i))
			continue
		}
		if excluded[course.Term] {
			skipped++
			continue
		}
		if *term != "" {
			course.Term = *term
		}
		if err := repo.Upsert(ctx, course); err != nil {
			logr.Fatal("import failed", zap.String("course", course.Code), zap.Error(err))
		}
		imported++
	}

	// The API caches catalog queries in Redis, so a fresh import has to
	// purge them or searches keep serving the old catalog until expiry.
	if imported > 0 && cfg.Catalog.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, catalog cache left stale", zap.Error(err))
		} else {
			cacheService := service.NewCacheService(repository.NewCacheRepository(redisClient, logr), nil, cfg.Catalog.CacheTTL, logr, true)
			if err := cacheService.Invalidate(ctx, "catalog:*"); err != nil {
				logr.Warn("failed to invalidate catalog cache", zap.Error(err))
			}
			_ = redisClient.Close()
		}
	}

	logr.Info("catalog import complete",
		zap.Int("imported", imported),
		zap.Int("skipped", skipped),
		zap.String("file", *file))
}
