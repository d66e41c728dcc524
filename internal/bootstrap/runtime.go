// Package bootstrap wires the process-level dependencies shared by the
// server and the command line tools.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"filmorate/internal/config"
	"filmorate/internal/database"
	"filmorate/internal/middleware"
	"filmorate/internal/redisclient"
	"filmorate/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SeedPreset names a built-in seed preset applied when the database has
	// no users yet. Empty disables seeding.
	SeedPreset string
}

// InitRuntime connects to DB and Redis and optionally seeds an empty database.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Init Redis (may result in nil client if unreachable)
	redisclient.InitRedis(cfg.RedisURL)
	r := redisclient.GetClient()

	if opts.SeedPreset != "" {
		if err := SeedIfEmpty(context.Background(), db, opts.SeedPreset); err != nil {
			return nil, nil, fmt.Errorf("failed to seed development data: %w", err)
		}
	}

	return db, r, nil
}

// SeedIfEmpty applies preset when the users table is empty, so restarting a
// seeded development stack leaves its data alone.
func SeedIfEmpty(ctx context.Context, db *gorm.DB, preset string) error {
	opts, err := seed.Preset(preset)
	if err != nil {
		return err
	}

	var users int64
	if err := db.WithContext(ctx).Raw(`SELECT COUNT(*) FROM users`).Scan(&users).Error; err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if users > 0 {
		middleware.Logger.Info("skipping seed, database already has users", "preset", preset, "users", users)
		return nil
	}

	res, err := seed.NewSeeder(db, time.Now().UnixNano()).Run(ctx, opts)
	if err != nil {
		return err
	}
	middleware.Logger.Info("seeded development data",
		"preset", preset,
		"users", res.Users,
		"films", res.Films,
		"likes", res.Likes,
		"reviews", res.Reviews,
	)
	return nil
}
