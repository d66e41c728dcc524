// Command main runs the database seeder for Filmorate.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"filmorate/internal/config"
	"filmorate/internal/database"
	"filmorate/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 50, "Number of users to create")
	numFilms := flag.Int("films", 120, "Number of films to create")
	numDirectors := flag.Int("directors", 15, "Number of directors to create")
	friends := flag.Int("friends", 8, "Friends added per user")
	likes := flag.Int("likes", 15, "Films liked per user")
	reviews := flag.Int("reviews", 80, "Number of reviews to create")
	votes := flag.Int("votes", 5, "Votes cast per review")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	preset := flag.String("preset", "", "Apply a built-in seeder preset (small, demo, large)")
	presetFile := flag.String("preset-file", "", "YAML file with extra presets, used with -preset")
	randSeed := flag.Int64("seed", time.Now().UnixNano(), "Random seed; the same seed produces the same data")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")

	opts := seed.Options{
		Users:          *numUsers,
		Films:          *numFilms,
		Directors:      *numDirectors,
		FriendsPerUser: *friends,
		LikesPerUser:   *likes,
		Reviews:        *reviews,
		VotesPerReview: *votes,
	}
	if *preset != "" {
		p, err := loadPreset(*preset, *presetFile)
		if err != nil {
			log.Fatalf("❌ %v", err)
		}
		opts = p
		log.Printf("Applying preset: %s (ignoring count flags)\n", *preset)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.IsProduction() {
		log.Fatal("❌ Refusing to seed a production database")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx := context.Background()
	s := seed.NewSeeder(db, *randSeed)

	if *shouldClean {
		if err := s.Clean(ctx); err != nil {
			log.Fatalf("❌ Cleanup failed: %v", err)
		}
	}

	res, err := s.Run(ctx, opts)
	if err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Printf("✨ All done! %d users, %d films, %d directors, %d likes, %d reviews (seed %d)",
		res.Users, res.Films, res.Directors, res.Likes, res.Reviews, *randSeed)
}

func loadPreset(name, file string) (seed.Options, error) {
	if file == "" {
		return seed.Preset(name)
	}
	f, err := os.Open(file)
	if err != nil {
		return seed.Options{}, err
	}
	defer func() { _ = f.Close() }()

	presets, err := seed.LoadPresets(f)
	if err != nil {
		return seed.Options{}, err
	}
	if opts, ok := presets[name]; ok {
		return opts, nil
	}
	return seed.Preset(name)
}
