// Package seed populates the database with generated users, films and
// activity for development and demos. Everything is written through the
// service layer so validation runs and feed events are recorded.
package seed

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"filmorate/internal/models"
	"filmorate/internal/repository"
	"filmorate/internal/service"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

const (
	mpaCount   = 5
	genreCount = 6
)

// Result counts what a run created.
type Result struct {
	Users       int
	Films       int
	Directors   int
	Friendships int
	Likes       int
	Reviews     int
	Votes       int
}

// Seeder generates data through the services.
type Seeder struct {
	db        *gorm.DB
	faker     *gofakeit.Faker
	rng       *rand.Rand
	users     *service.UserService
	films     *service.FilmService
	reviews   *service.ReviewService
	directors *service.DirectorService
}

// NewSeeder builds a Seeder over db. The same randSeed produces the same data.
func NewSeeder(db *gorm.DB, randSeed int64) *Seeder {
	userRepo := repository.NewUserRepository(db)
	filmRepo := repository.NewFilmRepository(db)
	directorRepo := repository.NewDirectorRepository(db)
	feed := service.NewFeedService(repository.NewEventRepository(db), userRepo, nil)

	//nolint:gosec // Weak random number generator is fine for seeding
	rng := rand.New(rand.NewSource(randSeed))

	return &Seeder{
		db:    db,
		faker: gofakeit.New(randSeed),
		rng:   rng,
		users: service.NewUserService(userRepo, repository.NewFriendRepository(db), feed),
		films: service.NewFilmService(service.FilmRepositories{
			Films:     filmRepo,
			Likes:     repository.NewLikeRepository(db),
			Users:     userRepo,
			Mpa:       repository.NewMpaRepository(db),
			Genres:    repository.NewGenreRepository(db),
			Directors: directorRepo,
		}, feed, 0),
		reviews:   service.NewReviewService(repository.NewReviewRepository(db), userRepo, filmRepo, feed),
		directors: service.NewDirectorService(directorRepo),
	}
}

// Clean removes all generated data. Genres and ratings are reference data
// and stay.
func (s *Seeder) Clean(ctx context.Context) error {
	log.Println("🗑️  Clearing existing data...")
	db := s.db.WithContext(ctx)
	if db.Dialector.Name() == "postgres" {
		return db.Exec(`TRUNCATE TABLE events, review_likes, reviews, like_list, friends_list,
			directors_save, genres_save, films, directors, users RESTART IDENTITY CASCADE`).Error
	}
	for _, table := range []string{
		"events", "review_likes", "reviews", "like_list", "friends_list",
		"directors_save", "genres_save", "films", "directors", "users",
	} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}

// Run generates data sized by opts.
func (s *Seeder) Run(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	log.Printf("🌱 Seeding %d users, %d films, %d directors...", opts.Users, opts.Films, opts.Directors)

	res := &Result{}

	directors, err := s.createDirectors(ctx, opts.Directors)
	if err != nil {
		return nil, fmt.Errorf("failed to create directors: %w", err)
	}
	res.Directors = len(directors)

	users, err := s.createUsers(ctx, opts.Users)
	if err != nil {
		return nil, fmt.Errorf("failed to create users: %w", err)
	}
	res.Users = len(users)

	films, err := s.createFilms(ctx, opts.Films, directors)
	if err != nil {
		return nil, fmt.Errorf("failed to create films: %w", err)
	}
	res.Films = len(films)

	if res.Friendships, err = s.createFriendships(ctx, users, opts.FriendsPerUser); err != nil {
		return nil, fmt.Errorf("failed to create friendships: %w", err)
	}
	if res.Likes, err = s.createLikes(ctx, users, films, opts.LikesPerUser); err != nil {
		return nil, fmt.Errorf("failed to create likes: %w", err)
	}
	if res.Reviews, res.Votes, err = s.createReviews(ctx, users, films, opts.Reviews, opts.VotesPerReview); err != nil {
		return nil, fmt.Errorf("failed to create reviews: %w", err)
	}

	log.Printf("✓ %d friendships, %d likes, %d reviews, %d review votes", res.Friendships, res.Likes, res.Reviews, res.Votes)
	return res, nil
}

func (s *Seeder) createDirectors(ctx context.Context, n int) ([]models.Director, error) {
	directors := make([]models.Director, 0, n)
	for i := 0; i < n; i++ {
		d, err := s.directors.CreateDirector(ctx, &models.Director{Name: s.faker.Name()})
		if err != nil {
			return nil, err
		}
		directors = append(directors, *d)
	}
	return directors, nil
}

func (s *Seeder) createUsers(ctx context.Context, n int) ([]models.User, error) {
	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		login := fmt.Sprintf("%s%d", loginSafe(s.faker.Username()), i+1)
		birthday := s.faker.DateRange(
			time.Date(1950, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2008, 1, 1, 0, 0, 0, 0, time.UTC),
		)
		name := s.faker.Name()
		// Some users leave the name blank and get their login.
		if s.rng.Intn(5) == 0 {
			name = ""
		}
		u, err := s.users.CreateUser(ctx, &models.User{
			Email:    login + "@example.com",
			Login:    login,
			Name:     name,
			Birthday: models.NewDate(birthday.Year(), birthday.Month(), birthday.Day()),
		})
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, nil
}

func (s *Seeder) createFilms(ctx context.Context, n int, directors []models.Director) ([]models.Film, error) {
	films := make([]models.Film, 0, n)
	for i := 0; i < n; i++ {
		release := s.faker.DateRange(
			time.Date(1920, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		)
		film := &models.Film{
			Name:        s.title(),
			Description: truncate(s.faker.Sentence(12), 200),
			ReleaseDate: models.NewDate(release.Year(), release.Month(), release.Day()),
			Duration:    s.faker.IntRange(70, 200),
			Mpa:         &models.Mpa{ID: int64(s.rng.Intn(mpaCount) + 1)},
		}
		for _, g := range s.rng.Perm(genreCount)[:s.rng.Intn(3)] {
			film.Genres = append(film.Genres, models.Genre{ID: int64(g + 1)})
		}
		if len(directors) > 0 && s.rng.Intn(4) != 0 {
			film.Directors = []models.Director{{ID: directors[s.rng.Intn(len(directors))].ID}}
		}

		created, err := s.films.CreateFilm(ctx, film)
		if err != nil {
			return nil, err
		}
		films = append(films, *created)
	}
	return films, nil
}

func (s *Seeder) createFriendships(ctx context.Context, users []models.User, perUser int) (int, error) {
	if len(users) < 2 {
		return 0, nil
	}
	perUser = min(perUser, len(users)-1)
	count := 0
	for i, u := range users {
		picked := 0
		for _, j := range s.rng.Perm(len(users)) {
			if picked == perUser {
				break
			}
			if j == i {
				continue
			}
			if err := s.users.AddFriend(ctx, u.ID, users[j].ID); err != nil {
				return count, err
			}
			picked++
			count++
		}
	}
	return count, nil
}

func (s *Seeder) createLikes(ctx context.Context, users []models.User, films []models.Film, perUser int) (int, error) {
	if len(films) == 0 {
		return 0, nil
	}
	perUser = min(perUser, len(films))
	count := 0
	for _, u := range users {
		for _, j := range s.rng.Perm(len(films))[:perUser] {
			if err := s.films.AddLike(ctx, films[j].ID, u.ID); err != nil {
				return count, err
			}
			count++
		}
	}
	return count, nil
}

func (s *Seeder) createReviews(ctx context.Context, users []models.User, films []models.Film, n, votesPerReview int) (int, int, error) {
	if len(users) == 0 || len(films) == 0 {
		return 0, 0, nil
	}
	reviews, votes := 0, 0
	for i := 0; i < n; i++ {
		positive := s.faker.Bool()
		author := users[s.rng.Intn(len(users))]
		r, err := s.reviews.CreateReview(ctx, &models.Review{
			Content:    truncate(s.faker.Sentence(20), 500),
			IsPositive: &positive,
			UserID:     author.ID,
			FilmID:     films[s.rng.Intn(len(films))].ID,
		})
		if err != nil {
			return reviews, votes, err
		}
		reviews++

		for _, j := range s.rng.Perm(len(users))[:min(votesPerReview, len(users))] {
			if users[j].ID == author.ID {
				continue
			}
			if _, err := s.reviews.AddVote(ctx, r.ID, users[j].ID, s.rng.Intn(3) != 0); err != nil {
				return reviews, votes, err
			}
			votes++
		}
	}
	return reviews, votes, nil
}

func (s *Seeder) title() string {
	words := []string{s.faker.Adjective(), s.faker.Noun()}
	if s.rng.Intn(2) == 0 {
		words = append([]string{"The"}, words...)
	}
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return truncate(strings.Join(words, " "), 255)
}

// loginSafe keeps lowercase ASCII letters and digits. Generated last names
// may carry apostrophes or spaces.
func loginSafe(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "user"
	}
	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return strings.TrimSpace(s[:n])
}
