package service

import (
	"context"
	"strings"

	"filmorate/internal/models"
	"filmorate/internal/repository"
	"filmorate/internal/validation"
)

const minFilterYear = 1895

// FilmService provides film, like and film aggregation business logic.
type FilmService struct {
	filmRepo       repository.FilmRepository
	likeRepo       repository.LikeRepository
	userRepo       repository.UserRepository
	mpaRepo        repository.MpaRepository
	genreRepo      repository.GenreRepository
	directorRepo   repository.DirectorRepository
	feed           *FeedService
	popularDefault int
}

// FilmRepositories groups the stores FilmService reads and writes.
type FilmRepositories struct {
	Films     repository.FilmRepository
	Likes     repository.LikeRepository
	Users     repository.UserRepository
	Mpa       repository.MpaRepository
	Genres    repository.GenreRepository
	Directors repository.DirectorRepository
}

// NewFilmService returns a new FilmService. popularDefault is the count used
// when a popular request does not name one.
func NewFilmService(repos FilmRepositories, feed *FeedService, popularDefault int) *FilmService {
	if popularDefault <= 0 {
		popularDefault = 10
	}
	return &FilmService{
		filmRepo:       repos.Films,
		likeRepo:       repos.Likes,
		userRepo:       repos.Users,
		mpaRepo:        repos.Mpa,
		genreRepo:      repos.Genres,
		directorRepo:   repos.Directors,
		feed:           feed,
		popularDefault: popularDefault,
	}
}

// CreateFilm validates a film, checks its rating, genres and directors exist
// and stores it.
func (s *FilmService) CreateFilm(ctx context.Context, film *models.Film) (*models.Film, error) {
	if err := s.prepareFilm(ctx, film); err != nil {
		return nil, err
	}
	return s.filmRepo.Create(ctx, film)
}

// UpdateFilm replaces an existing film including its genre and director sets.
func (s *FilmService) UpdateFilm(ctx context.Context, film *models.Film) (*models.Film, error) {
	if film.ID <= 0 {
		return nil, models.NewValidationError("id is required")
	}
	if err := s.prepareFilm(ctx, film); err != nil {
		return nil, err
	}
	return s.filmRepo.Update(ctx, film)
}

func (s *FilmService) prepareFilm(ctx context.Context, film *models.Film) error {
	if err := validation.Struct(film); err != nil {
		return err
	}
	if _, err := s.mpaRepo.GetByID(ctx, film.Mpa.ID); err != nil {
		return err
	}
	if err := ensureAll(ctx, "Genre", film.GenreIDs(), s.genreRepo.ExistingIDs); err != nil {
		return err
	}
	return ensureAll(ctx, "Director", film.DirectorIDs(), s.directorRepo.ExistingIDs)
}

// ensureAll reports NotFound for the first id the store does not know.
func ensureAll(ctx context.Context, resource string, ids []int64, existing func(context.Context, []int64) ([]int64, error)) error {
	if len(ids) == 0 {
		return nil
	}
	found, err := existing(ctx, ids)
	if err != nil {
		return err
	}
	known := make(map[int64]struct{}, len(found))
	for _, id := range found {
		known[id] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			return models.NewNotFoundError(resource, id)
		}
	}
	return nil
}

// GetFilm returns a film with its rating, genres, directors and likes.
func (s *FilmService) GetFilm(ctx context.Context, id int64) (*models.Film, error) {
	return s.filmRepo.GetByID(ctx, id)
}

// ListFilms returns every film ordered by id.
func (s *FilmService) ListFilms(ctx context.Context) ([]models.Film, error) {
	return s.filmRepo.List(ctx)
}

// DeleteFilm removes a film with its likes, associations and reviews.
func (s *FilmService) DeleteFilm(ctx context.Context, id int64) error {
	return s.filmRepo.Delete(ctx, id)
}

// AddLike records that userID likes filmID. Liking twice counts once but is
// still recorded in the feed.
func (s *FilmService) AddLike(ctx context.Context, filmID, userID int64) error {
	if err := s.checkLike(ctx, filmID, userID); err != nil {
		return err
	}
	if err := s.likeRepo.Add(ctx, filmID, userID); err != nil {
		return err
	}
	return s.feed.Record(ctx, userID, models.EventLike, models.OperationAdd, filmID)
}

// RemoveLike drops userID's like of filmID if present.
func (s *FilmService) RemoveLike(ctx context.Context, filmID, userID int64) error {
	if err := s.checkLike(ctx, filmID, userID); err != nil {
		return err
	}
	if _, err := s.likeRepo.Remove(ctx, filmID, userID); err != nil {
		return err
	}
	return s.feed.Record(ctx, userID, models.EventLike, models.OperationRemove, filmID)
}

func (s *FilmService) checkLike(ctx context.Context, filmID, userID int64) error {
	if err := ensureFilm(ctx, s.filmRepo, filmID); err != nil {
		return err
	}
	return ensureUser(ctx, s.userRepo, userID)
}

// Popular returns the most liked films. A nil count uses the configured default.
func (s *FilmService) Popular(ctx context.Context, count *int, genreID *int64, year *int) ([]models.Film, error) {
	filter := models.PopularFilter{Count: s.popularDefault, GenreID: genreID, Year: year}
	if count != nil {
		if *count <= 0 {
			return nil, models.NewValidationError("count must be positive")
		}
		filter.Count = *count
	}
	if year != nil && *year < minFilterYear {
		return nil, models.NewValidationError("year must not be earlier than 1895")
	}
	return s.filmRepo.Popular(ctx, filter)
}

// Search finds films whose title and/or director name contains query,
// ignoring case. by is a comma separated list of "title" and "director" and
// defaults to "title".
func (s *FilmService) Search(ctx context.Context, query, by string) ([]models.Film, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, models.NewValidationError("query must not be blank")
	}
	byTitle, byDirector := false, false
	if strings.TrimSpace(by) == "" {
		by = "title"
	}
	for _, part := range strings.Split(by, ",") {
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "title":
			byTitle = true
		case "director":
			byDirector = true
		default:
			return nil, models.NewValidationError("by must be title, director or both")
		}
	}
	return s.filmRepo.Search(ctx, query, byTitle, byDirector)
}

// ByDirector returns a director's films sorted by "year" (default) or "likes".
func (s *FilmService) ByDirector(ctx context.Context, directorID int64, sortBy string) ([]models.Film, error) {
	order := models.FilmSortYear
	switch models.FilmSort(strings.ToLower(strings.TrimSpace(sortBy))) {
	case "", models.FilmSortYear:
	case models.FilmSortLikes:
		order = models.FilmSortLikes
	default:
		return nil, models.NewValidationError("sortBy must be year or likes")
	}
	if _, err := s.directorRepo.GetByID(ctx, directorID); err != nil {
		return nil, err
	}
	return s.filmRepo.ByDirector(ctx, directorID, order)
}

// Common returns films liked by both users, most popular first.
func (s *FilmService) Common(ctx context.Context, userID, friendID int64) ([]models.Film, error) {
	if err := ensureUser(ctx, s.userRepo, userID); err != nil {
		return nil, err
	}
	if err := ensureUser(ctx, s.userRepo, friendID); err != nil {
		return nil, err
	}
	return s.filmRepo.Common(ctx, userID, friendID)
}
