package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"filmorate/internal/models"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// FilmRepository defines persistence operations for films and their
// genre and director associations.
type FilmRepository interface {
	Create(ctx context.Context, film *models.Film) (*models.Film, error)
	Update(ctx context.Context, film *models.Film) (*models.Film, error)
	GetByID(ctx context.Context, id int64) (*models.Film, error)
	List(ctx context.Context) ([]models.Film, error)
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
	Popular(ctx context.Context, filter models.PopularFilter) ([]models.Film, error)
	Search(ctx context.Context, term string, byTitle, byDirector bool) ([]models.Film, error)
	ByDirector(ctx context.Context, directorID int64, sortBy models.FilmSort) ([]models.Film, error)
	Common(ctx context.Context, userID, friendID int64) ([]models.Film, error)
	LikedBy(ctx context.Context, userID int64) ([]models.Film, error)
}

const filmSelect = `SELECT f.film_id, f.name, f.description, f.release_date, f.duration, r.rating_id, r.name
FROM films AS f
JOIN rating AS r ON r.rating_id = f.rating_id`

const filmLikeCounts = `LEFT JOIN (SELECT film_id, COUNT(*) AS likes FROM like_list GROUP BY film_id) AS lc ON lc.film_id = f.film_id`

const byPopularity = `ORDER BY COALESCE(lc.likes, 0) DESC, f.film_id ASC`

// likeEscaper makes a search term match literally inside a LIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type filmRepository struct {
	*BaseRepository[models.Film]
	genres    *BaseRepository[filmGenre]
	directors *BaseRepository[filmDirector]
	likes     *BaseRepository[filmLike]
	ids       *BaseRepository[int64]
}

// NewFilmRepository returns a new FilmRepository implementation.
func NewFilmRepository(db *gorm.DB) FilmRepository {
	return &filmRepository{
		BaseRepository: NewBaseRepository(db, "Film", decodeFilm, filmID),
		genres:         NewBaseRepository[filmGenre](db, "FilmGenre", decodeFilmGenre, nil),
		directors:      NewBaseRepository[filmDirector](db, "FilmDirector", decodeFilmDirector, nil),
		likes:          NewBaseRepository[filmLike](db, "Like", decodeFilmLike, nil),
		ids:            NewBaseRepository(db, "Film", decodeID, nil),
	}
}

func (r *filmRepository) Create(ctx context.Context, film *models.Film) (*models.Film, error) {
	id, err := r.Insert(ctx,
		`INSERT INTO films (name, description, release_date, duration, rating_id) VALUES (?, ?, ?, ?, ?) RETURNING film_id`,
		film.Name, film.Description, film.ReleaseDate, film.Duration, film.Mpa.ID)
	if err != nil {
		return nil, err
	}

	if err := r.saveAssociations(ctx, id, film); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *filmRepository) Update(ctx context.Context, film *models.Film) (*models.Film, error) {
	updated, err := r.BaseRepository.Update(ctx,
		`UPDATE films SET name = ?, description = ?, release_date = ?, duration = ?, rating_id = ? WHERE film_id = ?`,
		film.Name, film.Description, film.ReleaseDate, film.Duration, film.Mpa.ID, film.ID)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, models.NewNotFoundError("Film", film.ID)
	}

	if _, err := r.genres.Exec(ctx, `DELETE FROM genres_save WHERE film_id = ?`, film.ID); err != nil {
		return nil, err
	}
	if _, err := r.directors.Exec(ctx, `DELETE FROM directors_save WHERE film_id = ?`, film.ID); err != nil {
		return nil, err
	}
	if err := r.saveAssociations(ctx, film.ID, film); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, film.ID)
}

func (r *filmRepository) saveAssociations(ctx context.Context, id int64, film *models.Film) error {
	genreIDs := film.GenreIDs()
	if _, err := r.genres.BatchInsert(ctx, `INSERT INTO genres_save (film_id, genre_id)`, len(genreIDs),
		func(i int) []any { return []any{id, genreIDs[i]} }); err != nil {
		return err
	}

	directorIDs := film.DirectorIDs()
	if _, err := r.directors.BatchInsert(ctx, `INSERT INTO directors_save (film_id, director_id)`, len(directorIDs),
		func(i int) []any { return []any{id, directorIDs[i]} }); err != nil {
		return err
	}
	return nil
}

func (r *filmRepository) GetByID(ctx context.Context, id int64) (*models.Film, error) {
	film, err := r.FindOne(ctx, filmSelect+` WHERE f.film_id = ?`, id)
	if err != nil {
		return nil, err
	}
	films := []models.Film{film}
	if err := r.enrich(ctx, films); err != nil {
		return nil, err
	}
	return &films[0], nil
}

func (r *filmRepository) List(ctx context.Context) ([]models.Film, error) {
	return r.findEnriched(ctx, filmSelect+` ORDER BY f.film_id`)
}

func (r *filmRepository) Delete(ctx context.Context, id int64) error {
	deleted, err := r.BaseRepository.Delete(ctx, `DELETE FROM films WHERE film_id = ?`, id)
	if err != nil {
		return err
	}
	if !deleted {
		return models.NewNotFoundError("Film", id)
	}
	return nil
}

func (r *filmRepository) Exists(ctx context.Context, id int64) (bool, error) {
	ids, err := r.ids.FindMany(ctx, `SELECT film_id FROM films WHERE film_id = ?`, id)
	if err != nil {
		return false, err
	}
	return len(ids) > 0, nil
}

func (r *filmRepository) Popular(ctx context.Context, filter models.PopularFilter) ([]models.Film, error) {
	query := filmSelect + "\n" + filmLikeCounts + "\nWHERE 1 = 1"
	var args []any

	if filter.GenreID != nil {
		query += ` AND f.film_id IN (SELECT film_id FROM genres_save WHERE genre_id = ?)`
		args = append(args, *filter.GenreID)
	}
	if filter.Year != nil {
		query += ` AND f.release_date >= ? AND f.release_date < ?`
		args = append(args, models.NewDate(*filter.Year, time.January, 1), models.NewDate(*filter.Year+1, time.January, 1))
	}

	query += "\n" + byPopularity + "\nLIMIT ?"
	args = append(args, filter.Count)

	return r.findEnriched(ctx, query, args...)
}

func (r *filmRepository) Search(ctx context.Context, term string, byTitle, byDirector bool) ([]models.Film, error) {
	if !byTitle && !byDirector {
		return []models.Film{}, nil
	}

	pattern := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
	query := filmSelect + `
LEFT JOIN directors_save AS ds ON ds.film_id = f.film_id
LEFT JOIN directors AS d ON d.director_id = ds.director_id
` + filmLikeCounts + "\nWHERE "

	var args []any
	switch {
	case byTitle && byDirector:
		query += `(LOWER(f.name) LIKE ? ESCAPE '\' OR LOWER(d.name) LIKE ? ESCAPE '\')`
		args = append(args, pattern, pattern)
	case byTitle:
		query += `LOWER(f.name) LIKE ? ESCAPE '\'`
		args = append(args, pattern)
	default:
		query += `LOWER(d.name) LIKE ? ESCAPE '\'`
		args = append(args, pattern)
	}
	query += "\n" + byPopularity

	// A film with several matching directors comes back once per director.
	films, err := r.StreamQuery(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if err := r.enrich(ctx, films); err != nil {
		return nil, err
	}
	return films, nil
}

func (r *filmRepository) ByDirector(ctx context.Context, directorID int64, sortBy models.FilmSort) ([]models.Film, error) {
	order := `ORDER BY f.release_date ASC, f.film_id ASC`
	if sortBy == models.FilmSortLikes {
		order = byPopularity
	}

	query := fmt.Sprintf(`%s
%s
WHERE f.film_id IN (SELECT film_id FROM directors_save WHERE director_id = ?)
%s`, filmSelect, filmLikeCounts, order)
	return r.findEnriched(ctx, query, directorID)
}

func (r *filmRepository) Common(ctx context.Context, userID, friendID int64) ([]models.Film, error) {
	query := filmSelect + "\n" + filmLikeCounts + `
WHERE f.film_id IN (SELECT film_id FROM like_list WHERE user_id = ?)
AND f.film_id IN (SELECT film_id FROM like_list WHERE user_id = ?)
` + byPopularity
	return r.findEnriched(ctx, query, userID, friendID)
}

func (r *filmRepository) LikedBy(ctx context.Context, userID int64) ([]models.Film, error) {
	query := `SELECT f.film_id, f.name, f.description, f.release_date, f.duration, r.rating_id, r.name
FROM like_list AS ll
JOIN films AS f ON f.film_id = ll.film_id
JOIN rating AS r ON r.rating_id = f.rating_id
WHERE ll.user_id = ?
ORDER BY ll.created_at ASC, f.film_id ASC`
	return r.findEnriched(ctx, query, userID)
}

func (r *filmRepository) findEnriched(ctx context.Context, query string, args ...any) ([]models.Film, error) {
	films, err := r.FindMany(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if err := r.enrich(ctx, films); err != nil {
		return nil, err
	}
	return films, nil
}

// enrich attaches genres, directors and likes to films with one query per
// association, run concurrently.
func (r *filmRepository) enrich(ctx context.Context, films []models.Film) error {
	if len(films) == 0 {
		return nil
	}

	ids := make([]int64, len(films))
	index := make(map[int64]int, len(films))
	for i, f := range films {
		ids[i] = f.ID
		index[f.ID] = i
	}

	var (
		genreRows    []filmGenre
		directorRows []filmDirector
		likeRows     []filmLike
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		genreRows, err = r.genres.FindMany(gctx, `SELECT gs.film_id, g.genre_id, g.name
FROM genres_save AS gs
JOIN genres AS g ON g.genre_id = gs.genre_id
WHERE gs.film_id IN ?
ORDER BY gs.film_id, g.genre_id`, ids)
		return err
	})
	g.Go(func() error {
		var err error
		directorRows, err = r.directors.FindMany(gctx, `SELECT ds.film_id, d.director_id, d.name
FROM directors_save AS ds
JOIN directors AS d ON d.director_id = ds.director_id
WHERE ds.film_id IN ?
ORDER BY ds.film_id, d.director_id`, ids)
		return err
	})
	g.Go(func() error {
		var err error
		likeRows, err = r.likes.FindMany(gctx, `SELECT film_id, user_id FROM like_list WHERE film_id IN ? ORDER BY film_id, user_id`, ids)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	for _, row := range genreRows {
		f := &films[index[row.FilmID]]
		f.Genres = append(f.Genres, row.Genre)
	}
	for _, row := range directorRows {
		f := &films[index[row.FilmID]]
		f.Directors = append(f.Directors, row.Director)
	}
	for _, row := range likeRows {
		f := &films[index[row.FilmID]]
		f.Likes = append(f.Likes, row.UserID)
	}
	return nil
}
