package repository

import (
	"database/sql"
	"fmt"
	"time"

	"filmorate/internal/models"
)

// sqliteTimeLayouts are the text forms a timestamp column may come back in
// when the driver does not convert it.
var sqliteTimeLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
}

// timestamp scans a timestamp column from either driver.
type timestamp struct {
	time.Time
}

func (t *timestamp) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		t.Time = v
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	default:
		return fmt.Errorf("cannot scan %T into timestamp", src)
	}
}

func (t *timestamp) parse(s string) error {
	for _, layout := range sqliteTimeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("cannot parse timestamp %q", s)
}

func decodeFilm(rows *sql.Rows) (models.Film, error) {
	var f models.Film
	mpa := &models.Mpa{}
	err := rows.Scan(&f.ID, &f.Name, &f.Description, &f.ReleaseDate, &f.Duration, &mpa.ID, &mpa.Name)
	f.Mpa = mpa
	f.Genres = []models.Genre{}
	f.Directors = []models.Director{}
	f.Likes = []int64{}
	return f, err
}

func filmID(f models.Film) int64 { return f.ID }

func decodeUser(rows *sql.Rows) (models.User, error) {
	var u models.User
	err := rows.Scan(&u.ID, &u.Email, &u.Login, &u.Name, &u.Birthday)
	return u, err
}

func userID(u models.User) int64 { return u.ID }

func decodeGenre(rows *sql.Rows) (models.Genre, error) {
	var g models.Genre
	err := rows.Scan(&g.ID, &g.Name)
	return g, err
}

func decodeMpa(rows *sql.Rows) (models.Mpa, error) {
	var m models.Mpa
	err := rows.Scan(&m.ID, &m.Name)
	return m, err
}

func decodeDirector(rows *sql.Rows) (models.Director, error) {
	var d models.Director
	err := rows.Scan(&d.ID, &d.Name)
	return d, err
}

func decodeReview(rows *sql.Rows) (models.Review, error) {
	var r models.Review
	var positive bool
	err := rows.Scan(&r.ID, &r.Content, &positive, &r.UserID, &r.FilmID, &r.Useful)
	r.IsPositive = &positive
	return r, err
}

func decodeEvent(rows *sql.Rows) (models.Event, error) {
	var e models.Event
	var created timestamp
	err := rows.Scan(&e.ID, &e.UserID, &e.EventType, &e.Operation, &e.EntityID, &created)
	e.Timestamp = created.UnixMilli()
	return e, err
}

func decodeID(rows *sql.Rows) (int64, error) {
	var id int64
	err := rows.Scan(&id)
	return id, err
}

// filmGenre is one genres_save row joined with its genre.
type filmGenre struct {
	FilmID int64
	Genre  models.Genre
}

func decodeFilmGenre(rows *sql.Rows) (filmGenre, error) {
	var fg filmGenre
	err := rows.Scan(&fg.FilmID, &fg.Genre.ID, &fg.Genre.Name)
	return fg, err
}

// filmDirector is one directors_save row joined with its director.
type filmDirector struct {
	FilmID   int64
	Director models.Director
}

func decodeFilmDirector(rows *sql.Rows) (filmDirector, error) {
	var fd filmDirector
	err := rows.Scan(&fd.FilmID, &fd.Director.ID, &fd.Director.Name)
	return fd, err
}

// filmLike is one like_list edge.
type filmLike struct {
	FilmID int64
	UserID int64
}

func decodeFilmLike(rows *sql.Rows) (filmLike, error) {
	var fl filmLike
	err := rows.Scan(&fl.FilmID, &fl.UserID)
	return fl, err
}

// similarity is how many liked films another user shares with the subject.
type similarity struct {
	UserID  int64
	Overlap int64
}

func decodeSimilarity(rows *sql.Rows) (similarity, error) {
	var s similarity
	err := rows.Scan(&s.UserID, &s.Overlap)
	return s, err
}
