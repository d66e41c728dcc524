package models

// Review is a user's written opinion of a film.
type Review struct {
	ID         int64  `json:"reviewId"`
	Content    string `json:"content" validate:"notblank,max=500"`
	IsPositive *bool  `json:"isPositive" validate:"required"`
	UserID     int64  `json:"userId" validate:"required"`
	FilmID     int64  `json:"filmId" validate:"required"`
	Useful     int    `json:"useful"`
}
