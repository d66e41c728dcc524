// Package testutil provides shared fixtures for backend tests.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SQLiteSchema mirrors the PostgreSQL migration with SQLite types.
const SQLiteSchema = `
CREATE TABLE rating (rating_id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT NOT NULL UNIQUE);
CREATE TABLE genres (genre_id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT NOT NULL UNIQUE);
CREATE TABLE films (
	film_id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	release_date DATE NOT NULL,
	duration INTEGER NOT NULL,
	rating_id INTEGER NOT NULL REFERENCES rating (rating_id)
);
CREATE TABLE genres_save (
	film_id INTEGER NOT NULL REFERENCES films (film_id) ON DELETE CASCADE,
	genre_id INTEGER NOT NULL REFERENCES genres (genre_id) ON DELETE CASCADE,
	PRIMARY KEY (film_id, genre_id)
);
CREATE TABLE directors (director_id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT NOT NULL);
CREATE TABLE directors_save (
	film_id INTEGER NOT NULL REFERENCES films (film_id) ON DELETE CASCADE,
	director_id INTEGER NOT NULL REFERENCES directors (director_id) ON DELETE CASCADE,
	PRIMARY KEY (film_id, director_id)
);
CREATE TABLE users (
	user_id INTEGER PRIMARY KEY AUTOINCREMENT,
	email TEXT NOT NULL,
	login TEXT NOT NULL,
	name TEXT NOT NULL,
	birthday DATE
);
CREATE TABLE friends_list (
	user_id INTEGER NOT NULL REFERENCES users (user_id) ON DELETE CASCADE,
	friend_id INTEGER NOT NULL REFERENCES users (user_id) ON DELETE CASCADE,
	PRIMARY KEY (user_id, friend_id)
);
CREATE TABLE like_list (
	film_id INTEGER NOT NULL REFERENCES films (film_id) ON DELETE CASCADE,
	user_id INTEGER NOT NULL REFERENCES users (user_id) ON DELETE CASCADE,
	created_at TIMESTAMP NOT NULL,
	PRIMARY KEY (film_id, user_id)
);
CREATE TABLE reviews (
	review_id INTEGER PRIMARY KEY AUTOINCREMENT,
	content TEXT NOT NULL,
	is_positive BOOLEAN NOT NULL,
	user_id INTEGER NOT NULL REFERENCES users (user_id) ON DELETE CASCADE,
	film_id INTEGER NOT NULL REFERENCES films (film_id) ON DELETE CASCADE,
	useful INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE review_likes (
	review_id INTEGER NOT NULL REFERENCES reviews (review_id) ON DELETE CASCADE,
	user_id INTEGER NOT NULL REFERENCES users (user_id) ON DELETE CASCADE,
	is_like BOOLEAN NOT NULL,
	PRIMARY KEY (review_id, user_id, is_like)
);
CREATE TABLE events (
	event_id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL REFERENCES users (user_id) ON DELETE CASCADE,
	event_type TEXT NOT NULL,
	operation TEXT NOT NULL,
	entity_id INTEGER NOT NULL,
	created_at TIMESTAMP NOT NULL
);
INSERT INTO rating (rating_id, name) VALUES (1, 'G'), (2, 'PG'), (3, 'PG-13'), (4, 'R'), (5, 'NC-17');
INSERT INTO genres (genre_id, name) VALUES (1, 'Комедия'), (2, 'Драма'), (3, 'Мультфильм'), (4, 'Триллер'), (5, 'Документальный'), (6, 'Боевик');
`

// OpenSQLite returns an in-memory SQLite database carrying the full schema
// and seeded ratings and genres. It is closed when the test ends.
func OpenSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Exec(SQLiteSchema).Error)
	return db
}
