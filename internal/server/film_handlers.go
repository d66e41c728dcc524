package server

import (
	"filmorate/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreateFilm handles POST /films
// @Summary Create film
// @Tags films
// @Accept json
// @Produce json
// @Param film body models.Film true "Film"
// @Success 200 {object} models.Film
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /films [post]
func (s *Server) CreateFilm(c *fiber.Ctx) error {
	var film models.Film
	if err := parseBody(c, &film); err != nil {
		return nil
	}
	created, err := s.filmSvc().CreateFilm(c.UserContext(), &film)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(created)
}

// UpdateFilm handles PUT /films
// @Summary Update film
// @Tags films
// @Accept json
// @Produce json
// @Param film body models.Film true "Film"
// @Success 200 {object} models.Film
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /films [put]
func (s *Server) UpdateFilm(c *fiber.Ctx) error {
	var film models.Film
	if err := parseBody(c, &film); err != nil {
		return nil
	}
	updated, err := s.filmSvc().UpdateFilm(c.UserContext(), &film)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(updated)
}

// GetFilms handles GET /films
// @Summary List films
// @Tags films
// @Produce json
// @Success 200 {array} models.Film
// @Router /films [get]
func (s *Server) GetFilms(c *fiber.Ctx) error {
	films, err := s.filmSvc().ListFilms(c.UserContext())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(films)
}

// GetFilm handles GET /films/:id
// @Summary Get film
// @Tags films
// @Produce json
// @Param id path int true "Film ID"
// @Success 200 {object} models.Film
// @Failure 404 {object} models.ErrorResponse
// @Router /films/{id} [get]
func (s *Server) GetFilm(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	film, err := s.filmSvc().GetFilm(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(film)
}

// DeleteFilm handles DELETE /films/:id
// @Summary Delete film
// @Tags films
// @Param id path int true "Film ID"
// @Success 200
// @Failure 404 {object} models.ErrorResponse
// @Router /films/{id} [delete]
func (s *Server) DeleteFilm(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.filmSvc().DeleteFilm(c.UserContext(), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

// LikeFilm handles PUT /films/:id/like/:userId
// @Summary Like film
// @Tags films
// @Param id path int true "Film ID"
// @Param userId path int true "User ID"
// @Success 200
// @Failure 404 {object} models.ErrorResponse
// @Router /films/{id}/like/{userId} [put]
func (s *Server) LikeFilm(c *fiber.Ctx) error {
	filmID, userID, err := parseIDs(c, "id", "userId")
	if err != nil {
		return nil
	}
	if err := s.filmSvc().AddLike(c.UserContext(), filmID, userID); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

// UnlikeFilm handles DELETE /films/:id/like/:userId
// @Summary Remove like
// @Tags films
// @Param id path int true "Film ID"
// @Param userId path int true "User ID"
// @Success 200
// @Failure 404 {object} models.ErrorResponse
// @Router /films/{id}/like/{userId} [delete]
func (s *Server) UnlikeFilm(c *fiber.Ctx) error {
	filmID, userID, err := parseIDs(c, "id", "userId")
	if err != nil {
		return nil
	}
	if err := s.filmSvc().RemoveLike(c.UserContext(), filmID, userID); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

// GetPopularFilms handles GET /films/popular
// @Summary Most liked films
// @Tags films
// @Produce json
// @Param count query int false "Number of films" default(10)
// @Param genreId query int false "Genre filter"
// @Param year query int false "Release year filter"
// @Success 200 {array} models.Film
// @Failure 400 {object} models.ErrorResponse
// @Router /films/popular [get]
func (s *Server) GetPopularFilms(c *fiber.Ctx) error {
	count, err := queryInt(c, "count")
	if err != nil {
		return nil
	}
	genreID, err := queryID(c, "genreId")
	if err != nil {
		return nil
	}
	year, err := queryInt(c, "year")
	if err != nil {
		return nil
	}
	films, err := s.filmSvc().Popular(c.UserContext(), count, genreID, year)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(films)
}

// SearchFilms handles GET /films/search
// @Summary Search films
// @Tags films
// @Produce json
// @Param query query string true "Substring to look for"
// @Param by query string false "title, director or both" default(title)
// @Success 200 {array} models.Film
// @Failure 400 {object} models.ErrorResponse
// @Router /films/search [get]
func (s *Server) SearchFilms(c *fiber.Ctx) error {
	films, err := s.filmSvc().Search(c.UserContext(), c.Query("query"), c.Query("by"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(films)
}

// GetDirectorFilms handles GET /films/director/:directorId
// @Summary Director filmography
// @Tags films
// @Produce json
// @Param directorId path int true "Director ID"
// @Param sortBy query string false "year or likes" default(year)
// @Success 200 {array} models.Film
// @Failure 404 {object} models.ErrorResponse
// @Router /films/director/{directorId} [get]
func (s *Server) GetDirectorFilms(c *fiber.Ctx) error {
	directorID, err := parseID(c, "directorId")
	if err != nil {
		return nil
	}
	films, err := s.filmSvc().ByDirector(c.UserContext(), directorID, c.Query("sortBy"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(films)
}

// GetCommonFilms handles GET /films/common
// @Summary Films liked by both users
// @Tags films
// @Produce json
// @Param userId query int true "User ID"
// @Param friendId query int true "Friend ID"
// @Success 200 {array} models.Film
// @Failure 404 {object} models.ErrorResponse
// @Router /films/common [get]
func (s *Server) GetCommonFilms(c *fiber.Ctx) error {
	userID, err := requireQueryID(c, "userId")
	if err != nil {
		return nil
	}
	friendID, err := requireQueryID(c, "friendId")
	if err != nil {
		return nil
	}
	films, err := s.filmSvc().Common(c.UserContext(), userID, friendID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(films)
}
