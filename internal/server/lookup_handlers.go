package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetGenres handles GET /genres
// @Summary List genres
// @Tags lookups
// @Produce json
// @Success 200 {array} models.Genre
// @Router /genres [get]
func (s *Server) GetGenres(c *fiber.Ctx) error {
	genres, err := s.lookupSvc().ListGenres(c.UserContext())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(genres)
}

// GetGenre handles GET /genres/:id
// @Summary Get genre
// @Tags lookups
// @Produce json
// @Param id path int true "Genre ID"
// @Success 200 {object} models.Genre
// @Failure 404 {object} models.ErrorResponse
// @Router /genres/{id} [get]
func (s *Server) GetGenre(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	genre, err := s.lookupSvc().GetGenre(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(genre)
}

// GetMpaRatings handles GET /mpa
// @Summary List MPA ratings
// @Tags lookups
// @Produce json
// @Success 200 {array} models.Mpa
// @Router /mpa [get]
func (s *Server) GetMpaRatings(c *fiber.Ctx) error {
	ratings, err := s.lookupSvc().ListMpa(c.UserContext())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(ratings)
}

// GetMpa handles GET /mpa/:id
// @Summary Get MPA rating
// @Tags lookups
// @Produce json
// @Param id path int true "Rating ID"
// @Success 200 {object} models.Mpa
// @Failure 404 {object} models.ErrorResponse
// @Router /mpa/{id} [get]
func (s *Server) GetMpa(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	rating, err := s.lookupSvc().GetMpa(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(rating)
}
