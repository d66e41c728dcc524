package server

import (
	"filmorate/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetDirectors handles GET /directors
// @Summary List directors
// @Tags directors
// @Produce json
// @Success 200 {array} models.Director
// @Router /directors [get]
func (s *Server) GetDirectors(c *fiber.Ctx) error {
	directors, err := s.directorSvc().ListDirectors(c.UserContext())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(directors)
}

// GetDirector handles GET /directors/:id
// @Summary Get director
// @Tags directors
// @Produce json
// @Param id path int true "Director ID"
// @Success 200 {object} models.Director
// @Failure 404 {object} models.ErrorResponse
// @Router /directors/{id} [get]
func (s *Server) GetDirector(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	director, err := s.directorSvc().GetDirector(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(director)
}

// CreateDirector handles POST /directors
// @Summary Create director
// @Tags directors
// @Accept json
// @Produce json
// @Param director body models.Director true "Director"
// @Success 200 {object} models.Director
// @Failure 400 {object} models.ErrorResponse
// @Router /directors [post]
func (s *Server) CreateDirector(c *fiber.Ctx) error {
	var director models.Director
	if err := parseBody(c, &director); err != nil {
		return nil
	}
	created, err := s.directorSvc().CreateDirector(c.UserContext(), &director)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(created)
}

// UpdateDirector handles PUT /directors
// @Summary Update director
// @Tags directors
// @Accept json
// @Produce json
// @Param director body models.Director true "Director"
// @Success 200 {object} models.Director
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /directors [put]
func (s *Server) UpdateDirector(c *fiber.Ctx) error {
	var director models.Director
	if err := parseBody(c, &director); err != nil {
		return nil
	}
	updated, err := s.directorSvc().UpdateDirector(c.UserContext(), &director)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(updated)
}

// DeleteDirector handles DELETE /directors/:id
// @Summary Delete director
// @Tags directors
// @Param id path int true "Director ID"
// @Success 200
// @Failure 404 {object} models.ErrorResponse
// @Router /directors/{id} [delete]
func (s *Server) DeleteDirector(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.directorSvc().DeleteDirector(c.UserContext(), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}
