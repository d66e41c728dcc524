package server

import (
	"filmorate/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreateUser handles POST /users
// @Summary Create user
// @Tags users
// @Accept json
// @Produce json
// @Param user body models.User true "User"
// @Success 200 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Router /users [post]
func (s *Server) CreateUser(c *fiber.Ctx) error {
	var user models.User
	if err := parseBody(c, &user); err != nil {
		return nil
	}
	created, err := s.userSvc().CreateUser(c.UserContext(), &user)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(created)
}

// UpdateUser handles PUT /users
// @Summary Update user
// @Tags users
// @Accept json
// @Produce json
// @Param user body models.User true "User"
// @Success 200 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /users [put]
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	var user models.User
	if err := parseBody(c, &user); err != nil {
		return nil
	}
	updated, err := s.userSvc().UpdateUser(c.UserContext(), &user)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(updated)
}

// GetUsers handles GET /users
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {array} models.User
// @Router /users [get]
func (s *Server) GetUsers(c *fiber.Ctx) error {
	users, err := s.userSvc().ListUsers(c.UserContext())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(users)
}

// GetUser handles GET /users/:id
// @Summary Get user
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.User
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id} [get]
func (s *Server) GetUser(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	user, err := s.userSvc().GetUser(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// DeleteUser handles DELETE /users/:id
// @Summary Delete user
// @Tags users
// @Param id path int true "User ID"
// @Success 200
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id} [delete]
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.userSvc().DeleteUser(c.UserContext(), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

// AddFriend handles PUT /users/:id/friends/:friendId
// @Summary Add friend
// @Tags friends
// @Param id path int true "User ID"
// @Param friendId path int true "Friend ID"
// @Success 200
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id}/friends/{friendId} [put]
func (s *Server) AddFriend(c *fiber.Ctx) error {
	userID, friendID, err := parseIDs(c, "id", "friendId")
	if err != nil {
		return nil
	}
	if err := s.userSvc().AddFriend(c.UserContext(), userID, friendID); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

// RemoveFriend handles DELETE /users/:id/friends/:friendId
// @Summary Remove friend
// @Tags friends
// @Param id path int true "User ID"
// @Param friendId path int true "Friend ID"
// @Success 200
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id}/friends/{friendId} [delete]
func (s *Server) RemoveFriend(c *fiber.Ctx) error {
	userID, friendID, err := parseIDs(c, "id", "friendId")
	if err != nil {
		return nil
	}
	if err := s.userSvc().RemoveFriend(c.UserContext(), userID, friendID); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

// GetFriends handles GET /users/:id/friends
// @Summary List friends
// @Tags friends
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {array} models.User
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id}/friends [get]
func (s *Server) GetFriends(c *fiber.Ctx) error {
	userID, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	friends, err := s.userSvc().GetFriends(c.UserContext(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(friends)
}

// GetCommonFriends handles GET /users/:id/friends/common/:otherId
// @Summary Common friends
// @Tags friends
// @Produce json
// @Param id path int true "User ID"
// @Param otherId path int true "Other user ID"
// @Success 200 {array} models.User
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id}/friends/common/{otherId} [get]
func (s *Server) GetCommonFriends(c *fiber.Ctx) error {
	userID, otherID, err := parseIDs(c, "id", "otherId")
	if err != nil {
		return nil
	}
	friends, err := s.userSvc().GetCommonFriends(c.UserContext(), userID, otherID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(friends)
}

// GetRecommendations handles GET /users/:id/recommendations
// @Summary Film recommendations
// @Description Films liked by the user with the most overlapping likes that this user has not liked.
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {array} models.Film
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id}/recommendations [get]
func (s *Server) GetRecommendations(c *fiber.Ctx) error {
	userID, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	films, err := s.recommendationSvc().GetRecommendations(c.UserContext(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(films)
}
