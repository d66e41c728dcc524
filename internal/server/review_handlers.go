package server

import (
	"filmorate/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreateReview handles POST /reviews
// @Summary Create review
// @Tags reviews
// @Accept json
// @Produce json
// @Param review body models.Review true "Review"
// @Success 200 {object} models.Review
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /reviews [post]
func (s *Server) CreateReview(c *fiber.Ctx) error {
	var review models.Review
	if err := parseBody(c, &review); err != nil {
		return nil
	}
	created, err := s.reviewSvc().CreateReview(c.UserContext(), &review)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(created)
}

// UpdateReview handles PUT /reviews
// @Summary Update review
// @Description Only content and isPositive change; author, film and usefulness are kept.
// @Tags reviews
// @Accept json
// @Produce json
// @Param review body models.Review true "Review"
// @Success 200 {object} models.Review
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /reviews [put]
func (s *Server) UpdateReview(c *fiber.Ctx) error {
	var review models.Review
	if err := parseBody(c, &review); err != nil {
		return nil
	}
	updated, err := s.reviewSvc().UpdateReview(c.UserContext(), &review)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(updated)
}

// GetReview handles GET /reviews/:id
// @Summary Get review
// @Tags reviews
// @Produce json
// @Param id path int true "Review ID"
// @Success 200 {object} models.Review
// @Failure 404 {object} models.ErrorResponse
// @Router /reviews/{id} [get]
func (s *Server) GetReview(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	review, err := s.reviewSvc().GetReview(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(review)
}

// GetReviews handles GET /reviews
// @Summary List reviews
// @Tags reviews
// @Produce json
// @Param filmId query int false "Film ID"
// @Param count query int false "Number of reviews" default(10)
// @Success 200 {array} models.Review
// @Failure 400 {object} models.ErrorResponse
// @Router /reviews [get]
func (s *Server) GetReviews(c *fiber.Ctx) error {
	filmID, err := queryID(c, "filmId")
	if err != nil {
		return nil
	}
	count, err := queryInt(c, "count")
	if err != nil {
		return nil
	}
	reviews, err := s.reviewSvc().ListReviews(c.UserContext(), filmID, count)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(reviews)
}

// DeleteReview handles DELETE /reviews/:id
// @Summary Delete review
// @Tags reviews
// @Param id path int true "Review ID"
// @Success 200
// @Failure 404 {object} models.ErrorResponse
// @Router /reviews/{id} [delete]
func (s *Server) DeleteReview(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.reviewSvc().DeleteReview(c.UserContext(), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

// LikeReview handles PUT /reviews/:id/like/:userId
// @Summary Like review
// @Tags reviews
// @Produce json
// @Param id path int true "Review ID"
// @Param userId path int true "User ID"
// @Success 200 {object} models.Review
// @Failure 404 {object} models.ErrorResponse
// @Router /reviews/{id}/like/{userId} [put]
func (s *Server) LikeReview(c *fiber.Ctx) error {
	return s.vote(c, true, true)
}

// UnlikeReview handles DELETE /reviews/:id/like/:userId
// @Summary Remove review like
// @Tags reviews
// @Produce json
// @Param id path int true "Review ID"
// @Param userId path int true "User ID"
// @Success 200 {object} models.Review
// @Failure 404 {object} models.ErrorResponse
// @Router /reviews/{id}/like/{userId} [delete]
func (s *Server) UnlikeReview(c *fiber.Ctx) error {
	return s.vote(c, true, false)
}

// DislikeReview handles PUT /reviews/:id/dislike/:userId
// @Summary Dislike review
// @Tags reviews
// @Produce json
// @Param id path int true "Review ID"
// @Param userId path int true "User ID"
// @Success 200 {object} models.Review
// @Failure 404 {object} models.ErrorResponse
// @Router /reviews/{id}/dislike/{userId} [put]
func (s *Server) DislikeReview(c *fiber.Ctx) error {
	return s.vote(c, false, true)
}

// UndislikeReview handles DELETE /reviews/:id/dislike/:userId
// @Summary Remove review dislike
// @Tags reviews
// @Produce json
// @Param id path int true "Review ID"
// @Param userId path int true "User ID"
// @Success 200 {object} models.Review
// @Failure 404 {object} models.ErrorResponse
// @Router /reviews/{id}/dislike/{userId} [delete]
func (s *Server) UndislikeReview(c *fiber.Ctx) error {
	return s.vote(c, false, false)
}

func (s *Server) vote(c *fiber.Ctx, isLike, add bool) error {
	reviewID, userID, err := parseIDs(c, "id", "userId")
	if err != nil {
		return nil
	}
	var review *models.Review
	if add {
		review, err = s.reviewSvc().AddVote(c.UserContext(), reviewID, userID, isLike)
	} else {
		review, err = s.reviewSvc().RemoveVote(c.UserContext(), reviewID, userID, isLike)
	}
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(review)
}
