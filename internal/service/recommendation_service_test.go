package service

import (
	"context"
	"testing"

	"filmorate/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func films(ids ...int64) []models.Film {
	out := make([]models.Film, len(ids))
	for i, id := range ids {
		out[i] = models.Film{ID: id}
	}
	return out
}

func TestRecommendationServiceExcludesLikedFilms(t *testing.T) {
	likes := noopLikeRepo()
	likes.mostSimilarUserFn = func(_ context.Context, userID int64) (int64, bool, error) {
		assert.Equal(t, int64(1), userID)
		return 2, true, nil
	}
	likes.filmIDsLikedByFn = func(_ context.Context, userID int64) ([]int64, error) {
		assert.Equal(t, int64(1), userID)
		return []int64{1, 2, 3}, nil
	}
	filmsRepo := noopFilmRepo()
	filmsRepo.likedByFn = func(_ context.Context, userID int64) ([]models.Film, error) {
		assert.Equal(t, int64(2), userID)
		return films(4, 1, 5, 2), nil
	}

	svc := NewRecommendationService(noopUserRepo(), likes, filmsRepo)
	got, err := svc.GetRecommendations(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, films(4, 5), got)
}

func TestRecommendationServiceNoSimilarUser(t *testing.T) {
	filmsRepo := noopFilmRepo()
	filmsRepo.likedByFn = func(context.Context, int64) ([]models.Film, error) {
		t.Fatal("films loaded without a similar user")
		return nil, nil
	}

	svc := NewRecommendationService(noopUserRepo(), noopLikeRepo(), filmsRepo)
	got, err := svc.GetRecommendations(context.Background(), 1)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRecommendationServiceMissingUser(t *testing.T) {
	svc := NewRecommendationService(noopUserRepo(), noopLikeRepo(), noopFilmRepo())
	_, err := svc.GetRecommendations(context.Background(), 0)
	assert.True(t, models.IsNotFound(err))
}
