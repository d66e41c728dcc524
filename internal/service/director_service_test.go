package service

import (
	"context"
	"testing"

	"filmorate/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectorServiceValidation(t *testing.T) {
	svc := NewDirectorService(noopDirectorRepo())
	ctx := context.Background()

	_, err := svc.CreateDirector(ctx, &models.Director{Name: "  "})
	assert.True(t, models.HasCode(err, models.CodeValidation))

	_, err = svc.UpdateDirector(ctx, &models.Director{Name: "Andrei Tarkovsky"})
	assert.True(t, models.HasCode(err, models.CodeValidation))

	updated, err := svc.UpdateDirector(ctx, &models.Director{ID: 2, Name: "Andrei Tarkovsky"})
	require.NoError(t, err)
	assert.Equal(t, "Andrei Tarkovsky", updated.Name)
}

func TestLookupServiceMissingMpa(t *testing.T) {
	svc := NewLookupService(noopGenreRepo(), noopMpaRepo())

	_, err := svc.GetMpa(context.Background(), 6)
	assert.True(t, models.IsNotFound(err))

	mpa, err := svc.GetMpa(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), mpa.ID)
}
