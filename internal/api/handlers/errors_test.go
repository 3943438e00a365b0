package handlers

import (
	"Purchase-Tracker/domain"
	"Purchase-Tracker/pkg/maps"
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.ErrProductNotFound, fiber.StatusNotFound},
		{domain.ErrCategoryNotFound, fiber.StatusNotFound},
		{domain.ErrCategoryInUse, fiber.StatusConflict},
		{domain.ErrNotConfirmed, fiber.StatusBadRequest},
		{fmt.Errorf("price: %w", domain.ErrInvalidPrice), fiber.StatusBadRequest},
		{maps.ErrLocationUnavailable, fiber.StatusBadRequest},
		{domain.ErrMailNotConfigured, fiber.StatusServiceUnavailable},
		{errors.New("connection reset"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}

func TestParseCoord(t *testing.T) {
	v, err := parseCoord(" 13.7563 ")
	assert.NoError(t, err)
	assert.Equal(t, 13.7563, *v)

	v, err = parseCoord("")
	assert.NoError(t, err)
	assert.Nil(t, v)

	_, err = parseCoord("north")
	assert.Error(t, err)
}

func TestParseLatLng(t *testing.T) {
	lat, lng, err := parseLatLng("13.7563, 100.5018")
	assert.NoError(t, err)
	assert.Equal(t, 13.7563, lat)
	assert.Equal(t, 100.5018, lng)

	for _, v := range []string{"", "13.7563", "13.7563,", ",100.5", "a,b"} {
		_, _, err = parseLatLng(v)
		assert.ErrorIs(t, err, domain.ErrInvalidCoordinates, v)
	}
}
