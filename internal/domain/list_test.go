package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	cases := []struct {
		name        string
		page, limit int
		total       int64
		pages       int
	}{
		{"empty", 1, 9, 0, 0},
		{"single partial page", 1, 9, 5, 1},
		{"exact multiple", 2, 9, 18, 2},
		{"rounds up", 3, 9, 19, 3},
		{"beyond the end", 7, 9, 19, 3},
		{"unbounded", 1, 0, 4, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPagination(tc.page, tc.limit, tc.total)
			assert.Equal(t, tc.pages, p.Pages)
			assert.Equal(t, tc.page, p.Page)
			assert.Equal(t, tc.limit, p.Limit)
			assert.Equal(t, tc.total, p.Total)
		})
	}
}

func TestValidationError(t *testing.T) {
	err := error(&ValidationError{Field: "image", Msg: "too big", Err: ErrPayloadTooLarge})
	assert.Equal(t, "too big", err.Error())
	assert.True(t, errors.Is(err, ErrPayloadTooLarge))

	assert.Equal(t, "invalid email", (&ValidationError{Field: "email"}).Error())
	assert.EqualError(t, Invalid("name", "name is required"), "name is required")

	ie := &ImageProcessingError{Err: errors.New("short read")}
	assert.EqualError(t, ie, "image processing failed: short read")
}
