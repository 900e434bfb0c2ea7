package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type testRequest struct {
	BookID  string  `json:"bookId" validate:"required"`
	Rating  float64 `json:"rating" validate:"required"`
	Comment string  `json:"comment"`
}

func TestValidator_Validate(t *testing.T) {
	v := New()

	t.Run("valid struct", func(t *testing.T) {
		err := v.Validate(testRequest{BookID: "book-1", Rating: 4})
		assert.NoError(t, err)
	})

	t.Run("missing fields use json names", func(t *testing.T) {
		err := v.Validate(testRequest{})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "bookId is required")
		assert.Contains(t, err.Error(), "rating is required")
	})

	t.Run("zero rating counts as missing", func(t *testing.T) {
		err := v.Validate(testRequest{BookID: "book-1", Rating: 0})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "rating is required")
	})
}
